package upload

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/google/uuid"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

const maxFilenameLength = 100

var (
	unsafeChars   = regexp.MustCompile(`[^\w\s.-]`)
	separatorRuns = regexp.MustCompile(`[-\s]+`)
)

// SanitizeFilename turns a client supplied name into a safe base name: no
// directories, ASCII word characters, dots and underscores only, at most 100
// characters with the extension kept. Empty results get a random placeholder.
func SanitizeFilename(name string) string {
	if i := strings.LastIndexAny(name, `/\`); i >= 0 {
		name = name[i+1:]
	}

	name = transliterate(name)
	name = unsafeChars.ReplaceAllString(name, "")
	name = separatorRuns.ReplaceAllString(name, "_")
	name = strings.Trim(name, "._")

	if len(name) > maxFilenameLength {
		stem, ext := name, ""
		if i := strings.LastIndexByte(name, '.'); i > 0 && len(name)-i <= maxFilenameLength/2 {
			stem, ext = name[:i], name[i:]
		}
		name = strings.Trim(stem[:maxFilenameLength-len(ext)]+ext, "._")
	}

	if name == "" || name == "." || name == ".." {
		return "arquivo_" + strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
	}
	return name
}

func transliterate(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}
