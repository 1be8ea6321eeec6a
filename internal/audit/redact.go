package audit

import (
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"unicode/utf8"
)

const (
	redactedMarker  = "[REDACTED]"
	maxStringLength = 100
)

var sensitiveKeywords = []string{
	"password", "passwd", "senha", "token", "secret", "key",
	"auth", "credential", "cookie", "session",
}

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// Redact returns a copy of v with sensitive values replaced, emails masked
// and long strings truncated. Maps with string keys, slices and arrays of any
// element type are walked recursively; they come back as map[string]any and
// []any.
func Redact(v any) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			if isSensitive(k) {
				out[k] = redactedMarker
				continue
			}
			out[k] = Redact(val)
		}
		return out
	case map[string]string:
		out := make(map[string]any, len(t))
		for k, val := range t {
			if isSensitive(k) {
				out[k] = redactedMarker
				continue
			}
			out[k] = redactString(val)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, val := range t {
			out[i] = Redact(val)
		}
		return out
	case []string:
		out := make([]any, len(t))
		for i, val := range t {
			out[i] = redactString(val)
		}
		return out
	case string:
		return redactString(t)
	case nil:
		return nil
	default:
		return redactValue(reflect.ValueOf(v))
	}
}

// redactValue covers the container types the switch in Redact does not name,
// such as []map[string]any or map[string]map[string]string.
func redactValue(rv reflect.Value) any {
	switch rv.Kind() {
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			return rv.Interface()
		}
		out := make(map[string]any, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			k := iter.Key().String()
			if isSensitive(k) {
				out[k] = redactedMarker
				continue
			}
			out[k] = Redact(iter.Value().Interface())
		}
		return out
	case reflect.Slice:
		if rv.IsNil() {
			return rv.Interface()
		}
		fallthrough
	case reflect.Array:
		if rv.Type().Elem().Kind() == reflect.Uint8 {
			return fmt.Sprintf("[%d bytes]", rv.Len())
		}
		out := make([]any, rv.Len())
		for i := range out {
			out[i] = Redact(rv.Index(i).Interface())
		}
		return out
	case reflect.Pointer:
		if rv.IsNil() {
			return rv.Interface()
		}
		return Redact(rv.Elem().Interface())
	case reflect.String:
		return redactString(rv.String())
	default:
		return rv.Interface()
	}
}

func isSensitive(key string) bool {
	k := strings.ToLower(key)
	for _, s := range sensitiveKeywords {
		if strings.Contains(k, s) {
			return true
		}
	}
	return false
}

func redactString(s string) string {
	if emailPattern.MatchString(s) {
		return maskEmail(s)
	}
	if utf8.RuneCountInString(s) > maxStringLength {
		return string([]rune(s)[:maxStringLength]) + "..."
	}
	return s
}

// maskEmail keeps the first two characters of the local part: ab***@domain.
func maskEmail(s string) string {
	at := strings.LastIndexByte(s, '@')
	local := []rune(s[:at])
	if len(local) > 2 {
		local = local[:2]
	}
	return string(local) + "***" + s[at:]
}
