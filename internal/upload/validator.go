package upload

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"strings"
	"unicode/utf8"

	"github.com/gabriel-vasile/mimetype"
	"github.com/ledongthuc/pdf"
)

const (
	sniffLen          = 1024
	maxImageDimension = 10000
	pdfPagesToCheck   = 3
)

const (
	typePDF  = "application/pdf"
	typeJPEG = "image/jpeg"
	typePNG  = "image/png"
	typeGIF  = "image/gif"
	typeText = "text/plain"
	typeDOC  = "application/msword"
	typeDOCX = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	typeXLS  = "application/vnd.ms-excel"
	typeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

var allowedTypes = []string{typePDF, typeJPEG, typePNG, typeGIF, typeText, typeDOC, typeDOCX, typeXLS, typeXLSX}

// Generic containers only count as an office format when the claimed
// extension says which one.
var containerTypes = map[string]map[string]string{
	"application/zip": {
		"docx": typeDOCX,
		"xlsx": typeXLSX,
	},
	"application/x-ole-storage": {
		"doc": typeDOC,
		"xls": typeXLS,
	},
}

var scriptPatterns = []string{"<script", "<?php", "<%", "javascript:", "vbscript:"}

var (
	errNoPages        = errors.New("pdf has no pages")
	errImageTooLarge  = errors.New("image dimensions exceed limit")
	errInvalidUTF8    = errors.New("text is not valid utf-8")
	errScriptInjected = errors.New("text contains script content")
)

// DetectType classifies data by its leading bytes. ext is the claimed
// extension and only disambiguates generic zip/OLE containers. It returns
// the canonical MIME type and whether it is allowed.
func DetectType(data []byte, ext string) (string, bool) {
	head := data
	if len(head) > sniffLen {
		head = head[:sniffLen]
	}
	m := mimetype.Detect(head)

	for _, t := range allowedTypes {
		if m.Is(t) {
			return t, true
		}
	}
	for container, byExt := range containerTypes {
		if m.Is(container) {
			if t, ok := byExt[strings.ToLower(ext)]; ok {
				return t, true
			}
		}
	}
	return m.String(), false
}

// CheckContent runs the structural check for the detected type. Types without
// a dedicated check pass.
func CheckContent(data []byte, detected string) error {
	switch {
	case detected == typePDF:
		return checkPDF(data)
	case strings.HasPrefix(detected, "image/"):
		return checkImage(data)
	case detected == typeText:
		return checkText(data)
	default:
		return nil
	}
}

func checkPDF(data []byte) (err error) {
	// The parser panics on some malformed inputs.
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("pdf parser: %v", r)
		}
	}()

	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return err
	}
	n := r.NumPage()
	if n < 1 {
		return errNoPages
	}
	for i := 1; i <= n && i <= pdfPagesToCheck; i++ {
		p := r.Page(i)
		if p.V.IsNull() {
			return fmt.Errorf("pdf page %d missing", i)
		}
		if _, err := p.GetPlainText(nil); err != nil {
			return fmt.Errorf("pdf page %d: %w", i, err)
		}
	}
	return nil
}

func checkImage(data []byte) error {
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return err
	}
	if cfg.Width > maxImageDimension || cfg.Height > maxImageDimension {
		return errImageTooLarge
	}
	_, _, err = image.Decode(bytes.NewReader(data))
	return err
}

func checkText(data []byte) error {
	if !utf8.Valid(data) {
		return errInvalidUTF8
	}
	lower := strings.ToLower(string(data))
	for _, p := range scriptPatterns {
		if strings.Contains(lower, p) {
			return errScriptInjected
		}
	}
	return nil
}
