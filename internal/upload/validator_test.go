package upload

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetectType(t *testing.T) {
	tests := []struct {
		name   string
		data   []byte
		ext    string
		want   string
		wantOK bool
	}{
		{"pdf", buildPDF(t, 1), "pdf", typePDF, true},
		{"png", buildPNG(t, 2, 2), "png", typePNG, true},
		{"gif", []byte("GIF89a\x01\x00\x01\x00\x00\x00\x00;"), "gif", typeGIF, true},
		{"text", []byte("relatório diário da obra\nsem ocorrências\n"), "txt", typeText, true},
		{"exe claiming pdf", fakeExe(), "pdf", "", false},
		{"zip claiming docx", buildZip(t, "a.txt"), "docx", typeDOCX, true},
		{"zip claiming xlsx", buildZip(t, "a.txt"), "XLSX", typeXLSX, true},
		{"zip claiming pdf", buildZip(t, "a.txt"), "pdf", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := DetectType(tt.data, tt.ext)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestDetectType_OnlyLooksAtHead(t *testing.T) {
	// text for the first 1500 bytes, binary afterwards
	data := append([]byte(strings.Repeat("linha de texto\n", 100)), make([]byte, 100)...)
	got, ok := DetectType(data, "txt")
	assert.True(t, ok)
	assert.Equal(t, typeText, got)
}

func TestCheckContent_PDF(t *testing.T) {
	assert.NoError(t, CheckContent(buildPDF(t, 2), typePDF))
	assert.NoError(t, CheckContent(buildPDF(t, 5), typePDF))

	assert.Error(t, CheckContent([]byte("%PDF-1.4\nnot really a pdf"), typePDF))

	valid := buildPDF(t, 1)
	assert.Error(t, CheckContent(valid[:len(valid)/2], typePDF))
}

func TestCheckContent_Image(t *testing.T) {
	assert.NoError(t, CheckContent(buildPNG(t, 4, 4), typePNG))

	assert.ErrorIs(t, CheckContent(buildPNG(t, 10001, 1), typePNG), errImageTooLarge)

	valid := buildPNG(t, 64, 64)
	assert.Error(t, CheckContent(valid[:len(valid)-20], typePNG))
}

func TestCheckContent_Text(t *testing.T) {
	assert.NoError(t, CheckContent([]byte("medição concluída"), typeText))

	for _, s := range []string{
		"ok <script>alert(1)</script>",
		"<?php echo 1; ?>",
		"<% eval %>",
		"link JavaScript:alert(1)",
		"VBScript:msgbox",
		"<SCRIPT src=x>",
	} {
		assert.ErrorIs(t, CheckContent([]byte(s), typeText), errScriptInjected, s)
	}

	assert.ErrorIs(t, CheckContent([]byte{0xff, 0xfe, 0x41}, typeText), errInvalidUTF8)
}

func TestCheckContent_PassThrough(t *testing.T) {
	assert.NoError(t, CheckContent(buildZip(t, "a.txt"), typeDOCX))
}
