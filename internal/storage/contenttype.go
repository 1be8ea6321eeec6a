package storage

import (
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

const defaultContentType = "application/octet-stream"

var extensionContentTypes = map[string]string{
	"pdf":  "application/pdf",
	"png":  "image/png",
	"jpg":  "image/jpeg",
	"jpeg": "image/jpeg",
	"gif":  "image/gif",
	"txt":  "text/plain",
	"doc":  "application/msword",
	"docx": "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	"xls":  "application/vnd.ms-excel",
	"xlsx": "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
	"csv":  "text/csv",
}

// Extension returns the lowercase extension of filename without the dot.
func Extension(filename string) string {
	return strings.ToLower(strings.TrimPrefix(filepath.Ext(filename), "."))
}

// ContentTypeForExtension maps an extension (with or without dot) to a MIME type,
// defaulting to application/octet-stream.
func ContentTypeForExtension(ext string) string {
	if ct, ok := extensionContentTypes[strings.ToLower(strings.TrimPrefix(ext, "."))]; ok {
		return ct
	}
	return defaultContentType
}

// ResolveContentType prefers the declared type and falls back to the extension map.
func ResolveContentType(declared, filename string) string {
	if declared != "" && declared != defaultContentType {
		return declared
	}
	return ContentTypeForExtension(Extension(filename))
}

// ObjectKey builds {folder}/{uuid}.{ext}, or {folder}/{uuid}_{filename} when
// the filename has no extension.
func ObjectKey(folder, filename string) string {
	id := uuid.NewString()
	var name string
	if ext := Extension(filename); ext != "" {
		name = id + "." + ext
	} else {
		name = id + "_" + filename
	}
	folder = strings.Trim(folder, "/")
	if folder == "" {
		return name
	}
	return folder + "/" + name
}
