package service

import (
	"io"
	"strings"

	"gedo/internal/model"
	"gedo/internal/storage"
)

// Download is an attachment ready to stream to the client.
type Download struct {
	Body        io.ReadCloser
	Filename    string
	ContentType string
	Size        int64
}

// DownloadFilename returns the name sent to the client. It always ends with
// the stored extension, even when the stored name lacks or contradicts it.
func DownloadFilename(att *model.Attachment) string {
	name := att.OriginalFilename
	if name == "" {
		name = "anexo"
	}
	ext := strings.ToLower(strings.TrimPrefix(att.Extension, "."))
	if ext != "" && storage.Extension(name) != ext {
		name += "." + ext
	}
	return name
}

// DownloadContentType resolves the type from the stored extension, ignoring
// whatever the backend reports.
func DownloadContentType(att *model.Attachment) string {
	return storage.ContentTypeForExtension(att.Extension)
}

func attachmentLocation(att *model.Attachment) storage.Location {
	if att == nil {
		return storage.Location{}
	}
	return storage.Location{URL: att.StorageURL, Pathname: att.StoragePathname, LocalPath: att.LocalPath}
}
