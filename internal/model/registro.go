package model

import "time"

// Attachment is the file stored with a record. Exactly one of StorageURL and
// LocalPath is set. Storage locations are never serialized; clients download
// through the API.
type Attachment struct {
	StorageURL       string `json:"-"`
	StoragePathname  string `json:"-"`
	LocalPath        string `json:"-"`
	OriginalFilename string `json:"original_filename"`
	Extension        string `json:"extension"`
	SizeBytes        int64  `json:"size_bytes"`
	ContentType      string `json:"content_type"`
	FileHash         string `json:"file_hash"`
}

// Registro is a typed record of an obra, optionally carrying one attachment.
type Registro struct {
	ID           string      `json:"id"`
	Titulo       string      `json:"titulo"`
	TipoRegistro string      `json:"tipo_registro"`
	Descricao    string      `json:"descricao"`
	CodigoNumero string      `json:"codigo_numero,omitempty"`
	DataRegistro time.Time   `json:"data_registro"`
	AutorID      string      `json:"autor_id"`
	ObraID       string      `json:"obra_id"`
	Attachment   *Attachment `json:"anexo,omitempty"`
	CreatedAt    time.Time   `json:"created_at"`
	UpdatedAt    time.Time   `json:"updated_at"`
}
