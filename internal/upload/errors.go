package upload

import "fmt"

// Rejection codes returned to clients alongside the reason.
const (
	CodeFilenameRequired    = "FILENAME_REQUIRED"
	CodeExtensionNotAllowed = "EXTENSION_NOT_ALLOWED"
	CodeFileTooLarge        = "FILE_TOO_LARGE"
	CodeFileEmpty           = "FILE_EMPTY"
	CodeTypeNotAllowed      = "TYPE_NOT_ALLOWED"
	CodeContentInvalid      = "CONTENT_INVALID"
)

// Reason strings are user facing.
const (
	ReasonFilenameRequired    = "nome do arquivo é obrigatório"
	ReasonExtensionNotAllowed = "extensão de arquivo não permitida"
	ReasonFileEmpty           = "arquivo vazio"
	ReasonTypeNotAllowed      = "tipo de arquivo não permitido"
	ReasonContentInvalid      = "conteúdo do arquivo inválido ou corrompido"
)

// RejectionError is a client error: the upload failed validation.
type RejectionError struct {
	Code   string
	Reason string
}

func (e *RejectionError) Error() string {
	return e.Reason
}

func reject(code, reason string) *RejectionError {
	return &RejectionError{Code: code, Reason: reason}
}

func tooLarge(limit int64) *RejectionError {
	return reject(CodeFileTooLarge, fmt.Sprintf("arquivo muito grande (máximo %dMB)", limit/(1024*1024)))
}
