package model

import "time"

// TipoRegistro is an entry of the record type catalogue. Records reference it
// by name.
type TipoRegistro struct {
	ID        string    `json:"id"`
	Nome      string    `json:"nome"`
	Descricao string    `json:"descricao"`
	Ativo     bool      `json:"ativo"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
