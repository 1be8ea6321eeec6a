package repository

import (
	"context"
	"time"

	"gedo/internal/model"
)

// RegistroFilter narrows a record listing. Zero values do not filter.
type RegistroFilter struct {
	ObraID       string
	TipoRegistro string
	DataInicio   *time.Time
	DataFim      *time.Time
	AutorID      string
	// PalavraChave matches titulo or descricao, case-insensitively.
	PalavraChave string
	// CodigoNumero matches a substring of codigo_numero.
	CodigoNumero string
	// Ordenacao is one of the RegistroOrder* values; empty means newest first.
	Ordenacao string
}

const (
	RegistroOrderDataDesc   = "data_desc"
	RegistroOrderDataAsc    = "data_asc"
	RegistroOrderTituloAsc  = "titulo_asc"
	RegistroOrderTituloDesc = "titulo_desc"
)

// RegistroRepository defines data access for records. No business logic here.
type RegistroRepository interface {
	Create(ctx context.Context, r *model.Registro) (*model.Registro, error)
	FindByID(ctx context.Context, id string) (*model.Registro, error)
	List(ctx context.Context, f RegistroFilter, pq PageQuery) (*PageResult[model.Registro], error)
	// Update overwrites every mutable column, attachment included.
	Update(ctx context.Context, r *model.Registro) (*model.Registro, error)
	// Delete removes a record by ID. It returns nil if the row did not exist.
	Delete(ctx context.Context, id string) error
}
