package repository

import (
	"context"

	"gedo/internal/model"
)

type TipoRegistroRepository interface {
	FindByID(ctx context.Context, id string) (*model.TipoRegistro, error)
	FindByNome(ctx context.Context, nome string) (*model.TipoRegistro, error)
	// List returns the catalogue ordered by name, inactive entries only when asked.
	List(ctx context.Context, includeInactive bool) ([]model.TipoRegistro, error)
	Create(ctx context.Context, t *model.TipoRegistro) (*model.TipoRegistro, error)
	// Update renames records that used the previous name in the same transaction.
	Update(ctx context.Context, previousNome string, t *model.TipoRegistro) (*model.TipoRegistro, error)
	CountRegistros(ctx context.Context, nome string) (int, error)
	Delete(ctx context.Context, id string) error
}
