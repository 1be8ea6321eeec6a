package repository

import (
	"context"

	"gedo/internal/model"
)

// ObraUsage counts the rows that reference an obra.
type ObraUsage struct {
	Users     int
	Registros int
}

type ObraRepository interface {
	FindByID(ctx context.Context, id string) (*model.Obra, error)
	FindByCodigo(ctx context.Context, codigo string) (*model.Obra, error)
	List(ctx context.Context) ([]model.Obra, error)
	Create(ctx context.Context, o *model.Obra) (*model.Obra, error)
	Update(ctx context.Context, o *model.Obra) (*model.Obra, error)
	Usage(ctx context.Context, id string) (ObraUsage, error)
	Delete(ctx context.Context, id string) error
}
