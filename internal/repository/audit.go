package repository

import (
	"context"

	"gedo/internal/model"
)

// AuditRepository appends audit entries. Entries are never updated.
type AuditRepository interface {
	Insert(ctx context.Context, log *model.AuditLog) error
}
