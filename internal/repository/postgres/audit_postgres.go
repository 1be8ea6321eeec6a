package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"gedo/internal/model"
	"gedo/internal/repository"
)

type AuditPostgres struct {
	db *sql.DB
}

func NewAuditPostgres(db *sql.DB) *AuditPostgres {
	return &AuditPostgres{db: db}
}

var _ repository.AuditRepository = (*AuditPostgres)(nil)

// Insert stores the entry with its details as jsonb.
func (p *AuditPostgres) Insert(ctx context.Context, log *model.AuditLog) error {
	d := log.Details
	if d == nil {
		d = map[string]any{}
	}
	details, err := json.Marshal(d)
	if err != nil {
		return fmt.Errorf("encode audit details: %w", err)
	}
	const q = `
		INSERT INTO audit_logs (id, action, user_id, ip_address, user_agent, details, created_at, request_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err = p.db.ExecContext(ctx, q,
		log.ID,
		log.Action,
		nullString(log.UserID),
		log.IPAddress,
		log.UserAgent,
		string(details),
		log.CreatedAt,
		nullString(log.RequestID),
	)
	return err
}
