package postgres

import (
	"context"
	"database/sql"
	"time"

	"gedo/internal/repository"
)

type DashboardPostgres struct {
	db *sql.DB
}

func NewDashboardPostgres(db *sql.DB) *DashboardPostgres {
	return &DashboardPostgres{db: db}
}

var _ repository.DashboardRepository = (*DashboardPostgres)(nil)

// scoped appends the obra condition as the next placeholder. The first
// argument of every dashboard query is always bound, so the obra is $2.
func scoped(scope repository.DashboardScope, joiner, column string, args []any) (string, []any) {
	if scope.ObraID == "" {
		return "", args
	}
	return " " + joiner + " " + column + " = $2", append(args, scope.ObraID)
}

func (p *DashboardPostgres) Totals(ctx context.Context, scope repository.DashboardScope, since time.Time) (repository.RegistroTotals, error) {
	where, args := scoped(scope, "WHERE", "obra_id", []any{since})
	q := `SELECT COUNT(*),
		COUNT(*) FILTER (WHERE data_registro >= $1),
		COUNT(*) FILTER (WHERE anexo_url IS NOT NULL OR anexo_local_path IS NOT NULL),
		MIN(data_registro)
		FROM registros` + where

	var (
		t     repository.RegistroTotals
		first sql.NullTime
	)
	if err := p.db.QueryRowContext(ctx, q, args...).Scan(&t.Total, &t.Since, &t.WithAttachment, &first); err != nil {
		return repository.RegistroTotals{}, err
	}
	t.First = timePtr(first)
	return t, nil
}

func (p *DashboardPostgres) Timeline(ctx context.Context, scope repository.DashboardScope, since time.Time) ([]repository.DayCount, error) {
	where, args := scoped(scope, "AND", "obra_id", []any{since})
	q := `SELECT data_registro, COUNT(*) FROM registros WHERE data_registro >= $1` + where +
		` GROUP BY data_registro ORDER BY data_registro`
	rows, err := p.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]repository.DayCount, 0)
	for rows.Next() {
		var d repository.DayCount
		if err := rows.Scan(&d.Day, &d.Count); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

func (p *DashboardPostgres) RecentActivity(ctx context.Context, scope repository.DashboardScope, limit int) ([]repository.Activity, error) {
	where, args := scoped(scope, "WHERE", "r.obra_id", []any{limit})
	q := `SELECT r.id, r.titulo, r.descricao, r.tipo_registro, r.data_registro, o.nome
		FROM registros r JOIN obras o ON o.id = r.obra_id` + where +
		` ORDER BY r.data_registro DESC, r.created_at DESC LIMIT $1`
	rows, err := p.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]repository.Activity, 0)
	for rows.Next() {
		var a repository.Activity
		if err := rows.Scan(&a.ID, &a.Titulo, &a.Descricao, &a.TipoRegistro, &a.DataRegistro, &a.ObraNome); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (p *DashboardPostgres) TopTipos(ctx context.Context, scope repository.DashboardScope, limit int) ([]repository.TipoCount, error) {
	where, args := scoped(scope, "WHERE", "obra_id", []any{limit})
	q := `SELECT tipo_registro, COUNT(*) AS total FROM registros` + where +
		` GROUP BY tipo_registro ORDER BY total DESC, tipo_registro LIMIT $1`
	rows, err := p.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]repository.TipoCount, 0)
	for rows.Next() {
		var c repository.TipoCount
		if err := rows.Scan(&c.Nome, &c.Total); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}
