package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"gedo/internal/model"
	"gedo/internal/repository"
)

type TipoRegistroPostgres struct {
	db *sql.DB
}

func NewTipoRegistroPostgres(db *sql.DB) *TipoRegistroPostgres {
	return &TipoRegistroPostgres{db: db}
}

var _ repository.TipoRegistroRepository = (*TipoRegistroPostgres)(nil)

const tipoColumns = `id, nome, descricao, ativo, created_at, updated_at`

func scanTipo(s scanner) (*model.TipoRegistro, error) {
	var t model.TipoRegistro
	if err := s.Scan(&t.ID, &t.Nome, &t.Descricao, &t.Ativo, &t.CreatedAt, &t.UpdatedAt); err != nil {
		return nil, err
	}
	return &t, nil
}

func (p *TipoRegistroPostgres) FindByID(ctx context.Context, id string) (*model.TipoRegistro, error) {
	return scanTipo(p.db.QueryRowContext(ctx, `SELECT `+tipoColumns+` FROM tipos_registro WHERE id = $1`, id))
}

func (p *TipoRegistroPostgres) FindByNome(ctx context.Context, nome string) (*model.TipoRegistro, error) {
	return scanTipo(p.db.QueryRowContext(ctx, `SELECT `+tipoColumns+` FROM tipos_registro WHERE nome = $1`, nome))
}

func (p *TipoRegistroPostgres) List(ctx context.Context, includeInactive bool) ([]model.TipoRegistro, error) {
	q := `SELECT ` + tipoColumns + ` FROM tipos_registro`
	if !includeInactive {
		q += ` WHERE ativo`
	}
	rows, err := p.db.QueryContext(ctx, q+` ORDER BY nome`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]model.TipoRegistro, 0)
	for rows.Next() {
		t, err := scanTipo(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *t)
	}
	return out, rows.Err()
}

func (p *TipoRegistroPostgres) Create(ctx context.Context, t *model.TipoRegistro) (*model.TipoRegistro, error) {
	q := `INSERT INTO tipos_registro (id, nome, descricao, ativo, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6) RETURNING ` + tipoColumns
	out, err := scanTipo(p.db.QueryRowContext(ctx, q, t.ID, t.Nome, t.Descricao, t.Ativo, t.CreatedAt, t.UpdatedAt))
	if err != nil {
		return nil, translateWrite(err)
	}
	return out, nil
}

// Update writes t and, when the name changed, moves the records that carried
// previousNome to the new name.
func (p *TipoRegistroPostgres) Update(ctx context.Context, previousNome string, t *model.TipoRegistro) (out *model.TipoRegistro, err error) {
	tx, err := p.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				err = fmt.Errorf("%w; rollback failed: %v", err, rbErr)
			}
		}
	}()

	q := `UPDATE tipos_registro SET nome = $2, descricao = $3, ativo = $4, updated_at = $5
		WHERE id = $1 RETURNING ` + tipoColumns
	out, err = scanTipo(tx.QueryRowContext(ctx, q, t.ID, t.Nome, t.Descricao, t.Ativo, t.UpdatedAt))
	if err != nil {
		return nil, translateWrite(err)
	}
	if previousNome != "" && previousNome != t.Nome {
		if _, err = tx.ExecContext(ctx, `UPDATE registros SET tipo_registro = $2 WHERE tipo_registro = $1`, previousNome, t.Nome); err != nil {
			return nil, err
		}
	}
	if err = tx.Commit(); err != nil {
		return nil, err
	}
	return out, nil
}

func (p *TipoRegistroPostgres) CountRegistros(ctx context.Context, nome string) (int, error) {
	var n int
	err := p.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM registros WHERE tipo_registro = $1`, nome).Scan(&n)
	return n, err
}

// Delete returns sql.ErrNoRows when the entry does not exist.
func (p *TipoRegistroPostgres) Delete(ctx context.Context, id string) error {
	res, err := p.db.ExecContext(ctx, `DELETE FROM tipos_registro WHERE id = $1`, id)
	return affectedOne(res, err)
}
