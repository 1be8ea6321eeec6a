package postgres

import (
	"context"
	"database/sql"

	"gedo/internal/model"
	"gedo/internal/repository"
)

type ObraPostgres struct {
	db *sql.DB
}

func NewObraPostgres(db *sql.DB) *ObraPostgres {
	return &ObraPostgres{db: db}
}

var _ repository.ObraRepository = (*ObraPostgres)(nil)

const obraColumns = `id, nome, descricao, codigo, cliente, data_inicio, data_termino,
		responsavel_tecnico, responsavel_administrativo, localizacao, status, created_at, updated_at`

func scanObra(s scanner) (*model.Obra, error) {
	var (
		o               model.Obra
		status          string
		inicio, termino sql.NullTime
	)
	if err := s.Scan(
		&o.ID,
		&o.Nome,
		&o.Descricao,
		&o.Codigo,
		&o.Cliente,
		&inicio,
		&termino,
		&o.ResponsavelTecnico,
		&o.ResponsavelAdministrativo,
		&o.Localizacao,
		&status,
		&o.CreatedAt,
		&o.UpdatedAt,
	); err != nil {
		return nil, err
	}
	o.Status = model.ObraStatus(status)
	o.DataInicio = timePtr(inicio)
	o.DataTermino = timePtr(termino)
	return &o, nil
}

func (p *ObraPostgres) FindByID(ctx context.Context, id string) (*model.Obra, error) {
	return scanObra(p.db.QueryRowContext(ctx, `SELECT `+obraColumns+` FROM obras WHERE id = $1`, id))
}

func (p *ObraPostgres) FindByCodigo(ctx context.Context, codigo string) (*model.Obra, error) {
	return scanObra(p.db.QueryRowContext(ctx, `SELECT `+obraColumns+` FROM obras WHERE codigo = $1`, codigo))
}

func (p *ObraPostgres) List(ctx context.Context) ([]model.Obra, error) {
	rows, err := p.db.QueryContext(ctx, `SELECT `+obraColumns+` FROM obras ORDER BY nome, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]model.Obra, 0)
	for rows.Next() {
		o, err := scanObra(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *o)
	}
	return out, rows.Err()
}

func obraArgs(o *model.Obra) []any {
	return []any{
		o.ID, o.Nome, o.Descricao, o.Codigo, o.Cliente, nullTime(o.DataInicio), nullTime(o.DataTermino),
		o.ResponsavelTecnico, o.ResponsavelAdministrativo, o.Localizacao, string(o.Status),
	}
}

// Create inserts o. A taken codigo comes back as repository.ErrDuplicate.
func (p *ObraPostgres) Create(ctx context.Context, o *model.Obra) (*model.Obra, error) {
	q := `INSERT INTO obras (id, nome, descricao, codigo, cliente, data_inicio, data_termino,
		responsavel_tecnico, responsavel_administrativo, localizacao, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING ` + obraColumns
	out, err := scanObra(p.db.QueryRowContext(ctx, q, append(obraArgs(o), o.CreatedAt, o.UpdatedAt)...))
	if err != nil {
		return nil, translateWrite(err)
	}
	return out, nil
}

func (p *ObraPostgres) Update(ctx context.Context, o *model.Obra) (*model.Obra, error) {
	q := `UPDATE obras SET nome = $2, descricao = $3, codigo = $4, cliente = $5, data_inicio = $6,
		data_termino = $7, responsavel_tecnico = $8, responsavel_administrativo = $9, localizacao = $10,
		status = $11, updated_at = $12
		WHERE id = $1 RETURNING ` + obraColumns
	out, err := scanObra(p.db.QueryRowContext(ctx, q, append(obraArgs(o), o.UpdatedAt)...))
	if err != nil {
		return nil, translateWrite(err)
	}
	return out, nil
}

// Usage counts the users and records bound to the obra.
func (p *ObraPostgres) Usage(ctx context.Context, id string) (repository.ObraUsage, error) {
	var u repository.ObraUsage
	q := `SELECT (SELECT COUNT(*) FROM users WHERE obra_id = $1), (SELECT COUNT(*) FROM registros WHERE obra_id = $1)`
	err := p.db.QueryRowContext(ctx, q, id).Scan(&u.Users, &u.Registros)
	return u, err
}

// Delete returns sql.ErrNoRows when the obra does not exist.
func (p *ObraPostgres) Delete(ctx context.Context, id string) error {
	res, err := p.db.ExecContext(ctx, `DELETE FROM obras WHERE id = $1`, id)
	if err != nil {
		return translateDelete(err)
	}
	return affectedOne(res, nil)
}
