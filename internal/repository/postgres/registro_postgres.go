package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"gedo/internal/model"
	"gedo/internal/repository"
)

// RegistroPostgres is a PostgreSQL implementation of repository.RegistroRepository.
// It uses database/sql with parameterized queries and contains no business logic.
type RegistroPostgres struct {
	db *sql.DB
}

func NewRegistroPostgres(db *sql.DB) *RegistroPostgres {
	return &RegistroPostgres{db: db}
}

var _ repository.RegistroRepository = (*RegistroPostgres)(nil)

const registroColumns = `id, titulo, tipo_registro, descricao, codigo_numero, data_registro, autor_id, obra_id,
		anexo_url, anexo_pathname, anexo_local_path, anexo_nome_original, anexo_extensao,
		anexo_tamanho, anexo_content_type, anexo_hash, created_at, updated_at`

// attachmentArgs returns the eight attachment columns, all NULL without one.
func attachmentArgs(a *model.Attachment) []any {
	if a == nil {
		return []any{
			sql.NullString{}, sql.NullString{}, sql.NullString{}, sql.NullString{},
			sql.NullString{}, sql.NullInt64{}, sql.NullString{}, sql.NullString{},
		}
	}
	return []any{
		nullString(a.StorageURL),
		nullString(a.StoragePathname),
		nullString(a.LocalPath),
		nullString(a.OriginalFilename),
		nullString(a.Extension),
		nullInt64(a.SizeBytes, true),
		nullString(a.ContentType),
		nullString(a.FileHash),
	}
}

func scanRegistro(s scanner) (*model.Registro, error) {
	var (
		r                                                     model.Registro
		codigo, url, pathname, local, nome, ext, ctype, hash sql.NullString
		size                                                  sql.NullInt64
	)
	if err := s.Scan(
		&r.ID,
		&r.Titulo,
		&r.TipoRegistro,
		&r.Descricao,
		&codigo,
		&r.DataRegistro,
		&r.AutorID,
		&r.ObraID,
		&url,
		&pathname,
		&local,
		&nome,
		&ext,
		&size,
		&ctype,
		&hash,
		&r.CreatedAt,
		&r.UpdatedAt,
	); err != nil {
		return nil, err
	}
	r.CodigoNumero = codigo.String
	if url.Valid || local.Valid {
		r.Attachment = &model.Attachment{
			StorageURL:       url.String,
			StoragePathname:  pathname.String,
			LocalPath:        local.String,
			OriginalFilename: nome.String,
			Extension:        ext.String,
			SizeBytes:        size.Int64,
			ContentType:      ctype.String,
			FileHash:         hash.String,
		}
	}
	return &r, nil
}

// Create inserts a new record row and returns the stored record.
func (p *RegistroPostgres) Create(ctx context.Context, r *model.Registro) (*model.Registro, error) {
	q := `
		INSERT INTO registros (` + registroColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)
		RETURNING ` + registroColumns
	args := []any{r.ID, r.Titulo, r.TipoRegistro, r.Descricao, nullString(r.CodigoNumero), r.DataRegistro, r.AutorID, r.ObraID}
	args = append(args, attachmentArgs(r.Attachment)...)
	args = append(args, r.CreatedAt, r.UpdatedAt)

	return scanRegistro(p.db.QueryRowContext(ctx, q, args...))
}

// FindByID fetches a single record by its ID.
func (p *RegistroPostgres) FindByID(ctx context.Context, id string) (*model.Registro, error) {
	q := `SELECT ` + registroColumns + ` FROM registros WHERE id = $1`
	return scanRegistro(p.db.QueryRowContext(ctx, q, id))
}

// likePattern escapes LIKE wildcards in s and wraps it for a substring match.
func likePattern(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + r.Replace(s) + "%"
}

var registroOrders = map[string]string{
	repository.RegistroOrderDataDesc:   "data_registro DESC, created_at DESC, id DESC",
	repository.RegistroOrderDataAsc:    "data_registro ASC, created_at ASC, id ASC",
	repository.RegistroOrderTituloAsc:  "titulo ASC, id ASC",
	repository.RegistroOrderTituloDesc: "titulo DESC, id DESC",
}

func registroOrder(o string) string {
	if clause, ok := registroOrders[o]; ok {
		return clause
	}
	return registroOrders[repository.RegistroOrderDataDesc]
}

func registroWhere(f repository.RegistroFilter) (string, []any) {
	var conds []string
	var args []any
	add := func(cond string, v any) {
		args = append(args, v)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}
	if f.ObraID != "" {
		add("obra_id = $%d", f.ObraID)
	}
	if f.TipoRegistro != "" {
		add("tipo_registro = $%d", f.TipoRegistro)
	}
	if f.DataInicio != nil {
		add("data_registro >= $%d", *f.DataInicio)
	}
	if f.DataFim != nil {
		add("data_registro <= $%d", *f.DataFim)
	}
	if f.AutorID != "" {
		add("autor_id = $%d", f.AutorID)
	}
	if f.PalavraChave != "" {
		add("(titulo ILIKE $%[1]d OR descricao ILIKE $%[1]d)", likePattern(f.PalavraChave))
	}
	if f.CodigoNumero != "" {
		add("codigo_numero ILIKE $%d", likePattern(f.CodigoNumero))
	}
	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

// List returns records matching f using LIMIT/OFFSET pagination and a total count.
func (p *RegistroPostgres) List(ctx context.Context, f repository.RegistroFilter, pq repository.PageQuery) (*repository.PageResult[model.Registro], error) {
	where, args := registroWhere(f)

	var total int
	if err := p.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM registros`+where, args...).Scan(&total); err != nil {
		return nil, err
	}

	q := `SELECT ` + registroColumns + ` FROM registros` + where +
		fmt.Sprintf(` ORDER BY %s LIMIT $%d OFFSET $%d`, registroOrder(f.Ordenacao), len(args)+1, len(args)+2)
	rows, err := p.db.QueryContext(ctx, q, append(args, pq.Limit, pq.Offset)...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.Registro, 0)
	for rows.Next() {
		r, err := scanRegistro(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &repository.PageResult[model.Registro]{Items: items, Total: total}, nil
}

// Update overwrites the mutable columns and returns the stored record.
func (p *RegistroPostgres) Update(ctx context.Context, r *model.Registro) (*model.Registro, error) {
	q := `
		UPDATE registros SET
			titulo = $2, tipo_registro = $3, descricao = $4, codigo_numero = $5, data_registro = $6,
			anexo_url = $7, anexo_pathname = $8, anexo_local_path = $9, anexo_nome_original = $10,
			anexo_extensao = $11, anexo_tamanho = $12, anexo_content_type = $13, anexo_hash = $14,
			updated_at = $15
		WHERE id = $1
		RETURNING ` + registroColumns
	args := []any{r.ID, r.Titulo, r.TipoRegistro, r.Descricao, nullString(r.CodigoNumero), r.DataRegistro}
	args = append(args, attachmentArgs(r.Attachment)...)
	args = append(args, r.UpdatedAt)

	return scanRegistro(p.db.QueryRowContext(ctx, q, args...))
}

// Delete removes a record by ID. It does not return an error if the row does not exist.
func (p *RegistroPostgres) Delete(ctx context.Context, id string) error {
	_, err := p.db.ExecContext(ctx, `DELETE FROM registros WHERE id = $1`, id)
	return err
}
