package postgres

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gedo/internal/model"
	"gedo/internal/repository"
)

var tipoCols = []string{"id", "nome", "descricao", "ativo", "created_at", "updated_at"}

func TestTipoRegistroPostgres_List(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewTipoRegistroPostgres(db)
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`SELECT (.+) FROM tipos_registro WHERE ativo ORDER BY nome`).
		WillReturnRows(sqlmock.NewRows(tipoCols).AddRow("t1", "Diário de obra", "", true, now, now))
	list, err := repo.List(context.Background(), false)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Diário de obra", list[0].Nome)

	mock.ExpectQuery(`SELECT (.+) FROM tipos_registro ORDER BY nome`).
		WillReturnRows(sqlmock.NewRows(tipoCols).
			AddRow("t1", "Diário de obra", "", true, now, now).
			AddRow("t2", "Ocorrência", "", false, now, now))
	list, err = repo.List(context.Background(), true)
	require.NoError(t, err)
	assert.Len(t, list, 2)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTipoRegistroPostgres_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	in := &model.TipoRegistro{ID: "t1", Nome: "Ocorrência", Ativo: true, CreatedAt: now, UpdatedAt: now}

	mock.ExpectQuery("INSERT INTO tipos_registro").
		WithArgs("t1", "Ocorrência", "", true, now, now).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "tipos_registro_nome_key"})

	_, err = NewTipoRegistroPostgres(db).Create(context.Background(), in)
	assert.ErrorIs(t, err, repository.ErrDuplicate)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTipoRegistroPostgres_Update(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	in := &model.TipoRegistro{ID: "t1", Nome: "Ocorrência grave", Ativo: true, CreatedAt: now, UpdatedAt: now}
	row := func() *sqlmock.Rows {
		return sqlmock.NewRows(tipoCols).AddRow("t1", "Ocorrência grave", "", true, now, now)
	}

	t.Run("rename moves records in the same transaction", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectBegin()
		mock.ExpectQuery("UPDATE tipos_registro SET").
			WithArgs("t1", "Ocorrência grave", "", true, now).
			WillReturnRows(row())
		mock.ExpectExec(`UPDATE registros SET tipo_registro = \$2 WHERE tipo_registro = \$1`).
			WithArgs("Ocorrência", "Ocorrência grave").
			WillReturnResult(sqlmock.NewResult(0, 3))
		mock.ExpectCommit()

		out, err := NewTipoRegistroPostgres(db).Update(context.Background(), "Ocorrência", in)
		require.NoError(t, err)
		assert.Equal(t, "Ocorrência grave", out.Nome)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("same name skips the record update", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectBegin()
		mock.ExpectQuery("UPDATE tipos_registro SET").WillReturnRows(row())
		mock.ExpectCommit()

		_, err = NewTipoRegistroPostgres(db).Update(context.Background(), "Ocorrência grave", in)
		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("record update failure rolls back", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectBegin()
		mock.ExpectQuery("UPDATE tipos_registro SET").WillReturnRows(row())
		mock.ExpectExec("UPDATE registros SET tipo_registro").WillReturnError(errors.New("lock timeout"))
		mock.ExpectRollback()

		_, err = NewTipoRegistroPostgres(db).Update(context.Background(), "Ocorrência", in)
		assert.EqualError(t, err, "lock timeout")
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing row rolls back", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectBegin()
		mock.ExpectQuery("UPDATE tipos_registro SET").WillReturnError(sql.ErrNoRows)
		mock.ExpectRollback()

		_, err = NewTipoRegistroPostgres(db).Update(context.Background(), "Ocorrência", in)
		assert.ErrorIs(t, err, sql.ErrNoRows)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestTipoRegistroPostgres_CountAndDelete(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewTipoRegistroPostgres(db)

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM registros WHERE tipo_registro = \$1`).
		WithArgs("Ocorrência").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(4))
	n, err := repo.CountRegistros(context.Background(), "Ocorrência")
	require.NoError(t, err)
	assert.Equal(t, 4, n)

	mock.ExpectExec(`DELETE FROM tipos_registro WHERE id = \$1`).WithArgs("t9").
		WillReturnResult(sqlmock.NewResult(0, 0))
	assert.ErrorIs(t, repo.Delete(context.Background(), "t9"), sql.ErrNoRows)

	assert.NoError(t, mock.ExpectationsWereMet())
}
