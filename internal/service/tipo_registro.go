package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"gedo/internal/audit"
	"gedo/internal/model"
	"gedo/internal/repository"
)

const maxTipoNomeLength = 100

// TipoRegistroPatch changes only the non-nil fields.
type TipoRegistroPatch struct {
	Nome      *string
	Descricao *string
	Ativo     *bool
}

// TipoRegistroService manages the record type catalogue. Everyone reads the
// active entries; changes require an administrator.
type TipoRegistroService interface {
	List(ctx context.Context) ([]model.TipoRegistro, error)
	ListAll(ctx context.Context, actor *model.User) ([]model.TipoRegistro, error)
	Get(ctx context.Context, id string) (*model.TipoRegistro, error)
	Create(ctx context.Context, actor *model.User, nome, descricao string) (*model.TipoRegistro, error)
	// Update renames existing records along with the catalogue entry.
	Update(ctx context.Context, actor *model.User, id string, p TipoRegistroPatch) (*model.TipoRegistro, error)
	// Delete refuses types still used by records.
	Delete(ctx context.Context, actor *model.User, id string) error
}

type tipoRegistroService struct {
	repo  repository.TipoRegistroRepository
	audit Auditor
	now   func() time.Time
}

func NewTipoRegistroService(repo repository.TipoRegistroRepository, auditor Auditor) TipoRegistroService {
	return &tipoRegistroService{
		repo:  repo,
		audit: auditor,
		now:   func() time.Time { return time.Now().UTC() },
	}
}

func (s *tipoRegistroService) List(ctx context.Context) ([]model.TipoRegistro, error) {
	return s.repo.List(ctx, false)
}

func (s *tipoRegistroService) ListAll(ctx context.Context, actor *model.User) ([]model.TipoRegistro, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	return s.repo.List(ctx, true)
}

func (s *tipoRegistroService) Get(ctx context.Context, id string) (*model.TipoRegistro, error) {
	if id == "" {
		return nil, ErrIDRequired
	}
	t, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTipoNotFound
		}
		return nil, err
	}
	return t, nil
}

func normalizeTipoNome(nome string) (string, error) {
	nome = strings.TrimSpace(nome)
	if nome == "" {
		return "", invalid("Nome do tipo de registro é obrigatório")
	}
	if utf8.RuneCountInString(nome) > maxTipoNomeLength {
		return "", invalid(fmt.Sprintf("Nome muito longo (máximo %d caracteres)", maxTipoNomeLength))
	}
	return nome, nil
}

func (s *tipoRegistroService) checkNome(ctx context.Context, selfID, nome string) error {
	existing, err := s.repo.FindByNome(ctx, nome)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return err
	}
	if existing != nil && existing.ID != selfID {
		return conflict("Já existe um tipo de registro com este nome")
	}
	return nil
}

func duplicateTipo(err error) error {
	if errors.Is(err, repository.ErrDuplicate) {
		return conflict("Já existe um tipo de registro com este nome")
	}
	return err
}

func (s *tipoRegistroService) Create(ctx context.Context, actor *model.User, nome, descricao string) (*model.TipoRegistro, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	nome, err := normalizeTipoNome(nome)
	if err != nil {
		return nil, err
	}
	if err := s.checkNome(ctx, "", nome); err != nil {
		return nil, err
	}
	now := s.now()
	stored, err := s.repo.Create(ctx, &model.TipoRegistro{
		ID:        uuid.NewString(),
		Nome:      nome,
		Descricao: strings.TrimSpace(descricao),
		Ativo:     true,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		return nil, duplicateTipo(err)
	}
	s.audit.Log(ctx, audit.ActionTipoRegistroCreated, actor.ID, map[string]any{
		"tipo_id": stored.ID,
		"nome":    stored.Nome,
	})
	return stored, nil
}

func (s *tipoRegistroService) Update(ctx context.Context, actor *model.User, id string, p TipoRegistroPatch) (*model.TipoRegistro, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	t, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	previous := t.Nome
	if p.Nome != nil {
		nome, err := normalizeTipoNome(*p.Nome)
		if err != nil {
			return nil, err
		}
		if nome != previous {
			if err := s.checkNome(ctx, t.ID, nome); err != nil {
				return nil, err
			}
		}
		t.Nome = nome
	}
	if p.Descricao != nil {
		t.Descricao = strings.TrimSpace(*p.Descricao)
	}
	if p.Ativo != nil {
		t.Ativo = *p.Ativo
	}
	t.UpdatedAt = s.now()

	stored, err := s.repo.Update(ctx, previous, t)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTipoNotFound
		}
		return nil, duplicateTipo(err)
	}
	details := map[string]any{"tipo_id": stored.ID, "nome": stored.Nome, "ativo": stored.Ativo}
	if previous != stored.Nome {
		details["nome_anterior"] = previous
	}
	s.audit.Log(ctx, audit.ActionTipoRegistroUpdated, actor.ID, details)
	return stored, nil
}

func (s *tipoRegistroService) Delete(ctx context.Context, actor *model.User, id string) error {
	if err := requireAdmin(actor); err != nil {
		return err
	}
	t, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	n, err := s.repo.CountRegistros(ctx, t.Nome)
	if err != nil {
		return err
	}
	if n > 0 {
		return conflict(fmt.Sprintf("Tipo de registro em uso por %d registros; desative-o em vez de deletar", n))
	}
	if err := s.repo.Delete(ctx, t.ID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrTipoNotFound
		}
		return err
	}
	s.audit.Log(ctx, audit.ActionTipoRegistroDeleted, actor.ID, map[string]any{
		"tipo_id": t.ID,
		"nome":    t.Nome,
	})
	return nil
}
