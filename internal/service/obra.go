package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"gedo/internal/audit"
	"gedo/internal/model"
	"gedo/internal/repository"
)

// ObraInput holds the fields of a new construction site.
type ObraInput struct {
	Nome                      string
	Descricao                 string
	Codigo                    string
	Cliente                   string
	DataInicio                *time.Time
	DataTermino               *time.Time
	ResponsavelTecnico        string
	ResponsavelAdministrativo string
	Localizacao               string
	Status                    string
}

// ObraPatch changes only the non-nil fields.
type ObraPatch struct {
	Nome                      *string
	Descricao                 *string
	Codigo                    *string
	Cliente                   *string
	DataInicio                *time.Time
	DataTermino               *time.Time
	ResponsavelTecnico        *string
	ResponsavelAdministrativo *string
	Localizacao               *string
	Status                    *string
}

// ObraService manages construction sites. Standard users only see their own;
// writes require an administrator.
type ObraService interface {
	List(ctx context.Context, actor *model.User) ([]model.Obra, error)
	Get(ctx context.Context, actor *model.User, id string) (*model.Obra, error)
	Create(ctx context.Context, actor *model.User, in ObraInput) (*model.Obra, error)
	Update(ctx context.Context, actor *model.User, id string, p ObraPatch) (*model.Obra, error)
	// Delete refuses obras that still have users or records.
	Delete(ctx context.Context, actor *model.User, id string) error
}

type obraService struct {
	repo  repository.ObraRepository
	audit Auditor
	now   func() time.Time
}

func NewObraService(repo repository.ObraRepository, auditor Auditor) ObraService {
	return &obraService{
		repo:  repo,
		audit: auditor,
		now:   func() time.Time { return time.Now().UTC() },
	}
}

func (s *obraService) List(ctx context.Context, actor *model.User) ([]model.Obra, error) {
	if actor.IsAdmin() {
		return s.repo.List(ctx)
	}
	if actor.ObraID == "" {
		return []model.Obra{}, nil
	}
	o, err := s.Get(ctx, actor, actor.ObraID)
	if err != nil {
		if errors.Is(err, ErrObraNotFound) {
			return []model.Obra{}, nil
		}
		return nil, err
	}
	return []model.Obra{*o}, nil
}

func (s *obraService) Get(ctx context.Context, actor *model.User, id string) (*model.Obra, error) {
	if id == "" {
		return nil, ErrIDRequired
	}
	if !actor.IsAdmin() && id != actor.ObraID {
		return nil, ErrForbidden
	}
	o, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrObraNotFound
		}
		return nil, err
	}
	return o, nil
}

func (s *obraService) Create(ctx context.Context, actor *model.User, in ObraInput) (*model.Obra, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	now := s.now()
	o := &model.Obra{
		ID:                        uuid.NewString(),
		Nome:                      strings.TrimSpace(in.Nome),
		Descricao:                 strings.TrimSpace(in.Descricao),
		Codigo:                    strings.TrimSpace(in.Codigo),
		Cliente:                   strings.TrimSpace(in.Cliente),
		DataInicio:                in.DataInicio,
		DataTermino:               in.DataTermino,
		ResponsavelTecnico:        strings.TrimSpace(in.ResponsavelTecnico),
		ResponsavelAdministrativo: strings.TrimSpace(in.ResponsavelAdministrativo),
		Localizacao:               strings.TrimSpace(in.Localizacao),
		Status:                    model.ObraStatus(strings.TrimSpace(in.Status)),
		CreatedAt:                 now,
		UpdatedAt:                 now,
	}
	if o.Status == "" {
		o.Status = model.ObraAtiva
	}
	if err := validateObra(o); err != nil {
		return nil, err
	}
	if err := s.checkCodigo(ctx, "", o.Codigo); err != nil {
		return nil, err
	}

	stored, err := s.repo.Create(ctx, o)
	if err != nil {
		return nil, duplicateCodigo(err)
	}
	s.audit.Log(ctx, audit.ActionObraCreated, actor.ID, map[string]any{
		"obra_id": stored.ID,
		"nome":    stored.Nome,
		"codigo":  stored.Codigo,
	})
	return stored, nil
}

func (s *obraService) Update(ctx context.Context, actor *model.User, id string, p ObraPatch) (*model.Obra, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	o, err := s.Get(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	set := func(dst *string, v *string) {
		if v != nil {
			*dst = strings.TrimSpace(*v)
		}
	}
	set(&o.Nome, p.Nome)
	set(&o.Descricao, p.Descricao)
	set(&o.Codigo, p.Codigo)
	set(&o.Cliente, p.Cliente)
	set(&o.ResponsavelTecnico, p.ResponsavelTecnico)
	set(&o.ResponsavelAdministrativo, p.ResponsavelAdministrativo)
	set(&o.Localizacao, p.Localizacao)
	if p.Status != nil {
		o.Status = model.ObraStatus(strings.TrimSpace(*p.Status))
	}
	if p.DataInicio != nil {
		o.DataInicio = p.DataInicio
	}
	if p.DataTermino != nil {
		o.DataTermino = p.DataTermino
	}
	if err := validateObra(o); err != nil {
		return nil, err
	}
	if p.Codigo != nil {
		if err := s.checkCodigo(ctx, o.ID, o.Codigo); err != nil {
			return nil, err
		}
	}

	o.UpdatedAt = s.now()
	stored, err := s.repo.Update(ctx, o)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrObraNotFound
		}
		return nil, duplicateCodigo(err)
	}
	s.audit.Log(ctx, audit.ActionObraUpdated, actor.ID, map[string]any{
		"obra_id": stored.ID,
		"codigo":  stored.Codigo,
		"status":  string(stored.Status),
	})
	return stored, nil
}

func (s *obraService) Delete(ctx context.Context, actor *model.User, id string) error {
	if err := requireAdmin(actor); err != nil {
		return err
	}
	o, err := s.Get(ctx, actor, id)
	if err != nil {
		return err
	}
	usage, err := s.repo.Usage(ctx, o.ID)
	if err != nil {
		return err
	}
	if usage.Users > 0 || usage.Registros > 0 {
		return conflict(fmt.Sprintf("Obra possui %d usuários e %d registros vinculados", usage.Users, usage.Registros))
	}
	if err := s.repo.Delete(ctx, o.ID); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return ErrObraNotFound
		case errors.Is(err, repository.ErrInUse):
			return conflict("Obra possui usuários ou registros vinculados")
		}
		return err
	}
	s.audit.Log(ctx, audit.ActionObraDeleted, actor.ID, map[string]any{
		"obra_id": o.ID,
		"nome":    o.Nome,
		"codigo":  o.Codigo,
	})
	return nil
}

func validateObra(o *model.Obra) error {
	required := []struct{ value, field string }{
		{o.Nome, "nome"},
		{o.Codigo, "codigo"},
		{o.Cliente, "cliente"},
		{o.ResponsavelTecnico, "responsavel_tecnico"},
		{o.ResponsavelAdministrativo, "responsavel_administrativo"},
		{o.Localizacao, "localizacao"},
	}
	for _, r := range required {
		if r.value == "" {
			return invalid(fmt.Sprintf("Campo obrigatório: %s", r.field))
		}
	}
	if o.DataInicio == nil {
		return invalid("Campo obrigatório: data_inicio")
	}
	if o.DataTermino != nil && o.DataTermino.Before(*o.DataInicio) {
		return invalid("data_termino não pode ser anterior a data_inicio")
	}
	if !o.Status.Valid() {
		return invalid("Status inválido. Valores aceitos: ativa, suspensa, concluida")
	}
	return nil
}

func (s *obraService) checkCodigo(ctx context.Context, selfID, codigo string) error {
	existing, err := s.repo.FindByCodigo(ctx, codigo)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return err
	}
	if existing != nil && existing.ID != selfID {
		return conflict("Código da obra já existe")
	}
	return nil
}

func duplicateCodigo(err error) error {
	if errors.Is(err, repository.ErrDuplicate) {
		return conflict("Código da obra já existe")
	}
	return err
}
