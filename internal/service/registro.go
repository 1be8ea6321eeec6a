package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"gedo/internal/audit"
	"gedo/internal/model"
	"gedo/internal/repository"
	"gedo/internal/storage"
	"gedo/internal/upload"
)

const (
	defaultPerPage = 20
	maxPerPage     = 100
)

// Uploader validates and stores an attachment. *upload.Pipeline implements it.
type Uploader interface {
	Save(ctx context.Context, f upload.File) (*model.Attachment, error)
}

// Auditor records security events. *audit.Logger implements it.
type Auditor interface {
	Log(ctx context.Context, action, userID string, details map[string]any) *audit.Entry
}

type CreateRegistroInput struct {
	Titulo       string
	TipoRegistro string
	Descricao    string
	CodigoNumero string
	DataRegistro time.Time
	ObraID       string
	Anexo        *upload.File
}

// UpdateRegistroInput changes only the non-nil fields.
type UpdateRegistroInput struct {
	Titulo       *string
	TipoRegistro *string
	Descricao    *string
	CodigoNumero *string
	DataRegistro *time.Time
	Anexo        *upload.File
}

type RegistroListQuery struct {
	ObraID       string
	TipoRegistro string
	DataInicio   *time.Time
	DataFim      *time.Time
	AutorID      string
	PalavraChave string
	CodigoNumero string
	// Ordenacao is one of the repository.RegistroOrder* values.
	Ordenacao string
	Page      int
	PerPage   int
}

// RegistroListResult is the service-level DTO for paginated records.
type RegistroListResult struct {
	Items   []model.Registro `json:"data"`
	Total   int              `json:"total"`
	Page    int              `json:"page"`
	PerPage int              `json:"per_page"`
	Pages   int              `json:"pages"`
}

// RegistroService defines the record use cases. Standard users only reach
// records of their own obra; only the author or an admin may change one.
type RegistroService interface {
	// Create stores the attachment first and removes it again if the row cannot be saved.
	Create(ctx context.Context, actor *model.User, in CreateRegistroInput) (*model.Registro, error)
	Get(ctx context.Context, actor *model.User, id string) (*model.Registro, error)
	List(ctx context.Context, actor *model.User, q RegistroListQuery) (*RegistroListResult, error)
	// Update replaces the attachment when a new one is given. The previous
	// object is deleted only after the row points at the new one.
	Update(ctx context.Context, actor *model.User, id string, in UpdateRegistroInput) (*model.Registro, error)
	// Delete removes the record, then its stored attachment.
	Delete(ctx context.Context, actor *model.User, id string) error
	// OpenAttachment streams the attachment from wherever it is stored.
	OpenAttachment(ctx context.Context, actor *model.User, id string) (*Download, error)
}

type registroService struct {
	repo     repository.RegistroRepository
	obras    repository.ObraRepository
	uploader Uploader
	store    storage.AttachmentStore
	audit    Auditor
	logger   *slog.Logger
	now      func() time.Time
}

func NewRegistroService(
	repo repository.RegistroRepository,
	obras repository.ObraRepository,
	uploader Uploader,
	store storage.AttachmentStore,
	auditor Auditor,
	logger *slog.Logger,
) RegistroService {
	return &registroService{
		repo:     repo,
		obras:    obras,
		uploader: uploader,
		store:    store,
		audit:    auditor,
		logger:   logger,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

func (s *registroService) Create(ctx context.Context, actor *model.User, in CreateRegistroInput) (*model.Registro, error) {
	in.Titulo = strings.TrimSpace(in.Titulo)
	in.TipoRegistro = strings.TrimSpace(in.TipoRegistro)
	if in.Titulo == "" {
		return nil, invalid("titulo é obrigatório")
	}
	if in.TipoRegistro == "" {
		return nil, invalid("tipo_registro é obrigatório")
	}

	if !actor.IsAdmin() {
		if in.ObraID == "" {
			in.ObraID = actor.ObraID
		}
		if in.ObraID != actor.ObraID {
			return nil, ErrForbidden
		}
	}
	if in.ObraID == "" {
		return nil, invalid("obra_id é obrigatório")
	}

	obra, err := s.obras.FindByID(ctx, in.ObraID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrObraNotFound
		}
		return nil, err
	}
	if obra.Status == model.ObraSuspensa {
		return nil, ErrObraSuspended
	}

	now := s.now()
	if in.DataRegistro.IsZero() {
		in.DataRegistro = now
	}

	var att *model.Attachment
	if in.Anexo != nil {
		if att, err = s.uploader.Save(ctx, *in.Anexo); err != nil {
			s.auditRejection(ctx, actor, in.Anexo, err)
			return nil, err
		}
	}

	reg := &model.Registro{
		ID:           uuid.NewString(),
		Titulo:       in.Titulo,
		TipoRegistro: in.TipoRegistro,
		Descricao:    in.Descricao,
		CodigoNumero: strings.TrimSpace(in.CodigoNumero),
		DataRegistro: in.DataRegistro,
		AutorID:      actor.ID,
		ObraID:       in.ObraID,
		Attachment:   att,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	stored, err := s.repo.Create(ctx, reg)
	if err != nil {
		if att != nil {
			// Rollback: delete the stored attachment
			if delErr := s.store.Remove(ctx, attachmentLocation(att)); delErr != nil {
				return nil, fmt.Errorf("db save failed: %v; rollback delete failed: %v", err, delErr)
			}
		}
		return nil, fmt.Errorf("db save failed: %w", err)
	}

	s.audit.Log(ctx, audit.ActionRegistroCreated, actor.ID, map[string]any{
		"registro_id": stored.ID,
		"obra_id":     stored.ObraID,
		"anexo":       att != nil,
	})
	return stored, nil
}

func (s *registroService) Get(ctx context.Context, actor *model.User, id string) (*model.Registro, error) {
	if id == "" {
		return nil, ErrIDRequired
	}
	reg, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if !actor.IsAdmin() && reg.ObraID != actor.ObraID {
		return nil, ErrForbidden
	}
	return reg, nil
}

func (s *registroService) List(ctx context.Context, actor *model.User, q RegistroListQuery) (*RegistroListResult, error) {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.PerPage < 1 {
		q.PerPage = defaultPerPage
	}
	if q.PerPage > maxPerPage {
		q.PerPage = maxPerPage
	}
	if !actor.IsAdmin() {
		q.ObraID = actor.ObraID
	}

	res, err := s.repo.List(ctx, repository.RegistroFilter{
		ObraID:       q.ObraID,
		TipoRegistro: q.TipoRegistro,
		DataInicio:   q.DataInicio,
		DataFim:      q.DataFim,
		AutorID:      q.AutorID,
		PalavraChave: strings.TrimSpace(q.PalavraChave),
		CodigoNumero: strings.TrimSpace(q.CodigoNumero),
		Ordenacao:    q.Ordenacao,
	}, repository.PageQuery{Limit: q.PerPage, Offset: (q.Page - 1) * q.PerPage})
	if err != nil {
		return nil, err
	}

	return &RegistroListResult{
		Items:   res.Items,
		Total:   res.Total,
		Page:    q.Page,
		PerPage: q.PerPage,
		Pages:   (res.Total + q.PerPage - 1) / q.PerPage,
	}, nil
}

// editable loads a record the actor may modify.
func (s *registroService) editable(ctx context.Context, actor *model.User, id string) (*model.Registro, error) {
	reg, err := s.Get(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if !actor.IsAdmin() && reg.AutorID != actor.ID {
		return nil, ErrForbidden
	}
	return reg, nil
}

func (s *registroService) Update(ctx context.Context, actor *model.User, id string, in UpdateRegistroInput) (*model.Registro, error) {
	reg, err := s.editable(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	if in.Titulo != nil {
		if strings.TrimSpace(*in.Titulo) == "" {
			return nil, invalid("titulo é obrigatório")
		}
		reg.Titulo = strings.TrimSpace(*in.Titulo)
	}
	if in.TipoRegistro != nil {
		if strings.TrimSpace(*in.TipoRegistro) == "" {
			return nil, invalid("tipo_registro é obrigatório")
		}
		reg.TipoRegistro = strings.TrimSpace(*in.TipoRegistro)
	}
	if in.Descricao != nil {
		reg.Descricao = *in.Descricao
	}
	if in.CodigoNumero != nil {
		reg.CodigoNumero = strings.TrimSpace(*in.CodigoNumero)
	}
	if in.DataRegistro != nil {
		reg.DataRegistro = *in.DataRegistro
	}

	var replaced, previous *model.Attachment
	if in.Anexo != nil {
		att, err := s.uploader.Save(ctx, *in.Anexo)
		if err != nil {
			s.auditRejection(ctx, actor, in.Anexo, err)
			return nil, err
		}
		previous = reg.Attachment
		replaced = att
		reg.Attachment = att
	}
	reg.UpdatedAt = s.now()

	stored, err := s.repo.Update(ctx, reg)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			err = ErrNotFound
		}
		if replaced != nil {
			if delErr := s.store.Remove(ctx, attachmentLocation(replaced)); delErr != nil {
				return nil, fmt.Errorf("db update failed: %v; rollback delete failed: %v", err, delErr)
			}
		}
		return nil, fmt.Errorf("db update failed: %w", err)
	}
	if previous != nil {
		s.removeAttachment(ctx, actor, reg.ID, previous)
	}

	s.audit.Log(ctx, audit.ActionRegistroUpdated, actor.ID, map[string]any{
		"registro_id":       stored.ID,
		"anexo_substituido": replaced != nil,
	})
	return stored, nil
}

func (s *registroService) Delete(ctx context.Context, actor *model.User, id string) error {
	reg, err := s.editable(ctx, actor, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, reg.ID); err != nil {
		return err
	}
	if reg.Attachment != nil {
		s.removeAttachment(ctx, actor, reg.ID, reg.Attachment)
	}
	s.audit.Log(ctx, audit.ActionRegistroDeleted, actor.ID, map[string]any{
		"registro_id": reg.ID,
		"obra_id":     reg.ObraID,
	})
	return nil
}

func (s *registroService) OpenAttachment(ctx context.Context, actor *model.User, id string) (*Download, error) {
	reg, err := s.Get(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	att := reg.Attachment
	if att == nil {
		return nil, ErrNoAttachment
	}

	body, info, err := s.store.Open(ctx, attachmentLocation(att))
	if err != nil {
		if errors.Is(err, storage.ErrObjectNotFound) || errors.Is(err, storage.ErrInvalidLocation) {
			return nil, ErrAttachmentMissing
		}
		return nil, fmt.Errorf("open attachment: %w", err)
	}

	size := info.Size
	if size <= 0 {
		size = -1
	}
	return &Download{
		Body:        body,
		Filename:    DownloadFilename(att),
		ContentType: DownloadContentType(att),
		Size:        size,
	}, nil
}

// removeAttachment deletes a stored object. Failures are logged and audited,
// never returned.
func (s *registroService) removeAttachment(ctx context.Context, actor *model.User, registroID string, att *model.Attachment) {
	if err := s.store.Remove(ctx, attachmentLocation(att)); err != nil {
		s.logger.ErrorContext(ctx, "delete attachment failed",
			"registro_id", registroID,
			"error", err,
		)
		s.audit.Log(ctx, audit.ActionAttachmentFailed, actor.ID, map[string]any{
			"registro_id": registroID,
			"error":       err.Error(),
		})
	}
}

func (s *registroService) auditRejection(ctx context.Context, actor *model.User, f *upload.File, err error) {
	var rej *upload.RejectionError
	if !errors.As(err, &rej) {
		return
	}
	s.audit.Log(ctx, audit.ActionUploadRejected, actor.ID, map[string]any{
		"filename": f.Filename,
		"code":     rej.Code,
	})
}
