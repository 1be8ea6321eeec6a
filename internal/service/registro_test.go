package service

import (
	"context"
	"database/sql"
	"errors"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"gedo/internal/audit"
	"gedo/internal/logging"
	"gedo/internal/model"
	"gedo/internal/repository"
	repoMocks "gedo/internal/repository/mocks"
	"gedo/internal/storage"
	storeMocks "gedo/internal/storage/mocks"
	"gedo/internal/upload"
	uploadMocks "gedo/internal/upload/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type recordingAuditor struct {
	mu      sync.Mutex
	actions []string
}

func (a *recordingAuditor) Log(_ context.Context, action, userID string, details map[string]any) *audit.Entry {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.actions = append(a.actions, action)
	return &audit.Entry{Action: action, UserID: userID, Details: details}
}

func (a *recordingAuditor) Actions() []string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]string(nil), a.actions...)
}

var (
	admin  = &model.User{ID: "u-admin", Role: model.RoleAdmin, Active: true}
	author = &model.User{ID: "u-1", Role: model.RoleUser, ObraID: "obra-1", Active: true}
	other  = &model.User{ID: "u-2", Role: model.RoleUser, ObraID: "obra-1", Active: true}
)

type registroDeps struct {
	repo     *repoMocks.MockRegistroRepository
	obras    *repoMocks.MockObraRepository
	uploader *uploadMocks.MockUploader
	store    *storeMocks.MockAttachmentStore
	audit    *recordingAuditor
}

func newRegistroService() (RegistroService, registroDeps) {
	d := registroDeps{
		repo:     new(repoMocks.MockRegistroRepository),
		obras:    new(repoMocks.MockObraRepository),
		uploader: new(uploadMocks.MockUploader),
		store:    new(storeMocks.MockAttachmentStore),
		audit:    &recordingAuditor{},
	}
	svc := NewRegistroService(d.repo, d.obras, d.uploader, d.store, d.audit, logging.Discard())
	return svc, d
}

func remoteAttachment() *model.Attachment {
	return &model.Attachment{
		StorageURL:       "https://blob.example/uploads/a.pdf",
		StoragePathname:  "uploads/a.pdf",
		OriginalFilename: "relatorio.pdf",
		Extension:        "pdf",
		SizeBytes:        5,
		ContentType:      "application/pdf",
		FileHash:         "abc",
	}
}

func TestRegistroService_Create(t *testing.T) {
	ctx := context.Background()
	activeObra := &model.Obra{ID: "obra-1", Status: model.ObraAtiva}
	file := &upload.File{Filename: "relatorio.pdf", Content: strings.NewReader("%PDF-")}

	tests := []struct {
		name       string
		actor      *model.User
		in         CreateRegistroInput
		setupMocks func(d registroDeps)
		wantErr    error
		wantErrMsg string
		wantAudit  []string
	}{
		{
			name:  "happy path without attachment",
			actor: author,
			in:    CreateRegistroInput{Titulo: " Diário ", TipoRegistro: "diario"},
			setupMocks: func(d registroDeps) {
				d.obras.On("FindByID", ctx, "obra-1").Return(activeObra, nil)
				d.repo.On("Create", ctx, mock.MatchedBy(func(r *model.Registro) bool {
					return r.ID != "" && r.Titulo == "Diário" && r.ObraID == "obra-1" &&
						r.AutorID == "u-1" && r.Attachment == nil && !r.DataRegistro.IsZero()
				})).Return(&model.Registro{ID: "r-1", ObraID: "obra-1"}, nil)
			},
			wantAudit: []string{audit.ActionRegistroCreated},
		},
		{
			name:  "happy path with attachment",
			actor: admin,
			in:    CreateRegistroInput{Titulo: "Laudo", TipoRegistro: "laudo", ObraID: "obra-1", Anexo: file},
			setupMocks: func(d registroDeps) {
				d.obras.On("FindByID", ctx, "obra-1").Return(activeObra, nil)
				d.uploader.On("Save", ctx, *file).Return(remoteAttachment(), nil)
				d.repo.On("Create", ctx, mock.MatchedBy(func(r *model.Registro) bool {
					return r.Attachment != nil && r.Attachment.StoragePathname == "uploads/a.pdf"
				})).Return(&model.Registro{ID: "r-1"}, nil)
			},
			wantAudit: []string{audit.ActionRegistroCreated},
		},
		{
			name:    "missing titulo",
			actor:   author,
			in:      CreateRegistroInput{TipoRegistro: "diario"},
			wantErr: &ValidationError{Message: "titulo é obrigatório"},
		},
		{
			name:    "standard user on another obra",
			actor:   author,
			in:      CreateRegistroInput{Titulo: "x", TipoRegistro: "y", ObraID: "obra-2"},
			wantErr: ErrForbidden,
		},
		{
			name:    "admin without obra",
			actor:   admin,
			in:      CreateRegistroInput{Titulo: "x", TipoRegistro: "y"},
			wantErr: &ValidationError{Message: "obra_id é obrigatório"},
		},
		{
			name:  "obra not found",
			actor: admin,
			in:    CreateRegistroInput{Titulo: "x", TipoRegistro: "y", ObraID: "nope"},
			setupMocks: func(d registroDeps) {
				d.obras.On("FindByID", ctx, "nope").Return(nil, sql.ErrNoRows)
			},
			wantErr: ErrObraNotFound,
		},
		{
			name:  "suspended obra",
			actor: author,
			in:    CreateRegistroInput{Titulo: "x", TipoRegistro: "y"},
			setupMocks: func(d registroDeps) {
				d.obras.On("FindByID", ctx, "obra-1").Return(&model.Obra{ID: "obra-1", Status: model.ObraSuspensa}, nil)
			},
			wantErr: ErrObraSuspended,
		},
		{
			name:  "rejected attachment",
			actor: author,
			in:    CreateRegistroInput{Titulo: "x", TipoRegistro: "y", Anexo: file},
			setupMocks: func(d registroDeps) {
				d.obras.On("FindByID", ctx, "obra-1").Return(activeObra, nil)
				d.uploader.On("Save", ctx, *file).Return(nil, &upload.RejectionError{
					Code:   upload.CodeTypeNotAllowed,
					Reason: upload.ReasonTypeNotAllowed,
				})
			},
			wantErr:   &upload.RejectionError{Code: upload.CodeTypeNotAllowed, Reason: upload.ReasonTypeNotAllowed},
			wantAudit: []string{audit.ActionUploadRejected},
		},
		{
			name:  "repository error with successful rollback",
			actor: author,
			in:    CreateRegistroInput{Titulo: "x", TipoRegistro: "y", Anexo: file},
			setupMocks: func(d registroDeps) {
				d.obras.On("FindByID", ctx, "obra-1").Return(activeObra, nil)
				d.uploader.On("Save", ctx, *file).Return(remoteAttachment(), nil)
				d.repo.On("Create", ctx, mock.Anything).Return(nil, errors.New("db fail"))
				d.store.On("Remove", ctx, storage.Location{
					URL:      "https://blob.example/uploads/a.pdf",
					Pathname: "uploads/a.pdf",
				}).Return(nil)
			},
			wantErrMsg: "db save failed: db fail",
		},
		{
			name:  "repository error with failed rollback",
			actor: author,
			in:    CreateRegistroInput{Titulo: "x", TipoRegistro: "y", Anexo: file},
			setupMocks: func(d registroDeps) {
				d.obras.On("FindByID", ctx, "obra-1").Return(activeObra, nil)
				d.uploader.On("Save", ctx, *file).Return(remoteAttachment(), nil)
				d.repo.On("Create", ctx, mock.Anything).Return(nil, errors.New("db fail"))
				d.store.On("Remove", ctx, mock.Anything).Return(errors.New("delete fail"))
			},
			wantErrMsg: "rollback delete failed: delete fail",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, d := newRegistroService()
			if tt.setupMocks != nil {
				tt.setupMocks(d)
			}

			reg, err := svc.Create(ctx, tt.actor, tt.in)

			switch {
			case tt.wantErr != nil:
				assert.Nil(t, reg)
				var rej *upload.RejectionError
				var verr *ValidationError
				switch {
				case errors.As(tt.wantErr, &rej):
					assert.Equal(t, tt.wantErr, err)
				case errors.As(tt.wantErr, &verr):
					assert.Equal(t, tt.wantErr, err)
				default:
					assert.ErrorIs(t, err, tt.wantErr)
				}
			case tt.wantErrMsg != "":
				assert.Nil(t, reg)
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErrMsg)
			default:
				require.NoError(t, err)
				assert.NotNil(t, reg)
			}
			assert.Equal(t, tt.wantAudit, d.audit.Actions())

			d.repo.AssertExpectations(t)
			d.obras.AssertExpectations(t)
			d.uploader.AssertExpectations(t)
			d.store.AssertExpectations(t)
		})
	}
}

func TestRegistroService_Get(t *testing.T) {
	ctx := context.Background()

	t.Run("id required", func(t *testing.T) {
		svc, _ := newRegistroService()
		_, err := svc.Get(ctx, admin, "")
		assert.ErrorIs(t, err, ErrIDRequired)
	})

	t.Run("not found", func(t *testing.T) {
		svc, d := newRegistroService()
		d.repo.On("FindByID", ctx, "r-1").Return(nil, sql.ErrNoRows)
		_, err := svc.Get(ctx, admin, "r-1")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("standard user outside its obra", func(t *testing.T) {
		svc, d := newRegistroService()
		d.repo.On("FindByID", ctx, "r-1").Return(&model.Registro{ID: "r-1", ObraID: "obra-2"}, nil)
		_, err := svc.Get(ctx, author, "r-1")
		assert.ErrorIs(t, err, ErrForbidden)
	})

	t.Run("admin sees every obra", func(t *testing.T) {
		svc, d := newRegistroService()
		d.repo.On("FindByID", ctx, "r-1").Return(&model.Registro{ID: "r-1", ObraID: "obra-2"}, nil)
		reg, err := svc.Get(ctx, admin, "r-1")
		require.NoError(t, err)
		assert.Equal(t, "r-1", reg.ID)
	})
}

func TestRegistroService_List(t *testing.T) {
	ctx := context.Background()
	from := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name       string
		actor      *model.User
		q          RegistroListQuery
		wantFilter repository.RegistroFilter
		wantPage   repository.PageQuery
		total      int
		wantPages  int
	}{
		{
			name:       "defaults",
			actor:      admin,
			wantFilter: repository.RegistroFilter{},
			wantPage:   repository.PageQuery{Limit: 20, Offset: 0},
			total:      41,
			wantPages:  3,
		},
		{
			name:       "per_page capped",
			actor:      admin,
			q:          RegistroListQuery{Page: 2, PerPage: 500, TipoRegistro: "diario", DataInicio: &from},
			wantFilter: repository.RegistroFilter{TipoRegistro: "diario", DataInicio: &from},
			wantPage:   repository.PageQuery{Limit: 100, Offset: 100},
			total:      100,
			wantPages:  1,
		},
		{
			name:  "search terms are trimmed and passed through",
			actor: admin,
			q: RegistroListQuery{
				AutorID: "u-1", PalavraChave: "  laje ", CodigoNumero: " RDO-0 ",
				Ordenacao: repository.RegistroOrderTituloAsc,
			},
			wantFilter: repository.RegistroFilter{
				AutorID: "u-1", PalavraChave: "laje", CodigoNumero: "RDO-0",
				Ordenacao: repository.RegistroOrderTituloAsc,
			},
			wantPage:  repository.PageQuery{Limit: 20, Offset: 0},
			total:     1,
			wantPages: 1,
		},
		{
			name:       "standard user forced to its obra",
			actor:      author,
			q:          RegistroListQuery{ObraID: "obra-2", Page: 3, PerPage: 10},
			wantFilter: repository.RegistroFilter{ObraID: "obra-1"},
			wantPage:   repository.PageQuery{Limit: 10, Offset: 20},
			total:      0,
			wantPages:  0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, d := newRegistroService()
			d.repo.On("List", ctx, tt.wantFilter, tt.wantPage).
				Return(&repository.PageResult[model.Registro]{Items: []model.Registro{}, Total: tt.total}, nil)

			res, err := svc.List(ctx, tt.actor, tt.q)

			require.NoError(t, err)
			assert.Equal(t, tt.total, res.Total)
			assert.Equal(t, tt.wantPage.Limit, res.PerPage)
			assert.Equal(t, tt.wantPages, res.Pages)
			d.repo.AssertExpectations(t)
		})
	}

	t.Run("repository error", func(t *testing.T) {
		svc, d := newRegistroService()
		d.repo.On("List", ctx, mock.Anything, mock.Anything).Return(nil, errors.New("db fail"))
		_, err := svc.List(ctx, admin, RegistroListQuery{})
		assert.EqualError(t, err, "db fail")
	})
}

func TestRegistroService_Update(t *testing.T) {
	ctx := context.Background()
	file := &upload.File{Filename: "novo.pdf", Content: strings.NewReader("%PDF-")}
	existing := func() *model.Registro {
		return &model.Registro{ID: "r-1", Titulo: "old", TipoRegistro: "diario", ObraID: "obra-1", AutorID: "u-1", Attachment: remoteAttachment()}
	}
	newAtt := &model.Attachment{LocalPath: "/data/uploads/abcd1234_novo.pdf", OriginalFilename: "novo.pdf", Extension: "pdf"}

	t.Run("partial fields keep the attachment", func(t *testing.T) {
		svc, d := newRegistroService()
		d.repo.On("FindByID", ctx, "r-1").Return(existing(), nil)
		d.repo.On("Update", ctx, mock.MatchedBy(func(r *model.Registro) bool {
			return r.Titulo == "new" && r.TipoRegistro == "diario" && r.Attachment.StoragePathname == "uploads/a.pdf"
		})).Return(&model.Registro{ID: "r-1", Titulo: "new"}, nil)

		title := " new "
		reg, err := svc.Update(ctx, author, "r-1", UpdateRegistroInput{Titulo: &title})

		require.NoError(t, err)
		assert.Equal(t, "new", reg.Titulo)
		assert.Equal(t, []string{audit.ActionRegistroUpdated}, d.audit.Actions())
		d.store.AssertNotCalled(t, "Remove", mock.Anything, mock.Anything)
	})

	t.Run("new attachment replaces the old object after the row update", func(t *testing.T) {
		svc, d := newRegistroService()
		var calls []string
		d.repo.On("FindByID", ctx, "r-1").Return(existing(), nil)
		d.uploader.On("Save", ctx, *file).Return(newAtt, nil)
		d.repo.On("Update", ctx, mock.MatchedBy(func(r *model.Registro) bool {
			return r.Attachment == newAtt
		})).Run(func(mock.Arguments) { calls = append(calls, "update") }).Return(&model.Registro{ID: "r-1"}, nil)
		d.store.On("Remove", ctx, storage.Location{URL: "https://blob.example/uploads/a.pdf", Pathname: "uploads/a.pdf"}).
			Run(func(mock.Arguments) { calls = append(calls, "remove_old") }).Return(nil)

		_, err := svc.Update(ctx, admin, "r-1", UpdateRegistroInput{Anexo: file})

		require.NoError(t, err)
		assert.Equal(t, []string{"update", "remove_old"}, calls)
		d.store.AssertExpectations(t)
		d.repo.AssertExpectations(t)
	})

	t.Run("old object delete failure is not fatal", func(t *testing.T) {
		svc, d := newRegistroService()
		d.repo.On("FindByID", ctx, "r-1").Return(existing(), nil)
		d.uploader.On("Save", ctx, *file).Return(newAtt, nil)
		d.store.On("Remove", ctx, mock.Anything).Return(errors.New("blob down"))
		d.repo.On("Update", ctx, mock.Anything).Return(&model.Registro{ID: "r-1"}, nil)

		_, err := svc.Update(ctx, author, "r-1", UpdateRegistroInput{Anexo: file})

		require.NoError(t, err)
		assert.Equal(t, []string{audit.ActionAttachmentFailed, audit.ActionRegistroUpdated}, d.audit.Actions())
	})

	t.Run("row update failure keeps the old object and removes the new one", func(t *testing.T) {
		svc, d := newRegistroService()
		d.repo.On("FindByID", ctx, "r-1").Return(existing(), nil)
		d.uploader.On("Save", ctx, *file).Return(newAtt, nil)
		d.store.On("Remove", ctx, storage.Location{LocalPath: "/data/uploads/abcd1234_novo.pdf"}).Return(nil).Once()
		d.repo.On("Update", ctx, mock.Anything).Return(nil, errors.New("db fail"))

		_, err := svc.Update(ctx, author, "r-1", UpdateRegistroInput{Anexo: file})

		assert.EqualError(t, err, "db update failed: db fail")
		d.store.AssertExpectations(t)
		d.store.AssertNotCalled(t, "Remove", ctx, storage.Location{URL: "https://blob.example/uploads/a.pdf", Pathname: "uploads/a.pdf"})
	})

	t.Run("not the author", func(t *testing.T) {
		svc, d := newRegistroService()
		d.repo.On("FindByID", ctx, "r-1").Return(existing(), nil)

		_, err := svc.Update(ctx, other, "r-1", UpdateRegistroInput{})

		assert.ErrorIs(t, err, ErrForbidden)
		d.repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("blank titulo", func(t *testing.T) {
		svc, d := newRegistroService()
		d.repo.On("FindByID", ctx, "r-1").Return(existing(), nil)

		blank := "  "
		_, err := svc.Update(ctx, author, "r-1", UpdateRegistroInput{Titulo: &blank})

		var verr *ValidationError
		assert.ErrorAs(t, err, &verr)
	})

	t.Run("rejected attachment keeps the record untouched", func(t *testing.T) {
		svc, d := newRegistroService()
		d.repo.On("FindByID", ctx, "r-1").Return(existing(), nil)
		d.uploader.On("Save", ctx, *file).Return(nil, &upload.RejectionError{Code: upload.CodeFileEmpty, Reason: upload.ReasonFileEmpty})

		_, err := svc.Update(ctx, author, "r-1", UpdateRegistroInput{Anexo: file})

		var rej *upload.RejectionError
		require.ErrorAs(t, err, &rej)
		assert.Equal(t, upload.CodeFileEmpty, rej.Code)
		d.store.AssertNotCalled(t, "Remove", mock.Anything, mock.Anything)
		d.repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})
}

func TestRegistroService_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("removes row then attachment", func(t *testing.T) {
		svc, d := newRegistroService()
		var calls []string
		d.repo.On("FindByID", ctx, "r-1").Return(&model.Registro{ID: "r-1", ObraID: "obra-1", AutorID: "u-1", Attachment: remoteAttachment()}, nil)
		d.repo.On("Delete", ctx, "r-1").Run(func(mock.Arguments) { calls = append(calls, "delete") }).Return(nil)
		d.store.On("Remove", ctx, mock.Anything).Run(func(mock.Arguments) { calls = append(calls, "remove") }).Return(nil)

		require.NoError(t, svc.Delete(ctx, author, "r-1"))
		assert.Equal(t, []string{"delete", "remove"}, calls)
		assert.Equal(t, []string{audit.ActionRegistroDeleted}, d.audit.Actions())
		d.store.AssertExpectations(t)
		d.repo.AssertExpectations(t)
	})

	t.Run("storage failure is logged only", func(t *testing.T) {
		svc, d := newRegistroService()
		d.repo.On("FindByID", ctx, "r-1").Return(&model.Registro{ID: "r-1", ObraID: "obra-1", AutorID: "u-1", Attachment: remoteAttachment()}, nil)
		d.store.On("Remove", ctx, mock.Anything).Return(errors.New("blob down"))
		d.repo.On("Delete", ctx, "r-1").Return(nil)

		require.NoError(t, svc.Delete(ctx, admin, "r-1"))
		assert.Equal(t, []string{audit.ActionAttachmentFailed, audit.ActionRegistroDeleted}, d.audit.Actions())
	})

	t.Run("not the author", func(t *testing.T) {
		svc, d := newRegistroService()
		d.repo.On("FindByID", ctx, "r-1").Return(&model.Registro{ID: "r-1", ObraID: "obra-1", AutorID: "u-1"}, nil)

		assert.ErrorIs(t, svc.Delete(ctx, other, "r-1"), ErrForbidden)
		d.repo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})

	t.Run("repository error keeps the attachment", func(t *testing.T) {
		svc, d := newRegistroService()
		d.repo.On("FindByID", ctx, "r-1").Return(&model.Registro{ID: "r-1", ObraID: "obra-1", AutorID: "u-1", Attachment: remoteAttachment()}, nil)
		d.repo.On("Delete", ctx, "r-1").Return(errors.New("db fail"))

		assert.EqualError(t, svc.Delete(ctx, author, "r-1"), "db fail")
		assert.Empty(t, d.audit.Actions())
		d.store.AssertNotCalled(t, "Remove", mock.Anything, mock.Anything)
	})
}

func TestRegistroService_OpenAttachment(t *testing.T) {
	ctx := context.Background()

	t.Run("streams with extension-derived headers", func(t *testing.T) {
		svc, d := newRegistroService()
		att := remoteAttachment()
		att.OriginalFilename = "relatorio"
		att.ContentType = "application/octet-stream"
		d.repo.On("FindByID", ctx, "r-1").Return(&model.Registro{ID: "r-1", ObraID: "obra-1", Attachment: att}, nil)
		d.store.On("Open", ctx, mock.Anything).Return(io.NopCloser(strings.NewReader("%PDF-")), storage.ObjectInfo{Size: 5, ContentType: "binary/octet-stream"}, nil)

		dl, err := svc.OpenAttachment(ctx, author, "r-1")

		require.NoError(t, err)
		defer dl.Body.Close()
		assert.Equal(t, "relatorio.pdf", dl.Filename)
		assert.Equal(t, "application/pdf", dl.ContentType)
		assert.Equal(t, int64(5), dl.Size)
		body, _ := io.ReadAll(dl.Body)
		assert.Equal(t, "%PDF-", string(body))
	})

	t.Run("unknown size", func(t *testing.T) {
		svc, d := newRegistroService()
		d.repo.On("FindByID", ctx, "r-1").Return(&model.Registro{ID: "r-1", ObraID: "obra-1", Attachment: remoteAttachment()}, nil)
		d.store.On("Open", ctx, mock.Anything).Return(io.NopCloser(strings.NewReader("x")), storage.ObjectInfo{}, nil)

		dl, err := svc.OpenAttachment(ctx, admin, "r-1")

		require.NoError(t, err)
		assert.Equal(t, int64(-1), dl.Size)
	})

	t.Run("no attachment", func(t *testing.T) {
		svc, d := newRegistroService()
		d.repo.On("FindByID", ctx, "r-1").Return(&model.Registro{ID: "r-1", ObraID: "obra-1"}, nil)

		_, err := svc.OpenAttachment(ctx, author, "r-1")
		assert.ErrorIs(t, err, ErrNoAttachment)
	})

	t.Run("object gone", func(t *testing.T) {
		svc, d := newRegistroService()
		d.repo.On("FindByID", ctx, "r-1").Return(&model.Registro{ID: "r-1", ObraID: "obra-1", Attachment: remoteAttachment()}, nil)
		d.store.On("Open", ctx, mock.Anything).Return(nil, storage.ObjectInfo{}, storage.ErrObjectNotFound)

		_, err := svc.OpenAttachment(ctx, author, "r-1")
		assert.ErrorIs(t, err, ErrAttachmentMissing)
	})

	t.Run("backend error", func(t *testing.T) {
		svc, d := newRegistroService()
		d.repo.On("FindByID", ctx, "r-1").Return(&model.Registro{ID: "r-1", ObraID: "obra-1", Attachment: remoteAttachment()}, nil)
		d.store.On("Open", ctx, mock.Anything).Return(nil, storage.ObjectInfo{}, errors.New("timeout"))

		_, err := svc.OpenAttachment(ctx, author, "r-1")
		assert.EqualError(t, err, "open attachment: timeout")
	})
}

func TestDownloadFilename(t *testing.T) {
	tests := []struct {
		name string
		att  model.Attachment
		want string
	}{
		{"keeps matching extension", model.Attachment{OriginalFilename: "a.pdf", Extension: "pdf"}, "a.pdf"},
		{"case insensitive", model.Attachment{OriginalFilename: "a.PDF", Extension: "pdf"}, "a.PDF"},
		{"appends missing extension", model.Attachment{OriginalFilename: "a", Extension: "pdf"}, "a.pdf"},
		{"appends on mismatch", model.Attachment{OriginalFilename: "a.txt", Extension: "pdf"}, "a.txt.pdf"},
		{"default name", model.Attachment{Extension: "png"}, "anexo.png"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DownloadFilename(&tt.att))
		})
	}
}
