package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"gedo/internal/audit"
	"gedo/internal/auth"
	"gedo/internal/model"
	"gedo/internal/repository"
)

// adminPasswordInterval is how long an administrator waits between changes
// of their own password.
const adminPasswordInterval = 15 * 24 * time.Hour

type CreateUserInput struct {
	Username string
	Email    string
	Password string
	Role     string
	ObraID   string
}

// UpdateUserInput changes only the non-nil fields.
type UpdateUserInput struct {
	Username *string
	Email    *string
	Role     *string
	ObraID   *string
	Active   *bool
}

// PasswordStatus tells the client whether a password change is due or allowed.
type PasswordStatus struct {
	MustChange          bool       `json:"must_change"`
	ChangedByAdmin      bool       `json:"changed_by_admin"`
	LastChange          *time.Time `json:"last_change"`
	CanChangeOwn        bool       `json:"can_change_own"`
	RestrictionMessage  string     `json:"change_restriction_message,omitempty"`
	NextChangeAllowedAt *time.Time `json:"next_change_allowed,omitempty"`
}

// UserService manages accounts. Everything except the caller's own password
// requires an administrator.
type UserService interface {
	List(ctx context.Context, actor *model.User) ([]model.User, error)
	Get(ctx context.Context, actor *model.User, id string) (*model.User, error)
	// Create stores a new account that must replace its password on first login.
	Create(ctx context.Context, actor *model.User, in CreateUserInput) (*model.User, error)
	Update(ctx context.Context, actor *model.User, id string, in UpdateUserInput) (*model.User, error)
	// Delete refuses the caller's own account and accounts that authored records.
	Delete(ctx context.Context, actor *model.User, id string) error
	// ChangePassword replaces the caller's password after checking the current one.
	ChangePassword(ctx context.Context, actor *model.User, current, next string) (*PasswordStatus, error)
	// AdminChangePassword resets another account's password and forces a change
	// on its next login. Other administrators are off limits.
	AdminChangePassword(ctx context.Context, actor *model.User, targetID, next string) (*model.User, error)
	PasswordStatus(ctx context.Context, actor *model.User) (*PasswordStatus, error)
	// EnsureAdmin creates an administrator with email unless an account already
	// uses it. It reports whether an account was created.
	EnsureAdmin(ctx context.Context, username, email, password string) (bool, error)
}

type userService struct {
	users  repository.UserRepository
	obras  repository.ObraRepository
	audit  Auditor
	logger *slog.Logger
	now    func() time.Time
}

func NewUserService(users repository.UserRepository, obras repository.ObraRepository, auditor Auditor, logger *slog.Logger) UserService {
	return &userService{
		users:  users,
		obras:  obras,
		audit:  auditor,
		logger: logger,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

func requireAdmin(actor *model.User) error {
	if actor == nil || !actor.IsAdmin() {
		return ErrAdminRequired
	}
	return nil
}

func (s *userService) List(ctx context.Context, actor *model.User) ([]model.User, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	return s.users.List(ctx)
}

func (s *userService) Get(ctx context.Context, actor *model.User, id string) (*model.User, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	return s.find(ctx, id)
}

func (s *userService) find(ctx context.Context, id string) (*model.User, error) {
	if id == "" {
		return nil, ErrIDRequired
	}
	u, err := s.users.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return u, nil
}

// checkObra verifies the obra a standard user is bound to.
func (s *userService) checkObra(ctx context.Context, role model.Role, obraID string) error {
	if role != model.RoleUser {
		return nil
	}
	if obraID == "" {
		return invalid("Obra é obrigatória para usuário padrão")
	}
	if _, err := s.obras.FindByID(ctx, obraID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrObraNotFound
		}
		return err
	}
	return nil
}

// checkUnique fails when username or email belongs to an account other than selfID.
func (s *userService) checkUnique(ctx context.Context, selfID, username, email string) error {
	if username != "" {
		u, err := s.users.FindByUsername(ctx, username)
		if err != nil && !errors.Is(err, sql.ErrNoRows) {
			return err
		}
		if u != nil && u.ID != selfID {
			return conflict("Username já está em uso")
		}
	}
	if email != "" {
		u, err := s.users.FindByEmail(ctx, email)
		if err != nil && !errors.Is(err, sql.ErrNoRows) {
			return err
		}
		if u != nil && u.ID != selfID {
			return conflict("Email já está em uso")
		}
	}
	return nil
}

func duplicateUser(err error) error {
	if errors.Is(err, repository.ErrDuplicate) {
		return conflict("Username ou email já está em uso")
	}
	return err
}

func (s *userService) Create(ctx context.Context, actor *model.User, in CreateUserInput) (*model.User, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	u, err := s.newUser(ctx, in)
	if err != nil {
		return nil, err
	}
	stored, err := s.users.Create(ctx, u)
	if err != nil {
		return nil, duplicateUser(err)
	}
	s.audit.Log(ctx, audit.ActionUserCreated, actor.ID, map[string]any{
		"new_user_id":    stored.ID,
		"new_user_email": stored.Email,
		"role":           string(stored.Role),
	})
	return stored, nil
}

// newUser validates in and builds the account row.
func (s *userService) newUser(ctx context.Context, in CreateUserInput) (*model.User, error) {
	username, err := normalizeUsername(in.Username)
	if err != nil {
		return nil, err
	}
	email, err := normalizeEmail(in.Email)
	if err != nil {
		return nil, err
	}
	if err := validatePassword(in.Password); err != nil {
		return nil, err
	}
	role, err := normalizeRole(in.Role)
	if err != nil {
		return nil, err
	}
	obraID := in.ObraID
	if role == model.RoleAdmin {
		obraID = ""
	}
	if err := s.checkObra(ctx, role, obraID); err != nil {
		return nil, err
	}
	if err := s.checkUnique(ctx, "", username, email); err != nil {
		return nil, err
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	now := s.now()
	return &model.User{
		ID:                 uuid.NewString(),
		Username:           username,
		Email:              email,
		PasswordHash:       hash,
		Role:               role,
		ObraID:             obraID,
		Active:             true,
		MustChangePassword: true,
		CreatedAt:          now,
		UpdatedAt:          now,
		PasswordChangedAt:  &now,
	}, nil
}

func (s *userService) Update(ctx context.Context, actor *model.User, id string, in UpdateUserInput) (*model.User, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	u, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	var username, email string
	if in.Username != nil {
		if username, err = normalizeUsername(*in.Username); err != nil {
			return nil, err
		}
		u.Username = username
	}
	if in.Email != nil {
		if email, err = normalizeEmail(*in.Email); err != nil {
			return nil, err
		}
		u.Email = email
	}
	if in.Role != nil {
		role, err := normalizeRole(*in.Role)
		if err != nil {
			return nil, err
		}
		if u.ID == actor.ID && role != model.RoleAdmin {
			return nil, invalid("Não é possível remover seu próprio perfil de administrador")
		}
		u.Role = role
	}
	if in.ObraID != nil {
		u.ObraID = *in.ObraID
	}
	if u.Role == model.RoleAdmin {
		u.ObraID = ""
	}
	if in.Active != nil {
		if u.ID == actor.ID && !*in.Active {
			return nil, invalid("Não é possível desativar seu próprio usuário")
		}
		u.Active = *in.Active
	}

	if in.Role != nil || in.ObraID != nil {
		if err := s.checkObra(ctx, u.Role, u.ObraID); err != nil {
			return nil, err
		}
	}
	if err := s.checkUnique(ctx, u.ID, username, email); err != nil {
		return nil, err
	}

	u.UpdatedAt = s.now()
	stored, err := s.users.Update(ctx, u)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, duplicateUser(err)
	}
	s.audit.Log(ctx, audit.ActionUserUpdated, actor.ID, map[string]any{
		"updated_user_id":    stored.ID,
		"updated_user_email": stored.Email,
		"active":             stored.Active,
	})
	return stored, nil
}

func (s *userService) Delete(ctx context.Context, actor *model.User, id string) error {
	if err := requireAdmin(actor); err != nil {
		return err
	}
	if id == actor.ID {
		return invalid("Não é possível deletar seu próprio usuário")
	}
	u, err := s.find(ctx, id)
	if err != nil {
		return err
	}
	if err := s.users.Delete(ctx, u.ID); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return ErrUserNotFound
		case errors.Is(err, repository.ErrInUse):
			return conflict("Usuário possui registros; desative-o em vez de deletar")
		}
		return err
	}
	s.audit.Log(ctx, audit.ActionUserDeleted, actor.ID, map[string]any{
		"deleted_user_id":    u.ID,
		"deleted_user_email": u.Email,
	})
	return nil
}

// ownChangeWait returns how long an administrator still has to wait before
// changing their own password. A forced change is never delayed.
func (s *userService) ownChangeWait(u *model.User) time.Duration {
	if !u.IsAdmin() || u.MustChangePassword || u.LastAdminPasswordChange == nil {
		return 0
	}
	if wait := u.LastAdminPasswordChange.Add(adminPasswordInterval).Sub(s.now()); wait > 0 {
		return wait
	}
	return 0
}

func waitMessage(wait time.Duration) string {
	days := int((wait + 24*time.Hour - 1) / (24 * time.Hour))
	return fmt.Sprintf("Aguarde %d dias para alterar novamente", days)
}

func (s *userService) ChangePassword(ctx context.Context, actor *model.User, current, next string) (*PasswordStatus, error) {
	if actor == nil {
		return nil, ErrForbidden
	}
	if current == "" || next == "" {
		return nil, invalid("current_password e new_password são obrigatórios")
	}
	if err := validatePassword(next); err != nil {
		return nil, err
	}
	u, err := s.find(ctx, actor.ID)
	if err != nil {
		return nil, err
	}
	if !auth.CheckPassword(u.PasswordHash, current) {
		s.audit.Log(ctx, audit.ActionPasswordChangeFailed, u.ID, map[string]any{"reason": "wrong_current_password"})
		return nil, invalid("Senha atual incorreta")
	}
	if wait := s.ownChangeWait(u); wait > 0 {
		msg := waitMessage(wait)
		s.audit.Log(ctx, audit.ActionPasswordChangeBlocked, u.ID, map[string]any{"reason": "time_restriction", "message": msg})
		return nil, invalid(msg)
	}

	forced := u.PasswordChangedByAdmin
	if err := s.setPassword(ctx, u, next, false); err != nil {
		return nil, err
	}
	s.audit.Log(ctx, audit.ActionPasswordChangedByUser, u.ID, map[string]any{
		"user_role":     string(u.Role),
		"forced_change": forced,
	})
	return s.status(u), nil
}

func (s *userService) AdminChangePassword(ctx context.Context, actor *model.User, targetID, next string) (*model.User, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	if err := validatePassword(next); err != nil {
		return nil, err
	}
	target, err := s.find(ctx, targetID)
	if err != nil {
		return nil, err
	}
	if target.IsAdmin() && target.ID != actor.ID {
		s.audit.Log(ctx, audit.ActionPasswordChangeBlocked, actor.ID, map[string]any{
			"reason":      "admin_to_admin_blocked",
			"target_user": target.Email,
		})
		return nil, ErrForbidden
	}
	if err := s.setPassword(ctx, target, next, true); err != nil {
		return nil, err
	}
	s.audit.Log(ctx, audit.ActionPasswordChangedByAdmin, actor.ID, map[string]any{
		"target_user_id":    target.ID,
		"target_user_email": target.Email,
		"target_user_role":  string(target.Role),
	})
	return target, nil
}

// setPassword hashes next into u and writes the password columns. A reset by
// an administrator forces a change on the next login.
func (s *userService) setPassword(ctx context.Context, u *model.User, next string, byAdmin bool) error {
	hash, err := auth.HashPassword(next)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	now := s.now()
	u.PasswordHash = hash
	u.PasswordChangedAt = &now
	u.UpdatedAt = now
	u.MustChangePassword = byAdmin
	u.PasswordChangedByAdmin = byAdmin
	if !byAdmin && u.IsAdmin() {
		u.LastAdminPasswordChange = &now
	}
	if err := s.users.UpdatePassword(ctx, u); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrUserNotFound
		}
		return err
	}
	return nil
}

func (s *userService) PasswordStatus(ctx context.Context, actor *model.User) (*PasswordStatus, error) {
	if actor == nil {
		return nil, ErrForbidden
	}
	u, err := s.find(ctx, actor.ID)
	if err != nil {
		return nil, err
	}
	return s.status(u), nil
}

func (s *userService) status(u *model.User) *PasswordStatus {
	st := &PasswordStatus{
		MustChange:     u.MustChangePassword,
		ChangedByAdmin: u.PasswordChangedByAdmin,
		LastChange:     u.PasswordChangedAt,
		CanChangeOwn:   true,
	}
	if wait := s.ownChangeWait(u); wait > 0 {
		next := u.LastAdminPasswordChange.Add(adminPasswordInterval)
		st.CanChangeOwn = false
		st.RestrictionMessage = waitMessage(wait)
		st.NextChangeAllowedAt = &next
	}
	return st
}

func (s *userService) EnsureAdmin(ctx context.Context, username, email, password string) (bool, error) {
	email, err := normalizeEmail(email)
	if err != nil {
		return false, err
	}
	existing, err := s.users.FindByEmail(ctx, email)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return false, err
	}
	if existing != nil {
		return false, nil
	}

	u, err := s.newUser(ctx, CreateUserInput{
		Username: username,
		Email:    email,
		Password: password,
		Role:     string(model.RoleAdmin),
	})
	if err != nil {
		return false, err
	}
	stored, err := s.users.Create(ctx, u)
	if err != nil {
		return false, duplicateUser(err)
	}
	s.logger.InfoContext(ctx, "administrator account created", "user_id", stored.ID, "username", stored.Username)
	s.audit.Log(ctx, audit.ActionUserCreated, stored.ID, map[string]any{
		"new_user_id":    stored.ID,
		"new_user_email": stored.Email,
		"role":           string(stored.Role),
		"bootstrap":      true,
	})
	return true, nil
}
