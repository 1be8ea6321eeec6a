package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"gedo/internal/audit"
	"gedo/internal/auth"
	"gedo/internal/model"
	"gedo/internal/repository"
	"gedo/internal/security"
)

// PasswordChangeWarning is returned with a successful login when the account
// still has to replace its initial password.
const PasswordChangeWarning = "É necessário alterar a senha no primeiro acesso"

// PasswordResetByAdminWarning replaces PasswordChangeWarning when an
// administrator reset the password.
const PasswordResetByAdminWarning = "Sua senha foi alterada pelo administrador. Você deve criar uma nova senha."

// Lockout gates logins per client identity. *security.Manager implements it.
type Lockout interface {
	IsBlocked(ctx context.Context, id string) (bool, time.Duration, error)
	RegisterFailure(ctx context.Context, id string) (security.Failure, error)
	RegisterSuccess(ctx context.Context, id string) error
}

// TokenIssuer signs login tokens. *auth.Tokens implements it.
type TokenIssuer interface {
	Generate(userID, role string) (string, error)
}

type LoginResult struct {
	Token   string      `json:"access_token"`
	User    *model.User `json:"user"`
	Warning string      `json:"warning,omitempty"`
}

// AuthService authenticates users behind the progressive lockout.
type AuthService interface {
	// Login returns *security.BlockedError while the client is blocked,
	// including when this very attempt triggered the block.
	Login(ctx context.Context, email, password, ip, userAgent string) (*LoginResult, error)
	Me(ctx context.Context, userID string) (*model.User, error)
}

type authService struct {
	users   repository.UserRepository
	lockout Lockout
	tokens  TokenIssuer
	audit   Auditor
	logger  *slog.Logger
	now     func() time.Time
}

func NewAuthService(users repository.UserRepository, lockout Lockout, tokens TokenIssuer, auditor Auditor, logger *slog.Logger) AuthService {
	return &authService{
		users:   users,
		lockout: lockout,
		tokens:  tokens,
		audit:   auditor,
		logger:  logger,
		now:     func() time.Time { return time.Now().UTC() },
	}
}

func (s *authService) Login(ctx context.Context, email, password, ip, userAgent string) (*LoginResult, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil, invalid("email e senha são obrigatórios")
	}
	id := security.Identity(ip, userAgent)

	blocked, remaining, err := s.lockout.IsBlocked(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("check lockout: %w", err)
	}
	if blocked {
		s.audit.Log(ctx, audit.ActionLoginBlocked, "", map[string]any{
			"email":             email,
			"remaining_seconds": int64(remaining.Seconds()),
		})
		return nil, &security.BlockedError{Remaining: remaining}
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}
	if user == nil || !auth.CheckPassword(user.PasswordHash, password) {
		return nil, s.fail(ctx, id, email, user)
	}
	if !user.Active {
		return nil, ErrInactiveUser
	}

	if err := s.lockout.RegisterSuccess(ctx, id); err != nil {
		return nil, fmt.Errorf("reset lockout: %w", err)
	}
	if err := s.users.UpdateLastLogin(ctx, user.ID, s.now()); err != nil {
		s.logger.WarnContext(ctx, "update last login failed", "user_id", user.ID, "error", err)
	}

	token, err := s.tokens.Generate(user.ID, string(user.Role))
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}
	s.audit.Log(ctx, audit.ActionLoginSuccess, user.ID, map[string]any{"email": email})

	res := &LoginResult{Token: token, User: user}
	switch {
	case user.MustChangePassword && user.PasswordChangedByAdmin:
		res.Warning = PasswordResetByAdminWarning
	case user.MustChangePassword:
		res.Warning = PasswordChangeWarning
	}
	return res, nil
}

func (s *authService) fail(ctx context.Context, id, email string, user *model.User) error {
	f, err := s.lockout.RegisterFailure(ctx, id)
	if err != nil {
		return fmt.Errorf("register failure: %w", err)
	}
	var userID string
	if user != nil {
		userID = user.ID
	}
	s.audit.Log(ctx, audit.ActionLoginFailed, userID, map[string]any{
		"email":    email,
		"attempts": f.Attempts,
		"blocked":  f.Blocked,
	})
	if f.Blocked {
		return &security.BlockedError{Remaining: f.Remaining}
	}
	return ErrInvalidCredentials
}

func (s *authService) Me(ctx context.Context, userID string) (*model.User, error) {
	if userID == "" {
		return nil, ErrIDRequired
	}
	u, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return u, nil
}
