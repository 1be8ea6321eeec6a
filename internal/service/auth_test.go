package service

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"gedo/internal/audit"
	"gedo/internal/auth"
	"gedo/internal/logging"
	"gedo/internal/model"
	repoMocks "gedo/internal/repository/mocks"
	"gedo/internal/security"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const (
	testIP = "10.0.0.1"
	testUA = "Mozilla/5.0"
)

type authDeps struct {
	users   *repoMocks.MockUserRepository
	lockout *security.Manager
	tokens  *auth.Tokens
	audit   *recordingAuditor
}

func newAuthService(t *testing.T) (AuthService, authDeps) {
	t.Helper()
	tokens, err := auth.NewTokens("test-secret", time.Hour)
	require.NoError(t, err)
	d := authDeps{
		users:   new(repoMocks.MockUserRepository),
		lockout: security.NewManager(security.NewMemoryStore(), logging.Discard()),
		tokens:  tokens,
		audit:   &recordingAuditor{},
	}
	return NewAuthService(d.users, d.lockout, d.tokens, d.audit, logging.Discard()), d
}

func testUser(t *testing.T, password string) *model.User {
	t.Helper()
	hash, err := auth.HashPassword(password)
	require.NoError(t, err)
	return &model.User{
		ID:           "u-1",
		Email:        "maria@obra.com",
		PasswordHash: hash,
		Role:         model.RoleUser,
		ObraID:       "obra-1",
		Active:       true,
	}
}

func TestAuthService_Login_Success(t *testing.T) {
	ctx := context.Background()
	svc, d := newAuthService(t)
	u := testUser(t, "s3nha")
	u.MustChangePassword = true
	d.users.On("FindByEmail", ctx, "maria@obra.com").Return(u, nil)
	d.users.On("UpdateLastLogin", ctx, "u-1", mock.AnythingOfType("time.Time")).Return(nil)

	res, err := svc.Login(ctx, " maria@obra.com ", "s3nha", testIP, testUA)

	require.NoError(t, err)
	assert.Equal(t, u, res.User)
	assert.Equal(t, PasswordChangeWarning, res.Warning)
	claims, err := d.tokens.Parse(res.Token)
	require.NoError(t, err)
	assert.Equal(t, "u-1", claims.UserID)
	assert.Equal(t, string(model.RoleUser), claims.Role)
	assert.Equal(t, []string{audit.ActionLoginSuccess}, d.audit.Actions())
	d.users.AssertExpectations(t)
}

func TestAuthService_Login_AdminResetWarning(t *testing.T) {
	ctx := context.Background()
	svc, d := newAuthService(t)
	u := testUser(t, "s3nha")
	u.MustChangePassword = true
	u.PasswordChangedByAdmin = true
	d.users.On("FindByEmail", ctx, "maria@obra.com").Return(u, nil)
	d.users.On("UpdateLastLogin", ctx, "u-1", mock.AnythingOfType("time.Time")).Return(nil)

	res, err := svc.Login(ctx, "Maria@Obra.com", "s3nha", testIP, testUA)

	require.NoError(t, err)
	assert.Equal(t, PasswordResetByAdminWarning, res.Warning)
}

func TestAuthService_Login_LastLoginFailureIsIgnored(t *testing.T) {
	ctx := context.Background()
	svc, d := newAuthService(t)
	d.users.On("FindByEmail", ctx, "maria@obra.com").Return(testUser(t, "s3nha"), nil)
	d.users.On("UpdateLastLogin", ctx, "u-1", mock.Anything).Return(errors.New("db fail"))

	res, err := svc.Login(ctx, "maria@obra.com", "s3nha", testIP, testUA)

	require.NoError(t, err)
	assert.NotEmpty(t, res.Token)
	assert.Empty(t, res.Warning)
}

func TestAuthService_Login_Validation(t *testing.T) {
	svc, _ := newAuthService(t)

	_, err := svc.Login(context.Background(), "", "x", testIP, testUA)

	var verr *ValidationError
	assert.ErrorAs(t, err, &verr)
}

func TestAuthService_Login_WrongPasswordThenBlocked(t *testing.T) {
	ctx := context.Background()
	svc, d := newAuthService(t)
	d.users.On("FindByEmail", ctx, "maria@obra.com").Return(testUser(t, "s3nha"), nil)

	for i := 0; i < 2; i++ {
		_, err := svc.Login(ctx, "maria@obra.com", "errada", testIP, testUA)
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	}

	_, err := svc.Login(ctx, "maria@obra.com", "errada", testIP, testUA)
	be, ok := security.IsBlockedError(err)
	require.True(t, ok)
	assert.Equal(t, int64(900), be.RemainingSeconds())

	// Even the right password is refused while blocked.
	_, err = svc.Login(ctx, "maria@obra.com", "s3nha", testIP, testUA)
	_, ok = security.IsBlockedError(err)
	assert.True(t, ok)

	assert.Equal(t, []string{
		audit.ActionLoginFailed,
		audit.ActionLoginFailed,
		audit.ActionLoginFailed,
		audit.ActionLoginBlocked,
	}, d.audit.Actions())
	d.users.AssertNotCalled(t, "UpdateLastLogin", mock.Anything, mock.Anything, mock.Anything)
}

func TestAuthService_Login_UnknownEmailCountsAsFailure(t *testing.T) {
	ctx := context.Background()
	svc, d := newAuthService(t)
	d.users.On("FindByEmail", ctx, "ghost@obra.com").Return(nil, sql.ErrNoRows)

	_, err := svc.Login(ctx, "ghost@obra.com", "x", testIP, testUA)

	assert.ErrorIs(t, err, ErrInvalidCredentials)
	st, err := d.lockout.Snapshot(ctx, security.Identity(testIP, testUA))
	require.NoError(t, err)
	assert.Len(t, st.Attempts, 1)
}

func TestAuthService_Login_OtherClientNotBlocked(t *testing.T) {
	ctx := context.Background()
	svc, d := newAuthService(t)
	d.users.On("FindByEmail", ctx, "maria@obra.com").Return(testUser(t, "s3nha"), nil)
	d.users.On("UpdateLastLogin", ctx, "u-1", mock.Anything).Return(nil)

	for i := 0; i < 3; i++ {
		_, _ = svc.Login(ctx, "maria@obra.com", "errada", testIP, testUA)
	}

	_, err := svc.Login(ctx, "maria@obra.com", "s3nha", "10.0.0.2", testUA)
	assert.NoError(t, err)
}

func TestAuthService_Login_Inactive(t *testing.T) {
	ctx := context.Background()
	svc, d := newAuthService(t)
	u := testUser(t, "s3nha")
	u.Active = false
	d.users.On("FindByEmail", ctx, "maria@obra.com").Return(u, nil)

	_, err := svc.Login(ctx, "maria@obra.com", "s3nha", testIP, testUA)

	assert.ErrorIs(t, err, ErrInactiveUser)
	d.users.AssertNotCalled(t, "UpdateLastLogin", mock.Anything, mock.Anything, mock.Anything)
}

func TestAuthService_Login_RepositoryError(t *testing.T) {
	ctx := context.Background()
	svc, d := newAuthService(t)
	d.users.On("FindByEmail", ctx, "maria@obra.com").Return(nil, errors.New("db fail"))

	_, err := svc.Login(ctx, "maria@obra.com", "s3nha", testIP, testUA)

	assert.EqualError(t, err, "db fail")
	assert.Empty(t, d.audit.Actions())
}

func TestAuthService_Me(t *testing.T) {
	ctx := context.Background()

	t.Run("found", func(t *testing.T) {
		svc, d := newAuthService(t)
		d.users.On("FindByID", ctx, "u-1").Return(&model.User{ID: "u-1"}, nil)
		u, err := svc.Me(ctx, "u-1")
		require.NoError(t, err)
		assert.Equal(t, "u-1", u.ID)
	})

	t.Run("not found", func(t *testing.T) {
		svc, d := newAuthService(t)
		d.users.On("FindByID", ctx, "u-9").Return(nil, sql.ErrNoRows)
		_, err := svc.Me(ctx, "u-9")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("empty id", func(t *testing.T) {
		svc, _ := newAuthService(t)
		_, err := svc.Me(ctx, "")
		assert.ErrorIs(t, err, ErrIDRequired)
	})
}
