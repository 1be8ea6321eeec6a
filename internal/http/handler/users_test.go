package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"gedo/internal/model"
	"gedo/internal/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestUserRoutes_AdminOnly(t *testing.T) {
	ta := newTestApp(t)

	for _, req := range []*http.Request{
		httptest.NewRequest(http.MethodGet, "/api/auth/users", nil),
		jsonRequest(http.MethodPost, "/api/auth/register", `{"username":"joao"}`),
		jsonRequest(http.MethodPost, "/api/auth/admin/change-user-password", `{}`),
		httptest.NewRequest(http.MethodDelete, "/api/auth/users/"+uuid.NewString(), nil),
	} {
		resp := ta.do(t, req)

		assert.Equal(t, http.StatusForbidden, resp.StatusCode, req.URL.Path)
		assert.Equal(t, "ADMIN_REQUIRED", decodeError(t, resp).Error.Code)
	}
	assert.Empty(t, ta.accounts.Calls)
}

func TestListUsers(t *testing.T) {
	ta := newTestApp(t)
	ta.accounts.On("List", mock.Anything, ta.admin).Return([]model.User{*ta.admin, *ta.user}, nil).Once()

	resp := ta.do(t, ta.asAdmin(httptest.NewRequest(http.MethodGet, "/api/auth/users", nil)))

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var users []model.User
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&users))
	assert.Len(t, users, 2)
}

func TestCreateUser(t *testing.T) {
	obraID := uuid.NewString()
	body := `{"username":"joao","email":"joao@obra.com","password":"Senha123","tipo_usuario":"usuario_padrao","obra_id":"` + obraID + `"}`
	in := service.CreateUserInput{
		Username: "joao",
		Email:    "joao@obra.com",
		Password: "Senha123",
		Role:     "usuario_padrao",
		ObraID:   obraID,
	}

	t.Run("created", func(t *testing.T) {
		ta := newTestApp(t)
		ta.accounts.On("Create", mock.Anything, ta.admin, in).
			Return(&model.User{ID: uuid.NewString(), Username: "joao", MustChangePassword: true}, nil).Once()

		resp := ta.do(t, ta.asAdmin(jsonRequest(http.MethodPost, "/api/auth/register", body)))

		assert.Equal(t, http.StatusCreated, resp.StatusCode)
		var u model.User
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&u))
		assert.True(t, u.MustChangePassword)
		ta.accounts.AssertExpectations(t)
	})

	t.Run("email taken", func(t *testing.T) {
		ta := newTestApp(t)
		ta.accounts.On("Create", mock.Anything, ta.admin, in).Return(nil, &service.ConflictError{Message: "Email já está em uso"}).Once()

		resp := ta.do(t, ta.asAdmin(jsonRequest(http.MethodPost, "/api/auth/register", body)))

		assert.Equal(t, http.StatusConflict, resp.StatusCode)
		e := decodeError(t, resp)
		assert.Equal(t, "CONFLICT", e.Error.Code)
		assert.Equal(t, "Email já está em uso", e.Error.Message)
	})

	t.Run("malformed obra id", func(t *testing.T) {
		ta := newTestApp(t)

		resp := ta.do(t, ta.asAdmin(jsonRequest(http.MethodPost, "/api/auth/register", `{"obra_id":"x"}`)))

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "INVALID_ID", decodeError(t, resp).Error.Code)
	})
}

func TestUpdateUser(t *testing.T) {
	ta := newTestApp(t)
	id := uuid.NewString()
	ta.accounts.On("Update", mock.Anything, ta.admin, id, mock.MatchedBy(func(in service.UpdateUserInput) bool {
		return in.Active != nil && !*in.Active && in.Email == nil && in.Role == nil
	})).Return(&model.User{ID: id}, nil).Once()

	resp := ta.do(t, ta.asAdmin(jsonRequest(http.MethodPut, "/api/auth/users/"+id, `{"ativo":false}`)))

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	ta.accounts.AssertExpectations(t)
}

func TestDeleteUser(t *testing.T) {
	t.Run("deleted", func(t *testing.T) {
		ta := newTestApp(t)
		id := uuid.NewString()
		ta.accounts.On("Delete", mock.Anything, ta.admin, id).Return(nil).Once()

		resp := ta.do(t, ta.asAdmin(httptest.NewRequest(http.MethodDelete, "/api/auth/users/"+id, nil)))

		assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	})

	t.Run("unknown user", func(t *testing.T) {
		ta := newTestApp(t)
		id := uuid.NewString()
		ta.accounts.On("Delete", mock.Anything, ta.admin, id).Return(service.ErrUserNotFound).Once()

		resp := ta.do(t, ta.asAdmin(httptest.NewRequest(http.MethodDelete, "/api/auth/users/"+id, nil)))

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		assert.Equal(t, "USER_NOT_FOUND", decodeError(t, resp).Error.Code)
	})
}

func TestChangePassword(t *testing.T) {
	t.Run("own password", func(t *testing.T) {
		ta := newTestApp(t)
		ta.accounts.On("ChangePassword", mock.Anything, ta.user, "Antiga1", "Nova123").
			Return(&service.PasswordStatus{CanChangeOwn: true}, nil).Once()

		resp := ta.do(t, jsonRequest(http.MethodPost, "/api/auth/change-password", `{"current_password":"Antiga1","new_password":"Nova123"}`))

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		var st service.PasswordStatus
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&st))
		assert.False(t, st.MustChange)
	})

	t.Run("wrong current password", func(t *testing.T) {
		ta := newTestApp(t)
		ta.accounts.On("ChangePassword", mock.Anything, ta.user, "x", "Nova123").
			Return(nil, &service.ValidationError{Message: "Senha atual incorreta"}).Once()

		resp := ta.do(t, jsonRequest(http.MethodPost, "/api/auth/change-password", `{"current_password":"x","new_password":"Nova123"}`))

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "Senha atual incorreta", decodeError(t, resp).Error.Message)
	})

	t.Run("status", func(t *testing.T) {
		ta := newTestApp(t)
		ta.accounts.On("PasswordStatus", mock.Anything, ta.user).Return(&service.PasswordStatus{MustChange: true, CanChangeOwn: true}, nil).Once()

		resp := ta.do(t, httptest.NewRequest(http.MethodGet, "/api/auth/password-status", nil))

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		var body map[string]any
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.Equal(t, true, body["must_change"])
	})
}

func TestAdminChangePassword(t *testing.T) {
	t.Run("reset", func(t *testing.T) {
		ta := newTestApp(t)
		ta.accounts.On("AdminChangePassword", mock.Anything, ta.admin, ta.user.ID, "Nova123").
			Return(&model.User{ID: ta.user.ID, MustChangePassword: true, PasswordChangedByAdmin: true}, nil).Once()

		resp := ta.do(t, ta.asAdmin(jsonRequest(http.MethodPost, "/api/auth/admin/change-user-password",
			`{"user_id":"`+ta.user.ID+`","new_password":"Nova123"}`)))

		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("another administrator", func(t *testing.T) {
		ta := newTestApp(t)
		target := uuid.NewString()
		ta.accounts.On("AdminChangePassword", mock.Anything, ta.admin, target, "Nova123").Return(nil, service.ErrForbidden).Once()

		resp := ta.do(t, ta.asAdmin(jsonRequest(http.MethodPost, "/api/auth/admin/change-user-password",
			`{"user_id":"`+target+`","new_password":"Nova123"}`)))

		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	})

	t.Run("malformed user id", func(t *testing.T) {
		ta := newTestApp(t)

		resp := ta.do(t, ta.asAdmin(jsonRequest(http.MethodPost, "/api/auth/admin/change-user-password", `{"user_id":"1"}`)))

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Empty(t, ta.accounts.Calls)
	})
}
