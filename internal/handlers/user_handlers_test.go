package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/devcampdir/api/internal/models"
	"github.com/devcampdir/api/internal/utils"
)

// mockUserService implements UserServiceInterface with function fields.
type mockUserService struct {
	listFunc   func(ctx context.Context, limit, offset int) ([]*models.User, int, error)
	getFunc    func(ctx context.Context, id int64) (*models.User, error)
	createFunc func(ctx context.Context, req *models.UserCreate) (*models.User, error)
	updateFunc func(ctx context.Context, id int64, req *models.UserUpdate) (*models.User, error)
	deleteFunc func(ctx context.Context, id int64) error
}

func (m *mockUserService) List(ctx context.Context, limit, offset int) ([]*models.User, int, error) {
	return m.listFunc(ctx, limit, offset)
}

func (m *mockUserService) Get(ctx context.Context, id int64) (*models.User, error) {
	return m.getFunc(ctx, id)
}

func (m *mockUserService) Create(ctx context.Context, req *models.UserCreate) (*models.User, error) {
	return m.createFunc(ctx, req)
}

func (m *mockUserService) Update(ctx context.Context, id int64, req *models.UserUpdate) (*models.User, error) {
	return m.updateFunc(ctx, id, req)
}

func (m *mockUserService) Delete(ctx context.Context, id int64) error {
	return m.deleteFunc(ctx, id)
}

func TestUserHandler_List(t *testing.T) {
	users := &mockUserService{
		listFunc: func(ctx context.Context, limit, offset int) ([]*models.User, int, error) {
			return []*models.User{{ID: 1, Name: "Jamie", Email: "jamie@example.com", Role: "user"}}, 1, nil
		},
	}
	handler := NewUserHandler(users)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/users", nil)
	rec := httptest.NewRecorder()

	handler.List(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	resp := decodeResponse(t, rec)
	require.NotNil(t, resp.Count)
	assert.Equal(t, 1, *resp.Count)

	// Credential fields must never leak into the payload
	assert.NotContains(t, rec.Body.String(), "password")
	assert.NotContains(t, rec.Body.String(), "salt")
}

func TestUserHandler_Get(t *testing.T) {
	users := &mockUserService{
		getFunc: func(ctx context.Context, id int64) (*models.User, error) {
			assert.Equal(t, int64(1), id)
			return &models.User{ID: 1, Name: "Jamie", Email: "jamie@example.com", Role: "user"}, nil
		},
	}
	handler := NewUserHandler(users)

	rec := httptest.NewRecorder()
	handler.Get(rec, idRequest(t, http.MethodGet, "/api/v1/users/1", nil, 1))

	assert.Equal(t, http.StatusOK, rec.Code)
	resp := decodeResponse(t, rec)
	data, ok := resp.Data.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "jamie@example.com", data["email"])
}

func TestUserHandler_Create(t *testing.T) {
	users := &mockUserService{
		createFunc: func(ctx context.Context, req *models.UserCreate) (*models.User, error) {
			return &models.User{ID: 4, Name: req.Name, Email: req.Email, Role: req.Role}, nil
		},
	}
	handler := NewUserHandler(users)

	body := jsonBody(t, map[string]string{
		"name":     "Casey Smith",
		"email":    "casey@example.com",
		"password": "Str0ngPass!",
		"role":     "publisher",
	})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/users", body)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	handler.Create(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)
	resp := decodeResponse(t, rec)
	data, ok := resp.Data.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "publisher", data["role"])
}

func TestUserHandler_Create_DuplicateEmail(t *testing.T) {
	users := &mockUserService{
		createFunc: func(ctx context.Context, req *models.UserCreate) (*models.User, error) {
			return nil, utils.NewDuplicateError("User", "email", req.Email)
		},
	}
	handler := NewUserHandler(users)

	body := jsonBody(t, map[string]string{
		"name":     "Casey Smith",
		"email":    "casey@example.com",
		"password": "Str0ngPass!",
	})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/users", body)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	handler.Create(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUserHandler_Update(t *testing.T) {
	users := &mockUserService{
		updateFunc: func(ctx context.Context, id int64, req *models.UserUpdate) (*models.User, error) {
			assert.Equal(t, int64(4), id)
			return &models.User{ID: 4, Name: "Casey Smith", Email: "casey@example.com", Role: req.Role}, nil
		},
	}
	handler := NewUserHandler(users)

	body := jsonBody(t, map[string]string{"role": "admin"})
	rec := httptest.NewRecorder()
	handler.Update(rec, idRequest(t, http.MethodPut, "/api/v1/users/4", body, 4))

	assert.Equal(t, http.StatusOK, rec.Code)
	resp := decodeResponse(t, rec)
	data, ok := resp.Data.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "admin", data["role"])
}

func TestUserHandler_Delete_NotFound(t *testing.T) {
	users := &mockUserService{
		deleteFunc: func(ctx context.Context, id int64) error {
			return utils.NewNotFoundError("User", id)
		},
	}
	handler := NewUserHandler(users)

	rec := httptest.NewRecorder()
	handler.Delete(rec, idRequest(t, http.MethodDelete, "/api/v1/users/99", nil, 99))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
