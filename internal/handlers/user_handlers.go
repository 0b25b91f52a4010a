package handlers

import (
	"net/http"

	"github.com/devcampdir/api/internal/models"
	"github.com/devcampdir/api/internal/utils"
)

// UserHandler serves admin-only user management. The router restricts
// these routes to the admin role.
type UserHandler struct {
	users UserServiceInterface
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(users UserServiceInterface) *UserHandler {
	return &UserHandler{users: users}
}

// List returns all users
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	params := utils.GetPaginationParams(r)

	users, total, err := h.users.List(r.Context(), params.PageSize, params.Offset())
	if err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	if users == nil {
		users = []*models.User{}
	}

	utils.Collection(w, http.StatusOK, total, users)
}

// Get returns a single user by ID
func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	user, err := h.users.Get(r.Context(), id)
	if err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	utils.JSON(w, http.StatusOK, user)
}

// Create adds a new user
func (h *UserHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.UserCreate
	if err := utils.DecodeAndValidate(r, &req); err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	user, err := h.users.Create(r.Context(), &req)
	if err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	utils.JSON(w, http.StatusCreated, user)
}

// Update applies a partial update to a user
func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	var req models.UserUpdate
	if err := utils.DecodeAndValidate(r, &req); err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	user, err := h.users.Update(r.Context(), id, &req)
	if err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	utils.JSON(w, http.StatusOK, user)
}

// Delete removes a user
func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	if err := h.users.Delete(r.Context(), id); err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	utils.JSON(w, http.StatusOK, struct{}{})
}
