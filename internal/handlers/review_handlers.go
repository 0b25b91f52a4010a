package handlers

import (
	"net/http"

	"github.com/devcampdir/api/internal/auth"
	"github.com/devcampdir/api/internal/constants"
	"github.com/devcampdir/api/internal/models"
	"github.com/devcampdir/api/internal/repository"
	"github.com/devcampdir/api/internal/utils"
)

// ReviewHandler serves the flat review collection. Creation happens
// under /bootcamps/{id}/reviews and is handled by BootcampHandler.
type ReviewHandler struct {
	reviews repository.ReviewRepository
}

// NewReviewHandler creates a new ReviewHandler
func NewReviewHandler(reviews repository.ReviewRepository) *ReviewHandler {
	return &ReviewHandler{reviews: reviews}
}

// List returns all reviews across every bootcamp
func (h *ReviewHandler) List(w http.ResponseWriter, r *http.Request) {
	params := utils.GetPaginationParams(r)

	reviews, total, err := h.reviews.List(r.Context(), params.PageSize, params.Offset())
	if err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	if reviews == nil {
		reviews = []*models.Review{}
	}

	utils.Collection(w, http.StatusOK, total, reviews)
}

// Get returns a single review by ID
func (h *ReviewHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	review, err := h.reviews.GetByID(r.Context(), id)
	if err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	utils.JSON(w, http.StatusOK, review)
}

// Update applies a partial update to a review. Only the author or an
// admin may change it.
func (h *ReviewHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	var req models.ReviewUpdate
	if err := utils.DecodeAndValidate(r, &req); err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	review, err := h.reviews.GetByID(r.Context(), id)
	if err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	if !h.canModify(r, review) {
		utils.ErrorFromAppError(w, utils.NewForbiddenError(constants.MsgAccessDenied))
		return
	}

	if req.Title != "" {
		review.Title = req.Title
	}
	if req.Text != "" {
		review.Text = req.Text
	}
	if req.Rating != nil {
		review.Rating = *req.Rating
	}

	if err := h.reviews.Update(r.Context(), review); err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	utils.JSON(w, http.StatusOK, review)
}

// Delete removes a review. Only the author or an admin may delete it.
func (h *ReviewHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	review, err := h.reviews.GetByID(r.Context(), id)
	if err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	if !h.canModify(r, review) {
		utils.ErrorFromAppError(w, utils.NewForbiddenError(constants.MsgAccessDenied))
		return
	}

	if err := h.reviews.Delete(r.Context(), id); err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	utils.JSON(w, http.StatusOK, struct{}{})
}

func (h *ReviewHandler) canModify(r *http.Request, review *models.Review) bool {
	role, _ := auth.GetUserRole(r)
	if role == constants.RoleAdmin {
		return true
	}
	userID, ok := auth.GetUserID(r)
	return ok && userID == review.UserID
}
