package handlers

import (
	"net/http"

	"github.com/devcampdir/api/internal/auth"
	"github.com/devcampdir/api/internal/constants"
	"github.com/devcampdir/api/internal/models"
	"github.com/devcampdir/api/internal/repository"
	"github.com/devcampdir/api/internal/utils"
)

// BootcampHandler handles bootcamp CRUD routes, including the nested course
// and review listings.
type BootcampHandler struct {
	bootcamps repository.BootcampRepository
	courses   repository.CourseRepository
	reviews   repository.ReviewRepository
}

// NewBootcampHandler creates a new BootcampHandler
func NewBootcampHandler(
	bootcamps repository.BootcampRepository,
	courses repository.CourseRepository,
	reviews repository.ReviewRepository,
) *BootcampHandler {
	return &BootcampHandler{
		bootcamps: bootcamps,
		courses:   courses,
		reviews:   reviews,
	}
}

// List returns a page of bootcamps
func (h *BootcampHandler) List(w http.ResponseWriter, r *http.Request) {
	params := utils.GetPaginationParams(r)

	bootcamps, _, err := h.bootcamps.List(r.Context(), params.PageSize, params.Offset())
	if err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	if bootcamps == nil {
		bootcamps = []*models.Bootcamp{}
	}
	utils.Collection(w, http.StatusOK, len(bootcamps), bootcamps)
}

// Get returns a single bootcamp by ID
func (h *BootcampHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	bootcamp, err := h.bootcamps.GetByID(r.Context(), id)
	if err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	utils.JSON(w, http.StatusOK, bootcamp)
}

// Create adds a new bootcamp
func (h *BootcampHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.BootcampCreate
	if err := utils.DecodeAndValidate(r, &req); err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	bootcamp := &models.Bootcamp{
		Name:          req.Name,
		Description:   req.Description,
		Website:       req.Website,
		Phone:         req.Phone,
		Email:         req.Email,
		Address:       req.Address,
		Careers:       req.Careers,
		Housing:       req.Housing,
		JobAssistance: req.JobAssistance,
		AverageCost:   req.AverageCost,
	}

	if err := h.bootcamps.Create(r.Context(), bootcamp); err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	utils.JSON(w, http.StatusCreated, bootcamp)
}

// Update applies a partial update to a bootcamp
func (h *BootcampHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	var req models.BootcampUpdate
	if err := utils.DecodeAndValidate(r, &req); err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	bootcamp, err := h.bootcamps.GetByID(r.Context(), id)
	if err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	if req.Name != "" {
		bootcamp.Name = req.Name
	}
	if req.Description != "" {
		bootcamp.Description = req.Description
	}
	if req.Website != "" {
		bootcamp.Website = req.Website
	}
	if req.Phone != "" {
		bootcamp.Phone = req.Phone
	}
	if req.Email != "" {
		bootcamp.Email = req.Email
	}
	if req.Address != "" {
		bootcamp.Address = req.Address
	}
	if req.Careers != nil {
		bootcamp.Careers = req.Careers
	}
	if req.Housing != nil {
		bootcamp.Housing = *req.Housing
	}
	if req.JobAssistance != nil {
		bootcamp.JobAssistance = *req.JobAssistance
	}
	if req.AverageCost != nil {
		bootcamp.AverageCost = *req.AverageCost
	}

	if err := h.bootcamps.Update(r.Context(), bootcamp); err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	utils.JSON(w, http.StatusOK, bootcamp)
}

// Delete removes a bootcamp and its dependent courses and reviews
func (h *BootcampHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	if err := h.bootcamps.Delete(r.Context(), id); err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	utils.JSON(w, http.StatusOK, struct{}{})
}

// ListCourses returns the courses offered by a bootcamp
func (h *BootcampHandler) ListCourses(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	// 404 for a nonexistent bootcamp, not an empty list
	if _, err := h.bootcamps.GetByID(r.Context(), id); err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	courses, err := h.courses.ListByBootcamp(r.Context(), id)
	if err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	if courses == nil {
		courses = []*models.Course{}
	}
	utils.Collection(w, http.StatusOK, len(courses), courses)
}

// ListReviews returns the reviews of a bootcamp
func (h *BootcampHandler) ListReviews(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	if _, err := h.bootcamps.GetByID(r.Context(), id); err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	reviews, err := h.reviews.ListByBootcamp(r.Context(), id)
	if err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	if reviews == nil {
		reviews = []*models.Review{}
	}
	utils.Collection(w, http.StatusOK, len(reviews), reviews)
}

// CreateCourse adds a course under a bootcamp
func (h *BootcampHandler) CreateCourse(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	var req models.CourseCreate
	if err := utils.DecodeAndValidate(r, &req); err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	if _, err := h.bootcamps.GetByID(r.Context(), id); err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	course := &models.Course{
		BootcampID:            id,
		Title:                 req.Title,
		Description:           req.Description,
		DurationWeeks:         req.DurationWeeks,
		Tuition:               req.Tuition,
		MinimumSkill:          req.MinimumSkill,
		ScholarshipsAvailable: req.ScholarshipsAvailable,
	}

	if err := h.courses.Create(r.Context(), course); err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	utils.JSON(w, http.StatusCreated, course)
}

// CreateReview adds a review under a bootcamp authored by the current user
func (h *BootcampHandler) CreateReview(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	userID, ok := auth.GetUserID(r)
	if !ok {
		utils.ErrorFromAppError(w, utils.NewUnauthorizedError(constants.MsgAuthRequired))
		return
	}

	var req models.ReviewCreate
	if err := utils.DecodeAndValidate(r, &req); err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	if _, err := h.bootcamps.GetByID(r.Context(), id); err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	review := &models.Review{
		BootcampID: id,
		UserID:     userID,
		Title:      req.Title,
		Text:       req.Text,
		Rating:     req.Rating,
	}

	if err := h.reviews.Create(r.Context(), review); err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	utils.JSON(w, http.StatusCreated, review)
}
