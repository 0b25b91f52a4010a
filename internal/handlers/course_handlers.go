package handlers

import (
	"net/http"

	"github.com/devcampdir/api/internal/models"
	"github.com/devcampdir/api/internal/repository"
	"github.com/devcampdir/api/internal/utils"
)

// CourseHandler serves the flat course collection. Creation happens
// under /bootcamps/{id}/courses and is handled by BootcampHandler.
type CourseHandler struct {
	courses repository.CourseRepository
}

// NewCourseHandler creates a new CourseHandler
func NewCourseHandler(courses repository.CourseRepository) *CourseHandler {
	return &CourseHandler{courses: courses}
}

// List returns all courses across every bootcamp
func (h *CourseHandler) List(w http.ResponseWriter, r *http.Request) {
	params := utils.GetPaginationParams(r)

	courses, total, err := h.courses.List(r.Context(), params.PageSize, params.Offset())
	if err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	if courses == nil {
		courses = []*models.Course{}
	}

	utils.Collection(w, http.StatusOK, total, courses)
}

// Get returns a single course by ID
func (h *CourseHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	course, err := h.courses.GetByID(r.Context(), id)
	if err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	utils.JSON(w, http.StatusOK, course)
}

// Update applies a partial update to a course
func (h *CourseHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	var req models.CourseUpdate
	if err := utils.DecodeAndValidate(r, &req); err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	course, err := h.courses.GetByID(r.Context(), id)
	if err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	if req.Title != "" {
		course.Title = req.Title
	}
	if req.Description != "" {
		course.Description = req.Description
	}
	if req.MinimumSkill != "" {
		course.MinimumSkill = req.MinimumSkill
	}
	if req.DurationWeeks != nil {
		course.DurationWeeks = *req.DurationWeeks
	}
	if req.Tuition != nil {
		course.Tuition = *req.Tuition
	}
	if req.ScholarshipsAvailable != nil {
		course.ScholarshipsAvailable = *req.ScholarshipsAvailable
	}

	if err := h.courses.Update(r.Context(), course); err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	utils.JSON(w, http.StatusOK, course)
}

// Delete removes a course
func (h *CourseHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	if err := h.courses.Delete(r.Context(), id); err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	utils.JSON(w, http.StatusOK, struct{}{})
}
