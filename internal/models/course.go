package models

import (
	"time"
)

// Course represents a course offered by a bootcamp.
type Course struct {
	ID                    int64     `json:"id" db:"course_id"`
	BootcampID            int64     `json:"bootcampId" db:"bootcamp_id" validate:"required"`
	Title                 string    `json:"title" db:"title" validate:"required,max=100"`
	Description           string    `json:"description" db:"description" validate:"required"`
	DurationWeeks         int       `json:"durationWeeks" db:"duration_weeks" validate:"required,gte=1"`
	Tuition               float64   `json:"tuition" db:"tuition" validate:"required,gte=0"`
	MinimumSkill          string    `json:"minimumSkill" db:"minimum_skill" validate:"required,oneof=beginner intermediate advanced"`
	ScholarshipsAvailable bool      `json:"scholarshipsAvailable" db:"scholarships_available"`
	CreatedAt             time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt             time.Time `json:"updatedAt" db:"updated_at"`
}

// TableName returns the database table name for the Course model.
func (c *Course) TableName() string {
	return "courses"
}

// CourseCreate represents the data required to create a course.
// The bootcamp is taken from the URL, not the body.
type CourseCreate struct {
	Title                 string  `json:"title" validate:"required,max=100"`
	Description           string  `json:"description" validate:"required"`
	DurationWeeks         int     `json:"durationWeeks" validate:"required,gte=1"`
	Tuition               float64 `json:"tuition" validate:"required,gte=0"`
	MinimumSkill          string  `json:"minimumSkill" validate:"required,oneof=beginner intermediate advanced"`
	ScholarshipsAvailable bool    `json:"scholarshipsAvailable"`
}

// CourseUpdate represents a partial update of a course.
type CourseUpdate struct {
	Title                 string   `json:"title" validate:"omitempty,max=100"`
	Description           string   `json:"description"`
	DurationWeeks         *int     `json:"durationWeeks" validate:"omitempty,gte=1"`
	Tuition               *float64 `json:"tuition" validate:"omitempty,gte=0"`
	MinimumSkill          string   `json:"minimumSkill" validate:"omitempty,oneof=beginner intermediate advanced"`
	ScholarshipsAvailable *bool    `json:"scholarshipsAvailable"`
}
