package models

import (
	"time"
)

// Review represents a user's review of a bootcamp.
// Each user may review a bootcamp at most once.
type Review struct {
	ID         int64     `json:"id" db:"review_id"`
	BootcampID int64     `json:"bootcampId" db:"bootcamp_id" validate:"required"`
	UserID     int64     `json:"userId" db:"user_id" validate:"required"`
	Title      string    `json:"title" db:"title" validate:"required,max=100"`
	Text       string    `json:"text" db:"text" validate:"required"`
	Rating     int       `json:"rating" db:"rating" validate:"required,gte=1,lte=10"`
	CreatedAt  time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt  time.Time `json:"updatedAt" db:"updated_at"`
}

// TableName returns the database table name for the Review model.
func (r *Review) TableName() string {
	return "reviews"
}

// ReviewCreate represents the data required to create a review.
// Bootcamp and author come from the URL and the session.
type ReviewCreate struct {
	Title  string `json:"title" validate:"required,max=100"`
	Text   string `json:"text" validate:"required"`
	Rating int    `json:"rating" validate:"required,gte=1,lte=10"`
}

// ReviewUpdate represents a partial update of a review.
type ReviewUpdate struct {
	Title  string `json:"title" validate:"omitempty,max=100"`
	Text   string `json:"text"`
	Rating *int   `json:"rating" validate:"omitempty,gte=1,lte=10"`
}
