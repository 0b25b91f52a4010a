package models

import (
	"time"
)

// Bootcamp represents a bootcamp directory entry.
type Bootcamp struct {
	ID            int64     `json:"id" db:"bootcamp_id"`
	Name          string    `json:"name" db:"name" validate:"required,max=50"`
	Description   string    `json:"description" db:"description" validate:"required,max=500"`
	Website       string    `json:"website,omitempty" db:"website" validate:"omitempty,url"`
	Phone         string    `json:"phone,omitempty" db:"phone" validate:"omitempty,max=20"`
	Email         string    `json:"email,omitempty" db:"email" validate:"omitempty,email"`
	Address       string    `json:"address" db:"address" validate:"required"`
	Careers       []string  `json:"careers" db:"careers" validate:"required,min=1,dive,oneof='Web Development' 'Mobile Development' 'UI/UX' 'Data Science' 'Business' 'Other'"`
	Housing       bool      `json:"housing" db:"housing"`
	JobAssistance bool      `json:"jobAssistance" db:"job_assistance"`
	AverageCost   float64   `json:"averageCost,omitempty" db:"average_cost"`
	CreatedAt     time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt     time.Time `json:"updatedAt" db:"updated_at"`
}

// TableName returns the database table name for the Bootcamp model.
func (b *Bootcamp) TableName() string {
	return "bootcamps"
}

// BootcampCreate represents the data required to create a bootcamp.
type BootcampCreate struct {
	Name          string   `json:"name" validate:"required,max=50"`
	Description   string   `json:"description" validate:"required,max=500"`
	Website       string   `json:"website" validate:"omitempty,url"`
	Phone         string   `json:"phone" validate:"omitempty,max=20"`
	Email         string   `json:"email" validate:"omitempty,email"`
	Address       string   `json:"address" validate:"required"`
	Careers       []string `json:"careers" validate:"required,min=1,dive,oneof='Web Development' 'Mobile Development' 'UI/UX' 'Data Science' 'Business' 'Other'"`
	Housing       bool     `json:"housing"`
	JobAssistance bool     `json:"jobAssistance"`
	AverageCost   float64  `json:"averageCost" validate:"omitempty,gte=0"`
}

// BootcampUpdate represents a partial update of a bootcamp. Zero values mean
// "leave unchanged".
type BootcampUpdate struct {
	Name          string   `json:"name" validate:"omitempty,max=50"`
	Description   string   `json:"description" validate:"omitempty,max=500"`
	Website       string   `json:"website" validate:"omitempty,url"`
	Phone         string   `json:"phone" validate:"omitempty,max=20"`
	Email         string   `json:"email" validate:"omitempty,email"`
	Address       string   `json:"address"`
	Careers       []string `json:"careers" validate:"omitempty,min=1,dive,oneof='Web Development' 'Mobile Development' 'UI/UX' 'Data Science' 'Business' 'Other'"`
	Housing       *bool    `json:"housing"`
	JobAssistance *bool    `json:"jobAssistance"`
	AverageCost   *float64 `json:"averageCost" validate:"omitempty,gte=0"`
}
