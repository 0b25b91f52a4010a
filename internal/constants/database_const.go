// Package constants provides shared constant values used throughout the application.
//
// The database_const.go file defines table and column names. Using these
// constants instead of string literals keeps SQL consistent and makes schema
// changes easier to land.
package constants

// Table Names
const (
	// TableUsers stores user accounts, credentials, and reset-token state.
	TableUsers = "users"

	// TableBootcamps stores bootcamp directory entries.
	TableBootcamps = "bootcamps"

	// TableCourses stores courses offered by bootcamps.
	TableCourses = "courses"

	// TableReviews stores user reviews of bootcamps.
	TableReviews = "reviews"
)

// Common Column Names
const (
	ColumnUserID     = "user_id"
	ColumnBootcampID = "bootcamp_id"
	ColumnCourseID   = "course_id"
	ColumnReviewID   = "review_id"
	ColumnEmail      = "email"
	ColumnName       = "name"
	ColumnPassword   = "password_hash"
	ColumnSalt       = "salt"
	ColumnRole       = "role"
	ColumnResetToken = "reset_token_hash"
	ColumnResetExp   = "reset_token_expires_at"
	ColumnCreatedAt  = "created_at"
	ColumnUpdatedAt  = "updated_at"
)

// User Roles
const (
	RoleUser      = "user"
	RolePublisher = "publisher"
	RoleAdmin     = "admin"
)
