package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"
	"github.com/rs/zerolog/log"

	"github.com/devcampdir/api/internal/database"
	"github.com/devcampdir/api/internal/models"
	"github.com/devcampdir/api/internal/utils"
)

// CourseRepository defines methods for interacting with course data
type CourseRepository interface {
	Create(ctx context.Context, course *models.Course) error
	GetByID(ctx context.Context, id int64) (*models.Course, error)
	List(ctx context.Context, limit, offset int) ([]*models.Course, int, error)
	ListByBootcamp(ctx context.Context, bootcampID int64) ([]*models.Course, error)
	Update(ctx context.Context, course *models.Course) error
	Delete(ctx context.Context, id int64) error
}

// PostgresCourseRepository is a PostgreSQL implementation of CourseRepository
type PostgresCourseRepository struct {
	db *database.Pool
}

// NewCourseRepository creates a new CourseRepository
func NewCourseRepository(db *database.Pool) CourseRepository {
	return &PostgresCourseRepository{
		db: db,
	}
}

const courseColumns = `course_id, bootcamp_id, title, description, duration_weeks, tuition, minimum_skill, scholarships_available, created_at, updated_at`

func scanCourse(row interface{ Scan(...interface{}) error }) (*models.Course, error) {
	course := &models.Course{}
	err := row.Scan(
		&course.ID,
		&course.BootcampID,
		&course.Title,
		&course.Description,
		&course.DurationWeeks,
		&course.Tuition,
		&course.MinimumSkill,
		&course.ScholarshipsAvailable,
		&course.CreatedAt,
		&course.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return course, nil
}

// Create adds a new course to the database
func (r *PostgresCourseRepository) Create(ctx context.Context, course *models.Course) error {
	startTime := time.Now()

	now := time.Now()
	course.CreatedAt = now
	course.UpdatedAt = now

	query := `
        INSERT INTO courses (bootcamp_id, title, description, duration_weeks, tuition, minimum_skill, scholarships_available, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
        RETURNING course_id
    `

	err := r.db.QueryRowContext(
		ctx,
		query,
		course.BootcampID,
		course.Title,
		course.Description,
		course.DurationWeeks,
		course.Tuition,
		course.MinimumSkill,
		course.ScholarshipsAvailable,
		course.CreatedAt,
		course.UpdatedAt,
	).Scan(&course.ID)

	utils.LogDBQuery(
		query,
		[]interface{}{course.BootcampID, course.Title, course.Description, course.DurationWeeks, course.Tuition, course.MinimumSkill, course.ScholarshipsAvailable, course.CreatedAt, course.UpdatedAt},
		time.Since(startTime),
		err,
	)

	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			// 23503 is foreign_key_violation: the bootcamp doesn't exist
			if pqErr.Code == "23503" {
				return utils.NewNotFoundError("Bootcamp", course.BootcampID)
			}
		}
		return fmt.Errorf("failed to create course: %w", err)
	}

	log.Info().
		Int64("course_id", course.ID).
		Int64("bootcamp_id", course.BootcampID).
		Str("title", course.Title).
		Msg("Course created")

	return nil
}

// GetByID retrieves a course by ID
func (r *PostgresCourseRepository) GetByID(ctx context.Context, id int64) (*models.Course, error) {
	startTime := time.Now()

	query := `
        SELECT ` + courseColumns + `
        FROM courses
        WHERE course_id = $1
    `

	course, err := scanCourse(r.db.QueryRowContext(ctx, query, id))

	utils.LogDBQuery(
		query,
		[]interface{}{id},
		time.Since(startTime),
		err,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, utils.NewNotFoundError("Course", id)
		}
		return nil, fmt.Errorf("failed to get course by ID: %w", err)
	}

	return course, nil
}

// List retrieves a page of courses and the total course count
func (r *PostgresCourseRepository) List(ctx context.Context, limit, offset int) ([]*models.Course, int, error) {
	startTime := time.Now()

	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM courses`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count courses: %w", err)
	}

	query := `
        SELECT ` + courseColumns + `
        FROM courses
        ORDER BY course_id
        LIMIT $1 OFFSET $2
    `

	rows, err := r.db.QueryContext(ctx, query, limit, offset)

	utils.LogDBQuery(
		query,
		[]interface{}{limit, offset},
		time.Since(startTime),
		err,
	)

	if err != nil {
		return nil, 0, fmt.Errorf("failed to list courses: %w", err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			log.Error().Err(closeErr).Msg("failed to close rows")
		}
	}()

	var courses []*models.Course
	for rows.Next() {
		course, err := scanCourse(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan course: %w", err)
		}
		courses = append(courses, course)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating courses: %w", err)
	}

	return courses, total, nil
}

// ListByBootcamp retrieves all courses offered by a bootcamp
func (r *PostgresCourseRepository) ListByBootcamp(ctx context.Context, bootcampID int64) ([]*models.Course, error) {
	startTime := time.Now()

	query := `
        SELECT ` + courseColumns + `
        FROM courses
        WHERE bootcamp_id = $1
        ORDER BY course_id
    `

	rows, err := r.db.QueryContext(ctx, query, bootcampID)

	utils.LogDBQuery(
		query,
		[]interface{}{bootcampID},
		time.Since(startTime),
		err,
	)

	if err != nil {
		return nil, fmt.Errorf("failed to list courses by bootcamp: %w", err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			log.Error().Err(closeErr).Msg("failed to close rows")
		}
	}()

	var courses []*models.Course
	for rows.Next() {
		course, err := scanCourse(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan course: %w", err)
		}
		courses = append(courses, course)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating courses: %w", err)
	}

	return courses, nil
}

// Update updates a course in the database
func (r *PostgresCourseRepository) Update(ctx context.Context, course *models.Course) error {
	startTime := time.Now()

	course.UpdatedAt = time.Now()

	query := `
        UPDATE courses
        SET title = $1, description = $2, duration_weeks = $3, tuition = $4, minimum_skill = $5, scholarships_available = $6, updated_at = $7
        WHERE course_id = $8
    `

	result, err := r.db.ExecContext(
		ctx,
		query,
		course.Title,
		course.Description,
		course.DurationWeeks,
		course.Tuition,
		course.MinimumSkill,
		course.ScholarshipsAvailable,
		course.UpdatedAt,
		course.ID,
	)

	utils.LogDBQuery(
		query,
		[]interface{}{course.Title, course.Description, course.DurationWeeks, course.Tuition, course.MinimumSkill, course.ScholarshipsAvailable, course.UpdatedAt, course.ID},
		time.Since(startTime),
		err,
	)

	if err != nil {
		return fmt.Errorf("failed to update course: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return utils.NewNotFoundError("Course", course.ID)
	}

	log.Info().
		Int64("course_id", course.ID).
		Str("title", course.Title).
		Msg("Course updated")

	return nil
}

// Delete removes a course from the database
func (r *PostgresCourseRepository) Delete(ctx context.Context, id int64) error {
	startTime := time.Now()

	query := "DELETE FROM courses WHERE course_id = $1"
	result, err := r.db.ExecContext(ctx, query, id)

	utils.LogDBQuery(
		query,
		[]interface{}{id},
		time.Since(startTime),
		err,
	)

	if err != nil {
		return fmt.Errorf("failed to delete course: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return utils.NewNotFoundError("Course", id)
	}

	log.Info().
		Int64("course_id", id).
		Msg("Course deleted")

	return nil
}
