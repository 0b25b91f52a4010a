package repository

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/devcampdir/api/internal/database"
	"github.com/devcampdir/api/internal/models"
	"github.com/devcampdir/api/internal/utils"
)

func newMockCourseRepo(t *testing.T) (CourseRepository, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	repo := NewCourseRepository(&database.Pool{DB: db})
	return repo, mock, func() { db.Close() }
}

func courseRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"course_id", "bootcamp_id", "title", "description", "duration_weeks",
		"tuition", "minimum_skill", "scholarships_available", "created_at", "updated_at",
	})
}

func TestCourseRepository_Create(t *testing.T) {
	repo, mock, cleanup := newMockCourseRepo(t)
	defer cleanup()

	course := &models.Course{
		BootcampID:    3,
		Title:         "Full Stack Web Dev",
		Description:   "12 weeks of everything",
		DurationWeeks: 12,
		Tuition:       8000,
		MinimumSkill:  "beginner",
	}

	mock.ExpectQuery(`INSERT INTO courses`).
		WithArgs(int64(3), "Full Stack Web Dev", "12 weeks of everything", 12,
			float64(8000), "beginner", false, sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"course_id"}).AddRow(int64(5)))

	err := repo.Create(context.Background(), course)
	require.NoError(t, err)

	assert.Equal(t, int64(5), course.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCourseRepository_Create_UnknownBootcamp(t *testing.T) {
	repo, mock, cleanup := newMockCourseRepo(t)
	defer cleanup()

	mock.ExpectQuery(`INSERT INTO courses`).
		WillReturnError(&pq.Error{Code: "23503", Constraint: "fk_courses_bootcamp"})

	err := repo.Create(context.Background(), &models.Course{BootcampID: 99, Title: "Orphan"})
	require.Error(t, err)
	assert.True(t, utils.IsNotFoundError(err), "a foreign key violation surfaces as a missing bootcamp")
}

func TestCourseRepository_GetByID(t *testing.T) {
	repo, mock, cleanup := newMockCourseRepo(t)
	defer cleanup()

	now := time.Now()
	mock.ExpectQuery(`SELECT (.+) FROM courses\s+WHERE course_id = \$1`).
		WithArgs(int64(5)).
		WillReturnRows(courseRows().AddRow(
			int64(5), int64(3), "Full Stack Web Dev", "12 weeks of everything",
			12, float64(8000), "beginner", true, now, now,
		))

	course, err := repo.GetByID(context.Background(), 5)
	require.NoError(t, err)

	assert.Equal(t, int64(3), course.BootcampID)
	assert.Equal(t, 12, course.DurationWeeks)
	assert.True(t, course.ScholarshipsAvailable)
}

func TestCourseRepository_GetByID_NotFound(t *testing.T) {
	repo, mock, cleanup := newMockCourseRepo(t)
	defer cleanup()

	mock.ExpectQuery(`SELECT (.+) FROM courses\s+WHERE course_id = \$1`).
		WithArgs(int64(99)).
		WillReturnRows(courseRows())

	_, err := repo.GetByID(context.Background(), 99)
	require.Error(t, err)
	assert.True(t, utils.IsNotFoundError(err))
}

func TestCourseRepository_List(t *testing.T) {
	repo, mock, cleanup := newMockCourseRepo(t)
	defer cleanup()

	now := time.Now()
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM courses`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))
	mock.ExpectQuery(`SELECT (.+) FROM courses\s+ORDER BY course_id\s+LIMIT \$1 OFFSET \$2`).
		WithArgs(25, 0).
		WillReturnRows(courseRows().
			AddRow(int64(1), int64(3), "Full Stack Web Dev", "12 weeks", 12, float64(8000), "beginner", false, now, now).
			AddRow(int64(2), int64(3), "UI/UX Design", "8 weeks", 8, float64(6000), "intermediate", true, now, now))

	courses, total, err := repo.List(context.Background(), 25, 0)
	require.NoError(t, err)

	assert.Equal(t, 2, total)
	require.Len(t, courses, 2)
	assert.Equal(t, "UI/UX Design", courses[1].Title)
}

func TestCourseRepository_ListByBootcamp(t *testing.T) {
	repo, mock, cleanup := newMockCourseRepo(t)
	defer cleanup()

	now := time.Now()
	mock.ExpectQuery(`SELECT (.+) FROM courses\s+WHERE bootcamp_id = \$1\s+ORDER BY course_id`).
		WithArgs(int64(3)).
		WillReturnRows(courseRows().
			AddRow(int64(1), int64(3), "Full Stack Web Dev", "12 weeks", 12, float64(8000), "beginner", false, now, now))

	courses, err := repo.ListByBootcamp(context.Background(), 3)
	require.NoError(t, err)

	require.Len(t, courses, 1)
	assert.Equal(t, int64(3), courses[0].BootcampID)
}

func TestCourseRepository_ListByBootcamp_Empty(t *testing.T) {
	repo, mock, cleanup := newMockCourseRepo(t)
	defer cleanup()

	mock.ExpectQuery(`SELECT (.+) FROM courses\s+WHERE bootcamp_id = \$1`).
		WithArgs(int64(4)).
		WillReturnRows(courseRows())

	courses, err := repo.ListByBootcamp(context.Background(), 4)
	require.NoError(t, err)
	assert.Empty(t, courses)
}

func TestCourseRepository_Update(t *testing.T) {
	repo, mock, cleanup := newMockCourseRepo(t)
	defer cleanup()

	course := &models.Course{
		ID:            5,
		BootcampID:    3,
		Title:         "Full Stack Web Dev",
		Description:   "Now 14 weeks",
		DurationWeeks: 14,
		Tuition:       8500,
		MinimumSkill:  "beginner",
	}

	mock.ExpectExec(`UPDATE courses`).
		WithArgs("Full Stack Web Dev", "Now 14 weeks", 14, float64(8500),
			"beginner", false, sqlmock.AnyArg(), int64(5)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Update(context.Background(), course)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCourseRepository_Update_NotFound(t *testing.T) {
	repo, mock, cleanup := newMockCourseRepo(t)
	defer cleanup()

	mock.ExpectExec(`UPDATE courses`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Update(context.Background(), &models.Course{ID: 99})
	require.Error(t, err)
	assert.True(t, utils.IsNotFoundError(err))
}

func TestCourseRepository_Delete(t *testing.T) {
	repo, mock, cleanup := newMockCourseRepo(t)
	defer cleanup()

	mock.ExpectExec(`DELETE FROM courses WHERE course_id = \$1`).
		WithArgs(int64(5)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Delete(context.Background(), 5)
	require.NoError(t, err)
}

func TestCourseRepository_Delete_NotFound(t *testing.T) {
	repo, mock, cleanup := newMockCourseRepo(t)
	defer cleanup()

	mock.ExpectExec(`DELETE FROM courses WHERE course_id = \$1`).
		WithArgs(int64(99)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Delete(context.Background(), 99)
	require.Error(t, err)
	assert.True(t, utils.IsNotFoundError(err))
}
