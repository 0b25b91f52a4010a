package migrations

import (
	"context"
	"database/sql"
)

// createUsersTable creates the users table
func createUsersTable() Migration {
	return Migration{
		Name:        "create_users_table",
		Description: "Creates the users table",
		TableName:   "users",
		RunSQL: func(ctx context.Context, tx *sql.Tx) error {
			query := `
				CREATE TABLE IF NOT EXISTS users (
					user_id BIGSERIAL PRIMARY KEY,
					name VARCHAR(100) NOT NULL,
					email VARCHAR(255) NOT NULL,
					role VARCHAR(20) NOT NULL DEFAULT 'user',
					password_hash VARCHAR(255) NOT NULL,
					salt VARCHAR(255) NOT NULL,
					password_changed_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
					reset_token_hash VARCHAR(64),
					reset_token_expires_at TIMESTAMP,
					created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
					updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
					CONSTRAINT idx_email UNIQUE (email)
				);
				CREATE INDEX IF NOT EXISTS idx_users_reset_token ON users(reset_token_hash);
			`
			_, err := tx.ExecContext(ctx, query)
			return err
		},
	}
}

// createBootcampsTable creates the bootcamps table
func createBootcampsTable() Migration {
	return Migration{
		Name:        "create_bootcamps_table",
		Description: "Creates the bootcamps table",
		TableName:   "bootcamps",
		RunSQL: func(ctx context.Context, tx *sql.Tx) error {
			query := `
				CREATE TABLE IF NOT EXISTS bootcamps (
					bootcamp_id BIGSERIAL PRIMARY KEY,
					name VARCHAR(50) NOT NULL,
					description VARCHAR(500) NOT NULL,
					website VARCHAR(255),
					phone VARCHAR(20),
					email VARCHAR(255),
					address VARCHAR(255) NOT NULL,
					careers TEXT[] NOT NULL DEFAULT '{}',
					housing BOOLEAN DEFAULT FALSE,
					job_assistance BOOLEAN DEFAULT FALSE,
					average_cost DECIMAL(10, 2),
					created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
					updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
					CONSTRAINT idx_bootcamp_name UNIQUE (name)
				)
			`
			_, err := tx.ExecContext(ctx, query)
			return err
		},
	}
}

// createCoursesTable creates the courses table
func createCoursesTable() Migration {
	return Migration{
		Name:        "create_courses_table",
		Description: "Creates the courses table",
		TableName:   "courses",
		RunSQL: func(ctx context.Context, tx *sql.Tx) error {
			query := `
				CREATE TABLE IF NOT EXISTS courses (
					course_id BIGSERIAL PRIMARY KEY,
					bootcamp_id BIGINT NOT NULL,
					title VARCHAR(100) NOT NULL,
					description TEXT NOT NULL,
					duration_weeks INT NOT NULL,
					tuition DECIMAL(10, 2) NOT NULL,
					minimum_skill VARCHAR(20) NOT NULL,
					scholarships_available BOOLEAN DEFAULT FALSE,
					created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
					updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
					CONSTRAINT fk_bootcamp FOREIGN KEY (bootcamp_id) REFERENCES bootcamps(bootcamp_id) ON DELETE CASCADE
				);
				CREATE INDEX IF NOT EXISTS idx_courses_bootcamp_id ON courses(bootcamp_id);
			`
			_, err := tx.ExecContext(ctx, query)
			return err
		},
	}
}

// createReviewsTable creates the reviews table
func createReviewsTable() Migration {
	return Migration{
		Name:        "create_reviews_table",
		Description: "Creates the reviews table",
		TableName:   "reviews",
		RunSQL: func(ctx context.Context, tx *sql.Tx) error {
			query := `
				CREATE TABLE IF NOT EXISTS reviews (
					review_id BIGSERIAL PRIMARY KEY,
					bootcamp_id BIGINT NOT NULL,
					user_id BIGINT NOT NULL,
					title VARCHAR(100) NOT NULL,
					text TEXT NOT NULL,
					rating INT NOT NULL CHECK (rating BETWEEN 1 AND 10),
					created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
					updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
					CONSTRAINT fk_bootcamp FOREIGN KEY (bootcamp_id) REFERENCES bootcamps(bootcamp_id) ON DELETE CASCADE,
					CONSTRAINT fk_user FOREIGN KEY (user_id) REFERENCES users(user_id) ON DELETE CASCADE,
					CONSTRAINT idx_review_bootcamp_user UNIQUE (bootcamp_id, user_id)
				);
				CREATE INDEX IF NOT EXISTS idx_reviews_bootcamp_id ON reviews(bootcamp_id);
			`
			_, err := tx.ExecContext(ctx, query)
			return err
		},
	}
}
