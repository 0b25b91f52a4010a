package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/devcampdir/api/internal/auth"
	"github.com/devcampdir/api/internal/config"
	"github.com/devcampdir/api/internal/constants"
	"github.com/devcampdir/api/internal/database"
	"github.com/devcampdir/api/internal/handlers"
	"github.com/devcampdir/api/internal/models"
	"github.com/devcampdir/api/internal/repository"
	"github.com/devcampdir/api/internal/service"
	"github.com/devcampdir/api/internal/utils"
	"github.com/devcampdir/api/internal/utils/ratelimit"
)

func testConfig() *config.AppConfig {
	return &config.AppConfig{
		App: config.AppSettings{
			Environment: "testing",
			Name:        "campdir-api",
			Version:     "test",
		},
		JWT: config.JWTSettings{
			Secret:     "test-secret",
			ExpireDays: 1,
			Issuer:     "campdir-api",
		},
		CORS: config.CORSSettings{AllowedOrigins: []string{"*"}},
		RateLimit: config.RateLimitSettings{
			RequestsPerSecond:     1000,
			Burst:                 1000,
			AuthRequestsPerSecond: 1000,
			AuthBurst:             1000,
		},
	}
}

// newTestServer wires a server by hand around a sqlmock-backed pool,
// skipping the connect/migrate/seed startup path.
func newTestServer(t *testing.T) (*Server, sqlmock.Sqlmock, func()) {
	t.Helper()

	db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)

	cfg := testConfig()
	pool := &database.Pool{DB: db}

	passwordCfg := &auth.PasswordConfig{
		Memory: 8 * 1024, Iterations: 1, Parallelism: 1, SaltLength: 16, KeyLength: 32,
	}
	jwtService := auth.NewJWTService(&cfg.JWT)

	users := repository.NewUserRepository(pool)
	bootcamps := repository.NewBootcampRepository(pool)
	courses := repository.NewCourseRepository(pool)
	reviews := repository.NewReviewRepository(pool)

	authService := service.NewAuthService(users, jwtService, passwordCfg, nil)
	userService := service.NewUserService(users, passwordCfg)

	limiters := ratelimit.NewStore(ratelimit.Rate{
		RequestsPerSecond: cfg.RateLimit.RequestsPerSecond,
		Burst:             cfg.RateLimit.Burst,
	}, time.Hour)

	srv := &Server{
		Config: cfg,
		Db:     pool,
		Handlers: &Handlers{
			AuthHandler:     handlers.NewAuthHandler(authService, &cfg.App),
			BootcampHandler: handlers.NewBootcampHandler(bootcamps, courses, reviews),
			CourseHandler:   handlers.NewCourseHandler(courses),
			ReviewHandler:   handlers.NewReviewHandler(reviews),
			UserHandler:     handlers.NewUserHandler(userService),
		},
		jwtService:  jwtService,
		passwordCfg: passwordCfg,
		limiters:    limiters,
	}
	srv.SetupRoutes()

	return srv, mock, func() { db.Close() }
}

func issueTestToken(t *testing.T, srv *Server, role string) string {
	t.Helper()
	token, _, err := srv.jwtService.IssueSessionToken(&models.User{
		ID:    7,
		Name:  "Jamie Doe",
		Email: "jamie@example.com",
		Role:  role,
	})
	require.NoError(t, err)
	return token
}

func TestRoutes_HealthEndpoint(t *testing.T) {
	srv, mock, cleanup := newTestServer(t)
	defer cleanup()

	mock.ExpectPing()
	mock.ExpectQuery(`SELECT 1`).
		WillReturnRows(sqlmock.NewRows([]string{"result"}).AddRow(1))

	rec := httptest.NewRecorder()
	srv.GetRouter().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, constants.HealthPath, nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "healthy")
}

func TestRoutes_HealthEndpoint_DatabaseDown(t *testing.T) {
	srv, mock, cleanup := newTestServer(t)
	defer cleanup()

	mock.ExpectPing().WillReturnError(assert.AnError)

	rec := httptest.NewRecorder()
	srv.GetRouter().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, constants.HealthPath, nil))

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestRoutes_PublicBootcampList(t *testing.T) {
	srv, mock, cleanup := newTestServer(t)
	defer cleanup()

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM bootcamps`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectQuery(`SELECT (.+) FROM bootcamps`).
		WillReturnRows(sqlmock.NewRows([]string{
			"bootcamp_id", "name", "description", "website", "phone", "email",
			"address", "careers", "housing", "job_assistance", "average_cost",
			"created_at", "updated_at",
		}))

	rec := httptest.NewRecorder()
	srv.GetRouter().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/bootcamps", nil))

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp utils.Response
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.True(t, resp.Success)
}

func TestRoutes_CreateBootcampRequiresAuth(t *testing.T) {
	srv, _, cleanup := newTestServer(t)
	defer cleanup()

	rec := httptest.NewRecorder()
	srv.GetRouter().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/bootcamps", nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRoutes_CreateBootcampRequiresPublisherRole(t *testing.T) {
	srv, _, cleanup := newTestServer(t)
	defer cleanup()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/bootcamps", nil)
	req.Header.Set(constants.HeaderAuthorization, constants.BearerTokenPrefix+issueTestToken(t, srv, "user"))
	rec := httptest.NewRecorder()

	srv.GetRouter().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)

	var resp utils.Response
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, constants.MsgAccessDenied, resp.Error)
}

func TestRoutes_UserManagementRequiresAdmin(t *testing.T) {
	srv, _, cleanup := newTestServer(t)
	defer cleanup()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/users", nil)
	req.Header.Set(constants.HeaderAuthorization, constants.BearerTokenPrefix+issueTestToken(t, srv, constants.RolePublisher))
	rec := httptest.NewRecorder()

	srv.GetRouter().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRoutes_MeWithSessionCookie(t *testing.T) {
	srv, mock, cleanup := newTestServer(t)
	defer cleanup()

	now := time.Now()
	mock.ExpectQuery(`SELECT (.+) FROM users\s+WHERE user_id = \$1`).
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{
			"user_id", "name", "email", "role", "password_hash", "salt",
			"password_changed_at", "reset_token_hash", "reset_token_expires_at",
			"created_at", "updated_at",
		}).AddRow(int64(7), "Jamie Doe", "jamie@example.com", "user", "hash", "salt", now, nil, nil, now, now))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/me", nil)
	req.AddCookie(&http.Cookie{Name: constants.AuthTokenCookie, Value: issueTestToken(t, srv, "user")})
	rec := httptest.NewRecorder()

	srv.GetRouter().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "jamie@example.com")
}

func TestRoutes_UnknownRoute(t *testing.T) {
	srv, _, cleanup := newTestServer(t)
	defer cleanup()

	rec := httptest.NewRecorder()
	srv.GetRouter().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/nonsense", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)

	var resp utils.Response
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, constants.MsgRouteNotFound, resp.Error)
}

func TestRoutes_MethodNotAllowed(t *testing.T) {
	srv, _, cleanup := newTestServer(t)
	defer cleanup()

	rec := httptest.NewRecorder()
	srv.GetRouter().ServeHTTP(rec, httptest.NewRequest(http.MethodPatch, "/api/v1/bootcamps", nil))

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestRoutes_SecurityHeadersApplied(t *testing.T) {
	srv, mock, cleanup := newTestServer(t)
	defer cleanup()

	mock.ExpectPing()
	mock.ExpectQuery(`SELECT 1`).
		WillReturnRows(sqlmock.NewRows([]string{"result"}).AddRow(1))

	rec := httptest.NewRecorder()
	srv.GetRouter().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, constants.HealthPath, nil))

	assert.Equal(t, constants.ContentTypeOptionsNoSniff, rec.Header().Get(constants.HeaderXContentTypeOptions))
	assert.Equal(t, constants.FrameOptionsDeny, rec.Header().Get(constants.HeaderXFrameOptions))
}
