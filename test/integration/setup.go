package integration

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	handler "github.com/liftdiary/api/internal/adapters/handler/http"
	"github.com/liftdiary/api/internal/adapters/password"
	repo "github.com/liftdiary/api/internal/adapters/repository/postgres"
	"github.com/liftdiary/api/internal/adapters/token"
	"github.com/liftdiary/api/internal/core/services"
)

const (
	testAccessSecret  = "test-access-secret"
	testRefreshSecret = "test-refresh-secret"
)

func setupPostgresContainer(ctx context.Context) (testcontainers.Container, string, error) {
	dbName := "testdb"
	user := "user"
	password := "password"

	pgContainer, err := postgres.Run(ctx, "postgres:15-alpine",
		postgres.WithDatabase(dbName),
		postgres.WithUsername(user),
		postgres.WithPassword(password),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(5*time.Second),
		),
	)
	if err != nil {
		return nil, "", fmt.Errorf("failed to start postgres container: %w", err)
	}

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		return nil, "", err
	}

	return pgContainer, connStr, nil
}

func applyMigrations(db *sql.DB) error {
	dirPath := "../../internal/adapters/repository/postgres/migrations"

	entries, err := os.ReadDir(dirPath)
	if err != nil {
		return fmt.Errorf("failed to read migrations directory: %w", err)
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		if !strings.HasSuffix(entry.Name(), "up.sql") {
			continue
		}

		fullPath := filepath.Join(dirPath, entry.Name())
		content, err := os.ReadFile(fullPath)
		if err != nil {
			return fmt.Errorf("failed to read migration file %s: %w", entry.Name(), err)
		}

		_, err = db.Exec(string(content))
		if err != nil {
			return fmt.Errorf("failed to execute migration %s: %w", entry.Name(), err)
		}
	}

	return nil
}

type TestApp struct {
	DB          *sql.DB
	Server      *httptest.Server
	Client      *http.Client
	DBContainer testcontainers.Container
}

func setupTestApp(t *testing.T) *TestApp {
	t.Helper()
	ctx := context.Background()

	dbContainer, dbURL, err := setupPostgresContainer(ctx)
	require.NoError(t, err)

	db, err := sql.Open("postgres", dbURL)
	require.NoError(t, err)

	err = applyMigrations(db)
	require.NoError(t, err)

	codec, err := token.NewJWTCodec(token.Config{
		AccessSecret:  testAccessSecret,
		RefreshSecret: testRefreshSecret,
	})
	require.NoError(t, err)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	userRepo := repo.NewUserRepository(db)
	authRepo := repo.NewAuthRepository(db)
	exerciseRepo := repo.NewExerciseRepository(db)
	routineRepo := repo.NewRoutineRepository(db)
	workoutRepo := repo.NewWorkoutRepository(db)

	authSvc := services.NewAuthService(userRepo, authRepo, password.NewBcryptHasher(), codec)
	userSvc := services.NewUserService(userRepo)
	exerciseSvc := services.NewExerciseService(exerciseRepo, nil, logger)
	routineSvc := services.NewRoutineService(routineRepo)
	workoutSvc := services.NewWorkoutService(workoutRepo)
	statsSvc := services.NewStatsService(workoutRepo)

	router := handler.NewHandler(handler.Handlers{
		Auth:     handler.NewAuthHandler(authSvc, logger),
		User:     handler.NewUserHandler(userSvc),
		Exercise: handler.NewExerciseHandler(exerciseSvc),
		Routine:  handler.NewRoutineHandler(routineSvc),
		Workout:  handler.NewWorkoutHandler(workoutSvc),
		Stats:    handler.NewStatsHandler(statsSvc),
	}, codec, []string{"*"})

	server := httptest.NewServer(router)

	return &TestApp{
		DB:          db,
		Server:      server,
		Client:      server.Client(),
		DBContainer: dbContainer,
	}
}

func (app *TestApp) Teardown(t *testing.T) {
	app.Server.Close()
	app.DB.Close()
	if err := app.DBContainer.Terminate(context.Background()); err != nil {
		t.Logf("failed to terminate container: %v", err)
	}
}
