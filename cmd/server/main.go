package main

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"log/slog"
	stdhttp "net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	"github.com/liftdiary/api/internal/adapters/exercisedb"
	handler "github.com/liftdiary/api/internal/adapters/handler/http"
	"github.com/liftdiary/api/internal/adapters/password"
	repo "github.com/liftdiary/api/internal/adapters/repository/postgres"
	"github.com/liftdiary/api/internal/adapters/token"
	"github.com/liftdiary/api/internal/config"
	"github.com/liftdiary/api/internal/core/ports"
	"github.com/liftdiary/api/internal/core/services"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, using environment")
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	db, err := sql.Open("postgres", cfg.DatabaseURL)
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()
	if err := db.Ping(); err != nil {
		log.Fatal(err)
	}

	codec, err := token.NewJWTCodec(token.Config{
		AccessSecret:  cfg.AccessTokenSecret,
		RefreshSecret: cfg.RefreshTokenSecret,
	})
	if err != nil {
		log.Fatal(err)
	}

	userRepo := repo.NewUserRepository(db)
	authRepo := repo.NewAuthRepository(db)
	exerciseRepo := repo.NewExerciseRepository(db)
	routineRepo := repo.NewRoutineRepository(db)
	workoutRepo := repo.NewWorkoutRepository(db)

	var catalog ports.CatalogClient
	if cfg.RapidAPIKey != "" {
		catalog = exercisedb.NewClient(cfg.RapidAPIKey, cfg.RapidAPIHost)
	}

	authSvc := services.NewAuthService(userRepo, authRepo, password.NewBcryptHasher(), codec)
	userSvc := services.NewUserService(userRepo)
	exerciseSvc := services.NewExerciseService(exerciseRepo, catalog, logger)
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
	}, codec, cfg.AllowedOrigins)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Initial catalog sync on startup, then a daily freshness check.
	go func() {
		if err := exerciseSvc.Sync(ctx); err != nil {
			logger.Error("initial exercise sync failed", "error", err)
		}
	}()
	scheduler := gocron.NewScheduler(time.Local)
	if _, err := scheduler.Every(1).Day().Do(func() {
		if err := exerciseSvc.Sync(context.Background()); err != nil {
			logger.Error("scheduled exercise sync failed", "error", err)
		}
	}); err != nil {
		log.Fatal(err)
	}
	scheduler.StartAsync()
	defer scheduler.Stop()

	server := &stdhttp.Server{Addr: cfg.ListenAddr, Handler: router}

	go func() {
		logger.Info("server listening", "addr", cfg.ListenAddr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, stdhttp.ErrServerClosed) {
			log.Fatal(err)
		}
	}()

	<-ctx.Done()
	logger.Info("gracefully shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatal(err)
	}
}
