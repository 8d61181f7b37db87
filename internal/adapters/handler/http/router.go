package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/liftdiary/api/internal/core/ports"
)

type Handlers struct {
	Auth     *AuthHandler
	User     *UserHandler
	Exercise *ExerciseHandler
	Routine  *RoutineHandler
	Workout  *WorkoutHandler
	Stats    *StatsHandler
}

func NewHandler(h Handlers, codec ports.TokenCodec, allowedOrigins []string) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
	}))

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("LiftDiary API is running"))
	})

	r.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", h.Auth.Register)
			r.Post("/login", h.Auth.Login)
			r.Post("/refresh-token", h.Auth.Refresh)
		})

		r.Group(func(r chi.Router) {
			r.Use(Authenticator(codec))

			r.Get("/exercises", h.Exercise.List)
			r.Get("/users/me", h.User.GetMe)
			r.Get("/stats/summary", h.Stats.Summary)

			r.Route("/routines", func(r chi.Router) {
				r.Get("/", h.Routine.List)
				r.Post("/", h.Routine.Create)
			})

			r.Route("/workouts", func(r chi.Router) {
				r.Post("/start", h.Workout.Start)
				r.Put("/{id}/finish", h.Workout.Finish)
				r.Get("/history", h.Workout.History)
			})
		})
	})

	return r
}
