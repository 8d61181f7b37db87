package http

import (
	"net/http"

	"github.com/liftdiary/api/internal/core/domain"
	"github.com/liftdiary/api/internal/core/ports"
)

type ExerciseHandler struct {
	service ports.ExerciseService
}

func NewExerciseHandler(service ports.ExerciseService) *ExerciseHandler {
	return &ExerciseHandler{
		service: service,
	}
}

func (h *ExerciseHandler) List(w http.ResponseWriter, r *http.Request) {
	search := r.URL.Query().Get("search")
	target := r.URL.Query().Get("target")

	exercises, err := h.service.List(r.Context(), search, target)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	if exercises == nil {
		exercises = []domain.Exercise{}
	}

	writeJSON(w, http.StatusOK, exercises)
}
