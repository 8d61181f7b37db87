package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"

	"github.com/liftdiary/api/internal/core/domain"
	"github.com/liftdiary/api/internal/core/ports"
)

type RoutineHandler struct {
	service ports.RoutineService
}

func NewRoutineHandler(service ports.RoutineService) *RoutineHandler {
	return &RoutineHandler{
		service: service,
	}
}

func (h *RoutineHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value(UserIDKey).(uuid.UUID)
	if !ok {
		writeError(w, http.StatusUnauthorized, "Unauthorized: missing user context")
		return
	}

	routines, err := h.service.List(r.Context(), userID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	if routines == nil {
		routines = []*domain.Routine{}
	}

	writeJSON(w, http.StatusOK, routines)
}

func (h *RoutineHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value(UserIDKey).(uuid.UUID)
	if !ok {
		writeError(w, http.StatusUnauthorized, "Unauthorized: missing user context")
		return
	}

	var input ports.CreateRoutineInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	routine, err := h.service.Create(r.Context(), userID, input)
	if err != nil {
		if errors.Is(err, domain.ErrValidation) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	writeJSON(w, http.StatusCreated, routine)
}
