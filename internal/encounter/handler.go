package encounter

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/AmeliaCVPS/amelia/internal/platform/auth"
)

type Handler struct {
	svc Service
}

func NewHandler(svc Service) *Handler {
	return &Handler{svc: svc}
}

// HandleMyEncounters lists the logged-in patient's clinical record,
// newest first.
func (h *Handler) HandleMyEncounters(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.FromContext(r.Context())
	if !ok {
		http.Error(w, "not authenticated", http.StatusUnauthorized)
		return
	}

	encounters, err := h.svc.PatientHistory(r.Context(), claims.PatientID)
	if err != nil {
		http.Error(w, "Lookup failed", http.StatusInternalServerError)
		return
	}

	json.NewEncoder(w).Encode(encounters)
}

// HandleQueue is the staff panel view: waiting patients ordered by
// priority, then arrival.
func (h *Handler) HandleQueue(w http.ResponseWriter, r *http.Request) {
	encounters, err := h.svc.WaitingQueue(r.Context())
	if err != nil {
		http.Error(w, "Lookup failed", http.StatusInternalServerError)
		return
	}

	json.NewEncoder(w).Encode(encounters)
}

func (h *Handler) HandleCall(w http.ResponseWriter, r *http.Request) {
	h.handleTransition(w, r, h.svc.CallPatient)
}

func (h *Handler) HandleFinish(w http.ResponseWriter, r *http.Request) {
	h.handleTransition(w, r, h.svc.FinishEncounter)
}

func (h *Handler) handleTransition(w http.ResponseWriter, r *http.Request, fn func(ctx context.Context, id uuid.UUID) (*Encounter, error)) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "Invalid encounter ID", http.StatusBadRequest)
		return
	}

	e, err := fn(r.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			http.Error(w, err.Error(), http.StatusNotFound)
		case errors.Is(err, ErrBadTransition):
			http.Error(w, err.Error(), http.StatusConflict)
		default:
			http.Error(w, "Update failed", http.StatusInternalServerError)
		}
		return
	}

	json.NewEncoder(w).Encode(e)
}

func RegisterPatientRoutes(r chi.Router, h *Handler) {
	r.Get("/patients/me/encounters", h.HandleMyEncounters)
}

func RegisterPanelRoutes(r chi.Router, h *Handler) {
	r.Get("/panel/queue", h.HandleQueue)
	r.Post("/panel/encounters/{id}/call", h.HandleCall)
	r.Post("/panel/encounters/{id}/finish", h.HandleFinish)
}
