package triage

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/AmeliaCVPS/amelia/internal/platform/auth"
)

type Handler struct {
	machine *Machine
}

func NewHandler(machine *Machine) *Handler {
	return &Handler{machine: machine}
}

type MessageRequest struct {
	Message string `json:"message"`
}

func (h *Handler) HandleStart(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.FromContext(r.Context())
	if !ok {
		http.Error(w, "not authenticated", http.StatusUnauthorized)
		return
	}

	prompt := h.machine.Start(claims.PatientID)
	json.NewEncoder(w).Encode(map[string]string{"response": prompt})
}

func (h *Handler) HandleMessage(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.FromContext(r.Context())
	if !ok {
		http.Error(w, "not authenticated", http.StatusUnauthorized)
		return
	}

	var req MessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}

	response, err := h.machine.Advance(r.Context(), claims.PatientID, req.Message)
	if err != nil {
		http.Error(w, "Processing failed: "+err.Error(), http.StatusInternalServerError)
		return
	}

	json.NewEncoder(w).Encode(map[string]string{"response": response})
}

func (h *Handler) HandleReset(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.FromContext(r.Context())
	if !ok {
		http.Error(w, "not authenticated", http.StatusUnauthorized)
		return
	}

	h.machine.Reset(claims.PatientID)
	json.NewEncoder(w).Encode(map[string]string{"status": "reset"})
}

func (h *Handler) HandleHistory(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.FromContext(r.Context())
	if !ok {
		http.Error(w, "not authenticated", http.StatusUnauthorized)
		return
	}

	json.NewEncoder(w).Encode(map[string][]string{
		"history": h.machine.History(claims.PatientID),
	})
}

func RegisterRoutes(r chi.Router, h *Handler) {
	r.Post("/triage/start", h.HandleStart)
	r.Post("/triage/message", h.HandleMessage)
	r.Post("/triage/reset", h.HandleReset)
	r.Get("/triage/history", h.HandleHistory)
}
