package report

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/AmeliaCVPS/amelia/internal/encounter"
	"github.com/AmeliaCVPS/amelia/internal/patient"
	"github.com/AmeliaCVPS/amelia/internal/platform/auth"
)

type Handler struct {
	svc          *Service
	patientSvc   patient.Service
	encounterSvc encounter.Service
}

func NewHandler(svc *Service, patientSvc patient.Service, encounterSvc encounter.Service) *Handler {
	return &Handler{
		svc:          svc,
		patientSvc:   patientSvc,
		encounterSvc: encounterSvc,
	}
}

// HandleRecordPDF streams the logged-in patient's clinical record as PDF.
func (h *Handler) HandleRecordPDF(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.FromContext(r.Context())
	if !ok {
		http.Error(w, "not authenticated", http.StatusUnauthorized)
		return
	}

	p, err := h.patientSvc.GetByID(r.Context(), claims.PatientID)
	if err != nil {
		http.Error(w, "Lookup failed", http.StatusInternalServerError)
		return
	}

	encounters, err := h.encounterSvc.PatientHistory(r.Context(), claims.PatientID)
	if err != nil {
		http.Error(w, "Lookup failed", http.StatusInternalServerError)
		return
	}

	pdfBytes, err := h.svc.RecordPDF(p, encounters)
	if err != nil {
		http.Error(w, "PDF generation failed: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="prontuario.pdf"`)
	w.Write(pdfBytes)
}

func RegisterRoutes(r chi.Router, h *Handler) {
	r.Get("/patients/me/record.pdf", h.HandleRecordPDF)
}
