package encounter

import (
	"time"

	"github.com/google/uuid"
)

// Lifecycle of an encounter on the staff panel.
const (
	StatusWaiting    = "aguardando"
	StatusInProgress = "em_atendimento"
	StatusFinished   = "finalizado"
)

// Encounter is one completed triage: the symptom narrative, the vitals
// reading and the computed priority/ticket. Rows are immutable except for
// status, which staff advance from the panel.
type Encounter struct {
	ID        uuid.UUID `json:"id" db:"id"`
	PatientID uuid.UUID `json:"patient_id" db:"patient_id"`
	Date      time.Time `json:"date" db:"date"`

	Symptoms  string `json:"symptoms" db:"symptoms"`
	PainLevel int    `json:"pain_level" db:"pain_level"`

	Temperature float64 `json:"temperature" db:"temperature"`
	HeartRate   int     `json:"heart_rate" db:"heart_rate"`
	Systolic    int     `json:"systolic" db:"systolic"`
	Diastolic   int     `json:"diastolic" db:"diastolic"`

	Priority string `json:"priority" db:"priority"`
	Ticket   string `json:"ticket" db:"ticket"`
	Status   string `json:"status" db:"status"`
	Notes    string `json:"notes,omitempty" db:"notes"`
}
