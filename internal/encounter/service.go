package encounter

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/AmeliaCVPS/amelia/internal/triage"
)

var ErrBadTransition = errors.New("invalid status transition")

type Service interface {
	// Create implements triage.Recorder: it turns a finished triage into
	// a waiting encounter row.
	Create(ctx context.Context, rec triage.Record) error

	PatientHistory(ctx context.Context, patientID uuid.UUID) ([]Encounter, error)
	WaitingQueue(ctx context.Context) ([]Encounter, error)
	CallPatient(ctx context.Context, id uuid.UUID) (*Encounter, error)
	FinishEncounter(ctx context.Context, id uuid.UUID) (*Encounter, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

var _ triage.Recorder = (Service)(nil)

func (s *service) Create(ctx context.Context, rec triage.Record) error {
	e := &Encounter{
		ID:          uuid.New(),
		PatientID:   rec.PatientID,
		Date:        time.Now(),
		Symptoms:    rec.Symptoms,
		PainLevel:   rec.PainLevel,
		Temperature: rec.Vitals.Temperature,
		HeartRate:   rec.Vitals.HeartRate,
		Systolic:    rec.Vitals.Systolic,
		Diastolic:   rec.Vitals.Diastolic,
		Priority:    rec.Priority,
		Ticket:      rec.Ticket,
		Status:      StatusWaiting,
	}
	if err := s.repo.Create(ctx, e); err != nil {
		return fmt.Errorf("create encounter: %w", err)
	}
	return nil
}

func (s *service) PatientHistory(ctx context.Context, patientID uuid.UUID) ([]Encounter, error) {
	return s.repo.ListByPatient(ctx, patientID)
}

func (s *service) WaitingQueue(ctx context.Context) ([]Encounter, error) {
	return s.repo.ListWaiting(ctx)
}

// CallPatient moves a waiting encounter into em_atendimento.
func (s *service) CallPatient(ctx context.Context, id uuid.UUID) (*Encounter, error) {
	return s.transition(ctx, id, StatusWaiting, StatusInProgress)
}

// FinishEncounter closes an encounter that is being attended.
func (s *service) FinishEncounter(ctx context.Context, id uuid.UUID) (*Encounter, error) {
	return s.transition(ctx, id, StatusInProgress, StatusFinished)
}

func (s *service) transition(ctx context.Context, id uuid.UUID, from, to string) (*Encounter, error) {
	e, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if e.Status != from {
		return nil, fmt.Errorf("%w: %s -> %s", ErrBadTransition, e.Status, to)
	}
	if err := s.repo.UpdateStatus(ctx, id, to); err != nil {
		return nil, err
	}
	e.Status = to
	return e, nil
}
