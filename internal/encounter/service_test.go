package encounter

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AmeliaCVPS/amelia/internal/triage"
)

type fakeRepo struct {
	encounters map[uuid.UUID]*Encounter
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{encounters: map[uuid.UUID]*Encounter{}}
}

func (r *fakeRepo) Create(ctx context.Context, e *Encounter) error {
	copied := *e
	r.encounters[e.ID] = &copied
	return nil
}

func (r *fakeRepo) GetByID(ctx context.Context, id uuid.UUID) (*Encounter, error) {
	e, ok := r.encounters[id]
	if !ok {
		return nil, ErrNotFound
	}
	copied := *e
	return &copied, nil
}

func (r *fakeRepo) ListByPatient(ctx context.Context, patientID uuid.UUID) ([]Encounter, error) {
	out := []Encounter{}
	for _, e := range r.encounters {
		if e.PatientID == patientID {
			out = append(out, *e)
		}
	}
	return out, nil
}

func (r *fakeRepo) ListWaiting(ctx context.Context) ([]Encounter, error) {
	out := []Encounter{}
	for _, e := range r.encounters {
		if e.Status == StatusWaiting {
			out = append(out, *e)
		}
	}
	return out, nil
}

func (r *fakeRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	e, ok := r.encounters[id]
	if !ok {
		return ErrNotFound
	}
	e.Status = status
	return nil
}

func sampleRecord(patientID uuid.UUID) triage.Record {
	return triage.Record{
		PatientID: patientID,
		Symptoms:  "dor de cabeça\n2 dias\n9\nnão",
		PainLevel: 9,
		Vitals:    triage.Vitals{Temperature: 37.0, HeartRate: 70, Systolic: 120, Diastolic: 80},
		Priority:  triage.PriorityMedium,
		Ticket:    "M047",
	}
}

func TestCreateFromTriageRecord(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo)
	patientID := uuid.New()

	require.NoError(t, svc.Create(context.Background(), sampleRecord(patientID)))

	encounters, err := svc.PatientHistory(context.Background(), patientID)
	require.NoError(t, err)
	require.Len(t, encounters, 1)

	e := encounters[0]
	assert.Equal(t, patientID, e.PatientID)
	assert.Equal(t, StatusWaiting, e.Status)
	assert.Equal(t, triage.PriorityMedium, e.Priority)
	assert.Equal(t, "M047", e.Ticket)
	assert.Equal(t, 9, e.PainLevel)
	assert.Equal(t, 37.0, e.Temperature)
	assert.Equal(t, 70, e.HeartRate)
	assert.False(t, e.Date.IsZero())
	assert.NotEqual(t, uuid.Nil, e.ID)
}

func TestCallPatient(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo)
	patientID := uuid.New()

	require.NoError(t, svc.Create(context.Background(), sampleRecord(patientID)))
	waiting, err := svc.WaitingQueue(context.Background())
	require.NoError(t, err)
	require.Len(t, waiting, 1)

	called, err := svc.CallPatient(context.Background(), waiting[0].ID)
	require.NoError(t, err)
	assert.Equal(t, StatusInProgress, called.Status)

	// Called patients leave the waiting queue.
	waiting, err = svc.WaitingQueue(context.Background())
	require.NoError(t, err)
	assert.Empty(t, waiting)
}

func TestStatusTransitionRules(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo)
	ctx := context.Background()
	patientID := uuid.New()

	require.NoError(t, svc.Create(ctx, sampleRecord(patientID)))
	waiting, err := svc.WaitingQueue(ctx)
	require.NoError(t, err)
	id := waiting[0].ID

	// Cannot finish before calling.
	_, err = svc.FinishEncounter(ctx, id)
	assert.ErrorIs(t, err, ErrBadTransition)

	_, err = svc.CallPatient(ctx, id)
	require.NoError(t, err)

	// Cannot call twice.
	_, err = svc.CallPatient(ctx, id)
	assert.ErrorIs(t, err, ErrBadTransition)

	finished, err := svc.FinishEncounter(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, StatusFinished, finished.Status)

	_, err = svc.FinishEncounter(ctx, id)
	assert.ErrorIs(t, err, ErrBadTransition)
}

func TestTransitionUnknownEncounter(t *testing.T) {
	svc := NewService(newFakeRepo())

	_, err := svc.CallPatient(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)
}
