package triage

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubRand replays fixed sequences. Intn values are taken as-is, so keep
// them below the modulus the caller passes.
type stubRand struct {
	ints   []int
	floats []float64
	i, f   int
}

func (r *stubRand) Intn(n int) int {
	v := r.ints[r.i%len(r.ints)]
	r.i++
	return v % n
}

func (r *stubRand) Float64() float64 {
	v := r.floats[r.f%len(r.floats)]
	r.f++
	return v
}

// nominalRand yields vitals {36.0, 70, 120, 80} and ticket number 47.
func nominalRand() *stubRand {
	return &stubRand{
		ints:   []int{10, 30, 20, 46}, // heart rate, systolic, diastolic, ticket
		floats: []float64{0},
	}
}

type fakeRecorder struct {
	records []Record
	err     error
}

func (r *fakeRecorder) Create(ctx context.Context, rec Record) error {
	if r.err != nil {
		return r.err
	}
	r.records = append(r.records, rec)
	return nil
}

type fakeNotifier struct {
	notified []Record
}

func (n *fakeNotifier) TriageCompleted(ctx context.Context, rec Record) error {
	n.notified = append(n.notified, rec)
	return nil
}

func newTestMachine(recorder *fakeRecorder, notifier *fakeNotifier, r Rand) (*Machine, *MemoryStore) {
	store := NewMemoryStore()
	return NewMachine(store, recorder, notifier, r, zerolog.Nop()), store
}

func TestStartReturnsFirstPrompt(t *testing.T) {
	m, store := newTestMachine(&fakeRecorder{}, nil, nominalRand())
	patientID := uuid.New()

	prompt := m.Start(patientID)

	assert.Equal(t, Script[0].Text, prompt)
	session, ok := store.Get(patientID)
	require.True(t, ok)
	assert.Equal(t, 0, session.Step)
	assert.Empty(t, session.Answers)
}

func TestStartOverwritesExistingSession(t *testing.T) {
	m, store := newTestMachine(&fakeRecorder{}, nil, nominalRand())
	patientID := uuid.New()

	m.Start(patientID)
	_, err := m.Advance(context.Background(), patientID, "dor de cabeça")
	require.NoError(t, err)

	m.Start(patientID)

	session, ok := store.Get(patientID)
	require.True(t, ok)
	assert.Equal(t, 0, session.Step)
	assert.Empty(t, session.Collected)
}

func TestAdvanceWalksTheScript(t *testing.T) {
	m, _ := newTestMachine(&fakeRecorder{}, nil, nominalRand())
	patientID := uuid.New()
	ctx := context.Background()

	m.Start(patientID)

	reply, err := m.Advance(ctx, patientID, "dor de cabeça")
	require.NoError(t, err)
	assert.Equal(t, Script[1].Text, reply)

	reply, err = m.Advance(ctx, patientID, "2 dias")
	require.NoError(t, err)
	assert.Equal(t, Script[2].Text, reply)

	reply, err = m.Advance(ctx, patientID, "9")
	require.NoError(t, err)
	assert.Equal(t, Script[3].Text, reply)

	// Last answered question lands on the vitals-measuring pause.
	reply, err = m.Advance(ctx, patientID, "não")
	require.NoError(t, err)
	assert.Equal(t, collectingVitalsMsg, reply)
}

func TestAdvanceFinalizes(t *testing.T) {
	recorder := &fakeRecorder{}
	m, store := newTestMachine(recorder, nil, nominalRand())
	patientID := uuid.New()
	ctx := context.Background()

	m.Start(patientID)
	for _, answer := range []string{"dor de cabeça", "2 dias", "9", "não"} {
		_, err := m.Advance(ctx, patientID, answer)
		require.NoError(t, err)
	}

	// The confirmation turn; its content is ignored.
	summary, err := m.Advance(ctx, patientID, "")
	require.NoError(t, err)

	assert.Contains(t, summary, "Triagem concluída")
	assert.Contains(t, summary, PriorityMedium)
	assert.Contains(t, summary, "M047")
	assert.Contains(t, summary, "dor de cabeça")
	assert.Contains(t, summary, "30-60 minutos")

	require.Len(t, recorder.records, 1)
	rec := recorder.records[0]
	assert.Equal(t, patientID, rec.PatientID)
	assert.Equal(t, "dor de cabeça\n2 dias\n9\nnão", rec.Symptoms)
	assert.Equal(t, 9, rec.PainLevel)
	assert.Equal(t, PriorityMedium, rec.Priority)
	assert.Equal(t, "M047", rec.Ticket)
	assert.Equal(t, Vitals{Temperature: 36.0, HeartRate: 70, Systolic: 120, Diastolic: 80}, rec.Vitals)

	// Session is gone after a successful save.
	_, ok := store.Get(patientID)
	assert.False(t, ok)
	assert.Empty(t, m.History(patientID))
}

func TestAdvanceAlwaysFinishesAfterScriptPlusOne(t *testing.T) {
	recorder := &fakeRecorder{}
	m, _ := newTestMachine(recorder, nil, nominalRand())
	patientID := uuid.New()
	ctx := context.Background()

	m.Start(patientID)
	var reply string
	var err error
	for i := 0; i < len(Script)+1; i++ {
		reply, err = m.Advance(ctx, patientID, "")
		require.NoError(t, err)
	}

	assert.Contains(t, reply, "Triagem concluída")
	assert.Len(t, recorder.records, 1)
	assert.Equal(t, 0, recorder.records[0].PainLevel) // empty answer defaults to 0
}

func TestAdvanceImplicitlyStartsMissingSession(t *testing.T) {
	m, store := newTestMachine(&fakeRecorder{}, nil, nominalRand())
	patientID := uuid.New()

	reply, err := m.Advance(context.Background(), patientID, "olá")
	require.NoError(t, err)

	assert.Equal(t, Script[0].Text, reply)
	session, ok := store.Get(patientID)
	require.True(t, ok)
	// The triggering message is not recorded as an answer.
	assert.Equal(t, 0, session.Step)
	assert.Empty(t, session.Collected)
}

func TestUrgentTriageNotifiesStaff(t *testing.T) {
	notifier := &fakeNotifier{}
	m, _ := newTestMachine(&fakeRecorder{}, notifier, nominalRand())
	patientID := uuid.New()
	ctx := context.Background()

	m.Start(patientID)
	for _, answer := range []string{"dor no peito", "3 horas", "9", "sim"} {
		_, err := m.Advance(ctx, patientID, answer)
		require.NoError(t, err)
	}
	_, err := m.Advance(ctx, patientID, "")
	require.NoError(t, err)

	require.Len(t, notifier.notified, 1)
	assert.Equal(t, PriorityUrgent, notifier.notified[0].Priority)
}

func TestNonUrgentTriageDoesNotNotify(t *testing.T) {
	notifier := &fakeNotifier{}
	m, _ := newTestMachine(&fakeRecorder{}, notifier, nominalRand())
	patientID := uuid.New()
	ctx := context.Background()

	m.Start(patientID)
	for i := 0; i < len(Script)+1; i++ {
		_, err := m.Advance(ctx, patientID, "não")
		require.NoError(t, err)
	}

	assert.Empty(t, notifier.notified)
}

func TestPersistFailureKeepsSession(t *testing.T) {
	recorder := &fakeRecorder{err: errors.New("db down")}
	m, store := newTestMachine(recorder, nil, nominalRand())
	patientID := uuid.New()
	ctx := context.Background()

	m.Start(patientID)
	for _, answer := range []string{"dor de cabeça", "2 dias", "9", "não"} {
		_, err := m.Advance(ctx, patientID, answer)
		require.NoError(t, err)
	}

	_, err := m.Advance(ctx, patientID, "")
	require.Error(t, err)

	// Finished but unsaved: the summary replays, nothing is retried.
	session, ok := store.Get(patientID)
	require.True(t, ok)
	assert.True(t, session.Finished)

	recorder.err = nil
	summary, err := m.Advance(ctx, patientID, "qualquer coisa")
	require.NoError(t, err)
	assert.Contains(t, summary, "Triagem concluída")
	assert.Empty(t, recorder.records)
}

func TestResetDiscardsSession(t *testing.T) {
	m, store := newTestMachine(&fakeRecorder{}, nil, nominalRand())
	patientID := uuid.New()

	m.Start(patientID)
	_, err := m.Advance(context.Background(), patientID, "enjoo")
	require.NoError(t, err)

	m.Reset(patientID)
	_, ok := store.Get(patientID)
	assert.False(t, ok)

	// Reset of a missing session is a no-op.
	m.Reset(patientID)

	prompt := m.Start(patientID)
	assert.Equal(t, Script[0].Text, prompt)
	session, _ := store.Get(patientID)
	assert.Equal(t, 0, session.Step)
	assert.Empty(t, session.Answers)
}

func TestHistoryReturnsAnswersInOrder(t *testing.T) {
	m, _ := newTestMachine(&fakeRecorder{}, nil, nominalRand())
	patientID := uuid.New()
	ctx := context.Background()

	assert.Empty(t, m.History(patientID))

	m.Start(patientID)
	_, err := m.Advance(ctx, patientID, "dor de cabeça")
	require.NoError(t, err)
	_, err = m.Advance(ctx, patientID, "2 dias")
	require.NoError(t, err)

	assert.Equal(t, []string{"dor de cabeça", "2 dias"}, m.History(patientID))
}
