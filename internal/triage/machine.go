// Package triage implements the AMÉLIA scripted triage conversation: a
// fixed question protocol, a simulated vital-signs reading, an additive
// priority score and a queue ticket.
package triage

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Record is what a finished triage hands to the persistence layer.
type Record struct {
	PatientID uuid.UUID
	Symptoms  string
	PainLevel int
	Vitals    Vitals
	Priority  string
	Ticket    string
}

// Recorder persists a finished triage as an encounter. The triage core
// never reads encounters back.
type Recorder interface {
	Create(ctx context.Context, rec Record) error
}

// Notifier alerts the on-duty team about a completed triage. Only urgent
// cases are forwarded; failures are logged, never surfaced to the patient.
type Notifier interface {
	TriageCompleted(ctx context.Context, rec Record) error
}

// Machine drives the conversation. All state lives in the injected Store;
// randomness comes from the injected Rand so tests can fix the sequence.
type Machine struct {
	store    Store
	recorder Recorder
	notifier Notifier
	rand     Rand
	log      zerolog.Logger
}

func NewMachine(store Store, recorder Recorder, notifier Notifier, rand Rand, log zerolog.Logger) *Machine {
	return &Machine{
		store:    store,
		recorder: recorder,
		notifier: notifier,
		rand:     rand,
		log:      log,
	}
}

// Start opens a fresh session for the patient and returns the first
// prompt. Any previous session for the same patient is discarded.
func (m *Machine) Start(patientID uuid.UUID) string {
	session := newSession(patientID)
	m.store.Put(session)
	return Script[0].Text
}

// Advance feeds one patient message into the conversation and returns
// AMÉLIA's reply: the next prompt, the vitals-measuring pause, or the
// final summary.
//
// The reply after the last question is a deliberate pause; the answer
// submitted on the following turn is ignored and only triggers
// finalization.
func (m *Machine) Advance(ctx context.Context, patientID uuid.UUID, answer string) (string, error) {
	session, ok := m.store.Get(patientID)
	if !ok {
		return m.Start(patientID), nil
	}

	// Finished but unsaved sessions (persistence failed) replay the
	// summary; recovery is an explicit reset.
	if session.Finished {
		return session.Summary, nil
	}

	if session.Step < len(Script) {
		question := Script[session.Step]
		session.Answers[question.ID] = answer
		session.Collected = append(session.Collected, answer)
	}
	session.Step++
	m.store.Put(session)

	if session.Step < len(Script) {
		return Script[session.Step].Text, nil
	}
	if session.Step == len(Script) {
		return collectingVitalsMsg, nil
	}
	return m.finalize(ctx, session)
}

func (m *Machine) finalize(ctx context.Context, session *Session) (string, error) {
	vitals := SimulateVitals(m.rand)
	session.Vitals = &vitals

	priority, points := Score(session.Answers, vitals)
	ticket := NewTicket(priority, m.rand)

	painLevel, err := strconv.Atoi(strings.TrimSpace(session.Answers[3]))
	if err != nil {
		painLevel = 0
	}

	session.Finished = true
	session.Priority = priority
	session.Ticket = ticket
	session.Summary = composeSummary(priority, ticket, vitals, painLevel, session.Answers[1])
	m.store.Put(session)

	rec := Record{
		PatientID: session.PatientID,
		Symptoms:  strings.Join(session.Collected, "\n"),
		PainLevel: painLevel,
		Vitals:    vitals,
		Priority:  priority,
		Ticket:    ticket,
	}

	m.log.Info().
		Str("patient_id", session.PatientID.String()).
		Str("priority", priority).
		Int("points", points).
		Str("ticket", ticket).
		Msg("triage finalized")

	if err := m.recorder.Create(ctx, rec); err != nil {
		return "", fmt.Errorf("save encounter: %w", err)
	}

	if priority == PriorityUrgent && m.notifier != nil {
		if err := m.notifier.TriageCompleted(ctx, rec); err != nil {
			m.log.Warn().Err(err).Msg("urgent triage notification failed")
		}
	}

	m.store.Delete(session.PatientID)
	return session.Summary, nil
}

// Reset discards the patient's session, if any.
func (m *Machine) Reset(patientID uuid.UUID) {
	m.store.Delete(patientID)
}

// History returns the raw answers given so far, in submission order.
func (m *Machine) History(patientID uuid.UUID) []string {
	session, ok := m.store.Get(patientID)
	if !ok {
		return []string{}
	}
	history := make([]string, len(session.Collected))
	copy(history, session.Collected)
	return history
}
