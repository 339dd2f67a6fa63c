package encounter

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("encounter not found")

type Repository interface {
	Create(ctx context.Context, e *Encounter) error
	GetByID(ctx context.Context, id uuid.UUID) (*Encounter, error)
	ListByPatient(ctx context.Context, patientID uuid.UUID) ([]Encounter, error)
	ListWaiting(ctx context.Context) ([]Encounter, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) error
}

type postgresRepo struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &postgresRepo{db: db}
}

const encounterColumns = `id, patient_id, date, symptoms, pain_level, temperature, heart_rate, systolic, diastolic, priority, ticket, status, notes`

func (r *postgresRepo) Create(ctx context.Context, e *Encounter) error {
	query := `
		INSERT INTO encounters (` + encounterColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`
	_, err := r.db.ExecContext(ctx, query,
		e.ID, e.PatientID, e.Date, e.Symptoms, e.PainLevel,
		e.Temperature, e.HeartRate, e.Systolic, e.Diastolic,
		e.Priority, e.Ticket, e.Status, e.Notes)
	return err
}

func (r *postgresRepo) GetByID(ctx context.Context, id uuid.UUID) (*Encounter, error) {
	query := `SELECT ` + encounterColumns + ` FROM encounters WHERE id = $1`
	row := r.db.QueryRowContext(ctx, query, id)

	var e Encounter
	if err := scanEncounter(row.Scan, &e); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &e, nil
}

func (r *postgresRepo) ListByPatient(ctx context.Context, patientID uuid.UUID) ([]Encounter, error) {
	query := `SELECT ` + encounterColumns + ` FROM encounters WHERE patient_id = $1 ORDER BY date DESC`
	return r.list(ctx, query, patientID)
}

// ListWaiting returns the panel queue: waiting encounters, most urgent
// tier first, oldest first within a tier.
func (r *postgresRepo) ListWaiting(ctx context.Context) ([]Encounter, error) {
	query := `
		SELECT ` + encounterColumns + `
		FROM encounters
		WHERE status = $1
		ORDER BY
			CASE priority
				WHEN 'URGENTE' THEN 1
				WHEN 'ALTA' THEN 2
				WHEN 'MÉDIA' THEN 3
				WHEN 'BAIXA' THEN 4
				ELSE 5
			END,
			date ASC
	`
	return r.list(ctx, query, StatusWaiting)
}

func (r *postgresRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	res, err := r.db.ExecContext(ctx, `UPDATE encounters SET status = $2 WHERE id = $1`, id, status)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *postgresRepo) list(ctx context.Context, query string, args ...interface{}) ([]Encounter, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	encounters := []Encounter{}
	for rows.Next() {
		var e Encounter
		if err := scanEncounter(rows.Scan, &e); err != nil {
			return nil, err
		}
		encounters = append(encounters, e)
	}
	return encounters, rows.Err()
}

func scanEncounter(scan func(...interface{}) error, e *Encounter) error {
	return scan(
		&e.ID, &e.PatientID, &e.Date, &e.Symptoms, &e.PainLevel,
		&e.Temperature, &e.HeartRate, &e.Systolic, &e.Diastolic,
		&e.Priority, &e.Ticket, &e.Status, &e.Notes,
	)
}
