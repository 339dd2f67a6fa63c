package patient

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

var (
	ErrNotFound = errors.New("patient not found")
	ErrCPFTaken = errors.New("cpf already registered")
)

type Repository interface {
	Create(ctx context.Context, p *Patient) error
	GetByCPF(ctx context.Context, cpf string) (*Patient, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Patient, error)
}

type postgresRepo struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &postgresRepo{db: db}
}

func (r *postgresRepo) Create(ctx context.Context, p *Patient) error {
	query := `
		INSERT INTO patients (id, name, cpf, sus, password_hash, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := r.db.ExecContext(ctx, query,
		p.ID, p.Name, p.CPF, p.SUS, p.PasswordHash, p.CreatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
			return ErrCPFTaken
		}
		return err
	}
	return nil
}

func (r *postgresRepo) GetByCPF(ctx context.Context, cpf string) (*Patient, error) {
	query := `SELECT id, name, cpf, sus, password_hash, created_at FROM patients WHERE cpf = $1`
	return r.scanOne(r.db.QueryRowContext(ctx, query, cpf))
}

func (r *postgresRepo) GetByID(ctx context.Context, id uuid.UUID) (*Patient, error) {
	query := `SELECT id, name, cpf, sus, password_hash, created_at FROM patients WHERE id = $1`
	return r.scanOne(r.db.QueryRowContext(ctx, query, id))
}

func (r *postgresRepo) scanOne(row *sql.Row) (*Patient, error) {
	var p Patient
	err := row.Scan(&p.ID, &p.Name, &p.CPF, &p.SUS, &p.PasswordHash, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}
