package patient

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrPasswordMismatch   = errors.New("passwords do not match")
	ErrPasswordTooShort   = errors.New("password must be at least 6 characters")
	ErrInvalidCredentials = errors.New("invalid cpf or password")
)

// TokenIssuer mints the session token handed out at login.
type TokenIssuer interface {
	Token(patientID uuid.UUID, name string) (string, error)
}

type RegisterInput struct {
	Name            string `json:"name"`
	CPF             string `json:"cpf"`
	SUS             string `json:"sus"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
}

type Service interface {
	Register(ctx context.Context, in RegisterInput) (*Patient, error)
	Login(ctx context.Context, cpf, password string) (string, *Patient, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Patient, error)
}

type service struct {
	repo   Repository
	tokens TokenIssuer
}

func NewService(repo Repository, tokens TokenIssuer) Service {
	return &service{repo: repo, tokens: tokens}
}

// NormalizeCPF strips the usual formatting ("123.456.789-00") down to
// digits, the form CPFs are stored and looked up in.
func NormalizeCPF(cpf string) string {
	cpf = strings.ReplaceAll(cpf, ".", "")
	cpf = strings.ReplaceAll(cpf, "-", "")
	return strings.TrimSpace(cpf)
}

func (s *service) Register(ctx context.Context, in RegisterInput) (*Patient, error) {
	if in.Password != in.ConfirmPassword {
		return nil, ErrPasswordMismatch
	}
	if len(in.Password) < 6 {
		return nil, ErrPasswordTooShort
	}

	cpf := NormalizeCPF(in.CPF)

	if _, err := s.repo.GetByCPF(ctx, cpf); err == nil {
		return nil, ErrCPFTaken
	} else if !errors.Is(err, ErrNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	p := &Patient{
		ID:           uuid.New(),
		Name:         strings.TrimSpace(in.Name),
		CPF:          cpf,
		SUS:          strings.TrimSpace(in.SUS),
		PasswordHash: string(hash),
		CreatedAt:    time.Now(),
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *service) Login(ctx context.Context, cpf, password string) (string, *Patient, error) {
	p, err := s.repo.GetByCPF(ctx, NormalizeCPF(cpf))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(p.PasswordHash), []byte(password)); err != nil {
		return "", nil, ErrInvalidCredentials
	}

	token, err := s.tokens.Token(p.ID, p.Name)
	if err != nil {
		return "", nil, err
	}
	return token, p, nil
}

func (s *service) GetByID(ctx context.Context, id uuid.UUID) (*Patient, error) {
	return s.repo.GetByID(ctx, id)
}
