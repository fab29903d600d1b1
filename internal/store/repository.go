package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/finchat/finchat/internal/models"
)

var (
	ErrNotFound           = errors.New("not found")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// Repository is the data-access layer over the finance schema
// (usuarios, entradas, saidas).
type Repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) HealthCheck(ctx context.Context) error {
	if err := r.db.PingContext(ctx); err != nil {
		return fmt.Errorf("ping db: %w", err)
	}
	return nil
}

func (r *Repository) CreateUsuario(ctx context.Context, in models.UsuarioCreate) (models.UsuarioRead, error) {
	var taken bool
	err := r.db.QueryRowContext(ctx, `
SELECT EXISTS(SELECT 1 FROM usuarios WHERE email = $1)`, in.Email).Scan(&taken)
	if err != nil {
		return models.UsuarioRead{}, fmt.Errorf("check email: %w", err)
	}
	if taken {
		return models.UsuarioRead{}, ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Senha), bcrypt.DefaultCost)
	if err != nil {
		return models.UsuarioRead{}, fmt.Errorf("hash senha: %w", err)
	}

	var id int
	err = r.db.QueryRowContext(ctx, `
INSERT INTO usuarios (nome, email, senha)
VALUES ($1, $2, $3)
RETURNING id`, in.Nome, in.Email, string(hash)).Scan(&id)
	if err != nil {
		return models.UsuarioRead{}, fmt.Errorf("create usuario: %w", err)
	}

	return models.UsuarioRead{ID: id, Nome: in.Nome, Email: in.Email}, nil
}

func (r *Repository) GetUsuario(ctx context.Context, id int) (models.UsuarioRead, error) {
	var u models.UsuarioRead
	err := r.db.QueryRowContext(ctx, `
SELECT id, nome, email
FROM usuarios
WHERE id = $1`, id).Scan(&u.ID, &u.Nome, &u.Email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.UsuarioRead{}, ErrNotFound
		}
		return models.UsuarioRead{}, fmt.Errorf("get usuario: %w", err)
	}
	return u, nil
}

// Authenticate verifies email/senha against the stored bcrypt hash.
func (r *Repository) Authenticate(ctx context.Context, email, senha string) (models.UsuarioRead, error) {
	var u models.UsuarioRead
	var hash string
	err := r.db.QueryRowContext(ctx, `
SELECT id, nome, email, senha
FROM usuarios
WHERE email = $1`, email).Scan(&u.ID, &u.Nome, &u.Email, &hash)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.UsuarioRead{}, ErrInvalidCredentials
		}
		return models.UsuarioRead{}, fmt.Errorf("get usuario by email: %w", err)
	}
	if bcrypt.CompareHashAndPassword([]byte(hash), []byte(senha)) != nil {
		return models.UsuarioRead{}, ErrInvalidCredentials
	}
	return u, nil
}
