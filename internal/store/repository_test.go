package store

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"golang.org/x/crypto/bcrypt"

	"github.com/finchat/finchat/internal/models"
)

func newSQLMock(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New() error = %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db, mock
}

func assertSQLMock(t *testing.T, mock sqlmock.Sqlmock) {
	t.Helper()
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet sql expectations: %v", err)
	}
}

func strptr(s string) *string { return &s }

// ─── Usuarios ─────────────────────────────────────────────────────────────────

func TestCreateUsuario(t *testing.T) {
	db, mock := newSQLMock(t)
	repo := NewRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT EXISTS(SELECT 1 FROM usuarios WHERE email = $1)`)).
		WithArgs("ana@example.com").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
	mock.ExpectQuery(regexp.QuoteMeta(`
INSERT INTO usuarios (nome, email, senha)
VALUES ($1, $2, $3)
RETURNING id`)).
		WithArgs("Ana", "ana@example.com", sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(12))

	u, err := repo.CreateUsuario(context.Background(), models.UsuarioCreate{
		Nome: "Ana", Email: "ana@example.com", Senha: "s3nha",
	})
	if err != nil {
		t.Fatalf("CreateUsuario() error = %v", err)
	}
	if u.ID != 12 || u.Nome != "Ana" || u.Email != "ana@example.com" {
		t.Fatalf("usuario = %+v", u)
	}
	assertSQLMock(t, mock)
}

func TestCreateUsuarioEmailTaken(t *testing.T) {
	db, mock := newSQLMock(t)
	repo := NewRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT EXISTS(SELECT 1 FROM usuarios WHERE email = $1)`)).
		WithArgs("ana@example.com").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	_, err := repo.CreateUsuario(context.Background(), models.UsuarioCreate{
		Nome: "Ana", Email: "ana@example.com", Senha: "s3nha",
	})
	if !errors.Is(err, ErrEmailTaken) {
		t.Fatalf("error = %v, want ErrEmailTaken", err)
	}
	assertSQLMock(t, mock)
}

func TestGetUsuarioNotFound(t *testing.T) {
	db, mock := newSQLMock(t)
	repo := NewRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(`
SELECT id, nome, email
FROM usuarios
WHERE id = $1`)).
		WithArgs(99).
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetUsuario(context.Background(), 99)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("error = %v, want ErrNotFound", err)
	}
	assertSQLMock(t, mock)
}

func TestAuthenticate(t *testing.T) {
	db, mock := newSQLMock(t)
	repo := NewRepository(db)

	hash, err := bcrypt.GenerateFromPassword([]byte("s3nha"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("bcrypt: %v", err)
	}
	mock.ExpectQuery(regexp.QuoteMeta(`
SELECT id, nome, email, senha
FROM usuarios
WHERE email = $1`)).
		WithArgs("ana@example.com").
		WillReturnRows(sqlmock.NewRows([]string{"id", "nome", "email", "senha"}).
			AddRow(12, "Ana", "ana@example.com", string(hash)))

	u, err := repo.Authenticate(context.Background(), "ana@example.com", "s3nha")
	if err != nil {
		t.Fatalf("Authenticate() error = %v", err)
	}
	if u.ID != 12 {
		t.Fatalf("usuario = %+v", u)
	}
	assertSQLMock(t, mock)
}

func TestAuthenticateWrongPassword(t *testing.T) {
	db, mock := newSQLMock(t)
	repo := NewRepository(db)

	hash, _ := bcrypt.GenerateFromPassword([]byte("s3nha"), bcrypt.MinCost)
	mock.ExpectQuery(regexp.QuoteMeta(`
SELECT id, nome, email, senha
FROM usuarios
WHERE email = $1`)).
		WithArgs("ana@example.com").
		WillReturnRows(sqlmock.NewRows([]string{"id", "nome", "email", "senha"}).
			AddRow(12, "Ana", "ana@example.com", string(hash)))

	_, err := repo.Authenticate(context.Background(), "ana@example.com", "errada")
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("error = %v, want ErrInvalidCredentials", err)
	}
	assertSQLMock(t, mock)
}

func TestAuthenticateUnknownEmail(t *testing.T) {
	db, mock := newSQLMock(t)
	repo := NewRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(`
SELECT id, nome, email, senha
FROM usuarios
WHERE email = $1`)).
		WithArgs("ghost@example.com").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.Authenticate(context.Background(), "ghost@example.com", "x")
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("error = %v, want ErrInvalidCredentials", err)
	}
	assertSQLMock(t, mock)
}

// ─── Entradas / Saidas ────────────────────────────────────────────────────────

func TestCreateEntrada(t *testing.T) {
	db, mock := newSQLMock(t)
	repo := NewRepository(db)
	when := time.Date(2025, time.June, 18, 10, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta(`
INSERT INTO entradas (usuario_id, descricao, data, instituicao, valor)
VALUES ($1, $2, $3, $4, $5)
RETURNING id`)).
		WithArgs(7, strptr("Salário"), when, "Banco A", 5000.0).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(3))

	e, err := repo.CreateEntrada(context.Background(), models.EntradaCreate{
		UsuarioID: 7, Descricao: strptr("Salário"), Data: when, Instituicao: "Banco A", Valor: 5000.0,
	})
	if err != nil {
		t.Fatalf("CreateEntrada() error = %v", err)
	}
	if e.ID != 3 || e.UsuarioID != 7 {
		t.Fatalf("entrada = %+v", e)
	}
	assertSQLMock(t, mock)
}

func TestUpdateSaidaNotFound(t *testing.T) {
	db, mock := newSQLMock(t)
	repo := NewRepository(db)
	when := time.Date(2025, time.June, 18, 10, 0, 0, 0, time.UTC)

	mock.ExpectExec(regexp.QuoteMeta(`
UPDATE saidas`)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	_, err := repo.UpdateSaida(context.Background(), 99, models.SaidaCreate{
		UsuarioID: 7, Data: when, Categoria: "Alimentação", Instituicao: "Banco A", Valor: 10,
	})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("error = %v, want ErrNotFound", err)
	}
	assertSQLMock(t, mock)
}

func TestDeleteEntradaNotFound(t *testing.T) {
	db, mock := newSQLMock(t)
	repo := NewRepository(db)

	mock.ExpectExec(regexp.QuoteMeta(`
DELETE FROM entradas
WHERE id = $1`)).
		WithArgs(99).
		WillReturnResult(sqlmock.NewResult(0, 0))

	if err := repo.DeleteEntrada(context.Background(), 99); !errors.Is(err, ErrNotFound) {
		t.Fatalf("error = %v, want ErrNotFound", err)
	}
	assertSQLMock(t, mock)
}

func TestListSaidasOrdered(t *testing.T) {
	db, mock := newSQLMock(t)
	repo := NewRepository(db)
	newer := time.Date(2025, time.June, 18, 10, 0, 0, 0, time.UTC)
	older := newer.Add(-24 * time.Hour)

	mock.ExpectQuery(regexp.QuoteMeta(`
SELECT id, usuario_id, descricao, data, categoria, subcategoria, instituicao, valor
FROM saidas
WHERE usuario_id = $1
ORDER BY data DESC`)).
		WithArgs(7).
		WillReturnRows(sqlmock.NewRows([]string{"id", "usuario_id", "descricao", "data", "categoria", "subcategoria", "instituicao", "valor"}).
			AddRow(2, 7, strptr("Mercado"), newer, "Alimentação", nil, "Banco A", 45.9).
			AddRow(1, 7, nil, older, "Transporte", strptr("Combustível"), "Banco A", 120.0))

	saidas, err := repo.ListSaidas(context.Background(), 7)
	if err != nil {
		t.Fatalf("ListSaidas() error = %v", err)
	}
	if len(saidas) != 2 {
		t.Fatalf("len = %d", len(saidas))
	}
	if saidas[0].ID != 2 || *saidas[0].Descricao != "Mercado" {
		t.Fatalf("saidas[0] = %+v", saidas[0])
	}
	if saidas[1].Descricao != nil || saidas[1].Subcategoria == nil {
		t.Fatalf("saidas[1] = %+v", saidas[1])
	}
	assertSQLMock(t, mock)
}
