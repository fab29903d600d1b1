package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/finchat/finchat/internal/models"
)

func (r *Repository) CreateEntrada(ctx context.Context, in models.EntradaCreate) (models.EntradaRead, error) {
	var id int
	err := r.db.QueryRowContext(ctx, `
INSERT INTO entradas (usuario_id, descricao, data, instituicao, valor)
VALUES ($1, $2, $3, $4, $5)
RETURNING id`, in.UsuarioID, in.Descricao, in.Data, in.Instituicao, in.Valor).Scan(&id)
	if err != nil {
		return models.EntradaRead{}, fmt.Errorf("create entrada: %w", err)
	}
	return models.EntradaRead{
		ID:          id,
		UsuarioID:   in.UsuarioID,
		Descricao:   in.Descricao,
		Data:        in.Data,
		Instituicao: in.Instituicao,
		Valor:       in.Valor,
	}, nil
}

func (r *Repository) GetEntrada(ctx context.Context, id int) (models.EntradaRead, error) {
	var e models.EntradaRead
	err := r.db.QueryRowContext(ctx, `
SELECT id, usuario_id, descricao, data, instituicao, valor
FROM entradas
WHERE id = $1`, id).Scan(&e.ID, &e.UsuarioID, &e.Descricao, &e.Data, &e.Instituicao, &e.Valor)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.EntradaRead{}, ErrNotFound
		}
		return models.EntradaRead{}, fmt.Errorf("get entrada: %w", err)
	}
	return e, nil
}

func (r *Repository) UpdateEntrada(ctx context.Context, id int, in models.EntradaCreate) (models.EntradaRead, error) {
	res, err := r.db.ExecContext(ctx, `
UPDATE entradas
SET usuario_id = $1, descricao = $2, data = $3, instituicao = $4, valor = $5
WHERE id = $6`, in.UsuarioID, in.Descricao, in.Data, in.Instituicao, in.Valor, id)
	if err != nil {
		return models.EntradaRead{}, fmt.Errorf("update entrada: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return models.EntradaRead{}, fmt.Errorf("update entrada rows affected: %w", err)
	}
	if affected == 0 {
		return models.EntradaRead{}, ErrNotFound
	}
	return models.EntradaRead{
		ID:          id,
		UsuarioID:   in.UsuarioID,
		Descricao:   in.Descricao,
		Data:        in.Data,
		Instituicao: in.Instituicao,
		Valor:       in.Valor,
	}, nil
}

func (r *Repository) DeleteEntrada(ctx context.Context, id int) error {
	res, err := r.db.ExecContext(ctx, `
DELETE FROM entradas
WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete entrada: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete entrada rows affected: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *Repository) ListEntradas(ctx context.Context, usuarioID int) ([]models.EntradaRead, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT id, usuario_id, descricao, data, instituicao, valor
FROM entradas
WHERE usuario_id = $1
ORDER BY data DESC`, usuarioID)
	if err != nil {
		return nil, fmt.Errorf("list entradas: %w", err)
	}
	defer func() { _ = rows.Close() }()

	entradas := make([]models.EntradaRead, 0)
	for rows.Next() {
		var e models.EntradaRead
		if err := rows.Scan(&e.ID, &e.UsuarioID, &e.Descricao, &e.Data, &e.Instituicao, &e.Valor); err != nil {
			return nil, fmt.Errorf("scan entrada row: %w", err)
		}
		entradas = append(entradas, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate entrada rows: %w", err)
	}
	return entradas, nil
}
