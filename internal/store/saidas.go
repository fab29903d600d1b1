package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/finchat/finchat/internal/models"
)

func (r *Repository) CreateSaida(ctx context.Context, in models.SaidaCreate) (models.SaidaRead, error) {
	var id int
	err := r.db.QueryRowContext(ctx, `
INSERT INTO saidas (usuario_id, descricao, data, categoria, subcategoria, instituicao, valor)
VALUES ($1, $2, $3, $4, $5, $6, $7)
RETURNING id`, in.UsuarioID, in.Descricao, in.Data, in.Categoria, in.Subcategoria, in.Instituicao, in.Valor).Scan(&id)
	if err != nil {
		return models.SaidaRead{}, fmt.Errorf("create saida: %w", err)
	}
	return models.SaidaRead{
		ID:           id,
		UsuarioID:    in.UsuarioID,
		Descricao:    in.Descricao,
		Data:         in.Data,
		Categoria:    in.Categoria,
		Subcategoria: in.Subcategoria,
		Instituicao:  in.Instituicao,
		Valor:        in.Valor,
	}, nil
}

func (r *Repository) GetSaida(ctx context.Context, id int) (models.SaidaRead, error) {
	var s models.SaidaRead
	err := r.db.QueryRowContext(ctx, `
SELECT id, usuario_id, descricao, data, categoria, subcategoria, instituicao, valor
FROM saidas
WHERE id = $1`, id).Scan(&s.ID, &s.UsuarioID, &s.Descricao, &s.Data, &s.Categoria, &s.Subcategoria, &s.Instituicao, &s.Valor)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.SaidaRead{}, ErrNotFound
		}
		return models.SaidaRead{}, fmt.Errorf("get saida: %w", err)
	}
	return s, nil
}

func (r *Repository) UpdateSaida(ctx context.Context, id int, in models.SaidaCreate) (models.SaidaRead, error) {
	res, err := r.db.ExecContext(ctx, `
UPDATE saidas
SET usuario_id = $1, descricao = $2, data = $3, categoria = $4, subcategoria = $5, instituicao = $6, valor = $7
WHERE id = $8`, in.UsuarioID, in.Descricao, in.Data, in.Categoria, in.Subcategoria, in.Instituicao, in.Valor, id)
	if err != nil {
		return models.SaidaRead{}, fmt.Errorf("update saida: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return models.SaidaRead{}, fmt.Errorf("update saida rows affected: %w", err)
	}
	if affected == 0 {
		return models.SaidaRead{}, ErrNotFound
	}
	return models.SaidaRead{
		ID:           id,
		UsuarioID:    in.UsuarioID,
		Descricao:    in.Descricao,
		Data:         in.Data,
		Categoria:    in.Categoria,
		Subcategoria: in.Subcategoria,
		Instituicao:  in.Instituicao,
		Valor:        in.Valor,
	}, nil
}

func (r *Repository) DeleteSaida(ctx context.Context, id int) error {
	res, err := r.db.ExecContext(ctx, `
DELETE FROM saidas
WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete saida: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete saida rows affected: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *Repository) ListSaidas(ctx context.Context, usuarioID int) ([]models.SaidaRead, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT id, usuario_id, descricao, data, categoria, subcategoria, instituicao, valor
FROM saidas
WHERE usuario_id = $1
ORDER BY data DESC`, usuarioID)
	if err != nil {
		return nil, fmt.Errorf("list saidas: %w", err)
	}
	defer func() { _ = rows.Close() }()

	saidas := make([]models.SaidaRead, 0)
	for rows.Next() {
		var s models.SaidaRead
		if err := rows.Scan(&s.ID, &s.UsuarioID, &s.Descricao, &s.Data, &s.Categoria, &s.Subcategoria, &s.Instituicao, &s.Valor); err != nil {
			return nil, fmt.Errorf("scan saida row: %w", err)
		}
		saidas = append(saidas, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate saida rows: %w", err)
	}
	return saidas, nil
}
