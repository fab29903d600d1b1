package store

import (
	"context"
	"fmt"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/finchat/finchat/internal/models"
)

// "todas" is the frontend's sentinel for "no institution filter".
func institutionFiltered(instituicao string) bool {
	return instituicao != "" && !strings.EqualFold(instituicao, "todas")
}

// Dashboard returns the balance, totals and the 5 most recent records of
// each kind, optionally filtered by institution and expense categories.
// The four queries are independent and run concurrently.
func (r *Repository) Dashboard(ctx context.Context, usuarioID int, instituicao string, categorias []string) (models.DashboardResponse, error) {
	entWhere, entArgs := "usuario_id = $1", []any{usuarioID}
	saiWhere, saiArgs := "usuario_id = $1", []any{usuarioID}

	if institutionFiltered(instituicao) {
		entWhere += fmt.Sprintf(" AND instituicao = $%d", len(entArgs)+1)
		entArgs = append(entArgs, instituicao)
		saiWhere += fmt.Sprintf(" AND instituicao = $%d", len(saiArgs)+1)
		saiArgs = append(saiArgs, instituicao)
	}
	if len(categorias) > 0 {
		ph := make([]string, len(categorias))
		for i, c := range categorias {
			ph[i] = fmt.Sprintf("$%d", len(saiArgs)+1)
			saiArgs = append(saiArgs, c)
		}
		saiWhere += " AND categoria IN (" + strings.Join(ph, ", ") + ")"
	}

	var resp models.DashboardResponse
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		err := r.db.QueryRowContext(gctx,
			"SELECT COALESCE(SUM(valor), 0) FROM entradas WHERE "+entWhere, entArgs...).
			Scan(&resp.TotalEntradas)
		if err != nil {
			return fmt.Errorf("total entradas: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		err := r.db.QueryRowContext(gctx,
			"SELECT COALESCE(SUM(valor), 0) FROM saidas WHERE "+saiWhere, saiArgs...).
			Scan(&resp.TotalSaidas)
		if err != nil {
			return fmt.Errorf("total saidas: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		rows, err := r.db.QueryContext(gctx,
			"SELECT id, usuario_id, descricao, data, instituicao, valor FROM entradas WHERE "+
				entWhere+" ORDER BY data DESC LIMIT 5", entArgs...)
		if err != nil {
			return fmt.Errorf("recent entradas: %w", err)
		}
		defer func() { _ = rows.Close() }()

		recent := make([]models.EntradaRead, 0, 5)
		for rows.Next() {
			var e models.EntradaRead
			if err := rows.Scan(&e.ID, &e.UsuarioID, &e.Descricao, &e.Data, &e.Instituicao, &e.Valor); err != nil {
				return fmt.Errorf("scan recent entrada: %w", err)
			}
			recent = append(recent, e)
		}
		if err := rows.Err(); err != nil {
			return fmt.Errorf("iterate recent entradas: %w", err)
		}
		resp.RecentEntradas = recent
		return nil
	})
	g.Go(func() error {
		rows, err := r.db.QueryContext(gctx,
			"SELECT id, usuario_id, descricao, data, categoria, subcategoria, instituicao, valor FROM saidas WHERE "+
				saiWhere+" ORDER BY data DESC LIMIT 5", saiArgs...)
		if err != nil {
			return fmt.Errorf("recent saidas: %w", err)
		}
		defer func() { _ = rows.Close() }()

		recent := make([]models.SaidaRead, 0, 5)
		for rows.Next() {
			var s models.SaidaRead
			if err := rows.Scan(&s.ID, &s.UsuarioID, &s.Descricao, &s.Data, &s.Categoria, &s.Subcategoria, &s.Instituicao, &s.Valor); err != nil {
				return fmt.Errorf("scan recent saida: %w", err)
			}
			recent = append(recent, s)
		}
		if err := rows.Err(); err != nil {
			return fmt.Errorf("iterate recent saidas: %w", err)
		}
		resp.RecentSaidas = recent
		return nil
	})

	if err := g.Wait(); err != nil {
		return models.DashboardResponse{}, fmt.Errorf("dashboard: %w", err)
	}

	resp.Saldo = resp.TotalEntradas - resp.TotalSaidas
	return resp, nil
}

// Relatorio aggregates expense totals per category and per-institution
// totals for both record kinds, within an optional date window.
func (r *Repository) Relatorio(ctx context.Context, usuarioID int, instituicao string, dateFrom, dateTo *time.Time) (models.RelatorioResponse, error) {
	where, args := "usuario_id = $1", []any{usuarioID}

	if institutionFiltered(instituicao) {
		where += fmt.Sprintf(" AND instituicao = $%d", len(args)+1)
		args = append(args, instituicao)
	}
	if dateFrom != nil {
		where += fmt.Sprintf(" AND data >= $%d", len(args)+1)
		args = append(args, *dateFrom)
	}
	if dateTo != nil {
		where += fmt.Sprintf(" AND data <= $%d", len(args)+1)
		args = append(args, *dateTo)
	}

	porCategoria, err := r.categoriaTotals(ctx,
		"SELECT categoria, SUM(valor) AS total FROM saidas WHERE "+where+" GROUP BY categoria", args)
	if err != nil {
		return models.RelatorioResponse{}, err
	}
	entradaPorInst, err := r.instituicaoTotals(ctx,
		"SELECT instituicao, SUM(valor) AS total FROM entradas WHERE "+where+" GROUP BY instituicao", args)
	if err != nil {
		return models.RelatorioResponse{}, err
	}
	saidaPorInst, err := r.instituicaoTotals(ctx,
		"SELECT instituicao, SUM(valor) AS total FROM saidas WHERE "+where+" GROUP BY instituicao", args)
	if err != nil {
		return models.RelatorioResponse{}, err
	}

	return models.RelatorioResponse{
		PorCategoria:          porCategoria,
		EntradaPorInstituicao: entradaPorInst,
		SaidaPorInstituicao:   saidaPorInst,
	}, nil
}

func (r *Repository) categoriaTotals(ctx context.Context, query string, args []any) ([]models.CategoriaTotal, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("categoria totals: %w", err)
	}
	defer func() { _ = rows.Close() }()

	totals := make([]models.CategoriaTotal, 0)
	for rows.Next() {
		var t models.CategoriaTotal
		if err := rows.Scan(&t.Categoria, &t.Total); err != nil {
			return nil, fmt.Errorf("scan categoria total: %w", err)
		}
		totals = append(totals, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate categoria totals: %w", err)
	}
	return totals, nil
}

func (r *Repository) instituicaoTotals(ctx context.Context, query string, args []any) ([]models.InstituicaoTotal, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("instituicao totals: %w", err)
	}
	defer func() { _ = rows.Close() }()

	totals := make([]models.InstituicaoTotal, 0)
	for rows.Next() {
		var t models.InstituicaoTotal
		if err := rows.Scan(&t.Instituicao, &t.Total); err != nil {
			return nil, fmt.Errorf("scan instituicao total: %w", err)
		}
		totals = append(totals, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate instituicao totals: %w", err)
	}
	return totals, nil
}
