package chat

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// QueryExecutionError is the hard failure mode of the execution stage. Detail
// carries the engine's own message so the client can surface it.
type QueryExecutionError struct {
	Detail string
	Err    error
}

func (e *QueryExecutionError) Error() string { return "query execution: " + e.Detail }
func (e *QueryExecutionError) Unwrap() error { return e.Err }

// Execute runs a validated generated query inside a read-only transaction and
// returns its rows as JSON-ready values. Any failure rolls the transaction
// back and comes out as a *QueryExecutionError.
func Execute(ctx context.Context, db *sql.DB, query string) ([]any, error) {
	tx, err := db.BeginTx(ctx, &sql.TxOptions{ReadOnly: true})
	if err != nil {
		return nil, &QueryExecutionError{Detail: err.Error(), Err: err}
	}

	rows, err := tx.QueryContext(ctx, query)
	if err != nil {
		_ = tx.Rollback()
		return nil, &QueryExecutionError{Detail: err.Error(), Err: err}
	}

	results, err := collectRows(rows)
	_ = rows.Close()
	if err != nil {
		_ = tx.Rollback()
		return nil, &QueryExecutionError{Detail: err.Error(), Err: err}
	}

	if err := tx.Commit(); err != nil {
		return nil, &QueryExecutionError{Detail: err.Error(), Err: err}
	}
	return results, nil
}

func collectRows(rows *sql.Rows) ([]any, error) {
	cols, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("columns: %w", err)
	}
	types, err := rows.ColumnTypes()
	if err != nil {
		return nil, fmt.Errorf("column types: %w", err)
	}

	results := make([]any, 0)
	for rows.Next() {
		values := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}

		if len(cols) == 0 {
			// Driver reported no columns; nothing usable per row.
			results = append(results, nil)
			continue
		}
		row := make(map[string]any, len(cols))
		for i, col := range cols {
			row[col] = normalizeValue(values[i], types[i].DatabaseTypeName())
		}
		results = append(results, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate: %w", err)
	}
	return results, nil
}

// normalizeValue maps a driver value to its JSON-friendly form: decimals
// become float64, timestamps become ISO-8601 strings, raw bytes become
// strings. Everything else passes through.
func normalizeValue(v any, dbType string) any {
	switch val := v.(type) {
	case nil:
		return nil
	case time.Time:
		return val.Format(time.RFC3339)
	case []byte:
		s := string(val)
		switch strings.ToUpper(dbType) {
		case "NUMERIC", "DECIMAL":
			if f, err := strconv.ParseFloat(s, 64); err == nil {
				return f
			}
		}
		return s
	case string:
		switch strings.ToUpper(dbType) {
		case "NUMERIC", "DECIMAL":
			if f, err := strconv.ParseFloat(val, 64); err == nil {
				return f
			}
		}
		return val
	default:
		return val
	}
}

// Normalize recursively converts a result value into a shape that marshals
// cleanly to JSON. Idempotent: applying it to already-normalized data is a
// no-op.
func Normalize(v any) any {
	switch val := v.(type) {
	case nil:
		return nil
	case time.Time:
		return val.Format(time.RFC3339)
	case []byte:
		return string(val)
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = Normalize(item)
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, item := range val {
			out[k] = Normalize(item)
		}
		return out
	default:
		return val
	}
}
