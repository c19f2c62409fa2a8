package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/lib/pq"

	"github.com/GoSim-25-26J-441/portfolio-backend/internal/apperrors"
	"github.com/GoSim-25-26J-441/portfolio-backend/internal/entities/domain"
)

// Repository provides persistence operations for one entity table.
type Repository[T any] struct {
	db        *sql.DB
	schema    domain.Schema[T]
	table     string
	returning string
}

// New creates a repository for the table described by schema.
func New[T any](db *sql.DB, schema domain.Schema[T]) *Repository[T] {
	cols := make([]string, 0, len(schema.Columns)+2)
	cols = append(cols, "id")
	for _, c := range schema.Columns {
		cols = append(cols, pq.QuoteIdentifier(c))
	}
	cols = append(cols, "created_at")

	return &Repository[T]{
		db:        db,
		schema:    schema,
		table:     pq.QuoteIdentifier(schema.Table),
		returning: strings.Join(cols, ", "),
	}
}

// List returns every row, newest first.
func (r *Repository[T]) List(ctx context.Context) ([]T, error) {
	q := fmt.Sprintf(`
SELECT %s
FROM %s
ORDER BY created_at DESC, id DESC;
`, r.returning, r.table)

	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]T, 0, 16)
	for rows.Next() {
		var item T
		if err := rows.Scan(r.schema.Targets(&item)...); err != nil {
			return nil, err
		}
		out = append(out, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Insert stores a new row and returns it with its assigned id and timestamp.
// Every schema column is written; missing values become "".
func (r *Repository[T]) Insert(ctx context.Context, f domain.Fields) (*T, error) {
	cols := make([]string, 0, len(r.schema.Columns))
	marks := make([]string, 0, len(r.schema.Columns))
	args := make([]any, 0, len(r.schema.Columns))
	for i, c := range r.schema.Columns {
		cols = append(cols, pq.QuoteIdentifier(c))
		marks = append(marks, fmt.Sprintf("$%d", i+1))
		args = append(args, f[c])
	}

	q := fmt.Sprintf(`
INSERT INTO %s (%s)
VALUES (%s)
RETURNING %s;
`, r.table, strings.Join(cols, ", "), strings.Join(marks, ", "), r.returning)

	var item T
	if err := r.db.QueryRowContext(ctx, q, args...).Scan(r.schema.Targets(&item)...); err != nil {
		return nil, err
	}
	return &item, nil
}

// Update writes only the columns present in f. Columns are applied in schema
// order so the statement is deterministic.
func (r *Repository[T]) Update(ctx context.Context, id int64, f domain.Fields) (*T, error) {
	sets := make([]string, 0, len(f))
	args := []any{id}
	for _, c := range r.schema.Columns {
		v, ok := f[c]
		if !ok {
			continue
		}
		args = append(args, v)
		sets = append(sets, fmt.Sprintf("%s = $%d", pq.QuoteIdentifier(c), len(args)))
	}
	if len(sets) == 0 {
		return nil, fmt.Errorf("update %s: no known columns", r.schema.Name)
	}

	q := fmt.Sprintf(`
UPDATE %s
SET %s
WHERE id = $1
RETURNING %s;
`, r.table, strings.Join(sets, ", "), r.returning)

	var item T
	err := r.db.QueryRowContext(ctx, q, args...).Scan(r.schema.Targets(&item)...)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &item, nil
}

// Delete removes the row with the given id.
func (r *Repository[T]) Delete(ctx context.Context, id int64) error {
	q := fmt.Sprintf(`DELETE FROM %s WHERE id = $1;`, r.table)

	result, err := r.db.ExecContext(ctx, q, id)
	if err != nil {
		return err
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
