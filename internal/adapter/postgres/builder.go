package postgres

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
)

var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

// Builder returns a squirrel statement builder using $n placeholders.
func Builder() squirrel.StatementBuilderType { return psql }

// Get runs a single-row query and scans it into T by column name.
func Get[T any](ctx context.Context, q Querier, b squirrel.Sqlizer) (*T, error) {
	query, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var dst T
	if err := pgxscan.Get(ctx, q, &dst, query, args...); err != nil {
		return nil, err
	}
	return &dst, nil
}

// Select runs a query and scans every row into T by column name.
func Select[T any](ctx context.Context, q Querier, b squirrel.Sqlizer) ([]T, error) {
	query, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var dst []T
	if err := pgxscan.Select(ctx, q, &dst, query, args...); err != nil {
		return nil, err
	}
	return dst, nil
}

// Exec runs a statement and returns the number of affected rows.
func Exec(ctx context.Context, q Querier, b squirrel.Sqlizer) (int64, error) {
	query, args, err := b.ToSql()
	if err != nil {
		return 0, fmt.Errorf("build query: %w", err)
	}

	tag, err := q.Exec(ctx, query, args...)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
