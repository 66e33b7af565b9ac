package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"

	"github.com/duquediazn/tabula-backend/internal/domain/repository"
)

// psql builder de squirrel con placeholders $n.
var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

// paginate aplica LIMIT/OFFSET si vienen informados.
func paginate(b squirrel.SelectBuilder, p repository.Page) squirrel.SelectBuilder {
	if p.Limit > 0 {
		b = b.Limit(uint64(p.Limit))
	}
	if p.Offset > 0 {
		b = b.Offset(uint64(p.Offset))
	}
	return b
}

// countRows ejecuta un SELECT COUNT(*) construido con squirrel.
func countRows(ctx context.Context, q Querier, b squirrel.SelectBuilder, op string) (int, error) {
	sql, args, err := b.ToSql()
	if err != nil {
		return 0, fmt.Errorf("build %s: %w", op, err)
	}
	var total int
	if err := q.QueryRow(ctx, sql, args...).Scan(&total); err != nil {
		return 0, classify(op, err)
	}
	return total, nil
}

// exists ejecuta SELECT EXISTS(...) con un único parámetro.
func exists(ctx context.Context, q Querier, op, query string, arg any) (bool, error) {
	var ok bool
	if err := q.QueryRow(ctx, "SELECT EXISTS("+query+")", arg).Scan(&ok); err != nil {
		return false, classify(op, err)
	}
	return ok, nil
}

// likePattern %texto% para ILIKE.
func likePattern(s string) string {
	return "%" + s + "%"
}

func joinColumns(cols []string) string {
	return strings.Join(cols, ", ")
}
