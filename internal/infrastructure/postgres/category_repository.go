package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/duquediazn/tabula-backend/internal/domain"
	"github.com/duquediazn/tabula-backend/internal/domain/entity"
	"github.com/duquediazn/tabula-backend/internal/domain/repository"
)

var _ repository.CategoryRepository = (*CategoryRepo)(nil)

// CategoryRepo categorías de producto sobre PostgreSQL.
type CategoryRepo struct {
	q Querier
}

func NewCategoryRepository(q Querier) *CategoryRepo {
	return &CategoryRepo{q: q}
}

func (r *CategoryRepo) Create(ctx context.Context, c *entity.Category) error {
	err := r.q.QueryRow(ctx, `INSERT INTO categoria_producto (nombre) VALUES ($1) RETURNING id`, c.Name).Scan(&c.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: ya existe la categoría %s", domain.ErrInvalidInput, c.Name)
		}
		return classify("insert categoria", err)
	}
	return nil
}

func (r *CategoryRepo) GetByID(ctx context.Context, id int) (*entity.Category, error) {
	return r.getOne(ctx, `SELECT id, nombre FROM categoria_producto WHERE id = $1`, id)
}

func (r *CategoryRepo) GetByName(ctx context.Context, name string) (*entity.Category, error) {
	return r.getOne(ctx, `SELECT id, nombre FROM categoria_producto WHERE nombre = $1`, name)
}

func (r *CategoryRepo) Update(ctx context.Context, c *entity.Category) error {
	tag, err := r.q.Exec(ctx, `UPDATE categoria_producto SET nombre = $2 WHERE id = $1`, c.ID, c.Name)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: ya existe la categoría %s", domain.ErrInvalidInput, c.Name)
		}
		return classify("update categoria", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: categoría %d", domain.ErrNotFound, c.ID)
	}
	return nil
}

// List categorías ordenadas por nombre.
func (r *CategoryRepo) List(ctx context.Context, p repository.Page) ([]*entity.Category, int, error) {
	total, err := countRows(ctx, r.q, psql.Select("COUNT(*)").From("categoria_producto"), "count categorias")
	if err != nil {
		return nil, 0, err
	}
	sql, args, err := paginate(psql.Select("id", "nombre").From("categoria_producto").OrderBy("nombre"), p).ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build list categorias: %w", err)
	}
	rows, err := r.q.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, classify("list categorias", err)
	}
	defer rows.Close()
	var list []*entity.Category
	for rows.Next() {
		var c entity.Category
		if err := rows.Scan(&c.ID, &c.Name); err != nil {
			return nil, 0, classify("scan categoria", err)
		}
		list = append(list, &c)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, classify("list categorias", err)
	}
	return list, total, nil
}

func (r *CategoryRepo) Delete(ctx context.Context, id int) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM categoria_producto WHERE id = $1`, id)
	if err != nil {
		return classify("delete categoria", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: categoría %d", domain.ErrNotFound, id)
	}
	return nil
}

func (r *CategoryRepo) HasProducts(ctx context.Context, id int) (bool, error) {
	return exists(ctx, r.q, "productos de categoria", `SELECT 1 FROM producto WHERE id_categoria = $1`, id)
}

func (r *CategoryRepo) getOne(ctx context.Context, query string, arg any) (*entity.Category, error) {
	var c entity.Category
	if err := r.q.QueryRow(ctx, query, arg).Scan(&c.ID, &c.Name); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, classify("get categoria", err)
	}
	return &c, nil
}
