package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/duquediazn/tabula-backend/internal/domain"
	"github.com/duquediazn/tabula-backend/internal/domain/entity"
	"github.com/duquediazn/tabula-backend/internal/domain/repository"
)

var _ repository.WarehouseRepository = (*WarehouseRepo)(nil)

// WarehouseRepo implementación de WarehouseRepository sobre PostgreSQL.
type WarehouseRepo struct {
	q Querier
}

// NewWarehouseRepository construye el adaptador. Pasar pool o tx (Querier).
func NewWarehouseRepository(q Querier) *WarehouseRepo {
	return &WarehouseRepo{q: q}
}

// Create persiste un almacén y rellena su código.
func (r *WarehouseRepo) Create(ctx context.Context, w *entity.Warehouse) error {
	err := r.q.QueryRow(ctx, `INSERT INTO almacen (descripcion, activo) VALUES ($1, $2) RETURNING codigo`,
		w.Description, w.Active).Scan(&w.Code)
	if err != nil {
		return classify("insert almacen", err)
	}
	return nil
}

// GetByCode obtiene un almacén por código; nil si no existe.
func (r *WarehouseRepo) GetByCode(ctx context.Context, code int) (*entity.Warehouse, error) {
	var w entity.Warehouse
	err := r.q.QueryRow(ctx, `SELECT codigo, descripcion, activo FROM almacen WHERE codigo = $1`, code).
		Scan(&w.Code, &w.Description, &w.Active)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, classify("get almacen", err)
	}
	return &w, nil
}

// Update actualiza descripción y estado.
func (r *WarehouseRepo) Update(ctx context.Context, w *entity.Warehouse) error {
	tag, err := r.q.Exec(ctx, `UPDATE almacen SET descripcion = $2, activo = $3 WHERE codigo = $1`,
		w.Code, w.Description, w.Active)
	if err != nil {
		return classify("update almacen", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: almacén %d", domain.ErrNotFound, w.Code)
	}
	return nil
}

// List almacenes filtrados por descripción y estado.
func (r *WarehouseRepo) List(ctx context.Context, f repository.WarehouseFilter) ([]*entity.Warehouse, int, error) {
	where := squirrel.And{}
	if f.Search != "" {
		where = append(where, squirrel.ILike{"descripcion": likePattern(f.Search)})
	}
	if f.Active != nil {
		where = append(where, squirrel.Eq{"activo": *f.Active})
	}

	total, err := countRows(ctx, r.q, psql.Select("COUNT(*)").From("almacen").Where(where), "count almacenes")
	if err != nil {
		return nil, 0, err
	}

	b := psql.Select("codigo", "descripcion", "activo").From("almacen").Where(where).OrderBy("codigo")
	sql, args, err := paginate(b, f.Page).ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build list almacenes: %w", err)
	}
	rows, err := r.q.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, classify("list almacenes", err)
	}
	defer rows.Close()
	var list []*entity.Warehouse
	for rows.Next() {
		var w entity.Warehouse
		if err := rows.Scan(&w.Code, &w.Description, &w.Active); err != nil {
			return nil, 0, classify("scan almacen", err)
		}
		list = append(list, &w)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, classify("list almacenes", err)
	}
	return list, total, nil
}

// Delete borra un almacén por código.
func (r *WarehouseRepo) Delete(ctx context.Context, code int) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM almacen WHERE codigo = $1`, code)
	if err != nil {
		return classify("delete almacen", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: almacén %d", domain.ErrNotFound, code)
	}
	return nil
}

// ActiveCodes de los códigos pedidos, los que existen y están activos.
func (r *WarehouseRepo) ActiveCodes(ctx context.Context, codes []int) ([]int, error) {
	return activeCodes(ctx, r.q, `SELECT codigo FROM almacen WHERE codigo = ANY($1) AND activo`, codes, "almacenes activos")
}

func (r *WarehouseRepo) HasStock(ctx context.Context, code int) (bool, error) {
	return exists(ctx, r.q, "stock de almacen", `SELECT 1 FROM stock WHERE codigo_almacen = $1 AND cantidad > 0`, code)
}

func (r *WarehouseRepo) HasMovements(ctx context.Context, code int) (bool, error) {
	return exists(ctx, r.q, "movimientos de almacen", `SELECT 1 FROM movimientos_lineas WHERE codigo_almacen = $1`, code)
}
