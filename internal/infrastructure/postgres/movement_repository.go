package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/duquediazn/tabula-backend/internal/domain/entity"
	"github.com/duquediazn/tabula-backend/internal/domain/repository"
)

var _ repository.MovementRepository = (*MovementRepo)(nil)

var movementColumns = []string{"m.id_mov", "m.fecha", "m.tipo", "m.id_usuario", "COALESCE(u.nombre, '')"}

var lineColumns = []string{"l.id_mov", "l.id_linea", "l.codigo_almacen", "l.codigo_producto", "l.lote", "l.fecha_cad", "l.cantidad"}

// MovementRepo diario de movimientos sobre PostgreSQL (usable con pool o tx).
type MovementRepo struct {
	q Querier
}

// NewMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMovementRepository(q Querier) *MovementRepo {
	return &MovementRepo{q: q}
}

// Create inserta la cabecera; id_mov y fecha los genera la base de datos.
func (r *MovementRepo) Create(ctx context.Context, m *entity.Movement) error {
	query := `INSERT INTO movimientos (tipo, id_usuario) VALUES ($1, $2) RETURNING id_mov, fecha`
	if err := r.q.QueryRow(ctx, query, m.Type, m.UserID).Scan(&m.ID, &m.Date); err != nil {
		return classify("insert movimiento", err)
	}
	return nil
}

// AddLines inserta todas las líneas en un único INSERT multi-fila.
func (r *MovementRepo) AddLines(ctx context.Context, lines []entity.MovementLine) error {
	if len(lines) == 0 {
		return nil
	}
	b := psql.Insert("movimientos_lineas").
		Columns("id_mov", "id_linea", "codigo_almacen", "codigo_producto", "lote", "fecha_cad", "cantidad")
	for _, l := range lines {
		b = b.Values(l.MovementID, l.LineID, l.WarehouseCode, l.ProductCode, l.Lot, l.ExpiryDate, l.Quantity)
	}
	sql, args, err := b.ToSql()
	if err != nil {
		return fmt.Errorf("build insert lineas: %w", err)
	}
	if _, err := r.q.Exec(ctx, sql, args...); err != nil {
		return classify("insert lineas", err)
	}
	return nil
}

// GetByID cabecera con el nombre del usuario; nil si no existe.
func (r *MovementRepo) GetByID(ctx context.Context, id int) (*entity.Movement, error) {
	sql, args, err := r.headers().Where(squirrel.Eq{"m.id_mov": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get movimiento: %w", err)
	}
	m, err := scanMovement(r.q.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, classify("get movimiento", err)
	}
	return m, nil
}

// List cabeceras filtradas, más recientes primero, con el total sin paginar.
func (r *MovementRepo) List(ctx context.Context, f repository.MovementFilter) ([]*entity.Movement, int, error) {
	where := squirrel.And{}
	if f.Search != "" {
		where = append(where, squirrel.ILike{"u.nombre": likePattern(f.Search)})
	}
	if f.Type != "" {
		where = append(where, squirrel.Eq{"m.tipo": f.Type})
	}
	if f.From != nil {
		where = append(where, squirrel.GtOrEq{"m.fecha": *f.From})
	}
	if f.To != nil {
		where = append(where, squirrel.LtOrEq{"m.fecha": *f.To})
	}
	if f.UserID != nil {
		where = append(where, squirrel.Eq{"m.id_usuario": *f.UserID})
	}

	total, err := countRows(ctx, r.q, psql.Select("COUNT(*)").
		From("movimientos m").
		LeftJoin("usuario u ON u.id = m.id_usuario").
		Where(where), "count movimientos")
	if err != nil {
		return nil, 0, err
	}

	list, err := r.queryHeaders(ctx, paginate(r.headers().Where(where).OrderBy("m.fecha DESC", "m.id_mov DESC"), f.Page), "list movimientos")
	if err != nil {
		return nil, 0, err
	}
	return list, total, nil
}

// ListBetween cabeceras con fecha en [from, to].
func (r *MovementRepo) ListBetween(ctx context.Context, from, to time.Time, userID *int) ([]*entity.Movement, error) {
	b := r.headers().
		Where(squirrel.GtOrEq{"m.fecha": from}).
		Where(squirrel.LtOrEq{"m.fecha": to}).
		OrderBy("m.fecha DESC", "m.id_mov DESC")
	if userID != nil {
		b = b.Where(squirrel.Eq{"m.id_usuario": *userID})
	}
	return r.queryHeaders(ctx, b, "list movimientos por fecha")
}

// LinesByMovementIDs líneas de varios movimientos en una sola consulta, agrupadas por id_mov.
func (r *MovementRepo) LinesByMovementIDs(ctx context.Context, ids []int) (map[int][]entity.MovementLine, error) {
	out := make(map[int][]entity.MovementLine, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	query := `SELECT ` + joinColumns(lineColumns) + `
		FROM movimientos_lineas l
		WHERE l.id_mov = ANY($1)
		ORDER BY l.id_mov, l.id_linea`
	rows, err := r.q.Query(ctx, query, ids)
	if err != nil {
		return nil, classify("list lineas", err)
	}
	defer rows.Close()
	for rows.Next() {
		var l entity.MovementLine
		if err := rows.Scan(&l.MovementID, &l.LineID, &l.WarehouseCode, &l.ProductCode, &l.Lot, &l.ExpiryDate, &l.Quantity); err != nil {
			return nil, classify("scan linea", err)
		}
		out[l.MovementID] = append(out[l.MovementID], l)
	}
	if err := rows.Err(); err != nil {
		return nil, classify("list lineas", err)
	}
	return out, nil
}

// ListLinesDetailed líneas de un movimiento con nombre de producto y almacén.
func (r *MovementRepo) ListLinesDetailed(ctx context.Context, movementID int, p repository.Page) ([]entity.MovementLineDetail, int, error) {
	total, err := countRows(ctx, r.q, psql.Select("COUNT(*)").
		From("movimientos_lineas l").
		Where(squirrel.Eq{"l.id_mov": movementID}), "count lineas")
	if err != nil {
		return nil, 0, err
	}

	b := psql.Select(lineColumns...).
		Columns("pr.nombre_corto", "a.descripcion").
		From("movimientos_lineas l").
		Join("producto pr ON pr.codigo = l.codigo_producto").
		Join("almacen a ON a.codigo = l.codigo_almacen").
		Where(squirrel.Eq{"l.id_mov": movementID}).
		OrderBy("l.id_linea")
	sql, args, err := paginate(b, p).ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build lineas detalladas: %w", err)
	}
	rows, err := r.q.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, classify("list lineas detalladas", err)
	}
	defer rows.Close()
	var out []entity.MovementLineDetail
	for rows.Next() {
		var d entity.MovementLineDetail
		if err := rows.Scan(&d.MovementID, &d.LineID, &d.WarehouseCode, &d.ProductCode, &d.Lot, &d.ExpiryDate, &d.Quantity,
			&d.ProductName, &d.WarehouseName); err != nil {
			return nil, 0, classify("scan linea detallada", err)
		}
		out = append(out, d)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, classify("list lineas detalladas", err)
	}
	return out, total, nil
}

// CountByType número de movimientos por tipo.
func (r *MovementRepo) CountByType(ctx context.Context, userID *int) (map[string]int, error) {
	b := psql.Select("tipo", "COUNT(*)").From("movimientos").GroupBy("tipo")
	if userID != nil {
		b = b.Where(squirrel.Eq{"id_usuario": *userID})
	}
	sql, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build count por tipo: %w", err)
	}
	rows, err := r.q.Query(ctx, sql, args...)
	if err != nil {
		return nil, classify("count por tipo", err)
	}
	defer rows.Close()
	out := make(map[string]int, 2)
	for rows.Next() {
		var tipo string
		var n int
		if err := rows.Scan(&tipo, &n); err != nil {
			return nil, classify("scan count por tipo", err)
		}
		out[tipo] = n
	}
	if err := rows.Err(); err != nil {
		return nil, classify("count por tipo", err)
	}
	return out, nil
}

func (r *MovementRepo) headers() squirrel.SelectBuilder {
	return psql.Select(movementColumns...).
		From("movimientos m").
		LeftJoin("usuario u ON u.id = m.id_usuario")
}

func (r *MovementRepo) queryHeaders(ctx context.Context, b squirrel.SelectBuilder, op string) ([]*entity.Movement, error) {
	sql, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build %s: %w", op, err)
	}
	rows, err := r.q.Query(ctx, sql, args...)
	if err != nil {
		return nil, classify(op, err)
	}
	defer rows.Close()
	var out []*entity.Movement
	for rows.Next() {
		m, err := scanMovement(rows)
		if err != nil {
			return nil, classify(op, err)
		}
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, classify(op, err)
	}
	return out, nil
}

func scanMovement(row pgx.Row) (*entity.Movement, error) {
	var m entity.Movement
	if err := row.Scan(&m.ID, &m.Date, &m.Type, &m.UserID, &m.UserName); err != nil {
		return nil, err
	}
	return &m, nil
}
