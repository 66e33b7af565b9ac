package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/duquediazn/tabula-backend/internal/domain"
	"github.com/duquediazn/tabula-backend/internal/domain/entity"
	"github.com/duquediazn/tabula-backend/internal/domain/repository"
)

var _ repository.StockRepository = (*StockRepo)(nil)

// StockRepo implementación de StockRepository sobre PostgreSQL (usable con pool o tx).
type StockRepo struct {
	q Querier
}

// NewStockRepository construye el adaptador de stock. Pasar pool o tx (Querier).
func NewStockRepository(q Querier) *StockRepo {
	return &StockRepo{q: q}
}

// List stock por lote con cantidad positiva, filtrable por almacén y producto.
func (r *StockRepo) List(ctx context.Context, f repository.StockFilter) ([]entity.StockView, int, error) {
	where := squirrel.And{squirrel.Gt{"s.cantidad": 0}}
	if f.WarehouseCode != nil {
		where = append(where, squirrel.Eq{"s.codigo_almacen": *f.WarehouseCode})
	}
	if f.ProductCode != nil {
		where = append(where, squirrel.Eq{"s.codigo_producto": *f.ProductCode})
	}
	return r.views(ctx, where, []string{"s.codigo_almacen", "s.codigo_producto", "s.lote"}, f.Page, "list stock")
}

// Expiring stock con fecha_cad en (from, to], primero lo que caduca antes.
func (r *StockRepo) Expiring(ctx context.Context, from, to time.Time, p repository.Page) ([]entity.StockView, int, error) {
	where := squirrel.And{
		squirrel.Gt{"s.cantidad": 0},
		squirrel.Gt{"s.fecha_cad": from},
		squirrel.LtOrEq{"s.fecha_cad": to},
	}
	return r.views(ctx, where, []string{"s.fecha_cad", "s.codigo_producto", "s.lote"}, p, "list stock por caducar")
}

// ProductByWarehouse total de un producto en cada almacén.
func (r *StockRepo) ProductByWarehouse(ctx context.Context, productCode int, p repository.Page) ([]entity.StockTotal, int, error) {
	total, err := countRows(ctx, r.q, psql.Select("COUNT(DISTINCT s.codigo_almacen)").
		From("stock s").
		Where(squirrel.Eq{"s.codigo_producto": productCode}), "count stock producto")
	if err != nil {
		return nil, 0, err
	}
	b := psql.Select("a.codigo", "a.descripcion", "SUM(s.cantidad)").
		From("stock s").
		Join("almacen a ON a.codigo = s.codigo_almacen").
		Where(squirrel.Eq{"s.codigo_producto": productCode}).
		GroupBy("a.codigo", "a.descripcion").
		OrderBy("a.codigo")
	rows, err := r.totals(ctx, paginate(b, p), "stock producto por almacen")
	if err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

// WarehouseByProduct total de cada producto dentro de un almacén.
func (r *StockRepo) WarehouseByProduct(ctx context.Context, warehouseCode int) ([]entity.StockTotal, error) {
	b := psql.Select("p.codigo", "p.nombre_corto", "SUM(s.cantidad)").
		From("stock s").
		Join("producto p ON p.codigo = s.codigo_producto").
		Where(squirrel.Eq{"s.codigo_almacen": warehouseCode}).
		GroupBy("p.codigo", "p.nombre_corto").
		Having("SUM(s.cantidad) > 0").
		OrderBy("p.codigo")
	return r.totals(ctx, b, "stock almacen por producto")
}

// TotalsByWarehouse unidades totales por almacén.
func (r *StockRepo) TotalsByWarehouse(ctx context.Context) ([]entity.StockTotal, error) {
	b := psql.Select("a.codigo", "a.descripcion", "SUM(s.cantidad)").
		From("stock s").
		Join("almacen a ON a.codigo = s.codigo_almacen").
		GroupBy("a.codigo", "a.descripcion").
		OrderBy("a.codigo")
	return r.totals(ctx, b, "stock por almacen")
}

// TotalsByCategory unidades totales por categoría.
func (r *StockRepo) TotalsByCategory(ctx context.Context) ([]entity.StockTotal, error) {
	b := psql.Select("c.id", "c.nombre", "SUM(s.cantidad)").
		From("stock s").
		Join("producto p ON p.codigo = s.codigo_producto").
		Join("categoria_producto c ON c.id = p.id_categoria").
		GroupBy("c.id", "c.nombre").
		OrderBy("c.nombre")
	return r.totals(ctx, b, "stock por categoria")
}

// CategoryProducts unidades por producto de una categoría.
func (r *StockRepo) CategoryProducts(ctx context.Context, categoryID int) ([]entity.StockTotal, error) {
	b := psql.Select("p.codigo", "p.nombre_corto", "SUM(s.cantidad)").
		From("stock s").
		Join("producto p ON p.codigo = s.codigo_producto").
		Where(squirrel.Eq{"p.id_categoria": categoryID}).
		GroupBy("p.codigo", "p.nombre_corto").
		OrderBy("p.codigo")
	return r.totals(ctx, b, "stock de categoria por producto")
}

// SumExpiringBetween suma cantidades con fecha_cad en (from, to].
func (r *StockRepo) SumExpiringBetween(ctx context.Context, from, to time.Time) (int, error) {
	var n int
	err := r.q.QueryRow(ctx,
		`SELECT COALESCE(SUM(cantidad), 0) FROM stock WHERE fecha_cad > $1 AND fecha_cad <= $2`, from, to).Scan(&n)
	if err != nil {
		return 0, classify("sum stock por caducar", err)
	}
	return n, nil
}

// SumNotExpiringBefore suma cantidades sin fecha_cad o con fecha_cad > t.
func (r *StockRepo) SumNotExpiringBefore(ctx context.Context, t time.Time) (int, error) {
	var n int
	err := r.q.QueryRow(ctx,
		`SELECT COALESCE(SUM(cantidad), 0) FROM stock WHERE fecha_cad IS NULL OR fecha_cad > $1`, t).Scan(&n)
	if err != nil {
		return 0, classify("sum stock sin caducar", err)
	}
	return n, nil
}

// AvailableLots lotes con stock positivo, primero los que caducan antes.
func (r *StockRepo) AvailableLots(ctx context.Context, productCode, warehouseCode int) ([]entity.LotAvailability, error) {
	query := `
		SELECT lote, fecha_cad, cantidad
		FROM stock
		WHERE codigo_producto = $1 AND codigo_almacen = $2 AND cantidad > 0
		ORDER BY fecha_cad NULLS LAST, lote`
	rows, err := r.q.Query(ctx, query, productCode, warehouseCode)
	if err != nil {
		return nil, classify("lotes disponibles", err)
	}
	defer rows.Close()
	var out []entity.LotAvailability
	for rows.Next() {
		var l entity.LotAvailability
		if err := rows.Scan(&l.Lot, &l.ExpiryDate, &l.Quantity); err != nil {
			return nil, classify("scan lote", err)
		}
		out = append(out, l)
	}
	if err := rows.Err(); err != nil {
		return nil, classify("lotes disponibles", err)
	}
	return out, nil
}

// History líneas de movimiento como historial de stock, más recientes primero.
func (r *StockRepo) History(ctx context.Context, f repository.HistoryFilter) ([]entity.StockHistoryEntry, int, error) {
	where := squirrel.And{}
	if f.WarehouseCode != nil {
		where = append(where, squirrel.Eq{"l.codigo_almacen": *f.WarehouseCode})
	}
	if f.ProductCode != nil {
		where = append(where, squirrel.Eq{"l.codigo_producto": *f.ProductCode})
	}
	if f.UserID != nil {
		where = append(where, squirrel.Eq{"m.id_usuario": *f.UserID})
	}

	total, err := countRows(ctx, r.q, psql.Select("COUNT(*)").
		From("movimientos_lineas l").
		Join("movimientos m ON m.id_mov = l.id_mov").
		Where(where), "count historial")
	if err != nil {
		return nil, 0, err
	}

	b := psql.Select("m.id_mov", "m.fecha", "m.tipo", "l.codigo_almacen", "l.codigo_producto", "p.sku", "l.lote", "l.cantidad", "COALESCE(u.nombre, '')").
		From("movimientos_lineas l").
		Join("movimientos m ON m.id_mov = l.id_mov").
		Join("producto p ON p.codigo = l.codigo_producto").
		LeftJoin("usuario u ON u.id = m.id_usuario").
		Where(where).
		OrderBy("m.fecha DESC", "m.id_mov DESC", "l.id_linea")
	sql, args, err := paginate(b, f.Page).ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build historial: %w", err)
	}
	rows, err := r.q.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, classify("historial", err)
	}
	defer rows.Close()
	var out []entity.StockHistoryEntry
	for rows.Next() {
		var h entity.StockHistoryEntry
		if err := rows.Scan(&h.MovementID, &h.Date, &h.Type, &h.WarehouseCode, &h.ProductCode, &h.SKU, &h.Lot, &h.Quantity, &h.UserName); err != nil {
			return nil, 0, classify("scan historial", err)
		}
		out = append(out, h)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, classify("historial", err)
	}
	return out, total, nil
}

// Increase suma la cantidad al lote; lo crea si no existe.
func (r *StockRepo) Increase(ctx context.Context, line entity.MovementLine) error {
	query := `
		INSERT INTO stock (codigo_almacen, codigo_producto, lote, fecha_cad, cantidad)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (codigo_almacen, codigo_producto, lote)
		DO UPDATE SET cantidad = stock.cantidad + EXCLUDED.cantidad,
		              fecha_cad = COALESCE(EXCLUDED.fecha_cad, stock.fecha_cad)`
	_, err := r.q.Exec(ctx, query, line.WarehouseCode, line.ProductCode, line.Lot, line.ExpiryDate, line.Quantity)
	if err != nil {
		return classify("increase stock", err)
	}
	return nil
}

// Decrease resta la cantidad solo si el lote tiene suficiente.
func (r *StockRepo) Decrease(ctx context.Context, line entity.MovementLine) error {
	query := `
		UPDATE stock SET cantidad = cantidad - $4
		WHERE codigo_almacen = $1 AND codigo_producto = $2 AND lote = $3 AND cantidad >= $4`
	tag, err := r.q.Exec(ctx, query, line.WarehouseCode, line.ProductCode, line.Lot, line.Quantity)
	if err != nil {
		return classify("decrease stock", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrInsufficientStock
	}
	return nil
}

func (r *StockRepo) views(ctx context.Context, where squirrel.And, orderBy []string, p repository.Page, op string) ([]entity.StockView, int, error) {
	total, err := countRows(ctx, r.q, psql.Select("COUNT(*)").From("stock s").Where(where), "count "+op)
	if err != nil {
		return nil, 0, err
	}
	b := psql.Select("s.codigo_almacen", "s.codigo_producto", "s.lote", "s.fecha_cad", "s.cantidad", "a.descripcion", "p.nombre_corto", "p.sku").
		From("stock s").
		Join("almacen a ON a.codigo = s.codigo_almacen").
		Join("producto p ON p.codigo = s.codigo_producto").
		Where(where).
		OrderBy(orderBy...)
	sql, args, err := paginate(b, p).ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build %s: %w", op, err)
	}
	rows, err := r.q.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, classify(op, err)
	}
	defer rows.Close()
	var out []entity.StockView
	for rows.Next() {
		var v entity.StockView
		if err := rows.Scan(&v.WarehouseCode, &v.ProductCode, &v.Lot, &v.ExpiryDate, &v.Quantity, &v.WarehouseName, &v.ProductName, &v.SKU); err != nil {
			return nil, 0, classify("scan "+op, err)
		}
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, classify(op, err)
	}
	return out, total, nil
}

func (r *StockRepo) totals(ctx context.Context, b squirrel.SelectBuilder, op string) ([]entity.StockTotal, error) {
	sql, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build %s: %w", op, err)
	}
	rows, err := r.q.Query(ctx, sql, args...)
	if err != nil {
		return nil, classify(op, err)
	}
	defer rows.Close()
	var out []entity.StockTotal
	for rows.Next() {
		var t entity.StockTotal
		if err := rows.Scan(&t.Key, &t.Name, &t.Quantity); err != nil {
			return nil, classify("scan "+op, err)
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, classify(op, err)
	}
	return out, nil
}
