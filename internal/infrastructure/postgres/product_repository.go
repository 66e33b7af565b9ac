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

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

// Create persiste un nuevo producto y rellena su código.
func (r *ProductRepo) Create(ctx context.Context, p *entity.Product) error {
	query := `
		INSERT INTO producto (sku, nombre_corto, descripcion, id_categoria, activo)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING codigo`
	err := r.q.QueryRow(ctx, query, p.SKU, p.ShortName, p.Description, p.CategoryID, p.Active).Scan(&p.Code)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: ya existe un producto con SKU %s", domain.ErrInvalidInput, p.SKU)
		}
		return classify("insert producto", err)
	}
	return nil
}

// GetByCode obtiene un producto por código; nil si no existe.
func (r *ProductRepo) GetByCode(ctx context.Context, code int) (*entity.Product, error) {
	return r.getOne(ctx, squirrel.Eq{"p.codigo": code}, "get producto")
}

// GetBySKU obtiene un producto por SKU; nil si no existe.
func (r *ProductRepo) GetBySKU(ctx context.Context, sku string) (*entity.Product, error) {
	return r.getOne(ctx, squirrel.Eq{"p.sku": sku}, "get producto por sku")
}

// Update persiste los campos editables del producto.
func (r *ProductRepo) Update(ctx context.Context, p *entity.Product) error {
	query := `
		UPDATE producto
		SET sku = $2, nombre_corto = $3, descripcion = $4, id_categoria = $5, activo = $6
		WHERE codigo = $1`
	tag, err := r.q.Exec(ctx, query, p.Code, p.SKU, p.ShortName, p.Description, p.CategoryID, p.Active)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: ya existe un producto con SKU %s", domain.ErrInvalidInput, p.SKU)
		}
		return classify("update producto", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: producto %d", domain.ErrNotFound, p.Code)
	}
	return nil
}

// List productos filtrados por nombre/SKU, categoría y estado.
func (r *ProductRepo) List(ctx context.Context, f repository.ProductFilter) ([]*entity.Product, int, error) {
	where := squirrel.And{}
	if f.Search != "" {
		where = append(where, squirrel.Or{
			squirrel.ILike{"p.nombre_corto": likePattern(f.Search)},
			squirrel.ILike{"p.sku": likePattern(f.Search)},
		})
	}
	if f.CategoryID != nil {
		where = append(where, squirrel.Eq{"p.id_categoria": *f.CategoryID})
	}
	if f.Active != nil {
		where = append(where, squirrel.Eq{"p.activo": *f.Active})
	}

	total, err := countRows(ctx, r.q, psql.Select("COUNT(*)").From("producto p").Where(where), "count productos")
	if err != nil {
		return nil, 0, err
	}

	sql, args, err := paginate(r.base().Where(where).OrderBy("p.codigo"), f.Page).ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build list productos: %w", err)
	}
	rows, err := r.q.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, classify("list productos", err)
	}
	defer rows.Close()
	var list []*entity.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, 0, classify("scan producto", err)
		}
		list = append(list, p)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, classify("list productos", err)
	}
	return list, total, nil
}

// Delete borra un producto por código.
func (r *ProductRepo) Delete(ctx context.Context, code int) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM producto WHERE codigo = $1`, code)
	if err != nil {
		return classify("delete producto", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: producto %d", domain.ErrNotFound, code)
	}
	return nil
}

// ActiveCodes de los códigos pedidos, los que existen y están activos.
func (r *ProductRepo) ActiveCodes(ctx context.Context, codes []int) ([]int, error) {
	return activeCodes(ctx, r.q, `SELECT codigo FROM producto WHERE codigo = ANY($1) AND activo`, codes, "productos activos")
}

// HasStock indica si el producto tiene cantidad > 0 en algún lote.
func (r *ProductRepo) HasStock(ctx context.Context, code int) (bool, error) {
	return exists(ctx, r.q, "stock de producto", `SELECT 1 FROM stock WHERE codigo_producto = $1 AND cantidad > 0`, code)
}

// HasMovements indica si alguna línea de movimiento referencia el producto.
func (r *ProductRepo) HasMovements(ctx context.Context, code int) (bool, error) {
	return exists(ctx, r.q, "movimientos de producto", `SELECT 1 FROM movimientos_lineas WHERE codigo_producto = $1`, code)
}

func (r *ProductRepo) base() squirrel.SelectBuilder {
	return psql.Select("p.codigo", "p.sku", "p.nombre_corto", "p.descripcion", "p.id_categoria", "p.activo", "COALESCE(c.nombre, '')").
		From("producto p").
		LeftJoin("categoria_producto c ON c.id = p.id_categoria")
}

func (r *ProductRepo) getOne(ctx context.Context, cond squirrel.Sqlizer, op string) (*entity.Product, error) {
	sql, args, err := r.base().Where(cond).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build %s: %w", op, err)
	}
	p, err := scanProduct(r.q.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, classify(op, err)
	}
	return p, nil
}

func scanProduct(row pgx.Row) (*entity.Product, error) {
	var p entity.Product
	if err := row.Scan(&p.Code, &p.SKU, &p.ShortName, &p.Description, &p.CategoryID, &p.Active, &p.CategoryName); err != nil {
		return nil, err
	}
	return &p, nil
}

// activeCodes consulta de códigos activos compartida por producto y almacén.
func activeCodes(ctx context.Context, q Querier, query string, codes []int, op string) ([]int, error) {
	if len(codes) == 0 {
		return nil, nil
	}
	rows, err := q.Query(ctx, query, codes)
	if err != nil {
		return nil, classify(op, err)
	}
	defer rows.Close()
	var out []int
	for rows.Next() {
		var c int
		if err := rows.Scan(&c); err != nil {
			return nil, classify(op, err)
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, classify(op, err)
	}
	return out, nil
}
