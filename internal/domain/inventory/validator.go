package inventory

import (
	"fmt"
	"maps"
	"math"
	"slices"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/duquediazn/tabula-backend/internal/domain"
	"github.com/duquediazn/tabula-backend/internal/domain/access"
	"github.com/duquediazn/tabula-backend/internal/domain/entity"
)

// Límites de un movimiento.
const (
	MaxMovementLines = 100
	MaxLotLength     = 50
)

// LineInput línea tal como llega en la petición (lote opcional, fecha de caducidad opcional).
type LineInput struct {
	WarehouseCode int
	ProductCode   int
	Lot           string
	ExpiryDate    *time.Time
	Quantity      int
}

// MovementInput movimiento propuesto, antes de tocar la base de datos.
type MovementInput struct {
	Type   string
	UserID int
	Lines  []LineInput
}

// ValidateMovement aplica las comprobaciones estáticas en orden; gana el primer fallo.
//  1. autorización (no admin solo para sí mismo)
//  2. tipo entrada|salida
//  3. al menos una línea
//  4. caducidad: en entradas, fecha_cad debe ser posterior a hoy
//  5. máximo 100 líneas
//  6. forma de cada línea (cantidad >= 1, lote <= 50, códigos > 0)
//
// Función pura: today se inyecta y solo se usa su fecha.
func ValidateMovement(in MovementInput, p access.Principal, today time.Time) error {
	if err := access.Authorize(p, in.UserID, "no puedes registrar un movimiento para otro usuario"); err != nil {
		return err
	}
	if !entity.ValidMovementType(in.Type) {
		return fmt.Errorf("%w: tipo de movimiento %q no válido (entrada|salida)", domain.ErrInvalidInput, in.Type)
	}
	if len(in.Lines) == 0 {
		return fmt.Errorf("%w: el movimiento debe tener al menos una línea", domain.ErrInvalidInput)
	}
	if in.Type == entity.MovementTypeEntrada {
		day := dateOnly(today)
		for _, l := range in.Lines {
			if l.ExpiryDate == nil {
				continue
			}
			if !dateOnly(*l.ExpiryDate).After(day) {
				return fmt.Errorf("%w: la línea con producto %d, lote '%s', tiene una fecha de caducidad vencida o del día actual: %s",
					domain.ErrInvalidInput, l.ProductCode, NormalizeLot(l.Lot), l.ExpiryDate.Format(time.DateOnly))
			}
		}
	}
	if len(in.Lines) > MaxMovementLines {
		return fmt.Errorf("%w: no se pueden registrar más de %d líneas por movimiento", domain.ErrInvalidInput, MaxMovementLines)
	}
	for i, l := range in.Lines {
		n := i + 1
		if l.Quantity < 1 {
			return fmt.Errorf("%w: línea %d: la cantidad debe ser mayor o igual a 1", domain.ErrInvalidInput, n)
		}
		if l.Quantity > math.MaxInt32 {
			return fmt.Errorf("%w: línea %d: la cantidad no puede superar %d", domain.ErrInvalidInput, n, math.MaxInt32)
		}
		if l.WarehouseCode <= 0 || l.ProductCode <= 0 {
			return fmt.Errorf("%w: línea %d: codigo_almacen y codigo_producto son obligatorios", domain.ErrInvalidInput, n)
		}
		if utf8.RuneCountInString(l.Lot) > MaxLotLength {
			return fmt.Errorf("%w: línea %d: el lote no puede superar %d caracteres", domain.ErrInvalidInput, n, MaxLotLength)
		}
	}
	return nil
}

// NormalizeLot devuelve SIN_LOTE cuando el lote viene vacío.
func NormalizeLot(lot string) string {
	lot = strings.TrimSpace(lot)
	if lot == "" {
		return entity.LotNone
	}
	return lot
}

// BuildLines numera las líneas 1..N en el orden recibido y aplica el lote por defecto.
func BuildLines(movementID int, in []LineInput) []entity.MovementLine {
	lines := make([]entity.MovementLine, 0, len(in))
	for i, l := range in {
		lines = append(lines, entity.MovementLine{
			MovementID:    movementID,
			LineID:        i + 1,
			WarehouseCode: l.WarehouseCode,
			ProductCode:   l.ProductCode,
			Lot:           NormalizeLot(l.Lot),
			ExpiryDate:    l.ExpiryDate,
			Quantity:      l.Quantity,
		})
	}
	return lines
}

// DistinctCodes códigos de almacén y producto sin repetir, ordenados ascendentemente.
func DistinctCodes(in []LineInput) (warehouses, products []int) {
	ws := make(map[int]struct{})
	ps := make(map[int]struct{})
	for _, l := range in {
		ws[l.WarehouseCode] = struct{}{}
		ps[l.ProductCode] = struct{}{}
	}
	return slices.Sorted(maps.Keys(ws)), slices.Sorted(maps.Keys(ps))
}

// Missing devuelve los códigos pedidos que no están en found, en orden.
func Missing(requested, found []int) []int {
	seen := make(map[int]struct{}, len(found))
	for _, c := range found {
		seen[c] = struct{}{}
	}
	var out []int
	for _, c := range requested {
		if _, ok := seen[c]; !ok {
			out = append(out, c)
		}
	}
	return out
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
