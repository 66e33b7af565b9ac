package repository

import (
	"context"
	"time"

	"github.com/duquediazn/tabula-backend/internal/domain/entity"
)

// MovementRepository puerto del diario de movimientos. Solo inserción y lectura.
type MovementRepository interface {
	// Create inserta la cabecera y rellena ID y Date con los valores generados.
	Create(ctx context.Context, m *entity.Movement) error
	AddLines(ctx context.Context, lines []entity.MovementLine) error
	GetByID(ctx context.Context, id int) (*entity.Movement, error)
	List(ctx context.Context, f MovementFilter) ([]*entity.Movement, int, error)
	// ListBetween cabeceras con fecha en [from, to], más recientes primero.
	ListBetween(ctx context.Context, from, to time.Time, userID *int) ([]*entity.Movement, error)
	// LinesByMovementIDs carga las líneas de varios movimientos en una sola consulta.
	LinesByMovementIDs(ctx context.Context, ids []int) (map[int][]entity.MovementLine, error)
	ListLinesDetailed(ctx context.Context, movementID int, p Page) ([]entity.MovementLineDetail, int, error)
	CountByType(ctx context.Context, userID *int) (map[string]int, error)
}
