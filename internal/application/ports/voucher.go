package ports

import (
	"context"

	"github.com/duquediazn/tabula-backend/internal/domain/entity"
)

// VoucherGenerator genera el comprobante PDF de un movimiento.
type VoucherGenerator interface {
	GenerateMovementPDF(ctx context.Context, mov *entity.Movement, lines []entity.MovementLineDetail) ([]byte, error)
}
