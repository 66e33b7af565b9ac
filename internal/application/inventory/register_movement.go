package inventory

import (
	"github.com/duquediazn/tabula-backend/internal/application/dto"
	"github.com/duquediazn/tabula-backend/internal/domain/entity"
	invdomain "github.com/duquediazn/tabula-backend/internal/domain/inventory"
)

// toMovementInput adapta el request HTTP a la entrada del validador.
func toMovementInput(in dto.CreateMovementRequest) invdomain.MovementInput {
	lines := make([]invdomain.LineInput, 0, len(in.Lineas))
	for _, l := range in.Lineas {
		lines = append(lines, invdomain.LineInput{
			WarehouseCode: l.CodigoAlmacen,
			ProductCode:   l.CodigoProducto,
			Lot:           l.Lote,
			ExpiryDate:    l.FechaCad.TimePtr(),
			Quantity:      l.Cantidad,
		})
	}
	return invdomain.MovementInput{Type: in.Tipo, UserID: in.IDUsuario, Lines: lines}
}

func toMovementResponse(m *entity.Movement) *dto.MovementResponse {
	return &dto.MovementResponse{
		IDMov:         m.ID,
		Fecha:         m.Date,
		Tipo:          m.Type,
		IDUsuario:     m.UserID,
		NombreUsuario: m.UserName,
		Lineas:        toLineResponses(m.Lines),
	}
}

func toLineResponses(lines []entity.MovementLine) []dto.MovementLineResponse {
	out := make([]dto.MovementLineResponse, 0, len(lines))
	for _, l := range lines {
		out = append(out, toLineResponse(l))
	}
	return out
}

func toLineResponse(l entity.MovementLine) dto.MovementLineResponse {
	return dto.MovementLineResponse{
		IDMov:          l.MovementID,
		IDLinea:        l.LineID,
		CodigoAlmacen:  l.WarehouseCode,
		CodigoProducto: l.ProductCode,
		Lote:           l.Lot,
		FechaCad:       dto.DatePtr(l.ExpiryDate),
		Cantidad:       l.Quantity,
	}
}
