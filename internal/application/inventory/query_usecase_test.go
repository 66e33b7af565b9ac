package inventory_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/duquediazn/tabula-backend/internal/application/dto"
	appinventory "github.com/duquediazn/tabula-backend/internal/application/inventory"
	"github.com/duquediazn/tabula-backend/internal/domain"
	"github.com/duquediazn/tabula-backend/internal/domain/entity"
	"github.com/duquediazn/tabula-backend/internal/domain/repository"
	"github.com/duquediazn/tabula-backend/internal/mocks"
)

func TestList_NoAdmin_RestringidoASusMovimientos(t *testing.T) {
	repo := &mocks.MovementRepo{}
	uc := appinventory.NewMovementQueryUseCase(repo)
	otro := 99

	repo.On("List", mock.Anything, mock.MatchedBy(func(f repository.MovementFilter) bool {
		return f.UserID != nil && *f.UserID == 7 && f.Limit == 10
	})).Return([]*entity.Movement{{ID: 3, Type: entity.MovementTypeEntrada, UserID: 7, UserName: "Ana"}}, 1, nil)
	repo.On("LinesByMovementIDs", mock.Anything, []int{3}).Return(map[int][]entity.MovementLine{
		3: {{MovementID: 3, LineID: 1, WarehouseCode: 1, ProductCode: 100, Lot: entity.LotNone, Quantity: 2}},
	}, nil)

	out, err := uc.List(context.Background(), userP, dto.MovementListQuery{
		UsuarioID:   &otro,
		PageRequest: dto.PageRequest{Limit: 10},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, out.Total)
	require.Len(t, out.Data, 1)
	assert.Equal(t, "Ana", out.Data[0].NombreUsuario)
	assert.Len(t, out.Data[0].Lineas, 1)
	repo.AssertExpectations(t)
}

func TestList_Admin_FiltraPorUsuario(t *testing.T) {
	repo := &mocks.MovementRepo{}
	uc := appinventory.NewMovementQueryUseCase(repo)
	target := 7

	repo.On("List", mock.Anything, mock.MatchedBy(func(f repository.MovementFilter) bool {
		return f.UserID != nil && *f.UserID == 7
	})).Return([]*entity.Movement{}, 0, nil)
	repo.On("LinesByMovementIDs", mock.Anything, []int{}).Return(map[int][]entity.MovementLine{}, nil)

	out, err := uc.List(context.Background(), adminP, dto.MovementListQuery{
		UsuarioID:   &target,
		PageRequest: dto.PageRequest{Limit: 10},
	})
	require.NoError(t, err)
	assert.NotNil(t, out.Data, "data debe serializarse como [] y no null")
}

func TestList_LimitFueraDeRango_InvalidInput(t *testing.T) {
	uc := appinventory.NewMovementQueryUseCase(&mocks.MovementRepo{})

	_, err := uc.List(context.Background(), adminP, dto.MovementListQuery{PageRequest: dto.PageRequest{Limit: 1001}})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestGet_NoExiste_NotFoundAntesQueForbidden(t *testing.T) {
	repo := &mocks.MovementRepo{}
	uc := appinventory.NewMovementQueryUseCase(repo)
	repo.On("GetByID", mock.Anything, 404).Return(nil, nil)

	_, err := uc.Get(context.Background(), userP, 404)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestGet_DeOtroUsuario_Forbidden(t *testing.T) {
	repo := &mocks.MovementRepo{}
	uc := appinventory.NewMovementQueryUseCase(repo)
	repo.On("GetByID", mock.Anything, 5).Return(&entity.Movement{ID: 5, UserID: 8}, nil)

	_, err := uc.Get(context.Background(), userP, 5)
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestSummaryByType_SiempreDosTipos(t *testing.T) {
	repo := &mocks.MovementRepo{}
	uc := appinventory.NewMovementQueryUseCase(repo)
	repo.On("CountByType", mock.Anything, (*int)(nil)).Return(map[string]int{entity.MovementTypeEntrada: 4}, nil)

	out, err := uc.SummaryByType(context.Background(), adminP)
	require.NoError(t, err)
	assert.Equal(t, []dto.MovementSummaryResponse{
		{Tipo: "Entrada", Cantidad: 4},
		{Tipo: "Salida", Cantidad: 0},
	}, out)
}

func TestLines_DetalleConNombres(t *testing.T) {
	repo := &mocks.MovementRepo{}
	uc := appinventory.NewMovementQueryUseCase(repo)
	repo.On("GetByID", mock.Anything, 5).Return(&entity.Movement{ID: 5, UserID: 7}, nil)
	repo.On("ListLinesDetailed", mock.Anything, 5, repository.Page{Limit: 10}).Return([]entity.MovementLineDetail{{
		MovementLine:  entity.MovementLine{MovementID: 5, LineID: 1, WarehouseCode: 1, ProductCode: 100, Lot: "L1", Quantity: 2},
		ProductName:   "Tornillo",
		WarehouseName: "Central",
	}}, 1, nil)

	out, err := uc.Lines(context.Background(), userP, 5, dto.PageRequest{Limit: 10})
	require.NoError(t, err)
	require.Len(t, out.Data, 1)
	assert.Equal(t, "Tornillo", out.Data[0].NombreProducto)
	assert.Equal(t, "Central", out.Data[0].NombreAlmacen)
}
