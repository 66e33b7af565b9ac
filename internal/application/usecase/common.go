package usecase

import (
	"context"
	"fmt"

	"github.com/duquediazn/tabula-backend/internal/application/dto"
	"github.com/duquediazn/tabula-backend/internal/application/ports"
	"github.com/duquediazn/tabula-backend/internal/domain"
	"github.com/duquediazn/tabula-backend/internal/domain/repository"
	"github.com/duquediazn/tabula-backend/pkg/logger"
)

func validatePage(p dto.PageRequest) error {
	if err := p.Validate(); err != nil {
		return fmt.Errorf("%w: %s", domain.ErrInvalidInput, err.Error())
	}
	return nil
}

func toPage(p dto.PageRequest) repository.Page {
	return repository.Page{Limit: p.Limit, Offset: p.Offset}
}

// invalidateReports los informes cacheados muestran nombres de almacén y categoría.
func invalidateReports(ctx context.Context, cache ports.ReportCache, log *logger.Logger) {
	if cache == nil {
		return
	}
	if err := cache.InvalidateReports(ctx); err != nil {
		log.Warn().Err(err).Msg("no se pudo invalidar la caché de informes")
	}
}
