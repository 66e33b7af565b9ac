package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/duquediazn/tabula-backend/internal/application/dto"
)

// Semaphore unidades en stock por tramo de caducidad:
//   - caduca_ya:           fecha_cad en (hoy, hoy+1 mes]
//   - caduca_proximamente: fecha_cad en (hoy+1 mes, hoy+6 meses]
//   - no_caduca:           sin fecha_cad o posterior a hoy+6 meses
//
// Tres consultas en paralelo; el resultado se cachea por día.
func (uc *StockUseCase) Semaphore(ctx context.Context) (*dto.StockSemaphoreResponse, error) {
	day := today(uc.now())
	key := fmt.Sprintf(cacheKeySemaphore, day.Format(time.DateOnly))

	var cached dto.StockSemaphoreResponse
	if uc.cached(ctx, key, &cached) {
		return &cached, nil
	}

	oneMonth := AddMonths(day, 1)
	sixMonths := AddMonths(day, 6)

	type sumResult struct {
		total int
		err   error
	}
	soonCh := make(chan sumResult, 1)
	nextCh := make(chan sumResult, 1)
	restCh := make(chan sumResult, 1)

	go func() {
		n, err := uc.stockRepo.SumExpiringBetween(ctx, day, oneMonth)
		soonCh <- sumResult{n, err}
	}()
	go func() {
		n, err := uc.stockRepo.SumExpiringBetween(ctx, oneMonth, sixMonths)
		nextCh <- sumResult{n, err}
	}()
	go func() {
		n, err := uc.stockRepo.SumNotExpiringBefore(ctx, sixMonths)
		restCh <- sumResult{n, err}
	}()

	soon := <-soonCh
	next := <-nextCh
	rest := <-restCh

	if soon.err != nil {
		return nil, fmt.Errorf("semáforo: caduca ya: %w", soon.err)
	}
	if next.err != nil {
		return nil, fmt.Errorf("semáforo: caduca próximamente: %w", next.err)
	}
	if rest.err != nil {
		return nil, fmt.Errorf("semáforo: no caduca: %w", rest.err)
	}

	out := &dto.StockSemaphoreResponse{
		CaducaYa:           soon.total,
		CaducaProximamente: next.total,
		NoCaduca:           rest.total,
	}
	uc.store(ctx, key, out)
	return out, nil
}

// AddMonths suma meses de calendario ajustando al último día del mes destino
// (31 de enero + 1 mes = 28/29 de febrero).
func AddMonths(t time.Time, months int) time.Time {
	y, m, d := t.Date()
	first := time.Date(y, m+time.Month(months), 1, 0, 0, 0, 0, t.Location())
	last := first.AddDate(0, 1, -1).Day()
	if d > last {
		d = last
	}
	return time.Date(first.Year(), first.Month(), d, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
}

func today(now time.Time) time.Time {
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}
