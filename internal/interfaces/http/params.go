package http

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/duquediazn/tabula-backend/internal/application/dto"
	"github.com/duquediazn/tabula-backend/internal/domain"
)

// pageQuery lee limit/offset (por defecto 10/0). El rango lo valida el caso de uso.
func pageQuery(c *fiber.Ctx) (dto.PageRequest, error) {
	limit, err := intQuery(c, "limit", dto.DefaultLimit)
	if err != nil {
		return dto.PageRequest{}, err
	}
	offset, err := intQuery(c, "offset", 0)
	if err != nil {
		return dto.PageRequest{}, err
	}
	return dto.PageRequest{Limit: limit, Offset: offset}, nil
}

func intQuery(c *fiber.Ctx, name string, def int) (int, error) {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: el parámetro %s debe ser un entero", domain.ErrInvalidInput, name)
	}
	return n, nil
}

func optIntQuery(c *fiber.Ctx, name string) (*int, error) {
	if strings.TrimSpace(c.Query(name)) == "" {
		return nil, nil
	}
	n, err := intQuery(c, name, 0)
	if err != nil {
		return nil, err
	}
	return &n, nil
}

func optBoolQuery(c *fiber.Ctx, name string) (*bool, error) {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return nil, nil
	}
	b, err := strconv.ParseBool(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: el parámetro %s debe ser true o false", domain.ErrInvalidInput, name)
	}
	return &b, nil
}

// optDateQuery fecha YYYY-MM-DD; endOfDay lleva la hora al último instante del día.
func optDateQuery(c *fiber.Ctx, name string, endOfDay bool) (*time.Time, error) {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return nil, nil
	}
	t, err := time.Parse(time.DateOnly, raw)
	if err != nil {
		return nil, fmt.Errorf("%w: el parámetro %s debe tener formato YYYY-MM-DD", domain.ErrInvalidInput, name)
	}
	if endOfDay {
		t = t.Add(24*time.Hour - time.Nanosecond)
	}
	return &t, nil
}

// intParam parámetro de ruta entero positivo.
func intParam(c *fiber.Ctx, name string) (int, error) {
	n, err := strconv.Atoi(c.Params(name))
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("%w: %s debe ser un entero positivo", domain.ErrInvalidInput, name)
	}
	return n, nil
}
