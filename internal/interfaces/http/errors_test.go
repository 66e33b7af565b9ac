package http

import (
	"errors"
	"fmt"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"

	"github.com/duquediazn/tabula-backend/internal/domain"
)

func TestErrorStatus(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{fmt.Errorf("%w: no es tuyo", domain.ErrForbidden), fiber.StatusForbidden},
		{domain.ErrInactiveUser, fiber.StatusForbidden},
		{fmt.Errorf("%w: sin líneas", domain.ErrInvalidInput), fiber.StatusBadRequest},
		{fmt.Errorf("%w: fk", domain.ErrIntegrityConflict), fiber.StatusBadRequest},
		{domain.ErrEmailAlreadyExists, fiber.StatusBadRequest},
		{fmt.Errorf("%w: movimiento 3", domain.ErrNotFound), fiber.StatusNotFound},
		{domain.ErrUserNotFound, fiber.StatusNotFound},
		{domain.ErrUnauthorized, fiber.StatusUnauthorized},
		{fmt.Errorf("%w: begin", domain.ErrStorageUnavailable), fiber.StatusInternalServerError},
		{errors.New("otro"), fiber.StatusInternalServerError},
	}
	for _, tc := range cases {
		got, _ := errorStatus(tc.err)
		assert.Equal(t, tc.want, got, "error %q", tc.err)
	}
}
