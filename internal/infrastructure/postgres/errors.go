package postgres

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/duquediazn/tabula-backend/internal/domain"
)

// classify traduce un error de PostgreSQL a un error de dominio.
// Clase 23 (violación de integridad) -> ErrIntegrityConflict; clase 22 (dato fuera de rango,
// formato inválido) -> ErrInvalidInput; cualquier otro -> ErrStorageUnavailable.
func classify(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, domain.ErrIntegrityConflict) || errors.Is(err, domain.ErrStorageUnavailable) ||
		errors.Is(err, domain.ErrInvalidInput) {
		return err
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch {
		case strings.HasPrefix(pgErr.Code, "23"):
			return fmt.Errorf("%w: %s: %s", domain.ErrIntegrityConflict, op, constraintDetail(pgErr))
		case strings.HasPrefix(pgErr.Code, "22"):
			return fmt.Errorf("%w: %s: %s", domain.ErrInvalidInput, op, pgErr.Message)
		}
	}
	return fmt.Errorf("%w: %s: %w", domain.ErrStorageUnavailable, op, err)
}

func constraintDetail(pgErr *pgconn.PgError) string {
	if pgErr.ConstraintName != "" {
		return pgErr.Message + " (" + pgErr.ConstraintName + ")"
	}
	return pgErr.Message
}

// isUniqueViolation verifica si un error es una violación de constraint único (23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505" // unique_violation
	}
	return false
}
