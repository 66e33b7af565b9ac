// Package access concentra la única decisión de autorización del sistema:
// un admin actúa sobre cualquier usuario; el resto solo sobre sí mismo.
package access

import (
	"fmt"

	"github.com/duquediazn/tabula-backend/internal/domain"
	"github.com/duquediazn/tabula-backend/internal/domain/entity"
)

// Principal identidad autenticada que hace la petición.
type Principal struct {
	UserID int
	Role   string
}

// IsAdmin indica si el principal tiene rol admin.
func (p Principal) IsAdmin() bool {
	return p.Role == entity.RoleAdmin
}

// CanActFor indica si el principal puede operar en nombre de ownerID.
func (p Principal) CanActFor(ownerID int) bool {
	return p.IsAdmin() || p.UserID == ownerID
}

// Authorize devuelve ErrForbidden envuelto si el principal no puede operar sobre ownerID.
func Authorize(p Principal, ownerID int, reason string) error {
	if p.CanActFor(ownerID) {
		return nil
	}
	return fmt.Errorf("%w: %s", domain.ErrForbidden, reason)
}

// OwnerScope restricción de lectura: nil para admin (sin filtro), el propio id para el resto.
func (p Principal) OwnerScope() *int {
	if p.IsAdmin() {
		return nil
	}
	id := p.UserID
	return &id
}

// RequireAdmin devuelve ErrForbidden si el principal no es admin.
func RequireAdmin(p Principal) error {
	if p.IsAdmin() {
		return nil
	}
	return fmt.Errorf("%w: se requiere rol admin", domain.ErrForbidden)
}
