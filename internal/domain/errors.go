package domain

import "errors"

// Errores de dominio (sin dependencias externas).
// El detalle concreto se adjunta envolviendo: fmt.Errorf("%w: ...", domain.ErrX).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrInactiveUser       = errors.New("usuario inactivo")
	ErrIntegrityConflict  = errors.New("error de integridad")
	ErrStorageUnavailable = errors.New("error de conexión con la base de datos")
	ErrInsufficientStock  = errors.New("stock insuficiente")
)
