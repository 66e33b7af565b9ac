package dto

import (
	"fmt"
	"strings"
	"time"
)

// Límites de paginación comunes a los listados.
const (
	DefaultLimit = 10
	MaxLimit     = 1000
)

// PageRequest paginación para listados.
type PageRequest struct {
	Limit  int `query:"limit"`
	Offset int `query:"offset"`
}

// Validate comprueba 1 <= limit <= 1000 y offset >= 0.
func (p PageRequest) Validate() error {
	if p.Limit < 1 || p.Limit > MaxLimit {
		return fmt.Errorf("limit debe estar entre 1 y %d", MaxLimit)
	}
	if p.Offset < 0 {
		return fmt.Errorf("offset no puede ser negativo")
	}
	return nil
}

// Paginated respuesta paginada {data, total, limit, offset}.
type Paginated[T any] struct {
	Data   []T `json:"data"`
	Total  int `json:"total"`
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
}

// NewPaginated garantiza data como [] y no null cuando no hay resultados.
func NewPaginated[T any](data []T, total int, p PageRequest) Paginated[T] {
	if data == nil {
		data = []T{}
	}
	return Paginated[T]{Data: data, Total: total, Limit: p.Limit, Offset: p.Offset}
}

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// MessageResponse respuesta simple con un mensaje.
type MessageResponse struct {
	Message string `json:"message"`
}

// Date fecha sin hora en formato YYYY-MM-DD.
type Date struct {
	time.Time
}

// NewDate construye un Date truncado al día (UTC).
func NewDate(t time.Time) Date {
	return Date{time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)}
}

// DatePtr convierte *time.Time en *Date.
func DatePtr(t *time.Time) *Date {
	if t == nil {
		return nil
	}
	d := NewDate(*t)
	return &d
}

// TimePtr convierte *Date en *time.Time. Una fecha vacía ("") equivale a ausente.
func (d *Date) TimePtr() *time.Time {
	if d == nil || d.IsZero() {
		return nil
	}
	t := d.Time
	return &t
}

func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.Format(time.DateOnly) + `"`), nil
}

// UnmarshalJSON "" y null dejan la fecha a cero; TimePtr la trata como ausente.
func (d *Date) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "" || s == "null" {
		d.Time = time.Time{}
		return nil
	}
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return fmt.Errorf("fecha inválida %q: formato esperado YYYY-MM-DD", s)
	}
	d.Time = t
	return nil
}
