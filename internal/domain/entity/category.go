package entity

// Category representa una categoría de productos (nombre normalizado y único).
type Category struct {
	ID   int
	Name string
}
