package dto

// CategoryRequest entrada para crear o renombrar una categoría.
type CategoryRequest struct {
	Nombre string `json:"nombre"`
}

// CategoryResponse salida de una categoría.
type CategoryResponse struct {
	ID     int    `json:"id"`
	Nombre string `json:"nombre"`
}
