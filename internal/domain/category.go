package domain

import "time"

// Category representa una fila de la tabla categories.
type Category struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// CategoryPatch agrupa los campos opcionales de una actualización parcial.
type CategoryPatch struct {
	Name        *string
	Description *string
	IsActive    *bool
}

// Empty indica si la actualización no trae ningún campo.
func (p CategoryPatch) Empty() bool {
	return p.Name == nil && p.Description == nil && p.IsActive == nil
}
