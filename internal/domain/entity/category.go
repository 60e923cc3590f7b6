package entity

import "time"

// Category representa una categoría del catálogo (Posters, UI Kits, Banners, ...).
// Icon es el nombre del ícono que la vista resuelve; el backend solo lo almacena.
type Category struct {
	ID        string
	Name      string
	Icon      string
	CreatedAt time.Time
}
