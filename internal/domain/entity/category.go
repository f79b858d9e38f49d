package entity

import "time"

// Category agrupa baldosas (una categoría tiene muchas baldosas).
type Category struct {
	ID        string
	Name      string
	CreatedAt time.Time
}
