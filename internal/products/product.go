package products

import "fmt"

// Product is one catalog entry.
type Product struct {
	ID          int64   `json:"id" validate:"gte=1"`
	Name        string  `json:"name" validate:"required"`
	Category    string  `json:"category" validate:"required"`
	Description string  `json:"description"`
	Price       float64 `json:"price" validate:"gte=0"`
}

func (p Product) String() string {
	return fmt.Sprintf("#%d %s [%s] %.2f", p.ID, p.Name, p.Category, p.Price)
}
