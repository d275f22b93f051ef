package pricing

import "restaurant-pricing/internal/models"

// Catalog is the read-only product and promotion accessor the engine
// consumes. Implementations must be immutable for the duration of one
// computation.
type Catalog interface {
	// Product returns the product with the given id
	Product(id int) (*models.Product, bool)
	// Option returns the option with the given id
	Option(id int) (*models.Option, bool)
	// Category returns the category with the given id
	Category(id int) (*models.Category, bool)
	// Promotions returns every promotion in the catalog
	Promotions() []*models.Promotion
}
