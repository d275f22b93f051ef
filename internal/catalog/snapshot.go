// Package catalog provides the read-only product and promotion
// accessor consumed by the pricing engine, loaded from PostgreSQL and
// cached as immutable snapshots.
package catalog

import (
	"time"

	"restaurant-pricing/internal/models"
)

// Snapshot is an immutable view of the catalog for the duration of
// one price computation. It satisfies the engine's Catalog interface.
type Snapshot struct {
	products   map[int]*models.Product
	options    map[int]*models.Option
	categories map[int]*models.Category
	promotions []*models.Promotion

	LoadedAt time.Time
}

// NewSnapshot indexes the given catalog data
func NewSnapshot(categories []*models.Category, products []*models.Product, options []*models.Option, promotions []*models.Promotion, loadedAt time.Time) *Snapshot {
	s := &Snapshot{
		products:   make(map[int]*models.Product, len(products)),
		options:    make(map[int]*models.Option, len(options)),
		categories: make(map[int]*models.Category, len(categories)),
		promotions: promotions,
		LoadedAt:   loadedAt,
	}
	for _, category := range categories {
		s.categories[category.ID] = category
	}
	for _, product := range products {
		s.products[product.ID] = product
	}
	for _, option := range options {
		s.options[option.ID] = option
	}
	return s
}

// Product returns the product with the given id
func (s *Snapshot) Product(id int) (*models.Product, bool) {
	product, ok := s.products[id]
	return product, ok
}

// Option returns the option with the given id
func (s *Snapshot) Option(id int) (*models.Option, bool) {
	option, ok := s.options[id]
	return option, ok
}

// Category returns the category with the given id
func (s *Snapshot) Category(id int) (*models.Category, bool) {
	category, ok := s.categories[id]
	return category, ok
}

// Promotions returns every promotion in the snapshot
func (s *Snapshot) Promotions() []*models.Promotion {
	return s.promotions
}
