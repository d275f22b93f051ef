package models

// Category groups products for promotion matching
type Category struct {
	ID   int    `json:"id" db:"id"`
	Name string `json:"name" db:"name"`
}

// DailySpecial is a per-weekday reduced price baked into a product or
// variant. It is a price substitution, not a Promotion entity.
type DailySpecial struct {
	Weekdays WeekdaySet  `json:"weekdays"`
	Prices   PriceMatrix `json:"prices"`
}

// EligibleOn reports whether the special applies on the ISO weekday
func (d *DailySpecial) EligibleOn(isoWeekday int) bool {
	if d == nil {
		return false
	}
	return d.Weekdays.Contains(isoWeekday)
}

// Product is a sellable unit belonging to exactly one category
type Product struct {
	ID         int           `json:"id" db:"id"`
	CategoryID int           `json:"category_id" db:"category_id"`
	Name       string        `json:"name" db:"name"`
	Prices     PriceMatrix   `json:"prices"`
	Special    *DailySpecial `json:"daily_special,omitempty"`
	Variants   []Variant     `json:"variants,omitempty"`
}

// Variant is a concrete sellable variation of a product. Its price
// matrix and daily special override the product's when present.
type Variant struct {
	ID        int           `json:"id" db:"id"`
	ProductID int           `json:"product_id" db:"product_id"`
	Name      string        `json:"name" db:"name"`
	Prices    PriceMatrix   `json:"prices"`
	Special   *DailySpecial `json:"daily_special,omitempty"`
}

// Variant returns the product's variant with the given id
func (p *Product) Variant(id int) (*Variant, bool) {
	for i := range p.Variants {
		if p.Variants[i].ID == id {
			return &p.Variants[i], true
		}
	}
	return nil, false
}

// Option is a selectable add-on whose price modifier is additive per
// unit and never subject to discounts
type Option struct {
	ID        int         `json:"id" db:"id"`
	ProductID int         `json:"product_id" db:"product_id"`
	Name      string      `json:"name" db:"name"`
	Modifiers PriceMatrix `json:"modifiers"`
}
