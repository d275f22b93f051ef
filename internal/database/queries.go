package database

// Catalog queries
const (
	GetCategoriesSQL = `
		SELECT id, name
		FROM categories
		ORDER BY id ASC`

	GetProductsSQL = `
		SELECT id, category_id, name,
			   price_capital_pickup, price_capital_delivery, price_interior_pickup, price_interior_delivery,
			   is_daily_special, special_weekdays,
			   special_capital_pickup, special_capital_delivery, special_interior_pickup, special_interior_delivery
		FROM products
		ORDER BY id ASC`

	GetVariantsSQL = `
		SELECT id, product_id, name,
			   price_capital_pickup, price_capital_delivery, price_interior_pickup, price_interior_delivery,
			   is_daily_special, special_weekdays,
			   special_capital_pickup, special_capital_delivery, special_interior_pickup, special_interior_delivery
		FROM variants
		ORDER BY product_id ASC, id ASC`

	GetOptionsSQL = `
		SELECT id, product_id, name,
			   mod_capital_pickup, mod_capital_delivery, mod_interior_pickup, mod_interior_delivery
		FROM options
		ORDER BY product_id ASC, id ASC`
)

// Promotion queries
const (
	GetPromotionsSQL = `
		SELECT id, name, type, value, display_label, is_active,
			   valid_from, valid_until, time_from, time_until, weekdays,
			   bundle_capital_pickup, bundle_capital_delivery, bundle_interior_pickup, bundle_interior_delivery,
			   created_at
		FROM promotions
		ORDER BY id ASC`

	GetPromotionItemsSQL = `
		SELECT id, promotion_id, product_id, variant_id, category_id
		FROM promotion_items
		ORDER BY promotion_id ASC, id ASC`

	GetBundleItemsSQL = `
		SELECT id, promotion_id, product_id, variant_id, quantity
		FROM bundle_items
		ORDER BY promotion_id ASC, id ASC`
)

// Delivery event queries
const (
	InsertDeliveryEventSQL = `
		INSERT INTO delivery_events (order_number, driver_name, event, occurred_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id`

	GetDeliveryEventsByOrderSQL = `
		SELECT id, order_number, driver_name, event, occurred_at, recorded_at
		FROM delivery_events
		WHERE order_number = $1
		ORDER BY occurred_at ASC`
)
