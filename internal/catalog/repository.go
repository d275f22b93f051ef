package catalog

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"restaurant-pricing/internal/database"
	"restaurant-pricing/internal/logger"
	"restaurant-pricing/internal/models"
)

// Repository loads catalog snapshots from PostgreSQL
type Repository struct {
	db     *database.DB
	logger *logger.Logger
}

// NewRepository creates a catalog repository
func NewRepository(db *database.DB, log *logger.Logger) *Repository {
	return &Repository{
		db:     db,
		logger: log,
	}
}

// LoadSnapshot reads the whole catalog into an immutable snapshot
func (r *Repository) LoadSnapshot(ctx context.Context) (*Snapshot, error) {
	categories, err := r.loadCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load categories: %w", err)
	}

	products, err := r.loadProducts(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load products: %w", err)
	}

	if err := r.loadVariants(ctx, products); err != nil {
		return nil, fmt.Errorf("failed to load variants: %w", err)
	}

	options, err := r.loadOptions(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load options: %w", err)
	}

	promotions, err := r.loadPromotions(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load promotions: %w", err)
	}

	productList := make([]*models.Product, 0, len(products))
	for _, product := range products {
		productList = append(productList, product)
	}

	return NewSnapshot(categories, productList, options, promotions, time.Now().UTC()), nil
}

func (r *Repository) loadCategories(ctx context.Context) ([]*models.Category, error) {
	rows, err := r.db.Query(ctx, database.GetCategoriesSQL)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var categories []*models.Category
	for rows.Next() {
		category := &models.Category{}
		if err := rows.Scan(&category.ID, &category.Name); err != nil {
			return nil, err
		}
		categories = append(categories, category)
	}
	return categories, rows.Err()
}

func (r *Repository) loadProducts(ctx context.Context) (map[int]*models.Product, error) {
	rows, err := r.db.Query(ctx, database.GetProductsSQL)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	products := make(map[int]*models.Product)
	for rows.Next() {
		product := &models.Product{}
		var prices, specials [4]decimal.NullDecimal
		var isSpecial bool
		var weekdays []int32

		err := rows.Scan(&product.ID, &product.CategoryID, &product.Name,
			&prices[0], &prices[1], &prices[2], &prices[3],
			&isSpecial, &weekdays,
			&specials[0], &specials[1], &specials[2], &specials[3])
		if err != nil {
			return nil, err
		}

		product.Prices = models.PriceMatrix(prices)
		if isSpecial {
			product.Special = &models.DailySpecial{
				Weekdays: weekdaySet(weekdays),
				Prices:   models.PriceMatrix(specials),
			}
		}
		products[product.ID] = product
	}
	return products, rows.Err()
}

func (r *Repository) loadVariants(ctx context.Context, products map[int]*models.Product) error {
	rows, err := r.db.Query(ctx, database.GetVariantsSQL)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		variant := models.Variant{}
		var prices, specials [4]decimal.NullDecimal
		var isSpecial bool
		var weekdays []int32

		err := rows.Scan(&variant.ID, &variant.ProductID, &variant.Name,
			&prices[0], &prices[1], &prices[2], &prices[3],
			&isSpecial, &weekdays,
			&specials[0], &specials[1], &specials[2], &specials[3])
		if err != nil {
			return err
		}

		variant.Prices = models.PriceMatrix(prices)
		if isSpecial {
			variant.Special = &models.DailySpecial{
				Weekdays: weekdaySet(weekdays),
				Prices:   models.PriceMatrix(specials),
			}
		}

		product, ok := products[variant.ProductID]
		if !ok {
			// orphaned variant; the product was removed
			r.logger.Warn("catalog_orphaned_variant",
				fmt.Sprintf("Variant %d references missing product %d", variant.ID, variant.ProductID),
				"", nil)
			continue
		}
		product.Variants = append(product.Variants, variant)
	}
	return rows.Err()
}

func (r *Repository) loadOptions(ctx context.Context) ([]*models.Option, error) {
	rows, err := r.db.Query(ctx, database.GetOptionsSQL)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var options []*models.Option
	for rows.Next() {
		option := &models.Option{}
		var modifiers [4]decimal.NullDecimal

		err := rows.Scan(&option.ID, &option.ProductID, &option.Name,
			&modifiers[0], &modifiers[1], &modifiers[2], &modifiers[3])
		if err != nil {
			return nil, err
		}

		option.Modifiers = models.PriceMatrix(modifiers)
		options = append(options, option)
	}
	return options, rows.Err()
}

func (r *Repository) loadPromotions(ctx context.Context) ([]*models.Promotion, error) {
	rows, err := r.db.Query(ctx, database.GetPromotionsSQL)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	byID := make(map[int]*models.Promotion)
	var promotions []*models.Promotion
	for rows.Next() {
		promo := &models.Promotion{}
		var bundle [4]decimal.NullDecimal
		var timeFrom, timeUntil *string
		var weekdays []int32

		err := rows.Scan(&promo.ID, &promo.Name, &promo.Type, &promo.Value, &promo.DisplayLabel, &promo.IsActive,
			&promo.ValidFrom, &promo.ValidUntil, &timeFrom, &timeUntil, &weekdays,
			&bundle[0], &bundle[1], &bundle[2], &bundle[3],
			&promo.CreatedAt)
		if err != nil {
			return nil, err
		}

		promo.Weekdays = weekdaySet(weekdays)
		promo.BundlePrices = models.PriceMatrix(bundle)

		if promo.TimeFrom, err = parseDayTime(timeFrom); err != nil {
			return nil, fmt.Errorf("promotion %d: %w", promo.ID, err)
		}
		if promo.TimeUntil, err = parseDayTime(timeUntil); err != nil {
			return nil, fmt.Errorf("promotion %d: %w", promo.ID, err)
		}

		byID[promo.ID] = promo
		promotions = append(promotions, promo)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if err := r.loadPromotionItems(ctx, byID); err != nil {
		return nil, err
	}
	if err := r.loadBundleItems(ctx, byID); err != nil {
		return nil, err
	}

	return promotions, nil
}

func (r *Repository) loadPromotionItems(ctx context.Context, promotions map[int]*models.Promotion) error {
	rows, err := r.db.Query(ctx, database.GetPromotionItemsSQL)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		item := models.PromotionItem{}
		err := rows.Scan(&item.ID, &item.PromotionID, &item.ProductID, &item.VariantID, &item.CategoryID)
		if err != nil {
			return err
		}
		if promo, ok := promotions[item.PromotionID]; ok {
			promo.Items = append(promo.Items, item)
		}
	}
	return rows.Err()
}

func (r *Repository) loadBundleItems(ctx context.Context, promotions map[int]*models.Promotion) error {
	rows, err := r.db.Query(ctx, database.GetBundleItemsSQL)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		item := models.BundleItem{}
		err := rows.Scan(&item.ID, &item.PromotionID, &item.ProductID, &item.VariantID, &item.Quantity)
		if err != nil {
			return err
		}
		if promo, ok := promotions[item.PromotionID]; ok {
			promo.BundleItems = append(promo.BundleItems, item)
		}
	}
	return rows.Err()
}

// weekdaySet converts a scanned int array to a WeekdaySet
func weekdaySet(days []int32) models.WeekdaySet {
	if len(days) == 0 {
		return nil
	}
	set := make(models.WeekdaySet, 0, len(days))
	for _, d := range days {
		set = append(set, int(d))
	}
	return set
}

// parseDayTime converts a nullable "HH:MM" column to a DayTime
func parseDayTime(s *string) (*models.DayTime, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	dt, err := models.ParseDayTime(*s)
	if err != nil {
		return nil, err
	}
	return &dt, nil
}
