package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Skotchmaster/storefront/internal/domain"
	"github.com/Skotchmaster/storefront/internal/events"
	"github.com/Skotchmaster/storefront/internal/models"
	"github.com/Skotchmaster/storefront/internal/repo"
	"github.com/Skotchmaster/storefront/internal/search"
	"github.com/Skotchmaster/storefront/internal/transport"
	"github.com/Skotchmaster/storefront/pkg/logging"
)

var (
	weightUnits     = map[string]bool{"kg": true, "g": true, "lb": true}
	dimensionsUnits = map[string]bool{"cm": true, "m": true, "in": true}
)

type CatalogService struct {
	Repo     *repo.GormRepo
	Events   events.Publisher
	Search   search.Index
	Producer string
}

func (s *CatalogService) ListProducts(ctx context.Context, f repo.ProductFilter, offset, limit int) (int64, []models.Product, error) {
	if !repo.ValidOrdering(f.Ordering) {
		return 0, nil, fieldError("ordering", "unsupported ordering")
	}
	if f.MinPrice != nil && f.MaxPrice != nil && f.MinPrice.GreaterThan(*f.MaxPrice) {
		return 0, nil, fieldError("min_price", "must not exceed max_price")
	}
	return s.Repo.ListProducts(ctx, f, offset, limit)
}

// SearchProducts queries the search index and falls back to a database
// match when no index is configured or the index fails.
func (s *CatalogService) SearchProducts(ctx context.Context, q string, offset, limit int) (int64, []models.Product, error) {
	l := logging.FromContext(ctx).With("svc", "catalog.search")

	q = strings.TrimSpace(q)
	if q == "" {
		return 0, []models.Product{}, nil
	}

	if s.Search != nil {
		total, ids, err := s.Search.Search(ctx, q, offset, limit)
		if err == nil {
			items, err := s.Repo.ProductsByIDs(ctx, ids)
			if err != nil {
				return 0, nil, err
			}
			return total, items, nil
		}
		l.Warn("search_index_error", "reason", "falling back to database search", "error", err)
	}

	return s.Repo.ListProducts(ctx, repo.ProductFilter{Query: q}, offset, limit)
}

func (s *CatalogService) GetProduct(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	p, err := s.Repo.GetProduct(ctx, id)
	if err != nil {
		return nil, translate(err, "product")
	}
	return p, nil
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = strings.TrimSpace(*v)
	}
}

func setRaw[T any](dst *T, v *T) {
	if v != nil {
		*dst = *v
	}
}

func setNullDecimal(dst *decimal.NullDecimal, v *decimal.Decimal) {
	if v != nil {
		*dst = decimal.NewNullDecimal(*v)
	}
}

func applyProduct(p *models.Product, req transport.ProductRequest) {
	setString(&p.Title, req.Title)
	setString(&p.Slug, req.Slug)
	setString(&p.SKU, req.SKU)
	setString(&p.UPC, req.UPC)
	setString(&p.ModelNumber, req.ModelNumber)
	if req.BrandID != nil {
		p.BrandID = req.BrandID
		p.Brand = nil
	}
	if req.CategoryID != nil {
		p.CategoryID = req.CategoryID
		p.Category = nil
	}
	setRaw(&p.Description, req.Description)
	setRaw(&p.ShortDescription, req.ShortDescription)

	setRaw(&p.Price, req.Price)
	setNullDecimal(&p.CompareAtPrice, req.CompareAtPrice)
	setNullDecimal(&p.CostPrice, req.CostPrice)
	setRaw(&p.DiscountPercentage, req.DiscountPercentage)

	setRaw(&p.Stock, req.Stock)
	setRaw(&p.LowStockThreshold, req.LowStockThreshold)
	setRaw(&p.ManageStock, req.ManageStock)
	setRaw(&p.AllowBackorders, req.AllowBackorders)
	setRaw(&p.BackorderLimit, req.BackorderLimit)

	setNullDecimal(&p.Weight, req.Weight)
	setString(&p.WeightUnit, req.WeightUnit)
	setNullDecimal(&p.Length, req.Length)
	setNullDecimal(&p.Width, req.Width)
	setNullDecimal(&p.Height, req.Height)
	setString(&p.DimensionsUnit, req.DimensionsUnit)

	setString(&p.Color, req.Color)
	setString(&p.Material, req.Material)
	setString(&p.Size, req.Size)
	setString(&p.Style, req.Style)
	setString(&p.MainImage, req.MainImage)

	setRaw(&p.IsActive, req.IsActive)
	setRaw(&p.IsTrending, req.IsTrending)
	setRaw(&p.IsFeatured, req.IsFeatured)
	setRaw(&p.IsBestseller, req.IsBestseller)
	setRaw(&p.IsNewArrival, req.IsNewArrival)

	setString(&p.WarrantyPeriod, req.WarrantyPeriod)
	setString(&p.WarrantyType, req.WarrantyType)
	setString(&p.CountryOfOrigin, req.CountryOfOrigin)
	setString(&p.HSCode, req.HSCode)

	setString(&p.MetaTitle, req.MetaTitle)
	setRaw(&p.MetaDescription, req.MetaDescription)
	setRaw(&p.SearchKeywords, req.SearchKeywords)

	if req.PublishedAt != nil {
		p.PublishedAt = req.PublishedAt
	}
}

func nonNegative(fields map[string]string, name string, v int) {
	if v < 0 {
		fields[name] = "must not be negative"
	}
}

func nonNegativeDecimal(fields map[string]string, name string, v decimal.NullDecimal) {
	if v.Valid && v.Decimal.IsNegative() {
		fields[name] = "must not be negative"
	}
}

func (s *CatalogService) validateProduct(ctx context.Context, p *models.Product) error {
	fields := domain.ValidatePricing(p.Price, p.CompareAtPrice, p.CostPrice, p.DiscountPercentage)
	if p.Title == "" {
		fields["title"] = "is required"
	}
	nonNegative(fields, "stock", p.Stock)
	nonNegative(fields, "low_stock_threshold", p.LowStockThreshold)
	nonNegative(fields, "backorder_limit", p.BackorderLimit)
	nonNegativeDecimal(fields, "weight", p.Weight)
	nonNegativeDecimal(fields, "length", p.Length)
	nonNegativeDecimal(fields, "width", p.Width)
	nonNegativeDecimal(fields, "height", p.Height)
	if !weightUnits[p.WeightUnit] {
		fields["weight_unit"] = "must be one of kg, g, lb"
	}
	if !dimensionsUnits[p.DimensionsUnit] {
		fields["dimensions_unit"] = "must be one of cm, m, in"
	}
	if len(fields) > 0 {
		return fieldErrors(fields)
	}

	if p.BrandID != nil {
		if _, err := s.Repo.GetBrand(ctx, *p.BrandID); err != nil {
			if errors.Is(translate(err, "brand"), ErrNotFound) {
				return fieldError("brand_id", "unknown brand")
			}
			return err
		}
	}
	if p.CategoryID != nil {
		if _, err := s.Repo.GetCategory(ctx, *p.CategoryID); err != nil {
			if errors.Is(translate(err, "category"), ErrNotFound) {
				return fieldError("category_id", "unknown category")
			}
			return err
		}
	}
	return nil
}

func (s *CatalogService) CreateProduct(ctx context.Context, req transport.ProductRequest) (*models.Product, error) {
	if req.Title == nil || strings.TrimSpace(*req.Title) == "" {
		return nil, fieldError("title", "is required")
	}
	if req.Price == nil {
		return nil, fieldError("price", "is required")
	}

	p := &models.Product{
		LowStockThreshold: domain.DefaultLowStockThreshold,
		ManageStock:       true,
		IsActive:          true,
		IsNewArrival:      true,
		WeightUnit:        "kg",
		DimensionsUnit:    "cm",
	}
	applyProduct(p, req)
	if err := s.validateProduct(ctx, p); err != nil {
		return nil, err
	}

	if err := s.Repo.CreateProduct(ctx, p); err != nil {
		return nil, translate(err, "product slug or sku")
	}

	s.afterProductWrite(ctx, p.ID, events.ProductCreated)
	return s.GetProduct(ctx, p.ID)
}

func (s *CatalogService) UpdateProduct(ctx context.Context, id uuid.UUID, req transport.ProductRequest) (*models.Product, error) {
	p, err := s.GetProduct(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.Title != nil && strings.TrimSpace(*req.Title) == "" {
		return nil, fieldError("title", "must not be empty")
	}

	prevPct := p.DiscountPercentage
	applyProduct(p, req)
	switch {
	case req.Price != nil && req.CompareAtPrice == nil && p.DiscountPercentage > 0:
		// a new price under an active discount becomes the new base price
		p.CompareAtPrice = decimal.NewNullDecimal(*req.Price)
	case req.Price == nil && prevPct > 0 && p.DiscountPercentage == 0 && p.CompareAtPrice.Valid:
		// dropping the discount restores the base price
		p.Price = p.CompareAtPrice.Decimal
	}
	if err := s.validateProduct(ctx, p); err != nil {
		return nil, err
	}

	if err := s.Repo.SaveProduct(ctx, p); err != nil {
		return nil, translate(err, "product slug or sku")
	}

	s.afterProductWrite(ctx, p.ID, events.ProductUpdated)
	return s.GetProduct(ctx, p.ID)
}

func (s *CatalogService) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	l := logging.FromContext(ctx).With("svc", "catalog.delete_product")

	if err := s.Repo.DeleteProduct(ctx, id); err != nil {
		return translate(err, "product")
	}

	if s.Search != nil {
		if err := s.Search.DeleteProduct(ctx, id); err != nil {
			l.Error("search_delete_error", "product_id", id, "error", err)
		}
	}
	publish(ctx, s.Events, events.TopicProducts, id.String(),
		events.NewEnvelope(s.Producer, events.ProductDeleted, events.ProductPayload{ProductID: id}))
	return nil
}

// afterProductWrite refreshes the search document and announces the change.
func (s *CatalogService) afterProductWrite(ctx context.Context, id uuid.UUID, eventType string) {
	l := logging.FromContext(ctx).With("svc", "catalog.product_write")

	p, err := s.Repo.GetProduct(ctx, id)
	if err != nil {
		l.Error("product_reload_error", "product_id", id, "error", err)
		return
	}

	if s.Search != nil {
		if err := s.Search.IndexProduct(ctx, search.DocumentFromProduct(p)); err != nil {
			l.Error("search_index_error", "product_id", id, "error", err)
		}
	}

	price, stock := p.Price, p.Stock
	publish(ctx, s.Events, events.TopicProducts, id.String(),
		events.NewEnvelope(s.Producer, eventType, events.ProductPayload{
			ProductID: p.ID,
			Title:     p.Title,
			SKU:       p.SKU,
			Price:     &price,
			Stock:     &stock,
		}))
}

// ReindexProducts pushes every product to the search index.
func (s *CatalogService) ReindexProducts(ctx context.Context) (int, error) {
	if s.Search == nil {
		return 0, nil
	}
	const batch = 100
	indexed := 0
	for offset := 0; ; offset += batch {
		_, items, err := s.Repo.ListProducts(ctx, repo.ProductFilter{IncludeHidden: true, Ordering: "created_at"}, offset, batch)
		if err != nil {
			return indexed, err
		}
		for i := range items {
			if err := s.Search.IndexProduct(ctx, search.DocumentFromProduct(&items[i])); err != nil {
				return indexed, fmt.Errorf("index %s: %w", items[i].ID, err)
			}
			indexed++
		}
		if len(items) < batch {
			return indexed, nil
		}
	}
}
