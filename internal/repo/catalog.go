package repo

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Skotchmaster/storefront/internal/models"
)

type ProductFilter struct {
	CategoryID    *uuid.UUID
	BrandID       *uuid.UUID
	MinPrice      *decimal.Decimal
	MaxPrice      *decimal.Decimal
	InStock       *bool
	IsFeatured    *bool
	IsTrending    *bool
	IsBestseller  *bool
	IsNewArrival  *bool
	Query         string
	Ordering      string
	IncludeHidden bool
}

var productOrderings = map[string]string{
	"":            "created_at DESC",
	"-created_at": "created_at DESC",
	"created_at":  "created_at ASC",
	"price":       "price ASC",
	"-price":      "price DESC",
	"title":       "title ASC",
	"-title":      "title DESC",
}

func ValidOrdering(o string) bool {
	_, ok := productOrderings[o]
	return ok
}

func likePattern(q string) string {
	return "%" + strings.ToLower(strings.TrimSpace(q)) + "%"
}

func (f ProductFilter) apply(q *gorm.DB) *gorm.DB {
	if !f.IncludeHidden {
		q = q.Where("is_active = ?", true)
	}
	if f.CategoryID != nil {
		q = q.Where("category_id = ?", *f.CategoryID)
	}
	if f.BrandID != nil {
		q = q.Where("brand_id = ?", *f.BrandID)
	}
	if f.MinPrice != nil {
		q = q.Where("price >= ?", *f.MinPrice)
	}
	if f.MaxPrice != nil {
		q = q.Where("price <= ?", *f.MaxPrice)
	}
	if f.InStock != nil {
		if *f.InStock {
			q = q.Where("manage_stock = ? OR stock > 0", false)
		} else {
			q = q.Where("manage_stock = ? AND stock = 0", true)
		}
	}
	flags := []struct {
		col string
		v   *bool
	}{
		{"is_featured", f.IsFeatured},
		{"is_trending", f.IsTrending},
		{"is_bestseller", f.IsBestseller},
		{"is_new_arrival", f.IsNewArrival},
	}
	for _, fl := range flags {
		if fl.v != nil {
			q = q.Where(fl.col+" = ?", *fl.v)
		}
	}
	if f.Query != "" {
		p := likePattern(f.Query)
		q = q.Where("LOWER(title) LIKE ? OR LOWER(description) LIKE ? OR LOWER(search_keywords) LIKE ?", p, p, p)
	}
	return q
}

func (r *GormRepo) ListProducts(ctx context.Context, f ProductFilter, offset, limit int) (int64, []models.Product, error) {
	var total int64
	if err := f.apply(r.DB.WithContext(ctx).Model(&models.Product{})).Count(&total).Error; err != nil {
		return 0, nil, err
	}

	order, ok := productOrderings[f.Ordering]
	if !ok {
		order = productOrderings[""]
	}

	items := make([]models.Product, 0, limit)
	if err := f.apply(r.DB.WithContext(ctx).Model(&models.Product{})).
		Preload("Brand").
		Preload("Category").
		Order(order).
		Order("id ASC").
		Offset(offset).
		Limit(limit).
		Find(&items).Error; err != nil {
		return 0, nil, err
	}
	return total, items, nil
}

// ProductsByIDs keeps the order of ids and silently skips missing or hidden products.
func (r *GormRepo) ProductsByIDs(ctx context.Context, ids []uuid.UUID) ([]models.Product, error) {
	if len(ids) == 0 {
		return []models.Product{}, nil
	}
	var found []models.Product
	if err := r.DB.WithContext(ctx).
		Preload("Brand").
		Preload("Category").
		Where("id IN ? AND is_active = ?", ids, true).
		Find(&found).Error; err != nil {
		return nil, err
	}
	byID := make(map[uuid.UUID]models.Product, len(found))
	for _, p := range found {
		byID[p.ID] = p
	}
	out := make([]models.Product, 0, len(found))
	for _, id := range ids {
		if p, ok := byID[id]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *GormRepo) GetProduct(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	var product models.Product
	if err := r.DB.WithContext(ctx).
		Preload("Brand").
		Preload("Category").
		Preload("Images", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC, id ASC") }).
		Preload("Specifications", func(db *gorm.DB) *gorm.DB { return db.Order("spec_group ASC, position ASC, name ASC") }).
		Preload("Variants", func(db *gorm.DB) *gorm.DB { return db.Order("variant_name ASC") }).
		Where("id = ?", id).
		First(&product).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *GormRepo) CreateProduct(ctx context.Context, p *models.Product) error {
	return r.DB.WithContext(ctx).Omit(clause.Associations).Create(p).Error
}

func (r *GormRepo) SaveProduct(ctx context.Context, p *models.Product) error {
	return r.DB.WithContext(ctx).Omit(clause.Associations).Save(p).Error
}

// DeleteProduct removes the product and every row that references it.
// Order items keep their product_id and title snapshot.
func (r *GormRepo) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var p models.Product
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).Where("id = ?", id).First(&p).Error; err != nil {
			return err
		}
		dependents := []any{
			&models.CartItem{},
			&models.WishlistProduct{},
			&models.RecentlyViewed{},
			&models.ProductImage{},
			&models.ProductSpecification{},
			&models.ProductVariant{},
		}
		for _, m := range dependents {
			if err := tx.Where("product_id = ?", id).Delete(m).Error; err != nil {
				return err
			}
		}
		return tx.Delete(&p).Error
	})
}

func (r *GormRepo) ListCategories(ctx context.Context, includeHidden bool) ([]models.Category, error) {
	q := r.DB.WithContext(ctx).Model(&models.Category{})
	if !includeHidden {
		q = q.Where("is_active = ?", true)
	}
	var items []models.Category
	if err := q.Order("name ASC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *GormRepo) GetCategory(ctx context.Context, id uuid.UUID) (*models.Category, error) {
	var c models.Category
	if err := r.DB.WithContext(ctx).Where("id = ?", id).First(&c).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *GormRepo) CreateCategory(ctx context.Context, c *models.Category) error {
	return r.DB.WithContext(ctx).Create(c).Error
}

func (r *GormRepo) SaveCategory(ctx context.Context, c *models.Category) error {
	return r.DB.WithContext(ctx).Save(c).Error
}

// DeleteCategory detaches child categories and products before deleting.
func (r *GormRepo) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var c models.Category
		if err := tx.Where("id = ?", id).First(&c).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.Category{}).Where("parent_id = ?", id).Update("parent_id", nil).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.Product{}).Where("category_id = ?", id).Update("category_id", nil).Error; err != nil {
			return err
		}
		return tx.Delete(&c).Error
	})
}

func (r *GormRepo) ListBrands(ctx context.Context, includeHidden bool) ([]models.Brand, error) {
	q := r.DB.WithContext(ctx).Model(&models.Brand{})
	if !includeHidden {
		q = q.Where("is_active = ?", true)
	}
	var items []models.Brand
	if err := q.Order("name ASC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

type brandCount struct {
	BrandID uuid.UUID
	Count   int64
}

// BrandProductCounts counts active products per brand.
func (r *GormRepo) BrandProductCounts(ctx context.Context) (map[uuid.UUID]int64, error) {
	var rows []brandCount
	if err := r.DB.WithContext(ctx).Model(&models.Product{}).
		Select("brand_id, COUNT(*) AS count").
		Where("brand_id IS NOT NULL AND is_active = ?", true).
		Group("brand_id").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	out := make(map[uuid.UUID]int64, len(rows))
	for _, row := range rows {
		out[row.BrandID] = row.Count
	}
	return out, nil
}

func (r *GormRepo) GetBrand(ctx context.Context, id uuid.UUID) (*models.Brand, error) {
	var b models.Brand
	if err := r.DB.WithContext(ctx).Where("id = ?", id).First(&b).Error; err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *GormRepo) CreateBrand(ctx context.Context, b *models.Brand) error {
	return r.DB.WithContext(ctx).Create(b).Error
}

func (r *GormRepo) SaveBrand(ctx context.Context, b *models.Brand) error {
	return r.DB.WithContext(ctx).Save(b).Error
}

func (r *GormRepo) DeleteBrand(ctx context.Context, id uuid.UUID) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var b models.Brand
		if err := tx.Where("id = ?", id).First(&b).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.Product{}).Where("brand_id = ?", id).Update("brand_id", nil).Error; err != nil {
			return err
		}
		return tx.Delete(&b).Error
	})
}
