package repo

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Skotchmaster/storefront/internal/models"
)

// Images, specifications and variants are always addressed through their
// product; a child id under the wrong product is not found.

func (r *GormRepo) productChild(ctx context.Context, productID, id uuid.UUID, dst any) error {
	return r.DB.WithContext(ctx).Where("id = ? AND product_id = ?", id, productID).First(dst).Error
}

func (r *GormRepo) deleteProductChild(ctx context.Context, productID, id uuid.UUID, model any) error {
	res := r.DB.WithContext(ctx).Where("id = ? AND product_id = ?", id, productID).Delete(model)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *GormRepo) ListImages(ctx context.Context, productID uuid.UUID) ([]models.ProductImage, error) {
	var items []models.ProductImage
	if err := r.DB.WithContext(ctx).Where("product_id = ?", productID).Order("position ASC, id ASC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *GormRepo) GetImage(ctx context.Context, productID, id uuid.UUID) (*models.ProductImage, error) {
	var img models.ProductImage
	if err := r.productChild(ctx, productID, id, &img); err != nil {
		return nil, err
	}
	return &img, nil
}

// SaveImage creates or updates img. A primary image demotes the product's other images.
func (r *GormRepo) SaveImage(ctx context.Context, img *models.ProductImage) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(img).Error; err != nil {
			return err
		}
		if !img.IsPrimary {
			return nil
		}
		return tx.Model(&models.ProductImage{}).
			Where("product_id = ? AND id <> ?", img.ProductID, img.ID).
			Update("is_primary", false).Error
	})
}

func (r *GormRepo) DeleteImage(ctx context.Context, productID, id uuid.UUID) error {
	return r.deleteProductChild(ctx, productID, id, &models.ProductImage{})
}

func (r *GormRepo) ListSpecifications(ctx context.Context, productID uuid.UUID) ([]models.ProductSpecification, error) {
	var items []models.ProductSpecification
	if err := r.DB.WithContext(ctx).Where("product_id = ?", productID).
		Order("spec_group ASC, position ASC, name ASC").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *GormRepo) GetSpecification(ctx context.Context, productID, id uuid.UUID) (*models.ProductSpecification, error) {
	var s models.ProductSpecification
	if err := r.productChild(ctx, productID, id, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *GormRepo) SaveSpecification(ctx context.Context, s *models.ProductSpecification) error {
	return r.DB.WithContext(ctx).Save(s).Error
}

func (r *GormRepo) DeleteSpecification(ctx context.Context, productID, id uuid.UUID) error {
	return r.deleteProductChild(ctx, productID, id, &models.ProductSpecification{})
}

func (r *GormRepo) ListVariants(ctx context.Context, productID uuid.UUID, includeHidden bool) ([]models.ProductVariant, error) {
	q := r.DB.WithContext(ctx).Where("product_id = ?", productID)
	if !includeHidden {
		q = q.Where("is_active = ?", true)
	}
	var items []models.ProductVariant
	if err := q.Order("variant_name ASC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *GormRepo) GetVariant(ctx context.Context, productID, id uuid.UUID) (*models.ProductVariant, error) {
	var v models.ProductVariant
	if err := r.productChild(ctx, productID, id, &v); err != nil {
		return nil, err
	}
	return &v, nil
}

func (r *GormRepo) SaveVariant(ctx context.Context, v *models.ProductVariant) error {
	return r.DB.WithContext(ctx).Save(v).Error
}

func (r *GormRepo) DeleteVariant(ctx context.Context, productID, id uuid.UUID) error {
	return r.deleteProductChild(ctx, productID, id, &models.ProductVariant{})
}

func (r *GormRepo) ListBanners(ctx context.Context, includeHidden bool) ([]models.Banner, error) {
	q := r.DB.WithContext(ctx).Model(&models.Banner{})
	if !includeHidden {
		q = q.Where("is_active = ?", true)
	}
	var items []models.Banner
	if err := q.Order("display_order ASC").Order("created_at DESC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *GormRepo) GetBanner(ctx context.Context, id uuid.UUID) (*models.Banner, error) {
	var b models.Banner
	if err := r.DB.WithContext(ctx).Where("id = ?", id).First(&b).Error; err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *GormRepo) SaveBanner(ctx context.Context, b *models.Banner) error {
	return r.DB.WithContext(ctx).Save(b).Error
}

func (r *GormRepo) DeleteBanner(ctx context.Context, id uuid.UUID) error {
	res := r.DB.WithContext(ctx).Where("id = ?", id).Delete(&models.Banner{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
