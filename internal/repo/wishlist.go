package repo

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Skotchmaster/storefront/internal/models"
)

func firstOrCreateWishlist(tx *gorm.DB, userID uuid.UUID) (*models.Wishlist, error) {
	var wl models.Wishlist
	res := tx.Where("user_id = ?", userID).Limit(1).Find(&wl)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected > 0 {
		return &wl, nil
	}

	fresh := models.Wishlist{UserID: userID}
	if err := tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoNothing: true,
	}).Omit(clause.Associations).Create(&fresh).Error; err != nil {
		return nil, err
	}
	if err := tx.Where("user_id = ?", userID).First(&wl).Error; err != nil {
		return nil, err
	}
	return &wl, nil
}

func (r *GormRepo) GetWishlist(ctx context.Context, userID uuid.UUID) (*models.Wishlist, error) {
	db := r.DB.WithContext(ctx)
	wl, err := firstOrCreateWishlist(db, userID)
	if err != nil {
		return nil, err
	}
	if err := db.Preload("Products", func(db *gorm.DB) *gorm.DB {
		return db.Order("products.title ASC")
	}).Where("id = ?", wl.ID).First(wl).Error; err != nil {
		return nil, err
	}
	return wl, nil
}

func (r *GormRepo) AddToWishlist(ctx context.Context, userID, productID uuid.UUID) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		wl, err := firstOrCreateWishlist(tx, userID)
		if err != nil {
			return err
		}
		return tx.Clauses(clause.OnConflict{DoNothing: true}).
			Create(&models.WishlistProduct{WishlistID: wl.ID, ProductID: productID}).Error
	})
}

func (r *GormRepo) RemoveFromWishlist(ctx context.Context, userID, productID uuid.UUID) error {
	return r.DB.WithContext(ctx).
		Where("product_id = ? AND wishlist_id IN (?)", productID,
			r.DB.Model(&models.Wishlist{}).Select("id").Where("user_id = ?", userID)).
		Delete(&models.WishlistProduct{}).Error
}

// ReplaceWishlist swaps the whole product set in one transaction.
func (r *GormRepo) ReplaceWishlist(ctx context.Context, userID uuid.UUID, productIDs []uuid.UUID) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		wl, err := firstOrCreateWishlist(tx, userID)
		if err != nil {
			return err
		}
		if err := tx.Where("wishlist_id = ?", wl.ID).Delete(&models.WishlistProduct{}).Error; err != nil {
			return err
		}
		if len(productIDs) == 0 {
			return nil
		}
		rows := make([]models.WishlistProduct, 0, len(productIDs))
		for _, id := range productIDs {
			rows = append(rows, models.WishlistProduct{WishlistID: wl.ID, ProductID: id})
		}
		return tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&rows).Error
	})
}

// ExistingProductIDs returns the subset of ids that exist.
func (r *GormRepo) ExistingProductIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]bool, error) {
	out := make(map[uuid.UUID]bool, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	var found []uuid.UUID
	if err := r.DB.WithContext(ctx).Model(&models.Product{}).Where("id IN ?", ids).Pluck("id", &found).Error; err != nil {
		return nil, err
	}
	for _, id := range found {
		out[id] = true
	}
	return out, nil
}
