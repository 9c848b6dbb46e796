package repo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm/clause"

	"github.com/Skotchmaster/storefront/internal/models"
)

// RecordView keeps one row per (user, product) and refreshes viewed_at.
func (r *GormRepo) RecordView(ctx context.Context, userID, productID uuid.UUID, at time.Time) error {
	rv := models.RecentlyViewed{UserID: userID, ProductID: productID, ViewedAt: at}
	return r.DB.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "product_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"viewed_at"}),
		}).
		Omit(clause.Associations).
		Create(&rv).Error
}

func (r *GormRepo) ListRecentlyViewed(ctx context.Context, userID uuid.UUID, limit int) ([]models.RecentlyViewed, error) {
	items := make([]models.RecentlyViewed, 0, limit)
	if err := r.DB.WithContext(ctx).
		Preload("Product").
		Where("user_id = ?", userID).
		Order("viewed_at DESC").
		Limit(limit).
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}
