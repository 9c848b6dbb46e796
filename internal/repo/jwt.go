package repo

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Skotchmaster/storefront/internal/models"
)

var ErrTokenExpiredOrRevoked = errors.New("token expired or revoked")

func (r *GormRepo) StoreRefreshToken(ctx context.Context, t *models.RefreshToken) error {
	return r.DB.WithContext(ctx).Create(t).Error
}

func (r *GormRepo) FindRefreshByJTI(ctx context.Context, jti string) (*models.RefreshToken, error) {
	var token models.RefreshToken
	if err := r.DB.WithContext(ctx).Where("jti = ?", jti).First(&token).Error; err != nil {
		return nil, err
	}
	return &token, nil
}

func usable(t *models.RefreshToken, tokenHash string, now time.Time) bool {
	return !t.Revoked && t.ExpiresAt.After(now) && t.TokenHash == tokenHash
}

// RotateRefreshToken revokes oldJTI and stores next in one transaction.
func (r *GormRepo) RotateRefreshToken(ctx context.Context, oldJTI, oldHash string, next *models.RefreshToken) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var current models.RefreshToken
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("jti = ?", oldJTI).
			First(&current).Error; err != nil {
			return err
		}
		if !usable(&current, oldHash, time.Now()) {
			return ErrTokenExpiredOrRevoked
		}

		if err := tx.Model(&current).Update("revoked", true).Error; err != nil {
			return err
		}
		return tx.Create(next).Error
	})
}

// RevokeRefreshToken blacklists a stored token. Unknown or already revoked
// tokens return gorm.ErrRecordNotFound.
func (r *GormRepo) RevokeRefreshToken(ctx context.Context, jti, tokenHash string) error {
	res := r.DB.WithContext(ctx).Model(&models.RefreshToken{}).
		Where("jti = ? AND token_hash = ? AND revoked = ?", jti, tokenHash, false).
		Update("revoked", true)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
