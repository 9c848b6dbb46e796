package repo

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Skotchmaster/storefront/internal/models"
)

// saveWithDefault saves row and, when it is the default, clears is_default
// on the user's other rows of the same table.
func (r *GormRepo) saveWithDefault(ctx context.Context, row any, model any, userID, id uuid.UUID, isDefault, create bool) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		write := tx.Save
		if create {
			write = tx.Create
		}
		if err := write(row).Error; err != nil {
			return err
		}
		if !isDefault {
			return nil
		}
		return tx.Model(model).
			Where("user_id = ? AND id <> ?", userID, id).
			Update("is_default", false).Error
	})
}

func (r *GormRepo) deleteOwned(ctx context.Context, userID, id uuid.UUID, model any) error {
	res := r.DB.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).Delete(model)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *GormRepo) ListAddresses(ctx context.Context, userID uuid.UUID) ([]models.Address, error) {
	var items []models.Address
	if err := r.DB.WithContext(ctx).Where("user_id = ?", userID).
		Order("is_default DESC").Order("created_at ASC").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *GormRepo) GetAddress(ctx context.Context, userID, id uuid.UUID) (*models.Address, error) {
	var a models.Address
	if err := r.DB.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).First(&a).Error; err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *GormRepo) SaveAddress(ctx context.Context, a *models.Address) error {
	create := a.ID == uuid.Nil
	if create {
		a.ID = uuid.New()
	}
	return r.saveWithDefault(ctx, a, &models.Address{}, a.UserID, a.ID, a.IsDefault, create)
}

func (r *GormRepo) DeleteAddress(ctx context.Context, userID, id uuid.UUID) error {
	return r.deleteOwned(ctx, userID, id, &models.Address{})
}

func (r *GormRepo) ListCards(ctx context.Context, userID uuid.UUID) ([]models.Card, error) {
	var items []models.Card
	if err := r.DB.WithContext(ctx).Where("user_id = ?", userID).
		Order("is_default DESC").Order("created_at ASC").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *GormRepo) GetCard(ctx context.Context, userID, id uuid.UUID) (*models.Card, error) {
	var c models.Card
	if err := r.DB.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).First(&c).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *GormRepo) SaveCard(ctx context.Context, c *models.Card) error {
	create := c.ID == uuid.Nil
	if create {
		c.ID = uuid.New()
	}
	return r.saveWithDefault(ctx, c, &models.Card{}, c.UserID, c.ID, c.IsDefault, create)
}

func (r *GormRepo) DeleteCard(ctx context.Context, userID, id uuid.UUID) error {
	return r.deleteOwned(ctx, userID, id, &models.Card{})
}
