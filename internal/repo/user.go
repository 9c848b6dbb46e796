package repo

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Skotchmaster/storefront/internal/models"
)

// CreateUser inserts the user together with an empty profile.
func (r *GormRepo) CreateUser(ctx context.Context, u *models.User, profile *models.UserProfile) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Profile").Create(u).Error; err != nil {
			return err
		}
		profile.UserID = u.ID
		if err := tx.Create(profile).Error; err != nil {
			return err
		}
		u.Profile = profile
		return nil
	})
}

func (r *GormRepo) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	if err := r.DB.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *GormRepo) GetUserByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	var user models.User
	if err := r.DB.WithContext(ctx).Preload("Profile").Where("id = ?", id).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *GormRepo) SetUserRole(ctx context.Context, username, role string) error {
	res := r.DB.WithContext(ctx).Model(&models.User{}).Where("username = ?", username).Update("role", role)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// UpdateUserFields writes the given columns only.
func (r *GormRepo) UpdateUserFields(ctx context.Context, id uuid.UUID, fields map[string]any) error {
	if len(fields) == 0 {
		return nil
	}
	res := r.DB.WithContext(ctx).Model(&models.User{}).Where("id = ?", id).Updates(fields)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// UpsertProfile updates phone and address, creating the profile for users
// that predate profiles.
func (r *GormRepo) UpsertProfile(ctx context.Context, userID uuid.UUID, phone, address *string) (*models.UserProfile, error) {
	var profile models.UserProfile
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", userID).FirstOrCreate(&profile, models.UserProfile{UserID: userID}).Error; err != nil {
			return err
		}
		if phone != nil {
			profile.Phone = *phone
		}
		if address != nil {
			profile.Address = *address
		}
		return tx.Save(&profile).Error
	})
	if err != nil {
		return nil, err
	}
	return &profile, nil
}
