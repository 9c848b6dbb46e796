package repo

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/Skotchmaster/storefront/internal/models"
)

type GormRepo struct {
	DB *gorm.DB
}

func New(db *gorm.DB) *GormRepo {
	return &GormRepo{DB: db}
}

var allModels = []any{
	&models.User{},
	&models.UserProfile{},
	&models.RefreshToken{},
	&models.Category{},
	&models.Brand{},
	&models.Product{},
	&models.ProductImage{},
	&models.ProductSpecification{},
	&models.ProductVariant{},
	&models.Banner{},
	&models.Cart{},
	&models.CartItem{},
	&models.Wishlist{},
	&models.WishlistProduct{},
	&models.RecentlyViewed{},
	&models.Order{},
	&models.OrderItem{},
	&models.Address{},
	&models.Card{},
}

func Migrate(db *gorm.DB) error {
	if err := db.SetupJoinTable(&models.Wishlist{}, "Products", &models.WishlistProduct{}); err != nil {
		return fmt.Errorf("setup wishlist join table: %w", err)
	}
	if err := db.AutoMigrate(allModels...); err != nil {
		return fmt.Errorf("automigrate: %w", err)
	}
	return nil
}
