package repo

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Skotchmaster/storefront/internal/models"
)

func firstOrCreateCart(tx *gorm.DB, userID uuid.UUID) (*models.Cart, error) {
	var cart models.Cart
	res := tx.Where("user_id = ?", userID).Limit(1).Find(&cart)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected > 0 {
		return &cart, nil
	}

	fresh := models.Cart{UserID: userID}
	if err := tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoNothing: true,
	}).Omit(clause.Associations).Create(&fresh).Error; err != nil {
		return nil, err
	}
	// A concurrent insert may have won; read back whichever row exists.
	if err := tx.Where("user_id = ?", userID).First(&cart).Error; err != nil {
		return nil, err
	}
	return &cart, nil
}

// lockCart returns the user's cart with its row locked until tx ends.
// Every writer of cart lines goes through it so line changes and checkout
// never interleave.
func lockCart(tx *gorm.DB, userID uuid.UUID) (*models.Cart, error) {
	cart, err := firstOrCreateCart(tx, userID)
	if err != nil {
		return nil, err
	}
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).Where("id = ?", cart.ID).First(cart).Error; err != nil {
		return nil, err
	}
	return cart, nil
}

func loadCartItems(tx *gorm.DB, cartID uuid.UUID) ([]models.CartItem, error) {
	items := []models.CartItem{}
	if err := tx.Preload("Product").
		Where("cart_id = ?", cartID).
		Order("created_at ASC").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// GetCart returns the user's cart with live product data, creating it on first use.
func (r *GormRepo) GetCart(ctx context.Context, userID uuid.UUID) (*models.Cart, error) {
	db := r.DB.WithContext(ctx)
	cart, err := firstOrCreateCart(db, userID)
	if err != nil {
		return nil, err
	}
	if cart.Items, err = loadCartItems(db, cart.ID); err != nil {
		return nil, err
	}
	return cart, nil
}

// AddToCart adds qty of productID to the cart. An existing line for the
// same product accumulates quantity instead of creating a second line.
func (r *GormRepo) AddToCart(ctx context.Context, userID, productID uuid.UUID, qty int) (*models.CartItem, error) {
	var item models.CartItem
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		cart, err := lockCart(tx, userID)
		if err != nil {
			return err
		}

		line := models.CartItem{CartID: cart.ID, ProductID: productID, Quantity: qty}
		if err := tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "cart_id"}, {Name: "product_id"}},
			DoUpdates: clause.Assignments(map[string]any{
				"quantity": gorm.Expr("cart_items.quantity + excluded.quantity"),
			}),
		}).Omit(clause.Associations).Create(&line).Error; err != nil {
			return err
		}

		return tx.Preload("Product").
			Where("cart_id = ? AND product_id = ?", cart.ID, productID).
			First(&item).Error
	})
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *GormRepo) UpdateCartItem(ctx context.Context, userID, itemID uuid.UUID, qty int) (*models.CartItem, error) {
	var item models.CartItem
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		cart, err := lockCart(tx, userID)
		if err != nil {
			return err
		}
		if err := tx.Where("id = ? AND cart_id = ?", itemID, cart.ID).First(&item).Error; err != nil {
			return err
		}
		if err := tx.Model(&item).Update("quantity", qty).Error; err != nil {
			return err
		}
		return tx.Preload("Product").Where("id = ?", item.ID).First(&item).Error
	})
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *GormRepo) RemoveCartItem(ctx context.Context, userID, itemID uuid.UUID) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		cart, err := lockCart(tx, userID)
		if err != nil {
			return err
		}
		res := tx.Where("id = ? AND cart_id = ?", itemID, cart.ID).Delete(&models.CartItem{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

func (r *GormRepo) ClearCart(ctx context.Context, userID uuid.UUID) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		cart, err := lockCart(tx, userID)
		if err != nil {
			return err
		}
		return tx.Where("cart_id = ?", cart.ID).Delete(&models.CartItem{}).Error
	})
}
