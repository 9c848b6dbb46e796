package repo

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Skotchmaster/storefront/internal/domain"
	"github.com/Skotchmaster/storefront/internal/models"
)

func preloadOrderItems(db *gorm.DB) *gorm.DB {
	return db.Order("created_at ASC, id ASC")
}

// Checkout converts the user's cart into a pending order. The cart row is
// locked for the whole transaction so concurrent checkouts by one user
// serialize; any failure rolls back and leaves the cart untouched.
func (r *GormRepo) Checkout(ctx context.Context, userID uuid.UUID, shippingAddress string) (*models.Order, error) {
	var order models.Order
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		cart, err := lockCart(tx, userID)
		if err != nil {
			return err
		}

		items, err := loadCartItems(tx, cart.ID)
		if err != nil {
			return err
		}

		total := decimal.Zero
		for i := range items {
			total = total.Add(items[i].Subtotal())
		}

		order = models.Order{
			UserID:          userID,
			TotalAmount:     total,
			ShippingAddress: shippingAddress,
			Status:          string(domain.OrderPending),
		}
		if err := tx.Omit(clause.Associations).Create(&order).Error; err != nil {
			return err
		}

		orderItems := make([]models.OrderItem, 0, len(items))
		for _, it := range items {
			orderItems = append(orderItems, models.OrderItem{
				OrderID:      order.ID,
				ProductID:    it.ProductID,
				ProductTitle: it.Product.Title,
				Quantity:     it.Quantity,
				Price:        it.Product.Price,
			})
		}
		if len(orderItems) > 0 {
			if err := tx.Create(&orderItems).Error; err != nil {
				return err
			}
		}

		if len(items) > 0 {
			ids := make([]uuid.UUID, 0, len(items))
			for _, it := range items {
				ids = append(ids, it.ID)
			}
			if err := tx.Where("id IN ?", ids).Delete(&models.CartItem{}).Error; err != nil {
				return err
			}
		}

		order.Items = orderItems
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *GormRepo) ListOrders(ctx context.Context, userID uuid.UUID, offset, limit int) (int64, []models.Order, error) {
	q := r.DB.WithContext(ctx).Model(&models.Order{}).Where("user_id = ?", userID)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return 0, nil, err
	}

	orders := make([]models.Order, 0, limit)
	if err := r.DB.WithContext(ctx).
		Preload("Items", preloadOrderItems).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&orders).Error; err != nil {
		return 0, nil, err
	}
	return total, orders, nil
}

// GetOrder loads one of the user's orders; other users' orders are not found.
func (r *GormRepo) GetOrder(ctx context.Context, userID, orderID uuid.UUID) (*models.Order, error) {
	var order models.Order
	if err := r.DB.WithContext(ctx).
		Preload("Items", preloadOrderItems).
		Where("id = ? AND user_id = ?", orderID, userID).
		First(&order).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *GormRepo) UpdateOrderStatus(ctx context.Context, orderID uuid.UUID, status domain.OrderStatus) (*models.Order, error) {
	var order models.Order
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).Where("id = ?", orderID).First(&order).Error; err != nil {
			return err
		}
		if err := tx.Model(&order).Update("status", string(status)).Error; err != nil {
			return err
		}
		return tx.Preload("Items", preloadOrderItems).Where("id = ?", orderID).First(&order).Error
	})
	if err != nil {
		return nil, err
	}
	return &order, nil
}
