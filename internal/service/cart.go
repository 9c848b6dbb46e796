package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/Skotchmaster/storefront/internal/models"
	"github.com/Skotchmaster/storefront/internal/repo"
)

type CartService struct {
	Repo *repo.GormRepo
}

func (s *CartService) GetCart(ctx context.Context, userID uuid.UUID) (*models.Cart, error) {
	return s.Repo.GetCart(ctx, userID)
}

func (s *CartService) AddItem(ctx context.Context, userID, productID uuid.UUID, qty int) (*models.CartItem, error) {
	if qty < 1 {
		return nil, fieldError("quantity", "must be at least 1")
	}
	if productID == uuid.Nil {
		return nil, fieldError("product_id", "is required")
	}
	p, err := s.Repo.GetProduct(ctx, productID)
	if err != nil {
		return nil, translate(err, "product")
	}
	// hidden products are not sold
	if !p.IsActive {
		return nil, fmt.Errorf("product: %w", ErrNotFound)
	}
	item, err := s.Repo.AddToCart(ctx, userID, productID, qty)
	if err != nil {
		return nil, translate(err, "cart item")
	}
	return item, nil
}

func (s *CartService) UpdateItem(ctx context.Context, userID, itemID uuid.UUID, qty int) (*models.CartItem, error) {
	if qty < 1 {
		return nil, fieldError("quantity", "must be at least 1")
	}
	item, err := s.Repo.UpdateCartItem(ctx, userID, itemID, qty)
	if err != nil {
		return nil, translate(err, "cart item")
	}
	return item, nil
}

func (s *CartService) RemoveItem(ctx context.Context, userID, itemID uuid.UUID) error {
	return translate(s.Repo.RemoveCartItem(ctx, userID, itemID), "cart item")
}

func (s *CartService) Clear(ctx context.Context, userID uuid.UUID) error {
	return s.Repo.ClearCart(ctx, userID)
}
