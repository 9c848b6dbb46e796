package service

import (
	"context"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/Skotchmaster/storefront/internal/models"
	"github.com/Skotchmaster/storefront/internal/repo"
)

type WishlistService struct {
	Repo *repo.GormRepo
}

func (s *WishlistService) Get(ctx context.Context, userID uuid.UUID) (*models.Wishlist, error) {
	return s.Repo.GetWishlist(ctx, userID)
}

func (s *WishlistService) Add(ctx context.Context, userID, productID uuid.UUID) (*models.Wishlist, error) {
	if _, err := s.Repo.GetProduct(ctx, productID); err != nil {
		return nil, translate(err, "product")
	}
	if err := s.Repo.AddToWishlist(ctx, userID, productID); err != nil {
		return nil, err
	}
	return s.Repo.GetWishlist(ctx, userID)
}

func (s *WishlistService) Remove(ctx context.Context, userID, productID uuid.UUID) (*models.Wishlist, error) {
	if _, err := s.Repo.GetProduct(ctx, productID); err != nil {
		return nil, translate(err, "product")
	}
	if err := s.Repo.RemoveFromWishlist(ctx, userID, productID); err != nil {
		return nil, err
	}
	return s.Repo.GetWishlist(ctx, userID)
}

// Replace sets the wishlist to exactly productIDs; unknown ids are rejected.
func (s *WishlistService) Replace(ctx context.Context, userID uuid.UUID, productIDs []uuid.UUID) (*models.Wishlist, error) {
	uniq := make([]uuid.UUID, 0, len(productIDs))
	seen := make(map[uuid.UUID]bool, len(productIDs))
	for _, id := range productIDs {
		if !seen[id] {
			seen[id] = true
			uniq = append(uniq, id)
		}
	}

	found, err := s.Repo.ExistingProductIDs(ctx, uniq)
	if err != nil {
		return nil, err
	}
	var missing []string
	for _, id := range uniq {
		if !found[id] {
			missing = append(missing, id.String())
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return nil, fieldError("product_ids", "unknown products: "+strings.Join(missing, ", "))
	}

	if err := s.Repo.ReplaceWishlist(ctx, userID, uniq); err != nil {
		return nil, err
	}
	return s.Repo.GetWishlist(ctx, userID)
}
