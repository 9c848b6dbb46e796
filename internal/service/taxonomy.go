package service

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/Skotchmaster/storefront/internal/models"
	"github.com/Skotchmaster/storefront/internal/transport"
)

func (s *CatalogService) ListCategories(ctx context.Context, includeHidden bool) ([]models.Category, error) {
	return s.Repo.ListCategories(ctx, includeHidden)
}

func (s *CatalogService) GetCategory(ctx context.Context, id uuid.UUID) (*models.Category, error) {
	c, err := s.Repo.GetCategory(ctx, id)
	if err != nil {
		return nil, translate(err, "category")
	}
	return c, nil
}

func applyCategory(c *models.Category, req transport.CategoryRequest) {
	setString(&c.Name, req.Name)
	setString(&c.Slug, req.Slug)
	setRaw(&c.Description, req.Description)
	setString(&c.Image, req.Image)
	setRaw(&c.IsActive, req.IsActive)
	setRaw(&c.IsFeatured, req.IsFeatured)
	if req.ParentID != nil {
		c.ParentID = req.ParentID
	}
}

func (s *CatalogService) checkParent(ctx context.Context, c *models.Category) error {
	if c.ParentID == nil {
		return nil
	}
	if c.ID != uuid.Nil && *c.ParentID == c.ID {
		return fieldError("parent_id", "a category cannot be its own parent")
	}
	// walk up from the new parent; reaching c again would form a cycle
	seen := map[uuid.UUID]bool{}
	for id := c.ParentID; id != nil; {
		if seen[*id] || (c.ID != uuid.Nil && *id == c.ID) {
			return fieldError("parent_id", "category hierarchy must not contain cycles")
		}
		seen[*id] = true
		parent, err := s.Repo.GetCategory(ctx, *id)
		if err != nil {
			if id == c.ParentID {
				return fieldError("parent_id", "unknown category")
			}
			return translate(err, "category")
		}
		id = parent.ParentID
	}
	return nil
}

func (s *CatalogService) CreateCategory(ctx context.Context, req transport.CategoryRequest) (*models.Category, error) {
	if req.Name == nil || strings.TrimSpace(*req.Name) == "" {
		return nil, fieldError("name", "is required")
	}
	c := &models.Category{IsActive: true}
	applyCategory(c, req)
	if err := s.checkParent(ctx, c); err != nil {
		return nil, err
	}
	if err := s.Repo.CreateCategory(ctx, c); err != nil {
		return nil, translate(err, "category slug")
	}
	return c, nil
}

func (s *CatalogService) UpdateCategory(ctx context.Context, id uuid.UUID, req transport.CategoryRequest) (*models.Category, error) {
	c, err := s.GetCategory(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.Name != nil && strings.TrimSpace(*req.Name) == "" {
		return nil, fieldError("name", "must not be empty")
	}
	applyCategory(c, req)
	if err := s.checkParent(ctx, c); err != nil {
		return nil, err
	}
	if err := s.Repo.SaveCategory(ctx, c); err != nil {
		return nil, translate(err, "category slug")
	}
	return c, nil
}

func (s *CatalogService) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	return translate(s.Repo.DeleteCategory(ctx, id), "category")
}

type BrandWithCount struct {
	models.Brand
	ProductCount int64
}

func (s *CatalogService) ListBrands(ctx context.Context, includeHidden bool) ([]BrandWithCount, error) {
	brands, err := s.Repo.ListBrands(ctx, includeHidden)
	if err != nil {
		return nil, err
	}
	counts, err := s.Repo.BrandProductCounts(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]BrandWithCount, 0, len(brands))
	for _, b := range brands {
		out = append(out, BrandWithCount{Brand: b, ProductCount: counts[b.ID]})
	}
	return out, nil
}

func (s *CatalogService) GetBrand(ctx context.Context, id uuid.UUID) (*BrandWithCount, error) {
	b, err := s.Repo.GetBrand(ctx, id)
	if err != nil {
		return nil, translate(err, "brand")
	}
	counts, err := s.Repo.BrandProductCounts(ctx)
	if err != nil {
		return nil, err
	}
	return &BrandWithCount{Brand: *b, ProductCount: counts[b.ID]}, nil
}

func applyBrand(b *models.Brand, req transport.BrandRequest) {
	setString(&b.Name, req.Name)
	setString(&b.Slug, req.Slug)
	setRaw(&b.Description, req.Description)
	setString(&b.Logo, req.Logo)
	setString(&b.Website, req.Website)
	setRaw(&b.IsActive, req.IsActive)
}

func (s *CatalogService) CreateBrand(ctx context.Context, req transport.BrandRequest) (*models.Brand, error) {
	if req.Name == nil || strings.TrimSpace(*req.Name) == "" {
		return nil, fieldError("name", "is required")
	}
	b := &models.Brand{IsActive: true}
	applyBrand(b, req)
	if err := s.Repo.CreateBrand(ctx, b); err != nil {
		return nil, translate(err, "brand slug")
	}
	return b, nil
}

func (s *CatalogService) UpdateBrand(ctx context.Context, id uuid.UUID, req transport.BrandRequest) (*models.Brand, error) {
	b, err := s.Repo.GetBrand(ctx, id)
	if err != nil {
		return nil, translate(err, "brand")
	}
	if req.Name != nil && strings.TrimSpace(*req.Name) == "" {
		return nil, fieldError("name", "must not be empty")
	}
	applyBrand(b, req)
	if err := s.Repo.SaveBrand(ctx, b); err != nil {
		return nil, translate(err, "brand slug")
	}
	return b, nil
}

func (s *CatalogService) DeleteBrand(ctx context.Context, id uuid.UUID) error {
	return translate(s.Repo.DeleteBrand(ctx, id), "brand")
}

func (s *CatalogService) ListBanners(ctx context.Context, includeHidden bool) ([]models.Banner, error) {
	return s.Repo.ListBanners(ctx, includeHidden)
}

func (s *CatalogService) GetBanner(ctx context.Context, id uuid.UUID) (*models.Banner, error) {
	b, err := s.Repo.GetBanner(ctx, id)
	if err != nil {
		return nil, translate(err, "banner")
	}
	return b, nil
}

func applyBanner(b *models.Banner, req transport.BannerRequest) {
	setString(&b.Title, req.Title)
	setString(&b.Subtitle, req.Subtitle)
	setString(&b.Image, req.Image)
	setString(&b.URL, req.URL)
	setRaw(&b.IsActive, req.IsActive)
	setRaw(&b.DisplayOrder, req.DisplayOrder)
}

func validateBanner(b *models.Banner) error {
	fields := map[string]string{}
	if b.Title == "" {
		fields["title"] = "is required"
	}
	if b.Image == "" {
		fields["image"] = "is required"
	}
	return fieldErrors(fields)
}

func (s *CatalogService) CreateBanner(ctx context.Context, req transport.BannerRequest) (*models.Banner, error) {
	b := &models.Banner{IsActive: true}
	applyBanner(b, req)
	if err := validateBanner(b); err != nil {
		return nil, err
	}
	if err := s.Repo.SaveBanner(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

func (s *CatalogService) UpdateBanner(ctx context.Context, id uuid.UUID, req transport.BannerRequest) (*models.Banner, error) {
	b, err := s.GetBanner(ctx, id)
	if err != nil {
		return nil, err
	}
	applyBanner(b, req)
	if err := validateBanner(b); err != nil {
		return nil, err
	}
	if err := s.Repo.SaveBanner(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

func (s *CatalogService) DeleteBanner(ctx context.Context, id uuid.UUID) error {
	return translate(s.Repo.DeleteBanner(ctx, id), "banner")
}
