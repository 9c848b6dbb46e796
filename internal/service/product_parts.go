package service

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/Skotchmaster/storefront/internal/models"
	"github.com/Skotchmaster/storefront/internal/transport"
)

func (s *CatalogService) requireProduct(ctx context.Context, productID uuid.UUID) error {
	if _, err := s.Repo.GetProduct(ctx, productID); err != nil {
		return translate(err, "product")
	}
	return nil
}

func (s *CatalogService) ListImages(ctx context.Context, productID uuid.UUID) ([]models.ProductImage, error) {
	if err := s.requireProduct(ctx, productID); err != nil {
		return nil, err
	}
	return s.Repo.ListImages(ctx, productID)
}

func applyImage(img *models.ProductImage, req transport.ImageRequest) {
	setString(&img.Image, req.Image)
	setString(&img.AltText, req.AltText)
	setRaw(&img.IsPrimary, req.IsPrimary)
	setRaw(&img.Position, req.Order)
}

func (s *CatalogService) SaveImage(ctx context.Context, productID uuid.UUID, imageID *uuid.UUID, req transport.ImageRequest) (*models.ProductImage, error) {
	if err := s.requireProduct(ctx, productID); err != nil {
		return nil, err
	}
	img := &models.ProductImage{ProductID: productID}
	if imageID != nil {
		existing, err := s.Repo.GetImage(ctx, productID, *imageID)
		if err != nil {
			return nil, translate(err, "image")
		}
		img = existing
	}
	applyImage(img, req)
	if img.Image == "" {
		return nil, fieldError("image", "is required")
	}
	if img.Position < 0 {
		return nil, fieldError("order", "must not be negative")
	}
	if err := s.Repo.SaveImage(ctx, img); err != nil {
		return nil, err
	}
	return img, nil
}

func (s *CatalogService) DeleteImage(ctx context.Context, productID, imageID uuid.UUID) error {
	return translate(s.Repo.DeleteImage(ctx, productID, imageID), "image")
}

func (s *CatalogService) ListSpecifications(ctx context.Context, productID uuid.UUID) ([]models.ProductSpecification, error) {
	if err := s.requireProduct(ctx, productID); err != nil {
		return nil, err
	}
	return s.Repo.ListSpecifications(ctx, productID)
}

func (s *CatalogService) SaveSpecification(ctx context.Context, productID uuid.UUID, specID *uuid.UUID, req transport.SpecificationRequest) (*models.ProductSpecification, error) {
	if err := s.requireProduct(ctx, productID); err != nil {
		return nil, err
	}
	spec := &models.ProductSpecification{ProductID: productID}
	if specID != nil {
		existing, err := s.Repo.GetSpecification(ctx, productID, *specID)
		if err != nil {
			return nil, translate(err, "specification")
		}
		spec = existing
	}
	setString(&spec.Name, req.Name)
	setString(&spec.Value, req.Value)
	setString(&spec.SpecGroup, req.Group)
	setRaw(&spec.Position, req.Order)

	fields := map[string]string{}
	if spec.Name == "" {
		fields["name"] = "is required"
	}
	if spec.Value == "" {
		fields["value"] = "is required"
	}
	if err := fieldErrors(fields); err != nil {
		return nil, err
	}
	if err := s.Repo.SaveSpecification(ctx, spec); err != nil {
		return nil, err
	}
	return spec, nil
}

func (s *CatalogService) DeleteSpecification(ctx context.Context, productID, specID uuid.UUID) error {
	return translate(s.Repo.DeleteSpecification(ctx, productID, specID), "specification")
}

func (s *CatalogService) ListVariants(ctx context.Context, productID uuid.UUID, includeHidden bool) ([]models.ProductVariant, error) {
	if err := s.requireProduct(ctx, productID); err != nil {
		return nil, err
	}
	return s.Repo.ListVariants(ctx, productID, includeHidden)
}

func (s *CatalogService) SaveVariant(ctx context.Context, productID uuid.UUID, variantID *uuid.UUID, req transport.VariantRequest) (*models.ProductVariant, error) {
	if err := s.requireProduct(ctx, productID); err != nil {
		return nil, err
	}
	v := &models.ProductVariant{ProductID: productID, IsActive: true}
	if variantID != nil {
		existing, err := s.Repo.GetVariant(ctx, productID, *variantID)
		if err != nil {
			return nil, translate(err, "variant")
		}
		v = existing
	}
	setString(&v.SKU, req.SKU)
	setString(&v.VariantName, req.VariantName)
	setRaw(&v.PriceModifier, req.PriceModifier)
	setRaw(&v.Stock, req.Stock)
	setRaw(&v.WeightModifier, req.WeightModifier)
	setString(&v.Color, req.Color)
	setString(&v.Size, req.Size)
	setString(&v.Image, req.Image)
	setRaw(&v.IsActive, req.IsActive)

	fields := map[string]string{}
	if v.SKU == "" {
		fields["sku"] = "is required"
	}
	if strings.TrimSpace(v.VariantName) == "" {
		fields["variant_name"] = "is required"
	}
	nonNegative(fields, "stock", v.Stock)
	if err := fieldErrors(fields); err != nil {
		return nil, err
	}
	if err := s.Repo.SaveVariant(ctx, v); err != nil {
		return nil, translate(err, "variant sku")
	}
	return v, nil
}

func (s *CatalogService) DeleteVariant(ctx context.Context, productID, variantID uuid.UUID) error {
	return translate(s.Repo.DeleteVariant(ctx, productID, variantID), "variant")
}
