package httpserver

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/storefront/internal/transport"
	"github.com/Skotchmaster/storefront/pkg/logging"
)

// childIDs parses :id and, when present, the child id parameter.
func childIDs(c echo.Context, child string) (productID uuid.UUID, childID *uuid.UUID, err error) {
	if productID, err = pathUUID(c, "id"); err != nil {
		return uuid.Nil, nil, err
	}
	if c.Param(child) == "" {
		return productID, nil, nil
	}
	id, err := pathUUID(c, child)
	if err != nil {
		return uuid.Nil, nil, err
	}
	return productID, &id, nil
}

func created(c echo.Context, isNew bool, v any) error {
	if isNew {
		return c.JSON(http.StatusCreated, v)
	}
	return c.JSON(http.StatusOK, v)
}

func (h *CatalogHTTP) ListImages(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "catalog.list_images")

	productID, _, err := childIDs(c, "")
	if err != nil {
		return badRequest(c, l, "list_images_error", "invalid product id", err)
	}
	items, err := h.Svc.ListImages(ctx, productID)
	if err != nil {
		return fail(c, l, "list_images_error", err)
	}
	return c.JSON(http.StatusOK, items)
}

// SaveImage serves POST /products/:id/images and PATCH /products/:id/images/:imageID.
func (h *CatalogHTTP) SaveImage(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "catalog.save_image")

	productID, imageID, err := childIDs(c, "imageID")
	if err != nil {
		return badRequest(c, l, "save_image_error", "invalid id", err)
	}
	var req transport.ImageRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, l, "save_image_error", "invalid body", err)
	}
	img, err := h.Svc.SaveImage(ctx, productID, imageID, req)
	if err != nil {
		return fail(c, l, "save_image_error", err)
	}
	return created(c, imageID == nil, img)
}

func (h *CatalogHTTP) DeleteImage(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "catalog.delete_image")

	productID, imageID, err := childIDs(c, "imageID")
	if err != nil || imageID == nil {
		return badRequest(c, l, "delete_image_error", "invalid id", err)
	}
	if err := h.Svc.DeleteImage(ctx, productID, *imageID); err != nil {
		return fail(c, l, "delete_image_error", err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *CatalogHTTP) ListSpecifications(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "catalog.list_specifications")

	productID, _, err := childIDs(c, "")
	if err != nil {
		return badRequest(c, l, "list_specifications_error", "invalid product id", err)
	}
	items, err := h.Svc.ListSpecifications(ctx, productID)
	if err != nil {
		return fail(c, l, "list_specifications_error", err)
	}
	return c.JSON(http.StatusOK, items)
}

func (h *CatalogHTTP) SaveSpecification(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "catalog.save_specification")

	productID, specID, err := childIDs(c, "specID")
	if err != nil {
		return badRequest(c, l, "save_specification_error", "invalid id", err)
	}
	var req transport.SpecificationRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, l, "save_specification_error", "invalid body", err)
	}
	spec, err := h.Svc.SaveSpecification(ctx, productID, specID, req)
	if err != nil {
		return fail(c, l, "save_specification_error", err)
	}
	return created(c, specID == nil, spec)
}

func (h *CatalogHTTP) DeleteSpecification(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "catalog.delete_specification")

	productID, specID, err := childIDs(c, "specID")
	if err != nil || specID == nil {
		return badRequest(c, l, "delete_specification_error", "invalid id", err)
	}
	if err := h.Svc.DeleteSpecification(ctx, productID, *specID); err != nil {
		return fail(c, l, "delete_specification_error", err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *CatalogHTTP) ListVariants(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "catalog.list_variants")

	productID, _, err := childIDs(c, "")
	if err != nil {
		return badRequest(c, l, "list_variants_error", "invalid product id", err)
	}
	p, err := h.Svc.GetProduct(ctx, productID)
	if err != nil {
		return fail(c, l, "list_variants_error", err)
	}
	items, err := h.Svc.ListVariants(ctx, productID, includeHidden(c))
	if err != nil {
		return fail(c, l, "list_variants_error", err)
	}
	out := make([]transport.VariantView, 0, len(items))
	for i := range items {
		out = append(out, transport.NewVariantView(&items[i], p))
	}
	return c.JSON(http.StatusOK, out)
}

func (h *CatalogHTTP) SaveVariant(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "catalog.save_variant")

	productID, variantID, err := childIDs(c, "variantID")
	if err != nil {
		return badRequest(c, l, "save_variant_error", "invalid id", err)
	}
	var req transport.VariantRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, l, "save_variant_error", "invalid body", err)
	}
	v, err := h.Svc.SaveVariant(ctx, productID, variantID, req)
	if err != nil {
		return fail(c, l, "save_variant_error", err)
	}
	p, err := h.Svc.GetProduct(ctx, productID)
	if err != nil {
		return fail(c, l, "save_variant_error", err)
	}
	return created(c, variantID == nil, transport.NewVariantView(v, p))
}

func (h *CatalogHTTP) DeleteVariant(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "catalog.delete_variant")

	productID, variantID, err := childIDs(c, "variantID")
	if err != nil || variantID == nil {
		return badRequest(c, l, "delete_variant_error", "invalid id", err)
	}
	if err := h.Svc.DeleteVariant(ctx, productID, *variantID); err != nil {
		return fail(c, l, "delete_variant_error", err)
	}
	return c.NoContent(http.StatusNoContent)
}
