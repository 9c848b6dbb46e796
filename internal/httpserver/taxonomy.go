package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/storefront/internal/repo"
	"github.com/Skotchmaster/storefront/internal/service"
	"github.com/Skotchmaster/storefront/internal/transport"
	"github.com/Skotchmaster/storefront/pkg/logging"
)

func includeHidden(c echo.Context) bool {
	return isAdmin(c) && c.QueryParam("include_hidden") == "true"
}

func (h *CatalogHTTP) ListCategories(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "catalog.list_categories")

	items, err := h.Svc.ListCategories(ctx, includeHidden(c))
	if err != nil {
		return fail(c, l, "list_categories_error", err)
	}
	return c.JSON(http.StatusOK, items)
}

func (h *CatalogHTTP) GetCategory(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "catalog.get_category")

	id, err := pathUUID(c, "id")
	if err != nil {
		return badRequest(c, l, "get_category_error", "invalid category id", err)
	}
	cat, err := h.Svc.GetCategory(ctx, id)
	if err != nil {
		return fail(c, l, "get_category_error", err)
	}
	return c.JSON(http.StatusOK, cat)
}

func (h *CatalogHTTP) CategoryProducts(c echo.Context) error {
	l := logging.FromContext(c.Request().Context()).With("handler", "catalog.category_products")

	id, err := pathUUID(c, "id")
	if err != nil {
		return badRequest(c, l, "category_products_error", "invalid category id", err)
	}
	if _, err := h.Svc.GetCategory(c.Request().Context(), id); err != nil {
		return fail(c, l, "category_products_error", err)
	}
	return h.listWith(c, "category_products_error", repo.ProductFilter{CategoryID: &id, Ordering: c.QueryParam("ordering")})
}

func (h *CatalogHTTP) CreateCategory(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "catalog.create_category")

	var req transport.CategoryRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, l, "create_category_error", "invalid body", err)
	}
	cat, err := h.Svc.CreateCategory(ctx, req)
	if err != nil {
		return fail(c, l, "create_category_error", err)
	}
	return c.JSON(http.StatusCreated, cat)
}

func (h *CatalogHTTP) UpdateCategory(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "catalog.update_category")

	id, err := pathUUID(c, "id")
	if err != nil {
		return badRequest(c, l, "update_category_error", "invalid category id", err)
	}
	var req transport.CategoryRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, l, "update_category_error", "invalid body", err)
	}
	cat, err := h.Svc.UpdateCategory(ctx, id, req)
	if err != nil {
		return fail(c, l, "update_category_error", err)
	}
	return c.JSON(http.StatusOK, cat)
}

func (h *CatalogHTTP) DeleteCategory(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "catalog.delete_category")

	id, err := pathUUID(c, "id")
	if err != nil {
		return badRequest(c, l, "delete_category_error", "invalid category id", err)
	}
	if err := h.Svc.DeleteCategory(ctx, id); err != nil {
		return fail(c, l, "delete_category_error", err)
	}
	return c.NoContent(http.StatusNoContent)
}

func brandView(b service.BrandWithCount) transport.BrandView {
	return transport.BrandView{Brand: b.Brand, ProductCount: b.ProductCount}
}

func (h *CatalogHTTP) ListBrands(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "catalog.list_brands")

	items, err := h.Svc.ListBrands(ctx, includeHidden(c))
	if err != nil {
		return fail(c, l, "list_brands_error", err)
	}
	out := make([]transport.BrandView, 0, len(items))
	for _, b := range items {
		out = append(out, brandView(b))
	}
	return c.JSON(http.StatusOK, out)
}

func (h *CatalogHTTP) GetBrand(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "catalog.get_brand")

	id, err := pathUUID(c, "id")
	if err != nil {
		return badRequest(c, l, "get_brand_error", "invalid brand id", err)
	}
	b, err := h.Svc.GetBrand(ctx, id)
	if err != nil {
		return fail(c, l, "get_brand_error", err)
	}
	return c.JSON(http.StatusOK, brandView(*b))
}

func (h *CatalogHTTP) BrandProducts(c echo.Context) error {
	l := logging.FromContext(c.Request().Context()).With("handler", "catalog.brand_products")

	id, err := pathUUID(c, "id")
	if err != nil {
		return badRequest(c, l, "brand_products_error", "invalid brand id", err)
	}
	if _, err := h.Svc.GetBrand(c.Request().Context(), id); err != nil {
		return fail(c, l, "brand_products_error", err)
	}
	return h.listWith(c, "brand_products_error", repo.ProductFilter{BrandID: &id, Ordering: c.QueryParam("ordering")})
}

func (h *CatalogHTTP) CreateBrand(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "catalog.create_brand")

	var req transport.BrandRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, l, "create_brand_error", "invalid body", err)
	}
	b, err := h.Svc.CreateBrand(ctx, req)
	if err != nil {
		return fail(c, l, "create_brand_error", err)
	}
	return c.JSON(http.StatusCreated, transport.BrandView{Brand: *b})
}

func (h *CatalogHTTP) UpdateBrand(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "catalog.update_brand")

	id, err := pathUUID(c, "id")
	if err != nil {
		return badRequest(c, l, "update_brand_error", "invalid brand id", err)
	}
	var req transport.BrandRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, l, "update_brand_error", "invalid body", err)
	}
	if _, err := h.Svc.UpdateBrand(ctx, id, req); err != nil {
		return fail(c, l, "update_brand_error", err)
	}
	b, err := h.Svc.GetBrand(ctx, id)
	if err != nil {
		return fail(c, l, "update_brand_error", err)
	}
	return c.JSON(http.StatusOK, brandView(*b))
}

func (h *CatalogHTTP) DeleteBrand(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "catalog.delete_brand")

	id, err := pathUUID(c, "id")
	if err != nil {
		return badRequest(c, l, "delete_brand_error", "invalid brand id", err)
	}
	if err := h.Svc.DeleteBrand(ctx, id); err != nil {
		return fail(c, l, "delete_brand_error", err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *CatalogHTTP) ListBanners(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "catalog.list_banners")

	items, err := h.Svc.ListBanners(ctx, includeHidden(c))
	if err != nil {
		return fail(c, l, "list_banners_error", err)
	}
	return c.JSON(http.StatusOK, items)
}

func (h *CatalogHTTP) GetBanner(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "catalog.get_banner")

	id, err := pathUUID(c, "id")
	if err != nil {
		return badRequest(c, l, "get_banner_error", "invalid banner id", err)
	}
	b, err := h.Svc.GetBanner(ctx, id)
	if err != nil {
		return fail(c, l, "get_banner_error", err)
	}
	if !b.IsActive && !isAdmin(c) {
		return fail(c, l, "get_banner_error", service.ErrNotFound)
	}
	return c.JSON(http.StatusOK, b)
}

func (h *CatalogHTTP) CreateBanner(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "catalog.create_banner")

	var req transport.BannerRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, l, "create_banner_error", "invalid body", err)
	}
	b, err := h.Svc.CreateBanner(ctx, req)
	if err != nil {
		return fail(c, l, "create_banner_error", err)
	}
	return c.JSON(http.StatusCreated, b)
}

func (h *CatalogHTTP) UpdateBanner(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "catalog.update_banner")

	id, err := pathUUID(c, "id")
	if err != nil {
		return badRequest(c, l, "update_banner_error", "invalid banner id", err)
	}
	var req transport.BannerRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, l, "update_banner_error", "invalid body", err)
	}
	b, err := h.Svc.UpdateBanner(ctx, id, req)
	if err != nil {
		return fail(c, l, "update_banner_error", err)
	}
	return c.JSON(http.StatusOK, b)
}

func (h *CatalogHTTP) DeleteBanner(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "catalog.delete_banner")

	id, err := pathUUID(c, "id")
	if err != nil {
		return badRequest(c, l, "delete_banner_error", "invalid banner id", err)
	}
	if err := h.Svc.DeleteBanner(ctx, id); err != nil {
		return fail(c, l, "delete_banner_error", err)
	}
	return c.NoContent(http.StatusNoContent)
}
