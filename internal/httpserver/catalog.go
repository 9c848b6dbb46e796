package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"github.com/Skotchmaster/storefront/internal/repo"
	"github.com/Skotchmaster/storefront/internal/service"
	"github.com/Skotchmaster/storefront/internal/transport"
	"github.com/Skotchmaster/storefront/internal/util"
	"github.com/Skotchmaster/storefront/pkg/logging"
)

type CatalogHTTP struct {
	Svc *service.CatalogService
}

func queryDecimal(c echo.Context, name string) (*decimal.Decimal, error) {
	v := c.QueryParam(name)
	if v == "" {
		return nil, nil
	}
	d, err := decimal.NewFromString(v)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func productFilter(c echo.Context) (repo.ProductFilter, string, error) {
	f := repo.ProductFilter{
		Query:         c.QueryParam("q"),
		Ordering:      c.QueryParam("ordering"),
		IncludeHidden: includeHidden(c),
	}
	var err error
	if f.CategoryID, err = queryUUID(c, "category"); err != nil {
		return f, "category", err
	}
	if f.BrandID, err = queryUUID(c, "brand"); err != nil {
		return f, "brand", err
	}
	if f.MinPrice, err = queryDecimal(c, "min_price"); err != nil {
		return f, "min_price", err
	}
	if f.MaxPrice, err = queryDecimal(c, "max_price"); err != nil {
		return f, "max_price", err
	}
	bools := []struct {
		name string
		dst  **bool
	}{
		{"in_stock", &f.InStock},
		{"is_featured", &f.IsFeatured},
		{"is_trending", &f.IsTrending},
		{"is_bestseller", &f.IsBestseller},
		{"is_new_arrival", &f.IsNewArrival},
	}
	for _, b := range bools {
		if *b.dst, err = queryBool(c, b.name); err != nil {
			return f, b.name, err
		}
	}
	return f, "", nil
}

func (h *CatalogHTTP) listWith(c echo.Context, event string, f repo.ProductFilter) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "catalog.list_products")

	page, offset, limit := pageParams(c)
	total, items, err := h.Svc.ListProducts(ctx, f, offset, limit)
	if err != nil {
		return fail(c, l, event, err)
	}
	return c.JSON(http.StatusOK, transport.ListResponse[transport.ProductView]{
		Data: transport.NewProductViews(items),
		Meta: util.NewMeta(page, offset, limit, total),
	})
}

func (h *CatalogHTTP) ListProducts(c echo.Context) error {
	l := logging.FromContext(c.Request().Context()).With("handler", "catalog.list_products")

	f, param, err := productFilter(c)
	if err != nil {
		return badRequest(c, l, "list_products_error", "invalid query parameter "+param, err)
	}
	return h.listWith(c, "list_products_error", f)
}

func (h *CatalogHTTP) SearchProducts(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "catalog.search_products")

	page, offset, limit := pageParams(c)
	total, items, err := h.Svc.SearchProducts(ctx, c.QueryParam("q"), offset, limit)
	if err != nil {
		return fail(c, l, "search_products_error", err)
	}
	return c.JSON(http.StatusOK, transport.ListResponse[transport.ProductView]{
		Data: transport.NewProductViews(items),
		Meta: util.NewMeta(page, offset, limit, total),
	})
}

func (h *CatalogHTTP) GetProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "catalog.get_product")

	id, err := pathUUID(c, "id")
	if err != nil {
		return badRequest(c, l, "get_product_error", "invalid product id", err)
	}

	p, err := h.Svc.GetProduct(ctx, id)
	if err != nil {
		return fail(c, l, "get_product_error", err)
	}
	if !p.IsActive && !isAdmin(c) {
		return fail(c, l, "get_product_error", service.ErrNotFound)
	}
	return c.JSON(http.StatusOK, transport.NewProductView(p))
}

func (h *CatalogHTTP) CreateProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "catalog.create_product")

	var req transport.ProductRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, l, "create_product_error", "invalid body", err)
	}

	p, err := h.Svc.CreateProduct(ctx, req)
	if err != nil {
		return fail(c, l, "create_product_error", err)
	}

	l.Info("product_created", "product_id", p.ID)
	return c.JSON(http.StatusCreated, transport.NewProductView(p))
}

func (h *CatalogHTTP) UpdateProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "catalog.update_product")

	id, err := pathUUID(c, "id")
	if err != nil {
		return badRequest(c, l, "update_product_error", "invalid product id", err)
	}
	var req transport.ProductRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, l, "update_product_error", "invalid body", err)
	}

	p, err := h.Svc.UpdateProduct(ctx, id, req)
	if err != nil {
		return fail(c, l, "update_product_error", err)
	}

	l.Info("product_updated", "product_id", p.ID)
	return c.JSON(http.StatusOK, transport.NewProductView(p))
}

func (h *CatalogHTTP) DeleteProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "catalog.delete_product")

	id, err := pathUUID(c, "id")
	if err != nil {
		return badRequest(c, l, "delete_product_error", "invalid product id", err)
	}
	if err := h.Svc.DeleteProduct(ctx, id); err != nil {
		return fail(c, l, "delete_product_error", err)
	}

	l.Info("product_deleted", "product_id", id)
	return c.NoContent(http.StatusNoContent)
}

func (h *CatalogHTTP) Reindex(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "catalog.reindex")

	n, err := h.Svc.ReindexProducts(ctx)
	if err != nil {
		return fail(c, l, "reindex_error", err)
	}

	l.Info("reindex_done", "indexed", n)
	return c.JSON(http.StatusOK, echo.Map{"indexed": n})
}
