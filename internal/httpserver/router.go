package httpserver

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	middleware "github.com/Skotchmaster/storefront/pkg/middleware/auth"
	"github.com/Skotchmaster/storefront/pkg/logging"
)

type Deps struct {
	Auth     *AuthHTTP
	Catalog  *CatalogHTTP
	Cart     *CartHTTP
	Orders   *OrderHTTP
	Wishlist *WishlistHTTP
	Account  *AccountHTTP

	JWTSecret []byte
	// Ready reports whether backing stores are reachable.
	Ready func(ctx context.Context) error
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", func(c echo.Context) error {
		if d.Ready != nil {
			if err := d.Ready(c.Request().Context()); err != nil {
				logging.FromContext(c.Request().Context()).Warn("readiness_failed", "status", http.StatusServiceUnavailable, "error", err)
				return c.NoContent(http.StatusServiceUnavailable)
			}
		}
		return c.NoContent(http.StatusOK)
	})

	authMW := middleware.NewJWTAuth(d.JWTSecret)
	api := e.Group("/api/v1")

	auth := api.Group("/auth")
	auth.POST("/register", d.Auth.Register)
	auth.POST("/login", d.Auth.Login)
	auth.POST("/refresh", d.Auth.Refresh)
	auth.POST("/logout", d.Auth.Logout)

	public := api.Group("", authMW.OptionalAuth)
	admin := api.Group("", authMW.RequireAdmin)
	user := api.Group("", authMW.RequireAuth)

	public.GET("/products", d.Catalog.ListProducts)
	public.GET("/products/search", d.Catalog.SearchProducts)
	public.GET("/products/:id", d.Catalog.GetProduct)
	public.GET("/products/:id/images", d.Catalog.ListImages)
	public.GET("/products/:id/specifications", d.Catalog.ListSpecifications)
	public.GET("/products/:id/variants", d.Catalog.ListVariants)
	admin.POST("/products", d.Catalog.CreateProduct)
	admin.PATCH("/products/:id", d.Catalog.UpdateProduct)
	admin.DELETE("/products/:id", d.Catalog.DeleteProduct)
	admin.POST("/products/:id/images", d.Catalog.SaveImage)
	admin.PATCH("/products/:id/images/:imageID", d.Catalog.SaveImage)
	admin.DELETE("/products/:id/images/:imageID", d.Catalog.DeleteImage)
	admin.POST("/products/:id/specifications", d.Catalog.SaveSpecification)
	admin.PATCH("/products/:id/specifications/:specID", d.Catalog.SaveSpecification)
	admin.DELETE("/products/:id/specifications/:specID", d.Catalog.DeleteSpecification)
	admin.POST("/products/:id/variants", d.Catalog.SaveVariant)
	admin.PATCH("/products/:id/variants/:variantID", d.Catalog.SaveVariant)
	admin.DELETE("/products/:id/variants/:variantID", d.Catalog.DeleteVariant)
	admin.POST("/admin/search/reindex", d.Catalog.Reindex)

	public.GET("/categories", d.Catalog.ListCategories)
	public.GET("/categories/:id", d.Catalog.GetCategory)
	public.GET("/categories/:id/products", d.Catalog.CategoryProducts)
	admin.POST("/categories", d.Catalog.CreateCategory)
	admin.PATCH("/categories/:id", d.Catalog.UpdateCategory)
	admin.DELETE("/categories/:id", d.Catalog.DeleteCategory)

	public.GET("/brands", d.Catalog.ListBrands)
	public.GET("/brands/:id", d.Catalog.GetBrand)
	public.GET("/brands/:id/products", d.Catalog.BrandProducts)
	admin.POST("/brands", d.Catalog.CreateBrand)
	admin.PATCH("/brands/:id", d.Catalog.UpdateBrand)
	admin.DELETE("/brands/:id", d.Catalog.DeleteBrand)

	public.GET("/banners", d.Catalog.ListBanners)
	public.GET("/banners/:id", d.Catalog.GetBanner)
	admin.POST("/banners", d.Catalog.CreateBanner)
	admin.PATCH("/banners/:id", d.Catalog.UpdateBanner)
	admin.DELETE("/banners/:id", d.Catalog.DeleteBanner)

	user.GET("/cart", d.Cart.GetCart)
	user.DELETE("/cart", d.Cart.Clear)
	user.POST("/cart/items", d.Cart.AddItem)
	user.PATCH("/cart/items/:itemID", d.Cart.UpdateItem)
	user.DELETE("/cart/items/:itemID", d.Cart.RemoveItem)

	user.GET("/orders", d.Orders.ListOrders)
	user.POST("/orders", d.Orders.Checkout)
	user.GET("/orders/:id", d.Orders.GetOrder)
	admin.PATCH("/orders/:id/status", d.Orders.UpdateStatus)

	user.GET("/wishlist", d.Wishlist.Get)
	user.PUT("/wishlist", d.Wishlist.Replace)
	user.POST("/wishlist/products", d.Wishlist.Add)
	user.DELETE("/wishlist/products/:productID", d.Wishlist.Remove)

	user.GET("/me", d.Account.Me)
	user.PATCH("/me", d.Account.UpdateProfile)
	user.GET("/me/addresses", d.Account.ListAddresses)
	user.POST("/me/addresses", d.Account.SaveAddress)
	user.GET("/me/addresses/:id", d.Account.GetAddress)
	user.PATCH("/me/addresses/:id", d.Account.SaveAddress)
	user.DELETE("/me/addresses/:id", d.Account.DeleteAddress)
	user.GET("/me/cards", d.Account.ListCards)
	user.POST("/me/cards", d.Account.SaveCard)
	user.PATCH("/me/cards/:id", d.Account.SaveCard)
	user.DELETE("/me/cards/:id", d.Account.DeleteCard)
	user.GET("/me/recently-viewed", d.Account.RecentlyViewed)
	user.POST("/me/recently-viewed", d.Account.RecordView)
}
