package transport

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Skotchmaster/storefront/internal/domain"
	"github.com/Skotchmaster/storefront/internal/models"
	"github.com/Skotchmaster/storefront/internal/util"
)

type ProductView struct {
	models.Product
	SalePrice      decimal.Decimal    `json:"sale_price"`
	DiscountAmount decimal.Decimal    `json:"discount_amount"`
	InStock        bool               `json:"in_stock"`
	LowStock       bool               `json:"low_stock"`
	StockStatus    domain.StockStatus `json:"stock_status"`
	Dimensions     string             `json:"dimensions"`
	Variants       []VariantView      `json:"variants,omitempty"`
}

func NewProductView(p *models.Product) ProductView {
	v := ProductView{
		Product:        *p,
		SalePrice:      domain.SalePrice(p.Price, p.DiscountPercentage),
		DiscountAmount: domain.DiscountAmount(p.Price, p.DiscountPercentage),
		InStock:        domain.InStock(p.Stock, p.ManageStock),
		LowStock:       domain.LowStock(p.Stock, p.LowStockThreshold, p.ManageStock),
		StockStatus:    domain.StockStatusOf(p.Stock, p.LowStockThreshold, p.ManageStock),
		Dimensions:     domain.Dimensions(p.Length, p.Width, p.Height, p.DimensionsUnit),
	}
	if len(p.Variants) > 0 {
		v.Variants = make([]VariantView, 0, len(p.Variants))
		for i := range p.Variants {
			v.Variants = append(v.Variants, NewVariantView(&p.Variants[i], p))
		}
	}
	return v
}

func NewProductViews(items []models.Product) []ProductView {
	out := make([]ProductView, 0, len(items))
	for i := range items {
		out = append(out, NewProductView(&items[i]))
	}
	return out
}

// ProductSummary is the compact product shape embedded in carts and lists.
type ProductSummary struct {
	ID          uuid.UUID          `json:"id"`
	Title       string             `json:"title"`
	Slug        string             `json:"slug"`
	Price       decimal.Decimal    `json:"price"`
	MainImage   string             `json:"main_image"`
	InStock     bool               `json:"in_stock"`
	StockStatus domain.StockStatus `json:"stock_status"`
}

func NewProductSummary(p *models.Product) ProductSummary {
	return ProductSummary{
		ID:          p.ID,
		Title:       p.Title,
		Slug:        p.Slug,
		Price:       p.Price,
		MainImage:   p.MainImage,
		InStock:     domain.InStock(p.Stock, p.ManageStock),
		StockStatus: domain.StockStatusOf(p.Stock, p.LowStockThreshold, p.ManageStock),
	}
}

type VariantView struct {
	models.ProductVariant
	FinalPrice  decimal.Decimal    `json:"final_price"`
	FinalWeight decimal.Decimal    `json:"final_weight"`
	StockStatus domain.StockStatus `json:"stock_status"`
}

func NewVariantView(v *models.ProductVariant, p *models.Product) VariantView {
	return VariantView{
		ProductVariant: *v,
		FinalPrice:     domain.VariantFinalPrice(p.Price, v.PriceModifier),
		FinalWeight:    domain.VariantFinalWeight(p.Weight, v.WeightModifier),
		StockStatus:    domain.VariantStockStatus(v.Stock),
	}
}

type BrandView struct {
	models.Brand
	ProductCount int64 `json:"product_count"`
}

type CartItemView struct {
	ID        uuid.UUID       `json:"id"`
	ProductID uuid.UUID       `json:"product_id"`
	Product   ProductSummary  `json:"product"`
	Quantity  int             `json:"quantity"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

func NewCartItemView(it *models.CartItem) CartItemView {
	return CartItemView{
		ID:        it.ID,
		ProductID: it.ProductID,
		Product:   NewProductSummary(&it.Product),
		Quantity:  it.Quantity,
		Subtotal:  it.Subtotal(),
	}
}

type CartView struct {
	ID        uuid.UUID       `json:"id"`
	Items     []CartItemView  `json:"items"`
	ItemCount int             `json:"item_count"`
	Total     decimal.Decimal `json:"total"`
	UpdatedAt time.Time       `json:"updated_at"`
}

func NewCartView(c *models.Cart) CartView {
	v := CartView{ID: c.ID, Items: make([]CartItemView, 0, len(c.Items)), Total: c.Total(), UpdatedAt: c.UpdatedAt}
	for i := range c.Items {
		v.Items = append(v.Items, NewCartItemView(&c.Items[i]))
		v.ItemCount += c.Items[i].Quantity
	}
	return v
}

type OrderItemView struct {
	models.OrderItem
	Subtotal decimal.Decimal `json:"subtotal"`
}

type OrderView struct {
	models.Order
	Items []OrderItemView `json:"items"`
}

func NewOrderView(o *models.Order) OrderView {
	v := OrderView{Order: *o, Items: make([]OrderItemView, 0, len(o.Items))}
	for i := range o.Items {
		v.Items = append(v.Items, OrderItemView{OrderItem: o.Items[i], Subtotal: o.Items[i].Subtotal()})
	}
	return v
}

type WishlistView struct {
	ID       uuid.UUID     `json:"id"`
	Products []ProductView `json:"products"`
}

func NewWishlistView(w *models.Wishlist) WishlistView {
	return WishlistView{ID: w.ID, Products: NewProductViews(w.Products)}
}

type RecentlyViewedView struct {
	Product  ProductSummary `json:"product"`
	ViewedAt time.Time      `json:"viewed_at"`
}

func NewRecentlyViewedViews(items []models.RecentlyViewed) []RecentlyViewedView {
	out := make([]RecentlyViewedView, 0, len(items))
	for i := range items {
		out = append(out, RecentlyViewedView{Product: NewProductSummary(&items[i].Product), ViewedAt: items[i].ViewedAt})
	}
	return out
}

type UserView struct {
	ID        uuid.UUID           `json:"id"`
	Username  string              `json:"username"`
	Email     string              `json:"email"`
	FirstName string              `json:"first_name"`
	LastName  string              `json:"last_name"`
	Role      string              `json:"role"`
	Profile   *models.UserProfile `json:"profile"`
}

func NewUserView(u *models.User) UserView {
	return UserView{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Role:      u.Role,
		Profile:   u.Profile,
	}
}

type MeView struct {
	UserView
	Addresses      []models.Address     `json:"addresses"`
	Cards          []models.Card        `json:"cards"`
	RecentlyViewed []RecentlyViewedView `json:"recently_viewed"`
}

type TokenResponse struct {
	Access           string    `json:"access"`
	Refresh          string    `json:"refresh"`
	AccessExpiresAt  time.Time `json:"access_expires_at"`
	RefreshExpiresAt time.Time `json:"refresh_expires_at"`
	IsAdmin          bool      `json:"is_admin"`
}

type ListResponse[T any] struct {
	Data []T       `json:"data"`
	Meta util.Meta `json:"meta"`
}
