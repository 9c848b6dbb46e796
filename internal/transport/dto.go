package transport

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type RegisterRequest struct {
	Username  string `json:"username"`
	Password  string `json:"password"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Phone     string `json:"phone"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type RefreshRequest struct {
	Refresh string `json:"refresh"`
}

type ProfileRequest struct {
	Email     *string `json:"email"`
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	Phone     *string `json:"phone"`
	Address   *string `json:"address"`
}

type CategoryRequest struct {
	Name        *string    `json:"name"`
	Slug        *string    `json:"slug"`
	Description *string    `json:"description"`
	ParentID    *uuid.UUID `json:"parent_id"`
	Image       *string    `json:"image"`
	IsActive    *bool      `json:"is_active"`
	IsFeatured  *bool      `json:"is_featured"`
}

type BrandRequest struct {
	Name        *string `json:"name"`
	Slug        *string `json:"slug"`
	Description *string `json:"description"`
	Logo        *string `json:"logo"`
	Website     *string `json:"website"`
	IsActive    *bool   `json:"is_active"`
}

// ProductRequest serves both create and partial update; nil fields are left alone.
type ProductRequest struct {
	Title       *string    `json:"title"`
	Slug        *string    `json:"slug"`
	SKU         *string    `json:"sku"`
	UPC         *string    `json:"upc"`
	ModelNumber *string    `json:"model_number"`
	BrandID     *uuid.UUID `json:"brand_id"`
	CategoryID  *uuid.UUID `json:"category_id"`

	Description      *string `json:"description"`
	ShortDescription *string `json:"short_description"`

	Price              *decimal.Decimal `json:"price"`
	CompareAtPrice     *decimal.Decimal `json:"compare_at_price"`
	CostPrice          *decimal.Decimal `json:"cost_price"`
	DiscountPercentage *int             `json:"discount_percentage"`

	Stock             *int  `json:"stock"`
	LowStockThreshold *int  `json:"low_stock_threshold"`
	ManageStock       *bool `json:"manage_stock"`
	AllowBackorders   *bool `json:"allow_backorders"`
	BackorderLimit    *int  `json:"backorder_limit"`

	Weight         *decimal.Decimal `json:"weight"`
	WeightUnit     *string          `json:"weight_unit"`
	Length         *decimal.Decimal `json:"length"`
	Width          *decimal.Decimal `json:"width"`
	Height         *decimal.Decimal `json:"height"`
	DimensionsUnit *string          `json:"dimensions_unit"`

	Color     *string `json:"color"`
	Material  *string `json:"material"`
	Size      *string `json:"size"`
	Style     *string `json:"style"`
	MainImage *string `json:"main_image"`

	IsActive     *bool `json:"is_active"`
	IsTrending   *bool `json:"is_trending"`
	IsFeatured   *bool `json:"is_featured"`
	IsBestseller *bool `json:"is_bestseller"`
	IsNewArrival *bool `json:"is_new_arrival"`

	WarrantyPeriod  *string `json:"warranty_period"`
	WarrantyType    *string `json:"warranty_type"`
	CountryOfOrigin *string `json:"country_of_origin"`
	HSCode          *string `json:"hs_code"`

	MetaTitle       *string `json:"meta_title"`
	MetaDescription *string `json:"meta_description"`
	SearchKeywords  *string `json:"search_keywords"`

	PublishedAt *time.Time `json:"published_at"`
}

type ImageRequest struct {
	Image     *string `json:"image"`
	AltText   *string `json:"alt_text"`
	IsPrimary *bool   `json:"is_primary"`
	Order     *int    `json:"order"`
}

type SpecificationRequest struct {
	Name  *string `json:"name"`
	Value *string `json:"value"`
	Group *string `json:"group"`
	Order *int    `json:"order"`
}

type VariantRequest struct {
	SKU            *string          `json:"sku"`
	VariantName    *string          `json:"variant_name"`
	PriceModifier  *decimal.Decimal `json:"price_modifier"`
	Stock          *int             `json:"stock"`
	WeightModifier *decimal.Decimal `json:"weight_modifier"`
	Color          *string          `json:"color"`
	Size           *string          `json:"size"`
	Image          *string          `json:"image"`
	IsActive       *bool            `json:"is_active"`
}

type BannerRequest struct {
	Title        *string `json:"title"`
	Subtitle     *string `json:"subtitle"`
	Image        *string `json:"image"`
	URL          *string `json:"url"`
	IsActive     *bool   `json:"is_active"`
	DisplayOrder *int    `json:"display_order"`
}

type AddCartItemRequest struct {
	ProductID uuid.UUID `json:"product_id"`
	Quantity  *int      `json:"quantity"`
}

type UpdateCartItemRequest struct {
	Quantity int `json:"quantity"`
}

type CheckoutRequest struct {
	ShippingAddress string     `json:"shipping_address"`
	AddressID       *uuid.UUID `json:"address_id"`
}

type UpdateOrderStatusRequest struct {
	Status string `json:"status"`
}

type WishlistProductRequest struct {
	ProductID uuid.UUID `json:"product_id"`
}

type ReplaceWishlistRequest struct {
	ProductIDs []uuid.UUID `json:"product_ids"`
}

type RecordViewRequest struct {
	ProductID uuid.UUID `json:"product_id"`
}

type AddressRequest struct {
	Label      *string `json:"label"`
	Line1      *string `json:"line1"`
	Line2      *string `json:"line2"`
	City       *string `json:"city"`
	State      *string `json:"state"`
	PostalCode *string `json:"postal_code"`
	Country    *string `json:"country"`
	Phone      *string `json:"phone"`
	IsDefault  *bool   `json:"is_default"`
}

// CardRequest stores a provider token; CardNumber exists only to be rejected.
type CardRequest struct {
	CardholderName *string `json:"cardholder_name"`
	Brand          *string `json:"brand"`
	Last4          *string `json:"last4"`
	ExpMonth       *int    `json:"exp_month"`
	ExpYear        *int    `json:"exp_year"`
	Token          *string `json:"token"`
	IsDefault      *bool   `json:"is_default"`
	CardNumber     *string `json:"card_number"`
}
