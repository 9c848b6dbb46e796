package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/Skotchmaster/storefront/internal/domain"
)

type Category struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey"         json:"id"`
	Name        string     `gorm:"size:255;not null"            json:"name"`
	Slug        string     `gorm:"size:255;uniqueIndex;not null" json:"slug"`
	Description string     `                                    json:"description"`
	ParentID    *uuid.UUID `gorm:"type:uuid;index"              json:"parent_id"`
	Image       string     `gorm:"size:500"                     json:"image"`
	IsActive    bool       `gorm:"not null"                     json:"is_active"`
	IsFeatured  bool       `gorm:"not null"                     json:"is_featured"`
	CreatedAt   time.Time  `                                    json:"created_at"`
}

func (c *Category) BeforeSave(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	if c.Slug == "" {
		c.Slug = domain.Slugify(c.Name)
	}
	return nil
}

type Brand struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"         json:"id"`
	Name        string    `gorm:"size:255;not null"            json:"name"`
	Slug        string    `gorm:"size:255;uniqueIndex;not null" json:"slug"`
	Description string    `                                    json:"description"`
	Logo        string    `gorm:"size:500"                     json:"logo"`
	Website     string    `gorm:"size:500"                     json:"website"`
	IsActive    bool      `gorm:"not null"                     json:"is_active"`
	CreatedAt   time.Time `                                    json:"created_at"`
}

func (b *Brand) BeforeSave(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	if b.Slug == "" {
		b.Slug = domain.Slugify(b.Name)
	}
	return nil
}

type Product struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey"          json:"id"`
	Title       string     `gorm:"size:255;not null"             json:"title"`
	Slug        string     `gorm:"size:255;uniqueIndex;not null" json:"slug"`
	SKU         string     `gorm:"column:sku;size:100;uniqueIndex;not null" json:"sku"`
	UPC         string     `gorm:"column:upc;size:20"            json:"upc"`
	ModelNumber string     `gorm:"size:100"                      json:"model_number"`
	BrandID     *uuid.UUID `gorm:"type:uuid;index"               json:"brand_id"`
	Brand       *Brand     `                                     json:"brand,omitempty"`
	CategoryID  *uuid.UUID `gorm:"type:uuid;index"               json:"category_id"`
	Category    *Category  `                                     json:"category,omitempty"`

	Description      string `json:"description"`
	ShortDescription string `gorm:"size:500" json:"short_description"`

	Price              decimal.Decimal     `gorm:"type:numeric(10,2);not null;index" json:"price"`
	CompareAtPrice     decimal.NullDecimal `gorm:"type:numeric(10,2)"                json:"compare_at_price"`
	CostPrice          decimal.NullDecimal `gorm:"type:numeric(10,2)"                json:"cost_price"`
	DiscountPercentage int                 `gorm:"not null;default:0"                json:"discount_percentage"`

	Stock             int  `gorm:"not null;default:0" json:"stock"`
	LowStockThreshold int  `gorm:"not null"           json:"low_stock_threshold"`
	ManageStock       bool `gorm:"not null"           json:"manage_stock"`
	AllowBackorders   bool `gorm:"not null"           json:"allow_backorders"`
	BackorderLimit    int  `gorm:"not null;default:0" json:"backorder_limit"`

	Weight         decimal.NullDecimal `gorm:"type:numeric(8,3)"         json:"weight"`
	WeightUnit     string              `gorm:"size:10;default:kg"        json:"weight_unit"`
	Length         decimal.NullDecimal `gorm:"type:numeric(8,2)"         json:"length"`
	Width          decimal.NullDecimal `gorm:"type:numeric(8,2)"         json:"width"`
	Height         decimal.NullDecimal `gorm:"type:numeric(8,2)"         json:"height"`
	DimensionsUnit string              `gorm:"size:10;default:cm"        json:"dimensions_unit"`

	Color     string `gorm:"size:100" json:"color"`
	Material  string `gorm:"size:255" json:"material"`
	Size      string `gorm:"size:100" json:"size"`
	Style     string `gorm:"size:100" json:"style"`
	MainImage string `gorm:"size:500" json:"main_image"`

	IsActive     bool `gorm:"not null;index" json:"is_active"`
	IsTrending   bool `gorm:"not null"       json:"is_trending"`
	IsFeatured   bool `gorm:"not null"       json:"is_featured"`
	IsBestseller bool `gorm:"not null"       json:"is_bestseller"`
	IsNewArrival bool `gorm:"not null"       json:"is_new_arrival"`

	WarrantyPeriod  string `gorm:"size:100" json:"warranty_period"`
	WarrantyType    string `gorm:"size:100" json:"warranty_type"`
	CountryOfOrigin string `gorm:"size:100" json:"country_of_origin"`
	HSCode          string `gorm:"column:hs_code;size:20" json:"hs_code"`

	MetaTitle       string `gorm:"size:255" json:"meta_title"`
	MetaDescription string `json:"meta_description"`
	SearchKeywords  string `json:"search_keywords"`

	Images         []ProductImage         `gorm:"foreignKey:ProductID" json:"images,omitempty"`
	Specifications []ProductSpecification `gorm:"foreignKey:ProductID" json:"specifications,omitempty"`
	Variants       []ProductVariant       `gorm:"foreignKey:ProductID" json:"variants,omitempty"`

	CreatedAt   time.Time  `gorm:"index" json:"created_at"`
	UpdatedAt   time.Time  `             json:"updated_at"`
	PublishedAt *time.Time `             json:"published_at"`
}

// BeforeSave fills the derived identity fields and normalizes pricing on
// every create and full save.
func (p *Product) BeforeSave(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	if p.Slug == "" {
		p.Slug = domain.Slugify(p.Title)
	}
	if p.SKU == "" {
		p.SKU = domain.DefaultSKU(p.Title, p.ID)
	}
	p.Price, p.CompareAtPrice = domain.NormalizePricing(p.Price, p.CompareAtPrice, p.DiscountPercentage)
	return nil
}

type ProductImage struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"     json:"id"`
	ProductID uuid.UUID `gorm:"type:uuid;index;not null" json:"product_id"`
	Image     string    `gorm:"size:500;not null"        json:"image"`
	AltText   string    `gorm:"size:255"                 json:"alt_text"`
	IsPrimary bool      `gorm:"not null"                 json:"is_primary"`
	Position  int       `gorm:"not null;default:0"       json:"order"`
}

func (i *ProductImage) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

type ProductSpecification struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"     json:"id"`
	ProductID uuid.UUID `gorm:"type:uuid;index;not null" json:"product_id"`
	Name      string    `gorm:"size:255;not null"        json:"name"`
	Value     string    `gorm:"size:500;not null"        json:"value"`
	SpecGroup string    `gorm:"size:100"                 json:"group"`
	Position  int       `gorm:"not null;default:0"       json:"order"`
}

func (s *ProductSpecification) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

type ProductVariant struct {
	ID             uuid.UUID       `gorm:"type:uuid;primaryKey"          json:"id"`
	ProductID      uuid.UUID       `gorm:"type:uuid;index;not null"      json:"product_id"`
	SKU            string          `gorm:"column:sku;size:100;uniqueIndex;not null" json:"sku"`
	VariantName    string          `gorm:"size:255;not null"             json:"variant_name"`
	PriceModifier  decimal.Decimal `gorm:"type:numeric(10,2);not null"   json:"price_modifier"`
	Stock          int             `gorm:"not null;default:0"            json:"stock"`
	WeightModifier decimal.Decimal `gorm:"type:numeric(8,3);not null"    json:"weight_modifier"`
	Color          string          `gorm:"size:50"                       json:"color"`
	Size           string          `gorm:"size:50"                       json:"size"`
	Image          string          `gorm:"size:500"                      json:"image"`
	IsActive       bool            `gorm:"not null"                      json:"is_active"`
	CreatedAt      time.Time       `                                     json:"created_at"`
}

func (v *ProductVariant) BeforeCreate(tx *gorm.DB) error {
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	return nil
}

type Banner struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Title        string    `gorm:"size:200;not null"    json:"title"`
	Subtitle     string    `gorm:"size:300"             json:"subtitle"`
	Image        string    `gorm:"size:500;not null"    json:"image"`
	URL          string    `gorm:"column:url;size:200"  json:"url"`
	IsActive     bool      `gorm:"not null;index"       json:"is_active"`
	DisplayOrder int       `gorm:"not null;default:0"   json:"display_order"`
	CreatedAt    time.Time `                            json:"created_at"`
	UpdatedAt    time.Time `                            json:"updated_at"`
}

func (b *Banner) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}
