package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Cart struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey"           json:"id"`
	UserID    uuid.UUID  `gorm:"type:uuid;uniqueIndex;not null" json:"user_id"`
	Items     []CartItem `gorm:"foreignKey:CartID"              json:"items"`
	CreatedAt time.Time  `                                      json:"created_at"`
	UpdatedAt time.Time  `                                      json:"updated_at"`
}

func (c *Cart) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// Total is the live sum over the loaded items; Product must be preloaded.
func (c *Cart) Total() decimal.Decimal {
	total := decimal.Zero
	for i := range c.Items {
		total = total.Add(c.Items[i].Subtotal())
	}
	return total
}

type CartItem struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"                              json:"id"`
	CartID    uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_cart_product;not null"   json:"cart_id"`
	ProductID uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_cart_product;not null"   json:"product_id"`
	Product   Product   `                                                         json:"product"`
	Quantity  int       `gorm:"not null;default:1;check:quantity>0"               json:"quantity"`
	CreatedAt time.Time `                                                         json:"created_at"`
	UpdatedAt time.Time `                                                         json:"updated_at"`
}

func (c *CartItem) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

func (c *CartItem) Subtotal() decimal.Decimal {
	return c.Product.Price.Mul(decimal.NewFromInt(int64(c.Quantity)))
}

type Wishlist struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"           json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;uniqueIndex;not null" json:"user_id"`
	Products  []Product `gorm:"many2many:wishlist_products"    json:"products"`
	CreatedAt time.Time `                                      json:"created_at"`
	UpdatedAt time.Time `                                      json:"updated_at"`
}

func (w *Wishlist) BeforeCreate(tx *gorm.DB) error {
	if w.ID == uuid.Nil {
		w.ID = uuid.New()
	}
	return nil
}

// WishlistProduct is the join row behind Wishlist.Products.
type WishlistProduct struct {
	WishlistID uuid.UUID `gorm:"type:uuid;primaryKey"`
	ProductID  uuid.UUID `gorm:"type:uuid;primaryKey;index"`
	CreatedAt  time.Time
}

type RecentlyViewed struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"                                json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_viewed_user_product;not null" json:"-"`
	ProductID uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_viewed_user_product;not null" json:"product_id"`
	Product   Product   `                                                           json:"product"`
	ViewedAt  time.Time `gorm:"index;not null"                                      json:"viewed_at"`
}

func (r *RecentlyViewed) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

func (RecentlyViewed) TableName() string {
	return "recently_viewed"
}

type Order struct {
	ID              uuid.UUID       `gorm:"type:uuid;primaryKey"       json:"id"`
	UserID          uuid.UUID       `gorm:"type:uuid;index;not null"   json:"user_id"`
	TotalAmount     decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"total_amount"`
	ShippingAddress string          `gorm:"not null"                   json:"shipping_address"`
	Status          string          `gorm:"size:20;not null;index"     json:"status"`
	Items           []OrderItem     `gorm:"foreignKey:OrderID"         json:"items"`
	CreatedAt       time.Time       `                                  json:"created_at"`
	UpdatedAt       time.Time       `                                  json:"updated_at"`
}

func (o *Order) BeforeCreate(tx *gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	return nil
}

// OrderItem keeps product_id without a foreign key so order history
// survives product deletion.
type OrderItem struct {
	ID           uuid.UUID       `gorm:"type:uuid;primaryKey"        json:"id"`
	OrderID      uuid.UUID       `gorm:"type:uuid;index;not null"    json:"order_id"`
	ProductID    uuid.UUID       `gorm:"type:uuid;index;not null"    json:"product_id"`
	ProductTitle string          `gorm:"size:255;not null"           json:"product_title"`
	Quantity     int             `gorm:"not null;check:quantity>0"   json:"quantity"`
	Price        decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"price"`
	CreatedAt    time.Time       `                                   json:"created_at"`
}

func (i *OrderItem) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

func (i *OrderItem) Subtotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}
