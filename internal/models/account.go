package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type User struct {
	ID           uuid.UUID    `gorm:"type:uuid;primaryKey"      json:"id"`
	Username     string       `gorm:"size:150;uniqueIndex;not null" json:"username"`
	Email        string       `gorm:"size:254"                  json:"email"`
	FirstName    string       `gorm:"size:150"                  json:"first_name"`
	LastName     string       `gorm:"size:150"                  json:"last_name"`
	PasswordHash string       `gorm:"not null"                  json:"-"`
	Role         string       `gorm:"size:20;not null"          json:"role"`
	Profile      *UserProfile `gorm:"foreignKey:UserID"         json:"profile,omitempty"`
	CreatedAt    time.Time    `                                 json:"created_at"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

type UserProfile struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"          json:"-"`
	UserID    uuid.UUID `gorm:"type:uuid;uniqueIndex;not null" json:"-"`
	Phone     string    `gorm:"size:15"                       json:"phone"`
	Address   string    `                                     json:"address"`
	CreatedAt time.Time `                                     json:"created_at"`
}

func (p *UserProfile) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

type RefreshToken struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"       json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;index;not null"   json:"user_id"`
	JTI       string    `gorm:"uniqueIndex;not null"       json:"jti"`
	TokenHash string    `gorm:"size:64;not null"           json:"-"`
	ExpiresAt time.Time `gorm:"not null"                   json:"expires_at"`
	Revoked   bool      `gorm:"not null;default:false"     json:"revoked"`
	CreatedAt time.Time `                                  json:"created_at"`
}

func (t *RefreshToken) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

type Address struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"     json:"id"`
	UserID     uuid.UUID `gorm:"type:uuid;index;not null" json:"-"`
	Label      string    `gorm:"size:60"                  json:"label"`
	Line1      string    `gorm:"size:255;not null"        json:"line1"`
	Line2      string    `gorm:"size:255"                 json:"line2"`
	City       string    `gorm:"size:100;not null"        json:"city"`
	State      string    `gorm:"size:100"                 json:"state"`
	PostalCode string    `gorm:"size:20"                  json:"postal_code"`
	Country    string    `gorm:"size:100;not null"        json:"country"`
	Phone      string    `gorm:"size:20"                  json:"phone"`
	IsDefault  bool      `gorm:"not null"                 json:"is_default"`
	CreatedAt  time.Time `                                json:"created_at"`
}

func (a *Address) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}

type Card struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"     json:"id"`
	UserID         uuid.UUID `gorm:"type:uuid;index;not null" json:"-"`
	CardholderName string    `gorm:"size:100;not null"        json:"cardholder_name"`
	Brand          string    `gorm:"size:50"                  json:"brand"`
	Last4          string    `gorm:"size:4"                   json:"last4"`
	ExpMonth       *int      `                                json:"exp_month"`
	ExpYear        *int      `                                json:"exp_year"`
	Token          string    `gorm:"size:255"                 json:"-"`
	IsDefault      bool      `gorm:"not null"                 json:"is_default"`
	CreatedAt      time.Time `                                json:"created_at"`
}

func (c *Card) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}
