package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Skotchmaster/storefront/internal/models"
	"github.com/Skotchmaster/storefront/internal/repo"
	"github.com/Skotchmaster/storefront/internal/transport"
)

const MeRecentlyViewed = 10

type AccountService struct {
	Repo *repo.GormRepo
	Now  func() time.Time
}

func (s *AccountService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

type Me struct {
	User           *models.User
	Addresses      []models.Address
	Cards          []models.Card
	RecentlyViewed []models.RecentlyViewed
}

func (s *AccountService) Me(ctx context.Context, userID uuid.UUID) (*Me, error) {
	u, err := s.Repo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, translate(err, "user")
	}
	addresses, err := s.Repo.ListAddresses(ctx, userID)
	if err != nil {
		return nil, err
	}
	cards, err := s.Repo.ListCards(ctx, userID)
	if err != nil {
		return nil, err
	}
	viewed, err := s.Repo.ListRecentlyViewed(ctx, userID, MeRecentlyViewed)
	if err != nil {
		return nil, err
	}
	return &Me{User: u, Addresses: addresses, Cards: cards, RecentlyViewed: viewed}, nil
}

func (s *AccountService) UpdateProfile(ctx context.Context, userID uuid.UUID, req transport.ProfileRequest) (*models.User, error) {
	fields := map[string]any{}
	if req.Email != nil {
		email := strings.TrimSpace(*req.Email)
		if email != "" && !strings.Contains(email, "@") {
			return nil, fieldError("email", "must be a valid email address")
		}
		fields["email"] = email
	}
	if req.FirstName != nil {
		fields["first_name"] = strings.TrimSpace(*req.FirstName)
	}
	if req.LastName != nil {
		fields["last_name"] = strings.TrimSpace(*req.LastName)
	}
	if req.Phone != nil && len(strings.TrimSpace(*req.Phone)) > 15 {
		return nil, fieldError("phone", "must be at most 15 characters")
	}

	if err := s.Repo.UpdateUserFields(ctx, userID, fields); err != nil {
		return nil, translate(err, "user")
	}
	if req.Phone != nil || req.Address != nil {
		var phone *string
		if req.Phone != nil {
			p := strings.TrimSpace(*req.Phone)
			phone = &p
		}
		if _, err := s.Repo.UpsertProfile(ctx, userID, phone, req.Address); err != nil {
			return nil, err
		}
	}
	u, err := s.Repo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, translate(err, "user")
	}
	return u, nil
}

func (s *AccountService) ListAddresses(ctx context.Context, userID uuid.UUID) ([]models.Address, error) {
	return s.Repo.ListAddresses(ctx, userID)
}

func (s *AccountService) GetAddress(ctx context.Context, userID, id uuid.UUID) (*models.Address, error) {
	a, err := s.Repo.GetAddress(ctx, userID, id)
	if err != nil {
		return nil, translate(err, "address")
	}
	return a, nil
}

// SaveAddress creates an address when id is nil and patches it otherwise.
func (s *AccountService) SaveAddress(ctx context.Context, userID uuid.UUID, id *uuid.UUID, req transport.AddressRequest) (*models.Address, error) {
	a := &models.Address{UserID: userID}
	if id != nil {
		existing, err := s.GetAddress(ctx, userID, *id)
		if err != nil {
			return nil, err
		}
		a = existing
	}
	setString(&a.Label, req.Label)
	setString(&a.Line1, req.Line1)
	setString(&a.Line2, req.Line2)
	setString(&a.City, req.City)
	setString(&a.State, req.State)
	setString(&a.PostalCode, req.PostalCode)
	setString(&a.Country, req.Country)
	setString(&a.Phone, req.Phone)
	setRaw(&a.IsDefault, req.IsDefault)

	fields := map[string]string{}
	if a.Line1 == "" {
		fields["line1"] = "is required"
	}
	if a.City == "" {
		fields["city"] = "is required"
	}
	if a.Country == "" {
		fields["country"] = "is required"
	}
	if err := fieldErrors(fields); err != nil {
		return nil, err
	}
	if err := s.Repo.SaveAddress(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

func (s *AccountService) DeleteAddress(ctx context.Context, userID, id uuid.UUID) error {
	return translate(s.Repo.DeleteAddress(ctx, userID, id), "address")
}

func (s *AccountService) ListCards(ctx context.Context, userID uuid.UUID) ([]models.Card, error) {
	return s.Repo.ListCards(ctx, userID)
}

func (s *AccountService) GetCard(ctx context.Context, userID, id uuid.UUID) (*models.Card, error) {
	c, err := s.Repo.GetCard(ctx, userID, id)
	if err != nil {
		return nil, translate(err, "card")
	}
	return c, nil
}

func allDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return s != ""
}

func validateCard(c *models.Card, now time.Time) error {
	fields := map[string]string{}
	if c.CardholderName == "" {
		fields["cardholder_name"] = "is required"
	}
	if c.Last4 != "" && (len(c.Last4) != 4 || !allDigits(c.Last4)) {
		fields["last4"] = "must be exactly 4 digits"
	}
	if c.ExpMonth != nil && (*c.ExpMonth < 1 || *c.ExpMonth > 12) {
		fields["exp_month"] = "must be between 1 and 12"
	}
	if c.ExpYear != nil && *c.ExpYear < now.Year() {
		fields["exp_year"] = "must not be in the past"
	}
	return fieldErrors(fields)
}

// SaveCard stores card metadata and a provider token. Raw card numbers are refused.
func (s *AccountService) SaveCard(ctx context.Context, userID uuid.UUID, id *uuid.UUID, req transport.CardRequest) (*models.Card, error) {
	if req.CardNumber != nil {
		return nil, fieldError("card_number", "raw card numbers are not accepted; send a provider token")
	}
	c := &models.Card{UserID: userID}
	if id != nil {
		existing, err := s.GetCard(ctx, userID, *id)
		if err != nil {
			return nil, err
		}
		c = existing
	}
	setString(&c.CardholderName, req.CardholderName)
	setString(&c.Brand, req.Brand)
	setString(&c.Last4, req.Last4)
	setString(&c.Token, req.Token)
	setRaw(&c.IsDefault, req.IsDefault)
	if req.ExpMonth != nil {
		c.ExpMonth = req.ExpMonth
	}
	if req.ExpYear != nil {
		c.ExpYear = req.ExpYear
	}

	if err := validateCard(c, s.now()); err != nil {
		return nil, err
	}
	if err := s.Repo.SaveCard(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *AccountService) DeleteCard(ctx context.Context, userID, id uuid.UUID) error {
	return translate(s.Repo.DeleteCard(ctx, userID, id), "card")
}

func (s *AccountService) RecordView(ctx context.Context, userID, productID uuid.UUID) error {
	if _, err := s.Repo.GetProduct(ctx, productID); err != nil {
		return translate(err, "product")
	}
	return s.Repo.RecordView(ctx, userID, productID, s.now().UTC())
}

func (s *AccountService) RecentlyViewed(ctx context.Context, userID uuid.UUID, limit int) ([]models.RecentlyViewed, error) {
	if limit <= 0 {
		limit = MeRecentlyViewed
	}
	return s.Repo.ListRecentlyViewed(ctx, userID, limit)
}
