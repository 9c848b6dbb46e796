package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/storefront/internal/events"
	"github.com/Skotchmaster/storefront/internal/idempotency"
	"github.com/Skotchmaster/storefront/internal/models"
	"github.com/Skotchmaster/storefront/internal/transport"
)

func TestCart_AddValidatesProductAndQuantity(t *testing.T) {
	cat, _, _ := newCatalog(t)
	s := &CartService{Repo: cat.Repo}
	ctx := context.Background()
	u := seedUser(t, cat.Repo, "cara")
	p := createProduct(t, cat, "Mug", "7.50")

	_, err := s.AddItem(ctx, u.ID, p.ID, 0)
	require.ErrorIs(t, err, ErrValidation)
	_, err = s.AddItem(ctx, u.ID, uuid.New(), 1)
	require.ErrorIs(t, err, ErrNotFound)

	_, err = s.AddItem(ctx, u.ID, p.ID, 1)
	require.NoError(t, err)
	item, err := s.AddItem(ctx, u.ID, p.ID, 2)
	require.NoError(t, err)
	assert.Equal(t, 3, item.Quantity)

	cart, err := s.GetCart(ctx, u.ID)
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	assert.True(t, cart.Total().Equal(decimal.RequireFromString("22.50")), cart.Total().String())

	hidden, err := cat.CreateProduct(ctx, transport.ProductRequest{Title: ptr("Prototype"), Price: dec("9"), IsActive: ptr(false)})
	require.NoError(t, err)
	_, err = s.AddItem(ctx, u.ID, hidden.ID, 1)
	require.ErrorIs(t, err, ErrNotFound)

	_, err = s.UpdateItem(ctx, u.ID, item.ID, 0)
	require.ErrorIs(t, err, ErrValidation)
	_, err = s.UpdateItem(ctx, u.ID, uuid.New(), 2)
	require.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, s.RemoveItem(ctx, u.ID, item.ID))
	require.ErrorIs(t, s.RemoveItem(ctx, u.ID, item.ID), ErrNotFound)
}

func newOrders(t *testing.T) (*OrderService, *CatalogService, *fakePublisher) {
	t.Helper()
	cat, _, _ := newCatalog(t)
	pub := &fakePublisher{}
	return &OrderService{Repo: cat.Repo, Events: pub, Idempotency: idempotency.NewMemory(), Producer: "test"}, cat, pub
}

func TestCheckout_TotalsAndPublishes(t *testing.T) {
	s, cat, pub := newOrders(t)
	ctx := context.Background()
	u := seedUser(t, cat.Repo, "dan")
	a := createProduct(t, cat, "A", "10")
	b := createProduct(t, cat, "B", "5")
	_, err := cat.Repo.AddToCart(ctx, u.ID, a.ID, 2)
	require.NoError(t, err)
	_, err = cat.Repo.AddToCart(ctx, u.ID, b.ID, 1)
	require.NoError(t, err)

	_, err = s.Checkout(ctx, u.ID, transport.CheckoutRequest{}, "")
	require.ErrorIs(t, err, ErrValidation)

	order, err := s.Checkout(ctx, u.ID, transport.CheckoutRequest{ShippingAddress: " 1 Main St "}, "")
	require.NoError(t, err)
	assert.True(t, order.TotalAmount.Equal(decimal.NewFromInt(25)))
	assert.Equal(t, "1 Main St", order.ShippingAddress)
	require.Len(t, order.Items, 2)

	require.Equal(t, []string{events.OrderCreated}, pub.types())
	payload, ok := pub.sent[0].event.Payload.(events.OrderPayload)
	require.True(t, ok)
	assert.Equal(t, order.ID, payload.OrderID)
	assert.Len(t, payload.Items, 2)
}

func TestCheckout_FromSavedAddress(t *testing.T) {
	s, cat, _ := newOrders(t)
	ctx := context.Background()
	u := seedUser(t, cat.Repo, "eve")

	addr := &models.Address{UserID: u.ID, Line1: "5 Elm Rd", City: "Springfield", PostalCode: "12345", Country: "US"}
	require.NoError(t, cat.Repo.SaveAddress(ctx, addr))

	order, err := s.Checkout(ctx, u.ID, transport.CheckoutRequest{AddressID: &addr.ID}, "")
	require.NoError(t, err)
	assert.Equal(t, "5 Elm Rd, Springfield, 12345, US", order.ShippingAddress)
	assert.True(t, order.TotalAmount.IsZero())

	other := seedUser(t, cat.Repo, "mallory")
	_, err = s.Checkout(ctx, other.ID, transport.CheckoutRequest{AddressID: &addr.ID}, "")
	require.ErrorIs(t, err, ErrValidation)
}

func TestCheckout_IdempotencyKeyReplaysOrder(t *testing.T) {
	s, cat, pub := newOrders(t)
	ctx := context.Background()
	u := seedUser(t, cat.Repo, "fay")
	p := createProduct(t, cat, "Pen", "2")
	_, err := cat.Repo.AddToCart(ctx, u.ID, p.ID, 3)
	require.NoError(t, err)

	req := transport.CheckoutRequest{ShippingAddress: "9 Oak Ave"}
	first, err := s.Checkout(ctx, u.ID, req, "retry-1")
	require.NoError(t, err)
	again, err := s.Checkout(ctx, u.ID, req, "retry-1")
	require.NoError(t, err)

	assert.Equal(t, first.ID, again.ID)
	assert.Len(t, again.Items, 1)
	assert.Len(t, pub.types(), 1)

	total, _, err := s.ListOrders(ctx, u.ID, 0, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)

	key := idempotency.CheckoutKey(u.ID.String(), "busy")
	_, reserved, err := s.Idempotency.Reserve(ctx, key)
	require.NoError(t, err)
	require.True(t, reserved)
	_, err = s.Checkout(ctx, u.ID, req, "busy")
	require.ErrorIs(t, err, ErrConflict)
}

func TestOrders_StatusUpdate(t *testing.T) {
	s, cat, pub := newOrders(t)
	ctx := context.Background()
	u := seedUser(t, cat.Repo, "gus")

	order, err := s.Checkout(ctx, u.ID, transport.CheckoutRequest{ShippingAddress: "x"}, "")
	require.NoError(t, err)

	_, err = s.UpdateStatus(ctx, order.ID, "lost")
	require.ErrorIs(t, err, ErrValidation)
	_, err = s.UpdateStatus(ctx, uuid.New(), "shipped")
	require.ErrorIs(t, err, ErrNotFound)

	updated, err := s.UpdateStatus(ctx, order.ID, "Shipped")
	require.NoError(t, err)
	assert.Equal(t, "shipped", updated.Status)
	assert.Equal(t, []string{events.OrderCreated, events.OrderStatusChanged}, pub.types())

	other := seedUser(t, cat.Repo, "hal")
	_, err = s.GetOrder(ctx, other.ID, order.ID)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestWishlist_AddRemoveReplace(t *testing.T) {
	cat, _, _ := newCatalog(t)
	s := &WishlistService{Repo: cat.Repo}
	ctx := context.Background()
	u := seedUser(t, cat.Repo, "ivy")
	a := createProduct(t, cat, "Alpha", "1")
	b := createProduct(t, cat, "Beta", "2")

	_, err := s.Add(ctx, u.ID, uuid.New())
	require.ErrorIs(t, err, ErrNotFound)

	wl, err := s.Add(ctx, u.ID, a.ID)
	require.NoError(t, err)
	require.Len(t, wl.Products, 1)
	wl, err = s.Add(ctx, u.ID, a.ID)
	require.NoError(t, err)
	require.Len(t, wl.Products, 1)

	wl, err = s.Replace(ctx, u.ID, []uuid.UUID{b.ID, a.ID, b.ID})
	require.NoError(t, err)
	require.Len(t, wl.Products, 2)
	assert.Equal(t, "Alpha", wl.Products[0].Title)

	_, err = s.Replace(ctx, u.ID, []uuid.UUID{a.ID, uuid.New()})
	require.ErrorIs(t, err, ErrValidation)

	wl, err = s.Remove(ctx, u.ID, a.ID)
	require.NoError(t, err)
	require.Len(t, wl.Products, 1)
	assert.Equal(t, b.ID, wl.Products[0].ID)

	_, err = s.Remove(ctx, u.ID, uuid.New())
	require.ErrorIs(t, err, ErrNotFound)
}

func TestAccount_MeProfileAndViews(t *testing.T) {
	cat, _, _ := newCatalog(t)
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	s := &AccountService{Repo: cat.Repo, Now: func() time.Time { return now }}
	ctx := context.Background()
	u := seedUser(t, cat.Repo, "jo")
	a := createProduct(t, cat, "Alpha", "1")
	b := createProduct(t, cat, "Beta", "2")

	require.NoError(t, s.RecordView(ctx, u.ID, a.ID))
	now = now.Add(time.Minute)
	require.NoError(t, s.RecordView(ctx, u.ID, b.ID))
	now = now.Add(time.Minute)
	require.NoError(t, s.RecordView(ctx, u.ID, a.ID))
	require.ErrorIs(t, s.RecordView(ctx, u.ID, uuid.New()), ErrNotFound)

	updated, err := s.UpdateProfile(ctx, u.ID, transport.ProfileRequest{
		FirstName: ptr("Jo"),
		Phone:     ptr("555-0100"),
		Address:   ptr("1 Main St"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Jo", updated.FirstName)
	require.NotNil(t, updated.Profile)
	assert.Equal(t, "555-0100", updated.Profile.Phone)

	_, err = s.UpdateProfile(ctx, u.ID, transport.ProfileRequest{Email: ptr("nope")})
	require.ErrorIs(t, err, ErrValidation)

	me, err := s.Me(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "jo", me.User.Username)
	require.Len(t, me.RecentlyViewed, 2)
	assert.Equal(t, a.ID, me.RecentlyViewed[0].ProductID)
	assert.Equal(t, b.ID, me.RecentlyViewed[1].ProductID)
}

func TestAccount_AddressesAndCards(t *testing.T) {
	cat, _, _ := newCatalog(t)
	s := &AccountService{Repo: cat.Repo, Now: func() time.Time { return time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC) }}
	ctx := context.Background()
	u := seedUser(t, cat.Repo, "kim")

	_, err := s.SaveAddress(ctx, u.ID, nil, transport.AddressRequest{Line1: ptr("1 A St")})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "city")
	assert.Contains(t, verr.Fields, "country")

	home, err := s.SaveAddress(ctx, u.ID, nil, transport.AddressRequest{Line1: ptr("1 A St"), City: ptr("X"), Country: ptr("US"), IsDefault: ptr(true)})
	require.NoError(t, err)
	work, err := s.SaveAddress(ctx, u.ID, nil, transport.AddressRequest{Line1: ptr("2 B St"), City: ptr("Y"), Country: ptr("US"), IsDefault: ptr(true)})
	require.NoError(t, err)
	got, err := s.GetAddress(ctx, u.ID, home.ID)
	require.NoError(t, err)
	assert.False(t, got.IsDefault)
	assert.True(t, work.IsDefault)

	_, err = s.SaveCard(ctx, u.ID, nil, transport.CardRequest{CardholderName: ptr("Kim"), CardNumber: ptr("4111111111111111")})
	require.ErrorIs(t, err, ErrValidation)

	cases := []struct {
		name  string
		req   transport.CardRequest
		field string
	}{
		{"short last4", transport.CardRequest{CardholderName: ptr("Kim"), Last4: ptr("123")}, "last4"},
		{"letters in last4", transport.CardRequest{CardholderName: ptr("Kim"), Last4: ptr("12a4")}, "last4"},
		{"month 13", transport.CardRequest{CardholderName: ptr("Kim"), ExpMonth: ptr(13)}, "exp_month"},
		{"expired year", transport.CardRequest{CardholderName: ptr("Kim"), ExpYear: ptr(2020)}, "exp_year"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := s.SaveCard(ctx, u.ID, nil, tc.req)
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Contains(t, verr.Fields, tc.field)
		})
	}

	card, err := s.SaveCard(ctx, u.ID, nil, transport.CardRequest{
		CardholderName: ptr("Kim"),
		Last4:          ptr("4242"),
		ExpMonth:       ptr(12),
		ExpYear:        ptr(2030),
		Token:          ptr("tok_123"),
	})
	require.NoError(t, err)
	assert.Equal(t, "tok_123", card.Token)

	other := seedUser(t, cat.Repo, "lee")
	require.ErrorIs(t, s.DeleteCard(ctx, other.ID, card.ID), ErrNotFound)
	require.NoError(t, s.DeleteCard(ctx, u.ID, card.ID))
	require.NoError(t, s.DeleteAddress(ctx, u.ID, home.ID))
}
