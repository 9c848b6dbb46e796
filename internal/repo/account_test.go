package repo

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/Skotchmaster/storefront/internal/models"
	"github.com/Skotchmaster/storefront/pkg/hash"
)

func TestAddresses_DefaultIsExclusive(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()
	u := seedUser(t, r, "nora")

	home := &models.Address{UserID: u.ID, Label: "Home", Line1: "1 A St", City: "X", Country: "Y", IsDefault: true}
	require.NoError(t, r.SaveAddress(ctx, home))
	work := &models.Address{UserID: u.ID, Label: "Work", Line1: "2 B St", City: "X", Country: "Y", IsDefault: true}
	require.NoError(t, r.SaveAddress(ctx, work))

	items, err := r.ListAddresses(ctx, u.ID)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, work.ID, items[0].ID)
	assert.True(t, items[0].IsDefault)
	assert.False(t, items[1].IsDefault)

	other := seedUser(t, r, "oscar")
	_, err = r.GetAddress(ctx, other.ID, home.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	assert.ErrorIs(t, r.DeleteAddress(ctx, other.ID, home.ID), gorm.ErrRecordNotFound)
	assert.NoError(t, r.DeleteAddress(ctx, u.ID, home.ID))
}

func TestCards_DefaultIsExclusive(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()
	u := seedUser(t, r, "paul")

	a := &models.Card{UserID: u.ID, CardholderName: "P", Last4: "4242", IsDefault: true}
	require.NoError(t, r.SaveCard(ctx, a))
	b := &models.Card{UserID: u.ID, CardholderName: "P", Last4: "1111"}
	require.NoError(t, r.SaveCard(ctx, b))

	b.IsDefault = true
	require.NoError(t, r.SaveCard(ctx, b))

	got, err := r.GetCard(ctx, u.ID, a.ID)
	require.NoError(t, err)
	assert.False(t, got.IsDefault)
}

func TestUser_CreateWithProfileAndUpsert(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()
	u := seedUser(t, r, "quinn")

	dup := &models.User{Username: "quinn", PasswordHash: "x", Role: "user"}
	assert.ErrorIs(t, r.CreateUser(ctx, dup, &models.UserProfile{}), gorm.ErrDuplicatedKey)

	phone := "+100"
	_, err := r.UpsertProfile(ctx, u.ID, &phone, nil)
	require.NoError(t, err)

	got, err := r.GetUserByID(ctx, u.ID)
	require.NoError(t, err)
	require.NotNil(t, got.Profile)
	assert.Equal(t, "+100", got.Profile.Phone)
}

func TestRefreshTokens_RotateAndRevoke(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()
	u := seedUser(t, r, "rita")

	oldHash := hash.Sha256Hex("old")
	old := &models.RefreshToken{UserID: u.ID, JTI: uuid.NewString(), TokenHash: oldHash, ExpiresAt: time.Now().Add(time.Hour)}
	require.NoError(t, r.StoreRefreshToken(ctx, old))

	next := &models.RefreshToken{UserID: u.ID, JTI: uuid.NewString(), TokenHash: hash.Sha256Hex("next"), ExpiresAt: time.Now().Add(time.Hour)}
	require.NoError(t, r.RotateRefreshToken(ctx, old.JTI, oldHash, next))

	stored, err := r.FindRefreshByJTI(ctx, old.JTI)
	require.NoError(t, err)
	assert.True(t, stored.Revoked)

	again := &models.RefreshToken{UserID: u.ID, JTI: uuid.NewString(), TokenHash: "h", ExpiresAt: time.Now().Add(time.Hour)}
	assert.ErrorIs(t, r.RotateRefreshToken(ctx, old.JTI, oldHash, again), ErrTokenExpiredOrRevoked)

	require.NoError(t, r.RevokeRefreshToken(ctx, next.JTI, next.TokenHash))
	assert.ErrorIs(t, r.RevokeRefreshToken(ctx, next.JTI, next.TokenHash), gorm.ErrRecordNotFound)
}
