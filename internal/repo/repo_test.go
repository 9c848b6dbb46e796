package repo

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/storefront/internal/models"
	"github.com/Skotchmaster/storefront/pkg/db"
)

func newTestRepo(t *testing.T) *GormRepo {
	t.Helper()
	gdb, err := db.OpenSQLite("file::memory:")
	require.NoError(t, err)
	require.NoError(t, Migrate(gdb))
	t.Cleanup(func() { _ = db.Close(gdb) })
	return New(gdb)
}

func seedUser(t *testing.T, r *GormRepo, username string) *models.User {
	t.Helper()
	u := &models.User{Username: username, PasswordHash: "x", Role: "user"}
	require.NoError(t, r.CreateUser(context.Background(), u, &models.UserProfile{}))
	return u
}

func seedProduct(t *testing.T, r *GormRepo, title, price string) *models.Product {
	t.Helper()
	p := &models.Product{
		Title:             title,
		Price:             decimal.RequireFromString(price),
		LowStockThreshold: 10,
		ManageStock:       true,
		IsActive:          true,
		Stock:             10,
	}
	require.NoError(t, r.CreateProduct(context.Background(), p))
	return p
}

func reloadProduct(t *testing.T, r *GormRepo, id uuid.UUID) *models.Product {
	t.Helper()
	p, err := r.GetProduct(context.Background(), id)
	require.NoError(t, err)
	return p
}
