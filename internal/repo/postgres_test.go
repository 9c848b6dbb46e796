package repo

import (
	"context"
	"os"
	"strings"
	"sync"
	"testing"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/Skotchmaster/storefront/pkg/db"
)

func newPostgresRepo(t *testing.T) *GormRepo {
	t.Helper()

	dsn := os.Getenv("STOREFRONT_TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("STOREFRONT_TEST_DATABASE_URL is required for postgres tests")
	}

	gdb, err := db.Open(context.Background(), dsn)
	require.NoError(t, err)
	require.NoError(t, Migrate(gdb))

	t.Cleanup(func() {
		truncateTables(t, gdb)
		_ = db.Close(gdb)
	})
	truncateTables(t, gdb)
	return New(gdb)
}

func truncateTables(t *testing.T, gdb *gorm.DB) {
	t.Helper()

	tables := []string{
		"order_items", "orders", "cart_items", "carts", "wishlist_products", "wishlists",
		"recently_viewed", "product_images", "product_specifications", "product_variants",
		"products", "brands", "categories", "banners", "addresses", "cards",
		"refresh_tokens", "user_profiles", "users",
	}
	quoted := make([]string, 0, len(tables))
	for _, name := range tables {
		quoted = append(quoted, pq.QuoteIdentifier(name))
	}
	require.NoError(t, gdb.Exec("TRUNCATE TABLE "+strings.Join(quoted, ", ")+" CASCADE").Error)
}

func TestPostgres_ConcurrentCheckoutsSerialize(t *testing.T) {
	r := newPostgresRepo(t)
	ctx := context.Background()
	u := seedUser(t, r, "pg_user")
	p := seedProduct(t, r, "Widget", "10")

	_, err := r.AddToCart(ctx, u.ID, p.ID, 2)
	require.NoError(t, err)

	const workers = 4
	var wg sync.WaitGroup
	totals := make(chan decimal.Decimal, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			order, err := r.Checkout(ctx, u.ID, "addr")
			if assert.NoError(t, err) {
				totals <- order.TotalAmount
			}
		}()
	}
	wg.Wait()
	close(totals)

	var nonZero int
	for total := range totals {
		if !total.IsZero() {
			nonZero++
			assert.True(t, total.Equal(decimal.NewFromInt(20)))
		}
	}
	assert.Equal(t, 1, nonZero)
}

func TestPostgres_ConcurrentFirstAddsMerge(t *testing.T) {
	r := newPostgresRepo(t)
	ctx := context.Background()
	u := seedUser(t, r, "pg_adder")
	p := seedProduct(t, r, "Bolt", "1")

	const workers = 8
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := r.AddToCart(ctx, u.ID, p.ID, 1)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	cart, err := r.GetCart(ctx, u.ID)
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, workers, cart.Items[0].Quantity)
}

func TestPostgres_AddDuringCheckoutKeepsEveryUnit(t *testing.T) {
	r := newPostgresRepo(t)
	ctx := context.Background()
	u := seedUser(t, r, "pg_racer")
	p := seedProduct(t, r, "Nut", "2")

	_, err := r.AddToCart(ctx, u.ID, p.ID, 2)
	require.NoError(t, err)

	const adds = 6
	var ordered []int
	var mu sync.Mutex
	var wg sync.WaitGroup
	for i := 0; i < adds; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_, err := r.AddToCart(ctx, u.ID, p.ID, 1)
			assert.NoError(t, err)
		}()
		go func() {
			defer wg.Done()
			order, err := r.Checkout(ctx, u.ID, "addr")
			if !assert.NoError(t, err) {
				return
			}
			mu.Lock()
			defer mu.Unlock()
			for _, it := range order.Items {
				ordered = append(ordered, it.Quantity)
			}
		}()
	}
	wg.Wait()

	cart, err := r.GetCart(ctx, u.ID)
	require.NoError(t, err)
	units := 0
	for _, q := range ordered {
		units += q
	}
	for _, it := range cart.Items {
		units += it.Quantity
	}
	assert.Equal(t, 2+adds, units)
}
