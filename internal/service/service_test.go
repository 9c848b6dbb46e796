package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/storefront/internal/events"
	"github.com/Skotchmaster/storefront/internal/models"
	"github.com/Skotchmaster/storefront/internal/repo"
	"github.com/Skotchmaster/storefront/internal/search"
	"github.com/Skotchmaster/storefront/internal/transport"
	"github.com/Skotchmaster/storefront/pkg/db"
)

func newTestRepo(t *testing.T) *repo.GormRepo {
	t.Helper()
	gdb, err := db.OpenSQLite("file::memory:")
	require.NoError(t, err)
	require.NoError(t, repo.Migrate(gdb))
	t.Cleanup(func() { _ = db.Close(gdb) })
	return repo.New(gdb)
}

func seedUser(t *testing.T, r *repo.GormRepo, username string) *models.User {
	t.Helper()
	u := &models.User{Username: username, PasswordHash: "x", Role: "user"}
	require.NoError(t, r.CreateUser(context.Background(), u, &models.UserProfile{}))
	return u
}

type published struct {
	topic, key string
	event      events.Envelope
}

type fakePublisher struct {
	mu   sync.Mutex
	sent []published
	err  error
}

func (f *fakePublisher) Publish(_ context.Context, topic, key string, ev events.Envelope) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, published{topic: topic, key: key, event: ev})
	return nil
}

func (f *fakePublisher) Close() error { return nil }

func (f *fakePublisher) types() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, 0, len(f.sent))
	for _, p := range f.sent {
		out = append(out, p.event.Type)
	}
	return out
}

type fakeIndex struct {
	docs    map[string]search.Document
	deleted []uuid.UUID
	hits    []uuid.UUID
	fail    bool
}

func newFakeIndex() *fakeIndex {
	return &fakeIndex{docs: map[string]search.Document{}}
}

var errIndexDown = errors.New("index unavailable")

func (f *fakeIndex) IndexProduct(_ context.Context, doc search.Document) error {
	if f.fail {
		return errIndexDown
	}
	f.docs[doc.ID] = doc
	return nil
}

func (f *fakeIndex) DeleteProduct(_ context.Context, id uuid.UUID) error {
	if f.fail {
		return errIndexDown
	}
	f.deleted = append(f.deleted, id)
	delete(f.docs, id.String())
	return nil
}

func (f *fakeIndex) Search(_ context.Context, _ string, _, _ int) (int64, []uuid.UUID, error) {
	if f.fail {
		return 0, nil, errIndexDown
	}
	return int64(len(f.hits)), f.hits, nil
}

func ptr[T any](v T) *T { return &v }

func dec(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func newCatalog(t *testing.T) (*CatalogService, *fakePublisher, *fakeIndex) {
	t.Helper()
	pub := &fakePublisher{}
	idx := newFakeIndex()
	return &CatalogService{Repo: newTestRepo(t), Events: pub, Search: idx, Producer: "test"}, pub, idx
}

func createProduct(t *testing.T, s *CatalogService, title, price string) *models.Product {
	t.Helper()
	p, err := s.CreateProduct(context.Background(), transport.ProductRequest{
		Title: ptr(title),
		Price: dec(price),
		Stock: ptr(10),
	})
	require.NoError(t, err)
	return p
}
