package repository

import (
	"testing"
	"time"

	"github.com/emeraldmart/storefront/internal/config"
	"github.com/emeraldmart/storefront/internal/domain/cart"
	"github.com/emeraldmart/storefront/internal/domain/invoice"
	"github.com/emeraldmart/storefront/internal/domain/user"
	ierr "github.com/emeraldmart/storefront/internal/errors"
	"github.com/emeraldmart/storefront/internal/kv"
	"github.com/emeraldmart/storefront/internal/logger"
	"github.com/emeraldmart/storefront/internal/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLogger(t *testing.T) *logger.Logger {
	log, err := logger.NewLogger(config.GetDefaultConfig())
	require.NoError(t, err)
	return log
}

func sampleCart() cart.Cart {
	c := cart.New()
	c["p1"] = &cart.LineItem{ID: "p1", Title: "Widget", Price: decimal.NewFromFloat(19.99), Quantity: 3}
	c["p2"] = &cart.LineItem{ID: "p2", Title: "Gadget", Price: decimal.NewFromInt(5), Quantity: 1}
	return c
}

func TestCartRepositoryRoundTrip(t *testing.T) {
	ctx := testutil.SetupContext()
	store := testutil.NewInMemoryKVStore()
	log := newTestLogger(t)

	repo := NewCartRepository(store, log)
	require.NoError(t, repo.Save(ctx, sampleCart()))

	// A fresh repository over the same store sees the same cart
	loaded, err := NewCartRepository(store, log).Load(ctx)
	require.NoError(t, err)
	require.Len(t, loaded, 2)
	assert.Equal(t, "Widget", loaded["p1"].Title)
	assert.Equal(t, 3, loaded["p1"].Quantity)
	assert.True(t, decimal.NewFromFloat(19.99).Equal(loaded["p1"].Price))
}

func TestCartRepositoryLoadMissingKeyReturnsEmptyCart(t *testing.T) {
	ctx := testutil.SetupContext()
	repo := NewCartRepository(testutil.NewInMemoryKVStore(), newTestLogger(t))

	loaded, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.True(t, loaded.IsEmpty())
}

func TestCartRepositoryLoadCorruptBlob(t *testing.T) {
	ctx := testutil.SetupContext()
	store := testutil.NewInMemoryKVStore()
	store.SetRaw(kv.KeyCart, []byte(`{"p1": "not a line item"`))

	_, err := NewCartRepository(store, newTestLogger(t)).Load(ctx)
	require.Error(t, err)
	assert.True(t, ierr.IsStorage(err))
}

func TestInvoiceRepositoryRoundTrip(t *testing.T) {
	ctx := testutil.SetupContext()
	store := testutil.NewInMemoryKVStore()
	log := newTestLogger(t)

	totals := cart.ComputeTotals(sampleCart())
	inv := invoice.NewFromCart("Jane Doe", "1 Main Street", sampleCart(), totals, time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC))

	repo := NewInvoiceRepository(store, log)
	require.NoError(t, repo.SaveLast(ctx, inv))

	loaded, err := NewInvoiceRepository(store, log).GetLast(ctx)
	require.NoError(t, err)
	assert.Equal(t, inv.ID, loaded.ID)
	assert.Equal(t, inv.InvoiceNumber, loaded.InvoiceNumber)
	assert.Equal(t, "Jane Doe", loaded.CustomerName)
	assert.Len(t, loaded.Items, 2)
	assert.True(t, inv.Totals.Total.Equal(loaded.Totals.Total))
	assert.True(t, inv.Date.Equal(loaded.Date))
}

func TestInvoiceRepositoryGetLastNotFound(t *testing.T) {
	ctx := testutil.SetupContext()
	repo := NewInvoiceRepository(testutil.NewInMemoryKVStore(), newTestLogger(t))

	_, err := repo.GetLast(ctx)
	require.Error(t, err)
	assert.True(t, ierr.IsNotFound(err))
}

func TestInvoiceRepositorySaveOverwritesPrevious(t *testing.T) {
	ctx := testutil.SetupContext()
	store := testutil.NewInMemoryKVStore()
	repo := NewInvoiceRepository(store, newTestLogger(t))

	totals := cart.ComputeTotals(sampleCart())
	first := invoice.NewFromCart("Jane Doe", "1 Main Street", sampleCart(), totals, time.Now().UTC())
	second := invoice.NewFromCart("John Roe", "2 Side Street", sampleCart(), totals, time.Now().UTC())

	require.NoError(t, repo.SaveLast(ctx, first))
	require.NoError(t, repo.SaveLast(ctx, second))

	loaded, err := repo.GetLast(ctx)
	require.NoError(t, err)
	assert.Equal(t, second.ID, loaded.ID, "only the most recent invoice is kept")
}

func TestUserRepositoryRoundTrip(t *testing.T) {
	ctx := testutil.SetupContext()
	store := testutil.NewInMemoryKVStore()
	log := newTestLogger(t)

	repo := NewUserRepository(store, log)
	require.NoError(t, repo.Create(ctx, &user.User{
		Username:     "jane",
		FullName:     "Jane Doe",
		Email:        "jane@example.com",
		PasswordHash: "$2a$10$stub",
		CreatedAt:    time.Now().UTC(),
	}))

	loaded, err := NewUserRepository(store, log).Get(ctx, "jane")
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe", loaded.FullName)
	assert.Equal(t, "$2a$10$stub", loaded.PasswordHash)
}

func TestUserRepositoryDuplicateUsername(t *testing.T) {
	ctx := testutil.SetupContext()
	repo := NewUserRepository(testutil.NewInMemoryKVStore(), newTestLogger(t))

	require.NoError(t, repo.Create(ctx, &user.User{Username: "jane"}))

	err := repo.Create(ctx, &user.User{Username: "jane"})
	require.Error(t, err)
	assert.True(t, ierr.IsAlreadyExists(err))
}

func TestUserRepositoryGetUnknown(t *testing.T) {
	ctx := testutil.SetupContext()
	repo := NewUserRepository(testutil.NewInMemoryKVStore(), newTestLogger(t))

	_, err := repo.Get(ctx, "nobody")
	require.Error(t, err)
	assert.True(t, ierr.IsNotFound(err))
}

func TestSessionRepositoryRoundTrip(t *testing.T) {
	ctx := testutil.SetupContext()
	store := testutil.NewInMemoryKVStore()
	log := newTestLogger(t)

	repo := NewSessionRepository(store, log)

	username, err := repo.GetLoggedIn(ctx)
	require.NoError(t, err)
	assert.Empty(t, username, "no session before login")

	require.NoError(t, repo.SetLoggedIn(ctx, "jane"))

	username, err = NewSessionRepository(store, log).GetLoggedIn(ctx)
	require.NoError(t, err)
	assert.Equal(t, "jane", username)

	require.NoError(t, repo.ClearLoggedIn(ctx))
	assert.False(t, store.HasKey(kv.KeyLoggedInUser))
}

func TestSessionRepositoryCorruptBlobMeansLoggedOut(t *testing.T) {
	ctx := testutil.SetupContext()
	store := testutil.NewInMemoryKVStore()
	store.SetRaw(kv.KeyLoggedInUser, []byte(`{broken`))

	username, err := NewSessionRepository(store, newTestLogger(t)).GetLoggedIn(ctx)
	require.NoError(t, err)
	assert.Empty(t, username)
}
