package service

import (
	"fmt"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bank-service/internal/domain"
	"bank-service/internal/errors"
	"bank-service/internal/testutil"
)

func newTransactionServiceEnv(t *testing.T) (*TransactionService, *testutil.MemStore) {
	t.Helper()

	store := testutil.NewMemStore()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewTransactionService(store, logger), store
}

func seedAccountWithTransactions(t *testing.T, store *testutil.MemStore, count int) *domain.Account {
	t.Helper()

	account := &domain.Account{
		FirstName:   "Ben",
		LastName:    "Scott",
		Balance:     decimal.Zero,
		LastUpdated: time.Now(),
	}
	require.NoError(t, store.Account().Create(account))

	for i := 1; i <= count; i++ {
		tx := domain.NewTransaction(account, fmt.Sprintf("Deposit of %d$", i), decimal.NewFromInt(int64(i)))
		require.NoError(t, store.Transaction().Create(tx))
	}
	return account
}

func TestListRecent_capsAtTen(t *testing.T) {
	svc, store := newTransactionServiceEnv(t)
	account := seedAccountWithTransactions(t, store, 12)

	views, err := svc.ListRecent(account.ID)
	require.NoError(t, err)
	require.Len(t, views, 10)

	// Newest first: 12 down to 3.
	assert.Equal(t, "Deposit of 12$", views[0].Description)
	assert.Equal(t, "Deposit of 3$", views[9].Description)
	assert.True(t, views[0].Amount.Equal(decimal.NewFromInt(12)))
}

func TestListRecent_fewerThanTen(t *testing.T) {
	svc, store := newTransactionServiceEnv(t)
	account := seedAccountWithTransactions(t, store, 3)

	views, err := svc.ListRecent(account.ID)
	require.NoError(t, err)
	require.Len(t, views, 3)

	assert.Equal(t, "Deposit of 3$", views[0].Description)
	assert.Equal(t, "Deposit of 2$", views[1].Description)
	assert.Equal(t, "Deposit of 1$", views[2].Description)
}

func TestListRecent_emptyHistory(t *testing.T) {
	svc, store := newTransactionServiceEnv(t)
	account := seedAccountWithTransactions(t, store, 0)

	views, err := svc.ListRecent(account.ID)
	require.NoError(t, err)
	assert.Empty(t, views)
}

func TestListRecent_unknownAccount(t *testing.T) {
	svc, _ := newTransactionServiceEnv(t)

	_, err := svc.ListRecent(999)
	assert.True(t, errors.IsCode(err, errors.AccountNotFound))
}
