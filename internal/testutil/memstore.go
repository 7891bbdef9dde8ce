// Package testutil provides in-memory test doubles for the store and
// notification interfaces.
package testutil

import (
	"sync"

	"bank-service/internal/domain"
	"bank-service/internal/errors"
)

// MemStore is an in-memory domain.Store. WithTransaction runs the closure
// against the same store without rollback; service-level validation happens
// before any mutation, which is what the unit tests exercise.
type MemStore struct {
	mu           sync.Mutex
	nextID       int64
	accounts     map[int64]*domain.Account
	transactions map[int64][]domain.Transaction
}

func NewMemStore() *MemStore {
	return &MemStore{
		nextID:       1,
		accounts:     make(map[int64]*domain.Account),
		transactions: make(map[int64][]domain.Transaction),
	}
}

func (s *MemStore) Account() domain.AccountRepository {
	return &memAccountRepository{store: s}
}

func (s *MemStore) Transaction() domain.TransactionRepository {
	return &memTransactionRepository{store: s}
}

func (s *MemStore) WithTransaction(fn func(domain.Store) error) error {
	return fn(s)
}

type memAccountRepository struct {
	store *MemStore
}

func (r *memAccountRepository) Create(account *domain.Account) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.accounts {
		if existing.LastName == account.LastName {
			return errors.ErrDuplicateLastName
		}
	}

	account.ID = s.nextID
	s.nextID++

	saved := *account
	s.accounts[account.ID] = &saved
	return nil
}

func (r *memAccountRepository) GetByID(id int64) (*domain.Account, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	account, ok := s.accounts[id]
	if !ok {
		return nil, errors.ErrAccountNotFound
	}
	copy := *account
	return &copy, nil
}

func (r *memAccountRepository) GetByIDForUpdate(id int64) (*domain.Account, error) {
	return r.GetByID(id)
}

func (r *memAccountRepository) GetByFirstName(firstName string) (*domain.Account, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, account := range s.accounts {
		if account.FirstName == firstName {
			copy := *account
			return &copy, nil
		}
	}
	return nil, errors.ErrAccountNotFound
}

func (r *memAccountRepository) GetByLastName(lastName string) (*domain.Account, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, account := range s.accounts {
		if account.LastName == lastName {
			copy := *account
			return &copy, nil
		}
	}
	return nil, errors.ErrAccountNotFound
}

func (r *memAccountRepository) Update(account *domain.Account) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.accounts[account.ID]; !ok {
		return errors.ErrAccountNotFound
	}
	saved := *account
	s.accounts[account.ID] = &saved
	return nil
}

func (r *memAccountRepository) Delete(id int64) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.accounts[id]; !ok {
		return errors.ErrAccountNotFound
	}
	delete(s.accounts, id)
	// Transactions never outlive their account.
	delete(s.transactions, id)
	return nil
}

type memTransactionRepository struct {
	store *MemStore
}

func (r *memTransactionRepository) Create(tx *domain.Transaction) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.accounts[tx.AccountID]; !ok {
		return errors.ErrAccountNotFound
	}
	s.transactions[tx.AccountID] = append(s.transactions[tx.AccountID], *tx)
	return nil
}

func (r *memTransactionRepository) ListByAccount(accountID int64) ([]domain.Transaction, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	transactions := make([]domain.Transaction, len(s.transactions[accountID]))
	copy(transactions, s.transactions[accountID])
	return transactions, nil
}
