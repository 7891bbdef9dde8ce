package service

import (
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"bank-service/internal/errors"
)

// DepositLimitTracker enforces the daily deposit cap shared by all accounts.
// It tracks the current calendar-day window [00:00:00, 23:59:59] and the
// running totals for that window. All state is guarded by a single mutex;
// callers authorize and consume in one step.
type DepositLimitTracker struct {
	mu sync.Mutex

	limit       decimal.Decimal
	remaining   decimal.Decimal
	deposited   decimal.Decimal
	windowStart time.Time
	windowEnd   time.Time

	now func() time.Time
}

func NewDepositLimitTracker(limit decimal.Decimal) *DepositLimitTracker {
	return newDepositLimitTracker(limit, time.Now)
}

func newDepositLimitTracker(limit decimal.Decimal, now func() time.Time) *DepositLimitTracker {
	n := now()
	return &DepositLimitTracker{
		limit:       limit,
		remaining:   limit,
		deposited:   decimal.Zero,
		windowStart: time.Date(n.Year(), n.Month(), n.Day(), 0, 0, 0, 0, n.Location()),
		windowEnd:   time.Date(n.Year(), n.Month(), n.Day(), 23, 59, 59, 0, n.Location()),
		now:         now,
	}
}

// Authorize admits a deposit of amount for an account whose last activity was
// at lastUpdated, consuming the cap on success.
//
// When the window has elapsed the counters reset and the window rolls forward
// one day; the deposit is then applied against the fresh cap. Otherwise the
// account's last activity must fall strictly inside the current window, or
// the deposit is rejected as outside the tracked window.
func (t *DepositLimitTracker) Authorize(lastUpdated time.Time, amount decimal.Decimal) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	now := t.now()

	if !now.Before(t.windowEnd) {
		t.deposited = decimal.Zero
		t.remaining = t.limit
		if err := t.consume(amount); err != nil {
			return err
		}
		t.windowStart = t.windowEnd
		t.windowEnd = t.windowEnd.Add(24 * time.Hour)
		return nil
	}

	if lastUpdated.After(t.windowStart) && lastUpdated.Before(t.windowEnd) && t.deposited.LessThanOrEqual(t.limit) {
		return t.consume(amount)
	}

	return errors.ErrDepositWindowInvalid
}

// consume validates the amount against the remaining cap and records it.
// Callers must hold the mutex.
func (t *DepositLimitTracker) consume(amount decimal.Decimal) error {
	if amount.Sign() <= 0 {
		return errors.ErrInvalidAmount
	}
	if t.remaining.Sub(amount).IsNegative() {
		return errors.ErrDepositLimitExceeded
	}
	t.remaining = t.remaining.Sub(amount)
	t.deposited = t.deposited.Add(amount)
	return nil
}

// Window returns the bounds of the current deposit window.
func (t *DepositLimitTracker) Window() (start, end time.Time) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.windowStart, t.windowEnd
}

// Remaining returns the cap still available in the current window.
func (t *DepositLimitTracker) Remaining() decimal.Decimal {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.remaining
}
