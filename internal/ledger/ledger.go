// Package ledger implements the native value-transfer substrate: a
// thread-safe map of account id → balance in indivisible base units.
// Order escrow accounts live on the same ledger, keyed by the order's
// derived record address, so total supply is conserved by construction.
package ledger

import (
	"sync"

	"github.com/efreitasn/ledgermatch/internal/domain"
)

// Ledger holds all account balances. Every movement validates fully
// before mutating, so a failed operation leaves no partial state.
type Ledger struct {
	mu       sync.RWMutex
	balances map[string]uint64
}

// New creates an empty Ledger.
func New() *Ledger {
	return &Ledger{
		balances: make(map[string]uint64),
	}
}

// CreateAccount registers a participant account with an initial
// balance. It returns domain.ErrAccountAlreadyExists if the account
// id is taken.
func (l *Ledger) CreateAccount(id string, initial uint64) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if _, exists := l.balances[id]; exists {
		return domain.ErrAccountAlreadyExists
	}
	l.balances[id] = initial
	return nil
}

// Balance returns the account's current balance, or
// domain.ErrAccountNotFound.
func (l *Ledger) Balance(id string) (uint64, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	bal, ok := l.balances[id]
	if !ok {
		return 0, domain.ErrAccountNotFound
	}
	return bal, nil
}

// Exists reports whether an account is present on the ledger.
func (l *Ledger) Exists(id string) bool {
	l.mu.RLock()
	defer l.mu.RUnlock()

	_, ok := l.balances[id]
	return ok
}

// Transfer moves amount from one account to another. The source must
// exist and hold at least amount; the destination is created if it
// does not exist yet, which is how order escrow accounts come into
// being at placement.
func (l *Ledger) Transfer(from, to string, amount uint64) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	src, ok := l.balances[from]
	if !ok {
		return domain.ErrAccountNotFound
	}
	if src < amount {
		return domain.ErrInsufficientBalance
	}

	l.balances[from] = src - amount
	l.balances[to] += amount
	return nil
}

// Settle performs the three-way movement of a match as one atomic
// effect: debit sellerPayment+buyerRefund from the escrow account,
// credit sellerPayment to the seller and buyerRefund to the buyer.
// All three accounts must exist and the escrow must cover the total
// debit; nothing moves otherwise.
func (l *Ledger) Settle(escrow, seller, buyer string, sellerPayment, buyerRefund uint64) error {
	totalDebit, err := domain.CheckedAdd(sellerPayment, buyerRefund)
	if err != nil {
		return err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	esc, ok := l.balances[escrow]
	if !ok {
		return domain.ErrAccountNotFound
	}
	if _, ok := l.balances[seller]; !ok {
		return domain.ErrAccountNotFound
	}
	if _, ok := l.balances[buyer]; !ok {
		return domain.ErrAccountNotFound
	}
	if esc < totalDebit {
		return domain.ErrInsufficientBalance
	}

	l.balances[escrow] = esc - totalDebit
	l.balances[seller] += sellerPayment
	l.balances[buyer] += buyerRefund
	return nil
}

// CloseAccount drains the account's remaining balance to the
// recipient and removes the account. Used when an order record is
// destroyed: whatever is left in its escrow account (the storage
// deposit) goes back to the owner. Returns the drained amount.
func (l *Ledger) CloseAccount(id, to string) (uint64, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	bal, ok := l.balances[id]
	if !ok {
		return 0, domain.ErrAccountNotFound
	}
	if _, ok := l.balances[to]; !ok {
		return 0, domain.ErrAccountNotFound
	}

	delete(l.balances, id)
	l.balances[to] += bal
	return bal, nil
}

// TotalSupply returns the sum of all balances. Used by tests to check
// fund conservation; the sum is computed with saturation because it
// is diagnostic, not custodial.
func (l *Ledger) TotalSupply() uint64 {
	l.mu.RLock()
	defer l.mu.RUnlock()

	var total uint64
	for _, b := range l.balances {
		total += b
	}
	return total
}
