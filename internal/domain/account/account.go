package account

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/shopspring/decimal"
)

// Account owns one balance and the ledger of transaction ids already admitted
// against it. The balance is kept behind an atomic pointer so reads and
// deposits never block; only Withdraw takes a lock. Ledger entries are never
// evicted: an id admitted once stays admitted for the life of the account.
type Account struct {
	id string

	balance atomic.Pointer[decimal.Decimal]

	// withdrawMu serializes the balance check against the subtraction in
	// Withdraw. Deposits do not take it.
	withdrawMu sync.Mutex

	processed      sync.Map // transaction id -> admission time.Time
	processedCount atomic.Int64
}

// New panics on a negative initial balance: account provisioning is caller
// code, and a negative opening balance is a bug there, not a business outcome.
func New(id string, initialBalance decimal.Decimal) *Account {
	if initialBalance.IsNegative() {
		panic("account: negative initial balance for " + id)
	}
	a := &Account{id: id}
	a.balance.Store(&initialBalance)
	return a
}

func (a *Account) ID() string {
	return a.id
}

// Balance returns the most recently committed balance. Lock-free.
func (a *Account) Balance() decimal.Decimal {
	return *a.balance.Load()
}

// Deposit atomically adds amount to the balance via an optimistic
// compare-and-swap loop. A failed swap means another goroutine committed
// between our read and write, so we re-read and retry; there is no
// precondition on the old balance, so the loop always terminates with the
// deposit applied exactly once. Panics if amount is not positive.
func (a *Account) Deposit(amount decimal.Decimal) {
	if !amount.IsPositive() {
		panic("account: deposit amount must be positive")
	}
	for {
		cur := a.balance.Load()
		next := cur.Add(amount)
		if a.balance.CompareAndSwap(cur, &next) {
			return
		}
	}
}

// Withdraw subtracts amount if the balance covers it, reporting whether it
// did. The check and the subtraction are a compound action, so the whole
// sequence runs under the account's withdraw lock; the write itself is still
// a compare-and-swap because deposits commit without the lock and must not be
// overwritten. Panics if amount is not positive.
func (a *Account) Withdraw(amount decimal.Decimal) bool {
	if !amount.IsPositive() {
		panic("account: withdraw amount must be positive")
	}
	a.withdrawMu.Lock()
	defer a.withdrawMu.Unlock()
	for {
		cur := a.balance.Load()
		if cur.LessThan(amount) {
			return false
		}
		next := cur.Sub(amount)
		if a.balance.CompareAndSwap(cur, &next) {
			return true
		}
		// A concurrent deposit moved the balance; it can only have grown,
		// so re-check and try again.
	}
}

// MarkProcessed records id in the ledger if it is not there yet, returning
// true iff this call performed the insert. The insert-if-absent is a single
// atomic LoadOrStore; exactly one of any number of concurrent callers with
// the same id wins.
func (a *Account) MarkProcessed(id string) bool {
	if _, loaded := a.processed.LoadOrStore(id, time.Now()); loaded {
		return false
	}
	a.processedCount.Add(1)
	return true
}

func (a *Account) IsProcessed(id string) bool {
	_, ok := a.processed.Load(id)
	return ok
}

// ProcessedAt returns the first-admission time of id, if it was ever admitted.
func (a *Account) ProcessedAt(id string) (time.Time, bool) {
	v, ok := a.processed.Load(id)
	if !ok {
		return time.Time{}, false
	}
	return v.(time.Time), true
}

func (a *Account) ProcessedCount() int64 {
	return a.processedCount.Load()
}
