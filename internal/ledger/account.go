package ledger

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/awesomegic/bank/internal/model"
)

// Account holds the append-only transaction history of one account.
// Account is not synchronized; use it through Ledger when sharing across
// goroutines.
type Account struct {
	id   string
	txns []model.Transaction
}

// NewAccount creates an empty account.
func NewAccount(id string) *Account {
	return &Account{id: id}
}

// ID returns the account identifier.
func (a *Account) ID() string { return a.id }

// Add appends txn. Validation is the caller's job.
func (a *Account) Add(txn model.Transaction) {
	a.txns = append(a.txns, txn)
}

// Transactions returns a copy of the history in insertion order.
func (a *Account) Transactions() []model.Transaction {
	out := make([]model.Transaction, len(a.txns))
	copy(out, a.txns)
	return out
}

// Balance sums every transaction dated on or before asOf.
func (a *Account) Balance(asOf time.Time) decimal.Decimal {
	total := decimal.Zero
	for _, txn := range a.txns {
		if txn.Date.After(asOf) {
			continue
		}
		total = total.Add(txn.Signed())
	}
	return total
}

// CurrentBalance sums every transaction regardless of date.
func (a *Account) CurrentBalance() decimal.Decimal {
	total := decimal.Zero
	for _, txn := range a.txns {
		total = total.Add(txn.Signed())
	}
	return total
}

// TransactionsForMonth returns the entries dated inside p, in insertion order.
func (a *Account) TransactionsForMonth(p model.Period) []model.Transaction {
	var out []model.Transaction
	for _, txn := range a.txns {
		if p.Contains(txn.Date) {
			out = append(out, txn)
		}
	}
	return out
}
