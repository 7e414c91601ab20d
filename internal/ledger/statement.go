package ledger

import (
	"slices"

	"github.com/shopspring/decimal"

	"github.com/awesomegic/bank/internal/model"
)

// Statement is a month view of one account. Transactions holds the stored
// deposits and withdrawals of the month in insertion order, followed by one
// computed interest entry dated the last day of the month.
type Statement struct {
	AccountID        string
	Period           model.Period
	BeginningBalance decimal.Decimal
	Transactions     []model.Transaction
}

// Line is a statement entry with the balance after it posts.
type Line struct {
	model.Transaction
	Balance decimal.Decimal
}

// GenerateStatement builds the statement of accountID for p. The interest
// entry is not stored, so repeated calls return the same result. Its amount
// is zero or negative when a backdated withdrawal left the month's balance
// at or below zero.
func (l *Ledger) GenerateStatement(accountID string, p model.Period) Statement {
	a := l.Account(accountID)

	l.mu.RLock()
	defer l.mu.RUnlock()

	var txns []model.Transaction
	for _, txn := range a.TransactionsForMonth(p) {
		if txn.Type == model.TxnDeposit || txn.Type == model.TxnWithdrawal {
			txns = append(txns, txn)
		}
	}
	txns = append(txns, model.Transaction{
		Date:    p.Last(),
		Account: accountID,
		Type:    model.TxnInterest,
		Amount:  l.calculateInterest(a, p),
	})

	return Statement{
		AccountID:        accountID,
		Period:           p,
		BeginningBalance: a.Balance(p.First().AddDate(0, 0, -1)),
		Transactions:     txns,
	}
}

// Interest returns the computed interest entry.
func (s Statement) Interest() model.Transaction {
	if len(s.Transactions) == 0 {
		return model.Transaction{}
	}
	return s.Transactions[len(s.Transactions)-1]
}

// Lines returns the entries in date order (insertion order within a day)
// with a running balance starting from BeginningBalance.
func (s Statement) Lines() []Line {
	txns := slices.Clone(s.Transactions)
	slices.SortStableFunc(txns, func(a, b model.Transaction) int {
		return a.Date.Compare(b.Date)
	})

	lines := make([]Line, len(txns))
	balance := s.BeginningBalance
	for i, txn := range txns {
		balance = balance.Add(txn.Signed())
		lines[i] = Line{Transaction: txn, Balance: balance}
	}
	return lines
}

// ClosingBalance returns the balance after every entry, interest included.
func (s Statement) ClosingBalance() decimal.Decimal {
	balance := s.BeginningBalance
	for _, txn := range s.Transactions {
		balance = balance.Add(txn.Signed())
	}
	return balance
}
