package ledger

import (
	"github.com/shopspring/decimal"

	"github.com/awesomegic/bank/internal/model"
)

// accrual is a run of consecutive days with the same rule and the same
// end-of-day balance.
type accrual struct {
	startDay int
	balance  decimal.Decimal
	rule     model.InterestRule
}

// through returns balance * rate% * days for the days startDay..endDay-1.
func (a accrual) through(endDay int) decimal.Decimal {
	days := decimal.NewFromInt(int64(endDay - a.startDay))
	return a.balance.Mul(a.rule.Rate).Div(hundred).Mul(days)
}

// CalculateInterest returns the interest accountID earns in p, rounded to
// cents.
func (l *Ledger) CalculateInterest(accountID string, p model.Period) decimal.Decimal {
	a := l.Account(accountID)

	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.calculateInterest(a, p)
}

// calculateInterest applies the end-of-day balance method. Each day's
// deposits and withdrawals post before that day accrues, and an accrual
// closes whenever the applicable rule or the balance changes. Days before
// the first rule ever took effect earn nothing.
func (l *Ledger) calculateInterest(a *Account, p model.Period) decimal.Decimal {
	days := p.Days()
	balance := a.Balance(p.First().AddDate(0, 0, -1))

	net := make(map[int]decimal.Decimal)
	for _, txn := range a.TransactionsForMonth(p) {
		if txn.Type != model.TxnDeposit && txn.Type != model.TxnWithdrawal {
			continue
		}
		day := txn.Date.Day()
		net[day] = net[day].Add(txn.Signed())
	}

	total := decimal.Zero
	var open *accrual
	for day := 1; day <= days; day++ {
		if delta, ok := net[day]; ok {
			balance = balance.Add(delta)
		}

		rule, ok := l.applicableRule(p.Day(day))
		if !ok {
			continue
		}
		if open != nil && open.rule.Date.Equal(rule.Date) && open.balance.Equal(balance) {
			continue
		}
		if open != nil {
			total = total.Add(open.through(day))
		}
		open = &accrual{startDay: day, balance: balance, rule: rule}
	}
	if open != nil {
		total = total.Add(open.through(days + 1))
	}

	return total.Div(l.dayCount).Round(2)
}
