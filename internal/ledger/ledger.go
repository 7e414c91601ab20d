// Package ledger records deposits and withdrawals for named accounts,
// versions annual interest rules by effective date and builds month-end
// statements with accrued interest.
package ledger

import (
	"fmt"
	"io"
	"slices"
	"sort"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/awesomegic/bank/internal/id"
	"github.com/awesomegic/bank/internal/model"
)

// DefaultDayCount is the day-count basis interest is divided by.
const DefaultDayCount = 365

// Ledger owns every account, the interest rules and the per-day transaction
// sequence. Mutations are serialized; queries may run concurrently.
type Ledger struct {
	mu       sync.RWMutex
	accounts map[string]*Account
	rules    []model.InterestRule // sorted by Date, one per date
	seq      *id.Sequencer

	dayCount decimal.Decimal
	now      func() time.Time
	logger   *logrus.Logger
}

// Option configures a Ledger.
type Option func(*Ledger)

// WithLogger sets the logger. The default discards everything.
func WithLogger(logger *logrus.Logger) Option {
	return func(l *Ledger) { l.logger = logger }
}

// WithClock sets the source of "today" for Balance.
func WithClock(now func() time.Time) Option {
	return func(l *Ledger) { l.now = now }
}

// WithDayCount sets the day-count basis for interest. Non-positive values
// are ignored.
func WithDayCount(days int) Option {
	return func(l *Ledger) {
		if days > 0 {
			l.dayCount = decimal.NewFromInt(int64(days))
		}
	}
}

// New creates an empty Ledger.
func New(opts ...Option) *Ledger {
	discard := logrus.New()
	discard.SetOutput(io.Discard)

	l := &Ledger{
		accounts: make(map[string]*Account),
		seq:      id.NewSequencer(),
		dayCount: decimal.NewFromInt(DefaultDayCount),
		now:      time.Now,
		logger:   discard,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Account returns the account with the given id, creating it if needed.
func (l *Ledger) Account(accountID string) *Account {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.account(accountID)
}

func (l *Ledger) account(accountID string) *Account {
	a, ok := l.accounts[accountID]
	if !ok {
		a = NewAccount(accountID)
		l.accounts[accountID] = a
	}
	return a
}

// Balance returns the balance of accountID as of today. Today is the
// calendar day of the clock in its own location, so transactions dated today
// count however far into the day the clock is.
func (l *Ledger) Balance(accountID string) decimal.Decimal {
	a := l.Account(accountID)
	y, m, d := l.now().Date()
	today := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)

	l.mu.RLock()
	defer l.mu.RUnlock()
	return a.Balance(today)
}

// AddTransaction validates and records a deposit or withdrawal. Withdrawals
// are checked against the account's full current balance, whatever the
// transaction date.
func (l *Ledger) AddTransaction(date, accountID, txnType, amount string) (model.Transaction, error) {
	txn, err := l.addTransaction(date, accountID, txnType, amount)
	if err != nil {
		l.logger.WithFields(logrus.Fields{
			"account": accountID,
			"date":    date,
			"type":    txnType,
			"amount":  amount,
			"error":   err,
		}).Debug("Transaction rejected")
		return model.Transaction{}, err
	}

	l.logger.WithFields(logrus.Fields{
		"account": txn.Account,
		"txn_id":  txn.ID,
		"type":    txn.Type,
		"amount":  txn.Amount.StringFixed(2),
	}).Debug("Transaction recorded")
	return txn, nil
}

func (l *Ledger) addTransaction(date, accountID, txnType, amount string) (model.Transaction, error) {
	d, err := ParseDate(date)
	if err != nil {
		return model.Transaction{}, err
	}
	t, err := ParseTxnType(txnType)
	if err != nil {
		return model.Transaction{}, err
	}
	amt, err := ParseAmount(amount)
	if err != nil {
		return model.Transaction{}, err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if t == model.TxnWithdrawal {
		// A rejected withdrawal must not leave a new account behind.
		balance := decimal.Zero
		if a, ok := l.accounts[accountID]; ok {
			balance = a.CurrentBalance()
		}
		if amt.GreaterThan(balance) {
			return model.Transaction{}, fmt.Errorf("%w: %s", ErrInsufficientBalance, balance.StringFixed(2))
		}
	}

	txn := model.Transaction{
		ID:      l.seq.Next(d),
		Date:    d,
		Account: accountID,
		Type:    t,
		Amount:  amt,
	}
	l.account(accountID).Add(txn)
	return txn, nil
}

// AddInterestRule validates and stores a rule. A rule with the same
// effective date as an existing one replaces it. The date must name a real
// calendar day: "20230231" fails with ErrInvalidDate.
func (l *Ledger) AddInterestRule(date, ruleID, rate string) (model.InterestRule, error) {
	d, err := ParseDate(date)
	if err != nil {
		return model.InterestRule{}, err
	}
	r, err := ParseRate(rate)
	if err != nil {
		return model.InterestRule{}, err
	}
	rule := model.InterestRule{Date: d, ID: ruleID, Rate: r}

	l.mu.Lock()
	defer l.mu.Unlock()

	l.rules = slices.DeleteFunc(l.rules, func(existing model.InterestRule) bool {
		return existing.Date.Equal(d)
	})
	l.rules = append(l.rules, rule)
	slices.SortFunc(l.rules, func(a, b model.InterestRule) int {
		return a.Date.Compare(b.Date)
	})

	l.logger.WithFields(logrus.Fields{
		"rule_id": rule.ID,
		"date":    rule.DateString(),
		"rate":    rule.Rate.String(),
	}).Debug("Interest rule stored")
	return rule, nil
}

// InterestRules returns a snapshot of the rules ordered by effective date.
func (l *Ledger) InterestRules() []model.InterestRule {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return slices.Clone(l.rules)
}

// ApplicableInterestRule returns the rule with the latest effective date on
// or before date.
func (l *Ledger) ApplicableInterestRule(date time.Time) (model.InterestRule, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.applicableRule(date)
}

func (l *Ledger) applicableRule(date time.Time) (model.InterestRule, bool) {
	i := sort.Search(len(l.rules), func(i int) bool {
		return l.rules[i].Date.After(date)
	})
	if i == 0 {
		return model.InterestRule{}, false
	}
	return l.rules[i-1], true
}
