package ledger

import (
	"fmt"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/awesomegic/bank/internal/model"
)

func TestAccount_GetOrCreate(t *testing.T) {
	l := New()
	a1 := l.Account("AC001")
	a2 := l.Account("AC001")

	assert.Same(t, a1, a2)
	assert.Equal(t, "AC001", a1.ID())
	assert.Empty(t, a1.Transactions())
}

func TestAddTransaction(t *testing.T) {
	l := New()
	got, err := l.AddTransaction("2023-01-01", "AC001", "d", "100.00")
	require.NoError(t, err)

	assert.Equal(t, "20230101-01", got.ID)
	assert.Equal(t, "20230101", got.DateString())
	assert.Equal(t, "AC001", got.Account)
	assert.Equal(t, model.TxnDeposit, got.Type)
	assert.True(t, got.Amount.Equal(dec("100")))

	stored := l.Account("AC001").Transactions()
	require.Len(t, stored, 1)
	assert.Equal(t, got, stored[0])
}

func TestAddTransaction_Validation(t *testing.T) {
	tests := []struct {
		name              string
		date, typ, amount string
		err               error
	}{
		{name: "short date", date: "202301", typ: "D", amount: "100.00", err: ErrInvalidDateFormat},
		{name: "not a calendar day", date: "20230230", typ: "D", amount: "100.00", err: ErrInvalidDate},
		{name: "bad type", date: "20230101", typ: "X", amount: "100.00", err: ErrInvalidTransactionType},
		{name: "interest type", date: "20230101", typ: "I", amount: "100.00", err: ErrInvalidTransactionType},
		{name: "zero amount", date: "20230101", typ: "D", amount: "0", err: ErrInvalidAmount},
		{name: "negative amount", date: "20230101", typ: "D", amount: "-1", err: ErrInvalidAmount},
		{name: "three decimals", date: "20230101", typ: "D", amount: "100.123", err: ErrInvalidAmountPrecision},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := New()
			_, err := l.AddTransaction(tt.date, "AC001", tt.typ, tt.amount)
			require.ErrorIs(t, err, tt.err)
			assert.Empty(t, l.accounts, "failed call must not create an account")
		})
	}
}

func TestAddTransaction_InsufficientBalance(t *testing.T) {
	l := New()
	_, err := l.AddTransaction("20230101", "AC001", "W", "100.00")
	require.ErrorIs(t, err, ErrInsufficientBalance)
	assert.Contains(t, err.Error(), "0.00")
	assert.Empty(t, l.accounts)

	_, err = l.AddTransaction("20230101", "AC001", "D", "100.00")
	require.NoError(t, err)

	_, err = l.AddTransaction("20230102", "AC001", "W", "100.01")
	require.ErrorIs(t, err, ErrInsufficientBalance)
	assert.Contains(t, err.Error(), "100.00")

	// The rejected withdrawal did not consume 20230102-01.
	got, err := l.AddTransaction("20230102", "AC001", "W", "100.00")
	require.NoError(t, err)
	assert.Equal(t, "20230102-01", got.ID)
	assert.True(t, l.Account("AC001").CurrentBalance().IsZero())
}

func TestAddTransaction_BackdatedWithdrawalUsesCurrentBalance(t *testing.T) {
	l := New()
	_, err := l.AddTransaction("20230601", "AC001", "D", "100.00")
	require.NoError(t, err)

	// Nothing was on the account in January, but today's balance covers it.
	_, err = l.AddTransaction("20230115", "AC001", "W", "40.00")
	require.NoError(t, err)

	a := l.Account("AC001")
	assert.Equal(t, "-40.00", a.Balance(date(2023, 1, 31)).StringFixed(2))
	assert.Equal(t, "60.00", a.CurrentBalance().StringFixed(2))
}

func TestAddTransaction_IDsPerDayAcrossAccounts(t *testing.T) {
	l := New()
	var ids []string
	for _, in := range [][2]string{
		{"20230626", "AC001"},
		{"20230626", "AC002"},
		{"20230627", "AC001"},
		{"20230626", "AC001"},
	} {
		got, err := l.AddTransaction(in[0], in[1], "D", "10.00")
		require.NoError(t, err)
		ids = append(ids, got.ID)
	}
	assert.Equal(t, []string{"20230626-01", "20230626-02", "20230627-01", "20230626-03"}, ids)
}

func TestAddTransaction_Concurrent(t *testing.T) {
	l := New()
	const n = 50

	var wg sync.WaitGroup
	var mu sync.Mutex
	ids := make([]string, 0, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			acct := "AC001"
			if i%2 == 0 {
				acct = "AC002"
			}
			got, err := l.AddTransaction("20230101", acct, "D", "1.00")
			if err != nil {
				t.Errorf("AddTransaction: %v", err)
				return
			}
			mu.Lock()
			ids = append(ids, got.ID)
			mu.Unlock()
		}(i)
	}
	wg.Wait()

	require.Len(t, ids, n)
	sort.Strings(ids)
	for i, got := range ids {
		assert.Equal(t, fmt.Sprintf("20230101-%02d", i+1), got)
	}
	assert.Equal(t, "25.00", l.Account("AC001").CurrentBalance().StringFixed(2))
	assert.Equal(t, "25.00", l.Account("AC002").CurrentBalance().StringFixed(2))
}

func TestBalance_UsesClock(t *testing.T) {
	l := New(WithClock(func() time.Time { return date(2023, 6, 15) }))
	_, err := l.AddTransaction("20230601", "AC001", "D", "100.00")
	require.NoError(t, err)
	_, err = l.AddTransaction("20230701", "AC001", "D", "50.00")
	require.NoError(t, err)

	assert.Equal(t, "100.00", l.Balance("AC001").StringFixed(2))
}

func TestBalance_ClockInOtherZone(t *testing.T) {
	tests := []struct {
		name  string
		clock time.Time
		date  string
		want  string
	}{
		{
			name:  "east of UTC counts today",
			clock: time.Date(2023, 6, 15, 8, 0, 0, 0, time.FixedZone("AEST", 10*3600)),
			date:  "20230615",
			want:  "100.00",
		},
		{
			name:  "west of UTC skips tomorrow",
			clock: time.Date(2023, 6, 15, 21, 0, 0, 0, time.FixedZone("EDT", -4*3600)),
			date:  "20230616",
			want:  "0.00",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := New(WithClock(func() time.Time { return tt.clock }))
			_, err := l.AddTransaction(tt.date, "AC001", "D", "100.00")
			require.NoError(t, err)

			assert.Equal(t, tt.want, l.Balance("AC001").StringFixed(2))
		})
	}
}

func TestAddInterestRule(t *testing.T) {
	l := New()
	rule, err := l.AddInterestRule("20230101", "RULE01", "1.95")
	require.NoError(t, err)

	assert.Equal(t, "20230101", rule.DateString())
	assert.Equal(t, "RULE01", rule.ID)
	assert.True(t, rule.Rate.Equal(dec("1.95")))
	assert.Equal(t, []model.InterestRule{rule}, l.InterestRules())
}

func TestAddInterestRule_Validation(t *testing.T) {
	l := New()

	_, err := l.AddInterestRule("202301", "RULE01", "1.95")
	assert.ErrorIs(t, err, ErrInvalidDateFormat)

	_, err = l.AddInterestRule("20230231", "RULE01", "1.95")
	assert.ErrorIs(t, err, ErrInvalidDate)

	for _, rate := range []string{"0", "100", "-2", "x"} {
		_, err := l.AddInterestRule("20230101", "RULE01", rate)
		assert.ErrorIs(t, err, ErrInvalidInterestRate, "rate: %s", rate)
	}
	assert.Empty(t, l.InterestRules())
}

func TestAddInterestRule_ReplacesSameDate(t *testing.T) {
	l := New()
	_, err := l.AddInterestRule("20230101", "RULE01", "1.95")
	require.NoError(t, err)
	rule, err := l.AddInterestRule("2023-01-01", "RULE02", "2.00")
	require.NoError(t, err)

	rules := l.InterestRules()
	require.Len(t, rules, 1)
	assert.Equal(t, rule, rules[0])
	assert.Equal(t, "RULE02", rules[0].ID)
}

func TestAddInterestRule_SortedByDate(t *testing.T) {
	l := New()
	for _, in := range [][3]string{
		{"20230615", "RULE03", "2.20"},
		{"20230101", "RULE01", "1.95"},
		{"20230520", "RULE02", "1.90"},
	} {
		_, err := l.AddInterestRule(in[0], in[1], in[2])
		require.NoError(t, err)
	}

	rules := l.InterestRules()
	require.Len(t, rules, 3)
	assert.Equal(t, "20230101", rules[0].DateString())
	assert.Equal(t, "20230520", rules[1].DateString())
	assert.Equal(t, "20230615", rules[2].DateString())

	// The snapshot is detached from the ledger.
	rules[0].ID = "CHANGED"
	assert.Equal(t, "RULE01", l.InterestRules()[0].ID)
}

func TestApplicableInterestRule(t *testing.T) {
	l := New()
	_, err := l.AddInterestRule("20230101", "RULE01", "1.95")
	require.NoError(t, err)
	_, err = l.AddInterestRule("20230201", "RULE02", "2.00")
	require.NoError(t, err)

	tests := []struct {
		date   time.Time
		wantID string
		wantOK bool
	}{
		{date(2022, 12, 31), "", false},
		{date(2023, 1, 1), "RULE01", true},
		{date(2023, 1, 15), "RULE01", true},
		{date(2023, 2, 1), "RULE02", true},
		{date(2024, 1, 1), "RULE02", true},
	}
	for _, tt := range tests {
		rule, ok := l.ApplicableInterestRule(tt.date)
		assert.Equal(t, tt.wantOK, ok, "date %s", tt.date.Format(model.DateLayout))
		assert.Equal(t, tt.wantID, rule.ID, "date %s", tt.date.Format(model.DateLayout))
	}
}

func TestLogging(t *testing.T) {
	logger, hook := logtest.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)
	l := New(WithLogger(logger))

	_, err := l.AddTransaction("20230101", "AC001", "D", "100.00")
	require.NoError(t, err)
	require.NotNil(t, hook.LastEntry())
	assert.Equal(t, "Transaction recorded", hook.LastEntry().Message)
	assert.Equal(t, "20230101-01", hook.LastEntry().Data["txn_id"])

	_, err = l.AddTransaction("20230101", "AC001", "W", "500.00")
	require.Error(t, err)
	assert.Equal(t, "Transaction rejected", hook.LastEntry().Message)

	_, err = l.AddInterestRule("20230101", "RULE01", "1.95")
	require.NoError(t, err)
	assert.Equal(t, "Interest rule stored", hook.LastEntry().Message)
	assert.Len(t, hook.AllEntries(), 3)
}
