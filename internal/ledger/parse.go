package ledger

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/awesomegic/bank/internal/model"
)

var (
	nonDigit = regexp.MustCompile(`[^0-9]`)
	// Plain decimals only; exponent and signed forms are not amounts.
	amountPattern = regexp.MustCompile(`^\d+(\.\d+)?$`)
	hundred       = decimal.NewFromInt(100)
)

// NormalizeDate strips every non-digit from s. "2023-06-26", "2023/06/26"
// and "20230626" all normalize to "20230626".
func NormalizeDate(s string) (string, error) {
	digits := nonDigit.ReplaceAllString(s, "")
	if len(digits) != 8 {
		return "", fmt.Errorf("%w: %q", ErrInvalidDateFormat, s)
	}
	return digits, nil
}

// ParseDate normalizes s and checks that it names a real calendar day.
func ParseDate(s string) (time.Time, error) {
	digits, err := NormalizeDate(s)
	if err != nil {
		return time.Time{}, err
	}
	d, err := time.Parse(model.DateLayout, digits)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %s", ErrInvalidDate, digits)
	}
	return d, nil
}

// ParseTxnType accepts D or W in either case. Interest entries are only ever
// produced by statements.
func ParseTxnType(s string) (model.TxnType, error) {
	switch t := model.TxnType(strings.ToUpper(s)); t {
	case model.TxnDeposit, model.TxnWithdrawal:
		return t, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidTransactionType, s)
}

// ParseAmount parses a positive plain decimal with at most two decimal
// places. Precision is checked on the literal input, so "100.10" passes and
// "100.123" does not.
func ParseAmount(s string) (decimal.Decimal, error) {
	if !amountPattern.MatchString(s) {
		return decimal.Decimal{}, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}
	amt, err := decimal.NewFromString(s)
	if err != nil || !amt.IsPositive() {
		return decimal.Decimal{}, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}
	if _, frac, ok := strings.Cut(s, "."); ok && len(frac) > 2 {
		return decimal.Decimal{}, fmt.Errorf("%w: %q", ErrInvalidAmountPrecision, s)
	}
	return amt, nil
}

// ParseRate parses an annual percentage strictly between 0 and 100.
func ParseRate(s string) (decimal.Decimal, error) {
	rate, err := decimal.NewFromString(s)
	if err != nil || !rate.IsPositive() || rate.GreaterThanOrEqual(hundred) {
		return decimal.Decimal{}, fmt.Errorf("%w: %q", ErrInvalidInterestRate, s)
	}
	return rate, nil
}
