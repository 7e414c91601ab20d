package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// DateLayout is the canonical 8-digit date form used in IDs and output.
const DateLayout = "20060102"

// TxnType classifies a ledger entry.
type TxnType string

const (
	TxnDeposit    TxnType = "D"
	TxnWithdrawal TxnType = "W"
	TxnInterest   TxnType = "I"
)

// Sign returns +1 for entries that credit the account, -1 for debits and 0
// for anything unrecognized.
func (t TxnType) Sign() int64 {
	switch t {
	case TxnDeposit, TxnInterest:
		return 1
	case TxnWithdrawal:
		return -1
	}
	return 0
}

// Transaction is a single ledger entry. Values are never modified after
// they are appended to an account.
type Transaction struct {
	ID      string // "YYYYMMDD-NN"; empty for computed interest
	Date    time.Time
	Account string
	Type    TxnType
	Amount  decimal.Decimal
}

// Signed returns the amount with the sign the entry contributes to a balance.
func (t Transaction) Signed() decimal.Decimal {
	return t.Amount.Mul(decimal.NewFromInt(t.Type.Sign()))
}

// DateString formats the entry date as YYYYMMDD.
func (t Transaction) DateString() string {
	return t.Date.Format(DateLayout)
}
