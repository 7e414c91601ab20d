package ledger

import (
	"errors"

	"github.com/awesomegic/bank/internal/model"
)

// Validation failures returned by Ledger. A failed call never mutates the
// ledger.
var (
	ErrInvalidDateFormat      = errors.New("date should be in YYYYMMdd format")
	ErrInvalidDate            = errors.New("invalid date")
	ErrInvalidTransactionType = errors.New("type should be D for deposit or W for withdrawal")
	ErrInvalidAmount          = errors.New("amount must be greater than zero")
	ErrInvalidAmountPrecision = errors.New("amount must have at most 2 decimal places")
	ErrInsufficientBalance    = errors.New("insufficient balance for withdrawal")
	ErrInvalidInterestRate    = errors.New("interest rate must be greater than 0 and less than 100")
	ErrInvalidPeriod          = model.ErrInvalidPeriod
)
