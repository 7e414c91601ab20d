package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// InterestRule is an annual rate (percent) effective from Date until a rule
// with a later date supersedes it.
type InterestRule struct {
	Date time.Time
	ID   string
	Rate decimal.Decimal
}

// DateString formats the effective date as YYYYMMDD.
func (r InterestRule) DateString() string {
	return r.Date.Format(DateLayout)
}
