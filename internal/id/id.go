package id

import (
	"fmt"
	"time"
)

const dateLayout = "20060102"

// FormatTxnID returns a transaction ID like "20230626-02".
func FormatTxnID(date time.Time, seq int) string {
	return fmt.Sprintf("%s-%02d", date.Format(dateLayout), seq)
}

// Sequencer hands out 1-based sequence numbers per calendar day.
// It is not safe for concurrent use.
type Sequencer struct {
	last map[string]int
}

// NewSequencer creates an empty Sequencer.
func NewSequencer() *Sequencer {
	return &Sequencer{last: make(map[string]int)}
}

// Next consumes and returns the next ID for date.
func (s *Sequencer) Next(date time.Time) string {
	key := date.Format(dateLayout)
	s.last[key]++
	return FormatTxnID(date, s.last[key])
}
