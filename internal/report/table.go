// Package report renders ledger data as pipe tables and CSV.
package report

import (
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/awesomegic/bank/internal/ledger"
	"github.com/awesomegic/bank/internal/model"
)

type align int

const (
	left align = iota
	right
)

type column struct {
	header string
	align  align
}

type table struct {
	columns []column
	rows    [][]string
}

func (t *table) add(cells ...string) {
	t.rows = append(t.rows, cells)
}

func (t *table) render(w io.Writer) error {
	widths := make([]int, len(t.columns))
	for i, c := range t.columns {
		widths[i] = len(c.header)
	}
	for _, row := range t.rows {
		for i, cell := range row {
			widths[i] = max(widths[i], len(cell))
		}
	}

	headers := make([]string, len(t.columns))
	for i, c := range t.columns {
		headers[i] = c.header
	}
	if err := t.line(w, widths, headers, true); err != nil {
		return err
	}
	for _, row := range t.rows {
		if err := t.line(w, widths, row, false); err != nil {
			return err
		}
	}
	return nil
}

func (t *table) line(w io.Writer, widths []int, cells []string, header bool) error {
	padded := make([]string, len(cells))
	for i, cell := range cells {
		if t.columns[i].align == right && !header {
			padded[i] = fmt.Sprintf("%*s", widths[i], cell)
		} else {
			padded[i] = fmt.Sprintf("%-*s", widths[i], cell)
		}
	}
	_, err := fmt.Fprintf(w, "| %s |\n", strings.Join(padded, " | "))
	return err
}

// WriteTransactions prints an account's transactions in date order.
func WriteTransactions(w io.Writer, accountID string, txns []model.Transaction) error {
	txns = slices.Clone(txns)
	slices.SortStableFunc(txns, func(a, b model.Transaction) int {
		return a.Date.Compare(b.Date)
	})

	if _, err := fmt.Fprintf(w, "Account: %s\n", accountID); err != nil {
		return err
	}
	t := &table{columns: []column{{"Date", left}, {"Txn Id", left}, {"Type", left}, {"Amount", right}}}
	for _, txn := range txns {
		t.add(txn.DateString(), txn.ID, string(txn.Type), txn.Amount.StringFixed(2))
	}
	return t.render(w)
}

// WriteRules prints interest rules.
func WriteRules(w io.Writer, rules []model.InterestRule) error {
	if _, err := fmt.Fprintln(w, "Interest rules:"); err != nil {
		return err
	}
	t := &table{columns: []column{{"Date", left}, {"RuleId", left}, {"Rate (%)", right}}}
	for _, r := range rules {
		t.add(r.DateString(), r.ID, r.Rate.StringFixed(2))
	}
	return t.render(w)
}

// WriteStatement prints a statement with running balances.
func WriteStatement(w io.Writer, stmt ledger.Statement) error {
	if _, err := fmt.Fprintf(w, "Account: %s\n", stmt.AccountID); err != nil {
		return err
	}
	t := &table{columns: []column{{"Date", left}, {"Txn Id", left}, {"Type", left}, {"Amount", right}, {"Balance", right}}}
	for _, ln := range stmt.Lines() {
		t.add(ln.DateString(), ln.ID, string(ln.Type), ln.Amount.StringFixed(2), ln.Balance.StringFixed(2))
	}
	return t.render(w)
}
