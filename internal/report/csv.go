package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/awesomegic/bank/internal/ledger"
)

// Header is the CSV header for an exported statement.
const Header = "date,txn_id,type,amount,balance"

const (
	numFields  = 5
	colDate    = 0
	colTxnID   = 1
	colType    = 2
	colAmount  = 3
	colBalance = 4
)

// MarshalLine converts a statement line to a CSV row.
func MarshalLine(ln ledger.Line) []string {
	row := make([]string, numFields)
	row[colDate] = ln.DateString()
	row[colTxnID] = ln.ID
	row[colType] = string(ln.Type)
	row[colAmount] = ln.Amount.StringFixed(2)
	row[colBalance] = ln.Balance.StringFixed(2)
	return row
}

// WriteStatementCSV writes a statement (including header) in date order.
func WriteStatementCSV(w io.Writer, stmt ledger.Statement) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(strings.Split(Header, ",")); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for i, ln := range stmt.Lines() {
		if err := cw.Write(MarshalLine(ln)); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// StatementFileName returns "<account>-<YYYYMM>.csv" with anything but
// letters, digits, '-' and '_' dropped from the account.
func StatementFileName(stmt ledger.Statement) string {
	account := strings.Map(func(r rune) rune {
		if r >= 'A' && r <= 'Z' || r >= 'a' && r <= 'z' || r >= '0' && r <= '9' || r == '-' || r == '_' {
			return r
		}
		return -1
	}, stmt.AccountID)
	return fmt.Sprintf("%s-%s.csv", account, stmt.Period)
}

// SaveStatement writes stmt as CSV into dir and returns the file path.
func SaveStatement(dir string, stmt ledger.Statement) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating export dir: %w", err)
	}

	path := filepath.Join(dir, StatementFileName(stmt))
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("creating statement file: %w", err)
	}
	defer f.Close()

	if err := WriteStatementCSV(f, stmt); err != nil {
		return "", fmt.Errorf("writing statement %s: %w", path, err)
	}
	return path, nil
}
