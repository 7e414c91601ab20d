package commands

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/awesomegic/bank/internal/config"
	"github.com/awesomegic/bank/internal/ledger"
	"github.com/awesomegic/bank/internal/model"
	"github.com/awesomegic/bank/internal/report"
)

// menu is the interactive front end. All state lives in the ledger; the
// menu only parses input lines and renders results.
type menu struct {
	ledger    *ledger.Ledger
	bankName  string
	exportDir string
	logger    *logrus.Logger
	in        *bufio.Scanner
	out       io.Writer
}

func newMenu(l *ledger.Ledger, cfg *config.Config, logger *logrus.Logger, in io.Reader, out io.Writer) *menu {
	return &menu{
		ledger:    l,
		bankName:  cfg.Bank.Name,
		exportDir: cfg.Export.Dir,
		logger:    logger,
		in:        bufio.NewScanner(in),
		out:       out,
	}
}

func (m *menu) run() error {
	greeting := fmt.Sprintf("Welcome to %s! What would you like to do?", m.bankName)
	for {
		fmt.Fprintln(m.out, greeting)
		fmt.Fprintln(m.out, "[T] Input transactions")
		fmt.Fprintln(m.out, "[I] Define interest rules")
		fmt.Fprintln(m.out, "[P] Print statement")
		fmt.Fprintln(m.out, "[Q] Quit")

		choice, ok := m.prompt()
		if !ok {
			break
		}

		switch strings.ToUpper(choice) {
		case "T":
			ok = m.inputTransactions()
		case "I":
			ok = m.defineInterestRules()
		case "P":
			ok = m.printStatement()
		case "Q":
			m.quit()
			return nil
		default:
			fmt.Fprintln(m.out, "Invalid! Please try again.")
		}
		if !ok {
			break
		}
		greeting = "Is there anything else you'd like to do?"
	}

	// End of input behaves like quit.
	m.quit()
	if err := m.in.Err(); err != nil {
		return fmt.Errorf("reading input: %w", err)
	}
	return nil
}

// prompt reads one trimmed line. It reports false at end of input.
func (m *menu) prompt() (string, bool) {
	fmt.Fprint(m.out, "> ")
	if !m.in.Scan() {
		return "", false
	}
	return strings.TrimSpace(m.in.Text()), true
}

// ask prompts until it gets a blank line (nil) or at least n fields.
func (m *menu) ask(n int, instructions string) ([]string, bool) {
	for {
		fmt.Fprintf(m.out, "\n%s\n(or enter blank to go back to main menu):\n", instructions)
		line, ok := m.prompt()
		if !ok {
			return nil, false
		}
		if line == "" {
			return nil, true
		}
		fields := strings.Fields(line)
		if len(fields) >= n {
			return fields, true
		}
		fmt.Fprintln(m.out, "Invalid input format. Please try again.")
	}
}

func (m *menu) inputTransactions() bool {
	fields, ok := m.ask(4, "Please enter transaction details in <Date> <Account> <Type> <Amount> format")
	if fields == nil {
		return ok
	}

	txn, err := m.ledger.AddTransaction(fields[0], fields[1], fields[2], fields[3])
	if err != nil {
		m.fail(err)
		return true
	}

	fmt.Fprintln(m.out)
	m.render(report.WriteTransactions(m.out, txn.Account, m.ledger.Account(txn.Account).Transactions()))
	fmt.Fprintln(m.out)
	return true
}

func (m *menu) defineInterestRules() bool {
	fields, ok := m.ask(3, "Please enter interest rules details in <Date> <RuleId> <Rate in %> format")
	if fields == nil {
		return ok
	}

	if _, err := m.ledger.AddInterestRule(fields[0], fields[1], fields[2]); err != nil {
		m.fail(err)
		return true
	}

	fmt.Fprintln(m.out)
	m.render(report.WriteRules(m.out, m.ledger.InterestRules()))
	fmt.Fprintln(m.out)
	return true
}

func (m *menu) printStatement() bool {
	for {
		fields, ok := m.ask(2, "Please enter account and month to generate the statement <Account> <Year><Month>")
		if fields == nil {
			return ok
		}

		period, err := model.ParsePeriod(fields[1])
		if err != nil {
			m.fail(err)
			continue
		}

		stmt := m.ledger.GenerateStatement(fields[0], period)
		fmt.Fprintln(m.out)
		m.render(report.WriteStatement(m.out, stmt))
		fmt.Fprintln(m.out)

		if m.exportDir != "" {
			path, err := report.SaveStatement(m.exportDir, stmt)
			if err != nil {
				m.fail(err)
				return true
			}
			m.logger.WithFields(logrus.Fields{"account": stmt.AccountID, "period": stmt.Period.String(), "path": path}).Info("Statement exported")
			fmt.Fprintf(m.out, "Statement saved to %s\n\n", path)
		}
		return true
	}
}

func (m *menu) quit() {
	fmt.Fprintf(m.out, "\nThank you for banking with %s.\nHave a nice day!\n", m.bankName)
}

func (m *menu) fail(err error) {
	fmt.Fprintf(m.out, "Error: %v\n", err)
}

func (m *menu) render(err error) {
	if err != nil {
		m.logger.WithError(err).Error("Rendering output failed")
	}
}
