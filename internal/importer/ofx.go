package importer

import (
	"fmt"
	"io"
	"log/slog"
	"regexp"
	"strings"

	"github.com/Veraticus/spent/internal/model"
	"github.com/aclindsa/ofxgo"
)

// ofxHeaders label the columns staged from an OFX statement so that
// SuggestMapping picks them up unchanged.
var ofxHeaders = []string{"Date", "Description", "Amount"}

var (
	severityFix = regexp.MustCompile(`(?i)<SEVERITY>(Info|Warn|Error)</SEVERITY>`)
	tagFix      = regexp.MustCompile(`(?m)^(\s*<[A-Z][A-Z0-9._]*[A-Z0-9])$`)
)

// preprocessOFX repairs formatting quirks common in bank-exported OFX files.
func preprocessOFX(content string) string {
	content = strings.TrimLeft(content, " \t\r\n")
	content = severityFix.ReplaceAllStringFunc(content, strings.ToUpper)
	return tagFix.ReplaceAllString(content, "$1>")
}

// TokenizeOFX stages the outgoing transactions of an OFX/QFX statement. Each
// debit becomes a Date, Description, Amount row that goes through the same
// validation as delimited input on Commit. Credits are not expenses and are
// left out.
func (p *Pipeline) TokenizeOFX(r io.Reader) error {
	p.discard(StageIdle)

	content, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("failed to read OFX file: %w", err)
	}
	cleaned := preprocessOFX(string(content))
	if strings.TrimSpace(cleaned) == "" {
		return ErrEmptyInput
	}

	resp, err := ofxgo.ParseResponse(strings.NewReader(cleaned))
	if err != nil {
		return fmt.Errorf("failed to parse OFX file: %w", err)
	}

	var txns []ofxgo.Transaction
	for _, msg := range resp.Bank {
		if stmt, ok := msg.(*ofxgo.StatementResponse); ok && stmt.BankTranList != nil {
			txns = append(txns, stmt.BankTranList.Transactions...)
		}
	}
	for _, msg := range resp.CreditCard {
		if stmt, ok := msg.(*ofxgo.CCStatementResponse); ok && stmt.BankTranList != nil {
			txns = append(txns, stmt.BankTranList.Transactions...)
		}
	}

	var (
		rows    [][]string
		credits int
	)
	for _, tx := range txns {
		if tx.TrnAmt.Sign() >= 0 {
			credits++
			continue
		}
		rows = append(rows, []string{
			tx.DtPosted.Format(model.DateLayout),
			ofxDescription(tx),
			tx.TrnAmt.FloatString(2),
		})
	}

	slog.Debug("Parsed OFX statement",
		"transactions", len(txns),
		"debits", len(rows),
		"credits", credits)

	if len(txns) == 0 {
		return ErrEmptyInput
	}
	if len(rows) == 0 {
		return ErrNoValidRows
	}

	headers := make([]string, len(ofxHeaders))
	copy(headers, ofxHeaders)
	p.stageRows(headers, rows, credits)
	return nil
}

// ofxDescription prefers the payee name, then NAME, then MEMO.
func ofxDescription(tx ofxgo.Transaction) string {
	if tx.Payee != nil && tx.Payee.Name != "" {
		return strings.TrimSpace(string(tx.Payee.Name))
	}
	if name := strings.TrimSpace(string(tx.Name)); name != "" {
		return name
	}
	return strings.TrimSpace(string(tx.Memo))
}
