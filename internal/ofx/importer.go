// Package ofx imports bank-statement files into SmartWallet transactions.
package ofx

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"regexp"
	"strings"

	"github.com/aclindsa/ofxgo"

	"github.com/smartwallet/smartwallet/internal/model"
	"github.com/smartwallet/smartwallet/internal/rules"
)

// Importer parses OFX/QFX statements and converts each record into a
// normalized transaction: the amount sign decides the kind, the payee or
// memo becomes the description, and the rule engine's keyword tables take
// a first pass at the category.
type Importer struct{}

// NewImporter creates an OFX importer.
func NewImporter() *Importer {
	return &Importer{}
}

var severityPattern = regexp.MustCompile(`(?i)<SEVERITY>(Info|Warn|Error)</SEVERITY>`)

// preprocess fixes the formatting quirks banks ship in SGML-style files.
func (i *Importer) preprocess(content string) string {
	content = strings.TrimLeft(content, " \t\r\n")
	return severityPattern.ReplaceAllStringFunc(content, strings.ToUpper)
}

// Parse reads an OFX statement and returns normalized transactions.
func (i *Importer) Parse(ctx context.Context, reader io.Reader) ([]model.Transaction, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	content, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read OFX file: %w", err)
	}

	resp, err := ofxgo.ParseResponse(strings.NewReader(i.preprocess(string(content))))
	if err != nil {
		return nil, fmt.Errorf("failed to parse OFX file: %w", err)
	}

	var transactions []model.Transaction

	for _, msg := range resp.Bank {
		stmt, ok := msg.(*ofxgo.StatementResponse)
		if !ok || stmt.BankTranList == nil {
			continue
		}
		for _, ofxTxn := range stmt.BankTranList.Transactions {
			transactions = append(transactions, i.convert(ofxTxn))
		}
	}

	for _, msg := range resp.CreditCard {
		stmt, ok := msg.(*ofxgo.CCStatementResponse)
		if !ok || stmt.BankTranList == nil {
			continue
		}
		for _, ofxTxn := range stmt.BankTranList.Transactions {
			transactions = append(transactions, i.convert(ofxTxn))
		}
	}

	slog.Info("parsed OFX statement", "transactions", len(transactions))

	return transactions, nil
}

// convert maps an OFX record onto the domain model. OFX uses negative
// amounts for debits, so the sign decides the kind and the stored amount
// is always positive.
func (i *Importer) convert(ofxTxn ofxgo.Transaction) model.Transaction {
	amount, _ := ofxTxn.TrnAmt.Float64()
	kind := model.KindIncome
	if amount < 0 {
		amount = -amount
		kind = model.KindExpense
	}

	description := i.description(ofxTxn)

	category := model.CategoryOther
	if matched, ok := rules.CategoryFor(strings.ToLower(description)); ok {
		category = matched
	}

	return model.Transaction{
		DateTime:    ofxTxn.DtPosted.Time,
		Amount:      amount,
		Category:    category,
		Description: description,
		Kind:        kind,
	}
}

// description prefers the payee name, then the NAME field, then the memo.
func (i *Importer) description(ofxTxn ofxgo.Transaction) string {
	if ofxTxn.Payee != nil && ofxTxn.Payee.Name != "" {
		return strings.TrimSpace(string(ofxTxn.Payee.Name))
	}
	if name := strings.TrimSpace(string(ofxTxn.Name)); name != "" {
		return name
	}
	return strings.TrimSpace(string(ofxTxn.Memo))
}
