// Package model defines the core domain types used throughout SmartWallet.
package model

import "time"

// TransactionKind is the closed flow enumeration for a transaction.
//
// Investment contributions are recorded as KindExpense (cash leaving
// checking) and redemptions or balance credits as KindIncome. This is a
// domain convention shared with all stored data; changing it would break
// interoperability with existing records.
type TransactionKind string

// Transaction kind constants.
const (
	KindIncome  TransactionKind = "Income"
	KindExpense TransactionKind = "Expense"
)

// Origin identifies which pipeline stage produced a normalized record.
// It is observability metadata only and never affects behavior.
type Origin string

// Origin constants.
const (
	OriginRuleEngine  Origin = "RuleEngine"
	OriginRemoteModel Origin = "RemoteModel"
)

// Transaction is a normalized financial transaction. The classifier
// pipeline builds one per user action; the storage layer persists it and
// fills in ID and UserID. Pipeline stages never mutate a record they did
// not build.
type Transaction struct {
	DateTime    time.Time
	UserID      string
	Category    string
	Description string
	Kind        TransactionKind
	Origin      Origin
	ID          int64
	Amount      float64
}
