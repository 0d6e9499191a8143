package model

// Budget is a per-category monthly spending limit.
type Budget struct {
	Category string
	Limit    float64
}

// RecurringRule describes a fixed monthly transaction. Once the configured
// day of month is reached it is posted as a regular transaction, at most
// once per calendar month (tracked via LastProcessed, "YYYY-MM").
type RecurringRule struct {
	Category      string
	Description   string
	Kind          TransactionKind
	LastProcessed string
	ID            int64
	Amount        float64
	DayOfMonth    int
}
