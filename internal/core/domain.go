package core

import (
	"errors"
	"regexp"
	"strings"

	"github.com/google/uuid"
)

const (
	Income  TransactionType = "income"
	Expense TransactionType = "expense"

	Fixed    ExpenseType = "fixed"
	Variable ExpenseType = "variable"
)

type (
	TransactionType string

	// ExpenseType splits expense categories into recurring obligations
	// (fixed) and discretionary spend (variable). Income categories have
	// no expense type.
	ExpenseType string

	// Transaction is one recorded income or expense event. Amount is in
	// whole yen. Date is a zero-padded YYYY-MM-DD string so lexicographic
	// order matches chronological order.
	Transaction struct {
		ID         string          `json:"id"`
		Date       string          `json:"date"`
		Amount     int64           `json:"amount"`
		Type       TransactionType `json:"type"`
		CategoryID string          `json:"categoryId"`
		Note       string          `json:"note,omitempty"`
	}

	// DailySummary holds the income and expense totals of a single day.
	DailySummary struct {
		Income  int64 `json:"income"`
		Expense int64 `json:"expense"`
	}

	// MonthlySummary holds the totals of one calendar month (YYYY-MM).
	MonthlySummary struct {
		Month   string `json:"month"`
		Income  int64  `json:"income"`
		Expense int64  `json:"expense"`
	}

	// CategorySummary is a per-category total for one month, joined
	// against the catalog for display fields.
	CategorySummary struct {
		CategoryID   string          `json:"categoryId"`
		CategoryName string          `json:"categoryName"`
		Amount       int64           `json:"amount"`
		Type         TransactionType `json:"type"`
		ExpenseType  ExpenseType     `json:"expenseType,omitempty"`
	}

	// Export is the versioned envelope written by the JSON exporter and
	// expected back by the importer.
	Export struct {
		Version      string        `json:"version"`
		ExportedAt   string        `json:"exportedAt"`
		Transactions []Transaction `json:"transactions"`
	}
)

var (
	ErrInvalidID       = errors.New("id must be a non-empty UUID string")
	ErrInvalidDate     = errors.New("date must match YYYY-MM-DD")
	ErrInvalidAmount   = errors.New("amount must be a positive whole number")
	ErrInvalidType     = errors.New("type must be income or expense")
	ErrEmptyCategoryID = errors.New("categoryId must be a non-empty string")
	ErrInvalidNote     = errors.New("note must be a string")
)

var datePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// ValidDate reports whether s is a date string in strict YYYY-MM-DD form.
// Only the shape is checked, not calendar ranges.
func ValidDate(s string) bool {
	return datePattern.MatchString(s)
}

func (tt TransactionType) IsValid() bool {
	return tt == Income || tt == Expense
}

func (et ExpenseType) IsValid() bool {
	return et == Fixed || et == Variable
}

// Validate checks the record against the transaction schema. Field checks
// run in a fixed order and the first violation wins.
func (t Transaction) Validate() error {
	if t.ID == "" {
		return ErrInvalidID
	}
	if _, err := uuid.Parse(t.ID); err != nil {
		return ErrInvalidID
	}
	if !ValidDate(t.Date) {
		return ErrInvalidDate
	}
	if t.Amount <= 0 {
		return ErrInvalidAmount
	}
	if !t.Type.IsValid() {
		return ErrInvalidType
	}
	if strings.TrimSpace(t.CategoryID) == "" {
		return ErrEmptyCategoryID
	}
	return nil
}
