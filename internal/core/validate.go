package core

import (
	"fmt"
	"math"
	"strings"

	"github.com/google/uuid"
)

// maxSafeAmount is 2^53, the first float64 value above which not every
// integer is representable exactly.
const maxSafeAmount = float64(1 << 53)

// This file checks untrusted values — JSON decoded from durable storage or
// from an imported file — against the transaction shapes before they are
// allowed into the store. Decoding stops at the first violation and returns
// an error naming the offending field; it never panics.

// DecodeTransaction validates a single decoded JSON value as a Transaction.
func DecodeTransaction(v any) (Transaction, error) {
	obj, ok := v.(map[string]any)
	if !ok {
		return Transaction{}, fmt.Errorf("record is not an object")
	}

	var t Transaction

	id, ok := obj["id"].(string)
	if !ok || id == "" {
		return Transaction{}, ErrInvalidID
	}
	if _, err := uuid.Parse(id); err != nil {
		return Transaction{}, fmt.Errorf("%w: %q", ErrInvalidID, id)
	}
	t.ID = id

	date, ok := obj["date"].(string)
	if !ok || !ValidDate(date) {
		return Transaction{}, fmt.Errorf("%w: %v", ErrInvalidDate, obj["date"])
	}
	t.Date = date

	// encoding/json decodes every number to float64; amounts must be
	// positive whole yen. Values at or above 2^53 are rejected outright:
	// float64 cannot represent every integer there, and converting such a
	// value to int64 can wrap negative.
	amount, ok := obj["amount"].(float64)
	if !ok || amount <= 0 || amount >= maxSafeAmount || amount != math.Trunc(amount) {
		return Transaction{}, fmt.Errorf("%w: %v", ErrInvalidAmount, obj["amount"])
	}
	t.Amount = int64(amount)

	typ, ok := obj["type"].(string)
	if !ok || !TransactionType(typ).IsValid() {
		return Transaction{}, fmt.Errorf("%w: %v", ErrInvalidType, obj["type"])
	}
	t.Type = TransactionType(typ)

	categoryID, ok := obj["categoryId"].(string)
	if !ok || strings.TrimSpace(categoryID) == "" {
		return Transaction{}, ErrEmptyCategoryID
	}
	t.CategoryID = categoryID

	if raw, present := obj["note"]; present && raw != nil {
		note, ok := raw.(string)
		if !ok {
			return Transaction{}, fmt.Errorf("%w: %v", ErrInvalidNote, raw)
		}
		t.Note = note
	}

	return t, nil
}

// DecodeTransactions validates a decoded JSON value as a transaction
// sequence. Errors carry the index of the first bad record.
func DecodeTransactions(v any) ([]Transaction, error) {
	arr, ok := v.([]any)
	if !ok {
		return nil, fmt.Errorf("value is not a transaction array")
	}
	out := make([]Transaction, 0, len(arr))
	for i, raw := range arr {
		t, err := DecodeTransaction(raw)
		if err != nil {
			return nil, fmt.Errorf("transaction %d: %w", i, err)
		}
		out = append(out, t)
	}
	return out, nil
}

// DecodeExport validates a decoded JSON value as an export envelope:
// version and exportedAt strings wrapping a valid transaction sequence.
func DecodeExport(v any) (Export, error) {
	obj, ok := v.(map[string]any)
	if !ok {
		return Export{}, fmt.Errorf("value is not an export object")
	}

	version, ok := obj["version"].(string)
	if !ok {
		return Export{}, fmt.Errorf("version must be a string")
	}
	exportedAt, ok := obj["exportedAt"].(string)
	if !ok {
		return Export{}, fmt.Errorf("exportedAt must be a string")
	}
	transactions, err := DecodeTransactions(obj["transactions"])
	if err != nil {
		return Export{}, err
	}

	return Export{
		Version:      version,
		ExportedAt:   exportedAt,
		Transactions: transactions,
	}, nil
}
