package core

import (
	"errors"
	"testing"
)

const testID = "3f2f4f3e-9f4a-4e8b-9a5f-0c1d2e3f4a5b"

func TestValidDate(t *testing.T) {
	cases := []struct {
		in string
		ok bool
	}{
		{"2024-03-01", true},
		{"1999-12-31", true},
		{"2024-3-1", false},
		{"2024/03/01", false},
		{"2024-03-01T00:00:00", false},
		{"", false},
	}
	for i, tc := range cases {
		if got := ValidDate(tc.in); got != tc.ok {
			t.Fatalf("case %d (%q): expected %v, got %v", i, tc.in, tc.ok, got)
		}
	}
}

func TestTransactionValidate(t *testing.T) {
	good := Transaction{
		ID:         testID,
		Date:       "2024-03-01",
		Amount:     1000,
		Type:       Expense,
		CategoryID: "food",
	}
	if err := good.Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}

	cases := []struct {
		mutate func(*Transaction)
		want   error
	}{
		{func(tr *Transaction) { tr.ID = "" }, ErrInvalidID},
		{func(tr *Transaction) { tr.ID = "not-a-uuid" }, ErrInvalidID},
		{func(tr *Transaction) { tr.Date = "01-03-2024" }, ErrInvalidDate},
		{func(tr *Transaction) { tr.Amount = 0 }, ErrInvalidAmount},
		{func(tr *Transaction) { tr.Amount = -5 }, ErrInvalidAmount},
		{func(tr *Transaction) { tr.Type = "transfer" }, ErrInvalidType},
		{func(tr *Transaction) { tr.CategoryID = "" }, ErrEmptyCategoryID},
		{func(tr *Transaction) { tr.CategoryID = "   " }, ErrEmptyCategoryID},
	}
	for i, tc := range cases {
		tr := good
		tc.mutate(&tr)
		if err := tr.Validate(); !errors.Is(err, tc.want) {
			t.Fatalf("case %d: expected %v, got %v", i, tc.want, err)
		}
	}
}
