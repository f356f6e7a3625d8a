package ledger

import (
	"testing"
	"time"

	"github.com/makuta3933/budget/internal/core"
)

func tx(date string, amount int64, tt core.TransactionType, categoryID string) core.Transaction {
	return core.Transaction{
		ID:         "00000000-0000-4000-8000-000000000000",
		Date:       date,
		Amount:     amount,
		Type:       tt,
		CategoryID: categoryID,
	}
}

func TestByDateAndByMonth(t *testing.T) {
	list := []core.Transaction{
		tx("2024-03-01", 1000, core.Expense, "food"),
		tx("2024-03-15", 2000, core.Expense, "daily"),
		tx("2024-04-01", 3000, core.Income, "salary"),
	}

	if got := ByDate(list, "2024-03-01"); len(got) != 1 || got[0].Amount != 1000 {
		t.Fatalf("ByDate mismatch: %+v", got)
	}
	if got := ByDate(list, "2024-03-02"); len(got) != 0 {
		t.Fatalf("expected no records for empty date, got %+v", got)
	}

	march := ByMonth(list, "2024-03")
	if len(march) != 2 {
		t.Fatalf("expected 2 march records, got %d", len(march))
	}
	if march[0].Amount != 1000 || march[1].Amount != 2000 {
		t.Fatalf("store order not preserved: %+v", march)
	}
}

func TestDailySummaries(t *testing.T) {
	list := []core.Transaction{
		tx("2024-03-01", 1000, core.Expense, "food"),
		tx("2024-03-01", 5000, core.Income, "salary"),
		tx("2024-03-02", 300, core.Expense, "daily"),
	}

	got := DailySummaries(list, "2024-03")
	if len(got) != 2 {
		t.Fatalf("expected 2 days, got %d", len(got))
	}
	if got["2024-03-01"] != (core.DailySummary{Income: 5000, Expense: 1000}) {
		t.Fatalf("2024-03-01 summary mismatch: %+v", got["2024-03-01"])
	}
	if got["2024-03-02"] != (core.DailySummary{Expense: 300}) {
		t.Fatalf("2024-03-02 summary mismatch: %+v", got["2024-03-02"])
	}
	if _, present := got["2024-03-03"]; present {
		t.Fatalf("days without transactions must be absent")
	}
}

func TestMonthlySummary(t *testing.T) {
	list := []core.Transaction{
		tx("2024-03-01", 1000, core.Expense, "food"),
		tx("2024-03-01", 5000, core.Income, "salary"),
	}

	got := MonthlySummary(list, "2024-03")
	want := core.MonthlySummary{Month: "2024-03", Income: 5000, Expense: 1000}
	if got != want {
		t.Fatalf("expected %+v, got %+v", want, got)
	}

	// Always present, zero-filled for an empty month.
	empty := MonthlySummary(list, "2024-05")
	if empty != (core.MonthlySummary{Month: "2024-05"}) {
		t.Fatalf("expected zero-filled summary, got %+v", empty)
	}
}

func TestDailySummariesSumToMonthlySummary(t *testing.T) {
	list := []core.Transaction{
		tx("2024-03-01", 1000, core.Expense, "food"),
		tx("2024-03-01", 5000, core.Income, "salary"),
		tx("2024-03-12", 700, core.Expense, "hobby"),
		tx("2024-03-28", 2500, core.Income, "side_job"),
	}

	var income, expense int64
	for _, day := range DailySummaries(list, "2024-03") {
		income += day.Income
		expense += day.Expense
	}
	month := MonthlySummary(list, "2024-03")
	if income != month.Income || expense != month.Expense {
		t.Fatalf("daily totals %d/%d do not match monthly %d/%d",
			income, expense, month.Income, month.Expense)
	}
}

func TestMonthlyTrend(t *testing.T) {
	now := time.Date(2024, time.March, 31, 12, 0, 0, 0, time.UTC)
	list := []core.Transaction{
		tx("2023-10-05", 100, core.Expense, "food"),
		tx("2024-01-05", 400, core.Expense, "food"),
		tx("2024-03-05", 900, core.Income, "salary"),
	}

	got := MonthlyTrend(list, 6, now)
	if len(got) != 6 {
		t.Fatalf("expected 6 entries, got %d", len(got))
	}
	wantMonths := []string{"2023-10", "2023-11", "2023-12", "2024-01", "2024-02", "2024-03"}
	for i, ym := range wantMonths {
		if got[i].Month != ym {
			t.Fatalf("entry %d: expected month %s, got %s", i, ym, got[i].Month)
		}
	}
	if got[0].Expense != 100 || got[3].Expense != 400 || got[5].Income != 900 {
		t.Fatalf("trend totals mismatch: %+v", got)
	}
	if got[5].Month != now.Format("2006-01") {
		t.Fatalf("last entry must be the current month")
	}
}

func TestMonthlyTrendYearBoundary(t *testing.T) {
	now := time.Date(2024, time.January, 15, 0, 0, 0, 0, time.UTC)
	got := MonthlyTrend(nil, 3, now)
	wantMonths := []string{"2023-11", "2023-12", "2024-01"}
	for i, ym := range wantMonths {
		if got[i].Month != ym {
			t.Fatalf("entry %d: expected %s, got %s", i, ym, got[i].Month)
		}
	}
}

func TestCategorySummaries(t *testing.T) {
	list := []core.Transaction{
		tx("2024-03-01", 1000, core.Expense, "food"),
		tx("2024-03-02", 800, core.Expense, "housing"),
		tx("2024-03-03", 500, core.Expense, "food"),
		tx("2024-03-04", 9000, core.Income, "salary"),
	}

	got := CategorySummaries(list, "2024-03")
	if len(got) != 3 {
		t.Fatalf("expected 3 categories, got %d", len(got))
	}

	// First-appearance order.
	if got[0].CategoryID != "food" || got[1].CategoryID != "housing" || got[2].CategoryID != "salary" {
		t.Fatalf("unexpected order: %+v", got)
	}
	if got[0].Amount != 1500 {
		t.Fatalf("expected food total 1500, got %d", got[0].Amount)
	}
	if got[0].CategoryName != "食費" || got[0].Type != core.Expense || got[0].ExpenseType != core.Variable {
		t.Fatalf("catalog join mismatch: %+v", got[0])
	}
	if got[1].ExpenseType != core.Fixed {
		t.Fatalf("expected housing to be fixed, got %+v", got[1])
	}
	if got[2].Type != core.Income || got[2].ExpenseType != "" {
		t.Fatalf("income summary mismatch: %+v", got[2])
	}
}

func TestCategorySummariesUnknownCategory(t *testing.T) {
	list := []core.Transaction{
		tx("2024-03-01", 500, core.Expense, "deleted_category"),
	}

	got := CategorySummaries(list, "2024-03")
	if len(got) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(got))
	}
	if got[0].CategoryName != "Unknown" {
		t.Fatalf("expected Unknown fallback name, got %q", got[0].CategoryName)
	}
	if got[0].Type != core.Expense {
		t.Fatalf("unknown categories default to expense, got %v", got[0].Type)
	}
}

func TestStoreTrendUsesClock(t *testing.T) {
	s, _ := newTestStore(t)
	s.now = func() time.Time {
		return time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)
	}
	mustAdd(t, s, Input{Date: "2024-02-10", Amount: 100, Type: core.Expense, CategoryID: "food"})

	got := s.MonthlyTrend(2)
	if len(got) != 2 || got[0].Month != "2024-02" || got[1].Month != "2024-03" {
		t.Fatalf("unexpected trend: %+v", got)
	}
	if got[0].Expense != 100 {
		t.Fatalf("expected february expense 100, got %d", got[0].Expense)
	}
}
