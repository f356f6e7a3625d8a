package ledger

import (
	"strings"
	"time"

	"github.com/makuta3933/budget/internal/core"
)

// Aggregations are pure functions over a transaction snapshot. They are
// recomputed on demand; nothing here caches or mutates.

// ByDate returns the transactions recorded on the exact date, in store order.
func ByDate(list []core.Transaction, date string) []core.Transaction {
	var out []core.Transaction
	for _, t := range list {
		if t.Date == date {
			out = append(out, t)
		}
	}
	return out
}

// ByMonth returns the transactions whose date falls in the yearMonth
// (YYYY-MM), in store order. A prefix match is enough because dates are
// strictly zero-padded.
func ByMonth(list []core.Transaction, yearMonth string) []core.Transaction {
	var out []core.Transaction
	for _, t := range list {
		if strings.HasPrefix(t.Date, yearMonth) {
			out = append(out, t)
		}
	}
	return out
}

// DailySummaries totals income and expense per day of the month. Days
// without transactions are absent from the result.
func DailySummaries(list []core.Transaction, yearMonth string) map[string]core.DailySummary {
	summaries := make(map[string]core.DailySummary)
	for _, t := range ByMonth(list, yearMonth) {
		s := summaries[t.Date]
		if t.Type == core.Income {
			s.Income += t.Amount
		} else {
			s.Expense += t.Amount
		}
		summaries[t.Date] = s
	}
	return summaries
}

// MonthlySummary totals income and expense across the month. Both totals
// are zero when the month has no transactions.
func MonthlySummary(list []core.Transaction, yearMonth string) core.MonthlySummary {
	sum := core.MonthlySummary{Month: yearMonth}
	for _, t := range ByMonth(list, yearMonth) {
		if t.Type == core.Income {
			sum.Income += t.Amount
		} else {
			sum.Expense += t.Amount
		}
	}
	return sum
}

// MonthlyTrend returns the summaries of the months calendar months ending
// at the month of now, oldest first.
func MonthlyTrend(list []core.Transaction, months int, now time.Time) []core.MonthlySummary {
	// Anchor on the first of the month so month arithmetic never
	// normalizes across a short month.
	base := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)

	out := make([]core.MonthlySummary, 0, months)
	for i := months - 1; i >= 0; i-- {
		ym := base.AddDate(0, -i, 0).Format("2006-01")
		out = append(out, MonthlySummary(list, ym))
	}
	return out
}

// CategorySummaries totals the month per category id, joined against the
// catalog for display fields. An id missing from the catalog yields the
// literal name "Unknown" instead of failing the aggregation. Entries appear
// in order of first appearance among the month's transactions.
func CategorySummaries(list []core.Transaction, yearMonth string) []core.CategorySummary {
	var out []core.CategorySummary
	index := make(map[string]int)

	for _, t := range ByMonth(list, yearMonth) {
		i, seen := index[t.CategoryID]
		if !seen {
			entry := core.CategorySummary{
				CategoryID:   t.CategoryID,
				CategoryName: "Unknown",
				Type:         core.Expense,
			}
			if c, ok := core.CategoryByID(t.CategoryID); ok {
				entry.CategoryName = c.Name
				entry.Type = c.Type
				entry.ExpenseType = c.ExpenseType
			}
			index[t.CategoryID] = len(out)
			i = len(out)
			out = append(out, entry)
		}
		out[i].Amount += t.Amount
	}
	return out
}

// Store-facing views over the current snapshot.

func (s *Store) ByDate(date string) []core.Transaction {
	return ByDate(s.All(), date)
}

func (s *Store) ByMonth(yearMonth string) []core.Transaction {
	return ByMonth(s.All(), yearMonth)
}

func (s *Store) DailySummaries(yearMonth string) map[string]core.DailySummary {
	return DailySummaries(s.All(), yearMonth)
}

func (s *Store) MonthlySummary(yearMonth string) core.MonthlySummary {
	return MonthlySummary(s.All(), yearMonth)
}

func (s *Store) MonthlyTrend(months int) []core.MonthlySummary {
	return MonthlyTrend(s.All(), months, s.now())
}

func (s *Store) CategorySummaries(yearMonth string) []core.CategorySummary {
	return CategorySummaries(s.All(), yearMonth)
}
