package core

// Category is one entry of the fixed spending/income catalog.
type Category struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Type        TransactionType `json:"type"`
	ExpenseType ExpenseType     `json:"expenseType,omitempty"`
}

// Categories is the full catalog: 4 income, 4 fixed-expense and
// 7 variable-expense entries. It is immutable at runtime.
var Categories = []Category{
	{ID: "salary", Name: "給与", Type: Income},
	{ID: "bonus", Name: "賞与", Type: Income},
	{ID: "side_job", Name: "副業", Type: Income},
	{ID: "other_income", Name: "その他収入", Type: Income},

	{ID: "housing", Name: "家賃/住宅ローン", Type: Expense, ExpenseType: Fixed},
	{ID: "utilities", Name: "水道光熱費", Type: Expense, ExpenseType: Fixed},
	{ID: "communication", Name: "通信費", Type: Expense, ExpenseType: Fixed},
	{ID: "subscription", Name: "サブスク・保険", Type: Expense, ExpenseType: Fixed},

	{ID: "food", Name: "食費", Type: Expense, ExpenseType: Variable},
	{ID: "daily", Name: "日用品", Type: Expense, ExpenseType: Variable},
	{ID: "transport", Name: "交通費", Type: Expense, ExpenseType: Variable},
	{ID: "fashion", Name: "衣服・美容", Type: Expense, ExpenseType: Variable},
	{ID: "social", Name: "交際費", Type: Expense, ExpenseType: Variable},
	{ID: "hobby", Name: "趣味・娯楽", Type: Expense, ExpenseType: Variable},
	{ID: "other_expense", Name: "その他支出", Type: Expense, ExpenseType: Variable},
}

// CategoryByID looks up a catalog entry. The second result is false when
// the id is not in the catalog; lookups never fail otherwise.
func CategoryByID(id string) (Category, bool) {
	for _, c := range Categories {
		if c.ID == id {
			return c, true
		}
	}
	return Category{}, false
}

// CategoriesByType returns catalog entries of the given type in catalog order.
func CategoriesByType(tt TransactionType) []Category {
	var out []Category
	for _, c := range Categories {
		if c.Type == tt {
			out = append(out, c)
		}
	}
	return out
}

// ExpenseCategoriesByClass returns expense entries with the given
// fixed/variable classification in catalog order.
func ExpenseCategoriesByClass(et ExpenseType) []Category {
	var out []Category
	for _, c := range Categories {
		if c.Type == Expense && c.ExpenseType == et {
			out = append(out, c)
		}
	}
	return out
}
