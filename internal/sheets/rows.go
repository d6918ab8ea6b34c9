package sheets

import (
	"github.com/Veraticus/spent/internal/model"
	"github.com/shopspring/decimal"
)

// header is the column layout shared with the CSV export.
var header = []any{"Date", "Description", "Category", "Amount"}

// columnCount is the width of the expense table.
const columnCount = 4

// expenseValues lays out records as sheet rows: a header, one row per
// record in the given order, a blank row and a total row.
func expenseValues(records []model.Expense) [][]any {
	values := make([][]any, 0, len(records)+3)
	values = append(values, header)

	total := decimal.Zero
	for _, r := range records {
		values = append(values, []any{
			r.Date,
			r.Description,
			r.Category.Label(),
			model.FormatAmount(r.Amount),
		})
		total = total.Add(r.Amount)
	}

	values = append(values,
		[]any{},
		[]any{"", "", "Total", model.FormatAmount(total)},
	)
	return values
}
