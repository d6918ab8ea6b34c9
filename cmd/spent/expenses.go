package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/Veraticus/spent/internal/cli"
	"github.com/Veraticus/spent/internal/common"
	"github.com/Veraticus/spent/internal/ledger"
	"github.com/Veraticus/spent/internal/model"
	"github.com/Veraticus/spent/internal/tracker"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

func addCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Record a new expense",
		Long: `Record a new expense. The date defaults to today.

Adding an expense checks the overall budget and the budget of its category and
warns when either is at least 80% used or exceeded.`,
		Example: `  spent add --description "Lunch" --amount 12.50 --category food
  spent add -d "Train ticket" -a 4.20 -c transport --date 2024-03-01`,
		Args: cobra.NoArgs,
		RunE: runAdd,
	}

	cmd.Flags().StringP("description", "d", "", "What the money was spent on")
	cmd.Flags().StringP("amount", "a", "", "Amount spent")
	cmd.Flags().StringP("category", "c", string(model.CategoryOther), "Category ("+categoryChoices()+")")
	cmd.Flags().String("date", "", "Date of the expense (YYYY-MM-DD, default today)")
	_ = cmd.MarkFlagRequired("description")
	_ = cmd.MarkFlagRequired("amount")

	return cmd
}

func runAdd(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	t, closeDB, err := openTracker(ctx)
	if err != nil {
		return err
	}
	defer closeDB()

	in, err := expenseInputFromFlags(cmd, tracker.ExpenseInput{Date: t.Today()})
	if err != nil {
		return err
	}

	e, alerts, err := t.AddExpense(ctx, in)
	if err != nil {
		return fmt.Errorf("failed to add expense: %w", err)
	}

	out := cmd.OutOrStdout()
	if _, err := fmt.Fprintln(out, cli.FormatSuccess(fmt.Sprintf("Added %s %s (%s) on %s [%s]",
		cli.FormatMoney(e.Amount), e.Description, e.Category.Label(), e.Date, e.ID))); err != nil {
		return err
	}
	printAlerts(out, alerts)
	return nil
}

func editCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Change an existing expense",
		Long: `Change the fields of an existing expense. Only the flags given are changed;
the expense keeps its id and its place in the list.`,
		Example: `  spent edit 3f2a... --amount 14.00
  spent edit 3f2a... --category entertainment --date 2024-03-02`,
		Args: cobra.ExactArgs(1),
		RunE: runEdit,
	}

	cmd.Flags().StringP("description", "d", "", "New description")
	cmd.Flags().StringP("amount", "a", "", "New amount")
	cmd.Flags().StringP("category", "c", "", "New category")
	cmd.Flags().String("date", "", "New date (YYYY-MM-DD)")

	return cmd
}

func runEdit(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	id := args[0]

	t, closeDB, err := openTracker(ctx)
	if err != nil {
		return err
	}
	defer closeDB()

	current, ok := t.Expense(id)
	if !ok {
		return common.NewUserError(fmt.Sprintf("no expense with id %s", id), common.ErrNotFound)
	}

	in, err := expenseInputFromFlags(cmd, tracker.ExpenseInput{
		Amount:      current.Amount,
		Description: current.Description,
		Category:    current.Category,
		Date:        current.Date,
	})
	if err != nil {
		return err
	}

	e, err := t.EditExpense(ctx, id, in)
	if err != nil {
		return fmt.Errorf("failed to edit expense: %w", err)
	}

	_, err = fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess(fmt.Sprintf("Updated %s: %s %s (%s) on %s",
		e.ID, cli.FormatMoney(e.Amount), e.Description, e.Category.Label(), e.Date)))
	return err
}

// expenseInputFromFlags overlays the flags the user set on base.
func expenseInputFromFlags(cmd *cobra.Command, base tracker.ExpenseInput) (tracker.ExpenseInput, error) {
	in := base
	flags := cmd.Flags()

	if flags.Changed("description") {
		in.Description, _ = flags.GetString("description")
	}
	if flags.Changed("amount") {
		raw, _ := flags.GetString("amount")
		amount, err := parseAmountFlag(raw)
		if err != nil {
			return in, err
		}
		in.Amount = amount
	}
	if flags.Changed("category") || in.Category == "" {
		raw, _ := flags.GetString("category")
		category, err := parseCategoryFlag(raw)
		if err != nil {
			return in, err
		}
		in.Category = category
	}
	if flags.Changed("date") {
		raw, _ := flags.GetString("date")
		date, err := parseDateFlag("date", raw)
		if err != nil {
			return in, err
		}
		if date != "" {
			in.Date = date
		}
	}

	return in, nil
}

func deleteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete an expense",
		Args:  cobra.ExactArgs(1),
		RunE:  runDelete,
	}

	cmd.Flags().BoolP("yes", "y", false, "Delete without asking for confirmation")

	return cmd
}

func runDelete(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	id := args[0]
	out := cmd.OutOrStdout()

	t, closeDB, err := openTracker(ctx)
	if err != nil {
		return err
	}
	defer closeDB()

	e, ok := t.Expense(id)
	if !ok {
		_, err := fmt.Fprintln(out, cli.FormatWarning(fmt.Sprintf("No expense with id %s", id)))
		return err
	}

	if yes, _ := cmd.Flags().GetBool("yes"); !yes {
		ok, err := confirm(cmd, fmt.Sprintf("Delete %s %s on %s?", cli.FormatMoney(e.Amount), e.Description, e.Date))
		if err != nil {
			return err
		}
		if !ok {
			_, err := fmt.Fprintln(out, cli.FormatInfo("Nothing deleted"))
			return err
		}
	}

	if _, err := t.DeleteExpense(ctx, id); err != nil {
		return fmt.Errorf("failed to delete expense: %w", err)
	}

	_, err = fmt.Fprintln(out, cli.FormatSuccess("Deleted "+id))
	return err
}

func listCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List expenses, most recent first",
		Args:    cobra.NoArgs,
		RunE:    runList,
	}

	addFilterFlags(cmd)

	return cmd
}

func runList(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	criteria, err := criteriaFromFlags(cmd)
	if err != nil {
		return err
	}

	t, closeDB, err := openTracker(ctx)
	if err != nil {
		return err
	}
	defer closeDB()

	records := ledger.SortedByDateDesc(t.Expenses(criteria))
	out := cmd.OutOrStdout()
	if len(records) == 0 {
		_, err := fmt.Fprintln(out, cli.FormatInfo("No expenses found"))
		return err
	}

	if _, err := fmt.Fprintln(out, renderExpenseTable(records)); err != nil {
		return err
	}
	_, err = fmt.Fprintf(out, "\n%s %s\n", cli.BoldStyle.Render("Total:"), cli.FormatMoney(ledger.Total(records)))
	return err
}

func renderExpenseTable(records []model.Expense) string {
	headers := []string{"ID", "Date", "Description", "Category", "Amount"}
	rows := make([][]string, 0, len(records))
	for _, r := range records {
		rows = append(rows, []string{r.ID, r.Date, r.Description, r.Category.Label(), cli.FormatMoney(r.Amount)})
	}
	return renderTable(headers, rows)
}

// renderTable lays out rows in left-aligned columns sized to their content.
// The last column is right-aligned.
func renderTable(headers []string, rows [][]string) string {
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			widths[i] = max(widths[i], lipgloss.Width(cell))
		}
	}

	renderRow := func(cells []string, style lipgloss.Style) string {
		parts := make([]string, len(cells))
		for i, cell := range cells {
			s := style.Width(widths[i] + 2)
			if i == len(cells)-1 {
				s = s.Align(lipgloss.Right)
			}
			parts[i] = s.Render(cell)
		}
		return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
	}

	var b strings.Builder
	b.WriteString(renderRow(headers, cli.TableHeaderStyle))
	for _, row := range rows {
		b.WriteString("\n")
		b.WriteString(renderRow(row, cli.TableCellStyle))
	}
	return b.String()
}

func writeLines(w io.Writer, lines ...string) error {
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}
