package main

import (
	"fmt"
	"strings"

	"github.com/Veraticus/spent/internal/cli"
	"github.com/Veraticus/spent/internal/common"
	"github.com/Veraticus/spent/internal/ledger"
	"github.com/Veraticus/spent/internal/model"
	"github.com/spf13/cobra"
)

const barWidth = 30

func budgetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "budget",
		Short: "Manage the overall and per-category budgets",
	}

	cmd.AddCommand(budgetSetCmd())
	cmd.AddCommand(budgetCategoryCmd())
	cmd.AddCommand(budgetShowCmd())

	return cmd
}

func budgetSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set <amount>",
		Short: "Set the overall budget",
		Long: `Set the overall budget. An amount of 0, or anything that is not a
non-negative number, clears the budget.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			t, closeDB, err := openTracker(ctx)
			if err != nil {
				return err
			}
			defer closeDB()

			amount, err := t.SetBudget(ctx, args[0])
			if err != nil {
				return fmt.Errorf("failed to save budget: %w", err)
			}

			msg := "Overall budget set to " + cli.FormatMoney(amount)
			if !amount.IsPositive() {
				msg = "Overall budget cleared"
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess(msg))
			return err
		},
	}
}

func budgetCategoryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "category <category>=<amount>...",
		Short: "Set budgets for individual categories",
		Long: `Set budgets for one or more categories. Categories not named keep their
budget; an amount of 0 removes the category's budget.

After saving, every category budget is checked and any that are at least 80%
used or exceeded are reported.`,
		Example: `  spent budget category food=300 transport=120
  spent budget category entertainment=0`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			updates, err := parseCategoryBudgetArgs(args)
			if err != nil {
				return err
			}

			t, closeDB, err := openTracker(ctx)
			if err != nil {
				return err
			}
			defer closeDB()

			report, err := t.SetCategoryBudgets(ctx, updates)
			if err != nil {
				return fmt.Errorf("failed to save category budgets: %w", err)
			}

			out := cmd.OutOrStdout()
			if _, err := fmt.Fprintln(out, cli.FormatSuccess(fmt.Sprintf("Saved %d category budget(s)", len(updates)))); err != nil {
				return err
			}
			if report != "" {
				_, err = fmt.Fprintln(out, cli.WarningStyle.Render(report))
			}
			return err
		},
	}
}

// parseCategoryBudgetArgs turns "food=300" arguments into budget updates.
func parseCategoryBudgetArgs(args []string) (map[model.Category]string, error) {
	updates := make(map[model.Category]string, len(args))
	for _, arg := range args {
		name, amount, ok := strings.Cut(arg, "=")
		if !ok {
			return nil, common.NewUserError(fmt.Sprintf("expected <category>=<amount>, got %q", arg), common.ErrInvalidConfig)
		}
		c, err := parseCategoryFlag(name)
		if err != nil {
			return nil, err
		}
		updates[c] = amount
	}
	return updates, nil
}

func budgetShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show budgets and how much of each is used",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			t, closeDB, err := openTracker(ctx)
			if err != nil {
				return err
			}
			defer closeDB()

			saved, found, err := t.LastSaved(ctx)
			if err != nil {
				return fmt.Errorf("failed to read save time: %w", err)
			}

			summary := t.Summary(ledger.Criteria{})
			lines := []string{
				cli.FormatTitle("Budgets"),
				cli.BoldStyle.Render("Overall") + "  " + cli.RenderBudgetBar(summary.Overall, barWidth),
			}
			if len(summary.Categories) == 0 {
				lines = append(lines, cli.SubtleStyle.Render("No category budgets set"))
			}
			lines = append(lines, categoryBudgetLines(summary.Categories)...)
			if found {
				lines = append(lines, "", cli.SubtleStyle.Render("Last saved: "+saved.Local().Format("2006-01-02 15:04")))
			}
			return writeLines(cmd.OutOrStdout(), lines...)
		},
	}
}

func categoryBudgetLines(statuses []ledger.Status) []string {
	width := 0
	for _, st := range statuses {
		width = max(width, len(st.Scope.Category.Label()))
	}

	lines := make([]string, 0, len(statuses))
	for _, st := range statuses {
		label := st.Scope.Category.Label()
		lines = append(lines, label+strings.Repeat(" ", width-len(label))+"  "+cli.RenderBudgetBar(st, barWidth))
	}
	return lines
}
