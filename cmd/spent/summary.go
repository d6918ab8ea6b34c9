package main

import (
	"fmt"
	"strings"

	"github.com/Veraticus/spent/internal/cli"
	"github.com/Veraticus/spent/internal/tracker"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

func summaryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Show totals, budget status and spending trends",
		Long: `Show the total spent, the overall budget status, progress of every
category budget, the breakdown by category and the daily trend.

Filters narrow the totals, breakdown and trend. Category budget progress always
covers every expense.`,
		Args: cobra.NoArgs,
		RunE: runSummary,
	}

	addFilterFlags(cmd)

	return cmd
}

func runSummary(cmd *cobra.Command, _ []string) error {
	criteria, err := criteriaFromFlags(cmd)
	if err != nil {
		return err
	}

	t, closeDB, err := openTracker(cmd.Context())
	if err != nil {
		return err
	}
	defer closeDB()

	return writeLines(cmd.OutOrStdout(), renderSummary(t.Summary(criteria))...)
}

func renderSummary(s tracker.Summary) []string {
	lines := []string{
		cli.FormatTitle("Summary"),
		fmt.Sprintf("%s %s across %d expense(s)", cli.BoldStyle.Render("Total spent:"), cli.FormatMoney(s.Total), s.Count),
		cli.BoldStyle.Render("Budget:") + " " + cli.RenderBudgetBar(s.Overall, barWidth),
	}
	if s.Overall.BudgetSet() {
		style := cli.TierStyle(s.Overall.Tier)
		if s.Overall.Overage.IsPositive() {
			lines = append(lines, style.Render("Over budget by "+cli.FormatMoney(s.Overall.Overage)))
		} else {
			lines = append(lines, style.Render(cli.FormatMoney(s.Overall.Remaining)+" remaining"))
		}
	}

	if len(s.Categories) > 0 {
		lines = append(lines, "", cli.BoldStyle.Render("Category budgets"))
		lines = append(lines, categoryBudgetLines(s.Categories)...)
	}

	if len(s.ByCategory) > 0 {
		lines = append(lines, "", cli.BoldStyle.Render(cli.ChartIcon+" By category"))
		rows := make([][]string, 0, len(s.ByCategory))
		for _, ct := range s.ByCategory {
			share := "0"
			if s.Total.IsPositive() {
				share = ct.Amount.Div(s.Total).Mul(hundred).Round(0).String()
			}
			rows = append(rows, []string{ct.Category.Label(), share + "%", cli.FormatMoney(ct.Amount)})
		}
		lines = append(lines, renderTable([]string{"Category", "Share", "Amount"}, rows))
	}

	if len(s.Daily) > 0 {
		lines = append(lines, "", cli.BoldStyle.Render("Daily trend"))
		peak := s.Daily[0].Amount
		for _, d := range s.Daily[1:] {
			if d.Amount.GreaterThan(peak) {
				peak = d.Amount
			}
		}
		for _, d := range s.Daily {
			n := 1
			if peak.IsPositive() {
				n = max(1, int(d.Amount.Div(peak).Mul(trendWidth).Round(0).IntPart()))
			}
			lines = append(lines, fmt.Sprintf("%s  %s %s", d.Date, cli.InfoStyle.Render(strings.Repeat("▇", n)), cli.FormatMoney(d.Amount)))
		}
	}

	return lines
}

var (
	hundred    = decimal.NewFromInt(100)
	trendWidth = decimal.NewFromInt(30)
)
