package ledger

import (
	"fmt"
	"strings"

	"github.com/Veraticus/spent/internal/model"
	"github.com/shopspring/decimal"
)

// Alert is a user-facing budget notice.
type Alert struct {
	Message string
	Scope   Scope
	Tier    Tier
}

func money(d decimal.Decimal) string {
	return "$" + model.FormatAmount(d)
}

// AlertFor turns a status into an alert message. Statuses in TierOK produce no
// alert.
func AlertFor(st Status) (Alert, bool) {
	var msg string
	switch {
	case st.Tier == TierExceeded && st.Scope.IsOverall():
		msg = fmt.Sprintf("You have exceeded your budget by %s!", money(st.Overage))
	case st.Tier == TierWarning && st.Scope.IsOverall():
		msg = fmt.Sprintf("Warning: You have used %s%% of your budget.", st.RoundedPercent())
	case st.Tier == TierExceeded:
		msg = fmt.Sprintf("%s budget exceeded by %s!", st.Scope.Category.Label(), money(st.Overage))
	case st.Tier == TierWarning:
		msg = fmt.Sprintf("Warning: You have used %s%% of your %s budget.", st.RoundedPercent(), st.Scope.Category.Label())
	default:
		return Alert{}, false
	}
	return Alert{Scope: st.Scope, Tier: st.Tier, Message: msg}, true
}

// InsertAlerts evaluates the budgets touched by a newly inserted record in the
// given category: the overall budget when set, then the category budget when
// configured. It returns at most one alert per scope. Edits and deletions must
// not call this.
func InsertAlerts(s *Store, budget model.Budget, category model.Category) []Alert {
	var alerts []Alert

	if budget.Overall.IsPositive() {
		if a, ok := AlertFor(OverallStatus(s, budget)); ok {
			alerts = append(alerts, a)
		}
	}

	if amount, ok := budget.ForCategory(category); ok {
		spent := TotalsByCategory(s.records)[category]
		if a, ok := AlertFor(BudgetStatus(CategoryScope(category), spent, amount)); ok {
			alerts = append(alerts, a)
		}
	}

	return alerts
}

// CategorySweep checks every configured category budget at once, as done after
// the category budgets are saved. It returns the combined report (empty when
// nothing crossed a threshold) and the individual statuses that did.
func CategorySweep(s *Store, budget model.Budget) (string, []Status) {
	var (
		lines   []string
		flagged []Status
	)
	for _, st := range CategoryStatuses(s, budget) {
		switch st.Tier {
		case TierExceeded:
			lines = append(lines, fmt.Sprintf("%s: Exceeded by %s", st.Scope.Category.Label(), money(st.Overage)))
		case TierWarning:
			lines = append(lines, fmt.Sprintf("%s: %s%% used", st.Scope.Category.Label(), st.RoundedPercent()))
		default:
			continue
		}
		flagged = append(flagged, st)
	}
	if len(lines) == 0 {
		return "", nil
	}
	return "Category Budget Alerts:\n\n" + strings.Join(lines, "\n"), flagged
}
