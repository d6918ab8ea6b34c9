// Package cli provides styled terminal output and interactive helpers for the
// spent command line.
package cli

import (
	"strings"

	"github.com/Veraticus/spent/internal/ledger"
	"github.com/Veraticus/spent/internal/model"
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"
)

var (
	// PrimaryColor is the main theme color.
	PrimaryColor = lipgloss.Color("#7D56F4")
	// SuccessColor indicates successful operations and healthy budgets.
	SuccessColor = lipgloss.Color("#4ECDC4") // Teal
	// WarningColor indicates budgets nearing their limit.
	WarningColor = lipgloss.Color("#FFE66D") // Yellow
	// ErrorColor indicates errors and exceeded budgets.
	ErrorColor = lipgloss.Color("#FF6B6B") // Red
	// InfoColor indicates informational messages.
	InfoColor = lipgloss.Color("#95E1D3") // Light teal
	// SubtleColor indicates less prominent UI elements.
	SubtleColor = lipgloss.Color("#666666") // Gray

	// TitleStyle is used for section titles.
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(PrimaryColor).
			MarginBottom(1)

	// SuccessStyle formats success messages.
	SuccessStyle = lipgloss.NewStyle().
			Foreground(SuccessColor)

	// WarningStyle formats warning messages.
	WarningStyle = lipgloss.NewStyle().
			Foreground(WarningColor)

	// ErrorStyle formats error messages.
	ErrorStyle = lipgloss.NewStyle().
			Foreground(ErrorColor)

	// InfoStyle formats informational messages.
	InfoStyle = lipgloss.NewStyle().
			Foreground(InfoColor)

	// SubtleStyle formats less prominent text.
	SubtleStyle = lipgloss.NewStyle().
			Foreground(SubtleColor)

	// BoldStyle makes text bold.
	BoldStyle = lipgloss.NewStyle().
			Bold(true)

	// BoxStyle is used for bordered content boxes.
	BoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#333")).
			Padding(1, 2)

	// TableHeaderStyle is used for table headers.
	TableHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				BorderStyle(lipgloss.NormalBorder()).
				BorderBottom(true).
				BorderForeground(lipgloss.Color("#333"))

	// TableCellStyle formats table cells with appropriate padding.
	TableCellStyle = lipgloss.NewStyle().
			PaddingRight(2)

	// PromptStyle is used for user prompts.
	PromptStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(PrimaryColor)
)

// Icons.
const (
	SuccessIcon = "✓"
	ErrorIcon   = "✗"
	WarningIcon = "⚠️"
	InfoIcon    = "ℹ️"
	WalletIcon  = "💸"
	ChartIcon   = "📊"
)

// Budget bar glyphs.
const (
	barFilled = "█"
	barEmpty  = "░"
)

// FormatSuccess formats a success message with icon.
func FormatSuccess(message string) string {
	return SuccessStyle.Render(SuccessIcon + " " + message)
}

// FormatError formats an error message with icon.
func FormatError(message string) string {
	return ErrorStyle.Render(ErrorIcon + " " + message)
}

// FormatWarning formats a warning message with icon.
func FormatWarning(message string) string {
	return WarningStyle.Render(WarningIcon + " " + message)
}

// FormatInfo formats an info message with icon.
func FormatInfo(message string) string {
	return InfoStyle.Render(InfoIcon + " " + message)
}

// FormatTitle formats a title with the wallet icon.
func FormatTitle(title string) string {
	return TitleStyle.Render(WalletIcon + " " + title)
}

// FormatPrompt formats a prompt message.
func FormatPrompt(prompt string) string {
	return PromptStyle.Render(prompt + " → ")
}

// FormatMoney renders an amount as dollars with two decimals.
func FormatMoney(d decimal.Decimal) string {
	if d.IsNegative() {
		return "-$" + model.FormatAmount(d.Neg())
	}
	return "$" + model.FormatAmount(d)
}

// TierStyle picks the style that matches a budget tier.
func TierStyle(t ledger.Tier) lipgloss.Style {
	switch t {
	case ledger.TierExceeded:
		return ErrorStyle
	case ledger.TierWarning:
		return WarningStyle
	default:
		return SuccessStyle
	}
}

// FormatAlert renders a budget alert in the style of its tier.
func FormatAlert(a ledger.Alert) string {
	if a.Tier == ledger.TierExceeded {
		return FormatError(a.Message)
	}
	return FormatWarning(a.Message)
}

// RenderBudgetBar draws a fixed-width bar for a budget status followed by the
// spent and budgeted amounts. Unset budgets render only the spent amount.
func RenderBudgetBar(st ledger.Status, width int) string {
	if !st.BudgetSet() {
		return SubtleStyle.Render(FormatMoney(st.Spent) + " spent, no budget set")
	}
	if width < 1 {
		width = 1
	}

	filled := int(st.Progress()*float64(width) + 0.5)
	filled = min(filled, width)
	bar := strings.Repeat(barFilled, filled) + strings.Repeat(barEmpty, width-filled)

	style := TierStyle(st.Tier)
	label := FormatMoney(st.Spent) + " / " + FormatMoney(st.Budget) + " (" + st.RoundedPercent() + "%)"
	return style.Render(bar) + " " + label
}

// RenderBox renders content in a styled box.
func RenderBox(title, content string) string {
	boxTitle := TitleStyle.
		UnsetMargins().
		Render(title)

	boxContent := lipgloss.JoinVertical(
		lipgloss.Left,
		boxTitle,
		content,
	)

	return BoxStyle.Render(boxContent)
}
