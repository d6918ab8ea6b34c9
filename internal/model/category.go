package model

import "strings"

// Category is one of the fixed expense categories.
type Category string

const (
	// CategoryFood covers groceries, restaurants and takeaway.
	CategoryFood Category = "food"
	// CategoryTransport covers fuel, fares and car costs.
	CategoryTransport Category = "transport"
	// CategoryShopping covers general purchases.
	CategoryShopping Category = "shopping"
	// CategoryEntertainment covers leisure spending.
	CategoryEntertainment Category = "entertainment"
	// CategoryBills covers rent, utilities and subscriptions.
	CategoryBills Category = "bills"
	// CategoryHealth covers medical and pharmacy costs.
	CategoryHealth Category = "health"
	// CategoryOther is the catch-all category.
	CategoryOther Category = "other"
)

// Categories lists every category in display order.
func Categories() []Category {
	return []Category{
		CategoryFood,
		CategoryTransport,
		CategoryShopping,
		CategoryEntertainment,
		CategoryBills,
		CategoryHealth,
		CategoryOther,
	}
}

// Valid reports whether c is a member of the enumeration.
func (c Category) Valid() bool {
	switch c {
	case CategoryFood, CategoryTransport, CategoryShopping, CategoryEntertainment,
		CategoryBills, CategoryHealth, CategoryOther:
		return true
	default:
		return false
	}
}

// Label returns the display name of the category. Values that are not part of
// the enumeration (legacy data loaded from storage) are shown as-is.
func (c Category) Label() string {
	switch c {
	case CategoryFood:
		return "Food & Dining"
	case CategoryTransport:
		return "Transportation"
	case CategoryShopping:
		return "Shopping"
	case CategoryEntertainment:
		return "Entertainment"
	case CategoryBills:
		return "Bills & Utilities"
	case CategoryHealth:
		return "Healthcare"
	case CategoryOther:
		return "Other"
	default:
		return string(c)
	}
}

// ParseCategory resolves user input to a category. Both the key ("bills") and
// the display label ("Bills & Utilities") are accepted, case-insensitively.
func ParseCategory(s string) (Category, error) {
	s = strings.TrimSpace(s)
	for _, c := range Categories() {
		if strings.EqualFold(s, string(c)) || strings.EqualFold(s, c.Label()) {
			return c, nil
		}
	}
	return "", &UnknownCategoryError{Value: s}
}

// UnknownCategoryError is returned by ParseCategory for unrecognized input.
type UnknownCategoryError struct {
	Value string
}

func (e *UnknownCategoryError) Error() string {
	return "unknown category: " + e.Value
}
