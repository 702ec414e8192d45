// Package categorization assigns merchants to a fixed category set, using a
// remote Gemini classifier when configured and a keyword matcher otherwise.
package categorization

// Category is one of the fixed spending categories.
type Category string

const (
	FoodAndDrinks      Category = "Food and Drinks"
	Groceries          Category = "Groceries"
	Shopping           Category = "Shopping"
	Entertainment      Category = "Entertainment"
	TravelAndTransport Category = "Travel and Transport"
	BillsAndUtilities  Category = "Bills and Utilities"
	Healthcare         Category = "Healthcare"
	Education          Category = "Education"
	Investments        Category = "Investments"
	PersonalCare       Category = "Personal Care"
	Subscriptions      Category = "Subscriptions"
	Others             Category = "Others"
)

// Categories is the full category set in priority order. The order matters:
// keyword fallback and partial-match validation both walk it front to back.
var Categories = []Category{
	FoodAndDrinks,
	Groceries,
	Shopping,
	Entertainment,
	TravelAndTransport,
	BillsAndUtilities,
	Healthcare,
	Education,
	Investments,
	PersonalCare,
	Subscriptions,
	Others,
}

// IsValid reports whether s is exactly one of the fixed categories.
func IsValid(s string) bool {
	for _, c := range Categories {
		if string(c) == s {
			return true
		}
	}
	return false
}
