// Package classifier routes free-text RM questions to an analysis category.
package classifier

import (
	"strings"

	"github.com/Dan9191/rm-dashboard/internal/models"
)

// Rule maps a set of keywords to a category
type Rule struct {
	Category models.Category
	Keywords []string
}

// rules are checked in order and the first match wins.
// "credit card" is unreachable as a card match because "credit" hits the loan rule first.
var rules = []Rule{
	{Category: models.CategoryLoan, Keywords: []string{"loan", "borrow", "credit"}},
	{Category: models.CategoryInvestment, Keywords: []string{"investment", "invest", "portfolio"}},
	{Category: models.CategoryMortgage, Keywords: []string{"mortgage", "home", "house"}},
	{Category: models.CategoryCard, Keywords: []string{"card", "credit card"}},
}

// Classify returns the category of the first rule with a keyword contained in text
func Classify(text string) models.Category {
	lower := strings.ToLower(text)
	for _, rule := range rules {
		for _, keyword := range rule.Keywords {
			if strings.Contains(lower, keyword) {
				return rule.Category
			}
		}
	}
	return models.CategoryGeneral
}

// Rules returns a copy of the ordered rule table
func Rules() []Rule {
	out := make([]Rule, len(rules))
	for i, rule := range rules {
		out[i] = Rule{
			Category: rule.Category,
			Keywords: append([]string(nil), rule.Keywords...),
		}
	}
	return out
}
