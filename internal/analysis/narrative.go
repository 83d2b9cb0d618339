package analysis

import (
	"fmt"
	"strings"

	"github.com/Dan9191/rm-dashboard/internal/models"
)

// Narrate renders the prose for an assessment. It only formats values
// already present on the assessment and never recomputes them.
func Narrate(a Assessment, clientLabel string) models.Narrative {
	p := a.Profile
	f := a.Figures

	switch a.Formula {
	case models.CategoryLoan:
		return models.Narrative{
			Title: "Personal Loan Assessment",
			Body: paragraphs(
				fmt.Sprintf("Based on %s's financial profile, they qualify for a personal loan with %s risk. "+
					"Their stable income of %s, credit score of %s, and savings of %s indicate strong repayment capability.",
					clientLabel, f.RiskLevel, FormatCurrency(p.Income), FormatPlain(p.CreditScore), FormatCurrency(p.Savings)),
				fmt.Sprintf("Recommendation: Approve personal loan up to %s at standard interest rate. "+
					"Their debt-to-income ratio would remain within acceptable limits.", FormatCurrency(f.MaxLoan)),
				"Risk Factors: Monitor employment stability and ensure loan terms include flexible payment options.",
			),
		}

	case models.CategoryInvestment:
		return models.Narrative{
			Title: "Investment Recommendation",
			Body: paragraphs(
				fmt.Sprintf("%s shows excellent savings discipline with a %s savings rate. "+
					"Based on their age (%d) and financial stability, a %s investment approach is recommended.",
					clientLabel, FormatPercent(f.SavingsRate), p.Age, strings.ToLower(f.RiskTolerance)),
				"Recommendation: Diversified portfolio with 60% equity, 30% bonds, 10% alternatives. "+
					"Consider increasing monthly investment contributions.",
				"Next Steps: Schedule portfolio review and discuss long-term financial goals.",
			),
		}

	default:
		return models.Narrative{
			Title: "Financial Overview",
			Body: paragraphs(
				fmt.Sprintf("%s's overall financial health is %s. "+
					"With a debt-to-income ratio of %s and strong credit score of %s, "+
					"they are well-positioned for various financial products.",
					clientLabel, strings.ToLower(f.FinancialHealth), FormatPercent(f.DebtToIncome), FormatPlain(p.CreditScore)),
				"Strengths: Stable employment, good credit history, healthy savings balance.",
				"Opportunities: Consider debt consolidation and investment portfolio optimization.",
			),
		}
	}
}

func narrateUnavailable(a Assessment, clientLabel string) models.Narrative {
	title := Narrate(Assessment{Formula: a.Formula}, clientLabel).Title
	metric, _ := Metrics(Assessment{Formula: a.Formula})
	return models.Narrative{
		Title: title,
		Body: paragraphs(
			fmt.Sprintf("%s for %s cannot be computed because the recorded annual income is %s.",
				metric.Label, clientLabel, FormatCurrency(a.Profile.Income)),
			"Next Steps: Verify the income on file before making a recommendation.",
		),
	}
}

func paragraphs(parts ...string) string {
	return strings.Join(parts, "\n\n")
}
