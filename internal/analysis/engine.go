// Package analysis derives headline metrics and narratives from a client profile.
package analysis

import (
	"errors"
	"fmt"

	"github.com/Dan9191/rm-dashboard/internal/models"
)

// Formula constants are fixed by the advisory model and not configurable.
const (
	maxLoanIncomeShare = 0.4
	maxLoanCap         = 50000.0

	riskScoreBase         = 10.0
	riskScoreCreditAnchor = 600.0
	riskScoreCreditStep   = 20.0
	lowRiskThreshold      = 5.0

	moderateToleranceAgeLimit = 40

	excellentDebtToIncome = 20.0
	goodDebtToIncome      = 30.0
)

// ErrUndefinedRatio is returned when a formula would divide by a non-positive income
var ErrUndefinedRatio = errors.New("undefined ratio: income must be positive")

// Assessment is the numeric outcome of one formula, before any formatting
type Assessment struct {
	Category models.Category
	Formula  models.Category
	Profile  models.ClientProfile
	Figures  Figures
}

// Figures are the unformatted outputs of a formula
type Figures struct {
	RiskScore       float64
	MaxLoan         float64
	RiskLevel       string
	SavingsRate     float64
	RiskTolerance   string
	DebtToIncome    float64
	FinancialHealth string
}

// Result returns the figures of the applied formula for the API response
func (a Assessment) Result() models.Figures {
	f := a.Figures
	switch a.Formula {
	case models.CategoryLoan:
		return models.Figures{RiskScore: &f.RiskScore, MaxLoan: &f.MaxLoan, RiskLevel: f.RiskLevel}
	case models.CategoryInvestment:
		return models.Figures{SavingsRate: &f.SavingsRate, RiskTolerance: f.RiskTolerance}
	default:
		return models.Figures{DebtToIncome: &f.DebtToIncome, FinancialHealth: f.FinancialHealth}
	}
}

// FormulaFor returns the formula applied to a category.
// Mortgage and card have no dedicated formula and use the general overview.
func FormulaFor(category models.Category) models.Category {
	switch category {
	case models.CategoryLoan, models.CategoryInvestment:
		return category
	default:
		return models.CategoryGeneral
	}
}

// Assess evaluates the formula for category against profile
func Assess(profile models.ClientProfile, category models.Category) (Assessment, error) {
	a := Assessment{
		Category: category,
		Formula:  FormulaFor(category),
		Profile:  profile,
	}

	switch a.Formula {
	case models.CategoryLoan:
		a.Figures.MaxLoan = min(profile.Income*maxLoanIncomeShare, maxLoanCap)
		a.Figures.RiskScore = riskScoreBase - (profile.CreditScore-riskScoreCreditAnchor)/riskScoreCreditStep
		a.Figures.RiskLevel = "moderate"
		if a.Figures.RiskScore < lowRiskThreshold {
			a.Figures.RiskLevel = "low"
		}

	case models.CategoryInvestment:
		if profile.Income <= 0 {
			return a, fmt.Errorf("savings rate: %w", ErrUndefinedRatio)
		}
		a.Figures.SavingsRate = profile.Savings / profile.Income * 100
		a.Figures.RiskTolerance = "Conservative"
		if profile.Age < moderateToleranceAgeLimit {
			a.Figures.RiskTolerance = "Moderate"
		}

	default:
		if profile.Income <= 0 {
			return a, fmt.Errorf("debt-to-income: %w", ErrUndefinedRatio)
		}
		a.Figures.DebtToIncome = profile.Debt / profile.Income * 100
		switch {
		case a.Figures.DebtToIncome < excellentDebtToIncome:
			a.Figures.FinancialHealth = "Excellent"
		case a.Figures.DebtToIncome < goodDebtToIncome:
			a.Figures.FinancialHealth = "Good"
		default:
			a.Figures.FinancialHealth = "Fair"
		}
	}

	return a, nil
}

// Compute runs the formula for category and renders metrics and narrative.
// An undefined ratio yields a result marked Unavailable instead of an error.
func Compute(profile models.ClientProfile, category models.Category, clientLabel string) models.AnalysisResult {
	a, err := Assess(profile, category)
	result := models.AnalysisResult{
		Client:   clientLabel,
		Category: a.Category,
		Formula:  a.Formula,
	}

	if err != nil {
		result.Unavailable = true
		result.Reason = err.Error()
		result.Metric1, result.Metric2 = unavailableMetrics(a.Formula)
		result.Narrative = narrateUnavailable(a, clientLabel)
		return result
	}

	result.Figures = a.Result()
	result.Metric1, result.Metric2 = Metrics(a)
	result.Narrative = Narrate(a, clientLabel)
	return result
}

// Metrics formats the two headline metrics of an assessment
func Metrics(a Assessment) (models.Metric, models.Metric) {
	f := a.Figures
	switch a.Formula {
	case models.CategoryLoan:
		return models.Metric{Label: "Risk Score", Value: FormatScore(f.RiskScore)},
			models.Metric{Label: "Max Recommended", Value: FormatCurrency(f.MaxLoan)}
	case models.CategoryInvestment:
		return models.Metric{Label: "Savings Rate", Value: FormatPercent(f.SavingsRate)},
			models.Metric{Label: "Risk Profile", Value: f.RiskTolerance}
	default:
		return models.Metric{Label: "Debt-to-Income", Value: FormatPercent(f.DebtToIncome)},
			models.Metric{Label: "Financial Health", Value: f.FinancialHealth}
	}
}

func unavailableMetrics(formula models.Category) (models.Metric, models.Metric) {
	m1, m2 := Metrics(Assessment{Formula: formula})
	m1.Value = NotAvailable
	m2.Value = NotAvailable
	return m1, m2
}
