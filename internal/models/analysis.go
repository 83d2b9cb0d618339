package models

// Metric is a labeled, already formatted headline figure
type Metric struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// Narrative is the prose explanation shown under the metrics
type Narrative struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

// Figures holds the raw numbers behind the formatted metrics.
// Only the fields of the applied formula are set; a zero value is still reported.
type Figures struct {
	RiskScore       *float64 `json:"risk_score,omitempty"`
	MaxLoan         *float64 `json:"max_loan,omitempty"`
	RiskLevel       string   `json:"risk_level,omitempty"`
	SavingsRate     *float64 `json:"savings_rate,omitempty"`
	RiskTolerance   string   `json:"risk_tolerance,omitempty"`
	DebtToIncome    *float64 `json:"debt_to_income,omitempty"`
	FinancialHealth string   `json:"financial_health,omitempty"`
}

// AnalysisResult is produced per query and never persisted
type AnalysisResult struct {
	Client      string    `json:"client"`
	Category    Category  `json:"category"`
	Formula     Category  `json:"formula"` // differs from Category for mortgage and card
	Figures     Figures   `json:"figures"`
	Metric1     Metric    `json:"metric1"`
	Metric2     Metric    `json:"metric2"`
	Narrative   Narrative `json:"narrative"`
	Unavailable bool      `json:"unavailable,omitempty"`
	Reason      string    `json:"reason,omitempty"`
}
