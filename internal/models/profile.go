package models

// ClientProfile represents a client's financial attributes
type ClientProfile struct {
	Income          float64 `json:"income"`
	MonthlyExpenses float64 `json:"monthly_expenses"`
	Savings         float64 `json:"savings"`
	CreditScore     float64 `json:"credit_score"`
	Employment      string  `json:"employment"`
	Age             int     `json:"age"`
	Debt            float64 `json:"debt"`
}
