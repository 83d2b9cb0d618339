// Package evidence supplies the supporting statements shown next to an analysis.
package evidence

import (
	"fmt"

	"github.com/Dan9191/rm-dashboard/internal/models"
)

// Static returns fixed, templated evidence for every client
type Static struct{}

// NewStatic initializes a static evidence provider
func NewStatic() *Static {
	return &Static{}
}

// Evidence returns knowledge-graph insights and supporting documents for a client.
// The category is accepted for interface compatibility and does not change the output.
func (s *Static) Evidence(clientLabel string, _ models.Category) models.Evidence {
	return models.Evidence{
		Insights: []string{
			fmt.Sprintf("Employment stability: %s shows consistent employment history with good sector performance", clientLabel),
			"Financial behavior: Regular savings patterns indicate disciplined money management",
			"Credit relationships: Strong payment history with existing financial institutions",
		},
		Documents: []models.Document{
			{Source: "Client Email - Dec 2024", Text: "Looking for financial advice on loan consolidation and investment options..."},
			{Source: "Pay Stub Analysis - Nov 2024", Text: "Consistent monthly income with regular bonuses indicating stable employment"},
			{Source: "Bank Statement - Oct 2024", Text: "Regular savings deposits and controlled spending patterns show financial discipline"},
			{Source: "Industry Report - Nov 2024", Text: fmt.Sprintf("%s's employment sector showing stable growth despite market conditions", clientLabel)},
		},
	}
}
