package web

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dan9191/rm-dashboard/internal/classifier"
	"github.com/Dan9191/rm-dashboard/internal/models"
)

func TestDashboard(t *testing.T) {
	r, err := NewRenderer()
	require.NoError(t, err)

	page := DashboardPage{
		Clients:  []string{"Sarah Johnson", "John Doe"},
		Selected: "John Doe",
		Profile:  models.ClientProfile{Income: 65000, CreditScore: 720, Employment: "Finance Ltd"},
		Query:    "invest <now>",
		Rules:    classifier.Rules(),
		Analysis: &models.Analysis{
			Result: models.AnalysisResult{
				Client:    "John Doe",
				Metric1:   models.Metric{Label: "Savings Rate", Value: "27.7%"},
				Metric2:   models.Metric{Label: "Risk Profile", Value: "Moderate"},
				Narrative: models.Narrative{Title: "Investment Recommendation", Body: "first\n\nsecond"},
			},
			Evidence: models.Evidence{Insights: []string{"insight one"}, Documents: []models.Document{{Source: "Pay Stub", Text: "stable"}}},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, r.Dashboard(&buf, page))
	html := buf.String()

	assert.Contains(t, html, `<option value="John Doe" selected>`)
	assert.Contains(t, html, "Rs. 65,000")
	assert.Contains(t, html, "27.7%")
	assert.Contains(t, html, "<p>first</p>")
	assert.Contains(t, html, "<p>second</p>")
	assert.Contains(t, html, "insight one")
	assert.Contains(t, html, "invest &lt;now&gt;")
	assert.Contains(t, html, "loan: loan, borrow, credit")
}

func TestDashboard_Placeholder(t *testing.T) {
	r, err := NewRenderer()
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, r.Dashboard(&buf, DashboardPage{Notice: "Using sample data"}))
	assert.Contains(t, buf.String(), "Evidence and reasoning will appear here after analysis")
	assert.Contains(t, buf.String(), "Using sample data")
}

func TestLogin(t *testing.T) {
	r, err := NewRenderer()
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, r.Login(&buf, LoginPage{Username: "rm", Error: "invalid credentials"}))
	assert.Contains(t, buf.String(), `value="rm"`)
	assert.Contains(t, buf.String(), "invalid credentials")
}
