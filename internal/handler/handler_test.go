package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/Dan9191/rm-dashboard/internal/config"
	"github.com/Dan9191/rm-dashboard/internal/evidence"
	"github.com/Dan9191/rm-dashboard/internal/middleware"
	"github.com/Dan9191/rm-dashboard/internal/models"
	"github.com/Dan9191/rm-dashboard/internal/repository"
	"github.com/Dan9191/rm-dashboard/internal/service"
	"github.com/Dan9191/rm-dashboard/internal/telemetry"
	"github.com/Dan9191/rm-dashboard/internal/web"
)

type stubRates struct{}

func (stubRates) Enabled() bool { return true }
func (stubRates) GetKeyRate(ctx context.Context) (models.ReferenceRate, error) {
	return models.ReferenceRate{KeyRate: 21, Margin: 5, Effective: 26}, nil
}

func newTestRouter(t *testing.T, cfg *config.Config) http.Handler {
	t.Helper()
	return newTestRouterWithStore(t, cfg, repository.NewStore(repository.SourceFallback, repository.FallbackProfiles()))
}

func newTestRouterWithStore(t *testing.T, cfg *config.Config, store *repository.Store) http.Handler {
	t.Helper()
	log, _ := test.NewNullLogger()
	if cfg == nil {
		cfg = &config.Config{}
	}
	metrics := telemetry.New()
	svc := service.NewService(store, evidence.NewStatic(), log, cfg,
		service.WithRecorder(metrics), service.WithRates(stubRates{}))
	pages, err := web.NewRenderer()
	require.NoError(t, err)

	return NewRouter(NewHandler(svc, pages, log, "Using sample client data"), cfg, metrics)
}

func doJSON(t *testing.T, h http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestClients(t *testing.T) {
	rec := doJSON(t, newTestRouter(t, nil), http.MethodGet, "/api/clients", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp clientsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, []string{"Sarah Johnson", "John Doe"}, resp.Clients)
	assert.Equal(t, "fallback", resp.Source)
}

func TestClient(t *testing.T) {
	h := newTestRouter(t, nil)

	rec := doJSON(t, h, http.MethodGet, "/api/clients/"+url.PathEscape("John Doe"), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var p models.ClientProfile
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &p))
	assert.Equal(t, 720.0, p.CreditScore)

	rec = doJSON(t, h, http.MethodGet, "/api/clients/Nobody", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAnalyze(t *testing.T) {
	tests := []struct {
		name     string
		body     analyzeRequest
		status   int
		category models.Category
		metric1  string
	}{
		{"loan", analyzeRequest{Client: "Sarah Johnson", Query: "home loan"}, http.StatusOK, models.CategoryLoan, "2.5"},
		{"investment", analyzeRequest{Client: "Sarah Johnson", Query: "invest"}, http.StatusOK, models.CategoryInvestment, "33.3%"},
		{"card falls back to general", analyzeRequest{Client: "Sarah Johnson", Query: "card"}, http.StatusOK, models.CategoryCard, "20.0%"},
		{"unknown client", analyzeRequest{Client: "Nobody", Query: "loan"}, http.StatusNotFound, "", ""},
	}

	h := newTestRouter(t, nil)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doJSON(t, h, http.MethodPost, "/api/analyze", tt.body)
			require.Equal(t, tt.status, rec.Code)
			if tt.status != http.StatusOK {
				return
			}

			var a models.Analysis
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &a))
			assert.Equal(t, tt.category, a.Category)
			assert.Equal(t, tt.metric1, a.Result.Metric1.Value)
			assert.Len(t, a.Evidence.Documents, 4)
		})
	}
}

func TestAnalyze_ZeroFiguresPresent(t *testing.T) {
	store := repository.NewStore("test", []repository.ProfileRecord{{
		Name:    "Debt Free",
		Profile: models.ClientProfile{Income: 60000, Savings: 10000, CreditScore: 800, Age: 40},
	}})
	h := newTestRouterWithStore(t, nil, store)

	tests := []struct {
		query   string
		present map[string]float64
		absent  []string
	}{
		{"overview", map[string]float64{"debt_to_income": 0}, []string{"risk_score", "max_loan", "savings_rate"}},
		{"loan", map[string]float64{"risk_score": 0, "max_loan": 24000}, []string{"debt_to_income", "savings_rate"}},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			rec := doJSON(t, h, http.MethodPost, "/api/analyze", analyzeRequest{Client: "Debt Free", Query: tt.query})
			require.Equal(t, http.StatusOK, rec.Code)

			var body struct {
				Result struct {
					Figures map[string]interface{} `json:"figures"`
				} `json:"result"`
			}
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			figures := body.Result.Figures
			for key, want := range tt.present {
				require.Contains(t, figures, key)
				assert.Equal(t, want, figures[key])
			}
			for _, key := range tt.absent {
				assert.NotContains(t, figures, key)
			}
		})
	}
}

func TestAnalyze_BadBody(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/api/analyze", strings.NewReader("{"))
	rec := httptest.NewRecorder()
	newTestRouter(t, nil).ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestEmailAnalysis_Disabled(t *testing.T) {
	rec := doJSON(t, newTestRouter(t, nil), http.MethodPost, "/api/analyze/email",
		analyzeRequest{Client: "John Doe", Query: "loan", To: "desk@example.com"})
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestReferenceRate(t *testing.T) {
	rec := doJSON(t, newTestRouter(t, nil), http.MethodGet, "/api/reference-rate", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"key_rate":21,"margin":5,"effective_rate":26}`, rec.Body.String())
}

func TestHealthAndMetrics(t *testing.T) {
	h := newTestRouter(t, nil)
	doJSON(t, h, http.MethodPost, "/api/analyze", analyzeRequest{Query: "mortgage"})

	rec := doJSON(t, h, http.MethodGet, "/healthz", nil)
	assert.JSONEq(t, `{"status":"ok","source":"fallback","clients":2}`, rec.Body.String())

	rec = doJSON(t, h, http.MethodGet, "/metrics", nil)
	assert.Contains(t, rec.Body.String(), `rm_analyses_total{category="mortgage",formula="general"} 1`)
}

func TestDashboard(t *testing.T) {
	h := newTestRouter(t, nil)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Personal Loan Assessment")
	assert.Contains(t, body, "Using sample client data")
	assert.Contains(t, body, `<option value="Sarah Johnson" selected>`)

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/?client=John+Doe&query=", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Select a client and click")
	assert.Contains(t, rec.Body.String(), "Rs. 65,000")

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/?client=Nobody", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func authConfig(t *testing.T) *config.Config {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
	require.NoError(t, err)
	return &config.Config{RMUsername: "rm", RMPasswordHash: string(hash), JWTSecret: "test-secret"}
}

func TestAuth_APIAndLogin(t *testing.T) {
	h := newTestRouter(t, authConfig(t))

	rec := doJSON(t, h, http.MethodGet, "/api/clients", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = doJSON(t, h, http.MethodPost, "/login", loginRequest{Username: "rm", Password: "wrong"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = doJSON(t, h, http.MethodPost, "/login", loginRequest{Username: "rm", Password: "s3cret"})
	require.Equal(t, http.StatusOK, rec.Code)
	var resp loginResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)

	req := httptest.NewRequest(http.MethodGet, "/api/clients", nil)
	req.Header.Set("Authorization", "Bearer "+resp.Token)
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAuth_DashboardFormLogin(t *testing.T) {
	h := newTestRouter(t, authConfig(t))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/login", rec.Header().Get("Location"))

	form := url.Values{"username": {"rm"}, "password": {"s3cret"}}
	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	require.Equal(t, http.StatusSeeOther, rec.Code)

	var session *http.Cookie
	for _, c := range rec.Result().Cookies() {
		if c.Name == middleware.SessionCookie {
			session = c
		}
	}
	require.NotNil(t, session)

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(session)
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}
