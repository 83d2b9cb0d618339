package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/Dan9191/rm-dashboard/internal/classifier"
	"github.com/Dan9191/rm-dashboard/internal/middleware"
	"github.com/Dan9191/rm-dashboard/internal/service"
	"github.com/Dan9191/rm-dashboard/internal/web"
)

// Dashboard renders the main page. Results are computed whenever the query
// box is non-empty; a fresh visit gets the default question.
func (h *Handler) Dashboard(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page := web.DashboardPage{
		Clients: h.svc.Clients(),
		Source:  h.svc.Source(),
		Notice:  h.notice,
		Rules:   classifier.Rules(),
		Query:   service.DefaultQuery,
	}
	if q.Has("query") {
		page.Query = q.Get("query")
	}

	selected, err := h.svc.ResolveClient(q.Get("client"))
	if err != nil {
		page.Error = err.Error()
		h.renderDashboard(w, http.StatusNotFound, page)
		return
	}
	page.Selected = selected
	page.Profile, _ = h.svc.Profile(selected)

	if strings.TrimSpace(page.Query) != "" {
		page.Analysis, err = h.svc.Analyze(selected, page.Query)
		if err != nil {
			page.Error = err.Error()
		}
	}
	h.renderDashboard(w, http.StatusOK, page)
}

func (h *Handler) renderDashboard(w http.ResponseWriter, status int, page web.DashboardPage) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := h.pages.Dashboard(w, page); err != nil {
		h.log.WithError(err).Error("Failed to render dashboard")
	}
}

// LoginPage renders the login form
func (h *Handler) LoginPage(w http.ResponseWriter, r *http.Request) {
	h.renderLogin(w, http.StatusOK, web.LoginPage{})
}

func (h *Handler) renderLogin(w http.ResponseWriter, status int, page web.LoginPage) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := h.pages.Login(w, page); err != nil {
		h.log.WithError(err).Error("Failed to render login page")
	}
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string `json:"token"`
}

// Login authenticates an RM. JSON requests get the token in the body;
// form posts get a session cookie and a redirect to the dashboard.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	isJSON := strings.HasPrefix(r.Header.Get("Content-Type"), "application/json")

	var req loginRequest
	if isJSON {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
			return
		}
	} else {
		req.Username = r.FormValue("username")
		req.Password = r.FormValue("password")
	}

	token, err := h.svc.Login(req.Username, req.Password)
	if err != nil {
		if isJSON {
			h.writeError(w, err)
			return
		}
		status := statusFor(err)
		if errors.Is(err, service.ErrFeatureDisabled) {
			http.Redirect(w, r, "/", http.StatusSeeOther)
			return
		}
		h.renderLogin(w, status, web.LoginPage{Username: req.Username, Error: err.Error()})
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(service.TokenTTL.Seconds()),
	})
	if isJSON {
		writeJSON(w, http.StatusOK, loginResponse{Token: token})
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// RedirectToLogin sends unauthenticated browser requests to the login form
func RedirectToLogin(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}
