package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/Dan9191/rm-dashboard/internal/service"
	"github.com/Dan9191/rm-dashboard/internal/web"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
)

// Handler serves the dashboard page and its JSON API
type Handler struct {
	svc    *service.Service
	pages  *web.Renderer
	log    *logrus.Logger
	notice string
}

// NewHandler creates the HTTP handlers. notice is shown on the dashboard,
// e.g. when the profile store fell back to sample data.
func NewHandler(svc *service.Service, pages *web.Renderer, log *logrus.Logger, notice string) *Handler {
	return &Handler{svc: svc, pages: pages, log: log, notice: notice}
}

type analyzeRequest struct {
	Client string `json:"client"`
	Query  string `json:"query"`
	To     string `json:"to,omitempty"`
}

type clientsResponse struct {
	Clients []string `json:"clients"`
	Source  string   `json:"source"`
}

// Clients lists client names in load order
func (h *Handler) Clients(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, clientsResponse{Clients: h.svc.Clients(), Source: h.svc.Source()})
}

// Client returns the quick summary profile of one client
func (h *Handler) Client(w http.ResponseWriter, r *http.Request) {
	profile, err := h.svc.Profile(mux.Vars(r)["name"])
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, profile)
}

// Analyze classifies the query and returns metrics, narrative and evidence
func (h *Handler) Analyze(w http.ResponseWriter, r *http.Request) {
	var req analyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	a, err := h.svc.Analyze(req.Client, req.Query)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, a)
}

// EmailAnalysis computes an analysis and emails it to the requested address
func (h *Handler) EmailAnalysis(w http.ResponseWriter, r *http.Request) {
	var req analyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	a, err := h.svc.EmailAnalysis(req.Client, req.Query, req.To)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusAccepted, a)
}

// ReferenceRate returns the central bank key rate plus bank margin
func (h *Handler) ReferenceRate(w http.ResponseWriter, r *http.Request) {
	rate, err := h.svc.ReferenceRate(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rate)
}

// Health reports liveness and where profiles came from
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "ok",
		"source":  h.svc.Source(),
		"clients": len(h.svc.Clients()),
	})
}

type errorResponse struct {
	Error string `json:"error"`
}

func (h *Handler) writeError(w http.ResponseWriter, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError || status == http.StatusBadGateway {
		h.log.WithError(err).Error("Request failed")
	}
	writeJSON(w, status, errorResponse{Error: err.Error()})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, service.ErrClientNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, service.ErrFeatureDisabled):
		return http.StatusServiceUnavailable
	default:
		return http.StatusBadGateway
	}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// Unauthorized answers API requests that lack a valid token
func Unauthorized(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "unauthorized"})
}
