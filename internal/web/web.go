// Package web renders the dashboard pages.
package web

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"strings"

	"github.com/Dan9191/rm-dashboard/internal/analysis"
	"github.com/Dan9191/rm-dashboard/internal/classifier"
	"github.com/Dan9191/rm-dashboard/internal/models"
)

//go:embed templates/*.html
var templateFS embed.FS

// DashboardPage is the view model of the main page
type DashboardPage struct {
	Clients  []string
	Selected string
	Profile  models.ClientProfile
	Query    string
	Analysis *models.Analysis
	Source   string
	Notice   string
	Error    string
	Rules    []classifier.Rule
}

// LoginPage is the view model of the login form
type LoginPage struct {
	Username string
	Error    string
}

// Renderer executes the embedded page templates
type Renderer struct {
	tmpl *template.Template
}

// NewRenderer parses the embedded templates
func NewRenderer() (*Renderer, error) {
	funcs := template.FuncMap{
		"currency":   analysis.FormatCurrency,
		"plain":      analysis.FormatPlain,
		"paragraphs": func(s string) []string { return strings.Split(s, "\n\n") },
	}
	tmpl, err := template.New("pages").Funcs(funcs).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}
	return &Renderer{tmpl: tmpl}, nil
}

// Dashboard renders the main page
func (r *Renderer) Dashboard(w io.Writer, page DashboardPage) error {
	return r.tmpl.ExecuteTemplate(w, "dashboard.html", page)
}

// Login renders the login form
func (r *Renderer) Login(w io.Writer, page LoginPage) error {
	return r.tmpl.ExecuteTemplate(w, "login.html", page)
}
