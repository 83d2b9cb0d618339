package service

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"

	"github.com/Dan9191/rm-dashboard/internal/analysis"
	"github.com/Dan9191/rm-dashboard/internal/classifier"
	"github.com/Dan9191/rm-dashboard/internal/config"
	"github.com/Dan9191/rm-dashboard/internal/models"
	"github.com/sirupsen/logrus"
)

// DefaultQuery is the question pre-filled on the dashboard
const DefaultQuery = "What is the risk assessment for a personal loan of Rs50,000?"

var (
	ErrClientNotFound     = errors.New("client not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrFeatureDisabled    = errors.New("feature disabled")
	ErrInvalidInput       = errors.New("invalid input")
)

// ProfileStore is the read-only client profile store
type ProfileStore interface {
	Get(name string) (models.ClientProfile, bool)
	Names() []string
	Source() string
}

// EvidenceProvider supplies supporting statements for an analysis
type EvidenceProvider interface {
	Evidence(clientLabel string, category models.Category) models.Evidence
}

// RateProvider fetches the reference lending rate
type RateProvider interface {
	Enabled() bool
	GetKeyRate(ctx context.Context) (models.ReferenceRate, error)
}

// Mailer delivers an analysis summary
type Mailer interface {
	SendAnalysis(to string, analysis *models.Analysis) error
}

// Recorder counts computed analyses
type Recorder interface {
	RecordAnalysis(category, formula string, unavailable bool)
}

// Option configures optional collaborators
type Option func(*Service)

// WithRates enables the reference rate lookup
func WithRates(r RateProvider) Option {
	return func(s *Service) { s.rates = r }
}

// WithMailer enables emailing analyses
func WithMailer(m Mailer) Option {
	return func(s *Service) { s.mailer = m }
}

// WithRecorder enables analysis metrics
func WithRecorder(r Recorder) Option {
	return func(s *Service) { s.recorder = r }
}

// Service handles business logic
type Service struct {
	store    ProfileStore
	evidence EvidenceProvider
	rates    RateProvider
	mailer   Mailer
	recorder Recorder
	log      *logrus.Logger
	config   *config.Config
}

// NewService initializes a new service
func NewService(store ProfileStore, evidence EvidenceProvider, log *logrus.Logger, cfg *config.Config, opts ...Option) *Service {
	s := &Service{store: store, evidence: evidence, log: log, config: cfg}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Clients returns client names in load order
func (s *Service) Clients() []string {
	return s.store.Names()
}

// Source names where the client profiles were loaded from
func (s *Service) Source() string {
	return s.store.Source()
}

// Profile returns the profile of one client
func (s *Service) Profile(name string) (models.ClientProfile, error) {
	p, ok := s.store.Get(name)
	if !ok {
		return models.ClientProfile{}, fmt.Errorf("%w: %s", ErrClientNotFound, name)
	}
	return p, nil
}

// ResolveClient returns name, or the first loaded client when name is empty
func (s *Service) ResolveClient(name string) (string, error) {
	if name != "" {
		if _, ok := s.store.Get(name); !ok {
			return "", fmt.Errorf("%w: %s", ErrClientNotFound, name)
		}
		return name, nil
	}
	names := s.store.Names()
	if len(names) == 0 {
		return "", fmt.Errorf("%w: no clients loaded", ErrClientNotFound)
	}
	return names[0], nil
}

// Analyze classifies the query and computes metrics and evidence for a client
func (s *Service) Analyze(clientName, query string) (*models.Analysis, error) {
	name, err := s.ResolveClient(clientName)
	if err != nil {
		return nil, err
	}
	profile, _ := s.store.Get(name)

	category := classifier.Classify(query)
	result := analysis.Compute(profile, category, name)

	fields := logrus.Fields{
		"client":   name,
		"category": category,
		"formula":  result.Formula,
	}
	if result.Unavailable {
		s.log.WithFields(fields).Warnf("Analysis unavailable: %s", result.Reason)
	} else {
		s.log.WithFields(fields).Debug("Analysis computed")
	}
	if s.recorder != nil {
		s.recorder.RecordAnalysis(string(category), string(result.Formula), result.Unavailable)
	}

	return &models.Analysis{
		Query:    query,
		Category: category,
		Result:   result,
		Evidence: s.evidence.Evidence(name, category),
	}, nil
}

// EmailAnalysis computes an analysis and emails it to the given address
func (s *Service) EmailAnalysis(clientName, query, to string) (*models.Analysis, error) {
	if s.mailer == nil {
		return nil, fmt.Errorf("%w: email is not configured", ErrFeatureDisabled)
	}
	addr, err := mail.ParseAddress(strings.TrimSpace(to))
	if err != nil {
		return nil, fmt.Errorf("%w: recipient: %v", ErrInvalidInput, err)
	}

	a, err := s.Analyze(clientName, query)
	if err != nil {
		return nil, err
	}
	if err := s.mailer.SendAnalysis(addr.Address, a); err != nil {
		return nil, err
	}
	return a, nil
}

// ReferenceRate returns the key rate plus bank margin
func (s *Service) ReferenceRate(ctx context.Context) (models.ReferenceRate, error) {
	if s.rates == nil || !s.rates.Enabled() {
		return models.ReferenceRate{}, fmt.Errorf("%w: reference rate is not configured", ErrFeatureDisabled)
	}
	rate, err := s.rates.GetKeyRate(ctx)
	if err != nil {
		return models.ReferenceRate{}, fmt.Errorf("failed to get key rate: %w", err)
	}
	return rate, nil
}
