package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/Dan9191/rm-dashboard/internal/models"
	"github.com/sirupsen/logrus"
)

// SourceFallback names the built-in dataset used when the backing store is unreachable
const SourceFallback = "fallback"

// ErrDataUnavailable marks a profile load that fell back to the built-in dataset
var ErrDataUnavailable = errors.New("client data unavailable")

// ProfileRecord is one named client profile as read from a source
type ProfileRecord struct {
	Name    string
	Profile models.ClientProfile
}

// ProfileSource reads every client profile from a backing store
type ProfileSource interface {
	Name() string
	LoadProfiles(ctx context.Context) ([]ProfileRecord, error)
}

// Store holds the client profiles loaded at start. It is read-only after Load.
type Store struct {
	profiles   map[string]models.ClientProfile
	names      []string
	source     string
	diagnostic error
}

// Load reads all profiles from source once. On failure it substitutes the
// fallback dataset and keeps the cause on Diagnostic.
func Load(ctx context.Context, source ProfileSource, log *logrus.Logger) *Store {
	records, err := source.LoadProfiles(ctx)
	if err != nil {
		log.WithError(err).WithField("source", source.Name()).Warn("Failed to load client profiles, using fallback dataset")
		store := NewStore(SourceFallback, FallbackProfiles())
		store.diagnostic = fmt.Errorf("%w: %s: %v", ErrDataUnavailable, source.Name(), err)
		return store
	}

	store := NewStore(source.Name(), records)
	log.WithFields(logrus.Fields{
		"source":  store.source,
		"clients": store.names,
	}).Info("Client data loaded")
	return store
}

// NewStore builds a store from records. Later records with the same name
// replace earlier ones but keep the earlier position.
func NewStore(source string, records []ProfileRecord) *Store {
	s := &Store{
		profiles: make(map[string]models.ClientProfile, len(records)),
		source:   source,
	}
	for _, r := range records {
		if _, exists := s.profiles[r.Name]; !exists {
			s.names = append(s.names, r.Name)
		}
		s.profiles[r.Name] = r.Profile
	}
	return s
}

// Get returns the profile for a client
func (s *Store) Get(name string) (models.ClientProfile, bool) {
	p, ok := s.profiles[name]
	return p, ok
}

// Names returns client names in load order
func (s *Store) Names() []string {
	return append([]string(nil), s.names...)
}

// All returns a copy of every profile keyed by client name
func (s *Store) All() map[string]models.ClientProfile {
	out := make(map[string]models.ClientProfile, len(s.profiles))
	for k, v := range s.profiles {
		out[k] = v
	}
	return out
}

// Source names where the profiles came from
func (s *Store) Source() string {
	return s.source
}

// Diagnostic returns the load failure that triggered the fallback, if any
func (s *Store) Diagnostic() error {
	return s.diagnostic
}

// FallbackProfiles returns the built-in sample clients
func FallbackProfiles() []ProfileRecord {
	return []ProfileRecord{
		{
			Name: "Sarah Johnson",
			Profile: models.ClientProfile{
				Income:          75000,
				MonthlyExpenses: 4500,
				Savings:         25000,
				CreditScore:     750,
				Employment:      "Tech Corp",
				Age:             32,
				Debt:            15000,
			},
		},
		{
			Name: "John Doe",
			Profile: models.ClientProfile{
				Income:          65000,
				MonthlyExpenses: 3800,
				Savings:         18000,
				CreditScore:     720,
				Employment:      "Finance Ltd",
				Age:             28,
				Debt:            12000,
			},
		},
	}
}
