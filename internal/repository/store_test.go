package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dan9191/rm-dashboard/internal/models"
)

type stubSource struct {
	records []ProfileRecord
	err     error
	calls   int
}

func (s *stubSource) Name() string { return "stub" }

func (s *stubSource) LoadProfiles(ctx context.Context) ([]ProfileRecord, error) {
	s.calls++
	return s.records, s.err
}

func TestLoad_FallbackOnSourceFailure(t *testing.T) {
	log, hook := test.NewNullLogger()
	src := &stubSource{err: errors.New("connection refused")}

	store := Load(context.Background(), src, log)

	assert.Equal(t, 1, src.calls)
	assert.Equal(t, SourceFallback, store.Source())
	assert.Equal(t, []string{"Sarah Johnson", "John Doe"}, store.Names())
	assert.True(t, errors.Is(store.Diagnostic(), ErrDataUnavailable))
	assert.Contains(t, store.Diagnostic().Error(), "connection refused")

	sarah, ok := store.Get("Sarah Johnson")
	require.True(t, ok)
	assert.Equal(t, models.ClientProfile{
		Income: 75000, MonthlyExpenses: 4500, Savings: 25000, CreditScore: 750,
		Employment: "Tech Corp", Age: 32, Debt: 15000,
	}, sarah)

	john, ok := store.Get("John Doe")
	require.True(t, ok)
	assert.Equal(t, models.ClientProfile{
		Income: 65000, MonthlyExpenses: 3800, Savings: 18000, CreditScore: 720,
		Employment: "Finance Ltd", Age: 28, Debt: 12000,
	}, john)

	require.NotNil(t, hook.LastEntry())
	assert.Equal(t, logrus.WarnLevel, hook.LastEntry().Level)
}

func TestLoad_UsesSourceRecords(t *testing.T) {
	log, _ := test.NewNullLogger()
	src := &stubSource{records: []ProfileRecord{
		{Name: "Priya Shah", Profile: models.ClientProfile{Income: 90000}},
		{Name: "Arjun Rao", Profile: models.ClientProfile{Income: 40000}},
	}}

	store := Load(context.Background(), src, log)

	assert.NoError(t, store.Diagnostic())
	assert.Equal(t, "stub", store.Source())
	assert.Equal(t, []string{"Priya Shah", "Arjun Rao"}, store.Names())
	_, ok := store.Get("Sarah Johnson")
	assert.False(t, ok)
}

func TestLoad_EmptySourceIsNotAFailure(t *testing.T) {
	log, _ := test.NewNullLogger()

	store := Load(context.Background(), &stubSource{}, log)

	assert.NoError(t, store.Diagnostic())
	assert.Empty(t, store.Names())
}

func TestNewStore_DuplicateNamesKeepFirstPositionLastValue(t *testing.T) {
	store := NewStore("test", []ProfileRecord{
		{Name: "A", Profile: models.ClientProfile{Age: 1}},
		{Name: "B", Profile: models.ClientProfile{Age: 2}},
		{Name: "A", Profile: models.ClientProfile{Age: 3}},
	})

	assert.Equal(t, []string{"A", "B"}, store.Names())
	a, _ := store.Get("A")
	assert.Equal(t, 3, a.Age)
}

func TestStore_ReturnsCopies(t *testing.T) {
	store := NewStore(SourceFallback, FallbackProfiles())

	names := store.Names()
	names[0] = "changed"
	all := store.All()
	delete(all, "John Doe")

	assert.Equal(t, "Sarah Johnson", store.Names()[0])
	assert.Len(t, store.All(), 2)
}
