package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Dan9191/rm-dashboard/internal/config"
)

// SQLSource reads client profiles from PostgreSQL
type SQLSource struct {
	db *sql.DB
}

// NewSQLSource initializes a new PostgreSQL profile source
func NewSQLSource(db *sql.DB) *SQLSource {
	return &SQLSource{db: db}
}

// Name implements ProfileSource
func (r *SQLSource) Name() string {
	return config.SourcePostgres
}

// LoadProfiles retrieves every client profile
func (r *SQLSource) LoadProfiles(ctx context.Context) ([]ProfileRecord, error) {
	if err := r.db.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	query := `
		SELECT name, income, monthly_expenses, savings, credit_score, employment, age, debt
		FROM rm.client_profiles
		ORDER BY id`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query client profiles: %w", err)
	}
	defer rows.Close()

	var records []ProfileRecord
	for rows.Next() {
		var rec ProfileRecord
		p := &rec.Profile
		if err := rows.Scan(&rec.Name, &p.Income, &p.MonthlyExpenses, &p.Savings, &p.CreditScore, &p.Employment, &p.Age, &p.Debt); err != nil {
			return nil, fmt.Errorf("failed to scan client profile: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read client profiles: %w", err)
	}
	return records, nil
}
