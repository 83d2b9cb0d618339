package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/Dan9191/rm-dashboard/internal/config"
	"github.com/Dan9191/rm-dashboard/internal/models"
	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
)

const profilesCypher = `
	MATCH (c:Customer)-[:EARNS]->(i:Income),
		(c)-[:HAS_CREDIT_REPORT]->(cr:CreditReport),
		(c)-[:HAS_EXPENSE]->(exp:Expense),
		(c)-[:HAS_GOAL]->(s:SavingsGoal),
		(c)-[:OWES_DEBT]->(d:Debt)
	RETURN c.name AS name, c.age AS age, i.amount_monthly AS income, exp.amount_monthly AS monthly_expenses,
		cr.score AS credit_score, s.current_saved AS savings, d.remaining_balance AS debt,
		i.employer_business_name AS employment`

// GraphSource reads client profiles from the Neo4j knowledge graph
type GraphSource struct {
	uri      string
	auth     neo4j.AuthToken
	database string
	timeout  time.Duration
}

// NewGraphSource initializes a Neo4j profile source
func NewGraphSource(cfg *config.Config) *GraphSource {
	return &GraphSource{
		uri:      cfg.Neo4jURI,
		auth:     neo4j.BasicAuth(cfg.Neo4jUser, cfg.Neo4jPassword, ""),
		database: cfg.Neo4jDatabase,
		timeout:  cfg.Neo4jTimeout,
	}
}

// Name implements ProfileSource
func (g *GraphSource) Name() string {
	return config.SourceNeo4j
}

// LoadProfiles runs the fixed profile query against the graph
func (g *GraphSource) LoadProfiles(ctx context.Context) ([]ProfileRecord, error) {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	driver, err := neo4j.NewDriverWithContext(g.uri, g.auth)
	if err != nil {
		return nil, fmt.Errorf("failed to create neo4j driver: %w", err)
	}
	defer driver.Close(ctx)

	if err := driver.VerifyConnectivity(ctx); err != nil {
		return nil, fmt.Errorf("failed to connect to neo4j: %w", err)
	}

	var opts []neo4j.ExecuteQueryConfigurationOption
	if g.database != "" {
		opts = append(opts, neo4j.ExecuteQueryWithDatabase(g.database))
	}
	result, err := neo4j.ExecuteQuery(ctx, driver, profilesCypher, nil, neo4j.EagerResultTransformer, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to query client profiles: %w", err)
	}

	records := make([]ProfileRecord, 0, len(result.Records))
	for _, rec := range result.Records {
		r, err := profileFromRecord(rec)
		if err != nil {
			return nil, err
		}
		records = append(records, r)
	}
	return records, nil
}

func profileFromRecord(rec *neo4j.Record) (ProfileRecord, error) {
	rawName, _ := rec.Get("name")
	name, ok := rawName.(string)
	if !ok || name == "" {
		return ProfileRecord{}, fmt.Errorf("customer record without a name: %v", rec.Values)
	}

	employment, _ := value(rec, "employment").(string)
	return ProfileRecord{
		Name: name,
		Profile: models.ClientProfile{
			Income:          toFloat(value(rec, "income")),
			MonthlyExpenses: toFloat(value(rec, "monthly_expenses")),
			Savings:         toFloat(value(rec, "savings")),
			CreditScore:     toFloat(value(rec, "credit_score")),
			Employment:      employment,
			Age:             int(toFloat(value(rec, "age"))),
			Debt:            toFloat(value(rec, "debt")),
		},
	}, nil
}

func value(rec *neo4j.Record, key string) any {
	v, _ := rec.Get(key)
	return v
}

// toFloat accepts the numeric types the driver returns; anything else is zero
func toFloat(v any) float64 {
	switch n := v.(type) {
	case int64:
		return float64(n)
	case float64:
		return n
	case int:
		return float64(n)
	default:
		return 0
	}
}
