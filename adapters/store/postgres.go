package store

import (
	"context"
	"log"
	"strings"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"cleanml/domain/result"
	"cleanml/internal/errors"
	"cleanml/ports"
)

// PostgresSource loads a result store from a Postgres results table,
// one row per (key, metric) pair.
type PostgresSource struct {
	db *sqlx.DB
}

// NewPostgresSource creates a Postgres-backed result source.
func NewPostgresSource(db *sqlx.DB) *PostgresSource {
	return &PostgresSource{db: db}
}

// OpenPostgresSource connects to the given DSN and wraps it.
func OpenPostgresSource(dsn string) (*PostgresSource, error) {
	db, err := sqlx.Connect("postgres", dsn)
	if err != nil {
		return nil, errors.StoreError("failed to connect to result store", err)
	}
	return NewPostgresSource(db), nil
}

var _ ports.ResultSource = (*PostgresSource)(nil)

type resultRow struct {
	Dataset   string  `db:"dataset"`
	SplitSeed string  `db:"split_seed"`
	ErrorType string  `db:"error_type"`
	TrainFile string  `db:"train_file"`
	Model     string  `db:"model"`
	Seed      string  `db:"seed"`
	Metric    string  `db:"metric"`
	Value     float64 `db:"value"`
}

// Load reads every result row and assembles the flat store.
func (s *PostgresSource) Load(ctx context.Context) (result.Store, error) {
	query := `SELECT dataset, split_seed, error_type, train_file, model, seed, metric, value
	FROM results
	ORDER BY dataset, split_seed, error_type, train_file, model, seed, metric`

	var rows []resultRow
	if err := s.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, errors.StoreError("failed to load results", err)
	}

	store := make(result.Store)
	for _, r := range rows {
		key := strings.Join([]string{r.Dataset, r.SplitSeed, r.ErrorType, r.TrainFile, r.Model, r.Seed}, "/")
		metrics, ok := store[key]
		if !ok {
			metrics = make(result.Metrics)
			store[key] = metrics
		}
		metrics[r.Metric] = r.Value
	}
	log.Printf("[PostgresSource] Loaded %d result entries (%d rows)", len(store), len(rows))
	return store, nil
}

// Close releases the underlying connection pool.
func (s *PostgresSource) Close() error {
	return s.db.Close()
}
