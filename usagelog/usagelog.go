// Package usagelog persists completed requests to a local SQLite database
// for offline reporting.
package usagelog

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/shopspring/decimal"
	_ "modernc.org/sqlite"

	"github.com/bridgekit-ai/aibridge/manager"
)

// Store is a SQLite-backed manager.UsageStore. database/sql serializes
// access, so one Store is safe for concurrent use.
type Store struct {
	db *sql.DB
}

var _ manager.UsageStore = (*Store)(nil)

// Open creates or opens the usage database at path, creating parent
// directories as needed.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create usage db dir: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open usage db: %w", err)
	}

	store := &Store{db: db}
	if err := store.init(); err != nil {
		db.Close()
		return nil, err
	}
	return store, nil
}

func (s *Store) init() error {
	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA busy_timeout=5000",
	}
	for _, pragma := range pragmas {
		if _, err := s.db.Exec(pragma); err != nil {
			return fmt.Errorf("configure usage db: %w", err)
		}
	}

	schema := `
	CREATE TABLE IF NOT EXISTS requests (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		timestamp DATETIME NOT NULL,
		provider TEXT NOT NULL,
		model TEXT NOT NULL,
		task TEXT NOT NULL,
		prompt_tokens INTEGER NOT NULL,
		completion_tokens INTEGER NOT NULL,
		total_tokens INTEGER NOT NULL,
		cost_usd TEXT NOT NULL,
		response_time_ms INTEGER NOT NULL,
		fallback INTEGER NOT NULL DEFAULT 0
	);
	CREATE INDEX IF NOT EXISTS idx_requests_timestamp ON requests(timestamp);
	CREATE INDEX IF NOT EXISTS idx_requests_provider ON requests(provider);
	`
	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("create usage schema: %w", err)
	}
	return nil
}

// Record appends one completed request
func (s *Store) Record(ctx context.Context, record manager.UsageRecord) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO requests (timestamp, provider, model, task,
			prompt_tokens, completion_tokens, total_tokens,
			cost_usd, response_time_ms, fallback)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		record.Time.UTC().Format(time.RFC3339Nano),
		record.Provider,
		record.Model,
		string(record.Task),
		record.Usage.Prompt,
		record.Usage.Completion,
		record.Usage.Total,
		record.CostUSD,
		record.ResponseTime.Milliseconds(),
		boolToInt(record.Fallback),
	)
	if err != nil {
		return fmt.Errorf("record usage: %w", err)
	}
	return nil
}

// ProviderSummary is one row of the aggregated report
type ProviderSummary struct {
	Provider     string
	Requests     int64
	TotalTokens  int64
	TotalCostUSD string
	Fallbacks    int64
}

// Summarize aggregates the recorded requests per provider since the given
// time. A zero since covers everything. Costs are stored as decimal strings
// and summed as decimals, never as floats.
func (s *Store) Summarize(ctx context.Context, since time.Time) ([]ProviderSummary, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT provider, total_tokens, cost_usd, fallback
		FROM requests
		WHERE timestamp >= ?
		ORDER BY provider`,
		since.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return nil, fmt.Errorf("summarize usage: %w", err)
	}
	defer rows.Close()

	var summaries []ProviderSummary
	costs := make(map[string]decimal.Decimal)
	index := make(map[string]int)
	for rows.Next() {
		var provider, costUSD string
		var tokens, fallback int64
		if err := rows.Scan(&provider, &tokens, &costUSD, &fallback); err != nil {
			return nil, fmt.Errorf("scan usage row: %w", err)
		}
		cost, err := decimal.NewFromString(costUSD)
		if err != nil {
			return nil, fmt.Errorf("parse recorded cost %q: %w", costUSD, err)
		}
		i, ok := index[provider]
		if !ok {
			i = len(summaries)
			index[provider] = i
			summaries = append(summaries, ProviderSummary{Provider: provider})
		}
		summaries[i].Requests++
		summaries[i].TotalTokens += tokens
		summaries[i].Fallbacks += fallback
		costs[provider] = costs[provider].Add(cost)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for i := range summaries {
		summaries[i].TotalCostUSD = costs[summaries[i].Provider].String()
	}
	return summaries, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
