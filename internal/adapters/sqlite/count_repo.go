package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/example/praxis/internal/ports/secondary"
)

// CountRepository implements secondary.CountRepository with SQLite.
type CountRepository struct {
	db *sql.DB
}

// NewCountRepository creates a new SQLite count repository.
func NewCountRepository(db *sql.DB) *CountRepository {
	return &CountRepository{db: db}
}

var _ secondary.CountRepository = (*CountRepository)(nil)

// countedTables are the user-owned tables reported by CountAll.
var countedTables = []string{"clients", "cases", "tasks", "judicial_processes", "petition_templates"}

// CountAll returns row counts keyed by table name.
func (r *CountRepository) CountAll(ctx context.Context, userID string) (map[string]int, error) {
	counts := make(map[string]int, len(countedTables))
	for _, table := range countedTables {
		var n int
		err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM "+table+" WHERE user_id = ?", userID).Scan(&n)
		if err != nil {
			return nil, fmt.Errorf("failed to count %s: %w", table, err)
		}
		counts[table] = n
	}
	return counts, nil
}
