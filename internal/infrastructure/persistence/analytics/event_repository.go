// Package analytics provides the SQL-based analytics event sink.
package analytics

import (
	"time"

	"github.com/anja687gutierrez-jpg/goiconicway/internal/infrastructure/observability/logging"
	"github.com/anja687gutierrez-jpg/goiconicway/internal/infrastructure/persistence/database"
	"github.com/anja687gutierrez-jpg/goiconicway/internal/infrastructure/security"
)

// EventRecord is one durable analytics event row.
type EventRecord struct {
	SessionID     string
	FingerprintID string
	Kind          string
	Key           string
	Action        string
	Target        string
	CreatedAt     time.Time
}

// SQLEventRepository is the SQL-based implementation of the analytics sink.
type SQLEventRepository struct {
	db     *database.DB
	logger *logging.ChanneledLogger
}

// NewSQLEventRepository creates a new instance of the repository.
func NewSQLEventRepository(db *database.DB, logger *logging.ChanneledLogger) *SQLEventRepository {
	return &SQLEventRepository{
		db:     db,
		logger: logger,
	}
}

// Insert persists one analytics event.
func (r *SQLEventRepository) Insert(record *EventRecord) error {
	const query = `
		INSERT INTO analytics_events (id, session_id, fingerprint_id, kind, key, action, target, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`

	start := time.Now()
	_, err := r.db.Exec(query,
		security.GenerateULID(), record.SessionID, record.FingerprintID,
		record.Kind, record.Key, record.Action, record.Target, record.CreatedAt)
	if err != nil {
		r.logger.Database().Error("Failed to insert analytics event", "error", err.Error(), "kind", record.Kind)
		return err
	}

	database.CheckAndLogSlowQuery(r.logger, query, time.Since(start), record.SessionID)
	return nil
}

// CountByKind returns durable event counts per kind.
func (r *SQLEventRepository) CountByKind() (map[string]int, error) {
	const query = `SELECT kind, COUNT(*) FROM analytics_events GROUP BY kind`

	rows, err := r.db.Query(query)
	if err != nil {
		r.logger.Database().Error("Failed to count analytics events", "error", err.Error())
		return nil, err
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var kind string
		var count int
		if err := rows.Scan(&kind, &count); err != nil {
			return nil, err
		}
		counts[kind] = count
	}
	return counts, rows.Err()
}
