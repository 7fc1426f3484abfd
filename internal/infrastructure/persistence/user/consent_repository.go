package user

import (
	"database/sql"
	"time"

	"github.com/anja687gutierrez-jpg/goiconicway/internal/domain/entities/consent"
	"github.com/anja687gutierrez-jpg/goiconicway/internal/infrastructure/observability/logging"
	"github.com/anja687gutierrez-jpg/goiconicway/internal/infrastructure/persistence/database"
)

// SQLConsentRepository is the SQL-based implementation of the ConsentRepository.
type SQLConsentRepository struct {
	db     *database.DB
	logger *logging.ChanneledLogger
}

// NewSQLConsentRepository creates a new instance of the repository.
func NewSQLConsentRepository(db *database.DB, logger *logging.ChanneledLogger) *SQLConsentRepository {
	return &SQLConsentRepository{
		db:     db,
		logger: logger,
	}
}

// Upsert stores or replaces a consent decision for a fingerprint.
func (r *SQLConsentRepository) Upsert(p *consent.Preferences) error {
	const query = `
		INSERT INTO consents (fingerprint_id, essential, analytics, marketing, decided_at, expires_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(fingerprint_id) DO UPDATE SET
			essential = excluded.essential,
			analytics = excluded.analytics,
			marketing = excluded.marketing,
			decided_at = excluded.decided_at,
			expires_at = excluded.expires_at`

	start := time.Now()
	_, err := r.db.Exec(query, p.FingerprintID, p.Essential, p.Analytics, p.Marketing, p.DecidedAt, p.ExpiresAt)
	if err != nil {
		r.logger.Database().Error("Failed to upsert consent", "error", err.Error(), "fingerprintId", p.FingerprintID)
		return err
	}

	r.logger.Database().Info("Consent stored", "fingerprintId", p.FingerprintID, "analytics", p.Analytics, "duration", time.Since(start))
	database.CheckAndLogSlowQuery(r.logger, query, time.Since(start), "system")
	return nil
}

// Find retrieves the consent decision for a fingerprint, or nil when none
// was recorded.
func (r *SQLConsentRepository) Find(fingerprintID string) (*consent.Preferences, error) {
	const query = `
		SELECT fingerprint_id, essential, analytics, marketing, decided_at, expires_at
		FROM consents
		WHERE fingerprint_id = ?`

	var p consent.Preferences
	err := r.db.QueryRow(query, fingerprintID).Scan(
		&p.FingerprintID, &p.Essential, &p.Analytics, &p.Marketing, &p.DecidedAt, &p.ExpiresAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		r.logger.Database().Error("Failed to load consent", "error", err.Error(), "fingerprintId", fingerprintID)
		return nil, err
	}
	return &p, nil
}

// DeleteExpired removes consent rows past their retention window so the
// banner is shown again on the next visit.
func (r *SQLConsentRepository) DeleteExpired(now time.Time) (int64, error) {
	const query = `DELETE FROM consents WHERE expires_at < ?`

	result, err := r.db.Exec(query, now)
	if err != nil {
		r.logger.Database().Error("Failed to delete expired consents", "error", err.Error())
		return 0, err
	}
	removed, _ := result.RowsAffected()
	if removed > 0 {
		r.logger.Database().Info("Expired consents removed", "removed", removed)
	}
	return removed, nil
}
