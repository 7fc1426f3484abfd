// Package user provides the concrete SQL-based implementations of
// the visitor domain repositories (Lead, Consent).
package user

import (
	"database/sql"
	"time"

	"github.com/anja687gutierrez-jpg/goiconicway/internal/domain/entities/lead"
	"github.com/anja687gutierrez-jpg/goiconicway/internal/infrastructure/observability/logging"
	"github.com/anja687gutierrez-jpg/goiconicway/internal/infrastructure/persistence/database"
)

// SQLLeadRepository is the SQL-based implementation of the LeadRepository.
type SQLLeadRepository struct {
	db     *database.DB
	logger *logging.ChanneledLogger
}

// NewSQLLeadRepository creates a new instance of the repository.
func NewSQLLeadRepository(db *database.DB, logger *logging.ChanneledLogger) *SQLLeadRepository {
	return &SQLLeadRepository{
		db:     db,
		logger: logger,
	}
}

// Create persists a new lead.
func (r *SQLLeadRepository) Create(l *lead.Lead) error {
	const query = `
		INSERT INTO leads (id, first_name, email, session_id, fingerprint_id, source, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`

	start := time.Now()
	r.logger.Database().Debug("Creating lead", "id", l.ID, "email", l.Email)

	_, err := r.db.Exec(query, l.ID, l.FirstName, l.Email, l.SessionID, l.FingerprintID, l.Source, l.CreatedAt)
	if err != nil {
		r.logger.Database().Error("Failed to create lead", "error", err.Error(), "id", l.ID)
		return err
	}

	r.logger.Database().Info("Lead created", "id", l.ID, "duration", time.Since(start))
	database.CheckAndLogSlowQuery(r.logger, query, time.Since(start), l.SessionID)
	return nil
}

// FindByEmail retrieves a lead by email address, or nil when none exists.
func (r *SQLLeadRepository) FindByEmail(email string) (*lead.Lead, error) {
	const query = `
		SELECT id, first_name, email, session_id, fingerprint_id, source, created_at
		FROM leads
		WHERE email = ?`

	start := time.Now()
	r.logger.Database().Debug("Loading lead by email", "email", email)

	row := r.db.QueryRow(query, email)
	l, err := r.scanLead(row)
	if err != nil {
		if err == sql.ErrNoRows {
			r.logger.Database().Debug("Lead not found by email", "email", email)
			return nil, nil
		}
		r.logger.Database().Error("Failed to load lead by email", "error", err.Error(), "email", email)
		return nil, err
	}

	database.CheckAndLogSlowQuery(r.logger, query, time.Since(start), "system")
	return l, nil
}

// FindByFingerprint retrieves the most recent lead for a fingerprint, or nil.
func (r *SQLLeadRepository) FindByFingerprint(fingerprintID string) (*lead.Lead, error) {
	const query = `
		SELECT id, first_name, email, session_id, fingerprint_id, source, created_at
		FROM leads
		WHERE fingerprint_id = ?
		ORDER BY created_at DESC
		LIMIT 1`

	row := r.db.QueryRow(query, fingerprintID)
	l, err := r.scanLead(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		r.logger.Database().Error("Failed to load lead by fingerprint", "error", err.Error(), "fingerprintId", fingerprintID)
		return nil, err
	}
	return l, nil
}

func (r *SQLLeadRepository) scanLead(row *sql.Row) (*lead.Lead, error) {
	var l lead.Lead
	var sessionID, fingerprintID, source sql.NullString
	err := row.Scan(&l.ID, &l.FirstName, &l.Email, &sessionID, &fingerprintID, &source, &l.CreatedAt)
	if err != nil {
		return nil, err
	}
	l.SessionID = sessionID.String
	l.FingerprintID = fingerprintID.String
	l.Source = source.String
	return &l, nil
}
