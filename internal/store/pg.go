package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/ainft-labs/ainft-sync/internal/store/schema"
)

const sweepCursorKey = "reconciliation:sweep_cursor"

type pgStore struct {
	db *gorm.DB
}

// NewPGStore creates a new PostgreSQL store instance
func NewPGStore(db *gorm.DB) Store {
	return &pgStore{db: db}
}

// ConfigureConnectionPool configures the connection pool settings for a GORM database connection.
// It accesses the underlying *sql.DB and sets the pool configuration.
// If any of the pool settings are 0 or empty, reasonable defaults are used:
//   - MaxOpenConns: 20 (if 0)
//   - MaxIdleConns: 5 (if 0)
//   - ConnMaxLifetime: 5 minutes (if 0)
//   - ConnMaxIdleTime: 10 minutes (if 0)
func ConfigureConnectionPool(db *gorm.DB, maxOpenConns, maxIdleConns int, connMaxLifetime, connMaxIdleTime time.Duration) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	maxOpenConns, maxIdleConns, connMaxLifetime, connMaxIdleTime =
		NormalizeConnectionPoolSettings(maxOpenConns, maxIdleConns, connMaxLifetime, connMaxIdleTime)

	sqlDB.SetMaxOpenConns(maxOpenConns)
	sqlDB.SetMaxIdleConns(maxIdleConns)
	sqlDB.SetConnMaxLifetime(connMaxLifetime)
	sqlDB.SetConnMaxIdleTime(connMaxIdleTime)

	return nil
}

// NormalizeConnectionPoolSettings applies defaults and clamps pool settings into safe values.
//
// Defaults (when zero):
//   - MaxOpenConns: 20
//   - MaxIdleConns: 5
//   - ConnMaxLifetime: 5 minutes
//   - ConnMaxIdleTime: 10 minutes
//
// Notes:
//   - database/sql treats MaxOpenConns=0 as "unlimited"
//   - database/sql treats MaxIdleConns=0 as "no idle connections"
func NormalizeConnectionPoolSettings(maxOpenConns, maxIdleConns int, connMaxLifetime, connMaxIdleTime time.Duration) (int, int, time.Duration, time.Duration) {
	// Set defaults if not provided
	if maxOpenConns == 0 {
		maxOpenConns = 20
	}
	if maxIdleConns == 0 {
		maxIdleConns = 5
	}
	if connMaxLifetime == 0 {
		connMaxLifetime = 5 * time.Minute
	}
	if connMaxIdleTime == 0 {
		connMaxIdleTime = 10 * time.Minute
	}

	// Ensure MaxIdleConns doesn't exceed MaxOpenConns
	if maxIdleConns > maxOpenConns {
		maxIdleConns = maxOpenConns
	}

	return maxOpenConns, maxIdleConns, connMaxLifetime, connMaxIdleTime
}

// RecordFinding persists a reconciliation finding
func (s *pgStore) RecordFinding(ctx context.Context, finding *schema.ReconciliationFinding) error {
	if err := s.db.WithContext(ctx).Create(finding).Error; err != nil {
		return fmt.Errorf("failed to record finding: %w", err)
	}
	return nil
}

// ListOpenFindings returns unresolved findings for an application, newest first
func (s *pgStore) ListOpenFindings(ctx context.Context, appID string, limit int) ([]schema.ReconciliationFinding, error) {
	var findings []schema.ReconciliationFinding
	q := s.db.WithContext(ctx).
		Where("app_id = ? AND resolved = false", appID).
		Order("detected_at DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&findings).Error; err != nil {
		return nil, fmt.Errorf("failed to list open findings: %w", err)
	}
	return findings, nil
}

// ResolveFindings marks all open findings for a binding as resolved
func (s *pgStore) ResolveFindings(ctx context.Context, appID, tokenID, serviceName string) error {
	now := time.Now()
	err := s.db.WithContext(ctx).
		Model(&schema.ReconciliationFinding{}).
		Where("app_id = ? AND token_id = ? AND service_name = ? AND resolved = false", appID, tokenID, serviceName).
		Updates(map[string]interface{}{
			"resolved":    true,
			"resolved_at": &now,
		}).Error
	if err != nil {
		return fmt.Errorf("failed to resolve findings: %w", err)
	}
	return nil
}

// GetSweepCursor retrieves the last app id processed by the reconciliation sweeper
func (s *pgStore) GetSweepCursor(ctx context.Context) (string, error) {
	var kv schema.KeyValueStore
	err := s.db.WithContext(ctx).Where("key = ?", sweepCursorKey).First(&kv).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil // No cursor yet, start from the beginning
		}
		return "", fmt.Errorf("failed to get sweep cursor: %w", err)
	}
	return kv.Value, nil
}

// SetSweepCursor stores the last app id processed by the reconciliation sweeper
func (s *pgStore) SetSweepCursor(ctx context.Context, appID string) error {
	kv := schema.KeyValueStore{
		Key:   sweepCursorKey,
		Value: appID,
	}
	err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
		}).
		Create(&kv).Error
	if err != nil {
		return fmt.Errorf("failed to set sweep cursor: %w", err)
	}
	return nil
}
