package schema

import (
	"time"

	"gorm.io/datatypes"
)

// FindingType classifies the kind of divergence detected between the
// ledger and the compute provider
type FindingType string

const (
	// FindingTypeMissingAssistant indicates an assistant recorded on the ledger
	// that the provider no longer knows about
	FindingTypeMissingAssistant FindingType = "missing_assistant"
	// FindingTypeConfigDrift indicates an assistant whose provider-side config
	// no longer matches the ledger record
	FindingTypeConfigDrift FindingType = "config_drift"
	// FindingTypeOrphanThread indicates a thread whose parent assistant record is gone
	FindingTypeOrphanThread FindingType = "orphan_thread"
	// FindingTypeProviderUnreachable indicates the provider could not be queried
	// for a binding during a sweep cycle
	FindingTypeProviderUnreachable FindingType = "provider_unreachable"
)

// ReconciliationFinding represents the reconciliation_findings table - a journal
// of divergences detected between ledger conversation state and the compute provider
type ReconciliationFinding struct {
	// ID is a ULID assigned when the finding is recorded
	ID string `gorm:"column:id;primaryKey;type:text"`
	// AppID identifies the application the finding belongs to
	AppID string `gorm:"column:app_id;not null;type:text;index:idx_findings_app_token,priority:1"`
	// TokenID identifies the token within the application
	TokenID string `gorm:"column:token_id;not null;type:text;index:idx_findings_app_token,priority:2"`
	// ServiceName identifies the compute service binding involved
	ServiceName string `gorm:"column:service_name;not null;type:text"`
	// Type classifies the divergence
	Type FindingType `gorm:"column:finding_type;not null;type:text"`
	// Details contains the ledger and provider views that diverged, as JSON
	Details datatypes.JSON `gorm:"column:details;type:jsonb"`
	// DetectedAt is the timestamp of the sweep cycle that detected the finding
	DetectedAt time.Time `gorm:"column:detected_at;not null;default:now();type:timestamptz"`
	// Resolved marks findings that a later sweep cycle no longer observes
	Resolved bool `gorm:"column:resolved;not null;default:false"`
	// ResolvedAt is set when the finding is marked resolved
	ResolvedAt *time.Time `gorm:"column:resolved_at;type:timestamptz"`
}

// TableName specifies the table name for the ReconciliationFinding model
func (ReconciliationFinding) TableName() string {
	return "reconciliation_findings"
}
