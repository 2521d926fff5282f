package domain

// SyncEventType classifies the mutation or reconciliation events published
// to downstream consumers.
type SyncEventType string

const (
	SyncEventAssistantCreated SyncEventType = "assistant_created"
	SyncEventAssistantUpdated SyncEventType = "assistant_updated"
	SyncEventAssistantDeleted SyncEventType = "assistant_deleted"
	SyncEventThreadCreated    SyncEventType = "thread_created"
	SyncEventThreadUpdated    SyncEventType = "thread_updated"
	SyncEventThreadDeleted    SyncEventType = "thread_deleted"
	SyncEventMessagesFolded   SyncEventType = "messages_folded"
	SyncEventServiceBound     SyncEventType = "service_bound"
	SyncEventDriftDetected    SyncEventType = "drift_detected"
)

// SyncEvent is published after a ledger commit (or a reconciliation finding)
// so downstream consumers can follow conversation state changes without
// polling the ledger.
type SyncEvent struct {
	Type        SyncEventType `json:"type"`
	AppID       string        `json:"app_id"`
	TokenID     string        `json:"token_id,omitempty"`
	ServiceName string        `json:"service_name,omitempty"`
	UserAddress string        `json:"user_address,omitempty"`
	LedgerPath  string        `json:"ledger_path,omitempty"`
	TxHash      string        `json:"tx_hash,omitempty"`
	Timestamp   int64         `json:"timestamp"`
}
