package domain

import (
	"sort"
	"strconv"
	"strings"

	"github.com/ethereum/go-ethereum/common"
)

// Role describes how a mutation caller relates to the application that owns
// the target token. The role decides whether the orchestrator commits the
// resulting ledger transaction itself or leaves it to the caller.
type Role int

const (
	// RoleOwner is the application owner. Mutations are committed to the
	// ledger in the same call.
	RoleOwner Role = iota
	// RoleAllowlistedUser is a non-owner caller on an allow-listed
	// application. The provider-side mutation is executed but the ledger
	// write is skipped and left to the owner.
	RoleAllowlistedUser
)

// CommitsLedger reports whether mutations performed under this role are
// committed to the ledger as part of the same call.
func (r Role) CommitsLedger() bool {
	return r == RoleOwner
}

func (r Role) String() string {
	switch r {
	case RoleOwner:
		return "owner"
	case RoleAllowlistedUser:
		return "allowlisted_user"
	default:
		return "unknown"
	}
}

// ServiceKind identifies the kind of compute service bound to an application.
type ServiceKind string

const (
	ServiceKindChat ServiceKind = "chat"
)

// OperationType is the typed operation sent to the compute provider.
type OperationType string

const (
	OpCreateAssistant   OperationType = "create_assistant"
	OpModifyAssistant   OperationType = "modify_assistant"
	OpDeleteAssistant   OperationType = "delete_assistant"
	OpRetrieveAssistant OperationType = "retrieve_assistant"
	OpCreateThread      OperationType = "create_thread"
	OpModifyThread      OperationType = "modify_thread"
	OpDeleteThread      OperationType = "delete_thread"
	OpRetrieveThread    OperationType = "retrieve_thread"
	OpCreateMessage     OperationType = "create_message"
	OpModifyMessage     OperationType = "modify_message"
	OpListMessages      OperationType = "list_messages"
	OpCreateRun         OperationType = "create_run"
	OpRetrieveRun       OperationType = "retrieve_run"
)

// RunStatus is the lifecycle state of a provider-side run.
type RunStatus string

const (
	RunStatusQueued     RunStatus = "queued"
	RunStatusInProgress RunStatus = "in_progress"
	RunStatusCompleted  RunStatus = "completed"
	RunStatusFailed     RunStatus = "failed"
	RunStatusExpired    RunStatus = "expired"
	RunStatusCancelled  RunStatus = "cancelled"
)

// Terminal reports whether the run has reached a final state.
func (s RunStatus) Terminal() bool {
	switch s {
	case RunStatusCompleted, RunStatusFailed, RunStatusExpired, RunStatusCancelled:
		return true
	default:
		return false
	}
}

// MessageRole is the author role of a thread message.
type MessageRole string

const (
	MessageRoleOwner     MessageRole = "owner"
	MessageRoleUser      MessageRole = "user"
	MessageRoleAssistant MessageRole = "assistant"
)

// Application is the root namespace for a tenant on the ledger.
type Application struct {
	ID    string `json:"id"`
	Owner string `json:"owner"`
}

// ServiceBinding declares that a named compute service is enabled for an
// application. It must exist before any assistant, thread or message mutation
// referencing the service.
type ServiceBinding struct {
	Name        string      `json:"name"`
	Kind        ServiceKind `json:"kind"`
	Description string      `json:"description,omitempty"`
	CreatedAt   int64       `json:"created_at"`
}

// Token is a unit of ownership scoped to an application.
type Token struct {
	ID    string `json:"id"`
	Owner string `json:"owner"`
}

// AssistantConfig is the replaceable configuration sub-object of an assistant.
type AssistantConfig struct {
	Model        string            `json:"model"`
	Name         string            `json:"name"`
	Instructions string            `json:"instructions"`
	Description  *string           `json:"description,omitempty"`
	Metadata     map[string]string `json:"metadata,omitempty"`
}

// Assistant is one conversational agent bound to a single token.
// Owner is inherited from the token for display purposes and is not stored
// on the assistant node itself.
type Assistant struct {
	ID        string          `json:"id"`
	Config    AssistantConfig `json:"config"`
	CreatedAt int64           `json:"created_at"`
	Owner     string          `json:"owner,omitempty"`
	TokenID   string          `json:"token_id,omitempty"`
}

// Thread is a conversation instance scoped to {token, service, user address}.
type Thread struct {
	ID        string            `json:"id"`
	Metadata  map[string]string `json:"metadata,omitempty"`
	CreatedAt int64             `json:"created_at"`
	UpdatedAt int64             `json:"updated_at"`
}

// Message is one entry in a thread. The ledger key is derived from CreatedAt,
// not from the provider id: the provider can return several messages for one
// call (the user message plus the assistant reply) and they must be inserted
// together, ordered by creation time. The provider id is kept as a field.
type Message struct {
	ID        string            `json:"id"`
	Role      MessageRole       `json:"role"`
	Content   string            `json:"content"`
	Metadata  map[string]string `json:"metadata,omitempty"`
	CreatedAt int64             `json:"created_at"`
}

// Key returns the timestamp-derived ledger key for the message.
func (m Message) Key() string {
	return MessageKey(m.CreatedAt)
}

// MessageKey derives the ledger key for a message created at the given unix
// timestamp. Keys are unique and monotonically increasing within one thread
// as long as the provider never reports identical timestamps.
func MessageKey(createdAt int64) string {
	return strconv.FormatInt(createdAt, 10)
}

// SortMessages orders messages by creation time, provider id as tie-breaker.
func SortMessages(msgs []Message) {
	sort.Slice(msgs, func(i, j int) bool {
		if msgs[i].CreatedAt != msgs[j].CreatedAt {
			return msgs[i].CreatedAt < msgs[j].CreatedAt
		}
		return msgs[i].ID < msgs[j].ID
	})
}

// LedgerReceipt is the ledger half of a write result. It is absent for
// allow-listed non-owner writes.
type LedgerReceipt struct {
	TxHash string `json:"tx_hash"`
	Code   int    `json:"code"`
}

// AssistantWrite is the combined result of an assistant mutation.
type AssistantWrite struct {
	Receipt   *LedgerReceipt `json:"receipt,omitempty"`
	Assistant *Assistant     `json:"assistant"`
}

// ThreadWrite is the combined result of a thread mutation.
type ThreadWrite struct {
	Receipt *LedgerReceipt `json:"receipt,omitempty"`
	Thread  *Thread        `json:"thread"`
}

// MessageWrite is the combined result of a message mutation. Messages holds
// the full batch folded into the thread, not only the message the caller sent.
type MessageWrite struct {
	Receipt  *LedgerReceipt `json:"receipt,omitempty"`
	Messages []Message      `json:"messages"`
}

// ServiceBindingWrite is the combined result of a service configuration.
type ServiceBindingWrite struct {
	Receipt *LedgerReceipt  `json:"receipt,omitempty"`
	Binding *ServiceBinding `json:"binding"`
}

// CreditDeposit is the result of a credit deposit against the provider.
type CreditDeposit struct {
	ChargeTxID string  `json:"charge_tx_id"`
	Balance    float64 `json:"balance"`
}

// ValidAddress reports whether s is a well-formed hex address.
func ValidAddress(s string) bool {
	return common.IsHexAddress(s)
}

// NormalizeAddress lowercases a hex address so that ledger paths and owner
// comparisons are case-insensitive.
func NormalizeAddress(address string) string {
	return strings.ToLower(address)
}
