package ledger

import (
	"encoding/json"

	"github.com/gowebpki/jcs"

	"github.com/ainft-labs/ainft-sync/internal/adapter"
	"github.com/ainft-labs/ainft-sync/internal/domain"
)

// MaxTransactionBytes is the serialized size ceiling for one transaction.
// Oversized transactions are rejected before submission, never truncated.
const MaxTransactionBytes = 10000

// RetentionPolicy bounds how many sibling nodes are retained under a parent
// before the oldest ones are garbage collected.
type RetentionPolicy struct {
	MaxSiblings     int
	DeleteBatchSize int
}

// Builder assembles ledger write operations into atomic transactions.
type Builder struct {
	clock adapter.Clock
}

// NewBuilder creates a transaction builder.
func NewBuilder(clock adapter.Clock) *Builder {
	return &Builder{clock: clock}
}

// ValueOp builds a value write. A nil value deletes the node.
func (b *Builder) ValueOp(path string, value interface{}) Op {
	return Op{Type: OpTypeSetValue, Ref: path, Value: value}
}

// WriteRuleOp builds a write-authorization rule installation at path.
func (b *Builder) WriteRuleOp(path string, predicate string) Op {
	return Op{
		Type: OpTypeSetRule,
		Ref:  path,
		Value: map[string]interface{}{
			".rule": map[string]interface{}{
				"write": predicate,
			},
		},
	}
}

// RetentionRuleOp builds a garbage-collection rule installation at path.
func (b *Builder) RetentionRuleOp(path string, policy RetentionPolicy) Op {
	return Op{
		Type: OpTypeSetRule,
		Ref:  path,
		Value: map[string]interface{}{
			".rule": map[string]interface{}{
				"state": map[string]interface{}{
					"gc_max_siblings":         policy.MaxSiblings,
					"gc_num_siblings_deleted": policy.DeleteBatchSize,
				},
			},
		},
	}
}

// RemoveRuleOp builds a rule removal at path.
func (b *Builder) RemoveRuleOp(path string) Op {
	return Op{Type: OpTypeSetRule, Ref: path, Value: nil}
}

// Atomic packages ops into a single all-or-nothing transaction for address.
// The transaction is serialized to canonical JSON to measure its size; when
// it exceeds MaxTransactionBytes the build fails with payload_too_large
// before anything is sent.
func (b *Builder) Atomic(address string, ops []Op) (*Transaction, error) {
	tx := &Transaction{
		Address:   address,
		Timestamp: b.clock.Now().UnixMilli(),
		Nonce:     -1,
		Operation: Operation{
			Type:   "SET",
			OpList: ops,
		},
	}

	raw, err := json.Marshal(tx)
	if err != nil {
		return nil, domain.WrapError(domain.ErrCodeInternal, err, "failed to serialize transaction")
	}
	canonical, err := jcs.Transform(raw)
	if err != nil {
		return nil, domain.WrapError(domain.ErrCodeInternal, err, "failed to canonicalize transaction")
	}
	if len(canonical) > MaxTransactionBytes {
		return nil, domain.NewPayloadTooLarge("transaction size %d exceeds ceiling %d bytes", len(canonical), MaxTransactionBytes)
	}

	return tx, nil
}
