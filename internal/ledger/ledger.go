package ledger

import (
	"context"
	"encoding/json"
)

// Ledger is the port to the ledger gateway. The gateway owns request signing;
// this port only reads values and submits transactions.
//
//go:generate mockgen -source=ledger.go -destination=../mocks/ledger.go -package=mocks -mock_names=Ledger=MockLedger
type Ledger interface {
	// ReadValue returns the value stored at path, or nil when the node
	// does not exist.
	ReadValue(ctx context.Context, path string) (json.RawMessage, error)

	// Commit submits an atomic transaction. A returned receipt does not
	// imply success: the caller must check Receipt.OK.
	Commit(ctx context.Context, tx *Transaction) (*Receipt, error)
}
