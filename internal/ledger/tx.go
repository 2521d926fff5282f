// Package ledger holds the ledger port, the transaction model and the
// builder that assembles atomic multi-operation writes.
package ledger

// OpType is the kind of a single ledger write operation.
type OpType string

const (
	// OpTypeSetValue writes (or deletes, with a nil value) the value at a path.
	OpTypeSetValue OpType = "SET_VALUE"
	// OpTypeSetRule installs (or removes, with a nil value) a rule at a path.
	OpTypeSetRule OpType = "SET_RULE"
)

// Op is a single write operation inside a transaction.
type Op struct {
	Type  OpType      `json:"type"`
	Ref   string      `json:"ref"`
	Value interface{} `json:"value"`
}

// Operation is the multi-op envelope of a transaction. The ledger commits
// every op in OpList or none of them.
type Operation struct {
	Type   string `json:"type"`
	OpList []Op   `json:"op_list"`
}

// Transaction is one atomic ledger submission. Nonce -1 lets the gateway
// assign the next nonce for the address.
type Transaction struct {
	Address   string    `json:"address"`
	Timestamp int64     `json:"timestamp"`
	Nonce     int64     `json:"nonce"`
	Operation Operation `json:"operation"`
}

// OpResult is the per-operation outcome of a committed transaction.
type OpResult struct {
	Code    int    `json:"code"`
	Message string `json:"message,omitempty"`
}

// Receipt is the outcome of a committed transaction. For multi-op
// transactions ResultList carries one entry per op.
type Receipt struct {
	TxHash     string     `json:"tx_hash"`
	Result     OpResult   `json:"result"`
	ResultList []OpResult `json:"result_list,omitempty"`
}

// OK reports whether every sub-operation committed without error.
func (r *Receipt) OK() bool {
	if r.Result.Code != 0 {
		return false
	}
	for _, res := range r.ResultList {
		if res.Code != 0 {
			return false
		}
	}
	return true
}
