package domain

// ThreadNode is the ledger shape of a thread subtree: the thread fields plus
// the messages container keyed by timestamp-derived message keys.
type ThreadNode struct {
	ID        string             `json:"id"`
	Metadata  map[string]string  `json:"metadata,omitempty"`
	CreatedAt int64              `json:"created_at"`
	UpdatedAt int64              `json:"updated_at"`
	Messages  map[string]Message `json:"messages,omitempty"`
}

// Thread returns the thread view of the node, without messages.
func (n *ThreadNode) Thread() *Thread {
	return &Thread{
		ID:        n.ID,
		Metadata:  n.Metadata,
		CreatedAt: n.CreatedAt,
		UpdatedAt: n.UpdatedAt,
	}
}

// MessageList returns the node's messages ordered by creation time.
func (n *ThreadNode) MessageList() []Message {
	msgs := make([]Message, 0, len(n.Messages))
	for _, m := range n.Messages {
		msgs = append(msgs, m)
	}
	SortMessages(msgs)
	return msgs
}

// FindMessageByProviderID scans the node's messages for the given provider
// message id and returns the matching key and message. There is no secondary
// index: the scan is linear over the thread's message set, which the
// retention policy keeps bounded.
func (n *ThreadNode) FindMessageByProviderID(providerID string) (string, *Message, bool) {
	for key, m := range n.Messages {
		if m.ID == providerID {
			msg := m
			return key, &msg, true
		}
	}
	return "", nil, false
}
