package keypath_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ainft-labs/ainft-sync/internal/keypath"
)

func TestEntityPaths(t *testing.T) {
	assert.Equal(t, "/applications/app1", keypath.Application("app1"))
	assert.Equal(t, "/applications/app1/ai/openai", keypath.ServiceBinding("app1", "openai"))
	assert.Equal(t, "/applications/app1/tokens", keypath.Tokens("app1"))
	assert.Equal(t, "/applications/app1/tokens/42", keypath.Token("app1", "42"))
	assert.Equal(t, "/applications/app1/tokens/42/ai/openai", keypath.Assistant("app1", "42", "openai"))
	assert.Equal(t, "/applications/app1/tokens/42/ai/openai/history", keypath.History("app1", "42", "openai"))
	assert.Equal(t,
		"/applications/app1/tokens/42/ai/openai/history/0xabc",
		keypath.UserHistory("app1", "42", "openai", "0xabc"))
	assert.Equal(t,
		"/applications/app1/tokens/42/ai/openai/history/0xabc/threads",
		keypath.Threads("app1", "42", "openai", "0xabc"))
	assert.Equal(t,
		"/applications/app1/tokens/42/ai/openai/history/0xabc/threads/th1",
		keypath.Thread("app1", "42", "openai", "0xabc", "th1"))
	assert.Equal(t,
		"/applications/app1/tokens/42/ai/openai/history/0xabc/threads/th1/messages",
		keypath.Messages("app1", "42", "openai", "0xabc", "th1"))
	assert.Equal(t,
		"/applications/app1/tokens/42/ai/openai/history/0xabc/threads/th1/messages/1700000000",
		keypath.Message("app1", "42", "openai", "0xabc", "th1", "1700000000"))
}

func TestRuleAnchors(t *testing.T) {
	assert.Equal(t,
		"/applications/app1/tokens/42/ai/openai/history/$user_addr",
		keypath.UserHistoryRule("app1", "42", "openai"))
	assert.Equal(t,
		"/applications/app1/tokens/42/ai/openai/history/$user_addr/threads",
		keypath.ThreadsRule("app1", "42", "openai"))
	assert.Equal(t,
		"/applications/app1/tokens/42/ai/openai/history/$user_addr/threads/$thread_id/messages",
		keypath.MessagesRule("app1", "42", "openai"))
}

// Two code paths deriving the same entity's path must agree byte for byte.
func TestDeterminism(t *testing.T) {
	a := keypath.Message("app", "7", "svc", "0xuser", "t", "123")
	b := keypath.Messages("app", "7", "svc", "0xuser", "t") + "/123"
	assert.Equal(t, a, b)
}
