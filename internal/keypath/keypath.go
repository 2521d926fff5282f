// Package keypath derives the canonical hierarchical ledger paths for
// conversation entities. The layout is a compatibility contract with data
// already on the ledger and must not change:
//
//	/applications/{appId}
//	/applications/{appId}/ai/{serviceName}
//	/applications/{appId}/tokens/{tokenId}/ai/{serviceName}
//	/applications/{appId}/tokens/{tokenId}/ai/{serviceName}/history/{userAddress}/threads/{threadId}/messages/{messageKey}
//
// All functions are pure: identical inputs always yield identical paths,
// which is what makes rule installation idempotent and lets independently
// written code paths agree on where data lives.
package keypath

import "fmt"

// Application returns the root path of an application namespace.
func Application(appID string) string {
	return fmt.Sprintf("/applications/%s", appID)
}

// ServiceBinding returns the path of an application-level service binding.
func ServiceBinding(appID, serviceName string) string {
	return fmt.Sprintf("%s/ai/%s", Application(appID), serviceName)
}

// Tokens returns the tokens container of an application.
func Tokens(appID string) string {
	return fmt.Sprintf("%s/tokens", Application(appID))
}

// Token returns the path of a token under an application.
func Token(appID, tokenID string) string {
	return fmt.Sprintf("%s/tokens/%s", Application(appID), tokenID)
}

// Assistant returns the path of the assistant node for a token and service.
func Assistant(appID, tokenID, serviceName string) string {
	return fmt.Sprintf("%s/ai/%s", Token(appID, tokenID), serviceName)
}

// History returns the root of the per-user conversation history subtree.
func History(appID, tokenID, serviceName string) string {
	return fmt.Sprintf("%s/history", Assistant(appID, tokenID, serviceName))
}

// UserHistory returns the history subtree of a single user address.
func UserHistory(appID, tokenID, serviceName, userAddress string) string {
	return fmt.Sprintf("%s/%s", History(appID, tokenID, serviceName), userAddress)
}

// Threads returns the threads container of a user's history.
func Threads(appID, tokenID, serviceName, userAddress string) string {
	return fmt.Sprintf("%s/threads", UserHistory(appID, tokenID, serviceName, userAddress))
}

// Thread returns the path of a single thread.
func Thread(appID, tokenID, serviceName, userAddress, threadID string) string {
	return fmt.Sprintf("%s/%s", Threads(appID, tokenID, serviceName, userAddress), threadID)
}

// Messages returns the messages container of a thread.
func Messages(appID, tokenID, serviceName, userAddress, threadID string) string {
	return fmt.Sprintf("%s/messages", Thread(appID, tokenID, serviceName, userAddress, threadID))
}

// Message returns the path of a single message keyed by its timestamp key.
func Message(appID, tokenID, serviceName, userAddress, threadID, messageKey string) string {
	return fmt.Sprintf("%s/%s", Messages(appID, tokenID, serviceName, userAddress, threadID), messageKey)
}

// UserHistoryRule returns the rule anchor for per-user write authorization.
// The $user_addr variable is bound by the ledger at evaluation time.
func UserHistoryRule(appID, tokenID, serviceName string) string {
	return fmt.Sprintf("%s/$user_addr", History(appID, tokenID, serviceName))
}

// ThreadsRule returns the rule anchor for the thread retention policy.
func ThreadsRule(appID, tokenID, serviceName string) string {
	return fmt.Sprintf("%s/threads", UserHistoryRule(appID, tokenID, serviceName))
}

// MessagesRule returns the rule anchor for the message retention policy.
func MessagesRule(appID, tokenID, serviceName string) string {
	return fmt.Sprintf("%s/$thread_id/messages", ThreadsRule(appID, tokenID, serviceName))
}
