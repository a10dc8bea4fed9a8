package models

// -----------------------------------------------------------------------------
// Stream message types pushed to WebSocket clients
// -----------------------------------------------------------------------------

const (
	StreamTypeSubscribed   = "subscribed"
	StreamTypeUnsubscribed = "unsubscribed"
	StreamTypeSnapshot     = "snapshot"
	StreamTypeError        = "error"
)

// MStreamCommand is a client-to-server control message.
type MStreamCommand struct {
	Action string `json:"action"` // "subscribe" or "unsubscribe"
	Symbol string `json:"symbol"`
}

// -----------------------------------------------------------------------------

// MStreamMessage is a server-to-client push. Exactly one of Snapshot/Error is
// set for snapshot/error types; acks carry only Type and Symbol.
type MStreamMessage struct {
	Type      string              `json:"type"`
	Symbol    string              `json:"symbol,omitempty"`
	Snapshot  *MAnalyticsSnapshot `json:"snapshot,omitempty"`
	Error     string              `json:"error,omitempty"`
	Timestamp int64               `json:"timestamp"`
}
