package relay

import "context"

// Message is a raw payload delivered on a named channel.
type Message struct {
	Channel string
	Payload []byte
}

// Subscription is a live channel subscription. Messages is closed when the
// subscription is closed or the broker shuts down.
type Subscription interface {
	Messages() <-chan Message
	Close() error
}

// Broker is the pub/sub capability: deliver published payloads to every
// current subscriber of a channel. Subscribe accepts glob patterns with '*'
// so the relay can watch all document edit channels at once.
type Broker interface {
	Publish(ctx context.Context, channel string, payload []byte) error
	Subscribe(ctx context.Context, pattern string) (Subscription, error)
}

// EditChannel is where clients publish their edits for a document.
func EditChannel(docID string) string {
	return "documents/" + docID + "/edit"
}

// BroadcastChannel is where stamped edits are rebroadcast to subscribers.
func BroadcastChannel(docID string) string {
	return "documents/" + docID
}

// editPattern matches the edit channel of every document.
const editPattern = "documents/*/edit"
