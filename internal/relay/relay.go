package relay

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/termination/collab-text-editor/pkg/logger"
	"github.com/termination/collab-text-editor/pkg/metrics"
)

// EditMessage is the wire format for a single edit. Content is the full
// replacement body, never a diff. Timestamp is assigned by the server at
// broadcast time (epoch milliseconds) and ignored on input.
type EditMessage struct {
	DocID     string `json:"docId"`
	Content   string `json:"content"`
	Sender    string `json:"sender"`
	Timestamp int64  `json:"timestamp,omitempty"`
}

// Relay receives edits published to a document's edit channel and
// rebroadcasts a server-stamped copy to the document's broadcast channel.
// It holds no state between edits and never persists content; persistence
// is a separate, client-initiated path through the document service.
type Relay struct {
	broker Broker
	now    func() time.Time
}

func New(broker Broker) *Relay {
	return &Relay{broker: broker, now: time.Now}
}

// Stamp builds the outgoing message for an edit: same docId, content and
// sender as received, timestamp replaced with the server's current time.
func (r *Relay) Stamp(docID string, in EditMessage) EditMessage {
	return EditMessage{
		DocID:     docID,
		Content:   in.Content,
		Sender:    in.Sender,
		Timestamp: r.now().UnixMilli(),
	}
}

// Run watches every document edit channel and rebroadcasts stamped copies
// until ctx is canceled.
func (r *Relay) Run(ctx context.Context) error {
	sub, err := r.broker.Subscribe(ctx, editPattern)
	if err != nil {
		return err
	}
	defer sub.Close()

	logger.Infof("relay: watching %s", editPattern)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case msg, ok := <-sub.Messages():
			if !ok {
				return nil
			}
			r.handle(ctx, msg)
		}
	}
}

func (r *Relay) handle(ctx context.Context, msg Message) {
	docID, ok := docIDFromEditChannel(msg.Channel)
	if !ok {
		return
	}
	var in EditMessage
	if err := json.Unmarshal(msg.Payload, &in); err != nil {
		logger.Warnf("relay: discarding malformed edit on %s: %v", msg.Channel, err)
		return
	}
	out := r.Stamp(docID, in)
	payload, err := json.Marshal(out)
	if err != nil {
		logger.Errorf("relay: marshal: %v", err)
		return
	}
	if err := r.broker.Publish(ctx, BroadcastChannel(docID), payload); err != nil {
		logger.Errorf("relay: publish to %s: %v", BroadcastChannel(docID), err)
		return
	}
	metrics.EditsRelayed.Inc()
}

func docIDFromEditChannel(channel string) (string, bool) {
	rest, ok := strings.CutPrefix(channel, "documents/")
	if !ok {
		return "", false
	}
	docID, ok := strings.CutSuffix(rest, "/edit")
	if !ok || docID == "" || strings.Contains(docID, "/") {
		return "", false
	}
	return docID, true
}
