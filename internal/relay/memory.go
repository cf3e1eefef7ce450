package relay

import (
	"context"
	"path"
	"sync"

	"github.com/termination/collab-text-editor/pkg/logger"
)

// subscriberBuffer bounds per-subscriber queues; a subscriber that stops
// draining loses messages instead of stalling every publisher.
const subscriberBuffer = 32

// MemoryBroker is a single-process Broker used when no Redis is configured
// and in unit tests. Delivery order per subscriber is publish order.
type MemoryBroker struct {
	mu   sync.RWMutex
	subs map[*memorySubscription]struct{}
}

func NewMemoryBroker() *MemoryBroker {
	return &MemoryBroker{subs: make(map[*memorySubscription]struct{})}
}

type memorySubscription struct {
	broker  *MemoryBroker
	pattern string
	ch      chan Message
	once    sync.Once
}

func (s *memorySubscription) Messages() <-chan Message { return s.ch }

func (s *memorySubscription) Close() error {
	s.once.Do(func() {
		s.broker.mu.Lock()
		delete(s.broker.subs, s)
		s.broker.mu.Unlock()
		close(s.ch)
	})
	return nil
}

func (b *MemoryBroker) Publish(ctx context.Context, channel string, payload []byte) error {
	b.mu.RLock()
	defer b.mu.RUnlock()
	for s := range b.subs {
		if ok, _ := path.Match(s.pattern, channel); !ok {
			continue
		}
		select {
		case s.ch <- Message{Channel: channel, Payload: payload}:
		default:
			logger.Warnf("memory broker: dropping message for slow subscriber on %s", channel)
		}
	}
	return nil
}

func (b *MemoryBroker) Subscribe(ctx context.Context, pattern string) (Subscription, error) {
	s := &memorySubscription{broker: b, pattern: pattern, ch: make(chan Message, subscriberBuffer)}
	b.mu.Lock()
	b.subs[s] = struct{}{}
	b.mu.Unlock()
	return s, nil
}
