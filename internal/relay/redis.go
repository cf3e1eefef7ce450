package relay

import (
	"context"
	"strings"
	"sync"

	"github.com/redis/go-redis/v9"
)

// RedisBroker implements Broker over Redis pub/sub, so broadcasts reach
// subscribers on every server instance.
type RedisBroker struct {
	client *redis.Client
}

func NewRedisBroker(client *redis.Client) *RedisBroker {
	return &RedisBroker{client: client}
}

func (b *RedisBroker) Publish(ctx context.Context, channel string, payload []byte) error {
	return b.client.Publish(ctx, channel, payload).Err()
}

func (b *RedisBroker) Subscribe(ctx context.Context, pattern string) (Subscription, error) {
	var ps *redis.PubSub
	if strings.ContainsRune(pattern, '*') {
		ps = b.client.PSubscribe(ctx, pattern)
	} else {
		ps = b.client.Subscribe(ctx, pattern)
	}
	// force the subscription onto the wire before returning so a publish
	// immediately after Subscribe is not lost
	if _, err := ps.Receive(ctx); err != nil {
		_ = ps.Close()
		return nil, err
	}

	sub := &redisSubscription{ps: ps, ch: make(chan Message, subscriberBuffer)}
	go func() {
		defer close(sub.ch)
		for msg := range ps.Channel() {
			sub.ch <- Message{Channel: msg.Channel, Payload: []byte(msg.Payload)}
		}
	}()
	return sub, nil
}

type redisSubscription struct {
	ps   *redis.PubSub
	ch   chan Message
	once sync.Once
	err  error
}

func (s *redisSubscription) Messages() <-chan Message { return s.ch }

func (s *redisSubscription) Close() error {
	s.once.Do(func() { s.err = s.ps.Close() })
	return s.err
}
