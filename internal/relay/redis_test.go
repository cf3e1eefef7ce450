package relay

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	mr "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

func TestRedisBrokerRoundTrip(t *testing.T) {
	m, err := mr.Run()
	require.NoError(t, err)
	defer m.Close()

	client := redis.NewClient(&redis.Options{Addr: m.Addr()})
	broker := NewRedisBroker(client)
	ctx := context.Background()

	sub, err := broker.Subscribe(ctx, BroadcastChannel("ABC123"))
	require.NoError(t, err)
	defer sub.Close()

	require.NoError(t, broker.Publish(ctx, BroadcastChannel("ABC123"), []byte("payload")))

	select {
	case msg := <-sub.Messages():
		require.Equal(t, BroadcastChannel("ABC123"), msg.Channel)
		require.Equal(t, []byte("payload"), msg.Payload)
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for redis message")
	}
}

func TestRelayOverRedis(t *testing.T) {
	m, err := mr.Run()
	require.NoError(t, err)
	defer m.Close()

	client := redis.NewClient(&redis.Options{Addr: m.Addr()})
	broker := NewRedisBroker(client)
	r := New(broker)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go r.Run(ctx)

	sub, err := broker.Subscribe(ctx, BroadcastChannel("QRS456"))
	require.NoError(t, err)
	defer sub.Close()

	// the relay subscribes asynchronously inside Run; give it a moment
	time.Sleep(50 * time.Millisecond)

	in, _ := json.Marshal(EditMessage{DocID: "QRS456", Content: "body", Sender: "u1"})
	require.NoError(t, broker.Publish(ctx, EditChannel("QRS456"), in))

	select {
	case msg := <-sub.Messages():
		var got EditMessage
		require.NoError(t, json.Unmarshal(msg.Payload, &got))
		require.Equal(t, "body", got.Content)
		require.Equal(t, "u1", got.Sender)
		require.NotZero(t, got.Timestamp)
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for relayed broadcast")
	}
}
