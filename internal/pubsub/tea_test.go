package pubsub

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestListenCmd_ReceivesEvent(t *testing.T) {
	broker := NewBroker[string]()
	defer broker.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch := broker.Subscribe(ctx)
	broker.Publish(UpdatedEvent, "days=3")

	msg := ListenCmd(ctx, ch)()

	event, ok := msg.(Event[string])
	require.True(t, ok, "msg should be Event[string]")
	require.Equal(t, "days=3", event.Payload)
}

func TestListenCmd_ContextCancelled(t *testing.T) {
	broker := NewBroker[string]()
	defer broker.Close()

	ctx, cancel := context.WithCancel(context.Background())
	ch := broker.Subscribe(ctx)
	cancel()

	require.Nil(t, ListenCmd(ctx, ch)())
}

func TestListenCmd_ChannelClosed(t *testing.T) {
	broker := NewBroker[string]()
	ch := broker.Subscribe(context.Background())
	broker.Close()

	require.Nil(t, ListenCmd(context.Background(), ch)())
}

func TestContinuousListener_ListenRepeatedly(t *testing.T) {
	broker := NewBroker[int]()
	defer broker.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	listener := NewContinuousListener[int](ctx, broker)
	broker.Publish(UpdatedEvent, 1)
	broker.Publish(UpdatedEvent, 2)

	first := listener.Listen()().(Event[int])
	second := listener.Listen()().(Event[int])
	require.Equal(t, 1, first.Payload)
	require.Equal(t, 2, second.Payload)
}

func TestLatestCmd_SkipsToNewest(t *testing.T) {
	broker := NewBroker[int]()
	defer broker.Close()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	listener := NewContinuousListener[int](ctx, broker)
	for i := 1; i <= 3; i++ {
		broker.Publish(UpdatedEvent, i)
	}

	ev, ok := listener.Latest()().(Event[int])
	require.True(t, ok)
	require.Equal(t, 3, ev.Payload)

	broker.Publish(UpdatedEvent, 4)
	ev, ok = listener.Latest()().(Event[int])
	require.True(t, ok)
	require.Equal(t, 4, ev.Payload)
}

func TestLatestCmd_ChannelClosed(t *testing.T) {
	broker := NewBroker[int]()
	ch := broker.Subscribe(context.Background())
	broker.Close()

	require.Nil(t, LatestCmd(context.Background(), ch)())
}
