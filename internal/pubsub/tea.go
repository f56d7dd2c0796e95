package pubsub

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
)

// ListenCmd turns the next event on ch into a tea.Msg.
// It yields nil once ctx is cancelled or the channel is closed.
func ListenCmd[T any](ctx context.Context, ch <-chan Event[T]) tea.Cmd {
	return func() tea.Msg {
		if ev, ok := next(ctx, ch); ok {
			return ev
		}
		return nil
	}
}

// LatestCmd is ListenCmd for snapshot payloads: after the first event
// arrives, any events already queued behind it are consumed and only the
// newest is returned.
func LatestCmd[T any](ctx context.Context, ch <-chan Event[T]) tea.Cmd {
	return func() tea.Msg {
		ev, ok := next(ctx, ch)
		if !ok {
			return nil
		}
		for {
			select {
			case newer, open := <-ch:
				if !open {
					return ev
				}
				ev = newer
			default:
				return ev
			}
		}
	}
}

func next[T any](ctx context.Context, ch <-chan Event[T]) (Event[T], bool) {
	select {
	case <-ctx.Done():
		return Event[T]{}, false
	case ev, ok := <-ch:
		return ev, ok
	}
}

// ContinuousListener keeps one broker subscription for the Bubble Tea update
// loop. Call Listen (or Latest) again after handling each event.
type ContinuousListener[T any] struct {
	ctx context.Context
	ch  <-chan Event[T]
}

// NewContinuousListener subscribes to broker until ctx is cancelled.
func NewContinuousListener[T any](ctx context.Context, broker Subscriber[T]) *ContinuousListener[T] {
	return &ContinuousListener[T]{
		ctx: ctx,
		ch:  broker.Subscribe(ctx),
	}
}

// Listen waits for the next event.
func (l *ContinuousListener[T]) Listen() tea.Cmd {
	return ListenCmd(l.ctx, l.ch)
}

// Latest waits for the next event and skips to the newest queued one.
func (l *ContinuousListener[T]) Latest() tea.Cmd {
	return LatestCmd(l.ctx, l.ch)
}
