// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"sync"

	"github.com/danielhkuo/stage-rate/models"
)

// notifier fans whole-list snapshots out to watchers. Each watcher channel
// has a buffer of one; when a watcher lags, the pending snapshot is replaced
// with the newest one, so deliveries coalesce rather than queue. Watchers
// must treat whatever arrives as authoritative.
type notifier struct {
	mu       sync.Mutex
	watchers map[chan []models.Poll]struct{}
}

func newNotifier() *notifier {
	return &notifier{watchers: make(map[chan []models.Poll]struct{})}
}

// watch registers a watcher that is removed when ctx is done.
func (n *notifier) watch(ctx context.Context) <-chan []models.Poll {
	ch := make(chan []models.Poll, 1)

	n.mu.Lock()
	n.watchers[ch] = struct{}{}
	n.mu.Unlock()

	go func() {
		<-ctx.Done()
		n.mu.Lock()
		delete(n.watchers, ch)
		n.mu.Unlock()
		close(ch)
	}()

	return ch
}

// broadcast delivers a snapshot to every watcher, dropping the stale pending
// snapshot of any watcher that has not caught up.
func (n *notifier) broadcast(snapshot []models.Poll) {
	n.mu.Lock()
	defer n.mu.Unlock()

	for ch := range n.watchers {
		select {
		case ch <- snapshot:
		default:
			select {
			case <-ch:
			default:
			}
			select {
			case ch <- snapshot:
			default:
			}
		}
	}
}
