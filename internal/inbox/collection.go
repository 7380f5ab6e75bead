// Package inbox maintains an observable ordered collection of direct
// threads plus the pending-request total. Two collections exist per
// session: one for accepted threads and one for message requests.
package inbox

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/realsushi-official/barinsta/internal/metrics"
	"github.com/realsushi-official/barinsta/internal/models"
	"github.com/realsushi-official/barinsta/internal/transport"
)

// Collection is an ordered thread list (front = most recent) with a
// pending-request total. All writes are serialized under one mutex;
// readers get snapshot copies. Observers are notified on every
// mutation through the channel returned by Subscribe.
type Collection struct {
	mu sync.RWMutex

	pending bool
	service transport.Direct
	logger  zerolog.Logger

	threads    []*models.Thread
	total      int
	totalKnown bool

	subs []chan struct{}
}

// NewCollection creates an empty collection. pending selects which
// inbox Refresh fetches.
func NewCollection(service transport.Direct, pending bool, logger zerolog.Logger) *Collection {
	return &Collection{
		pending: pending,
		service: service,
		logger:  logger.With().Str("component", "inbox").Bool("pending", pending).Logger(),
	}
}

// Threads returns a snapshot of the current thread sequence.
func (c *Collection) Threads() []*models.Thread {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]*models.Thread, len(c.threads))
	copy(out, c.threads)
	return out
}

// Len returns the current number of threads.
func (c *Collection) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.threads)
}

// PendingTotal returns the pending-request total and whether it is
// known yet. Negative transient values read as 0.
func (c *Collection) PendingTotal() (int, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.total < 0 {
		return 0, c.totalKnown
	}
	return c.total, c.totalKnown
}

// SetPendingTotal sets the pending-request total and marks it known.
func (c *Collection) SetPendingTotal(n int) {
	c.mu.Lock()
	c.total = n
	c.totalKnown = true
	c.mu.Unlock()
	c.notify()
}

// AddThread inserts thread at position at, shifting later threads
// back. It is a no-op if at is outside [0, len] or a thread with the
// same id is already present.
func (c *Collection) AddThread(thread *models.Thread, at int) {
	if thread == nil {
		return
	}
	c.mu.Lock()
	if at < 0 || at > len(c.threads) {
		c.mu.Unlock()
		return
	}
	for _, t := range c.threads {
		if t.ID == thread.ID {
			c.mu.Unlock()
			return
		}
	}
	c.threads = append(c.threads, nil)
	copy(c.threads[at+1:], c.threads[at:])
	c.threads[at] = thread
	c.mu.Unlock()
	c.notify()
}

// RemoveThread removes the first thread with the given id; no-op if
// absent.
func (c *Collection) RemoveThread(threadID string) {
	c.mu.Lock()
	for i, t := range c.threads {
		if t.ID == threadID {
			c.threads = append(c.threads[:i], c.threads[i+1:]...)
			c.mu.Unlock()
			c.notify()
			return
		}
	}
	c.mu.Unlock()
}

// Find returns the thread with the given id, or nil.
func (c *Collection) Find(threadID string) *models.Thread {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, t := range c.threads {
		if t.ID == threadID {
			return t
		}
	}
	return nil
}

// Refresh re-fetches the full thread list and pending total and
// replaces both atomically. Observers are notified exactly once per
// refresh, even when the data is unchanged.
func (c *Collection) Refresh(ctx context.Context) error {
	box := "accepted"
	if c.pending {
		box = "pending"
	}

	feed, err := c.service.FetchInbox(ctx, c.pending)
	if err != nil {
		metrics.InboxRefreshes.WithLabelValues(box, "error").Inc()
		c.logger.Error().Err(err).Msg("inbox refresh failed")
		return err
	}

	c.mu.Lock()
	c.threads = feed.Threads
	c.total = feed.PendingTotal
	c.totalKnown = true
	c.mu.Unlock()

	metrics.InboxRefreshes.WithLabelValues(box, "success").Inc()
	c.notify()
	return nil
}

// Subscribe returns a change-notification channel. The channel is
// buffered and coalescing: a pending notification not yet consumed
// absorbs later ones.
func (c *Collection) Subscribe() <-chan struct{} {
	ch := make(chan struct{}, 1)
	c.mu.Lock()
	c.subs = append(c.subs, ch)
	c.mu.Unlock()
	return ch
}

func (c *Collection) notify() {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, ch := range c.subs {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}
