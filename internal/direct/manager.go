// Package direct owns the direct-message inbox state for one session:
// the accepted and pending thread collections, migration of accepted
// message requests, and outbound share dispatch.
package direct

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/realsushi-official/barinsta/internal/inbox"
	"github.com/realsushi-official/barinsta/internal/metrics"
	"github.com/realsushi-official/barinsta/internal/models"
	"github.com/realsushi-official/barinsta/internal/session"
	"github.com/realsushi-official/barinsta/internal/transport"
)

// ErrInvalidRecipient marks a recipient carrying neither a thread nor
// a user.
var ErrInvalidRecipient = errors.New("recipient has neither thread nor user")

// Manager coordinates the two inbox collections and dispatches
// outbound shares through the transport client.
type Manager struct {
	// migrationMu serializes MoveThreadFromPending so a thread is
	// never observed in both collections at once.
	migrationMu sync.Mutex

	sess    *session.Session
	service transport.Direct
	logger  zerolog.Logger

	// Inbox holds accepted threads; PendingInbox holds message
	// requests. Both are created once per session.
	Inbox        *inbox.Collection
	PendingInbox *inbox.Collection
}

// NewManager creates the manager and its two inbox collections.
func NewManager(sess *session.Session, service transport.Direct, logger zerolog.Logger) *Manager {
	return &Manager{
		sess:         sess,
		service:      service,
		logger:       logger.With().Str("component", "direct").Int64("viewer_id", sess.ViewerID).Logger(),
		Inbox:        inbox.NewCollection(service, false, logger),
		PendingInbox: inbox.NewCollection(service, true, logger),
	}
}

// MoveThreadFromPending moves an accepted message request into the
// accepted inbox at its recency position and decrements the pending
// total. Every precondition failure (unknown pending total, missing
// thread, thread without messages) returns before any mutation, so
// calling it twice for the same id is safe.
func (m *Manager) MoveThreadFromPending(threadID string) {
	m.migrationMu.Lock()
	defer m.migrationMu.Unlock()

	// The pending total is read first: without it the decrement in the
	// final step cannot be applied, and the thread must not be removed
	// from the pending collection.
	total, known := m.Inbox.PendingTotal()
	if !known {
		return
	}

	thread := m.PendingInbox.Find(threadID)
	if thread == nil {
		return
	}
	first := thread.FirstItem()
	if first == nil {
		// A thread without messages has no reference point for
		// ordering in the accepted inbox.
		return
	}

	// Insert before the first accepted thread that is strictly older;
	// ties keep the existing order. Threads without messages never stop
	// the scan.
	accepted := m.Inbox.Threads()
	insertIndex := len(accepted)
	for i, t := range accepted {
		item := t.FirstItem()
		if item == nil {
			continue
		}
		if item.Timestamp < first.Timestamp {
			insertIndex = i
			break
		}
	}

	thread.Pending = false
	m.Inbox.AddThread(thread, insertIndex)
	m.PendingInbox.RemoveThread(threadID)
	m.Inbox.SetPendingTotal(total - 1)

	metrics.PendingMigrations.Inc()
	m.logger.Info().Str("thread_id", threadID).Int("index", insertIndex).Msg("moved thread from pending")
}

// CreateThread creates a direct thread with the given user.
func (m *Manager) CreateThread(ctx context.Context, userID int64) (*models.Thread, error) {
	thread, err := m.service.CreateThread(ctx, []int64{userID})
	if err != nil {
		m.logger.Error().Int64("user_id", userID).Err(err).Msg("create thread failed")
		return nil, err
	}
	metrics.ThreadsCreated.Inc()
	return thread, nil
}

// SendToOne shares a media item with a single recipient, creating a
// thread first when the recipient has none. The accepted inbox is
// refreshed exactly once after the send completes, success or failure.
func (m *Manager) SendToOne(ctx context.Context, recipient models.Recipient, mediaID string) *models.Resource {
	res := models.NewResource()
	go func() {
		m.resolveAndSend(ctx, recipient, mediaID, res)
		m.refreshInbox(ctx)
	}()
	return res
}

// SendToMany shares a media item with every recipient. Sends run
// concurrently with no cross-recipient ordering; the accepted inbox is
// refreshed exactly once, after all recipients reach a terminal state.
// The returned resource resolves when the batch completes; per-recipient
// failures never abort the batch.
func (m *Manager) SendToMany(ctx context.Context, recipients []models.Recipient, mediaID string) *models.Resource {
	res := models.NewResource()
	if len(recipients) == 0 {
		res.Succeed()
		return res
	}

	var wg sync.WaitGroup
	for _, recipient := range recipients {
		wg.Add(1)
		go func(r models.Recipient) {
			defer wg.Done()
			m.resolveAndSend(ctx, r, mediaID, models.NewResource())
		}(recipient)
	}

	go func() {
		wg.Wait()
		m.refreshInbox(ctx)
		res.Succeed()
	}()
	return res
}

// resolveAndSend resolves the recipient to a thread (creating one when
// only a user is known) and submits the send. res reaches a terminal
// state exactly once per original recipient, however many round-trips
// resolution took.
func (m *Manager) resolveAndSend(ctx context.Context, recipient models.Recipient, mediaID string, res *models.Resource) {
	if recipient.Thread != nil && recipient.Thread.ID != "" {
		m.sendToThread(ctx, recipient.Thread.ID, mediaID, res)
		return
	}
	if recipient.User != nil && recipient.User.PK != 0 {
		thread, err := m.CreateThread(ctx, recipient.User.PK)
		if err != nil {
			metrics.SharesSent.WithLabelValues("error").Inc()
			res.Fail("create thread: " + err.Error())
			return
		}
		m.sendToThread(ctx, thread.ID, mediaID, res)
		return
	}
	// An invalid recipient fails locally and still counts as completed
	// so it cannot hang a fan-out batch.
	metrics.SharesSent.WithLabelValues("invalid").Inc()
	m.logger.Error().Str("media_id", mediaID).Msg("share dropped: invalid recipient")
	res.Fail(ErrInvalidRecipient.Error())
}

// sendToThread submits the media share to a thread. res is already in
// the loading state; it resolves to success or error exactly once.
func (m *Manager) sendToThread(ctx context.Context, threadID, mediaID string, res *models.Resource) {
	token := uuid.NewString()
	err := m.service.BroadcastMediaShare(ctx, token, transport.DestinationThread(threadID), mediaID)
	if err != nil {
		metrics.SharesSent.WithLabelValues("error").Inc()
		res.Fail(err.Error())
		return
	}
	metrics.SharesSent.WithLabelValues("success").Inc()
	res.Succeed()
}

func (m *Manager) refreshInbox(ctx context.Context) {
	if err := m.Inbox.Refresh(ctx); err != nil {
		m.logger.Error().Err(err).Msg("post-send inbox refresh failed")
	}
}
