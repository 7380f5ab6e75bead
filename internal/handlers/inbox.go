package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/realsushi-official/barinsta/internal/models"
)

// InboxResponse represents one inbox snapshot.
type InboxResponse struct {
	Threads      []*models.Thread `json:"threads"`
	PendingTotal int              `json:"pending_requests_total"`
	Loaded       bool             `json:"loaded"`
}

// GetInbox handles fetching the accepted inbox snapshot.
func (h *Handler) GetInbox(w http.ResponseWriter, r *http.Request) {
	total, known := h.manager.Inbox.PendingTotal()
	h.JSON(w, http.StatusOK, InboxResponse{
		Threads:      h.manager.Inbox.Threads(),
		PendingTotal: total,
		Loaded:       known,
	})
}

// GetPendingInbox handles fetching the message-request inbox snapshot.
func (h *Handler) GetPendingInbox(w http.ResponseWriter, r *http.Request) {
	total, known := h.manager.Inbox.PendingTotal()
	h.JSON(w, http.StatusOK, InboxResponse{
		Threads:      h.manager.PendingInbox.Threads(),
		PendingTotal: total,
		Loaded:       known,
	})
}

// RefreshInbox handles re-fetching both inboxes from the API.
func (h *Handler) RefreshInbox(w http.ResponseWriter, r *http.Request) {
	if err := h.manager.Inbox.Refresh(r.Context()); err != nil {
		h.Error(w, http.StatusBadGateway, "inbox refresh failed")
		return
	}
	if err := h.manager.PendingInbox.Refresh(r.Context()); err != nil {
		h.Error(w, http.StatusBadGateway, "pending inbox refresh failed")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// AcceptThread handles moving an accepted message request into the
// accepted inbox.
func (h *Handler) AcceptThread(w http.ResponseWriter, r *http.Request) {
	threadID := chi.URLParam(r, "threadID")
	if threadID == "" {
		h.Error(w, http.StatusBadRequest, "thread id is required")
		return
	}
	if h.manager.PendingInbox.Find(threadID) == nil {
		h.Error(w, http.StatusNotFound, "thread not found in pending inbox")
		return
	}

	h.manager.MoveThreadFromPending(threadID)
	w.WriteHeader(http.StatusNoContent)
}
