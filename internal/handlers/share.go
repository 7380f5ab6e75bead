package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/realsushi-official/barinsta/internal/models"
)

// ShareRecipient addresses one recipient of a share: an existing
// thread or a user without a conversation.
type ShareRecipient struct {
	ThreadID string `json:"thread_id,omitempty"`
	UserID   int64  `json:"user_id,omitempty"`
}

// ShareRequest represents the share request body.
type ShareRequest struct {
	MediaID    string           `json:"media_id"`
	Recipients []ShareRecipient `json:"recipients"`
}

// ShareResponse represents the share response.
type ShareResponse struct {
	Status     string `json:"status"`
	Recipients int    `json:"recipients"`
}

// Share handles dispatching a media share to one or many recipients.
func (h *Handler) Share(w http.ResponseWriter, r *http.Request) {
	var req ShareRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.Error(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.MediaID == "" {
		h.Error(w, http.StatusBadRequest, "media_id is required")
		return
	}
	if len(req.Recipients) == 0 {
		h.Error(w, http.StatusBadRequest, "at least one recipient is required")
		return
	}

	recipients := make([]models.Recipient, 0, len(req.Recipients))
	for _, rec := range req.Recipients {
		switch {
		case rec.ThreadID != "":
			recipients = append(recipients, models.RecipientForThread(&models.Thread{ID: rec.ThreadID}))
		case rec.UserID != 0:
			recipients = append(recipients, models.RecipientForUser(&models.User{PK: rec.UserID}))
		default:
			h.Error(w, http.StatusBadRequest, "recipient needs a thread_id or user_id")
			return
		}
	}

	// Dispatch is asynchronous and must outlive this request: sends run
	// to completion in the background and the accepted inbox refreshes
	// once they finish.
	ctx := context.Background()
	if len(recipients) == 1 {
		h.manager.SendToOne(ctx, recipients[0], req.MediaID)
	} else {
		h.manager.SendToMany(ctx, recipients, req.MediaID)
	}

	h.JSON(w, http.StatusAccepted, ShareResponse{
		Status:     "dispatched",
		Recipients: len(recipients),
	})
}
