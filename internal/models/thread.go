package models

// DirectItem represents a single message inside a direct thread.
type DirectItem struct {
	ID        string `json:"item_id"`
	UserID    int64  `json:"user_id"`
	Text      string `json:"text,omitempty"`
	Timestamp int64  `json:"timestamp"` // Unix ms
}

// Thread represents a direct-message conversation. Items are ordered
// newest first; only the newest item matters for inbox ordering.
type Thread struct {
	ID      string       `json:"thread_id"`
	Title   string       `json:"thread_title,omitempty"`
	Users   []User       `json:"users,omitempty"`
	Items   []DirectItem `json:"items"`
	Pending bool         `json:"pending"`
}

// FirstItem returns the newest item in the thread, or nil if the
// thread has no messages.
func (t *Thread) FirstItem() *DirectItem {
	if t == nil || len(t.Items) == 0 {
		return nil
	}
	return &t.Items[0]
}

// Timestamp returns the timestamp of the newest item, or 0 if the
// thread has no messages.
func (t *Thread) Timestamp() int64 {
	item := t.FirstItem()
	if item == nil {
		return 0
	}
	return item.Timestamp
}
