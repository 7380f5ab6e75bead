package models

// Recipient is a dispatch target for an outbound share: either an
// existing thread or a user with no conversation yet. A recipient with
// a thread ignores its user.
type Recipient struct {
	Thread *Thread `json:"thread,omitempty"`
	User   *User   `json:"user,omitempty"`
}

// RecipientForThread returns a recipient targeting an existing thread.
func RecipientForThread(t *Thread) Recipient {
	return Recipient{Thread: t}
}

// RecipientForUser returns a recipient targeting a user without an
// existing conversation.
func RecipientForUser(u *User) Recipient {
	return Recipient{User: u}
}

// Valid reports whether the recipient carries at least one target.
func (r Recipient) Valid() bool {
	return (r.Thread != nil && r.Thread.ID != "") || (r.User != nil && r.User.PK != 0)
}
