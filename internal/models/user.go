package models

// User represents an account that can be messaged.
type User struct {
	PK       int64  `json:"pk"`
	Username string `json:"username"`
	FullName string `json:"full_name,omitempty"`
}
