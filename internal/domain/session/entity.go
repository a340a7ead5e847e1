package session

import "time"

type Session struct {
	Token     string
	UserID    string
	CreatedAt time.Time
	ExpiresAt time.Time
}

// Partition holds one row per active session. Expired rows are reclaimed
// lazily when the token is next looked up.
const Partition = "Sessions"

const (
	ColToken = iota
	ColUserID
	ColCreated
	ColExpires
	ColLastUsed
)

var PartitionHeader = []string{"Token", "UserID", "Created", "Expires", "LastUsed"}
