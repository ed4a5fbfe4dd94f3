package domain

import "time"

// Identity is the Telegram account a credential belongs to.
type Identity struct {
	AccountID int64
	Username  string
	FirstName string
	LastName  string
	Phone     string
}

// Session is a durable, replayable login keyed by phone number.
// Credential holds the serialized connection state accepted by Telegram;
// it is opaque to everything outside the transport adapter.
type Session struct {
	Phone      string
	Credential []byte

	AccountID int64
	Username  string
	FirstName string
	LastName  string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// AppCredentials is the application identity (api_id/api_hash pair) required
// to open any connection to Telegram. Never persisted next to sessions.
type AppCredentials struct {
	AppID   int
	AppHash string
}
