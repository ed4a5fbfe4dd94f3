package domain

import "time"

// PendingLogin is everything the caller must round-trip between login steps.
// State is the serialized connection state of the handle that requested the
// code; CodeHash is the challenge token Telegram issued for that request.
// A CodeHash is only valid together with the State produced by the same
// BeginLogin call.
type PendingLogin struct {
	State    []byte
	CodeHash string
}

// SignInResult is the outcome of a code or password submission.
// Exactly one of the two shapes is populated:
//   - PasswordNeeded: the account has 2FA enabled, State carries the advanced
//     transient state to pass into SubmitPassword;
//   - otherwise Credential and Identity describe the completed login.
type SignInResult struct {
	PasswordNeeded bool
	State          []byte

	Credential []byte
	Identity   Identity
}

// Deal is a created escrow group.
type Deal struct {
	ID         string
	GroupID    int64
	InviteLink string
	CreatedAt  time.Time
}

// Stats are the public bot counters.
type Stats struct {
	TotalDeals       int64
	DisputesResolved int64
}
