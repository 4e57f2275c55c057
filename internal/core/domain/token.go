package domain

import "time"

// Identity is the verified caller decoded from a bearer token.
type Identity struct {
	Subject string `json:"sub"`
	Email   string `json:"email"`
	Name    string `json:"name"`
	Role    Role   `json:"role"`
}

// IssuedToken is a freshly signed bearer token and the instant it stops being valid.
type IssuedToken struct {
	Value     string
	ExpiresAt time.Time
}

// RevokedToken is a deny-list entry. Key is derived from the raw token string.
type RevokedToken struct {
	Key       string
	ExpiresAt time.Time
}

// Expired reports whether the entry is dead at now, i.e. the token itself
// would already fail expiry verification.
func (r RevokedToken) Expired(now time.Time) bool {
	return !r.ExpiresAt.After(now)
}
