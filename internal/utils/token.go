package utils // package utils provides helper functions for token minting and hashing

import (
    "time" // time utilities for computing expirations

    "github.com/google/uuid" // RFC 4122 UUIDs used as opaque bearer tokens
)

// SessionToken is an opaque bearer credential persisted in a sessions table.
// The Token field is a random v4 UUID (122 bits of entropy); the server
// stores the exact string and validity lives entirely in the database row.
// Exp records the expiration persisted alongside it.
type SessionToken struct {
    Token string    // the opaque token string handed to the client
    Exp   time.Time // UTC expiration time
}

// NewSessionToken mints a fresh session token valid for ttlHours from now.
// Tokens are globally unique and not guessable; uniqueness is additionally
// enforced by the UNIQUE constraint on the sessions tables.
func NewSessionToken(ttlHours int) SessionToken {
    return SessionToken{
        Token: uuid.NewString(),
        Exp:   time.Now().UTC().Add(time.Duration(ttlHours) * time.Hour),
    }
}

// NewTempToken returns the transient token echoed back after OTP
// verification. It is not persisted server-side and is never checked again;
// the consumed OTP row is the actual proof of phone control. It exists so
// the registration wizard has an opaque value to carry between steps.
func NewTempToken() string {
    return uuid.NewString()
}
