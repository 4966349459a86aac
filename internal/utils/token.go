package utils // package utils provides helper functions for session identifiers and tokens

import (
    "crypto/rand"  // secure random number generation
    "encoding/hex" // hex encoding for session identifiers
    "time"         // time utilities for generating expirations

    "github.com/golang-jwt/jwt/v5" // JWT library for creating signed tokens
)

// SessionToken represents a signed HS256 token naming a booking session
// along with its expiry.  Clients present it as a Bearer token on every
// session-scoped endpoint.
type SessionToken struct {
    Token string    // the serialized JWT string
    Exp   time.Time // the UTC expiration time
}

// NewSessionToken builds and signs an HS256 JWT for a session.  The session
// ID becomes the subject claim; exp and iat are standard claims.  The TTL
// is expressed in minutes to match the configuration.
func NewSessionToken(secret, sessionID string, ttlMin int) (SessionToken, error) {
    exp := time.Now().UTC().Add(time.Duration(ttlMin) * time.Minute)
    claims := jwt.MapClaims{
        "sub": sessionID,
        "exp": exp.Unix(),
        "iat": time.Now().UTC().Unix(),
    }
    t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
    signed, err := t.SignedString([]byte(secret))
    if err != nil {
        return SessionToken{}, err
    }
    return SessionToken{Token: signed, Exp: exp}, nil
}

// NewSessionID returns a hex-encoded identifier generated from 16 bytes of
// cryptographically secure random data.
func NewSessionID() (string, error) {
    buf := make([]byte, 16)
    if _, err := rand.Read(buf); err != nil {
        return "", err
    }
    return hex.EncodeToString(buf), nil
}
