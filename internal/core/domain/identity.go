package domain

import "time"

// IdentityClaims are the assertions bound into a bearer token.
type IdentityClaims struct {
	Email string
	Name  string
}

// Identity is a verified caller, bound to the request by the auth gate.
type Identity struct {
	Email     string
	Name      string
	IssuedAt  time.Time
	ExpiresAt time.Time
}
