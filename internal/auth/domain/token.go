package domain

import "time"

// Token is a freshly issued bearer token.
type Token struct {
	Value     string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// Claims is the verified content of a bearer token. It is valid on [IssuedAt, ExpiresAt).
type Claims struct {
	Subject   string
	IssuedAt  time.Time
	ExpiresAt time.Time
}
