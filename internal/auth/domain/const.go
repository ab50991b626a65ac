// Package domain defines the authentication domain: bearer token claims and the
// errors shared by password verification and token validation.
package domain

// TokenType is the scheme returned to clients alongside issued tokens and expected
// in the Authorization header.
const TokenType = "Bearer"
