package service

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"strings"

	cryptoDomain "github.com/allisson/identity/internal/crypto/domain"
)

// EmailIndexerService computes keyed, deterministic email lookup hashes.
type EmailIndexerService struct {
	salt []byte
}

// NewEmailIndexer creates an EmailIndexerService. An empty salt is a configuration error.
func NewEmailIndexer(salt string) (*EmailIndexerService, error) {
	if salt == "" {
		return nil, cryptoDomain.ErrEmailHashSaltNotSet
	}
	return &EmailIndexerService{salt: []byte(salt)}, nil
}

// LookupHash returns hex(HMAC-SHA256(salt, NormalizeEmail(email))).
func (e *EmailIndexerService) LookupHash(email string) string {
	mac := hmac.New(sha256.New, e.salt)
	mac.Write([]byte(NormalizeEmail(email)))
	return hex.EncodeToString(mac.Sum(nil))
}

// NormalizeEmail trims surrounding whitespace and lowercases the address.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
