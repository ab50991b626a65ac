package service

import (
	"fmt"

	"github.com/allisson/go-pwdhash"

	authDomain "github.com/allisson/identity/internal/auth/domain"
)

// Named password hash policies accepted by PASSWORD_HASH_POLICY.
const (
	PolicyInteractive = "interactive"
	PolicyModerate    = "moderate"
)

var policies = map[string]pwdhash.Policy{
	PolicyInteractive: pwdhash.PolicyInteractive,
	PolicyModerate:    pwdhash.PolicyModerate,
}

// NewPolicyPasswordHasher returns a hasher using the go-pwdhash preset named by policy.
// Its hashes share the PHC format of the configured hasher, so either verifies the other's.
func NewPolicyPasswordHasher(policy string) (*Argon2PasswordHasher, error) {
	p, ok := policies[policy]
	if !ok {
		return nil, fmt.Errorf("%w: unknown policy %q", authDomain.ErrInvalidHashParams, policy)
	}
	return newArgon2PasswordHasher(pwdhash.WithPolicy(p))
}

// NewPasswordHasher returns the hasher for policy when one is set and one using params otherwise.
func NewPasswordHasher(policy string, params Argon2Params) (PasswordHasher, error) {
	var (
		hasher *Argon2PasswordHasher
		err    error
	)
	if policy != "" {
		hasher, err = NewPolicyPasswordHasher(policy)
	} else {
		hasher, err = NewArgon2PasswordHasher(params)
	}
	if err != nil {
		return nil, err
	}
	return hasher, nil
}
