package service

import (
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"

	"github.com/allisson/go-pwdhash"
	pwdargon2 "github.com/allisson/go-pwdhash/argon2"
	"golang.org/x/crypto/argon2"

	authDomain "github.com/allisson/identity/internal/auth/domain"
)

const (
	minSaltLength = 8
	minKeyLength  = 16

	// go-pwdhash refuses to run a hasher configured with fewer than two lanes.
	minArgon2Parallelism = 2
)

// Argon2Params are the Argon2id cost parameters used for new hashes.
type Argon2Params struct {
	MemoryKiB   uint32
	Iterations  uint32
	Parallelism uint8
	SaltLength  uint32
	KeyLength   uint32
}

// DefaultArgon2Params returns m=32768 KiB, t=2, p=2 with a 16-byte salt and 32-byte digest.
func DefaultArgon2Params() Argon2Params {
	return Argon2Params{
		MemoryKiB:   pwdargon2.MinMemory,
		Iterations:  2,
		Parallelism: 2,
		SaltLength:  16,
		KeyLength:   32,
	}
}

// Validate returns ErrInvalidHashParams when any parameter is outside the range go-pwdhash accepts.
func (p Argon2Params) Validate() error {
	switch {
	case p.Parallelism < minArgon2Parallelism || p.Parallelism > pwdargon2.MaxParallelism:
		return fmt.Errorf(
			"%w: parallelism must be between %d and %d",
			authDomain.ErrInvalidHashParams,
			minArgon2Parallelism,
			pwdargon2.MaxParallelism,
		)
	case p.Iterations < pwdargon2.MinIterations || p.Iterations > pwdargon2.MaxIterations:
		return fmt.Errorf(
			"%w: iterations must be between %d and %d",
			authDomain.ErrInvalidHashParams,
			pwdargon2.MinIterations,
			pwdargon2.MaxIterations,
		)
	case p.MemoryKiB < pwdargon2.MinMemory || p.MemoryKiB > pwdargon2.MaxMemory:
		return fmt.Errorf(
			"%w: memory must be between %d and %d KiB",
			authDomain.ErrInvalidHashParams,
			pwdargon2.MinMemory,
			pwdargon2.MaxMemory,
		)
	case p.SaltLength < minSaltLength:
		return fmt.Errorf("%w: salt must be at least %d bytes", authDomain.ErrInvalidHashParams, minSaltLength)
	case p.KeyLength < minKeyLength:
		return fmt.Errorf("%w: key must be at least %d bytes", authDomain.ErrInvalidHashParams, minKeyLength)
	}
	return nil
}

// Argon2PasswordHasher implements PasswordHasher on top of go-pwdhash.
//
// Hashes are PHC strings:
//
//	$argon2id$v=19$m=32768,p=2,t=2$<salt>$<digest>
//
// with salt and digest in unpadded standard base64. Verify recomputes with the
// parameters embedded in the stored string, not the configured ones.
type Argon2PasswordHasher struct {
	hasher *pwdhash.PasswordHasher
}

// NewArgon2PasswordHasher validates params and returns a hasher using them.
func NewArgon2PasswordHasher(params Argon2Params) (*Argon2PasswordHasher, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	return newArgon2PasswordHasher(pwdhash.WithHasher(&pwdargon2.Argon2idHasher{
		Memory:      params.MemoryKiB,
		Iterations:  params.Iterations,
		Parallelism: params.Parallelism,
		SaltLength:  params.SaltLength,
		KeyLength:   params.KeyLength,
	}))
}

func newArgon2PasswordHasher(opt pwdhash.Option) (*Argon2PasswordHasher, error) {
	hasher, err := pwdhash.New(opt)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", authDomain.ErrInvalidHashParams, err)
	}
	return &Argon2PasswordHasher{hasher: hasher}, nil
}

// Hash derives an Argon2id digest of password with a fresh random salt.
func (h *Argon2PasswordHasher) Hash(password string) (string, error) {
	encoded, err := h.hasher.Hash([]byte(password))
	if err != nil {
		return "", fmt.Errorf("%w: %v", authDomain.ErrHashingFailed, err)
	}
	return encoded, nil
}

// Verify checks password against an Argon2id PHC string in constant time.
func (h *Argon2PasswordHasher) Verify(password, encodedHash string) (bool, error) {
	if err := checkStoredHash(encodedHash); err != nil {
		return false, err
	}
	ok, err := h.hasher.Verify([]byte(password), encodedHash)
	if err != nil {
		return false, fmt.Errorf("%w: %v", authDomain.ErrInvalidHashFormat, err)
	}
	return ok, nil
}

// checkStoredHash validates the shape and cost parameters of a stored PHC string
// before it reaches go-pwdhash, which recomputes with whatever m, t and p it parses.
// A corrupted row must not turn into a multi-gigabyte allocation.
func checkStoredHash(encoded string) error {
	parts := strings.Split(encoded, "$")
	if len(parts) != 6 || parts[0] != "" || parts[1] != "argon2id" {
		return authDomain.ErrInvalidHashFormat
	}
	if parts[2] != "v="+strconv.Itoa(argon2.Version) {
		return authDomain.ErrInvalidHashFormat
	}

	params := make(map[string]uint64, 3)
	for kv := range strings.SplitSeq(parts[3], ",") {
		key, value, ok := strings.Cut(kv, "=")
		if !ok {
			return authDomain.ErrInvalidHashFormat
		}
		if _, seen := params[key]; seen {
			return authDomain.ErrInvalidHashFormat
		}
		n, err := strconv.ParseUint(value, 10, 32)
		if err != nil {
			return authDomain.ErrInvalidHashFormat
		}
		params[key] = n
	}
	if len(params) != 3 {
		return authDomain.ErrInvalidHashFormat
	}
	memory, iterations, parallelism := params["m"], params["t"], params["p"]
	switch {
	case parallelism < 1 || parallelism > pwdargon2.MaxParallelism,
		iterations < 1 || iterations > pwdargon2.MaxIterations,
		memory < 8*parallelism || memory > pwdargon2.MaxMemory:
		return authDomain.ErrInvalidHashFormat
	}

	salt, err := base64.RawStdEncoding.Strict().DecodeString(parts[4])
	if err != nil || len(salt) < minSaltLength {
		return authDomain.ErrInvalidHashFormat
	}
	digest, err := base64.RawStdEncoding.Strict().DecodeString(parts[5])
	if err != nil || len(digest) < minKeyLength {
		return authDomain.ErrInvalidHashFormat
	}
	return nil
}
