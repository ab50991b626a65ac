package service

import (
	"strings"
	"sync"
	"testing"

	pwdargon2 "github.com/allisson/go-pwdhash/argon2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	authDomain "github.com/allisson/identity/internal/auth/domain"
	apperrors "github.com/allisson/identity/internal/errors"
)

func newTestPasswordHasher(t *testing.T) *Argon2PasswordHasher {
	t.Helper()
	h, err := NewArgon2PasswordHasher(DefaultArgon2Params())
	require.NoError(t, err)
	return h
}

func TestArgon2Params_Validate(t *testing.T) {
	t.Run("defaults are valid", func(t *testing.T) {
		assert.NoError(t, DefaultArgon2Params().Validate())
	})

	tests := []struct {
		name   string
		mutate func(p *Argon2Params)
	}{
		{"zero parallelism", func(p *Argon2Params) { p.Parallelism = 0 }},
		{"single lane", func(p *Argon2Params) { p.Parallelism = 1 }},
		{"parallelism too high", func(p *Argon2Params) { p.Parallelism = pwdargon2.MaxParallelism + 1 }},
		{"single iteration", func(p *Argon2Params) { p.Iterations = 1 }},
		{"iterations too high", func(p *Argon2Params) { p.Iterations = pwdargon2.MaxIterations + 1 }},
		{"memory too low", func(p *Argon2Params) { p.MemoryKiB = 19456 }},
		{"memory too high", func(p *Argon2Params) { p.MemoryKiB = pwdargon2.MaxMemory + 1 }},
		{"short salt", func(p *Argon2Params) { p.SaltLength = 4 }},
		{"short key", func(p *Argon2Params) { p.KeyLength = 8 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := DefaultArgon2Params()
			tt.mutate(&p)

			err := p.Validate()
			assert.ErrorIs(t, err, authDomain.ErrInvalidHashParams)
			assert.ErrorIs(t, err, apperrors.ErrConfiguration)

			h, err := NewArgon2PasswordHasher(p)
			assert.Error(t, err)
			assert.Nil(t, h)
		})
	}
}

func TestArgon2PasswordHasher_Hash(t *testing.T) {
	h := newTestPasswordHasher(t)

	t.Run("Success_PHCFormat", func(t *testing.T) {
		encoded, err := h.Hash("correcthorsebattery")
		require.NoError(t, err)

		assert.True(t, strings.HasPrefix(encoded, "$argon2id$v=19$m=32768,p=2,t=2$"), encoded)
		parts := strings.Split(encoded, "$")
		require.Len(t, parts, 6)
		assert.NotContains(t, parts[4], "=")
		assert.NotContains(t, parts[5], "=")
		assert.NoError(t, checkStoredHash(encoded))
	})

	t.Run("Success_SaltedHashesDiffer", func(t *testing.T) {
		h1, err := h.Hash("correcthorsebattery")
		require.NoError(t, err)
		h2, err := h.Hash("correcthorsebattery")
		require.NoError(t, err)

		assert.NotEqual(t, h1, h2)

		ok, err := h.Verify("correcthorsebattery", h1)
		require.NoError(t, err)
		assert.True(t, ok)

		ok, err = h.Verify("correcthorsebattery", h2)
		require.NoError(t, err)
		assert.True(t, ok)
	})
}

func TestArgon2PasswordHasher_Verify(t *testing.T) {
	h := newTestPasswordHasher(t)

	encoded, err := h.Hash("correcthorsebattery")
	require.NoError(t, err)

	t.Run("Success_Match", func(t *testing.T) {
		ok, err := h.Verify("correcthorsebattery", encoded)
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("Success_Mismatch", func(t *testing.T) {
		for _, pw := range []string{"", "correcthorsebatter", "correcthorsebattery ", "Correcthorsebattery"} {
			ok, err := h.Verify(pw, encoded)
			require.NoError(t, err)
			assert.False(t, ok, "password %q", pw)
		}
	})

	t.Run("Success_UsesEmbeddedParameters", func(t *testing.T) {
		other, err := NewArgon2PasswordHasher(Argon2Params{
			MemoryKiB:   2 * pwdargon2.MinMemory,
			Iterations:  3,
			Parallelism: 4,
			SaltLength:  32,
			KeyLength:   64,
		})
		require.NoError(t, err)

		encodedOther, err := other.Hash("correcthorsebattery")
		require.NoError(t, err)

		ok, err := h.Verify("correcthorsebattery", encodedOther)
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("Success_ParameterOrderIrrelevant", func(t *testing.T) {
		parts := strings.Split(encoded, "$")
		reordered := "$argon2id$v=19$t=2,m=32768,p=2$" + parts[4] + "$" + parts[5]

		ok, err := h.Verify("correcthorsebattery", reordered)
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("Failure_MalformedHash", func(t *testing.T) {
		parts := strings.Split(encoded, "$")
		tail := "$" + parts[4] + "$" + parts[5]
		malformed := []string{
			"",
			"plaintext",
			"$argon2i$v=19$m=32768,p=2,t=2" + tail,
			"$argon2id$v=16$m=32768,p=2,t=2" + tail,
			"$argon2id$v=19$m=x,p=2,t=2" + tail,
			"$argon2id$v=19$m=32768,p=2" + tail,
			"$argon2id$v=19$m=32768,m=32768,t=2" + tail,
			"$argon2id$v=19$m=32768,p=2,t=2,k=1" + tail,
			"$argon2id$v=19$m=32768,p=2,t=0" + tail,
			"$argon2id$v=19$m=32768,p=0,t=2" + tail,
			"$argon2id$v=19$m=32768,p=2,t=2$!!!$" + parts[5],
			"$argon2id$v=19$m=32768,p=2,t=2" + tail + "==",
			"$argon2id$v=19$m=32768,p=2,t=2$" + parts[4],
		}
		for _, m := range malformed {
			ok, err := h.Verify("correcthorsebattery", m)
			assert.ErrorIs(t, err, authDomain.ErrInvalidHashFormat, "hash %q", m)
			assert.False(t, ok)
		}
	})

	t.Run("Failure_CostOutOfBounds", func(t *testing.T) {
		parts := strings.Split(encoded, "$")
		tail := "$" + parts[4] + "$" + parts[5]
		for _, params := range []string{
			"m=4294967295,p=2,t=2",
			"m=1048577,p=2,t=2",
			"m=32768,p=2,t=4294967295",
			"m=32768,p=255,t=2",
			"m=8,p=2,t=2",
		} {
			ok, err := h.Verify("correcthorsebattery", "$argon2id$v=19$"+params+tail)
			assert.ErrorIs(t, err, authDomain.ErrInvalidHashFormat, "params %q", params)
			assert.False(t, ok)
		}
	})

	t.Run("concurrent verification", func(t *testing.T) {
		var wg sync.WaitGroup
		for range 4 {
			wg.Go(func() {
				ok, err := h.Verify("correcthorsebattery", encoded)
				assert.NoError(t, err)
				assert.True(t, ok)
			})
		}
		wg.Wait()
	})
}
