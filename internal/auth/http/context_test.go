package http

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSubjectContext(t *testing.T) {
	t.Run("subject round-trips", func(t *testing.T) {
		ctx := WithSubject(context.Background(), "user-1")

		subject, ok := GetSubject(ctx)
		assert.True(t, ok)
		assert.Equal(t, "user-1", subject)
	})

	t.Run("missing subject", func(t *testing.T) {
		subject, ok := GetSubject(context.Background())
		assert.False(t, ok)
		assert.Empty(t, subject)
	})

	t.Run("empty subject is not authenticated", func(t *testing.T) {
		_, ok := GetSubject(WithSubject(context.Background(), ""))
		assert.False(t, ok)
	})
}
