// Package storetest holds the behaviour every persistence.Store must share.
package storetest

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-resumegen/pkg/persistence"
)

// Run exercises get/set/delete semantics against s.
func Run(t *testing.T, s persistence.Store) {
	t.Helper()
	ctx := context.Background()

	t.Run("missing key", func(t *testing.T) {
		_, err := s.Get(ctx, "missing")
		assert.True(t, errors.Is(err, persistence.ErrNotFound), "got %v", err)
	})

	t.Run("set then get", func(t *testing.T) {
		require.NoError(t, s.Set(ctx, "resumeData", []byte(`{"summary":"a"}`)))
		got, err := s.Get(ctx, "resumeData")
		require.NoError(t, err)
		assert.JSONEq(t, `{"summary":"a"}`, string(got))
	})

	t.Run("overwrite", func(t *testing.T) {
		require.NoError(t, s.Set(ctx, "resumeData", []byte(`{"summary":"b"}`)))
		got, err := s.Get(ctx, "resumeData")
		require.NoError(t, err)
		assert.JSONEq(t, `{"summary":"b"}`, string(got))
	})

	t.Run("returned bytes are a copy", func(t *testing.T) {
		got, err := s.Get(ctx, "resumeData")
		require.NoError(t, err)
		got[0] = 'X'
		again, err := s.Get(ctx, "resumeData")
		require.NoError(t, err)
		assert.Equal(t, byte('{'), again[0])
	})

	t.Run("escaped NUL survives", func(t *testing.T) {
		raw := []byte(`{"summary":"a\u0000b"}`)
		require.NoError(t, s.Set(ctx, "nul", raw))
		got, err := s.Get(ctx, "nul")
		require.NoError(t, err)
		assert.Equal(t, raw, got)
		require.NoError(t, s.Delete(ctx, "nul"))
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, s.Delete(ctx, "resumeData"))
		_, err := s.Get(ctx, "resumeData")
		assert.True(t, errors.Is(err, persistence.ErrNotFound), "got %v", err)
		assert.NoError(t, s.Delete(ctx, "resumeData"), "deleting a missing key is not an error")
	})
}
