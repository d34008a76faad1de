package store_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-resumegen/pkg/store"
	"github.com/goliatone/go-resumegen/pkg/store/storetest"
)

func TestOpen_Memory(t *testing.T) {
	h, err := store.Open(context.Background(), store.Settings{})
	require.NoError(t, err)

	defer h.Close()

	storetest.Run(t, h)
}

func TestOpen_Bolt(t *testing.T) {
	h, err := store.Open(context.Background(), store.Settings{
		Driver:   "BOLT",
		BoltPath: filepath.Join(t.TempDir(), "resume.bolt"),
	})
	require.NoError(t, err)

	defer h.Close()

	storetest.Run(t, h)
}

func TestOpen_Errors(t *testing.T) {
	ctx := context.Background()

	_, err := store.Open(ctx, store.Settings{Driver: "sqlite"})
	assert.Error(t, err)

	_, err = store.Open(ctx, store.Settings{Driver: store.DriverRedis})
	assert.Error(t, err, "redis requires an address")

	_, err = store.Open(ctx, store.Settings{Driver: store.DriverPostgres})
	assert.Error(t, err, "postgres requires a dsn")
}
