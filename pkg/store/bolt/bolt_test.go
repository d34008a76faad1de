package bolt_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-resumegen/pkg/store/bolt"
	"github.com/goliatone/go-resumegen/pkg/store/storetest"
)

func TestStore(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "resumegen-bolt-test-*")
	require.NoError(t, err)

	defer os.RemoveAll(tmpDir)

	db, err := bolt.Open(filepath.Join(tmpDir, "nested", "resume.bolt"))
	require.NoError(t, err)

	defer db.Close()

	storetest.Run(t, db)
}

func TestStore_SurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "resume.bolt")

	db, err := bolt.Open(path)
	require.NoError(t, err)
	require.NoError(t, db.Set(context.Background(), "resumeData", []byte(`{"skills":"Go"}`)))
	require.NoError(t, db.Close())

	db, err = bolt.Open(path)
	require.NoError(t, err)

	defer db.Close()

	got, err := db.Get(context.Background(), "resumeData")
	require.NoError(t, err)
	assert.JSONEq(t, `{"skills":"Go"}`, string(got))
}

func TestOpen_RequiresPath(t *testing.T) {
	_, err := bolt.Open("")
	assert.Error(t, err)
}
