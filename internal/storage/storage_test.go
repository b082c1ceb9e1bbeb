package storage_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/taskifyapp/taskify/internal/storage"
)

func TestFileStoreRoundTrip(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)
	store := storage.NewFileStore(t.TempDir())

	payload := []byte(`{"version":1,"tasks":[]}`)
	assert.Nil(store.Save("task-store", payload))

	got, err := store.Load("task-store")
	assert.Nil(err)
	assert.Equal(payload, got)
}

func TestFileStoreMissingNamespace(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)
	store := storage.NewFileStore(t.TempDir())

	got, err := store.Load("never-saved")
	assert.Nil(err)
	assert.Nil(got)
}

func TestFileStoreOverwrite(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)
	dir := t.TempDir()
	store := storage.NewFileStore(dir)

	assert.Nil(store.Save("ns", []byte("first")))
	assert.Nil(store.Save("ns", []byte("second")))

	got, err := store.Load("ns")
	assert.Nil(err)
	assert.Equal([]byte("second"), got)

	// no stray temp files left behind
	entries, err := os.ReadDir(dir)
	assert.Nil(err)
	assert.Len(entries, 1)
}

func TestFileStoreNamespacesAreIndependent(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)
	store := storage.NewFileStore(t.TempDir())

	assert.Nil(store.Save("task-store", []byte("tasks")))
	assert.Nil(store.Save("pomodoro-store", []byte("sessions")))

	tasks, err := store.Load("task-store")
	assert.Nil(err)
	assert.Equal([]byte("tasks"), tasks)

	sessions, err := store.Load("pomodoro-store")
	assert.Nil(err)
	assert.Equal([]byte("sessions"), sessions)
}

func TestSQLiteStoreRoundTrip(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)
	store, err := storage.NewSQLiteStore(filepath.Join(t.TempDir(), "taskify.sqlite"))
	assert.Nil(err)
	defer store.Close()

	got, err := store.Load("task-store")
	assert.Nil(err)
	assert.Nil(got)

	assert.Nil(store.Save("task-store", []byte("v1")))
	assert.Nil(store.Save("task-store", []byte("v2")))

	got, err = store.Load("task-store")
	assert.Nil(err)
	assert.Equal([]byte("v2"), got)
}

func TestSQLiteStoreBadPath(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)
	store, err := storage.NewSQLiteStore("/nonexistent-dir/taskify.sqlite")
	assert.Nil(store)
	assert.NotNil(err)
}
