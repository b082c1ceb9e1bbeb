package task

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/taskifyapp/taskify/internal/storage"
)

// StoreNamespace is the storage namespace for the task snapshot.
const StoreNamespace = "task-store"

// SnapshotVersion tags the snapshot schema, reserved for future
// migrations.
const SnapshotVersion = 1

// Snapshot is the persisted form of a repository.
type Snapshot struct {
	Version int    `json:"version"`
	Tasks   []Task `json:"tasks"`
	Tags    []Tag  `json:"tags"`
}

// LoadRepository reads the task snapshot from the store. The returned
// repository is always usable: a missing or corrupt snapshot yields a
// default repository, with the error reported alongside for logging.
func LoadRepository(store storage.Store) (*Repository, error) {
	repo := NewRepository()

	data, err := store.Load(StoreNamespace)
	if err != nil {
		return repo, fmt.Errorf("load task snapshot: %w", err)
	}
	if data == nil {
		return repo, nil
	}

	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return repo, fmt.Errorf("unmarshal task snapshot: %w", err)
	}

	tags := snap.Tags
	if tags == nil {
		tags = DefaultTags()
	}

	repo.tags = tags
	repo.tasks = snap.Tasks
	repo.now = time.Now
	return repo, nil
}

// SnapshotData marshals the current repository state. Callers that
// persist in the background should capture these bytes synchronously so
// later mutations cannot race the encoder.
func (r *Repository) SnapshotData() ([]byte, error) {
	snap := Snapshot{
		Version: SnapshotVersion,
		Tasks:   r.tasks,
		Tags:    r.tags,
	}

	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal task snapshot: %w", err)
	}
	return data, nil
}

// SaveTo writes the repository's snapshot into the store.
func (r *Repository) SaveTo(store storage.Store) error {
	data, err := r.SnapshotData()
	if err != nil {
		return err
	}
	if err := store.Save(StoreNamespace, data); err != nil {
		return fmt.Errorf("save task snapshot: %w", err)
	}
	return nil
}
