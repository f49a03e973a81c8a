// Package memrepo keeps evaluation records in a map, optionally mirrored to a JSON file.
//
// The file holds a JSON array of records ordered by kind then ID. It is rewritten in full
// after every change via a temporary file and a rename, so a failed write leaves the
// previous contents in place. A change that cannot be written is undone in memory.
package memrepo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/mrled/stackcalc/internal/exercise"
	"github.com/mrled/stackcalc/internal/model"
)

// MemoryRepository is an EvaluationRepository over a map keyed by kind and record ID
type MemoryRepository struct {
	mu      sync.RWMutex
	records map[string]*model.EvaluationRecord
	path    string
}

// recordKey mirrors the DynamoDB composite key (PK=kind, SK=ID)
func recordKey(kind exercise.Kind, id string) string {
	return string(kind) + "#" + id
}

// NewMemoryRepository returns a repository that lives only as long as the process
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{records: make(map[string]*model.EvaluationRecord)}
}

// NewMemoryRepositoryWithPersistence opens a repository mirrored to path.
// Missing parent directories are created; a missing or empty file starts an empty history.
func NewMemoryRepositoryWithPersistence(path string) (*MemoryRepository, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, err
	}

	repo := NewMemoryRepository()
	repo.path = path

	f, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		return repo, nil
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()

	if err := repo.decode(f); err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", path, err)
	}
	return repo, nil
}

// NewMemoryRepositoryFromJsonString returns an unpersisted repository seeded from a JSON
// array of records.
func NewMemoryRepositoryFromJsonString(jsonString string) (*MemoryRepository, error) {
	repo := NewMemoryRepository()
	if err := repo.decode(strings.NewReader(jsonString)); err != nil {
		return nil, err
	}
	return repo, nil
}

// decode replaces the in-memory records with the JSON array read from rd.
// Empty input is an empty history.
func (r *MemoryRepository) decode(rd io.Reader) error {
	var loaded []*model.EvaluationRecord
	err := json.NewDecoder(rd).Decode(&loaded)
	if err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("failed to decode records: %w", err)
	}

	records := make(map[string]*model.EvaluationRecord, len(loaded))
	for _, rec := range loaded {
		key := recordKey(rec.Kind, rec.ID)
		// A DynamoDB put would overwrite too, so the later entry wins
		if _, dup := records[key]; dup {
			slog.Warn("Duplicate record in JSON data, keeping last occurrence",
				slog.String("kind", string(rec.Kind)),
				slog.String("id", rec.ID))
		}
		records[key] = rec
	}

	r.records = records
	return nil
}

// persist writes every record to r.path. It is a no-op for unpersisted repositories.
func (r *MemoryRepository) persist() error {
	if r.path == "" {
		return nil
	}

	keys := make([]string, 0, len(r.records))
	for k := range r.records {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	ordered := make([]*model.EvaluationRecord, len(keys))
	for i, k := range keys {
		ordered[i] = r.records[k]
	}

	tmp, err := os.CreateTemp(filepath.Dir(r.path), filepath.Base(r.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to write %s: %w", r.path, err)
	}
	defer os.Remove(tmp.Name())

	// CreateTemp uses 0600; the history file is not private
	if err := tmp.Chmod(0644); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write %s: %w", r.path, err)
	}

	enc := json.NewEncoder(tmp)
	enc.SetIndent("", "  ")
	if err := enc.Encode(ordered); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write %s: %w", r.path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write %s: %w", r.path, err)
	}

	if err := os.Rename(tmp.Name(), r.path); err != nil {
		return fmt.Errorf("failed to write %s: %w", r.path, err)
	}
	return nil
}

// Store adds record. It returns model.ErrAlreadyExists if the kind and ID are taken.
func (r *MemoryRepository) Store(ctx context.Context, record *model.EvaluationRecord) error {
	if record == nil {
		return errors.New("evaluation record cannot be nil")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	key := recordKey(record.Kind, record.ID)
	if _, taken := r.records[key]; taken {
		return model.ErrAlreadyExists
	}

	r.records[key] = record
	if err := r.persist(); err != nil {
		delete(r.records, key)
		return err
	}
	return nil
}

// Get returns the record stored under kind and id, or model.ErrNotFound
func (r *MemoryRepository) Get(ctx context.Context, kind exercise.Kind, id string) (*model.EvaluationRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	record, ok := r.records[recordKey(kind, id)]
	if !ok {
		return nil, model.ErrNotFound
	}
	return record, nil
}

// List returns every record in no particular order
func (r *MemoryRepository) List(ctx context.Context) ([]*model.EvaluationRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	all := make([]*model.EvaluationRecord, 0, len(r.records))
	for _, record := range r.records {
		all = append(all, record)
	}
	return all, nil
}

// Delete removes the record stored under kind and id, or returns model.ErrNotFound
func (r *MemoryRepository) Delete(ctx context.Context, kind exercise.Kind, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := recordKey(kind, id)
	record, ok := r.records[key]
	if !ok {
		return model.ErrNotFound
	}

	delete(r.records, key)
	if err := r.persist(); err != nil {
		r.records[key] = record
		return err
	}
	return nil
}
