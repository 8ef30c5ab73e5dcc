package persistent

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"newsletter/services/newsletter/internal/entity"
)

// ErrCorrupt marks a subscribers file that exists but is not a JSON list.
var ErrCorrupt = errors.New("subscribers file is corrupt")

// SubscriberRepository reads and rewrites the whole subscriber document.
// It does no locking of its own; callers serialise read-modify-write.
type SubscriberRepository interface {
	Init() error
	ReadAll() ([]entity.Subscriber, error)
	WriteAll(subscribers []entity.Subscriber) error
	Path() string
}

type subscriberRepository struct {
	path string
}

func NewSubscriberRepository(path string) SubscriberRepository {
	return &subscriberRepository{path: path}
}

func (r *subscriberRepository) Path() string {
	return r.path
}

// Init creates an empty list document when none exists yet.
func (r *subscriberRepository) Init() error {
	if _, err := os.Stat(r.path); err == nil {
		return nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to stat subscribers file: %w", err)
	}
	return r.WriteAll([]entity.Subscriber{})
}

// ReadAll always returns a usable slice. On a read or parse failure the
// slice is empty and the error says why; parse failures wrap ErrCorrupt.
func (r *subscriberRepository) ReadAll() ([]entity.Subscriber, error) {
	data, err := os.ReadFile(r.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []entity.Subscriber{}, nil
		}
		return []entity.Subscriber{}, fmt.Errorf("failed to read subscribers file: %w", err)
	}

	if len(data) == 0 {
		return []entity.Subscriber{}, nil
	}

	var subscribers []entity.Subscriber
	if err := json.Unmarshal(data, &subscribers); err != nil {
		return []entity.Subscriber{}, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	if subscribers == nil {
		subscribers = []entity.Subscriber{}
	}
	return subscribers, nil
}

func (r *subscriberRepository) WriteAll(subscribers []entity.Subscriber) error {
	if subscribers == nil {
		subscribers = []entity.Subscriber{}
	}

	data, err := json.MarshalIndent(subscribers, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal subscribers: %w", err)
	}
	data = append(data, '\n')

	if err := atomicWriteFile(r.path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write subscribers file: %w", err)
	}
	return nil
}

// atomicWriteFile writes to a temp file in the target directory and
// renames it over filename.
func atomicWriteFile(filename string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(filename)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	tmpFile, err := os.CreateTemp(dir, filepath.Base(filename)+".*.tmp")
	if err != nil {
		return err
	}
	tmpPath := tmpFile.Name()

	closed := false
	defer func() {
		if !closed {
			_ = tmpFile.Close()
			_ = os.Remove(tmpPath)
		}
	}()

	if _, err := tmpFile.Write(data); err != nil {
		return err
	}
	if err := tmpFile.Sync(); err != nil {
		return err
	}
	if err := tmpFile.Close(); err != nil {
		return err
	}
	closed = true

	if err := os.Chmod(tmpPath, perm); err != nil {
		_ = os.Remove(tmpPath)
		return err
	}
	if err := os.Rename(tmpPath, filename); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to rename temp file: %w", err)
	}
	return nil
}
