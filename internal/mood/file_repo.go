package mood

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// Repository abstracts persistence of the full mood data set.
// Implementations can be file-based, database, etc.
type Repository interface {
	Load() (Data, error)
	Save(Data) error
}

// FileRepository persists the data set as one JSON file:
// {"<user_id>": {"YYYY-MM-DD": [score, ...], ...}, ...}
type FileRepository struct {
	path string
	mu   sync.Mutex
}

func NewFileRepository(path string) (*FileRepository, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("ensure dir: %w", err)
	}
	return &FileRepository{path: path}, nil
}

// Load reads the whole data set. A missing file is not an error: it yields
// an empty set. Read or parse failures are returned for the caller to log;
// callers are expected to degrade to an empty set rather than abort.
func (r *FileRepository) Load() (Data, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	f, err := os.Open(r.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return make(Data), nil
		}
		return nil, fmt.Errorf("open: %w", err)
	}
	defer func(f *os.File) {
		_ = f.Close()
	}(f)
	var data Data
	dec := json.NewDecoder(f)
	if err := dec.Decode(&data); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	if data == nil {
		data = make(Data)
	}
	return data, nil
}

// Save writes the whole data set, replacing prior contents. The file is
// written to a temp file and renamed over the target, so a failed save
// leaves the previous contents intact.
func (r *FileRepository) Save(data Data) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	tmp, err := os.CreateTemp(filepath.Dir(r.path), ".mood-*.json")
	if err != nil {
		return fmt.Errorf("create temp: %w", err)
	}
	enc := json.NewEncoder(tmp)
	enc.SetIndent("", "  ")
	if err := enc.Encode(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("encode: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("close temp: %w", err)
	}
	if err := os.Rename(tmp.Name(), r.path); err != nil {
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("rename: %w", err)
	}
	return nil
}
