package registry

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"sync"

	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// ProcessedFileRegistry remembers which drive files were already ingested.
// On disk it is a JSON array of file names.
type ProcessedFileRegistry struct {
	path string

	mu    sync.Mutex
	names map[string]struct{}
}

func NewProcessedFileRegistry(path string) *ProcessedFileRegistry {
	return &ProcessedFileRegistry{path: path, names: make(map[string]struct{})}
}

// Load reads the registry file. A missing or corrupt file yields an empty registry.
func (r *ProcessedFileRegistry) Load() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.names = make(map[string]struct{})

	content, err := os.ReadFile(r.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("read registry %s: %w", r.path, err)
	}

	var names []string
	if err := json.Unmarshal(content, &names); err != nil {
		logrus.WithField("file", r.path).WithError(err).Warn("registry is not a JSON array, starting empty")
		return nil
	}

	for _, name := range names {
		r.names[name] = struct{}{}
	}
	return nil
}

func (r *ProcessedFileRegistry) Contains(name string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, ok := r.names[name]
	return ok
}

// Add records name and persists the registry before returning.
func (r *ProcessedFileRegistry) Add(name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.names[name]; ok {
		return nil
	}

	r.names[name] = struct{}{}
	if err := r.persist(); err != nil {
		delete(r.names, name)
		return err
	}
	return nil
}

// Names returns the registered names in order.
func (r *ProcessedFileRegistry) Names() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.sorted()
}

func (r *ProcessedFileRegistry) sorted() []string {
	names := make([]string, 0, len(r.names))
	for name := range r.names {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (r *ProcessedFileRegistry) persist() error {
	content, err := json.MarshalIndent(r.sorted(), "", "  ")
	if err != nil {
		return fmt.Errorf("encode registry: %w", err)
	}

	dir := filepath.Dir(r.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create registry dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".processed-*.json")
	if err != nil {
		return fmt.Errorf("create registry temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(content); err != nil {
		tmp.Close()
		return fmt.Errorf("write registry: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close registry temp file: %w", err)
	}

	if err := os.Rename(tmp.Name(), r.path); err != nil {
		return fmt.Errorf("replace registry %s: %w", r.path, err)
	}
	return nil
}
