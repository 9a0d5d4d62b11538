package loader

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

// Suffix is the file name suffix suite files are discovered by.
const Suffix = ".suite.yaml"

// Loader parses and caches suite files. It is safe for concurrent use.
type Loader struct {
	mu    sync.Mutex
	cache map[string]*File
}

func New() *Loader {
	return &Loader{cache: make(map[string]*File)}
}

// Load parses the suite file at path, serving repeated loads of the same
// path from cache until Invalidate is called for it.
func (l *Loader) Load(path string) (*File, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}

	l.mu.Lock()
	if f, ok := l.cache[abs]; ok {
		l.mu.Unlock()
		return f, nil
	}
	l.mu.Unlock()

	f, err := Parse(abs)
	if err != nil {
		return nil, err
	}

	l.mu.Lock()
	l.cache[abs] = f
	l.mu.Unlock()
	return f, nil
}

// Invalidate drops the cached parse of path, if any, so the next Load
// re-reads it from disk. Watch mode calls this on file change events.
func (l *Loader) Invalidate(path string) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return
	}
	l.mu.Lock()
	delete(l.cache, abs)
	l.mu.Unlock()
}

// Parse reads and validates a single suite file, bypassing the cache.
func Parse(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read suite file: %w", err)
	}

	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := f.validate(); err != nil {
		return nil, fmt.Errorf("invalid %s: %w", path, err)
	}

	f.Path = path
	return &f, nil
}

// Discover walks root and returns every suite file under it, sorted. A
// root that is itself a suite file is returned as-is.
func Discover(root string) ([]string, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		if !strings.HasSuffix(root, Suffix) {
			return nil, fmt.Errorf("%s is not a %s file", root, Suffix)
		}
		return []string{root}, nil
	}

	var files []string
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(d.Name(), Suffix) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Strings(files)
	return files, nil
}
