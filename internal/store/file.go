package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// File persists each collection as one JSON document in a data
// directory, the device-local storage analog. A missing or unparsable
// file reads as an empty collection; it is rewritten wholesale on the
// next write.
type File struct {
	mu  sync.Mutex
	dir string
}

// NewFile creates a file backend rooted at dir, creating it if needed.
func NewFile(dir string) (*File, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	return &File{dir: dir}, nil
}

func (f *File) path(key string) string {
	name := strings.ReplaceAll(key, ":", "_") + ".json"
	return filepath.Join(f.dir, name)
}

// readCollection loads the id->record document for a collection.
// Corrupt documents read as empty rather than failing the caller.
func (f *File) readCollection(key string) map[string]json.RawMessage {
	b, err := os.ReadFile(f.path(key))
	if err != nil {
		return map[string]json.RawMessage{}
	}
	var doc map[string]json.RawMessage
	if err := json.Unmarshal(b, &doc); err != nil || doc == nil {
		return map[string]json.RawMessage{}
	}
	return doc
}

// writeCollection rewrites the collection document atomically via a
// temp file rename.
func (f *File) writeCollection(key string, doc map[string]json.RawMessage) error {
	b, err := json.Marshal(doc)
	if err != nil {
		return err
	}
	return f.writeFile(f.path(key), b)
}

func (f *File) writeFile(path string, b []byte) error {
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, b, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

func (f *File) GetRecord(_ context.Context, collection, id string) ([]byte, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	doc := f.readCollection(collection)
	b, ok := doc[id]
	if !ok {
		return nil, false, nil
	}
	return b, true, nil
}

func (f *File) PutRecord(_ context.Context, collection, id string, value []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	doc := f.readCollection(collection)
	doc[id] = json.RawMessage(value)
	return f.writeCollection(collection, doc)
}

func (f *File) DeleteRecord(_ context.Context, collection, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	doc := f.readCollection(collection)
	if _, ok := doc[id]; !ok {
		return nil
	}
	delete(doc, id)
	return f.writeCollection(collection, doc)
}

func (f *File) GetAll(_ context.Context, collection string) (map[string][]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	doc := f.readCollection(collection)
	out := make(map[string][]byte, len(doc))
	for id, b := range doc {
		out[id] = b
	}
	return out, nil
}

func (f *File) Get(_ context.Context, key string) ([]byte, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	b, err := os.ReadFile(f.path(key))
	if errors.Is(err, os.ErrNotExist) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return b, true, nil
}

func (f *File) Set(_ context.Context, key string, value []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.writeFile(f.path(key), value)
}

func (f *File) Delete(_ context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	err := os.Remove(f.path(key))
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}
