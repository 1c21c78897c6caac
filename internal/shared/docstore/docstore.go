// Package docstore persists whole JSON documents addressed by name.
//
// Every document is read, changed in memory and written back in full. Callers that
// read-modify-write a document hold its lock for the whole cycle (see Mutate), which
// serializes writers inside one process. Writers in other processes are not coordinated.
package docstore

import (
	"context"
	"sync"
)

// DocumentStore loads and persists named JSON documents.
type DocumentStore interface {
	// EnsureExists creates the document from def when it does not exist yet.
	EnsureExists(ctx context.Context, name string, def interface{}) error
	// Read decodes the document into out.
	Read(ctx context.Context, name string, out interface{}) error
	// Write replaces the document with value.
	Write(ctx context.Context, name string, value interface{}) error
	// Lock acquires the in-process lock for name and returns its release func.
	Lock(name string) (unlock func())
	// Ping reports whether the backend is reachable.
	Ping(ctx context.Context) error
	// Close releases backend resources.
	Close(ctx context.Context) error
}

// KeyedMutex hands out one mutex per document name.
type KeyedMutex struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// Lock blocks until the mutex for name is held.
func (k *KeyedMutex) Lock(name string) func() {
	k.mu.Lock()
	if k.locks == nil {
		k.locks = make(map[string]*sync.Mutex)
	}
	m, ok := k.locks[name]
	if !ok {
		m = &sync.Mutex{}
		k.locks[name] = m
	}
	k.mu.Unlock()

	m.Lock()
	return m.Unlock
}

// Load ensures the document exists and decodes it, under the document's lock.
func Load[T any](ctx context.Context, store DocumentStore, name string, def T) (T, error) {
	unlock := store.Lock(name)
	defer unlock()
	return load(ctx, store, name, def)
}

// Mutate loads the document, applies fn and writes the result back when fn
// reports a change. The document's lock is held for the whole cycle, and fn must
// not take the same document's lock again.
func Mutate[T any](ctx context.Context, store DocumentStore, name string, def T, fn func(doc *T) (bool, error)) (T, error) {
	unlock := store.Lock(name)
	defer unlock()

	doc, err := load(ctx, store, name, def)
	if err != nil {
		return doc, err
	}

	changed, err := fn(&doc)
	if err != nil {
		return doc, err
	}
	if changed {
		if err := store.Write(ctx, name, doc); err != nil {
			return doc, err
		}
	}
	return doc, nil
}

func load[T any](ctx context.Context, store DocumentStore, name string, def T) (T, error) {
	var doc T
	if err := store.EnsureExists(ctx, name, def); err != nil {
		return doc, err
	}
	if err := store.Read(ctx, name, &doc); err != nil {
		return doc, err
	}
	return doc, nil
}
