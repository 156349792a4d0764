package model

import (
	"slices"
)

// Registry stores loaded classifiers by key. It is built once and never
// mutated afterwards, so concurrent reads need no locking.
type Registry struct {
	entries map[string]Entry
}

// NewRegistry creates a registry from already constructed classifiers. Nil
// classifiers are left out.
func NewRegistry(classifiers map[string]Classifier) *Registry {
	entries := make(map[string]Entry, len(classifiers))
	for key, c := range classifiers {
		if c == nil {
			continue
		}
		entries[key] = Entry{
			Classifier: c,
			Key:        key,
			Family:     c.Family(),
		}
	}
	return newRegistry(entries)
}

func newRegistry(entries map[string]Entry) *Registry {
	return &Registry{entries: entries}
}

// Get returns the classifier stored under key.
func (r *Registry) Get(key string) (Classifier, bool) {
	entry, ok := r.entries[key]
	if !ok {
		return nil, false
	}
	return entry.Classifier, true
}

// Keys returns the loaded model keys in sorted order.
func (r *Registry) Keys() []string {
	keys := make([]string, 0, len(r.entries))
	for key := range r.entries {
		keys = append(keys, key)
	}
	slices.Sort(keys)

	return keys
}

// List returns all entries ordered by key.
func (r *Registry) List() []Entry {
	entries := make([]Entry, 0, len(r.entries))
	for _, key := range r.Keys() {
		entries = append(entries, r.entries[key])
	}
	return entries
}

// Len returns the number of loaded models.
func (r *Registry) Len() int {
	return len(r.entries)
}
