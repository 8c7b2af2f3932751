// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package ordered mutates newest-first lists embedded in a parent aggregate.

Post likes and comments and profile experience and education are all stored
inside their parent. Every change loads the parent, edits the list in memory
and saves the whole parent back.

Concurrency:

There is no locking between load and save. Two concurrent writers to the same
parent both succeed and the later save wins, silently dropping the earlier
change. Stores that need stronger guarantees must add them behind [Store].
*/
package ordered

import (
	"context"
	"fmt"

	"github.com/taibuivan/devhub/internal/platform/apperr"
)

// Store is the aggregate persistence contract the mutator needs.
type Store[P any] interface {
	// Load returns the parent or a NOT_FOUND error.
	Load(ctx context.Context, id string) (*P, error)
	// Save persists the whole parent, sub-collections included.
	Save(ctx context.Context, parent *P) error
}

// Collection selects one embedded list of a parent.
type Collection[P, E any] struct {
	Get func(parent *P) []E
	Set func(parent *P, entries []E)
}

// Guard inspects the full current list before an insert and may veto it.
type Guard[E any] func(current []E) error

// Removal describes a RemoveWhere call.
type Removal[E any] struct {
	// Match selects the entries to remove.
	Match func(entry E) bool
	// Missing is returned when nothing matches. Nil means NOT_FOUND("Entry").
	Missing error
	// Authorize runs for every match before anything is removed. Optional.
	Authorize func(entry E) error
}

// Mutator applies head inserts and filtered removals to one collection.
type Mutator[P, E any] struct {
	store Store[P]
	items Collection[P, E]
}

// New builds a [Mutator] over store for the collection selected by items.
func New[P, E any](store Store[P], items Collection[P, E]) *Mutator[P, E] {
	return &Mutator[P, E]{store: store, items: items}
}

// InsertHead prepends entry to the parent's list and saves the parent.
//
// guard (optional) sees the whole list first; when it errors nothing is saved.
// Returns the updated list.
func (m *Mutator[P, E]) InsertHead(ctx context.Context, parentID string, entry E, guard Guard[E]) ([]E, error) {
	parent, err := m.store.Load(ctx, parentID)
	if err != nil {
		return nil, err
	}

	current := m.items.Get(parent)
	if guard != nil {
		if err := guard(current); err != nil {
			return nil, err
		}
	}

	updated := make([]E, 0, len(current)+1)
	updated = append(updated, entry)
	updated = append(updated, current...)
	m.items.Set(parent, updated)

	if err := m.store.Save(ctx, parent); err != nil {
		return nil, fmt.Errorf("ordered_insert_save_failed: %w", err)
	}

	return updated, nil
}

// RemoveWhere drops every entry selected by removal.Match and saves the parent.
//
// Existence is decided first: no match returns removal.Missing. Authorization
// then runs against each match; one refusal aborts without saving. Relative
// order of the surviving entries is preserved. Returns the updated list.
func (m *Mutator[P, E]) RemoveWhere(ctx context.Context, parentID string, removal Removal[E]) ([]E, error) {
	parent, err := m.store.Load(ctx, parentID)
	if err != nil {
		return nil, err
	}

	current := m.items.Get(parent)
	kept := make([]E, 0, len(current))
	var matched []E

	for _, entry := range current {
		if removal.Match(entry) {
			matched = append(matched, entry)
			continue
		}
		kept = append(kept, entry)
	}

	if len(matched) == 0 {
		if removal.Missing == nil {
			return nil, apperr.NotFound("Entry")
		}
		return nil, removal.Missing
	}

	if removal.Authorize != nil {
		for _, entry := range matched {
			if err := removal.Authorize(entry); err != nil {
				return nil, err
			}
		}
	}

	m.items.Set(parent, kept)

	if err := m.store.Save(ctx, parent); err != nil {
		return nil, fmt.Errorf("ordered_remove_save_failed: %w", err)
	}

	return kept, nil
}

// Unique returns a [Guard] rejecting the insert with err when any current
// entry has the given key. The scan covers the whole list.
func Unique[E any](key func(entry E) string, want string, err error) Guard[E] {
	return func(current []E) error {
		for _, entry := range current {
			if key(entry) == want {
				return err
			}
		}
		return nil
	}
}
