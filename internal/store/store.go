// Package store holds the shopping list state and the transformations on it.
//
// A Store is not safe for concurrent use. Hosts that dispatch events from
// several goroutines go through router.Router, which serializes each
// mutate-then-render cycle.
package store

import (
	"strings"

	"github.com/idilsaglam/shoplist/internal/id"
	"github.com/idilsaglam/shoplist/internal/model"
)

// InsertPosition decides where AddItem places new items.
type InsertPosition int

const (
	// InsertFront prepends, so the newest item shows first.
	InsertFront InsertPosition = iota
	// InsertBack appends in creation order.
	InsertBack
)

func (p InsertPosition) String() string {
	if p == InsertBack {
		return "back"
	}
	return "front"
}

// ParseInsertPosition accepts "front" or "back" (case-insensitive).
func ParseInsertPosition(s string) (InsertPosition, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "front":
		return InsertFront, true
	case "back":
		return InsertBack, true
	}
	return InsertFront, false
}

// Seed describes an item present at startup.
type Seed struct {
	Name    string
	Checked bool
}

// DefaultSeeds is the list shown on first start.
func DefaultSeeds() []Seed {
	return []Seed{
		{Name: "apples"},
		{Name: "oranges"},
		{Name: "milk", Checked: true},
		{Name: "bread"},
	}
}

// Option configures a Store.
type Option func(*Store)

// WithInsertPosition sets where new items land.
func WithInsertPosition(p InsertPosition) Option {
	return func(s *Store) { s.insert = p }
}

// WithSeeds pre-populates the store in the given order.
// Blank seed names are skipped.
func WithSeeds(seeds []Seed) Option {
	return func(s *Store) {
		for _, sd := range seeds {
			it, err := s.CreateItem(sd.Name)
			if err != nil {
				continue
			}
			it.Checked = sd.Checked
			s.items = append(s.items, it)
		}
	}
}

// Store is the single source of truth for items and view flags.
type Store struct {
	gen    id.Generator
	insert InsertPosition

	items         []model.Item
	hideCompleted bool
	searchWord    string // "" means no active search
}

// New builds an empty store. A nil generator falls back to random UUIDs.
func New(gen id.Generator, opts ...Option) *Store {
	if gen == nil {
		gen = id.UUID{}
	}
	s := &Store{gen: gen}
	for _, o := range opts {
		o(s)
	}
	return s
}

// CreateItem builds an unchecked, non-editing item with a fresh id.
// It does not add the item to the list. Names are stored as given;
// only blank ones are rejected.
func (s *Store) CreateItem(name string) (model.Item, error) {
	if strings.TrimSpace(name) == "" {
		return model.Item{}, invalid("create", "", "empty name")
	}
	return model.Item{ID: s.gen.NewID(), Name: name}, nil
}

// AddItem creates an item and inserts it according to the insert position.
func (s *Store) AddItem(name string) (model.Item, error) {
	it, err := s.CreateItem(name)
	if err != nil {
		return model.Item{}, err
	}
	if s.insert == InsertBack {
		s.items = append(s.items, it)
	} else {
		s.items = append([]model.Item{it}, s.items...)
	}
	return it, nil
}

// DeleteItem removes the item with id. Missing ids are ignored.
func (s *Store) DeleteItem(id string) {
	i := s.index(id)
	if i < 0 {
		return
	}
	s.items = append(s.items[:i], s.items[i+1:]...)
}

// ToggleChecked flips the checked state of the item.
func (s *Store) ToggleChecked(id string) error {
	i := s.index(id)
	if i < 0 {
		return notFound("toggle", id)
	}
	s.items[i].Checked = !s.items[i].Checked
	return nil
}

// SetEditing toggles edit mode on id and turns it off for every other item.
// An unknown id still closes any open editor before NotFound is returned.
func (s *Store) SetEditing(id string) error {
	found := false
	for i := range s.items {
		if s.items[i].ID == id {
			s.items[i].IsEditing = !s.items[i].IsEditing
			found = true
		} else {
			s.items[i].IsEditing = false
		}
	}
	if !found {
		return notFound("edit", id)
	}
	return nil
}

// CancelEditing leaves edit mode on whichever item had it.
func (s *Store) CancelEditing() {
	for i := range s.items {
		s.items[i].IsEditing = false
	}
}

// RenameItem sets a new name. Id and checked state are untouched.
func (s *Store) RenameItem(id, newName string) error {
	if strings.TrimSpace(newName) == "" {
		return invalid("rename", id, "empty name")
	}
	i := s.index(id)
	if i < 0 {
		return notFound("rename", id)
	}
	s.items[i].Name = newName
	return nil
}

// SaveEdit commits a rename and leaves edit mode. On error nothing changes.
func (s *Store) SaveEdit(id, newName string) error {
	if err := s.RenameItem(id, newName); err != nil {
		return err
	}
	s.CancelEditing()
	return nil
}

func (s *Store) SetHideCompleted(v bool) { s.hideCompleted = v }

func (s *Store) ToggleHideCompleted() { s.hideCompleted = !s.hideCompleted }

// SetSearchWord activates the search filter. The empty string clears it;
// any other word, whitespace included, is matched verbatim.
func (s *Store) SetSearchWord(word string) { s.searchWord = word }

func (s *Store) ClearSearch() { s.searchWord = "" }

func (s *Store) HideCompleted() bool { return s.hideCompleted }

func (s *Store) SearchWord() string { return s.searchWord }

func (s *Store) SearchActive() bool { return s.searchWord != "" }

func (s *Store) InsertPosition() InsertPosition { return s.insert }

func (s *Store) Len() int { return len(s.items) }

// Items returns a copy of all items in store order.
func (s *Store) Items() []model.Item {
	out := make([]model.Item, len(s.items))
	copy(out, s.items)
	return out
}

// Item looks up a single item by id.
func (s *Store) Item(id string) (model.Item, bool) {
	i := s.index(id)
	if i < 0 {
		return model.Item{}, false
	}
	return s.items[i], true
}

// Editing returns the item currently in edit mode, if any.
func (s *Store) Editing() (model.Item, bool) {
	for _, it := range s.items {
		if it.IsEditing {
			return it, true
		}
	}
	return model.Item{}, false
}

// Stats counts checked and pending items across the whole list.
func (s *Store) Stats() (checked, pending int) {
	for _, it := range s.items {
		if it.Checked {
			checked++
		} else {
			pending++
		}
	}
	return
}

// linear scan; lists are small
func (s *Store) index(id string) int {
	for i := range s.items {
		if s.items[i].ID == id {
			return i
		}
	}
	return -1
}
