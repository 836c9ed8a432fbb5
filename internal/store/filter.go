package store

import (
	"strings"

	"github.com/idilsaglam/shoplist/internal/model"
)

// VisibleItems derives the displayed subsequence from the store flags.
// Hide-completed drops checked items; an active search keeps only names
// containing the word (case-sensitive). It never mutates the store.
func VisibleItems(s *Store) []model.Item {
	out := make([]model.Item, 0, len(s.items))
	for _, it := range s.items {
		if s.hideCompleted && it.Checked {
			continue
		}
		if s.searchWord != "" && !strings.Contains(it.Name, s.searchWord) {
			continue
		}
		out = append(out, it)
	}
	return out
}
