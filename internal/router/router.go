// Package router turns user events into store mutations.
//
// A Router owns one store and a mutex. Each Dispatch (and each
// DispatchRender, which also renders) runs entirely under that mutex, so
// a render never sees a half-applied event even when events come from
// several goroutines.
package router

import (
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/idilsaglam/shoplist/internal/store"
)

// Kind names a user interaction.
type Kind string

const (
	Add                 Kind = "add"
	Toggle              Kind = "toggle"
	Delete              Kind = "delete"
	ToggleHideCompleted Kind = "toggle-hide-completed"
	SetHideCompleted    Kind = "set-hide-completed"
	Search              Kind = "search"
	ClearSearch         Kind = "clear-search"
	EditStart           Kind = "edit-start"
	EditSave            Kind = "edit-save"
	EditCancel          Kind = "edit-cancel"
)

// ErrUnknownEvent is returned for an unrecognized Kind.
var ErrUnknownEvent = errors.New("unknown event")

// Event is already-parsed user input. ID carries the item id for per-item
// events; Text carries a name or search word. SetHideCompleted reads Flag.
type Event struct {
	Kind Kind
	ID   string
	Text string
	Flag bool
}

// RenderFunc reads a settled store and returns its textual view.
type RenderFunc func(s *store.Store) string

type Router struct {
	mu     sync.Mutex
	store  *store.Store
	logger *zap.Logger
}

// New wraps s. A nil logger is replaced by a no-op one.
func New(s *store.Store, logger *zap.Logger) *Router {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Router{store: s, logger: logger}
}

// Dispatch applies ev to the store.
func (r *Router) Dispatch(ev Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.apply(ev)
}

// DispatchRender applies ev and renders the result in one critical section.
// The render runs even when the event fails, so callers can redraw the
// unchanged state next to the error.
func (r *Router) DispatchRender(ev Event, fn RenderFunc) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	err := r.apply(ev)
	return fn(r.store), err
}

// Render runs fn against the current state.
func (r *Router) Render(fn RenderFunc) string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return fn(r.store)
}

// Read gives fn locked access to the store. fn must not retain s.
func (r *Router) Read(fn func(s *store.Store)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	fn(r.store)
}

func (r *Router) apply(ev Event) error {
	s := r.store
	var err error
	switch ev.Kind {
	case Add:
		it, aerr := s.AddItem(ev.Text)
		if aerr == nil {
			r.logger.Debug("item added", zap.String("id", it.ID), zap.String("name", it.Name))
		}
		err = aerr
	case Toggle:
		err = s.ToggleChecked(ev.ID)
	case Delete:
		s.DeleteItem(ev.ID)
	case ToggleHideCompleted:
		s.ToggleHideCompleted()
	case SetHideCompleted:
		s.SetHideCompleted(ev.Flag)
	case Search:
		s.SetSearchWord(ev.Text)
	case ClearSearch:
		s.ClearSearch()
	case EditStart:
		err = s.SetEditing(ev.ID)
	case EditSave:
		err = s.SaveEdit(ev.ID, ev.Text)
	case EditCancel:
		s.CancelEditing()
	default:
		err = fmt.Errorf("%w: %q", ErrUnknownEvent, ev.Kind)
	}

	if err != nil {
		r.logger.Info("event rejected",
			zap.String("kind", string(ev.Kind)),
			zap.String("id", ev.ID),
			zap.Error(err))
		return err
	}
	r.logger.Debug("event applied",
		zap.String("kind", string(ev.Kind)),
		zap.String("id", ev.ID),
		zap.Int("items", s.Len()))
	return nil
}
