// Package web serves the shopping list over HTTP. Buttons post events,
// Datastar clients get the changed regions back as SSE patches and plain
// form posts are redirected to the page.
package web

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/starfederation/datastar-go/datastar"
	"go.uber.org/zap"

	"github.com/idilsaglam/shoplist/internal/markup"
	"github.com/idilsaglam/shoplist/internal/router"
	"github.com/idilsaglam/shoplist/internal/store"
)

const (
	listSelector  = "#shopping-list"
	clearSelector = "#clear-search-controls"
)

// signals mirrors the Datastar signals declared in the page.
type signals struct {
	NewItem  string `json:"newItem"`
	Search   string `json:"search"`
	EditName string `json:"editName"`
}

type Server struct {
	router *router.Router
	logger *zap.Logger
}

func New(r *router.Router, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{router: r, logger: logger}
}

func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("GET /{$}", s.handlePage)
	mux.HandleFunc("POST /items", s.eventHandler(func(r *http.Request, in signals) router.Event {
		return router.Event{Kind: router.Add, Text: in.NewItem}
	}))
	mux.HandleFunc("POST /items/{id}/toggle", s.itemHandler(router.Toggle))
	mux.HandleFunc("POST /items/{id}/delete", s.itemHandler(router.Delete))
	mux.HandleFunc("POST /items/{id}/edit", s.itemHandler(router.EditStart))
	mux.HandleFunc("POST /items/{id}/cancel", s.itemHandler(router.EditCancel))
	mux.HandleFunc("POST /items/{id}/save", s.eventHandler(func(r *http.Request, in signals) router.Event {
		return router.Event{Kind: router.EditSave, ID: r.PathValue("id"), Text: in.EditName}
	}))
	mux.HandleFunc("POST /filter/hide-completed", s.eventHandler(func(*http.Request, signals) router.Event {
		return router.Event{Kind: router.ToggleHideCompleted}
	}))
	mux.HandleFunc("POST /search", s.eventHandler(func(r *http.Request, in signals) router.Event {
		return router.Event{Kind: router.Search, Text: in.Search}
	}))
	mux.HandleFunc("POST /search/clear", s.eventHandler(func(*http.Request, signals) router.Event {
		return router.Event{Kind: router.ClearSearch}
	}))
	return mux
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = io.WriteString(w, "ok\n")
}

func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	var (
		page string
		err  error
	)
	s.router.Read(func(st *store.Store) {
		page, err = markup.RenderPage(st)
	})
	if err != nil {
		s.logger.Error("page render failed", zap.Error(err))
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = io.WriteString(w, page)
}

func (s *Server) itemHandler(kind router.Kind) http.HandlerFunc {
	return s.eventHandler(func(r *http.Request, _ signals) router.Event {
		return router.Event{Kind: kind, ID: r.PathValue("id")}
	})
}

// eventHandler reads the request input, dispatches the event built by
// build and answers with patches or a redirect.
func (s *Server) eventHandler(build func(*http.Request, signals) router.Event) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		in, err := readInput(r)
		if err != nil {
			s.logger.Info("bad request body", zap.String("path", r.URL.Path), zap.Error(err))
			http.Error(w, "invalid request body", http.StatusBadRequest)
			return
		}
		ev := build(r, in)

		var listHTML, clearHTML string
		_, err = s.router.DispatchRender(ev, func(st *store.Store) string {
			listHTML = markup.RenderListRegion(st)
			clearHTML = markup.RenderClearRegion(st)
			return ""
		})
		if err != nil {
			http.Error(w, err.Error(), statusFor(err))
			return
		}
		s.logger.Debug("event handled", zap.String("kind", string(ev.Kind)), zap.String("id", ev.ID))

		if !isDatastar(r) {
			http.Redirect(w, r, "/", http.StatusSeeOther)
			return
		}
		sse := datastar.NewSSE(w, r)
		if err := sse.PatchElements(listHTML,
			datastar.WithSelector(listSelector),
			datastar.WithMode(datastar.ElementPatchModeOuter)); err != nil {
			s.logger.Warn("patch list failed", zap.Error(err))
			return
		}
		if err := sse.PatchElements(clearHTML,
			datastar.WithSelector(clearSelector),
			datastar.WithMode(datastar.ElementPatchModeOuter)); err != nil {
			s.logger.Warn("patch clear control failed", zap.Error(err))
		}
	}
}

func isDatastar(r *http.Request) bool {
	return strings.EqualFold(r.Header.Get("Datastar-Request"), "true")
}

// readInput takes Datastar signals from the JSON body, or form fields from
// a plain post.
func readInput(r *http.Request) (signals, error) {
	var in signals
	if isDatastar(r) {
		if r.ContentLength == 0 {
			return in, nil
		}
		if err := datastar.ReadSignals(r, &in); err != nil {
			return in, fmt.Errorf("read signals: %w", err)
		}
		return in, nil
	}
	if err := r.ParseForm(); err != nil {
		return in, fmt.Errorf("parse form: %w", err)
	}
	in.NewItem = r.Form.Get("name")
	in.EditName = r.Form.Get("name")
	in.Search = r.Form.Get("search")
	return in, nil
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, store.ErrInvalidInput), errors.Is(err, router.ErrUnknownEvent):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

// Serve runs the HTTP server on ln until ctx is cancelled.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:      s.Handler(),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Serve(ln) }()
	s.logger.Info("shopping list is being served", zap.String("addr", ln.Addr().String()))

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server stopped unexpectedly: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	<-errCh
	s.logger.Info("server stopped")
	return nil
}

// ListenAndServe binds addr and calls Serve.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", addr, err)
	}
	return s.Serve(ctx, ln)
}
