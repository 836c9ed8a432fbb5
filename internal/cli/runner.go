package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/idilsaglam/shoplist/internal/config"
	"github.com/idilsaglam/shoplist/internal/id"
	"github.com/idilsaglam/shoplist/internal/logging"
	"github.com/idilsaglam/shoplist/internal/markup"
	"github.com/idilsaglam/shoplist/internal/router"
	"github.com/idilsaglam/shoplist/internal/store"
	"github.com/idilsaglam/shoplist/internal/tui"
	"github.com/idilsaglam/shoplist/internal/ui"
	"github.com/idilsaglam/shoplist/internal/web"
)

// Version is set at build time with -ldflags.
var Version = "dev"

// Exit codes: 0 ok, 1 runtime error, 2 usage or rejected input.
const (
	exitOK    = 0
	exitError = 1
	exitUsage = 2
)

// usageError marks failures caused by what the user typed.
type usageError struct{ err error }

func (e usageError) Error() string { return e.err.Error() }
func (e usageError) Unwrap() error { return e.err }

// Run executes the command line and returns the process exit code.
func Run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	cmd := NewRootCmd(stdout, stderr)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(ctx)
	if err == nil {
		return exitOK
	}
	ui.Fail(stderr, err.Error())

	var ue usageError
	if errors.As(err, &ue) || store.IsInvalidInput(err) || store.IsNotFound(err) || isFlagError(err) {
		return exitUsage
	}
	return exitError
}

// cobra reports flag and argument problems as plain errors.
func isFlagError(err error) bool {
	msg := err.Error()
	for _, p := range []string{"unknown flag", "unknown shorthand", "unknown command", "flag needs an argument", "invalid argument", "accepts "} {
		if strings.Contains(msg, p) {
			return true
		}
	}
	return false
}

type rootFlags struct {
	configPath string
	verbose    bool
	color      bool
	noColor    bool
}

type app struct {
	cfg    config.Config
	logger *zap.Logger
	store  *store.Store
	router *router.Router
}

// setup loads config, applies the theme and builds the store and router.
// A TUI logger never writes to the terminal.
func setup(flags *rootFlags, forTUI bool) (*app, error) {
	cfg, err := config.Load(flags.configPath)
	if err != nil {
		return nil, usageError{err}
	}
	if flags.verbose {
		cfg.Logging.Level = "debug"
	}
	ui.SetTheme(cfg.Theme)
	if flags.color || flags.noColor {
		ui.SetColorForcing(flags.color, flags.noColor)
	}

	var logger *zap.Logger
	if forTUI {
		logger, err = logging.ForTerminalUI(cfg.Logging)
	} else {
		logger, err = logging.New(cfg.Logging)
	}
	if err != nil {
		return nil, err
	}

	st := store.New(id.UUID{},
		store.WithInsertPosition(cfg.InsertPosition()),
		store.WithSeeds(cfg.StoreSeeds()),
	)
	return &app{
		cfg:    cfg,
		logger: logger,
		store:  st,
		router: router.New(st, logger),
	}, nil
}

func (a *app) close() { _ = a.logger.Sync() }

func NewRootCmd(stdout, stderr io.Writer) *cobra.Command {
	flags := &rootFlags{}

	root := &cobra.Command{
		Use:   "shoplist",
		Short: "shoplist - a tiny shopping list",
		Long: `shoplist keeps a shopping list in memory.

Run without arguments to start the interactive terminal UI.
The list lives for as long as the process does.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(flags)
		},
	}
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.PersistentFlags().StringVar(&flags.configPath, "config", "", "path to a YAML config file")
	root.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "debug logging")
	root.PersistentFlags().BoolVar(&flags.color, "color", false, "force ANSI colors")
	root.PersistentFlags().BoolVar(&flags.noColor, "no-color", false, "disable ANSI colors")

	root.AddCommand(
		newTUICmd(flags),
		newServeCmd(flags),
		newListCmd(flags),
		newRenderCmd(flags),
		newVersionCmd(),
	)
	return root
}

func newTUICmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Interactive terminal UI",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(flags)
		},
	}
}

func runTUI(flags *rootFlags) error {
	a, err := setup(flags, true)
	if err != nil {
		return err
	}
	defer a.close()
	if err := tui.Run(a.router); err != nil {
		return fmt.Errorf("tui: %w", err)
	}
	return nil
}

func newServeCmd(flags *rootFlags) *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the list as a web page",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := setup(flags, false)
			if err != nil {
				return err
			}
			defer a.close()
			if addr == "" {
				addr = a.cfg.Web.Addr
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			if err := web.New(a.router, a.logger).ListenAndServe(ctx, addr); err != nil {
				return err
			}
			ui.OK(cmd.ErrOrStderr(), "server stopped")
			return nil
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, :8080)")
	return cmd
}

// script holds the one-shot edits ls and render apply before printing.
type script struct {
	add           []string
	check         []string
	remove        []string
	rename        []string
	hideCompleted bool
	search        string
}

func (sc *script) bind(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringArrayVar(&sc.add, "add", nil, "add an item (repeatable)")
	f.StringArrayVar(&sc.check, "check", nil, "toggle the item with this name (repeatable)")
	f.StringArrayVar(&sc.remove, "rm", nil, "delete the item with this name (repeatable)")
	f.StringArrayVar(&sc.rename, "rename", nil, "rename an item: old=new (repeatable)")
	f.BoolVar(&sc.hideCompleted, "hide-completed", false, "hide checked items")
	f.StringVar(&sc.search, "search", "", "only show names containing this text")
}

// apply turns the flags into router events. Names are resolved against
// the store at the time each event runs.
func (sc *script) apply(r *router.Router) error {
	for _, name := range sc.add {
		if err := r.Dispatch(router.Event{Kind: router.Add, Text: name}); err != nil {
			return fmt.Errorf("add: %w", err)
		}
	}
	for _, name := range sc.check {
		itemID, err := lookup(r, name)
		if err != nil {
			return fmt.Errorf("check: %w", err)
		}
		if err := r.Dispatch(router.Event{Kind: router.Toggle, ID: itemID}); err != nil {
			return fmt.Errorf("check: %w", err)
		}
	}
	for _, pair := range sc.rename {
		oldName, newName, ok := strings.Cut(pair, "=")
		if !ok {
			return usageError{fmt.Errorf("rename: want old=new, got %q", pair)}
		}
		itemID, err := lookup(r, oldName)
		if err != nil {
			return fmt.Errorf("rename: %w", err)
		}
		if err := r.Dispatch(router.Event{Kind: router.EditSave, ID: itemID, Text: newName}); err != nil {
			return fmt.Errorf("rename: %w", err)
		}
	}
	for _, name := range sc.remove {
		itemID, err := lookup(r, name)
		if err != nil {
			return fmt.Errorf("rm: %w", err)
		}
		_ = r.Dispatch(router.Event{Kind: router.Delete, ID: itemID})
	}
	if err := r.Dispatch(router.Event{Kind: router.SetHideCompleted, Flag: sc.hideCompleted}); err != nil {
		return err
	}
	return r.Dispatch(router.Event{Kind: router.Search, Text: sc.search})
}

// lookup finds the first item whose name matches exactly.
func lookup(r *router.Router, name string) (string, error) {
	var found string
	r.Read(func(s *store.Store) {
		for _, it := range s.Items() {
			if it.Name == name {
				found = it.ID
				return
			}
		}
	})
	if found == "" {
		return "", &store.Error{Op: "lookup", ID: name, Err: store.ErrNotFound}
	}
	return found, nil
}

func newListCmd(flags *rootFlags) *cobra.Command {
	sc := &script{}
	cmd := &cobra.Command{
		Use:   "ls",
		Short: "Print the list as a panel",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := setup(flags, false)
			if err != nil {
				return err
			}
			defer a.close()
			if err := sc.apply(a.router); err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), a.router.Render(ui.ListPanel))
			return nil
		},
	}
	sc.bind(cmd)
	return cmd
}

func newRenderCmd(flags *rootFlags) *cobra.Command {
	sc := &script{}
	var page bool
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Print the list as HTML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := setup(flags, false)
			if err != nil {
				return err
			}
			defer a.close()
			if err := sc.apply(a.router); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if page {
				var html string
				a.router.Read(func(s *store.Store) { html, err = markup.RenderPage(s) })
				if err != nil {
					return fmt.Errorf("render page: %w", err)
				}
				fmt.Fprint(out, html)
				return nil
			}
			fmt.Fprint(out, a.router.Render(func(s *store.Store) string {
				return markup.RenderClearControl(s) + markup.RenderVisible(s)
			}))
			return nil
		},
	}
	sc.bind(cmd)
	cmd.Flags().BoolVar(&page, "page", false, "print a full HTML document")
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "shoplist %s\n", Version)
		},
	}
}
