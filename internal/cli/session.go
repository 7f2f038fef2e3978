package cli

import (
	"context"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/roach88/habitflow/internal/engine"
	"github.com/roach88/habitflow/internal/stash"
	"github.com/roach88/habitflow/internal/state"
	"github.com/roach88/habitflow/internal/store"
)

// Session bundles the open database handles, the state store, and the
// running sync engine for one CLI invocation.
type Session struct {
	Opts   *RootOptions
	Store  *state.Store
	Engine *engine.Engine
	Out    *OutputFormatter

	remote *store.SQLiteRemote
	stash  *stash.Stash
}

// OpenSession opens the databases and starts a sync session for the
// configured user. Callers must Close it to flush pending writes.
func OpenSession(cmd *cobra.Command, opts *RootOptions) (*Session, error) {
	if opts.User == "" {
		return nil, NewExitError(ExitCommandError, "no user configured: pass --user or set it in the config file")
	}

	remote, err := store.Open(opts.DB)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "open database", err)
	}

	sh, err := stash.Open(opts.Stash)
	if err != nil {
		remote.Close()
		return nil, WrapExitError(ExitCommandError, "open stash", err)
	}

	st := state.New(slog.Default())
	eng := engine.New(engine.Config{
		Remote:   remote,
		Store:    st,
		Stash:    sh,
		Logger:   slog.Default(),
		Debounce: opts.Debounce,
	})

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	if err := eng.Start(ctx, opts.User); err != nil {
		sh.Close()
		remote.Close()
		return nil, WrapExitError(ExitCommandError, "start session", err)
	}

	return &Session{
		Opts:   opts,
		Store:  st,
		Engine: eng,
		Out:    &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()},
		remote: remote,
		stash:  sh,
	}, nil
}

// Close flushes pending writes and releases the database handles.
func (s *Session) Close() error {
	err := s.Engine.Close(context.Background())
	if cerr := s.stash.Close(); err == nil {
		err = cerr
	}
	if cerr := s.remote.Close(); err == nil {
		err = cerr
	}
	return err
}
