// Package cli implements the habitflow command line surface. Each command
// opens a session against the local document database, applies its
// mutations through the state store, and lets the sync engine flush the
// result on exit.
package cli

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	User       string
	DB         string
	Stash      string
	ConfigPath string
	Verbose    bool
	Format     string // "json" | "text"

	// Debounce is resolved from the config file; the CLI flushes on exit
	// so there is no flag for it.
	Debounce time.Duration
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command for the habitflow CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "habitflow",
		Short: "habitflow - habit and study tracking",
		Long: `Track recurring habits and study sessions in a local document database,
with XP, levels, streaks, and badges derived from your history.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !isValidFormat(opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}
			if err := opts.resolve(); err != nil {
				return err
			}
			configureLogging(opts.Verbose)
			return nil
		},
	}

	cmd.PersistentFlags().StringVarP(&opts.User, "user", "u", "", "user id owning the document")
	cmd.PersistentFlags().StringVar(&opts.DB, "db", "", "path to the document database (default ~/.habitflow/habitflow.db)")
	cmd.PersistentFlags().StringVar(&opts.Stash, "stash", "", "path to the recovery stash (default ~/.habitflow/stash.db)")
	cmd.PersistentFlags().StringVar(&opts.ConfigPath, "config", "", "path to config file (default ~/.habitflow.yaml)")
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")

	cmd.AddCommand(NewStatusCommand(opts))
	cmd.AddCommand(NewTodayCommand(opts))
	cmd.AddCommand(NewToggleCommand(opts))
	cmd.AddCommand(NewStudyCommand(opts))
	cmd.AddCommand(NewHabitCommand(opts))
	cmd.AddCommand(NewStatsCommand(opts))
	cmd.AddCommand(NewRecalcCommand(opts))
	cmd.AddCommand(NewSignOutCommand(opts))

	return cmd
}

// resolve merges the config file under the flags and fills path defaults.
func (o *RootOptions) resolve() error {
	path := o.ConfigPath
	if path == "" {
		path = DefaultConfigPath()
	}
	cfg, err := LoadFileConfig(path)
	if err != nil {
		return err
	}

	if o.User == "" {
		o.User = cfg.User
	}
	if o.DB == "" {
		o.DB = cfg.DB
	}
	if o.Stash == "" {
		o.Stash = cfg.Stash
	}
	if cfg.DebounceMS > 0 {
		o.Debounce = time.Duration(cfg.DebounceMS) * time.Millisecond
	}

	if o.DB == "" || o.Stash == "" {
		dir, err := dataDir()
		if err != nil {
			return err
		}
		if o.DB == "" {
			o.DB = dir + "/habitflow.db"
		}
		if o.Stash == "" {
			o.Stash = dir + "/stash.db"
		}
	}
	return nil
}

func configureLogging(verbose bool) {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	slog.SetDefault(slog.New(handler))
}

func isValidFormat(format string) bool {
	for _, f := range ValidFormats {
		if f == format {
			return true
		}
	}
	return false
}
