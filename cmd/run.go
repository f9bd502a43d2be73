package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/abhisek/drillz/internal/app"
	"github.com/abhisek/drillz/internal/config"
	"github.com/abhisek/drillz/internal/scenario"
	"github.com/abhisek/drillz/internal/store"
	"github.com/abhisek/drillz/internal/trainer"
)

// runtime is everything a command needs to act for one user.
type runtime struct {
	cfg     config.Config
	store   *store.Store
	trainer *trainer.Trainer
	log     *slog.Logger
	closers []io.Closer
}

func (r *runtime) Close() {
	for i := len(r.closers) - 1; i >= 0; i-- {
		_ = r.closers[i].Close()
	}
}

// openRuntime loads configuration, opens the store and builds a trainer.
// logOut receives logs; the TUI passes nil to route them to DRILLZ_LOG_FILE.
func openRuntime(cmd *cobra.Command, logOut io.Writer) (*runtime, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	r := &runtime{cfg: cfg}

	if logOut == nil {
		logOut = io.Discard
		if cfg.LogFile != "" {
			f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
			if err != nil {
				return nil, fmt.Errorf("open log file: %w", err)
			}
			r.closers = append(r.closers, f)
			logOut = f
		}
	}
	r.log = cfg.NewLogger(logOut)

	dsn, err := cfg.DSN()
	if err != nil {
		r.Close()
		return nil, fmt.Errorf("resolve database: %w", err)
	}
	st, err := store.Open(cfg.DBDriver, dsn)
	if err != nil {
		r.Close()
		return nil, fmt.Errorf("open store: %w", err)
	}
	r.store = st
	r.closers = append(r.closers, st)

	content, err := contentSource(cfg, st)
	if err != nil {
		r.Close()
		return nil, err
	}

	r.trainer = trainer.New(trainer.Config{
		UserID:        cfg.UserID,
		Store:         st,
		Content:       content,
		DailyCap:      cfg.DailyCap,
		RewardTimeout: cfg.RewardTimeout,
		SessionLength: cfg.SessionLength,
		Logger:        r.log,
	})
	return r, nil
}

// contentSource layers an optional content pack over generated scenarios
// in the cache and the built-in library.
func contentSource(cfg config.Config, st *store.Store) (scenario.Source, error) {
	var chain scenario.ChainSource
	if cfg.Content != "" {
		pack, err := scenario.LoadPackSource(cfg.Content)
		if err != nil {
			return nil, fmt.Errorf("load content pack: %w", err)
		}
		chain = append(chain, pack)
	}
	chain = append(chain, scenario.BuiltinLibrary(), scenario.CacheSource{Reader: st})
	return chain, nil
}

// runApp launches the terminal UI, optionally jumping straight into a level.
func runApp(cmd *cobra.Command, levelID string) error {
	rt, err := openRuntime(cmd, nil)
	if err != nil {
		return err
	}
	defer rt.Close()

	return app.Run(cmd.Context(), app.Options{
		Trainer: rt.trainer,
		LevelID: levelID,
		Logger:  rt.log,
	})
}
