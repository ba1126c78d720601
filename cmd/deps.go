package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/abhisek/examiz/internal/bank"
	"github.com/abhisek/examiz/internal/config"
	"github.com/abhisek/examiz/internal/exam"
	"github.com/abhisek/examiz/internal/llm"
	"github.com/abhisek/examiz/internal/logging"
	"github.com/abhisek/examiz/internal/profile"
	"github.com/abhisek/examiz/internal/screen"
	"github.com/abhisek/examiz/internal/session"
	"github.com/abhisek/examiz/internal/store"
	"github.com/abhisek/examiz/internal/tutor"
)

// deps holds everything a command may need. Close releases it all.
type deps struct {
	cfg    *config.Config
	dbPath string
	logger *logging.Logger
	store  *store.Store
	stats  store.StatsRepo
	bank   *bank.Bank

	closers []io.Closer
}

// loadConfig reads the environment and applies persistent flag overrides.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		cfg.DBPath = p
	}
	if p, _ := cmd.Flags().GetString("bank"); p != "" {
		cfg.BankPath = p
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// resolveDBPath returns the configured database path, or the default XDG
// path, making sure its directory exists.
func resolveDBPath(cfg *config.Config) (string, error) {
	if cfg.DBPath != "" {
		return cfg.DBPath, store.EnsureDir(cfg.DBPath)
	}
	return store.DefaultDBPath()
}

// openDeps opens the logger, the store, the stats backend and the bank.
func openDeps(cmd *cobra.Command) (*deps, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	dbPath, err := resolveDBPath(cfg)
	if err != nil {
		return nil, fmt.Errorf("resolve DB path: %w", err)
	}

	logger, err := logging.New(cfg.ResolveLogFile(dbPath), cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("open log: %w", err)
	}
	d := &deps{cfg: cfg, dbPath: dbPath, logger: logger}

	st, err := store.Open(dbPath, logger)
	if err != nil {
		d.Close()
		return nil, fmt.Errorf("open store: %w", err)
	}
	d.store = st
	d.closers = append(d.closers, st)
	d.stats = st.StatsRepo()

	if cfg.StatsBackend == config.BackendRedis {
		rs, err := store.NewRedisStatsRepo(cmd.Context(), cfg.RedisAddr, cfg.RedisKey, logger)
		if err != nil {
			d.Close()
			return nil, fmt.Errorf("open redis stats: %w", err)
		}
		d.stats = rs
		d.closers = append(d.closers, rs)
	}

	b, err := bank.LoadOrDefault(cfg.BankPath)
	if err != nil {
		d.Close()
		return nil, fmt.Errorf("load bank: %w", err)
	}
	if b.Len() == 0 {
		d.Close()
		return nil, errors.New("question bank has no questions")
	}
	d.bank = b
	return d, nil
}

// Close releases resources in reverse order of acquisition.
func (d *deps) Close() {
	for i := len(d.closers) - 1; i >= 0; i-- {
		if err := d.closers[i].Close(); err != nil {
			d.logger.Warn("close failed", "error", err)
		}
	}
	d.logger.Sync()
}

func (d *deps) baseline() profile.Profile {
	return profile.BaselineFromBank(d.bank)
}

// sessionDefaults turns configured mode, focus and count into session options.
func (d *deps) sessionDefaults() (session.Options, error) {
	mode, err := session.ParseMode(d.cfg.Mode)
	if err != nil {
		return session.Options{}, err
	}
	focus, err := bank.ParseFocus(d.cfg.Focus, d.bank)
	if err != nil {
		return session.Options{}, err
	}
	return session.Options{Mode: mode, Focus: focus, Count: d.cfg.Count}, nil
}

// provider builds the LLM provider when one is configured. ok is false
// when none is.
func (d *deps) provider(ctx context.Context) (llm.Provider, llm.Config, bool, error) {
	cfg, ok := llm.ResolveConfig()
	if !ok {
		return nil, llm.Config{}, false, nil
	}
	p, err := llm.NewProvider(ctx, cfg, d.store.EventRepo(), d.logger)
	if err != nil {
		return nil, cfg, false, err
	}
	return p, cfg, true, nil
}

// services wires the TUI dependencies.
func (d *deps) services(ctx context.Context) (*screen.Services, error) {
	defaults, err := d.sessionDefaults()
	if err != nil {
		return nil, err
	}
	svc := &screen.Services{
		Bank:     d.bank,
		Source:   exam.NewBuilder(d.bank, d.logger),
		Stats:    d.stats,
		Events:   d.store.EventRepo(),
		Logger:   d.logger,
		Defaults: defaults,
		Baseline: d.baseline(),
	}

	p, llmCfg, ok, err := d.provider(ctx)
	switch {
	case err != nil:
		d.logger.Warn("llm provider unavailable", "error", err)
	case ok:
		cfg := tutor.DefaultExplainConfig()
		cfg.Timeout = llmCfg.Timeout
		svc.Explainer = tutor.NewExplainer(p, cfg, d.logger)
	}
	return svc, nil
}
