// Package cli wires the veil command line: configuration, logging, the rule
// store, use cases and sinks.
package cli

import (
	"context"
	"fmt"

	"github.com/bnema/veil/internal/application/port"
	"github.com/bnema/veil/internal/application/usecase"
	"github.com/bnema/veil/internal/cli/styles"
	"github.com/bnema/veil/internal/domain/build"
	"github.com/bnema/veil/internal/domain/entity"
	"github.com/bnema/veil/internal/domain/repository"
	"github.com/bnema/veil/internal/infrastructure/config"
	"github.com/bnema/veil/internal/infrastructure/metrics"
	"github.com/bnema/veil/internal/infrastructure/persistence/sqlite"
	"github.com/bnema/veil/internal/infrastructure/sink"
	"github.com/bnema/veil/internal/logging"
)

// App holds CLI dependencies.
type App struct {
	Config    *config.Config
	ConfigMgr *config.Manager
	Theme     *styles.Theme
	BuildInfo build.Info

	db   *sqlite.LazyDB
	Repo repository.RuleSetRepository

	// Changes is set by Live; one-shot commands leave it nil.
	Changes *sqlite.ChangeFeed
	Metrics *metrics.StylesheetMetrics

	// Use cases
	Rules    *usecase.ManageRulesUseCase
	Transfer *usecase.TransferRulesUseCase
	Apply    *usecase.ApplyStylesheetUseCase
	Preview  *usecase.PreviewStylesheetUseCase

	// Context with logger
	ctx context.Context
}

// NewApp creates a new CLI application with all dependencies. The database
// is opened on first use.
func NewApp() (*App, error) {
	mgr, cfg := loadConfig()

	logger := logging.NewFromConfigValues(cfg.Logging.Level, cfg.Logging.Format)
	ctx := logging.WithContext(context.Background(), logger)

	db := sqlite.NewLazyDB(cfg.Database.Path)
	a := &App{
		Config:    cfg,
		ConfigMgr: mgr,
		Theme:     styles.NewTheme(),
		db:        db,
		Metrics:   metrics.NewStylesheetMetrics(),
		ctx:       ctx,
	}

	out, err := NewOutputSink(cfg)
	if err != nil {
		return nil, err
	}
	a.wire(sqlite.NewLazyRuleSetRepository(db, nil), out)

	logger.Debug().
		Str("db_path", cfg.Database.Path).
		Str("output", cfg.Output.Path).
		Str("format", string(cfg.Output.Format)).
		Msg("app initialized")
	return a, nil
}

func (a *App) wire(repo repository.RuleSetRepository, out port.StylesheetSink) {
	a.Repo = repo
	a.Rules = usecase.NewManageRulesUseCase(repo)
	a.Transfer = usecase.NewTransferRulesUseCase(repo)
	a.Apply = usecase.NewApplyStylesheetUseCase(repo, out, a.Metrics)
	a.Preview = usecase.NewPreviewStylesheetUseCase(a.Rules, a.Apply)
}

// Live opens the database and rewires every use case on a repository that
// publishes its commits to a change feed, for commands that keep running.
// out replaces the configured file sink.
func (a *App) Live(ctx context.Context, out port.StylesheetSink) error {
	db, err := a.db.DB(ctx)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	a.Changes = sqlite.NewChangeFeed(db, a.db.Path())
	a.wire(sqlite.NewRuleSetRepository(db, a.Changes), out)
	return nil
}

// FollowOutput swaps the file sink whenever the output section of the config
// file changes, until ctx is done. wrap may combine the new file sink with
// other sinks. Requires Live.
func (a *App) FollowOutput(ctx context.Context, wrap func(*sink.FileSink) port.StylesheetSink) error {
	if a.ConfigMgr == nil || a.Changes == nil {
		<-ctx.Done()
		return nil
	}
	log := logging.FromContext(ctx)

	updates := make(chan *config.Config, 1)
	a.ConfigMgr.OnConfigChange(func(cfg *config.Config) {
		// Only the latest configuration matters.
		select {
		case <-updates:
		default:
		}
		updates <- cfg
	})
	if err := a.ConfigMgr.Watch(); err != nil {
		return fmt.Errorf("watch config: %w", err)
	}

	current := a.Config.Output
	for {
		select {
		case <-ctx.Done():
			return nil
		case cfg := <-updates:
			if cfg.Output == current {
				continue
			}
			out, err := NewOutputSink(cfg)
			if err != nil {
				log.Warn().Err(err).Msg("keeping previous output after config change")
				continue
			}
			current = cfg.Output
			a.Apply.SetSink(wrap(out))

			// The driver loop rewrites the new sink, so writes stay ordered.
			a.Changes.Publish(entity.AllRuleSetKeys()...)
			log.Info().
				Str("path", out.Path()).
				Str("format", string(cfg.Output.Format)).
				Msg("output switched")
		}
	}
}

// NewOutputSink creates the file sink described by cfg.Output.
func NewOutputSink(cfg *config.Config) (*sink.FileSink, error) {
	out, err := sink.NewFileSink(cfg.Output.Path, sink.Format(cfg.Output.Format), cfg.Output.StyleID)
	if err != nil {
		return nil, fmt.Errorf("create output sink: %w", err)
	}
	return out, nil
}

// Close releases all resources.
func (a *App) Close() error {
	if a.db != nil {
		return a.db.Close()
	}
	return nil
}

// Ctx returns the application context with logger.
func (a *App) Ctx() context.Context {
	return a.ctx
}

// loadConfig loads configuration from standard locations, falling back to
// defaults when the file cannot be read.
func loadConfig() (*config.Manager, *config.Config) {
	mgr, err := config.NewManager()
	if err != nil {
		return nil, fallbackConfig()
	}

	if err := mgr.Load(); err != nil {
		logger := logging.NewFromEnv()
		logger.Warn().Err(err).Msg("invalid config, using defaults")
		return mgr, fallbackConfig()
	}

	return mgr, mgr.Get()
}

func fallbackConfig() *config.Config {
	cfg := config.DefaultConfig()
	if path, err := config.GetDatabaseFile(); err == nil {
		cfg.Database.Path = path
	}
	if path, err := config.GetOutputFile(cfg.Output.Format); err == nil {
		cfg.Output.Path = path
	}
	return cfg
}
