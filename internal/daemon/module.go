package daemon

import (
	"context"

	"github.com/matheus3301/easekit/internal/api"
	"github.com/matheus3301/easekit/internal/bus"
	"github.com/matheus3301/easekit/internal/config"
	"github.com/matheus3301/easekit/internal/digest"
	"github.com/matheus3301/easekit/internal/i18n"
	"github.com/matheus3301/easekit/internal/ingest"
	"github.com/matheus3301/easekit/internal/lock"
	"github.com/matheus3301/easekit/internal/logging"
	"github.com/matheus3301/easekit/internal/netwatch"
	"github.com/matheus3301/easekit/internal/platform"
	"github.com/matheus3301/easekit/internal/profile"
	"github.com/matheus3301/easekit/internal/status"
	"github.com/matheus3301/easekit/internal/store"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// Params holds the resolved profile configuration passed to the fx module.
type Params struct {
	ProfileName string
	SocketPath  string // optional override for testing; empty = use default
	ConfigPath  string // optional override; empty = ~/.easekit/config.toml
}

// Module returns the fx module for the daemon, composing all providers and lifecycle hooks.
func Module(p Params) fx.Option {
	return fx.Module("daemon",
		fx.Supply(p),
		fx.Provide(
			provideConfig,
			provideLogger,
			provideBus,
			provideStateMachine,
			provideLock,
			provideStore,
			provideCatalog,
			provideFormatter,
			provideEnvironment,
			provideEngine,
			provideMonitor,
			provideConfigWatcher,
			provideContactService,
			provideConversationService,
			provideMessageService,
			provideDeviceService,
			NewServer,
		),
		fx.Invoke(registerLifecycle),
	)
}

func configPath(p Params) string {
	if p.ConfigPath != "" {
		return p.ConfigPath
	}
	return profile.ConfigPath()
}

func provideConfig(p Params) (*config.Config, error) {
	return config.LoadOrDefault(configPath(p))
}

func provideLogger(p Params, cfg *config.Config) (*zap.Logger, error) {
	return logging.New(profile.LogPath(p.ProfileName), p.ProfileName, cfg.Log.Level)
}

func provideBus() *bus.Bus {
	return bus.New()
}

func provideStateMachine(b *bus.Bus) *status.Machine {
	return status.NewMachine(b)
}

func provideLock(p Params, logger *zap.Logger) (*lock.Lock, error) {
	if err := profile.EnsureDir(p.ProfileName); err != nil {
		return nil, err
	}
	logger.Info("acquiring profile lock", zap.String("profile", p.ProfileName))
	l, err := lock.Acquire(profile.Dir(p.ProfileName))
	if err != nil {
		return nil, err
	}
	logger.Info("profile lock acquired")
	return l, nil
}

// provideStore takes the lock so the database is never opened by a second daemon.
func provideStore(p Params, _ *lock.Lock, logger *zap.Logger) (*store.DB, error) {
	dbPath := profile.DBPath(p.ProfileName)
	db, err := store.Open(dbPath)
	if err != nil {
		return nil, err
	}
	result, err := db.Migrate()
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	if result.Changed {
		logger.Info("migrations applied", zap.Uint("version", result.Version))
	} else {
		logger.Info("migrations up to date", zap.Uint("version", result.Version))
	}
	logger.Info("store initialized", zap.String("path", dbPath))
	return db, nil
}

func provideCatalog(cfg *config.Config, logger *zap.Logger) (*i18n.Catalog, error) {
	c, err := i18n.Load(cfg.Locale)
	if err != nil {
		return nil, err
	}
	logger.Info("string catalog loaded", zap.String("locale", cfg.Locale), zap.Int("strings", c.Len()))
	return c, nil
}

func provideFormatter(c *i18n.Catalog, db *store.DB, logger *zap.Logger) *digest.Formatter {
	return digest.New(c, db, logger.Named("digest"))
}

func provideEnvironment(cfg *config.Config) *platform.Environment {
	return &platform.Environment{
		Connectivity: platform.NewHostConnectivity(),
		Storage:      platform.NewMountStorage(cfg.Storage.ExternalPath),
		Display:      &platform.StaticDisplay{Metrics: cfg.Display},
		Foreground:   platform.NewHostForeground(),
	}
}

func provideEngine(db *store.DB, f *digest.Formatter, b *bus.Bus, logger *zap.Logger) *ingest.Engine {
	return ingest.NewEngine(db, f, b, logger.Named("ingest"))
}

func provideMonitor(env *platform.Environment, m *status.Machine, cfg *config.Config, logger *zap.Logger) *netwatch.Monitor {
	return netwatch.NewMonitor(env.Connectivity, m, cfg.Network.ProbeInterval(), logger.Named("netwatch"))
}

// provideConfigWatcher applies display and storage changes without a restart.
// Locale, probe interval and log level are read once at startup.
func provideConfigWatcher(p Params, env *platform.Environment, b *bus.Bus, logger *zap.Logger) *config.Watcher {
	return config.NewWatcher(configPath(p), func(cfg *config.Config) {
		if d, ok := env.Display.(*platform.StaticDisplay); ok {
			d.Set(cfg.Display)
		}
		if s, ok := env.Storage.(*platform.MountStorage); ok {
			s.SetPath(cfg.Storage.ExternalPath)
		}
		b.Publish(bus.NewEvent(bus.KindConfig, cfg.Display))
	}, logger.Named("config"))
}

func provideContactService(db *store.DB, b *bus.Bus) *api.ContactService {
	return api.NewContactService(db, b)
}

func provideConversationService(db *store.DB) *api.ConversationService {
	return api.NewConversationService(db)
}

func provideMessageService(p Params, db *store.DB, engine *ingest.Engine, f *digest.Formatter, b *bus.Bus, logger *zap.Logger) *api.MessageService {
	return api.NewMessageService(p.ProfileName, db, engine, f, b, logger)
}

func provideDeviceService(p Params, cfg *config.Config, env *platform.Environment, m *status.Machine, db *store.DB) *api.DeviceService {
	return api.NewDeviceService(p.ProfileName, cfg.Locale, env, m, db)
}

func registerLifecycle(lc fx.Lifecycle, srv *Server, lk *lock.Lock, db *store.DB, engine *ingest.Engine, monitor *netwatch.Monitor, watcher *config.Watcher, logger *zap.Logger) {
	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			// Start ingest engine (subscribes to inbound.* bus events).
			engine.Start(context.Background())

			// Start gRPC server in background.
			go func() {
				if err := srv.Start(); err != nil {
					logger.Error("gRPC server error", zap.Error(err))
				}
			}()

			// First probe moves the machine out of BOOTING.
			monitor.Start(context.Background())

			if err := watcher.Start(); err != nil {
				logger.Warn("config reload disabled", zap.Error(err))
			}
			return nil
		},
		OnStop: func(ctx context.Context) error {
			_ = watcher.Stop()
			monitor.Stop()
			engine.Stop()
			srv.Stop(ctx)
			if err := db.Close(); err != nil {
				logger.Warn("error closing store", zap.Error(err))
			}
			if err := lk.Release(); err != nil {
				logger.Warn("error releasing lock", zap.Error(err))
			}
			logger.Info("daemon stopped")
			return nil
		},
	})
}
