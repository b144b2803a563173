package app

import (
	"os"
	"time"
	_ "time/tzdata"

	"github.com/bwmarrin/snowflake"
	"github.com/pkg/errors"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"

	"instashop/config"
	"instashop/internal/catalog"
	"instashop/internal/export"
	"instashop/internal/ordering"
	"instashop/internal/store"
)

type Application struct {
	appConfig *config.AppConfig
	store     store.Store
	catalog   *catalog.Manager
	recorder  *ordering.Recorder
	exporter  *export.Exporter
	sched     *cron.Cron
}

// Ensure Application satisfies the handler-facing providers
var (
	_ StoreProvider    = (*Application)(nil)
	_ CatalogProvider  = (*Application)(nil)
	_ RecorderProvider = (*Application)(nil)
	_ ExporterProvider = (*Application)(nil)
)

func NewApplication(appConfig *config.AppConfig) *Application {
	return &Application{appConfig: appConfig}
}

func (a *Application) Config() *config.AppConfig    { return a.appConfig }
func (a *Application) Store() store.Store           { return a.store }
func (a *Application) Catalog() *catalog.Manager    { return a.catalog }
func (a *Application) Recorder() *ordering.Recorder { return a.recorder }
func (a *Application) Exporter() *export.Exporter   { return a.exporter }
func (a *Application) ReloadDelaySeconds() int      { return a.appConfig.ReloadDelaySeconds() }

// OverrideStore replaces the application's store (used in tests).
func (a *Application) OverrideStore(st store.Store) {
	a.store = st
}

func (a *Application) Init() error {
	cfg := a.appConfig

	loc, err := time.LoadLocation(cfg.System.Location)
	if err != nil {
		zap.S().Error("timezone config error")
	} else {
		time.Local = loc
	}

	initLogger(cfg)

	if err := os.MkdirAll(cfg.System.Workdir, 0o755); err != nil {
		return errors.Wrap(err, "create workdir")
	}

	bs, err := store.OpenBolt(cfg.StorePath())
	if err != nil {
		return err
	}
	a.store = bs
	zap.S().Infof("store opened: %s", cfg.StorePath())

	node, err := snowflake.NewNode(1)
	if err != nil {
		return errors.Wrap(err, "init id generator")
	}

	a.catalog = catalog.NewManager(a.store, node)
	a.recorder = ordering.NewRecorder(a.store, node, cfg.Orders.SnapshotPrice)
	a.exporter = export.New()

	// one-time sample catalog and default site name
	if err := a.catalog.Bootstrap(); err != nil {
		zap.S().Errorf("bootstrap failed: %v", err)
	}

	a.initJobs()
	return nil
}

func initLogger(cfg *config.AppConfig) {
	var zapConfig zap.Config
	if cfg.Logger.Mode == "production" {
		zapConfig = zap.NewProductionConfig()
	} else {
		zapConfig = zap.NewDevelopmentConfig()
	}

	var logger *zap.Logger
	if cfg.Logger.FileEnable {
		lumberJackLogger := &lumberjack.Logger{
			Filename:   cfg.Logger.Filename,
			MaxSize:    64,
			MaxBackups: 7,
			MaxAge:     7,
			Compress:   false,
		}
		core := zapcore.NewTee(
			zapcore.NewCore(
				zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()),
				zapcore.AddSync(lumberJackLogger),
				zapConfig.Level,
			),
			zapcore.NewCore(
				zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig()),
				zapcore.AddSync(os.Stdout),
				zapConfig.Level,
			),
		)
		logger = zap.New(core, zap.AddCaller())
	} else {
		var err error
		logger, err = zapConfig.Build(zap.AddCaller())
		if err != nil {
			panic(err)
		}
	}

	zap.ReplaceGlobals(logger)
}

// Release frees application resources.
func (a *Application) Release() {
	if a.sched != nil {
		a.sched.Stop()
	}
	if a.store != nil {
		_ = a.store.Close()
	}
	_ = zap.L().Sync()
}
