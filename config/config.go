package config

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/spf13/cast"
	"gopkg.in/yaml.v3"
)

type SysConfig struct {
	Workdir  string `yaml:"workdir"`
	Location string `yaml:"location"`
	Debug    bool   `yaml:"debug"`
}

type WebConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

type LogConfig struct {
	Mode       string `yaml:"mode"` // development or production
	FileEnable bool   `yaml:"file_enable"`
	Filename   string `yaml:"filename"`
}

type StoreConfig struct {
	Filename string `yaml:"filename"` // relative to workdir unless absolute
	// Backup snapshot schedule, cron expression. Empty disables backups.
	BackupCron string `yaml:"backup_cron"`
	BackupKeep int    `yaml:"backup_keep"`
}

type OrdersConfig struct {
	// SnapshotPrice stores the product price on each order at placement
	// time. Off by default: reports then resolve prices live against the
	// current catalog, which is the storefront's historical behavior.
	SnapshotPrice bool `yaml:"snapshot_price"`
	// ReloadDelay is the cosmetic pause (seconds) the frontend waits after
	// a successful order before refreshing. Accepts loose YAML scalars.
	ReloadDelay interface{} `yaml:"reload_delay"`
}

type AppConfig struct {
	System SysConfig    `yaml:"system"`
	Web    WebConfig    `yaml:"web"`
	Logger LogConfig    `yaml:"logger"`
	Store  StoreConfig  `yaml:"store"`
	Orders OrdersConfig `yaml:"orders"`
}

// ReloadDelaySeconds coerces the loose reload_delay value, defaulting to
// the storefront's 2 second pause.
func (c *AppConfig) ReloadDelaySeconds() int {
	v := cast.ToInt(c.Orders.ReloadDelay)
	if v <= 0 {
		v = 2
	}
	return v
}

// StorePath resolves the bolt file location under the workdir.
func (c *AppConfig) StorePath() string {
	if filepath.IsAbs(c.Store.Filename) {
		return c.Store.Filename
	}
	return filepath.Join(c.System.Workdir, c.Store.Filename)
}

func DefaultConfig() *AppConfig {
	return &AppConfig{
		System: SysConfig{
			Workdir:  "/var/instashop",
			Location: "Europe/Istanbul",
		},
		Web: WebConfig{
			Host: "0.0.0.0",
			Port: 1899,
		},
		Logger: LogConfig{
			Mode:       "development",
			FileEnable: false,
			Filename:   "/var/instashop/instashop.log",
		},
		Store: StoreConfig{
			Filename:   "instashop.db",
			BackupCron: "@daily",
			BackupKeep: 7,
		},
	}
}

// LoadConfig reads the YAML file at path over the defaults. A missing file
// is not an error; the defaults run as-is.
func LoadConfig(path string) (*AppConfig, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, errors.Wrapf(err, "read config %s", path)
	}
	if err := yaml.Unmarshal(raw, cfg); err != nil {
		return nil, errors.Wrapf(err, "parse config %s", path)
	}
	return cfg, nil
}
