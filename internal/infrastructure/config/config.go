package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration. It mirrors the settings object
// carried next to the persisted state: the current-year pointer lives here,
// not in the state tree.
type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Backup   BackupConfig
	Log      LogConfig
	Company  CompanyInfo
}

// AppConfig holds application-level settings
type AppConfig struct {
	Theme              string // light, dark
	CurrentYear        int
	AIAssistantEnabled bool
}

// DatabaseConfig holds the snapshot-store settings
type DatabaseConfig struct {
	Path          string // sqlite file path, ":memory:" for tests
	KeepSnapshots int    // snapshots retained by pruning
}

// BackupConfig holds backup export/import settings
type BackupConfig struct {
	Dir string
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string // debug, info, warn, error
	Format string // json, console
	Output string // stdout, stderr, or file path
}

// CompanyInfo is the letterhead data rendered by the presentation layer
type CompanyInfo struct {
	Name    string
	Address string
	VATCode string
	Email   string
	Phone   string
}

// Load reads configuration from essenza.yaml (working directory) and
// ESSENZA_* environment variables, falling back to defaults.
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName("essenza")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.SetEnvPrefix("ESSENZA")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if cfg.App.CurrentYear == 0 {
		cfg.App.CurrentYear = time.Now().Year()
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.theme", "light")
	v.SetDefault("app.aiassistantenabled", false)
	v.SetDefault("database.path", "essenza.db")
	v.SetDefault("database.keepsnapshots", 50)
	v.SetDefault("backup.dir", "backups")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
	v.SetDefault("log.output", "stderr")
}
