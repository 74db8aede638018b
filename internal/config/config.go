package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

// Backend names accepted by general.backend
const (
	BackendLocal = "local"
	BackendR2    = "r2"
)

// Config holds the complete application configuration
type Config struct {
	Log     LogConfig     `mapstructure:"log"`
	General GeneralConfig `mapstructure:"general"`
	UI      UIConfig      `mapstructure:"ui"`
	R2      R2Config      `mapstructure:"r2"`
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	File   string `mapstructure:"file"`
}

// GeneralConfig holds general application configuration
type GeneralConfig struct {
	StartDir         string `mapstructure:"start_dir"`
	RestoreLastDir   bool   `mapstructure:"restore_last_dir"`
	Backend          string `mapstructure:"backend"`
	OperationTimeout int    `mapstructure:"operation_timeout"`
}

// UIConfig holds user interface configuration
type UIConfig struct {
	ShowHidden      bool  `mapstructure:"show_hidden"`
	Dark            bool  `mapstructure:"dark"`
	ConfirmDelete   bool  `mapstructure:"confirm_delete"`
	Watch           bool  `mapstructure:"watch"`
	PreviewMaxBytes int64 `mapstructure:"preview_max_bytes"`
	PreviewWidth    int   `mapstructure:"preview_width"`
}

// R2Config holds R2/S3 specific configuration
type R2Config struct {
	AccountID       string `mapstructure:"account_id"`
	AccessKeyID     string `mapstructure:"access_key_id"`
	AccessKeySecret string `mapstructure:"access_key_secret"`
	BucketName      string `mapstructure:"bucket_name"`
	Endpoint        string `mapstructure:"endpoint"`
	Region          string `mapstructure:"region"`
}

// Timeout returns the per-operation timeout
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.General.OperationTimeout) * time.Second
}

// Load loads configuration from multiple sources with priority:
// 1. Command line flags (highest)
// 2. Environment variables
// 3. Configuration file
// 4. Defaults (lowest)
func Load(configPath string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetEnvPrefix("KUPO")
	v.AutomaticEnv()

	v.BindEnv("log.level", "KUPO_LOG_LEVEL")
	v.BindEnv("log.format", "KUPO_LOG_FORMAT")
	v.BindEnv("log.file", "KUPO_LOG_FILE")
	v.BindEnv("general.start_dir", "KUPO_START_DIR")
	v.BindEnv("general.restore_last_dir", "KUPO_RESTORE_LAST_DIR")
	v.BindEnv("general.backend", "KUPO_BACKEND")
	v.BindEnv("general.operation_timeout", "KUPO_OPERATION_TIMEOUT")
	v.BindEnv("ui.show_hidden", "KUPO_SHOW_HIDDEN")
	v.BindEnv("ui.dark", "KUPO_DARK")
	v.BindEnv("ui.confirm_delete", "KUPO_CONFIRM_DELETE")
	v.BindEnv("ui.watch", "KUPO_WATCH")
	v.BindEnv("ui.preview_max_bytes", "KUPO_PREVIEW_MAX_BYTES")
	v.BindEnv("r2.account_id", "KUPO_R2_ACCOUNT_ID")
	v.BindEnv("r2.access_key_id", "KUPO_R2_ACCESS_KEY_ID")
	v.BindEnv("r2.access_key_secret", "KUPO_R2_ACCESS_KEY_SECRET")
	v.BindEnv("r2.bucket_name", "KUPO_R2_BUCKET_NAME")
	v.BindEnv("r2.endpoint", "KUPO_R2_ENDPOINT")
	v.BindEnv("r2.region", "KUPO_R2_REGION")

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("toml")

		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.kupo")
		v.AddConfigPath("/etc/kupo/")
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// no config file, defaults and env vars only
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := Validate(&config); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &config, nil
}

// setDefaults sets default values for configuration
func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("log.file", filepath.Join(os.TempDir(), "kupo", "kupo.log"))

	v.SetDefault("general.start_dir", "")
	v.SetDefault("general.restore_last_dir", false)
	v.SetDefault("general.backend", BackendLocal)
	v.SetDefault("general.operation_timeout", 30)

	v.SetDefault("ui.show_hidden", false)
	v.SetDefault("ui.dark", true)
	v.SetDefault("ui.confirm_delete", true)
	v.SetDefault("ui.watch", true)
	v.SetDefault("ui.preview_max_bytes", 256*1024)
	v.SetDefault("ui.preview_width", 40)

	v.SetDefault("r2.endpoint", "auto")
	v.SetDefault("r2.region", "auto")
}

// GetDefaultConfigPath returns the default configuration file path
func GetDefaultConfigPath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "./config.toml"
	}
	return filepath.Join(homeDir, ".kupo", "config.toml")
}
