package config

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/sagarc03/stowfront"
	stowfronthttp "github.com/sagarc03/stowfront/http"
	"github.com/sagarc03/stowfront/s3store"
)

// configKey is the context key for storing the loaded configuration.
type configKey struct{}

// WithContext returns a new context with the config stored.
func WithContext(ctx context.Context, cfg *Config) context.Context {
	return context.WithValue(ctx, configKey{}, cfg)
}

// FromContext retrieves the config from context.
// Returns an error if config is not found.
func FromContext(ctx context.Context) (*Config, error) {
	cfg, ok := ctx.Value(configKey{}).(*Config)
	if !ok || cfg == nil {
		return nil, errors.New("config not found in context")
	}
	return cfg, nil
}

// Config is the root configuration struct for stowfront.
type Config struct {
	Env     string                   `mapstructure:"env"`
	Server  ServerConfig             `mapstructure:"server"`
	Storage StorageConfig            `mapstructure:"storage"`
	CORS    stowfronthttp.CORSConfig `mapstructure:"cors"`
	Metrics MetricsConfig            `mapstructure:"metrics"`
	Log     LogConfig                `mapstructure:"log"`
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port            int `mapstructure:"port" validate:"required,min=1,max=65535"`
	ChunkSize       int `mapstructure:"chunk_size" validate:"min=1024,max=16777216"`
	ShutdownTimeout int `mapstructure:"shutdown_timeout" validate:"min=1"`
}

// StorageConfig selects and configures the object storage backend.
type StorageConfig struct {
	Backend         string `mapstructure:"backend" validate:"required,oneof=s3 filesystem"`
	Bucket          string `mapstructure:"bucket" validate:"required_if=Backend s3"`
	KeyPrefix       string `mapstructure:"key_prefix"`
	Region          string `mapstructure:"region"`
	Endpoint        string `mapstructure:"endpoint" validate:"omitempty,url"`
	UsePathStyle    bool   `mapstructure:"use_path_style"`
	AccessKeyID     string `mapstructure:"access_key_id"`
	SecretAccessKey string `mapstructure:"secret_access_key"`
	Path            string `mapstructure:"path" validate:"required_if=Backend filesystem"`
}

// MetricsConfig holds Prometheus metrics configuration.
type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path" validate:"omitempty,startswith=/"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level string `mapstructure:"level" validate:"required,oneof=debug info warn error"`
}

// Proxy returns the immutable proxy configuration derived from the storage settings.
func (c *Config) Proxy() stowfront.ProxyConfig {
	return stowfront.NewProxyConfig(c.Storage.Bucket, c.Storage.KeyPrefix)
}

// S3 returns the S3 client settings.
func (c *Config) S3() s3store.Config {
	return s3store.Config{
		Region:          c.Storage.Region,
		Endpoint:        c.Storage.Endpoint,
		UsePathStyle:    c.Storage.UsePathStyle,
		AccessKeyID:     c.Storage.AccessKeyID,
		SecretAccessKey: c.Storage.SecretAccessKey,
	}
}

// flagToViperKey maps CLI flag names to viper configuration keys.
var flagToViperKey = map[string]string{
	"port":         "server.port",
	"backend":      "storage.backend",
	"bucket":       "storage.bucket",
	"key-prefix":   "storage.key_prefix",
	"endpoint":     "storage.endpoint",
	"storage-path": "storage.path",
	"log-level":    "log.level",
}

// legacyEnv lists bare environment variable names honored in addition to the
// STOWFRONT_ prefixed ones.
var legacyEnv = map[string]string{
	"storage.bucket":     "S3_BUCKET",
	"storage.key_prefix": "KEY_PREFIX",
	"storage.endpoint":   "AWS_ENDPOINT_URL_S3",
}

// bindFlags binds CLI flags to viper keys with custom name mapping.
func bindFlags(v *viper.Viper, flags *pflag.FlagSet) {
	flags.VisitAll(func(f *pflag.Flag) {
		// Use custom mapping if it exists, otherwise use flag name as-is
		viperKey := f.Name
		if mapped, ok := flagToViperKey[viperKey]; ok {
			viperKey = mapped
		}

		// Only bind if the flag was explicitly set
		if f.Changed {
			_ = v.BindPFlag(viperKey, f)
		}
	})
}

// bindEnv binds the prefixed and legacy environment variable names. The
// prefixed name wins when both are set.
func bindEnv(v *viper.Viper) {
	for key, legacy := range legacyEnv {
		prefixed := "STOWFRONT_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
		_ = v.BindEnv(key, prefixed, legacy)
	}
}

// setDefaults configures default values on the viper instance.
func setDefaults(v *viper.Viper) {
	v.SetDefault("env", "dev")

	v.SetDefault("server.port", 8080)
	v.SetDefault("server.chunk_size", stowfront.DefaultChunkSize)
	v.SetDefault("server.shutdown_timeout", 30) // seconds

	v.SetDefault("storage.backend", "s3")
	v.SetDefault("storage.bucket", "")
	v.SetDefault("storage.key_prefix", "")
	v.SetDefault("storage.region", "")
	v.SetDefault("storage.endpoint", "")
	v.SetDefault("storage.use_path_style", false)
	v.SetDefault("storage.access_key_id", "")
	v.SetDefault("storage.secret_access_key", "")
	v.SetDefault("storage.path", "")

	v.SetDefault("cors.enabled", false)
	v.SetDefault("cors.allowed_methods", []string{"GET", "HEAD", "OPTIONS"})

	v.SetDefault("metrics.enabled", false)
	v.SetDefault("metrics.path", "/_metrics")

	v.SetDefault("log.level", "info")
}

// Load reads configuration and returns a validated Config struct.
// Order of precedence (highest to lowest): flags > env > config files > defaults
//
// Parameters:
//   - configFiles: list of config file paths (later files override earlier ones)
//   - flags: cobra flag set for flag binding (can be nil)
func Load(configFiles []string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()

	// 1. Set defaults
	setDefaults(v)

	// 2. Read config files
	if len(configFiles) > 0 {
		v.SetConfigFile(configFiles[0])
		if err := v.ReadInConfig(); err != nil {
			slog.Warn("error reading config file", "file", configFiles[0], "err", err)
		}

		for _, cf := range configFiles[1:] {
			v.SetConfigFile(cf)
			if err := v.MergeInConfig(); err != nil {
				slog.Warn("error merging config file", "file", cf, "err", err)
			}
		}
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")

		if err := v.ReadInConfig(); err != nil {
			var configNotFound viper.ConfigFileNotFoundError
			if !errors.As(err, &configNotFound) {
				slog.Warn("error reading config file", "err", err)
			}
		}
	}

	// 3. Bind environment variables
	v.SetEnvPrefix("STOWFRONT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	bindEnv(v)

	// 4. Bind flags (if provided)
	if flags != nil {
		bindFlags(v, flags)
	}

	// 5. Unmarshal into Config struct
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	// 6. Validate using go-playground/validator
	validate := validator.New()
	if err := validate.Struct(&cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return &cfg, nil
}
