// Package config loads Pokédex settings from defaults, an optional YAML
// file and POKEDEX_* environment variables, in increasing precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
	"go.uber.org/zap/zapcore"
)

const EnvPrefix = "POKEDEX"

type Config struct {
	API    APIConfig
	List   ListConfig
	Log    LogConfig
	Export ExportConfig
	Lambda LambdaConfig
}

type APIConfig struct {
	BaseURL     string
	Timeout     time.Duration
	Concurrency int
}

type ListConfig struct {
	PageSize int
}

type LogConfig struct {
	Level       string
	Development bool
	File        string
}

type ExportConfig struct {
	Bucket string
	Region string
	Prefix string
	Dir    string
}

type LambdaConfig struct {
	Handler string
}

// New returns a viper instance with defaults and environment bindings.
// Commands bind their flags onto it before calling Load.
func New() *viper.Viper {
	v := viper.New()
	v.SetDefault("api.base_url", "https://pokeapi.co/api/v2/")
	v.SetDefault("api.timeout", 10*time.Second)
	v.SetDefault("api.concurrency", 8)
	v.SetDefault("list.page_size", 21)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.development", true)
	v.SetDefault("log.file", "")
	v.SetDefault("export.bucket", "")
	v.SetDefault("export.region", "")
	v.SetDefault("export.prefix", "pokemons")
	v.SetDefault("export.dir", ".")
	v.SetDefault("lambda.handler", "")

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	// Lambda runtime variables.
	_ = v.BindEnv("export.bucket", EnvPrefix+"_EXPORT_BUCKET", "BUCKET_NAME")
	_ = v.BindEnv("export.region", EnvPrefix+"_EXPORT_REGION", "AWS_REGION")
	_ = v.BindEnv("lambda.handler", EnvPrefix+"_LAMBDA_HANDLER", "_HANDLER")
	return v
}

// ReadFile reads an explicit config file, or looks for pokedex.yaml in the
// working directory and $HOME/.config/pokedex. A missing default file is
// not an error.
func ReadFile(v *viper.Viper, path string) error {
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("reading config %s: %w", path, err)
		}
		return nil
	}
	v.SetConfigName("pokedex")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if home, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(filepath.Join(home, ".config", "pokedex"))
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("reading config: %w", err)
	}
	return nil
}

func Load(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		API: APIConfig{
			BaseURL:     v.GetString("api.base_url"),
			Timeout:     v.GetDuration("api.timeout"),
			Concurrency: v.GetInt("api.concurrency"),
		},
		List: ListConfig{PageSize: v.GetInt("list.page_size")},
		Log: LogConfig{
			Level:       v.GetString("log.level"),
			Development: v.GetBool("log.development"),
			File:        v.GetString("log.file"),
		},
		Export: ExportConfig{
			Bucket: v.GetString("export.bucket"),
			Region: v.GetString("export.region"),
			Prefix: v.GetString("export.prefix"),
			Dir:    v.GetString("export.dir"),
		},
		Lambda: LambdaConfig{Handler: v.GetString("lambda.handler")},
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	var errs []error
	if c.API.BaseURL == "" {
		errs = append(errs, errors.New("api.base_url must not be empty"))
	}
	if c.API.Timeout <= 0 {
		errs = append(errs, fmt.Errorf("api.timeout must be positive, got %s", c.API.Timeout))
	}
	if c.API.Concurrency <= 0 {
		errs = append(errs, fmt.Errorf("api.concurrency must be positive, got %d", c.API.Concurrency))
	}
	if c.List.PageSize <= 0 {
		errs = append(errs, fmt.Errorf("list.page_size must be positive, got %d", c.List.PageSize))
	}
	if _, err := zapcore.ParseLevel(c.Log.Level); err != nil {
		errs = append(errs, fmt.Errorf("log.level: %w", err))
	}
	return errors.Join(errs...)
}
