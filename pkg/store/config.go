package store

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
)

// DefaultVets seeds the veterinarian roster on first use.
var DefaultVets = []string{"Isadora", "Thalles"}

// Config locates the store on disk.
type Config interface {
	BasePath() string
}

// Settings is the resolved medlog configuration.
type Settings struct {
	Path      string
	Vets      []string
	Medicines []string
	LogLevel  string
	LogFormat string
}

// BasePath implements Config.
func (s *Settings) BasePath() string {
	return s.Path
}

// LoadConfig reads .medlog.yaml from $MEDLOG_CONFIG_PATH or the working
// directory, overlaid with MEDLOG_* environment variables. A missing file is
// fine.
func LoadConfig() (*Settings, error) {
	v := viper.New()
	v.SetDefault("path", "~/.medlog.db")
	v.SetDefault("vets", DefaultVets)
	v.SetDefault("log.level", "warn")
	v.SetDefault("log.format", "text")
	v.SetConfigName(".medlog") // .yaml is implicit
	v.SetEnvPrefix("MEDLOG")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if override := os.Getenv("MEDLOG_CONFIG_PATH"); override != "" {
		v.AddConfigPath(override)
	}
	v.AddConfigPath("./")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("store: read config: %w", err)
		}
	}

	path, err := homedir.Expand(v.GetString("path"))
	if err != nil {
		return nil, fmt.Errorf("store: expand path: %w", err)
	}
	return &Settings{
		Path:      path,
		Vets:      v.GetStringSlice("vets"),
		Medicines: v.GetStringSlice("medicines"),
		LogLevel:  v.GetString("log.level"),
		LogFormat: v.GetString("log.format"),
	}, nil
}
