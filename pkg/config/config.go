// Package config loads typed configuration from the environment. An optional
// .env file (default ./.env, or -env=<path>) is exported into the process
// environment first, then envconfig fills the target struct.
package config

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/kelseyhightower/envconfig"
	"github.com/spf13/viper"
)

var (
	envFileFlag string
	flagOnce    sync.Once
)

// MustNew is New that panics on failure. Meant for process startup where a
// bad config should stop the binary immediately.
func MustNew[T any](prefix string) *T {
	conf, err := New[T](prefix)
	if err != nil {
		panic(err)
	}
	return conf
}

// New builds a T from environment variables carrying the given prefix.
func New[T any](prefix string) (*T, error) {
	if err := exportEnvFile(); err != nil {
		return nil, err
	}

	var conf T
	if err := envconfig.Process(prefix, &conf); err != nil {
		return nil, err
	}
	return &conf, nil
}

func exportEnvFile() error {
	if path := envFilePath(); path != "" {
		if err := exportSettings(path); err != nil {
			return fmt.Errorf("failed to load env file %s: %w", path, err)
		}
		return nil
	}

	// No explicit path: pick up a ./.env when present, ignore when absent.
	info, err := os.Stat(".env")
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	if info.IsDir() {
		return nil
	}
	if err := exportSettings(".env"); err != nil {
		return fmt.Errorf("failed to load default env file: %w", err)
	}
	return nil
}

func envFilePath() string {
	flagOnce.Do(func() {
		if flag.Lookup("env") == nil {
			flag.StringVar(&envFileFlag, "env", "", "path to .env file")
		}
		if !flag.Parsed() {
			flag.Parse()
		}
	})
	return strings.TrimSpace(envFileFlag)
}

// exportSettings reads the file with viper and mirrors every key into the
// process environment, uppercased, so envconfig can see them.
func exportSettings(path string) error {
	viper.SetConfigFile(path)
	if err := viper.ReadInConfig(); err != nil {
		return err
	}

	for k, v := range viper.AllSettings() {
		if err := os.Setenv(strings.ToUpper(k), fmt.Sprint(v)); err != nil {
			return err
		}
	}
	return nil
}
