package app

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/joho/godotenv"
	homedir "github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
)

const (
	StoreMemory = "memory"
	StoreSQLite = "sqlite"

	configName = ".feedme"
	envPrefix  = "FEEDME"
)

type Config struct {
	Store    string
	DBPath   string
	LogLevel string
	// File is the config file that was read, empty when none was found.
	File string
}

// LoadConfig reads $HOME/.feedme.yaml (or cfgFile), a .env file in the working
// directory, and FEEDME_* environment variables, in increasing precedence.
func LoadConfig(cfgFile string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	v := viper.New()
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		home, err := homedir.Dir()
		if err != nil {
			return nil, fmt.Errorf("resolve home dir: %w", err)
		}
		v.AddConfigPath(home)
		v.SetConfigName(configName)
		v.SetConfigType("yaml")
	}

	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()

	v.SetDefault("store", StoreSQLite)
	v.SetDefault("db", "")
	v.SetDefault("log_level", "info")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) || cfgFile != "" {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	cfg := &Config{
		Store:    strings.ToLower(strings.TrimSpace(v.GetString("store"))),
		DBPath:   strings.TrimSpace(v.GetString("db")),
		LogLevel: v.GetString("log_level"),
		File:     v.ConfigFileUsed(),
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	switch c.Store {
	case StoreMemory, StoreSQLite:
		return nil
	default:
		return fmt.Errorf("unknown store %q (expected memory or sqlite)", c.Store)
	}
}

func (c *Config) ResolveDBPath() (string, error) {
	if c.DBPath != "" {
		return homedir.Expand(c.DBPath)
	}
	return DefaultDBPath()
}
