package config

import (
	"github.com/spf13/viper"

	"github.com/moyu-x/tidy-file/internal"
)

type Config struct {
	Rules struct {
		Path string
	}
	Database struct {
		Path string
	}
	Logging struct {
		Level string
		File  string
	}
}

var cfg Config

func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	viper.AddConfigPath("$HOME/.tidy-file")
	viper.AddConfigPath(".")
	viper.AddConfigPath("/etc/tidy-file")

	viper.SetDefault("rules.path", internal.DefaultRulesPath)
	viper.SetDefault("database.path", internal.DefaultDatabasePath)
	viper.SetDefault("logging.level", "info")
	viper.SetDefault("logging.file", "")

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func Get() *Config {
	return &cfg
}
