package app

import (
	"github.com/eivissacopter/battdash/models"

	"github.com/spf13/viper"
)

func LoadConfig(path string) (*models.AppConfig, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	if err := v.ReadInConfig(); err != nil {
		return nil, err
	}

	var cfg models.AppConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	applyDefaults(&cfg)
	return &cfg, nil
}

func applyDefaults(cfg *models.AppConfig) {
	if cfg.Server.Port <= 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Telemetry.MaxDepth <= 0 {
		cfg.Telemetry.MaxDepth = 3
	}
	if cfg.Telemetry.CrawlTTL <= 0 {
		cfg.Telemetry.CrawlTTL = 600
	}
	if cfg.Telemetry.CacheDBPath == "" {
		cfg.Telemetry.CacheDBPath = "data/meta.db"
	}
	if cfg.Fleet.Worksheet == "" {
		cfg.Fleet.Worksheet = "Database"
	}
}
