package models

type ServerConfig struct {
	Port int `mapstructure:"port"`
}

type TelemetryConfig struct {
	BaseURL     string `mapstructure:"base_url"`
	MaxDepth    int    `mapstructure:"max_depth"`
	CrawlTTL    int    `mapstructure:"crawl_ttl"` // seconds, 0 = default (600)
	CacheDBPath string `mapstructure:"cache_db_path"`
}

type FleetConfig struct {
	SheetURL  string `mapstructure:"sheet_url"`
	Worksheet string `mapstructure:"worksheet"`
}

type AppConfig struct {
	Server    ServerConfig    `mapstructure:"server"`
	Telemetry TelemetryConfig `mapstructure:"telemetry"`
	Fleet     FleetConfig     `mapstructure:"fleet"`
}
