package config

// NewDefaultConfig creates a configuration with default values.
func NewDefaultConfig() *Config {
	return &Config{
		Environment: "prod",
		Server: ServerConfig{
			Port: 4301,
			Host: "localhost",
		},
		Backend: BackendConfig{
			URL: "http://localhost:4302",
		},
		MarketData: MarketDataConfig{
			URL: "https://www.alphavantage.co",
		},
		Auth: AuthConfig{
			CallbackURL: "http://localhost:4301/auth/callback",
		},
		Storage: StorageConfig{
			Badger: BadgerConfig{
				Path: "./data/openhedge",
			},
		},
		Logging: LoggingConfig{
			Level:   "info",
			Outputs: []string{"console", "file"},
		},
	}
}
