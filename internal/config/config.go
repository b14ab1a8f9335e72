package config

import "github.com/kelseyhightower/envconfig"

// Config holds API server configuration loaded from environment variables.
type Config struct {
	Port        int    `envconfig:"PORT" default:"5000"`
	LogLevel    string `envconfig:"LOG_LEVEL" default:"info"`
	DatabaseURL string `envconfig:"DATABASE_URL" required:"true"`
	JWTSecret   string `envconfig:"JWT_SECRET" required:"true"`
	TokenTTL    int    `envconfig:"TOKEN_TTL_HOURS" default:"24"`
	BcryptCost  int    `envconfig:"BCRYPT_COST" default:"12"`
	Version     string `envconfig:"VERSION" default:"dev"`
}

// Load reads server configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Client holds configuration for the data-entry client.
type Client struct {
	APIBaseURL     string `envconfig:"API_BASE_URL" default:"http://localhost:5000/api"`
	StatePath      string `envconfig:"STATE_PATH" default:""`
	RequestTimeout int    `envconfig:"REQUEST_TIMEOUT_SECONDS" default:"0"`
}

// LoadClient reads client configuration from COACHPAD_-prefixed environment
// variables. StatePath defaults to a per-user location when unset (resolved
// by the session store).
func LoadClient() (*Client, error) {
	var cfg Client
	if err := envconfig.Process("COACHPAD", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
