package config

import "time"

type Config struct {
	App      AppConfig      `env-prefix:"APP_"`
	HTTP     HTTPConfig     `env-prefix:"HTTP_"`
	Database DatabaseConfig `env-prefix:"DB_"`
	Auth     AuthConfig     `env-prefix:"AUTH_"`
	AI       AIConfig       `env-prefix:"AI_"`
}

type AppConfig struct {
	LogLevel string `env:"LOG_LEVEL" env-default:"info"`
	Pretty   bool   `env:"PRETTY" env-default:"false"`
}

type HTTPConfig struct {
	Addr string `env:"ADDR" env-default:":8080"`
}

type DatabaseConfig struct {
	Port     string `env:"PORT" env-default:"5432"`
	Host     string `env:"HOST" env-default:"localhost"`
	Name     string `env:"NAME" env-default:"postgres"`
	User     string `env:"USER" env-default:"user"`
	Password string `env:"PASSWORD"`
}

type AuthConfig struct {
	Secret   string        `env:"SECRET" env-default:"change-me-in-production"`
	TokenTTL time.Duration `env:"TOKEN_TTL" env-default:"168h"`
}

// AIConfig points the generation client at the provider. The API key is not
// here: callers supply it per request and it is never stored.
type AIConfig struct {
	BaseURL string        `env:"BASE_URL" env-default:"https://generativelanguage.googleapis.com/v1beta/openai/"`
	Model   string        `env:"MODEL" env-default:"gemini-2.0-flash-lite"`
	Timeout time.Duration `env:"TIMEOUT" env-default:"120s"`
}
