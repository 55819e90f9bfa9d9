package config

import (
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

const (
	EnvDev   = "dev"
	EnvProd  = "prod"
	EnvLocal = "local"
)

var globalConfig *Config

func Global() *Config {
	return globalConfig
}

func SetGlobal(cfg *Config) {
	globalConfig = cfg
}

type Config struct {
	Env           string `env:"ENV" env-required:"true"`
	API           APIConfig
	Realtime      RealtimeConfig
	Notifications NotificationsConfig
	Credentials   CredentialsConfig
}

type APIConfig struct {
	BaseURL string `env:"API_BASE_URL" env-required:"true"`

	// RequestTimeout and RetryAttempts are static gateway settings;
	// no layer above the HTTP client implements retry logic.
	RequestTimeout time.Duration `env:"API_REQUEST_TIMEOUT" env-default:"15s"`
	RetryAttempts  int           `env:"API_RETRY_ATTEMPTS" env-default:"3"`
}

type RealtimeConfig struct {
	URL              string        `env:"REALTIME_URL" env-required:"true"`
	HandshakeTimeout time.Duration `env:"REALTIME_HANDSHAKE_TIMEOUT" env-default:"10s"`
}

type NotificationsConfig struct {
	PollInterval time.Duration `env:"NOTIFICATIONS_POLL_INTERVAL" env-default:"30s"`
}

// CredentialsConfig feeds the demo binary's login; library users call
// the auth service directly instead.
type CredentialsConfig struct {
	Email    string `env:"TASKFLOW_EMAIL" env-required:"true"`
	Password string `env:"TASKFLOW_PASSWORD" env-required:"true"`
}

type Reader interface {
	Read() (*Config, error)
}

type EnvReader struct{}

func NewEnvReader() EnvReader {
	return EnvReader{}
}

func (EnvReader) Read() (*Config, error) {
	cfg := new(Config)
	err := cleanenv.ReadEnv(cfg)
	if err != nil {
		return nil, err
	}

	return cfg, nil
}
