package config

import "time"

type Config interface {
	EnvConfig
	BackendConfig
	SessionConfig
	CookieConfig
}

type EnvConfig interface {
	GetPort() string
	GetAppName() string
	GetEnv() string
	GetLogLevel() string
}

type BackendConfig interface {
	GetAPIURL() string
	GetAPITimeout() time.Duration
	GetJWTSecret() string
}

type mainConfig struct {
	EnvVars
	Backend
	Sessions
	Cookies
}

// New loads an optional .env file from the working directory and returns a
// Config reading from the process environment.
func New() Config {
	loadDotEnv(".env")
	return mainConfig{}
}
