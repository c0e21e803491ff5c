package config

import "time"

type SessionConfig interface {
	GetSessionStore() string
	GetSessionBoltPath() string
	GetRedisURL() string
	GetSessionPollInterval() time.Duration
}

type CookieConfig interface {
	GetProfileCookieName() string
	GetCookieSecure() bool
}

const (
	SessionStoreMemory = "memory"
	SessionStoreBolt   = "bolt"
	SessionStoreRedis  = "redis"
)

type Sessions struct{}

var _ SessionConfig = Sessions{}

// GetSessionStore returns one of memory, bolt or redis.
func (Sessions) GetSessionStore() string {
	switch store := GetEnv("SESSION_STORE", SessionStoreMemory); store {
	case SessionStoreBolt, SessionStoreRedis:
		return store
	default:
		return SessionStoreMemory
	}
}

func (Sessions) GetSessionBoltPath() string {
	return GetEnv("SESSION_BOLT_PATH", "./data/sessions.db")
}

func (Sessions) GetRedisURL() string {
	return GetEnv("REDIS_URL", "redis://localhost:6379/0")
}

func (Sessions) GetSessionPollInterval() time.Duration {
	return GetDuration("SESSION_POLL_INTERVAL", 60*time.Second)
}

type Cookies struct{}

var _ CookieConfig = Cookies{}

func (Cookies) GetProfileCookieName() string {
	return "uvenla_profile"
}

func (Cookies) GetCookieSecure() bool {
	return GetBool("COOKIE_SECURE", false)
}
