package config

import "time"

const (
	apiURLEnvVar     = "API_URL"
	apiTimeoutEnvVar = "API_TIMEOUT"
	jwtSecretEnvVar  = "JWT_SECRET"
)

type Backend struct{}

var _ BackendConfig = Backend{}

// GetAPIURL returns the base URL of the Uvenla REST backend, without a trailing slash.
func (Backend) GetAPIURL() string {
	url := GetEnv(apiURLEnvVar, "http://localhost:5000/api")
	for len(url) > 0 && url[len(url)-1] == '/' {
		url = url[:len(url)-1]
	}
	return url
}

func (Backend) GetAPITimeout() time.Duration {
	return GetDuration(apiTimeoutEnvVar, 15*time.Second)
}

// GetJWTSecret returns the backend's HS256 signing secret. Empty means access
// tokens are decoded without signature verification.
func (Backend) GetJWTSecret() string {
	return GetEnv(jwtSecretEnvVar, "")
}
