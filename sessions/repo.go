package sessions

import "context"

// KeyPrefix namespaces session records in shared key-value stores.
const KeyPrefix = "uvenla:session:"

// Repo persists one opaque session record per browser profile.
// Get returns ErrSessionNotFound when the profile has no record.
type Repo interface {
	Get(ctx context.Context, profileID string) ([]byte, error)
	Put(ctx context.Context, profileID string, record []byte) error
	Delete(ctx context.Context, profileID string) error
}

// Key returns the well-known storage key for a profile.
func Key(profileID string) string {
	return KeyPrefix + profileID
}
