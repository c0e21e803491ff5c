package repobolt

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	apperrors "github.com/uvenla/home-admin/internal/errors"
	"github.com/uvenla/home-admin/sessions"
	bolt "go.etcd.io/bbolt"
)

const defaultBucket = "sessions"

// Repo stores session records in a bbolt file so sessions survive a restart
// of a single-instance deployment.
type Repo struct {
	db     *bolt.DB
	bucket []byte
}

var _ sessions.Repo = (*Repo)(nil)

// Open initialises the bbolt file and ensures the bucket exists.
func Open(path string) (*Repo, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("[repobolt Open] %w", err)
	}
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("[repobolt Open] %w", err)
	}

	bucket := []byte(defaultBucket)
	if err := db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucket)
		return err
	}); err != nil {
		db.Close()
		return nil, fmt.Errorf("[repobolt Open] create bucket: %w", err)
	}

	return &Repo{db: db, bucket: bucket}, nil
}

func (r *Repo) Get(_ context.Context, profileID string) ([]byte, error) {
	if r == nil || r.db == nil {
		return nil, bolt.ErrDatabaseNotOpen
	}
	var record []byte
	err := r.db.View(func(tx *bolt.Tx) error {
		v := tx.Bucket(r.bucket).Get([]byte(sessions.Key(profileID)))
		if v == nil {
			return apperrors.ErrSessionNotFound
		}
		// Values are only valid for the life of the transaction
		record = append([]byte(nil), v...)
		return nil
	})
	return record, err
}

func (r *Repo) Put(_ context.Context, profileID string, record []byte) error {
	if r == nil || r.db == nil {
		return bolt.ErrDatabaseNotOpen
	}
	return r.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(r.bucket).Put([]byte(sessions.Key(profileID)), record)
	})
}

func (r *Repo) Delete(_ context.Context, profileID string) error {
	if r == nil || r.db == nil {
		return bolt.ErrDatabaseNotOpen
	}
	return r.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(r.bucket).Delete([]byte(sessions.Key(profileID)))
	})
}

func (r *Repo) Close() error {
	if r == nil || r.db == nil {
		return nil
	}
	return r.db.Close()
}
