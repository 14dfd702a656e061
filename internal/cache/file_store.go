package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"
)

// DefaultTTL applies when a store is constructed without a TTL.
const DefaultTTL = 300 * time.Second

const fileExt = ".cache"

// envelope is the on-disk entry format. An envelope that unmarshals without
// both fields set is treated as corrupt.
type envelope struct {
	ExpiresAt int64  `json:"expires_at"`
	Payload   []byte `json:"payload"`
}

// FileStore implements Store with one file per key under a flat directory
type FileStore struct {
	dir        string
	defaultTTL time.Duration
	now        func() time.Time // overridable for tests
}

// NewFileStore creates a file store rooted at dir, creating the directory
// (including parents) if missing. defaultTTL <= 0 falls back to DefaultTTL.
func NewFileStore(dir string, defaultTTL time.Duration) (*FileStore, error) {
	if defaultTTL <= 0 {
		defaultTTL = DefaultTTL
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDirectory, err)
	}

	return &FileStore{
		dir:        dir,
		defaultTTL: defaultTTL,
		now:        time.Now,
	}, nil
}

// keyPath maps a key to its cache file path. Deterministic across calls and
// process restarts; collisions are accepted, not mitigated.
func (s *FileStore) keyPath(key string) string {
	hash := sha256.Sum256([]byte(key))
	return filepath.Join(s.dir, hex.EncodeToString(hash[:])+fileExt)
}

// Put stores a payload under the key, fully overwriting any prior entry.
// The entry is written to a temp file and renamed into place so readers
// never observe a partial write.
func (s *FileStore) Put(key string, payload []byte, ttl time.Duration) error {
	if key == "" {
		return ErrEmptyKey
	}
	if ttl <= 0 {
		ttl = s.defaultTTL
	}

	data, err := json.Marshal(envelope{
		ExpiresAt: s.now().Add(ttl).Unix(),
		Payload:   payload,
	})
	if err != nil {
		return fmt.Errorf("%w: %v", ErrWriteFailed, err)
	}

	tmp, err := os.CreateTemp(s.dir, "put-*.tmp")
	if err != nil {
		return fmt.Errorf("%w: %v", ErrWriteFailed, err)
	}

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("%w: %v", ErrWriteFailed, err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("%w: %v", ErrWriteFailed, err)
	}

	path := s.keyPath(key)
	if err := os.Rename(tmp.Name(), path); err != nil {
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("%w: %v", ErrWriteFailed, err)
	}

	logrus.Debugf("Cached entry: %s", path)
	return nil
}

// Get retrieves the payload for the key if it exists and is not expired.
// Corrupt and expired entries are removed and reported as a miss; all
// read/delete failures are logged, never returned.
func (s *FileStore) Get(key string) ([]byte, bool) {
	if key == "" {
		return nil, false
	}

	path := s.keyPath(key)
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, false
	}
	if err != nil {
		logrus.Errorf("Failed to read cache file %s: %v", path, err)
		return nil, false
	}

	env, err := decodeEnvelope(data)
	if err != nil {
		logrus.Warnf("Removing corrupt cache file %s: %v", path, err)
		s.removeFile(path)
		return nil, false
	}

	if s.now().Unix() > env.ExpiresAt {
		logrus.Debugf("Cache entry expired: %s", path)
		s.removeFile(path)
		return nil, false
	}

	return env.Payload, true
}

// Delete removes the entry for the key. Deleting an absent entry is a no-op.
func (s *FileStore) Delete(key string) {
	if key == "" {
		return
	}
	s.removeFile(s.keyPath(key))
}

// Sweep scans the cache directory and removes entries whose expiry has
// passed. Entries that fail to deserialize are left in place: only Get
// treats an unreadable entry on lookup as corrupt, Sweep removes nothing
// it cannot positively confirm expired.
func (s *FileStore) Sweep() {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		logrus.Errorf("Failed to scan cache directory %s: %v", s.dir, err)
		return
	}

	now := s.now().Unix()
	for _, entry := range entries {
		if !entry.Type().IsRegular() || filepath.Ext(entry.Name()) != fileExt {
			continue
		}

		path := filepath.Join(s.dir, entry.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			logrus.Errorf("Failed to read cache file %s: %v", path, err)
			continue
		}

		env, err := decodeEnvelope(data)
		if err != nil {
			continue
		}

		if now > env.ExpiresAt {
			logrus.Debugf("Sweeping expired cache entry: %s", path)
			s.removeFile(path)
		}
	}
}

// removeFile deletes a cache file, treating an already-absent file as a
// no-op. Failures are logged, not propagated; a stale file is retried on
// the next sweep.
func (s *FileStore) removeFile(path string) {
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		logrus.Errorf("Failed to remove cache file %s: %v", path, err)
	}
}

func decodeEnvelope(data []byte) (envelope, error) {
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return env, fmt.Errorf("parsing envelope: %w", err)
	}
	if env.ExpiresAt == 0 {
		return env, errors.New("envelope missing expiration")
	}
	if env.Payload == nil {
		return env, errors.New("envelope missing payload")
	}
	return env, nil
}
