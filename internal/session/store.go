package session

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/zap"

	"github.com/lankacraft/marketapi/internal/domain"
)

// Store persists the single device session record: an auth token and the
// serialized user. There is no multi-session and no schema versioning.
type Store interface {
	// Save writes the user and a freshly minted token, replacing any
	// previous record.
	Save(user *domain.User, token string) error
	// Load returns the stored user and token. It returns (nil, "") if
	// either record is absent or unreadable; read failures never propagate.
	Load() (*domain.User, string)
	// Clear deletes both records.
	Clear() error
}

// record is the on-disk shape. Both fields must be present for the session
// to count as authenticated.
type record struct {
	AuthToken string          `json:"auth_token,omitempty"`
	UserData  json.RawMessage `json:"user_data,omitempty"`
}

// FileStore keeps the session record in a single JSON file, written
// atomically via rename.
type FileStore struct {
	path   string
	mu     sync.Mutex
	logger *zap.Logger
}

// NewFileStore creates a file-backed session store
func NewFileStore(path string, logger *zap.Logger) *FileStore {
	return &FileStore{
		path:   path,
		logger: logger,
	}
}

func (s *FileStore) Save(user *domain.User, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	userData, err := json.Marshal(user)
	if err != nil {
		return err
	}

	data, err := json.Marshal(record{
		AuthToken: token,
		UserData:  userData,
	})
	if err != nil {
		return err
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return err
	}
	return os.Rename(tmp, s.path)
}

func (s *FileStore) Load() (*domain.User, string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			// Unreadable storage degrades to "not authenticated".
			s.logger.Warn("Failed to read session file", zap.Error(err))
		}
		return nil, ""
	}

	var rec record
	if err := json.Unmarshal(data, &rec); err != nil {
		s.logger.Warn("Failed to parse session file", zap.Error(err))
		return nil, ""
	}

	if rec.AuthToken == "" || len(rec.UserData) == 0 {
		return nil, ""
	}

	var user domain.User
	if err := json.Unmarshal(rec.UserData, &user); err != nil {
		s.logger.Warn("Failed to parse stored user", zap.Error(err))
		return nil, ""
	}

	return &user, rec.AuthToken
}

func (s *FileStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := os.Remove(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}

// EnsureDir creates the directory the session file lives in.
func (s *FileStore) EnsureDir() error {
	dir := filepath.Dir(s.path)
	if dir == "." {
		return nil
	}
	return os.MkdirAll(dir, 0o700)
}
