package session

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
)

const credentialsFile = "session.json"

// FileStore persists credentials as a single JSON file under the client's home
// directory. Writes go through a temp file and rename so a crash can never
// leave a torn credential pair on disk.
type FileStore struct {
	dir string
}

// NewFileStore creates a FileStore rooted at dir, creating it if needed.
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, errors.Wrap(err, "[NewFileStore] create home dir")
	}
	return &FileStore{dir: dir}, nil
}

func (s *FileStore) path() string {
	return filepath.Join(s.dir, credentialsFile)
}

// Load reads the stored credentials, returning (nil, nil) when none exist.
func (s *FileStore) Load() (*Credentials, error) {
	raw, err := os.ReadFile(s.path())
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "[FileStore.Load] read")
	}
	var creds Credentials
	if err := json.Unmarshal(raw, &creds); err != nil {
		return nil, errors.Wrap(err, "[FileStore.Load] decode")
	}
	return &creds, nil
}

// Save replaces the stored credentials as a whole.
func (s *FileStore) Save(creds Credentials) error {
	raw, err := json.Marshal(creds)
	if err != nil {
		return errors.Wrap(err, "[FileStore.Save] encode")
	}
	tmp := s.path() + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o600); err != nil {
		return errors.Wrap(err, "[FileStore.Save] write")
	}
	if err := os.Rename(tmp, s.path()); err != nil {
		return errors.Wrap(err, "[FileStore.Save] rename")
	}
	return nil
}

// Clear removes the stored credentials. Clearing an empty store is not an
// error.
func (s *FileStore) Clear() error {
	if err := os.Remove(s.path()); err != nil && !os.IsNotExist(err) {
		return errors.Wrap(err, "[FileStore.Clear] remove")
	}
	return nil
}

var _ Store = (*FileStore)(nil)
