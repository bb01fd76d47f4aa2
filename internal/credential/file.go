package credential

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// FileName is the credential record kept in the session directory.
const FileName = ".spiris_token.json"

// FileStore keeps the credential as a JSON file.
type FileStore struct {
	path string
}

// NewFileStore returns a store for dir/.spiris_token.json.
func NewFileStore(dir string) *FileStore {
	return &FileStore{path: filepath.Join(dir, FileName)}
}

// Path returns the record location.
func (s *FileStore) Path() string {
	return s.path
}

// Load reads the record. Missing or unreadable content yields ErrNotFound.
func (s *FileStore) Load() (Credential, error) {
	info, err := os.Stat(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Credential{}, ErrNotFound
		}
		return Credential{}, fmt.Errorf("stat credential: %w", err)
	}
	data, err := os.ReadFile(s.path)
	if err != nil {
		return Credential{}, fmt.Errorf("read credential: %w", err)
	}
	return decode(data, info.ModTime())
}

// Save overwrites the record atomically.
func (s *FileStore) Save(c Credential) error {
	if !c.Valid() {
		return fmt.Errorf("refusing to save empty credential")
	}
	data, err := encode(c)
	if err != nil {
		return fmt.Errorf("encode credential: %w", err)
	}
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("create session dir: %w", err)
	}
	tmp, err := os.CreateTemp(dir, FileName+".*")
	if err != nil {
		return fmt.Errorf("create temp credential: %w", err)
	}
	defer os.Remove(tmp.Name())
	if err := tmp.Chmod(0o600); err != nil {
		tmp.Close()
		return fmt.Errorf("chmod credential: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write credential: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close credential: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("install credential: %w", err)
	}
	return nil
}
