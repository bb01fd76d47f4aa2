package oauth

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"
)

// PendingFileName holds the in-flight authorization in the session directory.
const PendingFileName = ".spiris_auth.json"

// PendingTTL bounds how long a started flow may be completed.
const PendingTTL = 10 * time.Minute

var (
	ErrNoPending      = errors.New("no authorization in progress")
	ErrStateMismatch  = errors.New("authorization state mismatch")
	ErrPendingExpired = errors.New("authorization request expired")
)

// Pending is an authorization flow waiting for its code.
type Pending struct {
	State     string    `json:"state"`
	Verifier  string    `json:"verifier"`
	CreatedAt time.Time `json:"created_at"`
}

// Stale reports whether the flow is older than PendingTTL.
func (p Pending) Stale(now time.Time) bool {
	return now.Sub(p.CreatedAt) > PendingTTL
}

// PendingStore persists the single pending flow.
type PendingStore struct {
	path string
}

func NewPendingStore(dir string) *PendingStore {
	return &PendingStore{path: filepath.Join(dir, PendingFileName)}
}

func (s *PendingStore) Load() (Pending, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Pending{}, ErrNoPending
		}
		return Pending{}, fmt.Errorf("read pending authorization: %w", err)
	}
	var p Pending
	if err := json.Unmarshal(data, &p); err != nil || p.State == "" || p.Verifier == "" {
		return Pending{}, ErrNoPending
	}
	return p, nil
}

func (s *PendingStore) Save(p Pending) error {
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return err
	}
	return os.WriteFile(s.path, data, 0o600)
}

func (s *PendingStore) Clear() error {
	if err := os.Remove(s.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}
