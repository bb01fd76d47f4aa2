package credential

import (
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/zalando/go-keyring"
)

const keyringService = "spiris-tui"

// KeyringStore keeps the credential record in the OS keychain, keyed by the
// session directory so separate directories keep separate sessions.
type KeyringStore struct {
	user string
}

// NewKeyringStore returns a keychain-backed store for dir.
func NewKeyringStore(dir string) *KeyringStore {
	if abs, err := filepath.Abs(dir); err == nil {
		dir = abs
	}
	return &KeyringStore{user: dir}
}

func (s *KeyringStore) Load() (Credential, error) {
	secret, err := keyring.Get(keyringService, s.user)
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return Credential{}, ErrNotFound
		}
		return Credential{}, fmt.Errorf("read keychain: %w", err)
	}
	// Keychain entries carry no modification time; expires_in records
	// therefore load without an expiry.
	return decode([]byte(secret), time.Time{})
}

func (s *KeyringStore) Save(c Credential) error {
	if !c.Valid() {
		return fmt.Errorf("refusing to save empty credential")
	}
	data, err := encode(c)
	if err != nil {
		return fmt.Errorf("encode credential: %w", err)
	}
	if err := keyring.Set(keyringService, s.user, string(data)); err != nil {
		return fmt.Errorf("store credential in keychain: %w", err)
	}
	return nil
}
