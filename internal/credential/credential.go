package credential

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/oauth2"
)

// ErrNotFound means no usable credential is persisted. It is the normal
// first-run outcome and covers missing, empty and corrupt records alike.
var ErrNotFound = errors.New("credential not found")

// Credential is the bearer token used to authorise gateway calls.
type Credential struct {
	AccessToken  string
	Expiry       time.Time
	RefreshToken string
}

// Valid reports whether the credential carries an access token.
func (c Credential) Valid() bool {
	return strings.TrimSpace(c.AccessToken) != ""
}

// Expired reports whether the access token is past its expiry at now. A zero
// expiry never expires.
func (c Credential) Expired(now time.Time) bool {
	if c.Expiry.IsZero() {
		return false
	}
	return !now.Before(c.Expiry)
}

// CanRefresh reports whether a refresh token is available.
func (c Credential) CanRefresh() bool {
	return c.RefreshToken != ""
}

// Token converts the credential for use with golang.org/x/oauth2.
func (c Credential) Token() *oauth2.Token {
	return &oauth2.Token{
		AccessToken:  c.AccessToken,
		TokenType:    "Bearer",
		RefreshToken: c.RefreshToken,
		Expiry:       c.Expiry,
	}
}

// FromToken builds a credential from an oauth2 token.
func FromToken(tok *oauth2.Token) (Credential, error) {
	if tok == nil || tok.AccessToken == "" {
		return Credential{}, fmt.Errorf("token response missing access token")
	}
	return Credential{
		AccessToken:  tok.AccessToken,
		Expiry:       tok.Expiry,
		RefreshToken: tok.RefreshToken,
	}, nil
}

// Store persists a single credential per session directory.
type Store interface {
	Load() (Credential, error)
	Save(Credential) error
}

const (
	BackendFile    = "file"
	BackendKeyring = "keyring"
)

// Open returns the store for the requested backend rooted at dir.
func Open(backend, dir string) (Store, error) {
	switch strings.ToLower(strings.TrimSpace(backend)) {
	case "", BackendFile:
		return NewFileStore(dir), nil
	case BackendKeyring:
		return NewKeyringStore(dir), nil
	default:
		return nil, fmt.Errorf("unknown credential backend %q", backend)
	}
}
