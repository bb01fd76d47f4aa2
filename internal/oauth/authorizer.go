// Package oauth produces authorization URLs for the accounting service and
// completes the code exchange outside the interactive session.
package oauth

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/oauth2"

	"github.com/atomicstack/spiris-tui/internal/credential"
)

const (
	DefaultRedirectURL = "http://localhost:8080/callback"
	DefaultAuthURL     = "https://identity.vismaonline.com/connect/authorize"
	DefaultTokenURL    = "https://identity.vismaonline.com/connect/token"

	// Placeholder secrets used when nothing is configured.
	PlaceholderClientID     = "your_client_id"
	PlaceholderClientSecret = "your_client_secret"
)

// Scopes requested for API access with a refresh token.
var Scopes = []string{"ea:api", "offline_access", "ea:sales"}

// Settings describes the registered client.
type Settings struct {
	ClientID     string
	ClientSecret string
	RedirectURL  string
	AuthURL      string
	TokenURL     string
}

// Config converts settings into an oauth2 configuration.
func (s Settings) Config() *oauth2.Config {
	redirect := s.RedirectURL
	if redirect == "" {
		redirect = DefaultRedirectURL
	}
	authURL := s.AuthURL
	if authURL == "" {
		authURL = DefaultAuthURL
	}
	tokenURL := s.TokenURL
	if tokenURL == "" {
		tokenURL = DefaultTokenURL
	}
	return &oauth2.Config{
		ClientID:     s.ClientID,
		ClientSecret: s.ClientSecret,
		RedirectURL:  redirect,
		Scopes:       append([]string(nil), Scopes...),
		Endpoint: oauth2.Endpoint{
			AuthURL:   authURL,
			TokenURL:  tokenURL,
			AuthStyle: oauth2.AuthStyleInHeader,
		},
	}
}

// Handle is what the user needs to grant access.
type Handle struct {
	URL   string
	State string
}

// Authorizer starts authorization flows and refreshes credentials.
type Authorizer struct {
	config  *oauth2.Config
	pending *PendingStore
	now     func() time.Time
}

// NewAuthorizer builds an authorizer whose pending flows live in sessionDir.
func NewAuthorizer(settings Settings, sessionDir string) *Authorizer {
	return &Authorizer{
		config:  settings.Config(),
		pending: NewPendingStore(sessionDir),
		now:     time.Now,
	}
}

// Start creates a fresh state and PKCE verifier, records them for the
// out-of-band completion step and returns the URL to visit.
func (a *Authorizer) Start() (Handle, error) {
	p := Pending{
		State:     uuid.NewString(),
		Verifier:  oauth2.GenerateVerifier(),
		CreatedAt: a.now().UTC(),
	}
	if err := a.pending.Save(p); err != nil {
		return Handle{}, fmt.Errorf("record pending authorization: %w", err)
	}
	return Handle{URL: a.url(p), State: p.State}, nil
}

// Resume returns the handle of a still-valid pending flow, or starts a new one.
func (a *Authorizer) Resume() (Handle, error) {
	p, err := a.pending.Load()
	if err == nil && !p.Stale(a.now()) {
		return Handle{URL: a.url(p), State: p.State}, nil
	}
	return a.Start()
}

func (a *Authorizer) url(p Pending) string {
	return a.config.AuthCodeURL(p.State, oauth2.AccessTypeOffline, oauth2.S256ChallengeOption(p.Verifier))
}

// Exchange trades an authorization code for a credential. state must match
// the pending flow.
func (a *Authorizer) Exchange(ctx context.Context, state, code string) (credential.Credential, error) {
	p, err := a.pending.Load()
	if err != nil {
		return credential.Credential{}, err
	}
	if p.State != state {
		return credential.Credential{}, ErrStateMismatch
	}
	if p.Stale(a.now()) {
		return credential.Credential{}, ErrPendingExpired
	}
	tok, err := a.config.Exchange(ctx, code, oauth2.VerifierOption(p.Verifier))
	if err != nil {
		return credential.Credential{}, fmt.Errorf("exchange code: %w", err)
	}
	cred, err := credential.FromToken(tok)
	if err != nil {
		return credential.Credential{}, err
	}
	if err := a.pending.Clear(); err != nil {
		return cred, fmt.Errorf("clear pending authorization: %w", err)
	}
	return cred, nil
}

// Refresh uses the refresh token to obtain a new access token.
func (a *Authorizer) Refresh(ctx context.Context, cred credential.Credential) (credential.Credential, error) {
	if !cred.CanRefresh() {
		return credential.Credential{}, fmt.Errorf("credential has no refresh token")
	}
	old := cred.Token()
	old.Expiry = time.Unix(1, 0)
	tok, err := a.config.TokenSource(ctx, old).Token()
	if err != nil {
		return credential.Credential{}, fmt.Errorf("refresh credential: %w", err)
	}
	next, err := credential.FromToken(tok)
	if err != nil {
		return credential.Credential{}, err
	}
	if next.RefreshToken == "" {
		next.RefreshToken = cred.RefreshToken
	}
	return next, nil
}
