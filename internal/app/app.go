package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/dustin/go-humanize"
	"golang.org/x/term"

	"github.com/atomicstack/spiris-tui/internal/backend"
	"github.com/atomicstack/spiris-tui/internal/credential"
	"github.com/atomicstack/spiris-tui/internal/gateway"
	"github.com/atomicstack/spiris-tui/internal/logging"
	"github.com/atomicstack/spiris-tui/internal/logging/events"
	"github.com/atomicstack/spiris-tui/internal/oauth"
	"github.com/atomicstack/spiris-tui/internal/ui"
)

// ErrNoTTY is returned when the interactive session has no terminal.
var ErrNoTTY = errors.New("spiris-tui needs an interactive terminal")

// Config describes user-provided application options.
type Config struct {
	SessionDir        string
	CredentialBackend string
	APIURL            string
	Timeout           time.Duration
	RefreshInterval   time.Duration
	CredentialPoll    time.Duration
	RedirectURL       string
	ClientID          string
	ClientSecret      string
	Width             int
	Height            int
}

func (c Config) oauthSettings() oauth.Settings {
	return oauth.Settings{
		ClientID:     c.ClientID,
		ClientSecret: c.ClientSecret,
		RedirectURL:  c.redirectURL(),
	}
}

func (c Config) redirectURL() string {
	if c.RedirectURL == "" {
		return oauth.DefaultRedirectURL
	}
	return c.RedirectURL
}

// Run bootstraps and executes the Bubble Tea program.
func Run(cfg Config) error {
	if !term.IsTerminal(int(os.Stdin.Fd())) || !term.IsTerminal(int(os.Stdout.Fd())) {
		return ErrNoTTY
	}
	store, err := credential.Open(cfg.CredentialBackend, cfg.SessionDir)
	if err != nil {
		return fmt.Errorf("open credential store: %w", err)
	}
	auth := oauth.NewAuthorizer(cfg.oauthSettings(), cfg.SessionDir)

	ctx, cancel := context.WithTimeout(context.Background(), timeoutOrDefault(cfg.Timeout))
	cred, notice := restoreSession(ctx, store, auth, time.Now())
	cancel()

	watcher := backend.NewWatcher(backend.Options{
		Store:           store,
		CredentialPoll:  cfg.CredentialPoll,
		RefreshInterval: cfg.RefreshInterval,
		WatchCredential: cred == nil,
	})
	defer watcher.Stop()

	model := ui.NewModel(ui.Options{
		Width:      cfg.Width,
		Height:     cfg.Height,
		Credential: cred,
		Store:      store,
		Authorizer: auth,
		Connect:    gateway.NewConnector(gateway.Options{BaseURL: cfg.APIURL, Timeout: cfg.Timeout}),
		Watcher:    watcher,
		Notice:     notice,
	})
	program := tea.NewProgram(model, tea.WithAltScreen())
	_, err = program.Run()
	if errors.Is(err, tea.ErrProgramKilled) {
		return nil
	}
	return err
}

type refresher interface {
	Refresh(ctx context.Context, cred credential.Credential) (credential.Credential, error)
}

// restoreSession loads the stored credential. An expired credential is
// renewed when it carries a refresh token; otherwise the session starts
// unauthenticated with a notice for the auth screen.
func restoreSession(ctx context.Context, store credential.Store, r refresher, now time.Time) (*credential.Credential, string) {
	cred, err := store.Load()
	if err != nil {
		if !errors.Is(err, credential.ErrNotFound) {
			logging.Errorf("load credential: %w", err)
			return nil, fmt.Sprintf("Could not read the stored credential: %v", err)
		}
		return nil, ""
	}
	if !cred.Expired(now) {
		return &cred, ""
	}
	if !cred.CanRefresh() {
		return nil, "Session expired; sign in again"
	}
	next, err := r.Refresh(ctx, cred)
	if err != nil {
		logging.Errorf("refresh credential: %w", err)
		return nil, fmt.Sprintf("Session expired and could not be renewed: %v", err)
	}
	events.Auth.Refreshed()
	if err := store.Save(next); err != nil {
		logging.Errorf("save refreshed credential: %w", err)
	}
	return &next, ""
}

func timeoutOrDefault(d time.Duration) time.Duration {
	if d <= 0 {
		return 30 * time.Second
	}
	return d
}

// Login completes authorization outside the interactive session: it prints
// the authorization URL and serves the redirect until the credential is saved.
func Login(ctx context.Context, cfg Config, out io.Writer) error {
	store, err := credential.Open(cfg.CredentialBackend, cfg.SessionDir)
	if err != nil {
		return fmt.Errorf("open credential store: %w", err)
	}
	auth := oauth.NewAuthorizer(cfg.oauthSettings(), cfg.SessionDir)
	handle, err := auth.Resume()
	if err != nil {
		return fmt.Errorf("start authorization: %w", err)
	}
	events.Auth.Start(handle.State)
	fmt.Fprintf(out, "Open this URL in your browser to authorize:\n\n%s\n\n", handle.URL)
	fmt.Fprintf(out, "Waiting for the redirect on %s (ctrl+c to abort)...\n", cfg.redirectURL())

	cred, err := oauth.NewCallback(auth, store).Serve(ctx, cfg.redirectURL())
	if err != nil {
		return fmt.Errorf("complete authorization: %w", err)
	}
	events.Auth.Saved(cfg.CredentialBackend)
	if fs, ok := store.(*credential.FileStore); ok {
		fmt.Fprintf(out, "Credential written to %s\n", fs.Path())
	}
	if cred.Expiry.IsZero() {
		fmt.Fprintln(out, "Authorization complete; credential saved.")
	} else {
		fmt.Fprintf(out, "Authorization complete; credential saved (expires %s).\n", humanize.Time(cred.Expiry))
	}
	return nil
}
