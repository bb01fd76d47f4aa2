package oauth

import (
	"context"
	"errors"
	"fmt"
	"html"
	"net/http"
	"net/url"
	"strings"

	"github.com/gorilla/mux"

	"github.com/atomicstack/spiris-tui/internal/credential"
)

// CallbackResult reports how a redirect was handled.
type CallbackResult struct {
	Credential credential.Credential
	Err        error
}

// Callback serves the redirect target and stores the exchanged credential.
type Callback struct {
	auth    *Authorizer
	store   credential.Store
	results chan CallbackResult
}

// NewCallback wires the authorizer and store. Each handled redirect reports
// to Serve through a buffered channel.
func NewCallback(auth *Authorizer, store credential.Store) *Callback {
	return &Callback{auth: auth, store: store, results: make(chan CallbackResult, 4)}
}

// Router returns the mux routes for redirectURL's path.
func (c *Callback) Router(redirectURL string) *mux.Router {
	path := "/callback"
	if u, err := url.Parse(redirectURL); err == nil && u.Path != "" {
		path = u.Path
	}
	r := mux.NewRouter()
	r.HandleFunc(path, c.handle).Methods(http.MethodGet)
	return r
}

func (c *Callback) handle(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	if msg := q.Get("error"); msg != "" {
		desc := strings.TrimSpace(q.Get("error_description"))
		if desc != "" {
			msg += ": " + desc
		}
		c.finish(w, CallbackResult{Err: fmt.Errorf("authorization denied: %s", msg)})
		return
	}
	code := q.Get("code")
	if code == "" {
		c.finish(w, CallbackResult{Err: errors.New("callback missing code")})
		return
	}
	cred, err := c.auth.Exchange(r.Context(), q.Get("state"), code)
	if err != nil {
		c.finish(w, CallbackResult{Err: err})
		return
	}
	if err := c.store.Save(cred); err != nil {
		c.finish(w, CallbackResult{Err: fmt.Errorf("save credential: %w", err)})
		return
	}
	c.finish(w, CallbackResult{Credential: cred})
}

func (c *Callback) finish(w http.ResponseWriter, res CallbackResult) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if res.Err != nil {
		w.WriteHeader(http.StatusBadRequest)
		fmt.Fprintf(w, "<p>Authorization failed: %s</p>", html.EscapeString(res.Err.Error()))
	} else {
		fmt.Fprint(w, "<p>Authorization complete. You can close this window and return to the terminal.</p>")
	}
	select {
	case c.results <- res:
	default:
	}
}

// Serve listens on the redirect address until a credential is stored, the
// context ends or the listener fails.
func (c *Callback) Serve(ctx context.Context, redirectURL string) (credential.Credential, error) {
	u, err := url.Parse(redirectURL)
	if err != nil {
		return credential.Credential{}, fmt.Errorf("parse redirect url: %w", err)
	}
	srv := &http.Server{Addr: u.Host, Handler: c.Router(redirectURL)}
	errs := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errs <- err
		}
	}()
	defer srv.Shutdown(context.Background())
	for {
		select {
		case <-ctx.Done():
			return credential.Credential{}, ctx.Err()
		case err := <-errs:
			return credential.Credential{}, fmt.Errorf("callback server: %w", err)
		case res := <-c.results:
			if res.Err != nil {
				// A stale or mismatched redirect should not end the wait.
				if errors.Is(res.Err, ErrStateMismatch) || errors.Is(res.Err, ErrNoPending) {
					continue
				}
				return credential.Credential{}, res.Err
			}
			return res.Credential, nil
		}
	}
}
