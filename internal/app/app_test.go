package app

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/atomicstack/spiris-tui/internal/credential"
)

type memoryStore struct {
	cred    *credential.Credential
	loadErr error
	saves   int
}

func (s *memoryStore) Load() (credential.Credential, error) {
	if s.loadErr != nil {
		return credential.Credential{}, s.loadErr
	}
	if s.cred == nil {
		return credential.Credential{}, credential.ErrNotFound
	}
	return *s.cred, nil
}

func (s *memoryStore) Save(c credential.Credential) error {
	s.saves++
	s.cred = &c
	return nil
}

type stubRefresher struct {
	calls int
	err   error
}

func (r *stubRefresher) Refresh(_ context.Context, cred credential.Credential) (credential.Credential, error) {
	r.calls++
	if r.err != nil {
		return credential.Credential{}, r.err
	}
	cred.AccessToken = "renewed"
	cred.Expiry = now.Add(time.Hour)
	return cred, nil
}

var now = time.Date(2030, 5, 1, 9, 0, 0, 0, time.UTC)

func TestRestoreSessionWithoutCredential(t *testing.T) {
	cred, notice := restoreSession(context.Background(), &memoryStore{}, &stubRefresher{}, now)
	if cred != nil || notice != "" {
		t.Fatalf("expected silent unauthenticated start, got %v %q", cred, notice)
	}
}

func TestRestoreSessionValidCredential(t *testing.T) {
	store := &memoryStore{cred: &credential.Credential{AccessToken: "tok", Expiry: now.Add(time.Minute)}}
	r := &stubRefresher{}
	cred, notice := restoreSession(context.Background(), store, r, now)
	if cred == nil || cred.AccessToken != "tok" || notice != "" || r.calls != 0 {
		t.Fatalf("unexpected restore %v %q calls=%d", cred, notice, r.calls)
	}
}

func TestRestoreSessionRefreshesExpired(t *testing.T) {
	store := &memoryStore{cred: &credential.Credential{AccessToken: "old", RefreshToken: "r1", Expiry: now.Add(-time.Minute)}}
	cred, notice := restoreSession(context.Background(), store, &stubRefresher{}, now)
	if cred == nil || cred.AccessToken != "renewed" || notice != "" {
		t.Fatalf("expected renewed credential, got %v %q", cred, notice)
	}
	if store.saves != 1 || store.cred.AccessToken != "renewed" {
		t.Fatalf("expected renewed credential saved, got %d saves", store.saves)
	}
}

func TestRestoreSessionExpiredWithoutRefresh(t *testing.T) {
	store := &memoryStore{cred: &credential.Credential{AccessToken: "old", Expiry: now.Add(-time.Minute)}}
	cred, notice := restoreSession(context.Background(), store, &stubRefresher{}, now)
	if cred != nil || !strings.Contains(notice, "Session expired") {
		t.Fatalf("expected expired notice, got %v %q", cred, notice)
	}
}

func TestRestoreSessionRefreshFailure(t *testing.T) {
	store := &memoryStore{cred: &credential.Credential{AccessToken: "old", RefreshToken: "r1", Expiry: now.Add(-time.Minute)}}
	cred, notice := restoreSession(context.Background(), store, &stubRefresher{err: errors.New("invalid_grant")}, now)
	if cred != nil || !strings.Contains(notice, "invalid_grant") || store.saves != 0 {
		t.Fatalf("unexpected result %v %q saves=%d", cred, notice, store.saves)
	}
}

func TestRestoreSessionUnreadableStore(t *testing.T) {
	cred, notice := restoreSession(context.Background(), &memoryStore{loadErr: errors.New("locked")}, &stubRefresher{}, now)
	if cred != nil || !strings.Contains(notice, "locked") {
		t.Fatalf("expected notice for unreadable store, got %v %q", cred, notice)
	}
}

func TestLoginRejectsUnknownBackend(t *testing.T) {
	err := Login(context.Background(), Config{CredentialBackend: "vault", SessionDir: t.TempDir()}, new(strings.Builder))
	if err == nil {
		t.Fatalf("expected backend error")
	}
}

func TestLoginStopsWithContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	var out strings.Builder
	cfg := Config{SessionDir: t.TempDir(), ClientID: "cid", RedirectURL: "http://127.0.0.1:0/callback"}
	if err := Login(ctx, cfg, &out); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected cancellation, got %v", err)
	}
	if !strings.Contains(out.String(), "client_id=cid") {
		t.Fatalf("expected authorization url printed, got %q", out.String())
	}
}
