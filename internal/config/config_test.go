package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/atomicstack/spiris-tui/internal/gateway"
	"github.com/atomicstack/spiris-tui/internal/oauth"
)

func TestLoadArgsDefaults(t *testing.T) {
	cfg, err := LoadArgs(nil, []string{"HOME=" + t.TempDir()})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.App.SessionDir != "." || cfg.App.CredentialBackend != "file" {
		t.Fatalf("unexpected defaults %#v", cfg.App)
	}
	if cfg.App.Timeout != 30*time.Second || cfg.App.CredentialPoll != 2*time.Second || cfg.App.RefreshInterval != 0 {
		t.Fatalf("unexpected durations %#v", cfg.App)
	}
	if cfg.App.APIURL != gateway.DefaultBaseURL || cfg.App.RedirectURL != oauth.DefaultRedirectURL {
		t.Fatalf("unexpected endpoints %#v", cfg.App)
	}
	if cfg.App.ClientID != "your_client_id" || cfg.App.ClientSecret != "your_client_secret" {
		t.Fatalf("expected placeholder secrets, got %q/%q", cfg.App.ClientID, cfg.App.ClientSecret)
	}
	if cfg.Command != "" {
		t.Fatalf("expected interactive command, got %q", cfg.Command)
	}
}

func TestLoadArgsPrecedence(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	yaml := "session_dir: /from/file\nclient_id: file-id\ntimeout: 5s\ntrace: true\nwidth: 90\n"
	if err := os.WriteFile(path, []byte(yaml), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	env := []string{
		"SPIRIS_TUI_CONFIG=" + path,
		"SPIRIS_TUI_SESSION_DIR=/from/env",
		"SPIRIS_TUI_TIMEOUT=7s",
		"SPIRIS_CLIENT_SECRET=env-secret",
	}
	cfg, err := LoadArgs([]string{"-timeout", "9s"}, env)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.App.SessionDir != "/from/env" {
		t.Fatalf("expected env to beat file, got %q", cfg.App.SessionDir)
	}
	if cfg.App.Timeout != 9*time.Second {
		t.Fatalf("expected flag to beat env, got %s", cfg.App.Timeout)
	}
	if cfg.App.ClientID != "file-id" || cfg.App.ClientSecret != "env-secret" {
		t.Fatalf("unexpected secrets %q/%q", cfg.App.ClientID, cfg.App.ClientSecret)
	}
	if !cfg.Logging.Trace || cfg.App.Width != 90 {
		t.Fatalf("expected file values, got trace=%v width=%d", cfg.Logging.Trace, cfg.App.Width)
	}
	if cfg.File != path {
		t.Fatalf("expected config path %q, got %q", path, cfg.File)
	}
}

func TestLoadArgsMissingDefaultFileIsFine(t *testing.T) {
	home := t.TempDir()
	cfg, err := LoadArgs(nil, []string{"XDG_CONFIG_HOME=" + home})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.File != filepath.Join(home, "spiris-tui", "config.yaml") {
		t.Fatalf("unexpected default path %q", cfg.File)
	}
}

func TestLoadArgsRejectsBadFiles(t *testing.T) {
	dir := t.TempDir()
	if _, err := LoadArgs([]string{"-config", filepath.Join(dir, "missing.yaml")}, nil); err == nil {
		t.Fatalf("expected error for missing explicit file")
	}
	bad := filepath.Join(dir, "bad.yaml")
	os.WriteFile(bad, []byte("timeout: [unterminated"), 0o600)
	if _, err := LoadArgs([]string{"-config=" + bad}, nil); err == nil {
		t.Fatalf("expected error for malformed file")
	}
	slow := filepath.Join(dir, "slow.yaml")
	os.WriteFile(slow, []byte("timeout: forever\n"), 0o600)
	if _, err := LoadArgs([]string{"-config", slow}, nil); err == nil {
		t.Fatalf("expected error for bad duration")
	}
}

func TestLoadArgsLoginCommand(t *testing.T) {
	cfg, err := LoadArgs([]string{"-session-dir", "/tmp/s", "login", "-trace"}, nil)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Command != CommandLogin || !cfg.Logging.Trace || cfg.App.SessionDir != "/tmp/s" {
		t.Fatalf("unexpected login config %#v", cfg)
	}
	if _, err := LoadArgs([]string{"logout"}, nil); err == nil {
		t.Fatalf("expected unknown command error")
	}
}

func TestLoadArgsRejectsNegativeSize(t *testing.T) {
	if _, err := LoadArgs([]string{"-width", "-1"}, nil); err == nil {
		t.Fatalf("expected width error")
	}
}

func TestValidate(t *testing.T) {
	cfg, err := LoadArgs(nil, nil)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if err := Validate(cfg); err != nil {
		t.Fatalf("expected defaults to validate, got %v", err)
	}
	bad := cfg
	bad.App.CredentialBackend = "vault"
	if err := Validate(bad); err == nil {
		t.Fatalf("expected backend error")
	}
	bad = cfg
	bad.App.RefreshInterval = -time.Second
	if err := Validate(bad); err == nil {
		t.Fatalf("expected duration error")
	}
}
