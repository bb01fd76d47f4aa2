package config

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/atomicstack/spiris-tui/internal/app"
	"github.com/atomicstack/spiris-tui/internal/credential"
	"github.com/atomicstack/spiris-tui/internal/gateway"
	"github.com/atomicstack/spiris-tui/internal/oauth"
)

// Config captures runtime configuration for the application.
type Config struct {
	App     app.Config
	Logging Logging
	// Command is empty for the interactive session or CommandLogin.
	Command string
	File    string
	Flags   map[string]string
	Args    []string
}

type Logging struct {
	FilePath string
	Trace    bool
}

// CommandLogin completes authorization outside the interactive session.
const CommandLogin = "login"

const (
	envConfigFile      = "SPIRIS_TUI_CONFIG"
	envSessionDir      = "SPIRIS_TUI_SESSION_DIR"
	envBackend         = "SPIRIS_TUI_CREDENTIALS"
	envAPIURL          = "SPIRIS_API_URL"
	envTimeout         = "SPIRIS_TUI_TIMEOUT"
	envRefreshInterval = "SPIRIS_TUI_REFRESH_INTERVAL"
	envCredentialPoll  = "SPIRIS_TUI_CREDENTIAL_POLL"
	envRedirectURL     = "SPIRIS_TUI_REDIRECT_URL"
	envTrace           = "SPIRIS_TUI_TRACE"
	envLogFile         = "SPIRIS_TUI_LOG_FILE"
	envWidth           = "SPIRIS_TUI_WIDTH"
	envHeight          = "SPIRIS_TUI_HEIGHT"
	envClientID        = "SPIRIS_CLIENT_ID"
	envClientSecret    = "SPIRIS_CLIENT_SECRET"
)

// fileConfig mirrors config.yaml. Durations use time.ParseDuration syntax.
type fileConfig struct {
	SessionDir        string `yaml:"session_dir"`
	CredentialBackend string `yaml:"credential_backend"`
	APIURL            string `yaml:"api_url"`
	Timeout           string `yaml:"timeout"`
	RefreshInterval   string `yaml:"refresh_interval"`
	CredentialPoll    string `yaml:"credential_poll"`
	RedirectURL       string `yaml:"redirect_url"`
	ClientID          string `yaml:"client_id"`
	ClientSecret      string `yaml:"client_secret"`
	LogFile           string `yaml:"log_file"`
	Trace             bool   `yaml:"trace"`
	Width             int    `yaml:"width"`
	Height            int    `yaml:"height"`
}

// Load parses configuration from CLI arguments, environment variables and
// the YAML config file.
func Load() (Config, error) {
	return LoadArgs(os.Args[1:], os.Environ())
}

// LoadArgs allows tests to supply specific args/environment.
func LoadArgs(args []string, environ []string) (Config, error) {
	env := parseEnv(environ)

	path, explicit := configPath(args, env)
	file, err := readFile(path, explicit)
	if err != nil {
		return Config{}, err
	}
	defaults, err := file.durations()
	if err != nil {
		return Config{}, fmt.Errorf("config file %s: %w", path, err)
	}

	fs := flag.NewFlagSet("spiris-tui", flag.ContinueOnError)
	fs.SetOutput(new(strings.Builder))

	fs.String("config", path, "path to the YAML config file")
	sessionDir := fs.String("session-dir", envOrDefault(env, envSessionDir, orString(file.SessionDir, ".")), "directory holding the session credential")
	backend := fs.String("credential-backend", envOrDefault(env, envBackend, orString(file.CredentialBackend, credential.BackendFile)), "credential storage backend (file or keyring)")
	apiURL := fs.String("api-url", envOrDefault(env, envAPIURL, orString(file.APIURL, gateway.DefaultBaseURL)), "remote accounting API root")
	timeout := fs.Duration("timeout", envOrDuration(env, envTimeout, defaults.timeout), "request timeout for API calls")
	refresh := fs.Duration("refresh-interval", envOrDuration(env, envRefreshInterval, defaults.refresh), "automatic list refresh interval (0 disables)")
	poll := fs.Duration("credential-poll", envOrDuration(env, envCredentialPoll, defaults.poll), "credential store poll interval while unauthenticated (0 disables)")
	redirect := fs.String("redirect-url", envOrDefault(env, envRedirectURL, orString(file.RedirectURL, oauth.DefaultRedirectURL)), "OAuth2 redirect URL served by the login command")
	trace := fs.Bool("trace", envOrBool(env, envTrace, file.Trace), "enable verbose JSON trace logging")
	logFile := fs.String("log-file", envOrDefault(env, envLogFile, file.LogFile), "path to the log file")
	width := fs.Int("width", envOrInt(env, envWidth, file.Width), "desired viewport width in cells (0 uses terminal width)")
	height := fs.Int("height", envOrInt(env, envHeight, file.Height), "desired viewport height in rows (0 uses terminal height)")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	var command string
	if rest := fs.Args(); len(rest) > 0 {
		if rest[0] != CommandLogin {
			return Config{}, fmt.Errorf("unknown command %q", rest[0])
		}
		command = CommandLogin
		if err := fs.Parse(rest[1:]); err != nil {
			return Config{}, err
		}
		if extra := fs.Args(); len(extra) > 0 {
			return Config{}, fmt.Errorf("unexpected argument %q", extra[0])
		}
	}

	if *width < 0 {
		return Config{}, fmt.Errorf("width must be >= 0 (got %d)", *width)
	}
	if *height < 0 {
		return Config{}, fmt.Errorf("height must be >= 0 (got %d)", *height)
	}

	cfg := Config{
		App: app.Config{
			SessionDir:        *sessionDir,
			CredentialBackend: *backend,
			APIURL:            *apiURL,
			Timeout:           *timeout,
			RefreshInterval:   *refresh,
			CredentialPoll:    *poll,
			RedirectURL:       *redirect,
			ClientID:          envOrDefault(env, envClientID, orString(file.ClientID, oauth.PlaceholderClientID)),
			ClientSecret:      envOrDefault(env, envClientSecret, orString(file.ClientSecret, oauth.PlaceholderClientSecret)),
			Width:             *width,
			Height:            *height,
		},
		Logging: Logging{
			FilePath: *logFile,
			Trace:    *trace,
		},
		Command: command,
		File:    path,
		Flags: map[string]string{
			"config":             path,
			"session-dir":        *sessionDir,
			"credential-backend": *backend,
			"api-url":            *apiURL,
			"timeout":            timeout.String(),
			"refresh-interval":   refresh.String(),
			"credential-poll":    poll.String(),
			"redirect-url":       *redirect,
			"width":              strconv.Itoa(*width),
			"height":             strconv.Itoa(*height),
			"trace":              strconv.FormatBool(*trace),
			"logFile":            *logFile,
		},
		Args: append([]string(nil), args...),
	}

	return cfg, nil
}

// configPath picks the config file from -config, the environment or the XDG
// default. explicit is false only for the default location.
func configPath(args []string, env map[string]string) (string, bool) {
	for i, arg := range args {
		if arg == "--" {
			break
		}
		if !strings.HasPrefix(arg, "-") {
			continue
		}
		name := strings.TrimLeft(arg, "-")
		if v, ok := strings.CutPrefix(name, "config="); ok {
			return v, true
		}
		if name == "config" && i+1 < len(args) {
			return args[i+1], true
		}
	}
	if v := strings.TrimSpace(env[envConfigFile]); v != "" {
		return v, true
	}
	base := env["XDG_CONFIG_HOME"]
	if base == "" {
		home := env["HOME"]
		if home == "" {
			return "", false
		}
		base = filepath.Join(home, ".config")
	}
	return filepath.Join(base, "spiris-tui", "config.yaml"), false
}

func readFile(path string, explicit bool) (fileConfig, error) {
	var file fileConfig
	if path == "" {
		return file, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) && !explicit {
			return file, nil
		}
		return file, fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, &file); err != nil {
		return file, fmt.Errorf("parse config file %s: %w", path, err)
	}
	return file, nil
}

type fileDurations struct {
	timeout time.Duration
	refresh time.Duration
	poll    time.Duration
}

func (f fileConfig) durations() (fileDurations, error) {
	out := fileDurations{timeout: 30 * time.Second, poll: 2 * time.Second}
	for _, entry := range []struct {
		name  string
		value string
		dst   *time.Duration
	}{
		{"timeout", f.Timeout, &out.timeout},
		{"refresh_interval", f.RefreshInterval, &out.refresh},
		{"credential_poll", f.CredentialPoll, &out.poll},
	} {
		if strings.TrimSpace(entry.value) == "" {
			continue
		}
		d, err := time.ParseDuration(entry.value)
		if err != nil {
			return out, fmt.Errorf("%s: %w", entry.name, err)
		}
		*entry.dst = d
	}
	return out, nil
}

func parseEnv(environ []string) map[string]string {
	values := make(map[string]string, len(environ))
	for _, entry := range environ {
		if entry == "" {
			continue
		}
		parts := strings.SplitN(entry, "=", 2)
		if len(parts) != 2 {
			continue
		}
		values[parts[0]] = parts[1]
	}
	return values
}

func orString(v, fallback string) string {
	if strings.TrimSpace(v) == "" {
		return fallback
	}
	return v
}

func envOrDefault(env map[string]string, key, fallback string) string {
	if v, ok := env[key]; ok && strings.TrimSpace(v) != "" {
		return v
	}
	return fallback
}

func envOrInt(env map[string]string, key string, fallback int) int {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return parsed
}

func envOrBool(env map[string]string, key string, fallback bool) bool {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return parsed
}

func envOrDuration(env map[string]string, key string, fallback time.Duration) time.Duration {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return parsed
}

// MustLoad returns configuration or exits.
func MustLoad() Config {
	cfg, err := Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(2)
	}
	return cfg
}

// Validate ensures required minimum configuration is present.
func Validate(cfg Config) error {
	switch cfg.App.CredentialBackend {
	case credential.BackendFile, credential.BackendKeyring:
	default:
		return fmt.Errorf("credential backend must be %q or %q (got %q)", credential.BackendFile, credential.BackendKeyring, cfg.App.CredentialBackend)
	}
	if strings.TrimSpace(cfg.App.SessionDir) == "" {
		return errors.New("session dir must not be empty")
	}
	for name, d := range map[string]time.Duration{
		"timeout":          cfg.App.Timeout,
		"refresh-interval": cfg.App.RefreshInterval,
		"credential-poll":  cfg.App.CredentialPoll,
	} {
		if d < 0 {
			return fmt.Errorf("%s must be >= 0 (got %s)", name, d)
		}
	}
	return nil
}
