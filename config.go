package redis

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/url"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const (
	// DefaultHost and DefaultPort locate the server when neither a config
	// nor REDIS_URL says otherwise.
	DefaultHost = "127.0.0.1"
	DefaultPort = 6379

	// EnvURL is the environment variable consulted when a client is
	// constructed without options.
	EnvURL = "REDIS_URL"
)

// Config holds connection options for a Client.
type Config struct {
	// Host and Port locate the server. Defaults: 127.0.0.1:6379.
	Host string
	Port int

	// Database is the database index selected during the handshake.
	// Zero means no SELECT is issued.
	Database int

	// Password, when set, is sent as an AUTH command during the handshake
	// before any other traffic.
	Password string

	// DisableNoDelay turns off TCP_NODELAY on the connection. The zero value
	// leaves it enabled, which is the default.
	DisableNoDelay bool

	// Timeout is the socket idle timeout. Zero disables it. When it fires,
	// it flows through the same failure path as any other transport error.
	Timeout time.Duration

	// RawMode makes correlated replies opaque: error-typed replies still
	// resolve their call successfully, carrying the decoded value.
	RawMode bool

	// Logger receives debug logging. Defaults to slog.Default().
	Logger *slog.Logger

	// for testing purposes only
	dialer func(ctx context.Context) (net.Conn, error)
}

// DefaultConfig returns the configuration used when no options are given.
func DefaultConfig() *Config {
	return &Config{
		Host: DefaultHost,
		Port: DefaultPort,
	}
}

// Addr returns the host:port dial target.
func (c *Config) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

// ParseURL parses a connection string of the form
//
//	scheme://[database:password@]host:port
//
// into a Config. The user part of the URL selects the database index and the
// password part is the AUTH credential.
func ParseURL(rawURL string) (*Config, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("redis: parse url: %w", err)
	}

	cfg := DefaultConfig()

	if host := u.Hostname(); host != "" {
		cfg.Host = host
	}
	if portStr := u.Port(); portStr != "" {
		port, err := strconv.Atoi(portStr)
		if err != nil {
			return nil, fmt.Errorf("redis: invalid port %q", portStr)
		}
		cfg.Port = port
	}

	if u.User != nil {
		if db := u.User.Username(); db != "" {
			n, err := strconv.Atoi(db)
			if err != nil {
				return nil, fmt.Errorf("redis: invalid database index %q", db)
			}
			cfg.Database = n
		}
		if password, ok := u.User.Password(); ok {
			cfg.Password = password
		}
	}

	return cfg, nil
}

// ConfigFromEnv resolves configuration from the environment: .env files are
// loaded if present, then REDIS_URL is parsed when set. Resolution happens
// once, at construction; the result is passed around as an ordinary value.
func ConfigFromEnv() *Config {
	_ = godotenv.Load(".env")
	_ = godotenv.Load(".env.local")

	if rawURL := os.Getenv(EnvURL); rawURL != "" {
		if cfg, err := ParseURL(rawURL); err == nil {
			return cfg
		}
	}
	return DefaultConfig()
}

// withDefaults fills in zero fields that have non-zero defaults.
func (c *Config) withDefaults() *Config {
	cfg := *c
	if cfg.Host == "" {
		cfg.Host = DefaultHost
	}
	if cfg.Port == 0 {
		cfg.Port = DefaultPort
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	return &cfg
}
