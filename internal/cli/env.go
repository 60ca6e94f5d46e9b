package cli

import (
	"context"
	"io"
	"iter"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/alnah/go-twilio-tools/internal/config"
	"github.com/alnah/go-twilio-tools/internal/twilio"
)

// Env holds injectable dependencies for CLI commands.
// This is the central injection point for testing CLI commands in isolation.
//
// All fields have sensible defaults via DefaultEnv(). Tests can override
// specific fields using the With* options or by creating a custom Env.
//
// Env must not be nil when passed to command functions. Use DefaultEnv()
// or NewEnv() to create a valid instance.
type Env struct {
	// I/O and environment
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
	Getenv func(string) string
	Now    func() time.Time

	// Factories for domain objects
	ConfigLoader  ConfigLoader
	ClientFactory ClientFactory
}

// ConfigLoader loads and provides access to configuration.
type ConfigLoader interface {
	Load() (config.Config, error)
}

// Client is the subset of the Twilio API used by the commands.
// List methods return a fresh, forward-only sequence on every call.
type Client interface {
	FetchAccount(ctx context.Context, sid string) (twilio.Account, error)
	ListCalls(ctx context.Context, filter twilio.CallFilter) iter.Seq2[twilio.Call, error]
	ListRecordings(ctx context.Context, filter twilio.RecordingFilter) iter.Seq2[twilio.Recording, error]
	DeleteRecording(ctx context.Context, sid string) error
	DownloadRecording(ctx context.Context, sid string, w io.Writer) (int64, error)
}

// ClientFactory creates authenticated API clients.
type ClientFactory interface {
	NewClient(creds Credentials, logger *zap.Logger) (Client, error)
}

// EnvOption configures an Env.
type EnvOption func(*Env)

// WithStdin sets the reader used for interactive confirmation.
func WithStdin(r io.Reader) EnvOption {
	return func(e *Env) {
		e.Stdin = r
	}
}

// WithStdout sets the stdout writer.
func WithStdout(w io.Writer) EnvOption {
	return func(e *Env) {
		e.Stdout = w
	}
}

// WithStderr sets the stderr writer.
func WithStderr(w io.Writer) EnvOption {
	return func(e *Env) {
		e.Stderr = w
	}
}

// WithGetenv sets the environment variable getter.
func WithGetenv(fn func(string) string) EnvOption {
	return func(e *Env) {
		e.Getenv = fn
	}
}

// WithNow sets the time provider.
func WithNow(fn func() time.Time) EnvOption {
	return func(e *Env) {
		e.Now = fn
	}
}

// WithConfigLoader sets the config loader.
func WithConfigLoader(l ConfigLoader) EnvOption {
	return func(e *Env) {
		e.ConfigLoader = l
	}
}

// WithClientFactory sets the API client factory.
func WithClientFactory(f ClientFactory) EnvOption {
	return func(e *Env) {
		e.ClientFactory = f
	}
}

// DefaultEnv returns an Env with production defaults.
func DefaultEnv() *Env {
	return &Env{
		Stdin:         os.Stdin,
		Stdout:        os.Stdout,
		Stderr:        os.Stderr,
		Getenv:        os.Getenv,
		Now:           time.Now,
		ConfigLoader:  &defaultConfigLoader{},
		ClientFactory: &defaultClientFactory{},
	}
}

// NewEnv creates an Env with the given options applied to defaults.
func NewEnv(opts ...EnvOption) *Env {
	env := DefaultEnv()
	for _, opt := range opts {
		opt(env)
	}
	return env
}

// ---------------------------------------------------------------------------
// Default implementations - delegate to real packages
// ---------------------------------------------------------------------------

// defaultConfigLoader implements ConfigLoader using the config package.
type defaultConfigLoader struct{}

func (defaultConfigLoader) Load() (config.Config, error) {
	return config.Load()
}

// defaultClientFactory implements ClientFactory using the twilio package.
type defaultClientFactory struct{}

func (defaultClientFactory) NewClient(creds Credentials, logger *zap.Logger) (Client, error) {
	c, err := twilio.NewClient(creds.AccountSID, creds.AuthToken,
		twilio.WithSubaccount(creds.Subaccount),
		twilio.WithLogger(logger),
	)
	if err != nil {
		return nil, err
	}
	return c, nil
}

// Compile-time interface verification.
var (
	_ ConfigLoader  = (*defaultConfigLoader)(nil)
	_ ClientFactory = (*defaultClientFactory)(nil)
	_ Client        = (*twilio.Client)(nil)
)
