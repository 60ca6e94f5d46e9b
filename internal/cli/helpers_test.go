package cli

import (
	"bytes"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/alnah/go-twilio-tools/internal/config"
)

// ---------------------------------------------------------------------------
// syncBuffer - thread-safe bytes.Buffer for test output
// ---------------------------------------------------------------------------

type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (n int, err error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

// Compile-time check that syncBuffer implements io.Writer.
var _ io.Writer = (*syncBuffer)(nil)

// ---------------------------------------------------------------------------
// testEnv - creates a fully mocked Env for testing
// ---------------------------------------------------------------------------

// testIO exposes the buffers wired into a test Env.
type testIO struct {
	stdout *syncBuffer
	stderr *syncBuffer
}

// testEnv returns an Env backed by client, with credentials in the
// environment and no config file. stdin feeds confirmation answers.
func testEnv(client *mockClient, stdin string) (*Env, *mockClientFactory, testIO) {
	tio := testIO{stdout: &syncBuffer{}, stderr: &syncBuffer{}}
	factory := &mockClientFactory{client: client}
	env := &Env{
		Stdin:         strings.NewReader(stdin),
		Stdout:        tio.stdout,
		Stderr:        tio.stderr,
		Getenv:        staticEnv(map[string]string{config.EnvAccountSID: testSID, config.EnvAuthToken: testToken}),
		Now:           fixedTime(time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC)),
		ConfigLoader:  &mockConfigLoader{},
		ClientFactory: factory,
	}
	return env, factory, tio
}

// ---------------------------------------------------------------------------
// Test helpers
// ---------------------------------------------------------------------------

const (
	testSID   = "AC0123456789abcdef0123456789abcdef"
	testToken = "test-token"
)

// fixedTime returns a function that always returns the given time.
func fixedTime(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

// staticEnv returns a getenv function that returns values from the given map.
func staticEnv(env map[string]string) func(string) string {
	return func(key string) string {
		return env[key]
	}
}

// configWith returns a ConfigLoader that returns cfg.
func configWith(cfg config.Config) *mockConfigLoader {
	return &mockConfigLoader{
		LoadFunc: func() (config.Config, error) {
			return cfg, nil
		},
	}
}
