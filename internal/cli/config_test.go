package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alnah/go-twilio-tools/internal/config"
)

// ---------------------------------------------------------------------------
// Unit tests for helper functions
// ---------------------------------------------------------------------------

func TestIsValidConfigKey(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		key      string
		expected bool
	}{
		{"account sid", config.KeyAccountSID, true},
		{"auth token", config.KeyAuthToken, true},
		{"output dir", config.KeyOutputDir, true},
		{"invalid random key", "random-key", false},
		{"empty string", "", false},
		{"wrong format with underscore", "output_dir", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			result := IsValidConfigKey(tt.key)
			if result != tt.expected {
				t.Errorf("IsValidConfigKey(%q) = %v, want %v", tt.key, result, tt.expected)
			}
		})
	}
}

func TestValidConfigKeysHaveEnvVars(t *testing.T) {
	t.Parallel()

	for _, key := range ValidConfigKeys {
		if configEnvVars[key] == "" {
			t.Errorf("config key %q has no environment variable", key)
		}
	}
}

func TestMaskSecret(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in, want string
	}{
		{"", ""},
		{"abc", "***"},
		{"abcd", "****"},
		{"0123456789abcdef", "************cdef"},
	}

	for _, tt := range tests {
		if got := maskSecret(tt.in); got != tt.want {
			t.Errorf("maskSecret(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

// ---------------------------------------------------------------------------
// Tests for runConfigSet
// ---------------------------------------------------------------------------

func TestRunConfigSet_Credentials(t *testing.T) {
	// Cannot use t.Parallel() with t.Setenv()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	stderr := &syncBuffer{}
	env := &Env{Stderr: stderr, Getenv: os.Getenv}

	if err := RunConfigSet(env, config.KeyAccountSID, "ACfile"); err != nil {
		t.Fatalf("RunConfigSet(account-sid) unexpected error: %v", err)
	}
	if err := RunConfigSet(env, config.KeyAuthToken, "supersecrettoken"); err != nil {
		t.Fatalf("RunConfigSet(auth-token) unexpected error: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("config.Load() unexpected error: %v", err)
	}
	if cfg.AccountSID != "ACfile" || cfg.AuthToken != "supersecrettoken" {
		t.Errorf("config.Load() = %+v, want saved credentials", cfg)
	}

	out := stderr.String()
	if strings.Contains(out, "supersecrettoken") {
		t.Errorf("stderr = %q, token printed in clear", out)
	}
	if !strings.Contains(out, "Set auth-token = ************oken") {
		t.Errorf("stderr = %q, want masked token", out)
	}
}

func TestRunConfigSet_OutputDir(t *testing.T) {
	// Cannot use t.Parallel() with t.Setenv()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	outputDir := filepath.Join(t.TempDir(), "new", "exports")
	env := &Env{Stderr: &syncBuffer{}, Getenv: os.Getenv}

	if err := RunConfigSet(env, config.KeyOutputDir, outputDir); err != nil {
		t.Fatalf("RunConfigSet(%q) unexpected error: %v", outputDir, err)
	}

	if info, err := os.Stat(outputDir); err != nil || !info.IsDir() {
		t.Errorf("output dir not created: %v", err)
	}
	cfg, err := config.Load()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.OutputDir != outputDir {
		t.Errorf("config.Load().OutputDir = %q, want %q", cfg.OutputDir, outputDir)
	}
}

func TestRunConfigSet_InvalidOutputDir(t *testing.T) {
	// Cannot use t.Parallel() with t.Setenv()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	file := filepath.Join(t.TempDir(), "file")
	if err := os.WriteFile(file, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	env := &Env{Stderr: &syncBuffer{}, Getenv: os.Getenv}
	err := RunConfigSet(env, config.KeyOutputDir, file)
	if err == nil || !strings.Contains(err.Error(), "invalid output-dir") {
		t.Errorf("RunConfigSet(file) error = %v, want invalid output-dir", err)
	}
}

func TestRunConfigSet_Rejects(t *testing.T) {
	t.Parallel()

	env := &Env{Stderr: &syncBuffer{}}

	tests := []struct {
		name, key, value, wantIn string
	}{
		{"unknown key", "invalid-key", "value", "unknown"},
		{"empty value", config.KeyAccountSID, "   ", "cannot be empty"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := RunConfigSet(env, tt.key, tt.value)
			if err == nil || !strings.Contains(err.Error(), tt.wantIn) {
				t.Errorf("RunConfigSet(%q, %q) error = %v, want containing %q", tt.key, tt.value, err, tt.wantIn)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// Tests for runConfigGet / runConfigList
// ---------------------------------------------------------------------------

func TestRunConfigGet(t *testing.T) {
	// Cannot use t.Parallel() with t.Setenv()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	if err := config.Save(config.KeyAccountSID, "ACfile"); err != nil {
		t.Fatal(err)
	}
	if err := config.Save(config.KeyAuthToken, "0123456789abcdef"); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		key  string
		env  map[string]string
		want string
	}{
		{"from file", config.KeyAccountSID, nil, "ACfile\n"},
		{"env wins over file", config.KeyAccountSID, map[string]string{config.EnvAccountSID: "ACenv"}, "ACenv\n"},
		{"file token is masked", config.KeyAuthToken, nil, "************cdef\n"},
		{"env token is masked", config.KeyAuthToken, map[string]string{config.EnvAuthToken: "env-token-9876"}, "**********9876\n"},
		{"env fallback", config.KeyOutputDir, map[string]string{config.EnvOutputDir: "/srv/cdrs"}, "/srv/cdrs\n"},
		{"unset", config.KeyOutputDir, nil, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stdout := &syncBuffer{}
			env := &Env{Stdout: stdout, Getenv: staticEnv(tt.env)}

			if err := RunConfigGet(env, tt.key); err != nil {
				t.Fatalf("RunConfigGet(%q) unexpected error: %v", tt.key, err)
			}
			if got := stdout.String(); got != tt.want {
				t.Errorf("RunConfigGet(%q) output = %q, want %q", tt.key, got, tt.want)
			}
		})
	}
}

func TestRunConfigGet_InvalidKey(t *testing.T) {
	t.Parallel()

	env := &Env{Stdout: &syncBuffer{}, Getenv: staticEnv(nil)}
	if err := RunConfigGet(env, "nope"); err == nil {
		t.Error("RunConfigGet(\"nope\") expected error, got nil")
	}
}

func TestRunConfigList(t *testing.T) {
	// Cannot use t.Parallel() with t.Setenv()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	if err := config.Save(config.KeyAuthToken, "0123456789abcdef"); err != nil {
		t.Fatal(err)
	}
	if err := config.Save(config.KeyAccountSID, "ACfile"); err != nil {
		t.Fatal(err)
	}

	stdout := &syncBuffer{}
	env := &Env{
		Stdout: stdout,
		Getenv: staticEnv(map[string]string{config.EnvAccountSID: "ACenv"}),
	}

	if err := RunConfigList(env); err != nil {
		t.Fatalf("RunConfigList() unexpected error: %v", err)
	}

	want := "account-sid=ACenv (from env)\nauth-token=************cdef\n"
	if got := stdout.String(); got != want {
		t.Errorf("RunConfigList() output = %q, want %q", got, want)
	}
}

func TestRunConfigList_Empty(t *testing.T) {
	// Cannot use t.Parallel() with t.Setenv()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	stdout := &syncBuffer{}
	env := &Env{Stdout: stdout, Getenv: staticEnv(nil)}

	if err := RunConfigList(env); err != nil {
		t.Fatal(err)
	}
	out := stdout.String()
	if !strings.Contains(out, "No configuration set.") {
		t.Errorf("output = %q, want empty notice", out)
	}
	for _, key := range ValidConfigKeys {
		if !strings.Contains(out, "  "+key+"\n") {
			t.Errorf("output = %q, want key %s listed", out, key)
		}
	}
}
