package cli

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/alnah/go-twilio-tools/internal/config"
)

// validConfigKeys lists all supported configuration keys.
var validConfigKeys = []string{
	config.KeyAccountSID,
	config.KeyAuthToken,
	config.KeyOutputDir,
}

// configEnvVars maps each key to the environment variable overriding it.
var configEnvVars = map[string]string{
	config.KeyAccountSID: config.EnvAccountSID,
	config.KeyAuthToken:  config.EnvAuthToken,
	config.KeyOutputDir:  config.EnvOutputDir,
}

// ConfigCmd creates the config command with subcommands.
// The env parameter provides injectable dependencies for testing.
func ConfigCmd(env *Env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage configuration settings",
		Long: `Manage persistent configuration settings.

Configuration is stored in ~/.config/go-twilio-tools/config, readable only
by its owner. Flags and environment variables take precedence over it.

Supported settings:
  account-sid   Account SID (env: TWILIO_ACCOUNT_SID)
  auth-token    Auth token (env: TWILIO_AUTH_TOKEN)
  output-dir    Default directory for CDR files (env: TWILIO_OUTPUT_DIR)`,
		Example: `  config set account-sid ACxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxx
  config get output-dir
  config list`,
	}

	cmd.AddCommand(configSetCmd(env))
	cmd.AddCommand(configGetCmd(env))
	cmd.AddCommand(configListCmd(env))

	return cmd
}

// configSetCmd creates the "config set" subcommand.
func configSetCmd(env *Env) *cobra.Command {
	return &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set a configuration value",
		Long: `Set a configuration value.

For output-dir the directory will be created if it doesn't exist.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigSet(env, args[0], args[1])
		},
	}
}

// configGetCmd creates the "config get" subcommand.
func configGetCmd(env *Env) *cobra.Command {
	return &cobra.Command{
		Use:   "get <key>",
		Short: "Get a configuration value",
		Long: `Get a configuration value.

Prints the value in effect to stdout, or nothing if not set. An
environment variable takes precedence over the config file. The auth
token is masked.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigGet(env, args[0])
		},
	}
}

// configListCmd creates the "config list" subcommand.
func configListCmd(env *Env) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all configuration values",
		Long: `List all configuration values.

Shows both values from the config file and environment variable overrides.
The auth token is masked.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigList(env)
		},
	}
}

// runConfigSet handles the "config set" command.
func runConfigSet(env *Env, key, value string) error {
	if !isValidConfigKey(key) {
		return fmt.Errorf("unknown config key %q (valid keys: %v)", key, validConfigKeys)
	}

	value = strings.TrimSpace(value)
	if value == "" {
		return fmt.Errorf("%s cannot be empty", key)
	}

	if key == config.KeyOutputDir {
		expanded := config.ExpandPath(value)
		if err := config.EnsureDir(expanded); err != nil {
			return fmt.Errorf("invalid output-dir: %w", err)
		}
		value = expanded
	}

	if err := config.Save(key, value); err != nil {
		return err
	}

	fmt.Fprintf(env.Stderr, "Set %s = %s\n", key, displayValue(key, value))
	return nil
}

// runConfigGet handles the "config get" command.
func runConfigGet(env *Env, key string) error {
	if !isValidConfigKey(key) {
		return fmt.Errorf("unknown config key %q (valid keys: %v)", key, validConfigKeys)
	}

	fileValue, err := config.Get(key)
	if err != nil {
		return err
	}

	// Same precedence the commands apply: environment over file.
	value := config.Resolve(env.Getenv(configEnvVars[key]), fileValue)
	if value != "" {
		fmt.Fprintln(env.Stdout, displayValue(key, value))
	}
	return nil
}

// runConfigList handles the "config list" command.
func runConfigList(env *Env) error {
	data, err := config.List()
	if err != nil {
		return err
	}

	out := make(map[string]string, len(data))
	for key, value := range data {
		out[key] = displayValue(key, value)
	}
	// Environment variables override the file, as in the commands.
	for _, key := range validConfigKeys {
		if envVal := env.Getenv(configEnvVars[key]); envVal != "" {
			out[key] = displayValue(key, envVal) + " (from env)"
		}
	}

	if len(out) == 0 {
		fmt.Fprintln(env.Stdout, "No configuration set.")
		fmt.Fprintln(env.Stdout, "\nAvailable settings:")
		for _, key := range validConfigKeys {
			fmt.Fprintf(env.Stdout, "  %s\n", key)
		}
		return nil
	}

	for _, key := range slices.Sorted(maps.Keys(out)) {
		fmt.Fprintf(env.Stdout, "%s=%s\n", key, out[key])
	}
	return nil
}

// isValidConfigKey checks if a key is a valid configuration key.
func isValidConfigKey(key string) bool {
	return slices.Contains(validConfigKeys, key)
}

// displayValue masks secrets for printing.
func displayValue(key, value string) string {
	if key == config.KeyAuthToken {
		return maskSecret(value)
	}
	return value
}

// maskSecret keeps the last four characters of s.
func maskSecret(s string) string {
	const visible = 4
	if len(s) <= visible {
		return strings.Repeat("*", len(s))
	}
	return strings.Repeat("*", len(s)-visible) + s[len(s)-visible:]
}
