package cli

import (
	"fmt"

	"github.com/alnah/go-twilio-tools/internal/config"
)

// Credentials identify the account the commands act on.
type Credentials struct {
	AccountSID string
	AuthToken  string
	// Subaccount, if set, is addressed with the parent account's credentials.
	Subaccount string
}

// resolveCredentials applies flag > environment > config file precedence.
// It has no side effects; getenv and cfg are supplied by the caller.
func resolveCredentials(flagSID, flagToken string, getenv func(string) string, cfg config.Config) (Credentials, error) {
	creds := Credentials{
		AccountSID: config.Resolve(flagSID, getenv(config.EnvAccountSID), cfg.AccountSID),
		AuthToken:  config.Resolve(flagToken, getenv(config.EnvAuthToken), cfg.AuthToken),
	}

	if creds.AccountSID == "" {
		return Credentials{}, fmt.Errorf("%w: no --account, nor environment variable %s, nor config %s",
			ErrMissingCredential, config.EnvAccountSID, config.KeyAccountSID)
	}
	if creds.AuthToken == "" {
		return Credentials{}, fmt.Errorf("%w: no --password, nor environment variable %s, nor config %s",
			ErrMissingCredential, config.EnvAuthToken, config.KeyAuthToken)
	}
	return creds, nil
}
