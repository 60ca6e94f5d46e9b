package twilio

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/alnah/go-twilio-tools/internal/apierr"
)

// Account is a Twilio account or subaccount.
type Account struct {
	SID             string `json:"sid"`
	FriendlyName    string `json:"friendly_name"`
	Status          string `json:"status"`
	Type            string `json:"type"`
	OwnerAccountSID string `json:"owner_account_sid"`
}

// FetchAccount fetches an account by SID. It is also a cheap way to check
// that the credentials are valid.
func (c *Client) FetchAccount(ctx context.Context, sid string) (Account, error) {
	body, err := c.get(ctx, "/"+apiVersion+"/Accounts/"+url.PathEscape(sid)+".json", nil)
	if err != nil {
		return Account{}, err
	}

	var acct Account
	if err := json.Unmarshal(body, &acct); err != nil {
		return Account{}, fmt.Errorf("%w: decode account: %w", apierr.ErrAPI, err)
	}
	return acct, nil
}
