// Package twilio is a small client for the Twilio 2010-04-01 REST API,
// covering the call, recording and account resources used by the cdrs and
// recordings tools.
//
// List operations return lazy sequences that follow next_page_uri until
// the last page. Each call to a List method starts a new sequence.
// All failures are classified with the apierr package.
package twilio

import (
	"context"
	"errors"
	"net/url"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"

	"github.com/alnah/go-twilio-tools/internal/apierr"
)

// API configuration.
const (
	defaultBaseURL  = "https://api.twilio.com"
	apiVersion      = "2010-04-01"
	defaultPageSize = 1000 // API maximum
	defaultTimeout  = 2 * time.Minute
	userAgent       = "go-twilio-tools"

	// filterTimeLayout is how instants are sent in list filters.
	filterTimeLayout = "2006-01-02T15:04:05Z"
)

// ErrMissingCredentials indicates an empty account SID or auth token.
var ErrMissingCredentials = errors.New("account SID and auth token are required")

// Client talks to the Twilio REST API on behalf of one account.
type Client struct {
	http       *resty.Client
	accountSID string // account whose resources are addressed
	baseURL    string
	pageSize   int
	timeout    time.Duration
	logger     *zap.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithSubaccount addresses the resources of a subaccount while still
// authenticating with the parent account's credentials.
func WithSubaccount(sid string) Option {
	return func(c *Client) {
		if sid != "" {
			c.accountSID = sid
		}
	}
}

// WithBaseURL sets a custom base URL (for testing or proxies).
func WithBaseURL(u string) Option {
	return func(c *Client) {
		c.baseURL = strings.TrimSuffix(u, "/")
	}
}

// WithPageSize sets the number of records requested per page.
func WithPageSize(n int) Option {
	return func(c *Client) {
		if n > 0 {
			c.pageSize = n
		}
	}
}

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithLogger sets the logger for request diagnostics.
func WithLogger(l *zap.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

// NewClient creates a Client authenticated with accountSID and authToken.
// Returns ErrMissingCredentials if either is empty.
func NewClient(accountSID, authToken string, opts ...Option) (*Client, error) {
	if accountSID == "" || authToken == "" {
		return nil, ErrMissingCredentials
	}

	c := &Client{
		accountSID: accountSID,
		baseURL:    defaultBaseURL,
		pageSize:   defaultPageSize,
		timeout:    defaultTimeout,
		logger:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}

	c.http = resty.New().
		SetBaseURL(c.baseURL).
		SetBasicAuth(accountSID, authToken).
		SetTimeout(c.timeout).
		SetHeader("Accept", "application/json").
		SetHeader("User-Agent", userAgent).
		SetLogger(c.logger.Sugar())

	return c, nil
}

// AccountSID returns the SID of the account whose resources are addressed.
func (c *Client) AccountSID() string {
	return c.accountSID
}

// accountPath returns the API path of the addressed account.
func (c *Client) accountPath() string {
	return "/" + apiVersion + "/Accounts/" + url.PathEscape(c.accountSID)
}

// get performs a GET and returns the body of a 2xx response.
func (c *Client) get(ctx context.Context, path string, query url.Values) ([]byte, error) {
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParamsFromValues(query).
		Get(path)
	if err != nil {
		return nil, apierr.Wrap(err)
	}
	if resp.IsError() {
		return nil, apierr.FromResponse(resp.StatusCode(), resp.Body())
	}
	return resp.Body(), nil
}

// formatFilterTime renders t in UTC for list filters.
func formatFilterTime(t time.Time) string {
	return t.UTC().Format(filterTimeLayout)
}
