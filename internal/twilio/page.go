package twilio

import (
	"context"
	"encoding/json"
	"fmt"
	"iter"
	"net/url"

	"go.uber.org/zap"

	"github.com/alnah/go-twilio-tools/internal/apierr"
)

// nextPageKey is the page field holding the relative URI of the next page.
const nextPageKey = "next_page_uri"

// list returns a lazy sequence over every item of a paginated resource.
// key names the JSON array holding the items (e.g. "calls").
// The first error is yielded once and ends the sequence.
func list[T any](ctx context.Context, c *Client, path, key string, query url.Values) iter.Seq2[T, error] {
	return func(yield func(T, error) bool) {
		var zero T
		next, q := path, query

		for page := 0; next != ""; page++ {
			body, err := c.get(ctx, next, q)
			if err != nil {
				yield(zero, err)
				return
			}

			items, nextURI, err := decodePage[T](body, key)
			if err != nil {
				yield(zero, fmt.Errorf("%w: decode %s page %d: %w", apierr.ErrAPI, key, page, err))
				return
			}
			c.logger.Debug("fetched page",
				zap.String("resource", key),
				zap.Int("page", page),
				zap.Int("items", len(items)),
				zap.Bool("more", nextURI != ""))

			for _, item := range items {
				if !yield(item, nil) {
					return
				}
			}

			// next_page_uri already carries the filters.
			next, q = nextURI, nil
		}
	}
}

// decodePage extracts the items under key and the next page URI.
// A null or absent next_page_uri means this is the last page.
func decodePage[T any](body []byte, key string) ([]T, string, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, "", err
	}

	var items []T
	if r, ok := raw[key]; ok {
		if err := json.Unmarshal(r, &items); err != nil {
			return nil, "", err
		}
	}

	var next string
	if r, ok := raw[nextPageKey]; ok {
		if err := json.Unmarshal(r, &next); err != nil {
			return nil, "", err
		}
	}
	return items, next, nil
}
