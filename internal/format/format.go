package format

import (
	"fmt"
	"time"
)

// providerLayout is the timestamp format used in Twilio 2010-04-01 resources
// (RFC 1123 with a numeric zone).
const providerLayout = time.RFC1123Z

// timestampLayout is how timestamps appear in CSV and verbose output.
const timestampLayout = "2006-01-02 15:04:05-07:00"

// Timestamp renders a provider timestamp as "2006-01-02 15:04:05+00:00".
// Empty input stays empty; unparseable input is returned unchanged.
func Timestamp(s string) string {
	if s == "" {
		return ""
	}
	t, err := time.Parse(providerLayout, s)
	if err != nil {
		return s
	}
	return t.Format(timestampLayout)
}

// Date formats t as yyyy-mm-dd.
func Date(t time.Time) string {
	return t.Format("2006-01-02")
}

// Size formats a size in bytes for human display.
// Uses MB for sizes >= 1MB, KB otherwise.
func Size(bytes int64) string {
	const (
		kb = 1024
		mb = 1024 * kb
	)
	if bytes >= mb {
		return fmt.Sprintf("%d MB", bytes/mb)
	}
	if bytes >= kb {
		return fmt.Sprintf("%d KB", bytes/kb)
	}
	if bytes == 1 {
		return "1 byte"
	}
	return fmt.Sprintf("%d bytes", bytes)
}
