package twilio

import (
	"context"
	"errors"
	"fmt"
	"io"
	"iter"
	"net/url"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/alnah/go-twilio-tools/internal/apierr"
	"github.com/alnah/go-twilio-tools/internal/format"
)

// Recording media download configuration.
const (
	// RecordingExt is the extension of downloaded recording media.
	RecordingExt = ".mp3"

	// downloadChunkSize is the size of each read from the media stream.
	downloadChunkSize = 1024

	// maxErrorBody bounds how much of a failed download response is kept.
	maxErrorBody = 64 * 1024
)

// Recording is a call recording resource.
type Recording struct {
	SID         string `json:"sid"`
	AccountSID  string `json:"account_sid"`
	CallSID     string `json:"call_sid"`
	DateCreated string `json:"date_created"`
	Duration    string `json:"duration"` // seconds
	URI         string `json:"uri"`
}

// RecordingFilter restricts ListRecordings by creation time. Zero values are not sent.
type RecordingFilter struct {
	CreatedAfter  time.Time
	CreatedBefore time.Time
}

func (f RecordingFilter) values(pageSize int) url.Values {
	q := url.Values{}
	q.Set("PageSize", strconv.Itoa(pageSize))
	if !f.CreatedAfter.IsZero() {
		q.Set("DateCreated>", formatFilterTime(f.CreatedAfter))
	}
	if !f.CreatedBefore.IsZero() {
		q.Set("DateCreated<", formatFilterTime(f.CreatedBefore))
	}
	return q
}

// ListRecordings returns the recordings of the account matching filter.
func (c *Client) ListRecordings(ctx context.Context, filter RecordingFilter) iter.Seq2[Recording, error] {
	return list[Recording](ctx, c, c.accountPath()+"/Recordings.json", "recordings", filter.values(c.pageSize))
}

// DeleteRecording deletes a recording and its media.
func (c *Client) DeleteRecording(ctx context.Context, sid string) error {
	resp, err := c.http.R().
		SetContext(ctx).
		Delete(c.accountPath() + "/Recordings/" + url.PathEscape(sid) + ".json")
	if err != nil {
		return apierr.Wrap(err)
	}
	if resp.IsError() {
		return apierr.FromResponse(resp.StatusCode(), resp.Body())
	}
	c.logger.Debug("deleted recording", zap.String("sid", sid))
	return nil
}

// RecordingURL returns the media URL of a recording.
func (c *Client) RecordingURL(sid string) string {
	return c.baseURL + c.accountPath() + "/Recordings/" + url.PathEscape(sid) + RecordingExt
}

// DownloadRecording streams the media of a recording into w, reading
// downloadChunkSize bytes at a time. Returns the number of bytes written.
// The response body is closed on every path.
func (c *Client) DownloadRecording(ctx context.Context, sid string, w io.Writer) (written int64, err error) {
	resp, err := c.http.R().
		SetContext(ctx).
		SetDoNotParseResponse(true).
		Get(c.RecordingURL(sid))
	if err != nil {
		return 0, apierr.Wrap(err)
	}
	body := resp.RawBody()
	defer func() {
		if closeErr := body.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("failed to close response body: %w", closeErr)
		}
	}()

	if resp.IsError() {
		msg, _ := io.ReadAll(io.LimitReader(body, maxErrorBody))
		return 0, apierr.FromResponse(resp.StatusCode(), msg)
	}

	buf := make([]byte, downloadChunkSize)
	for {
		n, readErr := body.Read(buf)
		if n > 0 {
			if _, writeErr := w.Write(buf[:n]); writeErr != nil {
				return written, fmt.Errorf("write recording %s: %w", sid, writeErr)
			}
			written += int64(n)
		}
		if errors.Is(readErr, io.EOF) {
			break
		}
		if readErr != nil {
			return written, apierr.Wrap(readErr)
		}
	}

	c.logger.Debug("downloaded recording", zap.String("sid", sid), zap.String("size", format.Size(written)))
	return written, nil
}
