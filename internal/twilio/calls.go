package twilio

import (
	"context"
	"iter"
	"net/url"
	"strconv"
	"time"
)

// CallStatus is the lifecycle state of a call.
type CallStatus string

// Call statuses reported by the API.
const (
	CallStatusQueued     CallStatus = "queued"
	CallStatusRinging    CallStatus = "ringing"
	CallStatusInProgress CallStatus = "in-progress"
	CallStatusCompleted  CallStatus = "completed"
	CallStatusBusy       CallStatus = "busy"
	CallStatusFailed     CallStatus = "failed"
	CallStatusNoAnswer   CallStatus = "no-answer"
	CallStatusCanceled   CallStatus = "canceled"
)

// Call is a call detail record. Timestamps are kept as sent by the API
// (RFC 1123); absent or null values decode to the empty string.
type Call struct {
	SID            string     `json:"sid"`
	ParentCallSID  string     `json:"parent_call_sid"`
	DateCreated    string     `json:"date_created"`
	DateUpdated    string     `json:"date_updated"`
	AccountSID     string     `json:"account_sid"`
	To             string     `json:"to"`
	ToFormatted    string     `json:"to_formatted"`
	From           string     `json:"from"`
	FromFormatted  string     `json:"from_formatted"`
	PhoneNumberSID string     `json:"phone_number_sid"`
	Status         CallStatus `json:"status"`
	StartTime      string     `json:"start_time"`
	EndTime        string     `json:"end_time"`
	Duration       string     `json:"duration"` // seconds
	Price          string     `json:"price"`    // decimal, null until rated
	PriceUnit      string     `json:"price_unit"`
	Direction      string     `json:"direction"`
	AnsweredBy     string     `json:"answered_by"`
	ForwardedFrom  string     `json:"forwarded_from"`
	CallerName     string     `json:"caller_name"`
}

// CallFilter restricts ListCalls by start time. Zero values are not sent.
type CallFilter struct {
	StartTimeAfter  time.Time
	StartTimeBefore time.Time
}

func (f CallFilter) values(pageSize int) url.Values {
	q := url.Values{}
	q.Set("PageSize", strconv.Itoa(pageSize))
	if !f.StartTimeAfter.IsZero() {
		q.Set("StartTime>", formatFilterTime(f.StartTimeAfter))
	}
	if !f.StartTimeBefore.IsZero() {
		q.Set("StartTime<", formatFilterTime(f.StartTimeBefore))
	}
	return q
}

// ListCalls returns the calls of the account matching filter, newest first
// as ordered by the API.
func (c *Client) ListCalls(ctx context.Context, filter CallFilter) iter.Seq2[Call, error] {
	return list[Call](ctx, c, c.accountPath()+"/Calls.json", "calls", filter.values(c.pageSize))
}
