package cli

import (
	"context"
	"io"
	"iter"
	"sync"

	"go.uber.org/zap"

	"github.com/alnah/go-twilio-tools/internal/config"
	"github.com/alnah/go-twilio-tools/internal/twilio"
)

// ---------------------------------------------------------------------------
// Mock ConfigLoader
// ---------------------------------------------------------------------------

type mockConfigLoader struct {
	LoadFunc func() (config.Config, error)

	mu        sync.Mutex
	loadCalls int
}

func (m *mockConfigLoader) Load() (config.Config, error) {
	m.mu.Lock()
	m.loadCalls++
	m.mu.Unlock()

	if m.LoadFunc != nil {
		return m.LoadFunc()
	}
	return config.Config{}, nil
}

func (m *mockConfigLoader) LoadCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.loadCalls
}

// ---------------------------------------------------------------------------
// Mock ClientFactory
// ---------------------------------------------------------------------------

type mockClientFactory struct {
	NewClientFunc func(creds Credentials, logger *zap.Logger) (Client, error)

	client *mockClient

	mu             sync.Mutex
	newClientCalls []Credentials
}

func (m *mockClientFactory) NewClient(creds Credentials, logger *zap.Logger) (Client, error) {
	m.mu.Lock()
	m.newClientCalls = append(m.newClientCalls, creds)
	m.mu.Unlock()

	if m.NewClientFunc != nil {
		return m.NewClientFunc(creds, logger)
	}
	if m.client == nil {
		m.client = &mockClient{}
	}
	return m.client, nil
}

func (m *mockClientFactory) NewClientCalls() []Credentials {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Credentials(nil), m.newClientCalls...)
}

// ---------------------------------------------------------------------------
// Mock Client
// ---------------------------------------------------------------------------

// mockClient serves in-memory calls and recordings. Each List call starts
// a fresh sequence over the slice; ListErr, if set, is yielded after the
// items.
type mockClient struct {
	Account    twilio.Account
	AccountErr error

	Calls      []twilio.Call
	Recordings []twilio.Recording
	ListErr    error

	DeleteFunc   func(ctx context.Context, sid string) error
	DownloadFunc func(ctx context.Context, sid string, w io.Writer) (int64, error)

	mu            sync.Mutex
	fetchCalls    []string
	callFilters   []twilio.CallFilter
	recFilters    []twilio.RecordingFilter
	deleteCalls   []string
	downloadCalls []string
}

func (m *mockClient) FetchAccount(ctx context.Context, sid string) (twilio.Account, error) {
	m.mu.Lock()
	m.fetchCalls = append(m.fetchCalls, sid)
	m.mu.Unlock()

	if m.AccountErr != nil {
		return twilio.Account{}, m.AccountErr
	}
	acct := m.Account
	if acct.SID == "" {
		acct.SID = sid
	}
	return acct, nil
}

func (m *mockClient) ListCalls(ctx context.Context, filter twilio.CallFilter) iter.Seq2[twilio.Call, error] {
	m.mu.Lock()
	m.callFilters = append(m.callFilters, filter)
	m.mu.Unlock()
	return seqOf(m.Calls, m.ListErr)
}

func (m *mockClient) ListRecordings(ctx context.Context, filter twilio.RecordingFilter) iter.Seq2[twilio.Recording, error] {
	m.mu.Lock()
	m.recFilters = append(m.recFilters, filter)
	m.mu.Unlock()
	return seqOf(m.Recordings, m.ListErr)
}

func (m *mockClient) DeleteRecording(ctx context.Context, sid string) error {
	m.mu.Lock()
	m.deleteCalls = append(m.deleteCalls, sid)
	m.mu.Unlock()

	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, sid)
	}
	return nil
}

func (m *mockClient) DownloadRecording(ctx context.Context, sid string, w io.Writer) (int64, error) {
	m.mu.Lock()
	m.downloadCalls = append(m.downloadCalls, sid)
	m.mu.Unlock()

	if m.DownloadFunc != nil {
		return m.DownloadFunc(ctx, sid, w)
	}
	n, err := io.WriteString(w, "audio:"+sid)
	return int64(n), err
}

func (m *mockClient) FetchCalls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.fetchCalls...)
}

func (m *mockClient) CallFilters() []twilio.CallFilter {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]twilio.CallFilter(nil), m.callFilters...)
}

func (m *mockClient) RecordingFilters() []twilio.RecordingFilter {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]twilio.RecordingFilter(nil), m.recFilters...)
}

func (m *mockClient) DeleteCalls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.deleteCalls...)
}

func (m *mockClient) DownloadCalls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.downloadCalls...)
}

// seqOf yields items in order, then err if non-nil.
func seqOf[T any](items []T, err error) iter.Seq2[T, error] {
	return func(yield func(T, error) bool) {
		for _, item := range items {
			if !yield(item, nil) {
				return
			}
		}
		if err != nil {
			var zero T
			yield(zero, err)
		}
	}
}

// Compile-time interface verification.
var (
	_ ConfigLoader  = (*mockConfigLoader)(nil)
	_ ClientFactory = (*mockClientFactory)(nil)
	_ Client        = (*mockClient)(nil)
)
