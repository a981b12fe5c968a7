package form

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordedRequest struct {
	method      string
	body        string
	contentType string
}

func newRecordingServer(t *testing.T, handle func(w http.ResponseWriter, r *http.Request)) (*httptest.Server, func() []recordedRequest) {
	t.Helper()
	var (
		mu   sync.Mutex
		reqs []recordedRequest
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		mu.Lock()
		reqs = append(reqs, recordedRequest{method: r.Method, body: string(b), contentType: r.Header.Get("Content-Type")})
		mu.Unlock()
		handle(w, r)
	}))
	t.Cleanup(srv.Close)
	return srv, func() []recordedRequest {
		mu.Lock()
		defer mu.Unlock()
		return append([]recordedRequest(nil), reqs...)
	}
}

func TestHTTPValidatorSuccess(t *testing.T) {
	srv, requests := newRecordingServer(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, "sequenceDiagram\n")
	})

	markup, err := NewHTTPValidator(srv.URL+"/v1/validate", ClientOptions{}).Validate(context.Background(), "kind: Blueprint\n")

	require.NoError(t, err)
	assert.Equal(t, "sequenceDiagram\n", markup)
	reqs := requests()
	require.Len(t, reqs, 1)
	assert.Equal(t, http.MethodPost, reqs[0].method)
	assert.Equal(t, "kind: Blueprint\n", reqs[0].body)
	assert.Empty(t, reqs[0].contentType)
}

func TestHTTPValidatorStatusError(t *testing.T) {
	srv, _ := newRecordingServer(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "line 3: bad indent", http.StatusBadRequest)
	})

	_, err := NewHTTPValidator(srv.URL, ClientOptions{}).Validate(context.Background(), "x")

	var statusErr *StatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, http.StatusBadRequest, statusErr.Code)
	assert.Equal(t, "line 3: bad indent\n", statusErr.Body)
}

func TestHTTPValidatorTransportError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := NewHTTPValidator(url, ClientOptions{}).Validate(context.Background(), "x")

	require.Error(t, err)
	var statusErr *StatusError
	assert.False(t, errors.As(err, &statusErr))
}

func TestHTTPValidatorNoRetriesByDefault(t *testing.T) {
	srv, requests := newRecordingServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	})

	_, err := NewHTTPValidator(srv.URL, ClientOptions{}).Validate(context.Background(), "x")

	var statusErr *StatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, http.StatusServiceUnavailable, statusErr.Code)
	assert.Len(t, requests(), 1)
}

func TestHTTPValidatorRetries(t *testing.T) {
	var calls atomic.Int32
	srv, requests := newRecordingServer(t, func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		_, _ = io.WriteString(w, "sequenceDiagram\n")
	})

	v := NewHTTPValidator(srv.URL, ClientOptions{
		RetryMax:     3,
		RetryWaitMin: time.Millisecond,
		RetryWaitMax: 5 * time.Millisecond,
	})
	markup, err := v.Validate(context.Background(), "kind: Blueprint\n")

	require.NoError(t, err)
	assert.Equal(t, "sequenceDiagram\n", markup)
	reqs := requests()
	require.Len(t, reqs, 3)
	for _, r := range reqs {
		assert.Equal(t, "kind: Blueprint\n", r.body, "body is replayed on every attempt")
	}
}

func TestHTTPValidatorRetriesDoNotRepeatBadRequest(t *testing.T) {
	srv, requests := newRecordingServer(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusBadRequest)
	})

	v := NewHTTPValidator(srv.URL, ClientOptions{RetryMax: 3, RetryWaitMin: time.Millisecond, RetryWaitMax: time.Millisecond})
	_, err := v.Validate(context.Background(), "x")

	require.Error(t, err)
	assert.Len(t, requests(), 1)
}

func TestControllerAgainstServer(t *testing.T) {
	srv, requests := newRecordingServer(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Query().Get("mode") {
		case "bad":
			http.Error(w, "Failed to validate Blueprint. Error: blueprint has no actions", http.StatusBadRequest)
		case "broken":
			http.Error(w, "internal details", http.StatusInternalServerError)
		default:
			_, _ = io.WriteString(w, "sequenceDiagram\n")
		}
	})

	cases := []struct {
		mode string
		text string
	}{
		{"", "Blueprint is Valid!"},
		{"bad", "Failed to validate Blueprint. Error: blueprint has no actions\n"},
		{"broken", GenericErrorMessage},
	}
	for _, tc := range cases {
		page := newFakePage()
		c, err := NewController(page.view(), NewHTTPValidator(srv.URL+"/v1/validate?mode="+tc.mode, ClientOptions{}))
		require.NoError(t, err)
		require.NoError(t, c.Initialize())

		wait(t, c.Submit(context.Background()))

		assert.Equal(t, tc.text, page.snapshot().text, tc.mode)
	}
	reqs := requests()
	require.Len(t, reqs, len(cases))
	assert.Equal(t, PlaceholderText, reqs[0].body)
}
