package api

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"aiswei_bridge/internal/auth"
)

var testCreds = auth.Credentials{
	AppKey:    "K",
	AppSecret: "S",
	APIKey:    "A",
	Token:     "T",
	SN:        "SN1",
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func fixedClock() time.Time {
	return time.Date(2026, 10, 17, 12, 0, 0, 0, time.Local)
}

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewClient(server.URL, testCreds, 5*time.Second, discardLogger(), WithClock(fixedClock))
}

// verifySignature recomputes the signature over the query the server actually received.
func verifySignature(r *http.Request) bool {
	sts := auth.StringToSign(r.Method, r.URL.RequestURI(), r.Header.Get("X-Ca-Key"))
	return auth.Sign(sts, testCreds.AppSecret) == r.Header.Get("X-Ca-Signature")
}

func TestExecute_SignedQueryMatchesSentQuery(t *testing.T) {
	var gotURI string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotURI = r.URL.RequestURI()
		if !verifySignature(r) {
			w.WriteHeader(http.StatusForbidden)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":200,"info":"success","data":[]}`))
	})

	resp, err := client.Execute(context.Background(), "/pro/test")
	require.NoError(t, err)
	assert.True(t, resp.Success())
	assert.Equal(t, "/pro/test?apikey=A&isnos=SN1&token=T", gotURI)
}

func TestExecute_Headers(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "app 1.0", r.Header.Get("User-Agent"))
		assert.Equal(t, "application/json; charset=UTF-8", r.Header.Get("Content-Type"))
		assert.Equal(t, "application/json", r.Header.Get("Accept"))
		assert.Equal(t, "X-Ca-Key", r.Header.Get("X-Ca-Signature-Headers"))
		assert.Equal(t, "K", r.Header.Get("X-Ca-Key"))
		assert.NotEmpty(t, r.Header.Get("X-Ca-Signature"))
		_, _ = w.Write([]byte(`{}`))
	})

	_, err := client.Execute(context.Background(), "/pro/test")
	require.NoError(t, err)
}

func TestExecute_NonOKStatus(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Ca-Error-Message", "Invalid Signature")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte("bad signature"))
	})

	resp, err := client.Execute(context.Background(), "/pro/test")
	assert.Nil(t, resp)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrHTTPStatus)

	var apiErr *Error
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, KindHTTP, apiErr.Kind)
	assert.Equal(t, http.StatusBadRequest, apiErr.Status)
	assert.Equal(t, "bad signature", apiErr.Body)
	assert.Equal(t, "Invalid Signature", apiErr.Header.Get("X-Ca-Error-Message"))

	doc := apiErr.Document()
	assert.Equal(t, "bad signature", doc["error"])
	assert.Equal(t, http.StatusBadRequest, doc["status"])
	assert.Equal(t, "Invalid Signature", doc["headers"].(map[string]string)["X-Ca-Error-Message"])
}

func TestExecute_InvalidJSON(t *testing.T) {
	tests := map[string]string{
		"not json":         "invalid json",
		"trailing garbage": `{"status":200,"info":"success","data":[]}<html>proxy error</html>`,
	}

	for name, body := range tests {
		t.Run(name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(body))
			})

			resp, err := client.Execute(context.Background(), "/pro/test")
			assert.Nil(t, resp)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrParse)

			var apiErr *Error
			require.True(t, errors.As(err, &apiErr))
			assert.Equal(t, http.StatusOK, apiErr.Status)
			assert.Equal(t, map[string]any{"error": ErrParse.Error(), "status": http.StatusOK}, apiErr.Document())
		})
	}
}

func TestExecute_LogsOmitCredentials(t *testing.T) {
	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug}))

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"status":200,"info":"success","data":[]}`))
	}))
	client := NewClient(server.URL, testCreds, time.Second, logger)

	_, err := client.Execute(context.Background(), "/pro/test")
	require.NoError(t, err)

	server.Close()
	_, err = client.Execute(context.Background(), "/pro/test")
	require.ErrorIs(t, err, ErrTransport)

	assert.Contains(t, logs.String(), "path=/pro/test")
	assert.NotContains(t, logs.String(), "apikey=")
	assert.NotContains(t, logs.String(), "token=")
	assert.NotContains(t, err.Error(), "token=")
	assert.NotContains(t, err.Error(), "apikey=")
}

func TestExecute_TransportError(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()

	client := NewClient(url, testCreds, time.Second, discardLogger())

	resp, err := client.Execute(context.Background(), "/pro/test")
	assert.Nil(t, resp)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrTransport)
	assert.NotErrorIs(t, err, ErrHTTPStatus)

	var apiErr *Error
	require.True(t, errors.As(err, &apiErr))
	assert.NotEmpty(t, apiErr.Document()["error"])
}

func TestExecute_Timeout(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
	}))
	defer server.Close()
	defer close(release)

	client := NewClient(server.URL, testCreds, 50*time.Millisecond, discardLogger())

	_, err := client.Execute(context.Background(), "/pro/test")
	assert.ErrorIs(t, err, ErrTransport)
}

func TestWithParams(t *testing.T) {
	assert.Equal(t, "/pro/x", withParams("/pro/x", nil))
	assert.Equal(t, "/pro/x?a=1&b=2", withParams("/pro/x", []Param{{"a", "1"}, {"b", "2"}}))
	assert.Equal(t, "/pro/x?z=0&a=1", withParams("/pro/x?z=0", []Param{{"a", "1"}}))
}

func TestErrorKindString(t *testing.T) {
	assert.Equal(t, "transport", KindTransport.String())
	assert.Equal(t, "http", KindHTTP.String())
	assert.Equal(t, "parse", KindParse.String())
	assert.Equal(t, "unknown", Kind(0).String())
}
