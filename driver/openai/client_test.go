package openai

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/require"

	"github.com/sanjeed5/litellm-retry-wrapper/driver"
)

func testRequest() *driver.Request {
	return &driver.Request{
		Model: "gpt-4",
		Messages: []driver.Message{
			{Role: "system", Content: "be brief"},
			{Role: "user", Content: "hi"},
		},
	}
}

func TestClientRequiresAPIKey(t *testing.T) {
	client := NewClient("", "")
	_, err := client.Complete(context.Background(), testRequest())
	require.Error(t, err)
	require.Contains(t, err.Error(), "api key")
}

func TestClientDefaultBaseURL(t *testing.T) {
	client := NewClient("", "key")
	require.Equal(t, defaultBaseURL, client.BaseURL)
	require.Equal(t, "openai", client.Name())
}

func TestClientValidatesRequest(t *testing.T) {
	client := NewClient("http://unused", "key")

	_, err := client.Complete(context.Background(), nil)
	require.Error(t, err)

	_, err = client.Complete(context.Background(), &driver.Request{Model: ""})
	require.Error(t, err)
	require.Contains(t, err.Error(), "model")

	_, err = client.Complete(context.Background(), &driver.Request{Model: "gpt-4"})
	require.Error(t, err)
	require.Contains(t, err.Error(), "message")
}

func TestClientSendsRequestAndParsesResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/chat/completions", r.URL.Path)
		require.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))

		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)

		var payload map[string]any
		require.NoError(t, json.Unmarshal(body, &payload))
		require.Equal(t, "gpt-4", payload["model"])
		require.Len(t, payload["messages"], 2)
		require.Equal(t, 0.2, payload["temperature"])
		_, hasMaxTokens := payload["max_tokens"]
		require.False(t, hasMaxTokens, "unset fields must be omitted from the wire")

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"model": "gpt-4",
			"choices": [{"message": {"role": "assistant", "content": "hello"}, "finish_reason": "stop"}],
			"usage": {"prompt_tokens": 8, "completion_tokens": 1, "total_tokens": 9}
		}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "test-key")
	client.HTTPClient = server.Client()

	req := testRequest()
	temp := 0.2
	req.Temperature = &temp

	resp, err := client.Complete(context.Background(), req)
	require.NoError(t, err)
	require.Equal(t, "hello", resp.Content)
	require.Equal(t, "stop", resp.FinishReason)
	require.Equal(t, "gpt-4", resp.Model)
	require.NotNil(t, resp.Usage)
	require.Equal(t, 9, resp.Usage.TotalTokens)
}

func TestClientReturnsProviderErrorOnFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Retry-After", "7")
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error": {"message": "rate limited"}}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "test-key")
	client.HTTPClient = server.Client()

	_, err := client.Complete(context.Background(), testRequest())
	require.Error(t, err)

	var perr *driver.ProviderError
	require.ErrorAs(t, err, &perr)
	require.Equal(t, "openai", perr.Provider)
	require.Equal(t, http.StatusTooManyRequests, perr.StatusCode)
	require.Contains(t, perr.Message, "rate limited")
	require.NotNil(t, perr.RetryAfter)
	require.Equal(t, 7*time.Second, *perr.RetryAfter)
}

func TestClientErrorWithoutRetryAfter(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`oops`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "test-key")
	client.HTTPClient = server.Client()

	_, err := client.Complete(context.Background(), testRequest())

	var perr *driver.ProviderError
	require.ErrorAs(t, err, &perr)
	require.Equal(t, http.StatusInternalServerError, perr.StatusCode)
	require.Nil(t, perr.RetryAfter)
}

func TestClientRejectsEmptyChoices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"choices": []}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "test-key")
	client.HTTPClient = server.Client()

	_, err := client.Complete(context.Background(), testRequest())
	require.Error(t, err)
	require.Contains(t, err.Error(), "no choices")
}

func TestClientTimeoutCancelsRequest(t *testing.T) {
	block := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		<-block
	}))
	defer server.Close()
	defer close(block)

	client := NewClient(server.URL, "test-key")
	client.HTTPClient = server.Client()
	client.Timeout = 20 * time.Millisecond

	_, err := client.Complete(context.Background(), testRequest())
	require.Error(t, err)
	require.True(t, errors.Is(err, context.DeadlineExceeded) || isTimeout(err))
}

func isTimeout(err error) bool {
	var ne interface{ Timeout() bool }
	return errors.As(err, &ne) && ne.Timeout()
}

func TestParseRetryAfter(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	d := parseRetryAfter("30", now)
	require.NotNil(t, d)
	require.Equal(t, 30*time.Second, *d)

	d = parseRetryAfter(now.Add(90*time.Second).Format(http.TimeFormat), now)
	require.NotNil(t, d)
	require.Equal(t, 90*time.Second, *d)

	require.Nil(t, parseRetryAfter("", now))
	require.Nil(t, parseRetryAfter("-5", now))
	require.Nil(t, parseRetryAfter("garbage", now))
	require.Nil(t, parseRetryAfter(now.Add(-time.Minute).Format(http.TimeFormat), now))
}
