package httpclient

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

type echoResult struct {
	Query string `json:"query"`
}

func TestPost_EncodesJSONAndDecodesResult(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s", r.Method)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("content-type = %q", ct)
		}
		if r.Header.Get("X-Test") != "1" {
			t.Errorf("default header missing")
		}
		body, _ := io.ReadAll(r.Body)
		w.Write(body)
	}))
	defer srv.Close()

	client, err := NewInstrumentedClient(
		WithProviderName("test"),
		WithBaseURL(srv.URL),
		WithHeaders(map[string]string{"X-Test": "1"}),
		WithRequestTimeout(time.Second),
	)
	if err != nil {
		t.Fatalf("NewInstrumentedClient: %v", err)
	}

	var out echoResult
	resp, err := client.NewRequestWithOptions(WithLabels(NewLabel("op", "echo"))).
		SetBody(map[string]string{"query": "{ ping }"}).
		SetResult(&out).
		Post(context.Background(), "/graphql")
	if err != nil {
		t.Fatalf("Post: %v", err)
	}
	if resp.IsError() {
		t.Fatalf("unexpected status %d", resp.StatusCode)
	}
	if out.Query != "{ ping }" {
		t.Errorf("decoded query = %q", out.Query)
	}
}

func TestPost_DecodeErrorIsTyped(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html>not json</html>"))
	}))
	defer srv.Close()

	client, err := NewInstrumentedClient()
	if err != nil {
		t.Fatal(err)
	}

	var out echoResult
	_, err = client.NewRequest().SetResult(&out).Post(context.Background(), srv.URL)

	var decodeErr *DecodeError
	if !errors.As(err, &decodeErr) {
		t.Fatalf("expected DecodeError, got %v", err)
	}
	if decodeErr.StatusCode != http.StatusOK {
		t.Errorf("status = %d", decodeErr.StatusCode)
	}
}

func TestPost_ErrorHandlerRuns(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "overloaded", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	client, err := NewInstrumentedClient()
	if err != nil {
		t.Fatal(err)
	}

	sentinel := errors.New("upstream down")
	resp, err := client.NewRequestWithOptions(WithResponseErrorHandler(func(status int, _ []byte) error {
		if status >= 500 {
			return sentinel
		}
		return nil
	})).Get(context.Background(), srv.URL)

	if !errors.Is(err, sentinel) {
		t.Fatalf("err = %v, want sentinel", err)
	}
	if resp == nil || resp.StatusCode != http.StatusServiceUnavailable {
		t.Errorf("response should still be returned")
	}
}

func TestGet_NetworkFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	url := srv.URL
	srv.Close()

	client, err := NewInstrumentedClient(WithRequestTimeout(time.Second))
	if err != nil {
		t.Fatal(err)
	}

	if _, err := client.NewRequest().Get(context.Background(), url); err == nil {
		t.Error("expected connection error")
	}
}
