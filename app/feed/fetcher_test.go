package feed

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestFetcher_SendsHeaders(t *testing.T) {
	var gotUserAgent, gotCookie string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUserAgent = r.Header.Get("User-Agent")
		gotCookie = r.Header.Get("Cookie")
		w.Write([]byte("<rss/>"))
	}))
	defer server.Close()

	fetcher := NewFetcher(server.Client(), "feed-notify/1.0", "session=abc", 5*time.Second)

	resp, err := fetcher.Fetch(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	if gotUserAgent != "feed-notify/1.0" {
		t.Errorf("Expected User-Agent 'feed-notify/1.0', got '%s'", gotUserAgent)
	}
	if gotCookie != "session=abc" {
		t.Errorf("Expected Cookie 'session=abc', got '%s'", gotCookie)
	}
	if !resp.IsSuccess() {
		t.Errorf("Expected success status, got %d", resp.StatusCode)
	}
	if string(resp.Body) != "<rss/>" {
		t.Errorf("Expected body '<rss/>', got '%s'", string(resp.Body))
	}
}

func TestFetcher_NonSuccessStatusIsNotAnError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	fetcher := NewFetcher(server.Client(), "", "", time.Second)

	resp, err := fetcher.Fetch(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if resp.StatusCode != http.StatusForbidden {
		t.Errorf("Expected status 403, got %d", resp.StatusCode)
	}
	if resp.IsSuccess() {
		t.Error("Expected 403 not to be a success")
	}
}

func TestFetcher_Timeout(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer server.Close()
	defer close(release)

	fetcher := NewFetcher(server.Client(), "", "", 50*time.Millisecond)

	if _, err := fetcher.Fetch(context.Background(), server.URL); err == nil {
		t.Error("Expected timeout error, got nil")
	}
}
