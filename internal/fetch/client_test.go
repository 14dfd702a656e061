package fetch

import (
	"testing"
	"time"
)

func TestClientFetch(t *testing.T) {
	client := NewClient(0)

	resp, err := client.Fetch("https://api.example.com/users?page=1")
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}

	if resp.Status != 200 {
		t.Errorf("Fetch() status = %d, want 200", resp.Status)
	}

	if resp.URL != "https://api.example.com/users?page=1" {
		t.Errorf("Fetch() url = %s, want the request URL", resp.URL)
	}

	if resp.Body == "" {
		t.Errorf("Fetch() returned an empty body")
	}

	if resp.FetchedAt.IsZero() {
		t.Errorf("Fetch() returned a zero FetchedAt")
	}
}

func TestClientFetchInvalidURL(t *testing.T) {
	client := NewClient(0)

	if _, err := client.Fetch("://not-a-url"); err == nil {
		t.Errorf("Fetch() error = nil, want error for invalid URL")
	}

	if _, err := client.Fetch("/relative/path"); err == nil {
		t.Errorf("Fetch() error = nil, want error for URL without host")
	}
}

func TestClientFetchLatency(t *testing.T) {
	latency := 50 * time.Millisecond
	client := NewClient(latency)

	start := time.Now()
	if _, err := client.Fetch("https://api.example.com/slow"); err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}

	if elapsed := time.Since(start); elapsed < latency {
		t.Errorf("Fetch() returned after %v, want at least %v", elapsed, latency)
	}
}
