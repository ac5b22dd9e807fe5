package utils

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestNewHTTPClient_Configured(t *testing.T) {
	client := NewHTTPClient("http://example.test", 3*time.Second)

	if client == nil || client.Client == nil {
		t.Fatal("expected non-nil client")
	}
	if client.BaseURL != "http://example.test" {
		t.Errorf("expected base URL to be set, got %q", client.BaseURL)
	}
	if got := client.Header.Get("Accept"); got != "application/json" {
		t.Errorf("expected JSON Accept header, got %q", got)
	}
}

func TestNewHTTPClient_Independence(t *testing.T) {
	client1 := NewHTTPClient("http://a.test", time.Second)
	client2 := NewHTTPClient("http://b.test", time.Second)

	if client1.Client == client2.Client {
		t.Fatal("expected NewHTTPClient to return HTTPClients with different *resty.Client instances")
	}
}

func TestHTTPClient_UsesBaseURL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/version/" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		_, _ = WriteJSON(w, map[string]string{"version": "dev"}, http.StatusOK)
	}))
	defer srv.Close()

	var out map[string]string
	resp, err := NewHTTPClient(srv.URL, time.Second).R().SetResult(&out).Get("/api/version/")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode() != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode())
	}
	if out["version"] != "dev" {
		t.Errorf("expected version dev, got %q", out["version"])
	}
}
