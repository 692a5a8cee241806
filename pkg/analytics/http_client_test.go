package analytics

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
)

func sampleSnapshot(t *testing.T) []byte {
	t.Helper()
	data, err := os.ReadFile("../../components/revenue/data/sample.yaml")
	if err != nil {
		t.Fatalf("read sample: %v", err)
	}
	return data
}

func TestHTTPClientFetchSnapshot(t *testing.T) {
	body := sampleSnapshot(t)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/bi/revenue/snapshot" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer secret" {
			t.Errorf("expected auth header, got %q", got)
		}
		w.Header().Set("Content-Type", "application/yaml")
		_, _ = w.Write(body)
	}))
	t.Cleanup(server.Close)

	client, err := NewHTTPClient(HTTPConfig{BaseURL: server.URL + "/bi/", APIKey: "secret"})
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	ds, err := client.FetchSnapshot(context.Background())
	if err != nil {
		t.Fatalf("fetch snapshot: %v", err)
	}
	if ds.Plan.Plan != 830400000 {
		t.Fatalf("expected plan 830.4M, got %v", ds.Plan.Plan)
	}
	if len(ds.Funnel.Stages) != 7 {
		t.Fatalf("expected 7 stages, got %d", len(ds.Funnel.Stages))
	}
	if ds.Source != server.URL+"/bi/revenue/snapshot" {
		t.Fatalf("unexpected source %q", ds.Source)
	}
}

func TestHTTPClientAcceptsJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/export.json" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		_, _ = w.Write([]byte(`{"version": "1", "bogus": true}`))
	}))
	t.Cleanup(server.Close)

	client, err := NewHTTPClient(HTTPConfig{BaseURL: server.URL, SnapshotPath: "export.json"})
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	if _, err := client.FetchSnapshot(context.Background()); err == nil {
		t.Fatalf("expected unknown field to be rejected")
	}
}

func TestHTTPClientRemoteError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "warehouse offline", http.StatusServiceUnavailable)
	}))
	t.Cleanup(server.Close)

	client, err := NewHTTPClient(HTTPConfig{BaseURL: server.URL})
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	_, err = client.FetchSnapshot(context.Background())
	var remote *RemoteError
	if !errors.As(err, &remote) {
		t.Fatalf("expected RemoteError, got %v", err)
	}
	if remote.Status != http.StatusServiceUnavailable || remote.Body != "warehouse offline" {
		t.Fatalf("unexpected remote error %+v", remote)
	}
}

func TestNewHTTPClientRequiresBaseURL(t *testing.T) {
	if _, err := NewHTTPClient(HTTPConfig{}); err == nil {
		t.Fatalf("expected error without base url")
	}
}
