package index

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestReachable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	t.Cleanup(server.Close)

	if err := Reachable(context.Background(), server.URL, 2*time.Second); err != nil {
		t.Fatalf("Reachable: %v", err)
	}
}

func TestReachableHeadRejected(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodHead {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	t.Cleanup(server.Close)

	if err := Reachable(context.Background(), server.URL, 2*time.Second); err != nil {
		t.Fatalf("Reachable with GET fallback: %v", err)
	}
}

func TestReachableServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	t.Cleanup(server.Close)

	err := Reachable(context.Background(), server.URL, 2*time.Second)
	if err == nil {
		t.Fatal("expected error for 502")
	}
	if !strings.Contains(err.Error(), "502") {
		t.Errorf("error should carry the status, got: %v", err)
	}
}

func TestReachableConnectionRefused(t *testing.T) {
	// Grab a port that is closed by the time we probe it
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	if err := Reachable(context.Background(), url, 1*time.Second); err == nil {
		t.Fatal("expected error for closed port")
	}
}
