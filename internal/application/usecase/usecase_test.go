package usecase

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/lite-lake/infra-bamctl/internal/config"
)

// fake address-manager plumbing shared by the accessor tests.

func writeJSON(t *testing.T, w http.ResponseWriter, status int, v any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/hal+json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		t.Errorf("encode response: %v", err)
	}
}

func decodeBody(t *testing.T, r *http.Request, v any) {
	t.Helper()
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		t.Fatalf("decode request body: %v", err)
	}
}

func dataPage(items ...map[string]any) map[string]any {
	if items == nil {
		items = []map[string]any{}
	}
	return map[string]any{"count": len(items), "data": items}
}

// installBase wires the session and configuration endpoints every test
// needs to open a session.
func installBase(t *testing.T, mux *http.ServeMux) {
	mux.HandleFunc("POST /api/v2/sessions", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusCreated, map[string]string{"basicAuthenticationCredentials": "dGVzdDp0ZXN0"})
	})
	mux.HandleFunc("GET /api/v2/configurations", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusOK, dataPage(map[string]any{"id": 100, "type": "Configuration", "name": "default"}))
	})
}

// installZone wires view+zone resolution for example.com.
func installZone(t *testing.T, mux *http.ServeMux) {
	mux.HandleFunc("GET /api/v2/views", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusOK, dataPage(map[string]any{"id": 200, "type": "View", "name": "external"}))
	})
	mux.HandleFunc("GET /api/v2/zones", func(w http.ResponseWriter, r *http.Request) {
		filter := r.URL.Query().Get("filter")
		if !strings.Contains(filter, "absoluteName:'example.com'") {
			writeJSON(t, w, http.StatusOK, dataPage())
			return
		}
		writeJSON(t, w, http.StatusOK, dataPage(map[string]any{"id": 300, "name": "example", "absoluteName": "example.com"}))
	})
}

func openSession(t *testing.T, mux *http.ServeMux, blocks ...string) (*Session, func()) {
	t.Helper()
	srv := httptest.NewServer(mux)

	settings := config.Settings{
		Host:      srv.URL,
		User:      "test",
		Password:  "test",
		Config:    "default",
		View:      "external",
		VerifyTLS: true,
		Blocks:    blocks,
		Timeout:   5 * time.Second,
	}

	session, err := Open(context.Background(), settings)
	if err != nil {
		srv.Close()
		t.Fatalf("Open: %v", err)
	}
	return session, func() {
		session.Close()
		srv.Close()
	}
}

func TestOpenResolvesConfiguration(t *testing.T) {
	mux := http.NewServeMux()
	installBase(t, mux)

	session, done := openSession(t, mux)
	defer done()

	if session.ConfigName() != "default" {
		t.Errorf("ConfigName() = %q", session.ConfigName())
	}
}

func TestOpenFailsFastOnBadSettings(t *testing.T) {
	// Validation failures must never reach the network.
	_, err := Open(context.Background(), config.Settings{})
	if err == nil {
		t.Fatal("Open with empty settings must fail")
	}
}
