package bluecat

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"gotest.tools/v3/assert"

	"github.com/lite-lake/infra-bamctl/internal/config"
	"github.com/lite-lake/infra-bamctl/internal/domain"
)

func testSettings(url string) config.Settings {
	return config.Settings{
		Host:      url,
		User:      "admin",
		Password:  "secret",
		Config:    "default",
		View:      "external",
		VerifyTLS: true,
		Timeout:   5 * time.Second,
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/hal+json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func loginHandler(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/v2/sessions", func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		json.NewDecoder(r.Body).Decode(&body)
		if body["username"] != "admin" || body["password"] != "secret" {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"code": "AuthenticationFailure"})
			return
		}
		writeJSON(w, http.StatusCreated, map[string]string{"basicAuthenticationCredentials": "YWRtaW46c2VjcmV0"})
	})
}

func TestLoginSetsAuthHeader(t *testing.T) {
	var gotAuth string
	mux := http.NewServeMux()
	loginHandler(mux)
	mux.HandleFunc("GET /api/v2/configurations", func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		writeJSON(w, http.StatusOK, map[string]any{"data": []Ref{{ID: 100, Type: "Configuration", Name: "default"}}})
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	c := New(testSettings(srv.URL))
	defer c.Close()

	err := c.Login(context.Background())
	assert.NilError(t, err)

	ref, err := c.ResolveConfiguration(context.Background(), "default")
	assert.NilError(t, err)
	assert.Equal(t, ref.ID, int64(100))
	assert.Equal(t, gotAuth, "Basic YWRtaW46c2VjcmV0")
}

func TestLoginRejected(t *testing.T) {
	mux := http.NewServeMux()
	loginHandler(mux)
	srv := httptest.NewServer(mux)
	defer srv.Close()

	st := testSettings(srv.URL)
	st.Password = "wrong"
	c := New(st)
	defer c.Close()

	err := c.Login(context.Background())
	assert.Assert(t, errors.Is(err, domain.ErrUnauthorized), "got %v", err)
}

func TestErrorMapping(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   map[string]string
		want   error
	}{
		{name: "404", status: 404, body: map[string]string{"message": "no such zone"}, want: domain.ErrNotFound},
		{name: "NotFound code", status: 422, body: map[string]string{"code": "ZoneNotFound"}, want: domain.ErrNotFound},
		{name: "409", status: 409, body: map[string]string{"message": "duplicate"}, want: domain.ErrConflict},
		{name: "AlreadyExists code", status: 422, body: map[string]string{"code": "RangeAlreadyExists"}, want: domain.ErrConflict},
		{name: "400", status: 400, body: map[string]string{"message": "bad filter"}, want: domain.ErrBadRequest},
		{name: "401", status: 401, body: nil, want: domain.ErrUnauthorized},
		{name: "500", status: 500, body: map[string]string{"message": "boom"}, want: domain.ErrRemote},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mux := http.NewServeMux()
			mux.HandleFunc("GET /api/v2/configurations", func(w http.ResponseWriter, r *http.Request) {
				writeJSON(w, tt.status, tt.body)
			})
			srv := httptest.NewServer(mux)
			defer srv.Close()

			c := New(testSettings(srv.URL))
			defer c.Close()

			_, err := c.ResolveConfiguration(context.Background(), "default")
			assert.Assert(t, errors.Is(err, tt.want), "got %v", err)

			var apiErr *APIError
			assert.Assert(t, errors.As(err, &apiErr))
			assert.Equal(t, apiErr.Status, tt.status)
		})
	}
}

func TestRemoteErrorsNotRetried(t *testing.T) {
	calls := 0
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/v2/configurations", func(w http.ResponseWriter, r *http.Request) {
		calls++
		writeJSON(w, http.StatusInternalServerError, map[string]string{"message": "boom"})
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	c := New(testSettings(srv.URL))
	defer c.Close()

	_, err := c.ResolveConfiguration(context.Background(), "default")
	assert.Assert(t, err != nil)
	assert.Equal(t, calls, 1)
}

func TestConnectionFailureRetried(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c := New(testSettings(url))
	defer c.Close()

	start := time.Now()
	_, err := c.ResolveConfiguration(context.Background(), "default")
	assert.Assert(t, errors.Is(err, domain.ErrTransport), "got %v", err)
	// Three attempts with backoff take at least the two inter-attempt delays.
	assert.Assert(t, time.Since(start) >= 400*time.Millisecond)
}

func TestPagination(t *testing.T) {
	const total = 150
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/v2/zones/300/resourceRecords", func(w http.ResponseWriter, r *http.Request) {
		offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))
		limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
		assert.Equal(t, limit, pageLimit)

		var page []RecordRow
		for i := offset; i < total && i < offset+limit; i++ {
			page = append(page, RecordRow{
				ID:         int64(i + 1),
				Type:       "GenericRecord",
				RecordType: "TXT",
				Name:       fmt.Sprintf("r%d", i),
			})
		}
		writeJSON(w, http.StatusOK, map[string]any{"count": len(page), "data": page})
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	c := New(testSettings(srv.URL))
	defer c.Close()

	rows, err := c.ListZoneRecords(context.Background(), 300)
	assert.NilError(t, err)
	assert.Equal(t, len(rows), total)
	assert.Equal(t, rows[0].ID, int64(1))
	assert.Equal(t, rows[total-1].ID, int64(total))
}

func TestChangeCommentHeader(t *testing.T) {
	var deleteComment, getComment string
	mux := http.NewServeMux()
	mux.HandleFunc("DELETE /api/v2/networks/42", func(w http.ResponseWriter, r *http.Request) {
		deleteComment = r.Header.Get("x-bcn-change-control-comment")
		w.WriteHeader(http.StatusNoContent)
	})
	mux.HandleFunc("GET /api/v2/networks/42", func(w http.ResponseWriter, r *http.Request) {
		getComment = r.Header.Get("x-bcn-change-control-comment")
		writeJSON(w, http.StatusOK, NetworkDetail{ID: 42, Type: "IPv4Network", Range: "192.0.2.0/24"})
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	st := testSettings(srv.URL)
	st.ChangeComment = "ticket-123"
	c := New(st)
	defer c.Close()

	_, err := c.GetNetwork(context.Background(), 42)
	assert.NilError(t, err)
	assert.Equal(t, getComment, "")

	err = c.DeleteNetwork(context.Background(), 42)
	assert.NilError(t, err)
	assert.Equal(t, deleteComment, "ticket-123")
}

func TestFindNetworkByRange(t *testing.T) {
	networks := map[string][]RangeRef{
		"192.0.2.0/24": {{ID: 7, Type: "IPv4Network", Range: "192.0.2.0/24"}},
		"10.0.0.0/24":  {{ID: 8, Range: "10.0.0.0/24"}, {ID: 9, Range: "10.0.0.0/24"}},
	}
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/v2/networks", func(w http.ResponseWriter, r *http.Request) {
		filter := r.URL.Query().Get("filter")
		var data []RangeRef
		for rng, items := range networks {
			if filter == fmt.Sprintf("configuration.name:'default' and range:'%s'", rng) {
				data = items
			}
		}
		writeJSON(w, http.StatusOK, map[string]any{"data": data})
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	c := New(testSettings(srv.URL))
	defer c.Close()

	found, err := c.FindNetworkByRange(context.Background(), "default", "192.0.2.0/24")
	assert.NilError(t, err)
	assert.Assert(t, found != nil)
	assert.Equal(t, found.ID, int64(7))

	absent, err := c.FindNetworkByRange(context.Background(), "default", "203.0.113.0/24")
	assert.NilError(t, err)
	assert.Assert(t, absent == nil)

	_, err = c.FindNetworkByRange(context.Background(), "default", "10.0.0.0/24")
	assert.Assert(t, errors.Is(err, domain.ErrAmbiguous), "got %v", err)

	_, err = c.FindNetworkByRange(context.Background(), "default", "bogus")
	assert.Assert(t, errors.Is(err, domain.ErrInvalidCIDR), "got %v", err)
}

func TestRangeRefParentID(t *testing.T) {
	ref := RangeRef{Links: map[string]LinkRef{"up": {Href: "/api/v2/blocks/1234"}}}
	assert.Equal(t, ref.ParentID(), int64(1234))

	assert.Equal(t, RangeRef{}.ParentID(), int64(0))
	assert.Equal(t, RangeRef{Links: map[string]LinkRef{"up": {Href: "/api/v2/blocks/x"}}}.ParentID(), int64(0))
}
