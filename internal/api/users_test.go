package api_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/leonardcser/users-cache/internal/api"
	"github.com/leonardcser/users-cache/internal/cache"
	"github.com/leonardcser/users-cache/internal/logger"
	"github.com/leonardcser/users-cache/internal/users"
)

func TestMain(m *testing.M) {
	logger.SetOutput(io.Discard)
	os.Exit(m.Run())
}

type memKV struct {
	data map[string][]byte
	fail error
}

func (m *memKV) Get(_ context.Context, key string) ([]byte, error) {
	if m.fail != nil {
		return nil, m.fail
	}
	v, ok := m.data[key]
	if !ok {
		return nil, cache.ErrNotFound
	}
	return v, nil
}

func (m *memKV) Put(_ context.Context, key string, value []byte, _ time.Duration) error {
	if m.fail != nil {
		return m.fail
	}
	m.data[key] = value
	return nil
}

func (m *memKV) Delete(_ context.Context, key string) error {
	delete(m.data, key)
	return nil
}

func (m *memKV) Close() error { return nil }

func newTestServer(t *testing.T, kv cache.KV) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	api.NewHandler(users.NewStore(), kv, 120*time.Second).Register(mux)
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func getBody(t *testing.T, url string) (int, []byte) {
	t.Helper()
	resp, err := http.Get(url)
	if err != nil {
		t.Fatalf("GET %s: %v", url, err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	return resp.StatusCode, body
}

func TestGetUserOK(t *testing.T) {
	srv := newTestServer(t, &memKV{data: make(map[string][]byte)})

	status, body := getBody(t, srv.URL+"/users/1")
	if status != http.StatusOK {
		t.Fatalf("expected 200, got %d", status)
	}
	var got users.User
	if err := json.Unmarshal(body, &got); err != nil {
		t.Fatalf("decode body %s: %v", body, err)
	}
	want := users.User{ID: 1, Name: "Manas", Email: "manas@example.com", Age: 25}
	if got != want {
		t.Errorf("expected %+v, got %+v", want, got)
	}
}

func TestGetUserNotFound(t *testing.T) {
	srv := newTestServer(t, &memKV{data: make(map[string][]byte)})

	for _, path := range []string{"/users/99", "/users/abc"} {
		status, body := getBody(t, srv.URL+path)
		if status != http.StatusNotFound {
			t.Errorf("%s: expected 404, got %d", path, status)
		}
		var errResp struct {
			Detail string `json:"detail"`
		}
		if err := json.Unmarshal(body, &errResp); err != nil {
			t.Fatalf("%s: decode body %s: %v", path, body, err)
		}
		if errResp.Detail != "User not found" {
			t.Errorf("%s: expected 'User not found', got %q", path, errResp.Detail)
		}
	}
}

func TestGetUserWritesCache(t *testing.T) {
	kv := &memKV{data: make(map[string][]byte)}
	srv := newTestServer(t, kv)

	status, body := getBody(t, srv.URL+"/users/2")
	if status != http.StatusOK {
		t.Fatalf("expected 200, got %d", status)
	}
	cached, ok := kv.data["users:user:2"]
	if !ok {
		t.Fatal("expected a cache write under users:user:2")
	}
	var fromCache, fromResp users.User
	if err := json.Unmarshal(cached, &fromCache); err != nil {
		t.Fatalf("decode cached entry: %v", err)
	}
	if err := json.Unmarshal(body, &fromResp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if fromCache != fromResp {
		t.Errorf("cache entry %+v differs from response %+v", fromCache, fromResp)
	}
}

func TestGetUserServedFromCache(t *testing.T) {
	// Seed an entry that differs from the table; the response must come from
	// the cache, proving the lookup is skipped on a hit.
	kv := &memKV{data: map[string][]byte{
		"users:user:1": []byte(`{"id":1,"name":"Cached","email":"cached@example.com","age":99}`),
	}}
	srv := newTestServer(t, kv)

	status, body := getBody(t, srv.URL+"/users/1")
	if status != http.StatusOK {
		t.Fatalf("expected 200, got %d", status)
	}
	var got users.User
	if err := json.Unmarshal(body, &got); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if got.Name != "Cached" {
		t.Errorf("expected cached record, got %+v", got)
	}
}

func TestGetUserCacheUnreachable(t *testing.T) {
	kv := &memKV{data: make(map[string][]byte), fail: errors.New("connection refused")}
	srv := newTestServer(t, kv)

	status, body := getBody(t, srv.URL+"/users/1")
	if status != http.StatusOK {
		t.Fatalf("expected degraded 200, got %d", status)
	}
	var got users.User
	if err := json.Unmarshal(body, &got); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if got.Name != "Manas" {
		t.Errorf("expected correct data with cache down, got %+v", got)
	}
}

func TestHealthz(t *testing.T) {
	srv := newTestServer(t, &memKV{data: make(map[string][]byte)})

	status, body := getBody(t, srv.URL+"/healthz")
	if status != http.StatusOK {
		t.Fatalf("expected 200, got %d", status)
	}
	if string(body) != "ok" {
		t.Errorf("expected ok, got %s", body)
	}
}
