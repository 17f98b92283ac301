package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"guesswho/internal/auth"
	"guesswho/internal/broadcast"
	"guesswho/internal/persons"
	"guesswho/internal/rooms"
	"guesswho/internal/wshub"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func newTestServer(t *testing.T) (*Server, *httptest.Server) {
	t.Helper()
	broker := broadcast.NewBroker()
	catalog := persons.NewMemoryCatalog(persons.Seed()...)
	registry := rooms.NewRegistry(rooms.DefaultConfig(), catalog, broker, nil)

	srv := &Server{
		Rooms:   registry,
		Broker:  broker,
		Hub:     wshub.NewHub(),
		Catalog: catalog,
		Auth:    auth.NewService(auth.NewMemoryStore(), testSecret, time.Hour),
	}

	ts := httptest.NewServer(srv.routes())
	t.Cleanup(ts.Close)
	return srv, ts
}

func postJSON(t *testing.T, url string, body any) *http.Response {
	t.Helper()
	data, err := json.Marshal(body)
	if err != nil {
		t.Fatal(err)
	}
	resp, err := http.Post(url, "application/json", bytes.NewReader(data))
	if err != nil {
		t.Fatal(err)
	}
	return resp
}

func decodeBody[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()
	var v T
	if err := json.NewDecoder(resp.Body).Decode(&v); err != nil {
		t.Fatal(err)
	}
	return v
}

func TestHandleHealth(t *testing.T) {
	_, ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/health")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d, want %d", resp.StatusCode, http.StatusOK)
	}
}

func TestRegisterAndLogin(t *testing.T) {
	_, ts := newTestServer(t)
	creds := credentialsRequest{Username: "ada", Password: "hunter2"}

	resp := postJSON(t, ts.URL+"/api/auth/register", creds)
	resp.Body.Close()
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("register status = %d, want %d", resp.StatusCode, http.StatusCreated)
	}

	resp = postJSON(t, ts.URL+"/api/auth/register", creds)
	resp.Body.Close()
	if resp.StatusCode != http.StatusConflict {
		t.Errorf("duplicate register status = %d, want %d", resp.StatusCode, http.StatusConflict)
	}

	resp = postJSON(t, ts.URL+"/api/auth/login", creds)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("login status = %d, want %d", resp.StatusCode, http.StatusOK)
	}
	body := decodeBody[map[string]string](t, resp)
	if body["token"] == "" {
		t.Error("login response has no token")
	}

	resp = postJSON(t, ts.URL+"/api/auth/login", credentialsRequest{Username: "ada", Password: "wrong"})
	resp.Body.Close()
	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("bad password status = %d, want %d", resp.StatusCode, http.StatusUnauthorized)
	}
}

func TestSearchPersons(t *testing.T) {
	_, ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/api/persons/search?name=newton")
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want %d", resp.StatusCode, http.StatusOK)
	}
	found := decodeBody[[]persons.Person](t, resp)
	if len(found) != 1 || found[0].Name != "Isaac Newton" {
		t.Errorf("search result = %+v, want Isaac Newton", found)
	}

	resp, err = http.Get(ts.URL + "/api/persons/search")
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("missing name status = %d, want %d", resp.StatusCode, http.StatusBadRequest)
	}
}

func TestAddPersons(t *testing.T) {
	_, ts := newTestServer(t)

	resp := postJSON(t, ts.URL+"/api/persons", []persons.Person{
		{Name: "Hypatia", IsThinker: true, IsScientist: true},
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("status = %d, want %d", resp.StatusCode, http.StatusCreated)
	}
	added := decodeBody[[]persons.Person](t, resp)
	if len(added) != 1 || added[0].ID == 0 {
		t.Errorf("added = %+v, want one person with an assigned id", added)
	}

	resp = postJSON(t, ts.URL+"/api/persons", []persons.Person{})
	resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("empty batch status = %d, want %d", resp.StatusCode, http.StatusBadRequest)
	}

	resp = postJSON(t, ts.URL+"/api/persons", []persons.Person{{Name: ""}})
	resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("nameless person status = %d, want %d", resp.StatusCode, http.StatusBadRequest)
	}
}

func TestListRooms(t *testing.T) {
	srv, ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/api/rooms")
	if err != nil {
		t.Fatal(err)
	}
	if got := decodeBody[[]rooms.Summary](t, resp); len(got) != 0 {
		t.Errorf("rooms = %+v, want none", got)
	}

	session, err := srv.Rooms.Create("p1", "Alice")
	if err != nil {
		t.Fatal(err)
	}

	resp, err = http.Get(ts.URL + "/api/rooms?phase=WAITING")
	if err != nil {
		t.Fatal(err)
	}
	got := decodeBody[[]rooms.Summary](t, resp)
	if len(got) != 1 || got[0].Code != session.Code() {
		t.Errorf("rooms = %+v, want room %s", got, session.Code())
	}

	resp, err = http.Get(ts.URL + "/api/rooms?phase=BOGUS")
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("bogus phase status = %d, want %d", resp.StatusCode, http.StatusBadRequest)
	}
}

func TestStatsUnavailableWithoutDatabase(t *testing.T) {
	_, ts := newTestServer(t)

	for _, path := range []string{"/api/history/recent", "/api/stats/leaderboard"} {
		resp, err := http.Get(ts.URL + path)
		if err != nil {
			t.Fatal(err)
		}
		resp.Body.Close()
		if resp.StatusCode != http.StatusServiceUnavailable {
			t.Errorf("%s status = %d, want %d", path, resp.StatusCode, http.StatusServiceUnavailable)
		}
	}
}

func TestAuthDisabled(t *testing.T) {
	srv, ts := newTestServer(t)
	srv.Auth = nil

	resp := postJSON(t, ts.URL+"/api/auth/register", credentialsRequest{Username: "ada", Password: "pw"})
	resp.Body.Close()
	if resp.StatusCode != http.StatusServiceUnavailable {
		t.Errorf("register status = %d, want %d", resp.StatusCode, http.StatusServiceUnavailable)
	}
}

func TestLimitParam(t *testing.T) {
	tests := []struct {
		query string
		want  int
	}{
		{"", 20},
		{"limit=5", 5},
		{"limit=9999", 100},
		{"limit=0", 20},
		{"limit=abc", 20},
	}
	for _, tt := range tests {
		r := httptest.NewRequest(http.MethodGet, fmt.Sprintf("/api/history/recent?%s", tt.query), nil)
		if got := limitParam(r, 20, 100); got != tt.want {
			t.Errorf("limitParam(%q) = %d, want %d", tt.query, got, tt.want)
		}
	}
}
