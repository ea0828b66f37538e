package server

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/mlorenz/dotviz/pkg/dotviz"
)

func newTestServer(t *testing.T, dot string) (*httptest.Server, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "graph.dot")
	if err := os.WriteFile(path, []byte(dot), 0644); err != nil {
		t.Fatal(err)
	}

	logger := log.New(io.Discard)
	srv := httptest.NewServer(New(dotviz.New(path), logger).Handler())
	t.Cleanup(srv.Close)
	return srv, path
}

func get(t *testing.T, url string) (int, string) {
	t.Helper()
	resp, err := http.Get(url)
	if err != nil {
		t.Fatalf("GET %s: %v", url, err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatal(err)
	}
	return resp.StatusCode, string(body)
}

func TestIndex(t *testing.T) {
	srv, _ := newTestServer(t, `digraph { A -> B; }`)

	status, body := get(t, srv.URL+"/")
	if status != http.StatusOK {
		t.Fatalf("status = %d, want 200", status)
	}
	for _, want := range []string{"<!DOCTYPE html>", `"nodes":[{"id":"A"},{"id":"B"}]`, "d3.v3.min"} {
		if !strings.Contains(body, want) {
			t.Errorf("body missing %q", want)
		}
	}
}

func TestGraphJSON(t *testing.T) {
	srv, _ := newTestServer(t, `digraph { A -> B; }`)

	status, body := get(t, srv.URL+"/graph.json")
	if status != http.StatusOK {
		t.Fatalf("status = %d, want 200", status)
	}

	var data struct {
		Directed bool             `json:"directed"`
		Nodes    []map[string]any `json:"nodes"`
		Links    []map[string]any `json:"links"`
	}
	if err := json.Unmarshal([]byte(body), &data); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if !data.Directed {
		t.Error("directed = false, want true")
	}
	if len(data.Nodes) != 2 || len(data.Links) != 1 {
		t.Errorf("nodes/links = %d/%d, want 2/1", len(data.Nodes), len(data.Links))
	}
}

func TestHealthz(t *testing.T) {
	srv, _ := newTestServer(t, `digraph {}`)

	status, body := get(t, srv.URL+"/healthz")
	if status != http.StatusOK {
		t.Fatalf("status = %d, want 200", status)
	}
	if body != "ok\n" {
		t.Errorf("body = %q, want ok", body)
	}
}

func TestMissingFile(t *testing.T) {
	logger := log.New(io.Discard)
	srv := httptest.NewServer(New(dotviz.New("/nonexistent/graph.dot"), logger).Handler())
	defer srv.Close()

	status, _ := get(t, srv.URL+"/")
	if status != http.StatusNotFound {
		t.Errorf("status = %d, want 404", status)
	}
}

func TestParseError(t *testing.T) {
	srv, _ := newTestServer(t, `this is not dot`)

	status, _ := get(t, srv.URL+"/graph.json")
	if status != http.StatusUnprocessableEntity {
		t.Errorf("status = %d, want 422", status)
	}
}

func TestReloadsOnEdit(t *testing.T) {
	srv, path := newTestServer(t, `digraph { A -> B; }`)

	_, before := get(t, srv.URL+"/graph.json")
	if strings.Contains(before, `"id":"C"`) {
		t.Fatal("node C present before edit")
	}

	if err := os.WriteFile(path, []byte(`digraph { A -> B; B -> C; }`), 0644); err != nil {
		t.Fatal(err)
	}

	_, after := get(t, srv.URL+"/graph.json")
	if !strings.Contains(after, `"id":"C"`) {
		t.Error("edit not reflected in response")
	}
}
