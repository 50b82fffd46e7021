package server

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	charmlog "github.com/charmbracelet/log"

	"github.com/matzehuels/alpsviz/pkg/errors"
	"github.com/matzehuels/alpsviz/pkg/observability"
	"github.com/matzehuels/alpsviz/pkg/pipeline"
)

const blog = `{
  "alps": {
    "title": "Blog",
    "descriptor": [
      {"id": "Blog", "title": "All posts", "descriptor": [
        {"id": "goPost", "type": "safe", "rt": "#Post", "tag": "nav"}
      ]},
      {"id": "Post", "tag": "nav"}
    ]
  }
}`

func newTestServer(t *testing.T, content string) *httptest.Server {
	t.Helper()
	dir := t.TempDir()
	input := filepath.Join(dir, "blog.json")
	if content != "" {
		if err := os.WriteFile(input, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	logger := charmlog.NewWithOptions(io.Discard, charmlog.Options{})
	srv := New(Config{
		Input:  input,
		Runner: pipeline.NewRunner(nil, nil, logger),
	})
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return ts
}

func get(t *testing.T, url string) (*http.Response, string) {
	t.Helper()
	resp, err := http.Get(url)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatal(err)
	}
	return resp, string(body)
}

func TestHealth(t *testing.T) {
	ts := newTestServer(t, blog)
	resp, body := get(t, ts.URL+"/healthz")
	if resp.StatusCode != http.StatusOK || body != "ok\n" {
		t.Errorf("GET /healthz = %d %q", resp.StatusCode, body)
	}
}

func TestDiagramDOT(t *testing.T) {
	ts := newTestServer(t, blog)

	tests := []struct {
		name  string
		query string
		want  []string
		not   []string
	}{
		{"defaults", "", []string{"digraph", `"Post" [label="Post"`, `label=<goPost (safe)>`}, []string{`color="`}},
		{"label title", "?label=title", []string{`label=<goPost>`}, nil},
		{"tags", "?or=nav&color=blue", []string{`color="blue"`}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, body := get(t, ts.URL+"/diagram.dot"+tt.query)
			if resp.StatusCode != http.StatusOK {
				t.Fatalf("status = %d, body %s", resp.StatusCode, body)
			}
			if ct := resp.Header.Get("Content-Type"); !strings.HasPrefix(ct, "text/vnd.graphviz") {
				t.Errorf("Content-Type = %q", ct)
			}
			if resp.Header.Get(HeaderRenderID) == "" {
				t.Error("missing render id")
			}
			for _, s := range tt.want {
				if !strings.Contains(body, s) {
					t.Errorf("body missing %s:\n%s", s, body)
				}
			}
			for _, s := range tt.not {
				if strings.Contains(body, s) {
					t.Errorf("body should not contain %s:\n%s", s, body)
				}
			}
		})
	}
}

func TestProfileJSON(t *testing.T) {
	ts := newTestServer(t, blog)
	resp, body := get(t, ts.URL+"/profile.json")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, body %s", resp.StatusCode, body)
	}
	var got struct {
		Title string `json:"title"`
		Links []struct {
			From string `json:"from"`
			To   string `json:"to"`
		} `json:"links"`
	}
	if err := json.Unmarshal([]byte(body), &got); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if got.Title != "Blog" || len(got.Links) != 1 || got.Links[0].From != "Blog" {
		t.Errorf("profile = %+v", got)
	}
}

func TestErrorStatus(t *testing.T) {
	tests := []struct {
		name    string
		content string
		query   string
		status  int
		code    errors.Code
	}{
		{"missing file", "", "", http.StatusNotFound, errors.ErrCodeFileNotReadable},
		{"rt missing", `{"alps": {"descriptor": [{"id": "go", "type": "safe"}]}}`, "", http.StatusUnprocessableEntity, errors.ErrCodeRtMissing},
		{"dangling href", `{"alps": {"descriptor": [{"id": "A", "descriptor": [{"href": "#nope"}]}]}}`, "", http.StatusNotFound, errors.ErrCodeDescriptorNotFound},
		{"bad label", blog, "?label=fancy", http.StatusUnprocessableEntity, errors.ErrCodeInvalidInput},
		{"bad color", blog, "?color=%23zz", http.StatusUnprocessableEntity, errors.ErrCodeInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := newTestServer(t, tt.content)
			resp, body := get(t, ts.URL+"/diagram.dot"+tt.query)
			if resp.StatusCode != tt.status {
				t.Errorf("status = %d, want %d (body %s)", resp.StatusCode, tt.status, body)
			}
			var e errorBody
			if err := json.Unmarshal([]byte(body), &e); err != nil {
				t.Fatalf("error body is not JSON: %v", err)
			}
			if e.Code != string(tt.code) {
				t.Errorf("code = %q, want %q", e.Code, tt.code)
			}
			if resp.Header.Get(HeaderRenderID) == "" {
				t.Error("error responses should carry a render id")
			}
		})
	}
}

func TestStatusFor(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{errors.New(errors.ErrCodeFileNotReadable, "x"), http.StatusNotFound},
		{fmt.Errorf("parse: %w", errors.New(errors.ErrCodeDescriptorNotFound, "x")), http.StatusNotFound},
		{errors.New(errors.ErrCodeInvalidDocument, "x"), http.StatusUnprocessableEntity},
		{errors.New(errors.ErrCodeInvalidFormat, "x"), http.StatusUnprocessableEntity},
		{errors.New(errors.ErrCodeInternal, "x"), http.StatusInternalServerError},
		{context.Canceled, http.StatusInternalServerError},
	}
	for _, tt := range tests {
		if got := StatusFor(tt.err); got != tt.want {
			t.Errorf("StatusFor(%v) = %d, want %d", tt.err, got, tt.want)
		}
	}
}

type recordingHTTPHooks struct {
	observability.NoopHTTPHooks
	statuses chan int
}

func (h *recordingHTTPHooks) OnResponse(_ context.Context, _, _ string, status int, _ time.Duration) {
	h.statuses <- status
}

func TestHTTPHooks(t *testing.T) {
	hooks := &recordingHTTPHooks{statuses: make(chan int, 4)}
	observability.SetHTTPHooks(hooks)
	t.Cleanup(observability.Reset)

	ts := newTestServer(t, blog)
	get(t, ts.URL+"/healthz")
	get(t, ts.URL+"/missing")

	seen := make(map[int]bool)
	for range 2 {
		select {
		case status := <-hooks.statuses:
			seen[status] = true
		case <-time.After(time.Second):
			t.Fatal("hook not called")
		}
	}
	if !seen[http.StatusOK] || !seen[http.StatusNotFound] {
		t.Errorf("statuses = %v, want 200 and 404", seen)
	}
}

func TestSplitList(t *testing.T) {
	got := splitList(" a, b ,,c ")
	if strings.Join(got, "|") != "a|b|c" {
		t.Errorf("splitList() = %v", got)
	}
	if splitList("") != nil {
		t.Error("splitList(\"\") should be nil")
	}
}
