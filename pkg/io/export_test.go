package io

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/matzehuels/alpsviz/pkg/profile"
)

func TestWriteJSON(t *testing.T) {
	doc, err := Read(bytes.NewBufferString(blogJSON), FormatJSON)
	if err != nil {
		t.Fatal(err)
	}
	p, err := profile.Build(doc, doc.Descriptors)
	if err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if err := WriteJSON(p, &buf); err != nil {
		t.Fatalf("WriteJSON() error: %v", err)
	}

	var got profileJSON
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	if got.Title != "Blog" {
		t.Errorf("title = %q", got.Title)
	}

	ids := make([]string, len(got.Descriptors))
	for i, d := range got.Descriptors {
		ids[i] = d.ID
	}
	wantIDs := []string{"Blog", "goPost", "Post", "title"}
	if len(ids) != len(wantIDs) {
		t.Fatalf("descriptors = %v, want %v", ids, wantIDs)
	}
	for i := range ids {
		if ids[i] != wantIDs[i] {
			t.Errorf("descriptors = %v, want %v", ids, wantIDs)
			break
		}
	}

	goPost := got.Descriptors[1]
	if goPost.Kind != "transition" || goPost.Type != "safe" || goPost.Target != "Post" || goPost.Parent != "Blog" {
		t.Errorf("goPost = %+v", goPost)
	}
	if blog := got.Descriptors[0]; len(blog.Children) != 2 || blog.Children[0] != "title" {
		t.Errorf("Blog children = %v", blog.Children)
	}
	if got.Descriptors[3].Doc == nil || got.Descriptors[3].Doc.Value != "Headline." {
		t.Errorf("title doc = %+v", got.Descriptors[3].Doc)
	}

	if len(got.Links) != 1 {
		t.Fatalf("links = %+v, want 1", got.Links)
	}
	if l := got.Links[0]; l.From != "Blog" || l.To != "Post" || l.Transition != "goPost" {
		t.Errorf("link = %+v", l)
	}
	if ids := got.Tags["collection"]; len(ids) != 1 || ids[0] != "Blog" {
		t.Errorf("tags = %v", got.Tags)
	}
}

func TestExportJSON(t *testing.T) {
	p, err := profile.Build(nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(t.TempDir(), "out.json")
	if err := ExportJSON(p, path); err != nil {
		t.Fatalf("ExportJSON() error: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var got profileJSON
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatal(err)
	}
	if got.Descriptors == nil || got.Links == nil {
		t.Error("empty profile should export empty lists, not null")
	}
}
