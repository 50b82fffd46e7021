package io

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/alpsviz/pkg/alps"
	"github.com/matzehuels/alpsviz/pkg/errors"
)

const blogJSON = `{
  "alps": {
    "title": "Blog",
    "doc": {"value": "A blog.", "format": "text"},
    "descriptor": [
      {"id": "Blog", "title": "The blog", "tag": "collection", "descriptor": [
        {"href": "#title"},
        {"id": "goPost", "type": "safe", "rt": "#Post"}
      ]},
      {"id": "Post"},
      {"id": "title", "doc": "Headline."}
    ]
  }
}`

const blogXML = `<?xml version="1.0" encoding="UTF-8"?>
<alps version="1.0">
  <title>Blog</title>
  <doc format="text">A blog.</doc>
  <descriptor id="Blog" title="The blog" tag="collection">
    <descriptor href="#title"/>
    <descriptor id="goPost" type="safe" rt="#Post"/>
  </descriptor>
  <descriptor id="Post"/>
  <descriptor id="title">
    <doc>Headline.</doc>
  </descriptor>
</alps>`

const blogYAML = `alps:
  title: Blog
  doc:
    value: A blog.
    format: text
  descriptor:
    - id: Blog
      title: The blog
      tag: collection
      descriptor:
        - href: "#title"
        - id: goPost
          type: safe
          rt: "#Post"
    - id: Post
    - id: title
      doc: Headline.
`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadFormatsAgree(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
	}{
		{"json", "blog.json", blogJSON},
		{"xml", "blog.xml", blogXML},
		{"yaml", "blog.yaml", blogYAML},
		{"yml", "blog.yml", blogYAML},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, tt.file, tt.content)
			doc, err := Load(path)
			if err != nil {
				t.Fatalf("Load() error: %v", err)
			}

			if doc.Path != path {
				t.Errorf("Path = %q, want %q", doc.Path, path)
			}
			if doc.Title != "Blog" {
				t.Errorf("Title = %q, want Blog", doc.Title)
			}
			if doc.Doc.Value != "A blog." || doc.Doc.Format != "text" {
				t.Errorf("Doc = %+v", doc.Doc)
			}
			if len(doc.Descriptors) != 3 {
				t.Fatalf("got %d top-level descriptors, want 3", len(doc.Descriptors))
			}

			blog := doc.Descriptors[0]
			if blog.ID != "Blog" || blog.Title != "The blog" || blog.Tag != "collection" {
				t.Errorf("Blog = %+v", blog)
			}
			if blog.Shape != alps.ShapeList || len(blog.Descriptors) != 2 {
				t.Fatalf("Blog children = %+v", blog.Descriptors)
			}
			if blog.Descriptors[0].Href != "#title" {
				t.Errorf("first child href = %q", blog.Descriptors[0].Href)
			}
			goPost := blog.Descriptors[1]
			if goPost.ID != "goPost" || goPost.Type != alps.TypeSafe || goPost.Rt != "#Post" {
				t.Errorf("goPost = %+v", goPost)
			}

			title, ok := doc.Find("title")
			if !ok || title.Doc.Value != "Headline." {
				t.Errorf("Find(title) = %+v, %v", title, ok)
			}
		})
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
		code    errors.Code
	}{
		{"bad json", "p.json", `{"alps": `, errors.ErrCodeMalformedInput},
		{"bad yaml", "p.yaml", "alps: [unclosed", errors.ErrCodeMalformedInput},
		{"bad xml", "p.xml", "<alps><descriptor>", errors.ErrCodeMalformedInput},
		{"no alps key", "p.json", `{"profile": {}}`, errors.ErrCodeInvalidDocument},
		{"no descriptor", "p.json", `{"alps": {"title": "x"}}`, errors.ErrCodeInvalidDocument},
		{"root not object", "p.json", `[1, 2]`, errors.ErrCodeInvalidDocument},
		{"wrong xml root", "p.xml", `<profile><descriptor id="a"/></profile>`, errors.ErrCodeInvalidDocument},
		{"empty xml alps", "p.xml", `<alps/>`, errors.ErrCodeInvalidDocument},
		{"descriptor object", "p.json", `{"alps": {"descriptor": {"id": "a"}}}`, errors.ErrCodeDescriptorIsNotArray},
		{"descriptor entry scalar", "p.json", `{"alps": {"descriptor": ["a"]}}`, errors.ErrCodeInvalidDescriptor},
		{"unknown extension", "p.txt", `{}`, errors.ErrCodeInvalidFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, tt.file, tt.content)
			_, err := Load(path)
			if !errors.Is(err, tt.code) {
				t.Errorf("Load() error = %v, want code %s", err, tt.code)
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.json"))
	if !errors.Is(err, errors.ErrCodeFileNotReadable) {
		t.Errorf("Load() error = %v, want FILE_NOT_READABLE", err)
	}
}

func TestLoadErrorNamesFile(t *testing.T) {
	path := writeFile(t, "broken.json", `{"alps": {}}`)
	_, err := Load(path)
	if err == nil || !strings.Contains(err.Error(), "broken.json") {
		t.Errorf("error %v should mention the file", err)
	}
}

func TestNestedDescriptorNotList(t *testing.T) {
	path := writeFile(t, "p.json", `{"alps": {"descriptor": [{"id": "a", "descriptor": "b"}]}}`)
	doc, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if doc.Descriptors[0].Shape != alps.ShapeInvalid {
		t.Errorf("Shape = %v, want ShapeInvalid", doc.Descriptors[0].Shape)
	}
}

func TestRead(t *testing.T) {
	doc, err := Read(strings.NewReader(blogJSON), FormatJSON)
	if err != nil {
		t.Fatalf("Read() error: %v", err)
	}
	if doc.Path != "" {
		t.Errorf("Read should not set Path, got %q", doc.Path)
	}
	if len(doc.IDs()) != 4 {
		t.Errorf("IDs() = %v, want 4 ids", doc.IDs())
	}
}

func TestFormatOf(t *testing.T) {
	tests := []struct {
		path string
		want Format
		ok   bool
	}{
		{"a.json", FormatJSON, true},
		{"dir/a.XML", FormatXML, true},
		{"a.yaml", FormatYAML, true},
		{"a.yml", FormatYAML, true},
		{"a.txt", "", false},
		{"noext", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got, err := FormatOf(tt.path)
			if (err == nil) != tt.ok || got != tt.want {
				t.Errorf("FormatOf(%q) = %q, %v", tt.path, got, err)
			}
			if IsProfile(tt.path) != tt.ok {
				t.Errorf("IsProfile(%q) = %v", tt.path, !tt.ok)
			}
		})
	}
}
