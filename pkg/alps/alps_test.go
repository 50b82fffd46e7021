package alps

import (
	"testing"

	"github.com/matzehuels/alpsviz/pkg/errors"
)

func TestParseRef(t *testing.T) {
	tests := []struct {
		name     string
		in       string
		want     Ref
		internal bool
		wantErr  bool
	}{
		{"internal", "#Blog", Ref{ID: "Blog"}, true, false},
		{"external", "other.json#Shared", Ref{File: "other.json", ID: "Shared"}, false, false},
		{"external path", "../common/fields.xml#id", Ref{File: "../common/fields.xml", ID: "id"}, false, false},
		{"no separator", "Blog", Ref{}, false, true},
		{"empty fragment", "other.json#", Ref{}, false, true},
		{"empty", "", Ref{}, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseRef(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseRef(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if tt.wantErr {
				if !errors.Is(err, errors.ErrCodeInvalidReferenceFormat) {
					t.Errorf("ParseRef(%q) code = %v, want INVALID_REFERENCE_FORMAT", tt.in, errors.GetCode(err))
				}
				return
			}
			if got != tt.want {
				t.Errorf("ParseRef(%q) = %+v, want %+v", tt.in, got, tt.want)
			}
			if got.IsInternal() != tt.internal {
				t.Errorf("IsInternal() = %v, want %v", got.IsInternal(), tt.internal)
			}
			if got.String() != tt.in {
				t.Errorf("String() = %q, want %q", got.String(), tt.in)
			}
		})
	}
}

func TestFragmentID(t *testing.T) {
	if id, ok := FragmentID("#B"); !ok || id != "B" {
		t.Errorf("FragmentID(#B) = %q, %v", id, ok)
	}
	if _, ok := FragmentID("B"); ok {
		t.Error("FragmentID(B) should fail")
	}
	if _, ok := FragmentID("B#"); ok {
		t.Error("FragmentID(B#) should fail")
	}
}

func TestDecodeDocument(t *testing.T) {
	v := map[string]any{
		"alps": map[string]any{
			"title":   "Blog",
			"doc":     map[string]any{"value": "A blog", "format": "text"},
			"$schema": "https://alps-io.github.io/schemas/alps.json",
			"descriptor": []any{
				map[string]any{
					"id":  "Blog",
					"tag": "collection  main",
					"descriptor": []any{
						map[string]any{"href": "#id"},
						map[string]any{"id": "goPost", "type": "safe", "rt": "#Post"},
					},
				},
				map[string]any{"id": "id", "doc": "identifier"},
				map[string]any{"id": "Post"},
			},
		},
	}

	doc, err := DecodeDocument(v)
	if err != nil {
		t.Fatalf("DecodeDocument() error: %v", err)
	}
	if doc.Title != "Blog" || doc.Doc.Value != "A blog" || doc.Doc.Format != "text" {
		t.Errorf("metadata = %q %+v", doc.Title, doc.Doc)
	}
	if len(doc.Descriptors) != 3 {
		t.Fatalf("got %d descriptors, want 3", len(doc.Descriptors))
	}
	blog := doc.Descriptors[0]
	if blog.Shape != ShapeList || len(blog.Descriptors) != 2 {
		t.Errorf("Blog shape = %v with %d children", blog.Shape, len(blog.Descriptors))
	}
	if !blog.Descriptors[0].IsReference() {
		t.Error("href-only child should be a reference")
	}
	if got := blog.Tags(); len(got) != 2 || got[0] != "collection" || got[1] != "main" {
		t.Errorf("Tags() = %v", got)
	}
	if doc.Descriptors[1].Doc.Value != "identifier" {
		t.Errorf("string doc = %+v", doc.Descriptors[1].Doc)
	}
	if n, ok := doc.Find("goPost"); !ok || n.Rt != "#Post" {
		t.Errorf("Find(goPost) = %+v, %v", n, ok)
	}
	if ids := doc.IDs(); len(ids) != 4 {
		t.Errorf("IDs() = %v, want 4 ids", ids)
	}
}

func TestDecodeDocumentErrors(t *testing.T) {
	tests := []struct {
		name string
		v    any
		code errors.Code
	}{
		{"not an object", []any{}, errors.ErrCodeInvalidDocument},
		{"no alps", map[string]any{"foo": 1}, errors.ErrCodeInvalidDocument},
		{"no descriptor", map[string]any{"alps": map[string]any{"title": "x"}}, errors.ErrCodeInvalidDocument},
		{"descriptor not list", map[string]any{"alps": map[string]any{"descriptor": map[string]any{"id": "a"}}}, errors.ErrCodeDescriptorIsNotArray},
		{"entry not object", map[string]any{"alps": map[string]any{"descriptor": []any{"a"}}}, errors.ErrCodeInvalidDescriptor},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeDocument(tt.v)
			if !errors.Is(err, tt.code) {
				t.Errorf("DecodeDocument() error = %v, want code %s", err, tt.code)
			}
		})
	}
}

func TestDecodeNestedNotList(t *testing.T) {
	v := map[string]any{"alps": map[string]any{"descriptor": []any{
		map[string]any{"id": "A", "descriptor": map[string]any{"id": "B"}},
	}}}
	doc, err := DecodeDocument(v)
	if err != nil {
		t.Fatalf("nested shape problems are reported later, got %v", err)
	}
	if doc.Descriptors[0].Shape != ShapeInvalid {
		t.Errorf("Shape = %v, want ShapeInvalid", doc.Descriptors[0].Shape)
	}
}

func TestClone(t *testing.T) {
	n := Node{ID: "A", Descriptors: []Node{{ID: "B"}}}
	c := n.Clone()
	c.Descriptors[0].ID = "C"
	if n.Descriptors[0].ID != "B" {
		t.Error("Clone() shares children with the original")
	}
}
