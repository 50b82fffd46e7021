package alps

import (
	"fmt"

	"github.com/matzehuels/alpsviz/pkg/errors"
)

// DecodeDocument converts a generic decoded value into a Document.
//
// The value must be shaped like the JSON form of ALPS: an object with an
// "alps" object holding a "descriptor" list. Maps may be map[string]any (as
// produced by encoding/json and yaml.v3) or map[any]any.
//
// DecodeDocument returns INVALID_DOCUMENT when the "alps" object or its
// descriptor list is missing, and INVALID_DESCRIPTOR when a list entry is not
// an object. Nested "descriptor" properties that are not lists are recorded
// in [Node.Shape] instead of failing here.
func DecodeDocument(v any) (*Document, error) {
	root, ok := asMap(v)
	if !ok {
		return nil, errors.New(errors.ErrCodeInvalidDocument, "document root is not an object")
	}
	body, ok := asMap(root["alps"])
	if !ok {
		return nil, errors.New(errors.ErrCodeInvalidDocument, "document has no \"alps\" object")
	}
	raw, present := body["descriptor"]
	if !present {
		return nil, errors.New(errors.ErrCodeInvalidDocument, "document has no top-level descriptor list")
	}
	list, ok := raw.([]any)
	if !ok {
		return nil, errors.New(errors.ErrCodeDescriptorIsNotArray, "top-level descriptor is not a list")
	}

	nodes, err := decodeNodes(list)
	if err != nil {
		return nil, err
	}
	return &Document{
		Title:       str(body, "title"),
		Doc:         decodeDoc(body["doc"]),
		Schema:      str(body, "$schema"),
		Version:     str(body, "version"),
		Descriptors: nodes,
	}, nil
}

func decodeNodes(list []any) ([]Node, error) {
	nodes := make([]Node, 0, len(list))
	for i, item := range list {
		m, ok := asMap(item)
		if !ok {
			return nil, errors.New(errors.ErrCodeInvalidDescriptor, "descriptor entry %d is not an object", i)
		}
		n, err := decodeNode(m)
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, n)
	}
	return nodes, nil
}

func decodeNode(m map[string]any) (Node, error) {
	n := Node{
		ID:    str(m, "id"),
		Href:  str(m, "href"),
		Type:  str(m, "type"),
		Rt:    str(m, "rt"),
		Rel:   str(m, "rel"),
		Def:   str(m, "def"),
		Title: str(m, "title"),
		Tag:   str(m, "tag"),
		Doc:   decodeDoc(m["doc"]),
	}
	raw, present := m["descriptor"]
	if !present {
		return n, nil
	}
	list, ok := raw.([]any)
	if !ok {
		n.Shape = ShapeInvalid
		return n, nil
	}
	children, err := decodeNodes(list)
	if err != nil {
		return Node{}, fmt.Errorf("descriptor %q: %w", n.ID, err)
	}
	n.Shape = ShapeList
	n.Descriptors = children
	return n, nil
}

func decodeDoc(v any) Doc {
	switch d := v.(type) {
	case nil:
		return Doc{}
	case string:
		return Doc{Value: d}
	}
	if m, ok := asMap(v); ok {
		return Doc{Value: str(m, "value"), Format: str(m, "format"), Href: str(m, "href")}
	}
	return Doc{Value: fmt.Sprint(v)}
}

// str reads a scalar attribute. YAML happily decodes ids like 1 or true as
// non-strings, so scalars are formatted rather than rejected.
func str(m map[string]any, key string) string {
	switch v := m[key].(type) {
	case nil:
		return ""
	case string:
		return v
	case bool, int, int64, uint64, float64:
		return fmt.Sprint(v)
	default:
		return ""
	}
}

func asMap(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case map[string]any:
		return m, true
	case map[any]any:
		out := make(map[string]any, len(m))
		for k, val := range m {
			out[fmt.Sprint(k)] = val
		}
		return out, true
	}
	return nil, false
}
