package io

import (
	"bytes"
	"encoding/xml"
	"strings"

	"github.com/matzehuels/alpsviz/pkg/errors"
)

// element is a generic XML element: attributes, text and child elements in
// document order.
type element struct {
	XMLName  xml.Name
	Attrs    []xml.Attr `xml:",any,attr"`
	Text     string     `xml:",chardata"`
	Children []element  `xml:",any"`
}

// decodeXML converts an ALPS XML document into the generic shape of its JSON
// form, so both formats share one decoder in package alps:
//
//	<alps><title>T</title><descriptor id="a"/></alps>
//	→ {"alps": {"title": "T", "descriptor": [{"id": "a"}]}}
func decodeXML(data []byte) (any, error) {
	var root element
	if err := xml.NewDecoder(bytes.NewReader(data)).Decode(&root); err != nil {
		return nil, errors.Wrap(errors.ErrCodeMalformedInput, err, "decode XML")
	}
	if root.XMLName.Local != "alps" {
		return nil, errors.New(errors.ErrCodeInvalidDocument, "root element is <%s>, want <alps>", root.XMLName.Local)
	}
	return map[string]any{"alps": toMap(root)}, nil
}

func toMap(e element) map[string]any {
	m := make(map[string]any, len(e.Attrs)+2)
	for _, a := range e.Attrs {
		m[a.Name.Local] = a.Value
	}

	var descriptors []any
	for _, c := range e.Children {
		switch c.XMLName.Local {
		case "descriptor":
			descriptors = append(descriptors, toMap(c))
		case "doc":
			doc := map[string]any{"value": strings.TrimSpace(c.Text)}
			for _, a := range c.Attrs {
				doc[a.Name.Local] = a.Value
			}
			m["doc"] = doc
		case "title":
			m["title"] = strings.TrimSpace(c.Text)
		}
	}
	if descriptors != nil {
		m["descriptor"] = descriptors
	}
	return m
}
