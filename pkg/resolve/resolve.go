package resolve

import (
	"fmt"
	"path/filepath"

	"github.com/matzehuels/alpsviz/pkg/alps"
	"github.com/matzehuels/alpsviz/pkg/errors"
)

// Loader reads and decodes one ALPS file.
type Loader interface {
	Load(path string) (*alps.Document, error)
}

// LoaderFunc adapts a function to [Loader].
type LoaderFunc func(path string) (*alps.Document, error)

// Load calls f(path).
func (f LoaderFunc) Load(path string) (*alps.Document, error) { return f(path) }

// Result is the merged working set of a resolved profile.
type Result struct {
	// Document is the root document. Its Descriptors are the root's own,
	// with external references rewritten to "#id".
	Document *alps.Document

	// Descriptors holds the root descriptors followed by every descriptor
	// pulled in from other files, in the order they were resolved.
	Descriptors []alps.Node

	// Files lists every distinct file loaded, root first.
	Files []string
}

// Resolver resolves cross-file references. The zero value is not usable;
// create one with [New].
type Resolver struct {
	loader Loader
}

// New creates a Resolver that reads files through loader.
func New(loader Loader) *Resolver {
	return &Resolver{loader: loader}
}

// target is one queued (file, id) pair.
type target struct {
	file string
	id   string
}

// run is the state of a single Resolve call.
type run struct {
	loader  Loader
	docs    map[string]*alps.Document
	files   []string
	visited map[target]bool
	queue   []target
	merged  []alps.Node
}

// Resolve loads root and every descriptor it transitively references in
// other files.
//
// It returns FILE_NOT_READABLE when a referenced file cannot be loaded,
// DESCRIPTOR_NOT_FOUND when a fragment does not exist in its file and
// INVALID_REFERENCE_FORMAT for an href without "#". An rt without "#" is left
// as is; the table builder reports it as RT_MISSING.
func (r *Resolver) Resolve(root string) (*Result, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeFileNotReadable, err, "resolve %s", root)
	}

	st := &run{
		loader:  r.loader,
		docs:    make(map[string]*alps.Document),
		visited: make(map[target]bool),
	}

	doc, err := st.load(abs)
	if err != nil {
		return nil, err
	}
	for id := range doc.IDs() {
		st.visited[target{abs, id}] = true
	}

	rootNodes := cloneAll(doc.Descriptors)
	if err := st.scan(rootNodes, abs, doc); err != nil {
		return nil, err
	}
	st.merged = append(st.merged, rootNodes...)

	for len(st.queue) > 0 {
		t := st.queue[0]
		st.queue = st.queue[1:]
		if st.visited[t] {
			continue
		}
		st.visited[t] = true

		src, err := st.load(t.file)
		if err != nil {
			return nil, err
		}
		n, ok := src.Find(t.id)
		if !ok {
			return nil, errors.New(errors.ErrCodeDescriptorNotFound, "descriptor %q not found in %s", t.id, t.file)
		}
		pulled := []alps.Node{n.Clone()}
		alps.Walk(pulled, func(c *alps.Node) bool {
			if c.ID != "" {
				st.visited[target{t.file, c.ID}] = true
			}
			return true
		})
		if err := st.scan(pulled, t.file, src); err != nil {
			return nil, err
		}
		st.merged = append(st.merged, pulled...)
	}

	out := *doc
	out.Descriptors = rootNodes
	return &Result{Document: &out, Descriptors: st.merged, Files: st.files}, nil
}

// load returns the document at path, reading it at most once per run.
func (st *run) load(path string) (*alps.Document, error) {
	if doc, ok := st.docs[path]; ok {
		return doc, nil
	}
	doc, err := st.loader.Load(path)
	if err != nil {
		if errors.GetCode(err) == "" {
			return nil, errors.Wrap(errors.ErrCodeFileNotReadable, err, "load %s", path)
		}
		return nil, err
	}
	st.docs[path] = doc
	st.files = append(st.files, path)
	return doc, nil
}

// scan walks nodes that came from file, queuing what they reference and
// rewriting every followed reference to "#id".
func (st *run) scan(nodes []alps.Node, file string, doc *alps.Document) error {
	var err error
	alps.Walk(nodes, func(n *alps.Node) bool {
		if err != nil {
			return false
		}
		if n.Href != "" {
			var href string
			if href, err = st.follow(n.Href, file, doc); err != nil {
				err = fmt.Errorf("href of %s: %w", describe(n), err)
				return false
			}
			n.Href = href
		}
		if _, ok := alps.FragmentID(n.Rt); ok {
			var rt string
			if rt, err = st.follow(n.Rt, file, doc); err != nil {
				err = fmt.Errorf("rt of %s: %w", describe(n), err)
				return false
			}
			n.Rt = rt
		}
		return true
	})
	return err
}

// follow validates or queues one reference and returns its "#id" form.
func (st *run) follow(s, file string, doc *alps.Document) (string, error) {
	ref, err := alps.ParseRef(s)
	if err != nil {
		return "", err
	}
	if ref.IsInternal() {
		if st.isRoot(file) {
			if _, ok := doc.Find(ref.ID); !ok {
				return "", errors.New(errors.ErrCodeDescriptorNotFound, "descriptor %q not found in %s", ref.ID, file)
			}
			return s, nil
		}
		// Same-document reference inside a pulled-in descriptor: the target
		// lives in that descriptor's file and has to be merged too.
		st.queue = append(st.queue, target{file, ref.ID})
		return s, nil
	}

	path := ref.File
	if !filepath.IsAbs(path) {
		path = filepath.Join(filepath.Dir(file), path)
	}
	st.queue = append(st.queue, target{filepath.Clean(path), ref.ID})
	return ref.Internal(), nil
}

func (st *run) isRoot(file string) bool {
	return len(st.files) > 0 && st.files[0] == file
}

func describe(n *alps.Node) string {
	if n.ID != "" {
		return fmt.Sprintf("descriptor %q", n.ID)
	}
	return "descriptor reference"
}

func cloneAll(nodes []alps.Node) []alps.Node {
	out := make([]alps.Node, len(nodes))
	for i, n := range nodes {
		out[i] = n.Clone()
	}
	return out
}
