package watch

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
)

func TestOpString(t *testing.T) {
	tests := []struct {
		op   Op
		want string
	}{
		{OpCreate, "create"},
		{OpWrite, "write"},
		{OpRemove, "remove"},
		{OpRename, "rename"},
		{Op(99), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.op.String(); got != tt.want {
			t.Errorf("Op(%d).String() = %q, want %q", tt.op, got, tt.want)
		}
	}
}

func TestConvertOp(t *testing.T) {
	tests := []struct {
		op   fsnotify.Op
		want Op
	}{
		{fsnotify.Create, OpCreate},
		{fsnotify.Write, OpWrite},
		{fsnotify.Remove, OpRemove},
		{fsnotify.Rename, OpRename},
		{fsnotify.Create | fsnotify.Write, OpCreate},
	}
	for _, tt := range tests {
		if got := convertOp(tt.op); got != tt.want {
			t.Errorf("convertOp(%v) = %v, want %v", tt.op, got, tt.want)
		}
	}
}

func TestDedupe(t *testing.T) {
	now := time.Now()
	in := []Change{
		{Path: "/a", Op: OpWrite, Time: now},
		{Path: "/b", Op: OpCreate, Time: now},
		{Path: "/a", Op: OpRemove, Time: now.Add(time.Millisecond)},
	}
	out := dedupe(in)
	if len(out) != 2 {
		t.Fatalf("got %d changes, want 2", len(out))
	}
	if out[0].Path != "/a" || out[0].Op != OpRemove {
		t.Errorf("first change = %+v, want latest change to /a", out[0])
	}
	if out[1].Path != "/b" {
		t.Errorf("second change = %+v", out[1])
	}
}

func TestWatcherReportsChanges(t *testing.T) {
	dir := t.TempDir()
	watched := filepath.Join(dir, "profile.json")
	other := filepath.Join(dir, "notes.txt")
	for _, f := range []string{watched, other} {
		if err := os.WriteFile(f, []byte("{}"), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	batches := make(chan []Change, 10)
	w, err := New([]string{watched}, func(changes []Change) {
		batches <- changes
	}, &Options{Debounce: 20 * time.Millisecond})
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	defer w.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	if err := os.WriteFile(other, []byte("ignored"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(watched, []byte(`{"alps": {}}`), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case changes := <-batches:
		for _, c := range changes {
			if c.Path != watched {
				t.Errorf("unexpected change to %s", c.Path)
			}
		}
		if len(changes) == 0 {
			t.Error("empty batch")
		}
	case <-time.After(5 * time.Second):
		t.Fatal("no change reported")
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Run() error: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func TestSetFiles(t *testing.T) {
	a, b := t.TempDir(), t.TempDir()
	w, err := New([]string{filepath.Join(a, "root.json")}, nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	defer w.Close()

	if err := w.SetFiles([]string{filepath.Join(a, "root.json"), filepath.Join(b, "shared.json")}); err != nil {
		t.Fatalf("SetFiles() error: %v", err)
	}
	if w.Files() != 2 {
		t.Errorf("Files() = %d, want 2", w.Files())
	}
	if !w.watches(filepath.Join(b, "shared.json")) {
		t.Error("shared.json should be watched")
	}

	if err := w.SetFiles([]string{filepath.Join(a, "root.json")}); err != nil {
		t.Fatal(err)
	}
	if w.watches(filepath.Join(b, "shared.json")) {
		t.Error("shared.json should no longer be watched")
	}
}

func TestNewMissingDirectory(t *testing.T) {
	_, err := New([]string{filepath.Join(t.TempDir(), "missing", "p.json")}, nil, nil)
	if err == nil {
		t.Error("New() should fail when the directory does not exist")
	}
}
