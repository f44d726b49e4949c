package build

import (
	"reflect"
	"testing"

	"github.com/cruciblehq/imgpatch/internal/patch"
)

func testPatch(name, workdir string) patch.Patch {
	return patch.Patch{Name: name, Source: []byte("diff"), Workdir: workdir}
}

func TestNewSequenceOrder(t *testing.T) {
	ops := []Operation{
		ApplyPatch{Patch: testPatch("a.patch", "/app")},
		CopyFile{Src: "conf", Dst: "/etc/conf"},
		ApplyPatch{Patch: testPatch("b.patch", "/lib")},
	}
	before := []RunCommand{
		{Argv: []string{"sh", "-c", "one"}},
		{Argv: []string{"sh", "-c", "two"}},
	}
	after := []RunCommand{
		{Argv: []string{"sh", "-c", "three"}},
	}

	seq, err := NewSequence(ops, before, after)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	wantKinds := []string{"run", "run", "patch", "copy", "patch", "run"}
	if len(seq) != len(wantKinds) {
		t.Fatalf("len = %d, want %d", len(seq), len(wantKinds))
	}
	for i, kind := range wantKinds {
		if seq[i].Kind() != kind {
			t.Errorf("seq[%d].Kind() = %q, want %q", i, seq[i].Kind(), kind)
		}
	}

	// Run-before commands keep their own relative order.
	if seq[0].(RunCommand).Argv[2] != "one" || seq[1].(RunCommand).Argv[2] != "two" {
		t.Error("run-before commands reordered")
	}

	// Patch/copy operations keep the literal flag order.
	if seq[2].(ApplyPatch).Patch.Name != "a.patch" {
		t.Error("first patch is not a.patch")
	}
	if seq[4].(ApplyPatch).Patch.Name != "b.patch" {
		t.Error("second patch is not b.patch")
	}
}

func TestNewSequenceInterleavings(t *testing.T) {
	// Whatever the interleaving of patch and copy operations, the sequence
	// preserves it verbatim.
	interleavings := [][]Operation{
		{
			ApplyPatch{Patch: testPatch("1", "/a")},
			ApplyPatch{Patch: testPatch("2", "/b")},
			CopyFile{Src: "x", Dst: "/x"},
		},
		{
			CopyFile{Src: "x", Dst: "/x"},
			ApplyPatch{Patch: testPatch("1", "/a")},
			CopyFile{Src: "y", Dst: "/y"},
			ApplyPatch{Patch: testPatch("2", "/b")},
		},
	}

	for _, ops := range interleavings {
		seq, err := NewSequence(ops, nil, nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(seq) != len(ops) {
			t.Fatalf("len = %d, want %d", len(seq), len(ops))
		}
		for i := range ops {
			if !reflect.DeepEqual(seq[i], ops[i]) {
				t.Errorf("seq[%d] = %#v, want %#v", i, seq[i], ops[i])
			}
		}
	}
}

func TestNewSequenceValidation(t *testing.T) {
	tests := []struct {
		name string
		op   Operation
	}{
		{
			name: "patch without workdir",
			op:   ApplyPatch{Patch: patch.Patch{Name: "x", Source: []byte("diff")}},
		},
		{
			name: "patch without content",
			op:   ApplyPatch{Patch: patch.Patch{Name: "x", Workdir: "/app"}},
		},
		{
			name: "copy without destination",
			op:   CopyFile{Src: "x"},
		},
		{
			name: "empty run command",
			op:   RunCommand{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewSequence([]Operation{tt.op}, nil, nil); err == nil {
				t.Fatal("expected error, got nil")
			}
		})
	}
}

func TestNewSequenceEmpty(t *testing.T) {
	seq, err := NewSequence(nil, nil, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(seq) != 0 {
		t.Fatalf("len = %d, want 0", len(seq))
	}
}
