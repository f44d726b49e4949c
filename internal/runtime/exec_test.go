package runtime

import (
	"io"
	"slices"
	"strings"
	"testing"
	"time"
)

func TestMergeEnv(t *testing.T) {
	base := []string{"PATH=/usr/bin", "HOME=/root"}
	overrides := []string{"HOME=/home/app", "APP_ENV=production"}

	got := mergeEnv(base, overrides)
	slices.Sort(got)

	want := []string{"APP_ENV=production", "HOME=/home/app", "PATH=/usr/bin"}
	if !slices.Equal(got, want) {
		t.Errorf("mergeEnv() = %v, want %v", got, want)
	}
}

func TestMergeEnvEmptyOverrides(t *testing.T) {
	got := mergeEnv([]string{"PATH=/usr/bin"}, nil)
	if len(got) != 1 || got[0] != "PATH=/usr/bin" {
		t.Errorf("mergeEnv() = %v", got)
	}
}

func TestNextExecID(t *testing.T) {
	a := nextExecID()
	b := nextExecID()

	if a == b {
		t.Errorf("consecutive IDs are equal: %q", a)
	}
	if !strings.HasPrefix(a, "exec-") {
		t.Errorf("ID = %q, want exec- prefix", a)
	}
}

func TestDoneReaderSignalsEOF(t *testing.T) {
	dr := newDoneReader(strings.NewReader("patch body"))

	select {
	case <-dr.done:
		t.Fatal("done closed before EOF")
	default:
	}

	if _, err := io.ReadAll(dr); err != nil {
		t.Fatal(err)
	}

	select {
	case <-dr.done:
	case <-time.After(time.Second):
		t.Fatal("done not closed after EOF")
	}

	// A read past EOF must not panic on the already-closed channel.
	buf := make([]byte, 1)
	if _, err := dr.Read(buf); err != io.EOF {
		t.Errorf("Read past EOF: %v, want io.EOF", err)
	}
}
