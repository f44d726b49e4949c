package runtime

import (
	goruntime "runtime"
	"strings"
	"testing"
)

func TestNormalizeRef(t *testing.T) {
	tests := []struct {
		name string
		ref  string
		want string
	}{
		{
			name: "bare name",
			ref:  "alpine",
			want: "docker.io/library/alpine:latest",
		},
		{
			name: "bare name with tag",
			ref:  "alpine:3.20",
			want: "docker.io/library/alpine:3.20",
		},
		{
			name: "namespaced",
			ref:  "cruciblehq/app:v2",
			want: "docker.io/cruciblehq/app:v2",
		},
		{
			name: "fully qualified",
			ref:  "ghcr.io/cruciblehq/app:v2",
			want: "ghcr.io/cruciblehq/app:v2",
		},
		{
			name: "registry with port",
			ref:  "localhost:5000/app:dev",
			want: "localhost:5000/app:dev",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := normalizeRef(tt.ref)
			if err != nil {
				t.Fatalf("normalizeRef(%q): %v", tt.ref, err)
			}
			if got != tt.want {
				t.Errorf("normalizeRef(%q) = %q, want %q", tt.ref, got, tt.want)
			}
		})
	}
}

func TestNormalizeRefInvalid(t *testing.T) {
	for _, ref := range []string{"", "UPPER:latest", "foo bar"} {
		if _, err := normalizeRef(ref); err == nil {
			t.Errorf("normalizeRef(%q): expected error", ref)
		}
	}
}

func TestDefaultPlatform(t *testing.T) {
	got := defaultPlatform()
	if !strings.HasPrefix(got, "linux/") {
		t.Errorf("defaultPlatform() = %q, want linux prefix", got)
	}
	if got != "linux/"+goruntime.GOARCH {
		t.Errorf("defaultPlatform() = %q", got)
	}
}
