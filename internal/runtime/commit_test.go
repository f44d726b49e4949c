package runtime

import (
	"fmt"
	"testing"

	"github.com/opencontainers/go-digest"
	ocispec "github.com/opencontainers/image-spec/specs-go/v1"
)

func TestFqRef(t *testing.T) {
	if got := fqRef("cruciblehq/app", "v2"); got != "cruciblehq/app:v2" {
		t.Errorf("fqRef() = %q", got)
	}
}

func TestManifestGCLabels(t *testing.T) {
	m := ocispec.Manifest{
		Config: ocispec.Descriptor{Digest: digest.FromString("config")},
		Layers: []ocispec.Descriptor{
			{Digest: digest.FromString("layer0")},
			{Digest: digest.FromString("layer1")},
		},
	}

	labels := manifestGCLabels(m)

	if got := labels["containerd.io/gc.ref.content.config"]; got != m.Config.Digest.String() {
		t.Errorf("config label = %q", got)
	}
	for i, layer := range m.Layers {
		key := fmt.Sprintf("containerd.io/gc.ref.content.l.%d", i)
		if got := labels[key]; got != layer.Digest.String() {
			t.Errorf("label %s = %q, want %q", key, got, layer.Digest)
		}
	}
	if len(labels) != 3 {
		t.Errorf("len(labels) = %d, want 3", len(labels))
	}
}

func TestIndexGCLabels(t *testing.T) {
	idx := ocispec.Index{
		Manifests: []ocispec.Descriptor{
			{Digest: digest.FromString("manifest0")},
		},
	}

	labels := indexGCLabels(idx)

	if got := labels["containerd.io/gc.ref.content.m.0"]; got != idx.Manifests[0].Digest.String() {
		t.Errorf("label = %q", got)
	}
	if len(labels) != 1 {
		t.Errorf("len(labels) = %d, want 1", len(labels))
	}
}
