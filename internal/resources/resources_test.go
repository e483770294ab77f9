package resources

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const sampleManifest = `
resources:
  java-installer:
    url: https://example.com/java-installer.sh
    hash: deadbeef
    hash_type: sha256
  hadoop-x86_64:
    url: https://example.com/hadoop-x86_64.tar.gz
    hash: cafef00d
    hash_type: sha256
  hadoop-2.7.1-x86_64:
    url: https://example.com/hadoop-2.7.1-x86_64.tar.gz
    hash: 8badf00d
    hash_type: sha256
optional_resources:
  hadoop-lzo-x86_64:
    url: https://example.com/hadoop-lzo-x86_64.tar.gz
    hash: feedface
    hash_type: sha256
`

func TestParseAndGet(t *testing.T) {
	m, err := Parse([]byte(sampleManifest))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	r, ok := m.Get("java-installer")
	if !ok {
		t.Fatalf("Get(java-installer) not found")
	}
	if r.HashType != "sha256" || r.Hash != "deadbeef" {
		t.Errorf("java-installer = %+v", r)
	}

	if _, ok := m.Get("hadoop-lzo-x86_64"); !ok {
		t.Errorf("optional resources should be visible through Get")
	}
	if m.Defined("bogus") {
		t.Errorf("Defined(bogus) = true")
	}
}

func TestLoad(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "resources.yaml")
	if err := os.WriteFile(path, []byte(sampleManifest), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}

	if _, err := Load(path); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if _, err := Load(filepath.Join(tmpDir, "missing.yaml")); err == nil {
		t.Fatalf("Load() expected error for missing file")
	}
}

func TestSelectHadoop(t *testing.T) {
	m, err := Parse([]byte(sampleManifest))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	tests := []struct {
		name    string
		version string
		arch    string
		want    string
		wantErr bool
	}{
		{
			name:    "versioned resource preferred",
			version: "2.7.1",
			arch:    "x86_64",
			want:    "hadoop-2.7.1-x86_64",
		},
		{
			name:    "falls back to generic",
			version: "2.4.1",
			arch:    "x86_64",
			want:    "hadoop-x86_64",
		},
		{
			name:    "unknown arch",
			version: "2.7.1",
			arch:    "ppc64le",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := m.SelectHadoop(tt.version, tt.arch)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("SelectHadoop() = %q, want error", got)
				}
				if !strings.Contains(err.Error(), "ppc64le") {
					t.Errorf("error should name the arch: %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("SelectHadoop() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("SelectHadoop() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSelectLZO(t *testing.T) {
	m, err := Parse([]byte(sampleManifest))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if name, ok := m.SelectLZO("x86_64"); !ok || name != "hadoop-lzo-x86_64" {
		t.Errorf("SelectLZO(x86_64) = %q, %v", name, ok)
	}
	if _, ok := m.SelectLZO("ppc64le"); ok {
		t.Errorf("SelectLZO(ppc64le) should be absent")
	}
}
