package resources

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Resource describes one downloadable resource from a resources.yaml
// manifest. Fetching is out of scope here; this package only resolves which
// resource a charm should use.
type Resource struct {
	URL      string `yaml:"url"`
	Hash     string `yaml:"hash"`
	HashType string `yaml:"hash_type"`
	Filename string `yaml:"filename"`
}

// Manifest is a parsed resources.yaml: required resources plus optional ones
// (e.g. the LZO compression codec, which not every distribution ships).
type Manifest struct {
	Resources map[string]Resource `yaml:"resources"`
	Optional  map[string]Resource `yaml:"optional_resources"`
}

// Load reads and parses a resources.yaml manifest.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest: %w", err)
	}
	m, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return m, nil
}

// Parse parses resources.yaml content.
func Parse(data []byte) (*Manifest, error) {
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to parse manifest: %w", err)
	}
	return &m, nil
}

// Defined reports whether a resource with the given name exists, in either
// the required or optional section.
func (m *Manifest) Defined(name string) bool {
	_, ok := m.Get(name)
	return ok
}

// Get returns the named resource from either section.
func (m *Manifest) Get(name string) (Resource, bool) {
	if r, ok := m.Resources[name]; ok {
		return r, true
	}
	r, ok := m.Optional[name]
	return r, ok
}

// SelectHadoop resolves the Hadoop resource for a distribution version and
// CPU architecture. A version-specific resource (hadoop-<version>-<arch>)
// wins over the generic hadoop-<arch>.
func (m *Manifest) SelectHadoop(version, arch string) (string, error) {
	versioned := fmt.Sprintf("hadoop-%s-%s", version, arch)
	if m.Defined(versioned) {
		return versioned, nil
	}
	generic := fmt.Sprintf("hadoop-%s", arch)
	if m.Defined(generic) {
		return generic, nil
	}
	return "", fmt.Errorf("no hadoop resource defined for version %s on %s (looked for %s, %s)",
		version, arch, versioned, generic)
}

// SelectLZO resolves the optional LZO codec resource for an architecture.
// ok is false when the distribution does not ship one.
func (m *Manifest) SelectLZO(arch string) (string, bool) {
	name := fmt.Sprintf("hadoop-lzo-%s", arch)
	return name, m.Defined(name)
}
