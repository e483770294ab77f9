package dist

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// maxPathDepth bounds nested dir-reference expansion in Path; deeper chains
// are treated as reference cycles.
const maxPathDepth = 100

// Config holds the distribution-specific options from a dist.yaml manifest.
//
// These options are immutable for the lifetime of a deployment: they describe
// the Hadoop distribution itself (Apache, Hortonworks, ...), not mutable
// charm configuration.
type Config struct {
	Vendor        string              `yaml:"vendor"`
	HadoopVersion string              `yaml:"hadoop_version"`
	Packages      []string            `yaml:"packages"`
	Groups        []string            `yaml:"groups"`
	Users         map[string]UserSpec `yaml:"users"`
	Dirs          map[string]DirSpec  `yaml:"dirs"`
	Ports         map[string]PortSpec `yaml:"ports"`

	raw map[string]yaml.Node
}

// UserSpec describes a system user required by the distribution. The first
// group is the user's primary group.
type UserSpec struct {
	Groups []string `yaml:"groups"`
}

// DirSpec describes a directory required by the distribution. Path may
// reference other dirs as {dirs[name]} or charm config options as
// {config[option]}.
type DirSpec struct {
	Path  string `yaml:"path"`
	Owner string `yaml:"owner"`
	Group string `yaml:"group"`
	Perms uint32 `yaml:"perms"`
}

// PortSpec describes a network port used by the distribution. ExposedOn
// optionally names the service that should expose the port publicly.
type PortSpec struct {
	Port      int    `yaml:"port"`
	ExposedOn string `yaml:"exposed_on"`
}

// Load reads and parses a dist.yaml manifest, validating that the required
// top-level keys are present.
func Load(path string, required ...string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest: %w", err)
	}
	cfg, err := Parse(data, required...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Parse parses dist.yaml content, validating required top-level keys.
func Parse(data []byte, required ...string) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse manifest: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg.raw); err != nil {
		return nil, fmt.Errorf("failed to parse manifest: %w", err)
	}

	var missing []string
	for _, key := range required {
		if _, ok := cfg.raw[key]; !ok {
			missing = append(missing, key)
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return nil, fmt.Errorf("manifest is missing required option(s): %s",
			strings.Join(missing, ", "))
	}

	return &cfg, nil
}

// HasKey reports whether the manifest defines the given top-level key.
func (c *Config) HasKey(key string) bool {
	_, ok := c.raw[key]
	return ok
}

// Path resolves the path of the named dir entry. References to other dirs
// ({dirs[name]}) and to charm config options ({config[option]}) are expanded
// recursively; charmConfig may be nil when no config references are used.
func (c *Config) Path(key string, charmConfig map[string]string) (string, error) {
	spec, ok := c.Dirs[key]
	if !ok {
		return "", fmt.Errorf("unknown dir %q in manifest", key)
	}

	path := spec.Path
	for depth := 0; strings.Contains(path, "{"); depth++ {
		if depth >= maxPathDepth {
			return "", fmt.Errorf("maximum level of nested dir references exceeded for %q", key)
		}
		expanded, err := c.expandOnce(path, charmConfig)
		if err != nil {
			return "", fmt.Errorf("dir %q: %w", key, err)
		}
		if expanded == path {
			return "", fmt.Errorf("dir %q: unresolvable reference in %q", key, path)
		}
		path = expanded
	}
	return path, nil
}

// expandOnce substitutes one level of {dirs[...]} and {config[...]}
// references in path.
func (c *Config) expandOnce(path string, charmConfig map[string]string) (string, error) {
	var b strings.Builder
	rest := path
	for {
		open := strings.IndexByte(rest, '{')
		if open < 0 {
			b.WriteString(rest)
			return b.String(), nil
		}
		close := strings.IndexByte(rest[open:], '}')
		if close < 0 {
			b.WriteString(rest)
			return b.String(), nil
		}
		ref := rest[open+1 : open+close]
		b.WriteString(rest[:open])
		rest = rest[open+close+1:]

		switch {
		case strings.HasPrefix(ref, "dirs[") && strings.HasSuffix(ref, "]"):
			name := ref[len("dirs[") : len(ref)-1]
			spec, ok := c.Dirs[name]
			if !ok {
				return "", fmt.Errorf("reference to unknown dir %q", name)
			}
			b.WriteString(spec.Path)
		case strings.HasPrefix(ref, "config[") && strings.HasSuffix(ref, "]"):
			name := ref[len("config[") : len(ref)-1]
			value, ok := charmConfig[name]
			if !ok {
				return "", fmt.Errorf("reference to unknown config option %q", name)
			}
			b.WriteString(value)
		default:
			return "", fmt.Errorf("unrecognized reference {%s}", ref)
		}
	}
}

// CreateDirs creates every dir entry beneath root with its declared perms
// (0755 when unset). Ownership is not changed: owner/group from the manifest
// are deployment-host concerns handled by the calling hook.
func (c *Config) CreateDirs(root string, charmConfig map[string]string) error {
	for _, name := range c.DirNames() {
		path, err := c.Path(name, charmConfig)
		if err != nil {
			return err
		}
		perms := os.FileMode(c.Dirs[name].Perms)
		if perms == 0 {
			perms = 0o755
		}
		full := filepath.Join(root, path)
		if err := os.MkdirAll(full, perms); err != nil {
			return fmt.Errorf("failed to create dir %q: %w", name, err)
		}
		// MkdirAll perms are umask-filtered; make them explicit.
		if err := os.Chmod(full, perms); err != nil {
			return fmt.Errorf("failed to set perms on dir %q: %w", name, err)
		}
	}
	return nil
}

// Port returns the named port.
func (c *Config) Port(name string) (int, bool) {
	spec, ok := c.Ports[name]
	if !ok {
		return 0, false
	}
	return spec.Port, true
}

// ExposedPorts returns the ports exposed on the given service, sorted.
func (c *Config) ExposedPorts(service string) []int {
	var ports []int
	for _, spec := range c.Ports {
		if spec.ExposedOn == service {
			ports = append(ports, spec.Port)
		}
	}
	sort.Ints(ports)
	return ports
}

// ValidateDirs checks that every required dir entry is present in the
// manifest; the error lists all missing entries.
func (c *Config) ValidateDirs(required ...string) error {
	var missing []string
	for _, name := range required {
		if _, ok := c.Dirs[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return fmt.Errorf("dirs option in manifest is missing required entr(y/ies): %s",
			strings.Join(missing, ", "))
	}
	return nil
}

// DirNames returns the dir entry names, sorted.
func (c *Config) DirNames() []string {
	names := make([]string, 0, len(c.Dirs))
	for name := range c.Dirs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// UserNames returns the user entry names, sorted.
func (c *Config) UserNames() []string {
	names := make([]string, 0, len(c.Users))
	for name := range c.Users {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// PrimaryGroup returns the primary group of the named user (the first entry
// of its groups list), or "" when none is declared.
func (c *Config) PrimaryGroup(user string) string {
	spec, ok := c.Users[user]
	if !ok || len(spec.Groups) == 0 {
		return ""
	}
	return spec.Groups[0]
}

// SecondaryGroups returns the secondary groups of the named user.
func (c *Config) SecondaryGroups(user string) []string {
	spec, ok := c.Users[user]
	if !ok || len(spec.Groups) < 2 {
		return nil
	}
	return spec.Groups[1:]
}
