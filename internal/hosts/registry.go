// Package hosts maintains the managed ip/hostname registry a Hadoop
// deployment shares across its units, and rewrites the managed section of
// /etc/hosts from it.
package hosts

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/juju-solutions/bigdata-go/internal/util"
)

// Registry is a persistent map of IP address to hostname. Hostnames are
// unique: registering a hostname under a new IP drops the old entry.
type Registry struct {
	path  string
	hosts map[string]string // ip -> hostname
}

// OpenRegistry loads the registry stored at path, starting empty when the
// file does not exist yet.
func OpenRegistry(path string) (*Registry, error) {
	r := &Registry{path: path, hosts: make(map[string]string)}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return r, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read host registry: %w", err)
	}
	if err := json.Unmarshal(data, &r.hosts); err != nil {
		return nil, fmt.Errorf("failed to parse host registry %s: %w", path, err)
	}
	return r, nil
}

// Register records hostname under ip, removing any other IPs previously
// registered for the same hostname.
func (r *Registry) Register(ip, hostname string) {
	for existing, name := range r.hosts {
		if name == hostname && existing != ip {
			delete(r.hosts, existing)
		}
	}
	r.hosts[ip] = hostname
}

// RegisterAll records every entry of ipsToNames.
func (r *Registry) RegisterAll(ipsToNames map[string]string) {
	for ip, name := range ipsToNames {
		r.Register(ip, name)
	}
}

// Remove deletes every entry for the given hostnames.
func (r *Registry) Remove(hostnames ...string) {
	drop := make(map[string]bool, len(hostnames))
	for _, name := range hostnames {
		drop[name] = true
	}
	for ip, name := range r.hosts {
		if drop[name] {
			delete(r.hosts, ip)
		}
	}
}

// Lookup returns the hostname registered for ip.
func (r *Registry) Lookup(ip string) (string, bool) {
	name, ok := r.hosts[ip]
	return name, ok
}

// Entries returns the registry contents as an ip -> hostname map copy.
func (r *Registry) Entries() map[string]string {
	out := make(map[string]string, len(r.hosts))
	for ip, name := range r.hosts {
		out[ip] = name
	}
	return out
}

// IPs returns the registered IPs, sorted.
func (r *Registry) IPs() []string {
	ips := make([]string, 0, len(r.hosts))
	for ip := range r.hosts {
		ips = append(ips, ip)
	}
	sort.Strings(ips)
	return ips
}

// Flush persists the registry to its backing file. The write is atomic so
// concurrent hook invocations never observe a truncated registry.
func (r *Registry) Flush() error {
	if err := util.MkdirAll(filepath.Dir(r.path)); err != nil {
		return err
	}
	data, err := json.MarshalIndent(r.hosts, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal host registry: %w", err)
	}
	return util.WriteFileAtomic(r.path, append(data, '\n'), 0644)
}
