package hosts

import (
	"errors"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func TestRegistryRegister(t *testing.T) {
	tmpDir := t.TempDir()
	r, err := OpenRegistry(filepath.Join(tmpDir, "state", "hosts.json"))
	if err != nil {
		t.Fatalf("OpenRegistry() error = %v", err)
	}

	r.Register("10.0.0.1", "namenode-0")
	r.Register("10.0.0.2", "datanode-0")

	// Re-registering a hostname under a new IP drops the old entry.
	r.Register("10.0.0.9", "namenode-0")

	want := map[string]string{
		"10.0.0.9": "namenode-0",
		"10.0.0.2": "datanode-0",
	}
	if got := r.Entries(); !reflect.DeepEqual(got, want) {
		t.Errorf("Entries() = %v, want %v", got, want)
	}
	if got := r.IPs(); !reflect.DeepEqual(got, []string{"10.0.0.2", "10.0.0.9"}) {
		t.Errorf("IPs() = %v", got)
	}
}

func TestRegistryPersistence(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hosts.json")

	r, err := OpenRegistry(path)
	if err != nil {
		t.Fatalf("OpenRegistry() error = %v", err)
	}
	r.RegisterAll(map[string]string{
		"10.0.0.1": "namenode-0",
		"10.0.0.2": "datanode-0",
	})
	if err := r.Flush(); err != nil {
		t.Fatalf("Flush() error = %v", err)
	}

	again, err := OpenRegistry(path)
	if err != nil {
		t.Fatalf("reopen error = %v", err)
	}
	if name, ok := again.Lookup("10.0.0.1"); !ok || name != "namenode-0" {
		t.Errorf("Lookup(10.0.0.1) = %q, %v", name, ok)
	}

	again.Remove("datanode-0")
	if _, ok := again.Lookup("10.0.0.2"); ok {
		t.Errorf("datanode-0 should be removed")
	}
}

func TestRenderHosts(t *testing.T) {
	existing := strings.Join([]string{
		"127.0.0.1 localhost",
		"10.9.9.9 stale-unit  # JUJU MANAGED",
		"# hand-written comment",
		"",
	}, "\n")

	entries := map[string]string{
		"10.0.0.1":  "namenode-0",
		"10.0.0.2":  "datanode-0",
		"not-an-ip": "broken-0",
	}

	got := RenderHosts(existing, entries)

	if strings.Contains(got, "stale-unit") {
		t.Errorf("stale managed entry kept:\n%s", got)
	}
	for _, want := range []string{
		"127.0.0.1 localhost",
		"# hand-written comment",
		"10.0.0.1 namenode-0  # JUJU MANAGED",
		"10.0.0.2 datanode-0  # JUJU MANAGED",
		"# not-an-ip broken-0  # JUJU MANAGED (INVALID IP)",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("missing line %q in:\n%s", want, got)
		}
	}
	if !strings.HasSuffix(got, "\n") {
		t.Errorf("output should end with newline")
	}

	// Idempotent: rendering the render replaces managed lines in place.
	again := RenderHosts(got, entries)
	if again != got {
		t.Errorf("RenderHosts not stable:\n%q\nvs\n%q", got, again)
	}
}

func TestResolvePrivateAddress(t *testing.T) {
	failing := func(string) ([]string, error) { return nil, errors.New("no dns") }

	tests := []struct {
		name    string
		addr    string
		lookup  Resolver
		want    string
		wantErr bool
	}{
		{
			name: "already an ip",
			addr: "10.1.2.3",
			want: "10.1.2.3",
		},
		{
			name: "resolved by lookup",
			addr: "namenode-0.internal",
			lookup: func(host string) ([]string, error) {
				return []string{"10.20.30.40"}, nil
			},
			want: "10.20.30.40",
		},
		{
			name:   "guessed from embedded dashes",
			addr:   "ip-10-0-3-17.ec2.internal",
			lookup: failing,
			want:   "10.0.3.17",
		},
		{
			name:    "unresolvable",
			addr:    "plain-hostname",
			lookup:  failing,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ResolvePrivateAddress(tt.addr, tt.lookup)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ResolvePrivateAddress() = %q, want error", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("ResolvePrivateAddress() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("ResolvePrivateAddress(%q) = %q, want %q", tt.addr, got, tt.want)
			}
		})
	}
}
