// Package relation defines the data conventions of the charm-to-charm
// relation interfaces used by the Hadoop charms. The Juju agent carries the
// settings between units; this package only describes which keys an
// interface requires, when a remote unit counts as ready, and how the
// version/environment spec is matched.
package relation

import (
	"encoding/json"
	"fmt"
	"sort"
)

// SpecKey is the relation settings key carrying the JSON-encoded
// environment spec.
const SpecKey = "spec"

// Settings is one unit's relation data.
type Settings map[string]string

// Interface describes a relation interface: its name and the settings keys
// a remote unit must publish before the relation is usable.
type Interface struct {
	Name         string
	RequiredKeys []string
}

// MissingKeys returns the required keys absent or empty in data, sorted.
func (i Interface) MissingKeys(data Settings) []string {
	var missing []string
	for _, key := range i.RequiredKeys {
		if data[key] == "" {
			missing = append(missing, key)
		}
	}
	sort.Strings(missing)
	return missing
}

// SettingsComplete reports whether data carries every required key.
func (i Interface) SettingsComplete(data Settings) bool {
	return len(i.MissingKeys(data)) == 0
}

// EncodeSpec serializes a spec map for the wire.
func EncodeSpec(spec map[string]string) (string, error) {
	if len(spec) == 0 {
		return "", nil
	}
	data, err := json.Marshal(spec)
	if err != nil {
		return "", fmt.Errorf("failed to encode spec: %w", err)
	}
	return string(data), nil
}

// DecodeSpec parses a wire spec value. An empty value decodes to an empty
// spec.
func DecodeSpec(value string) (map[string]string, error) {
	if value == "" {
		return map[string]string{}, nil
	}
	var spec map[string]string
	if err := json.Unmarshal([]byte(value), &spec); err != nil {
		return nil, fmt.Errorf("failed to decode spec: %w", err)
	}
	return spec, nil
}

// MatchSpec verifies that every key of the local spec is present with an
// identical value in the remote spec. The local side may require a subset
// of what the remote publishes, but never the reverse; a mismatch is an
// interoperability error, not a wait state.
func MatchSpec(local, remote map[string]string) error {
	keys := make([]string, 0, len(local))
	for key := range local {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		if remote[key] != local[key] {
			return fmt.Errorf("spec mismatch for %q: %q != %q", key, remote[key], local[key])
		}
	}
	return nil
}

// SpecReady reports readiness for a spec-matching interface: all required
// keys present and the remote spec compatible with the local one. A missing
// key is a wait state (false, nil); a spec mismatch is an error.
func SpecReady(i Interface, local map[string]string, data Settings) (bool, error) {
	if !i.SettingsComplete(data) {
		return false, nil
	}
	if len(local) == 0 {
		return true, nil
	}
	remote, err := DecodeSpec(data[SpecKey])
	if err != nil {
		return false, err
	}
	if err := MatchSpec(local, remote); err != nil {
		return false, fmt.Errorf("relation %s: %w", i.Name, err)
	}
	return true, nil
}
