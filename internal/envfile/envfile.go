// Package envfile edits /etc/environment style files: simple KEY=VALUE
// lines, values optionally quoted. There is no standard for the format; this
// package supports the common convention and quotes every value it writes.
package envfile

import (
	"errors"
	"fmt"
	"os"
	"strings"
)

// File is an ordered set of environment variable assignments.
type File struct {
	keys   []string
	values map[string]string
}

// New returns an empty environment file.
func New() *File {
	return &File{values: make(map[string]string)}
}

// Parse reads KEY=VALUE lines, preserving key order. Blank lines are
// skipped; surrounding single or double quotes on values are stripped.
func Parse(text string) *File {
	f := New()
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		f.Set(strings.TrimSpace(key), strings.Trim(strings.TrimSpace(value), `'"`))
	}
	return f
}

// Load reads and parses an environment file.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read environment file: %w", err)
	}
	return Parse(string(data)), nil
}

// Get returns the value for key.
func (f *File) Get(key string) (string, bool) {
	value, ok := f.values[key]
	return value, ok
}

// Set assigns key to value, appending the key if it is new.
func (f *File) Set(key, value string) {
	if _, ok := f.values[key]; !ok {
		f.keys = append(f.keys, key)
	}
	f.values[key] = value
}

// Unset removes key.
func (f *File) Unset(key string) {
	if _, ok := f.values[key]; !ok {
		return
	}
	delete(f.values, key)
	for i, k := range f.keys {
		if k == key {
			f.keys = append(f.keys[:i], f.keys[i+1:]...)
			break
		}
	}
}

// Keys returns the keys in file order.
func (f *File) Keys() []string {
	return append([]string(nil), f.keys...)
}

// PrependPath puts dir at the front of the named PATH-style variable,
// dropping any duplicate occurrence of dir.
func (f *File) PrependPath(key, dir string) {
	f.Set(key, joinPath([]string{dir}, f.values[key]))
}

// AppendPath puts dir at the end of the named PATH-style variable unless it
// is already present.
func (f *File) AppendPath(key, dir string) {
	current := f.values[key]
	for _, part := range strings.Split(current, ":") {
		if part == dir {
			return
		}
	}
	if current == "" {
		f.Set(key, dir)
		return
	}
	f.Set(key, current+":"+dir)
}

// joinPath joins newParts ahead of an existing colon-separated path,
// deduplicating components while preserving order.
func joinPath(newParts []string, existing string) string {
	seen := make(map[string]bool)
	var result []string
	add := func(part string) {
		part = strings.TrimSpace(part)
		if part != "" && !seen[part] {
			seen[part] = true
			result = append(result, part)
		}
	}
	for _, part := range newParts {
		add(part)
	}
	if existing != "" {
		for _, part := range strings.Split(existing, ":") {
			add(part)
		}
	}
	return strings.Join(result, ":")
}

// Render serializes the file. Every value is double-quoted.
func (f *File) Render() string {
	var b strings.Builder
	for _, key := range f.keys {
		fmt.Fprintf(&b, "%s=%q\n", key, f.values[key])
	}
	return b.String()
}

// WriteTo writes the rendered file to path.
func (f *File) WriteTo(path string) error {
	if err := os.WriteFile(path, []byte(f.Render()), 0644); err != nil {
		return fmt.Errorf("failed to write environment file: %w", err)
	}
	return nil
}

// Edit loads path (an absent file starts empty), applies fn, and writes the
// result back.
func Edit(path string, fn func(*File)) error {
	f, err := Load(path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return err
		}
		f = New()
	}
	fn(f)
	return f.WriteTo(path)
}

// ReadEnviron merges the environment file at path with any *_proxy variables
// from environ (os.Environ form). Proxy settings are not stored in
// /etc/environment on a deployed unit but must be passed along to spawned
// commands.
func ReadEnviron(path string, environ []string) map[string]string {
	env := make(map[string]string)
	for _, kv := range environ {
		key, value, ok := strings.Cut(kv, "=")
		if ok && strings.HasSuffix(strings.ToLower(key), "_proxy") {
			env[key] = value
		}
	}
	if f, err := Load(path); err == nil {
		for _, key := range f.Keys() {
			value, _ := f.Get(key)
			env[key] = value
		}
	}
	return env
}
