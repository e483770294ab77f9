package hosts

import (
	"regexp"
	"sort"
	"strings"
)

// managedMarker tags the /etc/hosts lines this package owns. Lines without
// the marker are never touched.
const managedMarker = "# JUJU MANAGED"

var ipPattern = regexp.MustCompile(`^\d{1,3}\.\d{1,3}\.\d{1,3}\.\d{1,3}$`)

// RenderHosts merges the registry entries into existing /etc/hosts content.
// Unmanaged lines pass through unchanged; all previously managed lines are
// replaced by the registry's entries, sorted by hostname for a stable
// output. Entries whose IP is not a dotted quad are emitted commented out.
func RenderHosts(existing string, entries map[string]string) string {
	var lines []string
	for _, line := range strings.Split(existing, "\n") {
		if strings.Contains(line, managedMarker) {
			continue
		}
		lines = append(lines, line)
	}
	// Drop the trailing blank kept by Split on a final newline.
	for len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}

	byName := make(map[string]string, len(entries))
	names := make([]string, 0, len(entries))
	for ip, name := range entries {
		if _, ok := byName[name]; !ok {
			names = append(names, name)
		}
		byName[name] = ip
	}
	sort.Strings(names)

	for _, name := range names {
		ip := byName[name]
		line := ip + " " + name + "  " + managedMarker
		if !ipPattern.MatchString(ip) {
			line = "# " + line + " (INVALID IP)"
		}
		lines = append(lines, line)
	}

	return strings.Join(lines, "\n") + "\n"
}
