package hosts

import (
	"fmt"
	"net"
	"regexp"
	"strings"
)

var containsIPPattern = regexp.MustCompile(`\d{1,3}[-.]\d{1,3}[-.]\d{1,3}[-.]\d{1,3}`)

// Resolver turns a hostname into addresses; net.LookupHost in production,
// replaceable in tests.
type Resolver func(host string) ([]string, error)

// ResolvePrivateAddress resolves a unit's private address to an IPv4
// address. Addresses that already are dotted quads pass through; hostnames
// are resolved via lookup; as a last resort an address embedded in the name
// (e.g. "ip-10-0-3-17.internal") is extracted.
func ResolvePrivateAddress(addr string, lookup Resolver) (string, error) {
	if ipPattern.MatchString(addr) {
		return addr, nil
	}
	if lookup == nil {
		lookup = net.LookupHost
	}
	if ips, err := lookup(addr); err == nil {
		for _, ip := range ips {
			if ipPattern.MatchString(ip) {
				return ip, nil
			}
		}
	}
	if embedded := containsIPPattern.FindString(addr); embedded != "" {
		return strings.ReplaceAll(embedded, "-", "."), nil
	}
	return "", fmt.Errorf("unable to resolve or guess IP from private-address %q", addr)
}
