package hostname

import (
	"errors"
	"fmt"
	"net/netip"
	"net/url"
	"regexp"
	"strings"
)

// Kind classifies a host string.
type Kind int

const (
	Unknown Kind = iota
	DNS
	IPv4
	IPv6
)

func (k Kind) String() string {
	switch k {
	case DNS:
		return "dns"
	case IPv4:
		return "ipv4"
	case IPv6:
		return "ipv6"
	default:
		return "unknown"
	}
}

// dnsLabelRegex matches one DNS label: alphanumeric ends, hyphens inside,
// at most 63 characters.
var dnsLabelRegex = regexp.MustCompile(`^[A-Za-z0-9](?:[A-Za-z0-9-]{0,61}[A-Za-z0-9])?$`)

// Classify reports what kind of host s is. Anything that is neither an IP
// literal nor a syntactically valid DNS name is Unknown.
func Classify(s string) Kind {
	if s == "" {
		return Unknown
	}

	host := strings.TrimSuffix(strings.TrimPrefix(s, "["), "]")
	if addr, err := netip.ParseAddr(host); err == nil {
		if addr.Is4() {
			return IPv4
		}
		return IPv6
	}
	if host != s {
		return Unknown
	}

	name := strings.TrimSuffix(s, ".")
	if name == "" || len(name) > 253 {
		return Unknown
	}
	for _, label := range strings.Split(name, ".") {
		if !dnsLabelRegex.MatchString(label) {
			return Unknown
		}
	}
	return DNS
}

// IsValid reports whether s classifies as anything other than Unknown.
func IsValid(s string) bool {
	return Classify(s) != Unknown
}

// stripQuotes removes one pair of matching enclosing quotes.
func stripQuotes(s string) string {
	if len(s) >= 2 {
		first, last := s[0], s[len(s)-1]
		if first == last && (first == '"' || first == '\'') {
			return s[1 : len(s)-1]
		}
	}
	return s
}

// parseAbsolute parses s as an absolute URL with a non-empty host.
func parseAbsolute(s string) (*url.URL, error) {
	u, err := url.Parse(s)
	if err != nil {
		return nil, err
	}
	if !u.IsAbs() {
		return nil, fmt.Errorf("not an absolute URL")
	}
	if u.Hostname() == "" {
		return nil, fmt.Errorf("URL has no host")
	}
	return u, nil
}

// Normalize turns a URL-like input into a canonical lower-case hostname
// without a leading "www." label. Inputs without a scheme are retried with
// an http:// prefix.
func Normalize(raw string) (string, error) {
	s := stripQuotes(strings.TrimSpace(raw))

	u, err := parseAbsolute(s)
	if err != nil {
		// An explicit scheme that failed is not retried, or "http://bad host"
		// would come back as the host "http".
		if strings.Contains(s, "://") {
			return "", &InvalidHostError{Input: raw, Err: err}
		}
		var retryErr error
		u, retryErr = parseAbsolute("http://" + s)
		if retryErr != nil {
			return "", &InvalidHostError{Input: raw, Err: retryErr}
		}
	}

	host := strings.ToLower(u.Hostname())
	host = strings.TrimPrefix(host, "www.")
	if host == "" {
		return "", &InvalidHostError{Input: raw, Err: fmt.Errorf("empty host")}
	}
	return host, nil
}

// Wildcard returns the route entry covering host and all of its subdomains.
// IP literals cannot have subdomains and are returned unchanged.
func Wildcard(host string) string {
	switch Classify(host) {
	case IPv4, IPv6:
		return host
	}
	return "*." + host
}

// WildcardFor normalizes raw and wraps it as a wildcard entry.
func WildcardFor(raw string) (string, error) {
	host, err := Normalize(raw)
	if err != nil {
		return "", err
	}
	return Wildcard(host), nil
}

// Seed normalizes every input and returns the wildcard entries in input
// order, without duplicates. Inputs that fail are returned separately so the
// caller can report them and carry on.
func Seed(inputs []string) (entries []string, invalid []*InvalidHostError) {
	seen := make(map[string]bool, len(inputs))
	for _, raw := range inputs {
		entry, err := WildcardFor(raw)
		if err != nil {
			var hostErr *InvalidHostError
			if !errors.As(err, &hostErr) {
				hostErr = &InvalidHostError{Input: raw, Err: err}
			}
			invalid = append(invalid, hostErr)
			continue
		}
		if seen[entry] {
			continue
		}
		seen[entry] = true
		entries = append(entries, entry)
	}
	return entries, invalid
}

// InvalidHostError is returned when an input cannot be read as a URL.
type InvalidHostError struct {
	Input string
	Err   error
}

func (e *InvalidHostError) Error() string {
	return fmt.Sprintf("invalid host %q: %v", e.Input, e.Err)
}

func (e *InvalidHostError) Unwrap() error {
	return e.Err
}
