package netlog

import (
	"net/netip"
	"regexp"
	"strings"
)

// EventKind distinguishes the log lines the scanner acts on.
type EventKind int

const (
	// Resolution is "Host <name> resolved to: <address>".
	Resolution EventKind = iota + 1
	// Blocked is "Connection blocked: <address>".
	Blocked
)

func (k EventKind) String() string {
	switch k {
	case Resolution:
		return "resolution"
	case Blocked:
		return "blocked"
	default:
		return "unknown"
	}
}

// Event is one recognized network log line. Host is empty for Blocked.
type Event struct {
	Kind EventKind
	Host string
	IP   string
}

var (
	resolvedRegex = regexp.MustCompile(`Host\s+(?P<host>\S+)\s+resolved to:\s*(?P<ip>\S+)`)
	blockedRegex  = regexp.MustCompile(`Connection blocked:\s*(?P<ip>\S+)`)

	resolvedHost = resolvedRegex.SubexpIndex("host")
	resolvedIP   = resolvedRegex.SubexpIndex("ip")
	blockedIP    = blockedRegex.SubexpIndex("ip")
)

// ParseLine classifies a single log line. Lines matching neither pattern
// return false.
func ParseLine(line string) (Event, bool) {
	if m := resolvedRegex.FindStringSubmatch(line); m != nil {
		return Event{
			Kind: Resolution,
			Host: m[resolvedHost],
			IP:   NormalizeAddr(m[resolvedIP]),
		}, true
	}
	if m := blockedRegex.FindStringSubmatch(line); m != nil {
		return Event{
			Kind: Blocked,
			IP:   NormalizeAddr(m[blockedIP]),
		}, true
	}
	return Event{}, false
}

// NormalizeAddr canonicalizes an address token from a log line. IPv4-mapped
// IPv6 addresses become their dotted-quad form and a trailing port is
// dropped. Tokens that are not addresses are returned unchanged.
func NormalizeAddr(s string) string {
	s = strings.TrimRight(s, ",;")
	if addr, err := netip.ParseAddr(strings.Trim(s, "[]")); err == nil {
		return addr.Unmap().String()
	}
	if ap, err := netip.ParseAddrPort(s); err == nil {
		return ap.Addr().Unmap().String()
	}
	return s
}
