package netlog

import (
	"bufio"
	"bytes"
	"io"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/firefly-engineering/firefly-forage/packages/forage-routes/internal/errors"
	"github.com/firefly-engineering/firefly-forage/packages/forage-routes/internal/hostname"
	"github.com/firefly-engineering/firefly-forage/packages/forage-routes/internal/logging"
	"github.com/firefly-engineering/firefly-forage/packages/forage-routes/internal/system"
)

// DefaultPrefix is the file name prefix of sandbox network logs.
const DefaultPrefix = "xcnetwork_"

// HostMap maps an address to the last hostname seen resolving to it.
type HostMap map[string]string

// Locator finds the log directory of a sandbox session.
type Locator interface {
	LogDir(session string) (string, error)
}

// Report is the outcome of scanning one session.
type Report struct {
	// Dir is the directory that was scanned.
	Dir string
	// Files lists the log files that were read, in scan order.
	Files []string
	// Hosts is the address to hostname map built during the scan.
	Hosts HostMap
	// Blocked holds the de-duplicated blocked entries, reported as hostnames
	// where a valid resolution exists and as raw addresses otherwise.
	Blocked []string
}

// Scanner extracts blocked hosts from sandbox network logs.
type Scanner struct {
	fs      system.FileSystem
	locator Locator
	prefix  string
}

// NewScanner creates a Scanner. An empty prefix means DefaultPrefix.
func NewScanner(fsys system.FileSystem, locator Locator, prefix string) *Scanner {
	if prefix == "" {
		prefix = DefaultPrefix
	}
	return &Scanner{fs: fsys, locator: locator, prefix: prefix}
}

// Scan locates the log directory of session and scans it.
func (s *Scanner) Scan(session string) (*Report, error) {
	if s.locator == nil {
		return nil, errors.ConfigError("no log directory configured", nil)
	}
	dir, err := s.locator.LogDir(session)
	if err != nil {
		return nil, err
	}
	return s.ScanDir(dir), nil
}

// ScanDir reads every file in dir whose name starts with the scanner prefix.
// A missing or unreadable directory yields an empty report, as do
// unreadable files, which are skipped.
func (s *Scanner) ScanDir(dir string) *Report {
	report := &Report{Dir: dir, Hosts: HostMap{}}

	entries, err := s.fs.ReadDir(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			logging.Debug("no log directory for session", "dir", dir)
		} else {
			logging.Warn("cannot read log directory", "dir", dir, "error", err)
		}
		return report
	}

	var events []Event
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasPrefix(entry.Name(), s.prefix) {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		data, err := s.fs.ReadFile(path)
		if err != nil {
			logging.Warn("skipping unreadable log file", "path", path, "error", err)
			continue
		}
		report.Files = append(report.Files, path)
		events = append(events, ReadEvents(bytes.NewReader(data))...)
	}

	report.Hosts, report.Blocked = Resolve(events)
	logging.Debug("scanned network logs",
		"dir", dir,
		"files", len(report.Files),
		"events", len(events),
		"blocked", len(report.Blocked))
	return report
}

// ReadEvents returns the recognized events of r in order. Unrecognized
// lines are skipped; a read error ends the scan of r early.
func ReadEvents(r io.Reader) []Event {
	var events []Event
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	for scanner.Scan() {
		if ev, ok := ParseLine(scanner.Text()); ok {
			events = append(events, ev)
		}
	}
	if err := scanner.Err(); err != nil {
		logging.Debug("stopped reading log early", "error", err)
	}
	return events
}

// Resolve builds the HostMap from resolution events (last write wins) and
// maps every blocked address to its hostname when that name is a valid
// host. The returned blocked list keeps first-occurrence order.
func Resolve(events []Event) (HostMap, []string) {
	hosts := HostMap{}
	for _, ev := range events {
		if ev.Kind == Resolution {
			hosts[ev.IP] = ev.Host
		}
	}

	var blocked []string
	seen := make(map[string]bool)
	for _, ev := range events {
		if ev.Kind != Blocked {
			continue
		}
		entry := ev.IP
		if name, ok := hosts[ev.IP]; ok && hostname.IsValid(name) {
			entry = name
		}
		if seen[entry] {
			continue
		}
		seen[entry] = true
		blocked = append(blocked, entry)
	}
	return hosts, blocked
}
