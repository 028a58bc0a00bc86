package routes

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"io/fs"
	"strings"
	"unicode"

	"github.com/firefly-engineering/firefly-forage/packages/forage-routes/internal/errors"
	"github.com/firefly-engineering/firefly-forage/packages/forage-routes/internal/logging"
	"github.com/firefly-engineering/firefly-forage/packages/forage-routes/internal/system"
)

// Well-known section names. The codec itself accepts any name.
const (
	SectionAdd   = "ip-add"
	SectionBlock = "ip-block"
)

// BlockAllUnresolved is the fixed ip-block entry that denies every address
// the allow-list does not cover.
const BlockAllUnresolved = "0.0.0.0"

// RouteFile is an ordered mapping from section name to a set of entries.
// Sections keep their first-seen order and entries keep the order of their
// first occurrence.
type RouteFile struct {
	order    []string
	sections map[string][]string
}

// New returns an empty RouteFile.
func New() *RouteFile {
	return &RouteFile{sections: make(map[string][]string)}
}

// Sections returns the section names in order.
func (r *RouteFile) Sections() []string {
	return append([]string(nil), r.order...)
}

// Has reports whether the section exists, even if it is empty.
func (r *RouteFile) Has(section string) bool {
	_, ok := r.sections[section]
	return ok
}

// Entries returns a copy of the entries of section.
func (r *RouteFile) Entries(section string) []string {
	return append([]string(nil), r.sections[section]...)
}

// ensure registers section if it is new.
func (r *RouteFile) ensure(section string) {
	if _, ok := r.sections[section]; !ok {
		r.order = append(r.order, section)
		r.sections[section] = nil
	}
}

// Merge replaces the content of section with the de-duplicated union of its
// existing entries followed by candidates, creating the section if needed.
// It returns the number of entries that were not present before. Merging
// the same candidates again is a no-op.
func (r *RouteFile) Merge(section string, candidates ...string) int {
	r.ensure(section)

	existing := r.sections[section]
	merged := dedup(append(append([]string(nil), existing...), candidates...))
	r.sections[section] = merged
	return len(merged) - len(existing)
}

// Clone returns a deep copy.
func (r *RouteFile) Clone() *RouteFile {
	c := New()
	for _, name := range r.order {
		c.ensure(name)
		c.sections[name] = r.Entries(name)
	}
	return c
}

func dedup(entries []string) []string {
	seen := make(map[string]struct{}, len(entries))
	out := entries[:0]
	for _, e := range entries {
		if _, ok := seen[e]; ok {
			continue
		}
		seen[e] = struct{}{}
		out = append(out, e)
	}
	return out
}

// parseHeader returns the section name if line is a "[name]" header.
func parseHeader(line string) (string, bool) {
	if len(line) >= 2 && line[0] == '[' && line[len(line)-1] == ']' {
		return line[1 : len(line)-1], true
	}
	return "", false
}

// ValidSection reports whether name can be written as a section header
// that decodes back to the same name.
func ValidSection(name string) bool {
	return name != "" && !strings.ContainsAny(name, "[]") && !containsSpace(name)
}

// ValidEntry reports whether entry survives an encode and decode unchanged.
func ValidEntry(entry string) bool {
	if entry == "" || containsSpace(entry) {
		return false
	}
	_, isHeader := parseHeader(entry)
	return !isHeader
}

func containsSpace(s string) bool {
	return strings.IndexFunc(s, unicode.IsSpace) >= 0
}

// Decode reads the sectioned route format. A "[name]" line opens a section,
// any other non-empty line is an entry of the open section, and empty lines
// separate sections. A repeated header merges into the earlier section.
func Decode(rd io.Reader) (*RouteFile, error) {
	r := New()

	var (
		current string
		open    bool
		pending []string
	)
	flush := func() {
		if open {
			r.Merge(current, pending...)
		}
		pending = nil
	}

	scanner := bufio.NewScanner(rd)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		if name, ok := parseHeader(line); ok {
			flush()
			current, open = name, true
			r.ensure(current)
			continue
		}

		if !open {
			logging.Debug("ignoring route entry outside any section", "line", lineNo, "entry", line)
			continue
		}
		pending = append(pending, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read route file: %w", err)
	}
	flush()

	return r, nil
}

// Encode writes every section as a header, one entry per line and a blank
// separator line.
func (r *RouteFile) Encode(w io.Writer) error {
	bw := bufio.NewWriter(w)
	for _, name := range r.order {
		fmt.Fprintf(bw, "[%s]\n", name)
		for _, entry := range r.sections[name] {
			fmt.Fprintln(bw, entry)
		}
		fmt.Fprintln(bw)
	}
	return bw.Flush()
}

// Bytes returns the encoded form.
func (r *RouteFile) Bytes() []byte {
	var buf bytes.Buffer
	_ = r.Encode(&buf)
	return buf.Bytes()
}

func (r *RouteFile) String() string {
	return string(r.Bytes())
}

// Load decodes the route file at path. A missing file yields an empty
// RouteFile; any other read failure is a RouteFileUnreadable error.
func Load(fsys system.FileSystem, path string) (*RouteFile, error) {
	data, err := fsys.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			logging.Debug("route file does not exist yet", "path", path)
			return New(), nil
		}
		return nil, errors.RouteFileUnreadable(path, err)
	}

	r, err := Decode(bytes.NewReader(data))
	if err != nil {
		return nil, errors.RouteFileUnreadable(path, err)
	}
	return r, nil
}

// Save rewrites the file at path with the complete encoded RouteFile.
func Save(fsys system.FileSystem, path string, r *RouteFile) error {
	if err := fsys.WriteFile(path, r.Bytes(), 0644); err != nil {
		return errors.RouteFileUnwritable(path, err)
	}
	logging.Debug("route file written", "path", path, "sections", len(r.order))
	return nil
}
