package runtime

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/xeipuuv/gojsonschema"
)

// Result is the structured report a sandbox session emits on completion.
type Result struct {
	ID          string `json:"id,omitempty"`
	ContainerID string `json:"containerId,omitempty"`
	// LogDir overrides the configured log location when the runtime reports it.
	LogDir string `json:"logDir,omitempty"`
}

// SessionID returns the identifier used to resume and locate the session.
func (r *Result) SessionID() string {
	if r.ID != "" {
		return r.ID
	}
	return r.ContainerID
}

const resultSchema = `{
  "type": "object",
  "properties": {
    "id": {"type": "string", "minLength": 1},
    "containerId": {"type": "string", "minLength": 1},
    "logDir": {"type": "string"}
  },
  "anyOf": [
    {"required": ["id"]},
    {"required": ["containerId"]}
  ]
}`

var (
	compiledSchema *gojsonschema.Schema
	compileOnce    sync.Once
	compileErr     error
)

func getSchema() (*gojsonschema.Schema, error) {
	compileOnce.Do(func() {
		compiledSchema, compileErr = gojsonschema.NewSchema(gojsonschema.NewStringLoader(resultSchema))
	})
	return compiledSchema, compileErr
}

// ParseResult validates and decodes a runtime result. When output holds
// more than the JSON document, the last line that looks like a JSON object
// is used.
func ParseResult(output []byte) (*Result, error) {
	doc := extractObject(output)
	if doc == nil {
		return nil, fmt.Errorf("no JSON result in runtime output")
	}

	schema, err := getSchema()
	if err != nil {
		return nil, fmt.Errorf("compiling result schema: %w", err)
	}
	validation, err := schema.Validate(gojsonschema.NewBytesLoader(doc))
	if err != nil {
		return nil, fmt.Errorf("validating runtime result: %w", err)
	}
	if !validation.Valid() {
		msgs := make([]string, 0, len(validation.Errors()))
		for _, e := range validation.Errors() {
			msgs = append(msgs, e.String())
		}
		return nil, fmt.Errorf("invalid runtime result: %s", strings.Join(msgs, "; "))
	}

	var result Result
	if err := json.Unmarshal(doc, &result); err != nil {
		return nil, fmt.Errorf("decoding runtime result: %w", err)
	}
	return &result, nil
}

func extractObject(output []byte) []byte {
	trimmed := bytes.TrimSpace(output)
	if len(trimmed) == 0 {
		return nil
	}
	if trimmed[0] == '{' && json.Valid(trimmed) {
		return trimmed
	}

	var last []byte
	scanner := bufio.NewScanner(bytes.NewReader(trimmed))
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) > 0 && line[0] == '{' {
			last = append([]byte(nil), line...)
		}
	}
	if last == nil {
		return trimmed
	}
	return last
}
