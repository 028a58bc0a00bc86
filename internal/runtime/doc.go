// Package runtime invokes the external sandbox runtime.
//
// A Runtime runs one sandboxed browser session per call, pointing it at a
// route file and a list of target URLs, and returns the session's
// structured result. CommandRuntime shells out to a configurable CLI:
//
//	sandbox run --route-file routes.txt --result-file /tmp/r.json -- https://a.test
//	sandbox resume <id> --route-file routes.txt --result-file /tmp/r.json -- https://a.test
//
// The result is a JSON object carrying an "id" or "containerId" and,
// optionally, the session's "logDir". It is validated against a JSON
// schema before use.
//
// # Mock Runtime
//
// For testing, use NewMockRuntime() to script session ids and the network
// log lines each session writes.
package runtime
