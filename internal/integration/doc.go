// Package integration provides tests that exercise complete discovery runs.
//
// Workflow tests run against the mock runtime and always run. Script tests
// drive the real command runtime through a shell script that behaves like
// a sandbox, and need a POSIX sh.
//
// Tests against a real sandbox runtime are skipped unless the
// FORAGE_ROUTES_INTEGRATION_TESTS environment variable is set:
//
//	FORAGE_ROUTES_INTEGRATION_TESTS=1 \
//	FORAGE_ROUTES_RUNTIME="sandbox --headless" \
//	FORAGE_ROUTES_TEST_URL=https://example.com \
//	    go test -v ./internal/integration/...
//
// # Test Harness
//
// Harness runs the discovery loop with the real filesystem and executor:
//
//	func TestMyIntegration(t *testing.T) {
//	    h := integration.NewScriptHarness(t, integration.CDNScript)
//	    outcome, err := h.Discover(ctx, []string{"https://example.test"}, "y")
//	    ...
//	}
package integration
