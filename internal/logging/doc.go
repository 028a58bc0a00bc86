// Package logging provides logging utilities for forage-routes.
//
// Two kinds of output are kept apart:
//   - Debug logging: structured slog records, shown with --verbose
//   - User output: short status lines for the person driving the loop
//
// # Debug Logging
//
//	logging.Debug("state transition", "from", "scan", "to", "accumulate")
//	logging.Warn("skipping unreadable log file", "path", path, "error", err)
//
// # User Output
//
//	logging.UserInfo("Launching sandbox for %d URLs...", len(urls))
//	logging.UserSuccess("Route file written to %s", path)
//	logging.UserWarning("Skipping %q: not a URL", raw)
//	logging.UserError("Sandbox runtime failed: %v", err)
//
// Status prefixes:
//   - ℹ (info)
//   - ✓ (success)
//   - ⚠ (warning)
//   - ✗ (error)
package logging
