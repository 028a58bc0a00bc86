// Package errors provides typed errors with exit codes for forage-routes.
//
// # Error Types
//
// ForageError wraps an error with an exit code:
//
//	type ForageError struct {
//	    Code    int    // Exit code
//	    Message string // User-facing message
//	    Cause   error  // Wrapped error
//	}
//
// # Exit Codes
//
//	ExitSuccess        = 0  // Success
//	ExitGeneralError   = 1  // General/unknown errors
//	ExitInvalidHost    = 2  // No input URL could be parsed
//	ExitRuntimeFailed  = 3  // Sandbox runtime could not run or report
//	ExitRouteFileError = 4  // Route file unreadable or unwritable
//	ExitConfigError    = 5  // Configuration error
//	ExitPromptFailed   = 6  // Confirmation prompt failed
//
// An individual InvalidHost is recoverable: callers report it and skip that
// input. Only conditions that stop the convergence loop reach main, which
// uses GetExitCode:
//
//	if err != nil {
//	    os.Exit(errors.GetExitCode(err))
//	}
package errors
