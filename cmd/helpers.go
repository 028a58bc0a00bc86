package cmd

import (
	"os"

	"golang.org/x/term"

	"github.com/firefly-engineering/firefly-forage/packages/forage-routes/internal/app"
	"github.com/firefly-engineering/firefly-forage/packages/forage-routes/internal/errors"
	"github.com/firefly-engineering/firefly-forage/packages/forage-routes/internal/logging"
	"github.com/firefly-engineering/firefly-forage/packages/forage-routes/internal/runtime"
)

// Helper aliases for user-facing output (delegates to logging package)
var (
	logInfo    = logging.UserInfo
	logSuccess = logging.UserSuccess
	logWarning = logging.UserWarning
)

// getRuntime returns the application runtime, checking that a command
// runtime can actually be started.
func getRuntime() (runtime.Runtime, error) {
	rt := app.Default.Runtime
	if rt == nil {
		return nil, errors.ConfigError("no sandbox runtime configured (set runtime.command)", nil)
	}
	if cr, ok := rt.(*runtime.CommandRuntime); ok {
		if err := cr.Available(); err != nil {
			return nil, err
		}
	}
	return rt, nil
}

// interactive reports whether stdin and stdout are both terminals.
func interactive() bool {
	return term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))
}
