// Package app provides the application context for forage-routes.
//
// This package manages application-wide dependencies using the functional
// options pattern, enabling easy testing through dependency injection.
//
// # App Context
//
// The App struct holds core dependencies:
//
//	type App struct {
//	    Config   *config.Config          // Loaded configuration
//	    FS       system.FileSystem       // Route files and logs
//	    Executor system.CommandExecutor  // Runs the sandbox CLI
//	    Runtime  runtime.Runtime         // Sandbox runtime
//	    Prompter tui.Prompter            // Confirmation question
//	    History  *audit.Logger           // Run history
//	}
//
// # Creating an App
//
//	// Production usage
//	a := app.New(app.WithConfig(cfg))
//
//	// Testing with custom dependencies
//	a := app.New(
//	    app.WithFS(system.NewMockFS()),
//	    app.WithRuntime(runtime.NewMockRuntime(fs)),
//	    app.WithPrompter(tui.NewScriptedPrompter("y")),
//	)
package app
