// Package logging provides structured logging for legform.
//
// This package wraps a zap logger with package-level convenience functions
// plus a few helpers for the events the form controller emits.
//
// # Silent by Default
//
// The interactive form owns the terminal, so logging is disabled unless a
// level is passed explicitly or LEGFORM_LOG_LEVEL is set to "debug", "info",
// "warn" or "error". Log output goes to stderr.
//
//	if err := logging.InitializeFromEnv(); err != nil {
//	    log.Fatal(err)
//	}
//	defer logging.Sync()
//
// # Form Events
//
//	logging.LogFieldChange(0, "passengers", true)
//	logging.LogLegListChange("append", 2, 3)
//	logging.LogSubmission(false, 3, 2)
package logging
