// Package ui renders the styled, non-interactive output of the legform
// subcommands: command headers, success and failure boxes, and typed
// confirmations.
//
// Unlike the interactive form in internal/wizard/tui, these components
// print once and return. All output goes through a Printer so commands
// can be pointed at a buffer in tests.
//
// Example:
//
//	p := ui.NewPrinter(cmd.OutOrStdout())
//	p.PrintHeader("Itinerary Validation", "legform validate trip.yaml",
//	    ui.Detail{Key: "File", Value: "trip.yaml"})
//
//	if err != nil {
//	    p.PrintFailure("Itinerary is invalid", err, problems)
//	} else {
//	    p.PrintSuccess("Itinerary is valid", ui.Detail{Key: "Legs", Value: "3"})
//	}
//
// Logging is controlled separately via LEGFORM_LOG_LEVEL; when it is unset
// zap is silent and only this curated output is shown.
package ui
