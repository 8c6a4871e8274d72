// Package tui implements the full-screen terminal form for building a
// multi-leg flight itinerary.
//
// The package is a thin presentation shell over legs.Controller. It never
// holds form state of its own: every keystroke that changes a value is
// routed through the controller and the view is re-rendered from the
// controller's legs and validation result.
//
// # Screens
//
//   - Form: one section per leg with its four fields, a Remove Leg button
//     for removable legs, then Add Leg and Submit.
//   - Summary: a modal listing the submitted legs, shown after a successful
//     submit. Closing it returns to the form with its contents intact.
//
// # Inline Editing
//
// Press Enter on a field to expand it in place. Location fields open a
// picker over the configured locations (or a text input in free-text mode),
// the date field takes YYYY-MM-DD text and the passenger field only accepts
// keystrokes that keep it a positive whole number. Enter commits the value,
// Esc leaves the field unchanged but marks it as visited so its error shows.
//
// # Usage Example
//
//	ctrl := legs.NewController(settings.Options(), nil)
//	app := tui.NewAppModel(ctrl, settings.Locations, settings.FreeText())
//	program := tea.NewProgram(app, tea.WithAltScreen())
//
//	if _, err := program.Run(); err != nil {
//	    log.Fatal(err)
//	}
package tui
