// Package config manages the legform settings file.
//
// Settings are stored as YAML in the platform's configuration directory:
//   - Linux: $XDG_CONFIG_HOME/legform/config.yaml or $HOME/.config/legform/config.yaml
//   - macOS: $HOME/.config/legform/config.yaml
//   - Windows: %LOCALAPPDATA%\legform\config.yaml
//
// The file selects which form rules apply (future-only dates, ascending
// dates, leg removal, free-text locations) and the list of locations the
// picker offers. Leg data itself is never written to disk.
//
//	settings, err := config.Load()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	opts := settings.Options()
//
// A missing file yields DefaultSettings. Loaded files are checked with
// Validate before use; Save writes atomically via a temporary file.
package config
