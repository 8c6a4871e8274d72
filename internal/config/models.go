package config

import (
	"github.com/muurk/legform/internal/legs"
)

// CurrentVersion is the settings file format version
const CurrentVersion = 1

// Settings represents the entire user configuration file.
type Settings struct {
	Version   int        `yaml:"version" validate:"eq=1"`
	Form      *FormPrefs `yaml:"form" validate:"required"`
	Locations []string   `yaml:"locations" validate:"required,min=2,unique,dive,required,max=64"`
}

// FormPrefs selects between the form's rule variants.
type FormPrefs struct {
	RequireFutureDates    bool `yaml:"require_future_dates"`    // Departure dates must be today or later
	RequireAscendingDates bool `yaml:"require_ascending_dates"` // Dates must not go backwards across legs
	AllowRemove           bool `yaml:"allow_remove"`            // Legs after the first two can be removed
	FreeTextLocations     bool `yaml:"free_text_locations"`     // Type locations instead of picking them
	PrefillToday          bool `yaml:"prefill_today"`           // New legs start with today's date
}

// DefaultSettings returns settings with every rule enabled and the built-in
// location list.
func DefaultSettings() *Settings {
	return &Settings{
		Version: CurrentVersion,
		Form: &FormPrefs{
			RequireFutureDates:    true,
			RequireAscendingDates: true,
			AllowRemove:           true,
		},
		Locations: append([]string(nil), legs.DefaultLocations...),
	}
}

// Options converts the form preferences into controller options
func (s *Settings) Options() legs.Options {
	if s.Form == nil {
		return legs.DefaultOptions()
	}
	return legs.Options{
		RequireFutureDates:    s.Form.RequireFutureDates,
		RequireAscendingDates: s.Form.RequireAscendingDates,
		AllowRemove:           s.Form.AllowRemove,
		PrefillToday:          s.Form.PrefillToday,
	}
}

// FreeText reports whether locations are typed rather than picked
func (s *Settings) FreeText() bool {
	return s.Form != nil && s.Form.FreeTextLocations
}
