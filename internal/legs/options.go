package legs

import "time"

// Options selects between the behaviours the form has shipped with.
type Options struct {
	// RequireFutureDates rejects departure dates before today
	RequireFutureDates bool
	// RequireAscendingDates rejects itineraries whose dates go backwards
	RequireAscendingDates bool
	// AllowRemove enables removing legs beyond the first two
	AllowRemove bool
	// PrefillToday defaults new legs' departure date to today
	PrefillToday bool
	// Now returns the current time; defaults to time.Now
	Now func() time.Time
}

// DefaultOptions enables every rule and leg removal
func DefaultOptions() Options {
	return Options{
		RequireFutureDates:    true,
		RequireAscendingDates: true,
		AllowRemove:           true,
	}
}

// today returns the current calendar date
func (o Options) today() time.Time {
	now := time.Now
	if o.Now != nil {
		now = o.Now
	}
	return StartOfDay(now())
}

// NewLeg returns an empty leg, with today's date filled in when PrefillToday
// is set. The key is assigned by the controller.
func (o Options) NewLeg() LegRecord {
	var leg LegRecord
	if o.PrefillToday {
		leg.DepartureDate = FormatDate(o.today())
	}
	return leg
}
