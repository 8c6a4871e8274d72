package legs

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Messages shown next to an invalid field
const (
	MsgDepartureRequired = "Departure location is required"
	MsgArrivalRequired   = "Arrival location is required"
	MsgSameLocation      = "Arrival location cannot be the same as departure location"
	MsgDateRequired      = "Departure date is required"
	MsgDateInvalid       = "Departure date must be a valid date (YYYY-MM-DD)"
	MsgDatePast          = "Departure date must be today or later"
	MsgPassengerRequired = "Number of passengers is required"
	MsgPassengerNumeric  = "Number of passengers must be a whole number"
	MsgPassengerMinimum  = "At least 1 passenger is required"
	MsgNotAscending      = "Dates must be in ascending order"
)

var (
	// numericPattern matches a plain decimal number
	numericPattern = regexp.MustCompile(`^[0-9]+$`)

	// passengerInputPattern is the keystroke filter for the passenger field:
	// a positive integer without leading zeros.
	passengerInputPattern = regexp.MustCompile(`^[1-9][0-9]*$`)
)

// ValidateDepartureLocation fails when the departure location is empty.
// Any non-empty string passes; the location list is a picker affordance only.
func ValidateDepartureLocation(leg LegRecord) error {
	if strings.TrimSpace(leg.DepartureLocation) == "" {
		return newFieldError(ErrCodeRequired, FieldDepartureLocation, MsgDepartureRequired)
	}
	return nil
}

// ValidateArrivalLocation fails when the arrival location is empty or equals
// the departure location.
func ValidateArrivalLocation(leg LegRecord) error {
	arrival := strings.TrimSpace(leg.ArrivalLocation)
	if arrival == "" {
		return newFieldError(ErrCodeRequired, FieldArrivalLocation, MsgArrivalRequired)
	}
	departure := strings.TrimSpace(leg.DepartureLocation)
	if departure != "" && arrival == departure {
		return newFieldError(ErrCodeSameLocation, FieldArrivalLocation, MsgSameLocation)
	}
	return nil
}

// ValidateDepartureDate fails when the date is empty or unparseable, and, when
// requireFuture is set, when it falls before today. Both sides are compared as
// calendar dates in today's location.
func ValidateDepartureDate(leg LegRecord, today time.Time, requireFuture bool) error {
	if strings.TrimSpace(leg.DepartureDate) == "" {
		return newFieldError(ErrCodeRequired, FieldDepartureDate, MsgDateRequired)
	}
	date, ok := leg.Date(today.Location())
	if !ok {
		return newFieldError(ErrCodeInvalidDate, FieldDepartureDate, MsgDateInvalid)
	}
	if requireFuture && date.Before(StartOfDay(today)) {
		return newFieldError(ErrCodePastDate, FieldDepartureDate, MsgDatePast)
	}
	return nil
}

// ValidatePassengers fails when the count is empty, not a whole number, or
// below 1. The required check runs first so an empty value reports only that.
func ValidatePassengers(leg LegRecord) error {
	v := strings.TrimSpace(leg.Passengers)
	if v == "" {
		return newFieldError(ErrCodeRequired, FieldPassengers, MsgPassengerRequired)
	}
	if !numericPattern.MatchString(v) {
		return newFieldError(ErrCodeNotNumeric, FieldPassengers, MsgPassengerNumeric)
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		// Overflow: digits only, so the value is certainly >= 1
		return nil
	}
	if n < 1 {
		return newFieldError(ErrCodeTooFewPassengers, FieldPassengers, MsgPassengerMinimum)
	}
	return nil
}

// ValidateAscendingDates fails when any leg departs before the leg preceding
// it. Only adjacent pairs where both dates parse are compared; an empty or
// unparseable date is reported by its own field validator.
func ValidateAscendingDates(legs []LegRecord, loc *time.Location) error {
	for i := 1; i < len(legs); i++ {
		prev, okPrev := legs[i-1].Date(loc)
		date, ok := legs[i].Date(loc)
		if okPrev && ok && date.Before(prev) {
			return &ValidationError{
				Code:    ErrCodeNotAscending,
				Index:   ListIndex,
				Message: MsgNotAscending,
			}
		}
	}
	return nil
}

// ValidateField runs the validator for a single field of leg
func ValidateField(leg LegRecord, f Field, opts Options) error {
	switch f {
	case FieldDepartureLocation:
		return ValidateDepartureLocation(leg)
	case FieldArrivalLocation:
		return ValidateArrivalLocation(leg)
	case FieldDepartureDate:
		return ValidateDepartureDate(leg, opts.today(), opts.RequireFutureDates)
	case FieldPassengers:
		return ValidatePassengers(leg)
	default:
		return nil
	}
}

// ValidateLeg validates every field of a leg.
// Returns a slice of validation errors (empty if valid), each bound to index.
func ValidateLeg(leg LegRecord, index int, opts Options) []error {
	var errs []error
	for _, f := range Fields {
		if err := ValidateField(leg, f, opts); err != nil {
			errs = append(errs, err.(*ValidationError).atIndex(index))
		}
	}
	return errs
}

// ValidateLegs validates a complete itinerary: every leg's fields plus, when
// enabled, the ascending-date rule once across the list.
// Returns a slice of validation errors (empty if valid).
func ValidateLegs(legs []LegRecord, opts Options) []error {
	var allErrors []error
	for i, leg := range legs {
		allErrors = append(allErrors, ValidateLeg(leg, i, opts)...)
	}
	if opts.RequireAscendingDates {
		if err := ValidateAscendingDates(legs, opts.today().Location()); err != nil {
			allErrors = append(allErrors, err)
		}
	}
	return allErrors
}

// AcceptsInput reports whether value may be written to field f. Passenger
// input must be a positive integer; the empty string is always accepted so a
// field can be cleared.
func AcceptsInput(f Field, value string) bool {
	if value == "" {
		return true
	}
	if f == FieldPassengers {
		return passengerInputPattern.MatchString(value)
	}
	return true
}
