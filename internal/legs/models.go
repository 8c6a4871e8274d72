package legs

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// List bounds. A form session always holds between MinLegs and MaxLegs legs.
const (
	MinLegs = 2
	MaxLegs = 5
)

// DateLayout is the canonical calendar date format for departure dates.
const DateLayout = "2006-01-02"

// Field identifies one editable field of a leg.
type Field int

const (
	FieldDepartureLocation Field = iota
	FieldArrivalLocation
	FieldDepartureDate
	FieldPassengers

	// NumFields is the number of editable fields per leg
	NumFields
)

// Fields lists every editable field in display order.
var Fields = [NumFields]Field{
	FieldDepartureLocation,
	FieldArrivalLocation,
	FieldDepartureDate,
	FieldPassengers,
}

// String returns the field's identifier as used in itinerary files and logs
func (f Field) String() string {
	switch f {
	case FieldDepartureLocation:
		return "departureLocation"
	case FieldArrivalLocation:
		return "arrivalLocation"
	case FieldDepartureDate:
		return "departureDate"
	case FieldPassengers:
		return "passengers"
	default:
		return fmt.Sprintf("Field(%d)", int(f))
	}
}

// Label returns a human-readable field name
func (f Field) Label() string {
	switch f {
	case FieldDepartureLocation:
		return "Departure Location"
	case FieldArrivalLocation:
		return "Arrival Location"
	case FieldDepartureDate:
		return "Departure Date"
	case FieldPassengers:
		return "Passengers"
	default:
		return f.String()
	}
}

// IsLocation reports whether the field holds a location name
func (f Field) IsLocation() bool {
	return f == FieldDepartureLocation || f == FieldArrivalLocation
}

// Valid reports whether f names a real field
func (f Field) Valid() bool {
	return f >= 0 && f < NumFields
}

// ParseField resolves a field identifier (see Field.String)
func ParseField(s string) (Field, error) {
	for _, f := range Fields {
		if strings.EqualFold(f.String(), s) {
			return f, nil
		}
	}
	return 0, fmt.Errorf("unknown field %q", s)
}

// LegRecord is one segment of a multi-stop trip. All values are kept exactly
// as entered; an empty string means the field has not been filled in.
type LegRecord struct {
	Key               int    `yaml:"-" json:"key"`
	DepartureLocation string `yaml:"departureLocation" json:"departureLocation"`
	ArrivalLocation   string `yaml:"arrivalLocation" json:"arrivalLocation"`
	DepartureDate     string `yaml:"departureDate" json:"departureDate"`
	Passengers        string `yaml:"passengers" json:"passengers"`
}

// Get returns the value of a field
func (l LegRecord) Get(f Field) string {
	switch f {
	case FieldDepartureLocation:
		return l.DepartureLocation
	case FieldArrivalLocation:
		return l.ArrivalLocation
	case FieldDepartureDate:
		return l.DepartureDate
	case FieldPassengers:
		return l.Passengers
	default:
		return ""
	}
}

// set overwrites a field value. Unknown fields are ignored.
func (l *LegRecord) set(f Field, value string) {
	switch f {
	case FieldDepartureLocation:
		l.DepartureLocation = value
	case FieldArrivalLocation:
		l.ArrivalLocation = value
	case FieldDepartureDate:
		l.DepartureDate = value
	case FieldPassengers:
		l.Passengers = value
	}
}

// Date parses the departure date as a calendar date in loc.
// Returns ok=false when the date is empty or unparseable.
func (l LegRecord) Date(loc *time.Location) (time.Time, bool) {
	return ParseDate(l.DepartureDate, loc)
}

// PassengerCount returns the passenger count as an integer.
// Returns ok=false when the value is not a plain decimal number.
func (l LegRecord) PassengerCount() (int, bool) {
	v := strings.TrimSpace(l.Passengers)
	if !numericPattern.MatchString(v) {
		return 0, false
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, false
	}
	return n, true
}

// ParseDate parses s as either a plain calendar date (2006-01-02) or an
// RFC 3339 timestamp, and truncates it to midnight in loc.
func ParseDate(s string, loc *time.Location) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	if loc == nil {
		loc = time.Local
	}
	if t, err := time.ParseInLocation(DateLayout, s, loc); err == nil {
		return t, true
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, false
	}
	return StartOfDay(t.In(loc)), true
}

// StartOfDay zeroes the time-of-day component of t
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// FormatDate formats t using DateLayout
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// DefaultLocations is the fixed set of location names offered by the picker.
// Validation does not restrict values to this set.
var DefaultLocations = []string{
	"USA",
	"Canada",
	"Mexico",
	"Brazil",
	"UK",
	"Germany",
	"France",
	"Italy",
	"China",
	"Japan",
}
