package legs

import (
	"fmt"
	"strconv"
	"strings"
)

// DisplayPassengers returns the passenger count as shown to the user:
// numeric strings are normalised to an integer ("007" → "7"), anything else
// is returned unchanged.
func DisplayPassengers(v string) string {
	leg := LegRecord{Passengers: v}
	if n, ok := leg.PassengerCount(); ok {
		return strconv.Itoa(n)
	}
	return v
}

// Summary returns a one-line summary of a leg
func (l LegRecord) Summary() string {
	return fmt.Sprintf("%s → %s on %s (%s pax)",
		orDash(l.DepartureLocation),
		orDash(l.ArrivalLocation),
		orDash(l.DepartureDate),
		orDash(DisplayPassengers(l.Passengers)))
}

// FormatLeg returns the multi-line block for one submitted leg
func FormatLeg(index int, l LegRecord) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("Leg %d:\n", index+1))
	b.WriteString(fmt.Sprintf("  Departure Location: %s\n", l.DepartureLocation))
	b.WriteString(fmt.Sprintf("  Arrival Location:   %s\n", l.ArrivalLocation))
	b.WriteString(fmt.Sprintf("  Departure Date:     %s\n", l.DepartureDate))
	b.WriteString(fmt.Sprintf("  Passengers:         %s\n", DisplayPassengers(l.Passengers)))

	return b.String()
}

// FormatCompact returns one line per leg
func FormatCompact(legs []LegRecord) string {
	var b strings.Builder
	for i, l := range legs {
		b.WriteString(fmt.Sprintf("%d. %s\n", i+1, l.Summary()))
	}
	return b.String()
}

// FormatDetailed returns the full submitted-data listing
func FormatDetailed(legs []LegRecord) string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString("╔════════════════════════════════════════════════════════════════╗\n")
	b.WriteString("║                       SUBMITTED DATA                           ║\n")
	b.WriteString("╚════════════════════════════════════════════════════════════════╝\n")
	b.WriteString("\n")

	for i, l := range legs {
		b.WriteString(FormatLeg(i, l))
		if i < len(legs)-1 {
			b.WriteString("\n")
		}
	}

	return b.String()
}

func orDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "—"
	}
	return s
}
