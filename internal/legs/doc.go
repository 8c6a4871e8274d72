// Package legs implements the data model, validation rules and edit state for
// a multi-leg flight form.
//
// A form session edits an ordered LegList of between MinLegs and MaxLegs
// legs. Each LegRecord carries a departure and arrival location, a departure
// date and a passenger count, all kept as the strings the user entered.
//
// # Validation
//
// Validators are pure functions returning a *ValidationError or nil:
//
//	ValidateDepartureLocation(leg)                 // required
//	ValidateArrivalLocation(leg)                   // required, differs from departure
//	ValidateDepartureDate(leg, today, future)      // required, valid date, optionally >= today
//	ValidatePassengers(leg)                        // required, whole number, >= 1
//	ValidateAscendingDates(legs, loc)              // list-level ordering
//
// ValidateLegs applies all of them to a list and returns every failure.
//
// # Controller
//
// The Controller owns a LegList plus a touched flag per field. Field errors
// are always computed but only become visible (ValidationResult.VisibleError)
// once the field has been touched by an edit, a blur, or a submission
// attempt:
//
//	c := legs.NewController(legs.DefaultOptions(), func(snapshot []legs.LegRecord) {
//	    fmt.Print(legs.FormatDetailed(snapshot))
//	})
//	_ = c.SetField(0, legs.FieldDepartureLocation, "USA")
//	if _, err := c.Submit(); errors.Is(err, legs.ErrSubmitRejected) {
//	    // every field is now touched; render c.Result()
//	}
//
// Rejected operations (appending to a full list, removing a permanent leg,
// non-numeric passenger input) return an error and leave the list unchanged.
package legs
