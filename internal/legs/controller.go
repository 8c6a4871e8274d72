package legs

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/muurk/legform/internal/logging"
)

// SubmitFunc receives a snapshot of the legs after a successful submission
type SubmitFunc func(legs []LegRecord)

// Controller owns the LegList being edited in one form session together with
// its touched/error state. All mutations go through its methods.
//
// A Controller is not safe for concurrent use; it is driven from a single
// UI event loop.
type Controller struct {
	opts     Options
	onSubmit SubmitFunc

	legs    []LegRecord
	touched []FieldFlags
	nextKey int

	errs      []error
	result    ValidationResult
	submitted bool
}

// NewController creates a controller holding MinLegs default legs.
// onSubmit may be nil.
func NewController(opts Options, onSubmit SubmitFunc) *Controller {
	c := &Controller{
		opts:     opts,
		onSubmit: onSubmit,
	}
	for i := 0; i < MinLegs; i++ {
		c.push(opts.NewLeg())
	}
	c.ValidateAll()
	return c
}

// NewControllerWithLegs creates a controller pre-filled with legs. Keys are
// reassigned. Fails when len(legs) is outside [MinLegs, MaxLegs].
func NewControllerWithLegs(opts Options, legs []LegRecord, onSubmit SubmitFunc) (*Controller, error) {
	if len(legs) < MinLegs || len(legs) > MaxLegs {
		return nil, fmt.Errorf("itinerary must have %d-%d legs, got %d", MinLegs, MaxLegs, len(legs))
	}
	c := &Controller{
		opts:     opts,
		onSubmit: onSubmit,
	}
	for _, leg := range legs {
		c.push(leg)
	}
	c.ValidateAll()
	return c, nil
}

func (c *Controller) push(leg LegRecord) {
	leg.Key = c.nextKey
	c.nextKey++
	c.legs = append(c.legs, leg)
	c.touched = append(c.touched, FieldFlags{})
}

// Options returns the options the controller was created with
func (c *Controller) Options() Options {
	return c.opts
}

// Len returns the number of legs
func (c *Controller) Len() int {
	return len(c.legs)
}

// Leg returns the leg at index
func (c *Controller) Leg(index int) (LegRecord, bool) {
	if index < 0 || index >= len(c.legs) {
		return LegRecord{}, false
	}
	return c.legs[index], true
}

// Legs returns a copy of the current legs
func (c *Controller) Legs() []LegRecord {
	return append([]LegRecord(nil), c.legs...)
}

// Result returns the most recent validation result
func (c *Controller) Result() ValidationResult {
	return c.result
}

// Submitted reports whether the last submission succeeded
func (c *Controller) Submitted() bool {
	return c.submitted
}

// CanAppend reports whether another leg may be added
func (c *Controller) CanAppend() bool {
	return len(c.legs) < MaxLegs
}

// CanRemove reports whether the leg at index may be removed
func (c *Controller) CanRemove(index int) bool {
	return c.checkRemove(index) == nil
}

// Append adds leg to the end of the list with a fresh key.
// Fails with ErrListFull when the list already holds MaxLegs legs.
func (c *Controller) Append(leg LegRecord) error {
	if !c.CanAppend() {
		logging.LogLegListChange("append_rejected", len(c.legs), len(c.legs))
		return ErrListFull
	}
	c.push(leg)
	c.ValidateAll()
	logging.LogLegListChange("append", len(c.legs)-1, len(c.legs))
	return nil
}

// AppendDefault appends a default leg (see Options.NewLeg)
func (c *Controller) AppendDefault() error {
	return c.Append(c.opts.NewLeg())
}

func (c *Controller) checkRemove(index int) error {
	switch {
	case !c.opts.AllowRemove:
		return ErrRemoveDisabled
	case index < 0 || index >= len(c.legs):
		return ErrIndexOutOfRange
	case index < MinLegs:
		return ErrLegPermanent
	case len(c.legs)-1 < MinLegs:
		return ErrListMinimum
	}
	return nil
}

// Remove deletes the leg at index, keeping the order and keys of the rest.
// The first MinLegs legs are permanent.
func (c *Controller) Remove(index int) error {
	if err := c.checkRemove(index); err != nil {
		logging.LogLegListChange("remove_rejected", index, len(c.legs))
		return err
	}
	c.legs = append(c.legs[:index], c.legs[index+1:]...)
	c.touched = append(c.touched[:index], c.touched[index+1:]...)
	c.ValidateAll()
	logging.LogLegListChange("remove", index, len(c.legs))
	return nil
}

// SetField overwrites a field value and marks it touched. Passenger values
// that are not a positive integer are rejected with ErrInputRejected and the
// stored value is left unchanged; the empty string is always accepted.
func (c *Controller) SetField(index int, f Field, value string) error {
	if index < 0 || index >= len(c.legs) {
		return ErrIndexOutOfRange
	}
	if !f.Valid() {
		return ErrUnknownField
	}
	if !AcceptsInput(f, value) {
		logging.LogFieldChange(index, f.String(), false)
		return fmt.Errorf("%w: %s must be a positive whole number", ErrInputRejected, f.Label())
	}
	c.legs[index].set(f, value)
	c.touched[index][f] = true
	c.ValidateAll()
	logging.LogFieldChange(index, f.String(), true)
	return nil
}

// Blur marks a field touched without changing its value
func (c *Controller) Blur(index int, f Field) error {
	if index < 0 || index >= len(c.legs) {
		return ErrIndexOutOfRange
	}
	if !f.Valid() {
		return ErrUnknownField
	}
	c.touched[index][f] = true
	c.result.Touched = append([]FieldFlags(nil), c.touched...)
	return nil
}

// TouchAll marks every field of every leg touched
func (c *Controller) TouchAll() {
	for i := range c.touched {
		for _, f := range Fields {
			c.touched[i][f] = true
		}
	}
	c.result.Touched = append([]FieldFlags(nil), c.touched...)
}

// ValidateAll recomputes the validation result for the whole list and
// reports whether it is error-free.
func (c *Controller) ValidateAll() bool {
	c.errs = ValidateLegs(c.legs, c.opts)
	c.result = newValidationResult(c.errs, c.touched)
	return len(c.errs) == 0
}

// Errors returns the errors found by the last validation pass as a flat list
func (c *Controller) Errors() []error {
	return append([]error(nil), c.errs...)
}

// Submit validates the list after forcing every field touched. On success it
// hands a snapshot of the legs to the submit callback, sets the submitted
// flag and returns the snapshot. Otherwise it returns a *SubmitError and the
// callback is not invoked.
func (c *Controller) Submit() ([]LegRecord, error) {
	c.TouchAll()
	if !c.ValidateAll() {
		c.submitted = false
		logging.LogSubmission(false, len(c.legs), len(c.errs))
		return nil, &SubmitError{Errors: c.Errors()}
	}

	snapshot := c.Legs()
	c.submitted = true
	logging.LogSubmission(true, len(snapshot), 0)
	if c.onSubmit != nil {
		c.onSubmit(snapshot)
	}
	return snapshot, nil
}

// Dismiss clears the submitted flag, e.g. when the result view is closed.
// The legs are kept so the user can keep editing.
func (c *Controller) Dismiss() {
	c.submitted = false
	logging.Debug("Submission dismissed", zap.Int("legs", len(c.legs)))
}
