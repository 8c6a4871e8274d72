package legs

// FieldErrors holds the current error message for each field of one leg.
// An empty string means the field is valid.
type FieldErrors [NumFields]string

// FieldFlags holds one boolean per field of one leg
type FieldFlags [NumFields]bool

// ValidationResult is the outcome of validating a whole LegList. Errors and
// Touched are indexed by leg position.
type ValidationResult struct {
	Errors    []FieldErrors
	Touched   []FieldFlags
	ListError string
}

// Error returns the error for a field regardless of whether it is touched
func (r ValidationResult) Error(index int, f Field) string {
	if index < 0 || index >= len(r.Errors) || !f.Valid() {
		return ""
	}
	return r.Errors[index][f]
}

// IsTouched reports whether a field has been touched
func (r ValidationResult) IsTouched(index int, f Field) bool {
	if index < 0 || index >= len(r.Touched) || !f.Valid() {
		return false
	}
	return r.Touched[index][f]
}

// VisibleError returns the error for a field only once it has been touched
func (r ValidationResult) VisibleError(index int, f Field) string {
	if !r.IsTouched(index, f) {
		return ""
	}
	return r.Error(index, f)
}

// Valid reports whether the list has no field or list-level errors
func (r ValidationResult) Valid() bool {
	if r.ListError != "" {
		return false
	}
	for _, legErrs := range r.Errors {
		for _, msg := range legErrs {
			if msg != "" {
				return false
			}
		}
	}
	return true
}

// ErrorCount returns the number of field and list-level errors
func (r ValidationResult) ErrorCount() int {
	n := 0
	if r.ListError != "" {
		n++
	}
	for _, legErrs := range r.Errors {
		for _, msg := range legErrs {
			if msg != "" {
				n++
			}
		}
	}
	return n
}

// newValidationResult builds a result from validator output
func newValidationResult(errs []error, touched []FieldFlags) ValidationResult {
	r := ValidationResult{
		Errors:  make([]FieldErrors, len(touched)),
		Touched: append([]FieldFlags(nil), touched...),
	}
	for _, err := range errs {
		vErr, ok := err.(*ValidationError)
		if !ok {
			continue
		}
		if vErr.IsListLevel() {
			r.ListError = vErr.Message
			continue
		}
		if vErr.Index >= 0 && vErr.Index < len(r.Errors) {
			r.Errors[vErr.Index][vErr.Field] = vErr.Message
		}
	}
	return r
}
