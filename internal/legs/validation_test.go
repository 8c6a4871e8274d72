package legs

import (
	"errors"
	"fmt"
	"testing"
	"time"
)

var fixedNow = time.Date(2030, time.June, 15, 14, 30, 0, 0, time.UTC)

func testOptions() Options {
	opts := DefaultOptions()
	opts.Now = func() time.Time { return fixedNow }
	return opts
}

func wantCode(t *testing.T, err error, want ErrorCode) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected %v error, got nil", want)
	}
	got, ok := CodeOf(err)
	if !ok {
		t.Fatalf("expected ValidationError, got %T", err)
	}
	if got != want {
		t.Errorf("error code = %v, want %v (%v)", got, want, err)
	}
}

// TestValidateDepartureLocation tests departure location validation
func TestValidateDepartureLocation(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		wantErr bool
	}{
		{"Valid: picker value", "USA", false},
		{"Valid: free text outside picker set", "Reykjavík", false},
		{"Invalid: empty", "", true},
		{"Invalid: whitespace", "   ", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateDepartureLocation(LegRecord{DepartureLocation: tt.value})
			if (err != nil) != tt.wantErr {
				t.Fatalf("ValidateDepartureLocation(%q) error = %v, wantErr %v", tt.value, err, tt.wantErr)
			}
			if err != nil {
				wantCode(t, err, ErrCodeRequired)
				if MessageOf(err) != MsgDepartureRequired {
					t.Errorf("message = %q", MessageOf(err))
				}
			}
		})
	}
}

// TestValidateArrivalLocation tests arrival location validation
func TestValidateArrivalLocation(t *testing.T) {
	tests := []struct {
		name      string
		departure string
		arrival   string
		wantCode  ErrorCode
		wantErr   bool
	}{
		{"Valid: different locations", "USA", "Canada", 0, false},
		{"Valid: departure not chosen yet", "", "Canada", 0, false},
		{"Invalid: empty", "USA", "", ErrCodeRequired, true},
		{"Invalid: both empty reports required", "", "", ErrCodeRequired, true},
		{"Invalid: same as departure", "USA", "USA", ErrCodeSameLocation, true},
		{"Invalid: same after trimming", "USA", " USA ", ErrCodeSameLocation, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateArrivalLocation(LegRecord{DepartureLocation: tt.departure, ArrivalLocation: tt.arrival})
			if (err != nil) != tt.wantErr {
				t.Fatalf("ValidateArrivalLocation() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				wantCode(t, err, tt.wantCode)
			}
		})
	}
}

// TestValidateDepartureDate tests date validation with and without the future-only rule
func TestValidateDepartureDate(t *testing.T) {
	tests := []struct {
		name          string
		date          string
		requireFuture bool
		wantCode      ErrorCode
		wantErr       bool
	}{
		{"Valid: far future", "2099-01-01", true, 0, false},
		{"Valid: today", "2030-06-15", true, 0, false},
		{"Valid: today as timestamp earlier in the day", "2030-06-15T01:00:00Z", true, 0, false},
		{"Valid: past allowed when rule off", "2001-01-01", false, 0, false},
		{"Invalid: empty", "", true, ErrCodeRequired, true},
		{"Invalid: empty with rule off", "", false, ErrCodeRequired, true},
		{"Invalid: yesterday", "2030-06-14", true, ErrCodePastDate, true},
		{"Invalid: garbage", "next tuesday", true, ErrCodeInvalidDate, true},
		{"Invalid: impossible date", "2030-02-30", false, ErrCodeInvalidDate, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateDepartureDate(LegRecord{DepartureDate: tt.date}, fixedNow, tt.requireFuture)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ValidateDepartureDate(%q) error = %v, wantErr %v", tt.date, err, tt.wantErr)
			}
			if tt.wantErr {
				wantCode(t, err, tt.wantCode)
			}
		})
	}
}

// TestValidatePassengers tests passenger count validation
func TestValidatePassengers(t *testing.T) {
	tests := []struct {
		name     string
		value    string
		wantCode ErrorCode
		wantErr  bool
	}{
		{"Valid: one", "1", 0, false},
		{"Valid: many", "250", 0, false},
		{"Valid: leading zero", "02", 0, false},
		{"Valid: huge", "99999999999999999999999", 0, false},
		{"Invalid: empty reports required only", "", ErrCodeRequired, true},
		{"Invalid: zero", "0", ErrCodeTooFewPassengers, true},
		{"Invalid: letters", "two", ErrCodeNotNumeric, true},
		{"Invalid: negative", "-1", ErrCodeNotNumeric, true},
		{"Invalid: decimal", "1.5", ErrCodeNotNumeric, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePassengers(LegRecord{Passengers: tt.value})
			if (err != nil) != tt.wantErr {
				t.Fatalf("ValidatePassengers(%q) error = %v, wantErr %v", tt.value, err, tt.wantErr)
			}
			if tt.wantErr {
				wantCode(t, err, tt.wantCode)
			}
		})
	}
}

// TestValidateAscendingDates tests the cross-leg ordering rule
func TestValidateAscendingDates(t *testing.T) {
	tests := []struct {
		name    string
		dates   []string
		wantErr bool
	}{
		{"Valid: ascending", []string{"2099-01-01", "2099-02-01"}, false},
		{"Valid: same day", []string{"2099-01-01", "2099-01-01"}, false},
		{"Valid: same day different times", []string{"2099-01-01T22:00:00Z", "2099-01-01T08:00:00Z"}, false},
		{"Valid: empty dates skipped", []string{"2099-03-01", "", "2099-04-01"}, false},
		{"Valid: empty date breaks the chain", []string{"2099-02-01", "", "2099-01-01"}, false},
		{"Valid: unparseable date breaks the chain", []string{"2099-02-01", "garbage", "2099-01-01"}, false},
		{"Valid: all empty", []string{"", ""}, false},
		{"Invalid: descending", []string{"2099-02-01", "2099-01-01"}, true},
		{"Invalid: descending after a gap", []string{"", "2099-03-01", "2099-02-01"}, true},
		{"Invalid: last leg out of order", []string{"2099-01-01", "2099-02-01", "2099-03-01", "2099-01-15"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			list := make([]LegRecord, len(tt.dates))
			for i, d := range tt.dates {
				list[i].DepartureDate = d
			}
			err := ValidateAscendingDates(list, time.UTC)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ValidateAscendingDates(%v) error = %v, wantErr %v", tt.dates, err, tt.wantErr)
			}
			if err != nil {
				wantCode(t, err, ErrCodeNotAscending)
				var vErr *ValidationError
				if !errors.As(err, &vErr) || !vErr.IsListLevel() {
					t.Error("ordering error should be list-level")
				}
			}
		})
	}
}

// TestValidateLegs tests whole-list validation and rule toggles
func TestValidateLegs(t *testing.T) {
	valid := []LegRecord{
		{DepartureLocation: "USA", ArrivalLocation: "Canada", DepartureDate: "2099-01-01", Passengers: "2"},
		{DepartureLocation: "UK", ArrivalLocation: "France", DepartureDate: "2099-02-01", Passengers: "1"},
	}

	t.Run("valid itinerary", func(t *testing.T) {
		if errs := ValidateLegs(valid, testOptions()); len(errs) != 0 {
			t.Errorf("ValidateLegs() = %v, want no errors", errs)
		}
	})

	t.Run("errors carry leg index", func(t *testing.T) {
		list := append([]LegRecord(nil), valid...)
		list[1].ArrivalLocation = "UK"
		errs := ValidateLegs(list, testOptions())
		if len(errs) != 1 {
			t.Fatalf("ValidateLegs() got %d errors, want 1: %v", len(errs), errs)
		}
		var vErr *ValidationError
		if !errors.As(errs[0], &vErr) {
			t.Fatalf("expected ValidationError, got %T", errs[0])
		}
		if vErr.Index != 1 || vErr.Field != FieldArrivalLocation || vErr.Code != ErrCodeSameLocation {
			t.Errorf("got %+v", vErr)
		}
	})

	t.Run("ascending rule toggle", func(t *testing.T) {
		list := append([]LegRecord(nil), valid...)
		list[0].DepartureDate, list[1].DepartureDate = list[1].DepartureDate, list[0].DepartureDate

		if errs := ValidateLegs(list, testOptions()); len(errs) != 1 {
			t.Errorf("with rule on got %d errors, want 1", len(errs))
		}

		opts := testOptions()
		opts.RequireAscendingDates = false
		if errs := ValidateLegs(list, opts); len(errs) != 0 {
			t.Errorf("with rule off got %v, want none", errs)
		}
	})

	t.Run("empty legs report every field", func(t *testing.T) {
		errs := ValidateLegs(make([]LegRecord, 2), testOptions())
		if len(errs) != 2*int(NumFields) {
			t.Errorf("got %d errors, want %d", len(errs), 2*int(NumFields))
		}
	})
}

func TestAcceptsInput(t *testing.T) {
	tests := []struct {
		field Field
		value string
		want  bool
	}{
		{FieldPassengers, "", true},
		{FieldPassengers, "3", true},
		{FieldPassengers, "12", true},
		{FieldPassengers, "0", false},
		{FieldPassengers, "03", false},
		{FieldPassengers, "3a", false},
		{FieldPassengers, " 3", false},
		{FieldDepartureLocation, "anything at all", true},
		{FieldDepartureDate, "not-a-date", true},
	}

	for _, tt := range tests {
		if got := AcceptsInput(tt.field, tt.value); got != tt.want {
			t.Errorf("AcceptsInput(%v, %q) = %v, want %v", tt.field, tt.value, got, tt.want)
		}
	}
}

func TestFormatValidationErrors(t *testing.T) {
	if got := FormatValidationErrors(nil); got != "No validation errors" {
		t.Errorf("FormatValidationErrors(nil) = %q", got)
	}

	errs := ValidateLegs([]LegRecord{{DepartureLocation: "USA", ArrivalLocation: "USA", DepartureDate: "2099-01-01", Passengers: "1"}}, testOptions())
	got := FormatValidationErrors(errs)
	want := "Itinerary validation failed with 1 error(s):\n  1. leg 1 arrivalLocation: " + MsgSameLocation + "\n"
	if got != want {
		t.Errorf("FormatValidationErrors() = %q, want %q", got, want)
	}
}

func TestErrorPredicates(t *testing.T) {
	fieldErr := ValidatePassengers(LegRecord{Passengers: "0"})
	wrapped := fmt.Errorf("loading trip: %w", fieldErr)

	tests := []struct {
		name     string
		err      error
		wantIs   bool
		wantCode ErrorCode
		wantMsg  string
	}{
		{"field error", fieldErr, true, ErrCodeTooFewPassengers, MsgPassengerMinimum},
		{"wrapped field error", wrapped, true, ErrCodeTooFewPassengers, MsgPassengerMinimum},
		{"controller error", ErrListFull, false, 0, ErrListFull.Error()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsValidationError(tt.err); got != tt.wantIs {
				t.Errorf("IsValidationError() = %v, want %v", got, tt.wantIs)
			}
			code, ok := CodeOf(tt.err)
			if ok != tt.wantIs || code != tt.wantCode {
				t.Errorf("CodeOf() = %v, %v, want %v, %v", code, ok, tt.wantCode, tt.wantIs)
			}
			if got := MessageOf(tt.err); got != tt.wantMsg {
				t.Errorf("MessageOf() = %q, want %q", got, tt.wantMsg)
			}
		})
	}
}
