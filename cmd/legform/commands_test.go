package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/muurk/legform/internal/config"
	"github.com/muurk/legform/internal/legs"
)

func validLegs() []legs.LegRecord {
	return []legs.LegRecord{
		{DepartureLocation: "USA", ArrivalLocation: "Canada", DepartureDate: "2099-01-01", Passengers: "2"},
		{DepartureLocation: "Canada", ArrivalLocation: "Mexico", DepartureDate: "2099-01-05", Passengers: "2"},
	}
}

func TestValidateItineraryFormats(t *testing.T) {
	invalid := validLegs()
	invalid[1].ArrivalLocation = "Canada"
	invalid[1].DepartureDate = "2098-12-31"

	tests := []struct {
		name     string
		legs     []legs.LegRecord
		format   string
		wantErr  bool
		contains []string
	}{
		{
			name:     "detailed valid",
			legs:     validLegs(),
			format:   "detailed",
			contains: []string{"ITINERARY VALIDATION", "SUBMITTED DATA", "Leg 2:", "Itinerary is valid"},
		},
		{
			name:     "detailed invalid",
			legs:     invalid,
			format:   "detailed",
			wantErr:  true,
			contains: []string{"Itinerary is invalid", "leg 2 arrivalLocation:", legs.MsgNotAscending},
		},
		{
			name:     "compact valid",
			legs:     validLegs(),
			format:   "compact",
			contains: []string{"1. USA → Canada on 2099-01-01 (2 pax)", "2. Canada → Mexico"},
		},
		{
			name:     "compact invalid",
			legs:     invalid,
			format:   "compact",
			wantErr:  true,
			contains: []string{"Itinerary validation failed with 2 error(s):"},
		},
		{
			name:     "too few legs",
			legs:     validLegs()[:1],
			format:   "compact",
			wantErr:  true,
			contains: []string{"must have 2-5 legs, got 1"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			err := validateItinerary(&buf, "trip.yaml", &legs.Itinerary{Legs: tt.legs}, config.DefaultSettings(), tt.format)
			if (err != nil) != tt.wantErr {
				t.Fatalf("validateItinerary() error = %v, wantErr %v", err, tt.wantErr)
			}
			for _, want := range tt.contains {
				if !strings.Contains(buf.String(), want) {
					t.Errorf("output missing %q:\n%s", want, buf.String())
				}
			}
		})
	}
}

func TestValidateItineraryJSON(t *testing.T) {
	list := validLegs()
	list[0].Passengers = "0"

	var buf bytes.Buffer
	err := validateItinerary(&buf, "trip.json", &legs.Itinerary{Legs: list}, config.DefaultSettings(), "json")
	if !errors.Is(err, legs.ErrSubmitRejected) {
		t.Fatalf("validateItinerary() error = %v, want ErrSubmitRejected", err)
	}

	var report validationReport
	if err := json.Unmarshal(buf.Bytes(), &report); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, buf.String())
	}
	want := validationReport{
		Errors: []validationIssue{{
			Leg:     1,
			Field:   "passengers",
			Code:    legs.ErrCodeTooFewPassengers.String(),
			Message: legs.MsgPassengerMinimum,
		}},
	}
	if diff := cmp.Diff(want, report); diff != "" {
		t.Errorf("report mismatch (-want +got):\n%s", diff)
	}
}

func TestValidateItineraryJSONListErrors(t *testing.T) {
	tests := []struct {
		name string
		legs []legs.LegRecord
		want validationIssue
	}{
		{
			name: "dates out of order",
			legs: func() []legs.LegRecord {
				l := validLegs()
				l[1].DepartureDate = "2098-12-31"
				return l
			}(),
			want: validationIssue{Code: legs.ErrCodeNotAscending.String(), Message: legs.MsgNotAscending},
		},
		{
			name: "too few legs",
			legs: validLegs()[:1],
			want: validationIssue{Code: "error", Message: "itinerary must have 2-5 legs, got 1"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			if err := validateItinerary(&buf, "trip.json", &legs.Itinerary{Legs: tt.legs}, config.DefaultSettings(), "json"); err == nil {
				t.Fatal("validateItinerary() should fail")
			}
			var report validationReport
			if err := json.Unmarshal(buf.Bytes(), &report); err != nil {
				t.Fatalf("output is not JSON: %v\n%s", err, buf.String())
			}
			if diff := cmp.Diff([]validationIssue{tt.want}, report.Errors); diff != "" {
				t.Errorf("errors mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestValidateItineraryRuleOverrides(t *testing.T) {
	list := validLegs()
	list[0].DepartureDate = "2001-01-01"
	list[1].DepartureDate = "2000-01-01"

	settings := config.DefaultSettings()
	if err := validateItinerary(&bytes.Buffer{}, "old.yaml", &legs.Itinerary{Legs: list}, settings, "compact"); err == nil {
		t.Fatal("past, descending dates should fail with default rules")
	}

	settings.Form.RequireFutureDates = false
	settings.Form.RequireAscendingDates = false
	if err := validateItinerary(&bytes.Buffer{}, "old.yaml", &legs.Itinerary{Legs: list}, settings, "compact"); err != nil {
		t.Errorf("relaxed rules should accept the itinerary, got %v", err)
	}
}

func TestUnknownLocations(t *testing.T) {
	list := validLegs()
	list[1].ArrivalLocation = "Atlantis"

	got := unknownLocations(list, legs.DefaultLocations)
	want := []string{`leg 2 Arrival Location "Atlantis" is not a known location`}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("unknownLocations() mismatch (-want +got):\n%s", diff)
	}

	var buf bytes.Buffer
	settings := config.DefaultSettings()
	if err := validateItinerary(&buf, "trip.yaml", &legs.Itinerary{Legs: list}, settings, "compact"); err != nil {
		t.Fatalf("unknown locations are warnings, got error %v", err)
	}
	if !strings.Contains(buf.String(), "warning: leg 2 Arrival Location") {
		t.Errorf("compact output should carry the warning:\n%s", buf.String())
	}

	buf.Reset()
	settings.Form.FreeTextLocations = true
	_ = validateItinerary(&buf, "trip.yaml", &legs.Itinerary{Legs: list}, settings, "compact")
	if strings.Contains(buf.String(), "warning") {
		t.Error("free-text mode should not warn about locations")
	}
}

func TestInitConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "legform", "config.yaml")

	var out bytes.Buffer
	if err := initConfig(strings.NewReader(""), &out, path, false); err != nil {
		t.Fatalf("initConfig() error = %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("settings file not written: %v", err)
	}

	// Existing file: refused without confirmation
	custom := config.DefaultSettings()
	custom.Locations = []string{"Oslo", "Bergen"}
	if err := custom.SaveTo(path); err != nil {
		t.Fatal(err)
	}
	if err := initConfig(strings.NewReader("no\n"), &out, path, false); err == nil {
		t.Error("initConfig() should stop when not confirmed")
	}
	if s, _ := config.LoadFrom(path); len(s.Locations) != 2 {
		t.Error("a cancelled init must keep the existing file")
	}

	if err := initConfig(strings.NewReader("overwrite\n"), &out, path, false); err != nil {
		t.Fatalf("confirmed initConfig() error = %v", err)
	}
	if s, _ := config.LoadFrom(path); len(s.Locations) != len(legs.DefaultLocations) {
		t.Error("a confirmed init should restore the defaults")
	}

	if err := custom.SaveTo(path); err != nil {
		t.Fatal(err)
	}
	if err := initConfig(strings.NewReader(""), &out, path, true); err != nil {
		t.Fatalf("forced initConfig() error = %v", err)
	}
	if s, _ := config.LoadFrom(path); len(s.Locations) != len(legs.DefaultLocations) {
		t.Error("--force should overwrite without asking")
	}
}
