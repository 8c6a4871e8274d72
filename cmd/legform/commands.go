package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/muurk/legform/internal/config"
	"github.com/muurk/legform/internal/legs"
	"github.com/muurk/legform/internal/logging"
	"github.com/muurk/legform/internal/ui"
	"github.com/muurk/legform/internal/wizard/tui"
)

// Rule flags, shared by the form and validate
var (
	freeText       bool
	allowPastDates bool
	noAscending    bool
	noRemove       bool
	prefillToday   bool
)

// Command flags
var (
	fromFile     string
	outputFormat string
	forceInit    bool
)

func init() {
	rootCmd.PersistentFlags().BoolVar(&freeText, "free-text", false, "Type locations instead of picking them from the list")
	rootCmd.PersistentFlags().BoolVar(&allowPastDates, "allow-past-dates", false, "Accept departure dates before today")
	rootCmd.PersistentFlags().BoolVar(&noAscending, "no-ascending", false, "Do not require dates to ascend across legs")
	rootCmd.PersistentFlags().BoolVar(&noRemove, "no-remove", false, "Do not allow legs to be removed")
	rootCmd.PersistentFlags().BoolVar(&prefillToday, "prefill-today", false, "Start new legs with today's date")

	rootCmd.Flags().StringVar(&fromFile, "from", "", "Pre-fill the form from an itinerary file")

	validateCmd.Flags().StringVar(&outputFormat, "format", "detailed", "Output format (detailed, compact, json)")
	configInitCmd.Flags().BoolVar(&forceInit, "force", false, "Overwrite an existing settings file without asking")

	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(locationsCmd)
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configShowCmd)
}

// loadSettings reads the settings file and applies the rule flags on top
func loadSettings() (*config.Settings, error) {
	var (
		settings *config.Settings
		err      error
	)
	if configPath != "" {
		settings, err = config.LoadFrom(configPath)
	} else {
		settings, err = config.Load()
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}

	// Copy so flag overrides never leak into the cached settings
	prefs := *settings.Form
	if freeText {
		prefs.FreeTextLocations = true
	}
	if allowPastDates {
		prefs.RequireFutureDates = false
	}
	if noAscending {
		prefs.RequireAscendingDates = false
	}
	if noRemove {
		prefs.AllowRemove = false
	}
	if prefillToday {
		prefs.PrefillToday = true
	}

	return &config.Settings{
		Version:   settings.Version,
		Form:      &prefs,
		Locations: append([]string(nil), settings.Locations...),
	}, nil
}

func runWizard(cmd *cobra.Command, args []string) error {
	if !ui.IsTerminal() {
		return errors.New("the form needs a terminal; use 'legform validate' for itinerary files")
	}

	settings, err := loadSettings()
	if err != nil {
		return err
	}

	var submitted []legs.LegRecord
	onSubmit := func(snapshot []legs.LegRecord) {
		submitted = snapshot
	}

	opts := settings.Options()
	ctrl := legs.NewController(opts, onSubmit)
	if fromFile != "" {
		it, err := legs.LoadItinerary(fromFile)
		if err != nil {
			return err
		}
		ctrl, err = legs.NewControllerWithLegs(opts, it.Legs, onSubmit)
		if err != nil {
			return fmt.Errorf("%s: %w", fromFile, err)
		}
	}

	logging.Info("Starting form",
		zap.Int("legs", ctrl.Len()),
		zap.Bool("free_text", settings.FreeText()),
		zap.Bool("require_future_dates", opts.RequireFutureDates),
		zap.Bool("require_ascending_dates", opts.RequireAscendingDates),
	)

	model := tui.NewAppModel(ctrl, settings.Locations, settings.FreeText())
	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("form error: %w", err)
	}

	// The alternate screen is gone on exit, so repeat the last submission
	if submitted != nil {
		fmt.Fprint(cmd.OutOrStdout(), legs.FormatDetailed(submitted))
	}
	return nil
}

// validateCmd checks an itinerary file without the interactive form
var validateCmd = &cobra.Command{
	Use:   "validate <file>",
	Short: "Validate an itinerary file",
	Long: `Validate a YAML or JSON itinerary file with the same rules as the form.

The file holds a list of legs:

  legs:
    - departureLocation: USA
      arrivalLocation: Canada
      departureDate: "2030-07-01"
      passengers: "2"

Exits with a non-zero status when the itinerary is invalid.`,
	Example: `  # Validate with the settings file rules
  legform validate trip.yaml

  # Allow dates in the past
  legform validate trip.yaml --allow-past-dates

  # JSON output for scripting
  legform validate trip.json --format json`,
	Args: cobra.ExactArgs(1),
	RunE: runValidate,
}

func runValidate(cmd *cobra.Command, args []string) error {
	switch outputFormat {
	case "detailed", "compact", "json":
	default:
		return fmt.Errorf("unknown format %q (use detailed, compact or json)", outputFormat)
	}

	settings, err := loadSettings()
	if err != nil {
		return err
	}

	it, err := legs.LoadItinerary(args[0])
	if err != nil {
		return err
	}

	return validateItinerary(cmd.OutOrStdout(), args[0], it, settings, outputFormat)
}

// validationReport is the --format json output of validate
type validationReport struct {
	Valid    bool              `json:"valid"`
	Legs     []legs.LegRecord  `json:"legs,omitempty"`
	Errors   []validationIssue `json:"errors,omitempty"`
	Warnings []string          `json:"warnings,omitempty"`
}

type validationIssue struct {
	Leg     int    `json:"leg,omitempty"`
	Field   string `json:"field,omitempty"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

func toIssue(err error) validationIssue {
	if !legs.IsValidationError(err) {
		return validationIssue{Code: "error", Message: err.Error()}
	}
	code, _ := legs.CodeOf(err)
	issue := validationIssue{Code: code.String(), Message: legs.MessageOf(err)}

	var vErr *legs.ValidationError
	if errors.As(err, &vErr) && !vErr.IsListLevel() {
		issue.Leg = vErr.Index + 1
		issue.Field = vErr.Field.String()
	}
	return issue
}

// unknownLocations lists locations that are not in the picker set
func unknownLocations(list []legs.LegRecord, known []string) []string {
	set := make(map[string]bool, len(known))
	for _, k := range known {
		set[k] = true
	}
	var out []string
	for i, l := range list {
		for _, f := range []legs.Field{legs.FieldDepartureLocation, legs.FieldArrivalLocation} {
			if v := strings.TrimSpace(l.Get(f)); v != "" && !set[v] {
				out = append(out, fmt.Sprintf("leg %d %s %q is not a known location", i+1, f.Label(), v))
			}
		}
	}
	return out
}

// validateItinerary runs the legs through a controller and a submit, then
// reports in the requested format. Returns an error when the itinerary is
// invalid.
func validateItinerary(out io.Writer, path string, it *legs.Itinerary, settings *config.Settings, format string) error {
	p := ui.NewPrinter(out)

	var warnings []string
	if !settings.FreeText() {
		warnings = unknownLocations(it.Legs, settings.Locations)
	}

	var (
		snapshot  []legs.LegRecord
		submitErr error
		problems  []error
	)
	ctrl, err := legs.NewControllerWithLegs(settings.Options(), it.Legs, nil)
	if err != nil {
		submitErr = err
		problems = []error{err}
	} else {
		snapshot, submitErr = ctrl.Submit()
		var sErr *legs.SubmitError
		if errors.As(submitErr, &sErr) {
			problems = sErr.Errors
		}
	}

	switch format {
	case "json":
		report := validationReport{Valid: submitErr == nil, Legs: snapshot, Warnings: warnings}
		for _, e := range problems {
			report.Errors = append(report.Errors, toIssue(e))
		}
		data, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal JSON: %w", err)
		}
		p.Println(string(data))

	case "compact":
		if submitErr == nil {
			p.Print(legs.FormatCompact(snapshot))
		} else {
			p.Println(legs.FormatValidationErrors(problems))
		}
		for _, w := range warnings {
			p.Println("warning: " + w)
		}

	default:
		p.PrintHeader("Itinerary Validation", "legform validate "+path,
			ui.Detail{Key: "File", Value: path},
			ui.Detail{Key: "Legs", Value: strconv.Itoa(len(it.Legs))},
		)
		p.Newline()
		if submitErr == nil {
			p.Print(legs.FormatDetailed(snapshot))
			p.Newline()
			p.PrintSuccess("Itinerary is valid", ui.Detail{Key: "Legs", Value: strconv.Itoa(len(snapshot))})
		} else {
			messages := make([]string, 0, len(problems))
			for _, e := range problems {
				messages = append(messages, e.Error())
			}
			p.PrintFailure("Itinerary is invalid", submitErr, messages)
		}
		if len(warnings) > 0 {
			p.Newline()
			result := ui.NewWarningResult("Locations outside the configured list").SetWidth(p.Width())
			for i, w := range warnings {
				result.AddDetail(strconv.Itoa(i+1), w)
			}
			p.Println(result.Render())
		}
	}

	if submitErr != nil {
		return fmt.Errorf("%s is invalid: %w", path, submitErr)
	}
	return nil
}

// locationsCmd prints the locations offered by the picker
var locationsCmd = &cobra.Command{
	Use:   "locations",
	Short: "List the locations offered by the form",
	RunE: func(cmd *cobra.Command, args []string) error {
		settings, err := loadSettings()
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		for i, loc := range settings.Locations {
			fmt.Fprintf(out, "%2d. %s\n", i+1, loc)
		}
		if settings.FreeText() {
			fmt.Fprintln(out, "\nFree-text mode is on: any location name is accepted.")
		}
		return nil
	},
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the settings file",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a settings file with the default values",
	RunE: func(cmd *cobra.Command, args []string) error {
		path := configPath
		if path == "" {
			var err error
			if path, err = config.GetConfigPath(); err != nil {
				return err
			}
		}
		return initConfig(cmd.InOrStdin(), cmd.OutOrStdout(), path, forceInit)
	},
}

// initConfig writes default settings to path, asking before replacing an
// existing file unless force is set.
func initConfig(in io.Reader, out io.Writer, path string, force bool) error {
	p := ui.NewPrinter(out)

	err := config.CreateDefaultConfig(path, force)
	if errors.Is(err, config.ErrConfigExists) {
		if !p.Confirm(in, "Settings file exists", []string{
			path,
			"Your current settings and locations will be replaced by the defaults",
		}, "overwrite") {
			return errors.New("config init cancelled")
		}
		err = config.CreateDefaultConfig(path, true)
	}
	if err != nil {
		return err
	}
	p.PrintSuccess("Settings file written", ui.Detail{Key: "Path", Value: path})
	return nil
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective settings",
	RunE: func(cmd *cobra.Command, args []string) error {
		settings, err := loadSettings()
		if err != nil {
			return err
		}
		data, err := yaml.Marshal(settings)
		if err != nil {
			return fmt.Errorf("failed to marshal settings: %w", err)
		}
		fmt.Fprint(cmd.OutOrStdout(), string(data))
		return nil
	},
}
