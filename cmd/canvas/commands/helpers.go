package commands

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/edukit-io/canvas/internal/constants"
)

// Common static errors used throughout the commands package.
var (
	ErrInstanceNameOrURLRequired = errors.New("instance name or URL is required")
	ErrInstanceNotFound          = errors.New("instance not found in configuration")
	ErrInstanceAlreadyExists     = errors.New("instance already exists")
	ErrNoInstanceEndpoint        = errors.New("no instance endpoint configured")
	ErrUnknownConfigKey          = errors.New("unknown configuration key")
	ErrCourseIDInvalid           = errors.New("course ID must be a number")
	ErrAccountIDInvalid          = errors.New("account ID must be a number")
	ErrUserIDInvalid             = errors.New("user ID must be a number")
	ErrAccessTokenRequired       = errors.New("access token is required")
)

// parseID parses a numeric resource ID argument.
func parseID(arg string, invalidErr error) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", invalidErr, arg)
	}

	return id, nil
}

// outputJSON writes the value as indented JSON to stdout.
func outputJSON(value interface{}) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")

	err := encoder.Encode(value)
	if err != nil {
		return fmt.Errorf("encoding JSON output: %w", err)
	}

	return nil
}

// outputYAML writes the value as YAML to stdout.
func outputYAML(value interface{}) error {
	encoder := yaml.NewEncoder(os.Stdout)

	err := encoder.Encode(value)
	if err != nil {
		return fmt.Errorf("encoding YAML output: %w", err)
	}

	err = encoder.Close()
	if err != nil {
		return fmt.Errorf("closing YAML encoder: %w", err)
	}

	return nil
}

// outputFormat returns the requested output format, defaulting to table.
func outputFormat() string {
	format := viper.GetString("output")
	if format == "" {
		return constants.FormatTable
	}

	return format
}

// renderStructured writes the value as JSON or YAML depending on the output
// flag and reports whether it handled the output. Table rendering stays with
// the caller.
func renderStructured(value interface{}) (bool, error) {
	switch outputFormat() {
	case constants.FormatJSON:
		return true, outputJSON(value)
	case constants.FormatYAML:
		return true, outputYAML(value)
	default:
		return false, nil
	}
}

// formatTime renders an optional timestamp for table output.
func formatTime(t *time.Time) string {
	if t == nil {
		return constants.NotAvailable
	}

	return t.Format(time.RFC3339)
}

// orNotAvailable substitutes N/A for empty strings in table output.
func orNotAvailable(value string) string {
	if value == "" {
		return constants.NotAvailable
	}

	return value
}
