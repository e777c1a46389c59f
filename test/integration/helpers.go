//go:build integration
// +build integration

package integration

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"regexp"
	"strconv"
	"strings"
	"testing"
	"time"
)

// TestConfig holds configuration for integration tests
type TestConfig struct {
	Endpoint   string
	Token      string
	AccountID  string
	CanvasPath string
	Verbose    bool
}

// LoadTestConfig loads configuration from environment variables
func LoadTestConfig() *TestConfig {
	accountID := os.Getenv("CANVAS_TEST_ACCOUNT_ID")
	if accountID == "" {
		accountID = "1"
	}

	return &TestConfig{
		Endpoint:   os.Getenv("CANVAS_ENDPOINT"),
		Token:      os.Getenv("CANVAS_TOKEN"),
		AccountID:  accountID,
		CanvasPath: getCanvasPath(),
		Verbose:    os.Getenv("CANVAS_VERBOSE") == "true",
	}
}

// getCanvasPath determines the path to the canvas binary
func getCanvasPath() string {
	if path := os.Getenv("CANVAS_BINARY_PATH"); path != "" {
		return path
	}

	// Try common locations
	candidates := []string{
		"../../canvas",
		"./canvas",
		"../canvas",
	}

	for _, candidate := range candidates {
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}

	return "canvas" // Fallback to PATH
}

// SkipIfMissingConfig skips test if required config is missing
func (config *TestConfig) SkipIfMissingConfig(t *testing.T) {
	if config.Endpoint == "" {
		t.Skip("CANVAS_ENDPOINT not set, skipping integration test")
	}

	if config.Token == "" {
		t.Skip("CANVAS_TOKEN not set, skipping integration test")
	}

	if _, err := os.Stat(config.CanvasPath); os.IsNotExist(err) {
		t.Skipf("canvas binary not found at %s, skipping integration test", config.CanvasPath)
	}
}

// CommandRunner provides utilities for running canvas commands
type CommandRunner struct {
	config *TestConfig
	t      *testing.T
}

// NewCommandRunner creates a new command runner
func NewCommandRunner(config *TestConfig, t *testing.T) *CommandRunner {
	return &CommandRunner{
		config: config,
		t:      t,
	}
}

// Run executes a canvas command and returns output
func (runner *CommandRunner) Run(args ...string) (stdout, stderr string, err error) {
	cmd := exec.Command(runner.config.CanvasPath, args...)
	var stdoutBuf, stderrBuf bytes.Buffer
	cmd.Stdout = &stdoutBuf
	cmd.Stderr = &stderrBuf

	if runner.config.Verbose {
		runner.t.Logf("Running: %s %s", runner.config.CanvasPath, strings.Join(args, " "))
	}

	err = cmd.Run()
	stdout = stdoutBuf.String()
	stderr = stderrBuf.String()

	if runner.config.Verbose && err != nil {
		runner.t.Logf("Command failed: %v\nStdout: %s\nStderr: %s", err, stdout, stderr)
	}

	return stdout, stderr, err
}

// RunWithInput executes a canvas command with stdin input
func (runner *CommandRunner) RunWithInput(input string, args ...string) (stdout, stderr string, err error) {
	cmd := exec.Command(runner.config.CanvasPath, args...)
	var stdoutBuf, stderrBuf bytes.Buffer
	cmd.Stdout = &stdoutBuf
	cmd.Stderr = &stderrBuf
	cmd.Stdin = strings.NewReader(input)

	if runner.config.Verbose {
		runner.t.Logf("Running with input: %s %s", runner.config.CanvasPath, strings.Join(args, " "))
	}

	err = cmd.Run()
	stdout = stdoutBuf.String()
	stderr = stderrBuf.String()

	if runner.config.Verbose && err != nil {
		runner.t.Logf("Command failed: %v\nStdout: %s\nStderr: %s", err, stdout, stderr)
	}

	return stdout, stderr, err
}

// Login authenticates against the configured instance with the test token
func (runner *CommandRunner) Login() error {
	_, stderr, err := runner.Run("login",
		"--api", runner.config.Endpoint,
		"--token", runner.config.Token)
	if err != nil {
		return fmt.Errorf("failed to log in: %s", stderr)
	}
	return nil
}

// GenerateTestName creates a unique test resource name
func GenerateTestName(prefix string) string {
	return fmt.Sprintf("%s-%d", prefix, time.Now().Unix())
}

var createdIDPattern = regexp.MustCompile(`created with ID (\d+)`)

// ExtractCreatedID parses the resource ID from a creation confirmation message
func ExtractCreatedID(t *testing.T, output string) int64 {
	match := createdIDPattern.FindStringSubmatch(output)
	if match == nil {
		t.Fatalf("No created ID found in output: %s", output)
	}

	id, err := strconv.ParseInt(match[1], 10, 64)
	if err != nil {
		t.Fatalf("Invalid created ID %q: %v", match[1], err)
	}

	return id
}

// CleanupCourse attempts to delete a test course
func (runner *CommandRunner) CleanupCourse(courseID int64) {
	stdout, stderr, err := runner.Run("courses", "delete", strconv.FormatInt(courseID, 10))
	if err != nil && runner.config.Verbose {
		runner.t.Logf("Cleanup warning for course %d: %s\nStderr: %s", courseID, stdout, stderr)
	}
}

// WaitForCondition waits for a condition to be met with timeout
func WaitForCondition(t *testing.T, condition func() bool, timeout time.Duration, message string) {
	ticker := time.NewTicker(500 * time.Millisecond)
	defer ticker.Stop()

	timeoutChan := time.After(timeout)

	for {
		select {
		case <-ticker.C:
			if condition() {
				return
			}
		case <-timeoutChan:
			t.Fatalf("Timeout waiting for condition: %s", message)
		}
	}
}

// AssertJSONOutput verifies command output is valid JSON
func AssertJSONOutput(t *testing.T, output string) {
	output = strings.TrimSpace(output)
	if !strings.HasPrefix(output, "{") && !strings.HasPrefix(output, "[") {
		t.Errorf("Output does not appear to be JSON: %s", output)
	}
}

// AssertYAMLOutput verifies command output is valid YAML
func AssertYAMLOutput(t *testing.T, output string) {
	output = strings.TrimSpace(output)
	if strings.Contains(output, "---") || strings.Contains(output, ":") {
		return // Looks like YAML
	}
	t.Errorf("Output does not appear to be YAML: %s", output)
}
