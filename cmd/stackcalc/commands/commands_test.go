package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// run executes the root command with args and returns stdout and the exit code.
// Package-level flag values persist between executions, so they are reset first.
func run(t *testing.T, args ...string) (string, int) {
	t.Helper()

	for _, key := range []string{"STACKCALC_CONFIG", "STACKCALC_FILE", "DYNAMODB_TABLE", "DYNAMODB_ENDPOINT", "LOG_LEVEL", "LOG_FORMAT", "STACKCALC_CONCURRENCY"} {
		t.Setenv(key, "")
	}

	configPath, logLevel = "", ""
	validateFlags.PersistenceFlags = PersistenceFlags{}
	validateFlags.Strict, validateFlags.Explain = false, false
	factorialFlags.PersistenceFlags = PersistenceFlags{}
	factorialFlags.CheckOverflow = false
	showFlags.PersistenceFlags = PersistenceFlags{}
	showFlags.Kind, showFlags.Input, showFlags.SortBy = "", "", ""
	showFlags.Valid, showFlags.Invalid = false, false
	showFlags.Format = "detailed"
	forgetFlags.PersistenceFlags = PersistenceFlags{}

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&bytes.Buffer{})
	rootCmd.SetArgs(args)

	err := ExecuteContext(context.Background())
	return out.String(), ExitCode(err)
}

func TestValidateCommand(t *testing.T) {
	tests := []struct {
		name string
		args []string
		out  string
		code int
	}{
		{"default expression", []string{"validate"}, "Valid expression.\n", 0},
		{"unmatched closer", []string{"validate", "(5+3))"}, "Invalid expression.\n", 0},
		{"several", []string{"validate", "()", "((5+3)", "5+3*2"}, "Valid expression.\nInvalid expression.\nValid expression.\n", 0},
		{"explain", []string{"validate", "--explain", "(5+3))"}, "Invalid expression.\n  (5+3)): unmatched closing parenthesis at position 5\n", 0},
		{"strict failure", []string{"validate", "--strict", "("}, "Invalid expression.\n", 1},
		{"strict success", []string{"validate", "--strict", "()"}, "Valid expression.\n", 0},
		{"empty expression", []string{"validate", ""}, "Valid expression.\n", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, code := run(t, tt.args...)
			if out != tt.out {
				t.Errorf("Expected output %q, got %q", tt.out, out)
			}
			if code != tt.code {
				t.Errorf("Expected exit code %d, got %d", tt.code, code)
			}
		})
	}
}

func TestFactorialCommand(t *testing.T) {
	tests := []struct {
		name string
		args []string
		out  string
		code int
	}{
		{"default input", []string{"factorial"}, "Factorial: 120\n", 0},
		{"several", []string{"factorial", "0", "1", "10"}, "Factorial: 1\nFactorial: 1\nFactorial: 3628800\n", 0},
		{"negative after separator", []string{"factorial", "--", "-3"}, "Factorial: 1\n", 0},
		{"wraps by default", []string{"factorial", "21"}, "Factorial: -4249290049419214848\n", 0},
		{"check overflow", []string{"factorial", "--check-overflow", "20", "21"}, "Factorial: 2432902008176640000\n", 1},
		{"not an integer", []string{"factorial", "five"}, "", 2},
		{"above input limit", []string{"factorial", "2000000000"}, "", 2},
		{"unknown flag", []string{"factorial", "--bogus"}, "", 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, code := run(t, tt.args...)
			if out != tt.out {
				t.Errorf("Expected output %q, got %q", tt.out, out)
			}
			if code != tt.code {
				t.Errorf("Expected exit code %d, got %d", tt.code, code)
			}
		})
	}
}

func TestHistoryCommands(t *testing.T) {
	file := filepath.Join(t.TempDir(), "history.json")

	if _, code := run(t, "validate", "--file", file, "(()", "()"); code != 0 {
		t.Fatalf("validate failed with code %d", code)
	}
	if _, code := run(t, "factorial", "--file", file, "5"); code != 0 {
		t.Fatalf("factorial failed with code %d", code)
	}

	out, code := run(t, "show", "--file", file, "--format", "json", "--sort", "input")
	if code != 0 {
		t.Fatalf("show failed with code %d", code)
	}

	var records []map[string]any
	if err := json.Unmarshal([]byte(out), &records); err != nil {
		t.Fatalf("show output is not JSON: %v\n%s", err, out)
	}
	if len(records) != 3 {
		t.Fatalf("Expected 3 records, got %d", len(records))
	}

	out, _ = run(t, "show", "--file", file, "--kind", "parens", "--invalid", "--format", "json")
	if !strings.Contains(out, `"input": "(()"`) || strings.Contains(out, `"input": "()"`) {
		t.Errorf("Expected only the invalid expression, got:\n%s", out)
	}

	out, _ = run(t, "show", "--file", file)
	if !strings.Contains(out, "Total records: 3") {
		t.Errorf("Expected detailed output with total, got:\n%s", out)
	}
	if strings.Contains(out, "Warning:") {
		t.Errorf("Expected no ID warnings for records written by stackcalc, got:\n%s", out)
	}

	out, code = run(t, "forget", "--file", file, "factorial", "5")
	if code != 0 || !strings.Contains(out, "Forgot factorial") {
		t.Errorf("forget failed: code %d, output %q", code, out)
	}
	if _, code := run(t, "forget", "--file", file, "factorial", "5"); code != 1 {
		t.Errorf("Expected exit code 1 forgetting twice, got %d", code)
	}

	out, _ = run(t, "show", "--file", file, "--format", "compact")
	if !strings.Contains(out, "Total records: 2") {
		t.Errorf("Expected 2 records after forget, got:\n%s", out)
	}
}

func TestShowCommand_MismatchedID(t *testing.T) {
	file := filepath.Join(t.TempDir(), "history.json")
	content := `[{"ID": "v1:p:edited", "Kind": "p", "Input": "()", "Valid": true, "EvalTime": "2025-10-17T12:00:00Z"}]`
	if err := os.WriteFile(file, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write history: %v", err)
	}

	out, code := run(t, "show", "--file", file)
	if code != 0 {
		t.Fatalf("show failed with code %d", code)
	}
	if !strings.Contains(out, "Total records: 1") {
		t.Errorf("Expected the record to still be listed, got:\n%s", out)
	}
	if !strings.Contains(out, "Warning: 1 stored record(s) have an ID that does not match their input") {
		t.Errorf("Expected an ID warning, got:\n%s", out)
	}
}

func TestHistoryCommands_RequirePersistence(t *testing.T) {
	if _, code := run(t, "show"); code != 2 {
		t.Errorf("Expected usage exit code for show without persistence, got %d", code)
	}
	if _, code := run(t, "forget", "parens", "()"); code != 2 {
		t.Errorf("Expected usage exit code for forget without persistence, got %d", code)
	}
}

func TestShowCommand_BadFlags(t *testing.T) {
	file := filepath.Join(t.TempDir(), "history.json")

	tests := [][]string{
		{"show", "--file", file, "--valid", "--invalid"},
		{"show", "--file", file, "--kind", "brackets"},
		{"show", "--file", file, "--format", "bogus"},
	}
	for _, args := range tests {
		if _, code := run(t, args...); code != 2 {
			t.Errorf("%v: expected exit code 2, got %d", args, code)
		}
	}
}

func TestConfigFile(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "stackcalc.yaml")
	content := "defaults:\n  expression: \"((\"\n  factorial: 10\n"
	if err := os.WriteFile(cfgPath, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	if out, _ := run(t, "--config", cfgPath, "factorial"); out != "Factorial: 3628800\n" {
		t.Errorf("Expected configured default factorial, got %q", out)
	}
	if out, _ := run(t, "--config", cfgPath, "validate"); out != "Invalid expression.\n" {
		t.Errorf("Expected configured default expression, got %q", out)
	}

	if _, code := run(t, "--config", filepath.Join(dir, "stackcalc.ini"), "validate"); code != 2 {
		t.Errorf("Expected usage exit code for unsupported config, got %d", code)
	}
}

func TestExitCode(t *testing.T) {
	if ExitCode(nil) != 0 {
		t.Error("Expected 0 for nil error")
	}
	if ExitCode(ExitWithCode(3, os.ErrNotExist)) != 3 {
		t.Error("Expected ExitError code to be used")
	}
	if ExitCode(UsageError{os.ErrInvalid}) != 2 {
		t.Error("Expected 2 for usage errors")
	}
	if ExitCode(os.ErrClosed) != 1 {
		t.Error("Expected 1 for other errors")
	}
	if ExitWithCode(1, nil) != nil {
		t.Error("Expected nil ExitError for nil error")
	}
}
