package cli_test

import (
	"bytes"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleDocument = `{
	"name": "John Doe",
	"age": 30,
	"address": {
		"street": "123 Main St",
		"zip": "12345"
	},
	"phones": [
		{"type": "home", "number": "555-1234"},
		{"type": "work", "number": "555-5678"}
	],
	"active": true
}`

func writeSample(t *testing.T) string {
	t.Helper()
	tempDir, err := os.MkdirTemp("", "jsonpeek-test")
	require.NoError(t, err)
	t.Cleanup(func() { _ = os.RemoveAll(tempDir) })

	jsonFile := filepath.Join(tempDir, "test.json")
	err = os.WriteFile(jsonFile, []byte(sampleDocument), 0644)
	require.NoError(t, err)
	return jsonFile
}

// TestCLI_PrintFile tests pretty-printing a whole file
func TestCLI_PrintFile(t *testing.T) {
	jsonFile := writeSample(t)

	cmd := exec.Command("go", "run", "../../main.go", "-p", jsonFile)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	require.NoError(t, err, "CLI command failed: %s", stderr.String())

	expected := `{
  "name": John Doe,
  "age": 30,
  "address": {
    "street": 123 Main St,
    "zip": 12345
  },
  "phones": [
    {
      "type": home,
      "number": 555-1234
    },
    {
      "type": work,
      "number": 555-5678
    }
  ],
  "active": true
}
`
	assert.Equal(t, expected, stdout.String())
}

// TestCLI_ResolveValue tests printing a single value by path
func TestCLI_ResolveValue(t *testing.T) {
	jsonFile := writeSample(t)

	cmd := exec.Command("go", "run", "../../main.go", "-V", "phones:1:number", jsonFile)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	require.NoError(t, err, "CLI command failed: %s", stderr.String())
	assert.Equal(t, "555-5678\n", stdout.String())
}

// TestCLI_ResolveFailures tests that each resolution failure exits non-zero with its own message
func TestCLI_ResolveFailures(t *testing.T) {
	jsonFile := writeSample(t)

	tests := []struct {
		path    string
		message string
	}{
		{"phones:9", "Index out of bounds"},
		{"phones:first", "Invalid array index"},
		{"address:city", "Not found"},
		{"age:0", "Not found"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			cmd := exec.Command("go", "run", "../../main.go", "--value", tt.path, jsonFile)
			var stdout, stderr bytes.Buffer
			cmd.Stdout = &stdout
			cmd.Stderr = &stderr

			err := cmd.Run()
			assert.Error(t, err, "CLI should fail for path %q", tt.path)
			assert.Contains(t, stderr.String(), tt.message)
			assert.Empty(t, stdout.String())
		})
	}
}

// TestCLI_Stdin tests reading the document from stdin
func TestCLI_Stdin(t *testing.T) {
	cmd := exec.Command("go", "run", "../../main.go", "-V", "name")
	cmd.Stdin = strings.NewReader(sampleDocument)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	require.NoError(t, err, "CLI command failed: %s", stderr.String())
	assert.Equal(t, "John Doe\n", stdout.String())
}

// TestCLI_PrintAndValueAreExclusive tests that --print and --value cannot be combined
func TestCLI_PrintAndValueAreExclusive(t *testing.T) {
	jsonFile := writeSample(t)

	cmd := exec.Command("go", "run", "../../main.go", "-p", "-V", "name", jsonFile)
	output, err := cmd.CombinedOutput()
	assert.Error(t, err)
	assert.Contains(t, string(output), "can't be used together")
}

// TestCLI_MissingFile tests the CLI with a file that does not exist
func TestCLI_MissingFile(t *testing.T) {
	cmd := exec.Command("go", "run", "../../main.go", "-p", "/no/such/file.json")
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	err := cmd.Run()
	assert.Error(t, err, "CLI should fail with a missing file")
	assert.Contains(t, stderr.String(), "not found")
}

// TestCLI_InvalidJSON tests the CLI with invalid JSON input
func TestCLI_InvalidJSON(t *testing.T) {
	cmd := exec.Command("go", "run", "../../main.go", "-p")
	cmd.Stdin = strings.NewReader(`{"name": "Invalid JSON, "age": 30}`)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	err := cmd.Run()
	assert.Error(t, err, "CLI should fail with invalid JSON")
	assert.Contains(t, stderr.String(), "JSON parsing error")
}

// TestCLI_EmptyInput tests the CLI with empty input
func TestCLI_EmptyInput(t *testing.T) {
	cmd := exec.Command("go", "run", "../../main.go", "-p")
	cmd.Stdin = strings.NewReader("")
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	err := cmd.Run()
	assert.Error(t, err, "CLI should fail with empty input")
	assert.Contains(t, stderr.String(), "empty input")
}

// TestCLI_ConfigFile tests that an explicit config file is honoured
func TestCLI_ConfigFile(t *testing.T) {
	jsonFile := writeSample(t)
	configFile := filepath.Join(filepath.Dir(jsonFile), "jsonpeek.yml")
	err := os.WriteFile(configFile, []byte("output:\n  trailing_newline: false\n"), 0644)
	require.NoError(t, err)

	cmd := exec.Command("go", "run", "../../main.go", "-c", configFile, "-V", "age", jsonFile)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err = cmd.Run()
	require.NoError(t, err, "CLI command failed: %s", stderr.String())
	assert.Equal(t, "30", stdout.String())
}

// TestCLI_Version tests the version flag
func TestCLI_Version(t *testing.T) {
	cmd := exec.Command("go", "run", "../../main.go", "-v")
	output, err := cmd.CombinedOutput()
	require.NoError(t, err)
	assert.Contains(t, string(output), "jsonpeek version")
}

// TestCLI_Help tests the help output
func TestCLI_Help(t *testing.T) {
	cmd := exec.Command("go", "run", "../../main.go", "--help")
	output, err := cmd.CombinedOutput()
	require.NoError(t, err)

	helpOutput := string(output)
	assert.Contains(t, helpOutput, "Usage:")
	assert.Contains(t, helpOutput, "-p, --print")
	assert.Contains(t, helpOutput, "-V, --value=PATH")
	assert.Contains(t, helpOutput, "-c, --config")
	assert.Contains(t, helpOutput, "-v, --version")
}
