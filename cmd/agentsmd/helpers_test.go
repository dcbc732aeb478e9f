package main

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const validPolicy = `# Example

## Identity
- site: example.com
- contact: agents@example.com
- spec-version: 1.0.0

## Trust Requirements
- minimum-trust-level: 2
- authentication: required

## Allowed Actions
- submit-forms: yes
`

// resetFlags restores every command flag to its default so tests do not leak
// state through the package-level flag variables.
func resetFlags() {
	cfgFile = "agentsmd.yaml"
	verbose = false

	lintFlags.dir = ""
	lintFlags.strict = false
	lintFlags.format = "text"
	lintFlags.watch = false

	fetchFlags.insecure = false
	fetchFlags.timeout = 0
	fetchFlags.format = "text"
	fetchFlags.record = false

	historyFlags.limit = 20
	historyFlags.format = "text"

	monitorFlags.once = false
	monitorFlags.format = "text"
}

// executeCommand runs the root command with args and returns stdout.
func executeCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetFlags()

	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})

	err := rootCmd.ExecuteContext(context.Background())
	return stdout.String(), err
}

func writeTempFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

// writeConfig writes a config that keeps history in dir and disables HTTPS
// enforcement so httptest servers can be used.
func writeConfig(t *testing.T, dir string, sites ...string) string {
	t.Helper()

	var b strings.Builder
	b.WriteString("fetch:\n  enforce_https: false\n  timeout: 2s\n")
	if len(sites) > 0 {
		b.WriteString("monitor:\n  schedule: \"@every 1h\"\n  requests_per_second: 100\n  burst: 10\n  sites:\n")
		for _, site := range sites {
			fmt.Fprintf(&b, "    - %q\n", site)
		}
	}
	fmt.Fprintf(&b, "history:\n  backend: sqlite\n  sqlite:\n    path: %q\n", filepath.Join(dir, "history.db"))
	b.WriteString("telemetry:\n  logging:\n    level: error\n")

	return writeTempFile(t, dir, "agentsmd.yaml", b.String())
}
