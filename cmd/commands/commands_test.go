package commands

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestRunRender_Home(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	if err := runRender("does-not-exist.toml", "home", &buf); err != nil {
		t.Fatalf("runRender: %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "Welcome to my portfolio !") {
		t.Error("rendered output missing the home title")
	}
	if strings.Contains(out, "<div") {
		t.Error("raw markup leaked into terminal output")
	}
}

func TestRunRender_UnknownPage(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	err := runRender("does-not-exist.toml", "nope", &buf)
	if err == nil {
		t.Fatal("expected error for unknown page")
	}
	if !strings.Contains(err.Error(), "nope") || !strings.Contains(err.Error(), "home") {
		t.Errorf("error should name the page and list the available ones: %v", err)
	}
}

func TestRunConfig_PrintsResolvedValues(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[server]\nport = 9000\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if err := runConfig(path, &buf); err != nil {
		t.Fatalf("runConfig: %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "port = 9000") {
		t.Errorf("file value not reflected:\n%s", out)
	}
	// Defaults for untouched sections still show up.
	if !strings.Contains(out, `primaryColor = "#FF4B4B"`) {
		t.Errorf("default theme missing:\n%s", out)
	}
}
