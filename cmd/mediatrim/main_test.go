package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func executeCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCommand()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestRunExitCodes(t *testing.T) {
	oldArgs := os.Args
	defer func() { os.Args = oldArgs }()

	os.Args = []string{"mediatrim", "--help"}
	if code := run(); code != 0 {
		t.Fatalf("help exited %d", code)
	}

	os.Args = []string{"mediatrim", "no-such-command"}
	if code := run(); code != 1 {
		t.Fatalf("unknown command exited %d", code)
	}
}

func TestConfigInitWritesSample(t *testing.T) {
	target := filepath.Join(t.TempDir(), "mediatrim", "config.toml")

	output, err := executeCommand(t, "config", "init", "--path", target)
	if err != nil {
		t.Fatalf("config init: %v", err)
	}
	if !strings.Contains(output, target) {
		t.Fatalf("output does not mention target: %s", output)
	}

	data, err := os.ReadFile(target)
	if err != nil {
		t.Fatalf("sample not written: %v", err)
	}
	if !strings.Contains(string(data), "[processing]") {
		t.Fatal("sample missing processing section")
	}
}

func TestConfigInitRefusesOverwrite(t *testing.T) {
	target := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(target, []byte("# existing"), 0o644); err != nil {
		t.Fatalf("seed config: %v", err)
	}

	_, err := executeCommand(t, "config", "init", "--path", target)
	if err == nil || !strings.Contains(err.Error(), "already exists") {
		t.Fatalf("expected overwrite refusal, got %v", err)
	}

	if _, err := executeCommand(t, "config", "init", "--path", target, "--overwrite"); err != nil {
		t.Fatalf("overwrite failed: %v", err)
	}
}

func TestRunRequiresRules(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	_, err := executeCommand(t, "run", t.TempDir())
	if err == nil || !strings.Contains(err.Error(), "no language rules") {
		t.Fatalf("expected missing rules error, got %v", err)
	}
}

func TestConfigShowListsSettings(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	output, err := executeCommand(t, "config", "show")
	if err != nil {
		t.Fatalf("config show: %v", err)
	}
	for _, want := range []string{"processing.batch_size", "audio.process", "logging.format"} {
		if !strings.Contains(output, want) {
			t.Fatalf("config show missing %q:\n%s", want, output)
		}
	}
}
