package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// runCmd executes the command tree with args against a scratch config and
// data dir.
func runCmd(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()

	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))
	t.Setenv("ZBOOK_DATA_DIR", filepath.Join(dir, "data"))
	t.Setenv("ZBOOK_LOG_FILE", os.DevNull)
	t.Setenv("ZBOOK_BIRTHDAY_WINDOW", "")

	root := newRootCmd(&state{})
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(args)

	err := root.Execute()
	return out.String(), err
}

func TestVersion(t *testing.T) {
	out, err := runCmd(t, "", "version")
	if err != nil {
		t.Fatalf("version: %v", err)
	}
	if want := "zbook " + version + "\n"; out != want {
		t.Errorf("output = %q, want %q", out, want)
	}
}

func TestExecEphemeral(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"hello", []string{"hello"}, "How can I help you?\n"},
		{"add", []string{"add", "Alice", "0501234567"}, "Contact added.\n"},
		{"bad phone", []string{"add", "Alice", "12"}, "Give me a valid phone number, please.\n"},
		{"unknown", []string{"frobnicate"}, "Invalid command.\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := append([]string{"--ephemeral", "exec"}, tt.args...)
			out, err := runCmd(t, "", args...)
			if err != nil {
				t.Fatalf("exec: %v", err)
			}
			if out != tt.want {
				t.Errorf("output = %q, want %q", out, tt.want)
			}
		})
	}
}

func TestExecRequiresCommand(t *testing.T) {
	if _, err := runCmd(t, "", "--ephemeral", "exec"); err == nil {
		t.Fatal("expected error without a command")
	}
}

func TestReplEphemeral(t *testing.T) {
	out, err := runCmd(t, "add Alice 0501234567\nphone Alice\nexit\n", "--ephemeral", "repl")
	if err != nil {
		t.Fatalf("repl: %v", err)
	}

	for _, want := range []string{
		"Welcome to the assistant bot!",
		"Enter a command: Contact added.",
		"Contact name: Alice, phones: 0501234567",
		"Good bye!",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestListEphemeralJSON(t *testing.T) {
	out, err := runCmd(t, "", "--ephemeral", "list", "--json")
	if err != nil {
		t.Fatalf("list: %v", err)
	}

	var got []map[string]any
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("unmarshal %q: %v", out, err)
	}
	if len(got) != 0 {
		t.Errorf("got %d contacts, want 0", len(got))
	}
}

func TestBirthdaysRejectsNegativeDays(t *testing.T) {
	if _, err := runCmd(t, "", "--ephemeral", "birthdays", "--days", "-1"); err == nil {
		t.Fatal("expected error for negative --days")
	}
}

func TestBadConfigFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("birthday_window: [nope"), 0o600); err != nil {
		t.Fatal(err)
	}

	if _, err := runCmd(t, "", "--config", path, "--ephemeral", "list"); err == nil {
		t.Fatal("expected error for malformed config")
	}
}

func TestUnknownSubcommand(t *testing.T) {
	if _, err := runCmd(t, "", "frobnicate"); err == nil {
		t.Fatal("expected error for unknown subcommand")
	}
}
