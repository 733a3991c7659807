package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/zarlcorp/core/pkg/zfilesystem"
	"github.com/zarlcorp/zbook/internal/command"
	"github.com/zarlcorp/zbook/internal/store"
)

var monday = time.Date(2025, time.March, 10, 9, 0, 0, 0, time.UTC)

func ephemeralSession(t *testing.T) *Session {
	t.Helper()
	sess, err := NewSession(nil, command.WithClock(func() time.Time { return monday }))
	if err != nil {
		t.Fatalf("new session: %v", err)
	}
	return sess
}

func run(t *testing.T, sess *Session, lines ...string) {
	t.Helper()
	for _, l := range lines {
		if res := sess.Shell.Execute(l); strings.HasPrefix(res.Output, "Give me") {
			t.Fatalf("%q: %s", l, res.Output)
		}
	}
}

func TestIsFirstRun(t *testing.T) {
	dir := t.TempDir()
	if !IsFirstRun(dir) {
		t.Error("expected first run for empty dir")
	}

	os.WriteFile(dir+"/salt", []byte("test"), 0o600)
	if IsFirstRun(dir) {
		t.Error("expected not first run after salt exists")
	}
}

func TestReplTranscript(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sess := ephemeralSession(t)
	in := strings.NewReader("hello\nadd Alice 0501234567\nphone Alice\nbogus\nexit\nall\n")
	var out bytes.Buffer

	if err := CmdRepl(ctx, sess, in, &out); err != nil {
		t.Fatalf("repl: %v", err)
	}

	want := strings.Join([]string{
		banner,
		prompt + "How can I help you?",
		prompt + "Contact added.",
		prompt + "Contact name: Alice, phones: 0501234567",
		prompt + "Invalid command.",
		prompt + "Good bye!",
		"",
	}, "\n")
	if diff := cmp.Diff(want, out.String()); diff != "" {
		t.Errorf("transcript mismatch (-want +got):\n%s", diff)
	}
}

func TestReplStopsAtEOF(t *testing.T) {
	sess := ephemeralSession(t)
	var out bytes.Buffer

	err := CmdRepl(context.Background(), sess, strings.NewReader("add Bob 0991234567\n"), &out)
	if err != nil {
		t.Fatalf("repl: %v", err)
	}
	if sess.Shell.Book().Len() != 1 {
		t.Errorf("Len() = %d, want 1", sess.Shell.Book().Len())
	}
	if !strings.HasSuffix(out.String(), prompt+"\n") {
		t.Errorf("output should end with a bare prompt, got %q", out.String())
	}
}

func TestReplStopsOnCancel(t *testing.T) {
	pr, pw := io.Pipe()
	defer pw.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var out bytes.Buffer
	done := make(chan error, 1)
	go func() { done <- CmdRepl(ctx, ephemeralSession(t), pr, &out) }()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("repl: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("repl did not stop after cancel")
	}
}

func TestSessionPersists(t *testing.T) {
	fs := zfilesystem.NewMemFS()

	st, err := store.Open(fs, "testpass")
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	sess, err := NewSession(st)
	if err != nil {
		t.Fatalf("new session: %v", err)
	}
	var out bytes.Buffer
	if err := CmdExec(sess, []string{"add", "Alice", "0501234567"}, &out); err != nil {
		t.Fatalf("exec: %v", err)
	}
	if got := out.String(); got != "Contact added.\n" {
		t.Errorf("exec output = %q", got)
	}
	sess.Close()

	st, err = store.Open(fs, "testpass")
	if err != nil {
		t.Fatalf("reopen store: %v", err)
	}
	sess, err = NewSession(st)
	if err != nil {
		t.Fatalf("new session: %v", err)
	}
	defer sess.Close()

	if _, err := sess.Shell.Book().Find("Alice"); err != nil {
		t.Errorf("contact not persisted: %v", err)
	}
}

func TestEphemeralSaveIsNoop(t *testing.T) {
	sess := ephemeralSession(t)
	defer sess.Close()
	if err := sess.Save(); err != nil {
		t.Errorf("Save() = %v, want nil", err)
	}
}

func TestCmdList(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		var out bytes.Buffer
		if err := CmdList(ephemeralSession(t), false, &out); err != nil {
			t.Fatal(err)
		}
		if got := out.String(); got != "no saved contacts\n" {
			t.Errorf("got %q", got)
		}
	})

	t.Run("text", func(t *testing.T) {
		sess := ephemeralSession(t)
		run(t, sess, "add Alice 0501234567", "add-birthday Alice 15.03.1990", "add Bob 0991234567")

		var out bytes.Buffer
		if err := CmdList(sess, false, &out); err != nil {
			t.Fatal(err)
		}
		lines := strings.Split(strings.TrimSpace(out.String()), "\n")
		if len(lines) != 2 {
			t.Fatalf("got %d lines, want 2:\n%s", len(lines), out.String())
		}
		if !strings.Contains(lines[0], "Alice") || !strings.Contains(lines[0], "15.03.1990") {
			t.Errorf("first line = %q", lines[0])
		}
		if !strings.Contains(lines[1], "Bob") || !strings.Contains(lines[1], " - ") {
			t.Errorf("second line = %q", lines[1])
		}
	})

	t.Run("json", func(t *testing.T) {
		sess := ephemeralSession(t)
		run(t, sess, "add Alice 0501234567", "add-birthday Alice 15.03.1990", "add Bob 0991234567")

		var out bytes.Buffer
		if err := CmdList(sess, true, &out); err != nil {
			t.Fatal(err)
		}

		var got []contactJSON
		if err := json.Unmarshal(out.Bytes(), &got); err != nil {
			t.Fatalf("unmarshal: %v", err)
		}
		want := []contactJSON{
			{Name: "Alice", Phones: []string{"0501234567"}, Birthday: "15.03.1990"},
			{Name: "Bob", Phones: []string{"0991234567"}},
		}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("mismatch (-want +got):\n%s", diff)
		}
	})
}

func TestCmdBirthdays(t *testing.T) {
	sess := ephemeralSession(t)
	run(t, sess,
		"add Alice 0501234567", "add-birthday Alice 15.03.1990",
		"add Bob 0991234567", "add-birthday Bob 16.03.1985",
		"add Carol 0631234567", "add-birthday Carol 01.05.1990",
	)

	t.Run("text", func(t *testing.T) {
		var out bytes.Buffer
		if err := CmdBirthdays(sess, 7, monday, false, &out); err != nil {
			t.Fatal(err)
		}
		want := "  17.03.2025  Alice, Bob\n"
		if got := out.String(); got != want {
			t.Errorf("got %q, want %q", got, want)
		}
	})

	t.Run("json", func(t *testing.T) {
		var out bytes.Buffer
		if err := CmdBirthdays(sess, 7, monday, true, &out); err != nil {
			t.Fatal(err)
		}
		var got []congratulationJSON
		if err := json.Unmarshal(out.Bytes(), &got); err != nil {
			t.Fatalf("unmarshal: %v", err)
		}
		want := []congratulationJSON{{Date: "17.03.2025", Names: []string{"Alice", "Bob"}}}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("none", func(t *testing.T) {
		var out bytes.Buffer
		if err := CmdBirthdays(sess, 1, monday, false, &out); err != nil {
			t.Fatal(err)
		}
		if got := out.String(); got != "no upcoming birthdays\n" {
			t.Errorf("got %q", got)
		}
	})
}
