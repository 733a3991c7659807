// Package cli implements zbook's command-line subcommands.
package cli

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"syscall"
	"time"

	"github.com/zarlcorp/core/pkg/zfilesystem"
	"github.com/zarlcorp/zbook/internal/command"
	"github.com/zarlcorp/zbook/internal/contact"
	"github.com/zarlcorp/zbook/internal/store"
	"golang.org/x/term"
)

const (
	banner = "Welcome to the assistant bot!"
	prompt = "Enter a command: "
)

// ReadPassword prompts for a password on w and reads it without echo.
func ReadPassword(prompt string, w io.Writer) (string, error) {
	fmt.Fprint(w, prompt)
	b, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Fprintln(w)
	if err != nil {
		return "", fmt.Errorf("read password: %w", err)
	}
	return string(b), nil
}

// ReadNewPassword prompts for a new password with confirmation.
func ReadNewPassword(w io.Writer) (string, error) {
	pass, err := ReadPassword("master password: ", w)
	if err != nil {
		return "", err
	}
	confirm, err := ReadPassword("confirm password: ", w)
	if err != nil {
		return "", err
	}
	if pass != confirm {
		return "", fmt.Errorf("passwords do not match")
	}
	return pass, nil
}

// IsFirstRun checks whether the store has been initialized.
func IsFirstRun(dir string) bool {
	_, err := os.Stat(dir + "/salt")
	return err != nil
}

// OpenStore prompts for a password and opens the store in dir.
func OpenStore(dir string) (*store.Store, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}

	var pass string
	var err error
	if IsFirstRun(dir) {
		pass, err = ReadNewPassword(os.Stderr)
	} else {
		pass, err = ReadPassword("master password: ", os.Stderr)
	}
	if err != nil {
		return nil, err
	}

	return store.Open(zfilesystem.NewOSFileSystem(dir), pass)
}

// Session is a shell bound to an optional store. Without a store nothing
// survives the process.
type Session struct {
	Shell *command.Shell
	store *store.Store
}

// NewSession loads the book from st, or starts empty when st is nil.
func NewSession(st *store.Store, opts ...command.Option) (*Session, error) {
	book := contact.NewAddressBook()
	if st != nil {
		b, err := st.Load()
		if err != nil {
			return nil, err
		}
		book = b
	}
	return &Session{Shell: command.New(book, opts...), store: st}, nil
}

// Save writes the book to the store, if any.
func (s *Session) Save() error {
	if s.store == nil {
		return nil
	}
	return s.store.Save(s.Shell.Book())
}

// Close releases the store.
func (s *Session) Close() {
	if s.store != nil {
		s.store.Close()
	}
}

// CmdRepl reads commands from in until close/exit, EOF or cancellation,
// then saves.
func CmdRepl(ctx context.Context, sess *Session, in io.Reader, out io.Writer) error {
	fmt.Fprintln(out, banner)

	lines := make(chan string)
	go func() {
		defer close(lines)
		sc := bufio.NewScanner(in)
		for sc.Scan() {
			select {
			case lines <- sc.Text():
			case <-ctx.Done():
				return
			}
		}
	}()

	for {
		fmt.Fprint(out, prompt)

		var line string
		var ok bool
		select {
		case <-ctx.Done():
			fmt.Fprintln(out)
			return sess.Save()
		case line, ok = <-lines:
		}
		if !ok {
			fmt.Fprintln(out)
			return sess.Save()
		}

		res := sess.Shell.Execute(line)
		fmt.Fprintln(out, res.Output)
		if res.Exit {
			return sess.Save()
		}
	}
}

// CmdExec runs a single command line and saves the result.
func CmdExec(sess *Session, args []string, out io.Writer) error {
	res := sess.Shell.Execute(strings.Join(args, " "))
	fmt.Fprintln(out, res.Output)
	return sess.Save()
}

type contactJSON struct {
	Name     string   `json:"name"`
	Phones   []string `json:"phones"`
	Birthday string   `json:"birthday,omitempty"`
}

// CmdList prints all contacts in insertion order.
func CmdList(sess *Session, asJSON bool, out io.Writer) error {
	records := sess.Shell.Book().Records()

	if asJSON {
		list := make([]contactJSON, 0, len(records))
		for _, r := range records {
			c := contactJSON{Name: r.Name().String(), Phones: []string{}}
			for _, p := range r.Phones() {
				c.Phones = append(c.Phones, p.String())
			}
			if b, ok := r.Birthday(); ok {
				c.Birthday = b.String()
			}
			list = append(list, c)
		}
		return printJSON(out, list)
	}

	if len(records) == 0 {
		fmt.Fprintln(out, "no saved contacts")
		return nil
	}

	for _, r := range records {
		birthday := "-"
		if b, ok := r.Birthday(); ok {
			birthday = b.String()
		}
		phones := make([]string, 0, len(r.Phones()))
		for _, p := range r.Phones() {
			phones = append(phones, p.String())
		}
		fmt.Fprintf(out, "  %-20s %-10s %s\n", r.Name(), birthday, strings.Join(phones, ", "))
	}
	return nil
}

type congratulationJSON struct {
	Date  string   `json:"date"`
	Names []string `json:"names"`
}

// CmdBirthdays prints congratulation dates within days of now.
func CmdBirthdays(sess *Session, days int, now time.Time, asJSON bool, out io.Writer) error {
	upcoming := sess.Shell.Book().Upcoming(days, now)

	if asJSON {
		list := make([]congratulationJSON, 0, len(upcoming))
		for _, c := range upcoming {
			list = append(list, congratulationJSON{Date: c.Date.Format(contact.DateLayout), Names: c.Names})
		}
		return printJSON(out, list)
	}

	if len(upcoming) == 0 {
		fmt.Fprintln(out, "no upcoming birthdays")
		return nil
	}

	for _, c := range upcoming {
		fmt.Fprintf(out, "  %s  %s\n", c.Date.Format(contact.DateLayout), strings.Join(c.Names, ", "))
	}
	return nil
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode json: %w", err)
	}
	return nil
}
