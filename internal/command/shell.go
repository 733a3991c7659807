package command

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/zarlcorp/zbook/internal/contact"
)

const invalidCommand = "Invalid command."

// TableFunc renders a two-column table with a header row.
type TableFunc func(left, right string, rows [][2]string) string

// Result is the outcome of one line.
type Result struct {
	Output string
	Exit   bool
}

// Shell executes command lines against an address book. Each command runs
// under one lock, so validation and mutation are never interleaved.
type Shell struct {
	mu     sync.Mutex
	book   *contact.AddressBook
	log    *slog.Logger
	now    func() time.Time
	window int
	table  TableFunc
}

// Option configures a Shell.
type Option func(*Shell)

// WithLogger sets the logger. The default discards.
func WithLogger(l *slog.Logger) Option {
	return func(s *Shell) { s.log = l }
}

// WithClock sets the source of "today" for birthday queries.
func WithClock(now func() time.Time) Option {
	return func(s *Shell) { s.now = now }
}

// WithWindow sets the birthday look-ahead in days.
func WithWindow(days int) Option {
	return func(s *Shell) { s.window = days }
}

// WithTable sets the renderer used by the listing commands.
func WithTable(fn TableFunc) Option {
	return func(s *Shell) { s.table = fn }
}

// New creates a shell over book. A nil book starts empty.
func New(book *contact.AddressBook, opts ...Option) *Shell {
	if book == nil {
		book = contact.NewAddressBook()
	}
	s := &Shell{
		book:   book,
		log:    slog.New(slog.NewTextHandler(io.Discard, nil)),
		now:    time.Now,
		window: contact.DefaultWindow,
		table:  plainTable,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Book returns the underlying address book. Callers must not mutate it
// while commands are running.
func (s *Shell) Book() *contact.AddressBook {
	return s.book
}

// Execute parses and runs one line.
func (s *Shell) Execute(line string) Result {
	word, args := Parse(line)
	kind := Lookup(word)
	if kind == Unknown {
		s.log.Debug("unknown command", "word", word)
		return Result{Output: invalidCommand}
	}
	return Result{Output: s.Run(kind, args), Exit: kind == Exit}
}

// Run executes a command of the given kind and always returns a message.
func (s *Shell) Run(kind Kind, args []string) string {
	h, ok := s.handlers()[kind]
	if !ok {
		return invalidCommand
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.log.Debug("command", "kind", kind, "args", len(args))
	return s.guard(kind, h, args)
}

type handler func(args []string) (string, error)

// guard runs h and converts any failure, panics included, using the
// command's error table.
func (s *Shell) guard(kind Kind, h handler, args []string) (out string) {
	defer func() {
		if v := recover(); v != nil {
			s.log.Error("command panicked", "kind", kind, "recovered", v)
			out = fallbackMessage
		}
	}()

	res, err := h(args)
	if err == nil {
		return res
	}

	msg, known := tables[kind].translate(err)
	if !known {
		s.log.Warn("command failed", "kind", kind, "err", err)
	}
	return msg
}

func (s *Shell) handlers() map[Kind]handler {
	return map[Kind]handler{
		Hello:         s.hello,
		AddContact:    s.addContact,
		ChangePhone:   s.changePhone,
		ShowPhone:     s.showPhone,
		ListAll:       s.listAll,
		AddBirthday:   s.addBirthday,
		ShowBirthday:  s.showBirthday,
		ListBirthdays: s.listBirthdays,
		DeleteContact: s.deleteContact,
		RemovePhone:   s.removePhone,
		Help:          s.help,
		Exit:          s.exit,
	}
}

// plainTable renders rows as "left: right" lines under a header.
func plainTable(left, right string, rows [][2]string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s: %s", left, right)
	for _, r := range rows {
		fmt.Fprintf(&b, "\n%s: %s", r[0], r[1])
	}
	return b.String()
}
