// Package tui implements the root Bubble Tea model for zbook.
package tui

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/zarlcorp/core/pkg/zfilesystem"
	"github.com/zarlcorp/core/pkg/zstyle"
	"github.com/zarlcorp/zbook/internal/command"
	"github.com/zarlcorp/zbook/internal/store"
)

var accent = lipgloss.Color("#7AA2F7")

type viewID int

const (
	viewPassword viewID = iota
	viewShell
	viewContacts
)

// navigateMsg tells the root model to switch views.
type navigateMsg struct {
	view viewID
}

// exitMsg asks the root to save and quit.
type exitMsg struct{}

// flashMsg clears transient status lines.
type flashMsg struct{}

func clearFlashAfter() tea.Cmd {
	return tea.Tick(2*time.Second, func(time.Time) tea.Msg {
		return flashMsg{}
	})
}

// Model is the root TUI model.
type Model struct {
	version  string
	dataDir  string
	firstRun bool
	opts     []command.Option

	store *store.Store
	shell *command.Shell

	active   viewID
	password passwordModel
	console  consoleModel
	contacts contactsModel

	width  int
	height int
}

// New creates a model that unlocks the store in dataDir before showing the
// shell.
func New(version, dataDir string, firstRun bool, opts ...command.Option) Model {
	return Model{
		version:  version,
		dataDir:  dataDir,
		firstRun: firstRun,
		opts:     opts,
		active:   viewPassword,
		password: newPasswordModel(version, firstRun),
	}
}

// NewEphemeral creates a model over an empty in-memory book. Nothing is
// saved.
func NewEphemeral(version string, opts ...command.Option) Model {
	sh := command.New(nil, opts...)
	return Model{
		version: version,
		opts:    opts,
		shell:   sh,
		active:  viewShell,
		console: newConsoleModel(sh),
	}
}

func (m Model) Init() tea.Cmd {
	if m.active == viewPassword {
		return m.password.Init()
	}
	return textinput.Blink
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case passwordSubmitMsg:
		return m.openStore(msg.password)

	case navigateMsg:
		return m.navigate(msg.view)

	case deleteContactMsg:
		return m.handleDelete(msg.name)

	case exitMsg:
		return m.handleExit()
	}

	return m.updateActive(msg)
}

func (m Model) View() string {
	if m.active == viewPassword {
		return m.password.View()
	}

	var content string
	switch m.active {
	case viewShell:
		content = m.console.View()
	case viewContacts:
		content = m.contacts.View()
	}

	header := zstyle.RenderHeader("zbook", viewTitle(m.active), accent)
	sep := zstyle.RenderSeparator(m.width)
	footer := zstyle.RenderFooter(helpFor(m.active))

	return "\n" + header + "\n" + sep + "\n" + content + "\n" + footer + "\n"
}

func viewTitle(id viewID) string {
	switch id {
	case viewShell:
		return "Assistant"
	case viewContacts:
		return "Contacts"
	}
	return ""
}

func helpFor(id viewID) []zstyle.HelpPair {
	switch id {
	case viewShell:
		return []zstyle.HelpPair{
			{Key: "enter", Desc: "run"},
			{Key: "tab", Desc: "contacts"},
			{Key: "ctrl+c", Desc: "save and quit"},
		}
	case viewContacts:
		return []zstyle.HelpPair{
			{Key: "j/k", Desc: "navigate"},
			{Key: "c", Desc: "copy"},
			{Key: "d", Desc: "delete"},
			{Key: "esc", Desc: "back"},
			{Key: "q", Desc: "quit"},
		}
	}
	return nil
}

func (m Model) updateActive(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch m.active {
	case viewPassword:
		m.password, cmd = m.password.Update(msg)
	case viewShell:
		m.console, cmd = m.console.Update(msg)
	case viewContacts:
		m.contacts, cmd = m.contacts.Update(msg)
	}

	return m, cmd
}

func (m Model) openStore(password string) (tea.Model, tea.Cmd) {
	if err := os.MkdirAll(m.dataDir, 0o700); err != nil {
		m.password, _ = m.password.Update(passwordErrMsg{
			err: fmt.Errorf("create data dir: %w", err),
		})
		return m, nil
	}

	s, err := store.Open(zfilesystem.NewOSFileSystem(m.dataDir), password)
	if err != nil {
		m.password, _ = m.password.Update(passwordErrMsg{err: err})
		return m, nil
	}

	book, err := s.Load()
	if err != nil {
		s.Close()
		m.password, _ = m.password.Update(passwordErrMsg{err: err})
		return m, nil
	}

	m.store = s
	m.shell = command.New(book, m.opts...)
	m.console = newConsoleModel(m.shell)
	m.active = viewShell
	return m, textinput.Blink
}

func (m Model) navigate(view viewID) (tea.Model, tea.Cmd) {
	switch view {
	case viewShell:
		m.active = viewShell
		return m, tea.Batch(m.console.input.Focus(), tea.ClearScreen)

	case viewContacts:
		m.contacts = newContactsModel(m.shell.Book().Records())
		m.active = viewContacts
		return m, tea.ClearScreen
	}

	return m, nil
}

func (m Model) handleDelete(name string) (tea.Model, tea.Cmd) {
	out := m.shell.Run(command.DeleteContact, []string{name})

	cursor := m.contacts.cursor
	m.contacts = newContactsModel(m.shell.Book().Records())
	m.contacts.cursor = min(cursor, max(len(m.contacts.records)-1, 0))
	m.contacts.flash = out
	return m, clearFlashAfter()
}

func (m Model) handleExit() (tea.Model, tea.Cmd) {
	if err := m.save(); err != nil {
		m.console.flash = "save: " + err.Error()
		m.active = viewShell
		return m, clearFlashAfter()
	}
	return m, tea.Quit
}

func (m Model) save() error {
	if m.store == nil || m.shell == nil {
		return nil
	}
	return m.store.Save(m.shell.Book())
}

// Close releases the store. Call after the program exits.
func (m Model) Close() {
	if m.store != nil {
		m.store.Close()
	}
}
