package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/zarlcorp/core/pkg/zstyle"
	"github.com/zarlcorp/zbook/internal/command"
)

const (
	consolePrompt = "Enter a command: "
	maxHistory    = 20
)

// exchange is one executed line and its reply.
type exchange struct {
	line   string
	output string
}

// consoleModel is the interactive shell view.
type consoleModel struct {
	shell   *command.Shell
	input   textinput.Model
	history []exchange
	flash   string
}

func newConsoleModel(sh *command.Shell) consoleModel {
	ti := textinput.New()
	ti.Prompt = consolePrompt
	ti.Placeholder = "help"
	ti.Focus()
	ti.CharLimit = 256
	ti.Width = 60

	return consoleModel{shell: sh, input: ti}
}

func (m consoleModel) Update(msg tea.Msg) (consoleModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, func() tea.Msg { return exitMsg{} }
		}
		if key.Matches(msg, zstyle.KeyTab) {
			return m, func() tea.Msg { return navigateMsg{view: viewContacts} }
		}
		if key.Matches(msg, zstyle.KeyEnter) {
			return m.execute()
		}

	case flashMsg:
		m.flash = ""
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m consoleModel) execute() (consoleModel, tea.Cmd) {
	line := m.input.Value()
	res := m.shell.Execute(line)

	m.history = append(m.history, exchange{line: line, output: res.Output})
	if n := len(m.history); n > maxHistory {
		m.history = m.history[n-maxHistory:]
	}
	m.input.SetValue("")

	if res.Exit {
		return m, func() tea.Msg { return exitMsg{} }
	}
	return m, nil
}

func (m consoleModel) View() string {
	var b strings.Builder
	b.WriteString("\n")

	for _, e := range m.history {
		b.WriteString("  " + zstyle.MutedText.Render(consolePrompt+e.line) + "\n")
		for _, l := range strings.Split(e.output, "\n") {
			b.WriteString("  " + l + "\n")
		}
	}

	b.WriteString("\n  " + m.input.View() + "\n\n")

	if m.flash != "" {
		b.WriteString("  " + zstyle.StatusErr.Render(m.flash) + "\n")
	} else {
		b.WriteString("\n")
	}

	return b.String()
}
