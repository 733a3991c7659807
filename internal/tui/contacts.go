package tui

import (
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/zarlcorp/core/pkg/zstyle"
	"github.com/zarlcorp/zbook/internal/contact"
)

// contactsModel browses the address book.
type contactsModel struct {
	records []*contact.Record
	cursor  int
	flash   string
}

// deleteContactMsg requests deletion of a contact by name.
type deleteContactMsg struct {
	name string
}

func newContactsModel(records []*contact.Record) contactsModel {
	return contactsModel{records: records}
}

func (m contactsModel) Update(msg tea.Msg) (contactsModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case flashMsg:
		m.flash = ""
		return m, nil
	}

	return m, nil
}

func (m contactsModel) handleKey(msg tea.KeyMsg) (contactsModel, tea.Cmd) {
	if key.Matches(msg, zstyle.KeyQuit) {
		return m, func() tea.Msg { return exitMsg{} }
	}

	if key.Matches(msg, zstyle.KeyBack) || key.Matches(msg, zstyle.KeyTab) {
		return m, func() tea.Msg { return navigateMsg{view: viewShell} }
	}

	if len(m.records) == 0 {
		return m, nil
	}

	if key.Matches(msg, zstyle.KeyUp) {
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil
	}

	if key.Matches(msg, zstyle.KeyDown) {
		if m.cursor < len(m.records)-1 {
			m.cursor++
		}
		return m, nil
	}

	if msg.String() == "c" {
		m.flash = copyRecord(m.records[m.cursor])
		return m, clearFlashAfter()
	}

	if msg.String() == "d" {
		name := m.records[m.cursor].Name().String()
		return m, func() tea.Msg { return deleteContactMsg{name: name} }
	}

	return m, nil
}

func (m contactsModel) View() string {
	accentStyle := lipgloss.NewStyle().Foreground(accent).Bold(true)

	s := "\n"

	if len(m.records) == 0 {
		s += "  " + zstyle.MutedText.Render("no saved contacts") + "\n\n"
		s += m.flashLine()
		return s
	}

	for i, r := range m.records {
		birthday := "-"
		if b, ok := r.Birthday(); ok {
			birthday = b.String()
		}

		phones := make([]string, 0, len(r.Phones()))
		for _, p := range r.Phones() {
			phones = append(phones, p.String())
		}

		line := fmt.Sprintf("%-20s %-10s %s", truncate(r.Name().String(), 20), birthday,
			zstyle.MutedText.Render(strings.Join(phones, ", ")))

		if i == m.cursor {
			s += "  " + accentStyle.Render("▸") + " " + line + "\n"
		} else {
			s += "    " + line + "\n"
		}
	}

	s += "\n" + m.flashLine()
	return s
}

// copyRecord puts the record's summary on the clipboard and returns the
// status to flash.
func copyRecord(r *contact.Record) string {
	if err := clipboard.WriteAll(r.String()); err != nil {
		return "copy: " + err.Error()
	}
	return "copied"
}

// flashLine always reserves a line so the layout does not shift.
func (m contactsModel) flashLine() string {
	if m.flash == "" {
		return "\n"
	}
	return "  " + zstyle.StatusOK.Render(m.flash) + "\n"
}

func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-1]) + "…"
}
