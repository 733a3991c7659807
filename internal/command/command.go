// Package command turns text lines into address book operations. Every
// command returns a display string; failures are translated into
// command-specific guidance instead of being returned as errors.
package command

import (
	"strings"
)

// Kind identifies a command independent of the word used to invoke it.
type Kind int

const (
	Unknown Kind = iota
	Hello
	AddContact
	ChangePhone
	ShowPhone
	ListAll
	AddBirthday
	ShowBirthday
	ListBirthdays
	DeleteContact
	RemovePhone
	Help
	Exit
)

var kindNames = map[Kind]string{
	Unknown:       "unknown",
	Hello:         "hello",
	AddContact:    "add-contact",
	ChangePhone:   "change-phone",
	ShowPhone:     "show-phone",
	ListAll:       "list-all",
	AddBirthday:   "add-birthday",
	ShowBirthday:  "show-birthday",
	ListBirthdays: "list-birthdays",
	DeleteContact: "delete-contact",
	RemovePhone:   "remove-phone",
	Help:          "help",
	Exit:          "exit",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "unknown"
}

// words maps what the user types to a command kind.
var words = map[string]Kind{
	"hello":         Hello,
	"add":           AddContact,
	"change":        ChangePhone,
	"phone":         ShowPhone,
	"all":           ListAll,
	"add-birthday":  AddBirthday,
	"show-birthday": ShowBirthday,
	"birthdays":     ListBirthdays,
	"delete":        DeleteContact,
	"remove-phone":  RemovePhone,
	"help":          Help,
	"close":         Exit,
	"exit":          Exit,
}

// Lookup resolves a command word. Unrecognised words return Unknown.
func Lookup(word string) Kind {
	if k, ok := words[strings.ToLower(strings.TrimSpace(word))]; ok {
		return k
	}
	return Unknown
}

// Parse splits a line on whitespace into a case-folded command word and its
// arguments. A blank line yields an empty command.
func Parse(line string) (string, []string) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return "", nil
	}
	return strings.ToLower(fields[0]), fields[1:]
}
