package command

import (
	"errors"

	"github.com/zarlcorp/zbook/internal/contact"
)

// errShape marks a command invoked with the wrong arguments or with nothing
// to show. Each command maps it to its own guidance.
var errShape = errors.New("command: bad shape")

const fallbackMessage = "Something went wrong."

const notFoundMessage = "Give me an existing name, please."

// messages is the user-facing text for each domain error.
var messages = map[error]string{
	contact.ErrEmptyName:       "Give me a non-empty name, please.",
	contact.ErrInvalidPhone:    "Give me a valid phone number, please.",
	contact.ErrInvalidBirthday: "Invalid date format. Use DD.MM.YYYY",
	contact.ErrContactNotFound: notFoundMessage,
	contact.ErrPhoneNotFound:   "Give me an existing phone number, please.",
}

// errorTable lists the domain errors a command reports verbatim and the
// message shown for a shape error. Anything else gets the fallback.
type errorTable struct {
	catch []error
	shape string
}

var tables = map[Kind]errorTable{
	AddContact: {
		catch: []error{contact.ErrInvalidPhone},
		shape: "Give me a new name and a new phone, please.",
	},
	ChangePhone: {
		catch: []error{contact.ErrInvalidPhone, contact.ErrContactNotFound, contact.ErrPhoneNotFound},
		shape: "Give me an existing name and a new phone, please.",
	},
	ShowPhone: {
		catch: []error{contact.ErrContactNotFound},
		shape: notFoundMessage,
	},
	ListAll: {
		shape: "Contacts list is empty.",
	},
	AddBirthday: {
		catch: []error{contact.ErrInvalidBirthday, contact.ErrContactNotFound},
		shape: "Give me an existing name and birthday date, please.",
	},
	ShowBirthday: {
		catch: []error{contact.ErrContactNotFound},
		shape: notFoundMessage,
	},
	ListBirthdays: {
		shape: "Birthdays list is empty.",
	},
	DeleteContact: {
		catch: []error{contact.ErrContactNotFound},
		shape: notFoundMessage,
	},
	RemovePhone: {
		catch: []error{contact.ErrContactNotFound},
		shape: "Give me an existing name and a phone, please.",
	},
}

// translate picks the message for err under t. The bool is false when err
// fell through to the fallback.
func (t errorTable) translate(err error) (string, bool) {
	if errors.Is(err, errShape) && t.shape != "" {
		return t.shape, true
	}
	for _, target := range t.catch {
		if errors.Is(err, target) {
			return messages[target], true
		}
	}
	return fallbackMessage, false
}
