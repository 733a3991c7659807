package command

import (
	"errors"
	"fmt"
	"strings"

	"github.com/zarlcorp/zbook/internal/contact"
)

const helpText = `Commands:
  hello                          greet
  add <name> <phone>             add a contact
  change <name> <phone>          replace the primary phone
  change <name> <old> <new>      replace a specific phone
  phone <name>                   show a contact
  all                            list contacts
  add-birthday <name> <date>     set a birthday (DD.MM.YYYY)
  show-birthday <name>           show a birthday
  birthdays                      upcoming congratulations
  delete <name>                  delete a contact
  remove-phone <name> <phone>    remove a phone
  close, exit                    save and quit`

func (s *Shell) hello([]string) (string, error) {
	return "How can I help you?", nil
}

func (s *Shell) help([]string) (string, error) {
	return helpText, nil
}

func (s *Shell) exit([]string) (string, error) {
	return "Good bye!", nil
}

func (s *Shell) addContact(args []string) (string, error) {
	if len(args) < 2 {
		return "", errShape
	}
	name, phone := args[0], args[1]

	_, err := s.book.Find(name)
	if err == nil {
		return "Contact is already added.", nil
	}
	if !errors.Is(err, contact.ErrContactNotFound) {
		return "", err
	}

	r, err := contact.NewRecord(name)
	if err != nil {
		return "", err
	}
	if err := r.AddPhone(phone); err != nil {
		return "", err
	}
	s.book.Add(r)
	return "Contact added.", nil
}

// changePhone replaces the primary phone, or a specific one when both the
// old and the new number are given. A contact without phones gains one.
func (s *Shell) changePhone(args []string) (string, error) {
	if len(args) < 2 {
		return "", errShape
	}

	r, err := s.book.Find(args[0])
	if err != nil {
		return "", err
	}

	switch phones := r.Phones(); {
	case len(args) >= 3:
		err = r.EditPhone(args[1], args[2])
	case len(phones) == 0:
		err = r.AddPhone(args[1])
	default:
		err = r.EditPhone(phones[0].String(), args[1])
	}
	if err != nil {
		return "", err
	}
	return "Contact updated.", nil
}

func (s *Shell) showPhone(args []string) (string, error) {
	if len(args) < 1 {
		return "", errShape
	}
	r, err := s.book.Find(args[0])
	if err != nil {
		return "", err
	}
	return r.String(), nil
}

func (s *Shell) listAll([]string) (string, error) {
	if s.book.Len() == 0 {
		return "", fmt.Errorf("list: %w", errShape)
	}

	rows := make([][2]string, 0, s.book.Len())
	for _, r := range s.book.Records() {
		var primary string
		if phones := r.Phones(); len(phones) > 0 {
			primary = phones[0].String()
		}
		rows = append(rows, [2]string{r.Name().String(), primary})
	}
	return s.table("Full name", "Phone number", rows), nil
}

func (s *Shell) addBirthday(args []string) (string, error) {
	if len(args) < 2 {
		return "", errShape
	}
	r, err := s.book.Find(args[0])
	if err != nil {
		return "", err
	}
	if err := r.SetBirthday(args[1]); err != nil {
		return "", err
	}
	return "Birthday added.", nil
}

func (s *Shell) showBirthday(args []string) (string, error) {
	if len(args) < 1 {
		return "", errShape
	}
	r, err := s.book.Find(args[0])
	if err != nil {
		return "", err
	}
	if b, ok := r.Birthday(); ok {
		return b.String(), nil
	}
	return "Unknown", nil
}

func (s *Shell) listBirthdays([]string) (string, error) {
	upcoming := s.book.Upcoming(s.window, s.now())
	if len(upcoming) == 0 {
		return "", fmt.Errorf("birthdays: %w", errShape)
	}

	rows := make([][2]string, 0, len(upcoming))
	for _, c := range upcoming {
		rows = append(rows, [2]string{c.Date.Format(contact.DateLayout), strings.Join(c.Names, ", ")})
	}
	return s.table("Date", "Users", rows), nil
}

func (s *Shell) deleteContact(args []string) (string, error) {
	if len(args) < 1 {
		return "", errShape
	}
	if _, err := s.book.Find(args[0]); err != nil {
		return "", err
	}
	s.book.Delete(args[0])
	return "Contact deleted.", nil
}

func (s *Shell) removePhone(args []string) (string, error) {
	if len(args) < 2 {
		return "", errShape
	}
	r, err := s.book.Find(args[0])
	if err != nil {
		return "", err
	}
	r.RemovePhone(args[1])
	return "Phone removed.", nil
}
