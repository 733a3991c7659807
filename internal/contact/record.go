package contact

import (
	"fmt"
	"strings"
)

// Record is one contact: a fixed name, ordered phones and an optional
// birthday.
type Record struct {
	name     Name
	phones   []Phone
	birthday *Birthday
}

// NewRecord creates a record with no phones and no birthday.
func NewRecord(name string) (*Record, error) {
	n, err := NewName(name)
	if err != nil {
		return nil, err
	}
	return &Record{name: n}, nil
}

// Name returns the record's name.
func (r *Record) Name() Name {
	return r.name
}

// Phones returns a copy of the phone list.
func (r *Record) Phones() []Phone {
	out := make([]Phone, len(r.phones))
	copy(out, r.phones)
	return out
}

// Birthday returns the birthday and whether one is set.
func (r *Record) Birthday() (Birthday, bool) {
	if r.birthday == nil {
		return Birthday{}, false
	}
	return *r.birthday, true
}

// AddPhone appends a phone. Duplicates are kept.
func (r *Record) AddPhone(phone string) error {
	p, err := NewPhone(phone)
	if err != nil {
		return err
	}
	r.phones = append(r.phones, p)
	return nil
}

// RemovePhone drops the first phone equal to phone. Absent phones are ignored.
func (r *Record) RemovePhone(phone string) {
	if i := r.indexOf(phone); i >= 0 {
		r.phones = append(r.phones[:i], r.phones[i+1:]...)
	}
}

// EditPhone replaces the first phone equal to current. The new value is
// validated before anything changes.
func (r *Record) EditPhone(current, phone string) error {
	i := r.indexOf(current)
	if i < 0 {
		return fmt.Errorf("edit %s: %w", current, ErrPhoneNotFound)
	}
	p, err := NewPhone(phone)
	if err != nil {
		return err
	}
	r.phones[i] = p
	return nil
}

// FindPhone returns the first phone equal to phone.
func (r *Record) FindPhone(phone string) (Phone, bool) {
	if i := r.indexOf(phone); i >= 0 {
		return r.phones[i], true
	}
	return Phone{}, false
}

// SetBirthday parses value and overwrites any previous birthday.
func (r *Record) SetBirthday(value string) error {
	b, err := NewBirthday(value)
	if err != nil {
		return err
	}
	r.birthday = &b
	return nil
}

func (r *Record) String() string {
	phones := make([]string, len(r.phones))
	for i, p := range r.phones {
		phones[i] = p.String()
	}
	return fmt.Sprintf("Contact name: %s, phones: %s", r.name, strings.Join(phones, "; "))
}

func (r *Record) indexOf(phone string) int {
	for i, p := range r.phones {
		if p.value == phone {
			return i
		}
	}
	return -1
}
