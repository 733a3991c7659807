// Package contact holds the address book domain: value types, records and
// the upcoming-birthday query.
package contact

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// DateLayout is the only accepted birthday format (DD.MM.YYYY).
const DateLayout = "02.01.2006"

// Domain errors. Callers match them with errors.Is.
var (
	ErrEmptyName       = errors.New("empty name")
	ErrInvalidPhone    = errors.New("invalid phone")
	ErrInvalidBirthday = errors.New("invalid birthday")
	ErrContactNotFound = errors.New("contact not found")
	ErrPhoneNotFound   = errors.New("phone not found")
)

// phoneRule accepts exactly ten ASCII digits.
const phoneRule = "len=10,number"

var validate = validator.New()

// Name is the identity key of a record.
type Name struct {
	value string
}

// NewName rejects empty and whitespace-only names.
func NewName(s string) (Name, error) {
	if strings.TrimSpace(s) == "" {
		return Name{}, ErrEmptyName
	}
	return Name{value: s}, nil
}

func (n Name) String() string {
	return n.value
}

// Phone is a ten digit phone number.
type Phone struct {
	value string
}

// NewPhone validates s and wraps it.
func NewPhone(s string) (Phone, error) {
	if err := validate.Var(s, phoneRule); err != nil {
		return Phone{}, fmt.Errorf("%w: %q", ErrInvalidPhone, s)
	}
	return Phone{value: s}, nil
}

func (p Phone) String() string {
	return p.value
}

// Birthday is a calendar date without a time of day.
type Birthday struct {
	date time.Time
}

// NewBirthday parses s as DD.MM.YYYY. The date must exist, so 31.02 and
// 29.02 of a non-leap year are rejected.
func NewBirthday(s string) (Birthday, error) {
	d, err := time.Parse(DateLayout, s)
	if err != nil {
		return Birthday{}, fmt.Errorf("%w: %q", ErrInvalidBirthday, s)
	}
	return Birthday{date: d}, nil
}

// Date returns the stored date at midnight UTC.
func (b Birthday) Date() time.Time {
	return b.date
}

func (b Birthday) String() string {
	return b.date.Format(DateLayout)
}
