package contact

import (
	"sort"
	"time"
)

// DefaultWindow is the default look-ahead for upcoming birthdays, in days.
const DefaultWindow = 7

const day = 24 * time.Hour

// Congratulation groups the contacts to greet on one date.
type Congratulation struct {
	Date  time.Time
	Names []string
}

// Upcoming returns the congratulation dates for birthdays falling within
// window days of ref, ref included. A birthday on a weekend is greeted the
// following Monday. Dates are ascending; names keep insertion order.
func (b *AddressBook) Upcoming(window int, ref time.Time) []Congratulation {
	today := dateOf(ref)
	byDate := make(map[time.Time]int)
	var out []Congratulation

	for _, r := range b.Records() {
		bd, ok := r.Birthday()
		if !ok {
			continue
		}

		next := occurrence(today.Year(), bd.Date())
		if next.Before(today) {
			next = occurrence(today.Year()+1, bd.Date())
		}

		days := int(next.Sub(today) / day)
		if days < 0 || days > window {
			continue
		}

		greet := congratulationDate(next)
		i, ok := byDate[greet]
		if !ok {
			i = len(out)
			byDate[greet] = i
			out = append(out, Congratulation{Date: greet})
		}
		out[i].Names = append(out[i].Names, r.Name().String())
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date.Before(out[j].Date)
	})

	return out
}

// UpcomingBirthdays is Upcoming keyed by the DD.MM.YYYY congratulation date.
// The map is empty, never nil, when nobody qualifies.
func (b *AddressBook) UpcomingBirthdays(window int, ref time.Time) map[string][]string {
	out := make(map[string][]string)
	for _, c := range b.Upcoming(window, ref) {
		out[c.Date.Format(DateLayout)] = c.Names
	}
	return out
}

// occurrence places the month and day of birthday in year. Feb 29 maps to
// Mar 1 when year is not a leap year.
func occurrence(year int, birthday time.Time) time.Time {
	month, d := birthday.Month(), birthday.Day()
	if month == time.February && d == 29 && !isLeap(year) {
		month, d = time.March, 1
	}
	return time.Date(year, month, d, 0, 0, 0, 0, time.UTC)
}

// congratulationDate moves Saturday and Sunday to the next Monday.
func congratulationDate(t time.Time) time.Time {
	switch t.Weekday() {
	case time.Saturday:
		return t.AddDate(0, 0, 2)
	case time.Sunday:
		return t.AddDate(0, 0, 1)
	}
	return t
}

func dateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func isLeap(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}
