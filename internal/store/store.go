// Package store persists an address book in an encrypted zstore collection.
// Each contact is one encrypted entry; a sequence number keeps the book's
// insertion order across restarts.
package store

import (
	"encoding/hex"
	"fmt"
	"sort"

	"github.com/zarlcorp/core/pkg/zcrypto"
	"github.com/zarlcorp/core/pkg/zfilesystem"
	"github.com/zarlcorp/core/pkg/zstore"
	"github.com/zarlcorp/zbook/internal/contact"
)

const contactsCollection = "contacts"

// Contact is the stored form of a record.
type Contact struct {
	Name     string   `json:"name"`
	Phones   []string `json:"phones"`
	Birthday string   `json:"birthday,omitempty"`
	Seq      int      `json:"seq"`
}

// Store loads and saves address books.
type Store struct {
	s        *zstore.Store
	contacts *zstore.Collection[Contact]
}

// Open opens or initializes the encrypted store on fsys. A wrong password
// fails here.
func Open(fsys zfilesystem.ReadWriteFileFS, password string) (*Store, error) {
	pass := []byte(password)
	defer zcrypto.Erase(pass)

	s, err := zstore.Open(fsys, pass)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}

	col, err := zstore.NewCollection[Contact](s, contactsCollection)
	if err != nil {
		s.Close()
		return nil, fmt.Errorf("open store: contacts: %w", err)
	}

	return &Store{s: s, contacts: col}, nil
}

// Load rebuilds the address book. Every stored value passes the same
// validation as user input.
func (s *Store) Load() (*contact.AddressBook, error) {
	all, err := s.contacts.List()
	if err != nil {
		return nil, fmt.Errorf("load contacts: %w", err)
	}

	sort.SliceStable(all, func(i, j int) bool {
		return all[i].Seq < all[j].Seq
	})

	book := contact.NewAddressBook()
	for _, c := range all {
		r, err := decode(c)
		if err != nil {
			return nil, fmt.Errorf("load contact %q: %w", c.Name, err)
		}
		book.Add(r)
	}

	return book, nil
}

// Save replaces the stored contacts with the book's records.
func (s *Store) Save(book *contact.AddressBook) error {
	stored, err := s.contacts.List()
	if err != nil {
		return fmt.Errorf("save contacts: list: %w", err)
	}

	keep := make(map[string]bool, book.Len())
	for i, r := range book.Records() {
		c := encode(r, i)
		k := key(c.Name)
		keep[k] = true
		if err := s.contacts.Put(k, c); err != nil {
			return fmt.Errorf("save contact %q: %w", c.Name, err)
		}
	}

	for _, c := range stored {
		k := key(c.Name)
		if keep[k] {
			continue
		}
		if err := s.contacts.Delete(k); err != nil {
			return fmt.Errorf("save contacts: delete %q: %w", c.Name, err)
		}
	}

	return nil
}

// Close erases the store key from memory.
func (s *Store) Close() {
	s.s.Close()
}

func encode(r *contact.Record, seq int) Contact {
	c := Contact{Name: r.Name().String(), Seq: seq}
	for _, p := range r.Phones() {
		c.Phones = append(c.Phones, p.String())
	}
	if b, ok := r.Birthday(); ok {
		c.Birthday = b.String()
	}
	return c
}

func decode(c Contact) (*contact.Record, error) {
	r, err := contact.NewRecord(c.Name)
	if err != nil {
		return nil, err
	}
	for _, p := range c.Phones {
		if err := r.AddPhone(p); err != nil {
			return nil, err
		}
	}
	if c.Birthday != "" {
		if err := r.SetBirthday(c.Birthday); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// key hex-encodes a name so any name is a safe entry key.
func key(name string) string {
	return hex.EncodeToString([]byte(name))
}
