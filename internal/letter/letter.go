// Package letter computes the single-character sort bucket of a contact name.
package letter

import (
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/matheus3301/easekit/internal/chat"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Transliterator maps a single character to its romanized reading.
// It returns false when the character has no reading.
type Transliterator interface {
	Transliterate(r rune) (string, bool)
}

var lower = cases.Lower(language.Und)

// Of returns the initial letter of name: an upper-case ASCII letter, or
// chat.DefaultLetter when the name is empty, starts with a digit, or its first
// character does not romanize to A-Z. Only the first character is looked up.
func Of(name string, t Transliterator) string {
	if name == "" {
		return chat.DefaultLetter
	}
	first, _ := utf8.DecodeRuneInString(name)
	folded, _ := utf8.DecodeRuneInString(lower.String(string(first)))
	if unicode.IsDigit(folded) {
		return chat.DefaultLetter
	}
	if t == nil {
		return chat.DefaultLetter
	}
	reading, ok := t.Transliterate(first)
	if !ok || reading == "" {
		return chat.DefaultLetter
	}
	r, _ := utf8.DecodeRuneInString(reading)
	c := unicode.ToUpper(r)
	if c < 'A' || c > 'Z' {
		return chat.DefaultLetter
	}
	return string(c)
}

// Assign recomputes the initial letter of c from its nickname, or its username
// when the nickname is empty.
func Assign(c *chat.Contact, t Transliterator) {
	if c == nil {
		return
	}
	name := c.Nickname
	if name == "" {
		name = c.Username
	}
	c.InitialLetter = Of(name, t)
}

// Section is a run of contacts sharing an initial letter.
type Section struct {
	Letter   string         `json:"letter"`
	Contacts []chat.Contact `json:"contacts"`
}

// Sections groups contacts by their initial letter, A to Z first and the
// default bucket last. Contacts are ordered by display name inside a section.
// The letters already stored on the contacts are used as-is.
func Sections(contacts []chat.Contact) []Section {
	byLetter := make(map[string][]chat.Contact)
	for _, c := range contacts {
		l := c.InitialLetter
		if l == "" {
			l = chat.DefaultLetter
		}
		byLetter[l] = append(byLetter[l], c)
	}

	letters := make([]string, 0, len(byLetter))
	for l := range byLetter {
		letters = append(letters, l)
	}
	sort.Slice(letters, func(i, j int) bool {
		a, b := letters[i], letters[j]
		if a == chat.DefaultLetter {
			return false
		}
		if b == chat.DefaultLetter {
			return true
		}
		return a < b
	})

	sections := make([]Section, 0, len(letters))
	for _, l := range letters {
		cs := byLetter[l]
		sort.SliceStable(cs, func(i, j int) bool {
			return strings.ToLower(cs[i].DisplayName()) < strings.ToLower(cs[j].DisplayName())
		})
		sections = append(sections, Section{Letter: l, Contacts: cs})
	}
	return sections
}
