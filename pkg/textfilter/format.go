// Package textfilter turns game values into display text.
package textfilter

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Formatter renders labels and amounts for one display language.
type Formatter struct {
	tag     language.Tag
	printer *message.Printer
}

// New returns a Formatter for tag.
func New(tag language.Tag) *Formatter {
	return &Formatter{
		tag:     tag,
		printer: message.NewPrinter(tag),
	}
}

// Swedish is the default display language.
func Swedish() *Formatter {
	return New(language.Swedish)
}

// Label turns an identifier or enum value into words: "OnMission" and
// "peace_offer" become "On Mission" and "Peace Offer".
func (f *Formatter) Label(s string) string {
	// casers carry state, so each call gets its own
	return cases.Title(f.tag).String(strings.Join(splitWords(s), " "))
}

// Kronor formats an amount with digit grouping and the currency suffix.
func (f *Formatter) Kronor(n int64) string {
	return f.printer.Sprintf("%d kr", n)
}

// Signed formats a delta with an explicit sign, for change logs.
func (f *Formatter) Signed(n int64) string {
	if n > 0 {
		return f.printer.Sprintf("+%d", n)
	}
	return f.printer.Sprintf("%d", n)
}

// Percent formats a 0-100 value.
func (f *Formatter) Percent(n int) string {
	return f.printer.Sprintf("%d%%", n)
}

// splitWords breaks on underscores, dashes, spaces and lower-to-upper case changes.
func splitWords(s string) []string {
	var words []string
	var cur []rune
	flush := func() {
		if len(cur) > 0 {
			words = append(words, strings.ToLower(string(cur)))
			cur = cur[:0]
		}
	}

	runes := []rune(s)
	for i, r := range runes {
		switch {
		case r == '_' || r == '-' || unicode.IsSpace(r):
			flush()
			continue
		case unicode.IsUpper(r) && i > 0 && unicode.IsLower(runes[i-1]):
			flush()
		}
		cur = append(cur, r)
	}
	flush()
	return words
}
