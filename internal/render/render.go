// Package render substitutes bracketed placeholders in call scripts and
// email templates with live contact and session data. Rendering never
// fails: absent contact data degrades to a bracketed missing marker, and
// caller-side placeholders without data are left unexpanded.
package render

import (
	"fmt"
	"strings"
	"time"
)

// Data carries everything a template may reference.
type Data struct {
	ContactName    string
	ContactCompany string
	ContactEmail   string
	ContactPhone   string
	ContactWebsite string

	// CompanyName is the calling operator's own company.
	CompanyName string

	MeetingDate *time.Time
	MeetingTime string

	// Now overrides the clock for [Tänane kuupäev]; zero means time.Now.
	Now time.Time
}

type substitution struct {
	placeholder string
	resolve     func(Data) (string, bool)
}

// substitutions is the ordered resolution table. Contact-derived entries
// always resolve (to a value or a missing marker); caller-derived entries
// may decline, leaving the placeholder in place.
var substitutions = []substitution{
	{"[Kontaktisiku nimi]", func(d Data) (string, bool) {
		if name := ShortName(d.ContactName); name != "" {
			return name, true
		}
		return missingName, true
	}},
	{"[Kontaktisiku nimega]", func(d Data) (string, bool) {
		if name := ShortName(d.ContactName); name != "" {
			return Comitative(name), true
		}
		return missingNameComit, true
	}},
	{"[Kontakti ettevõte]", func(d Data) (string, bool) {
		return orMissing(d.ContactCompany, missingCompany), true
	}},
	{"[E-post]", func(d Data) (string, bool) {
		return orMissing(d.ContactEmail, missingEmail), true
	}},
	{"[Telefon]", func(d Data) (string, bool) {
		return orMissing(d.ContactPhone, missingPhone), true
	}},
	{"[Veebileht]", func(d Data) (string, bool) {
		return orMissing(d.ContactWebsite, missingWebsite), true
	}},
	{"[Ettevõtte nimi]", func(d Data) (string, bool) {
		if d.CompanyName == "" {
			return "", false
		}
		return d.CompanyName, true
	}},
	{"[Kuupäev]", func(d Data) (string, bool) {
		if d.MeetingDate == nil {
			return "", false
		}
		return estonianDate(*d.MeetingDate), true
	}},
	{"[Nädalapäev]", func(d Data) (string, bool) {
		if d.MeetingDate == nil {
			return "", false
		}
		name := estonianWeekdays[d.MeetingDate.Weekday()]
		if adessive, ok := weekdayAdessive[name]; ok {
			return adessive, true
		}
		return name, true
	}},
	{"[Kellaaeg]", func(d Data) (string, bool) {
		if d.MeetingTime == "" {
			return "", false
		}
		return d.MeetingTime, true
	}},
	{"[Tänane kuupäev]", func(d Data) (string, bool) {
		now := d.Now
		if now.IsZero() {
			now = time.Now()
		}
		return estonianDate(now), true
	}},
}

// Render applies the substitution table to the template. Every occurrence
// of each placeholder is replaced; resolution order follows the table.
func Render(template string, data Data) string {
	out := template
	for _, s := range substitutions {
		value, ok := s.resolve(data)
		if !ok {
			continue
		}
		out = strings.ReplaceAll(out, s.placeholder, value)
	}
	return out
}

func estonianDate(t time.Time) string {
	return fmt.Sprintf("%d. %s", t.Day(), estonianMonths[t.Month()])
}

func orMissing(value, marker string) string {
	if value == "" {
		return marker
	}
	return value
}
