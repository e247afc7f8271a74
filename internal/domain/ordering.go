package domain

import (
	"sort"
	"strings"
)

// SortForCalling orders contacts in place the way a calling session works
// through them: ascending priority rank, and within equal rank contacts
// with a mobile-format phone number before those without. The sort is
// stable so list order is preserved among ties.
func SortForCalling(contacts []Contact) {
	sort.SliceStable(contacts, func(i, j int) bool {
		ri, rj := contacts[i].Priority.Rank(), contacts[j].Priority.Rank()
		if ri != rj {
			return ri < rj
		}
		mi, mj := IsMobileNumber(contacts[i].Phone), IsMobileNumber(contacts[j].Phone)
		return mi && !mj
	})
}

// IsMobileNumber reports whether the phone number looks like an Estonian
// mobile number: after stripping separators, a 5-prefixed subscriber number
// of 7-8 digits, or the 372 country prefix followed by one of at least 9
// total digits.
func IsMobileNumber(phone string) bool {
	digits := stripPhone(phone)
	if digits == "" {
		return false
	}
	if strings.HasPrefix(digits, "5") {
		return len(digits) >= 7 && len(digits) <= 8
	}
	if strings.HasPrefix(digits, "372") {
		rest := digits[3:]
		return strings.HasPrefix(rest, "5") && len(digits) >= 9
	}
	return false
}

func stripPhone(phone string) string {
	var b strings.Builder
	for _, r := range phone {
		switch r {
		case ' ', '-', '(', ')', '+':
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
