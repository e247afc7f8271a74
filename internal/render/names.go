package render

import "strings"

// missing-data marker strings substituted when a contact field is absent.
const (
	missingName       = "[kontakti nimi puudub]"
	missingNameComit  = "[kontakti nimega puudub]"
	missingCompany    = "[ettevõtte nimi puudub]"
	missingEmail      = "[e-post puudub]"
	missingPhone      = "[telefon puudub]"
	missingWebsite    = "[veebileht puudub]"
)

// ShortName reduces a full personal name to the form used when addressing
// the contact: a hyphenated first token as-is, otherwise the first token of
// a two-word name, or the first two tokens of a longer one.
func ShortName(full string) string {
	tokens := strings.Fields(full)
	if len(tokens) == 0 {
		return ""
	}
	if strings.Contains(tokens[0], "-") {
		return tokens[0]
	}
	if len(tokens) <= 2 {
		return tokens[0]
	}
	return tokens[0] + " " + tokens[1]
}

var hardConsonants = map[rune]bool{
	'b': true, 'd': true, 'g': true, 'k': true, 'l': true, 'm': true,
	'n': true, 'p': true, 'r': true, 't': true, 'v': true,
}

var vowels = map[rune]bool{
	'a': true, 'e': true, 'i': true, 'o': true, 'u': true,
	'õ': true, 'ä': true, 'ö': true, 'ü': true,
}

// Comitative renders a name in the Estonian comitative case ("with <name>").
// The suffix rules are tried in order; the last rule is a plain -ga fallback.
func Comitative(name string) string {
	if name == "" {
		return ""
	}
	lower := strings.ToLower(name)
	switch {
	case strings.HasSuffix(lower, "s"):
		return name + "ega"
	case strings.HasSuffix(lower, "ne"):
		return name[:len(name)-len("ne")] + "sega"
	}
	runes := []rune(lower)
	last := runes[len(runes)-1]
	switch {
	case hardConsonants[last]:
		return name + "iga"
	case vowels[last]:
		return name + "ga"
	}
	return name + "ga"
}

// estonianMonths indexes Estonian month names by time.Month (1-based).
var estonianMonths = [...]string{
	"", "jaanuar", "veebruar", "märts", "aprill", "mai", "juuni",
	"juuli", "august", "september", "oktoober", "november", "detsember",
}

// estonianWeekdays indexes Estonian weekday names by time.Weekday.
var estonianWeekdays = [...]string{
	"pühapäev", "esmaspäev", "teisipäev", "kolmapäev", "neljapäev", "reede", "laupäev",
}

// weekdayAdessive maps an Estonian weekday name to its adessive form
// ("on <weekday>"). Unmapped names fall back to the plain name.
var weekdayAdessive = map[string]string{
	"esmaspäev": "Esmaspäeval",
	"teisipäev": "Teisipäeval",
	"kolmapäev": "Kolmapäeval",
	"neljapäev": "Neljapäeval",
	"reede":     "Reedel",
	"laupäev":   "Laupäeval",
	"pühapäev":  "Pühapäeval",
}
