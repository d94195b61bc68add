package config

import "strings"

var polishCharacters = map[rune]rune{
	'ą': 'a',
	'ć': 'c',
	'ę': 'e',
	'ł': 'l',
	'ń': 'n',
	'ó': 'o',
	'ś': 's',
	'ź': 'z',
	'ż': 'z',
	'Ą': 'A',
	'Ć': 'C',
	'Ę': 'E',
	'Ł': 'L',
	'Ń': 'N',
	'Ó': 'O',
	'Ś': 'S',
	'Ź': 'Z',
	'Ż': 'Z',
}

var knownProvinces = map[string]struct{}{
	"dolnoslaskie":         {},
	"kujawsko--pomorskie":  {},
	"lodzkie":              {},
	"lubelskie":            {},
	"lubuskie":             {},
	"malopolskie":          {},
	"mazowieckie":          {},
	"opolskie":             {},
	"podkarpackie":         {},
	"podlaskie":            {},
	"pomorskie":            {},
	"slaskie":              {},
	"swietokrzyskie":       {},
	"warminsko--mazurskie": {},
	"wielkopolskie":        {},
	"zachodniopomorskie":   {},
}

// ReplacePolishCharacters folds Polish diacritics into their ASCII
// equivalents, the form otodom uses in URL path segments.
func ReplacePolishCharacters(text string) string {
	return strings.Map(func(r rune) rune {
		if repl, ok := polishCharacters[r]; ok {
			return repl
		}
		return r
	}, text)
}

// NormalizeProvince folds diacritics and doubles hyphens. Hyphenated
// province names appear with a double hyphen in otodom URLs.
func NormalizeProvince(province string) string {
	province = ReplacePolishCharacters(strings.ToLower(province))
	return strings.ReplaceAll(province, "-", "--")
}

// IsKnownProvince reports whether the normalized province is one of the
// sixteen Polish voivodeships.
func IsKnownProvince(province string) bool {
	_, ok := knownProvinces[province]
	return ok
}
