package listing

import "regexp"

// Agency addresses come as one free-text string in three observed layouts
// plus arbitrary garbage. The patterns below are tried in strict order and
// the first match wins. Formats 1 and 2 are prefix-compatible with the
// inverse of format 3, so this precedence must not be reordered.
var (
	// street, postal code, city, county, province
	addressFullRe = regexp.MustCompile(`^(.*?), (\d{2}-\d{3}), (.*), (.*), (.*)$`)
	// street, postal code, city, province
	addressNoCountyRe = regexp.MustCompile(`^(.*?), (\d{2}-\d{3}), (.*), (.*)$`)
	// city fragment, street, city, postal code - seen on malformed pages
	addressReversedRe = regexp.MustCompile(`^(.*), (.*?), (.*), (\d{2}-\d{3})$`)
)

// Address is the resolved 5-field agency address. Street is always set;
// the remaining fields are nil when the source layout did not carry them.
type Address struct {
	Street     string
	PostalCode *string
	City       *string
	County     *string
	Province   *string
}

// ResolveAddress parses a free-text agency address. When no layout
// matches, the whole input becomes the street and every other field
// stays nil.
func ResolveAddress(raw string) Address {
	if m := addressFullRe.FindStringSubmatch(raw); m != nil {
		return Address{
			Street:     m[1],
			PostalCode: &m[2],
			City:       &m[3],
			County:     &m[4],
			Province:   &m[5],
		}
	}
	if m := addressNoCountyRe.FindStringSubmatch(raw); m != nil {
		return Address{
			Street:     m[1],
			PostalCode: &m[2],
			City:       &m[3],
			Province:   &m[4],
		}
	}
	if m := addressReversedRe.FindStringSubmatch(raw); m != nil {
		return Address{
			Street:     m[2],
			PostalCode: &m[4],
			City:       &m[3],
		}
	}
	return Address{Street: raw}
}
