package listing

// Closed vocabularies used by otodom. Each enumeration is owned here with
// a single decode table per direction, so the encode and decode sides
// cannot drift apart.

// PropertyType is the kind of property offered
type PropertyType string

const (
	PropertyTypeFlat       PropertyType = "flat"
	PropertyTypeStudio     PropertyType = "studio"
	PropertyTypeHouse      PropertyType = "house"
	PropertyTypeInvestment PropertyType = "investment"
	PropertyTypeRoom       PropertyType = "room"
	PropertyTypePlot       PropertyType = "plot"
	PropertyTypeVenue      PropertyType = "venue"
	PropertyTypeMagazine   PropertyType = "magazine"
	PropertyTypeGarage     PropertyType = "garage"
)

// AuctionType is whether the listing is a sale or rent offer
type AuctionType string

const (
	AuctionTypeSale AuctionType = "sale"
	AuctionTypeRent AuctionType = "rent"
)

// MarketType is the primary/secondary market of the offer
type MarketType string

const (
	MarketTypePrimary   MarketType = "primary"
	MarketTypeSecondary MarketType = "secondary"
)

// ConstructionStatus is the build state of the property. Values here are
// the codes the site serializes; to_completion is the "to finish" state.
type ConstructionStatus string

const (
	ConstructionStatusToRenovate ConstructionStatus = "to_renovate"
	ConstructionStatusToFinish   ConstructionStatus = "to_completion"
	ConstructionStatusReadyToUse ConstructionStatus = "ready_to_use"
)

// OfferedBy is the party behind the listing. "agency" is the serialized
// code for an estate agency offer.
type OfferedBy string

const (
	OfferedByPrivate      OfferedBy = "private"
	OfferedByEstateAgency OfferedBy = "agency"
)

// The site encodes types as Polish URL slugs both in search paths and in
// the embedded payload.
var propertyTypeBySlug = map[string]PropertyType{
	"mieszkanie":    PropertyTypeFlat,
	"kawalerka":     PropertyTypeStudio,
	"dom":           PropertyTypeHouse,
	"inwestycja":    PropertyTypeInvestment,
	"pokoj":         PropertyTypeRoom,
	"dzialka":       PropertyTypePlot,
	"lokal":         PropertyTypeVenue,
	"haleimagazyny": PropertyTypeMagazine,
	"garaz":         PropertyTypeGarage,
}

var auctionTypeBySlug = map[string]AuctionType{
	"sprzedaz": AuctionTypeSale,
	"wynajem":  AuctionTypeRent,
}

var slugByPropertyType = inverted(propertyTypeBySlug)

var slugByAuctionType = inverted(auctionTypeBySlug)

var constructionStatusByCode = map[string]ConstructionStatus{
	"to_renovate":   ConstructionStatusToRenovate,
	"to_completion": ConstructionStatusToFinish,
	"ready_to_use":  ConstructionStatusReadyToUse,
}

var marketTypeByCode = map[string]MarketType{
	"primary":   MarketTypePrimary,
	"secondary": MarketTypeSecondary,
}

func inverted[K comparable, V comparable](m map[K]V) map[V]K {
	out := make(map[V]K, len(m))
	for k, v := range m {
		out[v] = k
	}
	return out
}

// PropertyTypeFromSlug decodes a Polish site slug into a PropertyType
func PropertyTypeFromSlug(slug string) (PropertyType, bool) {
	pt, ok := propertyTypeBySlug[slug]
	return pt, ok
}

// Slug returns the URL slug the site uses for the property type
func (p PropertyType) Slug() (string, bool) {
	s, ok := slugByPropertyType[p]
	return s, ok
}

// AuctionTypeFromSlug decodes a Polish site slug into an AuctionType
func AuctionTypeFromSlug(slug string) (AuctionType, bool) {
	at, ok := auctionTypeBySlug[slug]
	return at, ok
}

// Slug returns the URL slug the site uses for the auction type
func (a AuctionType) Slug() (string, bool) {
	s, ok := slugByAuctionType[a]
	return s, ok
}

// ParsePropertyType decodes the semantic name ("flat", "house", ...)
func ParsePropertyType(s string) (PropertyType, bool) {
	if _, ok := slugByPropertyType[PropertyType(s)]; ok {
		return PropertyType(s), true
	}
	return "", false
}

// ParseAuctionType decodes the semantic name ("sale" or "rent")
func ParseAuctionType(s string) (AuctionType, bool) {
	if _, ok := slugByAuctionType[AuctionType(s)]; ok {
		return AuctionType(s), true
	}
	return "", false
}

// MarketTypeFromCode decodes a payload market code
func MarketTypeFromCode(code string) (MarketType, bool) {
	mt, ok := marketTypeByCode[code]
	return mt, ok
}

// ConstructionStatusFromCode decodes a payload construction status code
func ConstructionStatusFromCode(code string) (ConstructionStatus, bool) {
	cs, ok := constructionStatusByCode[code]
	return cs, ok
}
