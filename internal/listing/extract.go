package listing

import (
	"strings"
	"time"

	"otodomcrawler/internal/payload"
	"otodomcrawler/logger"
)

// Payload keys inside props.pageProps.ad and its target sub-object.
const (
	keyFloor              = "Floor_no"
	keyRooms              = "Rooms_num"
	keyHeating            = "Heating"
	keyExtras             = "Extras_types"
	keySecurityTypes      = "Security_types"
	keyConstructionStatus = "ConstructionStatus"
	keyBuildingType       = "Building_type"
	keyBuildingFloors     = "Building_floors_num"
	keyBuildYear          = "Build_year"
)

// createdAtLayouts cover the UTC-offset variants the site has been seen
// emitting for the createdAt field.
var createdAtLayouts = []string{
	"2006-01-02T15:04:05Z07:00",
	"2006-01-02T15:04:05-0700",
}

// extractFloor renders the coded floor token list as a display string.
// A "ground" token renders as "0", "higher_X" as "<X", any other
// underscore-delimited token as its suffix, and unknown tokens verbatim.
func extractFloor(target payload.Value) *string {
	tokens, ok := target.Get(keyFloor).StrSlice()
	if !ok {
		return nil
	}
	parts := make([]string, 0, len(tokens))
	for _, token := range tokens {
		switch {
		case strings.Contains(token, "ground"):
			parts = append(parts, "0")
		case strings.Contains(token, "higher_"):
			parts = append(parts, "<"+lastSegment(token))
		case strings.Contains(token, "_"):
			parts = append(parts, lastSegment(token))
		default:
			parts = append(parts, token)
		}
	}
	joined := strings.Join(parts, ",")
	return &joined
}

func lastSegment(token string) string {
	segments := strings.Split(token, "_")
	return segments[len(segments)-1]
}

// joinedTokens pulls a token list from the payload and joins it with
// commas; a missing or empty list is absent, never "".
func joinedTokens(target payload.Value, key string) *string {
	tokens, ok := target.Get(key).StrSlice()
	if !ok {
		return nil
	}
	joined := strings.Join(tokens, ",")
	return &joined
}

// extractConstructionStatus maps the raw code through the vocabulary.
// An unrecognized code is a data-shape drift worth a warning, not a
// failed build.
func extractConstructionStatus(target payload.Value) *ConstructionStatus {
	code, ok := target.Get(keyConstructionStatus).Str()
	if !ok {
		return nil
	}
	status, ok := ConstructionStatusFromCode(code)
	if !ok {
		logger.Warn("unrecognized construction status code: %s", code)
		return nil
	}
	return &status
}

// extractBuilding builds the Building sub-record, or nothing at all when
// no source field is present.
func extractBuilding(target payload.Value) *Building {
	buildingType, hasType := target.Get(keyBuildingType).Str()
	floors, hasFloors := target.Get(keyBuildingFloors).Int()
	buildYear, hasYear := target.Get(keyBuildYear).Int()

	if !hasType && !hasFloors && !hasYear {
		return nil
	}

	b := &Building{}
	if hasType {
		b.Type = &buildingType
	}
	if hasFloors {
		b.Floors = &floors
	}
	if hasYear {
		b.BuildYear = &buildYear
	}
	return b
}

// extractOfferedBy decides the offering party: private when the raw
// agency field is null, estate agency otherwise.
func extractOfferedBy(ad payload.Value) OfferedBy {
	if ad.Get("agency").IsAbsent() {
		return OfferedByPrivate
	}
	return OfferedByEstateAgency
}

// extractCreatedAt parses the listing creation timestamp.
func extractCreatedAt(ad payload.Value) *time.Time {
	raw, ok := ad.Get("createdAt").Str()
	if !ok {
		return nil
	}
	for _, layout := range createdAtLayouts {
		if ts, err := time.Parse(layout, raw); err == nil {
			return &ts
		}
	}
	logger.Warn("unparseable createdAt timestamp: %s", raw)
	return nil
}
