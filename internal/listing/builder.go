package listing

import (
	"otodomcrawler/internal/payload"
	"otodomcrawler/pkg/errors"
)

// BuildProperty assembles a canonical Property from the embedded page
// payload. Any missing required field fails the whole build; downstream
// persistence never sees a partial record.
func BuildProperty(link string, promoted bool, root payload.Value) (*Property, error) {
	if link == "" {
		return nil, errors.NewValidation("link")
	}

	ad := root.Get("props", "pageProps", "ad")

	otodomID, ok := ad.Get("id").Int()
	if !ok {
		return nil, errors.NewValidation("otodom_id")
	}
	title, ok := ad.Get("title").Str()
	if !ok {
		return nil, errors.NewValidation("title")
	}

	target := ad.Get("target")

	area, ok := target.Get("Area").Float()
	if !ok {
		return nil, errors.NewValidation("area")
	}

	propertySlug, ok := target.Get("ProperType").Str()
	if !ok {
		return nil, errors.NewValidation("property_type")
	}
	propertyType, ok := PropertyTypeFromSlug(propertySlug)
	if !ok {
		return nil, errors.NewValidation("property_type")
	}

	marketCode, ok := target.Get("MarketType").Str()
	if !ok {
		return nil, errors.NewValidation("market_type")
	}
	marketType, ok := MarketTypeFromCode(marketCode)
	if !ok {
		return nil, errors.NewValidation("market_type")
	}

	auctionSlug, ok := target.Get("OfferType").Str()
	if !ok {
		return nil, errors.NewValidation("auction_type")
	}
	auctionType, ok := AuctionTypeFromSlug(auctionSlug)
	if !ok {
		return nil, errors.NewValidation("auction_type")
	}

	localization, err := buildLocalization(ad.Get("location"))
	if err != nil {
		return nil, err
	}

	p := &Property{
		OtodomID:           otodomID,
		Link:               link,
		Promoted:           promoted,
		Title:              title,
		Area:               area,
		CreatedAt:          extractCreatedAt(ad),
		Floor:              extractFloor(target),
		Rooms:              joinedTokens(target, keyRooms),
		Heating:            joinedTokens(target, keyHeating),
		Extras:             joinedTokens(target, keyExtras),
		SecurityTypes:      joinedTokens(target, keySecurityTypes),
		PropertyType:       propertyType,
		MarketType:         marketType,
		AuctionType:        auctionType,
		ConstructionStatus: extractConstructionStatus(target),
		OfferedBy:          extractOfferedBy(ad),
		Localization:       localization,
		Building:           extractBuilding(target),
	}

	if price, ok := target.Get("Price").Int(); ok {
		p.Price = &price
	}
	if perMeter, ok := target.Get("Price_per_m").Int(); ok {
		p.PricePerMeter = &perMeter
	}
	if rent, ok := target.Get("Rent").Int(); ok {
		p.Rent = &rent
	}

	return p, nil
}

// BuildAgency assembles a canonical Agency from the embedded page payload.
func BuildAgency(root payload.Value) (*Agency, error) {
	agency := root.Get("props", "pageProps", "ad", "agency")
	if agency.IsAbsent() {
		return nil, errors.NewValidation("agency")
	}

	otodomID, ok := agency.Get("id").Int()
	if !ok {
		return nil, errors.NewValidation("otodom_id")
	}
	name, ok := agency.Get("name").Str()
	if !ok {
		return nil, errors.NewValidation("name")
	}
	rawAddress, ok := agency.Get("address").Str()
	if !ok || rawAddress == "" {
		return nil, errors.NewValidation("street")
	}

	addr := ResolveAddress(rawAddress)

	return &Agency{
		OtodomID:   otodomID,
		Name:       name,
		Street:     addr.Street,
		City:       addr.City,
		Province:   addr.Province,
		PostalCode: addr.PostalCode,
		County:     addr.County,
	}, nil
}

// buildLocalization reads the location sub-object. Province and city are
// required; everything else is optional and shape-tolerant, since the
// site emits both plain strings and {name}/{code} objects for them.
func buildLocalization(loc payload.Value) (Localization, error) {
	address := loc.Get("address")

	province, ok := codeField(address.Get("province"))
	if !ok {
		return Localization{}, errors.NewValidation("localization.province")
	}
	city, ok := codeField(address.Get("city"))
	if !ok {
		return Localization{}, errors.NewValidation("localization.city")
	}

	l := Localization{
		Province: province,
		City:     city,
	}

	if district, ok := nameField(address.Get("district")); ok {
		l.District = &district
	}
	if street, ok := nameField(address.Get("street")); ok {
		if number, ok := address.Get("number").Str(); ok && street != "" {
			street += " " + number
		}
		l.Street = &street
	}
	if county, ok := codeField(address.Get("county")); ok {
		l.County = &county
	}
	if lat, ok := loc.Get("coordinates", "latitude").Float(); ok {
		l.Latitude = &lat
	}
	if lon, ok := loc.Get("coordinates", "longitude").Float(); ok {
		l.Longitude = &lon
	}

	return l, nil
}

// codeField accepts either a plain string or a {code: ...} object.
func codeField(v payload.Value) (string, bool) {
	if s, ok := v.Str(); ok {
		return s, true
	}
	return v.Get("code").Str()
}

// nameField accepts either a plain string or a {name: ...} object.
func nameField(v payload.Value) (string, bool) {
	if s, ok := v.Str(); ok {
		return s, true
	}
	return v.Get("name").Str()
}
