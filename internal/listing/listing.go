package listing

import "time"

// Property is one canonical listing record. Records are built once per
// crawled page, validated, and either inserted or discarded; they are
// never updated in place.
type Property struct {
	OtodomID           int                 `json:"otodom_id" bson:"otodom_id"`
	Link               string              `json:"link" bson:"link"`
	Promoted           bool                `json:"promoted" bson:"promoted"`
	Title              string              `json:"title" bson:"title"`
	Area               float64             `json:"area" bson:"area"`
	CreatedAt          *time.Time          `json:"created_at,omitempty" bson:"created_at,omitempty"`
	Floor              *string             `json:"floor,omitempty" bson:"floor,omitempty"`
	Price              *int                `json:"price,omitempty" bson:"price,omitempty"`
	PricePerMeter      *int                `json:"price_per_meter,omitempty" bson:"price_per_meter,omitempty"`
	Rooms              *string             `json:"rooms,omitempty" bson:"rooms,omitempty"`
	Heating            *string             `json:"heating,omitempty" bson:"heating,omitempty"`
	Extras             *string             `json:"extras,omitempty" bson:"extras,omitempty"`
	SecurityTypes      *string             `json:"security_types,omitempty" bson:"security_types,omitempty"`
	Rent               *int                `json:"rent,omitempty" bson:"rent,omitempty"`
	PropertyType       PropertyType        `json:"property_type" bson:"property_type"`
	MarketType         MarketType          `json:"market_type" bson:"market_type"`
	AuctionType        AuctionType         `json:"auction_type" bson:"auction_type"`
	ConstructionStatus *ConstructionStatus `json:"construction_status,omitempty" bson:"construction_status,omitempty"`
	OfferedBy          OfferedBy           `json:"offered_by" bson:"offered_by"`
	Localization       Localization        `json:"localization" bson:"localization"`
	Building           *Building           `json:"building,omitempty" bson:"building,omitempty"`
	EstateAgencyID     *int                `json:"estate_agency,omitempty" bson:"estate_agency,omitempty"`
}

// Agency is a canonical estate agency record
type Agency struct {
	OtodomID   int     `json:"otodom_id" bson:"otodom_id"`
	Name       string  `json:"name" bson:"name"`
	Street     string  `json:"street" bson:"street"`
	City       *string `json:"city,omitempty" bson:"city,omitempty"`
	Province   *string `json:"province,omitempty" bson:"province,omitempty"`
	PostalCode *string `json:"postal_code,omitempty" bson:"postal_code,omitempty"`
	County     *string `json:"county,omitempty" bson:"county,omitempty"`
}

// Localization is the property location, embedded in Property
type Localization struct {
	Province  string   `json:"province" bson:"province"`
	City      string   `json:"city" bson:"city"`
	District  *string  `json:"district,omitempty" bson:"district,omitempty"`
	Street    *string  `json:"street,omitempty" bson:"street,omitempty"`
	County    *string  `json:"county,omitempty" bson:"county,omitempty"`
	Latitude  *float64 `json:"latitude,omitempty" bson:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty" bson:"longitude,omitempty"`
}

// Building describes the building the property is part of. The whole
// sub-record is absent when no source field exists.
type Building struct {
	Type      *string `json:"type,omitempty" bson:"type,omitempty"`
	Floors    *int    `json:"floors,omitempty" bson:"floors,omitempty"`
	BuildYear *int    `json:"build_year,omitempty" bson:"build_year,omitempty"`
}

// Listing pairs one Property with an optional Agency for the duration of
// a crawl run. It exists only for export and logging; it is not persisted.
type Listing struct {
	Property *Property `json:"property"`
	Agency   *Agency   `json:"agency,omitempty"`
}

// Record converts the listing to a nested key/value map with nil fields
// omitted, ready for flattening and export.
func (l Listing) Record() map[string]interface{} {
	rec := l.Property.record()
	if l.Agency != nil {
		rec["agency"] = l.Agency.record()
	}
	return rec
}

func (p *Property) record() map[string]interface{} {
	rec := map[string]interface{}{
		"otodom_id":     p.OtodomID,
		"link":          p.Link,
		"promoted":      p.Promoted,
		"title":         p.Title,
		"area":          p.Area,
		"property_type": string(p.PropertyType),
		"market_type":   string(p.MarketType),
		"auction_type":  string(p.AuctionType),
		"offered_by":    string(p.OfferedBy),
		"localization":  p.Localization.record(),
	}
	if p.CreatedAt != nil {
		rec["created_at"] = p.CreatedAt.Format(time.RFC3339)
	}
	putStr(rec, "floor", p.Floor)
	putInt(rec, "price", p.Price)
	putInt(rec, "price_per_meter", p.PricePerMeter)
	putStr(rec, "rooms", p.Rooms)
	putStr(rec, "heating", p.Heating)
	putStr(rec, "extras", p.Extras)
	putStr(rec, "security_types", p.SecurityTypes)
	putInt(rec, "rent", p.Rent)
	if p.ConstructionStatus != nil {
		rec["construction_status"] = string(*p.ConstructionStatus)
	}
	if p.Building != nil {
		rec["building"] = p.Building.record()
	}
	putInt(rec, "estate_agency", p.EstateAgencyID)
	return rec
}

func (a *Agency) record() map[string]interface{} {
	rec := map[string]interface{}{
		"otodom_id": a.OtodomID,
		"name":      a.Name,
		"street":    a.Street,
	}
	putStr(rec, "city", a.City)
	putStr(rec, "province", a.Province)
	putStr(rec, "postal_code", a.PostalCode)
	putStr(rec, "county", a.County)
	return rec
}

func (l Localization) record() map[string]interface{} {
	rec := map[string]interface{}{
		"province": l.Province,
		"city":     l.City,
	}
	putStr(rec, "district", l.District)
	putStr(rec, "street", l.Street)
	putStr(rec, "county", l.County)
	if l.Latitude != nil {
		rec["latitude"] = *l.Latitude
	}
	if l.Longitude != nil {
		rec["longitude"] = *l.Longitude
	}
	return rec
}

func (b *Building) record() map[string]interface{} {
	rec := map[string]interface{}{}
	putStr(rec, "type", b.Type)
	putInt(rec, "floors", b.Floors)
	putInt(rec, "build_year", b.BuildYear)
	return rec
}

func putStr(rec map[string]interface{}, key string, v *string) {
	if v != nil {
		rec[key] = *v
	}
}

func putInt(rec map[string]interface{}, key string, v *int) {
	if v != nil {
		rec[key] = *v
	}
}
