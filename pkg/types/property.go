package types

// Property is a listing handled by the brokerage. Land has no rooms:
// Bedrooms and Bathrooms are held at 0 while PropertyType is land.
type Property struct {
	ID           int     `json:"id"`
	SizeSqm      float64 `json:"size_sqm"`
	Price        float64 `json:"price"`
	PropertyType string  `json:"property_type"`
	Bedrooms     int     `json:"bedrooms"`
	Bathrooms    int     `json:"bathrooms"`
	Place        string  `json:"place"`
	Available    bool    `json:"available"`
	ListingType  string  `json:"listing_type"`
}

// EntityKind implements Entity.
func (p Property) EntityKind() Kind { return KindProperty }

// EntityID implements Entity.
func (p Property) EntityID() int { return p.ID }

// SetSizeSqm sets the floor or plot size in square meters; it must be > 0.
func (p *Property) SetSizeSqm(size float64) error {
	if err := checkPositive("size", size); err != nil {
		return err
	}
	p.SizeSqm = size
	return nil
}

// SetPrice sets the asking price; it must be > 0.
func (p *Property) SetPrice(price float64) error {
	if err := checkPositive("price", price); err != nil {
		return err
	}
	p.Price = price
	return nil
}

// SetPropertyType sets land, house, or apartment. Switching to land zeroes
// the room counts.
func (p *Property) SetPropertyType(propertyType string) error {
	if !IsValidPropertyType(propertyType) {
		return &ValidationError{Field: "property type", Reason: ReasonNotInSet}
	}
	p.PropertyType = propertyType
	if p.IsLand() {
		p.Bedrooms = 0
		p.Bathrooms = 0
	}
	return nil
}

// SetBedrooms sets the bedroom count. Negative counts fail; on land the
// count is stored as 0.
func (p *Property) SetBedrooms(n int) error {
	if n < 0 {
		return &ValidationError{Field: "bedrooms", Reason: ReasonNegative}
	}
	if p.IsLand() {
		n = 0
	}
	p.Bedrooms = n
	return nil
}

// SetBathrooms sets the bathroom count with the same rules as SetBedrooms.
func (p *Property) SetBathrooms(n int) error {
	if n < 0 {
		return &ValidationError{Field: "bathrooms", Reason: ReasonNegative}
	}
	if p.IsLand() {
		n = 0
	}
	p.Bathrooms = n
	return nil
}

// SetPlace sets the location; it must be non-empty and digit-free.
func (p *Property) SetPlace(place string) error {
	if err := CheckName("place", place); err != nil {
		return err
	}
	p.Place = place
	return nil
}

// SetAvailability marks the property as on or off the market.
func (p *Property) SetAvailability(available bool) {
	p.Available = available
}

// SetListingType sets sale or rent.
func (p *Property) SetListingType(listingType string) error {
	if !IsValidListingType(listingType) {
		return &ValidationError{Field: "listing type", Reason: ReasonNotInSet}
	}
	p.ListingType = listingType
	return nil
}

// IsLand reports whether the property is a plot of land.
func (p Property) IsLand() bool {
	return p.PropertyType == PropertyTypeLand
}

// Validate checks every field of p. Room counts on land must already be 0.
func (p Property) Validate() error {
	var probe Property
	checks := []error{
		probe.SetSizeSqm(p.SizeSqm),
		probe.SetPrice(p.Price),
		probe.SetPropertyType(p.PropertyType),
		probe.SetBedrooms(p.Bedrooms),
		probe.SetBathrooms(p.Bathrooms),
		probe.SetPlace(p.Place),
		probe.SetListingType(p.ListingType),
	}
	for _, err := range checks {
		if err != nil {
			return err
		}
	}
	if p.IsLand() && (p.Bedrooms != 0 || p.Bathrooms != 0) {
		return &ValidationError{Field: "bedrooms", Reason: "must be 0 for land"}
	}
	return nil
}
