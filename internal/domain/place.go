package domain

// Place is a denormalized snapshot of an external place-search result,
// attached to a page. It is immutable once attached except via full
// replacement (changing place restarts content generation).
type Place struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Rating      float64     `json:"rating"`
	ReviewCount int         `json:"review_count"`
	Location    Location    `json:"location"`
	Categories  []string    `json:"categories,omitempty"`
	Coordinates *Coordinate `json:"coordinates,omitempty"`
	ImageURL    string      `json:"image_url,omitempty"`
	URL         string      `json:"url,omitempty"`
}

// Location holds the address fields of a place.
type Location struct {
	Address1 string `json:"address1"`
	City     string `json:"city"`
	State    string `json:"state,omitempty"`
	ZipCode  string `json:"zip_code,omitempty"`
}

// Coordinate is a latitude/longitude pair.
type Coordinate struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// ShortAddress returns "address1, city" for burn-in rendering on tickets
// and receipts.
func (l Location) ShortAddress() string {
	if l.Address1 == "" {
		return l.City
	}
	if l.City == "" {
		return l.Address1
	}
	return l.Address1 + ", " + l.City
}
