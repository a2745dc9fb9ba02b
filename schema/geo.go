package schema

// Location is a plain coordinate pair used for geocoding lookups
type Location struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// GeoLabels are the human readable place names resolved for a location
type GeoLabels struct {
	Barangay string
	City     string
	Country  string
}
