package models

// Product is one entry in a station's supported product list as returned
// by the NOAA metadata API with expand=products.
type Product struct {
	Name string `json:"name"`
}

// ProductList mirrors the nested "products" object in the metadata response.
type ProductList struct {
	Products []Product `json:"products"`
}

// Station is a single NOAA CO-OPS station record. Fields follow the
// metadata API field names; State may be empty and coordinates may be
// absent for some station types.
type Station struct {
	ID        string       `json:"id"`
	Name      string       `json:"name"`
	State     string       `json:"state"`
	Latitude  float64      `json:"lat,omitempty"`
	Longitude float64      `json:"lng,omitempty"`
	Type      string       `json:"type"`
	Observed  bool         `json:"observedst"`
	Products  *ProductList `json:"products,omitempty"`
}

// AvailableProducts summarizes what a station can answer for. WaterLevels
// and IsActive both derive from the same observed flag; the upstream data
// carries no finer distinction.
type AvailableProducts struct {
	TidePredictions bool `json:"tide_predictions"`
	WaterLevels     bool `json:"water_levels"`
	Currents        bool `json:"currents"`
	IsActive        bool `json:"is_active"`
}

// AnnotatedStation is a station plus its derived capability summary,
// produced per query. The underlying Station is copied, never mutated.
type AnnotatedStation struct {
	Station
	AvailableProducts AvailableProducts `json:"available_products"`
}

// SearchResult is the ordered outcome of a directory search. Count always
// equals len(Stations).
type SearchResult struct {
	Stations []AnnotatedStation `json:"stations"`
	Count    int                `json:"count"`
}
