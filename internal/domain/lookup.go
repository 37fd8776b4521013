package domain

// Coordinates is a resolved geographic position.
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Place is one geocoding search hit.
type Place struct {
	Coordinates
	DisplayName string `json:"display_name"`
}

// Forecast holds the first time-series entry of a forecast response.
// Pointer fields are nil when the upstream omitted them.
type Forecast struct {
	Time                string
	AirTemperature      *float64
	RelativeHumidity    *float64
	WindSpeed           *float64
	WindFromDirection   *float64
	CloudAreaFraction   *float64
	PrecipitationNextHr *float64
	SymbolCode          string
}

// WeatherResult is the raw outcome of a forecast request.
// Forecast is nil when the body had no time-series entries.
type WeatherResult struct {
	StatusCode int
	Forecast   *Forecast
}

// Succeeded mirrors a 2xx HTTP status.
func (r WeatherResult) Succeeded() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// Summary is an encyclopedia page summary.
type Summary struct {
	Title       string
	Extract     string
	Description string
}

// SummaryResult is the raw outcome of a summary request.
type SummaryResult struct {
	StatusCode int
	Summary    *Summary
}

// Succeeded mirrors a 2xx HTTP status.
func (r SummaryResult) Succeeded() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}
