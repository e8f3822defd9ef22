package weather

// Reading is the normalized current-weather view for a single city.
// Temperature fields are Celsius. A Reading is never mutated after the
// provider produces it.
type Reading struct {
	CityID        int     `json:"cityId"`
	CityName      string  `json:"cityName"`
	TemperatureC  float64 `json:"temperatureC"`
	FeelsLikeC    float64 `json:"feelsLikeC"`
	HumidityPct   int     `json:"humidityPct"`
	WindSpeedMS   float64 `json:"windSpeedMs"`
	CloudinessPct int     `json:"cloudinessPct"`
	Description   string  `json:"description"`
}

// Cache status values reported by the debug endpoints.
const (
	StatusHit  = "HIT"
	StatusMiss = "MISS"
)
