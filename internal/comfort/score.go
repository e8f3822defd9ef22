// Package comfort derives the 0-100 comfort index from weather readings
// and ranks cities by it.
package comfort

import (
	"math"

	"go.uber.org/zap"

	"github.com/comfortdash/weather-comfort/internal/weather"
)

// Ideal conditions.
const (
	idealTemperature = 22.0
	idealHumidityMin = 40
	idealHumidityMax = 60
	idealWindSpeed   = 5.0
	idealCloudiness  = 30
)

// Penalty weights, points per unit of deviation.
const (
	temperatureWeight = 1.5
	humidityWeight    = 0.5
	windWeight        = 2.0
	cloudinessWeight  = 0.3
)

const (
	baseScore = 100.0
	minScore  = 0.0
	maxScore  = 100.0
)

// Index is the comfort score for one city with its per-factor penalty
// breakdown. Score is always within [0,100].
type Index struct {
	CityID             int     `json:"cityId"`
	CityName           string  `json:"cityName"`
	Score              float64 `json:"score"`
	TemperaturePenalty float64 `json:"temperaturePenalty"`
	HumidityPenalty    float64 `json:"humidityPenalty"`
	WindPenalty        float64 `json:"windPenalty"`
	CloudinessPenalty  float64 `json:"cloudinessPenalty"`
}

// Scorer computes comfort indices. Scoring is pure: the same reading
// always yields the same Index.
type Scorer struct {
	log *zap.SugaredLogger
}

func NewScorer(log *zap.SugaredLogger) *Scorer {
	return &Scorer{log: log}
}

// Score derives the comfort index for one reading. Invalid numeric
// inputs are sanitized rather than propagated: NaN/Inf temperature
// substitutes the ideal, humidity and cloudiness clamp to [0,100],
// negative or non-finite wind is treated as 0. A zero-value reading is
// the absent-data case and yields the default zero-score entry.
func (s *Scorer) Score(w weather.Reading) Index {
	if w == (weather.Reading{}) {
		s.log.Warnw("no weather data provided for comfort index calculation")
		return defaultIndex(0, "Unknown")
	}

	temperature := s.sanitizeTemperature(w)
	humidity := clampPct(w.HumidityPct)
	windSpeed := s.sanitizeWindSpeed(w)
	cloudiness := clampPct(w.CloudinessPct)

	temperaturePenalty := math.Abs(temperature-idealTemperature) * temperatureWeight
	humidityPenalty := bandPenalty(humidity, idealHumidityMin, idealHumidityMax, humidityWeight)
	windPenalty := 0.0
	if windSpeed > idealWindSpeed {
		windPenalty = (windSpeed - idealWindSpeed) * windWeight
	}
	cloudinessPenalty := 0.0
	if cloudiness > idealCloudiness {
		cloudinessPenalty = float64(cloudiness-idealCloudiness) * cloudinessWeight
	}

	score := baseScore - temperaturePenalty - humidityPenalty - windPenalty - cloudinessPenalty
	score = math.Max(minScore, math.Min(maxScore, score))

	return Index{
		CityID:             w.CityID,
		CityName:           w.CityName,
		Score:              round2(score),
		TemperaturePenalty: round2(temperaturePenalty),
		HumidityPenalty:    round2(humidityPenalty),
		WindPenalty:        round2(windPenalty),
		CloudinessPenalty:  round2(cloudinessPenalty),
	}
}

// ScoreAll scores a batch of readings. Nil or empty input yields an
// empty result, not an error.
func (s *Scorer) ScoreAll(readings []weather.Reading) []Index {
	if len(readings) == 0 {
		s.log.Warnw("empty weather list provided for comfort index calculation")
		return []Index{}
	}

	results := make([]Index, 0, len(readings))
	for _, w := range readings {
		results = append(results, s.Score(w))
	}
	return results
}

func (s *Scorer) sanitizeTemperature(w weather.Reading) float64 {
	t := w.TemperatureC
	if math.IsNaN(t) || math.IsInf(t, 0) {
		s.log.Warnw("invalid temperature, substituting ideal",
			"cityId", w.CityID, "temperature", t)
		return idealTemperature
	}
	return t
}

func (s *Scorer) sanitizeWindSpeed(w weather.Reading) float64 {
	v := w.WindSpeedMS
	if v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
		s.log.Warnw("invalid wind speed, treating as zero",
			"cityId", w.CityID, "windSpeed", v)
		return 0
	}
	return v
}

// bandPenalty charges for the distance to the nearest edge of [lo,hi].
func bandPenalty(v, lo, hi int, weight float64) float64 {
	if v >= lo && v <= hi {
		return 0
	}
	deviation := v - hi
	if v < lo {
		deviation = lo - v
	}
	return float64(deviation) * weight
}

func clampPct(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func defaultIndex(cityID int, cityName string) Index {
	if cityName == "" {
		cityName = "Unknown"
	}
	return Index{CityID: cityID, CityName: cityName}
}
