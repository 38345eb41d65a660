package predict

import (
	"errors"
	"math"
)

// ErrModelUnavailable means no trained artifact was loaded at startup.
// Callers degrade to an explicit "unavailable" response.
var ErrModelUnavailable = errors.New("prediction model not available")

// Input is the feature vector of one driver/race combination.
type Input struct {
	Year            int     `json:"year" binding:"required"`
	Round           int     `json:"round" binding:"required"`
	Circuit         string  `json:"circuit" binding:"required"`
	Driver          string  `json:"driver" binding:"required"`
	Team            string  `json:"team" binding:"required"`
	GridPosition    int     `json:"grid_position"`
	QualifyingTime  float64 `json:"qualifying_time"`
	AvgRacePace     float64 `json:"avg_race_pace"`
	PitStops        int     `json:"pit_stops"`
	TireStrategy    string  `json:"tire_strategy"`
	Weather         string  `json:"weather"`
	Temp            float64 `json:"temp"`
	RainProbability float64 `json:"rain_probability"`
	TeamPoints      int     `json:"team_points"`
	DriverPoints    int     `json:"driver_points"`
}

// featureMap one-hot encodes the categorical fields and carries the
// numeric ones through under their column names, matching the encoding
// the model was trained with.
func (in Input) featureMap() map[string]float64 {
	features := map[string]float64{
		"year":             float64(in.Year),
		"round":            float64(in.Round),
		"grid_position":    float64(in.GridPosition),
		"qualifying_time":  in.QualifyingTime,
		"avg_race_pace":    in.AvgRacePace,
		"pit_stops":        float64(in.PitStops),
		"temp":             in.Temp,
		"rain_probability": in.RainProbability,
		"team_points":      float64(in.TeamPoints),
		"driver_points":    float64(in.DriverPoints),
	}
	for column, value := range map[string]string{
		"driver":        in.Driver,
		"team":          in.Team,
		"circuit":       in.Circuit,
		"tire_strategy": in.TireStrategy,
		"weather":       in.Weather,
	} {
		features[column+"_"+value] = 1
	}
	return features
}

// Service turns a feature vector into a predicted finishing position. It
// is a stateless transform over the loaded model.
type Service struct {
	model Model
}

// NewService wraps a model; a nil model degrades every prediction to
// ErrModelUnavailable.
func NewService(model Model) *Service {
	return &Service{model: model}
}

func (s *Service) Available() bool {
	return s.model != nil
}

// Predict encodes the input, aligns it to the model's expected feature
// list (missing features zero-filled, extras dropped, order preserved) and
// rounds the regression output to the nearest finishing position.
func (s *Service) Predict(in Input) (int, error) {
	if s.model == nil {
		return 0, ErrModelUnavailable
	}

	encoded := in.featureMap()
	names := s.model.FeatureNames()
	vector := make([]float64, len(names))
	for i, name := range names {
		vector[i] = encoded[name]
	}

	raw, err := s.model.Predict(vector)
	if err != nil {
		return 0, err
	}
	return int(math.Round(raw)), nil
}
