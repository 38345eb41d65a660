package predict

import (
	"testing"

	"github.com/stretchr/testify/require"
)

type stubModel struct {
	features []string
	received []float64
	out      float64
}

func (m *stubModel) FeatureNames() []string { return m.features }

func (m *stubModel) Predict(features []float64) (float64, error) {
	m.received = features
	return m.out, nil
}

func sampleInput() Input {
	return Input{
		Year:            2025,
		Round:           9,
		Circuit:         "Montreal",
		Driver:          "Max Verstappen",
		Team:            "Red Bull",
		GridPosition:    2,
		QualifyingTime:  72.345,
		AvgRacePace:     90.1,
		PitStops:        2,
		TireStrategy:    "Medium",
		Weather:         "Clear",
		Temp:            22.5,
		RainProbability: 10,
		TeamPoints:      144,
		DriverPoints:    155,
	}
}

func TestPredictZeroFillsMissingExpectedFeatures(t *testing.T) {
	// The model expects a one-hot column the input's encoding does not
	// produce; it must arrive zero-filled, in the model's column order.
	model := &stubModel{
		features: []string{"grid_position", "driver_Lewis Hamilton", "driver_Max Verstappen"},
		out:      1.0,
	}
	svc := NewService(model)

	_, err := svc.Predict(sampleInput())
	require.NoError(t, err)
	require.Equal(t, []float64{2, 0, 1}, model.received)
}

func TestPredictDropsExtraInputColumns(t *testing.T) {
	model := &stubModel{features: []string{"qualifying_time"}, out: 5}
	svc := NewService(model)

	_, err := svc.Predict(sampleInput())
	require.NoError(t, err)
	require.Equal(t, []float64{72.345}, model.received)
}

func TestPredictRoundsToNearestPosition(t *testing.T) {
	tests := []struct {
		raw  float64
		want int
	}{
		{3.4, 3},
		{3.6, 4},
		{3.5, 4},
		{1.0, 1},
	}
	for _, tt := range tests {
		model := &stubModel{features: []string{"grid_position"}, out: tt.raw}
		got, err := NewService(model).Predict(sampleInput())
		require.NoError(t, err)
		require.Equal(t, tt.want, got)
	}
}

func TestPredictOneHotEncoding(t *testing.T) {
	model := &stubModel{
		features: []string{
			"team_Red Bull",
			"circuit_Montreal",
			"tire_strategy_Medium",
			"weather_Clear",
			"team_Ferrari",
		},
		out: 1,
	}
	svc := NewService(model)

	_, err := svc.Predict(sampleInput())
	require.NoError(t, err)
	require.Equal(t, []float64{1, 1, 1, 1, 0}, model.received)
}

func TestPredictWithoutModel(t *testing.T) {
	svc := NewService(nil)
	require.False(t, svc.Available())

	_, err := svc.Predict(sampleInput())
	require.ErrorIs(t, err, ErrModelUnavailable)
}
