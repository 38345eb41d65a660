package raceday

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func testRace(start time.Time) RaceConfig {
	return RaceConfig{
		Round:     9,
		Name:      "Canadian Grand Prix",
		Location:  "Montreal",
		Latitude:  45.5048,
		Longitude: -73.5522,
		StartTime: RaceTime{start},
		Status:    StatusUpcoming,
	}
}

func TestTimeUntilRaceLive(t *testing.T) {
	start := time.Date(2025, 6, 15, 14, 0, 0, 0, time.UTC)
	cfg := testRace(start)

	for _, now := range []time.Time{
		start,
		start.Add(time.Second),
		start.Add(48 * time.Hour),
	} {
		countdown := TimeUntilRace(cfg, now)
		require.Equal(t, StatusLive, countdown.Status)
		require.Zero(t, countdown.Remaining)
	}
}

func TestTimeUntilRaceDecomposition(t *testing.T) {
	start := time.Date(2025, 6, 15, 14, 0, 0, 0, time.UTC)
	cfg := testRace(start)

	tests := []struct {
		name   string
		before time.Duration
	}{
		{"one second", time.Second},
		{"just under a minute", 59 * time.Second},
		{"ninety minutes", 90 * time.Minute},
		{"a day and change", 24*time.Hour + 3*time.Hour + 25*time.Minute + 7*time.Second},
		{"weeks out", 17*24*time.Hour + 23*time.Hour + 59*time.Minute + 59*time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			countdown := TimeUntilRace(cfg, start.Add(-tt.before))
			require.Equal(t, StatusUpcoming, countdown.Status)
			require.Equal(t, int64(tt.before/time.Second), countdown.Remaining)

			reconstructed := countdown.Days*86400 + countdown.Hours*3600 + countdown.Minutes*60 + countdown.Seconds
			require.Equal(t, countdown.Remaining, reconstructed)
			require.Less(t, countdown.Hours, int64(24))
			require.Less(t, countdown.Minutes, int64(60))
			require.Less(t, countdown.Seconds, int64(60))
		})
	}
}

func TestNextRaceStrictlyAfter(t *testing.T) {
	// Exactly on round 9's date: not strictly after, so round 10 is next.
	now := Schedule2025[8].Date.Time
	next, ok := NextRace(Schedule2025, now)
	require.True(t, ok)
	require.Equal(t, 10, next.Round)

	next, ok = NextRace(Schedule2025, now.Add(-time.Hour))
	require.True(t, ok)
	require.Equal(t, 9, next.Round)
}

func TestNextRaceFallsBackToFinalRound(t *testing.T) {
	next, ok := NextRace(Schedule2025, time.Date(2025, 12, 25, 0, 0, 0, 0, time.UTC))
	require.True(t, ok)
	require.Equal(t, 24, next.Round)

	_, ok = NextRace(nil, time.Now())
	require.False(t, ok)
}

func TestAdvanceIfFinished(t *testing.T) {
	now := time.Date(2025, 6, 16, 10, 0, 0, 0, time.UTC)
	state := NewState(Schedule2025, DefaultRace())
	state.SetRaceStatus(StatusFinished)

	cfg, advanced := state.AdvanceIfFinished(now)
	require.True(t, advanced)
	require.Equal(t, 10, cfg.Round)
	require.Equal(t, "Spanish Grand Prix", cfg.Name)
	require.Equal(t, StatusUpcoming, cfg.Status)
	require.Equal(t, time.Date(2025, 6, 22, 14, 0, 0, 0, time.UTC), cfg.StartTime.Time)
}

func TestAdvanceIfFinishedIdempotent(t *testing.T) {
	now := time.Date(2025, 6, 16, 10, 0, 0, 0, time.UTC)
	state := NewState(Schedule2025, DefaultRace())
	state.SetRaceStatus(StatusFinished)

	first, advanced := state.AdvanceIfFinished(now)
	require.True(t, advanced)

	second, advanced := state.AdvanceIfFinished(now)
	require.False(t, advanced)
	require.Equal(t, first, second)
}

func TestAdvanceIfFinishedRequiresFinished(t *testing.T) {
	state := NewState(Schedule2025, DefaultRace())

	cfg, advanced := state.AdvanceIfFinished(time.Now())
	require.False(t, advanced)
	require.Equal(t, 9, cfg.Round)
}
