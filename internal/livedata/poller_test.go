package livedata

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/aryansoni13/F1-Prediction-model/internal/raceday"
)

type stubLoader struct {
	liveRows  []raceday.LapRow
	liveErr   error
	histRows  []raceday.LapRow
	histErr   error
	liveCalls int
	histCalls int
}

func (l *stubLoader) Load(_ context.Context, year, round int, session string, live bool) ([]raceday.LapRow, error) {
	if live {
		l.liveCalls++
		return l.liveRows, l.liveErr
	}
	l.histCalls++
	return l.histRows, l.histErr
}

func newTestState() *raceday.State {
	return raceday.NewState(raceday.Schedule2025, raceday.DefaultRace())
}

func TestRankOrdersByLapThenPosition(t *testing.T) {
	laps := []raceday.LapRow{
		{Driver: "A", Team: "Red Bull", LapNumber: 5, Position: 2},
		{Driver: "B", Team: "Ferrari", LapNumber: 5, Position: 1},
		{Driver: "C", Team: "McLaren", LapNumber: 4, Position: 1},
	}

	predictions := Rank(laps)
	require.Len(t, predictions, 3)
	require.Equal(t, "B", predictions[0].Driver)
	require.Equal(t, 1, predictions[0].PredictedPos)
	require.Equal(t, "A", predictions[1].Driver)
	require.Equal(t, 2, predictions[1].PredictedPos)
	require.Equal(t, "C", predictions[2].Driver)
}

func TestRankTruncatesToTopTen(t *testing.T) {
	var laps []raceday.LapRow
	for i := 1; i <= 14; i++ {
		laps = append(laps, raceday.LapRow{Driver: fmt.Sprintf("D%02d", i), LapNumber: 20, Position: i})
	}

	predictions := Rank(laps)
	require.Len(t, predictions, 10)
	require.Equal(t, "D01", predictions[0].Driver)
	require.Equal(t, "D10", predictions[9].Driver)
	require.Equal(t, 10, predictions[9].PredictedPos)
}

func TestPollStoresSnapshot(t *testing.T) {
	state := newTestState()
	loader := &stubLoader{liveRows: []raceday.LapRow{
		{Driver: "VER", Team: "Red Bull", LapNumber: 12, Position: 1},
		{Driver: "NOR", Team: "McLaren", LapNumber: 12, Position: 2},
	}}
	poller := NewPoller(loader, state)

	now := time.Date(2025, 6, 15, 14, 30, 0, 0, time.UTC)
	snap, err := poller.Poll(context.Background(), now)
	require.NoError(t, err)
	require.Len(t, snap.Laps, 2)
	require.Equal(t, "VER", snap.Predictions[0].Driver)
	require.Equal(t, now, snap.FetchedAt)
	require.Same(t, snap, state.Snapshot())
	require.Equal(t, 1, loader.liveCalls)
	require.Zero(t, loader.histCalls)
}

func TestPollFallsBackToHistorical(t *testing.T) {
	state := newTestState()
	loader := &stubLoader{
		liveErr:  errors.New("feed not live"),
		histRows: []raceday.LapRow{{Driver: "LEC", Team: "Ferrari", LapNumber: 44, Position: 3}},
	}
	poller := NewPoller(loader, state)

	snap, err := poller.Poll(context.Background(), time.Now())
	require.NoError(t, err)
	require.Len(t, snap.Laps, 1)
	require.Equal(t, 1, loader.liveCalls)
	require.Equal(t, 1, loader.histCalls)
}

func TestPollBothSourcesFail(t *testing.T) {
	state := newTestState()
	loader := &stubLoader{
		liveErr: errors.New("feed not live"),
		histErr: errors.New("no cached session"),
	}
	poller := NewPoller(loader, state)

	_, err := poller.Poll(context.Background(), time.Now())
	require.ErrorIs(t, err, ErrNoData)
	require.Nil(t, state.Snapshot())
}

func TestPollEmptyDataset(t *testing.T) {
	state := newTestState()
	poller := NewPoller(&stubLoader{}, state)

	_, err := poller.Poll(context.Background(), time.Now())
	require.ErrorIs(t, err, ErrNoData)
	require.Nil(t, state.Snapshot())
}

func TestConsecutiveFailuresNeverRetainStaleSnapshot(t *testing.T) {
	state := newTestState()
	loader := &stubLoader{liveRows: []raceday.LapRow{{Driver: "VER", LapNumber: 1, Position: 1}}}
	poller := NewPoller(loader, state)

	_, err := poller.Poll(context.Background(), time.Now())
	require.NoError(t, err)
	require.NotNil(t, state.Snapshot())

	loader.liveRows = nil
	loader.liveErr = errors.New("down")
	loader.histErr = errors.New("down")

	_, err = poller.Poll(context.Background(), time.Now())
	require.Error(t, err)
	require.Nil(t, state.Snapshot())

	_, err = poller.Poll(context.Background(), time.Now())
	require.Error(t, err)
	require.Nil(t, state.Snapshot())
}

func TestPollReadsSessionSelector(t *testing.T) {
	state := newTestState()
	var gotYear, gotRound int
	var gotSession string
	loader := loaderFunc(func(_ context.Context, year, round int, session string, live bool) ([]raceday.LapRow, error) {
		gotYear, gotRound, gotSession = year, round, session
		return []raceday.LapRow{{Driver: "HAM", LapNumber: 1, Position: 1}}, nil
	})
	poller := NewPoller(loader, state)

	state.SetSession(raceday.LiveSessionConfig{Year: 2024, Round: 5, Session: "Q"})
	_, err := poller.Poll(context.Background(), time.Now())
	require.NoError(t, err)
	require.Equal(t, 2024, gotYear)
	require.Equal(t, 5, gotRound)
	require.Equal(t, "Q", gotSession)
}

type loaderFunc func(ctx context.Context, year, round int, session string, live bool) ([]raceday.LapRow, error)

func (f loaderFunc) Load(ctx context.Context, year, round int, session string, live bool) ([]raceday.LapRow, error) {
	return f(ctx, year, round, session, live)
}
