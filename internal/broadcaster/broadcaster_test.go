package broadcaster

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/require"

	"github.com/aryansoni13/F1-Prediction-model/internal/events"
	"github.com/aryansoni13/F1-Prediction-model/internal/livedata"
	"github.com/aryansoni13/F1-Prediction-model/internal/raceday"
)

type recordingSink struct {
	mu        sync.Mutex
	envelopes []events.Envelope
}

func (r *recordingSink) Broadcast(env events.Envelope) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.envelopes = append(r.envelopes, env)
	return 1
}

func (r *recordingSink) byType(eventType events.Type) []events.Envelope {
	r.mu.Lock()
	defer r.mu.Unlock()
	var matched []events.Envelope
	for _, env := range r.envelopes {
		if env.Type == eventType {
			matched = append(matched, env)
		}
	}
	return matched
}

type stubLoader struct {
	mu   sync.Mutex
	rows []raceday.LapRow
	err  error
}

func (l *stubLoader) Load(context.Context, int, int, string, bool) ([]raceday.LapRow, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.rows, l.err
}

func newTestBroadcaster(loader livedata.SessionLoader, clock clockwork.Clock) (*Broadcaster, *raceday.State, *recordingSink) {
	state := raceday.NewState(raceday.Schedule2025, raceday.DefaultRace())
	sink := &recordingSink{}
	b := New(state, livedata.NewPoller(loader, state), sink, events.NoopPublisher{}, clock, DefaultIntervals())
	return b, state, sink
}

func TestTickOnceBroadcastsCountdown(t *testing.T) {
	b, state, sink := newTestBroadcaster(&stubLoader{}, clockwork.NewFakeClock())

	now := state.Race().StartTime.Add(-90 * time.Second)
	require.NoError(t, b.TickOnce(now))

	countdowns := sink.byType(events.TypeCountdown)
	require.Len(t, countdowns, 1)
	require.Empty(t, sink.byType(events.TypeRaceStatus))

	var countdown raceday.Countdown
	require.NoError(t, json.Unmarshal(countdowns[0].Data, &countdown))
	require.Equal(t, raceday.StatusUpcoming, countdown.Status)
	require.Equal(t, int64(90), countdown.Remaining)
}

func TestTickOnceAnnouncesLiveTransitionOnce(t *testing.T) {
	b, state, sink := newTestBroadcaster(&stubLoader{}, clockwork.NewFakeClock())

	now := state.Race().StartTime.Add(time.Second)
	require.NoError(t, b.TickOnce(now))
	require.Equal(t, raceday.StatusLive, state.Race().Status)

	statuses := sink.byType(events.TypeRaceStatus)
	require.Len(t, statuses, 1)
	var payload events.RaceStatusPayload
	require.NoError(t, json.Unmarshal(statuses[0].Data, &payload))
	require.Equal(t, raceday.StatusLive, payload.Status)
	require.Contains(t, payload.Message, "Canadian Grand Prix")

	// The next tick must not re-announce.
	require.NoError(t, b.TickOnce(now.Add(time.Second)))
	require.Len(t, sink.byType(events.TypeRaceStatus), 1)
	require.Len(t, sink.byType(events.TypeCountdown), 2)
}

func TestTickOnceAdvancesFinishedRace(t *testing.T) {
	b, state, sink := newTestBroadcaster(&stubLoader{}, clockwork.NewFakeClock())
	state.SetRaceStatus(raceday.StatusFinished)

	now := time.Date(2025, 6, 16, 10, 0, 0, 0, time.UTC)
	require.NoError(t, b.TickOnce(now))

	progressions := sink.byType(events.TypeRaceProgression)
	require.Len(t, progressions, 1)
	var payload events.RaceProgressionPayload
	require.NoError(t, json.Unmarshal(progressions[0].Data, &payload))
	require.Equal(t, 10, payload.NewRace.Round)
	require.Equal(t, raceday.StatusUpcoming, state.Race().Status)

	// Progression already happened; the next tick is quiet about it.
	require.NoError(t, b.TickOnce(now.Add(time.Second)))
	require.Len(t, sink.byType(events.TypeRaceProgression), 1)
}

func TestPollOnceBroadcastsSnapshot(t *testing.T) {
	loader := &stubLoader{rows: []raceday.LapRow{
		{Driver: "B", Team: "Ferrari", LapNumber: 5, Position: 1},
		{Driver: "A", Team: "Red Bull", LapNumber: 5, Position: 2},
	}}
	b, state, sink := newTestBroadcaster(loader, clockwork.NewFakeClock())

	require.NoError(t, b.PollOnce(context.Background()))
	require.NotNil(t, state.Snapshot())

	updates := sink.byType(events.TypeLiveLapsUpdate)
	require.Len(t, updates, 1)
	var payload events.LiveLapsPayload
	require.NoError(t, json.Unmarshal(updates[0].Data, &payload))
	require.Equal(t, 2, payload.LapCount)
	require.Empty(t, payload.Error)
	require.Equal(t, "B", payload.Predictions[0].Driver)
}

func TestPollOnceBroadcastsErrorWhenFeedUnavailable(t *testing.T) {
	loader := &stubLoader{err: errors.New("feed down")}
	b, state, sink := newTestBroadcaster(loader, clockwork.NewFakeClock())

	err := b.PollOnce(context.Background())
	require.ErrorIs(t, err, livedata.ErrNoData)
	require.Nil(t, state.Snapshot())

	updates := sink.byType(events.TypeLiveLapsUpdate)
	require.Len(t, updates, 1)
	var payload events.LiveLapsPayload
	require.NoError(t, json.Unmarshal(updates[0].Data, &payload))
	require.NotEmpty(t, payload.Error)
	require.Zero(t, payload.LapCount)
	// The error frame carries no lap count key at all.
	require.NotContains(t, string(updates[0].Data), "lap_count")
}

func TestRunLoopsSurviveFailingIterations(t *testing.T) {
	clock := clockwork.NewFakeClock()
	loader := &stubLoader{err: errors.New("feed down")}
	b, _, sink := newTestBroadcaster(loader, clock)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		b.Run(ctx)
		close(done)
	}()

	// Both loops ran their first iteration and parked on their timers.
	clock.BlockUntil(2)
	require.Len(t, sink.byType(events.TypeLiveLapsUpdate), 1)

	// Firing both timers proves the failing poll did not kill its loop.
	clock.Advance(DefaultIntervals().Poll)
	clock.BlockUntil(2)
	require.Len(t, sink.byType(events.TypeLiveLapsUpdate), 2)
	require.NotEmpty(t, sink.byType(events.TypeCountdown))

	cancel()
	clock.Advance(DefaultIntervals().Poll)
	<-done
}
