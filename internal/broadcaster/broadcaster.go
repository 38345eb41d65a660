// Package broadcaster owns the two periodic loops behind the live
// dashboard: the 1s race-clock tick and the 10s live-data poll. Each loop
// iteration returns an explicit result consumed by the loop driver, which
// logs recoverable errors and keeps going; no iteration failure ever
// terminates a loop.
package broadcaster

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"

	"github.com/aryansoni13/F1-Prediction-model/internal/events"
	"github.com/aryansoni13/F1-Prediction-model/internal/livedata"
	"github.com/aryansoni13/F1-Prediction-model/internal/raceday"
)

// EventSink receives fan-out events; the websocket registry implements it.
type EventSink interface {
	Broadcast(env events.Envelope) int
}

// Intervals tunes the loop cadences.
type Intervals struct {
	Tick          time.Duration
	TickErrorWait time.Duration
	Poll          time.Duration
}

func DefaultIntervals() Intervals {
	return Intervals{
		Tick:          1 * time.Second,
		TickErrorWait: 5 * time.Second,
		Poll:          10 * time.Second,
	}
}

// Broadcaster drives race-clock and live-data updates into the sink and
// mirrors them to the publisher.
type Broadcaster struct {
	state     *raceday.State
	poller    *livedata.Poller
	sink      EventSink
	publisher events.Publisher
	clock     clockwork.Clock
	intervals Intervals
}

func New(state *raceday.State, poller *livedata.Poller, sink EventSink, publisher events.Publisher, clock clockwork.Clock, intervals Intervals) *Broadcaster {
	return &Broadcaster{
		state:     state,
		poller:    poller,
		sink:      sink,
		publisher: publisher,
		clock:     clock,
		intervals: intervals,
	}
}

// Run starts both loops and blocks until the context is cancelled.
func (b *Broadcaster) Run(ctx context.Context) {
	log.Info().
		Dur("tick_interval", b.intervals.Tick).
		Dur("poll_interval", b.intervals.Poll).
		Msg("broadcast loops started")

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		b.runClockLoop(ctx)
	}()
	go func() {
		defer wg.Done()
		b.runPollLoop(ctx)
	}()
	wg.Wait()

	log.Info().Msg("broadcast loops stopped")
}

func (b *Broadcaster) runClockLoop(ctx context.Context) {
	for {
		delay := b.intervals.Tick
		if err := b.TickOnce(b.clock.Now()); err != nil {
			log.Error().Err(err).Msg("race clock tick failed")
			delay = b.intervals.TickErrorWait
		}
		select {
		case <-ctx.Done():
			return
		case <-b.clock.After(delay):
		}
	}
}

func (b *Broadcaster) runPollLoop(ctx context.Context) {
	for {
		if err := b.PollOnce(ctx); err != nil {
			if errors.Is(err, livedata.ErrNoData) {
				log.Warn().Err(err).Msg("no live data this cycle")
			} else {
				log.Error().Err(err).Msg("live data poll failed")
			}
		}
		// Failure and success wait the same fixed interval; failures are
		// treated uniformly each cycle.
		select {
		case <-ctx.Done():
			return
		case <-b.clock.After(b.intervals.Poll):
		}
	}
}

// TickOnce runs one race-clock iteration: detect the upcoming→live
// crossing, perform auto-progression bookkeeping for a finished race, and
// broadcast the countdown unconditionally.
func (b *Broadcaster) TickOnce(now time.Time) error {
	cfg := b.state.Race()
	countdown := raceday.TimeUntilRace(cfg, now)

	var errs []error

	// Only an upcoming race goes live on the clock crossing; a finished
	// race is owned by auto-progression below. MarkLive re-checks under
	// the lock, so a config write racing this tick cannot be promoted.
	if countdown.Status == raceday.StatusLive && cfg.Status == raceday.StatusUpcoming {
		if b.state.MarkLive() {
			payload := events.RaceStatusPayload{
				Status:  raceday.StatusLive,
				Message: fmt.Sprintf("Race is now LIVE! %s", cfg.Name),
			}
			if err := b.emit(events.TypeRaceStatus, payload); err != nil {
				errs = append(errs, err)
			}
		}
	}

	if cfg.Status == raceday.StatusFinished {
		if newRace, advanced := b.state.AdvanceIfFinished(now); advanced {
			log.Info().Int("round", newRace.Round).Str("race", newRace.Name).Msg("advanced to next race")
			if err := b.emit(events.TypeRaceProgression, events.RaceProgressionPayload{NewRace: newRace}); err != nil {
				errs = append(errs, err)
			}
		}
	}

	if err := b.emit(events.TypeCountdown, countdown); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// PollOnce runs one live-data iteration and broadcasts its outcome: a
// snapshot summary on success, an error-tagged update when the feed has
// nothing.
func (b *Broadcaster) PollOnce(ctx context.Context) error {
	now := b.clock.Now()
	snap, err := b.poller.Poll(ctx, now)
	if err != nil {
		payload := events.LiveLapsPayload{
			Error:     err.Error(),
			Timestamp: now.UTC(),
		}
		if emitErr := b.emit(events.TypeLiveLapsUpdate, payload); emitErr != nil {
			return errors.Join(err, emitErr)
		}
		return err
	}

	payload := events.LiveLapsPayload{
		LapCount:    len(snap.Laps),
		Predictions: snap.Predictions,
		Timestamp:   now.UTC(),
	}
	return b.emit(events.TypeLiveLapsUpdate, payload)
}

func (b *Broadcaster) emit(eventType events.Type, payload any) error {
	env, err := events.New(eventType, payload)
	if err != nil {
		return err
	}
	b.sink.Broadcast(env)
	if err := b.publisher.Publish(env); err != nil {
		log.Warn().Err(err).Str("event_type", string(eventType)).Msg("event mirror publish failed")
	}
	return nil
}
