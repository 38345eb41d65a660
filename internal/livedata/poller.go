package livedata

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/aryansoni13/F1-Prediction-model/internal/raceday"
)

// ErrNoData means the session produced no usable lap data: the feed is not
// live, the session has not started, or both the live and historical loads
// failed. All of these degrade identically.
var ErrNoData = errors.New("no lap data available")

// topN is how many entries the derived running-order prediction keeps.
const topN = 10

// SessionLoader loads lap data for one session, either from the live feed
// or from the historical/cached store.
type SessionLoader interface {
	Load(ctx context.Context, year, round int, session string, live bool) ([]raceday.LapRow, error)
}

// Poller drives one poll cycle against the timing feed. Live feeds are
// frequently incomplete or not yet started, so every failure path degrades
// the shared snapshot to unavailable instead of propagating; the loop
// driver keeps retrying at a fixed cadence.
type Poller struct {
	loader SessionLoader
	state  *raceday.State
}

func NewPoller(loader SessionLoader, state *raceday.State) *Poller {
	return &Poller{loader: loader, state: state}
}

// Poll runs one cycle: load the currently selected session (live first,
// historical fallback), derive predictions and replace the shared
// snapshot. On any failure the snapshot is cleared and ErrNoData-wrapped
// error is returned.
func (p *Poller) Poll(ctx context.Context, now time.Time) (*raceday.LiveSnapshot, error) {
	// Copied once per cycle; a concurrent session change applies from the
	// next cycle.
	sess := p.state.Session()

	laps, err := p.load(ctx, sess)
	if err != nil {
		p.state.ClearSnapshot()
		return nil, err
	}
	if len(laps) == 0 {
		p.state.ClearSnapshot()
		return nil, fmt.Errorf("session %d/%d %s has not started yet or data is not yet available: %w",
			sess.Year, sess.Round, sess.Session, ErrNoData)
	}

	snap := &raceday.LiveSnapshot{
		Laps:        laps,
		Predictions: Rank(laps),
		FetchedAt:   now,
	}
	p.state.SetSnapshot(snap)
	return snap, nil
}

func (p *Poller) load(ctx context.Context, sess raceday.LiveSessionConfig) ([]raceday.LapRow, error) {
	laps, err := p.loader.Load(ctx, sess.Year, sess.Round, sess.Session, true)
	if err == nil {
		return laps, nil
	}
	log.Debug().Err(err).
		Int("year", sess.Year).
		Int("round", sess.Round).
		Str("session", sess.Session).
		Msg("live load failed, trying historical data")

	laps, histErr := p.loader.Load(ctx, sess.Year, sess.Round, sess.Session, false)
	if histErr != nil {
		return nil, fmt.Errorf("load session %d/%d %s (live: %v): %w: %w",
			sess.Year, sess.Round, sess.Session, err, ErrNoData, histErr)
	}
	return laps, nil
}

// Rank derives the live running-order prediction: latest lap first,
// tie-broken by track position, truncated to the top ten, each entry
// annotated with its 1-based predicted position.
func Rank(laps []raceday.LapRow) []raceday.Prediction {
	ranked := append([]raceday.LapRow(nil), laps...)
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].LapNumber != ranked[j].LapNumber {
			return ranked[i].LapNumber > ranked[j].LapNumber
		}
		return ranked[i].Position < ranked[j].Position
	})

	if len(ranked) > topN {
		ranked = ranked[:topN]
	}

	predictions := make([]raceday.Prediction, len(ranked))
	for i, lap := range ranked {
		predictions[i] = raceday.Prediction{
			Driver:       lap.Driver,
			Team:         lap.Team,
			PredictedPos: i + 1,
		}
	}
	return predictions
}
