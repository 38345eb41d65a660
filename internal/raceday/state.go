package raceday

import (
	"sync"
	"time"
)

// State owns every process-wide mutable record: the current race config,
// qualifying classification, constructor points, the live session selector
// and the latest live snapshot. All writers replace a record wholesale
// under the lock; readers get copies, so a reader observes either the old
// or the new value but never a torn one. Created once at process start and
// handed by reference to the loops and the request layer.
type State struct {
	mu sync.RWMutex

	race       RaceConfig
	qualifying []QualifyingEntry
	teamPoints map[string]int
	session    LiveSessionConfig
	snapshot   *LiveSnapshot

	schedule []ScheduleEntry
}

// NewState builds the state container seeded with the given schedule and
// the race the dashboard should show on first load.
func NewState(schedule []ScheduleEntry, race RaceConfig) *State {
	s := &State{
		race:       race,
		qualifying: append([]QualifyingEntry(nil), DefaultQualifying...),
		teamPoints: make(map[string]int, len(DefaultTeamPoints2025)),
		session:    LiveSessionConfig{Year: 2024, Round: race.Round, Session: "R"},
		schedule:   schedule,
	}
	for team, points := range DefaultTeamPoints2025 {
		s.teamPoints[team] = points
	}
	return s
}

// DefaultRace is the race config the process boots with when none has been
// pushed yet.
func DefaultRace() RaceConfig {
	return RaceConfig{
		Round:     9,
		Name:      "Canadian Grand Prix",
		Location:  "Montreal",
		Latitude:  45.5048,
		Longitude: -73.5522,
		StartTime: RaceTime{time.Date(2025, 6, 15, 14, 0, 0, 0, time.UTC)},
		Status:    StatusUpcoming,
	}
}

func (s *State) Race() RaceConfig {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.race
}

// SetRace replaces the race config wholesale. Status is forced back to
// upcoming; the clock loop owns the upcoming→live transition.
func (s *State) SetRace(cfg RaceConfig) {
	cfg.Status = StatusUpcoming
	s.mu.Lock()
	s.race = cfg
	s.mu.Unlock()
}

// SetRaceStatus overwrites only the lifecycle status of the current race.
func (s *State) SetRaceStatus(status Status) {
	s.mu.Lock()
	s.race.Status = status
	s.mu.Unlock()
}

// MarkLive promotes the current race to live, but only from upcoming. The
// check runs under the write lock, so a config replacement or a finished
// status landing just before the flip wins; the clock can never promote a
// non-upcoming race. Returns whether it transitioned, so the caller
// broadcasts the announcement exactly once.
func (s *State) MarkLive() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.race.Status != StatusUpcoming {
		return false
	}
	s.race.Status = StatusLive
	return true
}

func (s *State) Qualifying() []QualifyingEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]QualifyingEntry(nil), s.qualifying...)
}

func (s *State) SetQualifying(entries []QualifyingEntry) {
	s.mu.Lock()
	s.qualifying = append([]QualifyingEntry(nil), entries...)
	s.mu.Unlock()
}

func (s *State) TeamPoints() map[string]int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	points := make(map[string]int, len(s.teamPoints))
	for team, p := range s.teamPoints {
		points[team] = p
	}
	return points
}

func (s *State) SetTeamPoints(points map[string]int) {
	replacement := make(map[string]int, len(points))
	for team, p := range points {
		replacement[team] = p
	}
	s.mu.Lock()
	s.teamPoints = replacement
	s.mu.Unlock()
}

func (s *State) Session() LiveSessionConfig {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.session
}

func (s *State) SetSession(cfg LiveSessionConfig) {
	s.mu.Lock()
	s.session = cfg
	s.mu.Unlock()
}

// Snapshot returns the latest live snapshot, or nil when no live data is
// available.
func (s *State) Snapshot() *LiveSnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot
}

func (s *State) SetSnapshot(snap *LiveSnapshot) {
	s.mu.Lock()
	s.snapshot = snap
	s.mu.Unlock()
}

// ClearSnapshot degrades the live data to unavailable. Stale data must not
// outlive a failed poll.
func (s *State) ClearSnapshot() {
	s.mu.Lock()
	s.snapshot = nil
	s.mu.Unlock()
}

func (s *State) Schedule() []ScheduleEntry {
	return s.schedule
}
