package raceday

import "time"

// TimeUntilRace computes the countdown to the race start. At or past the
// scheduled time the race counts as live with zero remaining; before it,
// the remaining whole seconds are floor-decomposed into days, hours,
// minutes and seconds.
func TimeUntilRace(cfg RaceConfig, now time.Time) Countdown {
	if !now.Before(cfg.StartTime.Time) {
		return Countdown{Status: StatusLive}
	}

	total := int64(cfg.StartTime.Sub(now) / time.Second)
	return Countdown{
		Status:    StatusUpcoming,
		Remaining: total,
		Days:      total / 86400,
		Hours:     (total % 86400) / 3600,
		Minutes:   (total % 3600) / 60,
		Seconds:   total % 60,
	}
}

// NextRace returns the earliest schedule entry dated strictly after now.
// The schedule is date-ascending; when the season is over it falls back to
// the final round.
func NextRace(schedule []ScheduleEntry, now time.Time) (ScheduleEntry, bool) {
	if len(schedule) == 0 {
		return ScheduleEntry{}, false
	}
	for _, entry := range schedule {
		if entry.Date.After(now) {
			return entry, true
		}
	}
	return schedule[len(schedule)-1], true
}

// raceFromSchedule expands a calendar entry into a full race config. The
// calendar carries dates only; race start defaults to 14:00 UTC.
func raceFromSchedule(entry ScheduleEntry) RaceConfig {
	start := entry.Date.Add(14 * time.Hour)
	return RaceConfig{
		Round:     entry.Round,
		Name:      entry.Name,
		Location:  entry.Location,
		Latitude:  entry.Latitude,
		Longitude: entry.Longitude,
		StartTime: RaceTime{start},
		Status:    StatusUpcoming,
	}
}

// AdvanceIfFinished performs race auto-progression: once the current race
// is finished, the config rolls over to the next scheduled race as
// upcoming. Returns the (possibly unchanged) race config and whether a
// rollover happened. Idempotent for a fixed now.
func (s *State) AdvanceIfFinished(now time.Time) (RaceConfig, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.race.Status != StatusFinished {
		return s.race, false
	}
	next, ok := NextRace(s.schedule, now)
	if !ok || next.Round == s.race.Round {
		return s.race, false
	}
	s.race = raceFromSchedule(next)
	return s.race, true
}
