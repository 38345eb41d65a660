package raceday

import (
	"fmt"
	"strings"
	"time"
)

// Status represents the lifecycle state of the current race.
type Status string

const (
	StatusUpcoming Status = "upcoming"
	StatusLive     Status = "live"
	StatusFinished Status = "finished"
)

const (
	raceTimeLayout = "2006-01-02 15:04:05"
	raceDateLayout = "2006-01-02"
)

// RaceTime is a wall-clock timestamp serialized as "2006-01-02 15:04:05",
// the format the dashboard frontend sends and expects back.
type RaceTime struct {
	time.Time
}

func (t RaceTime) MarshalJSON() ([]byte, error) {
	return []byte(`"` + t.Format(raceTimeLayout) + `"`), nil
}

func (t *RaceTime) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	parsed, err := time.Parse(raceTimeLayout, s)
	if err != nil {
		return fmt.Errorf("parse race time %q: %w", s, err)
	}
	t.Time = parsed
	return nil
}

// RaceDate is a calendar date serialized as "2006-01-02".
type RaceDate struct {
	time.Time
}

func (d RaceDate) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.Format(raceDateLayout) + `"`), nil
}

func (d *RaceDate) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	parsed, err := time.Parse(raceDateLayout, s)
	if err != nil {
		return fmt.Errorf("parse race date %q: %w", s, err)
	}
	d.Time = parsed
	return nil
}

// RaceConfig is the canonical record for the race currently shown on the
// dashboard. There is exactly one instance process-wide; configuration
// updates and race-clock transitions replace it wholesale.
type RaceConfig struct {
	Round     int      `json:"raceNumber" binding:"required"`
	Name      string   `json:"raceName" binding:"required"`
	Location  string   `json:"location" binding:"required"`
	Latitude  float64  `json:"latitude"`
	Longitude float64  `json:"longitude"`
	StartTime RaceTime `json:"raceDateTime" binding:"required"`
	Status    Status   `json:"status"`
	APIKey    string   `json:"apiKey,omitempty"`
}

// QualifyingEntry is one row of the qualifying classification.
type QualifyingEntry struct {
	Driver   string `json:"driver" binding:"required"`
	Team     string `json:"team" binding:"required"`
	Time     string `json:"time" binding:"required"`
	Position int    `json:"position" binding:"required"`
}

// ScheduleEntry is one race of the season calendar. The calendar is
// read-only reference data.
type ScheduleEntry struct {
	Round     int      `json:"round"`
	Name      string   `json:"name"`
	Location  string   `json:"location"`
	Date      RaceDate `json:"date"`
	Latitude  float64  `json:"lat"`
	Longitude float64  `json:"lon"`
	Status    Status   `json:"status"`
}

// LiveSessionConfig selects which session the live-data poller follows.
type LiveSessionConfig struct {
	Year    int    `json:"year" binding:"required"`
	Round   int    `json:"round" binding:"required"`
	Session string `json:"session" binding:"required"`
}

// LapRow is one record of timing data for one driver on one lap, as
// returned by the timing feed.
type LapRow struct {
	Driver    string  `json:"Driver"`
	Team      string  `json:"Team,omitempty"`
	LapNumber int     `json:"LapNumber"`
	Position  int     `json:"Position"`
	LapTime   string  `json:"LapTime,omitempty"`
	Compound  string  `json:"Compound,omitempty"`
	Stint     int     `json:"Stint,omitempty"`
	SpeedTrap float64 `json:"SpeedST,omitempty"`
}

// Prediction is one entry of the derived live running-order prediction.
type Prediction struct {
	Driver       string `json:"driver"`
	Team         string `json:"team"`
	PredictedPos int    `json:"predictedPos"`
}

// LiveSnapshot is the result of the most recent successful poll. A nil
// snapshot means no live data is available; the snapshot is replaced as a
// whole, never merged.
type LiveSnapshot struct {
	Laps        []LapRow     `json:"laps"`
	Predictions []Prediction `json:"predictions"`
	FetchedAt   time.Time    `json:"fetchedAt"`
}

// Countdown is the decomposed time remaining until the race start.
// Remaining is whole seconds; the day/hour/minute/second fields are a floor
// decomposition of it and reconstruct it exactly.
type Countdown struct {
	Status    Status `json:"status"`
	Remaining int64  `json:"time_remaining"`
	Days      int64  `json:"days"`
	Hours     int64  `json:"hours"`
	Minutes   int64  `json:"minutes"`
	Seconds   int64  `json:"seconds"`
}
