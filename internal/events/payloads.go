package events

import (
	"time"

	"github.com/aryansoni13/F1-Prediction-model/internal/raceday"
)

// ConnectionEstablishedPayload greets a newly attached subscriber with the
// current race config and countdown. Sent to that subscriber only.
type ConnectionEstablishedPayload struct {
	Message       string             `json:"message"`
	CurrentConfig raceday.RaceConfig `json:"currentConfig"`
	TimeUntilRace raceday.Countdown  `json:"timeUntilRace"`
}

// RaceStatusPayload announces a lifecycle transition of the current race.
type RaceStatusPayload struct {
	Status  raceday.Status `json:"status"`
	Message string         `json:"message"`
}

// RaceProgressionPayload announces the rollover to the next scheduled race.
type RaceProgressionPayload struct {
	NewRace raceday.RaceConfig `json:"new_race"`
}

// LiveLapsPayload carries the outcome of one poll cycle: either a snapshot
// summary or an error note when the feed has no data.
type LiveLapsPayload struct {
	LapCount    int                  `json:"lap_count,omitempty"`
	Predictions []raceday.Prediction `json:"predictions,omitempty"`
	Error       string               `json:"error,omitempty"`
	Timestamp   time.Time            `json:"timestamp"`
}
