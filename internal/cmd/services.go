package main

import (
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"

	"github.com/aryansoni13/F1-Prediction-model/clients/fastf1"
	"github.com/aryansoni13/F1-Prediction-model/clients/openweather"
	"github.com/aryansoni13/F1-Prediction-model/internal/api"
	"github.com/aryansoni13/F1-Prediction-model/internal/broadcaster"
	"github.com/aryansoni13/F1-Prediction-model/internal/events"
	"github.com/aryansoni13/F1-Prediction-model/internal/gateway"
	"github.com/aryansoni13/F1-Prediction-model/internal/livedata"
	"github.com/aryansoni13/F1-Prediction-model/internal/predict"
	"github.com/aryansoni13/F1-Prediction-model/internal/raceday"
	"github.com/aryansoni13/F1-Prediction-model/internal/weather"
)

type Services struct {
	State       *raceday.State
	Registry    *gateway.Registry
	Broadcaster *broadcaster.Broadcaster
	Publisher   events.Publisher
	Handlers    *api.Handlers
}

// setupServices wires the dependency chain: state container → clients →
// domain services → broadcast loops → HTTP surface.
func setupServices(config *Config) *Services {
	clock := clockwork.NewRealClock()

	state := raceday.NewState(raceday.Schedule2025, raceday.DefaultRace())

	// Missing model artifact is non-fatal; predictions degrade to
	// "unavailable".
	var model predict.Model
	if loaded, err := predict.LoadModel(config.Model.Path); err != nil {
		log.Warn().Err(err).Str("path", config.Model.Path).Msg("could not load prediction model")
	} else {
		model = loaded
		log.Info().Str("path", config.Model.Path).Int("features", len(loaded.FeatureNames())).Msg("prediction model loaded")
	}
	predictor := predict.NewService(model)

	timingClient := fastf1.NewClient(config.FastF1.BaseURL)
	weatherClient := openweather.NewClient(config.Weather.BaseURL)

	poller := livedata.NewPoller(timingClient, state)
	weatherSvc := weather.NewService(weatherClient, clock)

	registry := gateway.NewRegistry()
	hub := gateway.NewHub(registry, gateway.DefaultConfig())

	var publisher events.Publisher = events.NoopPublisher{}
	if config.NATS.URL != "" {
		natsPublisher, err := events.NewNATSPublisher(config.NATS.URL)
		if err != nil {
			log.Warn().Err(err).Str("url", config.NATS.URL).Msg("event mirror disabled")
		} else {
			publisher = natsPublisher
			log.Info().Str("url", config.NATS.URL).Msg("event mirror enabled")
		}
	}

	caster := broadcaster.New(state, poller, registry, publisher, clock, config.intervals())

	handlers := api.NewHandlers(state, weatherSvc, weatherClient, predictor, registry, hub, clock, config.Weather.APIKey)

	return &Services{
		State:       state,
		Registry:    registry,
		Broadcaster: caster,
		Publisher:   publisher,
		Handlers:    handlers,
	}
}
