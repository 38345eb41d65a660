package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"

	"github.com/aryansoni13/F1-Prediction-model/internal/events"
	"github.com/aryansoni13/F1-Prediction-model/internal/gateway"
	"github.com/aryansoni13/F1-Prediction-model/internal/predict"
	"github.com/aryansoni13/F1-Prediction-model/internal/raceday"
	"github.com/aryansoni13/F1-Prediction-model/internal/weather"
)

// ForecastFetcher proxies the uncached forecast endpoint.
type ForecastFetcher interface {
	FetchForecast(ctx context.Context, lat, lon float64, apiKey string) (json.RawMessage, error)
}

// Handlers binds the HTTP surface to the shared state and services.
type Handlers struct {
	state      *raceday.State
	weather    *weather.Service
	forecaster ForecastFetcher
	predictor  *predict.Service
	registry   *gateway.Registry
	hub        *gateway.Hub
	clock      clockwork.Clock
	envAPIKey  string
}

func NewHandlers(
	state *raceday.State,
	weatherSvc *weather.Service,
	forecaster ForecastFetcher,
	predictor *predict.Service,
	registry *gateway.Registry,
	hub *gateway.Hub,
	clock clockwork.Clock,
	envAPIKey string,
) *Handlers {
	return &Handlers{
		state:      state,
		weather:    weatherSvc,
		forecaster: forecaster,
		predictor:  predictor,
		registry:   registry,
		hub:        hub,
		clock:      clock,
		envAPIKey:  envAPIKey,
	}
}

// NewRouter wires every route of the dashboard API.
func NewRouter(h *Handlers) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	router.GET("/", h.Root)
	router.GET("/config", h.GetConfig)
	router.POST("/config/race", h.UpdateRaceConfig)
	router.POST("/config/qualifying", h.UpdateQualifying)
	router.POST("/config/team-points", h.UpdateTeamPoints)
	router.POST("/live/session", h.SetLiveSession)
	router.GET("/live/laps", h.GetLiveLaps)
	router.GET("/live/predictions", h.GetLivePredictions)
	router.GET("/predictions/live", h.GetPredictionsLive)
	router.GET("/weather/live", h.GetLiveWeather)
	router.GET("/weather/:lat/:lon", h.GetWeatherForecast)
	router.POST("/predict", h.Predict)
	router.GET("/status", h.GetStatus)
	router.GET("/generate-code", h.GenerateCode)
	router.GET("/ws", h.ServeWS)

	return router
}

func (h *Handlers) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "F1 Prediction API", "status": "real-time"})
}

func (h *Handlers) GetConfig(c *gin.Context) {
	now := h.clock.Now()
	race := h.state.Race()
	nextRace, _ := raceday.NextRace(h.state.Schedule(), now)

	c.JSON(http.StatusOK, gin.H{
		"raceConfig":       race,
		"qualifyingTimes":  h.state.Qualifying(),
		"teamPoints":       h.state.TeamPoints(),
		"raceSchedule":     h.state.Schedule(),
		"timeUntilRace":    raceday.TimeUntilRace(race, now),
		"nextRace":         nextRace,
		"connectionStatus": "connected",
		"lastUpdate":       now.UTC().Format(time.RFC3339),
	})
}

func (h *Handlers) UpdateRaceConfig(c *gin.Context) {
	var cfg raceday.RaceConfig
	if err := c.ShouldBindJSON(&cfg); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	h.state.SetRace(cfg)
	c.JSON(http.StatusOK, gin.H{"message": "Race config updated"})
}

func (h *Handlers) UpdateQualifying(c *gin.Context) {
	var entries []raceday.QualifyingEntry
	if err := c.ShouldBindJSON(&entries); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	h.state.SetQualifying(entries)
	c.JSON(http.StatusOK, gin.H{"message": "Qualifying times updated"})
}

func (h *Handlers) UpdateTeamPoints(c *gin.Context) {
	var body struct {
		Points map[string]int `json:"points" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	h.state.SetTeamPoints(body.Points)
	c.JSON(http.StatusOK, gin.H{"message": "Team points updated"})
}

func (h *Handlers) SetLiveSession(c *gin.Context) {
	var cfg raceday.LiveSessionConfig
	if err := c.ShouldBindJSON(&cfg); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	h.state.SetSession(cfg)
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (h *Handlers) GetLiveLaps(c *gin.Context) {
	snap := h.state.Snapshot()
	if snap == nil {
		c.JSON(http.StatusOK, gin.H{"error": "No live lap data available for this session. The session may not be running or data is not yet available."})
		return
	}
	c.JSON(http.StatusOK, gin.H{"laps": snap.Laps})
}

func (h *Handlers) GetLivePredictions(c *gin.Context) {
	snap := h.state.Snapshot()
	if snap == nil {
		c.JSON(http.StatusOK, gin.H{"error": "No live predictions available for this session. The session may not be running or data is not yet available."})
		return
	}
	c.JSON(http.StatusOK, gin.H{"predictions": snap.Predictions})
}

func (h *Handlers) GetPredictionsLive(c *gin.Context) {
	var predictions []raceday.Prediction
	var lastUpdate any
	if snap := h.state.Snapshot(); snap != nil {
		predictions = snap.Predictions
		lastUpdate = snap.FetchedAt.UTC().Format(time.RFC3339)
	}
	c.JSON(http.StatusOK, gin.H{
		"predictions": predictions,
		"lastUpdate":  lastUpdate,
		"raceStatus":  h.state.Race().Status,
	})
}

// GetLiveWeather serves the cached current-conditions payload. Lat/lon
// default to the current race location; the API key comes from the race
// config or the environment.
func (h *Handlers) GetLiveWeather(c *gin.Context) {
	race := h.state.Race()

	lat, lon := race.Latitude, race.Longitude
	if raw, ok := c.GetQuery("lat"); ok {
		parsed, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid lat"})
			return
		}
		lat = parsed
	}
	if raw, ok := c.GetQuery("lon"); ok {
		parsed, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid lon"})
			return
		}
		lon = parsed
	}

	apiKey := race.APIKey
	if apiKey == "" {
		apiKey = h.envAPIKey
	}

	payload, cached, err := h.weather.Current(c.Request.Context(), lat, lon, apiKey)
	if err != nil {
		if errors.Is(err, weather.ErrNoAPIKey) {
			c.JSON(http.StatusOK, gin.H{"error": "No OpenWeatherMap API key set."})
			return
		}
		c.JSON(http.StatusOK, gin.H{"error": err.Error()})
		return
	}
	if cached {
		c.Header("X-Weather-Cache", "hit")
	}
	c.Data(http.StatusOK, "application/json", payload)
}

// GetWeatherForecast proxies the provider's forecast endpoint, uncached.
func (h *Handlers) GetWeatherForecast(c *gin.Context) {
	lat, err := strconv.ParseFloat(c.Param("lat"), 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "invalid lat"})
		return
	}
	lon, err := strconv.ParseFloat(c.Param("lon"), 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "invalid lon"})
		return
	}
	apiKey := c.Query("api_key")

	payload, err := h.forecaster.FetchForecast(c.Request.Context(), lat, lon, apiKey)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Weather API error: " + err.Error()})
		return
	}
	c.Data(http.StatusOK, "application/json", payload)
}

func (h *Handlers) Predict(c *gin.Context) {
	var input predict.Input
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	position, err := h.predictor.Predict(input)
	if err != nil {
		if errors.Is(err, predict.ErrModelUnavailable) {
			c.JSON(http.StatusOK, gin.H{"error": "Prediction model not available. Please train and save the model as f1_model.json."})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"predicted_finish_position": position})
}

func (h *Handlers) GetStatus(c *gin.Context) {
	now := h.clock.Now()
	race := h.state.Race()
	var lastUpdate any
	if snap := h.state.Snapshot(); snap != nil {
		lastUpdate = snap.FetchedAt.UTC().Format(time.RFC3339)
	}

	c.JSON(http.StatusOK, gin.H{
		"status":               "operational",
		"timestamp":            now.UTC().Format(time.RFC3339),
		"activeConnections":    h.registry.Count(),
		"raceStatus":           race.Status,
		"timeUntilRace":        raceday.TimeUntilRace(race, now),
		"lastPredictionUpdate": lastUpdate,
		"modelLoaded":          h.predictor.Available(),
	})
}

// ServeWS upgrades the request into the broadcast stream, greeting the new
// subscriber with the current race state.
func (h *Handlers) ServeWS(c *gin.Context) {
	now := h.clock.Now()
	race := h.state.Race()
	greeting, err := events.New(events.TypeConnectionEstablished, events.ConnectionEstablishedPayload{
		Message:       "Connected to F1 Prediction API",
		CurrentConfig: race,
		TimeUntilRace: raceday.TimeUntilRace(race, now),
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if err := h.hub.Attach(c.Writer, c.Request, greeting); err != nil {
		log.Error().Err(err).Msg("websocket attach failed")
	}
}
