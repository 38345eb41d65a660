package main

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/aryansoni13/F1-Prediction-model/clients/openweather"
	"github.com/aryansoni13/F1-Prediction-model/internal/broadcaster"
)

type Config struct {
	Server struct {
		Port string `yaml:"port"`
	} `yaml:"server"`
	Broadcast struct {
		TickSeconds          int `yaml:"tick_seconds"`
		TickErrorWaitSeconds int `yaml:"tick_error_wait_seconds"`
		PollSeconds          int `yaml:"poll_seconds"`
	} `yaml:"broadcast"`
	FastF1 struct {
		BaseURL string `yaml:"base_url"`
	} `yaml:"fastf1"`
	Weather struct {
		BaseURL string `yaml:"base_url"`
		APIKey  string `yaml:"api_key"`
	} `yaml:"weather"`
	Model struct {
		Path string `yaml:"path"`
	} `yaml:"model"`
	NATS struct {
		URL string `yaml:"url"`
	} `yaml:"nats"`
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// loadConfig reads the optional YAML config file and applies environment
// overrides on top. A missing file is fine; everything has a default.
func loadConfig(path string) (*Config, error) {
	var config Config

	if data, err := os.ReadFile(path); err == nil {
		if err := yaml.Unmarshal(data, &config); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if config.Server.Port == "" {
		config.Server.Port = "8000"
	}
	if config.Broadcast.TickSeconds == 0 {
		config.Broadcast.TickSeconds = 1
	}
	if config.Broadcast.TickErrorWaitSeconds == 0 {
		config.Broadcast.TickErrorWaitSeconds = 5
	}
	if config.Broadcast.PollSeconds == 0 {
		config.Broadcast.PollSeconds = 10
	}
	if config.FastF1.BaseURL == "" {
		config.FastF1.BaseURL = "http://localhost:8081"
	}
	if config.Weather.BaseURL == "" {
		config.Weather.BaseURL = openweather.DefaultBaseURL
	}
	if config.Model.Path == "" {
		config.Model.Path = "f1_model.json"
	}

	config.Server.Port = getEnv("PORT", config.Server.Port)
	config.FastF1.BaseURL = getEnv("FASTF1_BASE_URL", config.FastF1.BaseURL)
	config.Weather.APIKey = getEnv("OPENWEATHER_API_KEY", config.Weather.APIKey)
	config.Model.Path = getEnv("MODEL_PATH", config.Model.Path)
	config.NATS.URL = getEnv("NATS_URL", config.NATS.URL)
	config.Broadcast.TickSeconds = getEnvAsInt("BROADCAST_TICK_SECONDS", config.Broadcast.TickSeconds)
	config.Broadcast.PollSeconds = getEnvAsInt("BROADCAST_POLL_SECONDS", config.Broadcast.PollSeconds)

	return &config, nil
}

func (c *Config) intervals() broadcaster.Intervals {
	return broadcaster.Intervals{
		Tick:          time.Duration(c.Broadcast.TickSeconds) * time.Second,
		TickErrorWait: time.Duration(c.Broadcast.TickErrorWaitSeconds) * time.Second,
		Poll:          time.Duration(c.Broadcast.PollSeconds) * time.Second,
	}
}
