package api

import (
	"fmt"
	"net/http"
	"sort"
	"strings"

	"github.com/gin-gonic/gin"
)

// GenerateCode renders the current configuration as a runnable Python
// snippet, so analysts can pull the same race setup into a notebook.
func (h *Handlers) GenerateCode(c *gin.Context) {
	race := h.state.Race()
	qualifying := h.state.Qualifying()
	teamPoints := h.state.TeamPoints()

	qualifyingLines := make([]string, len(qualifying))
	for i, q := range qualifying {
		qualifyingLines[i] = fmt.Sprintf("    [%q, %q, %q, %d]", q.Driver, q.Team, q.Time, q.Position)
	}

	teams := make([]string, 0, len(teamPoints))
	for team := range teamPoints {
		teams = append(teams, team)
	}
	sort.Strings(teams)
	pointsLines := make([]string, len(teams))
	for i, team := range teams {
		pointsLines[i] = fmt.Sprintf("    %q: %d", team, teamPoints[team])
	}

	code := fmt.Sprintf(`# Generated F1 Prediction Configuration
import pandas as pd
import fastf1

# Race Configuration
session = fastf1.get_session(2024, %d, "R")

# Qualifying Data
qualifying = pd.DataFrame([
%s
], columns=["Driver", "Team", "Time", "Position"])

# Weather API Configuration
weather_url = f"https://api.openweathermap.org/data/2.5/forecast?lat=%v&lon=%v&appid={YOUR_API_KEY}&units=metric"
forecast_time = %q

# Constructor Championship Points
team_points = {
%s
}

# Race Details
race_name = %q
race_location = %q
race_coordinates = (%v, %v)
`,
		race.Round,
		strings.Join(qualifyingLines, ",\n"),
		race.Latitude, race.Longitude,
		race.StartTime.Format("2006-01-02 15:04:05"),
		strings.Join(pointsLines, ",\n"),
		race.Name,
		race.Location,
		race.Latitude, race.Longitude,
	)

	c.JSON(http.StatusOK, gin.H{"code": code})
}
