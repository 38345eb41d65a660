package raceday

import "time"

func date(y int, m time.Month, d int) RaceDate {
	return RaceDate{time.Date(y, m, d, 0, 0, 0, 0, time.UTC)}
}

// Schedule2025 is the 2025 Formula 1 calendar. Reference data only; race
// progression reads it, nothing mutates it.
var Schedule2025 = []ScheduleEntry{
	{Round: 1, Name: "Bahrain Grand Prix", Location: "Sakhir", Date: date(2025, 3, 2), Latitude: 26.0325, Longitude: 50.5106, Status: StatusFinished},
	{Round: 2, Name: "Saudi Arabian Grand Prix", Location: "Jeddah", Date: date(2025, 3, 9), Latitude: 21.4858, Longitude: 39.1925, Status: StatusFinished},
	{Round: 3, Name: "Australian Grand Prix", Location: "Melbourne", Date: date(2025, 3, 16), Latitude: -37.8497, Longitude: 144.9680, Status: StatusFinished},
	{Round: 4, Name: "Japanese Grand Prix", Location: "Suzuka", Date: date(2025, 4, 6), Latitude: 34.8431, Longitude: 136.5414, Status: StatusFinished},
	{Round: 5, Name: "Chinese Grand Prix", Location: "Shanghai", Date: date(2025, 4, 20), Latitude: 31.3389, Longitude: 121.2196, Status: StatusFinished},
	{Round: 6, Name: "Miami Grand Prix", Location: "Miami", Date: date(2025, 5, 4), Latitude: 25.9581, Longitude: -80.2389, Status: StatusFinished},
	{Round: 7, Name: "Emilia Romagna Grand Prix", Location: "Imola", Date: date(2025, 5, 18), Latitude: 44.3439, Longitude: 11.7167, Status: StatusFinished},
	{Round: 8, Name: "Monaco Grand Prix", Location: "Monte Carlo", Date: date(2025, 5, 25), Latitude: 43.7347, Longitude: 7.4206, Status: StatusFinished},
	{Round: 9, Name: "Canadian Grand Prix", Location: "Montreal", Date: date(2025, 6, 15), Latitude: 45.5048, Longitude: -73.5522, Status: StatusUpcoming},
	{Round: 10, Name: "Spanish Grand Prix", Location: "Barcelona", Date: date(2025, 6, 22), Latitude: 41.5700, Longitude: 2.2611, Status: StatusUpcoming},
	{Round: 11, Name: "Austrian Grand Prix", Location: "Spielberg", Date: date(2025, 6, 29), Latitude: 47.2197, Longitude: 14.7647, Status: StatusUpcoming},
	{Round: 12, Name: "British Grand Prix", Location: "Silverstone", Date: date(2025, 7, 6), Latitude: 52.0786, Longitude: -1.0169, Status: StatusUpcoming},
	{Round: 13, Name: "Hungarian Grand Prix", Location: "Budapest", Date: date(2025, 7, 20), Latitude: 47.5819, Longitude: 19.2508, Status: StatusUpcoming},
	{Round: 14, Name: "Belgian Grand Prix", Location: "Spa", Date: date(2025, 7, 27), Latitude: 50.4372, Longitude: 5.9710, Status: StatusUpcoming},
	{Round: 15, Name: "Dutch Grand Prix", Location: "Zandvoort", Date: date(2025, 8, 24), Latitude: 52.3888, Longitude: 4.5409, Status: StatusUpcoming},
	{Round: 16, Name: "Italian Grand Prix", Location: "Monza", Date: date(2025, 8, 31), Latitude: 45.6156, Longitude: 9.2811, Status: StatusUpcoming},
	{Round: 17, Name: "Azerbaijan Grand Prix", Location: "Baku", Date: date(2025, 9, 14), Latitude: 40.4093, Longitude: 49.8671, Status: StatusUpcoming},
	{Round: 18, Name: "Singapore Grand Prix", Location: "Singapore", Date: date(2025, 9, 21), Latitude: 1.2919, Longitude: 103.8518, Status: StatusUpcoming},
	{Round: 19, Name: "United States Grand Prix", Location: "Austin", Date: date(2025, 10, 5), Latitude: 30.1339, Longitude: -97.6411, Status: StatusUpcoming},
	{Round: 20, Name: "Mexico City Grand Prix", Location: "Mexico City", Date: date(2025, 10, 19), Latitude: 19.4063, Longitude: -99.0907, Status: StatusUpcoming},
	{Round: 21, Name: "São Paulo Grand Prix", Location: "São Paulo", Date: date(2025, 11, 2), Latitude: -23.7036, Longitude: -46.6997, Status: StatusUpcoming},
	{Round: 22, Name: "Las Vegas Grand Prix", Location: "Las Vegas", Date: date(2025, 11, 16), Latitude: 36.1699, Longitude: -115.1398, Status: StatusUpcoming},
	{Round: 23, Name: "Qatar Grand Prix", Location: "Lusail", Date: date(2025, 11, 23), Latitude: 25.4211, Longitude: 51.4904, Status: StatusUpcoming},
	{Round: 24, Name: "Abu Dhabi Grand Prix", Location: "Yas Marina", Date: date(2025, 11, 30), Latitude: 24.4672, Longitude: 54.6031, Status: StatusUpcoming},
}

// DefaultTeamPoints2025 seeds the constructor standings shown before the
// first configuration update.
var DefaultTeamPoints2025 = map[string]int{
	"McLaren":      362,
	"Mercedes":     159,
	"Red Bull":     144,
	"Williams":     54,
	"Ferrari":      165,
	"Haas":         26,
	"Aston Martin": 16,
	"Kick Sauber":  16,
	"Racing Bulls": 22,
	"Alpine":       1,
}

// DefaultQualifying seeds the qualifying classification shown before the
// first configuration update.
var DefaultQualifying = []QualifyingEntry{
	{Driver: "Max Verstappen", Team: "Red Bull", Time: "1:12.345", Position: 1},
	{Driver: "Charles Leclerc", Team: "Ferrari", Time: "1:12.456", Position: 2},
	{Driver: "Lando Norris", Team: "McLaren", Time: "1:12.567", Position: 3},
}
