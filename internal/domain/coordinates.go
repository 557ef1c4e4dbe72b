package domain

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"

	apperrors "github.com/JunasVee/dynamits-driver/internal/errors"
)

// Coordinate is a raw latitude or longitude value as transmitted by the
// remote API, which sends them as strings or numbers interchangeably.
// It stays unparsed until a render path needs a float; an empty or
// malformed value is a valid state (the package is just not mappable).
type Coordinate string

func (c *Coordinate) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if s == "null" {
		*c = ""
		return nil
	}
	if strings.HasPrefix(s, `"`) {
		var str string
		if err := json.Unmarshal(data, &str); err != nil {
			return err
		}
		*c = Coordinate(str)
		return nil
	}
	// Number literal: keep the raw text.
	*c = Coordinate(s)
	return nil
}

func (c Coordinate) MarshalJSON() ([]byte, error) {
	// Always re-send as a string; the remote API accepts both forms.
	return json.Marshal(string(c))
}

// Coordinates is a parsed, render-ready geographic position.
type Coordinates struct {
	Lat float64
	Lng float64
}

// ParseCoordinates validates a raw latitude/longitude pair. Empty,
// non-numeric, non-finite, or out-of-range values return a CoordinateError.
func ParseCoordinates(lat, lng Coordinate) (Coordinates, error) {
	latF, err := parseCoordinate("latitude", lat, 90)
	if err != nil {
		return Coordinates{}, err
	}
	lngF, err := parseCoordinate("longitude", lng, 180)
	if err != nil {
		return Coordinates{}, err
	}
	return Coordinates{Lat: latF, Lng: lngF}, nil
}

func parseCoordinate(name string, raw Coordinate, bound float64) (float64, error) {
	s := strings.TrimSpace(string(raw))
	if s == "" {
		return 0, apperrors.NewCoordinateError(name + " is empty")
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, apperrors.NewCoordinateError(name + " is not a number: " + s)
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, apperrors.NewCoordinateError(name + " is not a finite number")
	}
	if f < -bound || f > bound {
		return 0, apperrors.NewCoordinateError(name + " is out of range: " + s)
	}
	return f, nil
}
