package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"

	apperrors "github.com/JunasVee/dynamits-driver/internal/errors"
)

func TestParseCoordinates_ValidStrings(t *testing.T) {
	coords, err := ParseCoordinates("-7.250445", "112.768845")

	assert.NoError(t, err)
	assert.Equal(t, -7.250445, coords.Lat)
	assert.Equal(t, 112.768845, coords.Lng)
}

func TestParseCoordinates_Whitespace(t *testing.T) {
	coords, err := ParseCoordinates(" 1.0 ", " 2.0 ")

	assert.NoError(t, err)
	assert.Equal(t, 1.0, coords.Lat)
	assert.Equal(t, 2.0, coords.Lng)
}

func TestParseCoordinates_Invalid(t *testing.T) {
	tests := []struct {
		name string
		lat  Coordinate
		lng  Coordinate
	}{
		{"empty latitude", "", "2.0"},
		{"empty longitude", "1.0", ""},
		{"both empty", "", ""},
		{"non-numeric", "abc", "2.0"},
		{"nan", "NaN", "2.0"},
		{"positive infinity", "Inf", "2.0"},
		{"latitude out of range", "91", "0"},
		{"longitude out of range", "0", "181"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseCoordinates(tt.lat, tt.lng)

			assert.Error(t, err)
			_, ok := apperrors.IsCoordinateError(err)
			assert.True(t, ok, "expected CoordinateError, got %T", err)
		})
	}
}

func TestCoordinate_UnmarshalJSON_StringAndNumber(t *testing.T) {
	var target struct {
		Lat Coordinate `json:"lat"`
		Lng Coordinate `json:"lng"`
	}

	err := json.Unmarshal([]byte(`{"lat":"-7.25","lng":112.76}`), &target)

	assert.NoError(t, err)
	assert.Equal(t, Coordinate("-7.25"), target.Lat)
	assert.Equal(t, Coordinate("112.76"), target.Lng)
}

func TestCoordinate_UnmarshalJSON_Null(t *testing.T) {
	var target struct {
		Lat Coordinate `json:"lat"`
	}

	err := json.Unmarshal([]byte(`{"lat":null}`), &target)

	assert.NoError(t, err)
	assert.Equal(t, Coordinate(""), target.Lat)
}

func TestCoordinate_MarshalJSON_AlwaysString(t *testing.T) {
	out, err := json.Marshal(struct {
		Lat Coordinate `json:"lat"`
	}{Lat: "1.5"})

	assert.NoError(t, err)
	assert.JSONEq(t, `{"lat":"1.5"}`, string(out))
}
