package commons

import (
	"fmt"
	"os"

	"go.yaml.in/yaml/v3"
)

// MapSettings is the presentation configuration for the map surface:
// where the map opens before the first live fix arrives and how package
// and live-location markers are styled.
type MapSettings struct {
	DefaultCenter struct {
		Lat float64 `yaml:"lat"`
		Lng float64 `yaml:"lng"`
	} `yaml:"defaultCenter"`
	DefaultZoom int `yaml:"defaultZoom"`
	PackageIcon struct {
		URL  string `yaml:"url"`
		Size int    `yaml:"size"`
	} `yaml:"packageIcon"`
	LiveMarker struct {
		FillColor   string `yaml:"fillColor"`
		Scale       int    `yaml:"scale"`
		StrokeColor string `yaml:"strokeColor"`
		StrokeWidth int    `yaml:"strokeWidth"`
	} `yaml:"liveMarker"`
}

func LoadMapSettings(path string) (*MapSettings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading map settings file: %w", err)
	}

	var settings MapSettings
	if err := yaml.Unmarshal(data, &settings); err != nil {
		return nil, fmt.Errorf("parsing map settings file: %w", err)
	}

	return &settings, nil
}
