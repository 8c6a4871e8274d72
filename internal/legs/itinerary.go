package legs

import (
	"encoding/json"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Itinerary is the file form of a LegList, used for batch validation.
// JSON files are accepted as well since JSON is a subset of YAML.
type Itinerary struct {
	Legs []LegRecord `yaml:"legs" json:"legs"`
}

// ParseItinerary decodes a YAML or JSON itinerary
func ParseItinerary(data []byte) (*Itinerary, error) {
	var it Itinerary
	if err := yaml.Unmarshal(data, &it); err != nil {
		return nil, fmt.Errorf("failed to parse itinerary: %w", err)
	}
	for i := range it.Legs {
		it.Legs[i].Key = i
	}
	return &it, nil
}

// LoadItinerary reads and decodes an itinerary file
func LoadItinerary(path string) (*Itinerary, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read itinerary: %w", err)
	}
	return ParseItinerary(data)
}

// MarshalIndentJSON encodes the itinerary as indented JSON for scripting output
func (it *Itinerary) MarshalIndentJSON() ([]byte, error) {
	return json.MarshalIndent(it, "", "  ")
}
