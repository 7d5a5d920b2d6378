package store

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/mitchellh/mapstructure"
)

// LoadFile merges profiles and positions from a JSON document into the
// repository. The document shape is {"profiles": [...], "positions": [...]};
// either list may be absent. Records are decoded through their json tags so
// the file format matches the REST payloads.
func (m *Memory) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading data file: %w", err)
	}

	var doc struct {
		Profiles  []map[string]any `json:"profiles"`
		Positions []map[string]any `json:"positions"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("parsing data file %q: %w", path, err)
	}

	var profiles []*Profile
	if err := decodeRecords(doc.Profiles, &profiles); err != nil {
		return fmt.Errorf("decoding profiles from %q: %w", path, err)
	}

	var positions []*Position
	if err := decodeRecords(doc.Positions, &positions); err != nil {
		return fmt.Errorf("decoding positions from %q: %w", path, err)
	}

	for _, p := range profiles {
		if _, err := m.AddProfile(p); err != nil {
			return err
		}
	}
	for _, p := range positions {
		if _, err := m.AddPosition(p); err != nil {
			return err
		}
	}

	return nil
}

func decodeRecords(items []map[string]any, result any) error {
	if len(items) == 0 {
		return nil
	}

	cfg := &mapstructure.DecoderConfig{
		Result:  result,
		TagName: "json",
	}
	decoder, err := mapstructure.NewDecoder(cfg)
	if err != nil {
		return err
	}

	return decoder.Decode(items)
}
