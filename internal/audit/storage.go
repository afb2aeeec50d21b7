package audit

import (
	"encoding/json"
	"fmt"
	"os"
)

// Save writes v to path as pretty-printed JSON with 2-space indentation.
// v is either a single ResultRecord or a CombinedResult. Write failures
// propagate to the caller and are fatal there.
func Save(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling results: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing results file: %w", err)
	}

	return nil
}

// LoadRecord reads a single ResultRecord back from a JSON file
func LoadRecord(path string) (*ResultRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading results file: %w", err)
	}

	var record ResultRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, fmt.Errorf("unmarshaling results: %w", err)
	}

	return &record, nil
}

// LoadCombined reads a combined mobile/desktop result from a JSON file
func LoadCombined(path string) (*CombinedResult, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading results file: %w", err)
	}

	var combined CombinedResult
	if err := json.Unmarshal(data, &combined); err != nil {
		return nil, fmt.Errorf("unmarshaling results: %w", err)
	}

	return &combined, nil
}
