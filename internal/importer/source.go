package importer

import (
	"encoding/json"
	"fmt"
	"io"
)

// ReadRecords decodes an import payload. The payload is either a JSON array
// of objects or a single JSON object; a single object is treated as a
// one-element batch.
func ReadRecords(r io.Reader) ([]map[string]interface{}, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read import payload: %w", err)
	}

	var records []map[string]interface{}
	if err := json.Unmarshal(data, &records); err == nil {
		return records, nil
	}

	var single map[string]interface{}
	if err := json.Unmarshal(data, &single); err != nil {
		return nil, fmt.Errorf("parse import payload: %w", err)
	}

	return []map[string]interface{}{single}, nil
}
