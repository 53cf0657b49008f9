package http

import (
	"bytes"
	"encoding/json"
	"errors"

	"github.com/yanqian/care-moments/internal/domain/interaction"
)

var errInteractionsNotArray = errors.New("interactions must be an array")

type analysisRequest struct {
	Interactions json.RawMessage `json:"interactions"`
	Timezone     string          `json:"timezone"`
}

type interactionRequest struct {
	Interaction         json.RawMessage          `json:"interaction"`
	ExistingPreferences []interaction.Preference `json:"existingPreferences"`
}

// decodeInteractions requires a JSON array. An empty array is a valid, short history.
func decodeInteractions(raw json.RawMessage) ([]interaction.Record, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, errInteractionsNotArray
	}
	records := make([]interaction.Record, 0)
	if err := json.Unmarshal(trimmed, &records); err != nil {
		return nil, err
	}
	return records, nil
}

// decodeInteraction requires a JSON object.
func decodeInteraction(raw json.RawMessage) (interaction.Record, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return interaction.Record{}, errors.New("interaction must be an object")
	}
	var rec interaction.Record
	if err := json.Unmarshal(trimmed, &rec); err != nil {
		return interaction.Record{}, err
	}
	return rec, nil
}
