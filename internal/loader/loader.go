// Package loader reads conversation export files into raw records. It is
// the only place file I/O happens before analysis; field fallback
// resolution belongs to the parser, not here.
package loader

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/hermz580/convoscope/internal/parse"
)

// export is the claude.ai-style envelope: a "conversations" key wrapping
// the list. Some exports are a bare array instead.
type export struct {
	Conversations []parse.RawConversation `json:"conversations"`
}

// Load reads a JSON export file and returns its conversations in file
// order, without fabricating or dropping records.
func Load(path string) ([]parse.RawConversation, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read export: %w", err)
	}
	return Parse(data)
}

// Parse decodes export JSON, accepting both the enveloped and the bare
// array form.
func Parse(data []byte) ([]parse.RawConversation, error) {
	var wrapped export
	if err := json.Unmarshal(data, &wrapped); err == nil && wrapped.Conversations != nil {
		return wrapped.Conversations, nil
	}

	var bare []parse.RawConversation
	if err := json.Unmarshal(data, &bare); err != nil {
		return nil, fmt.Errorf("failed to parse export: %w", err)
	}
	return bare, nil
}
