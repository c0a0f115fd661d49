// FILE: pkg/rag/document.go
// PURPOSE: Static retrieval document set for keyword-based context grounding

package rag

import (
	"encoding/json"
)

// Document is one retrievable entry. Text is what gets scored and injected
// as context; all remaining JSON fields land in Metadata.
type Document struct {
	Text     string                 `json:"text"`
	Metadata map[string]interface{} `json:"metadata,omitempty"`
	Score    int                    `json:"score,omitempty"` // derived, only set on ranked results
}

func (d *Document) UnmarshalJSON(data []byte) error {
	var raw map[string]interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if text, ok := raw["text"].(string); ok {
		d.Text = text
	}
	delete(raw, "text")
	if len(raw) > 0 {
		d.Metadata = raw
	}
	return nil
}

func (d Document) MarshalJSON() ([]byte, error) {
	out := make(map[string]interface{}, len(d.Metadata)+2)
	for k, v := range d.Metadata {
		out[k] = v
	}
	out["text"] = d.Text
	if d.Score > 0 {
		out["score"] = d.Score
	}
	return json.Marshal(out)
}

// LoadDocuments parses the bootstrap JSON array. Malformed input yields an
// empty set and the error for the caller to log.
func LoadDocuments(raw string) ([]Document, error) {
	if raw == "" {
		return nil, nil
	}
	var docs []Document
	if err := json.Unmarshal([]byte(raw), &docs); err != nil {
		return nil, err
	}
	return docs, nil
}
