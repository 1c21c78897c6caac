package usecase

import (
	"encoding/json"

	"metadata-backoffice/internal/backoffice/domain/model"
)

// Request/Response DTOs

// MetadataRequest is the body of metadata create and update calls.
type MetadataRequest struct {
	Key         string              `json:"key"`
	Value       model.MetadataValue `json:"value"`
	Country     string              `json:"country"`
	Device      string              `json:"device"`
	Description string              `json:"description"`
}

// MetadataListing is either the raw entry list or its projection, depending on the requested format.
type MetadataListing struct {
	Full       bool
	Entries    []model.MetadataEntry
	Projection model.Projection
}

// MarshalJSON writes the entries for format=full and the projection otherwise.
func (l MetadataListing) MarshalJSON() ([]byte, error) {
	if l.Full {
		if l.Entries == nil {
			return []byte("[]"), nil
		}
		return json.Marshal(l.Entries)
	}
	return json.Marshal(l.Projection)
}

// CreateMockRequest is the body of the mock create call.
// JSONData is either the payload itself or a string holding the payload's JSON text.
type CreateMockRequest struct {
	JSONData json.RawMessage `json:"jsonData"`
	Name     string          `json:"name"`
}

// MockDeleted carries the id of a removed mock in change events.
type MockDeleted struct {
	MockID string `json:"mockId"`
}

// MetadataDeleted carries the removed entry in change events.
type MetadataDeleted struct {
	Deleted model.MetadataEntry `json:"deleted"`
}
