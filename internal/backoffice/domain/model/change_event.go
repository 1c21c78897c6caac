package model

import "encoding/json"

// ChangeEvent records one mutation, as stored in the change log and pushed to
// live subscribers.
type ChangeEvent struct {
	// ID is assigned by the change log; empty for events not yet stored.
	ID string `json:"id,omitempty"`

	// Type is the event bus type, e.g. "metadata.created".
	Type string `json:"type"`

	// Source names the usecase that produced the event.
	Source string `json:"source"`

	Data json.RawMessage `json:"data,omitempty"`

	Timestamp Timestamp `json:"timestamp"`
}

// CatalogRename is the payload of catalog rename events.
type CatalogRename struct {
	Kind            CatalogKind `json:"kind"`
	OldName         string      `json:"oldName"`
	NewName         string      `json:"newName"`
	MetadataUpdated int         `json:"metadataUpdated"`
}

// CatalogChange is the payload of catalog add and delete events.
type CatalogChange struct {
	Kind CatalogKind `json:"kind"`
	Name string      `json:"name"`
}

// MockMigration is the payload of the legacy mock migration event.
type MockMigration struct {
	Imported int `json:"imported"`
}
