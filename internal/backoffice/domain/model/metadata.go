package model

import "strings"

// MetadataEntry is one configuration key-value record scoped to a country/device pair.
type MetadataEntry struct {
	ID          string        `json:"id"`
	Key         string        `json:"key"`
	Value       MetadataValue `json:"value"`
	Country     string        `json:"country"`
	Device      string        `json:"device"`
	Description string        `json:"description"`
	CreatedAt   Timestamp     `json:"createdAt"`
	UpdatedAt   Timestamp     `json:"updatedAt"`
}

// SameSlot reports whether the entry occupies the (key, country, device) slot.
// key compares exactly, country and device case-insensitively.
func (e MetadataEntry) SameSlot(key, country, device string) bool {
	return e.Key == key &&
		strings.EqualFold(e.Country, country) &&
		strings.EqualFold(e.Device, device)
}

// Output formats for metadata listings
const (
	FormatFull    = "full"
	FormatDefault = "default"
)

// Projection is the split view of metadata served to client apps.
type Projection struct {
	Translations   map[string]MetadataValue `json:"translations"`
	Configurations map[string]string        `json:"configurations"`
}

// Project routes structured values to Configurations as compact JSON strings and
// everything else to Translations. Later entries win on a repeated key.
func Project(entries []MetadataEntry) Projection {
	p := Projection{
		Translations:   make(map[string]MetadataValue),
		Configurations: make(map[string]string),
	}
	for _, e := range entries {
		if e.Value.IsStructured() {
			p.Configurations[e.Key] = e.Value.CompactString()
		} else {
			p.Translations[e.Key] = e.Value
		}
	}
	return p
}
