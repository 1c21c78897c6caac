package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProject_SplitsTranslationsAndConfigurations(t *testing.T) {
	entries := []MetadataEntry{
		{Key: "a", Value: TextValue("hi")},
		{Key: "b", Value: JSONValue(json.RawMessage(`{"x": 1}`))},
	}

	data, err := json.Marshal(Project(entries))
	require.NoError(t, err)
	assert.JSONEq(t, `{"translations":{"a":"hi"},"configurations":{"b":"{\"x\":1}"}}`, string(data))
}

func TestProject_ScalarsStayInTranslations(t *testing.T) {
	entries := []MetadataEntry{
		{Key: "count", Value: JSONValue(json.RawMessage(`3`))},
		{Key: "list", Value: JSONValue(json.RawMessage(`["a","b"]`))},
		{Key: "flag", Value: JSONValue(json.RawMessage(`true`))},
	}

	p := Project(entries)
	assert.Equal(t, `["a","b"]`, p.Configurations["list"])

	data, err := json.Marshal(p.Translations)
	require.NoError(t, err)
	assert.JSONEq(t, `{"count":3,"flag":true}`, string(data))
}

func TestProject_LaterEntryWins(t *testing.T) {
	entries := []MetadataEntry{
		{Key: "title", Value: TextValue("first"), Country: "Chile"},
		{Key: "title", Value: TextValue("second"), Country: "Perú"},
	}

	p := Project(entries)
	assert.Equal(t, "second", p.Translations["title"].Text())
}

func TestProject_EmptyInputYieldsEmptyMaps(t *testing.T) {
	data, err := json.Marshal(Project(nil))
	require.NoError(t, err)
	assert.JSONEq(t, `{"translations":{},"configurations":{}}`, string(data))
}

func TestMetadataEntry_SameSlot(t *testing.T) {
	e := MetadataEntry{Key: "x", Country: "Chile", Device: "Samsung"}

	assert.True(t, e.SameSlot("x", "chile", "SAMSUNG"))
	assert.False(t, e.SameSlot("X", "Chile", "Samsung"))
	assert.False(t, e.SameSlot("x", "Perú", "Samsung"))
}

func TestMetadataEntry_JSONShape(t *testing.T) {
	raw := `{"id":"m1","key":"k","value":"v","country":"Chile","device":"LG","description":"","createdAt":"2025-01-01T00:00:00.000Z","updatedAt":"2025-01-02T00:00:00.000Z"}`

	var e MetadataEntry
	require.NoError(t, json.Unmarshal([]byte(raw), &e))

	data, err := json.Marshal(e)
	require.NoError(t, err)
	assert.JSONEq(t, raw, string(data))
}
