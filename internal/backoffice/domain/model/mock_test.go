package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMock_Summary(t *testing.T) {
	created := NewTimestamp(time.Date(2025, 3, 4, 5, 6, 7, 0, time.UTC))
	m := Mock{ID: "abc123", Name: "Users", Data: json.RawMessage(`[1]`), URL: MockURL("abc123"), CreatedAt: created}

	data, err := json.Marshal(m.Summary())
	require.NoError(t, err)
	assert.JSONEq(t, `{"mockId":"abc123","mockUrl":"/api/mock/abc123","name":"Users","createdAt":"2025-03-04T05:06:07.000Z"}`, string(data))
}

func TestDefaultMockName(t *testing.T) {
	assert.Equal(t, "Mock abc", DefaultMockName("abc"))
}

func TestMock_UnmarshalCompactsData(t *testing.T) {
	stored := `{
  "id": "abc123",
  "name": "Numbers",
  "data": [
    1,
    2,
    { "x": true }
  ],
  "url": "/api/mock/abc123",
  "createdAt": "2025-03-04T05:06:07.000Z"
}`

	var m Mock
	require.NoError(t, json.Unmarshal([]byte(stored), &m))
	assert.Equal(t, `[1,2,{"x":true}]`, string(m.Data))
	assert.Equal(t, "Numbers", m.Name)
	assert.Equal(t, "2025-03-04T05:06:07.000Z", m.CreatedAt.String())
}

func TestMock_UnmarshalKeepsNullData(t *testing.T) {
	var m Mock
	require.NoError(t, json.Unmarshal([]byte(`{"id":"a","data":null}`), &m))
	assert.Equal(t, "null", string(m.Data))
}
