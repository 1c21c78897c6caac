package model

import (
	"bytes"
	"encoding/json"
)

// MockURLPrefix is the route under which mocks are served.
const MockURLPrefix = "/api/mock/"

// Mock is an arbitrary JSON document served back verbatim under /api/mock/{id}.
type Mock struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Data      json.RawMessage `json:"data"`
	URL       string          `json:"url"`
	CreatedAt Timestamp       `json:"createdAt"`
}

// MockSummary is the listing shape expected by the admin UI.
type MockSummary struct {
	MockID    string    `json:"mockId"`
	MockURL   string    `json:"mockUrl"`
	Name      string    `json:"name"`
	CreatedAt Timestamp `json:"createdAt"`
}

// MockURL derives the public URL of a mock.
func MockURL(id string) string {
	return MockURLPrefix + id
}

// DefaultMockName is used when a mock is created or migrated without a name.
func DefaultMockName(id string) string {
	return "Mock " + id
}

// Summary projects the mock to its listing shape.
func (m Mock) Summary() MockSummary {
	return MockSummary{
		MockID:    m.ID,
		MockURL:   m.URL,
		Name:      m.Name,
		CreatedAt: m.CreatedAt,
	}
}

// UnmarshalJSON decodes a stored mock and compacts Data, which indented storage
// backends write back pretty-printed.
func (m *Mock) UnmarshalJSON(data []byte) error {
	type stored Mock
	var s stored
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	if len(s.Data) > 0 {
		var buf bytes.Buffer
		if err := json.Compact(&buf, s.Data); err != nil {
			return err
		}
		s.Data = buf.Bytes()
	}
	*m = Mock(s)
	return nil
}
