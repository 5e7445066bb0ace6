package models

import (
	"testing"
)

func TestJSONMap_Value(t *testing.T) {
	tests := []struct {
		name     string
		input    JSONMap
		expected string
	}{
		{
			name:     "Nil map serializes to empty object",
			input:    nil,
			expected: "{}",
		},
		{
			name:     "Empty map serializes to empty object",
			input:    JSONMap{},
			expected: "{}",
		},
		{
			name:     "Single key",
			input:    JSONMap{"overallPercent": 58.0},
			expected: `{"overallPercent":58}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			value, err := tt.input.Value()
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			var got string
			switch v := value.(type) {
			case string:
				got = v
			case []byte:
				got = string(v)
			default:
				t.Fatalf("unexpected driver value type %T", value)
			}
			if got != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, got)
			}
		})
	}
}

func TestJSONMap_Scan(t *testing.T) {
	tests := []struct {
		name        string
		input       interface{}
		expectError bool
		expectKeys  int
	}{
		{
			name:       "Nil column scans to empty map",
			input:      nil,
			expectKeys: 0,
		},
		{
			name:       "Byte slice",
			input:      []byte(`{"rr-1":"si","rr-2":"no"}`),
			expectKeys: 2,
		},
		{
			name:       "String column",
			input:      `{"rr-1":"parcial"}`,
			expectKeys: 1,
		},
		{
			name:       "Empty payload scans to empty map",
			input:      []byte{},
			expectKeys: 0,
		},
		{
			name:        "Malformed JSON fails",
			input:       []byte(`{broken`),
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var m JSONMap
			err := m.Scan(tt.input)
			if tt.expectError {
				if err == nil {
					t.Fatal("expected an error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if m == nil {
				t.Fatal("expected a non-nil map")
			}
			if len(m) != tt.expectKeys {
				t.Errorf("expected %d keys, got %d", tt.expectKeys, len(m))
			}
		})
	}
}

func TestNewAssessment_Defaults(t *testing.T) {
	a := NewAssessment(nil, "Proyecto sin nombre")

	if a.Status != StatusDraft {
		t.Errorf("expected status %q, got %q", StatusDraft, a.Status)
	}
	if a.ProjectID != nil {
		t.Error("expected no project attachment")
	}
	if a.Answers == nil || a.KPAScores == nil || a.Recommendations == nil || a.Overall == nil {
		t.Error("expected all JSON blobs to be initialized")
	}
	if a.ID.String() == "" {
		t.Error("expected a generated identifier")
	}
}

func TestNewProject_Defaults(t *testing.T) {
	p := NewProject("Demo")

	if p.Name != "Demo" {
		t.Errorf("expected name Demo, got %q", p.Name)
	}
	if p.CreatedAt.IsZero() {
		t.Error("expected creation timestamp")
	}
	if p.AssessmentsCount != 0 {
		t.Errorf("expected zero assessments, got %d", p.AssessmentsCount)
	}
}
