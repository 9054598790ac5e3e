package posts

import (
	"errors"
	"testing"
)

func TestParseID(t *testing.T) {
	tests := []struct {
		name    string
		id      string
		wantErr error
	}{
		{"new id", NewID(), nil},
		{"upper case", "0B6F0C43-5A4C-4A8B-9A44-3C3E4B6B5A10", nil},
		{"numeric", "1", ErrNotFound},
		{"empty", "", ErrNotFound},
		{"garbage", "not-a-uuid", ErrNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseID(tt.id)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ParseID(%q) error = %v, want %v", tt.id, err, tt.wantErr)
			}
		})
	}
}

func TestNewIDIsUnique(t *testing.T) {
	seen := make(map[string]bool)
	for range 100 {
		id := NewID()
		if seen[id] {
			t.Fatalf("duplicate id generated: %s", id)
		}
		seen[id] = true
	}
}
