package state

import "testing"

func TestClampIndex(t *testing.T) {
	tests := []struct {
		name    string
		desired int
		length  int
		want    int
	}{
		{"empty list", 0, 0, NoSelection},
		{"empty list with stale index", 5, 0, NoSelection},
		{"negative length", 0, -1, NoSelection},
		{"negative desired", -3, 4, 0},
		{"in bounds", 2, 4, 2},
		{"first", 0, 4, 0},
		{"last", 3, 4, 3},
		{"past end", 4, 4, 3},
		{"far past end", 100, 4, 3},
		{"single item", 7, 1, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ClampIndex(tt.desired, tt.length)
			if got != tt.want {
				t.Errorf("ClampIndex(%d, %d) = %d, want %d", tt.desired, tt.length, got, tt.want)
			}
			if tt.length > 0 && (got < 0 || got >= tt.length) {
				t.Errorf("ClampIndex(%d, %d) = %d, out of [0,%d)", tt.desired, tt.length, got, tt.length)
			}
		})
	}
}
