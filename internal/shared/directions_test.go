package shared

import (
	"reflect"
	"testing"
)

func TestRay(t *testing.T) {
	tests := []struct {
		name     string
		row, col int
		d        Delta
		want     [][2]int
	}{
		{"UpFile", 2, 0, Delta{DR: -1}, [][2]int{{1, 0}, {0, 0}}},
		{"Diagonal", 2, 0, Delta{DR: -1, DC: 1}, [][2]int{{1, 1}, {0, 2}}},
		{"Edge", 0, 1, Delta{DR: -1}, [][2]int{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Ray(tt.row, tt.col, tt.d); !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("Ray = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestLine(t *testing.T) {
	if got := Line(2, 0, 0, 2); !reflect.DeepEqual(got, [][2]int{{1, 1}}) {
		t.Fatalf("diagonal line = %v", got)
	}
	if got := Line(0, 0, 0, 1); got != nil {
		t.Fatalf("adjacent squares have nothing between them, got %v", got)
	}
	if got := Line(0, 0, 1, 2); got != nil {
		t.Fatalf("unaligned squares should return nil, got %v", got)
	}
}
