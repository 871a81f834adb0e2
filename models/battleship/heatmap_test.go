package battleship

import (
	"errors"
	"testing"

	cerr "github.com/saeidalz13/battleship-ai/internal/error"
)

func gridWithMisses(size int, misses ...Coordinates) Grid {
	g := NewGrid(size)
	for _, c := range misses {
		g.Set(c, CellMiss)
	}
	return g
}

func TestProbabilityMap(t *testing.T) {
	tests := []struct {
		name     string
		grid     Grid
		lengths  []int
		expected [][]int
	}{
		{
			name:     "single cell ship counts both orientations",
			grid:     NewGrid(3),
			lengths:  []int{1},
			expected: [][]int{{2, 2, 2}, {2, 2, 2}, {2, 2, 2}},
		},
		{
			name:     "miss in the centre blocks the middle row and column",
			grid:     gridWithMisses(3, NewCoordinates(1, 1)),
			lengths:  []int{3},
			expected: [][]int{{2, 1, 2}, {1, 0, 1}, {2, 1, 2}},
		},
		{
			name:     "hits also block placements",
			grid:     func() Grid { g := NewGrid(3); g.Set(NewCoordinates(0, 0), CellHit); return g }(),
			lengths:  []int{3},
			expected: [][]int{{0, 1, 1}, {1, 2, 2}, {1, 2, 2}},
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			scores := ProbabilityMap(test.grid, test.lengths)
			for row := range test.expected {
				for col := range test.expected[row] {
					if scores[row][col] != test.expected[row][col] {
						t.Fatalf("expected scores: %v\tgot: %v", test.expected, scores)
					}
				}
			}
		})
	}
}

func TestProbabilityMapIsSymmetricOnAnEmptyBoard(t *testing.T) {
	lengths := []int{5, 4, 3, 3, 2}
	scores := ProbabilityMap(NewGrid(8), lengths)

	for row := 0; row < 8; row++ {
		for col := 0; col < 8; col++ {
			if scores[row][col] != scores[col][row] || scores[row][col] != scores[7-row][7-col] {
				t.Fatalf("expected symmetric scores at (%d,%d)\tgot: %v", row, col, scores)
			}
		}
	}
}

func TestProbabilityMapIsPure(t *testing.T) {
	g := gridWithMisses(8, NewCoordinates(2, 2))
	snapshot := g.Snapshot()

	first := ProbabilityMap(g, []int{3, 2})
	second := ProbabilityMap(g, []int{3, 2})

	for row := range first {
		for col := range first[row] {
			if first[row][col] != second[row][col] {
				t.Fatalf("expected identical scores\tgot: %v and %v", first, second)
			}
			if g[row][col] != snapshot[row][col] {
				t.Fatal("expected the shot grid to be untouched")
			}
		}
	}
}

func TestChooseHeatTarget(t *testing.T) {
	tests := []struct {
		name        string
		grid        Grid
		lengths     []int
		expected    Coordinates
		expectedErr error
	}{
		{
			name:     "highest score wins",
			grid:     gridWithMisses(3, NewCoordinates(1, 1)),
			lengths:  []int{3},
			expected: NewCoordinates(0, 0),
		},
		{
			name:     "ties go to the lowest row then column",
			grid:     NewGrid(3),
			lengths:  []int{1},
			expected: NewCoordinates(0, 0),
		},
		{
			name:     "all zero falls back to the first fresh cell",
			grid:     gridWithMisses(3, NewCoordinates(0, 0), NewCoordinates(1, 1), NewCoordinates(2, 2)),
			lengths:  []int{3},
			expected: NewCoordinates(0, 1),
		},
		{
			name:        "exhausted grid",
			grid:        gridWithMisses(2, NewCoordinates(0, 0), NewCoordinates(0, 1), NewCoordinates(1, 0), NewCoordinates(1, 1)),
			lengths:     []int{1},
			expectedErr: cerr.ErrNoTargetsLeft,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			c, err := ChooseHeatTarget(test.grid, ProbabilityMap(test.grid, test.lengths))
			if test.expectedErr != nil {
				if !errors.Is(err, test.expectedErr) {
					t.Fatalf("expected error: %v\tgot: %v", test.expectedErr, err)
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if c != test.expected {
				t.Fatalf("expected target: %v\tgot: %v", test.expected, c)
			}
		})
	}
}
