package battleship

import cerr "github.com/saeidalz13/battleship-ai/internal/error"

// ProbabilityMap counts, for every cell, the ship placements still
// consistent with the shots recorded in shotGrid. A placement counts when it
// fits on the board and none of its cells has been fired at. Attacked cells
// always score zero.
func ProbabilityMap(shotGrid Grid, shipLengths []int) [][]int {
	size := shotGrid.Size()
	validator := NewPlacementValidator(size)

	scores := make([][]int, size)
	for i := range scores {
		scores[i] = make([]int, size)
	}

	for _, length := range shipLengths {
		for _, orientation := range orientations {
			for row := 0; row < size; row++ {
				for col := 0; col < size; col++ {
					origin := Coordinates{Row: row, Col: col}
					if !validator.FitsOnBoard(length, origin, orientation) {
						continue
					}

					span := Span(origin, orientation, length)
					if !spanUntouched(shotGrid, span) {
						continue
					}
					for _, c := range span {
						scores[c.Row][c.Col]++
					}
				}
			}
		}
	}
	return scores
}

func spanUntouched(shotGrid Grid, span []Coordinates) bool {
	for _, c := range span {
		if shotGrid.At(c).Attacked() {
			return false
		}
	}
	return true
}

// ChooseHeatTarget returns the highest scoring unattacked cell, preferring the
// lowest row and then the lowest column on ties. When nothing scores above
// zero every unattacked cell is treated as equally likely.
func ChooseHeatTarget(shotGrid Grid, scores [][]int) (Coordinates, error) {
	best := Coordinates{Row: -1, Col: -1}
	bestScore := 0

	for row := range scores {
		for col, score := range scores[row] {
			c := Coordinates{Row: row, Col: col}
			if !shotGrid.IsFresh(c) {
				continue
			}
			if score > bestScore {
				best, bestScore = c, score
			}
		}
	}
	if bestScore > 0 {
		return best, nil
	}

	// Uniform fallback: the first fresh cell in row-major order.
	for row := 0; row < shotGrid.Size(); row++ {
		for col := 0; col < shotGrid.Size(); col++ {
			c := Coordinates{Row: row, Col: col}
			if shotGrid.IsFresh(c) {
				return c, nil
			}
		}
	}
	return best, cerr.ErrNoTargetsLeft
}
