package session

// MaxScore is the highest session score; scores are out of 10.
const MaxScore = 10

// SimulatedOutcomes expands an aggregate session score into per-puzzle
// results: of n puzzles, the first score are correct and the rest are not.
// Attempt i (1-based) is correct iff score-i+1 > 0.
func SimulatedOutcomes(score, n int) []bool {
	if n < 0 {
		n = 0
	}
	out := make([]bool, n)
	for i := range out {
		out[i] = score-i > 0
	}
	return out
}
