package engine

// PadPolicy decides how games that ended early count towards a per-turn
// average over many games.
type PadPolicy int

const (
	// PadNone averages each turn over the games that reached it.
	PadNone PadPolicy = iota
	// PadZero counts finished games as 0 for every later turn.
	PadZero
	// PadLast repeats a finished game's final value for every later turn.
	PadLast
)

// AverageTrace averages traces turn by turn. The result is as long as the
// longest trace.
func AverageTrace(traces [][]float64, policy PadPolicy) []float64 {
	longest := 0
	for _, trace := range traces {
		longest = max(longest, len(trace))
	}
	avg := make([]float64, longest)
	for turn := range longest {
		sum, n := 0.0, 0
		for _, trace := range traces {
			switch {
			case turn < len(trace):
				sum += trace[turn]
				n++
			case policy == PadZero:
				n++
			case policy == PadLast && len(trace) > 0:
				sum += trace[len(trace)-1]
				n++
			case policy == PadLast:
				n++
			}
		}
		if n > 0 {
			avg[turn] = sum / float64(n)
		}
	}
	return avg
}
