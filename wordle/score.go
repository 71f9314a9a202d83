package wordle

// Score returns the colors for probe when hypothesis is the solution.
//
// Pass 1 marks exact letters and consumes those solution positions.
// Pass 2 walks the remaining probe letters left to right; each consumes the
// earliest unconsumed equal solution letter (present) or is absent. This
// keeps repeated letters honest: a solution letter is matched at most once.
func Score(probe, hypothesis string) (Answer, error) {
	p := []rune(probe)
	h := []rune(hypothesis)
	if len(p) != len(h) {
		return 0, &MalformedError{Probe: probe, Hypothesis: hypothesis, Reason: "length mismatch"}
	}
	if len(p) > MaxWordLength {
		return 0, &MalformedError{Probe: probe, Hypothesis: hypothesis, Reason: "word too long"}
	}
	return score(p, h), nil
}

func score(probe, hypothesis []rune) Answer {
	colors := make([]Color, len(probe))
	used := make([]bool, len(hypothesis))
	for i := range probe {
		if probe[i] == hypothesis[i] {
			colors[i] = Exact
			used[i] = true
		}
	}
	for i, letter := range probe {
		if colors[i] == Exact {
			continue
		}
		for j, solutionLetter := range hypothesis {
			if !used[j] && letter == solutionLetter {
				colors[i] = Present
				used[j] = true
				break
			}
		}
	}
	return NewAnswer(colors)
}
