package wordle

import (
	"context"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/powellquiring/infoguess/engine"
)

func stringToWordOrPanic(d *Dictionary, s string) Word {
	word, ok := d.Word(s)
	if !ok {
		panic("word not in dictionary: " + s)
	}
	return word
}

func colors(t *testing.T, probe, hypothesis string) string {
	answer, err := Score(probe, hypothesis)
	require.NoError(t, err)
	return answer.Format(len([]rune(probe)))
}

func TestScore(t *testing.T) {
	tests := []struct {
		probe, hypothesis, want string
	}{
		{"cat", "cat", "ggg"},
		{"cat", "dog", "rrr"},
		{"dog", "pig", "rrg"},
		{"tac", "cat", "ygy"},
		{"aab", "aba", "gyy"},
		{"aab", "aca", "gyr"},
		{"aaa", "abc", "grr"},
		{"abc", "aaa", "grr"},
		{"eel", "lee", "ygy"},
		{"see", "ees", "ygy"},
		{"pop", "opt", "yyr"},
	}
	for _, tt := range tests {
		t.Run(tt.probe+"/"+tt.hypothesis, func(t *testing.T) {
			assert.Equal(t, tt.want, colors(t, tt.probe, tt.hypothesis))
		})
	}
}

func TestScoreMalformed(t *testing.T) {
	_, err := Score("ab", "abc")
	require.ErrorIs(t, err, ErrMalformed)
	var malformed *MalformedError
	require.ErrorAs(t, err, &malformed)
	assert.Equal(t, "ab", malformed.Probe)

	_, err = Score(strings.Repeat("a", MaxWordLength+1), strings.Repeat("b", MaxWordLength+1))
	assert.ErrorIs(t, err, ErrMalformed)
}

func TestScoreProperties(t *testing.T) {
	words := DefaultWords()
	for _, probe := range words[:40] {
		for _, hypothesis := range words {
			answer, err := Score(probe, hypothesis)
			require.NoError(t, err)
			assert.Equal(t, probe == hypothesis, answer == AllExact(3), "%s %s", probe, hypothesis)
			exact := answer.Count(3, Exact)
			present := answer.Count(3, Present)
			assert.LessOrEqual(t, exact+present, 3)
		}
	}
}

func TestAnswer(t *testing.T) {
	answer, ok := StringToAnswer("gyr")
	require.True(t, ok)
	assert.Equal(t, NewAnswer([]Color{Exact, Present, Absent}), answer)
	assert.Equal(t, []Color{Exact, Present, Absent}, answer.Colors(3))
	assert.Equal(t, "gyr", answer.Format(3))
	assert.Equal(t, 1, answer.Count(3, Present))

	_, ok = StringToAnswer("gxr")
	assert.False(t, ok)
	assert.Equal(t, "exact", Exact.String())
	assert.Equal(t, "ggggg", AllExact(5).Format(5))
}

func TestNewDictionary(t *testing.T) {
	_, err := NewDictionary(nil)
	assert.Error(t, err)
	_, err = NewDictionary([]string{"cat", "doge"})
	assert.ErrorIs(t, err, ErrMalformed)
	_, err = NewDictionary([]string{"cat", "cat"})
	assert.Error(t, err)

	d, err := NewDictionary([]string{"cat", "dog", "pig"})
	require.NoError(t, err)
	assert.Equal(t, 3, d.Len())
	assert.Equal(t, 3, d.WordLength())
	_, err = d.Lookup([]string{"cat", "cow"})
	assert.ErrorIs(t, err, ErrUnknownWord)
}

func TestWordList(t *testing.T) {
	d, err := NewDictionary([]string{"cat", "dog", "pig", "cow"})
	require.NoError(t, err)
	wl, err := d.WordlistFromStrings([]string{"pig", "cat"})
	require.NoError(t, err)
	assert.Equal(t, 2, wl.Len())
	assert.Equal(t, []string{"cat", "pig"}, d.WordlistStrings(wl))
	first, ok := wl.FirstWord()
	require.True(t, ok)
	assert.Equal(t, "cat", d.String(first))
	_, ok = d.WordlistEmpty().FirstWord()
	assert.False(t, ok)

	clone := wl.Clone()
	clone.Insert(stringToWordOrPanic(d, "cow"))
	assert.Equal(t, 2, wl.Len())
	assert.True(t, clone.Contains(stringToWordOrPanic(d, "cow")))
}

func TestFilter(t *testing.T) {
	d, err := NewDictionary(DefaultWords())
	require.NoError(t, err)
	all := d.WordlistAll()
	for _, pair := range [][2]string{{"the", "and"}, {"you", "one"}, {"eat", "tea"}, {"but", "but"}} {
		probe := stringToWordOrPanic(d, pair[0])
		secret := stringToWordOrPanic(d, pair[1])
		filtered := d.Filter(all, probe, d.Answer(probe, secret))
		assert.True(t, filtered.Contains(secret), "%v", pair)
		assert.LessOrEqual(t, filtered.Len(), all.Len())
		for _, word := range filtered.Range {
			assert.True(t, all.Contains(word))
		}
		again := d.Filter(filtered, probe, d.Answer(probe, secret))
		assert.Equal(t, filtered.Len(), again.Len())
	}
}

func TestEntropy(t *testing.T) {
	d, err := NewDictionary([]string{"cat", "dog", "pig"})
	require.NoError(t, err)
	all := d.WordlistAll()
	assert.InDelta(t, 0.9182958340544896, d.Entropy(stringToWordOrPanic(d, "cat"), all), 1e-9)
	assert.InDelta(t, math.Log2(3), d.Entropy(stringToWordOrPanic(d, "dog"), all), 1e-9)
	assert.InDelta(t, math.Log2(3), d.Entropy(stringToWordOrPanic(d, "pig"), all), 1e-9)

	one, err := d.WordlistFromStrings([]string{"pig"})
	require.NoError(t, err)
	assert.Zero(t, d.Entropy(stringToWordOrPanic(d, "cat"), one))

	full, err := NewDictionary(DefaultWords())
	require.NoError(t, err)
	scores, err := full.Scores(context.Background(), full.WordlistAll().Words(), full.WordlistAll(), 4)
	require.NoError(t, err)
	for _, s := range scores {
		assert.GreaterOrEqual(t, s, 0.0)
		assert.LessOrEqual(t, s, math.Log2(float64(full.Len()))+1e-9)
	}
}

func TestSimulateCatDogPig(t *testing.T) {
	d, err := NewDictionary([]string{"cat", "dog", "pig"})
	require.NoError(t, err)
	ctx := context.Background()

	result, err := Simulate(ctx, d, "dog", Config{MaxTurns: 6})
	require.NoError(t, err)
	assert.Equal(t, engine.Solved, result.Status)
	assert.Equal(t, 1, result.TurnsTaken)
	assert.Equal(t, "dog", result.Turns[0].Probe)
	assert.InDelta(t, math.Log2(3), result.Turns[0].Entropy, 1e-9)

	result, err = Simulate(ctx, d, "pig", Config{MaxTurns: 6})
	require.NoError(t, err)
	assert.Equal(t, engine.Solved, result.Status)
	require.Equal(t, 2, result.TurnsTaken)
	assert.Equal(t, "dog", result.Turns[0].Probe)
	assert.Equal(t, "rrg", result.Turns[0].Feedback.Format(3))
	assert.Equal(t, 1, result.Turns[0].Remaining)
	assert.Equal(t, "pig", result.Turns[1].Probe)
	assert.InDeltaSlice(t, []float64{math.Log2(3), 0}, result.Trace(), 1e-9)
}

func TestSimulateFirstGuesses(t *testing.T) {
	d, err := NewDictionary([]string{"cat", "dog", "pig"})
	require.NoError(t, err)
	result, err := Simulate(context.Background(), d, "dog", Config{MaxTurns: 6, FirstGuesses: []string{"cat"}})
	require.NoError(t, err)
	require.Equal(t, 2, result.TurnsTaken)
	assert.Equal(t, "cat", result.Turns[0].Probe)
	assert.InDelta(t, 0.9182958340544896, result.Turns[0].Entropy, 1e-9)
	assert.Equal(t, 2, result.Turns[0].Remaining)
	assert.Equal(t, "dog", result.Turns[1].Probe)
}

func TestSimulateErrors(t *testing.T) {
	d, err := NewDictionary([]string{"cat", "dog", "pig"})
	require.NoError(t, err)
	ctx := context.Background()

	_, err = Simulate(ctx, d, "cow", Config{MaxTurns: 6})
	assert.ErrorIs(t, err, ErrUnknownWord)
	_, err = Simulate(ctx, d, "doge", Config{MaxTurns: 6})
	assert.ErrorIs(t, err, ErrMalformed)
	_, err = Simulate(ctx, d, "dog", Config{MaxTurns: 6, Hypotheses: []string{"cat", "pig"}})
	assert.Error(t, err)
	_, err = Simulate(ctx, d, "dog", Config{MaxTurns: 0})
	assert.ErrorIs(t, err, engine.ErrInvalidMaxTurns)
}

func TestSimulateLimitedProbes(t *testing.T) {
	d, err := NewDictionary([]string{"cat", "dog", "pig"})
	require.NoError(t, err)
	// cat can only tell cat apart from the rest
	result, err := Simulate(context.Background(), d, "pig", Config{MaxTurns: 3, Probes: []string{"cat"}})
	require.NoError(t, err)
	assert.Equal(t, engine.Aborted, result.Status)
	assert.Equal(t, 3, result.TurnsTaken)
	assert.False(t, result.Infeasible)
}

func TestSimulateAllTerminates(t *testing.T) {
	d, err := NewDictionary(DefaultWords())
	require.NoError(t, err)
	secrets := d.WordlistStrings(d.WordlistAll())
	results, err := SimulateAll(context.Background(), d, secrets, Config{MaxTurns: d.Len()}, 0, nil)
	require.NoError(t, err)
	require.Len(t, results, len(secrets))
	summary := engine.Summarize(results)
	assert.Equal(t, len(secrets), summary.Solved)
	assert.Zero(t, summary.Aborted)
	for i, result := range results {
		last, ok := result.Last()
		require.True(t, ok)
		assert.Equal(t, secrets[i], last.Probe)
		for j := 1; j < len(result.Turns); j++ {
			assert.Less(t, result.Turns[j].Remaining, result.Turns[j-1].Remaining+1)
		}
	}
}

func TestFirst(t *testing.T) {
	d, err := NewDictionary([]string{"cat", "dog", "pig"})
	require.NoError(t, err)
	top, err := First(context.Background(), d, Config{}, 2)
	require.NoError(t, err)
	require.Len(t, top, 2)
	assert.Equal(t, "dog", top[0].Probe)
	assert.Equal(t, "pig", top[1].Probe)
	assert.InDelta(t, math.Log2(3), top[0].Score, 1e-9)
}

func TestPlay(t *testing.T) {
	d, err := NewDictionary([]string{"cat", "dog", "pig"})
	require.NoError(t, err)
	ctx := context.Background()

	next, possible, err := Play(ctx, d, []GuessAnswer{{Guess: "dog", Answer: "rrg"}}, Config{})
	require.NoError(t, err)
	assert.Equal(t, "pig", next)
	assert.Equal(t, []string{"pig"}, possible)

	next, possible, err = Play(ctx, d, nil, Config{})
	require.NoError(t, err)
	assert.Equal(t, "dog", next)
	assert.Len(t, possible, 3)

	next, possible, err = Play(ctx, d, []GuessAnswer{{Guess: "dog", Answer: "ggr"}}, Config{})
	require.NoError(t, err)
	assert.Empty(t, next)
	assert.Empty(t, possible)

	_, _, err = Play(ctx, d, []GuessAnswer{{Guess: "dog", Answer: "gg"}}, Config{})
	assert.Error(t, err)
}

func TestReadWords(t *testing.T) {
	words, err := ReadWords(strings.NewReader("Cat\n dog\ncat\nhorse\nx1y\n\npig\n"), 3)
	require.NoError(t, err)
	assert.Equal(t, []string{"cat", "dog", "pig"}, words)

	words, err = ReadWords(strings.NewReader("horse\ncat\nmouse\n"), 0)
	require.NoError(t, err)
	assert.Equal(t, []string{"horse", "mouse"}, words)

	defaults := DefaultWords()
	assert.Len(t, defaults, 316)
	assert.Equal(t, "the", defaults[0])
}

func TestSample(t *testing.T) {
	words := DefaultWords()
	a := Sample(words, 10, 7)
	b := Sample(words, 10, 7)
	assert.Equal(t, a, b)
	assert.Len(t, a, 10)
	assert.Len(t, Sample(words, -1, 7), len(words))
}

func BenchmarkSimulate(b *testing.B) {
	d, err := NewDictionary(DefaultWords())
	require.NoError(b, err)
	for b.Loop() {
		_, err := Simulate(context.Background(), d, "you", Config{MaxTurns: 10})
		require.NoError(b, err)
	}
}
