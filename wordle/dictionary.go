package wordle

import (
	"context"
	"fmt"
	"math"
	"unicode/utf8"

	"github.com/bits-and-blooms/bitset"

	"github.com/powellquiring/infoguess/entropy"
)

// answers for every probe/solution pair are cached up to this many words
const maxCachedWords = 2048

type Dictionary struct {
	words        []string
	runes        [][]rune
	length       int
	stringToWord map[string]Word
	answerCache  [][]Answer
}

// NewDictionary indexes words in the order given. All words must have the
// same length and appear once.
func NewDictionary(words []string) (*Dictionary, error) {
	if len(words) == 0 {
		return nil, fmt.Errorf("wordle: empty dictionary")
	}
	if len(words) > math.MaxUint16+1 {
		return nil, fmt.Errorf("wordle: %d words is more than a dictionary can index", len(words))
	}
	length := utf8.RuneCountInString(words[0])
	if length == 0 || length > MaxWordLength {
		return nil, &MalformedError{Probe: words[0], Hypothesis: words[0], Reason: fmt.Sprintf("length must be 1..%d", MaxWordLength)}
	}
	d := &Dictionary{
		words:        words,
		runes:        make([][]rune, len(words)),
		length:       length,
		stringToWord: make(map[string]Word, len(words)),
	}
	for i, word := range words {
		if utf8.RuneCountInString(word) != length {
			return nil, &MalformedError{Probe: words[0], Hypothesis: word, Reason: "length mismatch"}
		}
		if _, ok := d.stringToWord[word]; ok {
			return nil, fmt.Errorf("wordle: duplicate word %q", word)
		}
		d.stringToWord[word] = Word(i)
		d.runes[i] = []rune(word)
	}
	if len(words) <= maxCachedWords {
		d.answerCache = make([][]Answer, len(words))
		for probe := range d.answerCache {
			d.answerCache[probe] = make([]Answer, len(words))
			for solution := range d.answerCache[probe] {
				d.answerCache[probe][solution] = score(d.runes[probe], d.runes[solution])
			}
		}
	}
	return d, nil
}

func (d *Dictionary) Len() int {
	return len(d.words)
}

// WordLength is the number of letters of every word
func (d *Dictionary) WordLength() int {
	return d.length
}

func (d *Dictionary) Word(s string) (Word, bool) {
	ret, ok := d.stringToWord[s]
	return ret, ok
}

func (d *Dictionary) String(word Word) string {
	return d.words[word]
}

// Lookup converts strings to words, failing on the first unknown one
func (d *Dictionary) Lookup(strings []string) ([]Word, error) {
	ret := make([]Word, 0, len(strings))
	for _, s := range strings {
		word, ok := d.Word(s)
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownWord, s)
		}
		ret = append(ret, word)
	}
	return ret, nil
}

func (d *Dictionary) Strings(words []Word) []string {
	ret := make([]string, 0, len(words))
	for _, word := range words {
		ret = append(ret, d.String(word))
	}
	return ret
}

func (d *Dictionary) WordlistAll() *WordList {
	ret := d.WordlistEmpty()
	for i := range d.words {
		ret.Insert(Word(i))
	}
	return ret
}

func (d *Dictionary) WordlistEmpty() *WordList {
	return (*WordList)(bitset.New(uint(len(d.words))))
}

func (d *Dictionary) WordlistFromStrings(strings []string) (*WordList, error) {
	words, err := d.Lookup(strings)
	if err != nil {
		return nil, err
	}
	ret := d.WordlistEmpty()
	for _, word := range words {
		ret.Insert(word)
	}
	return ret, nil
}

func (d *Dictionary) WordlistStrings(wordlist *WordList) []string {
	return d.Strings(wordlist.Words())
}

// Answer is the feedback for guessing probe when solution is the secret
func (d *Dictionary) Answer(probe, solution Word) Answer {
	if d.answerCache != nil {
		return d.answerCache[probe][solution]
	}
	return score(d.runes[probe], d.runes[solution])
}

func (d *Dictionary) oracle(probe, solution Word) (Answer, error) {
	return d.Answer(probe, solution), nil
}

// Filter returns the candidates that would have produced answer for probe
func (d *Dictionary) Filter(candidates *WordList, probe Word, answer Answer) *WordList {
	ret := d.WordlistEmpty()
	for _, solution := range candidates.Range {
		if d.Answer(probe, solution) == answer {
			ret.Insert(solution)
		}
	}
	return ret
}

// Entropy of the answers probe produces over the candidates
func (d *Dictionary) Entropy(probe Word, candidates *WordList) float64 {
	h, _ := entropy.Score(probe, candidates.Words(), d.oracle)
	return h
}

// Scores returns the entropy of every probe against the candidates, in probe order
func (d *Dictionary) Scores(ctx context.Context, probes []Word, candidates *WordList, workers int) ([]float64, error) {
	solutions := candidates.Words()
	return entropy.ScoreAll(ctx, probes, workers, func(probe Word) (float64, error) {
		return entropy.Score(probe, solutions, d.oracle)
	})
}
