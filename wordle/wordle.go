package wordle

import (
	"strings"

	"github.com/bits-and-blooms/bitset"
)

// Word is an index into the dictionary
type Word uint16

// Answer is a bitset where there are 2 bits for each Color, first letter in
// the highest bits
type Answer uint32

type Color uint16

// WordList is a set of dictionary words
type WordList bitset.BitSet

const (
	Absent Color = iota
	Present
	Exact
)

// MaxWordLength is the longest word an Answer can hold
const MaxWordLength = 16

func (c Color) String() string {
	switch c {
	case Absent:
		return "absent"
	case Present:
		return "present"
	case Exact:
		return "exact"
	}
	return "invalid"
}

func NewAnswer(colors []Color) Answer {
	ret := Answer(0)
	for _, color := range colors {
		ret <<= 2
		ret |= Answer(color & 3)
	}
	return ret
}

// StringToAnswer parses r (absent), y (present), g (exact) letters
func StringToAnswer(colors string) (Answer, bool) {
	ret := Answer(0)
	ok := len(colors) <= MaxWordLength
	for _, color := range colors {
		ret <<= 2
		switch color {
		case 'r':
			ret |= Answer(Absent)
		case 'y':
			ret |= Answer(Present)
		case 'g':
			ret |= Answer(Exact)
		default:
			ok = false
		}
	}
	return ret, ok
}

// AllExact is the answer that ends the game
func AllExact(length int) Answer {
	colors := make([]Color, length)
	for i := range colors {
		colors[i] = Exact
	}
	return NewAnswer(colors)
}

func (a Answer) Colors(length int) []Color {
	ret := make([]Color, length)
	for i := length - 1; i >= 0; i-- {
		ret[i] = Color(a & 3)
		a >>= 2
	}
	return ret
}

// Count returns how many positions have the color
func (a Answer) Count(length int, color Color) int {
	n := 0
	for _, c := range a.Colors(length) {
		if c == color {
			n++
		}
	}
	return n
}

// Format writes the answer in the r/y/g letters StringToAnswer reads
func (a Answer) Format(length int) string {
	var sb strings.Builder
	for _, color := range a.Colors(length) {
		switch color {
		case Absent:
			sb.WriteByte('r')
		case Present:
			sb.WriteByte('y')
		case Exact:
			sb.WriteByte('g')
		default:
			sb.WriteByte('?')
		}
	}
	return sb.String()
}

func (wl *WordList) Range(yield func(i int, word Word) bool) {
	bs := (*bitset.BitSet)(wl)
	i := 0
	for word, ok := bs.NextSet(0); ok; word, ok = bs.NextSet(word + 1) {
		if !yield(i, Word(word)) {
			return
		}
		i++
	}
}

func (wl *WordList) Words() []Word {
	ret := make([]Word, 0, wl.Len())
	for _, word := range wl.Range {
		ret = append(ret, word)
	}
	return ret
}

// FirstWord returns the lowest word in the list, ok is false for an empty list
func (wl *WordList) FirstWord() (Word, bool) {
	bs := (*bitset.BitSet)(wl)
	word, ok := bs.NextSet(0)
	return Word(word), ok
}

func (wl *WordList) Len() int {
	bs := (*bitset.BitSet)(wl)
	return int(bs.Count())
}

func (wl *WordList) Insert(word Word) {
	bs := (*bitset.BitSet)(wl)
	bs.Set(uint(word))
}

func (wl *WordList) Contains(word Word) bool {
	bs := (*bitset.BitSet)(wl)
	return bs.Test(uint(word))
}

func (wl *WordList) Clone() *WordList {
	bs := (*bitset.BitSet)(wl)
	return (*WordList)(bs.Clone())
}
