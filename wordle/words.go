package wordle

import (
	"bufio"
	_ "embed"
	"io"
	"os"
	"strings"
	"unicode"
	"unicode/utf8"

	mapset "github.com/deckarep/golang-set"
	"golang.org/x/exp/rand"
)

// three letter words in the order their entropy ties are broken
//
//go:embed three_letter.txt
var threeLetterWords string

// DefaultWords returns the embedded three letter word list
func DefaultWords() []string {
	words, _ := ReadWords(strings.NewReader(threeLetterWords), 3)
	return words
}

// ReadWords reads one word per line, lowercased and trimmed. Words that are
// not length letters long are skipped, as are repeats. length <= 0 accepts
// the length of the first word.
func ReadWords(r io.Reader, length int) ([]string, error) {
	var out []string
	seen := mapset.NewThreadUnsafeSet()
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		w := strings.TrimSpace(strings.ToLower(sc.Text()))
		if w == "" || !isLetters(w) {
			continue
		}
		if length <= 0 {
			length = utf8.RuneCountInString(w)
		}
		if utf8.RuneCountInString(w) != length || !seen.Add(w) {
			continue
		}
		out = append(out, w)
	}
	return out, sc.Err()
}

// ReadWordFile is ReadWords on a file
func ReadWordFile(path string, length int) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadWords(f, length)
}

func isLetters(s string) bool {
	for _, r := range s {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return true
}

// Sample returns n distinct words picked with a seeded generator, or all of
// them when n is not smaller than the list.
func Sample(words []string, n int, seed uint64) []string {
	if n < 0 || n >= len(words) {
		return append([]string(nil), words...)
	}
	rng := rand.New(rand.NewSource(seed))
	picked := rng.Perm(len(words))[:n]
	ret := make([]string, n)
	for i, p := range picked {
		ret[i] = words[p]
	}
	return ret
}
