// Package words splits text into words for the word counting pipelines.
package words

import (
	"fmt"
	"io"
	"os"
	"regexp"
	"unicode/utf8"
)

// separator matches every run of non-letter characters.
var separator = regexp.MustCompile(`\PL+`)

// Split returns the maximal runs of Unicode letters in text, in order.
// Text without letters yields an empty slice.
func Split(text string) []string {
	parts := separator.Split(text, -1)
	words := parts[:0]
	for _, p := range parts {
		if p != "" {
			words = append(words, p)
		}
	}
	return words
}

// Read consumes r and splits its contents.
func Read(r io.Reader) ([]string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read words: %w", err)
	}
	return Split(string(data)), nil
}

// ReadFile reads the UTF-8 file at path and splits its contents.
func ReadFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open words file: %w", err)
	}
	defer f.Close()

	return Read(f)
}

// Length returns the number of letters in word.
func Length(word string) int {
	return utf8.RuneCountInString(word)
}

// LongerThan returns a predicate matching words with more than n letters.
func LongerThan(n int) func(string) bool {
	return func(word string) bool {
		return Length(word) > n
	}
}
