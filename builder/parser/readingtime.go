package parser

import (
	"math"
	"strings"

	stripmd "github.com/writeas/go-strip-markdown/v2"
)

// WordsPerMinute is the assumed reading speed.
const WordsPerMinute = 200.0

// CountWords counts the words of body once markdown syntax is removed.
func CountWords(body string) int {
	words := len(strings.Fields(stripmd.Strip(body)))
	if words == 0 {
		words = len(strings.Fields(body))
	}
	return words
}

// ReadingTime estimates whole minutes to read body, rounded up and never below 1.
func ReadingTime(body string) int {
	minutes := int(math.Ceil(float64(CountWords(body)) / WordsPerMinute))
	if minutes < 1 {
		return 1
	}
	return minutes
}
