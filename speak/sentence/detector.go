// Package sentence decides where spoken sentences end and estimates how long
// text takes to speak.
package sentence

import (
	"regexp"
	"strings"
	"time"
	"unicode"
)

// DefaultTerminals are the marks that end a sentence when no others are
// configured. Besides ASCII punctuation they cover the ideographic full stop,
// the Arabic question mark and the Devanagari danda.
const DefaultTerminals = ".?!。？！؟।"

// DefaultClosers may trail a terminal mark without hiding it.
const DefaultClosers = "\"'”’»)]"

// Detector recognizes sentence-final text.
type Detector struct {
	terminals     string
	closers       string
	abbreviations map[string]bool
}

// NewDetector creates a detector using the given terminal marks. An empty
// string selects DefaultTerminals.
func NewDetector(terminals string) *Detector {
	if terminals == "" {
		terminals = DefaultTerminals
	}
	return &Detector{
		terminals:     terminals,
		closers:       DefaultClosers,
		abbreviations: makeAbbreviationMap(),
	}
}

// Terminals returns the configured terminal marks.
func (d *Detector) Terminals() string {
	return d.terminals
}

// EndsSentence reports whether text, taken as a whole, finishes a sentence.
func (d *Detector) EndsSentence(text string) bool {
	runes := []rune(strings.TrimRightFunc(text, unicode.IsSpace))

	// Skip closing quotes or brackets
	end := len(runes)
	for end > 0 && strings.ContainsRune(d.closers, runes[end-1]) {
		end--
	}
	if end == 0 {
		return false
	}

	pos := end - 1
	if !strings.ContainsRune(d.terminals, runes[pos]) {
		return false
	}
	if runes[pos] != '.' {
		return true
	}

	// Ellipsis trails off rather than ending
	if pos >= 1 && (runes[pos-1] == '.' || runes[pos-1] == '…') {
		return false
	}

	return !d.isAbbreviation(runes, pos)
}

func (d *Detector) isAbbreviation(runes []rune, pos int) bool {
	start := pos - 1
	for start >= 0 && !unicode.IsSpace(runes[start]) {
		start--
	}
	word := strings.ToLower(string(runes[start+1 : pos]))
	word = strings.TrimLeftFunc(word, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	if word == "" {
		return false
	}

	if d.abbreviations[word] {
		return true
	}
	// Multi-part abbreviations like "B.C." or "A.D."
	return strings.Count(word, ".") > 0 && len([]rune(word)) <= 4
}

// WordCount returns the number of whitespace-separated words in text.
func WordCount(text string) int {
	return len(strings.Fields(text))
}

var (
	numberRegex      = regexp.MustCompile(`\d+`)
	punctuationRegex = regexp.MustCompile(`[,;:\-()]`)
)

// EstimateDuration estimates the speaking duration for text.
func EstimateDuration(text string) time.Duration {
	words := WordCount(text)
	if words == 0 {
		return 0
	}

	// Base rate: 150 words per minute, slowed down for complex text
	baseRate := 150.0
	adjustedRate := baseRate * (1.0 - complexity(text)*0.2)

	seconds := float64(words) * 60.0 / adjustedRate
	return time.Duration(seconds * float64(time.Second))
}

func complexity(text string) float64 {
	c := 0.0

	c += float64(len(numberRegex.FindAllString(text, -1))) * 0.02
	c += float64(len(punctuationRegex.FindAllString(text, -1))) * 0.01

	words := strings.Fields(text)
	long := 0
	for _, w := range words {
		if len([]rune(w)) > 10 {
			long++
		}
	}
	c += float64(long) / float64(len(words)+1) * 0.1

	if c > 0.5 {
		c = 0.5
	}
	return c
}

func makeAbbreviationMap() map[string]bool {
	abbrevs := []string{
		"mr", "mrs", "ms", "dr", "st", "sr", "jr",
		"i.e", "e.g", "etc", "vs", "cf", "viz",
		"ch", "chap", "v", "vv", "ver", "ps", "cp",
		"b.c", "a.d", "b.c.e", "c.e",
	}

	m := make(map[string]bool, len(abbrevs))
	for _, a := range abbrevs {
		m[a] = true
	}
	return m
}
