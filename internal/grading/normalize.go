// Package grading implements answer comparison for text questions.
// Grading is tolerant of case, punctuation, hyphenation, spacing and
// common English contractions, but strict on spelling.
package grading

import "strings"

// contractions maps contracted forms to their expansions. Irregular forms
// come first so the generic suffix rules never see them.
var contractions = []struct {
	from string
	to   string
}{
	{"won't", "will not"},
	{"can't", "cannot"},
	{"let's", "let us"},
	{"n't", " not"},
	{"'re", " are"},
	{"'ve", " have"},
	{"'ll", " will"},
	{"'d", " would"},
	{"'m", " am"},
	{"'s", " is"},
}

// Normalize reduces an answer to its comparison key: lowercase, expanded
// contractions, all non-alphanumeric characters removed. Whitespace is
// removed too, so "bus stop" and "busstop" compare equal, as do
// "ice-cream" and "icecream".
func Normalize(s string) string {
	s = strings.ToLower(s)
	s = strings.ReplaceAll(s, "’", "'") // curly apostrophes from mobile keyboards

	for _, c := range contractions {
		s = strings.ReplaceAll(s, c.from, c.to)
	}

	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Correct reports whether userAnswer matches answer or any of the
// pipe-separated altAnswers after normalization. An empty or blank
// user answer is always wrong.
func Correct(userAnswer, answer, altAnswers string) bool {
	if strings.TrimSpace(userAnswer) == "" {
		return false
	}

	got := Normalize(userAnswer)
	if got == Normalize(answer) {
		return true
	}

	if altAnswers == "" {
		return false
	}
	for _, alt := range strings.Split(altAnswers, "|") {
		alt = strings.TrimSpace(alt)
		if alt != "" && got == Normalize(alt) {
			return true
		}
	}
	return false
}
