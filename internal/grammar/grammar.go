// Package grammar turns free-form model output into correction records and
// defines the error taxonomy shared by the check pipeline.
package grammar

import "unicode/utf8"

// MaxTextLength is the maximum input size in characters (code points).
const MaxTextLength = 5000

// SentinelWrong is the template placeholder a model echoes back when it
// fails to quote the input. Records carrying it are discarded.
const SentinelWrong = "incorrect text"

// DefaultErrorType is used when the model omits error_type.
const DefaultErrorType = "unknown"

// Issue is a single correction suggested by the model.
type Issue struct {
	Wrong     string `json:"wrong" yaml:"wrong"`
	Corrected string `json:"corrected" yaml:"corrected"`
	ErrorType string `json:"error_type" yaml:"error_type"`
}

// TextLength returns the length of text in characters.
func TextLength(text string) int {
	return utf8.RuneCountInString(text)
}

// Truncate cuts text to at most max characters without splitting a rune.
func Truncate(text string, max int) string {
	if TextLength(text) <= max {
		return text
	}
	n := 0
	for i := range text {
		if n == max {
			return text[:i]
		}
		n++
	}
	return text
}

// Preview returns the first n characters of text followed by "..." for logging.
func Preview(text string, n int) string {
	return Truncate(text, n) + "..."
}
