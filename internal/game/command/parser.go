package command

import "strings"

// targetMarkers introduce a trailing target clause: "ability power slash on 2".
var targetMarkers = []string{"on", "at"}

// Input is one line of player input split into a verb, its operand, and an
// optional target clause.
type Input struct {
	// Verb is the first word, lowercased.
	Verb string
	// Words are the operand words, excluding any target clause.
	Words []string
	// Operand is the operand text with single spaces between words.
	Operand string
	// Target is the text after a trailing "on" or "at", or empty.
	Target string
}

// Parse splits line into an Input.
//
// Postcondition: an empty or blank line yields the zero Input. Target is
// only set when at least one operand word precedes the marker.
func Parse(line string) Input {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return Input{}
	}
	in := Input{Verb: strings.ToLower(fields[0])}
	words := fields[1:]

	for i := len(words) - 2; i >= 1; i-- {
		if isTargetMarker(words[i]) {
			in.Target = strings.Join(words[i+1:], " ")
			words = words[:i]
			break
		}
	}
	if len(words) > 0 {
		in.Words = words
		in.Operand = strings.Join(words, " ")
	}
	return in
}

func isTargetMarker(w string) bool {
	w = strings.ToLower(w)
	for _, m := range targetMarkers {
		if w == m {
			return true
		}
	}
	return false
}
