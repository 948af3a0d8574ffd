// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package extract recovers a JSON document from raw vision-model output.
// Model responses are not guaranteed to be pure JSON: they may wrap the
// payload in a code fence or surround it with prose. Implements:
// prd002-normalization (R3); docs/ARCHITECTURE § Extraction.
package extract

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// ErrEmptyResponse reports that the upstream model produced no usable text.
// Per prd002-normalization R3.1 this is terminal for the request; callers
// do not retry.
var ErrEmptyResponse = errors.New("empty model response")

// MalformedJSONError reports that a JSON-like span was located but did not
// parse. Raw carries the offending candidate text for diagnostics (R3.4).
type MalformedJSONError struct {
	Raw string
	Err error
}

func (e *MalformedJSONError) Error() string {
	return fmt.Sprintf("malformed JSON in model response: %v", e.Err)
}

func (e *MalformedJSONError) Unwrap() error { return e.Err }

// fenceRe matches the first fenced code block, optionally tagged as json.
// Non-greedy so prose after the closing fence is not swallowed.
var fenceRe = regexp.MustCompile("```(?:json)?\\s*([\\s\\S]*?)\\s*```")

// ExtractJSON locates and parses the JSON payload embedded in raw model
// output. Candidate selection, in priority order (R3.2, R3.3):
//
//  1. The inner contents of the first fenced code block, if any.
//  2. Otherwise the span from the first opening bracket to the last
//     matching closing bracket ([..] if the trimmed text starts with
//     "[", {..} otherwise), which tolerates leading and trailing
//     commentary the model may emit despite instructions.
//
// The candidate must parse as a JSON value. An empty or blank input
// returns ErrEmptyResponse; a parse failure returns *MalformedJSONError
// with the candidate attached.
func ExtractJSON(raw string) (json.RawMessage, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return nil, ErrEmptyResponse
	}

	if m := fenceRe.FindStringSubmatch(s); m != nil {
		s = strings.TrimSpace(m[1])
	} else if strings.HasPrefix(s, "[") {
		s = bracketSpan(s, '[', ']')
	} else {
		s = bracketSpan(s, '{', '}')
	}

	var v json.RawMessage
	if err := json.Unmarshal([]byte(s), &v); err != nil {
		return nil, &MalformedJSONError{Raw: s, Err: err}
	}
	return v, nil
}

// bracketSpan slices s from the first occurrence of open to the last
// occurrence of close, inclusive. If either bracket is missing the input
// is returned unchanged and left for the JSON parser to reject.
func bracketSpan(s string, open, close byte) string {
	a := strings.IndexByte(s, open)
	b := strings.LastIndexByte(s, close)
	if a == -1 || b == -1 || b < a {
		return s
	}
	return s[a : b+1]
}
