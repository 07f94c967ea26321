package textgen

import (
	"errors"
	"strings"
)

const (
	thinkOpen  = "<think>"
	thinkClose = "</think>"
)

// StripThinking removes <think>...</think> sections emitted by reasoning models.
func StripThinking(s string) string {
	for {
		start := strings.Index(s, thinkOpen)
		if start == -1 {
			break
		}
		end := strings.Index(s[start:], thinkClose)
		if end == -1 {
			// unterminated: everything after the tag is reasoning
			s = s[:start]
			break
		}
		s = s[:start] + s[start+end+len(thinkClose):]
	}
	return strings.TrimSpace(s)
}

// ErrNoJSONObject is returned when a response has no {...} section.
var ErrNoJSONObject = errors.New("no JSON object found in model response")

// ExtractJSONObject returns the outermost {...} section of a model response.
func ExtractJSONObject(s string) (string, error) {
	s = StripThinking(s)
	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start == -1 || end == -1 || end < start {
		return "", ErrNoJSONObject
	}
	return s[start : end+1], nil
}
