package llm

import (
	"errors"
	"strings"
)

// ErrNoJSON indicates the model output carried no recognizable JSON payload.
var ErrNoJSON = errors.New("no JSON payload in model output")

// ExtractJSONObject returns the greedy first-'{' to last-'}' slice of raw.
// Models wrap JSON in prose and code fences; slicing beats trimming fence
// variants one by one.
func ExtractJSONObject(raw string) (string, error) {
	return extractDelimited(raw, '{', '}')
}

// ExtractJSONArray returns the greedy first-'[' to last-']' slice of raw.
func ExtractJSONArray(raw string) (string, error) {
	return extractDelimited(raw, '[', ']')
}

func extractDelimited(raw string, open, close byte) (string, error) {
	start := strings.IndexByte(raw, open)
	end := strings.LastIndexByte(raw, close)
	if start == -1 || end == -1 || end < start {
		return "", ErrNoJSON
	}
	return raw[start : end+1], nil
}
