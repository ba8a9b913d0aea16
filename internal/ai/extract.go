package ai

import (
	"encoding/json"
	"strings"
)

// ExtractJSON pulls a JSON object out of free-form model text. Models wrap
// payloads in markdown fences more often than not, so fenced blocks are
// tried first, then the outermost brace pair.
func ExtractJSON(text string) (json.RawMessage, error) {
	for _, fence := range []string{"```json", "```"} {
		if candidate, ok := fencedBlock(text, fence); ok {
			if json.Valid([]byte(candidate)) {
				return json.RawMessage(candidate), nil
			}
		}
	}

	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")

	if start >= 0 && end > start {
		candidate := text[start : end+1]
		if json.Valid([]byte(candidate)) {
			return json.RawMessage(candidate), nil
		}

		return nil, &ParseError{Raw: text, Err: ErrNoJSON}
	}

	return nil, &ParseError{Raw: text, Err: ErrNoJSON}
}

func fencedBlock(text, fence string) (string, bool) {
	start := strings.Index(text, fence)

	if start == -1 {
		return "", false
	}

	rest := text[start+len(fence):]
	end := strings.Index(rest, "```")

	if end == -1 {
		return "", false
	}

	return strings.TrimSpace(rest[:end]), true
}

// decodeInto extracts the JSON payload and unmarshals it into out.
func decodeInto(text string, out any) error {
	raw, err := ExtractJSON(text)

	if err != nil {
		return err
	}

	if err := json.Unmarshal(raw, out); err != nil {
		return &ParseError{Raw: text, Err: err}
	}

	return nil
}
