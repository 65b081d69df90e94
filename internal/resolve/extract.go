package resolve

import (
	"encoding/json"
	"regexp"
	"strings"
)

// Models wrap answers in prose or code fences despite being told not to. The
// greedy brace match recovers the outermost {...} block from such output.
var braceRe = regexp.MustCompile(`(?s)\{.*\}`)

// ExtractJSON pulls one JSON object out of free-form model output. It strips
// code-fence markers, tries a direct parse, then falls back to the first
// greedy brace-delimited substring. The second return value is false when no
// object could be recovered.
func ExtractJSON(text string) (map[string]interface{}, bool) {
	if text == "" {
		return nil, false
	}

	cleaned := strings.ReplaceAll(text, "```json", "")
	cleaned = strings.ReplaceAll(cleaned, "```", "")
	cleaned = strings.TrimSpace(cleaned)

	var out map[string]interface{}
	if err := json.Unmarshal([]byte(cleaned), &out); err == nil {
		return out, true
	}

	match := braceRe.FindString(cleaned)
	if match == "" {
		return nil, false
	}
	out = nil
	if err := json.Unmarshal([]byte(match), &out); err != nil {
		return nil, false
	}
	return out, true
}
