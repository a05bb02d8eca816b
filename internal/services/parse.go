package services

import (
	"encoding/json"
	"errors"
	"strings"
)

// cleanJSONContent strips the markdown fences models like to wrap JSON in.
func cleanJSONContent(content string) string {
	content = strings.TrimSpace(content)
	if strings.HasPrefix(content, "```json") {
		content = strings.TrimPrefix(content, "```json")
	}
	if strings.HasPrefix(content, "```") {
		content = strings.TrimPrefix(content, "```")
	}
	if strings.HasSuffix(content, "```") {
		content = strings.TrimSuffix(content, "```")
	}
	return strings.TrimSpace(content)
}

// decodeModelJSON interprets generative output as JSON using two strategies
// in order: a strict parse of the cleaned content, then a best-effort parse
// of the first JSON-object-shaped substring. Anything recovered by the
// second strategy is untrusted and must be re-validated by the caller.
func decodeModelJSON(content string, v any) error {
	cleaned := cleanJSONContent(content)
	if cleaned == "" {
		return errors.New("empty response")
	}

	if err := json.Unmarshal([]byte(cleaned), v); err == nil {
		return nil
	}

	start := strings.Index(cleaned, "{")
	end := strings.LastIndex(cleaned, "}")
	if start < 0 || end <= start {
		return errors.New("no JSON object in response")
	}
	if err := json.Unmarshal([]byte(cleaned[start:end+1]), v); err != nil {
		return errors.New("response is not valid JSON")
	}
	return nil
}
