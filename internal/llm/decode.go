package llm

import (
	"encoding/json"
	"fmt"
	"strings"

	jsonrepair "github.com/RealAlexandreAI/json-repair"
	hjson "github.com/hjson/hjson-go/v4"
)

// normalizeJSON turns model output into strict JSON text.
// Order of attempts:
// 1. Standard JSON (after trimming markdown fences)
// 2. JSON repair
// 3. Hjson (most lenient)
func normalizeJSON(output string) (string, error) {
	trimmed := stripFences(output)
	if trimmed == "" {
		return "", errEmptyOutput
	}

	if json.Valid([]byte(trimmed)) {
		return trimmed, nil
	}

	if repaired, err := jsonrepair.RepairJSON(trimmed); err == nil && json.Valid([]byte(repaired)) {
		return repaired, nil
	}

	var loose interface{}
	if err := hjson.Unmarshal([]byte(trimmed), &loose); err == nil {
		if data, err := json.Marshal(loose); err == nil {
			return string(data), nil
		}
	}

	return "", fmt.Errorf("provider output is not valid JSON: %q", truncate(trimmed, 120))
}

func stripFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	// drop an optional language tag such as ```json
	if nl := strings.IndexByte(s, '\n'); nl >= 0 {
		s = s[nl+1:]
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
