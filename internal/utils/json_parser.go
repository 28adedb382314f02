package utils

import (
	"encoding/json"
	"errors"
	"strings"

	"roarrealty/internal/apperrors"
)

// ErrNoJSONObject is returned when the input contains no balanced JSON object
var ErrNoJSONObject = errors.New("no JSON object found")

// ExtractJSON finds the first balanced {...} span in model output and
// strictly decodes it into target. Output may wrap the object in prose or
// markdown fences; nothing is repaired, so malformed objects fail.
func ExtractJSON(input string, target any) error {
	if strings.TrimSpace(input) == "" {
		return apperrors.NewParseError("empty model output", ErrNoJSONObject)
	}

	start := strings.IndexByte(input, '{')
	if start < 0 {
		return apperrors.NewParseError("no object in: "+truncateString(input, 100), ErrNoJSONObject)
	}

	snippet := extractBalancedBraces(input[start:], '{', '}')
	if snippet == "" {
		return apperrors.NewParseError("unbalanced object in: "+truncateString(input, 100), ErrNoJSONObject)
	}

	if err := json.Unmarshal([]byte(snippet), target); err != nil {
		return apperrors.NewParseError("invalid object: "+truncateString(snippet, 100), err)
	}
	return nil
}

// extractBalancedBraces returns the prefix of input that closes the first
// open brace, ignoring braces inside JSON strings
func extractBalancedBraces(input string, open, close rune) string {
	if len(input) == 0 {
		return ""
	}

	depth := 0
	inString := false
	escape := false
	start := 0

	for i, ch := range input {
		if inString {
			switch {
			case escape:
				escape = false
			case ch == '\\':
				escape = true
			case ch == '"':
				inString = false
			}
			continue
		}

		switch ch {
		case '"':
			inString = true
		case open:
			if depth == 0 {
				start = i
			}
			depth++
		case close:
			if depth == 0 {
				continue
			}
			depth--
			if depth == 0 {
				return input[start : i+1]
			}
		}
	}

	return ""
}

// truncateString truncates a string to maxLen bytes
func truncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
