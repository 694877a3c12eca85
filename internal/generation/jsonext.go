package generation

// Model responses wrap JSON in markdown fences or prose. These helpers
// locate the outermost JSON array or object by bracket matching, skipping
// brackets inside string literals.

// ExtractJSONArray returns the first balanced top-level JSON array in s,
// or "" when none is found.
func ExtractJSONArray(s string) string {
	return extractBalanced(s, '[', ']')
}

// ExtractJSONObject returns the first balanced top-level JSON object in s,
// or "" when none is found.
func ExtractJSONObject(s string) string {
	return extractBalanced(s, '{', '}')
}

func extractBalanced(s string, open, close byte) string {
	start := -1
	depth := 0
	inString := false
	escaped := false
	for i := 0; i < len(s); i++ {
		c := s[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			if start >= 0 {
				inString = true
			}
		case open:
			if start < 0 {
				start = i
			}
			depth++
		case close:
			if start < 0 {
				continue
			}
			depth--
			if depth == 0 {
				return s[start : i+1]
			}
		}
	}
	return ""
}
