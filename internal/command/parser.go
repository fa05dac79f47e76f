package command

import "strings"

// SplitName splits an input line into the command name and the raw argument
// remainder. A leading slash is stripped and the name is lower-cased, so
// "/Tag-New  Sci Fi " yields ("tag-new", "Sci Fi").
func SplitName(line string) (name, rest string) {
	line = strings.TrimSpace(line)
	line = strings.TrimPrefix(line, "/")

	if i := strings.IndexAny(line, " \t"); i >= 0 {
		return strings.ToLower(line[:i]), strings.TrimSpace(line[i+1:])
	}
	return strings.ToLower(line), ""
}

// Tokenize splits an argument remainder into tokens. Double-quoted tokens
// keep their spaces; quotes themselves are removed. An unterminated quote
// runs to the end of the line.
func Tokenize(rest string) []string {
	tokens, _ := TokenizeN(rest, -1)
	return tokens
}

// TokenizeN produces at most max tokens and returns the untouched remainder
// of the line after them. A negative max tokenizes the whole line. The
// remainder keeps its internal spacing and quoting, so a trailing rest
// argument receives the input verbatim.
func TokenizeN(rest string, max int) (tokens []string, remainder string) {
	var (
		current  strings.Builder
		inQuotes bool
		started  bool
	)

	runes := []rune(rest)
	for i := 0; i < len(runes); i++ {
		if max >= 0 && len(tokens) == max {
			return tokens, strings.TrimSpace(string(runes[i:]))
		}

		r := runes[i]
		switch {
		case r == '"':
			inQuotes = !inQuotes
			started = true
		case (r == ' ' || r == '\t') && !inQuotes:
			if started {
				tokens = append(tokens, current.String())
				current.Reset()
				started = false
			}
		default:
			current.WriteRune(r)
			started = true
		}
	}
	if started {
		tokens = append(tokens, current.String())
	}

	return tokens, ""
}
