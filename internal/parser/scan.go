package parser

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

var (
	errUnterminated = errors.New("unterminated literal")
	errMismatched   = errors.New("mismatched bracket")
)

// declarationHead matches `const <name> =` up to and including the opening bracket.
func declarationHead(name string, open byte) *regexp.Regexp {
	return regexp.MustCompile(`const\s+` + regexp.QuoteMeta(name) + `\s*=\s*` + regexp.QuoteMeta(string(open)))
}

// extractLiteral returns the complete bracketed literal of the first declaration
// matched by head that is not inside a string or comment. Brackets inside strings
// and comments do not count towards the nesting.
func extractLiteral(content string, head *regexp.Regexp) (string, error) {
	starts := head.FindAllStringIndex(content, -1)
	next := 0
	for i := 0; i < len(content) && next < len(starts); {
		switch {
		case i > starts[next][0]:
			next++
			continue
		case i == starts[next][0]:
			open := starts[next][1] - 1
			end, err := matchBracket(content, open)
			if err != nil {
				return "", err
			}
			return content[open:end], nil
		}
		j, err := skipNonCode(content, i)
		if err != nil {
			return "", err
		}
		if j > i {
			i = j
		} else {
			i++
		}
	}
	return "", ErrNotFound
}

// matchBracket returns the index just past the bracket closing the one at s[open].
func matchBracket(s string, open int) (int, error) {
	var stack []byte
	for i := open; i < len(s); {
		j, err := skipNonCode(s, i)
		if err != nil {
			return 0, err
		}
		if j > i {
			i = j
			continue
		}
		switch c := s[i]; c {
		case '[':
			stack = append(stack, ']')
		case '{':
			stack = append(stack, '}')
		case ']', '}':
			if len(stack) == 0 || stack[len(stack)-1] != c {
				return 0, fmt.Errorf("%w %q at offset %d", errMismatched, c, i)
			}
			stack = stack[:len(stack)-1]
			if len(stack) == 0 {
				return i + 1, nil
			}
		}
		i++
	}
	return 0, fmt.Errorf("%w starting at offset %d", errUnterminated, open)
}

// skipNonCode returns the index just past the string or comment starting at s[i],
// or i itself when s[i] starts neither. Strings may use any of the three JavaScript
// quote characters; a backslash escapes the next byte.
func skipNonCode(s string, i int) (int, error) {
	switch c := s[i]; {
	case c == '"' || c == '\'' || c == '`':
		return skipString(s, i)
	case c == '/' && i+1 < len(s) && s[i+1] == '/':
		if end := strings.IndexByte(s[i:], '\n'); end >= 0 {
			return i + end + 1, nil
		}
		return len(s), nil
	case c == '/' && i+1 < len(s) && s[i+1] == '*':
		end := strings.Index(s[i+2:], "*/")
		if end < 0 {
			return 0, fmt.Errorf("%w comment at offset %d", errUnterminated, i)
		}
		return i + 2 + end + 2, nil
	}
	return i, nil
}

func skipString(s string, i int) (int, error) {
	quote := s[i]
	for j := i + 1; j < len(s); j++ {
		switch s[j] {
		case '\\':
			j++
		case quote:
			return j + 1, nil
		}
	}
	return 0, fmt.Errorf("%w string at offset %d", errUnterminated, i)
}

// repairJSON drops trailing commas before `]` and `}` and quotes bare property
// names, leaving the content of double-quoted strings untouched. Anything else that
// is not JSON, such as single quotes or comments, is left for the caller to reject.
func repairJSON(literal string) string {
	var b strings.Builder
	b.Grow(len(literal) + len(literal)/8)

	for i := 0; i < len(literal); {
		c := literal[i]
		switch {
		case c == '"':
			j, err := skipString(literal, i)
			if err != nil {
				b.WriteString(literal[i:])
				return b.String()
			}
			b.WriteString(literal[i:j])
			i = j
		case c == ',':
			if k := skipSpace(literal, i+1); k < len(literal) && (literal[k] == ']' || literal[k] == '}') {
				i++
				continue
			}
			b.WriteByte(c)
			i++
		default:
			j := identEnd(literal, i)
			if j == i {
				b.WriteByte(c)
				i++
				continue
			}
			if k := skipSpace(literal, j); k < len(literal) && literal[k] == ':' {
				b.WriteString(`"` + literal[i:j] + `"`)
			} else {
				b.WriteString(literal[i:j])
			}
			i = j
		}
	}
	return b.String()
}

func skipSpace(s string, i int) int {
	for i < len(s) && (s[i] == ' ' || s[i] == '\t' || s[i] == '\n' || s[i] == '\r') {
		i++
	}
	return i
}

// identEnd returns the end of the run of identifier characters starting at s[i].
func identEnd(s string, i int) int {
	for i < len(s) {
		r, size := utf8.DecodeRuneInString(s[i:])
		if !(unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' || r == '$') {
			break
		}
		i += size
	}
	return i
}
