// Package datefmt translates SimpleDateFormat-style date patterns, as used
// by the analytics tools this library interoperates with, into Go time layouts.
package datefmt

import (
	"fmt"
	"strings"
)

// ToGoLayout translates a SimpleDateFormat-style pattern into a Go time
// layout suitable for time.Parse and time.Format. Pattern letters outside
// the supported subset produce an error, as do unterminated quotes.
func ToGoLayout(pattern string) (string, error) {
	var res strings.Builder
	for i := 0; i < len(pattern); {
		c := pattern[i]
		switch {
		case c == '\'':
			quoted, next, err := unquote(pattern, i)
			if err != nil {
				return "", err
			}
			res.WriteString(quoted)
			i = next
		case isPatternLetter(c):
			j := i
			for j < len(pattern) && pattern[j] == c {
				j++
			}
			tok, err := translateToken(c, j-i)
			if err != nil {
				return "", err
			}
			res.WriteString(tok)
			i = j
		default:
			res.WriteByte(c)
			i++
		}
	}
	return res.String(), nil
}

func isPatternLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

// unquote consumes a 'quoted literal' starting at position i, returning the
// literal text and the position after the closing quote. '' is an escaped quote.
func unquote(pattern string, i int) (string, int, error) {
	var res strings.Builder
	i++
	if i < len(pattern) && pattern[i] == '\'' {
		// '' is a literal single quote
		return "'", i + 1, nil
	}
	for i < len(pattern) {
		if pattern[i] == '\'' {
			if i+1 < len(pattern) && pattern[i+1] == '\'' {
				res.WriteByte('\'')
				i += 2
				continue
			}
			return res.String(), i + 1, nil
		}
		res.WriteByte(pattern[i])
		i++
	}
	return "", i, fmt.Errorf("Unterminated quote in date format %q", pattern)
}

// translateToken maps a run of count identical pattern letters to the
// equivalent Go layout token
func translateToken(letter byte, count int) (string, error) {
	switch letter {
	case 'y', 'Y':
		if count == 2 {
			return "06", nil
		}
		return "2006", nil
	case 'M':
		switch {
		case count == 1:
			return "1", nil
		case count == 2:
			return "01", nil
		case count == 3:
			return "Jan", nil
		default:
			return "January", nil
		}
	case 'd':
		if count == 1 {
			return "2", nil
		}
		return "02", nil
	case 'E':
		if count >= 4 {
			return "Monday", nil
		}
		return "Mon", nil
	case 'H':
		return "15", nil
	case 'h':
		if count == 1 {
			return "3", nil
		}
		return "03", nil
	case 'm':
		if count == 1 {
			return "4", nil
		}
		return "04", nil
	case 's':
		if count == 1 {
			return "5", nil
		}
		return "05", nil
	case 'S':
		return strings.Repeat("0", count), nil
	case 'a':
		return "PM", nil
	case 'z':
		return "MST", nil
	case 'Z':
		return "-0700", nil
	case 'X':
		switch count {
		case 1:
			return "Z07", nil
		case 2:
			return "Z0700", nil
		default:
			return "Z07:00", nil
		}
	default:
		return "", fmt.Errorf("Unsupported date format token %q", strings.Repeat(string(letter), count))
	}
}
