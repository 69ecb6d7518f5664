package parser

import (
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"golang.org/x/net/html"
)

// charRef matches a complete character reference. References without the
// closing ';' are left alone, unlike html.UnescapeString on whole strings.
var charRef = regexp.MustCompile(`&(?:#[0-9]+|#[xX][0-9a-fA-F]+|[A-Za-z][A-Za-z0-9]*);`)

// decodeEntities decodes character references in markup text and attribute
// strings. Unknown names stay verbatim.
func decodeEntities(s string) string {
	if !strings.Contains(s, "&") {
		return s
	}
	return charRef.ReplaceAllStringFunc(s, html.UnescapeString)
}

// cookString returns the value of a quoted string literal.
func cookString(raw string) string {
	if len(raw) < 2 {
		return ""
	}
	body := raw[1 : len(raw)-1]
	if !strings.Contains(body, `\`) {
		return body
	}
	return cookEscapes(body)
}

func cookEscapes(s string) string {
	var sb strings.Builder
	sb.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c != '\\' || i+1 >= len(s) {
			sb.WriteByte(c)
			continue
		}
		i++
		switch e := s[i]; e {
		case 'n':
			sb.WriteByte('\n')
		case 't':
			sb.WriteByte('\t')
		case 'r':
			sb.WriteByte('\r')
		case 'b':
			sb.WriteByte('\b')
		case 'f':
			sb.WriteByte('\f')
		case 'v':
			sb.WriteByte('\v')
		case '0':
			if i+1 < len(s) && s[i+1] >= '0' && s[i+1] <= '9' {
				sb.WriteByte(e)
			} else {
				sb.WriteByte(0)
			}
		case '\r':
			if i+1 < len(s) && s[i+1] == '\n' {
				i++
			}
		case '\n':
		case 'x':
			if r, n, ok := hexRune(s[i+1:], 2); ok {
				sb.WriteRune(r)
				i += n
			} else {
				sb.WriteByte(e)
			}
		case 'u':
			rest := s[i+1:]
			if strings.HasPrefix(rest, "{") {
				end := strings.IndexByte(rest, '}')
				if end > 1 {
					if v, err := strconv.ParseUint(rest[1:end], 16, 32); err == nil && v <= utf8.MaxRune {
						sb.WriteRune(rune(v))
						i += end + 1
						continue
					}
				}
				sb.WriteByte(e)
				continue
			}
			if r, n, ok := hexRune(rest, 4); ok {
				sb.WriteRune(r)
				i += n
			} else {
				sb.WriteByte(e)
			}
		default:
			if e >= utf8.RuneSelf {
				r, size := utf8.DecodeRuneInString(s[i:])
				// LS and PS are line continuations like \n.
				if r != '\u2028' && r != '\u2029' {
					sb.WriteRune(r)
				}
				i += size - 1
				continue
			}
			sb.WriteByte(e)
		}
	}
	return sb.String()
}

func hexRune(s string, n int) (rune, int, bool) {
	if len(s) < n {
		return 0, 0, false
	}
	v, err := strconv.ParseUint(s[:n], 16, 32)
	if err != nil {
		return 0, 0, false
	}
	return rune(v), n, true
}

// templateRaw strips the delimiters from a template token: a leading '`' or
// '}', and a trailing '`' or '${'.
func templateRaw(text string) string {
	if text != "" && (text[0] == '`' || text[0] == '}') {
		text = text[1:]
	}
	switch {
	case strings.HasSuffix(text, "${"):
		text = text[:len(text)-2]
	case strings.HasSuffix(text, "`"):
		text = text[:len(text)-1]
	}
	return text
}
