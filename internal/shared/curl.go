// Utilities for reading the Deezer session cookie out of a "Copy as cURL" capture from browser DevTools.
package shared

import (
	"fmt"
	"os"
	"strings"
)

// CurlHeaders holds the request headers and cookie string of a captured cURL command.
//
// The Cookie header is kept in Cookie rather than Headers.
type CurlHeaders struct {
	Headers map[string]string
	Cookie  string
}

// ParseCurlFile reads a .sh file containing a cURL command and parses it with [ParseCurlCommand].
func ParseCurlFile(filepath string) (*CurlHeaders, error) {
	content, err := os.ReadFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("failed to read curl file: %w", err)
	}

	return ParseCurlCommand(string(content))
}

// ParseCurlCommand extracts -H/--header and -b/--cookie arguments from a POSIX shell cURL command.
//
// A -b cookie wins over a Cookie header.
func ParseCurlCommand(curlCmd string) (*CurlHeaders, error) {
	args, err := splitShellWords(curlCmd)
	if err != nil {
		return nil, err
	}

	result := &CurlHeaders{Headers: make(map[string]string)}
	var headerCookie, flagCookie string

	for i := 0; i < len(args)-1; i++ {
		switch args[i] {
		case "-H", "--header":
			i++
			key, value, ok := strings.Cut(args[i], ":")
			if !ok {
				continue
			}
			key, value = strings.TrimSpace(key), strings.TrimSpace(value)
			if strings.EqualFold(key, "cookie") {
				headerCookie = value
			} else {
				result.Headers[key] = value
			}
		case "-b", "--cookie":
			i++
			flagCookie = strings.TrimSpace(args[i])
		}
	}

	result.Cookie = headerCookie
	if flagCookie != "" {
		result.Cookie = flagCookie
	}

	if len(result.Headers) == 0 && result.Cookie == "" {
		return nil, fmt.Errorf("%w: no headers found in curl command", ErrInvalidInput)
	}
	return result, nil
}

// splitShellWords tokenizes s the way a POSIX shell would for single, double and $'' quoting
// and backslash line continuations.
func splitShellWords(s string) ([]string, error) {
	const (
		bare = iota
		single
		double
		ansi
	)

	var (
		words   []string
		current strings.Builder
		inWord  bool
		state   = bare
		runes   = []rune(s)
	)

	for i := 0; i < len(runes); i++ {
		r := runes[i]
		switch state {
		case single:
			if r == '\'' {
				state = bare
			} else {
				current.WriteRune(r)
			}
		case ansi:
			switch {
			case r == '\'':
				state = bare
			case r == '\\' && i+1 < len(runes):
				i++
				switch runes[i] {
				case 'n':
					current.WriteRune('\n')
				case 't':
					current.WriteRune('\t')
				default:
					current.WriteRune(runes[i])
				}
			default:
				current.WriteRune(r)
			}
		case double:
			switch {
			case r == '"':
				state = bare
			case r == '\\' && i+1 < len(runes) && strings.ContainsRune("\"\\$`\n", runes[i+1]):
				i++
				if runes[i] != '\n' {
					current.WriteRune(runes[i])
				}
			default:
				current.WriteRune(r)
			}
		default:
			switch {
			case r == '\\' && i+1 < len(runes):
				i++
				if runes[i] == '\n' || runes[i] == '\r' {
					if runes[i] == '\r' && i+1 < len(runes) && runes[i+1] == '\n' {
						i++
					}
					continue
				}
				current.WriteRune(runes[i])
				inWord = true
			case r == '\'':
				state, inWord = single, true
			case r == '"':
				state, inWord = double, true
			case r == '$' && i+1 < len(runes) && runes[i+1] == '\'':
				i++
				state, inWord = ansi, true
			case r == ' ' || r == '\t' || r == '\n' || r == '\r':
				if inWord {
					words = append(words, current.String())
					current.Reset()
					inWord = false
				}
			default:
				current.WriteRune(r)
				inWord = true
			}
		}
	}

	if state != bare {
		return nil, fmt.Errorf("%w: unterminated quote in curl command", ErrInvalidInput)
	}
	if inWord {
		words = append(words, current.String())
	}
	return words, nil
}

// SID returns the value of the Deezer "sid" cookie, or an empty string when the capture has none.
func (c *CurlHeaders) SID() string {
	return CookieValue(c.Cookie, "sid")
}

// CookieValue extracts a single cookie from a "k=v; k2=v2" cookie header.
func CookieValue(header, name string) string {
	for part := range strings.SplitSeq(header, ";") {
		k, v, ok := strings.Cut(strings.TrimSpace(part), "=")
		if ok && strings.TrimSpace(k) == name {
			return strings.TrimSpace(v)
		}
	}
	return ""
}
