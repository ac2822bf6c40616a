package catalog

import (
	"fmt"
	"strings"
	"unicode"
)

// ParseError means the provider's catalog payload did not match the
// declared brace-delimited key:value format.
type ParseError struct {
	Pos    int
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("malformed catalog payload at offset %d: %s", e.Pos, e.Reason)
}

// ParseMapping parses the provider's catalog payload into a code→name map.
// The payload is a brace-delimited sequence of key:value pairs where keys
// and values are single-quoted, double-quoted, or bare tokens, e.g.
//
//	{'wa': 'WhatsApp', 'go': 'Google'}
//
// The payload originates from a semi-trusted remote source, so it is
// tokenized strictly and never evaluated.
func ParseMapping(payload string) (map[string]string, error) {
	p := &parser{input: payload}

	p.skipSpace()
	if !p.consume('{') {
		return nil, p.errorf("expected '{'")
	}

	result := make(map[string]string)

	p.skipSpace()
	if p.consume('}') {
		if err := p.expectEnd(); err != nil {
			return nil, err
		}
		return result, nil
	}

	for {
		key, err := p.token()
		if err != nil {
			return nil, err
		}

		p.skipSpace()
		if !p.consume(':') {
			return nil, p.errorf("expected ':' after key %q", key)
		}

		value, err := p.token()
		if err != nil {
			return nil, err
		}
		result[key] = value

		p.skipSpace()
		if p.consume(',') {
			continue
		}
		if p.consume('}') {
			if err := p.expectEnd(); err != nil {
				return nil, err
			}
			return result, nil
		}
		return nil, p.errorf("expected ',' or '}'")
	}
}

type parser struct {
	input string
	pos   int
}

func (p *parser) errorf(format string, args ...any) error {
	return &ParseError{Pos: p.pos, Reason: fmt.Sprintf(format, args...)}
}

func (p *parser) skipSpace() {
	for p.pos < len(p.input) && unicode.IsSpace(rune(p.input[p.pos])) {
		p.pos++
	}
}

func (p *parser) consume(c byte) bool {
	if p.pos < len(p.input) && p.input[p.pos] == c {
		p.pos++
		return true
	}
	return false
}

// token reads a quoted string or a bare token. Bare tokens end at the next
// structural character and must not be empty.
func (p *parser) token() (string, error) {
	p.skipSpace()
	if p.pos >= len(p.input) {
		return "", p.errorf("unexpected end of payload")
	}

	if q := p.input[p.pos]; q == '\'' || q == '"' {
		p.pos++
		start := p.pos
		for p.pos < len(p.input) && p.input[p.pos] != q {
			p.pos++
		}
		if p.pos >= len(p.input) {
			return "", p.errorf("unterminated quoted token")
		}
		tok := p.input[start:p.pos]
		p.pos++
		return tok, nil
	}

	start := p.pos
	for p.pos < len(p.input) && !strings.ContainsRune(":,}{'\"", rune(p.input[p.pos])) {
		p.pos++
	}
	tok := strings.TrimSpace(p.input[start:p.pos])
	if tok == "" {
		return "", p.errorf("empty token")
	}
	return tok, nil
}

// expectEnd rejects trailing garbage after the closing brace.
func (p *parser) expectEnd() error {
	p.skipSpace()
	if p.pos != len(p.input) {
		return p.errorf("trailing data after '}'")
	}
	return nil
}
