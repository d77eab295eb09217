package sync

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"
)

// parseLiteral parses a textual data-structure literal into Go values.
// It accepts the Python-style literal form produced by upstream extracts
// (single-quoted strings, True/False/None) as well as the JSON form, and
// supports mappings, sequences, strings, numbers, booleans and null only.
// It never evaluates anything.
func parseLiteral(text string) (interface{}, error) {
	p := &literalParser{input: text}
	p.skipSpace()
	value, err := p.parseValue()
	if err != nil {
		return nil, err
	}
	p.skipSpace()
	if p.pos != len(p.input) {
		return nil, fmt.Errorf("unexpected trailing input at offset %d", p.pos)
	}
	return value, nil
}

type literalParser struct {
	input string
	pos   int
}

func (p *literalParser) parseValue() (interface{}, error) {
	if p.pos >= len(p.input) {
		return nil, fmt.Errorf("unexpected end of input")
	}
	switch c := p.input[p.pos]; {
	case c == '{':
		return p.parseMapping()
	case c == '[':
		return p.parseSequence()
	case c == '\'' || c == '"':
		return p.parseString()
	case c == '-' || c == '+' || (c >= '0' && c <= '9'):
		return p.parseNumber()
	default:
		return p.parseKeyword()
	}
}

func (p *literalParser) parseMapping() (interface{}, error) {
	p.pos++ // consume '{'
	result := make(map[string]interface{})
	p.skipSpace()
	if p.consume('}') {
		return result, nil
	}
	for {
		p.skipSpace()
		if p.pos >= len(p.input) || (p.input[p.pos] != '\'' && p.input[p.pos] != '"') {
			return nil, fmt.Errorf("expected string key at offset %d", p.pos)
		}
		key, err := p.parseString()
		if err != nil {
			return nil, err
		}
		p.skipSpace()
		if !p.consume(':') {
			return nil, fmt.Errorf("expected ':' at offset %d", p.pos)
		}
		p.skipSpace()
		value, err := p.parseValue()
		if err != nil {
			return nil, err
		}
		result[key.(string)] = value
		p.skipSpace()
		if p.consume(',') {
			p.skipSpace()
			// trailing comma
			if p.consume('}') {
				return result, nil
			}
			continue
		}
		if p.consume('}') {
			return result, nil
		}
		return nil, fmt.Errorf("expected ',' or '}' at offset %d", p.pos)
	}
}

func (p *literalParser) parseSequence() (interface{}, error) {
	p.pos++ // consume '['
	result := []interface{}{}
	p.skipSpace()
	if p.consume(']') {
		return result, nil
	}
	for {
		p.skipSpace()
		value, err := p.parseValue()
		if err != nil {
			return nil, err
		}
		result = append(result, value)
		p.skipSpace()
		if p.consume(',') {
			p.skipSpace()
			if p.consume(']') {
				return result, nil
			}
			continue
		}
		if p.consume(']') {
			return result, nil
		}
		return nil, fmt.Errorf("expected ',' or ']' at offset %d", p.pos)
	}
}

func (p *literalParser) parseString() (interface{}, error) {
	quote := p.input[p.pos]
	p.pos++
	var sb strings.Builder
	for p.pos < len(p.input) {
		c := p.input[p.pos]
		switch c {
		case quote:
			p.pos++
			return sb.String(), nil
		case '\\':
			p.pos++
			if p.pos >= len(p.input) {
				return nil, fmt.Errorf("unterminated escape at offset %d", p.pos)
			}
			switch e := p.input[p.pos]; e {
			case 'n':
				sb.WriteByte('\n')
			case 't':
				sb.WriteByte('\t')
			case 'r':
				sb.WriteByte('\r')
			case 'u':
				if p.pos+4 >= len(p.input) {
					return nil, fmt.Errorf("truncated unicode escape at offset %d", p.pos)
				}
				code, err := strconv.ParseUint(p.input[p.pos+1:p.pos+5], 16, 32)
				if err != nil {
					return nil, fmt.Errorf("invalid unicode escape at offset %d", p.pos)
				}
				var buf [utf8.UTFMax]byte
				sb.Write(buf[:utf8.EncodeRune(buf[:], rune(code))])
				p.pos += 4
			default:
				sb.WriteByte(e)
			}
			p.pos++
		default:
			sb.WriteByte(c)
			p.pos++
		}
	}
	return nil, fmt.Errorf("unterminated string at offset %d", p.pos)
}

func (p *literalParser) parseNumber() (interface{}, error) {
	start := p.pos
	if p.input[p.pos] == '-' || p.input[p.pos] == '+' {
		p.pos++
	}
	isFloat := false
	for p.pos < len(p.input) {
		c := p.input[p.pos]
		if c >= '0' && c <= '9' {
			p.pos++
			continue
		}
		if c == '.' || c == 'e' || c == 'E' || ((c == '-' || c == '+') && (p.input[p.pos-1] == 'e' || p.input[p.pos-1] == 'E')) {
			isFloat = true
			p.pos++
			continue
		}
		break
	}
	token := p.input[start:p.pos]
	if isFloat {
		f, err := strconv.ParseFloat(token, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid number %q at offset %d", token, start)
		}
		return f, nil
	}
	i, err := strconv.ParseInt(token, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid number %q at offset %d", token, start)
	}
	return i, nil
}

func (p *literalParser) parseKeyword() (interface{}, error) {
	for _, kw := range []struct {
		token string
		value interface{}
	}{
		{"True", true},
		{"true", true},
		{"False", false},
		{"false", false},
		{"None", nil},
		{"null", nil},
	} {
		if strings.HasPrefix(p.input[p.pos:], kw.token) {
			p.pos += len(kw.token)
			return kw.value, nil
		}
	}
	return nil, fmt.Errorf("unexpected character %q at offset %d", p.input[p.pos], p.pos)
}

func (p *literalParser) consume(c byte) bool {
	if p.pos < len(p.input) && p.input[p.pos] == c {
		p.pos++
		return true
	}
	return false
}

func (p *literalParser) skipSpace() {
	for p.pos < len(p.input) {
		switch p.input[p.pos] {
		case ' ', '\t', '\n', '\r':
			p.pos++
		default:
			return
		}
	}
}
