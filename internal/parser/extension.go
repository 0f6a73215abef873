package parser

import (
	"fmt"
	"strings"

	"xamlport/dom"
)

// IsExpression reports whether an attribute value is a curly-brace
// expression rather than plain text.
func IsExpression(s string) bool {
	return strings.HasPrefix(s, "{") && !IsEscaped(s)
}

// IsEscaped reports whether the value uses the {} escape that forces
// the rest of the text to be taken literally.
func IsEscaped(s string) bool {
	return strings.HasPrefix(s, "{}")
}

// Unescape strips the {} escape prefix.
func Unescape(s string) string {
	return strings.TrimPrefix(s, "{}")
}

// ParseExtension parses a complete curly-brace expression such as
//
//	{Binding Path, Mode=TwoWay, Converter={StaticResource conv}}
//
// into its extension tree. Nested expressions, single-quoted values,
// and backslash escapes inside quotes are supported. Trailing text
// after the closing brace is an error.
func ParseExtension(s string) (*dom.MarkupExtension, error) {
	sc := &extScanner{s: s}

	ext, err := sc.parseExt()
	if err != nil {
		return nil, err
	}

	sc.skipSpace()

	if !sc.done() {
		return nil, fmt.Errorf("unexpected text %q after expression", sc.rest())
	}

	return ext, nil
}

type extScanner struct {
	s   string
	pos int
}

func (sc *extScanner) done() bool {
	return sc.pos >= len(sc.s)
}

func (sc *extScanner) rest() string {
	return sc.s[sc.pos:]
}

func (sc *extScanner) peek() byte {
	return sc.s[sc.pos]
}

func (sc *extScanner) skipSpace() {
	for !sc.done() && (sc.peek() == ' ' || sc.peek() == '\t' || sc.peek() == '\n' || sc.peek() == '\r') {
		sc.pos++
	}
}

func (sc *extScanner) expect(c byte) error {
	if sc.done() || sc.peek() != c {
		return fmt.Errorf("expected %q at offset %d", string(c), sc.pos)
	}

	sc.pos++

	return nil
}

func (sc *extScanner) parseExt() (*dom.MarkupExtension, error) {
	if err := sc.expect('{'); err != nil {
		return nil, err
	}

	sc.skipSpace()

	name := sc.readName()
	if name == "" {
		return nil, fmt.Errorf("missing extension name at offset %d", sc.pos)
	}

	ext := &dom.MarkupExtension{Name: name}

	sc.skipSpace()

	for {
		if sc.done() {
			return nil, fmt.Errorf("unterminated expression %q", sc.s)
		}

		if sc.peek() == '}' {
			sc.pos++
			return ext, nil
		}

		arg, err := sc.parseArg()
		if err != nil {
			return nil, err
		}

		ext.Args = append(ext.Args, arg)

		sc.skipSpace()

		if !sc.done() && sc.peek() == ',' {
			sc.pos++
			sc.skipSpace()
		}
	}
}

// readName consumes the extension name, everything up to whitespace,
// an argument separator, or the closing brace.
func (sc *extScanner) readName() string {
	start := sc.pos
	for !sc.done() {
		switch sc.peek() {
		case ' ', '\t', '\n', '\r', ',', '}', '=':
			return sc.s[start:sc.pos]
		}

		sc.pos++
	}

	return sc.s[start:]
}

func (sc *extScanner) parseArg() (dom.ExtArg, error) {
	sc.skipSpace()

	// A nested expression in argument position is positional.
	if !sc.done() && sc.peek() == '{' {
		nested, err := sc.parseExt()
		if err != nil {
			return dom.ExtArg{}, err
		}

		return dom.ExtArg{Ext: nested}, nil
	}

	token, quoted, err := sc.readValue()
	if err != nil {
		return dom.ExtArg{}, err
	}

	sc.skipSpace()

	// Name=Value form. A quoted token is always a value.
	if !quoted && !sc.done() && sc.peek() == '=' {
		sc.pos++
		sc.skipSpace()

		if !sc.done() && sc.peek() == '{' {
			nested, err := sc.parseExt()
			if err != nil {
				return dom.ExtArg{}, err
			}

			return dom.ExtArg{Name: token, Ext: nested}, nil
		}

		value, _, err := sc.readValue()
		if err != nil {
			return dom.ExtArg{}, err
		}

		return dom.ExtArg{Name: token, Text: value}, nil
	}

	return dom.ExtArg{Text: token}, nil
}

// readValue consumes one argument token: single-quoted with backslash
// escapes, or bare text up to the next separator with surrounding
// whitespace trimmed.
func (sc *extScanner) readValue() (value string, quoted bool, err error) {
	if !sc.done() && sc.peek() == '\'' {
		sc.pos++

		var b strings.Builder

		for {
			if sc.done() {
				return "", true, fmt.Errorf("unterminated quoted value in %q", sc.s)
			}

			c := sc.peek()
			sc.pos++

			switch c {
			case '\'':
				return b.String(), true, nil
			case '\\':
				if sc.done() {
					return "", true, fmt.Errorf("dangling escape in %q", sc.s)
				}

				b.WriteByte(sc.peek())
				sc.pos++
			default:
				b.WriteByte(c)
			}
		}
	}

	start := sc.pos
	for !sc.done() {
		switch sc.peek() {
		case ',', '}', '=':
			return strings.TrimSpace(sc.s[start:sc.pos]), false, nil
		case '{':
			return "", false, fmt.Errorf("unexpected %q at offset %d", "{", sc.pos)
		}

		sc.pos++
	}

	return "", false, fmt.Errorf("unterminated expression %q", sc.s)
}
