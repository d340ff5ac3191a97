// Package scheme parses the semicolon-terminated color-scheme text format
// used by theme packages:
//
//	name: #rrggbb;        // explicit color, alpha optional (#rrggbbaa)
//	other-name: name;     // copies a previously known color
//
// Whitespace is free, `//` and `/* */` comments are stripped before parsing.
// Assignments are applied to a palette.Sink as they are read; a structural
// error aborts the scheme but values already applied stay applied.
package scheme

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/log"

	"gitlab.com/tinyland/lab/chat-theme/pkg/palette"
)

// MaxSchemeSize caps color-scheme content at 1 MiB. Larger content is
// rejected without parsing.
const MaxSchemeSize = 1024 * 1024

var (
	// ErrTooLarge reports scheme content over MaxSchemeSize.
	ErrTooLarge = errors.New("scheme: content too large")

	// ErrSyntax reports a structural grammar violation: a missing ':' or
	// ';', or input that ends in the middle of an assignment.
	ErrSyntax = errors.New("scheme: syntax error")

	// ErrBadColor reports a '#' value that is not a well-formed #rrggbb
	// or #rrggbbaa color.
	ErrBadColor = errors.New("scheme: bad color value")
)

// Parse reads every assignment in content and applies it to sink. An
// assignment whose name (or referenced value) is unknown to the sink is a
// warning, not an error: the pair is remembered so one later entry may
// reference it by name, and dropped otherwise.
func Parse(content []byte, sink palette.Sink) error {
	if len(content) > MaxSchemeSize {
		return fmt.Errorf("%w: %d bytes (limit %d)", ErrTooLarge, len(content), MaxSchemeSize)
	}

	// Names seen but not accepted by the sink, kept for one-hop
	// indirection: a later value naming one of these is substituted with
	// the remembered value before it is applied.
	unsupported := make(map[string]string)

	cur := cursor{data: stripComments(content)}
	for {
		name, value, done, err := cur.readAssignment()
		if err != nil {
			return err
		}
		if done {
			return nil
		}

		if remembered, ok := unsupported[value]; ok {
			value = remembered
		}

		found, err := applyValue(name, value, sink)
		if err != nil {
			return err
		}
		if !found {
			log.Warn("unexpected name or value in color scheme", "name", name, "value", value)
			unsupported[name] = value
		}
	}
}

// applyValue routes a single assignment to the sink. Values beginning with
// '#' must be exactly #rrggbb or #rrggbbaa; anything else starting with '#'
// is fatal for the whole scheme. Other values are named references.
func applyValue(name, value string, sink palette.Sink) (found bool, err error) {
	if value[0] == '#' {
		c, err := ParseHexColor(value)
		if err != nil {
			return false, fmt.Errorf("%w (while applying '%s: %s')", err, name, value)
		}
		return sink.SetColor(name, c), nil
	}
	return sink.SetColorRef(name, value), nil
}

// ParseHexColor parses "#rrggbb" or "#rrggbbaa" into an RGBA value. The
// six-digit form gets an opaque alpha.
func ParseHexColor(value string) (palette.RGBA, error) {
	if len(value) != 7 && len(value) != 9 {
		return palette.RGBA{}, fmt.Errorf("%w: %q is not #rrggbb or #rrggbbaa", ErrBadColor, value)
	}
	var channels [4]uint8
	channels[3] = 0xff
	for i := 1; i < len(value); i += 2 {
		hi, ok1 := hexDigit(value[i])
		lo, ok2 := hexDigit(value[i+1])
		if !ok1 || !ok2 {
			return palette.RGBA{}, fmt.Errorf("%w: %q has a non-hex digit", ErrBadColor, value)
		}
		channels[(i-1)/2] = hi<<4 | lo
	}
	return palette.RGBA{R: channels[0], G: channels[1], B: channels[2], A: channels[3]}, nil
}

func hexDigit(c byte) (uint8, bool) {
	switch {
	case c >= '0' && c <= '9':
		return c - '0', true
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10, true
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10, true
	}
	return 0, false
}

// cursor scans an immutable byte slice with explicit bounds checks.
type cursor struct {
	data []byte
	pos  int
}

func (c *cursor) eof() bool {
	return c.pos >= len(c.data)
}

// skipWhitespace advances past whitespace and reports whether any input
// remains.
func (c *cursor) skipWhitespace() bool {
	for !c.eof() {
		switch c.data[c.pos] {
		case ' ', '\t', '\r', '\n':
			c.pos++
		default:
			return true
		}
	}
	return false
}

// readName consumes an identifier: letters, digits, '_' and '-'.
func (c *cursor) readName() string {
	start := c.pos
	for !c.eof() && isNameByte(c.data[c.pos]) {
		c.pos++
	}
	return string(c.data[start:c.pos])
}

func isNameByte(b byte) bool {
	return b >= 'a' && b <= 'z' || b >= 'A' && b <= 'Z' ||
		b >= '0' && b <= '9' || b == '_' || b == '-'
}

// readAssignment reads one `name: value;` pair. done is true at a clean end
// of input.
func (c *cursor) readAssignment() (name, value string, done bool, err error) {
	if !c.skipWhitespace() {
		return "", "", true, nil
	}

	name = c.readName()
	if name == "" {
		return "", "", false, fmt.Errorf("%w: could not read a name at offset %d", ErrSyntax, c.pos)
	}
	if !c.skipWhitespace() {
		return "", "", false, fmt.Errorf("%w: unexpected end of scheme after %q", ErrSyntax, name)
	}
	if c.data[c.pos] != ':' {
		return "", "", false, fmt.Errorf("%w: expected ':' after %q", ErrSyntax, name)
	}
	c.pos++
	if !c.skipWhitespace() {
		return "", "", false, fmt.Errorf("%w: unexpected end of scheme after %q:", ErrSyntax, name)
	}

	start := c.pos
	if c.data[c.pos] == '#' {
		c.pos++
	}
	if c.readName() == "" {
		return "", "", false, fmt.Errorf("%w: expected a color value for %q", ErrSyntax, name)
	}
	value = string(c.data[start:c.pos])

	if !c.skipWhitespace() {
		return "", "", false, fmt.Errorf("%w: unexpected end of scheme after value of %q", ErrSyntax, name)
	}
	if c.data[c.pos] != ';' {
		return "", "", false, fmt.Errorf("%w: expected ';' after value of %q", ErrSyntax, name)
	}
	c.pos++
	return name, value, false, nil
}
