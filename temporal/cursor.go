package temporal

// cursor is a read position over an immutable input string.
//
// All offsets are byte offsets. Every terminal in the grammar is either a
// single ASCII byte or a fixed literal, so matching never needs to decode
// runes.
type cursor struct {
	input string
	pos   int
}

func (c *cursor) eof() bool {
	return c.pos >= len(c.input)
}

// peek reports whether the byte at the current position satisfies pred.
func (c *cursor) peek(pred func(byte) bool) bool {
	if c.eof() {
		return false
	}

	return pred(c.input[c.pos])
}

func (c *cursor) peekByte(b byte) bool {
	return !c.eof() && c.input[c.pos] == b
}

func (c *cursor) peekString(lit string) bool {
	return len(c.input)-c.pos >= len(lit) &&
		c.input[c.pos:c.pos+len(lit)] == lit
}

// consume advances past the current byte.
// Callers must have peeked first.
func (c *cursor) consume() {
	if !c.eof() {
		c.pos++
	}
}

func (c *cursor) consumeIf(pred func(byte) bool) bool {
	if !c.peek(pred) {
		return false
	}

	c.pos++

	return true
}

func (c *cursor) consumeByte(b byte) bool {
	if !c.peekByte(b) {
		return false
	}

	c.pos++

	return true
}

func (c *cursor) consumeString(lit string) bool {
	if !c.peekString(lit) {
		return false
	}

	c.pos += len(lit)

	return true
}

func isASCIIDigit(b byte) bool { return '0' <= b && b <= '9' }

func isASCIIAlpha(b byte) bool {
	return ('a' <= b && b <= 'z') || ('A' <= b && b <= 'Z')
}

func isASCIIAlphanumeric(b byte) bool {
	return isASCIIDigit(b) || isASCIIAlpha(b)
}
