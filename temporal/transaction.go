package temporal

// parser is the mutable state shared by all grammar productions during a
// single top-level parse.
type parser struct {
	cursor
	spans captures
}

func newParser(input string) *parser {
	return &parser{cursor: cursor{input: input}}
}

// result returns the captures accumulated so far.
func (p *parser) result() *ParseResult {
	return &ParseResult{source: p.input, spans: p.spans}
}

// transaction is a scoped attempt to match a production.
//
// It records the cursor position and a copy of every capture at begin.
// Unless commit is called before end, end restores both, so a failed
// production leaves no trace in the parser state. Transactions nest
// strictly: each holds its own snapshot and an inner rollback only ever
// restores state that was current when the inner transaction began.
type transaction struct {
	p         *parser
	pos       int
	spans     captures
	committed bool
}

// begin opens a transaction. The caller must defer end.
//
//	tx := p.begin()
//	defer tx.end()
func (p *parser) begin() transaction {
	return transaction{p: p, pos: p.pos, spans: p.spans}
}

// span returns the range consumed since begin.
func (tx *transaction) span() Span {
	return Span{Start: tx.pos, End: tx.p.pos}
}

// parsed returns the text consumed since begin.
func (tx *transaction) parsed() string {
	return tx.p.input[tx.pos:tx.p.pos]
}

// capture records the text consumed since begin as the value of sym.
// The write is only authoritative once the transaction commits.
func (tx *transaction) capture(sym Symbol) {
	tx.p.spans[sym] = tx.span()
}

func (tx *transaction) commit() {
	tx.committed = true
}

// end rolls back the parser state unless the transaction was committed.
func (tx *transaction) end() {
	if tx.committed {
		return
	}

	tx.p.pos = tx.pos
	tx.p.spans = tx.spans
}
