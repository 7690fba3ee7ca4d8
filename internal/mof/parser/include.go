package parser

import (
	"github.com/wbemix/gowbem/internal/mof/lexer"
	"github.com/wbemix/gowbem/internal/mof/token"
)

// Includer resolves the file name written in a `#pragma include(...)`
// directive to its canonical path and source text. A canonical path
// lets the parser detect a file including itself, directly or
// transitively, without relying on string equality of the raw pragma
// argument.
type Includer interface {
	Resolve(name string) (path string, source string, err error)
}

// NoIncludes rejects every include directive, for callers that compile
// a single self-contained MOF document (e.g. one already assembled by
// a higher-level tool) and want `#pragma include` to be a hard error
// rather than silently ignored.
type NoIncludes struct{}

func (NoIncludes) Resolve(name string) (string, string, error) {
	return "", "", errIncludesUnsupported
}

type frame struct {
	file    string
	lex     *lexer.Lexer
	pending []token.Token // lookahead tokens read before an include was pushed over this frame
}

// rawNext pulls the next token from the top frame, popping exhausted
// included-file frames and resuming the parent (DSP0004 §5.2's
// "include directives push the referenced file onto the input stack").
// A resumed frame first replays its pending tokens, then reads on from
// its lexer.
func (p *Parser) rawNext() token.Token {
	for {
		top := p.frames[len(p.frames)-1]
		if len(top.pending) > 0 {
			tok := top.pending[0]
			top.pending = top.pending[1:]
			return tok
		}
		tok := top.lex.NextToken()
		if tok.Type == token.EOF && len(p.frames) > 1 {
			delete(p.open, top.file)
			p.frames = p.frames[:len(p.frames)-1]
			continue
		}
		return tok
	}
}

// pushInclude opens path's source as a new top frame and re-primes the
// cur/peek lookahead from it. The two tokens already read from the
// including file are kept on that file's frame and replayed once the
// included file is exhausted.
func (p *Parser) pushInclude(path, source string) {
	parent := p.frames[len(p.frames)-1]
	parent.pending = append(parent.pending, p.cur, p.peek)
	p.frames = append(p.frames, &frame{file: path, lex: lexer.New(source)})
	p.open[path] = true
	p.cur = p.rawNext()
	p.peek = p.rawNext()
}

func (p *Parser) currentFile() string {
	return p.frames[len(p.frames)-1].file
}
