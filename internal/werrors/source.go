package werrors

import (
	"fmt"
	"strings"
)

// sourceContext formats a Position against source text with a line/column
// header and a caret pointing at the offending column. Shared by every
// error type that carries source text (MOF parse/resolve errors today;
// the CIM-XML parse errors carry a byte offset instead, since the source
// there is binary-ish XML rather than line-oriented text).
type sourceContext struct {
	File    string
	Source  string
	Pos     Position
	Message string
}

func (c sourceContext) format() string {
	var sb strings.Builder

	if c.File != "" {
		fmt.Fprintf(&sb, "%s:%d:%d: %s", c.File, c.Pos.Line, c.Pos.Column, c.Message)
	} else {
		fmt.Fprintf(&sb, "%d:%d: %s", c.Pos.Line, c.Pos.Column, c.Message)
	}

	line := c.sourceLine(c.Pos.Line)
	if line == "" {
		return sb.String()
	}

	lineNumStr := fmt.Sprintf("%4d | ", c.Pos.Line)
	sb.WriteString("\n")
	sb.WriteString(lineNumStr)
	sb.WriteString(line)
	sb.WriteString("\n")
	if c.Pos.Column > 0 {
		sb.WriteString(strings.Repeat(" ", len(lineNumStr)+c.Pos.Column-1))
		sb.WriteString("^")
	}

	return sb.String()
}

func (c sourceContext) sourceLine(n int) string {
	if c.Source == "" || n < 1 {
		return ""
	}
	lines := strings.Split(c.Source, "\n")
	if n > len(lines) {
		return ""
	}
	return lines[n-1]
}
