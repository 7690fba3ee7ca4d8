package werrors

// MOFParseError reports a lexical or syntax error while tokenizing or
// parsing MOF source: unexpected token, unterminated literal, include
// cycle. The parser synchronizes at the next ';' or '}' after reporting
// one, so a single compilation unit can accumulate several.
type MOFParseError struct {
	File    string
	Source  string
	Pos     Position
	Message string
}

func (e *MOFParseError) Error() string {
	return sourceContext{File: e.File, Source: e.Source, Pos: e.Pos, Message: e.Message}.format()
}

// MOFResolveError reports a semantic-pass failure: an unresolved
// qualifier or superclass reference, a flavor conflict, or an initializer
// that fails to evaluate against its declared type.
type MOFResolveError struct {
	File    string
	Source  string
	Pos     Position
	Element string // e.g. "class Foo", "qualifier Bar"
	Message string
}

func (e *MOFResolveError) Error() string {
	msg := e.Message
	if e.Element != "" {
		msg = e.Element + ": " + msg
	}
	return sourceContext{File: e.File, Source: e.Source, Pos: e.Pos, Message: msg}.format()
}

// MOFRepositoryError wraps a failure returned by the Repository during
// the apply sub-pass, naming the mutation that failed so rollback logs
// can reference it.
type MOFRepositoryError struct {
	Operation string // e.g. "createClass", "deleteInstance"
	Namespace string
	Target    string // class/instance/qualifier name or path
	Err       error
}

func (e *MOFRepositoryError) Error() string {
	return e.Operation + " " + e.Namespace + "/" + e.Target + ": " + e.Err.Error()
}

func (e *MOFRepositoryError) Unwrap() error { return e.Err }
