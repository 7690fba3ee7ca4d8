// Package wlog wraps github.com/rs/zerolog for the client's structured
// per-operation-attempt logging (spec.md §4.D EXPANSION). A Connection
// carries a Logger, defaulting to a no-op logger so importing this
// module never forces output onto a caller's process.
package wlog

import (
	"io"

	"github.com/rs/zerolog"
)

// Logger is the structured logger carried on a connection.
type Logger struct {
	zl zerolog.Logger
}

// Nop returns a Logger that discards everything — the default for a
// freshly constructed connection.
func Nop() Logger {
	return Logger{zl: zerolog.Nop()}
}

// New returns a Logger writing JSON lines to w at the given level.
func New(w io.Writer, level zerolog.Level) Logger {
	return Logger{zl: zerolog.New(w).Level(level).With().Timestamp().Logger()}
}

// OperationAttempt logs one structured event per operation attempt:
// method, namespace, message ID, attempt number, and outcome
// (spec.md §4.D EXPANSION).
func (l Logger) OperationAttempt(method, namespace, messageID string, attempt int, err error) {
	ev := l.zl.Info()
	if err != nil {
		ev = l.zl.Warn().Err(err)
	}
	ev.Str("method", method).
		Str("namespace", namespace).
		Str("message_id", messageID).
		Int("attempt", attempt).
		Msg("cim operation attempt")
}

// UnknownAttribute logs an ignored unknown XML attribute at debug
// level (spec.md §4.C: "unknown attributes on known elements are
// ignored but logged").
func (l Logger) UnknownAttribute(element, attrName string) {
	l.zl.Debug().Str("element", element).Str("attribute", attrName).Msg("ignored unknown attribute")
}

// RollbackWarning logs a best-effort rollback step that could not
// fully restore prior state (spec.md §4.F: qualifier-declaration and
// instance-modify rollback are documented limitations, not silent
// failures).
func (l Logger) RollbackWarning(target, reason string) {
	l.zl.Warn().Str("target", target).Str("reason", reason).Msg("rollback best-effort")
}

// HookPanic logs a recorder hook that panicked; hooks must never raise
// into the client (spec.md §4.D "exceptions from hooks are caught,
// logged, and dropped").
func (l Logger) HookPanic(recovered any) {
	l.zl.Error().Interface("recovered", recovered).Msg("recorder hook panicked")
}
