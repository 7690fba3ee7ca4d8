package wlog

import (
	"bytes"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestOperationAttemptLogsOutcome(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, zerolog.InfoLevel)
	l.OperationAttempt("EnumerateInstances", "root/cimv2", "1001", 1, nil)
	out := buf.String()
	if !strings.Contains(out, "EnumerateInstances") || !strings.Contains(out, "root/cimv2") {
		t.Errorf("expected method and namespace in log output, got %q", out)
	}
}

func TestNopLoggerDiscardsOutput(t *testing.T) {
	l := Nop()
	l.OperationAttempt("GetInstance", "root/cimv2", "1002", 1, nil)
}
