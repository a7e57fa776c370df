package log

import (
	"bytes"
	"strings"
	"testing"
)

func TestMinLevel(t *testing.T) {
	buf := &bytes.Buffer{}
	SetOutput(buf)
	defer SetMinLevel(LStep)

	SetMinLevel(LWarn)
	Printf("[info] hidden")
	Printf("[warn] shown")
	Printf("no level")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Error(out)
	}
	if !strings.Contains(out, "[warn] shown") || !strings.Contains(out, "no level") {
		t.Error(out)
	}
}

func TestParseLevel(t *testing.T) {
	for in, want := range map[string]Level{
		"debug":   LDebug,
		"INFO":    LInfo,
		"warning": LWarn,
		" error ": LError,
	} {
		got, err := ParseLevel(in)
		if err != nil || got != want {
			t.Errorf("ParseLevel(%q) = %q, %v", in, got, err)
		}
	}
	if _, err := ParseLevel("loud"); err == nil {
		t.Error("expected error")
	}
}
