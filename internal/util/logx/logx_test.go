package logx

import (
	"bytes"
	"strings"
	"testing"
)

func TestLevelsAndMirror(t *testing.T) {
	SetLevel(Warn)
	var out bytes.Buffer
	SetOutput(&out)
	t.Cleanup(func() { SetLevel(Info); SetOutput(nil) })
	before := len(Lines())

	Infof("hidden %d", 1)
	Warnf("shown %d", 2)
	Errorf("shown %d", 3)

	lines := Lines()[before:]
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d: %v", len(lines), lines)
	}
	if !strings.Contains(lines[0], "WARN  shown 2") {
		t.Fatalf("unexpected line %q", lines[0])
	}
	if !strings.Contains(out.String(), "ERROR shown 3") {
		t.Fatalf("mirror missing error line: %q", out.String())
	}
}

func TestParseLevel(t *testing.T) {
	if l, ok := ParseLevel(" Warning "); !ok || l != Warn {
		t.Fatalf("got %v %v", l, ok)
	}
	if _, ok := ParseLevel("loud"); ok {
		t.Fatal("unexpected level")
	}
}
