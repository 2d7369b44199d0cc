package debug

import (
	"bytes"
	"testing"
)

func TestLogf(t *testing.T) {
	tests := []struct {
		name       string
		enabled    bool
		verbose    bool
		wantOutput string
	}{
		{"env enabled", true, false, "rewrite /tmp/x.txt\n"},
		{"verbose flag", false, true, "rewrite /tmp/x.txt\n"},
		{"disabled", false, false, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			oldEnabled, oldVerbose := enabled, verboseMode
			defer func() { enabled, verboseMode = oldEnabled, oldVerbose }()
			enabled, verboseMode = tt.enabled, tt.verbose

			var errBuf bytes.Buffer
			restore := SetOutput(&errBuf)
			defer restore()

			Logf("rewrite %s\n", "/tmp/x.txt")

			if got := errBuf.String(); got != tt.wantOutput {
				t.Errorf("Logf() output = %q, want %q", got, tt.wantOutput)
			}
		})
	}
}

func TestSetQuiet(t *testing.T) {
	oldQuiet := quietMode
	defer func() { quietMode = oldQuiet }()

	SetQuiet(true)
	if !IsQuiet() {
		t.Error("IsQuiet() should be true after SetQuiet(true)")
	}
	SetQuiet(false)
	if IsQuiet() {
		t.Error("IsQuiet() should be false after SetQuiet(false)")
	}
}

func TestSetVerbose(t *testing.T) {
	oldVerbose, oldEnabled := verboseMode, enabled
	defer func() { verboseMode, enabled = oldVerbose, oldEnabled }()

	enabled = false
	verboseMode = false
	if Enabled() {
		t.Error("Enabled() should be false initially")
	}

	SetVerbose(true)
	if !Enabled() {
		t.Error("Enabled() should be true after SetVerbose(true)")
	}

	SetVerbose(false)
	if Enabled() {
		t.Error("Enabled() should be false after SetVerbose(false)")
	}
}

func TestSetOutputRestore(t *testing.T) {
	oldVerbose := verboseMode
	defer func() { verboseMode = oldVerbose }()
	verboseMode = true

	var a, b bytes.Buffer
	restoreA := SetOutput(&a)
	restoreB := SetOutput(&b)

	Logf("to b\n")
	restoreB()
	Logf("to a\n")
	restoreA()

	if b.String() != "to b\n" {
		t.Errorf("b = %q", b.String())
	}
	if a.String() != "to a\n" {
		t.Errorf("a = %q", a.String())
	}
}
