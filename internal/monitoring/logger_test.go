package monitoring

import (
	"fmt"
	"testing"
)

func TestSetLogger(t *testing.T) {
	original := Logf
	defer func() { Logf = original }()

	var got string
	SetLogger(func(format string, v ...interface{}) {
		got = fmt.Sprintf(format, v...)
	})
	Logf("read %d points from %s", 1200, "run.pos")
	if got != "read 1200 points from run.pos" {
		t.Errorf("logger received %q", got)
	}

	// nil installs a no-op, not a nil func
	got = ""
	SetLogger(nil)
	if Logf == nil {
		t.Fatal("Logf is nil after SetLogger(nil)")
	}
	Logf("muted")
	if got != "" {
		t.Errorf("no-op logger produced output %q", got)
	}
}
