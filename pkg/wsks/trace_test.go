package wsks

import "testing"

func TestEnableDisableTraceToggleFlag(t *testing.T) {
	defer DisableTrace()

	DisableTrace()
	if traceEnabled.Load() {
		t.Fatalf("expected tracing to start disabled")
	}
	EnableTrace()
	if !traceEnabled.Load() {
		t.Errorf("expected EnableTrace to set the flag")
	}
	DisableTrace()
	if traceEnabled.Load() {
		t.Errorf("expected DisableTrace to clear the flag")
	}
}
