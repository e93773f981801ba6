package nexus

import (
	"testing"
)

func TestPendingUpdateDefersUntilApply(t *testing.T) {
	p := NewPendingUpdate(5)

	p.Set(7)
	if p.Get() != 5 {
		t.Errorf("Get observed the target before Apply: got %d", p.Get())
	}
	if p.Target() != 7 {
		t.Errorf("Target = %d, want 7", p.Target())
	}

	if !p.Apply() {
		t.Error("Apply reported no change for a distinct target")
	}
	if p.Get() != 7 {
		t.Errorf("Get = %d after Apply, want 7", p.Get())
	}
}

func TestPendingUpdateSameValueIsNoOp(t *testing.T) {
	p := NewPendingUpdate(5)

	p.Set(5)
	if p.Apply() {
		t.Error("Apply reported a change for a same-value set")
	}

	// Last write wins; setting back to the current value cancels.
	p.Set(9)
	p.Set(5)
	if p.Apply() {
		t.Error("Apply reported a change after the target returned to current")
	}
	if p.Get() != 5 {
		t.Errorf("Get = %d, want 5", p.Get())
	}
}

func TestPendingUpdateCallbackFiresOncePerTransition(t *testing.T) {
	p := NewPendingUpdate(1)

	var calls int
	var lastOld, lastNew int
	p.OnChange(func(old, new int) {
		calls++
		lastOld, lastNew = old, new
	})

	p.Set(2)
	p.Set(3)
	p.Apply()

	if calls != 1 {
		t.Fatalf("callback fired %d times, want 1", calls)
	}
	if lastOld != 1 || lastNew != 3 {
		t.Errorf("callback got (%d, %d), want (1, 3)", lastOld, lastNew)
	}

	// A second Apply with nothing pending fires nothing.
	p.Apply()
	if calls != 1 {
		t.Errorf("callback fired again on an empty Apply")
	}
}

func TestPendingUpdateReset(t *testing.T) {
	p := NewPendingUpdate(1)

	var calls int
	p.OnChange(func(old, new int) { calls++ })

	p.Set(2)
	p.Reset(10)

	if p.Get() != 10 {
		t.Errorf("Get = %d after Reset, want 10", p.Get())
	}
	if p.Apply() {
		t.Error("Apply committed a target that Reset should have discarded")
	}
	if calls != 0 {
		t.Errorf("Reset fired the change callback %d times", calls)
	}
}

func TestPendingUpdateTargetWithoutPending(t *testing.T) {
	p := NewPendingUpdate("a")
	if p.Target() != "a" {
		t.Errorf("Target = %q with nothing pending, want current value", p.Target())
	}
}
