package remote

import "testing"

func TestHandleTransitions_HappyPath(t *testing.T) {
	h := &Handle{PodID: "pod-1"}
	if h.State() != StateProvisioning {
		t.Fatalf("new handle should be provisioning, got %s", h.State())
	}
	if err := h.transition(StateReady); err != nil {
		t.Fatalf("provisioning->ready: %v", err)
	}
	if err := h.transition(StateReleased); err != nil {
		t.Fatalf("ready->released: %v", err)
	}
}

func TestHandleTransitions_FailedIsTerminal(t *testing.T) {
	h := &Handle{PodID: "pod-1"}
	if err := h.transition(StateFailed); err != nil {
		t.Fatalf("provisioning->failed: %v", err)
	}
	if err := h.transition(StateReady); err == nil {
		t.Error("failed->ready should be rejected")
	}
	if err := h.transition(StateReleased); err == nil {
		t.Error("failed->released should be rejected")
	}
}

func TestHandleTransitions_NoSkippingToReleased(t *testing.T) {
	h := &Handle{PodID: "pod-1"}
	if err := h.transition(StateReleased); err == nil {
		t.Error("provisioning->released should be rejected")
	}
}

func TestHandleTransitions_ReleasedIsTerminal(t *testing.T) {
	h := &Handle{PodID: "pod-1"}
	h.transition(StateReady)
	h.transition(StateReleased)
	if err := h.transition(StateFailed); err == nil {
		t.Error("released->failed should be rejected")
	}
}

func TestHandleStateString(t *testing.T) {
	states := map[HandleState]string{
		StateProvisioning: "provisioning",
		StateReady:        "ready",
		StateFailed:       "failed",
		StateReleased:     "released",
	}
	for state, want := range states {
		if got := state.String(); got != want {
			t.Errorf("%d.String() = %s, want %s", state, got, want)
		}
	}
}
