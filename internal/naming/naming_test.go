package naming

import (
	"strings"
	"testing"
)

func TestHUID_Stable(t *testing.T) {
	a := HUID("8f7c9e21-1d2b-4f3a-9a6e-000000000001")
	b := HUID("8f7c9e21-1d2b-4f3a-9a6e-000000000001")
	if a != b {
		t.Errorf("HUID not stable: %s vs %s", a, b)
	}

	parts := strings.Split(a, "-")
	if len(parts) != 3 {
		t.Fatalf("expected adjective-noun-suffix form, got %s", a)
	}
	if len(parts[2]) != 2 {
		t.Errorf("expected 2-char suffix, got %s", parts[2])
	}
}

func TestHUID_DistinctInputs(t *testing.T) {
	if HUID("pod-1") == HUID("pod-2") {
		t.Error("different inputs produced the same HUID")
	}
}

func TestHUID_Empty(t *testing.T) {
	if got := HUID(""); got != "invalid" {
		t.Errorf("HUID(\"\") = %s, want invalid", got)
	}
}

func TestExpandGPUShorthand(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"A100", "A100"},
		{"H200", "H200"},
		{"RTX4090", "RTX 4090"},
		{"rtx3090", "RTX 3090"},
		{"NVIDIA A100-SXM4-80GB", "NVIDIA A100-SXM4-80GB"},
		{"RTX 4090", "RTX 4090"},
	}
	for _, tt := range tests {
		if got := ExpandGPUShorthand(tt.in); got != tt.want {
			t.Errorf("ExpandGPUShorthand(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
