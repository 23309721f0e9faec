package movement

import "testing"

func TestParseReason(t *testing.T) {
	tests := []struct {
		input string
		want  Reason
		ok    bool
	}{
		{"arrival", ReasonArrival, true},
		{"  Stage_Complete  ", ReasonStageComplete, true},
		{"SOLD", ReasonSold, true},
		{"correction", ReasonCorrection, true},
		{"", "", false},
		{"teleport", "", false},
	}

	for _, tc := range tests {
		got, ok := ParseReason(tc.input)
		if ok != tc.ok || got != tc.want {
			t.Fatalf("ParseReason(%q) = (%q, %v), want (%q, %v)", tc.input, got, ok, tc.want, tc.ok)
		}
	}
}

func TestAllReasonsReturnsCopy(t *testing.T) {
	first := AllReasons()
	first[0] = Reason("mutated")
	second := AllReasons()
	if second[0] != ReasonArrival {
		t.Fatalf("AllReasons leaked internal state: %v", second)
	}
}
