package repository

import (
	"testing"
)

func TestRosterSerializationRoundTrip(t *testing.T) {
	t.Parallel()

	ids := []string{"111", "222", "333"}
	got := splitIDs(joinIDs(ids))
	if len(got) != len(ids) {
		t.Fatalf("round trip = %v", got)
	}
	for i := range ids {
		if got[i] != ids[i] {
			t.Fatalf("round trip order changed: %v", got)
		}
	}
}

func TestSplitIDsEmpty(t *testing.T) {
	t.Parallel()

	if got := splitIDs(""); len(got) != 0 {
		t.Fatalf("splitIDs(\"\") = %v, want empty", got)
	}
}
