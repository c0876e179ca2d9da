package xmlgen

import (
	"strconv"
	"testing"
)

func values(resolved []NameAndInitialValue) []string {
	out := make([]string, 0, len(resolved))
	for _, r := range resolved {
		out = append(out, r.InitialValue)
	}
	return out
}

func TestResolveEnumInitialsNoConflicts(t *testing.T) {
	resolved := resolveEnumInitials([]NameAndInitialValue{
		{Name: "A", InitialValue: "0"},
		{Name: "B", InitialValue: "1"},
		{Name: "C", InitialValue: "2"},
	})
	got := values(resolved)
	for i, want := range []string{"0", "1", "2"} {
		if got[i] != want {
			t.Fatalf("values = %v", got)
		}
	}
}

func TestResolveEnumInitialsCascade(t *testing.T) {
	// B takes 1 since it is free; C's own 1 now conflicts with B and
	// cascades to 2.
	resolved := resolveEnumInitials([]NameAndInitialValue{
		{Name: "A", InitialValue: "0"},
		{Name: "B", InitialValue: "0"},
		{Name: "C", InitialValue: "1"},
	})
	got := values(resolved)
	for i, want := range []string{"0", "1", "2"} {
		if got[i] != want {
			t.Fatalf("values = %v, want [0 1 2]", got)
		}
	}
}

func TestResolveEnumInitialsAllSame(t *testing.T) {
	resolved := resolveEnumInitials([]NameAndInitialValue{
		{Name: "X", InitialValue: "5"},
		{Name: "Y", InitialValue: "5"},
		{Name: "Z", InitialValue: "5"},
	})
	got := values(resolved)
	for i, want := range []string{"5", "6", "7"} {
		if got[i] != want {
			t.Fatalf("values = %v, want [5 6 7]", got)
		}
	}
}

func TestResolveEnumInitialsNegative(t *testing.T) {
	resolved := resolveEnumInitials([]NameAndInitialValue{
		{Name: "NEG", InitialValue: "-1"},
		{Name: "NEG2", InitialValue: "-1"},
	})
	got := values(resolved)
	if got[0] != "-1" || got[1] != "0" {
		t.Fatalf("values = %v, want [-1 0]", got)
	}
}

func TestResolveEnumInitialsSkipsClaimedMiddleValue(t *testing.T) {
	// C conflicts with A, tries 1 (taken by B), settles on 2.
	resolved := resolveEnumInitials([]NameAndInitialValue{
		{Name: "A", InitialValue: "0"},
		{Name: "B", InitialValue: "1"},
		{Name: "C", InitialValue: "0"},
	})
	if got := values(resolved); got[2] != "2" {
		t.Fatalf("values = %v, want C=2", got)
	}
}

func TestResolveEnumInitialsEmpty(t *testing.T) {
	if got := resolveEnumInitials(nil); len(got) != 0 {
		t.Fatalf("expected empty result, got %v", got)
	}
}

func TestResolveEnumInitialsPreservesOrderAndDistinctness(t *testing.T) {
	candidates := []NameAndInitialValue{
		{Name: "A", InitialValue: "3"},
		{Name: "B", InitialValue: "3"},
		{Name: "C", InitialValue: "4"},
		{Name: "D", InitialValue: "3"},
		{Name: "E", InitialValue: "-2"},
		{Name: "F", InitialValue: "-2"},
	}
	resolved := resolveEnumInitials(candidates)
	if len(resolved) != len(candidates) {
		t.Fatalf("length changed: %d", len(resolved))
	}
	seen := make(map[string]bool)
	for i, r := range resolved {
		if r.Name != candidates[i].Name {
			t.Fatalf("name order changed at %d: %s", i, r.Name)
		}
		if seen[r.InitialValue] {
			t.Fatalf("duplicate value %s in %v", r.InitialValue, values(resolved))
		}
		seen[r.InitialValue] = true
		if _, err := strconv.ParseInt(r.InitialValue, 10, 64); err != nil {
			t.Fatalf("non-integer output %q", r.InitialValue)
		}
	}
}

func TestFormatEnumInitialsBuildsEnumerators(t *testing.T) {
	elems := formatEnumInitials([]NameAndInitialValue{
		{Name: "Red", InitialValue: "0"},
		{Name: "Green", InitialValue: "0"},
	})
	if len(elems) != 2 {
		t.Fatalf("len = %d", len(elems))
	}
	n := elems[1].Node()
	if n.Name != "Enumerator" || n.Attributes["name"] != "Green" || n.Attributes["value"] != "1" {
		t.Fatalf("unexpected element: %s %v", n.Name, n.Attributes)
	}
	if !n.Closed {
		t.Fatalf("Enumerator should be self-closing")
	}
}
