package xmlgen

import (
	"fmt"
	"math"
	"strconv"
)

// NameAndInitialValue is one enumerator candidate: a variant name paired
// with the decimal text of its signed initial value.
type NameAndInitialValue struct {
	Name         string
	InitialValue string
}

// resolveEnumInitials makes all initial values pairwise distinct while
// preserving input order. A candidate whose value was already claimed by an
// earlier one (including one that was itself auto-incremented) probes
// value+1, value+2, ... until a free value is found. The algorithm is
// strictly sequential and deterministic: later duplicates may cascade past
// values claimed by earlier auto-increments.
//
// Exhausting the representable integer range is an internal invariant
// breach and panics.
func resolveEnumInitials(candidates []NameAndInitialValue) []NameAndInitialValue {
	seen := make(map[string]struct{}, len(candidates))
	out := make([]NameAndInitialValue, 0, len(candidates))

	for _, candidate := range candidates {
		value := candidate.InitialValue
		if _, taken := seen[value]; taken {
			value = nextFreeValue(value, seen)
		}
		seen[value] = struct{}{}
		out = append(out, NameAndInitialValue{Name: candidate.Name, InitialValue: value})
	}
	return out
}

func nextFreeValue(conflict string, seen map[string]struct{}) string {
	numeric, err := strconv.ParseInt(conflict, 10, 64)
	if err != nil {
		panic(fmt.Errorf("enum initial value %q is not a signed integer: %w", conflict, err))
	}
	for {
		if numeric == math.MaxInt64 {
			panic(fmt.Errorf("enum initial value search overflowed past %q", conflict))
		}
		numeric++
		candidate := strconv.FormatInt(numeric, 10)
		if _, taken := seen[candidate]; !taken {
			return candidate
		}
	}
}

// formatEnumInitials resolves initial-value conflicts and renders the
// candidates as Enumerator elements carrying name and value attributes.
func formatEnumInitials(candidates []NameAndInitialValue) []Element {
	resolved := resolveEnumInitials(candidates)
	out := make([]Element, 0, len(resolved))
	for _, r := range resolved {
		out = append(out, Enumerator().
			Attribute("name", r.Name).
			Attribute("value", r.InitialValue).
			Close())
	}
	return out
}
