package diag

import (
	"fmt"
	"io"
)

// Bag accumulates diagnostics up to a fixed limit. Generation is
// best-effort: skips and sub-pass failures land here instead of aborting
// the run.
type Bag struct {
	items []Diagnostic
	max   uint16
}

func NewBag(max int) *Bag {
	return &Bag{
		items: make([]Diagnostic, 0, max),
		max:   uint16(max), // #nosec G115 -- caller passes a small limit
	}
}

// Add appends a diagnostic, honoring the limit.
// Returns false when the diagnostic was dropped (limit reached).
func (b *Bag) Add(d Diagnostic) bool {
	if len(b.items) >= int(b.max) {
		return false
	}
	b.items = append(b.items, d)
	return true
}

func (b *Bag) Cap() uint16 {
	return b.max
}

// HasErrors reports whether any diagnostic has Severity >= Error.
func (b *Bag) HasErrors() bool {
	for i := range b.items {
		if b.items[i].Severity >= SevError {
			return true
		}
	}
	return false
}

func (b *Bag) Len() int {
	return len(b.items)
}

// Items returns a read-only view of the collected diagnostics.
// Callers must not modify the returned slice.
func (b *Bag) Items() []Diagnostic {
	return b.items
}

// Dump writes a one-line-per-diagnostic summary, for CLI output.
func (b *Bag) Dump(w io.Writer) {
	for i := range b.items {
		d := &b.items[i]
		if d.Unit != "" {
			fmt.Fprintf(w, "%s %s [%s] %s\n", d.Severity, d.Code, d.Unit, d.Message)
		} else {
			fmt.Fprintf(w, "%s %s %s\n", d.Severity, d.Code, d.Message)
		}
	}
}
