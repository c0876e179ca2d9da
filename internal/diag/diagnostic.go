package diag

import (
	"plcc/internal/source"
)

type Note struct {
	Span source.Span
	Msg  string
}

type Diagnostic struct {
	Severity Severity
	Code     Code
	Message  string
	// Unit names the compilation unit the diagnostic belongs to, when known.
	Unit    string
	Primary source.Span
	Notes   []Note
}
