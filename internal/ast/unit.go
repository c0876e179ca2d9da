// Package ast holds the backend-facing representation of a compiled PLC
// program: the shapes the XML generator consumes. The front end (lexing,
// parsing, semantic analysis) lives outside this repository; everything here
// arrives already validated.
package ast

// CompilationUnit is one translation unit as handed over by the front end.
type CompilationUnit struct {
	// Name is the logical unit name, used for Configuration/Resource naming.
	Name string
	// FileName is the originating source file path.
	FileName string

	Globals         []VariableBlock
	Types           []TypeDecl
	Pous            []Pou
	Implementations []Implementation
}

// PouByName returns the declared metadata matching an implementation name.
func (u *CompilationUnit) PouByName(name string) (*Pou, bool) {
	for i := range u.Pous {
		if u.Pous[i].Name == name {
			return &u.Pous[i], true
		}
	}
	return nil, false
}
