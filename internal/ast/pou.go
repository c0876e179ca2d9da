package ast

import "plcc/internal/source"

// PouKind classifies a procedural unit.
type PouKind uint8

const (
	PouProgram PouKind = iota
	PouFunction
	PouFunctionBlock
	PouAction
	PouClass
	PouMethod
)

func (k PouKind) String() string {
	switch k {
	case PouProgram:
		return "Program"
	case PouFunction:
		return "Function"
	case PouFunctionBlock:
		return "FunctionBlock"
	case PouAction:
		return "Action"
	case PouClass:
		return "Class"
	case PouMethod:
		return "Method"
	}
	return "Pou?"
}

// Linkage describes where a POU's implementation lives.
type Linkage uint8

const (
	LinkageInternal Linkage = iota
	// LinkageExternal marks units whose implementation already resides on
	// the target platform; they carry no exportable body.
	LinkageExternal
	LinkageBuiltin
)

// Pou is the declared metadata of a procedural unit.
type Pou struct {
	Kind PouKind
	Name string
	// Blocks holds the declared variable sections in source order.
	Blocks []VariableBlock
	// ReturnTypeName is set for functions (and function blocks that declare
	// one); empty otherwise.
	ReturnTypeName string
}

// Implementation pairs a POU declaration with the location of its textual
// body. A nil Body span means the body location is not a plain source range
// and the unit cannot be exported.
type Implementation struct {
	Kind    PouKind
	Name    string
	Linkage Linkage
	Body    *source.Span
}
