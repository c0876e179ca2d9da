package ast

import "plcc/internal/source"

// TypeKind discriminates user-defined data type declarations.
type TypeKind uint8

const (
	TypeStruct TypeKind = iota
	TypeEnum
)

// StructField is one named field of a struct type. TypeName is empty when
// the front end could not resolve the field's type.
type StructField struct {
	Name     string
	TypeName string
}

// TypeDecl is a user-defined data type.
//
// An empty Name marks an anonymous type; a nil Location marks a
// compiler-synthesized one. Neither is emitted.
type TypeDecl struct {
	Name     string
	Kind     TypeKind
	Location *source.Span

	// Fields carries the members of a struct type.
	Fields []StructField

	// BaseTypeName is the underlying numeric type of an enum.
	BaseTypeName string
	// Initializer carries the enum variant assignments: either a single
	// `Variant := literal` assignment or a list of them.
	Initializer *Expression
}
