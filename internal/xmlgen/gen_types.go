package xmlgen

import (
	"fmt"

	"plcc/internal/ast"
	"plcc/internal/diag"
)

// genTypes appends one DataTypeDecl per user-defined type to the global
// type namespace anchor.
func (g *Generator) genTypes(unit *ast.CompilationUnit) error {
	namespace, err := g.anchor(TypesTag, GlobalNamespaceTag)
	if err != nil {
		return err
	}

	for ti := range unit.Types {
		t := &unit.Types[ti]
		if t.Name == "" {
			g.skip(diag.GenAnonymousType, unit.Name, "anonymous type declaration")
			continue
		}
		if t.Location == nil {
			g.skip(diag.GenSynthesizedDecl, unit.Name, fmt.Sprintf("type %q is compiler-synthesized", t.Name))
			continue
		}

		switch t.Kind {
		case ast.TypeStruct:
			if decl, ok := g.structDecl(unit.Name, t); ok {
				namespace.Child(decl.Node())
			}
		case ast.TypeEnum:
			namespace.Child(g.enumDecl(t).Node())
		}
	}
	return nil
}

// structDecl renders a struct type. Fields without a resolvable type name
// are omitted; a struct left with zero members is discarded entirely.
func (g *Generator) structDecl(unit string, t *ast.TypeDecl) (Element, bool) {
	members := make([]Element, 0, len(t.Fields))
	for _, f := range t.Fields {
		if f.TypeName == "" {
			g.skip(diag.GenUnresolvedType, unit, fmt.Sprintf("field %q of %q has no resolvable type name", f.Name, t.Name))
			continue
		}
		members = append(members, Member().
			Attribute("name", f.Name).
			Child(TypeNamePair(g.coerceTypeName(f.TypeName))))
	}
	if len(members) == 0 {
		g.skip(diag.GenEmptyStruct, unit, fmt.Sprintf("struct %q has no members left", t.Name))
		return Element{}, false
	}
	return DataTypeDecl().
		Attribute("name", t.Name).
		Child(StructTypeSpec().Children(members...)), true
}

// enumDecl renders an enum type: conflict-resolved enumerators followed by
// the BaseType element (schema-mandated last child).
func (g *Generator) enumDecl(t *ast.TypeDecl) Element {
	enumerators := formatEnumInitials(enumCandidates(t.Initializer))
	return DataTypeDecl().
		Attribute("name", t.Name).
		Child(EnumTypeSpec(enumerators, t.BaseTypeName))
}

// enumCandidates extracts (variant, literal) pairs from an enum type's
// initializer: either a single assignment or a list of assignments, each
// resolving its right side to a literal directly or to the literal at the
// tail of a binary expression.
func enumCandidates(init *ast.Expression) []NameAndInitialValue {
	if init == nil {
		return nil
	}
	assignments := []*ast.Expression{init}
	if init.Kind == ast.ExprList {
		assignments = init.Operands
	}

	out := make([]NameAndInitialValue, 0, len(assignments))
	for _, a := range assignments {
		if a == nil || a.Kind != ast.ExprAssignment || len(a.Operands) != 2 {
			continue
		}
		ref, value := a.Operands[0], a.Operands[1]
		if ref == nil || ref.Kind != ast.ExprReference {
			continue
		}
		lit, ok := value.LiteralText()
		if !ok {
			continue
		}
		out = append(out, NameAndInitialValue{Name: ref.Value, InitialValue: lit})
	}
	return out
}
