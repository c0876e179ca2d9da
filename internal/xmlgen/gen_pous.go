package xmlgen

import (
	"fmt"
	"math"
	"strconv"

	"plcc/internal/ast"
	"plcc/internal/diag"
)

// pouVersionPlaceholder fills the version attribute the target tool
// expects on procedural units.
const pouVersionPlaceholder = "1.0.0"

// defaultResultType is used when a function declares no return type.
const defaultResultType = "BOOL"

// genPous appends one element per exportable procedural unit to the global
// type namespace anchor.
func (g *Generator) genPous(unit *ast.CompilationUnit) error {
	namespace, err := g.anchor(TypesTag, GlobalNamespaceTag)
	if err != nil {
		return err
	}

	for ii := range unit.Implementations {
		impl := &unit.Implementations[ii]

		switch impl.Kind {
		case ast.PouProgram, ast.PouFunction, ast.PouFunctionBlock:
		default:
			g.skip(diag.GenUnsupportedPouKind, unit.Name, fmt.Sprintf("%s %q is not exportable", impl.Kind, impl.Name))
			continue
		}
		if impl.Linkage == ast.LinkageExternal {
			g.skip(diag.GenExternalLinkage, unit.Name, fmt.Sprintf("%q is externally linked", impl.Name))
			continue
		}

		decl, ok := unit.PouByName(impl.Name)
		if !ok {
			g.skip(diag.GenMissingDeclaration, unit.Name, fmt.Sprintf("no declaration matches implementation %q", impl.Name))
			continue
		}

		body, ok := g.bodyText(unit.Name, impl)
		if !ok {
			continue
		}

		namespace.Child(g.pouElement(unit.Name, decl, body).Node())
	}
	return nil
}

// bodyText reads the exact byte range of the implementation's textual body
// from its originating file. Unresolvable ranges skip the unit.
func (g *Generator) bodyText(unit string, impl *ast.Implementation) (string, bool) {
	if impl.Body == nil {
		g.skip(diag.GenBodyUnresolved, unit, fmt.Sprintf("%q has no source range", impl.Name))
		return "", false
	}
	if !impl.Body.Valid() {
		g.skip(diag.GenBodyUnresolved, unit, fmt.Sprintf("%q has a negative source range", impl.Name))
		return "", false
	}
	text, err := g.files.Snippet(*impl.Body)
	if err != nil {
		g.skip(diag.GenBodyUnresolved, unit, fmt.Sprintf("%q: %v", impl.Name, err))
		return "", false
	}
	return text, true
}

// pouElement assembles the full procedural-unit element: metadata
// attributes, variable containers in schema order, the result type for
// functions and function blocks, and the statement body.
func (g *Generator) pouElement(unit string, decl *ast.Pou, body string) Element {
	e := newElement(decl.Kind.String()).
		Attribute("name", decl.Name).
		Attribute("creationDateTime", g.creation.Format(creationTimeFormat)).
		Attribute("version", pouVersionPlaceholder)

	ordinal := 0
	for _, container := range g.varContainers(unit, decl, &ordinal) {
		e = e.Child(container)
	}

	if decl.Kind == ast.PouFunction || decl.Kind == ast.PouFunctionBlock {
		result := decl.ReturnTypeName
		if result == "" {
			result = defaultResultType
		}
		e = e.Child(ResultType().Child(TypeName().Content(g.coerceTypeName(result))))
	}

	return e.Child(Body().Child(contentElement().Content(body)))
}

// containerOrder fixes the schema-mandated sequence of variable containers.
var containerOrder = []ast.BlockKind{
	ast.BlockInput,
	ast.BlockOutput,
	ast.BlockInOut,
	ast.BlockExternal,
	ast.BlockLocal,
	ast.BlockTemp,
}

// varContainers classifies the unit's declared variable blocks into
// container elements. Order-sensitive roles get an orderWithinParamSet
// attribute assigned through the run-wide collision-avoidant tracker;
// ordinal carries the declared positional index across blocks.
func (g *Generator) varContainers(unit string, decl *ast.Pou, ordinal *int) []Element {
	out := make([]Element, 0, len(decl.Blocks))
	for _, kind := range containerOrder {
		for bi := range decl.Blocks {
			block := &decl.Blocks[bi]
			if block.Kind != kind {
				continue
			}
			out = append(out, g.varContainer(unit, decl.Name, block, ordinal))
		}
	}
	return out
}

func containerTag(kind ast.BlockKind) string {
	switch kind {
	case ast.BlockInput:
		return "InputVars"
	case ast.BlockOutput:
		return "OutputVars"
	case ast.BlockInOut:
		return "InOutVars"
	case ast.BlockExternal:
		return "ExternalVars"
	case ast.BlockTemp:
		return "TempVars"
	}
	return "Vars"
}

// varContainer renders one VAR_* block. The constant flag is carried on
// every splittable container; retain additionally on plain locals.
func (g *Generator) varContainer(unit, pouName string, block *ast.VariableBlock, ordinal *int) Element {
	container := newElement(containerTag(block.Kind))
	switch block.Kind {
	case ast.BlockExternal, ast.BlockTemp:
		container = container.Attribute("constant", fmt.Sprint(block.Constant))
	case ast.BlockLocal:
		container = container.
			Attribute("constant", fmt.Sprint(block.Constant)).
			Attribute("retain", fmt.Sprint(block.Retain))
	}

	for vi := range block.Variables {
		v := &block.Variables[vi]
		if v.TypeName == "" {
			g.skip(diag.GenUnresolvedType, unit, fmt.Sprintf("variable %q of %q has no resolvable type name", v.Name, pouName))
			continue
		}
		if v.Location == nil {
			g.skip(diag.GenSynthesizedDecl, unit, fmt.Sprintf("variable %q of %q is compiler-synthesized", v.Name, pouName))
			continue
		}

		e := g.variableElement(v)
		if block.Kind.OrderSensitive() {
			order := g.claimOrder(pouName, *ordinal)
			*ordinal++
			e = e.Attribute("orderWithinParamSet", strconv.Itoa(order))
		}
		container = container.Child(e)
	}
	return container
}

// claimOrder finds the first free order number for the given procedural
// unit at or after start and claims it for the rest of the run. Running
// out of representable integers is an internal invariant breach.
func (g *Generator) claimOrder(pouName string, start int) int {
	candidate := start
	for {
		key := orderKey{pou: pouName, order: candidate}
		if _, taken := g.orders[key]; !taken {
			g.orders[key] = struct{}{}
			return candidate
		}
		if candidate == math.MaxInt {
			panic(fmt.Errorf("order search for %q overflowed", pouName))
		}
		candidate++
	}
}
