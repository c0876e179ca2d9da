// Package xmlgen translates compiled program units into the vendor-flavored
// PLCopenXML dialect. It owns the skeleton document for one generation run
// and appends per-unit subtrees to it pass by pass.
package xmlgen

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"plcc/internal/ast"
	"plcc/internal/diag"
	"plcc/internal/source"
	"plcc/internal/xmltree"
)

// GenerationParameters configures one generation run.
type GenerationParameters struct {
	// ProjectName lands in the ContentHeader name attribute.
	ProjectName string
	// OutputXMLOmron switches vendor-specific quirks, e.g. coercing
	// oversized string types to a fixed-width placeholder type name.
	OutputXMLOmron bool
}

// orderKey identifies one claimed orderWithinParamSet slot. The claim set
// spans the whole run, not a single unit.
type orderKey struct {
	pou   string
	order int
}

// Generator walks compilation units and populates the skeleton document.
// It is single-threaded: passes take turns mutating the one tree.
type Generator struct {
	params   GenerationParameters
	files    *source.FileSet
	diags    *diag.Bag
	doc      *xmltree.Node
	orders   map[orderKey]struct{}
	creation time.Time
}

// NewGenerator builds a generator around a fresh skeleton document.
func NewGenerator(params GenerationParameters, files *source.FileSet, diags *diag.Bag) *Generator {
	creation := time.Now()
	return &Generator{
		params:   params,
		files:    files,
		diags:    diags,
		doc:      OmronTemplate(params.ProjectName, creation),
		orders:   make(map[orderKey]struct{}),
		creation: creation,
	}
}

// Document exposes the tree under construction, mainly for tests.
func (g *Generator) Document() *xmltree.Node {
	return g.doc
}

// Generate runs all three passes over every unit, then serializes the
// document to outputPath. Sub-pass failures are recorded and skipped;
// only serialization errors are returned.
func (g *Generator) Generate(units []*ast.CompilationUnit, outputPath string) error {
	g.Translate(units)
	return xmltree.WriteFile(outputPath, g.doc)
}

// Translate populates the document without writing it out.
// Invoke once per unit set: re-invocation duplicates output.
func (g *Generator) Translate(units []*ast.CompilationUnit) {
	for _, unit := range units {
		g.bestEffort(unit.Name, func() error { return g.genGlobals(unit) })
		g.bestEffort(unit.Name, func() error { return g.genTypes(unit) })
		g.bestEffort(unit.Name, func() error { return g.genPous(unit) })
	}
}

var errAnchorNotFound = errors.New("anchor element not found")

// anchor descends the skeleton to a named insertion point.
func (g *Generator) anchor(names ...string) (*xmltree.Node, error) {
	if n := g.doc.FindPath(names...); n != nil {
		return n, nil
	}
	return nil, fmt.Errorf("%w: %s", errAnchorNotFound, strings.Join(names, "/"))
}

// bestEffort runs one sub-pass and converts its failure into a recorded
// diagnostic. A missing anchor aborts only the affected sub-pass for the
// affected unit; the run continues.
func (g *Generator) bestEffort(unit string, pass func() error) {
	if err := pass(); err != nil {
		g.diags.Add(diag.Diagnostic{
			Severity: diag.SevWarning,
			Code:     diag.GenAnchorMissing,
			Unit:     unit,
			Message:  err.Error(),
		})
	}
}

// skip records a soft, expected omission.
func (g *Generator) skip(code diag.Code, unit, msg string) {
	g.diags.Add(diag.Diagnostic{
		Severity: diag.SevInfo,
		Code:     code,
		Unit:     unit,
		Message:  msg,
	})
}

// omronStringPlaceholder is the fixed-width type name substituted for
// string types the target tool cannot represent.
const omronStringPlaceholder = "STRING[256]"

// coerceTypeName applies the vendor string-width quirk when enabled.
func (g *Generator) coerceTypeName(name string) string {
	if g.params.OutputXMLOmron && strings.Contains(strings.ToLower(name), "string") {
		return omronStringPlaceholder
	}
	return name
}

// VariableDecl is the declaration-side Variable element (as opposed to the
// lowercase graph variable).
func VariableDecl() Element { return newElement("Variable") }

// publishProperty records a variable's network publish mode in the vendor
// addData payload.
func publishProperty(mode ast.PublishMode) Element {
	return AddData().Child(Data().
		Attribute("name", vendorDataName).
		Attribute("handleUnknown", "implementation").
		Child(newElement("smcext:VariableNetworkProperty").
			Attribute("networkPublish", mode.String()).
			Close()))
}

// variableElement renders one declared variable: name, Type/TypeName, the
// vendor publish-mode payload, and the optional InitialValue and Address
// subtrees.
func (g *Generator) variableElement(v *ast.Variable) Element {
	e := VariableDecl().
		Attribute("name", v.Name).
		Child(TypeNamePair(g.coerceTypeName(v.TypeName))).
		Child(publishProperty(v.Publish))

	if lit, ok := v.Initializer.LiteralText(); ok {
		e = e.Child(InitialValue().Child(SimpleValue().Attribute("value", lit).Close()))
	}
	if v.Address != "" {
		e = e.Child(AddressElem().Content(v.Address))
	}
	return e
}
