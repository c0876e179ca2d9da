package xmlgen

import (
	"fmt"

	"plcc/internal/ast"
	"plcc/internal/diag"
)

// globalBuckets partitions global variables by the constant and retain
// flags. Bucket order is fixed: constant∧retain, constant-only,
// retain-only, neither.
const (
	bucketConstantRetain = iota
	bucketConstant
	bucketRetain
	bucketPlain
	bucketCount
)

func bucketIndex(constant, retain bool) int {
	switch {
	case constant && retain:
		return bucketConstantRetain
	case constant:
		return bucketConstant
	case retain:
		return bucketRetain
	}
	return bucketPlain
}

func newGlobalBuckets() [bucketCount]Element {
	var out [bucketCount]Element
	for i := range out {
		constant := i == bucketConstantRetain || i == bucketConstant
		retain := i == bucketConstantRetain || i == bucketRetain
		out[i] = GlobalVars().
			Attribute("constant", fmt.Sprint(constant)).
			Attribute("retain", fmt.Sprint(retain))
	}
	return out
}

// genGlobals appends one Configuration/Resource pair holding the unit's
// global variables to the Instances anchor. All four buckets are appended
// even when empty.
func (g *Generator) genGlobals(unit *ast.CompilationUnit) error {
	instances, err := g.anchor(InstancesTag)
	if err != nil {
		return err
	}

	buckets := newGlobalBuckets()
	for bi := range unit.Globals {
		block := &unit.Globals[bi]
		if block.Kind != ast.BlockGlobal {
			continue
		}
		idx := bucketIndex(block.Constant, block.Retain)
		for vi := range block.Variables {
			v := &block.Variables[vi]
			if !g.includeGlobal(unit.Name, v) {
				continue
			}
			buckets[idx] = buckets[idx].Child(g.variableElement(v))
		}
	}

	resource := Resource().Attribute("name", unit.Name+"_Resource").Children(buckets[:]...)
	configuration := Configuration().Attribute("name", unit.Name+"_Configuration").Child(resource)
	instances.Child(configuration.Node())
	return nil
}

// includeGlobal applies the soft skip rules for global variables.
func (g *Generator) includeGlobal(unit string, v *ast.Variable) bool {
	switch {
	case v.TypeName == "":
		g.skip(diag.GenUnresolvedType, unit, fmt.Sprintf("global %q has no resolvable type name", v.Name))
		return false
	case v.Location == nil:
		g.skip(diag.GenSynthesizedDecl, unit, fmt.Sprintf("global %q is compiler-synthesized", v.Name))
		return false
	case v.Publish != ast.PublishGlobal:
		g.skip(diag.GenNotPublished, unit, fmt.Sprintf("global %q is not network-published", v.Name))
		return false
	}
	return true
}
