package xmlgen

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"plcc/internal/ast"
	"plcc/internal/diag"
	"plcc/internal/source"
)

func testGenerator(files *source.FileSet) (*Generator, *diag.Bag) {
	if files == nil {
		files = source.NewFileSet()
	}
	bag := diag.NewBag(64)
	return NewGenerator(GenerationParameters{ProjectName: "Test"}, files, bag), bag
}

func declared() *source.Span {
	return &source.Span{}
}

func TestGenerateEndToEnd(t *testing.T) {
	unit := &ast.CompilationUnit{
		Name:     "plant",
		FileName: "plant.st",
		Globals: []ast.VariableBlock{{
			Kind: ast.BlockGlobal,
			Variables: []ast.Variable{{
				Name:        "gCounter",
				TypeName:    "INT",
				Publish:     ast.PublishGlobal,
				Location:    declared(),
				Initializer: ast.Literal("0"),
			}},
		}},
		Types: []ast.TypeDecl{{
			Name:     "MyStruct",
			Kind:     ast.TypeStruct,
			Location: declared(),
			Fields:   []ast.StructField{{Name: "field1", TypeName: "DINT"}},
		}},
	}

	g, bag := testGenerator(nil)
	path := filepath.Join(t.TempDir(), "plant.xml")
	if err := g.Generate([]*ast.CompilationUnit{unit}, path); err != nil {
		t.Fatal(err)
	}
	if bag.HasErrors() {
		t.Fatalf("unexpected errors in bag")
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	contents := string(raw)
	for _, want := range []string{
		`<Configuration name="plant_Configuration">`,
		`<Resource name="plant_Resource">`,
		`gCounter`,
		`<DataTypeDecl name="MyStruct">`,
		`<Member name="field1">`,
		`DINT`,
	} {
		if !strings.Contains(contents, want) {
			t.Fatalf("output missing %q:\n%s", want, contents)
		}
	}
}

func TestGlobalsBucketsAlwaysPresent(t *testing.T) {
	unit := &ast.CompilationUnit{Name: "empty"}
	g, _ := testGenerator(nil)
	g.Translate([]*ast.CompilationUnit{unit})

	resource := g.Document().Find(ResourceTag)
	if resource == nil {
		t.Fatalf("missing Resource")
	}
	if len(resource.Children) != 4 {
		t.Fatalf("buckets = %d, want 4", len(resource.Children))
	}
	for _, c := range resource.Children {
		if c.Name != GlobalVarsTag {
			t.Fatalf("unexpected bucket %q", c.Name)
		}
	}
}

func TestGlobalsSkipRules(t *testing.T) {
	unit := &ast.CompilationUnit{
		Name: "plant",
		Globals: []ast.VariableBlock{{
			Kind: ast.BlockGlobal,
			Variables: []ast.Variable{
				{Name: "gOk", TypeName: "INT", Publish: ast.PublishGlobal, Location: declared()},
				{Name: "gNoType", TypeName: "", Publish: ast.PublishGlobal, Location: declared()},
				{Name: "gSynth", TypeName: "INT", Publish: ast.PublishGlobal},
				{Name: "gPrivate", TypeName: "INT", Publish: ast.PublishNone, Location: declared()},
			},
		}},
	}
	g, bag := testGenerator(nil)
	g.Translate([]*ast.CompilationUnit{unit})

	out := g.Document().Serialize(0)
	if !strings.Contains(out, "gOk") {
		t.Fatalf("resolvable sibling must still be emitted:\n%s", out)
	}
	for _, absent := range []string{"gNoType", "gSynth", "gPrivate"} {
		if strings.Contains(out, absent) {
			t.Fatalf("%s should have been skipped:\n%s", absent, out)
		}
	}
	if bag.Len() != 3 {
		t.Fatalf("expected 3 recorded skips, got %d", bag.Len())
	}
}

func TestConstantRetainBuckets(t *testing.T) {
	mk := func(name string, constant, retain bool) ast.VariableBlock {
		return ast.VariableBlock{
			Kind:     ast.BlockGlobal,
			Constant: constant,
			Retain:   retain,
			Variables: []ast.Variable{{
				Name: name, TypeName: "INT", Publish: ast.PublishGlobal, Location: declared(),
			}},
		}
	}
	unit := &ast.CompilationUnit{
		Name: "plant",
		Globals: []ast.VariableBlock{
			mk("gBoth", true, true),
			mk("gConst", true, false),
			mk("gRetain", false, true),
			mk("gPlain", false, false),
		},
	}
	g, _ := testGenerator(nil)
	g.Translate([]*ast.CompilationUnit{unit})

	resource := g.Document().Find(ResourceTag)
	wantNames := []string{"gBoth", "gConst", "gRetain", "gPlain"}
	for i, want := range wantNames {
		bucket := resource.Children[i]
		if len(bucket.Children) != 1 || bucket.Children[0].Attributes["name"] != want {
			t.Fatalf("bucket %d should hold %s: %s", i, want, g.Document().Serialize(0))
		}
	}
}

func TestEmptyStructDiscarded(t *testing.T) {
	unit := &ast.CompilationUnit{
		Name: "plant",
		Types: []ast.TypeDecl{{
			Name:     "Broken",
			Kind:     ast.TypeStruct,
			Location: declared(),
			Fields:   []ast.StructField{{Name: "f", TypeName: ""}},
		}},
	}
	g, _ := testGenerator(nil)
	g.Translate([]*ast.CompilationUnit{unit})

	if strings.Contains(g.Document().Serialize(0), "DataTypeDecl") {
		t.Fatalf("struct with zero resolvable fields must produce no DataTypeDecl")
	}
}

func TestEnumTypePass(t *testing.T) {
	unit := &ast.CompilationUnit{
		Name: "plant",
		Types: []ast.TypeDecl{{
			Name:         "Color",
			Kind:         ast.TypeEnum,
			Location:     declared(),
			BaseTypeName: "INT",
			Initializer: ast.List(
				ast.Assignment(ast.Reference("Red"), ast.Literal("0")),
				ast.Assignment(ast.Reference("Green"), ast.Literal("0")),
				ast.Assignment(ast.Reference("Blue"), ast.Negate(ast.Literal("1"))),
			),
		}},
	}
	g, _ := testGenerator(nil)
	g.Translate([]*ast.CompilationUnit{unit})

	decl := g.Document().Find("DataTypeDecl")
	if decl == nil || decl.Attributes["name"] != "Color" {
		t.Fatalf("missing enum DataTypeDecl")
	}
	spec := decl.Find("EnumTypeWithNamedValueSpec")
	if spec == nil {
		t.Fatalf("missing enum spec")
	}
	last := spec.Children[len(spec.Children)-1]
	if last.Name != "BaseType" {
		t.Fatalf("BaseType must be the last child, got %q", last.Name)
	}
	// Red=0, Green conflicts and becomes 1, Blue keeps -1.
	wantValues := map[string]string{"Red": "0", "Green": "1", "Blue": "-1"}
	for _, c := range spec.Children[:len(spec.Children)-1] {
		if want := wantValues[c.Attributes["name"]]; c.Attributes["value"] != want {
			t.Fatalf("enumerator %s = %q, want %q", c.Attributes["name"], c.Attributes["value"], want)
		}
	}
}

func pouUnit(t *testing.T, files *source.FileSet) *ast.CompilationUnit {
	t.Helper()
	st := "PROGRAM main\nx := x + 1;\nEND_PROGRAM\n"
	id := files.AddVirtual("main.st", []byte(st))
	body := &source.Span{File: id, Start: 13, End: 24}

	return &ast.CompilationUnit{
		Name:     "main",
		FileName: "main.st",
		Pous: []ast.Pou{{
			Kind: ast.PouProgram,
			Name: "main",
			Blocks: []ast.VariableBlock{
				{Kind: ast.BlockInput, Variables: []ast.Variable{
					{Name: "in1", TypeName: "INT", Location: declared()},
					{Name: "in2", TypeName: "INT", Location: declared()},
				}},
				{Kind: ast.BlockOutput, Variables: []ast.Variable{
					{Name: "out1", TypeName: "BOOL", Location: declared()},
				}},
				{Kind: ast.BlockLocal, Variables: []ast.Variable{
					{Name: "x", TypeName: "INT", Location: declared()},
				}},
			},
		}},
		Implementations: []ast.Implementation{{
			Kind: ast.PouProgram,
			Name: "main",
			Body: body,
		}},
	}
}

func TestPouPassBodyAndOrders(t *testing.T) {
	files := source.NewFileSet()
	unit := pouUnit(t, files)
	g, _ := testGenerator(files)
	g.Translate([]*ast.CompilationUnit{unit})

	prog := g.Document().Find("Program")
	if prog == nil {
		t.Fatalf("missing Program element:\n%s", g.Document().Serialize(0))
	}
	content := prog.FindPath("body", "content")
	if content == nil || content.Content == nil || *content.Content != "x := x + 1;" {
		t.Fatalf("body text not extracted from source range")
	}

	// Parameters get 0..N-1 in declaration order; the local gets none.
	orders := map[string]string{}
	for _, tag := range []string{"InputVars", "OutputVars", "Vars"} {
		container := prog.Find(tag)
		if container == nil {
			t.Fatalf("missing container %s", tag)
		}
		for _, v := range container.Children {
			orders[v.Attributes["name"]] = v.Attributes["orderWithinParamSet"]
		}
	}
	if orders["in1"] != "0" || orders["in2"] != "1" || orders["out1"] != "2" {
		t.Fatalf("unexpected orders: %v", orders)
	}
	if orders["x"] != "" {
		t.Fatalf("local variable must not carry orderWithinParamSet")
	}
}

func TestClaimOrderAvoidsCollisions(t *testing.T) {
	g, _ := testGenerator(nil)
	if got := g.claimOrder("P", 0); got != 0 {
		t.Fatalf("first claim = %d", got)
	}
	if got := g.claimOrder("P", 0); got != 1 {
		t.Fatalf("colliding claim = %d, want 1", got)
	}
	// A different procedural unit starts fresh.
	if got := g.claimOrder("Q", 0); got != 0 {
		t.Fatalf("other unit claim = %d, want 0", got)
	}
}

func TestPouSkipRules(t *testing.T) {
	files := source.NewFileSet()
	unit := pouUnit(t, files)
	unit.Implementations = append(unit.Implementations,
		ast.Implementation{Kind: ast.PouAction, Name: "act"},
		ast.Implementation{Kind: ast.PouFunction, Name: "ext", Linkage: ast.LinkageExternal},
		ast.Implementation{Kind: ast.PouProgram, Name: "main", Body: nil},
	)
	g, bag := testGenerator(files)
	g.Translate([]*ast.CompilationUnit{unit})

	out := g.Document().Serialize(0)
	if strings.Contains(out, `name="act"`) || strings.Contains(out, `name="ext"`) {
		t.Fatalf("skipped units leaked into output:\n%s", out)
	}
	if bag.Len() == 0 {
		t.Fatalf("skips should be recorded")
	}
}

func TestFunctionResultTypeDefaultsToBool(t *testing.T) {
	files := source.NewFileSet()
	id := files.AddVirtual("f.st", []byte("x := 1;"))
	unit := &ast.CompilationUnit{
		Name: "f",
		Pous: []ast.Pou{{Kind: ast.PouFunction, Name: "f"}},
		Implementations: []ast.Implementation{{
			Kind: ast.PouFunction,
			Name: "f",
			Body: &source.Span{File: id, Start: 0, End: 7},
		}},
	}
	g, _ := testGenerator(files)
	g.Translate([]*ast.CompilationUnit{unit})

	fn := g.Document().Find("Function")
	if fn == nil {
		t.Fatalf("missing Function element")
	}
	tn := fn.FindPath("ResultType", "TypeName")
	if tn == nil || tn.Content == nil || *tn.Content != "BOOL" {
		t.Fatalf("ResultType should default to BOOL")
	}
}

func TestAnchorMissingAbortsOnlySubPass(t *testing.T) {
	g, bag := testGenerator(nil)
	// Break the skeleton: no Instances, no Types.
	g.doc = g.doc.FindPath(FileHeaderTag)
	if g.doc == nil {
		t.Fatalf("setup broken")
	}

	unit := &ast.CompilationUnit{Name: "plant"}
	g.Translate([]*ast.CompilationUnit{unit})

	if bag.Len() != 3 {
		t.Fatalf("each sub-pass should record its anchor failure, got %d", bag.Len())
	}
	for _, d := range bag.Items() {
		if d.Code != diag.GenAnchorMissing || d.Severity != diag.SevWarning {
			t.Fatalf("unexpected diagnostic %+v", d)
		}
	}
}

func TestOmronStringCoercion(t *testing.T) {
	files := source.NewFileSet()
	bag := diag.NewBag(16)
	g := NewGenerator(GenerationParameters{OutputXMLOmron: true}, files, bag)
	unit := &ast.CompilationUnit{
		Name: "plant",
		Types: []ast.TypeDecl{{
			Name:     "Msg",
			Kind:     ast.TypeStruct,
			Location: declared(),
			Fields:   []ast.StructField{{Name: "text", TypeName: "WSTRING[1024]"}},
		}},
	}
	g.Translate([]*ast.CompilationUnit{unit})

	out := g.Document().Serialize(0)
	if !strings.Contains(out, omronStringPlaceholder) {
		t.Fatalf("string type not coerced:\n%s", out)
	}
	if strings.Contains(out, "WSTRING[1024]") {
		t.Fatalf("original string type leaked:\n%s", out)
	}
}
