// Package stscan is a deliberately small, line-based scanner for IEC
// 61131-3 Structured Text declarations. It recovers just enough structure
// (global variable blocks, user-defined types, POU headers and body byte
// ranges) to feed the XML generator; it is a stand-in for the full
// compiler front end, which is out of scope for this repository.
package stscan

import (
	"fmt"
	"strconv"
	"strings"

	"fortio.org/safecast"

	"plcc/internal/ast"
	"plcc/internal/diag"
	"plcc/internal/source"
)

type line struct {
	text  string
	start uint32 // byte offset of the line's first character
	end   uint32 // byte offset past the line (excluding the newline)
}

type scanner struct {
	file  *source.File
	lines []line
	pos   int
	unit  *ast.CompilationUnit
	diags *diag.Bag
}

// Scan builds a CompilationUnit from one ST source file already loaded
// into the file set.
func Scan(files *source.FileSet, id source.FileID, diags *diag.Bag) (*ast.CompilationUnit, error) {
	f := files.Get(id)
	if f == nil {
		return nil, fmt.Errorf("stscan: unknown file %d", id)
	}

	s := &scanner{
		file:  f,
		lines: splitLines(f.Content),
		unit: &ast.CompilationUnit{
			Name:     unitName(f.Path),
			FileName: f.Path,
		},
		diags: diags,
	}
	s.run()
	return s.unit, nil
}

func unitName(path string) string {
	base := path
	if idx := strings.LastIndexByte(base, '/'); idx >= 0 {
		base = base[idx+1:]
	}
	if idx := strings.LastIndexByte(base, '.'); idx > 0 {
		base = base[:idx]
	}
	return base
}

func splitLines(content []byte) []line {
	out := make([]line, 0, 64)
	start := 0
	for i, b := range content {
		if b == '\n' {
			out = append(out, line{
				text:  string(content[start:i]),
				start: mustU32(start),
				end:   mustU32(i),
			})
			start = i + 1
		}
	}
	if start < len(content) {
		out = append(out, line{
			text:  string(content[start:]),
			start: mustU32(start),
			end:   mustU32(len(content)),
		})
	}
	return out
}

func mustU32(v int) uint32 {
	out, err := safecast.Conv[uint32](v)
	if err != nil {
		panic(fmt.Errorf("offset overflow: %w", err))
	}
	return out
}

func (s *scanner) run() {
	for s.pos < len(s.lines) {
		trimmed := strings.TrimSpace(s.lines[s.pos].text)
		upper := strings.ToUpper(trimmed)

		switch {
		case isSkippable(trimmed):
			s.pos++
		case strings.HasPrefix(upper, "VAR_GLOBAL"):
			s.scanGlobalBlock(upper)
		case strings.HasPrefix(upper, "TYPE ") || upper == "TYPE":
			s.scanTypeBlock(trimmed)
		case strings.HasPrefix(upper, "PROGRAM ") || upper == "PROGRAM":
			s.scanPou(ast.PouProgram, trimmed)
		case strings.HasPrefix(upper, "FUNCTION_BLOCK ") || upper == "FUNCTION_BLOCK":
			s.scanPou(ast.PouFunctionBlock, trimmed)
		case strings.HasPrefix(upper, "FUNCTION ") || upper == "FUNCTION":
			s.scanPou(ast.PouFunction, trimmed)
		default:
			s.report(diag.ScanBadDeclaration, fmt.Sprintf("unrecognized top-level line: %q", trimmed))
			s.pos++
		}
	}
}

func isSkippable(trimmed string) bool {
	return trimmed == "" ||
		strings.HasPrefix(trimmed, "//") ||
		strings.HasPrefix(trimmed, "(*") ||
		strings.HasPrefix(trimmed, "{")
}

func (s *scanner) report(code diag.Code, msg string) {
	if s.diags == nil {
		return
	}
	span := source.Span{File: s.file.ID}
	if s.pos < len(s.lines) {
		span.Start = s.lines[s.pos].start
		span.End = s.lines[s.pos].end
	}
	s.diags.Add(diag.Diagnostic{
		Severity: diag.SevWarning,
		Code:     code,
		Unit:     s.unit.Name,
		Message:  msg,
		Primary:  span,
	})
}

func (s *scanner) lineSpan(idx int) *source.Span {
	l := s.lines[idx]
	return &source.Span{File: s.file.ID, Start: l.start, End: l.end}
}

// scanGlobalBlock consumes VAR_GLOBAL [CONSTANT|RETAIN] ... END_VAR.
func (s *scanner) scanGlobalBlock(header string) {
	block := ast.VariableBlock{
		Kind:     ast.BlockGlobal,
		Constant: strings.Contains(header, "CONSTANT"),
		Retain:   strings.Contains(header, "RETAIN"),
	}
	s.pos++

	closed := false
	for s.pos < len(s.lines) {
		trimmed := strings.TrimSpace(s.lines[s.pos].text)
		if strings.EqualFold(trimmed, "END_VAR") {
			closed = true
			s.pos++
			break
		}
		if v, ok := s.parseVarDecl(trimmed, s.pos); ok {
			v.Publish = ast.PublishGlobal
			block.Variables = append(block.Variables, v)
		}
		s.pos++
	}
	if !closed {
		s.report(diag.ScanUnterminatedVar, "VAR_GLOBAL block not terminated by END_VAR")
	}
	s.unit.Globals = append(s.unit.Globals, block)
}

// parseVarDecl parses one declaration line:
//
//	name : TYPE;
//	name : TYPE := literal;
//	name AT %QX0.0 : TYPE;
func (s *scanner) parseVarDecl(trimmed string, idx int) (ast.Variable, bool) {
	if isSkippable(trimmed) {
		return ast.Variable{}, false
	}
	decl := strings.TrimSpace(strings.TrimSuffix(trimmed, ";"))

	// First ':' that is not part of ':='.
	colonIdx := -1
	for i := 0; i < len(decl); i++ {
		if decl[i] == ':' && (i+1 >= len(decl) || decl[i+1] != '=') {
			colonIdx = i
			break
		}
	}
	if colonIdx < 0 {
		s.report(diag.ScanBadDeclaration, fmt.Sprintf("cannot parse declaration %q", trimmed))
		return ast.Variable{}, false
	}

	namePart := strings.TrimSpace(decl[:colonIdx])
	rest := strings.TrimSpace(decl[colonIdx+1:])

	address := ""
	if atIdx := strings.Index(strings.ToUpper(namePart), " AT "); atIdx >= 0 {
		address = strings.TrimSpace(namePart[atIdx+4:])
		namePart = strings.TrimSpace(namePart[:atIdx])
	}

	var initializer *ast.Expression
	if idx := strings.Index(rest, ":="); idx >= 0 {
		initializer = ast.Literal(strings.TrimSpace(rest[idx+2:]))
		rest = strings.TrimSpace(rest[:idx])
	}

	return ast.Variable{
		Name:        namePart,
		TypeName:    rest,
		Initializer: initializer,
		Address:     address,
		Location:    s.lineSpan(idx),
	}, true
}

// scanTypeBlock consumes TYPE Name : <spec>; END_TYPE where spec is either
// a STRUCT body or a parenthesized enum with an underlying type.
func (s *scanner) scanTypeBlock(header string) {
	name := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(header), "TYPE"))
	name = strings.TrimSpace(strings.TrimSuffix(name, ":"))
	headerIdx := s.pos
	s.pos++

	decl := ast.TypeDecl{Name: name, Location: s.lineSpan(headerIdx)}

	closed := false
	for s.pos < len(s.lines) {
		trimmed := strings.TrimSpace(s.lines[s.pos].text)
		colonIdx := strings.IndexByte(trimmed, ':')
		if decl.Name == "" && colonIdx > 0 && !isSkippable(trimmed) {
			// `TYPE` on its own line, `Name : <spec>` on the next.
			decl.Name = strings.TrimSpace(trimmed[:colonIdx])
		}

		spec := trimmed
		if colonIdx > 0 && strings.EqualFold(strings.TrimSpace(trimmed[:colonIdx]), decl.Name) {
			// `Name : STRUCT` or `Name : (A := 0, B) INT;`
			spec = strings.TrimSpace(trimmed[colonIdx+1:])
		}

		switch {
		case strings.EqualFold(trimmed, "END_TYPE"):
			closed = true
			s.pos++
		case strings.HasPrefix(strings.ToUpper(spec), "STRUCT"):
			decl.Kind = ast.TypeStruct
			s.pos++
			s.scanStructFields(&decl)
		case strings.HasPrefix(spec, "("):
			decl.Kind = ast.TypeEnum
			s.parseEnumSpec(&decl, spec)
			s.pos++
		default:
			s.pos++
		}
		if closed {
			break
		}
	}
	if !closed {
		s.report(diag.ScanUnterminatedType, fmt.Sprintf("TYPE %s not terminated by END_TYPE", name))
	}
	s.unit.Types = append(s.unit.Types, decl)
}

func (s *scanner) scanStructFields(decl *ast.TypeDecl) {
	for s.pos < len(s.lines) {
		trimmed := strings.TrimSpace(s.lines[s.pos].text)
		if strings.EqualFold(trimmed, "END_STRUCT") || strings.EqualFold(trimmed, "END_STRUCT;") {
			s.pos++
			return
		}
		if v, ok := s.parseVarDecl(trimmed, s.pos); ok {
			decl.Fields = append(decl.Fields, ast.StructField{Name: v.Name, TypeName: v.TypeName})
		}
		s.pos++
	}
}

// parseEnumSpec parses `(A := 0, B, C := -2) INT;`. Variants without an
// explicit value continue counting from the previous one, the way the
// front end assigns enum initials.
func (s *scanner) parseEnumSpec(decl *ast.TypeDecl, spec string) {
	open := strings.IndexByte(spec, '(')
	closeIdx := strings.LastIndexByte(spec, ')')
	if open < 0 || closeIdx <= open {
		return
	}
	decl.BaseTypeName = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(spec[closeIdx+1:]), ";"))

	next := int64(0)
	assignments := make([]*ast.Expression, 0, 8)
	for _, part := range strings.Split(spec[open+1:closeIdx], ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		name := part
		value := ""
		if idx := strings.Index(part, ":="); idx >= 0 {
			name = strings.TrimSpace(part[:idx])
			value = strings.TrimSpace(part[idx+2:])
		}
		if value == "" {
			value = strconv.FormatInt(next, 10)
		}
		if parsed, err := strconv.ParseInt(value, 10, 64); err == nil {
			next = parsed + 1
		}

		rhs := ast.Literal(value)
		if strings.HasPrefix(value, "-") {
			rhs = ast.Negate(ast.Literal(strings.TrimPrefix(value, "-")))
		}
		assignments = append(assignments, ast.Assignment(ast.Reference(name), rhs))
	}
	decl.Initializer = ast.List(assignments...)
}

var pouEnd = map[ast.PouKind]string{
	ast.PouProgram:       "END_PROGRAM",
	ast.PouFunction:      "END_FUNCTION",
	ast.PouFunctionBlock: "END_FUNCTION_BLOCK",
}

var blockKinds = []struct {
	prefix string
	kind   ast.BlockKind
}{
	{"VAR_INPUT", ast.BlockInput},
	{"VAR_OUTPUT", ast.BlockOutput},
	{"VAR_IN_OUT", ast.BlockInOut},
	{"VAR_EXTERNAL", ast.BlockExternal},
	{"VAR_TEMP", ast.BlockTemp},
	{"VAR", ast.BlockLocal},
}

// scanPou consumes a POU: header, its VAR_* blocks, and the body up to the
// matching END keyword. The body's byte range is recorded on the
// implementation; the text itself is only read back during generation.
func (s *scanner) scanPou(kind ast.PouKind, header string) {
	name, returnType := parsePouHeader(kind, header)
	s.pos++

	pou := ast.Pou{Kind: kind, Name: name, ReturnTypeName: returnType}

	// Declaration section: consecutive VAR_* blocks.
	for s.pos < len(s.lines) {
		trimmed := strings.TrimSpace(s.lines[s.pos].text)
		if isSkippable(trimmed) {
			s.pos++
			continue
		}
		upper := strings.ToUpper(trimmed)
		matched := false
		for _, bk := range blockKinds {
			if upper == bk.prefix || strings.HasPrefix(upper, bk.prefix+" ") {
				s.scanPouVarBlock(&pou, bk.kind, upper)
				matched = true
				break
			}
		}
		if !matched {
			break
		}
	}

	// Body: everything up to the END keyword.
	bodyStart := uint32(0)
	if s.pos < len(s.lines) {
		bodyStart = s.lines[s.pos].start
	} else if len(s.lines) > 0 {
		bodyStart = s.lines[len(s.lines)-1].end
	}
	bodyEnd := bodyStart
	endKeyword := pouEnd[kind]
	closed := false
	for s.pos < len(s.lines) {
		trimmed := strings.TrimSpace(s.lines[s.pos].text)
		if strings.EqualFold(trimmed, endKeyword) {
			bodyEnd = s.lines[s.pos].start
			closed = true
			s.pos++
			break
		}
		s.pos++
	}
	if !closed {
		s.report(diag.ScanUnterminatedPou, fmt.Sprintf("%s %s not terminated by %s", kind, name, endKeyword))
		if len(s.lines) > 0 {
			bodyEnd = s.lines[len(s.lines)-1].end
		}
	}

	s.unit.Pous = append(s.unit.Pous, pou)
	s.unit.Implementations = append(s.unit.Implementations, ast.Implementation{
		Kind: kind,
		Name: name,
		Body: &source.Span{File: s.file.ID, Start: bodyStart, End: bodyEnd},
	})
}

func parsePouHeader(kind ast.PouKind, header string) (name, returnType string) {
	rest := strings.TrimSpace(header)
	if idx := strings.IndexByte(rest, ' '); idx >= 0 {
		rest = strings.TrimSpace(rest[idx+1:])
	} else {
		return "", ""
	}
	if idx := strings.Index(rest, ":"); idx >= 0 && kind == ast.PouFunction {
		return strings.TrimSpace(rest[:idx]), strings.TrimSpace(rest[idx+1:])
	}
	return rest, ""
}

func (s *scanner) scanPouVarBlock(pou *ast.Pou, kind ast.BlockKind, header string) {
	block := ast.VariableBlock{
		Kind:     kind,
		Constant: strings.Contains(header, "CONSTANT"),
		Retain:   strings.Contains(header, "RETAIN"),
	}
	s.pos++

	closed := false
	for s.pos < len(s.lines) {
		trimmed := strings.TrimSpace(s.lines[s.pos].text)
		if strings.EqualFold(trimmed, "END_VAR") {
			closed = true
			s.pos++
			break
		}
		if v, ok := s.parseVarDecl(trimmed, s.pos); ok {
			block.Variables = append(block.Variables, v)
		}
		s.pos++
	}
	if !closed {
		s.report(diag.ScanUnterminatedVar, fmt.Sprintf("%s block of %s not terminated by END_VAR", kind, pou.Name))
	}
	pou.Blocks = append(pou.Blocks, block)
}
