package ast

// ExprKind discriminates the initializer expression forms the backend
// understands. This is deliberately a fraction of the front end's AST:
// type initializers are the only expressions that reach XML generation.
type ExprKind uint8

const (
	// ExprLiteral is a literal token; Value holds its decimal text.
	ExprLiteral ExprKind = iota
	// ExprReference names a declared symbol; Value holds the identifier.
	ExprReference
	// ExprUnary applies Value (an operator, e.g. "-") to Operands[0].
	ExprUnary
	// ExprBinary applies Value to Operands[0] and Operands[1].
	ExprBinary
	// ExprAssignment binds Operands[1] to the reference Operands[0].
	ExprAssignment
	// ExprList is a comma-separated sequence of Operands.
	ExprList
)

// Expression is a minimal initializer expression tree.
type Expression struct {
	Kind     ExprKind
	Value    string
	Operands []*Expression
}

// Literal builds a literal expression node.
func Literal(text string) *Expression {
	return &Expression{Kind: ExprLiteral, Value: text}
}

// Reference builds a reference expression node.
func Reference(name string) *Expression {
	return &Expression{Kind: ExprReference, Value: name}
}

// Assignment builds `ref := value`.
func Assignment(ref, value *Expression) *Expression {
	return &Expression{Kind: ExprAssignment, Operands: []*Expression{ref, value}}
}

// List builds a comma-separated expression list.
func List(items ...*Expression) *Expression {
	return &Expression{Kind: ExprList, Operands: items}
}

// Negate builds unary minus around an expression.
func Negate(operand *Expression) *Expression {
	return &Expression{Kind: ExprUnary, Value: "-", Operands: []*Expression{operand}}
}

// LiteralText resolves an expression to the decimal text of the literal it
// denotes: a literal directly, a unary minus folded into the sign, or the
// literal at the tail of a binary expression. Returns false when the
// expression bottoms out in anything else.
func (e *Expression) LiteralText() (string, bool) {
	if e == nil {
		return "", false
	}
	switch e.Kind {
	case ExprLiteral:
		return e.Value, true
	case ExprUnary:
		if e.Value != "-" || len(e.Operands) != 1 {
			return "", false
		}
		inner, ok := e.Operands[0].LiteralText()
		if !ok {
			return "", false
		}
		return "-" + inner, true
	case ExprBinary:
		if len(e.Operands) == 0 {
			return "", false
		}
		return e.Operands[len(e.Operands)-1].LiteralText()
	}
	return "", false
}
