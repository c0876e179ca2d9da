package ast

import "plcc/internal/source"

// BlockKind classifies a variable block by its declaration keyword.
type BlockKind uint8

const (
	BlockGlobal BlockKind = iota
	BlockInput
	BlockOutput
	BlockInOut
	BlockExternal
	BlockLocal
	BlockTemp
)

func (k BlockKind) String() string {
	switch k {
	case BlockGlobal:
		return "VAR_GLOBAL"
	case BlockInput:
		return "VAR_INPUT"
	case BlockOutput:
		return "VAR_OUTPUT"
	case BlockInOut:
		return "VAR_IN_OUT"
	case BlockExternal:
		return "VAR_EXTERNAL"
	case BlockLocal:
		return "VAR"
	case BlockTemp:
		return "VAR_TEMP"
	}
	return "VAR?"
}

// OrderSensitive reports whether declaration order inside the block matters
// to the target tool (parameters do, plain locals do not).
func (k BlockKind) OrderSensitive() bool {
	switch k {
	case BlockInput, BlockOutput, BlockInOut:
		return true
	}
	return false
}

// PublishMode classifies how a global variable is exposed on the network.
type PublishMode uint8

const (
	PublishNone PublishMode = iota
	PublishGlobal
	PublishInput
	PublishOutput
)

func (m PublishMode) String() string {
	switch m {
	case PublishGlobal:
		return "Publish"
	case PublishInput:
		return "Input"
	case PublishOutput:
		return "Output"
	}
	return "DoNotPublish"
}

// VariableBlock is one VAR_* section with its modifiers.
type VariableBlock struct {
	Kind     BlockKind
	Constant bool
	Retain   bool

	Variables []Variable
}

// Variable is a single declared variable.
//
// A nil Location marks a compiler-synthesized variable that must not appear
// in generated output. An empty TypeName marks a type the front end could
// not resolve.
type Variable struct {
	Name     string
	TypeName string
	// Initializer is the literal initial value, when one was declared.
	Initializer *Expression
	// Address is the direct memory address (AT %QX0.0 ...), when declared.
	Address string
	Publish PublishMode

	Location *source.Span
}
