package xmlgen

import (
	"fmt"

	"plcc/internal/xmltree"
)

// Element binds a schema tag to a generic node and carries the
// element-specific construction helpers. It is a value type: every helper
// operates on a copy, so partially built elements can be reused safely.
type Element struct {
	node xmltree.Node
}

func newElement(tag string) Element {
	return Element{node: *xmltree.New(tag)}
}

// newNegatable seeds the negated="false" default carried by elements the
// schema allows to be logically negated.
func newNegatable(tag string) Element {
	e := newElement(tag)
	e.node.Attribute("negated", "false")
	return e
}

// Node returns a detached deep copy of the built element.
func (e Element) Node() *xmltree.Node {
	n := e.node.Clone()
	return &n
}

// Tag returns the element's tag name.
func (e Element) Tag() string {
	return e.node.Name
}

// Attribute sets an attribute; the last write for a key wins.
func (e Element) Attribute(key, value string) Element {
	n := e.node.Clone()
	n.Attribute(key, value)
	return Element{node: n}
}

// MaybeAttribute sets an attribute when value is non-nil and is a no-op
// otherwise. Used for optional schema attributes.
func (e Element) MaybeAttribute(key string, value *string) Element {
	if value == nil {
		return e
	}
	return e.Attribute(key, *value)
}

// Child appends a snapshot of the given element.
// An element cannot hold both text and children.
func (e Element) Child(child Element) Element {
	if e.node.HasContent() {
		panic(fmt.Errorf("xmlgen: element <%s> already has text content, cannot add <%s>", e.node.Name, child.node.Name))
	}
	n := e.node.Clone()
	n.Child(&child.node)
	return Element{node: n}
}

// Children appends snapshots of the given elements, preserving order.
func (e Element) Children(children ...Element) Element {
	out := e
	for _, c := range children {
		out = out.Child(c)
	}
	return out
}

// Close marks the element self-closing.
func (e Element) Close() Element {
	n := e.node.Clone()
	n.Close()
	return Element{node: n}
}

// Content sets the text payload.
// An element cannot hold both text and children.
func (e Element) Content(text string) Element {
	if len(e.node.Children) > 0 {
		panic(fmt.Errorf("xmlgen: element <%s> already has children, cannot set text content", e.node.Name))
	}
	n := e.node.Clone()
	n.SetContent(text)
	return Element{node: n}
}

// Serialize renders the element subtree as indented XML text.
func (e Element) Serialize() string {
	return e.node.Serialize(0)
}

// WithID attaches a localId attribute from any displayable value.
func (e Element) WithID(id any) Element {
	return e.Attribute("localId", fmt.Sprint(id))
}

// WithRefID attaches a refLocalId attribute from any displayable value.
func (e Element) WithRefID(id any) Element {
	return e.Attribute("refLocalId", fmt.Sprint(id))
}

// WithExecutionID attaches an executionOrderId attribute from any
// displayable value.
func (e Element) WithExecutionID(id any) Element {
	return e.Attribute("executionOrderId", fmt.Sprint(id))
}

// FBD graph elements.

func InVariable() Element    { return newNegatable("inVariable") }
func OutVariable() Element   { return newNegatable("outVariable") }
func InOutVariable() Element { return newNegatable("inOutVariable") }
func Variable() Element      { return newNegatable("variable") }

func Interface() Element          { return newElement("interface") }
func LocalVars() Element          { return newElement("localVars") }
func AddData() Element            { return newElement("addData") }
func Data() Element               { return newElement("data") }
func TextDeclaration() Element    { return newElement("textDeclaration") }
func Position() Element           { return newElement("position") }
func RelPosition() Element        { return newElement("relPosition") }
func ConnectionPointIn() Element  { return newElement("connectionPointIn") }
func ConnectionPointOut() Element { return newElement("connectionPointOut") }
func Connection() Element         { return newElement("connection") }
func Block() Element              { return newElement("block") }
func Body() Element               { return newElement("body") }
func FBD() Element                { return newElement("FBD") }
func Pou() Element                { return newElement("pou") }
func InputVariables() Element     { return newElement("inputVariables") }
func OutputVariables() Element    { return newElement("outputVariables") }
func InOutVariables() Element     { return newElement("inOutVariables") }
func Return() Element             { return newElement("return") }
func Negated() Element            { return newElement("negated") }
func Connector() Element          { return newElement("connector") }
func Continuation() Element       { return newElement("continuation") }
func Jump() Element               { return newElement("jump") }
func Label() Element              { return newElement("label") }
func Action() Element             { return newElement("action") }
func Actions() Element            { return newElement("actions") }

func contentElement() Element { return newElement("content") }

// Expression builds the expression leaf carrying its text payload.
func Expression(expression string) Element {
	return newElement("expression").Content(expression)
}

// Project skeleton elements.

func FileHeader() Element    { return newElement(FileHeaderTag) }
func ContentHeader() Element { return newElement(ContentHeaderTag) }
func Types() Element         { return newElement(TypesTag) }

// Vendor project-structure elements.

func GlobalNamespace() Element { return newElement(GlobalNamespaceTag) }
func Instances() Element       { return newElement(InstancesTag) }
func Configuration() Element   { return newElement(ConfigurationTag) }
func Resource() Element        { return newElement(ResourceTag) }
func GlobalVars() Element      { return newElement(GlobalVarsTag) }

// Vendor data-type and POU elements.

func DataTypeDecl() Element   { return newElement("DataTypeDecl") }
func StructTypeSpec() Element { return newElement("StructTypeSpec") }
func Enumerator() Element     { return newElement("Enumerator") }
func BaseType() Element       { return newElement("BaseType") }
func Member() Element         { return newElement("Member") }
func TypeElem() Element       { return newElement("Type") }
func TypeName() Element       { return newElement("TypeName") }
func InitialValue() Element   { return newElement("InitialValue") }
func SimpleValue() Element    { return newElement("SimpleValue") }
func AddressElem() Element    { return newElement("Address") }
func ResultType() Element     { return newElement("ResultType") }

// Connect wires an incoming connection to another element by local id,
// hiding the connectionPointIn/connection nesting.
func (e Element) Connect(refLocalID int) Element {
	return e.Child(ConnectionPointIn().Child(Connection().WithRefID(refLocalID).Close()))
}

// ConnectName is Connect with an explicit formal parameter name.
func (e Element) ConnectName(refLocalID int, formalParameter string) Element {
	return e.Child(ConnectionPointIn().Child(
		Connection().WithRefID(refLocalID).Attribute("formalParameter", formalParameter).Close(),
	))
}

// ConnectOut wires an outgoing connection by local id.
func (e Element) ConnectOut(refLocalID int) Element {
	return e.Child(ConnectionPointOut().Child(Connection().WithRefID(refLocalID).Close()))
}

// WithExpression attaches the expression leaf for a graph variable.
func (e Element) WithExpression(expression string) Element {
	return e.Child(Expression(expression))
}

// Negate records logical negation in the element's vendor metadata.
func (e Element) Negate(value bool) Element {
	return e.Child(AddData().Child(Data().Child(
		Negated().Attribute("value", fmt.Sprint(value)).Close(),
	)))
}

// WithFBD wraps the children in the body/FBD pair.
func (e Element) WithFBD(children ...Element) Element {
	return e.Child(Body().Child(FBD().Children(children...)))
}

// WithActions wraps the children in an actions container.
func (e Element) WithActions(children ...Element) Element {
	return e.Child(Actions().Children(children...))
}

// PouInit builds a pou element with its interface scaffold: an empty
// localVars plus the vendor text declaration wrapped in
// addData/data/textDeclaration/content.
func PouInit(name, kind, declaration string) Element {
	return Pou().
		Attribute("xmlns", "http://www.plcopen.org/xml/tc6_0201").
		Attribute("name", name).
		Attribute("pouType", kind).
		Child(Interface().Children(
			LocalVars().Close(),
			AddData().Child(
				Data().
					Attribute("name", vendorDataName).
					Attribute("handleUnknown", "implementation").
					Child(TextDeclaration().Child(contentElement().Content(declaration))),
			),
		))
}

// ReturnInit builds a return element with its ids assigned.
func ReturnInit(localID, executionOrder int) Element {
	return Return().WithID(localID).WithExecutionID(executionOrder)
}

// BlockInit builds a block element with type name and ids assigned.
func BlockInit(typeName string, localID, executionOrderID int) Element {
	return Block().
		Attribute("typeName", typeName).
		WithID(localID).
		WithExecutionID(executionOrderID)
}

// WithInput attaches the block's input variable container.
func (e Element) WithInput(variables ...Element) Element {
	return e.Child(InputVariables().Children(variables...))
}

// WithOutput attaches the block's output variable container.
func (e Element) WithOutput(variables ...Element) Element {
	return e.Child(OutputVariables().Children(variables...))
}

// WithInOut attaches the block's in-out variable container.
func (e Element) WithInOut(variables ...Element) Element {
	return e.Child(InOutVariables().Children(variables...))
}

// TypeNamePair builds the Type/TypeName nesting around a type name.
func TypeNamePair(typeName string) Element {
	return TypeElem().Child(TypeName().Content(typeName))
}

// EnumTypeSpec builds the enum specification element. The schema mandates
// that BaseType is the last child, after all enumerators; this constructor
// places it there regardless of upstream construction order.
func EnumTypeSpec(enumerators []Element, baseTypeName string) Element {
	spec := newElement("EnumTypeWithNamedValueSpec").Children(enumerators...)
	return spec.Child(BaseType().Child(TypeName().Content(baseTypeName)))
}
