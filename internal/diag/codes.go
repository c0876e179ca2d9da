package diag

import (
	"fmt"
)

type Code uint16

const (
	UnknownCode Code = 0

	// Scanner
	ScanInfo             Code = 1000
	ScanUnterminatedPou  Code = 1001
	ScanUnterminatedVar  Code = 1002
	ScanUnterminatedType Code = 1003
	ScanBadDeclaration   Code = 1004

	// XML generation: soft skips
	GenInfo               Code = 4000
	GenUnresolvedType     Code = 4001
	GenSynthesizedDecl    Code = 4002
	GenNotPublished       Code = 4003
	GenAnonymousType      Code = 4004
	GenEmptyStruct        Code = 4005
	GenUnsupportedPouKind Code = 4006
	GenExternalLinkage    Code = 4007
	GenBodyUnresolved     Code = 4008
	GenMissingDeclaration Code = 4009

	// XML generation: sub-pass failures
	GenAnchorMissing Code = 4100

	// I/O
	IOWriteFailed Code = 5000
)

func (c Code) String() string {
	return fmt.Sprintf("PLC%04d", uint16(c))
}
