// Package coreast defines the uniform, language-agnostic AST used by every
// parser backend: a closed node-kind enumeration, an arena-indexed node
// type, and the source-span/attribute metadata attached to each node.
package coreast

// Kind is the closed set of uniform node tags every language lowering maps
// onto. A language-specific node kind with no entry in its lowering table
// becomes KindOpaque, carrying the original grammar's kind name in the
// "kind_name" attribute so it still participates in kind-equality matching.
type Kind int

const (
	KindUnknown Kind = iota
	KindModule
	KindClass
	KindFunction
	KindMethod
	KindConstructor
	KindParameter
	KindBlock
	KindIf
	KindLoop
	KindSwitch
	KindCase
	KindCall
	KindIdentifier
	KindLiteral
	KindOperator
	KindReturn
	KindAssignment
	KindDeclaration
	KindImport
	KindField
	KindErrorRecovery
	KindOpaque
)

//nolint:gochecknoglobals // fixed lookup table, read-only after init
var kindNames = map[Kind]string{
	KindUnknown:       "unknown",
	KindModule:        "module",
	KindClass:         "class",
	KindFunction:      "function",
	KindMethod:        "method",
	KindConstructor:   "constructor",
	KindParameter:     "parameter",
	KindBlock:         "block",
	KindIf:            "if",
	KindLoop:          "loop",
	KindSwitch:        "switch",
	KindCase:          "case",
	KindCall:          "call",
	KindIdentifier:    "identifier",
	KindLiteral:       "literal",
	KindOperator:      "operator",
	KindReturn:        "return",
	KindAssignment:    "assignment",
	KindDeclaration:   "declaration",
	KindImport:        "import",
	KindField:         "field",
	KindErrorRecovery: "error_recovery",
	KindOpaque:        "opaque",
}

// String returns the canonical lowercase name of the kind.
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}

// IsZeroWeight reports whether nodes of this kind are left out of
// similarity scoring. Error-recovery regions carry their span but are
// excluded from the tree-edit-distance kernel (spec §4.1).
func (k Kind) IsZeroWeight() bool {
	return k == KindErrorRecovery
}
