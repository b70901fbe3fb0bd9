// Package treesitter lowers a tree-sitter parse tree into a coreast.Arena,
// shared by every grammar whose bindings come from
// github.com/smacker/go-tree-sitter. Each grammar only supplies a
// *sitter.Language and a NodeTable mapping its grammar's node type strings
// onto coreast.Kind plus the function-record attribute convention.
//
// Grounded on termfx-morfx's providers/base/provider.go walk
// (ChildCount/Child/Type/Content over *sitter.Node) and per-language
// providers/{golang,python,...}/config.go files, which show the same
// library used identically across a dozen grammars.
package treesitter

import (
	"context"
	"fmt"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/paveg/comparego/internal/coreast"
	"github.com/paveg/comparego/internal/function"
)

// Diagnostic reports one ERROR/MISSING node tree-sitter recovered from.
type Diagnostic struct {
	Message string
	Line    int
}

// FunctionKinds names the grammar's node type(s) that denote a
// function/method/constructor declaration, and how to pull the pieces of a
// function-record attribute set out of that node's named children.
type FunctionKinds struct {
	// NodeTypes are the grammar node types lowered to KindFunction/
	// KindMethod (e.g. "function_declaration", "method_declaration").
	NodeTypes map[string]coreast.Kind
	// NameField is the grammar's field/child node type carrying the
	// function's simple name (e.g. "identifier").
	NameFieldTypes []string
	// ParamListType is the grammar node type of the parameter list.
	ParamListType string
	// ParamTypes are the grammar node type(s) of one parameter inside the
	// list — more than one when the grammar gives typed, defaulted, or
	// variadic parameters their own distinct node type (e.g. Python's
	// default_parameter/typed_default_parameter/list_splat_parameter
	// alongside its plain identifier parameters).
	ParamTypes []string
	// ParamNameTypes are node types, in precedence order, that hold a
	// parameter's declared name somewhere inside a ParamTypes node (the
	// node itself, if its own type is already in ParamNameTypes).
	ParamNameTypes []string
	// ParamTypeFieldTypes are node types that hold a parameter's declared
	// type inside a ParamTypes node. Empty means this grammar's
	// parameters carry no separately-lowered type (Param.Type stays "?").
	ParamTypeFieldTypes []string
	// BodyType is the grammar node type of the function body block.
	BodyType string
	// ReturnTypeTypes are node types that, if found as a direct sibling
	// after the parameter list, represent the declared return type.
	ReturnTypeTypes []string
	// ReceiverListType, if non-empty, is a grammar node type (Go-style
	// method receiver list) whose presence marks the declaration a method
	// and contributes ContainingClassID.
	ReceiverListType string
}

// Grammar bundles a tree-sitter language with the generic node-kind table
// and function-extraction conventions needed to lower it.
type Grammar struct {
	Language  *sitter.Language
	NodeKinds map[string]coreast.Kind // generic statement/expression kinds
	Functions FunctionKinds
}

// Parse parses src with g and lowers the resulting tree into a coreast.Arena.
func Parse(ctx context.Context, filename, language string, src []byte, g Grammar) (*coreast.Arena, []Diagnostic, error) {
	parser := sitter.NewParser()
	parser.SetLanguage(g.Language)

	tree, err := parser.ParseCtx(ctx, nil, src)
	if err != nil {
		return nil, nil, err
	}

	arena := coreast.NewArena(filename, language)
	l := &lowerer{arena: arena, src: src, filename: filename, grammar: g}

	var diags []Diagnostic
	l.collectDiagnostics(tree.RootNode(), &diags)

	arena.Root = l.lower(tree.RootNode())

	return arena, diags, nil
}

type lowerer struct {
	arena    *coreast.Arena
	src      []byte
	filename string
	grammar  Grammar
}

func (l *lowerer) collectDiagnostics(n *sitter.Node, diags *[]Diagnostic) {
	if n == nil {
		return
	}
	if n.Type() == "ERROR" || n.IsMissing() {
		*diags = append(*diags, Diagnostic{
			Message: fmt.Sprintf("syntax error near %q", n.Type()),
			Line:    int(n.StartPoint().Row) + 1,
		})
	}
	for i := range int(n.ChildCount()) {
		l.collectDiagnostics(n.Child(i), diags)
	}
}

func (l *lowerer) spanOf(n *sitter.Node) coreast.Span {
	sp := n.StartPoint()
	ep := n.EndPoint()
	return coreast.Span{
		File: l.filename, StartLine: int(sp.Row) + 1, StartCol: int(sp.Column),
		EndLine: int(ep.Row) + 1, EndCol: int(ep.Column),
	}
}

// lower dispatches a grammar node to either the function-declaration path
// (which populates the internal/function attribute convention) or the
// generic structural lowering.
func (l *lowerer) lower(n *sitter.Node) int {
	if n == nil {
		return l.arena.Add(coreast.Node{Kind: coreast.KindErrorRecovery})
	}

	if n.Type() == "ERROR" {
		return l.lowerErrorRecovery(n)
	}

	if kind, ok := l.grammar.Functions.NodeTypes[n.Type()]; ok {
		return l.lowerFunction(n, kind)
	}

	if n.Type() == "identifier" || strings.HasSuffix(n.Type(), "_identifier") {
		return l.arena.Add(coreast.Node{
			Kind: coreast.KindIdentifier, Span: l.spanOf(n),
			Attrs: map[string]string{"text": n.Content(l.src)},
		})
	}

	if isLiteralType(n.Type()) {
		return l.arena.Add(coreast.Node{
			Kind: coreast.KindLiteral, Span: l.spanOf(n),
			Attrs: map[string]string{"text": n.Content(l.src), "kind_name": n.Type()},
		})
	}

	kind, ok := l.grammar.NodeKinds[n.Type()]
	if !ok {
		kind = coreast.KindOpaque
	}

	var children []int
	for i := range int(n.ChildCount()) {
		child := n.Child(i)
		if !child.IsNamed() {
			continue
		}
		children = append(children, l.lower(child))
	}

	attrs := map[string]string{}
	if kind == coreast.KindOpaque {
		attrs["kind_name"] = n.Type()
	}
	if len(children) == 0 {
		attrs["text"] = n.Content(l.src)
	}

	return l.arena.Add(coreast.Node{Kind: kind, Span: l.spanOf(n), Attrs: attrs, Children: children})
}

func (l *lowerer) lowerErrorRecovery(n *sitter.Node) int {
	return l.arena.Add(coreast.Node{
		Kind: coreast.KindErrorRecovery, Span: l.spanOf(n),
		Attrs: map[string]string{"text": n.Content(l.src)},
	})
}

func isLiteralType(t string) bool {
	return strings.HasSuffix(t, "_literal") || t == "string" || t == "number" || t == "true" || t == "false" || t == "nil" || t == "null"
}

// lowerFunction populates the internal/function attribute convention on a
// KindFunction/KindMethod node, then lowers its body as an ordinary child
// subtree.
func (l *lowerer) lowerFunction(n *sitter.Node, kind coreast.Kind) int {
	fk := l.grammar.Functions

	simple := ""
	for i := range int(n.ChildCount()) {
		child := n.Child(i)
		if containsType(fk.NameFieldTypes, child.Type()) {
			simple = child.Content(l.src)
			break
		}
	}

	classID := ""
	if fk.ReceiverListType != "" {
		if recv := findChildOfType(n, fk.ReceiverListType); recv != nil {
			classID = strings.TrimPrefix(strings.TrimSpace(recv.Content(l.src)), "*")
			kind = coreast.KindMethod
		}
	}

	qualified := simple
	if classID != "" {
		qualified = classID + "." + simple
	}

	var names, types, defaults, variadic []string
	if fk.ParamListType != "" {
		if list := findChildOfType(n, fk.ParamListType); list != nil {
			for i := range int(list.ChildCount()) {
				p := list.Child(i)
				if !containsType(fk.ParamTypes, p.Type()) {
					continue
				}
				pname, ptype, hasDefault, isVariadic := l.lowerParam(p, fk)
				names = append(names, pname)
				types = append(types, ptype)
				defaults = append(defaults, boolFlag(hasDefault))
				variadic = append(variadic, boolFlag(isVariadic))
			}
		}
	}

	returnType := "?"
	for i := range int(n.ChildCount()) {
		child := n.Child(i)
		if containsType(fk.ReturnTypeTypes, child.Type()) {
			returnType = child.Content(l.src)
			break
		}
	}

	attrs := map[string]string{
		function.AttrQualifiedName: qualified,
		function.AttrSimpleName:    simple,
		function.AttrClassID:       classID,
		function.AttrReturnType:    returnType,
		function.AttrModifiers:     "",
		function.AttrGenericCount:  "0",
		function.AttrParamNames:    strings.Join(names, ","),
		function.AttrParamTypes:    strings.Join(types, ","),
		function.AttrParamDefaults: strings.Join(defaults, ","),
		function.AttrParamVariadic: strings.Join(variadic, ","),
	}

	bodyIdx := -1
	if fk.BodyType != "" {
		if body := findChildOfType(n, fk.BodyType); body != nil {
			bodyIdx = l.lower(body)
		}
	}
	attrs[function.AttrBodyRoot] = fmt.Sprintf("%d", bodyIdx)

	var children []int
	if bodyIdx >= 0 {
		children = append(children, bodyIdx)
	}

	return l.arena.Add(coreast.Node{Kind: kind, Span: l.spanOf(n), Attrs: attrs, Children: children})
}

// lowerParam extracts a parameter's name, declared type, and its
// default/variadic status from p, one of the node types listed in
// fk.ParamTypes. Name and type are located by searching p's direct
// children first, then its full subtree, since some grammars nest the
// name inside a declarator (C's pointer_declarator, Java's
// variable_declarator on a spread_parameter) rather than holding it as
// an immediate child the way Python/Ruby/Rust do.
func (l *lowerer) lowerParam(p *sitter.Node, fk FunctionKinds) (name, typ string, hasDefault, isVariadic bool) {
	hasDefault, isVariadic = paramFlags(p.Type())
	switch p.Type() {
	case "keyword_parameter": // Ruby: "name:" (required) vs "name: default" (optional)
		hasDefault = namedChildCount(p) > 1
	case "simple_parameter", "parameter": // PHP/Swift/Kotlin fold defaults into the plain node
		if hasEqualsChild(p) {
			hasDefault = true
		}
	}

	if containsType(fk.ParamNameTypes, p.Type()) {
		name = p.Content(l.src)
	} else if found := findDescendantOfType(p, fk.ParamNameTypes); found != nil {
		name = found.Content(l.src)
	}
	if name == "" {
		switch p.Type() {
		case "self_parameter":
			name = "self"
		default:
			name = "_"
		}
	}

	typ = "?"
	if len(fk.ParamTypeFieldTypes) > 0 {
		if found := findDescendantOfType(p, fk.ParamTypeFieldTypes); found != nil {
			typ = found.Content(l.src)
		}
	}

	return name, typ, hasDefault, isVariadic
}

// paramFlags maps a parameter node's own grammar type to the
// default/variadic status that type implies, for the grammars that give
// defaulted or variadic parameters a distinct node type of their own.
// Tree-sitter node-type vocabularies are grammar-specific and do not
// collide across the languages this package wraps, so one switch serves
// all of them, the same way jsts's lowerParam switches on
// assignment_pattern/rest_pattern for JS/TS.
func paramFlags(t string) (hasDefault, isVariadic bool) {
	switch t {
	case "spread_parameter", // Java varargs: String... args
		"variadic_parameter",         // C/C++/Rust/PHP: int x, ...
		"list_splat_parameter",       // Python: *args
		"dictionary_splat_parameter", // Python: **kwargs
		"splat_parameter",            // Ruby: *args
		"hash_splat_parameter":       // Ruby: **kwargs
		return false, true
	case "default_parameter", "typed_default_parameter", // Python: x=1, x: int=1
		"optional_parameter": // C++/Ruby: int x = 1 / x = 1
		return true, false
	}
	return false, false
}

func boolFlag(b bool) string {
	if b {
		return "1"
	}
	return "0"
}

func namedChildCount(n *sitter.Node) int {
	count := 0
	for i := range int(n.ChildCount()) {
		if n.Child(i).IsNamed() {
			count++
		}
	}
	return count
}

// hasEqualsChild reports whether n has a direct "=" token child, the
// signal grammars that fold defaulted parameters into their plain
// parameter node type (PHP's simple_parameter, Swift/Kotlin's parameter)
// use instead of a separate node type.
func hasEqualsChild(n *sitter.Node) bool {
	for i := range int(n.ChildCount()) {
		if n.Child(i).Type() == "=" {
			return true
		}
	}
	return false
}

func containsType(types []string, t string) bool {
	for _, want := range types {
		if want == t {
			return true
		}
	}
	return false
}

func findChildOfType(n *sitter.Node, t string) *sitter.Node {
	for i := range int(n.ChildCount()) {
		c := n.Child(i)
		if c.Type() == t {
			return c
		}
	}
	return nil
}

// findDescendantOfType searches n's direct children for a node whose type
// is in types, then falls back to a full subtree search — a shallow
// match wins even when found deeper in the tree, since a type or name
// field is never nested under a node of its own kind.
func findDescendantOfType(n *sitter.Node, types []string) *sitter.Node {
	if len(types) == 0 {
		return nil
	}
	for i := range int(n.ChildCount()) {
		c := n.Child(i)
		if containsType(types, c.Type()) {
			return c
		}
	}
	for i := range int(n.ChildCount()) {
		if found := findDescendantOfType(n.Child(i), types); found != nil {
			return found
		}
	}
	return nil
}
