// Package jsts lowers JavaScript and TypeScript source into a
// coreast.Arena using the official tree-sitter bindings
// (github.com/tree-sitter/go-tree-sitter +
// github.com/tree-sitter/tree-sitter-javascript), a second binding
// ecosystem from the one internal/coreparser/lang/treesitter wraps.
// TypeScript is parsed with the JavaScript grammar, the same
// fallback sebthom-codecontext's parser manager uses while noting
// TypeScript's own official bindings are not wired up.
//
// Grounded on sebthom-codecontext's internal/parser/manager.go
// (initLanguages, convertTreeSitterNode): sitter.NewLanguage(lang),
// sitter.NewParser(), parser.Parse(src, nil), node.Kind()/ChildCount()/
// Child(uint)/StartPosition()/EndPosition()/StartByte()/EndByte().
package jsts

import (
	"fmt"
	"strings"

	sitter "github.com/tree-sitter/go-tree-sitter"
	javascript "github.com/tree-sitter/tree-sitter-javascript/bindings/go"

	"github.com/paveg/comparego/internal/coreast"
	"github.com/paveg/comparego/internal/function"
)

// Diagnostic reports one ERROR/MISSING node tree-sitter recovered from.
type Diagnostic struct {
	Message string
	Line    int
}

var nodeKinds = map[string]coreast.Kind{
	"statement_block":     coreast.KindBlock,
	"if_statement":        coreast.KindIf,
	"for_statement":       coreast.KindLoop,
	"for_in_statement":    coreast.KindLoop,
	"while_statement":     coreast.KindLoop,
	"do_statement":        coreast.KindLoop,
	"switch_statement":    coreast.KindSwitch,
	"switch_case":         coreast.KindCase,
	"switch_default":      coreast.KindCase,
	"return_statement":    coreast.KindReturn,
	"call_expression":     coreast.KindCall,
	"new_expression":      coreast.KindCall,
	"assignment_expression": coreast.KindAssignment,
	"variable_declaration":  coreast.KindDeclaration,
	"lexical_declaration":   coreast.KindDeclaration,
	"binary_expression":   coreast.KindOperator,
	"unary_expression":    coreast.KindOperator,
	"import_statement":    coreast.KindImport,
	"class_declaration":   coreast.KindClass,
	"method_definition":   coreast.KindMethod,
	"pair":                coreast.KindField,
}

var functionNodeTypes = map[string]coreast.Kind{
	"function_declaration":    coreast.KindFunction,
	"generator_function_declaration": coreast.KindFunction,
	"method_definition":       coreast.KindMethod,
}

// Parse parses JS/TS source and lowers it into a coreast.Arena.
func Parse(filename, language string, src []byte) (*coreast.Arena, []Diagnostic, error) {
	lang := sitter.NewLanguage(javascript.Language())
	parser := sitter.NewParser()
	if err := parser.SetLanguage(lang); err != nil {
		return nil, nil, err
	}

	tree := parser.Parse(src, nil)
	if tree == nil || tree.RootNode() == nil {
		return nil, nil, fmt.Errorf("jsts: parser produced no tree for %s", filename)
	}

	arena := coreast.NewArena(filename, language)
	l := &lowerer{arena: arena, src: src, filename: filename}

	var diags []Diagnostic
	l.collectDiagnostics(tree.RootNode(), &diags)

	arena.Root = l.lower(tree.RootNode())

	return arena, diags, nil
}

type lowerer struct {
	arena    *coreast.Arena
	src      []byte
	filename string
}

func (l *lowerer) text(n *sitter.Node) string {
	start, end := int(n.StartByte()), int(n.EndByte())
	if start < 0 || end > len(l.src) || start > end {
		return ""
	}
	return string(l.src[start:end])
}

func (l *lowerer) span(n *sitter.Node) coreast.Span {
	sp, ep := n.StartPosition(), n.EndPosition()
	return coreast.Span{
		File: l.filename, StartLine: int(sp.Row) + 1, StartCol: int(sp.Column),
		EndLine: int(ep.Row) + 1, EndCol: int(ep.Column),
	}
}

func (l *lowerer) collectDiagnostics(n *sitter.Node, diags *[]Diagnostic) {
	if n == nil {
		return
	}
	if n.IsError() || n.IsMissing() {
		sp := n.StartPosition()
		*diags = append(*diags, Diagnostic{
			Message: fmt.Sprintf("syntax error near %q", n.Kind()),
			Line:    int(sp.Row) + 1,
		})
	}
	for i := range int(n.ChildCount()) {
		l.collectDiagnostics(n.Child(uint(i)), diags)
	}
}

func (l *lowerer) lower(n *sitter.Node) int {
	if n == nil {
		return l.arena.Add(coreast.Node{Kind: coreast.KindErrorRecovery})
	}

	if n.IsError() {
		return l.arena.Add(coreast.Node{
			Kind: coreast.KindErrorRecovery, Span: l.span(n),
			Attrs: map[string]string{"text": l.text(n)},
		})
	}

	if kind, ok := functionNodeTypes[n.Kind()]; ok {
		return l.lowerFunction(n, kind)
	}

	if n.Kind() == "identifier" || n.Kind() == "property_identifier" || n.Kind() == "shorthand_property_identifier" {
		return l.arena.Add(coreast.Node{
			Kind: coreast.KindIdentifier, Span: l.span(n),
			Attrs: map[string]string{"text": l.text(n)},
		})
	}

	if isLiteral(n.Kind()) {
		return l.arena.Add(coreast.Node{
			Kind: coreast.KindLiteral, Span: l.span(n),
			Attrs: map[string]string{"text": l.text(n), "kind_name": n.Kind()},
		})
	}

	kind, ok := nodeKinds[n.Kind()]
	if !ok {
		kind = coreast.KindOpaque
	}

	var children []int
	for i := range int(n.ChildCount()) {
		child := n.Child(uint(i))
		if child == nil || !child.IsNamed() {
			continue
		}
		children = append(children, l.lower(child))
	}

	attrs := map[string]string{}
	if kind == coreast.KindOpaque {
		attrs["kind_name"] = n.Kind()
	}
	if len(children) == 0 {
		attrs["text"] = l.text(n)
	}

	return l.arena.Add(coreast.Node{Kind: kind, Span: l.span(n), Attrs: attrs, Children: children})
}

func isLiteral(kind string) bool {
	return strings.HasSuffix(kind, "literal") || kind == "string" || kind == "true" || kind == "false" || kind == "null" || kind == "number" || kind == "template_string"
}

func (l *lowerer) lowerFunction(n *sitter.Node, kind coreast.Kind) int {
	simple := ""
	for i := range int(n.ChildCount()) {
		child := n.Child(uint(i))
		if child != nil && (child.Kind() == "identifier" || child.Kind() == "property_identifier") {
			simple = l.text(child)
			break
		}
	}

	classID := ""
	if kind == coreast.KindMethod {
		classID = l.classIDOf(n)
	}
	qualified := simple
	if classID != "" {
		qualified = classID + "." + simple
	}

	var names, types, defaults, variadic []string
	var paramsNode *sitter.Node
	for i := range int(n.ChildCount()) {
		child := n.Child(uint(i))
		if child != nil && child.Kind() == "formal_parameters" {
			paramsNode = child
			break
		}
	}
	if paramsNode != nil {
		for i := range int(paramsNode.ChildCount()) {
			p := paramsNode.Child(uint(i))
			if p == nil || !p.IsNamed() {
				continue
			}
			name, hasDefault, isRest := l.lowerParam(p)
			names = append(names, name)
			types = append(types, "?")
			defaults = append(defaults, boolFlag(hasDefault))
			variadic = append(variadic, boolFlag(isRest))
		}
	}

	var bodyIdx = -1
	for i := range int(n.ChildCount()) {
		child := n.Child(uint(i))
		if child != nil && child.Kind() == "statement_block" {
			bodyIdx = l.lower(child)
			break
		}
	}

	attrs := map[string]string{
		function.AttrQualifiedName: qualified,
		function.AttrSimpleName:    simple,
		function.AttrClassID:       classID,
		function.AttrReturnType:    "?",
		function.AttrModifiers:     "",
		function.AttrGenericCount:  "0",
		function.AttrParamNames:    strings.Join(names, ","),
		function.AttrParamTypes:    strings.Join(types, ","),
		function.AttrParamDefaults: strings.Join(defaults, ","),
		function.AttrParamVariadic: strings.Join(variadic, ","),
		function.AttrBodyRoot:      fmt.Sprintf("%d", bodyIdx),
	}

	var children []int
	if bodyIdx >= 0 {
		children = append(children, bodyIdx)
	}

	return l.arena.Add(coreast.Node{Kind: kind, Span: l.span(n), Attrs: attrs, Children: children})
}

func (l *lowerer) lowerParam(p *sitter.Node) (name string, hasDefault, isRest bool) {
	switch p.Kind() {
	case "identifier":
		return l.text(p), false, false
	case "assignment_pattern":
		if left := p.Child(0); left != nil {
			return l.text(left), true, false
		}
	case "rest_pattern":
		if inner := p.Child(uint(p.ChildCount() - 1)); inner != nil {
			return l.text(inner), false, true
		}
	}
	return l.text(p), false, false
}

func boolFlag(b bool) string {
	if b {
		return "1"
	}
	return "0"
}

// classIDOf walks up to find the nearest enclosing class_declaration's name
// via the parent chain tree-sitter exposes (method_definition -> class_body
// -> class_declaration).
func (l *lowerer) classIDOf(n *sitter.Node) string {
	parent := n.Parent()
	for parent != nil {
		if parent.Kind() == "class_declaration" || parent.Kind() == "class" {
			for i := range int(parent.ChildCount()) {
				c := parent.Child(uint(i))
				if c != nil && c.Kind() == "identifier" {
					return l.text(c)
				}
			}
		}
		parent = parent.Parent()
	}
	return ""
}
