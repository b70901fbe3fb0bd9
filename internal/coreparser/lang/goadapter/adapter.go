// Package goadapter lowers Go source, via the standard library's own
// go/parser and go/ast, into the uniform AST defined by internal/coreast.
// Go is the one language in scope (spec §6) the teacher repository already
// parses natively; this adapter keeps that approach rather than routing Go
// through tree-sitter, generalizing the teacher's internal/ast package from
// a Go-specific Function/Parser pair into a lowering that feeds the shared
// coreast.Arena every other language adapter also produces.
package goadapter

import (
	"fmt"
	"go/ast"
	"go/parser"
	"go/scanner"
	"go/token"
	"sort"
	"strings"

	"github.com/paveg/comparego/internal/coreast"
	"github.com/paveg/comparego/internal/function"
)

// Diagnostic reports a recoverable parse problem. The caller (coreparser.Parser)
// decides whether diagnostics push the file into parse-failed.
type Diagnostic struct {
	Message string
	Line    int
}

// Parse parses Go source bytes into a coreast.Arena. Syntax errors produce
// error-recovery nodes rather than aborting: the file's functions before the
// error are still extracted, mirroring spec §4.1's error-recovery policy.
func Parse(filename string, src []byte) (*coreast.Arena, []Diagnostic, error) {
	fset := token.NewFileSet()

	file, err := parser.ParseFile(fset, filename, src, parser.ParseComments)
	if file == nil {
		return nil, nil, err
	}

	var diags []Diagnostic
	if err != nil {
		if errList, ok := err.(scanner.ErrorList); ok {
			for _, e := range errList {
				diags = append(diags, Diagnostic{Message: e.Msg, Line: e.Pos.Line})
			}
		} else {
			diags = append(diags, Diagnostic{Message: err.Error()})
		}
	}

	arena := coreast.NewArena(filename, "go")
	l := &lowerer{fset: fset, arena: arena, filename: filename}
	arena.Root = l.lowerFile(file)

	return arena, diags, nil
}

type lowerer struct {
	fset     *token.FileSet
	arena    *coreast.Arena
	filename string
}

func (l *lowerer) span(start, end token.Pos) coreast.Span {
	sp := l.fset.Position(start)
	ep := l.fset.Position(end)
	return coreast.Span{
		File: l.filename, StartLine: sp.Line, StartCol: sp.Column,
		EndLine: ep.Line, EndCol: ep.Column,
	}
}

func (l *lowerer) add(kind coreast.Kind, span coreast.Span, attrs map[string]string, children ...int) int {
	return l.arena.Add(coreast.Node{Kind: kind, Span: span, Attrs: attrs, Children: children})
}

func (l *lowerer) lowerFile(file *ast.File) int {
	var children []int
	for _, imp := range file.Imports {
		children = append(children, l.lowerImport(imp))
	}
	for _, decl := range file.Decls {
		switch d := decl.(type) {
		case *ast.FuncDecl:
			children = append(children, l.lowerFuncDecl(d))
		case *ast.GenDecl:
			if idx, ok := l.lowerGenDecl(d); ok {
				children = append(children, idx)
			}
		case *ast.BadDecl:
			children = append(children, l.add(coreast.KindErrorRecovery, l.span(d.Pos(), d.End()), nil))
		}
	}
	return l.add(coreast.KindModule, l.span(file.Package, file.End()), map[string]string{
		"package": file.Name.Name,
	}, children...)
}

func (l *lowerer) lowerImport(imp *ast.ImportSpec) int {
	path := ""
	if imp.Path != nil {
		path = strings.Trim(imp.Path.Value, `"`)
	}
	return l.add(coreast.KindImport, l.span(imp.Pos(), imp.End()), map[string]string{"text": path})
}

// lowerGenDecl only surfaces type declarations (they become class_id
// anchors for methods); var/const/import groups are not function-bearing
// and are skipped at this layer.
func (l *lowerer) lowerGenDecl(d *ast.GenDecl) (int, bool) {
	if d.Tok != token.TYPE {
		return 0, false
	}
	for _, spec := range d.Specs {
		ts, ok := spec.(*ast.TypeSpec)
		if !ok {
			continue
		}
		if _, isStruct := ts.Type.(*ast.StructType); isStruct {
			return l.add(coreast.KindClass, l.span(d.Pos(), d.End()), map[string]string{
				"text": ts.Name.Name,
			}), true
		}
		if _, isIface := ts.Type.(*ast.InterfaceType); isIface {
			return l.add(coreast.KindClass, l.span(d.Pos(), d.End()), map[string]string{
				"text": ts.Name.Name,
			}), true
		}
	}
	return 0, false
}

func (l *lowerer) lowerFuncDecl(fd *ast.FuncDecl) int {
	simple := fd.Name.Name
	classID := ""
	qualified := simple

	if fd.Recv != nil && len(fd.Recv.List) > 0 {
		recvType := typeString(fd.Recv.List[0].Type)
		classID = strings.TrimPrefix(recvType, "*")
		qualified = classID + "." + simple
	}

	attrs := map[string]string{
		function.AttrQualifiedName: qualified,
		function.AttrSimpleName:    simple,
		function.AttrClassID:       classID,
		function.AttrModifiers:     modifiersOf(fd, simple),
	}

	paramNames, paramTypes, paramDefaults, paramVariadic := paramsOf(fd.Type)
	attrs[function.AttrParamNames] = strings.Join(paramNames, ",")
	attrs[function.AttrParamTypes] = strings.Join(paramTypes, ",")
	attrs[function.AttrParamDefaults] = strings.Join(paramDefaults, ",")
	attrs[function.AttrParamVariadic] = strings.Join(paramVariadic, ",")
	attrs[function.AttrReturnType] = returnTypeOf(fd.Type)
	attrs[function.AttrGenericCount] = fmt.Sprintf("%d", genericCountOf(fd.Type))

	var children []int
	bodyIdx := -1
	if fd.Body != nil {
		bodyIdx = l.lowerBlock(fd.Body)
		children = append(children, bodyIdx)
	}
	attrs[function.AttrBodyRoot] = fmt.Sprintf("%d", bodyIdx)

	kind := coreast.KindFunction
	if classID != "" {
		kind = coreast.KindMethod
	}

	return l.add(kind, l.span(fd.Pos(), fd.End()), attrs, children...)
}

func modifiersOf(fd *ast.FuncDecl, name string) string {
	var mods []string
	if len(name) > 0 && name[0] >= 'A' && name[0] <= 'Z' {
		mods = append(mods, "public")
	} else {
		mods = append(mods, "private")
	}
	if fd.Recv != nil {
		if _, ok := fd.Recv.List[0].Type.(*ast.StarExpr); ok {
			mods = append(mods, "pointer-receiver")
		}
	}
	sort.Strings(mods)
	return strings.Join(mods, ",")
}

func genericCountOf(ft *ast.FuncType) int {
	if ft.TypeParams == nil {
		return 0
	}
	count := 0
	for _, f := range ft.TypeParams.List {
		if len(f.Names) == 0 {
			count++
			continue
		}
		count += len(f.Names)
	}
	return count
}

func paramsOf(ft *ast.FuncType) (names, types, defaults, variadic []string) {
	if ft.Params == nil {
		return nil, nil, nil, nil
	}
	for _, field := range ft.Params.List {
		typStr := typeString(field.Type)
		_, isVariadic := field.Type.(*ast.Ellipsis)
		nameList := field.Names
		if len(nameList) == 0 {
			names = append(names, "_")
			types = append(types, typStr)
			defaults = append(defaults, "0")
			variadic = append(variadic, boolFlag(isVariadic))
			continue
		}
		for _, n := range nameList {
			names = append(names, n.Name)
			types = append(types, typStr)
			defaults = append(defaults, "0")
			variadic = append(variadic, boolFlag(isVariadic))
		}
	}
	return names, types, defaults, variadic
}

func boolFlag(b bool) string {
	if b {
		return "1"
	}
	return "0"
}

func returnTypeOf(ft *ast.FuncType) string {
	if ft.Results == nil || len(ft.Results.List) == 0 {
		return "?"
	}
	var parts []string
	for _, r := range ft.Results.List {
		parts = append(parts, typeString(r.Type))
	}
	return strings.Join(parts, ",")
}

func typeString(expr ast.Expr) string {
	switch t := expr.(type) {
	case *ast.Ident:
		return t.Name
	case *ast.StarExpr:
		return "*" + typeString(t.X)
	case *ast.SelectorExpr:
		return typeString(t.X) + "." + t.Sel.Name
	case *ast.ArrayType:
		return "[]" + typeString(t.Elt)
	case *ast.Ellipsis:
		return "..." + typeString(t.Elt)
	case *ast.MapType:
		return "map[" + typeString(t.Key) + "]" + typeString(t.Value)
	case *ast.InterfaceType:
		return "interface{}"
	default:
		return "unknown"
	}
}

// lowerBlock and the expression/statement lowerers below map the subset of
// go/ast node types the teacher's own tree-edit-distance walk
// (internal/similarity/algorithm.go's getNodeChildren) already recognized,
// extended with uniform-kind tags instead of Go-specific type switches.
func (l *lowerer) lowerBlock(b *ast.BlockStmt) int {
	var children []int
	for _, stmt := range b.List {
		children = append(children, l.lowerStmt(stmt))
	}
	return l.add(coreast.KindBlock, l.span(b.Pos(), b.End()), nil, children...)
}

func (l *lowerer) lowerStmt(stmt ast.Stmt) int {
	switch s := stmt.(type) {
	case *ast.ReturnStmt:
		var children []int
		for _, r := range s.Results {
			children = append(children, l.lowerExpr(r))
		}
		return l.add(coreast.KindReturn, l.span(s.Pos(), s.End()), nil, children...)
	case *ast.AssignStmt:
		var children []int
		for _, lhs := range s.Lhs {
			children = append(children, l.lowerExpr(lhs))
		}
		for _, rhs := range s.Rhs {
			children = append(children, l.lowerExpr(rhs))
		}
		return l.add(coreast.KindAssignment, l.span(s.Pos(), s.End()), map[string]string{"text": s.Tok.String()}, children...)
	case *ast.ExprStmt:
		child := l.lowerExpr(s.X)
		return l.add(coreast.KindOpaque, l.span(s.Pos(), s.End()), map[string]string{"kind_name": "expr_stmt"}, child)
	case *ast.IfStmt:
		var children []int
		if s.Init != nil {
			children = append(children, l.lowerStmt(s.Init))
		}
		children = append(children, l.lowerExpr(s.Cond))
		children = append(children, l.lowerBlock(s.Body))
		if s.Else != nil {
			children = append(children, l.lowerStmt(s.Else))
		}
		return l.add(coreast.KindIf, l.span(s.Pos(), s.End()), nil, children...)
	case *ast.ForStmt:
		var children []int
		if s.Init != nil {
			children = append(children, l.lowerStmt(s.Init))
		}
		if s.Cond != nil {
			children = append(children, l.lowerExpr(s.Cond))
		}
		if s.Post != nil {
			children = append(children, l.lowerStmt(s.Post))
		}
		children = append(children, l.lowerBlock(s.Body))
		return l.add(coreast.KindLoop, l.span(s.Pos(), s.End()), map[string]string{"text": "for"}, children...)
	case *ast.RangeStmt:
		var children []int
		children = append(children, l.lowerExpr(s.X))
		children = append(children, l.lowerBlock(s.Body))
		return l.add(coreast.KindLoop, l.span(s.Pos(), s.End()), map[string]string{"text": "range"}, children...)
	case *ast.SwitchStmt:
		var children []int
		if s.Init != nil {
			children = append(children, l.lowerStmt(s.Init))
		}
		if s.Tag != nil {
			children = append(children, l.lowerExpr(s.Tag))
		}
		children = append(children, l.lowerBlock(s.Body))
		return l.add(coreast.KindSwitch, l.span(s.Pos(), s.End()), nil, children...)
	case *ast.CaseClause:
		var children []int
		for _, e := range s.List {
			children = append(children, l.lowerExpr(e))
		}
		for _, st := range s.Body {
			children = append(children, l.lowerStmt(st))
		}
		return l.add(coreast.KindCase, l.span(s.Pos(), s.End()), nil, children...)
	case *ast.BlockStmt:
		return l.lowerBlock(s)
	case *ast.DeclStmt:
		return l.add(coreast.KindDeclaration, l.span(s.Pos(), s.End()), nil)
	case *ast.BadStmt:
		return l.add(coreast.KindErrorRecovery, l.span(s.Pos(), s.End()), nil)
	default:
		return l.add(coreast.KindOpaque, l.span(stmt.Pos(), stmt.End()), map[string]string{
			"kind_name": fmt.Sprintf("%T", stmt),
		})
	}
}

func (l *lowerer) lowerExpr(expr ast.Expr) int {
	switch e := expr.(type) {
	case *ast.Ident:
		return l.add(coreast.KindIdentifier, l.span(e.Pos(), e.End()), map[string]string{"text": e.Name})
	case *ast.BasicLit:
		return l.add(coreast.KindLiteral, l.span(e.Pos(), e.End()), map[string]string{"text": e.Value, "kind_name": e.Kind.String()})
	case *ast.BinaryExpr:
		return l.add(coreast.KindOperator, l.span(e.Pos(), e.End()), map[string]string{"text": e.Op.String()},
			l.lowerExpr(e.X), l.lowerExpr(e.Y))
	case *ast.UnaryExpr:
		return l.add(coreast.KindOperator, l.span(e.Pos(), e.End()), map[string]string{"text": e.Op.String()}, l.lowerExpr(e.X))
	case *ast.CallExpr:
		children := []int{l.lowerExpr(e.Fun)}
		for _, a := range e.Args {
			children = append(children, l.lowerExpr(a))
		}
		return l.add(coreast.KindCall, l.span(e.Pos(), e.End()), nil, children...)
	case *ast.SelectorExpr:
		return l.add(coreast.KindOperator, l.span(e.Pos(), e.End()), map[string]string{"text": "."},
			l.lowerExpr(e.X), l.add(coreast.KindIdentifier, l.span(e.Sel.Pos(), e.Sel.End()), map[string]string{"text": e.Sel.Name}))
	case *ast.ParenExpr:
		return l.lowerExpr(e.X)
	case *ast.StarExpr:
		return l.add(coreast.KindOperator, l.span(e.Pos(), e.End()), map[string]string{"text": "*"}, l.lowerExpr(e.X))
	case *ast.BadExpr:
		return l.add(coreast.KindErrorRecovery, l.span(e.Pos(), e.End()), nil)
	default:
		return l.add(coreast.KindOpaque, l.span(expr.Pos(), expr.End()), map[string]string{
			"kind_name": fmt.Sprintf("%T", expr),
		})
	}
}
