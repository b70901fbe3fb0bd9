package function

import (
	"strconv"
	"strings"

	"github.com/paveg/comparego/internal/coreast"
)

// Attribute keys a language adapter attaches to a function/method/
// constructor node so Extract can build a Record without any
// language-specific knowledge. Adapters own the actual grammar walk;
// this package only knows the shared convention.
const (
	AttrQualifiedName = "qualified_name"
	AttrSimpleName    = "simple_name"
	AttrReturnType    = "return_type"
	AttrModifiers     = "modifiers"     // comma-joined, unsorted ok
	AttrGenericCount  = "generic_count" // decimal
	AttrClassID       = "class_id"      // "" if free function
	AttrParamNames    = "param_names"   // comma-joined
	AttrParamTypes    = "param_types"   // comma-joined, aligned with names
	AttrParamDefaults = "param_defaults" // comma-joined "1"/"0"
	AttrParamVariadic = "param_variadic" // comma-joined "1"/"0", only last may be "1"
	AttrAnonymous     = "anonymous"      // "1" if the closure has no name
	AttrBodyRoot      = "body_root"      // decimal arena index, "-1" if none
)

// Extract walks arena in pre-order from its root, emitting one Record per
// named function/method/constructor node. Emission order matches the
// pre-order walk, so nested functions are emitted after their enclosing
// function (spec §4.2). Anonymous closures (AttrAnonymous == "1") are
// skipped.
func Extract(arena *coreast.Arena) []*Record {
	if arena == nil || arena.Root < 0 {
		return nil
	}

	var records []*Record
	counter := 0

	arena.Walk(arena.Root, func(idx int, n *coreast.Node) bool {
		switch n.Kind {
		case coreast.KindFunction, coreast.KindMethod, coreast.KindConstructor:
			if anon, _ := n.Attr(AttrAnonymous); anon == "1" {
				return true
			}
			counter++
			records = append(records, buildRecord(arena, idx, n, counter))
		}
		return true
	})

	return records
}

func buildRecord(arena *coreast.Arena, idx int, n *coreast.Node, ordinal int) *Record {
	qualified, _ := n.Attr(AttrQualifiedName)
	simple, _ := n.Attr(AttrSimpleName)
	ret, ok := n.Attr(AttrReturnType)
	if !ok || ret == "" {
		ret = "?"
	}

	genCount := 0
	if gc, ok := n.Attr(AttrGenericCount); ok {
		genCount, _ = strconv.Atoi(gc)
	}

	classID, _ := n.Attr(AttrClassID)

	bodyRoot := -1
	if br, ok := n.Attr(AttrBodyRoot); ok {
		bodyRoot, _ = strconv.Atoi(br)
	}

	r := &Record{
		ID:                arena.File + "#" + strconv.Itoa(ordinal),
		QualifiedName:     qualified,
		SimpleName:        simple,
		ReturnType:        ret,
		GenericParamCount: genCount,
		ContainingClassID: classID,
		File:              arena.File,
		StartLine:         n.Span.StartLine,
		EndLine:           n.Span.EndLine,
		Arena:             arena,
		BodyRoot:          bodyRoot,
		Params:            buildParams(n),
	}

	if mods, ok := n.Attr(AttrModifiers); ok && mods != "" {
		r.SetModifiers(strings.Split(mods, ","))
	} else {
		r.SetModifiers(nil)
	}

	return r
}

func buildParams(n *coreast.Node) []Param {
	names := splitCSV(n, AttrParamNames)
	types := splitCSV(n, AttrParamTypes)
	defaults := splitCSV(n, AttrParamDefaults)
	variadic := splitCSV(n, AttrParamVariadic)

	count := len(names)
	if len(types) > count {
		count = len(types)
	}

	params := make([]Param, 0, count)
	for i := range count {
		p := Param{Type: "?"}
		if i < len(names) {
			p.Name = names[i]
		}
		if i < len(types) && types[i] != "" {
			p.Type = types[i]
		}
		if i < len(defaults) {
			p.HasDefault = defaults[i] == "1"
		}
		if i < len(variadic) {
			p.Variadic = variadic[i] == "1"
		}
		params = append(params, p)
	}
	return params
}

func splitCSV(n *coreast.Node, attr string) []string {
	v, ok := n.Attr(attr)
	if !ok || v == "" {
		return nil
	}
	return strings.Split(v, ",")
}
