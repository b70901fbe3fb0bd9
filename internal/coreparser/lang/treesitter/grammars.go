package treesitter

import (
	tscpp "github.com/smacker/go-tree-sitter/cpp"
	tsc "github.com/smacker/go-tree-sitter/c"
	tsjava "github.com/smacker/go-tree-sitter/java"
	tskotlin "github.com/smacker/go-tree-sitter/kotlin"
	tsphp "github.com/smacker/go-tree-sitter/php"
	tspython "github.com/smacker/go-tree-sitter/python"
	tsruby "github.com/smacker/go-tree-sitter/ruby"
	tsrust "github.com/smacker/go-tree-sitter/rust"
	tsswift "github.com/smacker/go-tree-sitter/swift"

	"github.com/paveg/comparego/internal/coreast"
)

// cLikeStatementKinds covers the structural node types shared across the
// curly-brace family (Java, C, C++), each grammar using the same tree-sitter
// node-type vocabulary for control flow.
func cLikeStatementKinds() map[string]coreast.Kind {
	return map[string]coreast.Kind{
		"block":                coreast.KindBlock,
		"compound_statement":   coreast.KindBlock,
		"if_statement":         coreast.KindIf,
		"for_statement":        coreast.KindLoop,
		"while_statement":      coreast.KindLoop,
		"do_statement":         coreast.KindLoop,
		"switch_statement":     coreast.KindSwitch,
		"switch_expression":    coreast.KindSwitch,
		"switch_block":         coreast.KindSwitch,
		"switch_block_statement_group": coreast.KindCase,
		"case":                 coreast.KindCase,
		"return_statement":     coreast.KindReturn,
		"method_invocation":    coreast.KindCall,
		"call_expression":      coreast.KindCall,
		"function_call":        coreast.KindCall,
		"assignment_expression": coreast.KindAssignment,
		"local_variable_declaration":  coreast.KindAssignment,
		"variable_declaration":        coreast.KindDeclaration,
		"declaration":                 coreast.KindDeclaration,
		"binary_expression":    coreast.KindOperator,
		"unary_expression":     coreast.KindOperator,
		"import_declaration":   coreast.KindImport,
		"preproc_include":      coreast.KindImport,
		"field_declaration":    coreast.KindField,
		"class_declaration":    coreast.KindClass,
		"interface_declaration": coreast.KindClass,
		"class_specifier":      coreast.KindClass,
		"struct_specifier":     coreast.KindClass,
	}
}

// Java grounds its per-language config on termfx-morfx's golang/python
// providers (same library, same walk shape), since termfx-morfx itself does
// not ship a Java provider.
func Java() Grammar {
	return Grammar{
		Language:  tsjava.GetLanguage(),
		NodeKinds: cLikeStatementKinds(),
		Functions: FunctionKinds{
			NodeTypes: map[string]coreast.Kind{
				"method_declaration":      coreast.KindMethod,
				"constructor_declaration": coreast.KindConstructor,
			},
			NameFieldTypes:      []string{"identifier"},
			ParamListType:       "formal_parameters",
			ParamTypes:          []string{"formal_parameter", "spread_parameter"},
			ParamNameTypes:      []string{"identifier"},
			ParamTypeFieldTypes: []string{"type_identifier", "void_type", "generic_type", "integral_type", "boolean_type", "array_type", "floating_point_type"},
			BodyType:            "block",
			ReturnTypeTypes:     []string{"type_identifier", "void_type", "generic_type", "integral_type", "boolean_type"},
		},
	}
}

func C() Grammar {
	return Grammar{
		Language:  tsc.GetLanguage(),
		NodeKinds: cLikeStatementKinds(),
		Functions: FunctionKinds{
			NodeTypes: map[string]coreast.Kind{
				"function_definition": coreast.KindFunction,
			},
			NameFieldTypes:      []string{"identifier"},
			ParamListType:       "parameter_list",
			ParamTypes:          []string{"parameter_declaration", "variadic_parameter"},
			ParamNameTypes:      []string{"identifier"},
			ParamTypeFieldTypes: []string{"primitive_type", "type_identifier", "sized_type_specifier", "struct_specifier", "union_specifier"},
			BodyType:            "compound_statement",
			ReturnTypeTypes:     []string{"primitive_type", "type_identifier", "sized_type_specifier"},
		},
	}
}

func Cpp() Grammar {
	return Grammar{
		Language:  tscpp.GetLanguage(),
		NodeKinds: cLikeStatementKinds(),
		Functions: FunctionKinds{
			NodeTypes: map[string]coreast.Kind{
				"function_definition": coreast.KindFunction,
			},
			NameFieldTypes:      []string{"identifier", "field_identifier", "destructor_name"},
			ParamListType:       "parameter_list",
			ParamTypes:          []string{"parameter_declaration", "optional_parameter", "variadic_parameter"},
			ParamNameTypes:      []string{"identifier"},
			ParamTypeFieldTypes: []string{"primitive_type", "type_identifier", "qualified_identifier", "template_type", "sized_type_specifier"},
			BodyType:            "compound_statement",
			ReturnTypeTypes:     []string{"primitive_type", "type_identifier", "qualified_identifier"},
			ReceiverListType:    "", // C++ methods are qualified via scope, not a receiver list
		},
	}
}

func Python() Grammar {
	return Grammar{
		Language: tspython.GetLanguage(),
		NodeKinds: map[string]coreast.Kind{
			"block":                coreast.KindBlock,
			"if_statement":         coreast.KindIf,
			"for_statement":        coreast.KindLoop,
			"while_statement":      coreast.KindLoop,
			"return_statement":     coreast.KindReturn,
			"call":                 coreast.KindCall,
			"assignment":           coreast.KindAssignment,
			"binary_operator":      coreast.KindOperator,
			"boolean_operator":     coreast.KindOperator,
			"import_statement":     coreast.KindImport,
			"import_from_statement": coreast.KindImport,
			"class_definition":     coreast.KindClass,
		},
		Functions: FunctionKinds{
			NodeTypes: map[string]coreast.Kind{
				"function_definition": coreast.KindFunction,
			},
			NameFieldTypes: []string{"identifier"},
			ParamListType:  "parameters",
			// Python's parameters node mixes bare identifier parameters
			// with typed/defaulted/splat variants, each its own node
			// type; matching only "identifier" silently dropped every
			// typed, defaulted, or splat parameter from extraction.
			ParamTypes:          []string{"identifier", "typed_parameter", "default_parameter", "typed_default_parameter", "list_splat_parameter", "dictionary_splat_parameter"},
			ParamNameTypes:      []string{"identifier"},
			ParamTypeFieldTypes: []string{"type"},
			BodyType:            "block",
			ReturnTypeTypes:     []string{"type"},
		},
	}
}

func Rust() Grammar {
	return Grammar{
		Language: tsrust.GetLanguage(),
		NodeKinds: map[string]coreast.Kind{
			"block":              coreast.KindBlock,
			"if_expression":      coreast.KindIf,
			"for_expression":     coreast.KindLoop,
			"while_expression":   coreast.KindLoop,
			"loop_expression":    coreast.KindLoop,
			"match_expression":   coreast.KindSwitch,
			"match_arm":          coreast.KindCase,
			"return_expression":  coreast.KindReturn,
			"call_expression":    coreast.KindCall,
			"assignment_expression": coreast.KindAssignment,
			"let_declaration":    coreast.KindDeclaration,
			"binary_expression":  coreast.KindOperator,
			"use_declaration":    coreast.KindImport,
			"struct_item":        coreast.KindClass,
			"impl_item":          coreast.KindClass,
			"trait_item":         coreast.KindClass,
		},
		Functions: FunctionKinds{
			NodeTypes: map[string]coreast.Kind{
				"function_item": coreast.KindFunction,
			},
			NameFieldTypes:      []string{"identifier"},
			ParamListType:       "parameters",
			ParamTypes:          []string{"parameter", "self_parameter", "variadic_parameter"},
			ParamNameTypes:      []string{"identifier"},
			ParamTypeFieldTypes: []string{"type_identifier", "primitive_type", "generic_type", "reference_type", "scoped_type_identifier"},
			BodyType:            "block",
			ReturnTypeTypes:     []string{"type_identifier", "primitive_type", "generic_type"},
		},
	}
}

func Ruby() Grammar {
	return Grammar{
		Language: tsruby.GetLanguage(),
		NodeKinds: map[string]coreast.Kind{
			"begin_block":   coreast.KindBlock,
			"body_statement": coreast.KindBlock,
			"if":            coreast.KindIf,
			"for":           coreast.KindLoop,
			"while":         coreast.KindLoop,
			"case":          coreast.KindSwitch,
			"when":          coreast.KindCase,
			"return":        coreast.KindReturn,
			"call":          coreast.KindCall,
			"assignment":    coreast.KindAssignment,
			"binary":        coreast.KindOperator,
			"class":         coreast.KindClass,
			"module":        coreast.KindClass,
		},
		Functions: FunctionKinds{
			NodeTypes: map[string]coreast.Kind{
				"method": coreast.KindMethod,
			},
			NameFieldTypes: []string{"identifier"},
			ParamListType:  "method_parameters",
			// Ruby's method_parameters mixes bare required-positional
			// identifiers with optional/keyword/splat variants, each its
			// own node type; matching only "identifier" silently dropped
			// every one of those from extraction.
			ParamTypes:     []string{"identifier", "optional_parameter", "keyword_parameter", "splat_parameter", "hash_splat_parameter", "block_parameter"},
			ParamNameTypes: []string{"identifier"},
			BodyType:       "body_statement",
			ReturnTypeTypes: nil,
		},
	}
}

func PHP() Grammar {
	return Grammar{
		Language: tsphp.GetLanguage(),
		NodeKinds: map[string]coreast.Kind{
			"compound_statement": coreast.KindBlock,
			"if_statement":       coreast.KindIf,
			"for_statement":      coreast.KindLoop,
			"while_statement":    coreast.KindLoop,
			"switch_statement":   coreast.KindSwitch,
			"case_statement":     coreast.KindCase,
			"return_statement":   coreast.KindReturn,
			"function_call_expression": coreast.KindCall,
			"member_call_expression":   coreast.KindCall,
			"assignment_expression":    coreast.KindAssignment,
			"binary_expression":        coreast.KindOperator,
			"namespace_use_declaration": coreast.KindImport,
			"class_declaration":         coreast.KindClass,
		},
		Functions: FunctionKinds{
			NodeTypes: map[string]coreast.Kind{
				"function_definition": coreast.KindFunction,
				"method_declaration":  coreast.KindMethod,
			},
			NameFieldTypes:      []string{"name"},
			ParamListType:       "formal_parameters",
			ParamTypes:          []string{"simple_parameter", "variadic_parameter", "property_promotion_parameter"},
			ParamNameTypes:      []string{"variable_name"},
			ParamTypeFieldTypes: []string{"primitive_type", "named_type", "optional_type", "union_type"},
			BodyType:            "compound_statement",
			ReturnTypeTypes:     []string{"primitive_type", "named_type"},
		},
	}
}

func Swift() Grammar {
	return Grammar{
		Language: tsswift.GetLanguage(),
		NodeKinds: map[string]coreast.Kind{
			"statements":      coreast.KindBlock,
			"if_statement":    coreast.KindIf,
			"for_statement":   coreast.KindLoop,
			"while_statement":  coreast.KindLoop,
			"guard_statement":  coreast.KindIf,
			"switch_statement": coreast.KindSwitch,
			"switch_entry":     coreast.KindCase,
			"call_expression":  coreast.KindCall,
			"import_declaration": coreast.KindImport,
			"class_declaration":  coreast.KindClass,
		},
		Functions: FunctionKinds{
			NodeTypes: map[string]coreast.Kind{
				"function_declaration": coreast.KindFunction,
				"init_declaration":     coreast.KindConstructor,
			},
			NameFieldTypes: []string{"simple_identifier"},
			// tree-sitter-swift wraps a function's parameters in a
			// parameter_clause, distinct from the individual parameter
			// nodes it contains; ParamListType previously named the item
			// type itself, which only ever found the first parameter's
			// own children rather than every sibling parameter.
			ParamListType:       "parameter_clause",
			ParamTypes:          []string{"parameter"},
			ParamNameTypes:      []string{"simple_identifier"},
			ParamTypeFieldTypes: []string{"user_type", "type_identifier", "array_type", "optional_type"},
			BodyType:            "function_body",
			ReturnTypeTypes:     []string{"user_type", "type_identifier"},
		},
	}
}

func Kotlin() Grammar {
	return Grammar{
		Language: tskotlin.GetLanguage(),
		NodeKinds: map[string]coreast.Kind{
			"block":             coreast.KindBlock,
			"if_expression":     coreast.KindIf,
			"for_statement":     coreast.KindLoop,
			"while_statement":   coreast.KindLoop,
			"when_expression":   coreast.KindSwitch,
			"when_entry":        coreast.KindCase,
			"call_expression":   coreast.KindCall,
			"assignment":        coreast.KindAssignment,
			"import_header":     coreast.KindImport,
			"class_declaration": coreast.KindClass,
		},
		Functions: FunctionKinds{
			NodeTypes: map[string]coreast.Kind{
				"function_declaration": coreast.KindFunction,
			},
			NameFieldTypes:      []string{"simple_identifier"},
			ParamListType:       "function_value_parameters",
			ParamTypes:          []string{"parameter"},
			ParamNameTypes:      []string{"simple_identifier"},
			ParamTypeFieldTypes: []string{"user_type", "type_identifier", "function_type", "nullable_type"},
			BodyType:            "function_body",
			ReturnTypeTypes:     []string{"user_type", "type_identifier"},
		},
	}
}
