// Package coreparser dispatches a source file to the grammar adapter for
// its language and lowers the result into a shared coreast.Arena, enforcing
// the size ceiling and per-file parse timeout spec.md §4.1 requires.
//
// Grounded on the teacher's internal/ast/parser.go: Parser.ParseFile /
// ParseFiles, the types.Result[*ParseResult] return shape is replaced with
// a plain (*ParseResult, error) pair, the ParseResult carrying the arena,
// the adapter's recoverable diagnostics and the language, because every
// adapter now reports its own diagnostics rather than a single terminal
// error.
package coreparser

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/paveg/comparego/internal/coreast"
	"github.com/paveg/comparego/internal/coreparser/lang/goadapter"
	"github.com/paveg/comparego/internal/coreparser/lang/jsts"
	"github.com/paveg/comparego/internal/coreparser/lang/treesitter"
	"github.com/paveg/comparego/internal/corerrors"
)

// Diagnostic is a recoverable parse problem surfaced from any adapter.
type Diagnostic struct {
	Message string
	Line    int
}

// Budget bounds one file's parse: spec.md §4.1's max_file_size_bytes and
// per_file_parse_timeout_ms.
type Budget struct {
	MaxFileSizeBytes int64
	Timeout          time.Duration
}

// Parser dispatches ParseFile calls to the registered language adapters.
type Parser struct {
	budget Budget
}

// NewParser builds a Parser enforcing the given budget.
func NewParser(budget Budget) *Parser {
	return &Parser{budget: budget}
}

// ParseResult is the outcome of parsing one file.
type ParseResult struct {
	Arena       *coreast.Arena
	Diagnostics []Diagnostic
	Language    string
}

// ParseFile reads path, detects or confirms its language, and lowers it
// into a coreast.Arena within the configured budget. langHint, if non-empty
// (from config language_overrides), takes precedence over detection.
func (p *Parser) ParseFile(ctx context.Context, path, langHint string) (*ParseResult, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", corerrors.ErrPathNotFound, path)
	}
	if p.budget.MaxFileSizeBytes > 0 && info.Size() > p.budget.MaxFileSizeBytes {
		return nil, fmt.Errorf("%w: %s is %d bytes", corerrors.ErrFileTooLarge, path, info.Size())
	}

	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", corerrors.ErrParseFailed, path)
	}

	lang := langHint
	if lang == "" {
		lang = DetectLanguage(path, src)
	}

	parseCtx := ctx
	var cancel context.CancelFunc
	if p.budget.Timeout > 0 {
		parseCtx, cancel = context.WithTimeout(ctx, p.budget.Timeout)
		defer cancel()
	}

	type parseOutcome struct {
		arena *coreast.Arena
		diags []Diagnostic
		err   error
	}

	done := make(chan parseOutcome, 1)
	go func() {
		arena, diags, err := dispatch(parseCtx, path, lang, src)
		done <- parseOutcome{arena, diags, err}
	}()

	select {
	case out := <-done:
		if out.err != nil {
			return nil, fmt.Errorf("%w: %s: %v", corerrors.ErrParseFailed, path, out.err)
		}
		return &ParseResult{Arena: out.arena, Diagnostics: out.diags, Language: lang}, nil
	case <-parseCtx.Done():
		return nil, fmt.Errorf("%w: %s", corerrors.ErrParseBudgetExceeded, path)
	}
}

func dispatch(ctx context.Context, path, lang string, src []byte) (*coreast.Arena, []Diagnostic, error) {
	switch lang {
	case "go":
		arena, diags, err := goadapter.Parse(path, src)
		return arena, convertGoDiags(diags), err
	case "javascript", "typescript":
		arena, diags, err := jsts.Parse(path, lang, src)
		return arena, convertJstsDiags(diags), err
	default:
		grammar, ok := treesitterGrammar(lang)
		if !ok {
			return nil, nil, fmt.Errorf("unsupported language %q", lang)
		}
		arena, diags, err := treesitter.Parse(ctx, path, lang, src, grammar)
		return arena, convertTSDiags(diags), err
	}
}

func treesitterGrammar(lang string) (treesitter.Grammar, bool) {
	switch lang {
	case "java":
		return treesitter.Java(), true
	case "c":
		return treesitter.C(), true
	case "cpp":
		return treesitter.Cpp(), true
	case "python":
		return treesitter.Python(), true
	case "rust":
		return treesitter.Rust(), true
	case "ruby":
		return treesitter.Ruby(), true
	case "php":
		return treesitter.PHP(), true
	case "swift":
		return treesitter.Swift(), true
	case "kotlin":
		return treesitter.Kotlin(), true
	default:
		return treesitter.Grammar{}, false
	}
}

func convertGoDiags(in []goadapter.Diagnostic) []Diagnostic {
	out := make([]Diagnostic, len(in))
	for i, d := range in {
		out[i] = Diagnostic{Message: d.Message, Line: d.Line}
	}
	return out
}

func convertJstsDiags(in []jsts.Diagnostic) []Diagnostic {
	out := make([]Diagnostic, len(in))
	for i, d := range in {
		out[i] = Diagnostic{Message: d.Message, Line: d.Line}
	}
	return out
}

func convertTSDiags(in []treesitter.Diagnostic) []Diagnostic {
	out := make([]Diagnostic, len(in))
	for i, d := range in {
		out[i] = Diagnostic{Message: d.Message, Line: d.Line}
	}
	return out
}
