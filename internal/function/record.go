// Package function defines the cross-language function record extracted
// from a parsed AST: signature metadata, body/signature hashes, and the
// location data the matcher and comparison context key off of.
package function

import (
	"crypto/sha256"
	"encoding/hex"
	"sort"
	"strings"

	"github.com/paveg/comparego/internal/coreast"
)

// Param is one parameter in a function's declared signature.
type Param struct {
	Name          string
	Type          string // "?" if the language/grammar did not declare one
	HasDefault    bool
	Variadic      bool
}

// Record is one function, method, constructor, or named closure extracted
// from a corpus (spec §3, "Function record").
type Record struct {
	ID                string // stable within this corpus
	QualifiedName     string // class id + "." + simple name; the simple name alone for free functions
	SimpleName        string
	Params            []Param
	ReturnType        string // "?" if undeclared
	Modifiers         []string
	GenericParamCount int
	File              string
	StartLine         int
	EndLine           int
	ContainingClassID string // "" if not a method

	Arena    *coreast.Arena
	BodyRoot int // arena index of the body subtree, -1 if none (e.g. interface stub)

	bodyHash      string
	signatureHash string
}

// Modifiers are stored sorted (spec §4.2: "Modifiers are stored as a sorted
// set"). SetModifiers normalizes the slice in place.
func (r *Record) SetModifiers(mods []string) {
	sorted := append([]string(nil), mods...)
	sort.Strings(sorted)
	r.Modifiers = sorted
}

// HasBody reports whether the record has an analyzable body (interface/
// abstract method stubs do not).
func (r *Record) HasBody() bool {
	return r.BodyRoot >= 0 && r.Arena != nil
}

// LineCount returns the number of source lines the function spans.
func (r *Record) LineCount() int {
	return r.EndLine - r.StartLine + 1
}

// NormalizedSignature is the tuple spec §4.2 defines for the signature
// hash: qualified name, sorted modifiers, parameter types in order
// (trimmed/canonical-whitespaced/lowercased), and return type. Parameter
// names are deliberately excluded here — they are preserved for similarity
// scoring (internal/signature) but not for hashing.
func (r *Record) NormalizedSignature() string {
	var b strings.Builder
	b.WriteString(r.QualifiedName)
	b.WriteByte('|')
	b.WriteString(strings.Join(r.Modifiers, ","))
	b.WriteByte('|')
	for i, p := range r.Params {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(normalizeTypeString(p.Type))
		if p.Variadic {
			b.WriteString("...")
		}
	}
	b.WriteByte('|')
	b.WriteString(normalizeTypeString(r.ReturnType))
	return b.String()
}

func normalizeTypeString(t string) string {
	fields := strings.Fields(t)
	return strings.ToLower(strings.Join(fields, " "))
}

// SignatureHash returns the order-sensitive structural hash of the
// normalized signature (spec §3, "signature hash"). Cached after first
// computation, mirroring the teacher's Function.GetSignature caching.
func (r *Record) SignatureHash() string {
	if r.signatureHash != "" {
		return r.signatureHash
	}
	r.signatureHash = sha256Hex(r.NormalizedSignature())
	return r.signatureHash
}

// BodyHash returns the Merkle-style structural hash of the body subtree
// (spec §4.2): the hash of a node combines its kind tag with the ordered
// hashes of its children, with identifier/literal attributes folded in so
// `x+1` and `y+1` hash differently. Cached after first computation.
func (r *Record) BodyHash() string {
	if r.bodyHash != "" {
		return r.bodyHash
	}
	if !r.HasBody() {
		r.bodyHash = sha256Hex("no-body:" + r.QualifiedName)
		return r.bodyHash
	}
	r.bodyHash = hashSubtree(r.Arena, r.BodyRoot)
	return r.bodyHash
}

// hashSubtree computes the Merkle-style structural hash of the subtree
// rooted at idx, bottom-up.
func hashSubtree(arena *coreast.Arena, idx int) string {
	node := arena.At(idx)
	if node == nil {
		return sha256Hex("nil")
	}

	var b strings.Builder
	b.WriteString(node.Kind.String())

	if text, ok := node.Attr("text"); ok {
		b.WriteByte('\x00')
		b.WriteString(text)
	}

	for _, child := range node.Children {
		b.WriteByte('\x01')
		b.WriteString(hashSubtree(arena, child))
	}

	return sha256Hex(b.String())
}

func sha256Hex(s string) string {
	sum := sha256.Sum256([]byte(s))
	return hex.EncodeToString(sum[:])[:16]
}
