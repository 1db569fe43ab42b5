package render

import (
	"fmt"
	"strings"

	"github.com/paritytech/bcts-sub004/envelope"
	"github.com/paritytech/bcts-sub004/known"
)

const digestPreviewLen = 8

func label(e envelope.Envelope) string {
	switch e.Kind() {
	case envelope.KindLeaf:
		var v any
		if err := e.LeafValue(&v); err != nil {
			return fmt.Sprintf("LEAF(%s)", e.Digest().ShortHex(digestPreviewLen))
		}
		return fmt.Sprintf("LEAF(%v)", v)
	case envelope.KindKnownValue:
		n, _ := e.KnownValue()
		return known.Value(n).String()
	case envelope.KindElided:
		return fmt.Sprintf("ELIDED(%s)", e.Digest().ShortHex(digestPreviewLen))
	case envelope.KindEncrypted:
		return fmt.Sprintf("ENCRYPTED(%s)", e.Digest().ShortHex(digestPreviewLen))
	case envelope.KindCompressed:
		return fmt.Sprintf("COMPRESSED(%s)", e.Digest().ShortHex(digestPreviewLen))
	case envelope.KindWrapped:
		return "WRAPPED"
	case envelope.KindNode:
		return "NODE"
	case envelope.KindAssertion:
		return "ASSERTION"
	default:
		return "INVALID"
	}
}

// Tree renders e as an indented, human-readable tree, one envelope per
// line, prefixed with its digest's first digestPreviewLen hex characters.
func Tree(e envelope.Envelope) string {
	var b strings.Builder
	writeTree(&b, e, 0)
	return b.String()
}

func writeTree(b *strings.Builder, e envelope.Envelope, depth int) {
	fmt.Fprintf(b, "%s%s %s\n", strings.Repeat("  ", depth), e.Digest().ShortHex(digestPreviewLen), label(e))

	switch e.Kind() {
	case envelope.KindNode:
		writeTree(b, e.Subject(), depth+1)
		for _, a := range e.Assertions() {
			writeTree(b, a, depth+1)
		}
	case envelope.KindWrapped:
		if inner, err := e.TryUnwrap(); err == nil {
			writeTree(b, inner, depth+1)
		}
	case envelope.KindAssertion:
		if pred, err := e.Predicate(); err == nil {
			writeTree(b, pred, depth+1)
		}
		if obj, err := e.Object(); err == nil {
			writeTree(b, obj, depth+1)
		}
	}
}

// Diagnostic renders e in a compact single-line notation, similar in spirit
// to CBOR diagnostic notation: a node renders as
// `subject [predicate: object, predicate: object]`.
func Diagnostic(e envelope.Envelope) string {
	switch e.Kind() {
	case envelope.KindNode:
		parts := make([]string, 0, len(e.Assertions()))
		for _, a := range e.Assertions() {
			parts = append(parts, Diagnostic(a))
		}
		return fmt.Sprintf("%s [%s]", Diagnostic(e.Subject()), strings.Join(parts, ", "))
	case envelope.KindWrapped:
		inner, err := e.TryUnwrap()
		if err != nil {
			return label(e)
		}
		return fmt.Sprintf("WRAP(%s)", Diagnostic(inner))
	case envelope.KindAssertion:
		pred, errP := e.Predicate()
		obj, errO := e.Object()
		if errP != nil || errO != nil {
			return label(e)
		}
		return fmt.Sprintf("%s: %s", Diagnostic(pred), Diagnostic(obj))
	default:
		return label(e)
	}
}

// Mermaid renders e as a Mermaid flowchart definition, with one node per
// envelope (keyed by its digest) and labeled edges for subject/assertion/
// wrapped/predicate/object relationships.
func Mermaid(e envelope.Envelope) string {
	var b strings.Builder
	b.WriteString("graph TD\n")
	writeMermaid(&b, e)
	return b.String()
}

func mermaidID(e envelope.Envelope) string {
	return "n" + e.Digest().ShortHex(12)
}

func writeMermaid(b *strings.Builder, e envelope.Envelope) {
	id := mermaidID(e)
	fmt.Fprintf(b, "  %s[%q]\n", id, label(e))

	switch e.Kind() {
	case envelope.KindNode:
		subj := e.Subject()
		fmt.Fprintf(b, "  %s -->|subject| %s\n", id, mermaidID(subj))
		writeMermaid(b, subj)
		for _, a := range e.Assertions() {
			fmt.Fprintf(b, "  %s -->|assertion| %s\n", id, mermaidID(a))
			writeMermaid(b, a)
		}
	case envelope.KindWrapped:
		if inner, err := e.TryUnwrap(); err == nil {
			fmt.Fprintf(b, "  %s -->|wraps| %s\n", id, mermaidID(inner))
			writeMermaid(b, inner)
		}
	case envelope.KindAssertion:
		if pred, err := e.Predicate(); err == nil {
			fmt.Fprintf(b, "  %s -->|predicate| %s\n", id, mermaidID(pred))
			writeMermaid(b, pred)
		}
		if obj, err := e.Object(); err == nil {
			fmt.Fprintf(b, "  %s -->|object| %s\n", id, mermaidID(obj))
			writeMermaid(b, obj)
		}
	}
}
