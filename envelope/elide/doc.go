// Package elide implements the elision engine (C8, spec.md §4.5): replacing
// parts of an envelope tree with a digest-preserving stand-in, chosen by a
// remove-set (obscure exactly these digests) or a reveal-set (obscure
// everything except these digests and their ancestors), and the reverse
// operation of substituting real content back in for a previously obscured
// digest.
//
// The engine is built entirely on the core envelope package's Walk
// (spec.md §4.4): Walk already implements "replacing an envelope stops
// descent into its original children", which is exactly elision's
// stop-at-the-elided-boundary behavior, so no separate tree-rebuilding code
// is needed here.
package elide
