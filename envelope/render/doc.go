// Package render implements diagnostic rendering of envelopes (C14,
// spec.md §4.6): an indented tree view, a compact single-line notation, and
// a Mermaid graph for visualizing an envelope's structure. These are debug
// utilities, not part of the wire format.
package render
