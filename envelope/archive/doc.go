// Package archive implements content-addressed storage for envelopes and
// their elided or encrypted parts (the supplemental archive component of
// SPEC_FULL.md §C.6): a Store keyed by digest, with a local filesystem
// backend and an Azure Blob Storage backend, following the
// context.Context-first call shape the teacher's own blob storage layer uses
// (massifs.MassifCommitter, massifs.SignedRootReader). The backend
// constructors take plain arguments; there are no functional options.
package archive
