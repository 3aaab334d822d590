// Package syncer implements the synchronization engine reconciling the
// authoritative remote document store with the local relational mirror.
//
// The engine is composed of pluggable parts: a [Strategy] is the
// reconciliation algorithm, a [ConflictResolver] picks a winning field set
// when both sides changed independently, and a [SchemaMapper] translates
// between the remote document shape and the local row shape. The [Manager]
// owns the typed registries of strategies and resolvers, applies job-level
// defaults, and is the single entry point for collection- and
// document-level synchronization.
package syncer
