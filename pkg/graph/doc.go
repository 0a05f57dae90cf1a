// Package graph models the declarative processing pipeline of an assistant:
// a schema of named nodes, each binding a known component type to a
// configuration mapping. The schema is metadata only — components
// themselves (tokenizers, featurizers, extractors, policies) train and run
// elsewhere. What lives here is the vocabulary of known component types,
// their traits, and the structural rules a schema must satisfy before a
// training run is allowed to start.
package graph
